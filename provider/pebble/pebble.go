package pebble

import (
	"context"
	"errors"
	"time"

	"github.com/cockroachdb/pebble"
	"github.com/cockroachdb/pebble/vfs"

	pr "github.com/unkn0wn-root/ouch/provider"
)

// Provider keeps journal entries in a Pebble LSM on disk. Pebble has no expiry:
// TTLs are ignored and entries live until Del. For entries to stay readable
// across restarts, pair it with genstore.RedisGenStore; with the in-process
// store, entries from a previous run read as stale and self-heal.
type Provider struct {
	db *pebble.DB
	wo *pebble.WriteOptions
}

var _ pr.Provider = (*Provider)(nil)

type Config struct {
	Dir  string
	FS   vfs.FS // nil => OS filesystem; vfs.NewMem() for tests
	Sync bool   // fsync every write
}

func New(cfg Config) (*Provider, error) {
	opts := &pebble.Options{}
	if cfg.FS != nil {
		opts.FS = cfg.FS
	}
	db, err := pebble.Open(cfg.Dir, opts)
	if err != nil {
		return nil, err
	}
	wo := pebble.NoSync
	if cfg.Sync {
		wo = pebble.Sync
	}
	return &Provider{db: db, wo: wo}, nil
}

func (p *Provider) Get(_ context.Context, key string) ([]byte, bool, error) {
	val, closer, err := p.db.Get([]byte(key))
	if errors.Is(err, pebble.ErrNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	defer closer.Close()
	// val is only valid until closer.Close
	return append([]byte(nil), val...), true, nil
}

func (p *Provider) Set(_ context.Context, key string, value []byte, _ int64, _ time.Duration) (bool, error) {
	if err := p.db.Set([]byte(key), value, p.wo); err != nil {
		return false, err
	}
	return true, nil
}

func (p *Provider) Del(_ context.Context, key string) error {
	return p.db.Delete([]byte(key), p.wo)
}

func (p *Provider) Close(_ context.Context) error {
	return p.db.Close()
}
