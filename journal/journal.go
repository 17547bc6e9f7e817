// Package journal stores the latest order message per order token over a
// pluggable byte store.
//
// Every write bumps the token's revision in a GenStore and stores the encoded
// message together with that revision. Reads accept an entry only if its
// revision is still current, so a Cancel (bump + delete) can never be undone by
// a delayed or half-failed write, and entries written by an older process with a
// different GenStore view self-heal on read.
//
// Put and Cancel on the same token are serialized inside one Journal, so the
// entry written last always carries the newest revision. Several processes
// sharing a RedisGenStore are not serialized against each other: their writes
// can still land out of revision order unless the provider writes
// conditionally, and the loser is then dropped as stale on the next read.
//
//	j, _ := journal.New(journal.Options{
//	    Namespace: "venue1",
//	    Provider:  provider, // ristretto, bigcache, redis, pebble
//	})
//	rev, err := j.Put(ctx, msg)
//	got, ok, err := j.Get(ctx, msg.OrderToken)
package journal

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/cespare/xxhash/v2"

	"github.com/unkn0wn-root/ouch"
	c "github.com/unkn0wn-root/ouch/codec"
	gen "github.com/unkn0wn-root/ouch/genstore"
	"github.com/unkn0wn-root/ouch/internal/util"
	"github.com/unkn0wn-root/ouch/internal/wire"
	pr "github.com/unkn0wn-root/ouch/provider"
)

const (
	defaultTTL          = 24 * time.Hour
	defaultSweep        = time.Hour
	defaultGenRetention = 7 * 24 * time.Hour

	lockStripes = 64
)

// SetCostFunc returns the cost passed to Provider.Set for an entry.
type SetCostFunc func(storageKey string, raw []byte) int64

// Options tune the journal. Only Namespace and Provider are required.
type Options struct {
	Namespace string // logical namespace, e.g. venue or session id
	Provider  pr.Provider

	Codec           c.Codec[ouch.OrderMessage] // nil => codec.Binary{}
	GenStore        gen.GenStore               // nil => LocalGenStore (in-process)
	Logger          ouch.Logger                // nil => NopLogger
	Hooks           Hooks                      // nil => NopHooks
	TTL             time.Duration              // 0 => 24h
	CleanupInterval time.Duration              // local GenStore sweep; 0 => 1h
	GenRetention    time.Duration              // local GenStore retention; 0 => 7d
	ComputeSetCost  SetCostFunc                // nil => len(raw)
}

type Journal struct {
	ns       string
	provider pr.Provider
	codec    c.Codec[ouch.OrderMessage]
	gens     gen.GenStore
	log      ouch.Logger
	hooks    Hooks
	ttl      time.Duration
	cost     SetCostFunc

	// held from Bump through Set/Del for one storage key
	locks [lockStripes]sync.Mutex
}

func New(opts Options) (*Journal, error) {
	if opts.Provider == nil {
		return nil, errors.New("journal: provider is required")
	}
	if opts.Namespace == "" {
		return nil, errors.New("journal: namespace is required")
	}

	j := &Journal{
		ns:       opts.Namespace,
		provider: opts.Provider,
		codec:    opts.Codec,
		gens:     opts.GenStore,
		cost:     opts.ComputeSetCost,
	}
	if j.codec == nil {
		j.codec = c.Binary{}
	}
	if j.gens == nil {
		j.gens = gen.NewLocalGenStore(
			coalesce(opts.CleanupInterval, defaultSweep),
			coalesce(opts.GenRetention, defaultGenRetention),
		)
	}
	if j.cost == nil {
		j.cost = func(_ string, raw []byte) int64 { return int64(len(raw)) }
	}
	j.log = coalesce[ouch.Logger](opts.Logger, ouch.NopLogger{})
	j.hooks = coalesce[Hooks](opts.Hooks, NopHooks{})
	j.ttl = coalesce(opts.TTL, defaultTTL)

	return j, nil
}

func (j *Journal) key(token string) string { return util.StorageKey(j.ns, token) }

func (j *Journal) lock(k string) *sync.Mutex {
	return &j.locks[xxhash.Sum64String(k)%lockStripes]
}

// Put stores m as the latest message for its order token and returns the new
// revision. m must pass ouch validation whatever codec is configured; validation
// and encoding errors are returned unchanged and leave the journal untouched.
func (j *Journal) Put(ctx context.Context, m ouch.OrderMessage) (uint64, error) {
	if util.Token(m.OrderToken) == "" {
		return 0, ErrEmptyToken
	}
	if err := m.Validate(); err != nil {
		return 0, err
	}
	payload, err := j.codec.Encode(m)
	if err != nil {
		return 0, err
	}

	k := j.key(m.OrderToken)
	mu := j.lock(k)
	mu.Lock()
	defer mu.Unlock()

	rev, err := j.gens.Bump(ctx, k)
	if err != nil {
		j.hooks.GenBumpError(k, err)
		return 0, err
	}

	raw := wire.EncodeEntry(rev, payload)
	ok, err := j.provider.Set(ctx, k, raw, j.cost(k, raw), j.ttl)
	if err != nil {
		return 0, err
	}
	if !ok {
		// the bump already retired the previous entry
		j.hooks.ProviderSetRejected(k)
		j.log.Debug("put rejected by provider (pressure)", ouch.Fields{"key": k, "rev": rev})
		return 0, ErrRejected
	}
	return rev, nil
}

// Get returns the latest message stored for token. Entries that are corrupt,
// stale or undecodable are deleted and reported as a miss.
func (j *Journal) Get(ctx context.Context, token string) (ouch.OrderMessage, bool, error) {
	k := j.key(token)
	cur, err := j.gens.Snapshot(ctx, k)
	if err != nil {
		j.hooks.GenSnapshotError(1, err)
		return ouch.OrderMessage{}, false, err
	}
	return j.load(ctx, k, cur)
}

// GetMany looks up several tokens with one revision snapshot. Order of
// missing follows tokens.
func (j *Journal) GetMany(ctx context.Context, tokens []string) (map[string]ouch.OrderMessage, []string, error) {
	out := make(map[string]ouch.OrderMessage, len(tokens))
	if len(tokens) == 0 {
		return out, nil, nil
	}

	keys := make([]string, len(tokens))
	for i, t := range tokens {
		keys[i] = j.key(t)
	}
	revs, err := j.gens.SnapshotMany(ctx, keys)
	if err != nil {
		j.hooks.GenSnapshotError(len(keys), err)
		return nil, nil, err
	}

	var missing []string
	for i, t := range tokens {
		m, ok, err := j.load(ctx, keys[i], revs[keys[i]])
		if err != nil {
			return nil, nil, err
		}
		if !ok {
			missing = append(missing, t)
			continue
		}
		out[t] = m
	}
	return out, missing, nil
}

func (j *Journal) load(ctx context.Context, k string, cur uint64) (ouch.OrderMessage, bool, error) {
	var zero ouch.OrderMessage
	raw, ok, err := j.provider.Get(ctx, k)
	if err != nil || !ok {
		return zero, false, err
	}
	rev, payload, err := wire.DecodeEntry(raw)
	if err != nil {
		j.selfHeal(ctx, k, "corrupt")
		return zero, false, nil
	}
	if rev != cur {
		j.selfHeal(ctx, k, "stale")
		return zero, false, nil
	}
	m, err := j.codec.Decode(payload)
	if err != nil {
		j.log.Warn("journal entry failed to decode", ouch.Fields{"key": k, "err": err})
		j.selfHeal(ctx, k, "value_decode")
		return zero, false, nil
	}
	return m, true, nil
}

func (j *Journal) selfHeal(ctx context.Context, k, reason string) {
	_ = j.provider.Del(ctx, k)
	j.hooks.SelfHeal(k, reason)
}

// Revision returns the current revision for token; 0 if never written.
func (j *Journal) Revision(ctx context.Context, token string) (uint64, error) {
	return j.gens.Snapshot(ctx, j.key(token))
}

// Cancel retires the entry for token. The revision bump alone makes any stored
// entry unreadable, so a failed delete after a successful bump is only logged.
func (j *Journal) Cancel(ctx context.Context, token string) error {
	k := j.key(token)
	mu := j.lock(k)
	mu.Lock()
	rev, bumpErr := j.gens.Bump(ctx, k)
	delErr := j.provider.Del(ctx, k)
	mu.Unlock()

	switch {
	case bumpErr != nil && delErr != nil:
		j.hooks.CancelOutage(token, bumpErr, delErr)
		return &CancelError{Token: token, BumpErr: bumpErr, DelErr: delErr}
	case bumpErr != nil:
		j.hooks.GenBumpError(k, bumpErr)
		return &CancelError{Token: token, BumpErr: bumpErr}
	case delErr != nil:
		j.log.Warn("cancel delete failed; entry is stale", ouch.Fields{"key": k, "rev": rev, "err": delErr})
	default:
		j.log.Debug("cancelled order (bumped revision + deleted entry)", ouch.Fields{"key": k, "rev": rev})
	}
	return nil
}

// Close closes the GenStore (best effort), then the provider.
func (j *Journal) Close(ctx context.Context) error {
	if j.gens != nil {
		_ = j.gens.Close(ctx)
	}
	return j.provider.Close(ctx)
}
