// Package genstore keeps a revision counter per journal key. A journal entry is
// valid only while the revision it was written with is still current, so bumping
// a token's revision atomically retires whatever is stored for it.
package genstore

import (
	"context"
	"time"
)

// GenStore abstracts where revisions live.
// LocalGenStore serves a single process; RedisGenStore is shared across replicas.
type GenStore interface {
	// Snapshot returns the current revision; missing => 0.
	Snapshot(ctx context.Context, key string) (uint64, error)
	// SnapshotMany returns revisions for many keys; missing => 0.
	SnapshotMany(ctx context.Context, keys []string) (map[string]uint64, error)
	// Bump atomically increments and returns the new revision.
	Bump(ctx context.Context, key string) (uint64, error)
	// Cleanup forgets revisions untouched for longer than retention (no-op for Redis).
	Cleanup(retention time.Duration)
	// Close releases resources (no-op ok).
	Close(context.Context) error
}
