package genstore

import (
	"context"
	"sync"
	"time"
)

type revision struct {
	rev     uint64
	touched time.Time
}

// LocalGenStore keeps revisions in-process. A pruned key restarts at 0, which
// invalidates any journal entry still stored under it.
type LocalGenStore struct {
	mu   sync.RWMutex
	revs map[string]revision

	stop chan struct{}
	wg   sync.WaitGroup
	once sync.Once
}

var _ GenStore = (*LocalGenStore)(nil)

// NewLocalGenStore starts a cleanup loop when both cleanupInterval and
// retention are positive.
func NewLocalGenStore(cleanupInterval, retention time.Duration) *LocalGenStore {
	s := &LocalGenStore{revs: make(map[string]revision)}
	if cleanupInterval <= 0 || retention <= 0 {
		return s
	}

	s.stop = make(chan struct{})
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		t := time.NewTicker(cleanupInterval)
		defer t.Stop()
		for {
			select {
			case <-t.C:
				s.Cleanup(retention)
			case <-s.stop:
				return
			}
		}
	}()
	return s
}

func (s *LocalGenStore) Snapshot(_ context.Context, key string) (uint64, error) {
	s.mu.RLock()
	r := s.revs[key]
	s.mu.RUnlock()
	return r.rev, nil
}

// SnapshotMany reads all keys under one read lock.
func (s *LocalGenStore) SnapshotMany(_ context.Context, keys []string) (map[string]uint64, error) {
	out := make(map[string]uint64, len(keys))
	s.mu.RLock()
	for _, k := range keys {
		out[k] = s.revs[k].rev
	}
	s.mu.RUnlock()
	return out, nil
}

func (s *LocalGenStore) Bump(_ context.Context, key string) (uint64, error) {
	now := time.Now()
	s.mu.Lock()
	r := s.revs[key]
	r.rev++
	r.touched = now
	s.revs[key] = r
	s.mu.Unlock()
	return r.rev, nil
}

func (s *LocalGenStore) Cleanup(retention time.Duration) {
	if retention <= 0 {
		return
	}
	cutoff := time.Now().Add(-retention)

	s.mu.Lock()
	for k, r := range s.revs {
		if r.touched.Before(cutoff) {
			delete(s.revs, k)
		}
	}
	s.mu.Unlock()
}

// Len reports how many keys currently hold a revision.
func (s *LocalGenStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.revs)
}

func (s *LocalGenStore) Close(_ context.Context) error {
	s.once.Do(func() {
		if s.stop != nil {
			close(s.stop)
			s.wg.Wait()
		}
	})
	return nil
}
