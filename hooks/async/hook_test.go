package asynchook

import (
	"errors"
	"sync"
	"testing"

	"github.com/unkn0wn-root/ouch/journal"
)

type countHooks struct {
	journal.NopHooks
	mu      sync.Mutex
	heals   []string
	release chan struct{}
}

func (c *countHooks) SelfHeal(k, r string) {
	if c.release != nil {
		<-c.release
	}
	c.mu.Lock()
	c.heals = append(c.heals, k+"/"+r)
	c.mu.Unlock()
}

func TestForwardsAndDrainsOnClose(t *testing.T) {
	inner := &countHooks{}
	h := New(inner, 2, 16)
	for i := 0; i < 10; i++ {
		h.SelfHeal("order:venue:T1", "stale")
	}
	h.GenBumpError("k", errors.New("x")) // forwarded to NopHooks
	h.Close()
	h.Close() // idempotent

	if len(inner.heals) != 10 || inner.heals[0] != "order:venue:T1/stale" {
		t.Fatalf("heals = %v", inner.heals)
	}
	if h.Dropped() != 0 {
		t.Fatalf("Dropped = %d", h.Dropped())
	}
}

func TestDropsWhenQueueFull(t *testing.T) {
	inner := &countHooks{release: make(chan struct{})}
	h := New(inner, 1, 1)

	// worker blocks on the first event; the queue holds one more
	for i := 0; i < 10; i++ {
		h.SelfHeal("k", "corrupt")
	}
	close(inner.release)
	h.Close()

	if h.Dropped() == 0 {
		t.Fatalf("expected dropped events")
	}
	if got := uint64(len(inner.heals)) + h.Dropped(); got != 10 {
		t.Fatalf("delivered+dropped = %d, want 10", got)
	}
}

func TestEventsAfterCloseAreDropped(t *testing.T) {
	inner := &countHooks{}
	h := New(inner, 1, 4)
	h.Close()

	h.SelfHeal("k", "stale")
	h.CancelOutage("T1", errors.New("gens"), errors.New("del"))

	if h.Dropped() != 2 {
		t.Fatalf("Dropped = %d, want 2", h.Dropped())
	}
	if len(inner.heals) != 0 {
		t.Fatalf("heals = %v", inner.heals)
	}
}
