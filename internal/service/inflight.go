package service

import (
	"context"
	"sync"

	"github.com/ndewijer/RemitWise-Backend/internal/apperrors"
)

// inflightTracker keeps at most one running comparison per client.
// Starting a new one cancels the previous request with ErrSuperseded as the cause.
type inflightTracker struct {
	mu      sync.Mutex
	seq     uint64
	entries map[string]inflightEntry
}

type inflightEntry struct {
	seq    uint64
	cancel context.CancelCauseFunc
}

func newInflightTracker() *inflightTracker {
	return &inflightTracker{entries: make(map[string]inflightEntry)}
}

// begin registers a request for clientID and returns its context and a done
// func that must be called when the request finishes.
func (t *inflightTracker) begin(parent context.Context, clientID string) (context.Context, func()) {
	ctx, cancel := context.WithCancelCause(parent)

	t.mu.Lock()
	t.seq++
	seq := t.seq
	if prev, ok := t.entries[clientID]; ok {
		prev.cancel(apperrors.ErrSuperseded)
	}
	t.entries[clientID] = inflightEntry{seq: seq, cancel: cancel}
	t.mu.Unlock()

	done := func() {
		t.mu.Lock()
		if cur, ok := t.entries[clientID]; ok && cur.seq == seq {
			delete(t.entries, clientID)
		}
		t.mu.Unlock()
		cancel(nil)
	}
	return ctx, done
}

// len returns the number of clients with a request in flight.
func (t *inflightTracker) len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.entries)
}
