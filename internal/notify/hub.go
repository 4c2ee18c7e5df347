// Package notify provides the per-project dirty signal used to fan out
// state changes to dashboard subscribers. The signal is level-triggered:
// any number of marks between two waits coalesce into a single wake-up.
package notify

import (
	"context"
	"sync"
)

// Hub maps project ids to their dirty signals. Signals are created lazily
// under the hub lock and never removed for the lifetime of the process.
type Hub struct {
	mu      sync.Mutex
	signals map[uint]*signal
}

// NewHub constructs an empty hub.
func NewHub() *Hub {
	return &Hub{signals: make(map[uint]*signal)}
}

// MarkDirty latches the project's signal. Idempotent, never blocks, safe to
// call with no waiters.
func (h *Hub) MarkDirty(projectID uint) {
	h.signal(projectID).markDirty()
}

// WaitAndClear blocks until the project's signal is latched, clears it and
// returns. Returns immediately if the signal is already latched, so a mark
// concurrent with wait entry is never missed. Returns ctx.Err() on
// cancellation without clearing the signal.
func (h *Hub) WaitAndClear(ctx context.Context, projectID uint) error {
	return h.signal(projectID).waitAndClear(ctx)
}

func (h *Hub) signal(projectID uint) *signal {
	h.mu.Lock()
	defer h.mu.Unlock()
	s, ok := h.signals[projectID]
	if !ok {
		s = newSignal()
		h.signals[projectID] = s
	}
	return s
}

// signal is a single-slot, level-triggered dirty flag. markDirty closes the
// current wake channel; waitAndClear replaces it when consuming the flag.
type signal struct {
	mu    sync.Mutex
	dirty bool
	wake  chan struct{}
}

func newSignal() *signal {
	return &signal{wake: make(chan struct{})}
}

func (s *signal) markDirty() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.dirty {
		s.dirty = true
		close(s.wake)
	}
}

func (s *signal) waitAndClear(ctx context.Context) error {
	for {
		s.mu.Lock()
		if s.dirty {
			s.dirty = false
			s.wake = make(chan struct{})
			s.mu.Unlock()
			return nil
		}
		wake := s.wake
		s.mu.Unlock()

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-wake:
		}
	}
}
