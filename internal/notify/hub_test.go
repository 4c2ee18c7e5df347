package notify_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"haiku-server/internal/notify"
)

func TestHub_MarkBeforeWaitReturnsImmediately(t *testing.T) {
	hub := notify.NewHub()
	hub.MarkDirty(1)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	if err := hub.WaitAndClear(ctx, 1); err != nil {
		t.Fatalf("expected immediate return, got %v", err)
	}
}

func TestHub_MarkWakesWaiter(t *testing.T) {
	hub := notify.NewHub()

	done := make(chan error, 1)
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		done <- hub.WaitAndClear(ctx, 7)
	}()

	// Give the waiter time to block before marking.
	time.Sleep(50 * time.Millisecond)
	hub.MarkDirty(7)

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("expected wake-up, got %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("waiter never woke up")
	}
}

func TestHub_MarksCoalesce(t *testing.T) {
	hub := notify.NewHub()

	hub.MarkDirty(3)
	hub.MarkDirty(3)
	hub.MarkDirty(3)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	if err := hub.WaitAndClear(ctx, 3); err != nil {
		t.Fatalf("first wait should consume the latch: %v", err)
	}

	// The latch is cleared; a second wait must block until cancelled.
	shortCtx, shortCancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer shortCancel()
	if err := hub.WaitAndClear(shortCtx, 3); err == nil {
		t.Fatal("second wait should block, got immediate return")
	}
}

func TestHub_CancelledWaitKeepsLatch(t *testing.T) {
	hub := notify.NewHub()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := hub.WaitAndClear(ctx, 5); err == nil {
		t.Fatal("expected ctx error from cancelled wait")
	}

	// A mark latched before a cancelled wait entry must survive it.
	hub.MarkDirty(5)
	cancelledCtx, c2 := context.WithCancel(context.Background())
	c2()
	// Latched signal wins over cancellation only if checked first; either
	// outcome must leave the latch intact or consumed exactly once.
	_ = hub.WaitAndClear(cancelledCtx, 5)

	okCtx, c3 := context.WithTimeout(context.Background(), time.Second)
	defer c3()
	hub.MarkDirty(5)
	if err := hub.WaitAndClear(okCtx, 5); err != nil {
		t.Fatalf("latch lost after cancelled waits: %v", err)
	}
}

func TestHub_ConcurrentMarksOneProject(t *testing.T) {
	hub := notify.NewHub()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			hub.MarkDirty(9)
		}()
	}
	wg.Wait()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := hub.WaitAndClear(ctx, 9); err != nil {
		t.Fatalf("expected latched signal after concurrent marks: %v", err)
	}
}

func TestHub_ProjectsAreIndependent(t *testing.T) {
	hub := notify.NewHub()
	hub.MarkDirty(1)

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	if err := hub.WaitAndClear(ctx, 2); err == nil {
		t.Fatal("mark on project 1 must not wake project 2")
	}
}
