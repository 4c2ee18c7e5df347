package queue_test

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"haiku-server/internal/infrastructure/queue"
)

func TestMemoryQueue_EnqueueDequeue(t *testing.T) {
	q := queue.NewMemoryQueue(4, zerolog.Nop())

	task := &queue.Task{Kind: queue.KindCritique, ProjectID: 1, HaikuID: 2}
	if err := q.Enqueue(context.Background(), task); err != nil {
		t.Fatalf("Enqueue failed: %v", err)
	}
	if task.ID == "" {
		t.Error("Enqueue must assign a task id")
	}
	if task.QueuedAt.IsZero() {
		t.Error("Enqueue must stamp QueuedAt")
	}
	if q.Depth() != 1 {
		t.Errorf("expected depth 1, got %d", q.Depth())
	}

	got, err := q.Dequeue(context.Background())
	if err != nil {
		t.Fatalf("Dequeue failed: %v", err)
	}
	if got.ID != task.ID {
		t.Errorf("dequeued wrong task: %s", got.ID)
	}
	if q.Depth() != 0 {
		t.Errorf("expected empty queue, got depth %d", q.Depth())
	}
}

func TestMemoryQueue_FIFO(t *testing.T) {
	q := queue.NewMemoryQueue(4, zerolog.Nop())
	for _, kind := range []queue.Kind{queue.KindCritique, queue.KindImagePrompts, queue.KindImage} {
		if err := q.Enqueue(context.Background(), &queue.Task{Kind: kind}); err != nil {
			t.Fatalf("Enqueue failed: %v", err)
		}
	}

	for _, want := range []queue.Kind{queue.KindCritique, queue.KindImagePrompts, queue.KindImage} {
		got, err := q.Dequeue(context.Background())
		if err != nil {
			t.Fatalf("Dequeue failed: %v", err)
		}
		if got.Kind != want {
			t.Errorf("expected %s, got %s", want, got.Kind)
		}
	}
}

func TestMemoryQueue_FullQueueFailsFast(t *testing.T) {
	q := queue.NewMemoryQueue(1, zerolog.Nop())

	if err := q.Enqueue(context.Background(), &queue.Task{Kind: queue.KindImage}); err != nil {
		t.Fatalf("first Enqueue failed: %v", err)
	}
	if err := q.Enqueue(context.Background(), &queue.Task{Kind: queue.KindImage}); err == nil {
		t.Fatal("expected saturation error, got nil")
	}
}

func TestMemoryQueue_DequeueHonorsContext(t *testing.T) {
	q := queue.NewMemoryQueue(1, zerolog.Nop())

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	if _, err := q.Dequeue(ctx); err == nil {
		t.Fatal("expected ctx error from empty queue")
	}
}

func TestMemoryQueue_DequeueUnblocksOnEnqueue(t *testing.T) {
	q := queue.NewMemoryQueue(1, zerolog.Nop())

	done := make(chan *queue.Task, 1)
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		task, err := q.Dequeue(ctx)
		if err != nil {
			done <- nil
			return
		}
		done <- task
	}()

	time.Sleep(20 * time.Millisecond)
	if err := q.Enqueue(context.Background(), &queue.Task{Kind: queue.KindCritique}); err != nil {
		t.Fatalf("Enqueue failed: %v", err)
	}

	select {
	case task := <-done:
		if task == nil {
			t.Fatal("blocked Dequeue did not receive the task")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Dequeue never unblocked")
	}
}
