package queue

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"haiku-server/internal/infrastructure/metrics"
)

// MemoryQueue is a bounded in-process task queue. Tasks are not durable;
// anything still queued at shutdown is dropped, which matches the service's
// at-least-once-per-burst push contract rather than a delivery guarantee.
type MemoryQueue struct {
	tasks chan *Task
	log   zerolog.Logger
}

// NewMemoryQueue creates a queue with the given capacity.
func NewMemoryQueue(size int, log zerolog.Logger) *MemoryQueue {
	if size <= 0 {
		size = 64
	}
	return &MemoryQueue{
		tasks: make(chan *Task, size),
		log:   log.With().Str("component", "task-queue").Logger(),
	}
}

// Enqueue adds a task, failing fast when the queue is saturated.
func (q *MemoryQueue) Enqueue(ctx context.Context, task *Task) error {
	if task.ID == "" {
		task.ID = uuid.New().String()
	}
	if task.QueuedAt.IsZero() {
		task.QueuedAt = time.Now().UTC()
	}

	select {
	case q.tasks <- task:
		metrics.QueueDepth.Set(float64(len(q.tasks)))
		q.log.Debug().Str("task_id", task.ID).Str("kind", string(task.Kind)).Msg("task enqueued")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	default:
		return fmt.Errorf("task queue full (%d tasks)", cap(q.tasks))
	}
}

// Dequeue blocks until a task is available or ctx is done.
func (q *MemoryQueue) Dequeue(ctx context.Context) (*Task, error) {
	select {
	case task := <-q.tasks:
		metrics.QueueDepth.Set(float64(len(q.tasks)))
		return task, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Depth returns the number of queued tasks.
func (q *MemoryQueue) Depth() int {
	return len(q.tasks)
}
