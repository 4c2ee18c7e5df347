package queue

import (
	"context"
	"time"
)

// Kind identifies the background action a task performs.
type Kind string

const (
	KindCritique     Kind = "haiku-critique"
	KindImagePrompts Kind = "image-prompts"
	KindImage        Kind = "image-generate"
)

// Task describes one deferred generation action. ProjectID is carried so
// executors can mark the owning project dirty without re-resolving it.
type Task struct {
	ID        string
	Kind      Kind
	ProjectID uint
	HaikuID   uint
	PromptID  string
	ChainID   string
	QueuedAt  time.Time
}

// TaskQueue is the interface for deferring actions to background workers.
type TaskQueue interface {
	// Enqueue adds a task to the queue, failing when the queue is full or closed.
	Enqueue(ctx context.Context, task *Task) error

	// Dequeue blocks until a task is available or ctx is done.
	Dequeue(ctx context.Context) (*Task, error)

	// Depth returns the number of queued tasks.
	Depth() int
}
