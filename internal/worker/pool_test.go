package worker_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	haikuDomain "haiku-server/internal/domain/haiku"
	"haiku-server/internal/infrastructure/queue"
	"haiku-server/internal/worker"
)

// MockPipeline implements haiku.Service; only Execute matters to workers.
type MockPipeline struct {
	mu          sync.Mutex
	ExecuteFunc func(ctx context.Context, task *queue.Task) error
	Executed    []*queue.Task
}

func (m *MockPipeline) Generate(ctx context.Context, projectID uint, description string) (*haikuDomain.Haiku, error) {
	return nil, nil
}
func (m *MockPipeline) RequestCritique(ctx context.Context, haikuID uint) error     { return nil }
func (m *MockPipeline) RequestImagePrompts(ctx context.Context, haikuID uint) error { return nil }
func (m *MockPipeline) RequestImage(ctx context.Context, haikuID uint, promptID string) error {
	return nil
}
func (m *MockPipeline) UpdateImagePrompt(ctx context.Context, promptID, newText string) error {
	return nil
}

func (m *MockPipeline) Execute(ctx context.Context, task *queue.Task) error {
	m.mu.Lock()
	m.Executed = append(m.Executed, task)
	m.mu.Unlock()
	if m.ExecuteFunc != nil {
		return m.ExecuteFunc(ctx, task)
	}
	return nil
}

func (m *MockPipeline) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Executed)
}

func TestPool_DrainsQueue(t *testing.T) {
	q := queue.NewMemoryQueue(8, zerolog.Nop())
	pipeline := &MockPipeline{}

	executed := make(chan struct{}, 8)
	pipeline.ExecuteFunc = func(ctx context.Context, task *queue.Task) error {
		executed <- struct{}{}
		return nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pool := worker.NewPool(q, pipeline, worker.Config{WorkerCount: 2, TaskTimeout: time.Second}, zerolog.Nop())
	pool.Start(ctx)

	for i := 0; i < 3; i++ {
		if err := q.Enqueue(ctx, &queue.Task{Kind: queue.KindCritique, HaikuID: uint(i + 1)}); err != nil {
			t.Fatalf("Enqueue failed: %v", err)
		}
	}

	for i := 0; i < 3; i++ {
		select {
		case <-executed:
		case <-time.After(2 * time.Second):
			t.Fatalf("task %d never executed", i+1)
		}
	}

	cancel()
	pool.Stop()
}

func TestPool_TaskFailureDoesNotStopWorkers(t *testing.T) {
	q := queue.NewMemoryQueue(8, zerolog.Nop())
	pipeline := &MockPipeline{}

	executed := make(chan queue.Kind, 8)
	pipeline.ExecuteFunc = func(ctx context.Context, task *queue.Task) error {
		executed <- task.Kind
		if task.Kind == queue.KindImage {
			return errors.New("image backend down")
		}
		return nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pool := worker.NewPool(q, pipeline, worker.Config{WorkerCount: 1, TaskTimeout: time.Second}, zerolog.Nop())
	pool.Start(ctx)

	_ = q.Enqueue(ctx, &queue.Task{Kind: queue.KindImage})
	_ = q.Enqueue(ctx, &queue.Task{Kind: queue.KindCritique})

	for i := 0; i < 2; i++ {
		select {
		case <-executed:
		case <-time.After(2 * time.Second):
			t.Fatal("worker stopped after a failing task")
		}
	}

	cancel()
	pool.Stop()
}

func TestPool_RecoversPanickingTask(t *testing.T) {
	q := queue.NewMemoryQueue(8, zerolog.Nop())
	pipeline := &MockPipeline{}

	executed := make(chan queue.Kind, 8)
	pipeline.ExecuteFunc = func(ctx context.Context, task *queue.Task) error {
		executed <- task.Kind
		if task.Kind == queue.KindImagePrompts {
			panic("boom")
		}
		return nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pool := worker.NewPool(q, pipeline, worker.Config{WorkerCount: 1, TaskTimeout: time.Second}, zerolog.Nop())
	pool.Start(ctx)

	_ = q.Enqueue(ctx, &queue.Task{Kind: queue.KindImagePrompts})
	_ = q.Enqueue(ctx, &queue.Task{Kind: queue.KindCritique})

	for i := 0; i < 2; i++ {
		select {
		case <-executed:
		case <-time.After(2 * time.Second):
			t.Fatal("worker died on a panicking task")
		}
	}

	cancel()
	pool.Stop()
}

func TestPool_StopWaitsForWorkers(t *testing.T) {
	q := queue.NewMemoryQueue(8, zerolog.Nop())
	pipeline := &MockPipeline{}

	started := make(chan struct{})
	finished := make(chan struct{})
	pipeline.ExecuteFunc = func(ctx context.Context, task *queue.Task) error {
		close(started)
		time.Sleep(100 * time.Millisecond)
		close(finished)
		return nil
	}

	ctx, cancel := context.WithCancel(context.Background())

	pool := worker.NewPool(q, pipeline, worker.Config{WorkerCount: 1, TaskTimeout: time.Second}, zerolog.Nop())
	pool.Start(ctx)

	_ = q.Enqueue(ctx, &queue.Task{Kind: queue.KindCritique})
	<-started

	cancel()
	pool.Stop()

	select {
	case <-finished:
	case <-time.After(time.Second):
		t.Fatal("Stop returned before the in-flight task finished")
	}
}
