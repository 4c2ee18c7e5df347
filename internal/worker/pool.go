package worker

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"haiku-server/internal/domain/haiku"
	"haiku-server/internal/infrastructure/queue"
)

// Pool manages the background workers draining the task queue.
type Pool struct {
	workers     []*Worker
	queue       queue.TaskQueue
	pipeline    haiku.Service
	workerCount int
	taskTimeout time.Duration
	log         zerolog.Logger
	wg          sync.WaitGroup
}

// Config contains worker pool configuration.
type Config struct {
	WorkerCount int
	TaskTimeout time.Duration
}

// NewPool creates a new worker pool.
func NewPool(taskQueue queue.TaskQueue, pipeline haiku.Service, cfg Config, log zerolog.Logger) *Pool {
	count := cfg.WorkerCount
	if count <= 0 {
		count = 1
	}
	return &Pool{
		queue:       taskQueue,
		pipeline:    pipeline,
		workerCount: count,
		taskTimeout: cfg.TaskTimeout,
		log:         log.With().Str("component", "worker-pool").Logger(),
	}
}

// Start launches all workers. They run until ctx is cancelled.
func (p *Pool) Start(ctx context.Context) {
	p.log.Info().Int("worker_count", p.workerCount).Msg("starting worker pool")

	p.workers = make([]*Worker, p.workerCount)
	for i := 0; i < p.workerCount; i++ {
		w := NewWorker(i+1, p.queue, p.pipeline, p.taskTimeout, p.log)
		p.workers[i] = w

		p.wg.Add(1)
		go func(w *Worker) {
			defer p.wg.Done()
			w.Run(ctx)
		}(w)
	}
}

// Stop waits for all workers to finish their in-flight tasks.
func (p *Pool) Stop() {
	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		p.log.Info().Msg("all workers stopped")
	case <-time.After(30 * time.Second):
		p.log.Warn().Msg("worker pool shutdown timed out")
	}
}
