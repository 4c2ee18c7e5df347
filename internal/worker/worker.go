package worker

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"haiku-server/internal/domain/haiku"
	"haiku-server/internal/infrastructure/queue"
)

// Worker pulls tasks from the queue and runs them through the pipeline.
type Worker struct {
	id          int
	queue       queue.TaskQueue
	pipeline    haiku.Service
	taskTimeout time.Duration
	log         zerolog.Logger
}

// NewWorker creates a worker with the given id.
func NewWorker(id int, taskQueue queue.TaskQueue, pipeline haiku.Service, taskTimeout time.Duration, log zerolog.Logger) *Worker {
	return &Worker{
		id:          id,
		queue:       taskQueue,
		pipeline:    pipeline,
		taskTimeout: taskTimeout,
		log:         log.With().Int("worker_id", id).Logger(),
	}
}

// Run blocks on the queue until ctx is cancelled.
func (w *Worker) Run(ctx context.Context) {
	w.log.Debug().Msg("worker started")
	for {
		task, err := w.queue.Dequeue(ctx)
		if err != nil {
			if ctx.Err() != nil {
				w.log.Debug().Msg("worker stopping")
				return
			}
			w.log.Error().Err(err).Msg("dequeue failed")
			continue
		}
		w.process(ctx, task)
	}
}

func (w *Worker) process(ctx context.Context, task *queue.Task) {
	taskCtx := ctx
	var cancel context.CancelFunc
	if w.taskTimeout > 0 {
		taskCtx, cancel = context.WithTimeout(ctx, w.taskTimeout)
		defer cancel()
	}

	// A panicking task must not take the worker down with it.
	defer func() {
		if r := recover(); r != nil {
			w.log.Error().
				Str("task_id", task.ID).
				Str("kind", string(task.Kind)).
				Interface("panic", r).
				Msg("task panicked")
		}
	}()

	start := time.Now()
	if err := w.pipeline.Execute(taskCtx, task); err != nil {
		w.log.Error().
			Err(err).
			Str("task_id", task.ID).
			Str("kind", string(task.Kind)).
			Dur("duration", time.Since(start)).
			Msg("task failed")
		return
	}

	w.log.Info().
		Str("task_id", task.ID).
		Str("kind", string(task.Kind)).
		Dur("duration", time.Since(start)).
		Msg("task completed")
}
