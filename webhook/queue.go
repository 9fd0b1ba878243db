package webhook

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog"
)

// job pairs a delivery record with the config it belongs to
type job struct {
	delivery Delivery
	config   Config
}

/* Queue is the bounded work queue feeding the Executor.
 * Dispatch submits jobs without blocking; a fixed pool of workers performs
 * the HTTP attempts. When the buffer is full the job is dropped and logged;
 * the delivery stays pending in the store and remains visible in history.
 */
type Queue struct {
	jobs    chan job
	exec    *Executor
	logger  zerolog.Logger
	workers int

	wg   sync.WaitGroup
	once sync.Once
}

// NewQueue creates a queue with the given buffer size and worker count
func NewQueue(exec *Executor, size, workers int, logger zerolog.Logger) *Queue {
	if size <= 0 {
		size = 64
	}
	if workers <= 0 {
		workers = 4
	}
	return &Queue{
		jobs:    make(chan job, size),
		exec:    exec,
		logger:  logger,
		workers: workers,
	}
}

// Start launches the worker pool. The context bounds in-flight HTTP
// attempts; workers exit when the queue is stopped.
func (q *Queue) Start(ctx context.Context) {
	for i := 0; i < q.workers; i++ {
		q.wg.Add(1)
		go q.worker(ctx)
	}
}

func (q *Queue) worker(ctx context.Context) {
	defer q.wg.Done()
	for j := range q.jobs {
		q.exec.Execute(ctx, j.delivery, j.config)
	}
}

/* Enqueue submits a delivery for execution. Never blocks: returns false
 * and logs when the buffer is full. Must not be called after Stop.
 */
func (q *Queue) Enqueue(d Delivery, cfg Config) bool {
	select {
	case q.jobs <- job{delivery: d, config: cfg}:
		return true
	default:
		q.logger.Warn().
			Str("delivery_id", d.ID).
			Str("webhook_id", cfg.ID).
			Str("event", d.Event.String()).
			Msg("delivery queue full, dropping job")
		return false
	}
}

// Len returns the number of queued jobs
func (q *Queue) Len() int {
	return len(q.jobs)
}

// Stop closes the intake and waits for the workers to drain the buffer,
// or until ctx expires
func (q *Queue) Stop(ctx context.Context) error {
	q.once.Do(func() { close(q.jobs) })

	done := make(chan struct{})
	go func() {
		q.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("draining delivery queue: %w", ctx.Err())
	}
}
