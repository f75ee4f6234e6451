// Package batch runs many independent Pipeline.Run invocations
// concurrently. Spec §5 allows "multiple transcripts may be processed
// concurrently by running multiple independent invocations" with "no
// coordination between them" — this is the worker-pool that does that,
// adapted from the teacher's internal/core/async.ProcessorQueue (which
// fanned out file-processing jobs to a fixed worker count the same way).
package batch

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/joseph-ayodele/receipt-interpreter/internal/core/textparse"
	"github.com/joseph-ayodele/receipt-interpreter/internal/receipt"
)

// Job is one transcript to interpret. ID is caller-assigned (e.g. a
// filename) and is only used for result correlation and logging — it
// never enters the Receipt schema.
type Job struct {
	ID         string
	Transcript string
	Today      string
}

// Result pairs a Job's ID with its output. Err is set to
// context.DeadlineExceeded when the job ran past the queue's per-job
// timeout; the pipeline itself never returns an error.
type Result struct {
	ID      string
	Receipt receipt.Receipt
	Err     error
}

// Option configures a Queue.
type Option func(*Queue)

func WithWorkers(n int) Option {
	return func(q *Queue) {
		if n > 0 {
			q.workers = n
		}
	}
}

func WithQueueSize(n int) Option {
	return func(q *Queue) {
		if n > 0 {
			q.ch = make(chan Job, n)
		}
	}
}

func WithJobTimeout(d time.Duration) Option {
	return func(q *Queue) {
		if d > 0 {
			q.timeout = d
		}
	}
}

// Queue fans Jobs out across a fixed pool of goroutines, each running
// the same stateless Pipeline (spec §5: the pipeline carries no mutable
// state, so sharing one instance across workers is safe).
type Queue struct {
	pipeline *textparse.Pipeline
	logger   *slog.Logger
	workers  int
	timeout  time.Duration

	ch      chan Job
	results chan Result
	wg      sync.WaitGroup
	once    sync.Once

	mu     sync.Mutex
	closed bool
}

func NewQueue(pipeline *textparse.Pipeline, logger *slog.Logger, opts ...Option) *Queue {
	q := &Queue{
		pipeline: pipeline,
		logger:   logger,
		workers:  4,
		timeout:  30 * time.Second,
		ch:       make(chan Job, 256),
		results:  make(chan Result, 256),
	}
	for _, o := range opts {
		o(q)
	}
	q.start()
	return q
}

func (q *Queue) start() {
	q.once.Do(func() {
		for i := 0; i < q.workers; i++ {
			q.wg.Add(1)
			go func(workerID int) {
				defer q.wg.Done()
				q.logger.Info("batch worker started", "worker_id", workerID)

				for job := range q.ch {
					r := q.runJob(job)
					q.results <- r
				}

				q.logger.Info("batch worker stopped", "worker_id", workerID)
			}(i + 1)
		}
	})
}

// runJob bounds a single invocation by wall-clock time per spec §5
// ("callers that need to bound latency must enforce a wall-clock limit
// around the invocation"); the pipeline itself has no suspension
// points, so the timeout only guards against pathological input.
func (q *Queue) runJob(job Job) Result {
	done := make(chan receipt.Receipt, 1)
	go func() { done <- q.pipeline.Run(job.Transcript, job.Today) }()

	select {
	case rec := <-done:
		return Result{ID: job.ID, Receipt: rec}
	case <-time.After(q.timeout):
		q.logger.Warn("batch job exceeded timeout", "id", job.ID)
		return Result{ID: job.ID, Err: context.DeadlineExceeded}
	}
}

// Enqueue submits a job, applying backpressure if the queue is full.
func (q *Queue) Enqueue(job Job) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		q.logger.Warn("cannot enqueue: queue is shutting down", "id", job.ID)
		return nil
	}
	select {
	case q.ch <- job:
	default:
		q.logger.Warn("queue full, applying backpressure", "id", job.ID)
		q.ch <- job
	}
	return nil
}

// Results returns the channel of completed jobs. Callers should drain
// it until it closes (after Shutdown completes and all workers exit).
func (q *Queue) Results() <-chan Result { return q.results }

// Shutdown closes the input channel, waits for in-flight jobs to
// drain (or ctx to expire), then closes Results.
func (q *Queue) Shutdown(ctx context.Context) {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return
	}
	q.closed = true
	close(q.ch)
	q.mu.Unlock()

	done := make(chan struct{})
	go func() { defer close(done); q.wg.Wait() }()

	select {
	case <-ctx.Done():
		q.logger.Warn("shutdown interrupted by context")
	case <-done:
		q.logger.Info("queue drained, shutdown complete")
	}
	close(q.results)
}
