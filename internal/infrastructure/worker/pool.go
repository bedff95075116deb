// Package worker runs dispatched report jobs on a bounded goroutine pool.
package worker

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"
)

var (
	// ErrPoolNotRunning is returned when work is enqueued before Start or
	// after Stop.
	ErrPoolNotRunning = errors.New("worker pool is not running")
	// ErrQueueFull is returned when the job queue has no free slot.
	ErrQueueFull = errors.New("worker queue is full")
)

// Job is one unit of background work.
type Job struct {
	ID   string
	Name string
	Run  func(ctx context.Context) error
}

// Config holds worker pool configuration
type Config struct {
	Workers     int
	QueueSize   int
	JobTimeout  time.Duration
	StopTimeout time.Duration
}

// DefaultConfig returns default worker pool configuration
func DefaultConfig() Config {
	return Config{
		Workers:     4,
		QueueSize:   100,
		JobTimeout:  10 * time.Minute,
		StopTimeout: 30 * time.Second,
	}
}

// Pool executes jobs on a fixed number of workers with a bounded queue.
type Pool struct {
	config Config
	logger *zap.Logger

	jobs      chan Job
	cancel    context.CancelFunc
	wg        sync.WaitGroup
	mu        sync.Mutex
	isRunning bool
}

// NewPool creates a new worker pool
func NewPool(config Config, logger *zap.Logger) *Pool {
	if config.Workers <= 0 {
		config.Workers = DefaultConfig().Workers
	}
	if config.QueueSize <= 0 {
		config.QueueSize = DefaultConfig().QueueSize
	}
	if config.JobTimeout <= 0 {
		config.JobTimeout = DefaultConfig().JobTimeout
	}
	return &Pool{
		config: config,
		logger: logger,
		jobs:   make(chan Job, config.QueueSize),
	}
}

// Start starts the pool's workers.
func (p *Pool) Start(ctx context.Context) error {
	p.mu.Lock()
	if p.isRunning {
		p.mu.Unlock()
		return nil
	}
	p.isRunning = true
	p.mu.Unlock()

	ctx, cancel := context.WithCancel(ctx)
	p.cancel = cancel

	for i := 0; i < p.config.Workers; i++ {
		p.wg.Add(1)
		go p.worker(ctx, i)
	}

	p.logger.Info("Worker pool started",
		zap.Int("workers", p.config.Workers),
		zap.Duration("job_timeout", p.config.JobTimeout),
	)
	return nil
}

// Stop gracefully stops the pool, waiting for in-flight jobs up to the
// context deadline. The workers' context stays live during the drain so
// running jobs can still record their outcome; it is canceled only when
// the deadline expires.
func (p *Pool) Stop(ctx context.Context) error {
	p.mu.Lock()
	if !p.isRunning {
		p.mu.Unlock()
		return nil
	}
	p.isRunning = false
	close(p.jobs)
	p.mu.Unlock()

	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		if p.cancel != nil {
			p.cancel()
		}
		p.logger.Info("Worker pool stopped gracefully")
		return nil
	case <-ctx.Done():
		if p.cancel != nil {
			p.cancel()
		}
		p.logger.Warn("Worker pool stop timed out")
		return ctx.Err()
	}
}

// Enqueue submits a job for execution. It implements the orchestrator's
// TaskQueue.
func (p *Pool) Enqueue(name, id string, run func(ctx context.Context) error) error {
	// The submit stays under the lock so Stop cannot close the channel
	// between the running check and the send.
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.isRunning {
		return ErrPoolNotRunning
	}

	select {
	case p.jobs <- Job{ID: id, Name: name, Run: run}:
		p.logger.Debug("Job enqueued",
			zap.String("job_id", id),
			zap.String("job_name", name),
		)
		return nil
	default:
		return ErrQueueFull
	}
}

// worker processes jobs from the queue
func (p *Pool) worker(ctx context.Context, workerID int) {
	defer p.wg.Done()

	for {
		select {
		case <-ctx.Done():
			p.logger.Debug("Worker stopping", zap.Int("worker_id", workerID))
			return
		case job, ok := <-p.jobs:
			if !ok {
				return
			}
			p.processJob(ctx, job, workerID)
		}
	}
}

// processJob executes a single job with the configured timeout
func (p *Pool) processJob(ctx context.Context, job Job, workerID int) {
	jobCtx, cancel := context.WithTimeout(ctx, p.config.JobTimeout)
	defer cancel()

	start := time.Now()
	p.logger.Info("Processing job",
		zap.Int("worker_id", workerID),
		zap.String("job_id", job.ID),
		zap.String("job_name", job.Name),
	)

	if err := job.Run(jobCtx); err != nil {
		p.logger.Error("Job failed",
			zap.Int("worker_id", workerID),
			zap.String("job_id", job.ID),
			zap.String("job_name", job.Name),
			zap.Duration("elapsed", time.Since(start)),
			zap.Error(err),
		)
		return
	}

	p.logger.Info("Job completed",
		zap.Int("worker_id", workerID),
		zap.String("job_id", job.ID),
		zap.String("job_name", job.Name),
		zap.Duration("elapsed", time.Since(start)),
	)
}
