package worker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/auslex-labs/auslex-core/internal/core/domain"
	"github.com/auslex-labs/auslex-core/internal/core/ports/driven"
	"github.com/auslex-labs/auslex-core/internal/core/ports/driving"
)

const (
	// rebuildLockName guards index rebuilds across worker instances
	rebuildLockName = "index:rebuild"

	// rebuildLockTTL covers a full corpus embedding pass; the lock is
	// extended while the build runs
	rebuildLockTTL = 10 * time.Minute
)

// Worker processes tasks from the task queue.
// Index rebuilds run under a distributed lock so two instances never
// embed the same corpus concurrently.
type Worker struct {
	taskQueue driven.TaskQueue
	indexer   driving.IndexingService
	lock      driven.DistributedLock
	logger    *slog.Logger

	// Configuration
	concurrency    int
	dequeueTimeout int // seconds

	// Internal state
	mu      sync.RWMutex
	running bool
	stopCh  chan struct{}
	doneCh  chan struct{}
}

// Config holds configuration for the worker.
type Config struct {
	TaskQueue driven.TaskQueue
	Indexer   driving.IndexingService
	Lock      driven.DistributedLock // optional, nil disables cross-instance locking
	Logger    *slog.Logger
	// Concurrency is the number of concurrent task processors
	Concurrency int
	// DequeueTimeout is seconds to wait for a task before checking again
	DequeueTimeout int
}

// NewWorker creates a new task worker.
func NewWorker(cfg Config) *Worker {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	concurrency := cfg.Concurrency
	if concurrency <= 0 {
		concurrency = 1
	}

	dequeueTimeout := cfg.DequeueTimeout
	if dequeueTimeout <= 0 {
		dequeueTimeout = 5
	}

	return &Worker{
		taskQueue:      cfg.TaskQueue,
		indexer:        cfg.Indexer,
		lock:           cfg.Lock,
		logger:         logger,
		concurrency:    concurrency,
		dequeueTimeout: dequeueTimeout,
	}
}

// Start begins the worker loop.
// It runs until Stop is called or context is cancelled.
func (w *Worker) Start(ctx context.Context) error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return nil
	}
	w.running = true
	w.stopCh = make(chan struct{})
	w.doneCh = make(chan struct{})
	w.mu.Unlock()

	w.logger.Info("worker starting",
		"concurrency", w.concurrency,
		"dequeue_timeout", w.dequeueTimeout,
	)

	var wg sync.WaitGroup
	for i := 0; i < w.concurrency; i++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			w.processLoop(ctx, workerID)
		}(i)
	}

	go func() {
		wg.Wait()
		close(w.doneCh)
	}()

	return nil
}

// Stop gracefully stops the worker.
func (w *Worker) Stop() {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return
	}
	close(w.stopCh)
	w.mu.Unlock()

	<-w.doneCh

	w.mu.Lock()
	w.running = false
	w.mu.Unlock()

	w.logger.Info("worker stopped")
}

// Wait blocks until the worker stops.
func (w *Worker) Wait() {
	<-w.doneCh
}

// processLoop is the main processing loop for a worker goroutine.
func (w *Worker) processLoop(ctx context.Context, workerID int) {
	logger := w.logger.With("worker_id", workerID)
	logger.Info("worker goroutine started")

	for {
		select {
		case <-ctx.Done():
			logger.Info("worker context cancelled")
			return
		case <-w.stopCh:
			logger.Info("worker stop signal received")
			return
		default:
		}

		task, err := w.taskQueue.Dequeue(ctx, w.dequeueTimeout)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				continue
			}
			logger.Error("failed to dequeue task", "error", err)
			time.Sleep(time.Second) // Back off on error
			continue
		}

		if task == nil {
			continue
		}

		w.processTask(ctx, task, logger)
	}
}

// processTask processes a single task.
func (w *Worker) processTask(ctx context.Context, task *domain.Task, logger *slog.Logger) {
	logger = logger.With("task_id", task.ID, "task_type", task.Type, "attempt", task.Attempts)
	logger.Info("processing task")

	startTime := time.Now()
	var err error

	switch task.Type {
	case domain.TaskTypeIndexCorpus:
		err = w.handleIndexCorpus(ctx, task, logger)
	default:
		err = fmt.Errorf("unknown task type: %s", task.Type)
	}

	duration := time.Since(startTime)

	if err != nil {
		logger.Error("task failed",
			"duration", duration,
			"error", err,
		)

		if nackErr := w.taskQueue.Nack(ctx, task, err.Error()); nackErr != nil {
			logger.Error("failed to nack task", "nack_error", nackErr)
		}
		return
	}

	logger.Info("task completed", "duration", duration)

	if ackErr := w.taskQueue.Ack(ctx, task); ackErr != nil {
		logger.Error("failed to ack task", "ack_error", ackErr)
	}
}

// handleIndexCorpus handles an index_corpus task.
func (w *Worker) handleIndexCorpus(ctx context.Context, task *domain.Task, logger *slog.Logger) error {
	force := task.Payload["force"] == "true"

	if w.lock != nil {
		acquired, err := w.lock.Acquire(ctx, rebuildLockName, rebuildLockTTL)
		if err != nil {
			return fmt.Errorf("acquire rebuild lock: %w", err)
		}
		if !acquired {
			// Another instance is already rebuilding the same corpus
			logger.Info("rebuild already in progress elsewhere, skipping")
			return nil
		}
		defer func() {
			if err := w.lock.Release(context.Background(), rebuildLockName); err != nil {
				logger.Warn("failed to release rebuild lock", "error", err)
			}
		}()

		stopExtend := w.keepLockAlive(ctx, logger)
		defer stopExtend()
	}

	report, err := w.indexer.BuildIndexes(ctx, force)
	if err != nil {
		return err
	}

	logger.Info("index rebuild finished",
		"documents", report.Documents,
		"embedded", report.Embedded,
		"skipped", report.Skipped,
		"took", report.Took,
	)
	return nil
}

// keepLockAlive extends the rebuild lock at half its TTL until the
// returned stop function is called.
func (w *Worker) keepLockAlive(ctx context.Context, logger *slog.Logger) func() {
	done := make(chan struct{})
	go func() {
		ticker := time.NewTicker(rebuildLockTTL / 2)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ctx.Done():
				return
			case <-ticker.C:
				if err := w.lock.Extend(ctx, rebuildLockName, rebuildLockTTL); err != nil {
					logger.Warn("failed to extend rebuild lock", "error", err)
				}
			}
		}
	}()
	return func() { close(done) }
}

// Health returns health status of the worker.
type Health struct {
	Running     bool   `json:"running"`
	QueueHealth bool   `json:"queue_health"`
	Error       string `json:"error,omitempty"`
}

// Health returns the health status of the worker.
func (w *Worker) Health(ctx context.Context) Health {
	w.mu.RLock()
	running := w.running
	w.mu.RUnlock()

	health := Health{
		Running: running,
	}

	if pinger, ok := w.taskQueue.(interface{ Ping(context.Context) error }); ok {
		if err := pinger.Ping(ctx); err != nil {
			health.Error = err.Error()
		} else {
			health.QueueHealth = true
		}
	} else {
		health.QueueHealth = true
	}

	return health
}
