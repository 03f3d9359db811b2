package worker

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/auslex-labs/auslex-core/internal/core/domain"
	"github.com/auslex-labs/auslex-core/internal/core/ports/driven/mocks"
	"github.com/auslex-labs/auslex-core/internal/core/services"
	"github.com/auslex-labs/auslex-core/internal/runtime"
)

// fakeLock is an in-memory DistributedLock for testing
type fakeLock struct {
	mu   sync.Mutex
	held map[string]bool
}

func newFakeLock() *fakeLock {
	return &fakeLock{held: make(map[string]bool)}
}

func (l *fakeLock) Acquire(ctx context.Context, name string, ttl time.Duration) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.held[name] {
		return false, nil
	}
	l.held[name] = true
	return true, nil
}

func (l *fakeLock) Release(ctx context.Context, name string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.held, name)
	return nil
}

func (l *fakeLock) Extend(ctx context.Context, name string, ttl time.Duration) error {
	return nil
}

type workerFixture struct {
	queue  *mocks.MockTaskQueue
	vector *mocks.MockVectorIndex
	lock   *fakeLock
	worker *Worker
}

func newWorkerFixture(t *testing.T, seedCorpus bool) *workerFixture {
	t.Helper()
	ctx := context.Background()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	store := mocks.NewMockDocumentStore()
	queue := mocks.NewMockTaskQueue()
	embedding := mocks.NewMockEmbeddingService()
	vector := mocks.NewMockVectorIndex()
	lock := newFakeLock()

	reg := runtime.NewServices(domain.NewRuntimeConfig("memory"))
	reg.SetEmbeddingService(embedding)
	reg.SetVectorIndex(vector)

	if seedCorpus {
		docs := []*domain.Document{
			{ID: "doc-1", Citation: "Act A s 1", Text: "First provision text.", Jurisdiction: domain.JurisdictionFederal, Type: domain.TypeLegislation},
			{ID: "doc-2", Citation: "Act B s 2", Text: "Second provision text.", Jurisdiction: domain.JurisdictionNSW, Type: domain.TypeLegislation},
		}
		if err := store.SaveBatch(ctx, docs); err != nil {
			t.Fatalf("save corpus: %v", err)
		}
	}

	indexer := services.NewIndexerService(store, queue, reg, logger)

	return &workerFixture{
		queue:  queue,
		vector: vector,
		lock:   lock,
		worker: NewWorker(Config{
			TaskQueue: queue,
			Indexer:   indexer,
			Lock:      lock,
			Logger:    logger,
		}),
	}
}

func TestProcessIndexCorpusTask(t *testing.T) {
	f := newWorkerFixture(t, true)
	ctx := context.Background()

	task := domain.NewIndexCorpusTask(true)
	f.worker.processTask(ctx, task, f.worker.logger)

	if len(f.queue.Acked()) != 1 {
		t.Fatalf("expected 1 acked task, got %d", len(f.queue.Acked()))
	}
	count, _ := f.vector.Count(ctx)
	if count != 2 {
		t.Errorf("expected 2 vectors after rebuild, got %d", count)
	}

	// The lock is released after the build
	f.lock.mu.Lock()
	held := f.lock.held[rebuildLockName]
	f.lock.mu.Unlock()
	if held {
		t.Error("expected rebuild lock released")
	}
}

func TestRebuildSkippedWhenLockHeld(t *testing.T) {
	f := newWorkerFixture(t, true)
	ctx := context.Background()

	if acquired, _ := f.lock.Acquire(ctx, rebuildLockName, time.Minute); !acquired {
		t.Fatal("setup: could not pre-acquire lock")
	}

	task := domain.NewIndexCorpusTask(true)
	f.worker.processTask(ctx, task, f.worker.logger)

	// Skipped rebuilds still ack: the other instance covers the work
	if len(f.queue.Acked()) != 1 {
		t.Fatalf("expected 1 acked task, got %d", len(f.queue.Acked()))
	}
	count, _ := f.vector.Count(ctx)
	if count != 0 {
		t.Errorf("expected no vectors, got %d", count)
	}
}

func TestEmptyCorpusNacks(t *testing.T) {
	f := newWorkerFixture(t, false)
	ctx := context.Background()

	task := domain.NewIndexCorpusTask(false)
	f.worker.processTask(ctx, task, f.worker.logger)

	if len(f.queue.Nacked()) != 1 {
		t.Fatalf("expected 1 nacked task, got %d", len(f.queue.Nacked()))
	}
}

func TestUnknownTaskTypeNacks(t *testing.T) {
	f := newWorkerFixture(t, true)
	ctx := context.Background()

	task := &domain.Task{ID: "t-1", Type: "mystery"}
	f.worker.processTask(ctx, task, f.worker.logger)

	if len(f.queue.Nacked()) != 1 {
		t.Fatalf("expected 1 nacked task, got %d", len(f.queue.Nacked()))
	}
}

func TestWorkerLoopDrainsQueue(t *testing.T) {
	f := newWorkerFixture(t, true)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := f.queue.Enqueue(ctx, domain.NewIndexCorpusTask(true)); err != nil {
		t.Fatalf("enqueue: %v", err)
	}

	if err := f.worker.Start(ctx); err != nil {
		t.Fatalf("start: %v", err)
	}
	defer f.worker.Stop()

	deadline := time.After(5 * time.Second)
	for len(f.queue.Acked()) == 0 {
		select {
		case <-deadline:
			t.Fatal("task was not processed in time")
		case <-time.After(10 * time.Millisecond):
		}
	}
}

func TestWorkerHealth(t *testing.T) {
	f := newWorkerFixture(t, false)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	health := f.worker.Health(ctx)
	if health.Running {
		t.Error("expected not running before Start")
	}

	if err := f.worker.Start(ctx); err != nil {
		t.Fatalf("start: %v", err)
	}
	health = f.worker.Health(ctx)
	if !health.Running || !health.QueueHealth {
		t.Errorf("unexpected health %+v", health)
	}
	f.worker.Stop()
}
