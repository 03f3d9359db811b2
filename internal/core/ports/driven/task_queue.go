package driven

import (
	"context"

	"github.com/auslex-labs/auslex-core/internal/core/domain"
)

// TaskQueue handles background task distribution to workers
type TaskQueue interface {
	// Enqueue adds a task to the queue for processing
	Enqueue(ctx context.Context, task *domain.Task) error

	// Dequeue blocks up to timeoutSeconds waiting for a task.
	// Returns (nil, nil) when no task is available.
	Dequeue(ctx context.Context, timeoutSeconds int) (*domain.Task, error)

	// Ack marks a task as successfully processed
	Ack(ctx context.Context, task *domain.Task) error

	// Nack records a failed attempt; the task may be redelivered
	Nack(ctx context.Context, task *domain.Task, reason string) error

	// Close releases queue resources
	Close() error
}
