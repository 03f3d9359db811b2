package driving

import (
	"context"

	"github.com/auslex-labs/auslex-core/internal/core/domain"
)

// IndexingService manages corpus ingestion and index builds
type IndexingService interface {
	// Ingest loads documents into the corpus store, replacing any
	// existing corpus when replace is true
	Ingest(ctx context.Context, docs []*domain.Document, replace bool) (int, error)

	// BuildIndexes embeds the corpus and rebuilds the vector and lexical
	// indexes. Safe to call while searches are in flight.
	BuildIndexes(ctx context.Context, force bool) (*domain.IndexReport, error)

	// EnqueueRebuild schedules an index rebuild on the worker queue
	EnqueueRebuild(ctx context.Context, force bool) (*domain.Task, error)
}
