package driven

import (
	"context"

	"github.com/auslex-labs/auslex-core/internal/core/domain"
)

// DocumentStore holds the ingested legal corpus. Documents are immutable
// once saved; re-ingestion replaces the corpus wholesale.
type DocumentStore interface {
	// Save creates a document
	Save(ctx context.Context, doc *domain.Document) error

	// SaveBatch saves multiple documents in a transaction
	SaveBatch(ctx context.Context, docs []*domain.Document) error

	// Get retrieves a document by ID
	Get(ctx context.Context, id string) (*domain.Document, error)

	// List retrieves documents with pagination, ordered by ID for
	// reproducible iteration
	List(ctx context.Context, limit, offset int) ([]*domain.Document, error)

	// All returns the entire corpus, ordered by ID. Index builds and the
	// lexical fallback tier read the corpus through this.
	All(ctx context.Context) ([]*domain.Document, error)

	// Count returns total document count
	Count(ctx context.Context) (int, error)

	// DeleteAll removes the corpus ahead of re-ingestion
	DeleteAll(ctx context.Context) error
}
