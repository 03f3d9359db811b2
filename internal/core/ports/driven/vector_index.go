package driven

import "context"

// VectorMatch is a single nearest-neighbour hit from the vector index
type VectorMatch struct {
	ID       string
	Score    float64
	Metadata map[string]string
}

// VectorFilter restricts a vector query to records whose metadata matches
// every key/value exactly
type VectorFilter map[string]string

// VectorIndex is a nearest-neighbour store keyed by document id.
// Build-once, read-many: queries must never observe a partially-built index.
type VectorIndex interface {
	// Upsert stores one vector with its metadata
	Upsert(ctx context.Context, id string, vector []float32, metadata map[string]string) error

	// UpsertBatch stores multiple vectors
	UpsertBatch(ctx context.Context, ids []string, vectors [][]float32, metadata []map[string]string) error

	// Query returns the topK most similar records by cosine similarity,
	// optionally restricted by an exact-match metadata filter
	Query(ctx context.Context, vector []float32, topK int, filter VectorFilter) ([]VectorMatch, error)

	// Count returns the number of stored vectors
	Count(ctx context.Context) (int, error)

	// HealthCheck verifies the vector index is reachable
	HealthCheck(ctx context.Context) error
}
