package driving

import (
	"context"

	"github.com/auslex-labs/auslex-core/internal/core/domain"
)

// SearchService is the retrieval API exposed to driving adapters
type SearchService interface {
	// Search runs the tiered hybrid retrieval pipeline for a query and
	// reports which tier produced the results
	Search(ctx context.Context, query string, opts domain.SearchOptions) (*domain.SearchResponse, error)

	// FindProvision locates a specific provision by section number and act
	// name without touching the statistical retrieval path. Returns
	// domain.ErrNotFound when no provision matches.
	FindProvision(ctx context.Context, section, actName string, jurisdiction domain.Jurisdiction) (*domain.Provision, error)

	// Status reports corpus size and which retrieval tiers are available
	Status(ctx context.Context) (*domain.SearchStatus, error)
}
