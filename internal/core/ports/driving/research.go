package driving

import (
	"context"

	"github.com/auslex-labs/auslex-core/internal/core/domain"
)

// ResearchService answers legal research questions end to end:
// retrieve, generate, validate, enhance
type ResearchService interface {
	// Answer produces a compliance-gated answer for a research question
	Answer(ctx context.Context, question string, opts domain.SearchOptions) (*domain.ResearchAnswer, error)
}
