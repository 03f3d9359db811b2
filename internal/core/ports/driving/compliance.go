package driving

import (
	"context"

	"github.com/auslex-labs/auslex-core/internal/core/domain"
)

// ComplianceService validates generated answers against Australian legal
// information safety rules and rewrites them with the required notices
type ComplianceService interface {
	// Validate runs every compliance check against a response and
	// aggregates the outcome. Metadata carries optional source facts such
	// as the when_scraped timestamp used by the currency check; nil is
	// fine when no source is attached.
	Validate(ctx context.Context, response, query string, metadata map[string]string) (*domain.ValidationResult, error)

	// Enhance rewrites a response with the disclaimers and warnings a
	// validation produced
	Enhance(response string, validation *domain.ValidationResult) string
}
