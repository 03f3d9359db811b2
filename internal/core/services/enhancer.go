package services

import (
	"fmt"
	"strings"

	"github.com/auslex-labs/auslex-core/internal/core/domain"
)

// Enhance rewrites a response with the notices its validation requires:
// header disclaimers prefixed, inline disclaimers after the first
// paragraph, footer disclaimers appended, and a confidence line for
// high-risk answers. Enhancement is pure text assembly; it never re-runs
// validation.
func (s *complianceService) Enhance(response string, validation *domain.ValidationResult) string {
	if validation == nil {
		return response
	}
	enhanced := response

	if headers := validation.DisclaimersByPlacement(domain.PlacementHeader); len(headers) > 0 {
		parts := make([]string, len(headers))
		for i, d := range headers {
			parts[i] = "⚠️ " + d.Content
		}
		enhanced = strings.Join(parts, "\n\n") + "\n\n" + enhanced
	}

	if inlines := validation.DisclaimersByPlacement(domain.PlacementInline); len(inlines) > 0 {
		parts := make([]string, len(inlines))
		for i, d := range inlines {
			parts[i] = "📝 " + d.Content
		}
		inlineText := strings.Join(parts, "\n\n")

		paragraphs := strings.Split(enhanced, "\n\n")
		if len(paragraphs) > 1 {
			inserted := make([]string, 0, len(paragraphs)+1)
			inserted = append(inserted, paragraphs[0], inlineText)
			inserted = append(inserted, paragraphs[1:]...)
			enhanced = strings.Join(inserted, "\n\n")
		} else {
			enhanced = enhanced + "\n\n" + inlineText
		}
	}

	if footers := validation.DisclaimersByPlacement(domain.PlacementFooter); len(footers) > 0 {
		parts := make([]string, len(footers))
		for i, d := range footers {
			parts[i] = "ℹ️ " + d.Content
		}
		enhanced = enhanced + "\n\n" + strings.Join(parts, "\n\n")
	}

	if validation.OverallCompliance == domain.RiskHigh || validation.OverallCompliance == domain.RiskProfessionalAdvice {
		enhanced += fmt.Sprintf("\n\n🔍 Response Confidence: %.0f%% | Professional legal advice recommended",
			validation.ConfidenceScore*100)
	}

	return enhanced
}
