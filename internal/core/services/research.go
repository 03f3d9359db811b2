package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/auslex-labs/auslex-core/internal/core/domain"
	"github.com/auslex-labs/auslex-core/internal/core/ports/driving"
	"github.com/auslex-labs/auslex-core/internal/runtime"
)

// Ensure researchService implements ResearchService
var _ driving.ResearchService = (*researchService)(nil)

const researchSystemPrompt = `You are an expert Australian legal assistant. Use the provided legal documents to answer the user's question accurately and comprehensively.

IMPORTANT GUIDELINES:
1. Base your answer primarily on the provided documents
2. Cite specific legislation, cases, or provisions when relevant
3. Clearly distinguish between established law and commentary
4. Note any limitations or areas requiring professional legal advice
5. If the documents don't fully answer the question, acknowledge this
6. Use clear, accessible language while maintaining legal accuracy

Always include a disclaimer that this is general information only and not legal advice.`

const noResultsAnswer = "I couldn't find relevant legal information for your query. Please try rephrasing your question or contact a legal professional."

// contextDocuments caps how many retrieved passages feed the prompt
const contextDocuments = 5

// researchService answers research questions end to end: retrieve,
// generate, validate, enhance. Every answer that leaves this service has
// been through compliance gating.
type researchService struct {
	search     driving.SearchService
	compliance driving.ComplianceService
	services   *runtime.Services
	logger     *slog.Logger
}

// NewResearchService creates a new ResearchService
func NewResearchService(
	search driving.SearchService,
	compliance driving.ComplianceService,
	services *runtime.Services,
	logger *slog.Logger,
) driving.ResearchService {
	return &researchService{
		search:     search,
		compliance: compliance,
		services:   services,
		logger:     logger,
	}
}

// Answer produces a compliance-gated answer for a research question
func (s *researchService) Answer(ctx context.Context, question string, opts domain.SearchOptions) (*domain.ResearchAnswer, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return nil, fmt.Errorf("%w: empty question", domain.ErrInvalidInput)
	}

	response, err := s.search.Search(ctx, question, opts)
	if err != nil {
		return nil, err
	}

	// Honest empty answer rather than generation without grounding
	if len(response.Results) == 0 {
		return s.gate(ctx, &domain.ResearchAnswer{
			Answer:     noResultsAnswer,
			Confidence: domain.ConfidenceLow,
			Sources:    []string{},
			Method:     response.Method,
		}, question, nil)
	}

	completion := s.services.CompletionService()
	if completion == nil {
		return nil, fmt.Errorf("%w: no completion provider configured", domain.ErrProviderUnavailable)
	}

	top := response.Results
	if len(top) > contextDocuments {
		top = top[:contextDocuments]
	}

	sources := make([]string, 0, len(top))
	seen := make(map[string]struct{})
	var contextText strings.Builder
	for i, result := range top {
		fmt.Fprintf(&contextText, "Document %d (Relevance: %.2f):\n%s\n\n", i+1, result.Score, result.Content)
		citation := result.Metadata["citation"]
		if citation == "" {
			citation = "Unknown citation"
		}
		if _, ok := seen[citation]; !ok {
			seen[citation] = struct{}{}
			sources = append(sources, citation)
		}
	}

	userPrompt := fmt.Sprintf("Query: %s\n\nRelevant Legal Documents:\n%s\nPlease provide a comprehensive answer based on the provided documents.",
		question, contextText.String())

	answer, err := completion.Complete(ctx, researchSystemPrompt, userPrompt)
	if err != nil {
		s.logger.Error("completion failed", "question", question, "error", err)
		return nil, fmt.Errorf("generate answer: %w", err)
	}

	// The top result carries the source facts the currency check reads,
	// such as when the document was scraped
	return s.gate(ctx, &domain.ResearchAnswer{
		Answer:        answer,
		Confidence:    retrievalConfidence(response.Results),
		Sources:       sources,
		Method:        response.Method,
		DocumentsUsed: len(top),
	}, question, top[0].Metadata)
}

// gate runs compliance validation over a drafted answer and rewrites it
// with the required notices. No answer leaves the service unvalidated.
func (s *researchService) gate(ctx context.Context, draft *domain.ResearchAnswer, question string, metadata map[string]string) (*domain.ResearchAnswer, error) {
	validation, err := s.compliance.Validate(ctx, draft.Answer, question, metadata)
	if err != nil {
		return nil, fmt.Errorf("validate answer: %w", err)
	}
	draft.Answer = s.compliance.Enhance(draft.Answer, validation)
	draft.Compliance = validation
	return draft, nil
}

// retrievalConfidence grades retrieval quality from the top score and
// result count
func retrievalConfidence(results []domain.SearchResult) domain.ResearchConfidence {
	if len(results) == 0 {
		return domain.ConfidenceLow
	}
	topScore := results[0].Score
	switch {
	case topScore >= 0.8 && len(results) >= 3:
		return domain.ConfidenceHigh
	case topScore >= 0.6 && len(results) >= 2:
		return domain.ConfidenceMedium
	default:
		return domain.ConfidenceLow
	}
}
