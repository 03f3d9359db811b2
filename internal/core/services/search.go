package services

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/auslex-labs/auslex-core/internal/core/domain"
	"github.com/auslex-labs/auslex-core/internal/core/ports/driven"
	"github.com/auslex-labs/auslex-core/internal/core/ports/driving"
	"github.com/auslex-labs/auslex-core/internal/runtime"
)

// Ensure searchService implements SearchService
var _ driving.SearchService = (*searchService)(nil)

// searchService implements the tiered retrieval pipeline. The best
// available tier is chosen per request, so provider outages degrade
// result quality rather than failing the search.
type searchService struct {
	documentStore driven.DocumentStore
	services      *runtime.Services
	config        domain.SearchConfig
	logger        *slog.Logger
}

// NewSearchService creates a new SearchService.
// Embedding and vector backends are accessed dynamically via runtime.Services.
func NewSearchService(
	documentStore driven.DocumentStore,
	services *runtime.Services,
	config domain.SearchConfig,
	logger *slog.Logger,
) driving.SearchService {
	return &searchService{
		documentStore: documentStore,
		services:      services,
		config:        config,
		logger:        logger,
	}
}

// Search runs the best available retrieval tier for the query
func (s *searchService) Search(ctx context.Context, query string, opts domain.SearchOptions) (*domain.SearchResponse, error) {
	start := time.Now()

	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("%w: empty query", domain.ErrInvalidInput)
	}

	if opts.TopK < 0 {
		return nil, fmt.Errorf("%w: negative top_k", domain.ErrInvalidInput)
	}
	if opts.TopK == 0 {
		opts.TopK = s.config.TopK
	}
	if opts.TopK > 100 {
		opts.TopK = 100
	}

	count, err := s.documentStore.Count(ctx)
	if err != nil {
		return nil, err
	}

	method := s.services.Config().EffectiveSearchMethod()

	// An unavailable corpus is not a caller error: return an empty list so
	// the research layer can produce its honest no-results answer
	if count == 0 {
		return &domain.SearchResponse{
			Query:   query,
			Method:  method,
			Results: []domain.SearchResult{},
			Took:    time.Since(start),
		}, nil
	}

	var results []domain.SearchResult
	switch method {
	case domain.SearchMethodHybrid:
		results, err = s.hybridSearch(ctx, query, opts)
		if err != nil {
			s.logger.Warn("hybrid tier failed, degrading to lexical",
				"query", query, "error", err)
			method = domain.SearchMethodBM25Fallback
			results, err = s.lexicalSearch(ctx, query, opts)
		}
	case domain.SearchMethodVectorOnly:
		results, err = s.vectorSearch(ctx, query, opts)
		if err != nil {
			s.logger.Warn("vector tier failed, degrading to lexical",
				"query", query, "error", err)
			method = domain.SearchMethodBM25Fallback
			results, err = s.lexicalSearch(ctx, query, opts)
		}
	default:
		results, err = s.lexicalSearch(ctx, query, opts)
	}
	if err != nil {
		return nil, err
	}

	return &domain.SearchResponse{
		Query:   query,
		Method:  method,
		Results: results,
		Took:    time.Since(start),
	}, nil
}

// hybridSearch fuses dense similarity with lexical relevance. The vector
// tier selects candidates; each candidate is then rescored as a weighted
// combination of both signals.
func (s *searchService) hybridSearch(ctx context.Context, query string, opts domain.SearchOptions) ([]domain.SearchResult, error) {
	matches, err := s.vectorCandidates(ctx, query, opts)
	if err != nil {
		return nil, err
	}

	lexIndex := s.services.LexicalIndex()

	results := make([]domain.SearchResult, 0, len(matches))
	for _, m := range matches {
		lexScore := lexIndex.Score(query, m.ID)
		hybrid := s.config.VectorWeight*m.Score + s.config.LexicalWeight*lexScore

		result, err := s.buildResult(ctx, m.ID, m.Metadata, domain.SearchMethodHybrid)
		if err != nil {
			continue
		}
		result.Score = hybrid
		result.EmbeddingScore = m.Score
		result.BM25Score = lexScore
		result.HybridScore = hybrid
		results = append(results, *result)
	}

	sortResults(results)
	return results, nil
}

// vectorSearch ranks on dense similarity alone, used when the lexical
// index has not been built yet
func (s *searchService) vectorSearch(ctx context.Context, query string, opts domain.SearchOptions) ([]domain.SearchResult, error) {
	matches, err := s.vectorCandidates(ctx, query, opts)
	if err != nil {
		return nil, err
	}

	results := make([]domain.SearchResult, 0, len(matches))
	for _, m := range matches {
		result, err := s.buildResult(ctx, m.ID, m.Metadata, domain.SearchMethodVectorOnly)
		if err != nil {
			continue
		}
		result.Score = m.Score
		result.EmbeddingScore = m.Score
		results = append(results, *result)
	}

	sortResults(results)
	return results, nil
}

// lexicalSearch is the last-resort tier: TF-IDF over the corpus, no
// external providers involved
func (s *searchService) lexicalSearch(ctx context.Context, query string, opts domain.SearchOptions) ([]domain.SearchResult, error) {
	lexIndex := s.services.LexicalIndex()
	if !lexIndex.Ready() {
		return nil, domain.ErrIndexNotBuilt
	}

	// Unbounded first, filters are applied before the topK cut
	hits, err := lexIndex.Search(query, 0, s.config.MinLexicalScore)
	if err != nil {
		return nil, err
	}

	results := make([]domain.SearchResult, 0, opts.TopK)
	for _, h := range hits {
		doc, err := s.documentStore.Get(ctx, h.DocumentID)
		if err != nil {
			continue
		}
		if opts.Filters != nil && !opts.Filters.Matches(doc) {
			continue
		}
		results = append(results, domain.SearchResult{
			DocumentID:   doc.ID,
			Score:        h.Score,
			Content:      truncate(doc.Text, s.config.PreviewLength),
			Metadata:     doc.Metadata(),
			SearchMethod: domain.SearchMethodBM25Fallback,
			BM25Score:    h.Score,
		})
		if len(results) >= opts.TopK {
			break
		}
	}
	return results, nil
}

// vectorCandidates embeds the query and fetches nearest neighbours above
// the similarity threshold. Both provider calls run under the configured
// timeout; a timeout degrades the tier the same way an error does.
func (s *searchService) vectorCandidates(ctx context.Context, query string, opts domain.SearchOptions) ([]driven.VectorMatch, error) {
	embedding := s.services.EmbeddingService()
	vectorIndex := s.services.VectorIndex()
	if embedding == nil || vectorIndex == nil {
		return nil, domain.ErrProviderUnavailable
	}

	ctx, cancel := context.WithTimeout(ctx, s.config.ProviderTimeout)
	defer cancel()

	queryVector, err := embedding.EmbedQuery(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}

	matches, err := vectorIndex.Query(ctx, queryVector, opts.TopK, vectorFilter(opts.Filters))
	if err != nil {
		return nil, fmt.Errorf("vector query: %w", err)
	}

	kept := matches[:0]
	for _, m := range matches {
		if m.Score >= s.config.SimilarityThreshold {
			kept = append(kept, m)
		}
	}
	return kept, nil
}

// vectorFilter translates search filters into the exact-match metadata
// filter the vector index understands, nil when nothing is set
func vectorFilter(f *domain.SearchFilters) driven.VectorFilter {
	if f == nil || f.IsZero() {
		return nil
	}
	vf := driven.VectorFilter{}
	if f.Jurisdiction != "" {
		vf["jurisdiction"] = f.Jurisdiction
	}
	if f.Type != "" {
		vf["type"] = f.Type
	}
	if f.Source != "" {
		vf["source"] = f.Source
	}
	return vf
}

// buildResult assembles a SearchResult from the stored document
func (s *searchService) buildResult(ctx context.Context, id string, metadata map[string]string, method domain.SearchMethod) (*domain.SearchResult, error) {
	doc, err := s.documentStore.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if metadata == nil {
		metadata = doc.Metadata()
	}
	return &domain.SearchResult{
		DocumentID:   id,
		Content:      truncate(doc.Text, s.config.PreviewLength),
		Metadata:     metadata,
		SearchMethod: method,
	}, nil
}

// sectionPatterns builds the recognisers for one section number. Statutes
// cite sections as "section 18", "s 18", "sec 18" or a bare "18." at the
// start of provision text.
func sectionPatterns(section string) []*regexp.Regexp {
	quoted := regexp.QuoteMeta(section)
	return []*regexp.Regexp{
		regexp.MustCompile(`\bsection\s+` + quoted + `\b`),
		regexp.MustCompile(`\bs\s*` + quoted + `\b`),
		regexp.MustCompile(`\bsec\s+` + quoted + `\b`),
		regexp.MustCompile(`\b` + quoted + `\.`),
	}
}

// normalizeActName canonicalises act names for containment matching:
// "Fair Work Act" and "fairwork" both reduce to "fairwork"
func normalizeActName(name string) string {
	n := strings.ToLower(strings.TrimSpace(name))
	n = strings.ReplaceAll(n, " act", "")
	n = strings.ReplaceAll(n, " ", "")
	return n
}

// FindProvision locates a provision by deterministic pattern matching,
// bypassing the statistical retrieval tiers entirely
func (s *searchService) FindProvision(ctx context.Context, section, actName string, jurisdiction domain.Jurisdiction) (*domain.Provision, error) {
	section = strings.TrimSpace(section)
	if section == "" {
		return nil, fmt.Errorf("%w: empty section", domain.ErrInvalidInput)
	}

	docs, err := s.documentStore.All(ctx)
	if err != nil {
		return nil, err
	}
	if len(docs) == 0 {
		return nil, domain.ErrCorpusEmpty
	}

	patterns := sectionPatterns(strings.ToLower(section))
	wantAct := normalizeActName(actName)

	// Corpus iteration is id-ordered, so the first match is stable
	for _, doc := range docs {
		if jurisdiction != "" && jurisdiction != domain.JurisdictionUnknown && doc.Jurisdiction != jurisdiction {
			continue
		}
		if wantAct != "" && !strings.Contains(normalizeActName(doc.Citation), wantAct) {
			continue
		}

		content := strings.ToLower(doc.SearchText())
		for _, p := range patterns {
			if p.MatchString(content) {
				return &domain.Provision{
					DocumentID:   doc.ID,
					Text:         truncate(doc.Text, s.config.ExcerptLength),
					Citation:     doc.Citation,
					Jurisdiction: doc.Jurisdiction,
					Type:         doc.Type,
					Date:         doc.Date,
					URL:          doc.URL,
					Source:       doc.Source,
				}, nil
			}
		}
	}

	return nil, domain.ErrNotFound
}

// Status reports corpus size and which retrieval tiers are available
func (s *searchService) Status(ctx context.Context) (*domain.SearchStatus, error) {
	count, err := s.documentStore.Count(ctx)
	if err != nil {
		return nil, err
	}
	config := s.services.Config()
	return &domain.SearchStatus{
		Documents:       count,
		VectorReady:     config.VectorAvailable(),
		EmbeddingsReady: config.EmbeddingAvailable(),
		LexicalReady:    config.LexicalReady(),
	}, nil
}

// sortResults orders by score descending with document id as the
// deterministic tie-break
func sortResults(results []domain.SearchResult) {
	sort.Slice(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		return results[i].DocumentID < results[j].DocumentID
	})
}

// truncate bounds text to max characters, marking the cut
func truncate(text string, max int) string {
	if max <= 0 || len(text) <= max {
		return text
	}
	return text[:max] + "..."
}
