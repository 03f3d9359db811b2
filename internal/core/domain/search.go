package domain

import "time"

// SearchMethod records which retrieval tier produced a result
type SearchMethod string

const (
	SearchMethodVectorOnly   SearchMethod = "vector_only"   // embedding similarity only
	SearchMethodHybrid       SearchMethod = "hybrid"        // embedding + lexical fusion (preferred)
	SearchMethodBM25Fallback SearchMethod = "bm25_fallback" // TF-IDF only, no vector backend
)

// SearchConfig holds the tunable retrieval parameters. The hybrid weights and
// thresholds are untuned defaults carried over from the corpus pipeline, so
// they live in configuration rather than as literals in the ranking code.
type SearchConfig struct {
	// TopK is the default number of results when the caller does not specify one
	TopK int `json:"top_k"`

	// SimilarityThreshold is the minimum cosine similarity for vector matches
	SimilarityThreshold float64 `json:"similarity_threshold"`

	// VectorWeight and LexicalWeight combine the two sub-scores in hybrid
	// ranking: hybrid = VectorWeight*vector + LexicalWeight*lexical
	VectorWeight  float64 `json:"vector_weight"`
	LexicalWeight float64 `json:"lexical_weight"`

	// MinLexicalScore is the relevance cutoff for the TF-IDF fallback tier.
	// Lexical cosine scores run much lower than dense-vector cosines, so this
	// is deliberately small.
	MinLexicalScore float64 `json:"min_lexical_score"`

	// PreviewLength bounds SearchResult.Content in characters
	PreviewLength int `json:"preview_length"`

	// ExcerptLength bounds provision lookup text in characters
	ExcerptLength int `json:"excerpt_length"`

	// ProviderTimeout bounds each embedding/vector-index call. On timeout the
	// tier downgrades exactly as it would on a provider error.
	ProviderTimeout time.Duration `json:"provider_timeout"`
}

// DefaultSearchConfig returns the standard retrieval parameters
func DefaultSearchConfig() SearchConfig {
	return SearchConfig{
		TopK:                10,
		SimilarityThreshold: 0.75,
		VectorWeight:        0.7,
		LexicalWeight:       0.3,
		MinLexicalScore:     0.01,
		PreviewLength:       2000,
		ExcerptLength:       3000,
		ProviderTimeout:     15 * time.Second,
	}
}

// SearchFilters restricts retrieval by exact metadata match
type SearchFilters struct {
	Jurisdiction string `json:"jurisdiction,omitempty"`
	Type         string `json:"type,omitempty"`
	Source       string `json:"source,omitempty"`
}

// IsZero reports whether no filter is set
func (f SearchFilters) IsZero() bool {
	return f.Jurisdiction == "" && f.Type == "" && f.Source == ""
}

// Matches reports whether a document satisfies every set filter
func (f SearchFilters) Matches(doc *Document) bool {
	if f.Jurisdiction != "" && string(doc.Jurisdiction) != f.Jurisdiction {
		return false
	}
	if f.Type != "" && string(doc.Type) != f.Type {
		return false
	}
	if f.Source != "" && doc.Source != f.Source {
		return false
	}
	return true
}

// SearchOptions configures a search request
type SearchOptions struct {
	TopK    int            `json:"top_k"`
	Filters *SearchFilters `json:"filters,omitempty"`
}

// SearchResult is a single ranked passage. Score always equals whichever of
// the sub-scores ranked it, so callers can sort on Score alone.
type SearchResult struct {
	DocumentID     string            `json:"document_id"`
	Score          float64           `json:"score"`
	Content        string            `json:"content"`
	Metadata       map[string]string `json:"metadata"`
	SearchMethod   SearchMethod      `json:"search_method"`
	EmbeddingScore float64           `json:"embedding_score,omitempty"`
	BM25Score      float64           `json:"bm25_score,omitempty"`
	HybridScore    float64           `json:"hybrid_score,omitempty"`
}

// SearchResponse wraps a ranked result list with query echo and timing
type SearchResponse struct {
	Query   string         `json:"query"`
	Method  SearchMethod   `json:"method"`
	Results []SearchResult `json:"results"`
	Took    time.Duration  `json:"took" swaggertype:"integer" example:"1500000"`
}

// SearchStatus reports corpus size and which retrieval tiers are available
type SearchStatus struct {
	Documents       int  `json:"documents"`
	VectorReady     bool `json:"vector_ready"`
	EmbeddingsReady bool `json:"embeddings_ready"`
	LexicalReady    bool `json:"lexical_ready"`
}

// IndexReport summarises an index build
type IndexReport struct {
	Documents     int           `json:"documents"`
	Embedded      int           `json:"embedded"`
	Truncated     int           `json:"truncated"`
	LexicalTerms  int           `json:"lexical_terms"`
	Took          time.Duration `json:"took" swaggertype:"integer"`
	Skipped       bool          `json:"skipped"`
	SkippedReason string        `json:"skipped_reason,omitempty"`
}

// Provision is the result of a deterministic act/section lookup
type Provision struct {
	DocumentID   string       `json:"document_id"`
	Text         string       `json:"text"`
	Citation     string       `json:"citation"`
	Jurisdiction Jurisdiction `json:"jurisdiction"`
	Type         DocumentType `json:"type"`
	Date         *time.Time   `json:"date,omitempty"`
	URL          string       `json:"url"`
	Source       string       `json:"source"`
}
