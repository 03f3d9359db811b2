package domain

// ResearchConfidence is a coarse retrieval-quality grade attached to a
// generated answer, derived from the top result score and result count
type ResearchConfidence string

const (
	ConfidenceHigh   ResearchConfidence = "high"
	ConfidenceMedium ResearchConfidence = "medium"
	ConfidenceLow    ResearchConfidence = "low"
)

// ResearchAnswer is the final user-facing product of the RAG pipeline:
// generated text with disclaimers merged in, plus provenance
type ResearchAnswer struct {
	Answer        string             `json:"answer"`
	Confidence    ResearchConfidence `json:"confidence"`
	Sources       []string           `json:"sources"`
	Method        SearchMethod       `json:"method"`
	DocumentsUsed int                `json:"documents_used"`
	Compliance    *ValidationResult  `json:"compliance,omitempty"`
}
