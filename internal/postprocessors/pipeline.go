package postprocessors

import (
	"sort"
	"strings"
	"sync"
)

// Processor transforms document text on its way to the embedding
// provider. Processors form a pipeline sorted by Order; each reports
// whether it shortened the text.
type Processor interface {
	// Process transforms the text. The second return is true when the
	// processor dropped content.
	Process(text string) (string, bool)

	// Name returns the processor name for logging/debugging.
	Name() string

	// Order returns the processor order in the pipeline (lower = earlier).
	Order() int
}

// Pipeline chains processors that prepare corpus text for embedding.
// Embedding providers cap input length, and scraped acts routinely
// exceed it; the pipeline keeps what is sent dense and bounded.
type Pipeline struct {
	mu         sync.RWMutex
	processors []Processor
	sorted     bool
}

// NewPipeline creates an empty pipeline.
func NewPipeline() *Pipeline {
	return &Pipeline{
		processors: make([]Processor, 0),
	}
}

// Add adds a processor to the pipeline.
// Processors are sorted by Order() before processing.
func (p *Pipeline) Add(processor Processor) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.processors = append(p.processors, processor)
	p.sorted = false
}

// Prepare runs the text through every processor in order. The second
// return is true when any processor dropped content.
func (p *Pipeline) Prepare(text string) (string, bool) {
	p.mu.Lock()
	if !p.sorted {
		sort.Slice(p.processors, func(i, j int) bool {
			return p.processors[i].Order() < p.processors[j].Order()
		})
		p.sorted = true
	}
	p.mu.Unlock()

	p.mu.RLock()
	processors := make([]Processor, len(p.processors))
	copy(processors, p.processors)
	p.mu.RUnlock()

	shortened := false
	for _, proc := range processors {
		var dropped bool
		text, dropped = proc.Process(text)
		shortened = shortened || dropped
	}

	return text, shortened
}

// List returns processor names in order.
func (p *Pipeline) List() []string {
	p.mu.RLock()
	defer p.mu.RUnlock()

	names := make([]string, len(p.processors))
	for i, proc := range p.processors {
		names[i] = proc.Name()
	}
	return names
}

// DefaultPipeline creates the standard embedding preparation pipeline:
// whitespace compaction followed by boundary-aware truncation.
func DefaultPipeline(maxChars int) *Pipeline {
	p := NewPipeline()
	p.Add(NewWhitespaceCompactor())
	p.Add(NewTruncator(TruncateConfig{MaxChars: maxChars, PreserveSentences: true}))
	return p
}

// WhitespaceCompactor collapses whitespace runs so padding never eats
// into the embedding character limit.
type WhitespaceCompactor struct{}

// Verify interface compliance
var _ Processor = (*WhitespaceCompactor)(nil)

// NewWhitespaceCompactor creates a new whitespace compactor.
func NewWhitespaceCompactor() *WhitespaceCompactor {
	return &WhitespaceCompactor{}
}

// Process normalizes line endings and collapses repeated whitespace.
func (w *WhitespaceCompactor) Process(text string) (string, bool) {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")

	lines := strings.Split(text, "\n")
	for i, line := range lines {
		for strings.Contains(line, "  ") {
			line = strings.ReplaceAll(line, "  ", " ")
		}
		lines[i] = strings.TrimSpace(line)
	}
	text = strings.Join(lines, "\n")

	for strings.Contains(text, "\n\n\n") {
		text = strings.ReplaceAll(text, "\n\n\n", "\n\n")
	}

	return strings.TrimSpace(text), false
}

// Name returns the processor name.
func (w *WhitespaceCompactor) Name() string {
	return "whitespace-compactor"
}

// Order returns 0, compaction runs before truncation.
func (w *WhitespaceCompactor) Order() int {
	return 0
}

// TruncateConfig configures the truncator behavior.
type TruncateConfig struct {
	// MaxChars is the maximum characters to keep
	MaxChars int

	// PreserveSentences tries to cut at sentence boundaries
	PreserveSentences bool

	// PreserveParagraphs tries to cut at paragraph boundaries
	PreserveParagraphs bool
}

// Truncator bounds text length, cutting at a sentence or word boundary
// near the limit rather than mid-token.
type Truncator struct {
	config TruncateConfig
}

// Verify interface compliance
var _ Processor = (*Truncator)(nil)

// NewTruncator creates a new truncator with the given config.
func NewTruncator(config TruncateConfig) *Truncator {
	return &Truncator{config: config}
}

// Process truncates text exceeding the limit.
func (t *Truncator) Process(text string) (string, bool) {
	if t.config.MaxChars <= 0 || len(text) <= t.config.MaxChars {
		return text, false
	}

	end := t.findBreakPoint(text, t.config.MaxChars)
	return strings.TrimSpace(text[:end]) + "...", true
}

// Name returns the processor name.
func (t *Truncator) Name() string {
	return "truncator"
}

// Order returns 10, truncation runs last.
func (t *Truncator) Order() int {
	return 10
}

// findBreakPoint finds a good cut point at or before maxEnd.
func (t *Truncator) findBreakPoint(text string, maxEnd int) int {
	searchStart := maxEnd - 100
	if searchStart < 0 {
		searchStart = 0
	}

	searchText := text[searchStart:maxEnd]

	// Try to cut at a paragraph boundary (double newline)
	if t.config.PreserveParagraphs {
		if idx := strings.LastIndex(searchText, "\n\n"); idx != -1 {
			return searchStart + idx
		}
	}

	// Try to cut at a sentence boundary
	if t.config.PreserveSentences {
		sentenceEnders := []string{". ", "! ", "? ", ".\n", "!\n", "?\n"}
		bestIdx := -1

		for _, ender := range sentenceEnders {
			if idx := strings.LastIndex(searchText, ender); idx != -1 {
				endPos := idx + 1 // Keep the punctuation, drop the separator
				if endPos > bestIdx {
					bestIdx = endPos
				}
			}
		}

		if bestIdx > 0 {
			return searchStart + bestIdx
		}
	}

	// Try to cut at a word boundary
	if idx := strings.LastIndex(searchText, " "); idx != -1 {
		return searchStart + idx
	}

	// No good cut point found, use maxEnd
	return maxEnd
}
