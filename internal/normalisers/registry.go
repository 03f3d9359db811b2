package normalisers

import (
	"sort"
	"strings"
	"sync"
)

// Normaliser cleans raw corpus text before it is stored and indexed.
// Scraped sources arrive with markup residue and inconsistent whitespace;
// each normaliser knows the quirks of the sources it handles.
type Normaliser interface {
	// Normalise transforms raw record text into clean provision text
	Normalise(text string) string

	// SupportedSources returns the corpus source names this normaliser
	// handles. Wildcards are allowed, e.g. "nsw_*" or "*_caselaw".
	SupportedSources() []string

	// Priority resolves conflicts when multiple normalisers match a
	// source (higher = more specific). Fallbacks sit at 1-9,
	// source-family normalisers at 50-89.
	Priority() int
}

// Registry selects normalisers by corpus source with priority-based
// selection. When multiple normalisers match a source, the highest
// priority one is used.
type Registry struct {
	mu          sync.RWMutex
	normalisers []Normaliser
}

// NewRegistry creates a new normaliser registry.
func NewRegistry() *Registry {
	return &Registry{
		normalisers: make([]Normaliser, 0),
	}
}

// Register registers a normaliser.
func (r *Registry) Register(normaliser Normaliser) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.normalisers = append(r.normalisers, normaliser)
}

// Get retrieves the best-matching normaliser for a corpus source.
// Returns nil if no normaliser matches.
func (r *Registry) Get(source string) Normaliser {
	matches := r.GetAll(source)
	if len(matches) == 0 {
		return nil
	}
	return matches[0] // Already sorted by priority (highest first)
}

// GetAll retrieves all normalisers matching a source, sorted by priority
// (highest first).
func (r *Registry) GetAll(source string) []Normaliser {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var matches []Normaliser

	for _, n := range r.normalisers {
		if matchesSource(n.SupportedSources(), source) {
			matches = append(matches, n)
		}
	}

	sort.Slice(matches, func(i, j int) bool {
		return matches[i].Priority() > matches[j].Priority()
	})

	return matches
}

// Normalise cleans text through the best-matching normaliser for a
// source. Text passes through untouched when nothing matches.
func (r *Registry) Normalise(text, source string) string {
	n := r.Get(source)
	if n == nil {
		return text
	}
	return n.Normalise(text)
}

// List returns all registered source patterns.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	patternSet := make(map[string]struct{})
	for _, n := range r.normalisers {
		for _, s := range n.SupportedSources() {
			patternSet[s] = struct{}{}
		}
	}

	patterns := make([]string, 0, len(patternSet))
	for p := range patternSet {
		patterns = append(patterns, p)
	}
	sort.Strings(patterns)
	return patterns
}

// matchesSource checks if any supported pattern matches the source name.
// Supports prefix and suffix wildcards ("nsw_*", "*_caselaw", "*").
func matchesSource(patterns []string, source string) bool {
	source = strings.ToLower(strings.TrimSpace(source))

	for _, pattern := range patterns {
		pattern = strings.ToLower(strings.TrimSpace(pattern))

		switch {
		case pattern == "*":
			return true
		case pattern == source:
			return true
		case strings.HasSuffix(pattern, "*") && strings.HasPrefix(source, pattern[:len(pattern)-1]):
			return true
		case strings.HasPrefix(pattern, "*") && strings.HasSuffix(source, pattern[1:]):
			return true
		}
	}

	return false
}

// DefaultRegistry creates a registry covering the Open Australian Legal
// Corpus sources.
func DefaultRegistry() *Registry {
	r := NewRegistry()

	r.Register(&PlainTextNormaliser{})
	r.Register(&LegislationNormaliser{})
	r.Register(&CaselawNormaliser{})

	return r
}

// PlainTextNormaliser is the fallback for any source.
type PlainTextNormaliser struct{}

func (n *PlainTextNormaliser) Normalise(text string) string {
	return collapseWhitespace(normaliseLineEndings(text))
}

func (n *PlainTextNormaliser) SupportedSources() []string {
	return []string{"*"}
}

func (n *PlainTextNormaliser) Priority() int {
	return 1 // Lowest priority, fallback
}

// LegislationNormaliser handles legislation register sources. Register
// scrapes occasionally carry markup residue and encoded entities.
type LegislationNormaliser struct{}

func (n *LegislationNormaliser) Normalise(text string) string {
	text = normaliseLineEndings(text)
	if looksLikeMarkup(text) {
		text = stripTags(text)
	}
	text = decodeEntities(text)
	return collapseWhitespace(text)
}

func (n *LegislationNormaliser) SupportedSources() []string {
	return []string{"*_legislation", "federal_register_of_legislation", "*_register*"}
}

func (n *LegislationNormaliser) Priority() int {
	return 50
}

// CaselawNormaliser handles court and tribunal sources. Judgment scrapes
// carry page artifacts: repeated blank lines and trailing whitespace on
// every paragraph.
type CaselawNormaliser struct{}

func (n *CaselawNormaliser) Normalise(text string) string {
	text = normaliseLineEndings(text)
	text = decodeEntities(text)
	return collapseWhitespace(text)
}

func (n *CaselawNormaliser) SupportedSources() []string {
	return []string{"*_caselaw", "*_court_of_australia", "nsw_caselaw", "queensland_judgments"}
}

func (n *CaselawNormaliser) Priority() int {
	return 50
}

// Helper functions

func normaliseLineEndings(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	return strings.ReplaceAll(text, "\r", "\n")
}

// collapseWhitespace trims each line, collapses runs of spaces, and caps
// blank runs at one empty line.
func collapseWhitespace(text string) string {
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

	return strings.TrimSpace(text)
}

// looksLikeMarkup reports whether text still carries HTML structure
func looksLikeMarkup(text string) bool {
	lower := strings.ToLower(text)
	return strings.Contains(lower, "</") ||
		strings.Contains(lower, "<p>") ||
		strings.Contains(lower, "<br")
}

func stripTags(text string) string {
	var result strings.Builder
	inTag := false

	for _, r := range text {
		switch {
		case r == '<':
			inTag = true
		case r == '>':
			inTag = false
			result.WriteRune(' ') // Replace tag with space
		case !inTag:
			result.WriteRune(r)
		}
	}

	return result.String()
}

func decodeEntities(text string) string {
	replacements := [][2]string{
		{"&nbsp;", " "},
		{"&lt;", "<"},
		{"&gt;", ">"},
		{"&quot;", "\""},
		{"&apos;", "'"},
		{"&#39;", "'"},
		{"&sect;", "s"},
		{"&amp;", "&"}, // Last so earlier entities are not double-decoded
	}

	for _, pair := range replacements {
		text = strings.ReplaceAll(text, pair[0], pair[1])
	}

	return text
}
