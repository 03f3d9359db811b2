package corpus

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/auslex-labs/auslex-core/internal/core/domain"
	"github.com/auslex-labs/auslex-core/internal/normalisers"
)

// corpusRecord mirrors the JSONL layout of the Open Australian Legal Corpus
type corpusRecord struct {
	VersionID    string `json:"version_id"`
	Type         string `json:"type"`
	Jurisdiction string `json:"jurisdiction"`
	Source       string `json:"source"`
	Citation     string `json:"citation"`
	URL          string `json:"url"`
	Date         string `json:"date"`
	Text         string `json:"text"`
}

// Loader reads corpus JSONL files into domain documents
type Loader struct {
	// MaxDocuments caps how many records are read; 0 means no cap
	MaxDocuments int

	// Normalisers cleans record text per source before storage
	Normalisers *normalisers.Registry
}

// NewLoader creates a corpus loader with the default normalisers
func NewLoader() *Loader {
	return &Loader{Normalisers: normalisers.DefaultRegistry()}
}

// LoadFile reads a JSONL corpus file from disk
func (l *Loader) LoadFile(path string) ([]*domain.Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open corpus file: %w", err)
	}
	defer f.Close()

	docs, err := l.Load(f)
	if err != nil {
		return nil, fmt.Errorf("failed to load corpus file %s: %w", path, err)
	}
	return docs, nil
}

// Load reads JSONL records from a reader, one document per line.
// Blank lines are skipped; a malformed line fails the whole load so a
// truncated corpus never silently half-ingests.
func (l *Loader) Load(r io.Reader) ([]*domain.Document, error) {
	scanner := bufio.NewScanner(r)
	// Corpus records carry full act text, far beyond the default line limit
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	var docs []*domain.Document
	line := 0
	for scanner.Scan() {
		line++
		raw := strings.TrimSpace(scanner.Text())
		if raw == "" {
			continue
		}

		var rec corpusRecord
		if err := json.Unmarshal([]byte(raw), &rec); err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}

		doc, err := rec.toDocument(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		if l.Normalisers != nil {
			doc.Text = l.Normalisers.Normalise(doc.Text, doc.Source)
		}
		docs = append(docs, doc)

		if l.MaxDocuments > 0 && len(docs) >= l.MaxDocuments {
			break
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read corpus: %w", err)
	}
	return docs, nil
}

func (r *corpusRecord) toDocument(line int) (*domain.Document, error) {
	if strings.TrimSpace(r.Text) == "" {
		return nil, fmt.Errorf("record has no text: %w", domain.ErrInvalidInput)
	}

	id := r.VersionID
	if id == "" {
		id = fmt.Sprintf("doc-%06d", line)
	}

	citation := r.Citation
	if citation == "" {
		citation = fmt.Sprintf("Document %d", line)
	}

	doc := &domain.Document{
		ID:           id,
		Text:         r.Text,
		Citation:     citation,
		Jurisdiction: domain.ParseJurisdiction(r.Jurisdiction),
		Type:         domain.ParseDocumentType(r.Type),
		URL:          r.URL,
		Source:       r.Source,
	}

	if r.Date != "" {
		if parsed, err := time.Parse("2006-01-02", r.Date); err == nil {
			doc.Date = &parsed
		}
	}
	return doc, nil
}
