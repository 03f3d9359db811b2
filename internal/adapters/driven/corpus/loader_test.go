package corpus

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/auslex-labs/auslex-core/internal/core/domain"
)

func TestLoadFileParsesRecords(t *testing.T) {
	loader := NewLoader()

	docs, err := loader.LoadFile(filepath.Join("testdata", "corpus_sample.jsonl"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(docs) != 3 {
		t.Fatalf("expected 3 documents, got %d", len(docs))
	}

	first := docs[0]
	if first.ID != "cth-fwa-2009-s382" {
		t.Errorf("unexpected id %q", first.ID)
	}
	if first.Citation != "Fair Work Act 2009 (Cth) s 382" {
		t.Errorf("unexpected citation %q", first.Citation)
	}
	if first.Jurisdiction != domain.JurisdictionFederal {
		t.Errorf("expected commonwealth normalised to federal, got %s", first.Jurisdiction)
	}
	if first.Type != domain.TypeLegislation {
		t.Errorf("expected primary_legislation normalised to legislation, got %s", first.Type)
	}
	if first.Date == nil || first.Date.Year() != 2009 {
		t.Errorf("expected parsed date, got %v", first.Date)
	}

	second := docs[1]
	if second.Jurisdiction != domain.JurisdictionNSW {
		t.Errorf("expected nsw, got %s", second.Jurisdiction)
	}
}

func TestLoadFillsMissingIDAndCitation(t *testing.T) {
	loader := NewLoader()

	docs, err := loader.LoadFile(filepath.Join("testdata", "corpus_sample.jsonl"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	third := docs[2]
	if third.ID != "doc-000003" {
		t.Errorf("expected generated id for missing version_id, got %q", third.ID)
	}
	if third.Citation != "Document 3" {
		t.Errorf("expected placeholder citation, got %q", third.Citation)
	}
	if third.Type != domain.TypeCaseLaw {
		t.Errorf("expected decision normalised to case_law, got %s", third.Type)
	}
}

func TestLoadSkipsBlankLines(t *testing.T) {
	loader := NewLoader()

	input := `{"version_id": "a", "text": "first provision", "citation": "Act A"}

{"version_id": "b", "text": "second provision", "citation": "Act B"}
`
	docs, err := loader.Load(strings.NewReader(input))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(docs) != 2 {
		t.Errorf("expected 2 documents, got %d", len(docs))
	}
}

func TestLoadRejectsMalformedLine(t *testing.T) {
	loader := NewLoader()

	input := `{"version_id": "a", "text": "fine"}
{not json`
	if _, err := loader.Load(strings.NewReader(input)); err == nil {
		t.Error("expected error for malformed line")
	}
}

func TestLoadRejectsEmptyText(t *testing.T) {
	loader := NewLoader()

	input := `{"version_id": "a", "text": "   "}`
	if _, err := loader.Load(strings.NewReader(input)); err == nil {
		t.Error("expected error for record without text")
	}
}

func TestLoadHonoursMaxDocuments(t *testing.T) {
	loader := NewLoader()
	loader.MaxDocuments = 1

	docs, err := loader.LoadFile(filepath.Join("testdata", "corpus_sample.jsonl"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(docs) != 1 {
		t.Errorf("expected cap at 1 document, got %d", len(docs))
	}
}

func TestLoadNormalisesTextBySource(t *testing.T) {
	loader := NewLoader()

	input := `{"version_id": "a", "source": "nsw_legislation", "citation": "Act A", "text": "<p>117.&nbsp;Whosoever commits <b>larceny</b></p>"}`
	docs, err := loader.Load(strings.NewReader(input))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if docs[0].Text != "117. Whosoever commits larceny" {
		t.Errorf("expected markup stripped, got %q", docs[0].Text)
	}
}

func TestLoadWithoutNormalisersPassesTextThrough(t *testing.T) {
	loader := &Loader{}

	raw := `{"version_id": "a", "citation": "Act A", "text": "<p>raw</p>"}`
	docs, err := loader.Load(strings.NewReader(raw))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if docs[0].Text != "<p>raw</p>" {
		t.Errorf("expected untouched text, got %q", docs[0].Text)
	}
}

func TestLoadFileMissing(t *testing.T) {
	loader := NewLoader()

	if _, err := loader.LoadFile("testdata/nope.jsonl"); err == nil {
		t.Error("expected error for missing file")
	}
}
