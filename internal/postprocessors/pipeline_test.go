package postprocessors

import (
	"strings"
	"testing"
)

func TestPipelineOrdersProcessors(t *testing.T) {
	p := NewPipeline()
	p.Add(NewTruncator(TruncateConfig{MaxChars: 100}))
	p.Add(NewWhitespaceCompactor())

	// Sorting happens on first Prepare
	p.Prepare("text")

	names := p.List()
	if len(names) != 2 || names[0] != "whitespace-compactor" || names[1] != "truncator" {
		t.Errorf("unexpected processor order: %v", names)
	}
}

func TestWhitespaceCompactor(t *testing.T) {
	w := NewWhitespaceCompactor()

	got, dropped := w.Process("  382.   A person\r\n\r\n\r\n\r\nhas been dismissed.  ")
	if dropped {
		t.Error("compaction must not report dropped content")
	}
	if got != "382. A person\n\nhas been dismissed." {
		t.Errorf("unexpected compacted text: %q", got)
	}
}

func TestTruncatorShortInputUntouched(t *testing.T) {
	tr := NewTruncator(TruncateConfig{MaxChars: 1000, PreserveSentences: true})

	text := "A short provision."
	got, dropped := tr.Process(text)
	if dropped || got != text {
		t.Errorf("short input changed: %q dropped=%v", got, dropped)
	}
}

func TestTruncatorCutsAtSentenceBoundary(t *testing.T) {
	sentence := "The provision applies to every national system employee. "
	text := strings.Repeat(sentence, 50) // ~2.9k chars
	tr := NewTruncator(TruncateConfig{MaxChars: 1000, PreserveSentences: true})

	got, dropped := tr.Process(text)
	if !dropped {
		t.Fatal("expected truncation")
	}
	if len(got) > 1000+3 {
		t.Errorf("truncated text too long: %d chars", len(got))
	}
	if !strings.HasSuffix(got, "employee....") && !strings.HasSuffix(got, "employee...") {
		t.Errorf("expected sentence-boundary cut, got suffix %q", got[len(got)-30:])
	}
}

func TestTruncatorFallsBackToWordBoundary(t *testing.T) {
	text := strings.Repeat("provision ", 200) // No sentence enders
	tr := NewTruncator(TruncateConfig{MaxChars: 500, PreserveSentences: true})

	got, dropped := tr.Process(text)
	if !dropped {
		t.Fatal("expected truncation")
	}
	trimmed := strings.TrimSuffix(got, "...")
	if strings.HasSuffix(trimmed, "provisi") || strings.HasSuffix(trimmed, "provis") {
		t.Errorf("cut mid-word: %q", trimmed[len(trimmed)-20:])
	}
}

func TestDefaultPipelineBoundsLongText(t *testing.T) {
	p := DefaultPipeline(1000)

	text := strings.Repeat("Whosoever commits larceny shall be liable.  ", 100)
	got, shortened := p.Prepare(text)
	if !shortened {
		t.Fatal("expected long text shortened")
	}
	if len(got) > 1003 {
		t.Errorf("prepared text exceeds limit: %d chars", len(got))
	}

	short := "Whosoever commits larceny shall be liable."
	got, shortened = p.Prepare(short)
	if shortened || got != short {
		t.Errorf("short clean text changed: %q shortened=%v", got, shortened)
	}
}
