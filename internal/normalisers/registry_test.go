package normalisers

import (
	"testing"
)

func TestRegistrySelectsByPriority(t *testing.T) {
	r := DefaultRegistry()

	n := r.Get("nsw_legislation")
	if _, ok := n.(*LegislationNormaliser); !ok {
		t.Errorf("expected LegislationNormaliser for nsw_legislation, got %T", n)
	}

	n = r.Get("federal_court_of_australia")
	if _, ok := n.(*CaselawNormaliser); !ok {
		t.Errorf("expected CaselawNormaliser for federal_court_of_australia, got %T", n)
	}

	// Unknown sources fall back to plain text
	n = r.Get("some_new_source")
	if _, ok := n.(*PlainTextNormaliser); !ok {
		t.Errorf("expected PlainTextNormaliser fallback, got %T", n)
	}
}

func TestSourceWildcardMatching(t *testing.T) {
	cases := []struct {
		patterns []string
		source   string
		want     bool
	}{
		{[]string{"nsw_caselaw"}, "nsw_caselaw", true},
		{[]string{"nsw_caselaw"}, "NSW_Caselaw", true},
		{[]string{"*_legislation"}, "queensland_legislation", true},
		{[]string{"*_legislation"}, "queensland_judgments", false},
		{[]string{"federal_*"}, "federal_register_of_legislation", true},
		{[]string{"*"}, "anything", true},
		{[]string{}, "anything", false},
	}

	for _, tc := range cases {
		if got := matchesSource(tc.patterns, tc.source); got != tc.want {
			t.Errorf("matchesSource(%v, %q) = %v, want %v", tc.patterns, tc.source, got, tc.want)
		}
	}
}

func TestLegislationNormaliserStripsMarkup(t *testing.T) {
	n := &LegislationNormaliser{}

	raw := "<p>382.&nbsp;A person has been <b>unfairly dismissed</b> if:</p>\r\n\r\n\r\n<p>(a) the dismissal was harsh</p>"
	got := n.Normalise(raw)

	if got != "382. A person has been unfairly dismissed if:\n\n(a) the dismissal was harsh" {
		t.Errorf("unexpected normalised text: %q", got)
	}
}

func TestLegislationNormaliserLeavesCleanTextAlone(t *testing.T) {
	n := &LegislationNormaliser{}

	clean := "382. A person has been unfairly dismissed if the dismissal was harsh."
	if got := n.Normalise(clean); got != clean {
		t.Errorf("clean text changed: %q", got)
	}
}

func TestCaselawNormaliserCollapsesArtifacts(t *testing.T) {
	n := &CaselawNormaliser{}

	raw := "The appeal is dismissed.   \r\n\r\n\r\n\r\nCosts follow the event.  "
	got := n.Normalise(raw)

	if got != "The appeal is dismissed.\n\nCosts follow the event." {
		t.Errorf("unexpected normalised text: %q", got)
	}
}

func TestDecodeEntities(t *testing.T) {
	got := decodeEntities("Smith &amp; Jones &sect;&nbsp;5 &quot;applied&quot;")
	if got != "Smith & Jones s 5 \"applied\"" {
		t.Errorf("unexpected decode: %q", got)
	}
}

func TestRegistryNormaliseUnknownSourcePassthrough(t *testing.T) {
	r := NewRegistry()

	text := "  untouched  "
	if got := r.Normalise(text, "whatever"); got != text {
		t.Errorf("empty registry must pass text through, got %q", got)
	}
}

func TestListReturnsSortedPatterns(t *testing.T) {
	r := DefaultRegistry()

	patterns := r.List()
	if len(patterns) == 0 {
		t.Fatal("expected registered patterns")
	}
	for i := 1; i < len(patterns); i++ {
		if patterns[i-1] > patterns[i] {
			t.Errorf("patterns not sorted: %v", patterns)
		}
	}
}
