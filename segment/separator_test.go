package segment

import (
	"strings"
	"testing"
)

func TestSplitBySeparators_Stars(t *testing.T) {
	raw := "First poem line one\nFirst poem line two\n***\nSecond poem line one\nSecond poem line two"
	spans := splitBySeparators(nil, raw)
	if len(spans) != 2 {
		t.Fatalf("got %d spans, want 2", len(spans))
	}
	if spans[0].Title != "First poem line one" {
		t.Errorf("span 0 title = %q", spans[0].Title)
	}
	if strings.Contains(spans[0].Content, "***") || strings.Contains(spans[1].Content, "***") {
		t.Error("separator line leaked into content")
	}
}

func TestSplitBySeparators_RuleVariants(t *testing.T) {
	for _, rule := range []string{"---", "___", "===", "~~~", "------"} {
		raw := "alpha poem content here\n" + rule + "\nbeta poem content here"
		spans := splitBySeparators(nil, raw)
		if len(spans) != 2 {
			t.Errorf("rule %q: got %d spans, want 2", rule, len(spans))
		}
	}
}

func TestSplitBySeparators_FirstPatternWins(t *testing.T) {
	// WHAT: once the star pattern carves out two usable parts, the
	// dash pattern is never applied, so a dash line inside a part
	// stays in its poem.
	raw := "one poem with words\n***\nsecond poem with words\n---\nthird poem with words"
	spans := splitBySeparators(nil, raw)
	if len(spans) != 2 {
		t.Fatalf("got %d spans, want 2", len(spans))
	}
	if !strings.Contains(spans[1].Content, "---") {
		t.Errorf("span 1 content %q should keep the dash line", spans[1].Content)
	}
}

func TestSplitBySeparators_NewlineRun(t *testing.T) {
	raw := "first poem alone here\n\n\n\nsecond poem alone here"
	spans := splitBySeparators(nil, raw)
	if len(spans) != 2 {
		t.Fatalf("got %d spans, want 2", len(spans))
	}
}

func TestSplitBySeparators_SkippedPartKeepsNumbering(t *testing.T) {
	// WHAT: fallback numbering follows the original split position,
	// so dropping the short first part leaves Poem 2 and Poem 3.
	// WHY: the numbering mirrors where each poem sat in the source,
	// which matters to someone checking against the manuscript.
	long := strings.Repeat("x", 120)
	raw := "tiny\n***\n" + long + "\nmore content lines here\n***\n" + long + "\nother content lines here"
	spans := splitBySeparators(nil, raw)
	if len(spans) != 2 {
		t.Fatalf("got %d spans, want 2", len(spans))
	}
	if spans[0].Title != "Poem 2" || spans[1].Title != "Poem 3" {
		t.Errorf("titles = %q, %q, want Poem 2, Poem 3", spans[0].Title, spans[1].Title)
	}
}

func TestSplitBySeparators_HTMLPartsStripped(t *testing.T) {
	raw := "<p>first html poem line</p>\n***\n<p>second html poem line</p>"
	spans := splitBySeparators(nil, raw)
	if len(spans) != 2 {
		t.Fatalf("got %d spans, want 2", len(spans))
	}
	for _, s := range spans {
		if strings.ContainsRune(s.Content, '<') {
			t.Errorf("tags survived in %q", s.Content)
		}
	}
	if spans[0].Title != "first html poem line" {
		t.Errorf("span 0 title = %q", spans[0].Title)
	}
}

func TestSplitBySeparators_NoSeparator(t *testing.T) {
	if spans := splitBySeparators(nil, "a single poem with no dividers at all"); spans != nil {
		t.Errorf("got %d spans, want nil", len(spans))
	}
}

func TestSplitBySeparators_BothPartsTooShort(t *testing.T) {
	if spans := splitBySeparators(nil, "tiny\n***\nsmall"); spans != nil {
		t.Errorf("got %d spans, want nil", len(spans))
	}
}
