package segment

import (
	"strings"
	"testing"
)

func TestSplitByParagraphs_BlankLineBreaks(t *testing.T) {
	blocks := []Block{
		{Kind: KindParagraph, Text: "The Tyger", Bold: true},
		{Kind: KindParagraph, Text: "Tyger Tyger, burning bright,"},
		{Kind: KindParagraph, Text: "In the forests of the night;"},
		{Kind: KindParagraph, Text: ""},
		{Kind: KindParagraph, Text: "a second poem starts quietly here."},
		{Kind: KindParagraph, Text: "and carries on for another line."},
	}
	spans := splitByParagraphs(blocks, "")
	if len(spans) != 2 {
		t.Fatalf("got %d spans, want 2", len(spans))
	}
	if spans[0].Title != "The Tyger" {
		t.Errorf("span 0 title = %q, want %q", spans[0].Title, "The Tyger")
	}
	// The candidate title stays part of its poem's content.
	if !strings.HasPrefix(spans[0].Content, "The Tyger\n") {
		t.Errorf("span 0 content %q does not open with the title line", spans[0].Content)
	}
	// Second span opens lowercase with a period: no candidate, so it
	// gets the running number.
	if spans[1].Title != "Poem 2" {
		t.Errorf("span 1 title = %q, want %q", spans[1].Title, "Poem 2")
	}
}

func TestSplitByParagraphs_UppercaseCandidate(t *testing.T) {
	// WHAT: a short opener with a leading capital and no sentence
	// punctuation names the poem even without bold or centering.
	blocks := []Block{
		{Kind: KindParagraph, Text: "Harlem at Dusk"},
		{Kind: KindParagraph, Text: "the streetlights hum their orange hymn."},
		{Kind: KindParagraph, Text: ""},
		{Kind: KindParagraph, Text: "what happens to a dream deferred."},
		{Kind: KindParagraph, Text: "does it dry up like a raisin in the sun."},
	}
	spans := splitByParagraphs(blocks, "")
	if len(spans) != 2 {
		t.Fatalf("got %d spans, want 2", len(spans))
	}
	if spans[0].Title != "Harlem at Dusk" {
		t.Errorf("span 0 title = %q", spans[0].Title)
	}
	if spans[1].Title != "Poem 2" {
		t.Errorf("span 1 title = %q, want Poem 2", spans[1].Title)
	}
}

func TestSplitByParagraphs_CenteredCandidateAllowsPunctuation(t *testing.T) {
	blocks := []Block{
		{Kind: KindParagraph, Text: "Evening Song.", Centered: true},
		{Kind: KindParagraph, Text: "the lamps go out along the river."},
		{Kind: KindParagraph, Text: ""},
		{Kind: KindParagraph, Text: "the bridge holds its breath till morning."},
		{Kind: KindParagraph, Text: "and lets the last tram cross alone."},
	}
	spans := splitByParagraphs(blocks, "")
	if len(spans) != 2 {
		t.Fatalf("got %d spans, want 2", len(spans))
	}
	if spans[0].Title != "Evening Song." {
		t.Errorf("span 0 title = %q, want %q", spans[0].Title, "Evening Song.")
	}
}

func TestSplitByParagraphs_ShortLineBreaksMidStream(t *testing.T) {
	// WHAT: a paragraph under 10 runes ends the running poem and is
	// itself discarded; with the poem still empty it joins instead.
	blocks := []Block{
		{Kind: KindParagraph, Text: "first stanza has plenty of words in it"},
		{Kind: KindParagraph, Text: "fin"},
		{Kind: KindParagraph, Text: "the second stanza also has plenty here"},
		{Kind: KindParagraph, Text: "and it runs to another full line"},
	}
	spans := splitByParagraphs(blocks, "")
	if len(spans) != 2 {
		t.Fatalf("got %d spans, want 2", len(spans))
	}
	for _, s := range spans {
		if strings.Contains(s.Content, "fin") {
			t.Errorf("separator line leaked into %q", s.Content)
		}
	}
	if spans[0].Title != "Poem 1" || spans[1].Title != "Poem 2" {
		t.Errorf("titles = %q, %q", spans[0].Title, spans[1].Title)
	}
}

func TestSplitByParagraphs_ShortOpenerJoins(t *testing.T) {
	blocks := []Block{
		{Kind: KindParagraph, Text: "Ode"},
		{Kind: KindParagraph, Text: "to the west wind that carries autumn leaves"},
		{Kind: KindParagraph, Text: ""},
		{Kind: KindParagraph, Text: "another poem stanza with enough words"},
		{Kind: KindParagraph, Text: "to qualify as its own span here"},
	}
	spans := splitByParagraphs(blocks, "")
	if len(spans) != 2 {
		t.Fatalf("got %d spans, want 2", len(spans))
	}
	if spans[0].Title != "Ode" {
		t.Errorf("span 0 title = %q, want %q", spans[0].Title, "Ode")
	}
	if !strings.HasPrefix(spans[0].Content, "Ode\n") {
		t.Errorf("short opener missing from content %q", spans[0].Content)
	}
}

func TestSplitByParagraphs_NeedsMoreThanThree(t *testing.T) {
	blocks := []Block{
		{Kind: KindParagraph, Text: "one stanza with enough words"},
		{Kind: KindParagraph, Text: ""},
		{Kind: KindParagraph, Text: "two stanzas with enough words"},
	}
	if spans := splitByParagraphs(blocks, ""); spans != nil {
		t.Errorf("got %d spans, want nil", len(spans))
	}
}

func TestSplitByParagraphs_SingleSpanIsNil(t *testing.T) {
	blocks := []Block{
		{Kind: KindParagraph, Text: "an unbroken poem with plenty of words"},
		{Kind: KindParagraph, Text: "that never pauses for a blank line"},
		{Kind: KindParagraph, Text: "and therefore reads as one piece"},
		{Kind: KindParagraph, Text: "from its first breath to its last"},
	}
	if spans := splitByParagraphs(blocks, ""); spans != nil {
		t.Errorf("got %d spans, want nil", len(spans))
	}
}

func TestSplitByParagraphs_HeadingsIgnored(t *testing.T) {
	// Heading blocks neither break nor join paragraph poems; they are
	// the previous strategy's material.
	blocks := []Block{
		{Kind: KindHeading, Level: 1, Text: "Ignored Heading"},
		{Kind: KindParagraph, Text: "first poem stanza with enough words"},
		{Kind: KindParagraph, Text: ""},
		{Kind: KindHeading, Level: 2, Text: "Another Ignored Heading"},
		{Kind: KindParagraph, Text: "second poem stanza with enough words"},
		{Kind: KindParagraph, Text: "closing line of the second poem"},
	}
	spans := splitByParagraphs(blocks, "")
	if len(spans) != 2 {
		t.Fatalf("got %d spans, want 2", len(spans))
	}
	for _, s := range spans {
		if strings.Contains(s.Content, "Heading") {
			t.Errorf("heading text leaked into %q", s.Content)
		}
	}
}
