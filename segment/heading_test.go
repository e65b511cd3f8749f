package segment

import (
	"strings"
	"testing"
)

func TestSplitByHeadings_TwoPoems(t *testing.T) {
	blocks := []Block{
		{Kind: KindHeading, Level: 1, Text: "First Poem"},
		{Kind: KindParagraph, Text: "line one of the first poem"},
		{Kind: KindParagraph, Text: ""},
		{Kind: KindParagraph, Text: "more verse follows here"},
		{Kind: KindHeading, Level: 1, Text: "Second Poem"},
		{Kind: KindParagraph, Text: "the second poem's only stanza"},
	}
	spans := splitByHeadings(blocks, "")
	if len(spans) != 2 {
		t.Fatalf("got %d spans, want 2", len(spans))
	}
	if spans[0].Title != "First Poem" || spans[1].Title != "Second Poem" {
		t.Errorf("titles = %q, %q", spans[0].Title, spans[1].Title)
	}
	// Heading text is a title, never content; the empty paragraph
	// survives as a blank line.
	want := "line one of the first poem\n\nmore verse follows here"
	if spans[0].Content != want {
		t.Errorf("content = %q, want %q", spans[0].Content, want)
	}
	if strings.Contains(spans[0].Content, "First Poem") {
		t.Error("heading text leaked into span content")
	}
}

func TestSplitByHeadings_OneHeadingNotEnough(t *testing.T) {
	blocks := []Block{
		{Kind: KindHeading, Level: 1, Text: "Lonely Title"},
		{Kind: KindParagraph, Text: "a body long enough to keep"},
	}
	if spans := splitByHeadings(blocks, ""); spans != nil {
		t.Errorf("got %d spans, want nil", len(spans))
	}
}

func TestSplitByHeadings_EmptyHeadingNumbered(t *testing.T) {
	blocks := []Block{
		{Kind: KindHeading, Level: 2, Text: ""},
		{Kind: KindParagraph, Text: "content of the first poem here"},
		{Kind: KindHeading, Level: 2, Text: "   "},
		{Kind: KindParagraph, Text: "content of the second poem here"},
	}
	spans := splitByHeadings(blocks, "")
	if len(spans) != 2 {
		t.Fatalf("got %d spans, want 2", len(spans))
	}
	if spans[0].Title != "Poem 1" || spans[1].Title != "Poem 2" {
		t.Errorf("titles = %q, %q, want Poem 1, Poem 2", spans[0].Title, spans[1].Title)
	}
}

func TestSplitByHeadings_ShortSpanDropped(t *testing.T) {
	// WHAT: a heading whose body trims to 10 runes or fewer yields no
	// span, but the remaining spans still qualify.
	blocks := []Block{
		{Kind: KindHeading, Level: 1, Text: "Fragment"},
		{Kind: KindParagraph, Text: "tiny"},
		{Kind: KindHeading, Level: 1, Text: "Kept One"},
		{Kind: KindParagraph, Text: "long enough to be a poem"},
		{Kind: KindHeading, Level: 1, Text: "Kept Two"},
		{Kind: KindParagraph, Text: "also long enough to keep"},
	}
	spans := splitByHeadings(blocks, "")
	if len(spans) != 2 {
		t.Fatalf("got %d spans, want 2", len(spans))
	}
	if spans[0].Title != "Kept One" || spans[1].Title != "Kept Two" {
		t.Errorf("titles = %q, %q", spans[0].Title, spans[1].Title)
	}
}

func TestSplitByHeadings_AllShortIsNil(t *testing.T) {
	blocks := []Block{
		{Kind: KindHeading, Level: 1, Text: "A"},
		{Kind: KindParagraph, Text: "x"},
		{Kind: KindHeading, Level: 1, Text: "B"},
		{Kind: KindParagraph, Text: "y"},
	}
	if spans := splitByHeadings(blocks, ""); spans != nil {
		t.Errorf("got %d spans, want nil", len(spans))
	}
}

func TestSplitByHeadings_FrontMatterIgnored(t *testing.T) {
	blocks := []Block{
		{Kind: KindParagraph, Text: "a preface the poet never wanted printed"},
		{Kind: KindHeading, Level: 1, Text: "One"},
		{Kind: KindParagraph, Text: "first poem body text here"},
		{Kind: KindHeading, Level: 1, Text: "Two"},
		{Kind: KindParagraph, Text: "second poem body text here"},
	}
	spans := splitByHeadings(blocks, "")
	if len(spans) != 2 {
		t.Fatalf("got %d spans, want 2", len(spans))
	}
	for _, s := range spans {
		if strings.Contains(s.Content, "preface") {
			t.Errorf("front matter leaked into %q", s.Title)
		}
	}
}

func TestSplitByHeadings_MarkupJoined(t *testing.T) {
	blocks := []Block{
		{Kind: KindHeading, Level: 1, Text: "With Markup"},
		{Kind: KindParagraph, Text: "first line of verse", Markup: "<p>first line of verse</p>"},
		{Kind: KindParagraph, Text: ""},
		{Kind: KindParagraph, Text: "second line of verse", Markup: "<p>second line of verse</p>"},
		{Kind: KindHeading, Level: 1, Text: "Companion"},
		{Kind: KindParagraph, Text: "the companion poem's body", Markup: "<p>the companion poem's body</p>"},
	}
	spans := splitByHeadings(blocks, "")
	if len(spans) != 2 {
		t.Fatalf("got %d spans, want 2", len(spans))
	}
	want := "<p>first line of verse</p>\n<p>second line of verse</p>"
	if spans[0].Markup != want {
		t.Errorf("markup = %q, want %q", spans[0].Markup, want)
	}
}
