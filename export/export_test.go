package export

import (
	"bytes"
	"strings"
	"testing"

	"github.com/hazyhaar/strophe/anthology"
)

func testRecords() []anthology.Record {
	return []anthology.Record{
		{
			ID:        "a1b2",
			Title:     "First Light",
			Content:   "morning breaks over the hills\ngolden and slow today",
			Markup:    "<p>morning breaks over the hills<br/>golden and slow today</p>",
			WordCount: 9,
		},
		{
			ID:        "c3d4",
			Title:     "Stone Garden",
			Content:   "raked sand in <spirals>\nunder the cedar\n\nnothing moves here",
			WordCount: 8,
		},
	}
}

func TestEntries(t *testing.T) {
	entries := Entries(testRecords())

	if len(entries) != 2 {
		t.Fatalf("entries = %d", len(entries))
	}
	want := Entry{Anchor: "poem-1-a1b2", Title: "First Light", WordCount: 9, Position: 1}
	if entries[0] != want {
		t.Errorf("entry 0 = %+v, want %+v", entries[0], want)
	}
	if entries[1].Anchor != "poem-2-c3d4" || entries[1].Position != 2 {
		t.Errorf("entry 1 = %+v", entries[1])
	}
}

func TestRenderHTML(t *testing.T) {
	var buf bytes.Buffer
	if err := RenderHTML(&buf, testRecords(), Options{}); err != nil {
		t.Fatalf("RenderHTML: %v", err)
	}
	out := buf.String()

	for _, want := range []string{
		"<title>Anthology</title>",
		`href="#poem-1-a1b2"`,
		`<section id="poem-2-c3d4">`,
		"<h2>First Light</h2>",
		"<p>morning breaks over the hills<br/>golden and slow today</p>",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q", want)
		}
	}

	// WHAT: The second record has no stored markup; its plain content is
	// escaped and stanza-wrapped instead.
	// WHY: Records from separator splits carry text only, and that text
	// must never reach the page as live HTML.
	if strings.Contains(out, "<spirals>") {
		t.Error("unescaped content in output")
	}
	if !strings.Contains(out, "<p>raked sand in &lt;spirals&gt;<br/>under the cedar</p>") {
		t.Error("fallback markup missing or misshaped")
	}
	if !strings.Contains(out, "<p>nothing moves here</p>") {
		t.Error("second stanza missing")
	}
}

func TestRenderHTML_Empty(t *testing.T) {
	var buf bytes.Buffer
	if err := RenderHTML(&buf, nil, Options{Title: "My Poems"}); err != nil {
		t.Fatalf("RenderHTML: %v", err)
	}
	out := buf.String()

	if !strings.Contains(out, "<title>My Poems</title>") {
		t.Error("custom title missing")
	}
	if !strings.Contains(out, "No poems yet.") {
		t.Error("empty notice missing")
	}
	if strings.Contains(out, "<nav>") {
		t.Error("table of contents rendered for empty collection")
	}
}

func TestRenderMarkdown(t *testing.T) {
	var buf bytes.Buffer
	if err := RenderMarkdown(&buf, testRecords(), Options{}); err != nil {
		t.Fatalf("RenderMarkdown: %v", err)
	}
	out := buf.String()

	for _, want := range []string{
		"# Anthology",
		"## First Light",
		"## Stone Garden",
		"morning breaks over the hills",
		"](#poem-1-a1b2)",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q", want)
		}
	}
	if strings.Contains(out, "<p>") || strings.Contains(out, "<section") {
		t.Errorf("raw HTML leaked into markdown:\n%s", out)
	}
}
