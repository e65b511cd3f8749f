package segment

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// splitByParagraphs reads poem boundaries from paragraph rhythm. An
// empty paragraph always ends the current poem; a very short one ends
// it only once the poem has content. A short emphasized paragraph at
// the start of a poem names it. Heading blocks are ignored here: the
// heading strategy already had its turn.
func splitByParagraphs(blocks []Block, _ string) []Span {
	var paras []Block
	for _, b := range blocks {
		if b.Kind == KindParagraph {
			paras = append(paras, b)
		}
	}
	if len(paras) <= 3 {
		return nil
	}

	var spans []Span
	var cur []Block
	var pending string

	flush := func() {
		content, markup := joinBlocks(cur)
		if Substantial(content) {
			title := strings.TrimSpace(pending)
			if title == "" {
				title = fmt.Sprintf("Poem %d", len(spans)+1)
			}
			spans = append(spans, Span{Title: cleanTitle(title), Content: content, Markup: markup})
		}
		cur = nil
		pending = ""
	}

	for _, p := range paras {
		t := strings.TrimSpace(p.Text)
		if t == "" || (utf8.RuneCountInString(t) < poemFloorRunes && len(cur) > 0) {
			flush()
			continue
		}
		if len(cur) == 0 && titleCandidate(p, t) {
			pending = t
		}
		cur = append(cur, p)
	}
	flush()

	if len(spans) < 2 {
		return nil
	}
	return spans
}

// titleCandidate reports whether a paragraph opening a poem looks like
// its title: short, and either visually emphasized or shaped like a
// heading line (leading capital, no sentence punctuation). The
// candidate stays part of the poem's own content.
func titleCandidate(p Block, trimmed string) bool {
	n := utf8.RuneCountInString(trimmed)
	if n == 0 || n >= candidateRunes {
		return false
	}
	if p.Bold || p.Centered {
		return true
	}
	r, _ := utf8.DecodeRuneInString(trimmed)
	return unicode.IsUpper(r) && !strings.ContainsAny(trimmed, ".!?")
}
