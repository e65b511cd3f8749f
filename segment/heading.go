package segment

import (
	"fmt"
	"strings"
)

// splitByHeadings cuts the stream at heading blocks. It applies when
// the document carries at least two headings: each heading titles the
// blocks that follow it, up to the next heading. Anything before the
// first heading is front matter and is dropped.
func splitByHeadings(blocks []Block, _ string) []Span {
	var marks []int
	for i, b := range blocks {
		if b.Kind == KindHeading {
			marks = append(marks, i)
		}
	}
	if len(marks) < 2 {
		return nil
	}

	var spans []Span
	for n, start := range marks {
		end := len(blocks)
		if n+1 < len(marks) {
			end = marks[n+1]
		}
		content, markup := joinBlocks(blocks[start+1 : end])
		if !Substantial(content) {
			continue
		}
		title := strings.TrimSpace(blocks[start].Text)
		if title == "" {
			title = fmt.Sprintf("Poem %d", n+1)
		}
		spans = append(spans, Span{Title: cleanTitle(title), Content: content, Markup: markup})
	}
	if len(spans) < 2 {
		return nil
	}
	return spans
}
