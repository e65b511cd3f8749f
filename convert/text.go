package convert

import (
	"strings"

	"github.com/hazyhaar/strophe/segment"
)

// convertText handles plain text and, when markdown is set, ATX
// headings and whole-line bold. Line structure is preserved: lines of
// a block joined with newlines, every blank line kept as an empty
// block so stanza gaps and separator runs survive into PlainText.
func convertText(data []byte, markdown bool) (*Result, error) {
	content := strings.ReplaceAll(string(data), "\r\n", "\n")
	content = strings.ReplaceAll(content, "\r", "\n")

	var blocks []segment.Block
	var cur []string

	flushParagraph := func() {
		if len(cur) == 0 {
			return
		}
		text := strings.Join(cur, "\n")
		cur = nil
		bold := false
		if markdown {
			if inner, ok := wholeLineBold(text); ok {
				text = inner
				bold = true
			}
		}
		blocks = append(blocks, segment.Block{Kind: segment.KindParagraph, Text: text, Bold: bold})
	}

	for _, line := range strings.Split(content, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			flushParagraph()
			blocks = append(blocks, segment.Block{Kind: segment.KindParagraph})
			continue
		}
		if markdown && strings.HasPrefix(trimmed, "#") {
			level := 0
			for _, r := range trimmed {
				if r != '#' {
					break
				}
				level++
			}
			text := strings.TrimSpace(strings.TrimLeft(trimmed, "#"))
			text = strings.TrimSpace(strings.TrimRight(text, "#"))
			if text != "" && level <= 6 {
				flushParagraph()
				if level > 3 {
					level = 3
				}
				blocks = append(blocks, segment.Block{Kind: segment.KindHeading, Level: level, Text: text})
				continue
			}
		}
		cur = append(cur, normalizeLine(trimmed))
	}
	flushParagraph()

	blocks = trimEdges(blocks)
	fillMarkup(blocks)
	return &Result{Blocks: blocks, Markup: joinMarkup(blocks), PlainText: content}, nil
}

// wholeLineBold reports whether every line of text is **wrapped**,
// and returns the unwrapped text when so.
func wholeLineBold(text string) (string, bool) {
	lines := strings.Split(text, "\n")
	inner := make([]string, len(lines))
	for i, line := range lines {
		if len(line) < 5 || !strings.HasPrefix(line, "**") || !strings.HasSuffix(line, "**") {
			return "", false
		}
		stripped := strings.TrimSpace(line[2 : len(line)-2])
		if stripped == "" || strings.Contains(stripped, "**") {
			return "", false
		}
		inner[i] = stripped
	}
	return strings.Join(inner, "\n"), true
}

// normalizeLine collapses internal whitespace runs within one line.
func normalizeLine(line string) string {
	return strings.Join(strings.Fields(line), " ")
}

// tidyText normalizes each line of a multi-line block while keeping
// the line structure itself, then trims the outer edges.
func tidyText(s string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = normalizeLine(line)
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}

// lineBlocks groups non-blank lines into paragraph blocks, one empty
// block per blank line.
func lineBlocks(text string) []segment.Block {
	var blocks []segment.Block
	var cur []string
	flush := func() {
		if len(cur) == 0 {
			return
		}
		blocks = append(blocks, segment.Block{Kind: segment.KindParagraph, Text: strings.Join(cur, "\n")})
		cur = nil
	}
	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			flush()
			blocks = append(blocks, segment.Block{Kind: segment.KindParagraph})
			continue
		}
		cur = append(cur, normalizeLine(trimmed))
	}
	flush()
	return blocks
}

// trimEdges drops leading and trailing empty blocks.
func trimEdges(blocks []segment.Block) []segment.Block {
	start := 0
	for start < len(blocks) && blocks[start].Text == "" {
		start++
	}
	end := len(blocks)
	for end > start && blocks[end-1].Text == "" {
		end--
	}
	return blocks[start:end]
}
