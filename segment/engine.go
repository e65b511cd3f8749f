package segment

import "strings"

type strategy func(blocks []Block, raw string) []Span

// Strategy order is part of the contract: heading structure beats
// paragraph rhythm beats separator lines, even when a later strategy
// would cut cleaner. Strategies never blend results.
var strategies = []strategy{splitByHeadings, splitByParagraphs, splitBySeparators}

// Split recovers poem candidates from one document. blocks is the
// adapter's block stream; raw is the document's raw text (HTML input
// is tolerated, tags are stripped when separator parts are read). The
// first strategy yielding more than one span is authoritative. A nil
// result means the document reads as a single poem and the caller
// decides how to title it.
func Split(blocks []Block, raw string) []Span {
	for _, s := range strategies {
		if spans := s(blocks, raw); len(spans) > 1 {
			return spans
		}
	}
	return nil
}

// joinBlocks flattens a block range into span content and markup.
// Interior empty texts are kept as blank lines, the stanza gaps of
// the source document; blank lines at the edges are trimmed and empty
// markup fragments dropped.
func joinBlocks(blocks []Block) (content, markup string) {
	texts := make([]string, len(blocks))
	var frags []string
	for i, b := range blocks {
		texts[i] = b.Text
		if b.Markup != "" {
			frags = append(frags, b.Markup)
		}
	}
	content = strings.Trim(strings.Join(texts, "\n"), "\n")
	return content, strings.Join(frags, "\n")
}
