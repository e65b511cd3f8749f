package segment

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Separator patterns, tried one at a time in this order. Each matches
// a whole line of three or more repeated rule characters, or a run of
// four or more newlines (three blank lines on screen).
var separatorPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\n[ \t]*\*{3,}[ \t]*\n`),
	regexp.MustCompile(`\n[ \t]*-{3,}[ \t]*\n`),
	regexp.MustCompile(`\n[ \t]*_{3,}[ \t]*\n`),
	regexp.MustCompile(`\n[ \t]*={3,}[ \t]*\n`),
	regexp.MustCompile(`\n[ \t]*~{3,}[ \t]*\n`),
	regexp.MustCompile(`\n{4,}`),
}

// splitBySeparators cuts the raw text on horizontal-rule lines or long
// newline runs. The first pattern that carves out two usable parts is
// authoritative; later patterns are not tried. Part numbering in
// fallback titles follows the original split, so a skipped part leaves
// a visible gap.
func splitBySeparators(_ []Block, raw string) []Span {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	for _, re := range separatorPatterns {
		parts := re.Split(raw, -1)
		if len(parts) < 2 {
			continue
		}
		var spans []Span
		for k, part := range parts {
			text := strings.TrimSpace(partText(part))
			if !Substantial(text) {
				continue
			}
			title := firstNonEmptyLine(text)
			if n := utf8.RuneCountInString(title); n == 0 || n >= candidateRunes {
				title = fmt.Sprintf("Poem %d", k+1)
			}
			spans = append(spans, Span{Title: cleanTitle(title), Content: text})
		}
		if len(spans) >= 2 {
			return spans
		}
	}
	return nil
}

// partText derives displayable text from one raw part. Parts cut from
// HTML sources still carry tags; those are stripped. Plain parts pass
// through untouched.
func partText(part string) string {
	if !strings.ContainsRune(part, '<') {
		return part
	}
	return stripTags(part)
}

// stripTags flattens an HTML fragment to text, inserting line breaks
// after block-level elements. Unparseable input is returned as-is.
func stripTags(s string) string {
	doc, err := html.Parse(strings.NewReader(s))
	if err != nil {
		return s
	}
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.DataAtom {
			case atom.Script, atom.Style:
				return
			case atom.Br:
				b.WriteByte('\n')
				return
			}
		}
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
		if n.Type == html.ElementNode {
			switch n.DataAtom {
			case atom.P, atom.Div, atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6, atom.Li, atom.Blockquote:
				b.WriteByte('\n')
			}
		}
	}
	walk(doc)
	return b.String()
}

func firstNonEmptyLine(s string) string {
	for _, line := range strings.Split(s, "\n") {
		if t := strings.TrimSpace(line); t != "" {
			return t
		}
	}
	return ""
}
