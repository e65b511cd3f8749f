package convert

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/hazyhaar/strophe/segment"
)

var hiddenStylePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)display\s*:\s*none`),
	regexp.MustCompile(`(?i)visibility\s*:\s*hidden`),
	regexp.MustCompile(`(?i)font-size\s*:\s*0[^1-9]`),
}

func hasHiddenStyle(n *html.Node) bool {
	if n.Type != html.ElementNode {
		return false
	}
	for _, a := range n.Attr {
		if a.Key == "style" {
			for _, pat := range hiddenStylePatterns {
				if pat.MatchString(a.Val) {
					return true
				}
			}
		}
	}
	return false
}

var centerStyleRe = regexp.MustCompile(`(?i)text-align\s*:\s*center`)

func isCentered(n *html.Node) bool {
	if n.Type != html.ElementNode {
		return false
	}
	if n.DataAtom == atom.Center {
		return true
	}
	for _, a := range n.Attr {
		switch a.Key {
		case "align":
			if strings.EqualFold(a.Val, "center") {
				return true
			}
		case "style":
			if centerStyleRe.MatchString(a.Val) {
				return true
			}
		}
	}
	return false
}

// convertHTML walks the DOM. Headings and p elements become blocks,
// hr becomes an empty block, pre content is split on its blank lines.
// Boilerplate containers and hidden elements are skipped.
func convertHTML(data []byte) (*Result, error) {
	doc, err := html.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	var blocks []segment.Block
	walkHTML(doc, false, &blocks)

	if len(blocks) == 0 {
		// No block elements at all: take all visible text as one block.
		tc := &htmlCollector{}
		tc.walk(doc, false)
		if text := tc.text(); text != "" {
			blocks = append(blocks, segment.Block{Kind: segment.KindParagraph, Text: text})
		}
	}

	blocks = trimEdges(blocks)
	fillMarkup(blocks)
	return &Result{Blocks: blocks, Markup: joinMarkup(blocks), PlainText: joinText(blocks)}, nil
}

func walkHTML(n *html.Node, centered bool, blocks *[]segment.Block) {
	if n.Type == html.ElementNode {
		switch n.DataAtom {
		case atom.Script, atom.Style, atom.Noscript, atom.Head, atom.Nav, atom.Footer, atom.Header, atom.Iframe:
			return
		}
		if hasHiddenStyle(n) {
			return
		}
		if isCentered(n) {
			centered = true
		}

		switch n.DataAtom {
		case atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6:
			tc := &htmlCollector{}
			tc.walk(n, false)
			if text := tc.text(); text != "" {
				level := int(n.Data[1] - '0')
				if level > 3 {
					level = 3
				}
				*blocks = append(*blocks, segment.Block{Kind: segment.KindHeading, Level: level, Text: text, Centered: centered})
			}
			return

		case atom.P, atom.Blockquote:
			tc := &htmlCollector{}
			tc.walk(n, false)
			*blocks = append(*blocks, segment.Block{
				Kind:     segment.KindParagraph,
				Text:     tc.text(),
				Bold:     tc.sawAny && !tc.sawPlain,
				Centered: centered,
			})
			return

		case atom.Pre:
			tc := &htmlCollector{pre: true}
			tc.walk(n, false)
			*blocks = append(*blocks, lineBlocks(tc.sb.String())...)
			return

		case atom.Hr:
			// a rule reads as a vertical gap
			*blocks = append(*blocks, segment.Block{Kind: segment.KindParagraph})
			return

		case atom.Ul, atom.Ol:
			var lines []string
			for c := n.FirstChild; c != nil; c = c.NextSibling {
				if c.Type == html.ElementNode && c.DataAtom == atom.Li {
					tc := &htmlCollector{}
					tc.walk(c, false)
					if text := tc.text(); text != "" {
						lines = append(lines, text)
					}
				}
			}
			if len(lines) > 0 {
				*blocks = append(*blocks, segment.Block{Kind: segment.KindParagraph, Text: strings.Join(lines, "\n"), Centered: centered})
			}
			return
		}
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walkHTML(c, centered, blocks)
	}
}

// htmlCollector flattens a subtree's visible text. br becomes a line
// break; in pre mode source newlines survive as line breaks too.
// sawPlain tracks text outside strong/b so a caller can tell a fully
// bold block from a mixed one.
type htmlCollector struct {
	sb       strings.Builder
	pre      bool
	sawAny   bool
	sawPlain bool
}

func (tc *htmlCollector) walk(n *html.Node, bold bool) {
	switch n.Type {
	case html.TextNode:
		if strings.TrimSpace(n.Data) != "" {
			tc.sawAny = true
			if !bold {
				tc.sawPlain = true
			}
		}
		if tc.pre {
			tc.sb.WriteString(n.Data)
			return
		}
		text := strings.Join(strings.Fields(n.Data), " ")
		if text != "" {
			if s := tc.sb.String(); s != "" && s[len(s)-1] != '\n' {
				tc.sb.WriteByte(' ')
			}
			tc.sb.WriteString(text)
		}
		return

	case html.ElementNode:
		switch n.DataAtom {
		case atom.Script, atom.Style, atom.Noscript, atom.Head:
			return
		case atom.Br:
			tc.sb.WriteByte('\n')
			return
		case atom.B, atom.Strong:
			bold = true
		}
		if hasHiddenStyle(n) {
			return
		}
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		tc.walk(c, bold)
	}
}

func (tc *htmlCollector) text() string {
	return tidyText(tc.sb.String())
}
