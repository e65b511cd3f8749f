package convert

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/antchfx/xmlquery"

	"github.com/hazyhaar/strophe/segment"
)

type odtStyle struct {
	bold     bool
	centered bool
}

// convertODT reads content.xml from the archive. text:h maps to a
// heading via its outline level, text:p to a paragraph; bold and
// centering come from the document's automatic styles. Empty
// paragraphs are kept.
func convertODT(data []byte) (*Result, error) {
	root, err := parseArchiveXML(data, "content.xml")
	if err != nil {
		return nil, err
	}

	styles := odtStyles(root)

	nodes, err := xmlquery.QueryAll(root, "//*[local-name()='body']//*[local-name()='p' or local-name()='h']")
	if err != nil {
		return nil, fmt.Errorf("query paragraphs: %w", err)
	}

	blocks := make([]segment.Block, 0, len(nodes))
	for _, n := range nodes {
		blocks = append(blocks, odtBlock(n, styles))
	}

	blocks = trimEdges(blocks)
	fillMarkup(blocks)
	return &Result{Blocks: blocks, Markup: joinMarkup(blocks), PlainText: joinText(blocks)}, nil
}

// odtStyles indexes the automatic style definitions by name.
func odtStyles(root *xmlquery.Node) map[string]odtStyle {
	styles := make(map[string]odtStyle)
	nodes, err := xmlquery.QueryAll(root, "//*[local-name()='style']")
	if err != nil {
		return styles
	}
	for _, n := range nodes {
		name := attrLocal(n, "name")
		if name == "" {
			continue
		}
		var st odtStyle
		if tp := childElem(n, "text-properties"); tp != nil {
			st.bold = strings.EqualFold(attrLocal(tp, "font-weight"), "bold")
		}
		if pp := childElem(n, "paragraph-properties"); pp != nil {
			st.centered = strings.EqualFold(attrLocal(pp, "text-align"), "center")
		}
		styles[name] = st
	}
	return styles
}

func odtBlock(n *xmlquery.Node, styles map[string]odtStyle) segment.Block {
	st := styles[attrLocal(n, "style-name")]

	oc := &odtCollector{styles: styles}
	oc.walk(n, st.bold)
	text := tidyText(oc.sb.String())

	if n.Data == "h" {
		level := 1
		if v, err := strconv.Atoi(attrLocal(n, "outline-level")); err == nil && v > 0 {
			level = v
		}
		if level > 3 {
			level = 3
		}
		return segment.Block{Kind: segment.KindHeading, Level: level, Text: text, Centered: st.centered}
	}

	bold := st.bold || (oc.sawText && !oc.sawPlain)
	return segment.Block{Kind: segment.KindParagraph, Text: text, Bold: bold, Centered: st.centered}
}

// odtCollector flattens a text:p or text:h subtree. line-break, tab
// and repeated-space elements become whitespace; footnotes and
// annotations are dropped. sawPlain tracks text outside bold spans so
// the caller can tell a fully bold paragraph from a mixed one.
type odtCollector struct {
	styles   map[string]odtStyle
	sb       strings.Builder
	sawText  bool
	sawPlain bool
}

func (oc *odtCollector) walk(n *xmlquery.Node, bold bool) {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		switch c.Type {
		case xmlquery.TextNode, xmlquery.CharDataNode:
			if strings.TrimSpace(c.Data) != "" {
				oc.sawText = true
				if !bold {
					oc.sawPlain = true
				}
			}
			oc.sb.WriteString(c.Data)
		case xmlquery.ElementNode:
			switch c.Data {
			case "line-break":
				oc.sb.WriteString("\n")
			case "tab":
				oc.sb.WriteString(" ")
			case "s":
				count := 1
				if v, err := strconv.Atoi(attrLocal(c, "c")); err == nil && v > 0 {
					count = v
				}
				oc.sb.WriteString(strings.Repeat(" ", count))
			case "note", "annotation":
				// footnote bodies and comments are not poem text
			case "span":
				oc.walk(c, bold || oc.styles[attrLocal(c, "style-name")].bold)
			default:
				oc.walk(c, bold)
			}
		}
	}
}
