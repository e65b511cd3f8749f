package convert

import (
	"archive/zip"
	"bytes"
	"fmt"
	"strings"

	"github.com/antchfx/xmlquery"

	"github.com/hazyhaar/strophe/segment"
)

// convertDOCX reads word/document.xml from the archive and maps each
// w:p to one block. Empty paragraphs are kept: they are the vertical
// gaps segmentation splits on.
func convertDOCX(data []byte) (*Result, error) {
	root, err := parseArchiveXML(data, "word/document.xml")
	if err != nil {
		return nil, err
	}

	paras, err := xmlquery.QueryAll(root, "//*[local-name()='body']//*[local-name()='p']")
	if err != nil {
		return nil, fmt.Errorf("query paragraphs: %w", err)
	}

	blocks := make([]segment.Block, 0, len(paras))
	for _, p := range paras {
		blocks = append(blocks, docxBlock(p))
	}

	blocks = trimEdges(blocks)
	fillMarkup(blocks)
	return &Result{Blocks: blocks, Markup: joinMarkup(blocks), PlainText: joinText(blocks)}, nil
}

// parseArchiveXML opens one XML member of a ZIP container.
func parseArchiveXML(data []byte, member string) (*xmlquery.Node, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("open zip: %w", err)
	}

	var file *zip.File
	for _, f := range zr.File {
		if f.Name == member {
			file = f
			break
		}
	}
	if file == nil {
		return nil, fmt.Errorf("%s not found in archive", member)
	}

	rc, err := file.Open()
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", member, err)
	}
	defer rc.Close()

	root, err := xmlquery.Parse(rc)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", member, err)
	}
	return root, nil
}

func docxBlock(p *xmlquery.Node) segment.Block {
	var style string
	var centered bool
	if pr := childElem(p, "pPr"); pr != nil {
		if ps := childElem(pr, "pStyle"); ps != nil {
			style = attrLocal(ps, "val")
		}
		if jc := childElem(pr, "jc"); jc != nil {
			centered = strings.EqualFold(attrLocal(jc, "val"), "center")
		}
	}

	var sb strings.Builder
	textRuns, boldRuns := 0, 0
	var walk func(*xmlquery.Node)
	walk = func(n *xmlquery.Node) {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type != xmlquery.ElementNode {
				continue
			}
			switch c.Data {
			case "pPr":
				// paragraph properties carry no text
			case "r":
				text := docxRunText(c)
				if strings.TrimSpace(text) != "" {
					textRuns++
					if docxRunBold(c) {
						boldRuns++
					}
				}
				sb.WriteString(text)
			default:
				// hyperlinks and smart tags wrap runs
				walk(c)
			}
		}
	}
	walk(p)

	text := tidyText(sb.String())
	if level := styleHeadingLevel(style); level > 0 && text != "" {
		return segment.Block{Kind: segment.KindHeading, Level: level, Text: text, Centered: centered}
	}
	bold := textRuns > 0 && boldRuns == textRuns
	return segment.Block{Kind: segment.KindParagraph, Text: text, Bold: bold, Centered: centered}
}

// docxRunText flattens one w:r: w:t content with w:br as line break
// and w:tab as a space.
func docxRunText(r *xmlquery.Node) string {
	var sb strings.Builder
	var walk func(*xmlquery.Node)
	walk = func(n *xmlquery.Node) {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type != xmlquery.ElementNode {
				continue
			}
			switch c.Data {
			case "t":
				sb.WriteString(c.InnerText())
			case "br", "cr":
				sb.WriteString("\n")
			case "tab":
				sb.WriteString(" ")
			case "rPr":
				// run properties carry no text
			default:
				walk(c)
			}
		}
	}
	walk(r)
	return sb.String()
}

func docxRunBold(r *xmlquery.Node) bool {
	pr := childElem(r, "rPr")
	if pr == nil {
		return false
	}
	b := childElem(pr, "b")
	if b == nil {
		return false
	}
	switch strings.ToLower(attrLocal(b, "val")) {
	case "false", "0", "none":
		return false
	}
	return true
}

// styleHeadingLevel maps a Word paragraph style name to a heading
// level. "Title" and "Subtitle" rank as levels 1 and 2; numbered
// heading styles ("Heading1", "Titre2", "Überschrift3") keep their
// number, capped at 3.
func styleHeadingLevel(style string) int {
	lower := strings.ToLower(style)
	if lower == "title" {
		return 1
	}
	if lower == "subtitle" {
		return 2
	}
	for _, prefix := range []string{"heading", "titre", "überschrift"} {
		if strings.HasPrefix(lower, prefix) {
			rest := lower[len(prefix):]
			if len(rest) == 1 && rest[0] >= '1' && rest[0] <= '6' {
				level := int(rest[0] - '0')
				if level > 3 {
					level = 3
				}
				return level
			}
		}
	}
	return 0
}

func childElem(n *xmlquery.Node, local string) *xmlquery.Node {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == xmlquery.ElementNode && c.Data == local {
			return c
		}
	}
	return nil
}

// attrLocal looks an attribute up by local name, whatever namespace
// prefix the producing application chose.
func attrLocal(n *xmlquery.Node, local string) string {
	for _, a := range n.Attr {
		if a.Name.Local == local {
			return a.Value
		}
	}
	return ""
}
