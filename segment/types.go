// Package segment recovers individual poems from extracted document
// blocks. It carries the block model shared with the adapters, the
// title heuristics, and a stack of segmentation strategies tried in
// strict priority order.
package segment

// Kind discriminates block roles in an extracted document stream.
type Kind string

const (
	KindHeading   Kind = "heading"
	KindParagraph Kind = "paragraph"
)

// Block is one paragraph-level unit of an extracted document.
//
// Adapters preserve empty paragraphs: a Block with empty Text marks a
// vertical gap in the source, and the paragraph strategy reads those
// gaps as poem boundaries.
type Block struct {
	Kind     Kind   `json:"kind"`
	Level    int    `json:"level,omitempty"` // heading level 1..3, 0 for paragraphs
	Text     string `json:"text"`            // plain text; lines separated by \n
	Markup   string `json:"markup,omitempty"`
	Bold     bool   `json:"bold,omitempty"`
	Centered bool   `json:"centered,omitempty"`
}

// Span is one poem candidate cut out of a document. Content is the
// block texts joined with newlines; Markup is the corresponding HTML
// fragment, empty when the source carried no formatting.
type Span struct {
	Title   string `json:"title"`
	Content string `json:"content"`
	Markup  string `json:"markup,omitempty"`
}
