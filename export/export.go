// Package export renders an anthology of poems as a standalone HTML
// document or as portable Markdown. Both renderers share one layout: a
// table of contents linking into per-poem sections by stable anchors.
package export

import (
	"fmt"

	"github.com/hazyhaar/strophe/anthology"
)

// Entry is one table-of-contents line for a rendered anthology.
type Entry struct {
	Anchor    string
	Title     string
	WordCount int
	Position  int // 1-based
}

// Options adjust a rendered anthology.
type Options struct {
	// Title heads the document and its <title>. Empty means "Anthology".
	Title string
}

func (o Options) title() string {
	if o.Title == "" {
		return "Anthology"
	}
	return o.Title
}

// Anchor builds the fragment id of the poem at the given 1-based
// position. The id keeps anchors stable across renders of the same
// collection while the position keeps them readable.
func Anchor(position int, id string) string {
	return fmt.Sprintf("poem-%d-%s", position, id)
}

// Entries computes the table of contents for recs in collection order.
func Entries(recs []anthology.Record) []Entry {
	entries := make([]Entry, len(recs))
	for i, rec := range recs {
		entries[i] = Entry{
			Anchor:    Anchor(i+1, rec.ID),
			Title:     rec.Title,
			WordCount: rec.WordCount,
			Position:  i + 1,
		}
	}
	return entries
}
