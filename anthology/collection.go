package anthology

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// dedupFloorRunes is the trimmed content length a poem must exceed
// before duplicate suppression applies. Short poems repeat legitimately
// (refrains, haiku variants), so they are never suppressed.
const dedupFloorRunes = 50

// Collection is an ordered set of poems. It is not safe for concurrent
// use; callers serialize access.
type Collection struct {
	recs []Record
}

// NewCollection returns an empty collection.
func NewCollection() *Collection {
	return &Collection{}
}

// Restore rebuilds a collection from a persisted snapshot, keeping
// order and skipping duplicate checks.
func Restore(recs []Record) *Collection {
	c := &Collection{recs: make([]Record, len(recs))}
	copy(c.recs, recs)
	return c
}

// Add appends rec to the end of the collection. It returns
// ErrDuplicateRecord when an existing record has the same title
// (case-insensitive) and byte-identical trimmed content, provided the
// incoming content exceeds the dedup floor. The collection is
// unchanged on error.
func (c *Collection) Add(rec Record) error {
	if c.duplicates(rec) {
		return fmt.Errorf("%w: %q", ErrDuplicateRecord, rec.Title)
	}
	c.recs = append(c.recs, rec)
	return nil
}

func (c *Collection) duplicates(rec Record) bool {
	content := strings.TrimSpace(rec.Content)
	if utf8.RuneCountInString(content) <= dedupFloorRunes {
		return false
	}
	for _, r := range c.recs {
		if strings.EqualFold(r.Title, rec.Title) && strings.TrimSpace(r.Content) == content {
			return true
		}
	}
	return false
}

// Move relocates the record at from so it ends up at position to,
// shifting the records between them. Both indexes address the
// collection as it is before the move; moving a record onto its own
// position is a no-op.
func (c *Collection) Move(from, to int) error {
	if from < 0 || from >= len(c.recs) || to < 0 || to >= len(c.recs) {
		return fmt.Errorf("%w: move %d to %d of %d", ErrIndexOutOfRange, from, to, len(c.recs))
	}
	if from == to {
		return nil
	}
	rec := c.recs[from]
	c.recs = append(c.recs[:from], c.recs[from+1:]...)
	c.recs = append(c.recs, Record{})
	copy(c.recs[to+1:], c.recs[to:])
	c.recs[to] = rec
	return nil
}

// Remove deletes and returns the record at index i.
func (c *Collection) Remove(i int) (Record, error) {
	if i < 0 || i >= len(c.recs) {
		return Record{}, fmt.Errorf("%w: remove %d of %d", ErrIndexOutOfRange, i, len(c.recs))
	}
	rec := c.recs[i]
	c.recs = append(c.recs[:i], c.recs[i+1:]...)
	return rec, nil
}

// Clear drops every record.
func (c *Collection) Clear() {
	c.recs = nil
}

// Len returns the number of records.
func (c *Collection) Len() int {
	return len(c.recs)
}

// At returns the record at index i.
func (c *Collection) At(i int) (Record, error) {
	if i < 0 || i >= len(c.recs) {
		return Record{}, fmt.Errorf("%w: at %d of %d", ErrIndexOutOfRange, i, len(c.recs))
	}
	return c.recs[i], nil
}

// Snapshot returns a copy of the records in collection order. Mutating
// the copy does not touch the collection.
func (c *Collection) Snapshot() []Record {
	out := make([]Record, len(c.recs))
	copy(out, c.recs)
	return out
}
