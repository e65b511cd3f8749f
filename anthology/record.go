// Package anthology manages poem records: a factory that mints them
// from segmentation spans and an ordered collection with duplicate
// suppression. The package is pure bookkeeping; persistence and
// transport live elsewhere.
package anthology

import (
	"encoding/hex"
	"strings"
	"time"

	"github.com/zeebo/blake3"

	"github.com/hazyhaar/strophe/idgen"
	"github.com/hazyhaar/strophe/segment"
)

// Record is one poem.
type Record struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Content     string    `json:"content"`
	Markup      string    `json:"markup,omitempty"`
	SourceName  string    `json:"source_name,omitempty"`
	WordCount   int       `json:"word_count"`
	Fingerprint string    `json:"fingerprint"`
	AddedAt     time.Time `json:"added_at"`
}

// Factory mints Records from segmentation spans. The ID generator and
// clock are injectable so tests get deterministic records.
type Factory struct {
	newID idgen.Generator
	now   func() time.Time
}

// FactoryOption customises a Factory.
type FactoryOption func(*Factory)

// WithIDGenerator overrides the record ID source.
func WithIDGenerator(gen idgen.Generator) FactoryOption {
	return func(f *Factory) { f.newID = gen }
}

// WithClock overrides the timestamp source.
func WithClock(now func() time.Time) FactoryOption {
	return func(f *Factory) { f.now = now }
}

// NewFactory returns a Factory with UUIDv7 IDs and the system clock.
func NewFactory(opts ...FactoryOption) *Factory {
	f := &Factory{newID: idgen.Default, now: time.Now}
	for _, o := range opts {
		o(f)
	}
	return f
}

// Make builds a Record from one span. The fingerprint is a BLAKE3 hash
// of the content, kept for store indexing; byte comparison remains the
// authority for duplicate detection.
func (f *Factory) Make(span segment.Span, sourceName string) Record {
	sum := blake3.Sum256([]byte(span.Content))
	return Record{
		ID:          f.newID(),
		Title:       span.Title,
		Content:     span.Content,
		Markup:      span.Markup,
		SourceName:  sourceName,
		WordCount:   len(strings.Fields(span.Content)),
		Fingerprint: hex.EncodeToString(sum[:]),
		AddedAt:     f.now().UTC(),
	}
}
