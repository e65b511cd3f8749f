// Package batch feeds documents through conversion and segmentation
// and appends every poem found to a collection. Documents are
// processed strictly in order, one at a time; a document that fails
// is recorded and the batch moves on.
package batch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/hazyhaar/strophe/anthology"
	"github.com/hazyhaar/strophe/convert"
	"github.com/hazyhaar/strophe/segment"
)

// Document is one input file.
type Document struct {
	Name string
	Data []byte
}

// Failure records a document that could not be processed.
type Failure struct {
	SourceName string `json:"source_name"`
	Message    string `json:"message"`
}

// Result sums up one batch run.
type Result struct {
	Appended   int       `json:"appended"`
	Duplicates int       `json:"duplicates"`
	Failures   []Failure `json:"failures,omitempty"`
}

// ProgressFunc is called before each document is processed. index is
// zero-based.
type ProgressFunc func(index, total int, name string)

// Processor holds the conversion and record-building machinery for
// batch runs.
type Processor struct {
	conv     *convert.Converter
	factory  *anthology.Factory
	logger   *slog.Logger
	progress ProgressFunc
}

// Option configures a Processor.
type Option func(*Processor)

// WithConverter replaces the default converter.
func WithConverter(c *convert.Converter) Option {
	return func(p *Processor) { p.conv = c }
}

// WithFactory replaces the default record factory.
func WithFactory(f *anthology.Factory) Option {
	return func(p *Processor) { p.factory = f }
}

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(p *Processor) { p.logger = l }
}

// WithProgress sets a progress callback.
func WithProgress(fn ProgressFunc) Option {
	return func(p *Processor) { p.progress = fn }
}

// NewProcessor returns a Processor with defaults applied.
func NewProcessor(opts ...Option) *Processor {
	p := &Processor{
		conv:    convert.New(convert.Config{}),
		factory: anthology.NewFactory(),
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Process runs docs in order against coll. Every poem that segmentation
// finds is appended; duplicates are counted, not errors. The result
// reflects what happened to each document, so a partially failed batch
// still reports its successes.
func (p *Processor) Process(ctx context.Context, docs []Document, coll *anthology.Collection) Result {
	var res Result
	for i, doc := range docs {
		if p.progress != nil {
			p.progress(i, len(docs), doc.Name)
		}

		spans, err := p.split(ctx, doc)
		if err != nil {
			p.logger.Warn("document failed", "name", doc.Name, "error", err)
			res.Failures = append(res.Failures, Failure{SourceName: doc.Name, Message: err.Error()})
			continue
		}

		for _, span := range spans {
			rec := p.factory.Make(span, doc.Name)
			if err := coll.Add(rec); err != nil {
				if errors.Is(err, anthology.ErrDuplicateRecord) {
					p.logger.Debug("duplicate skipped", "name", doc.Name, "title", rec.Title)
					res.Duplicates++
					continue
				}
				res.Failures = append(res.Failures, Failure{SourceName: doc.Name, Message: err.Error()})
				continue
			}
			res.Appended++
		}
		p.logger.Info("document processed", "name", doc.Name, "poems", len(spans))
	}
	return res
}

// split converts one document and segments it. When segmentation
// finds fewer than two poems the whole document becomes a single span
// titled by the usual heuristics.
func (p *Processor) split(ctx context.Context, doc Document) ([]segment.Span, error) {
	out, err := p.conv.Convert(ctx, doc.Name, doc.Data)
	if err != nil {
		return nil, err
	}

	if spans := segment.Split(out.Blocks, out.PlainText); len(spans) > 0 {
		return spans, nil
	}

	content := strings.TrimSpace(out.PlainText)
	if !segment.Substantial(content) {
		return nil, fmt.Errorf("no usable content in %s", doc.Name)
	}
	return []segment.Span{{
		Title:   segment.InferTitle(out.Blocks, doc.Name),
		Content: content,
		Markup:  out.Markup,
	}}, nil
}
