// Package convert turns source documents into block streams for
// segmentation. One adapter per format, all emitting the same shape:
// typed blocks, sanitized per-block markup, and the document's raw
// text. Adapters keep empty paragraphs instead of collapsing them
// away; those are the stanza gaps segmentation reads.
package convert

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/hazyhaar/strophe/segment"
)

// Format identifies a supported document type.
type Format string

const (
	FormatDOCX Format = "docx"
	FormatODT  Format = "odt"
	FormatHTML Format = "html"
	FormatMD   Format = "md"
	FormatTXT  Format = "txt"
	FormatPDF  Format = "pdf"
)

var (
	// ErrUnsupportedFormat is returned by Detect for unknown extensions.
	ErrUnsupportedFormat = errors.New("convert: unsupported format")

	// ErrEmptyDocument is returned when a document converts cleanly but
	// yields no usable text.
	ErrEmptyDocument = errors.New("convert: document has no usable text")

	// ErrTooLarge is returned when the input exceeds Config.MaxFileSize.
	ErrTooLarge = errors.New("convert: document exceeds size limit")
)

// Result is one adapter's output.
type Result struct {
	Format Format          `json:"format"`
	Blocks []segment.Block `json:"blocks"`

	// Markup is the sanitized HTML fragments of all blocks, joined
	// with newlines.
	Markup string `json:"markup,omitempty"`

	// PlainText is the document's raw text: the file content itself
	// for txt and md, the block texts joined with newlines otherwise.
	// Separator lines survive here for the segmentation engine.
	PlainText string `json:"plain_text"`
}

// Config tunes the converter.
type Config struct {
	// MaxFileSize caps input size in bytes. Default 50 MB.
	MaxFileSize int64

	// Logger defaults to slog.Default().
	Logger *slog.Logger
}

func (c *Config) defaults() {
	if c.MaxFileSize <= 0 {
		c.MaxFileSize = 50 << 20
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
}

// Converter dispatches documents to format adapters.
type Converter struct {
	cfg    Config
	logger *slog.Logger
}

// New returns a Converter. The zero Config is usable.
func New(cfg Config) *Converter {
	cfg.defaults()
	return &Converter{cfg: cfg, logger: cfg.Logger.With("component", "convert")}
}

// Detect maps a file name to its Format by extension.
func (c *Converter) Detect(name string) (Format, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".docx":
		return FormatDOCX, nil
	case ".odt":
		return FormatODT, nil
	case ".html", ".htm":
		return FormatHTML, nil
	case ".md", ".markdown":
		return FormatMD, nil
	case ".txt":
		return FormatTXT, nil
	case ".pdf":
		return FormatPDF, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(name))
	}
}

// Convert runs the adapter for name's format over data. The returned
// error wraps ErrEmptyDocument when the document has no usable text.
// Conversion is not preemptible; ctx is carried for adapters that
// grow I/O later.
func (c *Converter) Convert(ctx context.Context, name string, data []byte) (*Result, error) {
	format, err := c.Detect(name)
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > c.cfg.MaxFileSize {
		return nil, fmt.Errorf("%w: %s is %d bytes (limit %d)", ErrTooLarge, name, len(data), c.cfg.MaxFileSize)
	}

	var res *Result
	switch format {
	case FormatDOCX:
		res, err = convertDOCX(data)
	case FormatODT:
		res, err = convertODT(data)
	case FormatHTML:
		res, err = convertHTML(data)
	case FormatMD:
		res, err = convertText(data, true)
	case FormatTXT:
		res, err = convertText(data, false)
	case FormatPDF:
		res, err = convertPDF(data)
	}
	if err != nil {
		return nil, fmt.Errorf("convert %s: %w", name, err)
	}
	res.Format = format
	if !segment.Substantial(res.PlainText) {
		return nil, fmt.Errorf("%w: %s", ErrEmptyDocument, name)
	}
	c.logger.Debug("converted", "name", name, "format", format, "blocks", len(res.Blocks))
	return res, nil
}

// SupportedFormats lists the adapter formats, sorted.
func SupportedFormats() []string {
	return []string{"docx", "html", "md", "odt", "pdf", "txt"}
}

// joinMarkup flattens block markup into the Result.Markup field.
func joinMarkup(blocks []segment.Block) string {
	var frags []string
	for _, b := range blocks {
		if b.Markup != "" {
			frags = append(frags, b.Markup)
		}
	}
	return strings.Join(frags, "\n")
}

// joinText flattens block texts, empty blocks included, so blank
// lines land in PlainText where the source had vertical gaps.
func joinText(blocks []segment.Block) string {
	texts := make([]string, len(blocks))
	for i, b := range blocks {
		texts[i] = b.Text
	}
	return strings.Join(texts, "\n")
}
