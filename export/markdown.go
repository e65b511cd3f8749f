package export

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"

	"github.com/hazyhaar/strophe/anthology"
)

// mdConverter is shared across renders; registration happens once and
// each conversion run keeps its own state.
var mdConverter = converter.NewConverter(
	converter.WithPlugins(
		base.NewBasePlugin(),
		commonmark.NewCommonmarkPlugin(),
	),
)

// RenderMarkdown renders the anthology as HTML and converts the result
// to portable Markdown, so both exports always agree on structure.
func RenderMarkdown(w io.Writer, recs []anthology.Record, opts Options) error {
	var buf bytes.Buffer
	if err := RenderHTML(&buf, recs, opts); err != nil {
		return err
	}
	md, err := mdConverter.ConvertString(buf.String())
	if err != nil {
		return fmt.Errorf("render markdown: %w", err)
	}
	_, err = io.WriteString(w, strings.TrimSpace(md)+"\n")
	return err
}
