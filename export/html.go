package export

import (
	"html"
	"html/template"
	"io"
	"strings"

	"github.com/hazyhaar/strophe/anthology"
)

// poemView is the template-friendly projection of a Record.
type poemView struct {
	Anchor    string
	Title     string
	WordCount int
	// Markup is trusted here because every record's markup went through
	// the bluemonday policy at conversion time.
	Markup template.HTML
}

var anthologyTmpl = template.Must(template.New("anthology").Parse(`<!DOCTYPE html>
<html lang="en"><head><meta charset="UTF-8"><meta name="viewport" content="width=device-width,initial-scale=1">
<title>{{.Title}}</title>
<style>
body{font-family:Georgia,serif;max-width:700px;margin:2rem auto;padding:0 1rem;color:#222;background:#fffdf8}
h1{font-size:1.6rem;border-bottom:2px solid #e0d8c8;padding-bottom:.5rem}
nav ol{line-height:1.8}
nav .words{font-size:.8rem;color:#888}
section{margin-top:3rem}
section h2{font-size:1.2rem}
section p{line-height:1.7}
.empty{color:#999;font-style:italic}
</style></head><body>
<h1>{{.Title}}</h1>
{{- if eq .Count 0}}
<p class="empty">No poems yet.</p>
{{- else}}
<nav><ol>
{{- range .Poems}}
<li><a href="#{{.Anchor}}">{{.Title}}</a> <span class="words">({{.WordCount}} words)</span></li>
{{- end}}
</ol></nav>
{{- end}}
{{- range .Poems}}
<section id="{{.Anchor}}">
<h2>{{.Title}}</h2>
{{.Markup}}
</section>
{{- end}}
</body></html>`))

// RenderHTML writes the whole anthology as one self-contained HTML
// document: title, table of contents, one section per poem in
// collection order.
func RenderHTML(w io.Writer, recs []anthology.Record, opts Options) error {
	views := make([]poemView, len(recs))
	for i, rec := range recs {
		markup := rec.Markup
		if markup == "" {
			markup = fallbackMarkup(rec.Content)
		}
		views[i] = poemView{
			Anchor:    Anchor(i+1, rec.ID),
			Title:     rec.Title,
			WordCount: rec.WordCount,
			Markup:    template.HTML(markup),
		}
	}
	return anthologyTmpl.Execute(w, struct {
		Title string
		Count int
		Poems []poemView
	}{
		Title: opts.title(),
		Count: len(recs),
		Poems: views,
	})
}

// fallbackMarkup builds paragraph markup for records whose conversion
// produced none (separator splits carry plain text only): one <p> per
// stanza, lines joined with <br/>, everything escaped.
func fallbackMarkup(content string) string {
	var b strings.Builder
	for _, stanza := range strings.Split(content, "\n\n") {
		stanza = strings.TrimSpace(stanza)
		if stanza == "" {
			continue
		}
		b.WriteString("<p>")
		for i, line := range strings.Split(stanza, "\n") {
			if i > 0 {
				b.WriteString("<br/>")
			}
			b.WriteString(html.EscapeString(strings.TrimSpace(line)))
		}
		b.WriteString("</p>\n")
	}
	return b.String()
}
