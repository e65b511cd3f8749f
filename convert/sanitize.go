package convert

import (
	"fmt"
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"

	"github.com/hazyhaar/strophe/segment"
)

// markupPolicy keeps the handful of elements block markup is built
// from. Everything else a source document smuggles in is stripped.
var markupPolicy = func() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	p.AllowElements("p", "br", "strong", "em", "h1", "h2", "h3")
	p.AllowStyles("text-align").MatchingEnum("center").OnElements("p", "h1", "h2", "h3")
	return p
}()

// blockMarkup renders one block as a sanitized HTML fragment.
// Empty blocks carry no markup.
func blockMarkup(b segment.Block) string {
	if strings.TrimSpace(b.Text) == "" {
		return ""
	}

	tag := "p"
	if b.Kind == segment.KindHeading {
		level := b.Level
		if level < 1 {
			level = 1
		}
		if level > 3 {
			level = 3
		}
		tag = fmt.Sprintf("h%d", level)
	}

	var attr string
	if b.Centered {
		attr = ` style="text-align: center"`
	}

	body := html.EscapeString(b.Text)
	body = strings.ReplaceAll(body, "\n", "<br/>")
	if b.Bold && b.Kind != segment.KindHeading {
		body = "<strong>" + body + "</strong>"
	}

	return markupPolicy.Sanitize(fmt.Sprintf("<%s%s>%s</%s>", tag, attr, body, tag))
}

// fillMarkup assigns sanitized markup to every block in place.
func fillMarkup(blocks []segment.Block) {
	for i := range blocks {
		blocks[i].Markup = blockMarkup(blocks[i])
	}
}
