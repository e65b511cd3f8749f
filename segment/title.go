package segment

import (
	"path/filepath"
	"strings"
	"unicode/utf8"
)

const (
	// poemFloorRunes is the length a trimmed text must exceed to stand
	// as a poem. At or under it, a paragraph reads as filler or as a
	// separator between poems.
	poemFloorRunes = 10

	// candidateRunes bounds strategy-level title candidates (exclusive).
	candidateRunes = 100

	// titleRunes bounds every emitted title (inclusive).
	titleRunes = 150
)

// UntitledPoem is the terminal fallback of the title chain.
const UntitledPoem = "Untitled Poem"

// sourceExtensions are the document extensions stripped when a file
// name is pressed into service as a title.
var sourceExtensions = []string{
	".docx", ".doc", ".odt", ".rtf", ".pdf", ".txt", ".md", ".markdown", ".html", ".htm",
}

// InferTitle derives a display title for a whole document. The chain,
// first hit wins: a usable heading, an emphasized paragraph among the
// first three, the first line of the opening paragraph, the cleaned
// file name, then UntitledPoem.
func InferTitle(blocks []Block, sourceName string) string {
	if t := headingTitle(blocks); t != "" {
		return cleanTitle(t)
	}
	if t := emphasizedTitle(blocks); t != "" {
		return cleanTitle(t)
	}
	if t := firstLineTitle(blocks); t != "" {
		return cleanTitle(t)
	}
	if t := fileNameTitle(sourceName); t != "" {
		return cleanTitle(t)
	}
	return UntitledPoem
}

// headingTitle returns the first heading whose trimmed text is usable.
func headingTitle(blocks []Block) string {
	for _, b := range blocks {
		if b.Kind != KindHeading {
			continue
		}
		if t := strings.TrimSpace(b.Text); usableTitle(t) {
			return t
		}
	}
	return ""
}

// emphasizedTitle scans the first three paragraph blocks for a bold or
// centered one. Empty paragraphs count against the three.
func emphasizedTitle(blocks []Block) string {
	seen := 0
	for _, b := range blocks {
		if b.Kind != KindParagraph {
			continue
		}
		seen++
		if seen > 3 {
			break
		}
		if !b.Bold && !b.Centered {
			continue
		}
		if t := strings.TrimSpace(b.Text); usableTitle(t) {
			return t
		}
	}
	return ""
}

// firstLineTitle takes the first line of the opening paragraph. Only
// that one block is considered: when it is empty, or its first line
// overruns the cap, the step yields nothing and the chain moves on to
// the file name.
func firstLineTitle(blocks []Block) string {
	for _, b := range blocks {
		if b.Kind != KindParagraph {
			continue
		}
		line := b.Text
		if i := strings.IndexByte(line, '\n'); i >= 0 {
			line = line[:i]
		}
		if t := strings.TrimSpace(line); usableTitle(t) {
			return t
		}
		break
	}
	return ""
}

// fileNameTitle turns a file name into a title: strip one recognized
// extension, then read underscores and hyphens as spaces.
func fileNameTitle(name string) string {
	if name == "" {
		return ""
	}
	base := filepath.Base(name)
	if base == "." || base == string(filepath.Separator) {
		return ""
	}
	lower := strings.ToLower(base)
	for _, ext := range sourceExtensions {
		if strings.HasSuffix(lower, ext) {
			base = base[:len(base)-len(ext)]
			break
		}
	}
	base = strings.NewReplacer("_", " ", "-", " ").Replace(base)
	return strings.TrimSpace(base)
}

func usableTitle(t string) bool {
	n := utf8.RuneCountInString(t)
	return n > 0 && n <= titleRunes
}

// cleanTitle normalizes whitespace runs to single spaces and caps the
// length: anything past 150 runes is cut to 147 plus a three-dot
// ellipsis, so the result is exactly 150. Applied to every title the
// package emits.
func cleanTitle(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	r := []rune(s)
	if len(r) <= titleRunes {
		return s
	}
	return string(r[:titleRunes-3]) + "..."
}

// Substantial reports whether trimmed text is long enough to stand as
// a poem on its own. Adapters and the batch path share this floor.
func Substantial(text string) bool {
	return utf8.RuneCountInString(strings.TrimSpace(text)) > poemFloorRunes
}
