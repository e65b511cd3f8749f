package convert

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"testing"
)

// buildPDF wraps a content stream in a minimal single-page PDF with
// correct xref offsets.
func buildPDF(t *testing.T, stream string) []byte {
	t.Helper()

	var b strings.Builder
	b.WriteString("%PDF-1.4\n")

	offsets := make([]int, 6)

	offsets[1] = b.Len()
	b.WriteString("1 0 obj\n<< /Type /Catalog /Pages 2 0 R >>\nendobj\n")

	offsets[2] = b.Len()
	b.WriteString("2 0 obj\n<< /Type /Pages /Kids [3 0 R] /Count 1 >>\nendobj\n")

	offsets[3] = b.Len()
	b.WriteString("3 0 obj\n<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Contents 4 0 R /Resources << /Font << /F1 5 0 R >> >> >>\nendobj\n")

	offsets[4] = b.Len()
	b.WriteString("4 0 obj\n<< /Length " + strconv.Itoa(len(stream)) + " >>\nstream\n")
	b.WriteString(stream)
	b.WriteString("\nendstream\nendobj\n")

	offsets[5] = b.Len()
	b.WriteString("5 0 obj\n<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica >>\nendobj\n")

	xref := b.Len()
	b.WriteString("xref\n0 6\n0000000000 65535 f \n")
	for i := 1; i <= 5; i++ {
		b.WriteString(fmt.Sprintf("%010d 00000 n \n", offsets[i]))
	}
	b.WriteString("trailer\n<< /Size 6 /Root 1 0 R >>\nstartxref\n")
	b.WriteString(strconv.Itoa(xref))
	b.WriteString("\n%%EOF\n")

	return []byte(b.String())
}

func TestConvertPDF_LineStructure(t *testing.T) {
	// WHAT: A vertical Td move starts a new line instead of a space.
	// WHY: Content streams position each verse line with a baseline
	// move; collapsing them to spaces would destroy the poem's shape.
	stream := "BT\n/F1 12 Tf\n72 720 Td\n(Gray gulls wheel over the harbor) Tj\n0 -14 Td\n(and the tide runs silver.) Tj\nET"

	conv := New(Config{})
	res, err := conv.Convert(context.Background(), "poem.pdf", buildPDF(t, stream))
	if err != nil {
		t.Fatal(err)
	}

	if res.Format != FormatPDF {
		t.Fatalf("format = %q, want pdf", res.Format)
	}
	if len(res.Blocks) != 1 {
		t.Fatalf("expected 1 block, got %d: %+v", len(res.Blocks), res.Blocks)
	}
	want := "Gray gulls wheel over the harbor\nand the tide runs silver."
	if res.Blocks[0].Text != want {
		t.Errorf("block text = %q, want %q", res.Blocks[0].Text, want)
	}
}

func TestConvertPDF_HorizontalMoveIsSpace(t *testing.T) {
	stream := "BT\n/F1 12 Tf\n72 720 Td\n(Part one) Tj\n14 0 Td\n(part two) Tj\nET"

	conv := New(Config{})
	res, err := conv.Convert(context.Background(), "poem.pdf", buildPDF(t, stream))
	if err != nil {
		t.Fatal(err)
	}

	if len(res.Blocks) != 1 || res.Blocks[0].Text != "Part one part two" {
		t.Errorf("blocks = %+v", res.Blocks)
	}
}

func TestConvertPDF_EscapesAndNextLine(t *testing.T) {
	stream := `BT
/F1 12 Tf
72 720 Td
(paren \050x\051 pair) Tj
(next line follows) '
ET`

	conv := New(Config{})
	res, err := conv.Convert(context.Background(), "poem.pdf", buildPDF(t, stream))
	if err != nil {
		t.Fatal(err)
	}

	if !strings.Contains(res.PlainText, "paren (x) pair") {
		t.Errorf("octal escapes not decoded: %q", res.PlainText)
	}
	if !strings.Contains(res.PlainText, "paren (x) pair\nnext line follows") {
		t.Errorf("' operator should start a new line: %q", res.PlainText)
	}
}

func TestConvertPDF_NoText(t *testing.T) {
	conv := New(Config{})
	_, err := conv.Convert(context.Background(), "blank.pdf", buildPDF(t, "BT\nET"))
	if !errors.Is(err, ErrEmptyDocument) {
		t.Fatalf("expected ErrEmptyDocument, got %v", err)
	}
}
