// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package textract

import (
	"context"
	"fmt"
	"strings"

	pdflib "github.com/ledongthuc/pdf"
)

// Native reads PDFs with the pure-Go ledongthuc/pdf reader.
type Native struct{}

func (*Native) Name() string { return "native" }

// Extract walks pages in order. Each page is read row by row so every
// physical line becomes one output line; pages whose rows cannot be decoded
// fall back to the reader's plain-text stream.
func (*Native) Extract(ctx context.Context, pdfPath string) (string, error) {
	f, r, err := pdflib.Open(pdfPath)
	if err != nil {
		return "", fmt.Errorf("opening PDF %s: %w", pdfPath, err)
	}
	defer f.Close()

	var buf strings.Builder
	for i := 1; i <= r.NumPage(); i++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		for _, line := range pageLines(page) {
			buf.WriteString(line)
			buf.WriteByte('\n')
		}
	}

	if strings.TrimSpace(buf.String()) == "" {
		return "", fmt.Errorf("%s: %w", pdfPath, ErrNoText)
	}
	return buf.String(), nil
}

func pageLines(page pdflib.Page) []string {
	rows, err := page.GetTextByRow()
	if err == nil && len(rows) > 0 {
		if lines := rowLines(rows); len(lines) > 0 {
			return lines
		}
	}
	text, err := page.GetPlainText(nil)
	if err != nil {
		return nil
	}
	return strings.Split(text, "\n")
}

// rowLines joins the glyph runs of each row. An empty run marks a word gap.
func rowLines(rows pdflib.Rows) []string {
	var lines []string
	for _, row := range rows {
		var line strings.Builder
		gap := false
		for _, t := range row.Content {
			if t.S == "" {
				gap = true
				continue
			}
			if gap && line.Len() > 0 && !strings.HasSuffix(line.String(), " ") {
				line.WriteByte(' ')
			}
			line.WriteString(t.S)
			gap = false
		}
		if s := strings.TrimSpace(line.String()); s != "" {
			lines = append(lines, s)
		}
	}
	return lines
}
