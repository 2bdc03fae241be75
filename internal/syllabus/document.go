// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package syllabus turns the plain-text layer of a syllabus-style PDF into
// Markdown. The text is split into non-empty line tokens and read in a single
// pass: a three-line title block, a table of contents, then chapters. Page
// numbers and a running header are stripped after the table of contents,
// and chapter bodies are reassembled into sentences and bullet items before
// rendering.
package syllabus

import "strings"

// Stats accounts for every token of a parse. Tokens always equals Consumed
// plus DroppedPages plus DroppedHeaders.
type Stats struct {
	Tokens         int `json:"tokens" yaml:"tokens"`
	Consumed       int `json:"consumed" yaml:"consumed"`
	DroppedPages   int `json:"dropped_pages" yaml:"dropped_pages"`
	DroppedHeaders int `json:"dropped_headers" yaml:"dropped_headers"`
	Sections       int `json:"sections" yaml:"sections"`
	Elements       int `json:"elements" yaml:"elements"`
}

// Document owns the tokens of one extracted text layer.
type Document struct {
	tokens []string
	header string
}

// New tokenizes text. header is the running header to strip from chapter
// pages; pass "" to keep every line.
func New(text, header string) *Document {
	return &Document{tokens: Tokenize(text), header: header}
}

// FromTokens builds a document from already split lines. Empty lines are
// dropped.
func FromTokens(lines []string, header string) *Document {
	tokens := make([]string, 0, len(lines))
	for _, l := range lines {
		if l != "" {
			tokens = append(tokens, l)
		}
	}
	return &Document{tokens: tokens, header: header}
}

// Tokens returns a copy of the document's tokens.
func (d *Document) Tokens() []string {
	out := make([]string, len(d.tokens))
	copy(out, d.tokens)
	return out
}

// Parse runs title, table of contents, noise filtering and chapters in that
// order. It never fails: a starved read yields empty element text.
func (d *Document) Parse() ([]Section, Stats) {
	stats := Stats{Tokens: len(d.tokens)}

	s := NewStream(d.tokens)
	sections := []Section{readTitle(s), readTOC(s)}
	stats.Consumed = s.Consumed()

	noise := NewNoiseFilter(d.header)
	s = NewStream(noise.Filter(s.Remaining()))
	stats.DroppedPages, stats.DroppedHeaders = noise.Dropped()

	for !s.Empty() {
		sections = append(sections, readChapter(s))
	}
	stats.Consumed += s.Consumed()

	stats.Sections = len(sections)
	for _, sec := range sections {
		stats.Elements += len(sec.Elements)
	}
	return sections, stats
}

// Read parses the document and renders it as Markdown.
func (d *Document) Read() string {
	sections, _ := d.Parse()
	return Render(sections)
}

// Render joins rendered sections with newlines.
func Render(sections []Section) string {
	out := make([]string, len(sections))
	for i, sec := range sections {
		out[i] = sec.Markdown()
	}
	return strings.Join(out, "\n")
}
