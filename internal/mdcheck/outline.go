// Package mdcheck reads rendered Markdown back through a CommonMark parser
// and reports its outline, so a conversion can be checked for the structure
// it was meant to produce.
package mdcheck

import (
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"github.com/pdiddy/pdf2md/internal/syllabus"
)

// Heading is one ATX or setext heading.
type Heading struct {
	Level int    `json:"level" yaml:"level"`
	Text  string `json:"text" yaml:"text"`
}

// Outline summarises the block structure of a Markdown document.
type Outline struct {
	Headings   []Heading `json:"headings" yaml:"headings"`
	ListItems  int       `json:"list_items" yaml:"list_items"`
	Paragraphs int       `json:"paragraphs" yaml:"paragraphs"`
}

// Chapters counts level-2 headings that open a chapter.
func (o Outline) Chapters() int {
	n := 0
	for _, h := range o.Headings {
		if h.Level == 2 && syllabus.IsChapterMarker(h.Text) {
			n++
		}
	}
	return n
}

// Title returns the text of the first level-1 heading, or "".
func (o Outline) Title() string {
	for _, h := range o.Headings {
		if h.Level == 1 {
			return h.Text
		}
	}
	return ""
}

// Parse builds the outline of src.
func Parse(src []byte) Outline {
	doc := goldmark.New().Parser().Parse(text.NewReader(src))

	var o Outline
	ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch node := n.(type) {
		case *ast.Heading:
			o.Headings = append(o.Headings, Heading{
				Level: node.Level,
				Text:  strings.TrimSpace(inlineText(node, src)),
			})
			return ast.WalkSkipChildren, nil
		case *ast.ListItem:
			o.ListItems++
		case *ast.Paragraph:
			o.Paragraphs++
		}
		return ast.WalkContinue, nil
	})
	return o
}

// inlineText concatenates the text segments below n.
func inlineText(n ast.Node, src []byte) string {
	var b strings.Builder
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if t, ok := c.(*ast.Text); ok {
			b.Write(t.Segment.Value(src))
			if t.SoftLineBreak() {
				b.WriteByte(' ')
			}
			continue
		}
		b.WriteString(inlineText(c, src))
	}
	return b.String()
}
