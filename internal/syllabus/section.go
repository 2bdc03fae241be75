// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package syllabus

import (
	"regexp"
	"strings"
)

// SectionKind identifies which reader produced a Section.
type SectionKind int

const (
	SectionTitle SectionKind = iota
	SectionTOC
	SectionChapter
)

func (k SectionKind) String() string {
	switch k {
	case SectionTitle:
		return "title"
	case SectionTOC:
		return "toc"
	case SectionChapter:
		return "chapter"
	}
	return "unknown"
}

// MarshalText lets section kinds appear by name in JSON and YAML output.
func (k SectionKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Section is a contiguous run of elements produced by one reader.
type Section struct {
	Kind     SectionKind `json:"kind" yaml:"kind"`
	Elements []Element   `json:"elements" yaml:"elements"`
}

// Markdown renders the section's elements, one per line.
func (s Section) Markdown() string {
	lines := make([]string, len(s.Elements))
	for i, e := range s.Elements {
		lines[i] = e.Markdown()
	}
	return strings.Join(lines, "\n")
}

var chapterMarker = regexp.MustCompile(`^Chapter [IVX]+`)

// IsChapterMarker reports whether tok opens a chapter, e.g. "Chapter IV".
func IsChapterMarker(tok string) bool {
	return chapterMarker.MatchString(tok)
}

// take pops the front token, or returns "" when the stream is starved.
func take(s *Stream) string {
	tok, _ := s.Next(nil)
	return tok
}

// readTitle consumes the three-line prologue.
func readTitle(s *Stream) Section {
	return Section{
		Kind: SectionTitle,
		Elements: []Element{
			{Text: take(s), Kind: KindTitle},
			{Text: take(s), Kind: KindHeader},
			{Text: take(s), Kind: KindItalic},
		},
	}
}

// readTOC consumes the contents heading and its three-token entries. A
// decimal front token ends the table and stays on the stream, as does a
// chapter marker.
func readTOC(s *Stream) Section {
	sec := Section{
		Kind:     SectionTOC,
		Elements: []Element{{Text: take(s), Kind: KindHeader}},
	}
	for {
		front, ok := s.Peek()
		if !ok || IsDecimal(front) || IsChapterMarker(front) {
			break
		}
		parts := make([]string, 0, 3)
		for range 3 {
			tok, ok := s.Next(nil)
			if !ok {
				break
			}
			parts = append(parts, tok)
		}
		sec.Elements = append(sec.Elements, Element{
			Text: strings.Join(parts, " "),
			Kind: KindListItem,
		})
	}
	return sec
}

// readChapter consumes the two heading lines of a chapter and every token up
// to the next chapter marker, which is left for the following call.
func readChapter(s *Stream) Section {
	sec := Section{
		Kind: SectionChapter,
		Elements: []Element{
			{Text: take(s), Kind: KindHeader},
			{Text: take(s), Kind: KindHeader},
		},
	}

	var body []string
	for {
		tok, ok := s.Next(func(t string) bool { return !IsChapterMarker(t) })
		if !ok {
			break
		}
		body = append(body, tok)
	}

	sub := NewStream(body)
	for !sub.Empty() {
		sec.Elements = append(sec.Elements, assemble(sub))
	}
	return sec
}
