// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package syllabus

import (
	"strings"
	"unicode/utf8"
)

const (
	bullet    = '•'
	subBullet = '◦'
)

// endsSentence reports whether tok ends with '.', '!' or ':'.
func endsSentence(tok string) bool {
	r, _ := utf8.DecodeLastRuneInString(tok)
	return r == '.' || r == '!' || r == ':'
}

// startsWithBullet reports whether tok opens a list or sub-list item.
func startsWithBullet(tok string) bool {
	r, _ := utf8.DecodeRuneInString(tok)
	return r == bullet || r == subBullet
}

// assemble merges the lines of one logical unit from s and classifies it.
// It consumes the first token unconditionally, keeps consuming until a line
// ends a sentence or a bullet line is next, then takes the terminating line
// unless it is a bullet. s must not be empty.
func assemble(s *Stream) Element {
	first, _ := s.Next(nil)
	parts := []string{first}

	for {
		tok, ok := s.Peek()
		if !ok || endsSentence(tok) || startsWithBullet(tok) {
			break
		}
		s.Next(nil)
		parts = append(parts, tok)
	}
	if tok, ok := s.Next(func(t string) bool { return !startsWithBullet(t) }); ok {
		parts = append(parts, tok)
	}

	return classify(strings.Join(parts, " "))
}

// classify strips the bullet glyph and the character after it from list
// lines. Any other bullet-like glyph is left as plain text.
func classify(text string) Element {
	rs := []rune(text)
	if len(rs) > 2 {
		switch rs[0] {
		case bullet:
			return Element{Text: string(rs[2:]), Kind: KindListItem}
		case subBullet:
			return Element{Text: string(rs[2:]), Kind: KindSubListItem}
		}
	}
	return Element{Text: text, Kind: KindText}
}
