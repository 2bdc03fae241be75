// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package syllabus

import "strings"

// Stream is an ordered queue of tokens. Tokens leave the front of the queue
// and never come back; all access goes through Peek and Next so exhaustion
// is always observable.
type Stream struct {
	tokens   []string
	consumed int
}

// NewStream returns a stream over a copy of tokens.
func NewStream(tokens []string) *Stream {
	t := make([]string, len(tokens))
	copy(t, tokens)
	return &Stream{tokens: t}
}

// Peek returns the front token without consuming it.
func (s *Stream) Peek() (string, bool) {
	if len(s.tokens) == 0 {
		return "", false
	}
	return s.tokens[0], true
}

// Next pops the front token if pred holds for it. A nil pred accepts any
// token. On an empty stream or a rejected token the stream is unchanged.
func (s *Stream) Next(pred func(string) bool) (string, bool) {
	tok, ok := s.Peek()
	if !ok {
		return "", false
	}
	if pred != nil && !pred(tok) {
		return "", false
	}
	s.tokens = s.tokens[1:]
	s.consumed++
	return tok, true
}

// Empty reports whether the stream is exhausted.
func (s *Stream) Empty() bool { return len(s.tokens) == 0 }

// Len returns the number of tokens left.
func (s *Stream) Len() int { return len(s.tokens) }

// Consumed returns the number of tokens popped so far.
func (s *Stream) Consumed() int { return s.consumed }

// Remaining returns a copy of the tokens left, in order.
func (s *Stream) Remaining() []string {
	out := make([]string, len(s.tokens))
	copy(out, s.tokens)
	return out
}

// Tokenize splits text on every line boundary and drops lines that are
// exactly empty. Whitespace-only lines are kept.
func Tokenize(text string) []string {
	var tokens []string
	var line strings.Builder
	rs := []rune(text)
	for i := 0; i < len(rs); i++ {
		r := rs[i]
		if !isLineBreak(r) {
			line.WriteRune(r)
			continue
		}
		if r == '\r' && i+1 < len(rs) && rs[i+1] == '\n' {
			i++
		}
		if line.Len() > 0 {
			tokens = append(tokens, line.String())
		}
		line.Reset()
	}
	if line.Len() > 0 {
		tokens = append(tokens, line.String())
	}
	return tokens
}

func isLineBreak(r rune) bool {
	switch r {
	case '\n', '\r', '\v', '\f', 0x1c, 0x1d, 0x1e, 0x85, 0x2028, 0x2029:
		return true
	}
	return false
}
