// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package syllabus

import (
	"strconv"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// NoiseFilter drops page-number lines and a repeated running header.
//
// Page numbers are matched against a counter that starts at 1 and advances
// once per decimal line examined, whether or not the line is dropped. A
// missing or out-of-order page number therefore desynchronises detection for
// the rest of the document. Body text equal to the expected page number or
// to the header is dropped too; both heuristics are known to be lossy.
type NoiseFilter struct {
	// Header is removed wherever a line equals it byte for byte. Empty
	// matches nothing.
	Header string

	nextPage       int
	droppedPages   int
	droppedHeaders int
}

// NewNoiseFilter returns a filter whose page counter starts at 1.
func NewNoiseFilter(header string) *NoiseFilter {
	return &NoiseFilter{Header: header, nextPage: 1}
}

// Filter returns the tokens that survive, in input order.
func (f *NoiseFilter) Filter(tokens []string) []string {
	kept := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		if f.isPageNumber(tok) {
			f.droppedPages++
			continue
		}
		if f.Header != "" && tok == f.Header {
			f.droppedHeaders++
			continue
		}
		kept = append(kept, tok)
	}
	return kept
}

// NextPage returns the page number the filter expects next.
func (f *NoiseFilter) NextPage() int { return f.nextPage }

// Dropped returns how many page-number and header lines were removed.
func (f *NoiseFilter) Dropped() (pages, headers int) {
	return f.droppedPages, f.droppedHeaders
}

func (f *NoiseFilter) isPageNumber(tok string) bool {
	if !IsDecimal(tok) {
		return false
	}
	expected := f.nextPage
	f.nextPage++
	n, ok := decimalValue(tok)
	return ok && n == expected
}

// IsDecimal reports whether s is non-empty and made only of Unicode decimal
// digits.
func IsDecimal(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

// decimalValue folds compatibility digits (full-width and the like) to ASCII
// before parsing. Digits without an ASCII fold, and values that overflow,
// report false.
func decimalValue(s string) (int, bool) {
	n, err := strconv.Atoi(norm.NFKC.String(s))
	if err != nil {
		return 0, false
	}
	return n, true
}
