// Package tokenizer splits extracted text into word tokens and counts them.
//
// A token is a maximal run of word characters: Unicode letters, Unicode
// numbers and the underscore. Everything else separates tokens and is
// dropped. Text is lower-cased before splitting.
package tokenizer

import (
	"strings"
	"unicode"
)

// Counts maps a token to its number of occurrences in one text.
type Counts map[string]int

// Total returns the number of tokens counted.
func (c Counts) Total() int {
	total := 0
	for _, n := range c {
		total += n
	}
	return total
}

// IsWordChar reports whether r belongs inside a token.
func IsWordChar(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsNumber(r)
}

// Tokenize lower-cases text and returns its tokens left to right.
func Tokenize(text string) []string {
	return strings.FieldsFunc(lower(text), func(r rune) bool {
		return !IsWordChar(r)
	})
}

const (
	capitalSigma = '\u03A3'
	finalSigma   = '\u03C2'
)

// lower is strings.ToLower except that a capital sigma ending a word
// becomes the final form ς: preceded by a letter and not followed by one.
func lower(text string) string {
	if !strings.ContainsRune(text, capitalSigma) {
		return strings.ToLower(text)
	}

	runes := []rune(text)
	var b strings.Builder
	b.Grow(len(text))
	for i, r := range runes {
		if r == capitalSigma && i > 0 && unicode.IsLetter(runes[i-1]) &&
			(i+1 == len(runes) || !unicode.IsLetter(runes[i+1])) {
			b.WriteRune(finalSigma)
			continue
		}
		b.WriteString(strings.ToLower(string(r)))
	}
	return b.String()
}

// Count tokenizes text and counts each distinct token.
func Count(text string) Counts {
	tokens := Tokenize(text)
	counts := make(Counts, len(tokens)/2+1)
	for _, token := range tokens {
		counts[token]++
	}
	return counts
}
