package glossary

import (
	"fmt"
	"iter"
	"unicode/utf8"
)

// NextToken returns the maximal run of same-class runes in text starting at
// byte offset start: either a word (no separators) or a separator string
// (only separators).
//
// start must satisfy 0 <= start < len(text); anything else is a programming
// error and panics. Offsets obtained by advancing over earlier tokens are
// always rune boundaries.
func NextToken(text string, start int, seps SeparatorSet) string {
	if start < 0 || start >= len(text) {
		panic(fmt.Sprintf("glossary: token start %d out of range [0,%d)", start, len(text)))
	}

	first, size := utf8.DecodeRuneInString(text[start:])
	separator := seps.IsSeparator(first)

	end := start + size
	for end < len(text) {
		r, n := utf8.DecodeRuneInString(text[end:])
		if seps.IsSeparator(r) != separator {
			break
		}
		end += n
	}
	return text[start:end]
}

// Tokens yields every token of text with its byte offset, left to right.
// Concatenating the tokens reproduces text exactly.
func Tokens(text string, seps SeparatorSet) iter.Seq2[int, string] {
	return func(yield func(int, string) bool) {
		for pos := 0; pos < len(text); {
			tok := NextToken(text, pos, seps)
			if !yield(pos, tok) {
				return
			}
			pos += len(tok)
		}
	}
}
