package glossary

import "git.home.luguber.info/inful/glossgen/internal/util/sets"

// DefaultSeparatorChars lists the punctuation and whitespace that always end
// a token and never belong to a term.
const DefaultSeparatorChars = ",.\"';:()[]@!#$%^&*-=+{}\\|~`<>/? "

// SeparatorSet classifies runes as token boundaries. The zero value has no
// separators, so every rune is word-class.
type SeparatorSet struct {
	runes sets.Set[rune]
}

// NewSeparatorSet builds a set from every rune in chars. Repeated runes are
// stored once.
func NewSeparatorSet(chars string) SeparatorSet {
	runes := sets.New[rune]()
	for _, r := range chars {
		runes.Add(r)
	}
	return SeparatorSet{runes: runes}
}

// DefaultSeparators returns the set built from DefaultSeparatorChars.
func DefaultSeparators() SeparatorSet {
	return NewSeparatorSet(DefaultSeparatorChars)
}

// IsSeparator reports whether r terminates a word.
func (s SeparatorSet) IsSeparator(r rune) bool {
	return s.runes.Has(r)
}

// Len returns the number of distinct separator runes.
func (s SeparatorSet) Len() int {
	return s.runes.Len()
}

// String returns the separators in code point order.
func (s SeparatorSet) String() string {
	return string(sets.Sorted(s.runes))
}
