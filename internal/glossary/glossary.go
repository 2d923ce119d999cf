package glossary

import (
	"slices"
	"strings"

	foundationerrors "git.home.luguber.info/inful/glossgen/internal/foundation/errors"
)

// Entry is one term and its definition.
type Entry struct {
	Term       string
	Definition string
}

// Glossary maps terms to definitions and remembers the order in which terms
// were first defined. It is not modified after construction.
type Glossary struct {
	order []string
	defs  map[string]string
}

func newGlossary() *Glossary {
	return &Glossary{defs: make(map[string]string)}
}

// New builds a glossary from entries. Terms and definitions must be
// non-empty and terms must be unique.
func New(entries ...Entry) (*Glossary, error) {
	g := newGlossary()
	for i, e := range entries {
		if e.Term == "" {
			return nil, foundationerrors.ValidationError("empty term").
				WithContext("entry", i).
				Build()
		}
		if strings.TrimSpace(e.Definition) == "" {
			return nil, foundationerrors.ValidationError("empty definition").
				WithContext("term", e.Term).
				Build()
		}
		if g.Has(e.Term) {
			return nil, foundationerrors.DuplicateError("term defined more than once").
				WithCause(ErrDuplicateTerm).
				WithContext("term", e.Term).
				Build()
		}
		g.put(e.Term, e.Definition)
	}
	return g, nil
}

// put inserts or overwrites a definition. An overwritten term keeps its
// original position.
func (g *Glossary) put(term, definition string) {
	if _, ok := g.defs[term]; !ok {
		g.order = append(g.order, term)
	}
	g.defs[term] = definition
}

// Len returns the number of terms.
func (g *Glossary) Len() int { return len(g.order) }

// Has reports whether term is defined.
func (g *Glossary) Has(term string) bool {
	_, ok := g.defs[term]
	return ok
}

// Definition returns the definition of term.
func (g *Glossary) Definition(term string) (string, bool) {
	d, ok := g.defs[term]
	return d, ok
}

// Terms returns the terms in source order.
func (g *Glossary) Terms() []string {
	return slices.Clone(g.order)
}

// Entries returns the entries in source order.
func (g *Glossary) Entries() []Entry {
	out := make([]Entry, 0, len(g.order))
	for _, t := range g.order {
		out = append(out, Entry{Term: t, Definition: g.defs[t]})
	}
	return out
}

// SortedTerms returns the terms ordered by Lexicographic.
func (g *Glossary) SortedTerms() []string {
	terms := g.Terms()
	slices.SortStableFunc(terms, Lexicographic)
	return terms
}

// Lexicographic orders strings by raw code points. Go compares strings
// bytewise, which for valid UTF-8 is the same as code point order.
func Lexicographic(a, b string) int {
	return strings.Compare(a, b)
}

// UnlinkableTerms returns, in source order, the terms that contain a
// separator. No token can ever equal such a term, so its name is never
// linked inside other definitions.
func UnlinkableTerms(g *Glossary, seps SeparatorSet) []string {
	var out []string
	for _, t := range g.order {
		if strings.ContainsFunc(t, seps.IsSeparator) {
			out = append(out, t)
		}
	}
	return out
}
