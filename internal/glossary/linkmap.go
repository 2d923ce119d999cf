package glossary

import (
	foundationerrors "git.home.luguber.info/inful/glossgen/internal/foundation/errors"
)

const (
	// IndexKey names the index entry of a LinkMap in diagnostics. The entry
	// itself lives outside the term keyspace, so a term spelled "#indexPage"
	// does not collide with it.
	IndexKey = "#indexPage"

	// IndexPageName is the file name of the index page.
	IndexPageName = "index.html"

	indexLinkMarkup = `<a href="index.html">index</a>`
)

// PageName returns the file name of a term's page. The term is used
// verbatim; it is not escaped.
func PageName(term string) string {
	return term + ".html"
}

// Anchor returns the hyperlink markup pointing at a term's page with the
// term as anchor text.
func Anchor(term string) string {
	return `<a href="` + PageName(term) + `">` + term + `</a>`
}

// LinkMap holds the ready-to-embed hyperlink for every term plus one entry
// for the index page. It is not modified after BuildLinkMap returns.
type LinkMap struct {
	index    string
	hasIndex bool
	terms    map[string]string
}

// BuildLinkMap derives the link map of g.
func BuildLinkMap(g *Glossary) *LinkMap {
	lm := &LinkMap{
		index:    indexLinkMarkup,
		hasIndex: true,
		terms:    make(map[string]string, g.Len()),
	}
	for _, t := range g.order {
		lm.terms[t] = Anchor(t)
	}
	return lm
}

// Len counts the term entries plus the index entry.
func (lm *LinkMap) Len() int {
	if lm == nil {
		return 0
	}
	n := len(lm.terms)
	if lm.hasIndex {
		n++
	}
	return n
}

// Lookup returns the hyperlink for term.
func (lm *LinkMap) Lookup(term string) (string, bool) {
	if lm == nil {
		return "", false
	}
	l, ok := lm.terms[term]
	return l, ok
}

// Index returns the hyperlink to the index page.
func (lm *LinkMap) Index() (string, bool) {
	if lm == nil || !lm.hasIndex {
		return "", false
	}
	return lm.index, true
}

// Covers checks that lm has the index entry and an entry for every term of
// g. A failure is an internal defect, reported with ErrUnresolvedIndexLink
// as the cause.
func (lm *LinkMap) Covers(g *Glossary) error {
	if _, ok := lm.Index(); !ok {
		return foundationerrors.InternalError("link map has no index entry").
			WithCause(ErrUnresolvedIndexLink).
			WithContext("key", IndexKey).
			Build()
	}
	for _, t := range g.order {
		if _, ok := lm.Lookup(t); !ok {
			return foundationerrors.InternalError("link map has no entry for term").
				WithCause(ErrUnresolvedIndexLink).
				WithContext("term", t).
				Build()
		}
	}
	return nil
}
