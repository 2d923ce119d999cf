package render

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	foundationerrors "git.home.luguber.info/inful/glossgen/internal/foundation/errors"
	"git.home.luguber.info/inful/glossgen/internal/glossary"
)

func termsGlossary(t *testing.T) (*glossary.Glossary, *glossary.LinkMap) {
	t.Helper()
	g, err := glossary.New(
		glossary.Entry{Term: "meaning", Definition: "something that one wishes to convey, especially by language"},
		glossary.Entry{Term: "term", Definition: "a word whose definition is in a glossary"},
		glossary.Entry{Term: "word", Definition: "a string of characters in a language, which has at least one character"},
		glossary.Entry{Term: "definition", Definition: "a sequence of words that gives meaning to a term"},
		glossary.Entry{Term: "glossary", Definition: "a list of difficult or specialized terms, with their definitions, usually near the end of a book"},
		glossary.Entry{Term: "book", Definition: "a printed or written literary work"},
		glossary.Entry{Term: "language", Definition: "a set of strings of characters, each of which has meaning"},
	)
	require.NoError(t, err)
	return g, glossary.BuildLinkMap(g)
}

func golden(t *testing.T, name string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("testdata", name))
	require.NoError(t, err)
	return string(data)
}

func TestIndexPage_Golden(t *testing.T) {
	g, lm := termsGlossary(t)
	r, err := New(Options{})
	require.NoError(t, err)

	got, err := r.IndexPage(g, lm)
	require.NoError(t, err)
	assert.Equal(t, golden(t, "index.golden.html"), got)
}

func TestTermPage_Golden(t *testing.T) {
	g, lm := termsGlossary(t)
	r, err := New(Options{})
	require.NoError(t, err)

	got, err := r.TermPage(g, lm, "meaning")
	require.NoError(t, err)
	assert.Equal(t, golden(t, "meaning.golden.html"), got)
}

func TestIndexPage_SortsByCodePoint(t *testing.T) {
	g, err := glossary.New(
		glossary.Entry{Term: "term", Definition: "x"},
		glossary.Entry{Term: "meaning", Definition: "y"},
		glossary.Entry{Term: "book", Definition: "z"},
	)
	require.NoError(t, err)
	r, err := New(Options{})
	require.NoError(t, err)

	got, err := r.IndexPage(g, glossary.BuildLinkMap(g))
	require.NoError(t, err)

	book := strings.Index(got, `<li><a href="book.html">`)
	meaning := strings.Index(got, `<li><a href="meaning.html">`)
	term := strings.Index(got, `<li><a href="term.html">`)
	require.True(t, book >= 0 && meaning >= 0 && term >= 0)
	assert.Less(t, book, meaning)
	assert.Less(t, meaning, term)
}

func TestIndexPage_SingleTerm(t *testing.T) {
	g, err := glossary.New(glossary.Entry{Term: "term", Definition: "a word"})
	require.NoError(t, err)
	r, err := New(Options{})
	require.NoError(t, err)

	got, err := r.IndexPage(g, glossary.BuildLinkMap(g))
	require.NoError(t, err)
	assert.Contains(t, got, "       <ul>\n       <li><a href=\"term.html\">term</a></li>\n       </ul>")
}

func TestIndexPage_TitleAndIntro(t *testing.T) {
	g, lm := termsGlossary(t)
	r, err := New(Options{Title: "CS Terms", Intro: "<p>Words we use.</p>"})
	require.NoError(t, err)

	got, err := r.IndexPage(g, lm)
	require.NoError(t, err)
	assert.Contains(t, got, "<title>CS Terms</title>")
	assert.Contains(t, got, "<h2>CS Terms</h2>")
	assert.Contains(t, got, "     <hr>\n     <section><p>Words we use.</p></section>\n     <main>")
}

func TestTermPage_UsesLinkOptions(t *testing.T) {
	g, err := glossary.New(glossary.Entry{Term: "a", Definition: "a cat"})
	require.NoError(t, err)
	lm := glossary.BuildLinkMap(g)

	span, err := New(Options{})
	require.NoError(t, err)
	got, err := span.TermPage(g, lm, "a")
	require.NoError(t, err)
	assert.Contains(t, got, `<blockquote><a href="a.html">a</a> cat</blockquote>`)

	global, err := New(Options{Link: []glossary.LinkOption{glossary.WithPolicy(glossary.PolicyGlobal)}})
	require.NoError(t, err)
	got, err = global.TermPage(g, lm, "a")
	require.NoError(t, err)
	assert.Contains(t, got, `<blockquote><a href="a.html">a</a> c<a href="a.html">a</a>t</blockquote>`)
}

func TestTermPage_UnknownTerm(t *testing.T) {
	g, lm := termsGlossary(t)
	r, err := New(Options{})
	require.NoError(t, err)

	_, err = r.TermPage(g, lm, "missing")
	require.Error(t, err)
	assert.True(t, foundationerrors.HasCategory(err, foundationerrors.CategoryValidation))
}

func TestPages_FailLoudlyWithoutIndexLink(t *testing.T) {
	g, _ := termsGlossary(t)
	r, err := New(Options{})
	require.NoError(t, err)

	_, err = r.IndexPage(g, &glossary.LinkMap{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, glossary.ErrUnresolvedIndexLink))

	_, err = r.TermPage(g, &glossary.LinkMap{}, "book")
	require.Error(t, err)
	assert.True(t, foundationerrors.HasCategory(err, foundationerrors.CategoryInternal))
}

func TestMarkdown(t *testing.T) {
	got, err := Markdown([]byte("Terms used in **this** course.\n"))
	require.NoError(t, err)
	assert.Equal(t, "<p>Terms used in <strong>this</strong> course.</p>", got)

	empty, err := Markdown(nil)
	require.NoError(t, err)
	assert.Empty(t, empty)
}
