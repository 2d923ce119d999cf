package glossary

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	foundationerrors "git.home.luguber.info/inful/glossgen/internal/foundation/errors"
)

func parseFixture(t *testing.T, name string, opts ...ParseOption) *Glossary {
	t.Helper()
	f, err := os.Open(filepath.Join("testdata", name))
	require.NoError(t, err)
	t.Cleanup(func() { _ = f.Close() })

	g, err := ParseReader(f, opts...)
	require.NoError(t, err)
	return g
}

func TestParse_TermsFixture(t *testing.T) {
	g := parseFixture(t, "terms.txt")

	want := []Entry{
		{"meaning", "something that one wishes to convey, especially by language"},
		{"term", "a word whose definition is in a glossary"},
		{"word", "a string of characters in a language, which has at least one character"},
		{"definition", "a sequence of words that gives meaning to a term"},
		{"glossary", "a list of difficult or specialized terms, with their definitions, usually near the end of a book"},
		{"book", "a printed or written literary work"},
		{"language", "a set of strings of characters, each of which has meaning"},
	}
	assert.Equal(t, want, g.Entries())
}

func TestParse_SingleBlock(t *testing.T) {
	g := parseFixture(t, "single.txt")

	require.Equal(t, 1, g.Len())
	def, ok := g.Definition("meaning")
	require.True(t, ok)
	assert.Equal(t, "something that one wishes to convey, especially by language", def)
}

func TestParse_MultilineDefinition(t *testing.T) {
	g := parseFixture(t, "multiline.txt")

	def, ok := g.Definition("video")
	require.True(t, ok)
	assert.Equal(t, "a program, movie, or other visual media product featuring "+
		"moving images, with or without audio, that is recorded and "+
		"saved digitally or on videocassette: She used her phone to "+
		"record a video of her baby's first steps.", def)
}

func TestParse_JoinsWithSingleSpaceAndTrimsWhole(t *testing.T) {
	g, err := Parse([]string{"term", "  first line", "second  line  ", ""})
	require.NoError(t, err)

	def, _ := g.Definition("term")
	// Interior spacing of each line is kept; only the joined text is trimmed.
	assert.Equal(t, "first line second  line", def)
}

func TestParse_SkipsExtraBlankLinesBetweenBlocks(t *testing.T) {
	g, err := Parse([]string{"", "", "a", "first", "", "   ", "", "b", "second", ""})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, g.Terms())
}

func TestParse_AcceptsCRLF(t *testing.T) {
	g, err := ParseReader(strings.NewReader("book\r\na printed work\r\n\r\n"))
	require.NoError(t, err)

	def, ok := g.Definition("book")
	require.True(t, ok)
	assert.Equal(t, "a printed work", def)
}

func TestParse_TermsAreVerbatim(t *testing.T) {
	g, err := Parse([]string{"Book", "capitalised", "", "book", "lower case", ""})
	require.NoError(t, err)
	assert.Equal(t, []string{"Book", "book"}, g.Terms())
}

func TestParse_EmptyInput(t *testing.T) {
	g, err := Parse(nil)
	require.NoError(t, err)
	assert.Equal(t, 0, g.Len())
}

func TestParse_Malformed(t *testing.T) {
	tests := []struct {
		name  string
		lines []string
		opts  []ParseOption
		term  string
		line  int
	}{
		{"term followed by EOF", []string{"a", "def", "", "orphan"}, nil, "orphan", 4},
		{"term followed by blank line", []string{"empty", "", "b", "def", ""}, nil, "empty", 1},
		{"strict unterminated final block", []string{"a", "def"}, []ParseOption{WithStrict(true)}, "a", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.lines, tt.opts...)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrMalformedInput))
			assert.True(t, foundationerrors.HasCategory(err, foundationerrors.CategoryInput))

			classified, ok := foundationerrors.AsClassified(err)
			require.True(t, ok)
			term, _ := classified.Context().GetString("term")
			line, _ := classified.Context().GetInt("line")
			assert.Equal(t, tt.term, term)
			assert.Equal(t, tt.line, line)
		})
	}
}

func TestParse_UnterminatedFinalBlockIsCommitted(t *testing.T) {
	g, err := Parse([]string{"a", "first", "", "b", "second", "line"})
	require.NoError(t, err)

	def, ok := g.Definition("b")
	require.True(t, ok)
	assert.Equal(t, "second line", def)
}

func TestParse_Duplicates(t *testing.T) {
	lines := []string{"book", "first", "", "page", "leaf", "", "book", "second", ""}

	t.Run("rejected by default", func(t *testing.T) {
		_, err := Parse(lines)
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrDuplicateTerm))

		classified, ok := foundationerrors.AsClassified(err)
		require.True(t, ok)
		assert.Equal(t, foundationerrors.CategoryDuplicate, classified.Category())
		line, _ := classified.Context().GetInt("line")
		first, _ := classified.Context().GetInt("first_line")
		assert.Equal(t, 7, line)
		assert.Equal(t, 1, first)
	})

	t.Run("last wins keeps first position", func(t *testing.T) {
		g, err := Parse(lines, WithDuplicatePolicy(DuplicateLastWins))
		require.NoError(t, err)
		assert.Equal(t, []string{"book", "page"}, g.Terms())

		def, _ := g.Definition("book")
		assert.Equal(t, "second", def)
	})
}

func TestDuplicatePolicy_String(t *testing.T) {
	assert.Equal(t, "reject", DuplicateReject.String())
	assert.Equal(t, "last-wins", DuplicateLastWins.String())
}
