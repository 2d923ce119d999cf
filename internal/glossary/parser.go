package glossary

import (
	"bufio"
	"io"
	"strings"

	foundationerrors "git.home.luguber.info/inful/glossgen/internal/foundation/errors"
)

// DuplicatePolicy decides what happens when a source defines a term twice.
type DuplicatePolicy int

const (
	// DuplicateReject fails the parse with ErrDuplicateTerm.
	DuplicateReject DuplicatePolicy = iota
	// DuplicateLastWins keeps the later definition at the term's first position.
	DuplicateLastWins
)

func (p DuplicatePolicy) String() string {
	if p == DuplicateLastWins {
		return "last-wins"
	}
	return "reject"
}

type parseOptions struct {
	duplicates DuplicatePolicy
	strict     bool
}

// ParseOption configures Parse.
type ParseOption func(*parseOptions)

// WithDuplicatePolicy sets the duplicate term policy (default DuplicateReject).
func WithDuplicatePolicy(p DuplicatePolicy) ParseOption {
	return func(o *parseOptions) { o.duplicates = p }
}

// WithStrict makes a final block that is not followed by a blank line an
// error instead of committing it.
func WithStrict(strict bool) ParseOption {
	return func(o *parseOptions) { o.strict = strict }
}

type parseState int

const (
	expectTerm parseState = iota
	expectDefinitionLine
)

// block accumulates one term and its definition lines.
type block struct {
	term string
	line int
	text strings.Builder
}

// Parse reads term/definition blocks from lines.
//
// A block is a term line followed by one or more non-blank definition lines
// and ends at a blank line (empty or whitespace only). Definition lines are
// joined with single spaces and the result is trimmed. Blank lines between
// blocks are ignored.
func Parse(lines []string, opts ...ParseOption) (*Glossary, error) {
	o := parseOptions{}
	for _, opt := range opts {
		opt(&o)
	}

	g := newGlossary()
	firstSeen := make(map[string]int)
	state := expectTerm
	var cur block

	commit := func() error {
		if g.Has(cur.term) && o.duplicates == DuplicateReject {
			return foundationerrors.DuplicateError("term defined more than once").
				WithCause(ErrDuplicateTerm).
				WithContext("term", cur.term).
				WithContext("line", cur.line).
				WithContext("first_line", firstSeen[cur.term]).
				Build()
		}
		if _, ok := firstSeen[cur.term]; !ok {
			firstSeen[cur.term] = cur.line
		}
		g.put(cur.term, strings.TrimSpace(cur.text.String()))
		return nil
	}

	for i, raw := range lines {
		lineNo := i + 1
		line := strings.TrimSuffix(raw, "\r")
		blank := strings.TrimSpace(line) == ""

		switch state {
		case expectTerm:
			if blank {
				continue
			}
			cur = block{term: line, line: lineNo}
			state = expectDefinitionLine

		case expectDefinitionLine:
			if !blank {
				cur.text.WriteString(" ")
				cur.text.WriteString(line)
				continue
			}
			if cur.text.Len() == 0 {
				return nil, malformed("term has no definition", cur.term, cur.line)
			}
			if err := commit(); err != nil {
				return nil, err
			}
			state = expectTerm
		}
	}

	if state == expectDefinitionLine {
		switch {
		case cur.text.Len() == 0:
			return nil, malformed("term at end of input has no definition", cur.term, cur.line)
		case o.strict:
			return nil, malformed("last definition is not terminated by a blank line", cur.term, cur.line)
		}
		if err := commit(); err != nil {
			return nil, err
		}
	}

	return g, nil
}

// ParseReader reads lines from r and parses them.
func ParseReader(r io.Reader, opts ...ParseOption) (*Glossary, error) {
	lines, err := ReadAllLines(r)
	if err != nil {
		return nil, err
	}
	return Parse(lines, opts...)
}

// ReadAllLines splits r into lines without their terminators. CRLF endings
// are accepted.
func ReadAllLines(r io.Reader) ([]string, error) {
	var lines []string
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		lines = append(lines, sc.Text())
	}
	if err := sc.Err(); err != nil {
		return nil, foundationerrors.WrapError(err, foundationerrors.CategoryFileSystem, "read glossary source").
			Fatal().
			Build()
	}
	return lines, nil
}

func malformed(msg, term string, line int) error {
	return foundationerrors.InputError(msg).
		WithCause(ErrMalformedInput).
		WithContext("term", term).
		WithContext("line", line).
		Build()
}
