package glossary

import "errors"

var (
	// ErrMalformedInput is the cause of every error reported for a source that
	// does not follow the term / definition / blank line structure.
	ErrMalformedInput = errors.New("malformed glossary input")

	// ErrDuplicateTerm is the cause when a term is defined more than once and
	// the duplicate policy rejects it.
	ErrDuplicateTerm = errors.New("duplicate term")

	// ErrUnresolvedIndexLink means a link map reached rendering without its
	// index entry or without an entry for a glossary term. It is a defect in
	// the caller, not a problem with the source.
	ErrUnresolvedIndexLink = errors.New("unresolved link map entry")
)
