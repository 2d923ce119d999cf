// Package glossary parses term/definition sources and cross-links definitions.
//
// A source is a sequence of blocks: a term line, one or more definition
// lines, and a terminating blank line. Parse turns it into an ordered
// Glossary, BuildLinkMap derives the hyperlink for every term plus the index
// page, and Link rewrites a definition so that every token naming a term
// becomes that term's hyperlink.
//
// Tokens are maximal runs of either word runes or separator runes (see
// SeparatorSet). Positions handed to NextToken are byte offsets into the
// text and must fall on rune boundaries.
package glossary
