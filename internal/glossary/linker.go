package glossary

import (
	"strings"

	foundationerrors "git.home.luguber.info/inful/glossgen/internal/foundation/errors"
	"git.home.luguber.info/inful/glossgen/internal/foundation/normalization"
)

// Policy selects how a matched token is substituted.
type Policy string

const (
	// PolicySpan replaces exactly the token found at each scan position.
	// Words that merely contain a term are left alone.
	PolicySpan Policy = "span"

	// PolicyGlobal replaces every occurrence of the matched token text in the
	// whole accumulated result. It exists for output compatibility with
	// sites generated by earlier tools. A short term therefore also rewrites the inside of longer words and of
	// markup inserted for earlier matches (term "a" turns "cat" into
	// "c<a href=...>a</a>t").
	PolicyGlobal Policy = "global"
)

var policyNormalizer = normalization.NewEnumNormalizer("link policy", map[string]Policy{
	"span":   PolicySpan,
	"exact":  PolicySpan,
	"global": PolicyGlobal,
	"compat": PolicyGlobal,
}, PolicySpan)

// ParsePolicy converts a configured policy name. The empty string selects
// PolicySpan.
func ParsePolicy(raw string) (Policy, error) {
	if strings.TrimSpace(raw) == "" {
		return PolicySpan, nil
	}
	p, err := policyNormalizer.NormalizeWithValidation(raw)
	if err != nil {
		return PolicySpan, foundationerrors.ValidationError("unknown link policy").
			WithCause(err).
			WithContext("policy", raw).
			Build()
	}
	return p, nil
}

type linkOptions struct {
	seps   SeparatorSet
	policy Policy
}

// LinkOption configures Link.
type LinkOption func(*linkOptions)

// WithSeparators overrides DefaultSeparators.
func WithSeparators(s SeparatorSet) LinkOption {
	return func(o *linkOptions) { o.seps = s }
}

// WithPolicy selects the substitution policy (default PolicySpan).
func WithPolicy(p Policy) LinkOption {
	return func(o *linkOptions) { o.policy = p }
}

// Link rewrites definition so that every token naming a term of g becomes
// that term's hyperlink from lm. Other tokens are copied unchanged. A term
// without an entry in lm is left as plain text; LinkMap.Covers detects that
// case.
func Link(definition string, g *Glossary, lm *LinkMap, opts ...LinkOption) string {
	o := linkOptions{seps: DefaultSeparators(), policy: PolicySpan}
	for _, opt := range opts {
		opt(&o)
	}
	if o.policy == PolicyGlobal {
		return linkGlobal(definition, g, lm, o.seps)
	}
	return linkSpan(definition, g, lm, o.seps)
}

func linkSpan(definition string, g *Glossary, lm *LinkMap, seps SeparatorSet) string {
	var out strings.Builder
	out.Grow(len(definition))
	for _, tok := range Tokens(definition, seps) {
		if link, ok := lookupTerm(tok, g, lm); ok {
			out.WriteString(link)
			continue
		}
		out.WriteString(tok)
	}
	return out.String()
}

// linkGlobal scans the original definition while substituting into a
// separate result string, so substitutions never move the scan position.
func linkGlobal(definition string, g *Glossary, lm *LinkMap, seps SeparatorSet) string {
	result := definition
	for _, tok := range Tokens(definition, seps) {
		if link, ok := lookupTerm(tok, g, lm); ok {
			result = strings.ReplaceAll(result, tok, link)
		}
	}
	return result
}

func lookupTerm(tok string, g *Glossary, lm *LinkMap) (string, bool) {
	if !g.Has(tok) {
		return "", false
	}
	return lm.Lookup(tok)
}
