// Package render produces the index page and the per-term pages of a glossary site.
//
// Pages are plain text/template output: definitions and links are embedded
// as produced by the glossary package, without HTML escaping.
package render

import (
	"bytes"
	"embed"
	"text/template"

	foundationerrors "git.home.luguber.info/inful/glossgen/internal/foundation/errors"
	"git.home.luguber.info/inful/glossgen/internal/glossary"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

// DefaultTitle is the index page title when none is configured.
const DefaultTitle = "Glossary"

// Options configures a Renderer.
type Options struct {
	// Title of the index page.
	Title string
	// Intro is pre-rendered HTML placed between the heading and the index list.
	Intro string
	// Link options used when cross-linking definitions.
	Link []glossary.LinkOption
}

// Renderer renders glossary pages. It holds no per-glossary state and can be
// reused across builds.
type Renderer struct {
	opts  Options
	index *template.Template
	term  *template.Template
}

type indexData struct {
	Title string
	Intro string
	Links []string
}

type termData struct {
	Term       string
	Definition string
	IndexLink  string
}

// New parses the embedded page templates.
func New(opts Options) (*Renderer, error) {
	if opts.Title == "" {
		opts.Title = DefaultTitle
	}
	index, err := parseTemplate("index.html.tmpl")
	if err != nil {
		return nil, err
	}
	term, err := parseTemplate("term.html.tmpl")
	if err != nil {
		return nil, err
	}
	return &Renderer{opts: opts, index: index, term: term}, nil
}

func parseTemplate(name string) (*template.Template, error) {
	tpl, err := template.New(name).Option("missingkey=error").ParseFS(templateFS, "templates/"+name)
	if err != nil {
		return nil, foundationerrors.WrapError(err, foundationerrors.CategoryInternal, "parse page template").
			Fatal().
			WithContext("template", name).
			Build()
	}
	return tpl, nil
}

// IndexPage renders the index: every term's link in Lexicographic order.
func (r *Renderer) IndexPage(g *glossary.Glossary, lm *glossary.LinkMap) (string, error) {
	if err := lm.Covers(g); err != nil {
		return "", err
	}
	terms := g.SortedTerms()
	links := make([]string, 0, len(terms))
	for _, t := range terms {
		link, _ := lm.Lookup(t)
		links = append(links, link)
	}
	return execute(r.index, indexData{Title: r.opts.Title, Intro: r.opts.Intro, Links: links})
}

// TermPage renders the page of a single term with its cross-linked
// definition and a link back to the index.
func (r *Renderer) TermPage(g *glossary.Glossary, lm *glossary.LinkMap, term string) (string, error) {
	def, ok := g.Definition(term)
	if !ok {
		return "", foundationerrors.ValidationError("term is not in the glossary").
			WithContext("term", term).
			Build()
	}
	if err := lm.Covers(g); err != nil {
		return "", err
	}
	index, _ := lm.Index()
	return execute(r.term, termData{
		Term:       term,
		Definition: glossary.Link(def, g, lm, r.opts.Link...),
		IndexLink:  index,
	})
}

func execute(tpl *template.Template, data any) (string, error) {
	var buf bytes.Buffer
	if err := tpl.Execute(&buf, data); err != nil {
		return "", foundationerrors.WrapError(err, foundationerrors.CategoryInternal, "render page").
			Fatal().
			WithContext("template", tpl.Name()).
			Build()
	}
	return buf.String(), nil
}
