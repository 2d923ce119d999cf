package linkverify

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"git.home.luguber.info/inful/glossgen/internal/foundation/errors"
	"git.home.luguber.info/inful/glossgen/internal/logfields"
)

// BrokenLink is an internal link whose target page does not exist.
type BrokenLink struct {
	Page string
	URL  string
	Text string
}

// Result summarizes a verification run.
type Result struct {
	PagesChecked int
	LinksChecked int
	Broken       []BrokenLink
}

// OK reports whether no broken links were found.
func (r *Result) OK() bool { return len(r.Broken) == 0 }

// Verifier checks internal links of generated pages.
type Verifier struct {
	logger *slog.Logger
}

// NewVerifier creates a Verifier; a nil logger uses slog.Default.
func NewVerifier(logger *slog.Logger) *Verifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &Verifier{logger: logger}
}

// VerifyPages checks pages held in memory, keyed by page name. A link
// resolves when its target is one of the keys.
func (v *Verifier) VerifyPages(ctx context.Context, pages map[string]string) (*Result, error) {
	names := make([]string, 0, len(pages))
	for name := range pages {
		names = append(names, name)
	}
	slices.Sort(names)

	exists := func(name string) bool {
		_, ok := pages[name]
		return ok
	}
	res := &Result{}
	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := v.verifyPage(name, strings.NewReader(pages[name]), exists, res); err != nil {
			return nil, err
		}
	}
	return res, nil
}

// VerifyDir checks every .html file directly inside dir.
func (v *Verifier) VerifyDir(ctx context.Context, dir string) (*Result, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryFileSystem, "failed to read site directory").
			Fatal().
			UserAction().
			WithContext("path", dir).
			Build()
	}

	exists := func(name string) bool {
		if name == "" || strings.ContainsAny(name, `/\`) {
			return false
		}
		info, err := os.Stat(filepath.Join(dir, name))
		return err == nil && !info.IsDir()
	}

	res := &Result{}
	for _, e := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if e.IsDir() || filepath.Ext(e.Name()) != ".html" {
			continue
		}
		if err := v.verifyFile(dir, e.Name(), exists, res); err != nil {
			return nil, err
		}
	}
	return res, nil
}

func (v *Verifier) verifyFile(dir, name string, exists func(string) bool, res *Result) error {
	path := filepath.Join(dir, name)
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return errors.WrapError(err, errors.CategoryFileSystem, "failed to open HTML file").
			WithSeverity(errors.SeverityError).
			WithContext("path", path).
			Build()
	}
	defer func() {
		_ = f.Close()
	}()
	return v.verifyPage(name, f, exists, res)
}

func (v *Verifier) verifyPage(name string, r io.Reader, exists func(string) bool, res *Result) error {
	links, err := ExtractLinks(r)
	if err != nil {
		return err
	}
	res.PagesChecked++
	for _, l := range links {
		if !l.IsInternal {
			continue
		}
		res.LinksChecked++
		if resolves(l.URL, exists) {
			continue
		}
		res.Broken = append(res.Broken, BrokenLink{Page: name, URL: l.URL, Text: l.Text})
		v.logger.Warn("Broken internal link",
			logfields.Path(name),
			logfields.URL(l.URL))
	}
	return nil
}

func resolves(href string, exists func(string) bool) bool {
	for _, c := range candidates(href) {
		if exists(c) {
			return true
		}
	}
	return false
}
