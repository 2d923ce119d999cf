package commands

import (
	"fmt"

	"git.home.luguber.info/inful/glossgen/internal/config"
	foundationerrors "git.home.luguber.info/inful/glossgen/internal/foundation/errors"
	"git.home.luguber.info/inful/glossgen/internal/linkverify"
)

// CheckCmd implements the 'check' command.
type CheckCmd struct {
	Dir string `arg:"" optional:"" help:"Site directory (default: configured output directory)"`
}

func (c *CheckCmd) Run(g *Global, root *CLI) error {
	cfg, err := config.Load(root.Config)
	if err != nil {
		return err
	}
	dir := c.Dir
	if dir == "" {
		dir = cfg.Output.Directory
	}
	if dir == "" {
		return foundationerrors.ValidationError("site directory is required").
			WithContext("setting", "output.directory").
			Build()
	}
	logger := configureLogger(g, root, cfg)

	res, err := linkverify.NewVerifier(logger).VerifyDir(g.runContext(), dir)
	if err != nil {
		return err
	}
	for _, b := range res.Broken {
		_, _ = fmt.Fprintf(g.Stdout, "%s: broken link %q\n", b.Page, b.URL)
	}
	_, _ = fmt.Fprintf(g.Stdout, "Checked %d links in %d pages, %d broken\n",
		res.LinksChecked, res.PagesChecked, len(res.Broken))
	if !res.OK() {
		return foundationerrors.ValidationError("site has broken internal links").
			WithContext("count", len(res.Broken)).
			WithContext("path", dir).
			Build()
	}
	return nil
}
