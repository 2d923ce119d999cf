package commands

import (
	"fmt"
	"log/slog"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"

	"git.home.luguber.info/inful/glossgen/internal/build"
	"git.home.luguber.info/inful/glossgen/internal/config"
	"git.home.luguber.info/inful/glossgen/internal/logfields"
	"git.home.luguber.info/inful/glossgen/internal/metrics"
	"git.home.luguber.info/inful/glossgen/internal/site"
)

// BuildCmd implements the 'build' command.
type BuildCmd struct {
	SourceFlags `embed:""`

	Verify      bool   `help:"Check that every internal link of the generated pages resolves"`
	MetricsFile string `name:"metrics-file" help:"Write Prometheus metrics to this node exporter textfile"`
}

func (b *BuildCmd) Run(g *Global, root *CLI) error {
	cfg, logger, err := b.prepare(g, root)
	if err != nil {
		return err
	}
	if b.Verify {
		cfg.Output.Verify = true
	}
	if b.MetricsFile != "" {
		cfg.Metrics.Textfile = b.MetricsFile
	}

	var reg *prom.Registry
	var recorder metrics.Recorder = metrics.NoopRecorder{}
	if cfg.Metrics.Textfile != "" {
		reg = prom.NewRegistry()
		recorder = metrics.NewPrometheusRecorder(reg)
	}

	gen, err := newGenerator(cfg, logger, recorder)
	if err != nil {
		return err
	}
	res, runErr := gen.Run(g.runContext(), build.Request{Config: cfg})

	if reg != nil {
		if err := metrics.WriteTextfile(cfg.Metrics.Textfile, reg); err != nil {
			logger.Warn("Failed to write metrics textfile", logfields.Path(cfg.Metrics.Textfile), logfields.Error(err))
		}
	}
	if runErr != nil {
		return runErr
	}

	_, _ = fmt.Fprintf(g.Stdout, "Generated %d pages for %d terms in %s (%s)\n",
		res.PagesWritten, res.Terms, cfg.Output.Directory, res.Duration.Round(time.Millisecond))
	return nil
}

// newGenerator wires the disk source and writer described by cfg.
func newGenerator(cfg *config.Config, logger *slog.Logger, recorder metrics.Recorder) (*build.Generator, error) {
	src, err := site.NewFileSource(cfg.Input.Charset)
	if err != nil {
		return nil, err
	}
	w, err := site.NewDirWriter(cfg.Output.Directory)
	if err != nil {
		return nil, err
	}
	return build.NewGenerator(src, w,
		build.WithLogger(logger),
		build.WithRecorder(recorder)), nil
}
