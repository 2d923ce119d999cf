package commands

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"

	"git.home.luguber.info/inful/glossgen/internal/build"
	"git.home.luguber.info/inful/glossgen/internal/config"
	foundationerrors "git.home.luguber.info/inful/glossgen/internal/foundation/errors"
	"git.home.luguber.info/inful/glossgen/internal/logfields"
	"git.home.luguber.info/inful/glossgen/internal/metrics"
	"git.home.luguber.info/inful/glossgen/internal/watch"
)

// WatchCmd implements the 'watch' command.
type WatchCmd struct {
	SourceFlags `embed:""`

	Debounce    time.Duration `help:"Quiet period after a change before rebuilding"`
	Interval    time.Duration `help:"Also rebuild on this interval (0 disables)"`
	MetricsAddr string        `name:"metrics-addr" help:"Serve Prometheus metrics on this address, e.g. :9102"`
}

func (w *WatchCmd) Run(g *Global, root *CLI) error {
	cfg, logger, err := w.prepare(g, root)
	if err != nil {
		return err
	}
	if w.Debounce > 0 {
		cfg.Watch.Debounce = w.Debounce
	}
	if w.Interval > 0 {
		cfg.Watch.Interval = w.Interval
	}
	if w.MetricsAddr != "" {
		cfg.Metrics.Listen = w.MetricsAddr
	}

	ctx := g.runContext()
	var recorder metrics.Recorder = metrics.NoopRecorder{}
	if cfg.Metrics.Listen != "" {
		reg := prom.NewRegistry()
		recorder = metrics.NewPrometheusRecorder(reg)
		stop, err := serveMetrics(cfg.Metrics.Listen, reg, logger)
		if err != nil {
			return err
		}
		defer stop()
	}

	gen, err := newGenerator(cfg, logger, recorder)
	if err != nil {
		return err
	}
	rebuild := func(ctx context.Context) error {
		_, err := gen.Run(ctx, build.Request{Config: cfg})
		return err
	}

	watcher, err := watch.New(rebuild, watch.Options{
		Files:    watchedFiles(cfg, root),
		Debounce: cfg.Watch.Debounce,
		Interval: cfg.Watch.Interval,
		Logger:   logger,
	})
	if err != nil {
		return err
	}
	return watcher.Run(ctx)
}

// watchedFiles lists the source, the intro and the configuration file.
func watchedFiles(cfg *config.Config, root *CLI) []string {
	files := []string{cfg.Input.Path, cfg.Site.Intro}
	path := root.Config
	if path == "" {
		path = config.DefaultPath
	}
	if _, err := os.Stat(path); err == nil {
		files = append(files, path)
	}
	return files
}

// serveMetrics starts an HTTP server exposing /metrics and returns its
// shutdown function.
func serveMetrics(addr string, reg *prom.Registry, logger *slog.Logger) (func(), error) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.HTTPHandler(reg))
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return nil, foundationerrors.WrapError(err, foundationerrors.CategoryRuntime, "start metrics server").
				Fatal().
				WithContext("addr", addr).
				Build()
		}
	case <-time.After(50 * time.Millisecond):
	}
	logger.Info("Serving metrics", slog.String("addr", addr))

	return func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Warn("Metrics server shutdown error", logfields.Error(err))
		}
	}, nil
}
