package build

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"git.home.luguber.info/inful/glossgen/internal/config"
	foundationerrors "git.home.luguber.info/inful/glossgen/internal/foundation/errors"
	"git.home.luguber.info/inful/glossgen/internal/glossary"
	"git.home.luguber.info/inful/glossgen/internal/linkverify"
	"git.home.luguber.info/inful/glossgen/internal/logfields"
	"git.home.luguber.info/inful/glossgen/internal/metrics"
	"git.home.luguber.info/inful/glossgen/internal/observability"
	"git.home.luguber.info/inful/glossgen/internal/render"
	"git.home.luguber.info/inful/glossgen/internal/site"
)

// Generator is the standard implementation of Service.
type Generator struct {
	reader   site.LineReader
	writer   site.PageWriter
	recorder metrics.Recorder
	logger   *slog.Logger
	newRunID func() string
}

var _ Service = (*Generator)(nil)

// Option configures a Generator.
type Option func(*Generator)

// WithRecorder sets the metrics recorder (default metrics.NoopRecorder).
func WithRecorder(r metrics.Recorder) Option {
	return func(g *Generator) {
		if r != nil {
			g.recorder = r
		}
	}
}

// WithLogger sets the logger (default slog.Default).
func WithLogger(l *slog.Logger) Option {
	return func(g *Generator) {
		if l != nil {
			g.logger = l
		}
	}
}

// WithRunIDFunc replaces the run ID source.
func WithRunIDFunc(fn func() string) Option {
	return func(g *Generator) {
		if fn != nil {
			g.newRunID = fn
		}
	}
}

// NewGenerator creates a Generator reading sources through reader and
// handing pages to writer.
func NewGenerator(reader site.LineReader, writer site.PageWriter, opts ...Option) *Generator {
	g := &Generator{
		reader:   reader,
		writer:   writer,
		recorder: metrics.NoopRecorder{},
		logger:   slog.Default(),
		newRunID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// run carries the state of one Run call.
type run struct {
	cfg   *config.Config
	gloss *glossary.Glossary
	links *glossary.LinkMap
	pages map[string]string
}

// Run executes the complete build. Any failure aborts the run; pages written
// before the failure stay on disk.
func (g *Generator) Run(ctx context.Context, req Request) (*Result, error) {
	start := time.Now()
	result := &Result{StartTime: start, RunID: g.newRunID()}
	ctx = observability.WithRunID(ctx, result.RunID)

	err := g.execute(ctx, req, result)

	result.EndTime = time.Now()
	result.Duration = result.EndTime.Sub(start)
	g.recorder.ObserveBuildDuration(result.Duration)

	switch {
	case err == nil:
		result.Status = StatusSuccess
		g.recorder.IncBuildOutcome(metrics.ResultSuccess)
		observability.InfoContext(ctx, g.logger, "Build completed",
			logfields.Count(result.PagesWritten),
			logfields.DurationMS(float64(result.Duration.Milliseconds())))
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		result.Status = StatusCanceled
		g.recorder.IncBuildOutcome(metrics.ResultCanceled)
		observability.WarnContext(ctx, g.logger, "Build canceled", logfields.Error(err))
	default:
		result.Status = StatusFailed
		g.recorder.IncBuildOutcome(metrics.ResultFailed)
		observability.ErrorContext(ctx, g.logger, "Build failed", logfields.Error(err))
	}
	return result, err
}

func (g *Generator) execute(ctx context.Context, req Request, result *Result) error {
	if req.Config == nil {
		return foundationerrors.ConfigError("config required").Build()
	}
	cfg := *req.Config
	if strings.TrimSpace(cfg.Input.Path) == "" {
		return foundationerrors.ConfigError("input path is required").
			WithContext("setting", "input.path").
			Build()
	}
	if err := cfg.Normalize(); err != nil {
		return err
	}

	observability.InfoContext(ctx, g.logger, "Starting build",
		logfields.Input(cfg.Input.Path),
		logfields.Policy(cfg.Linking.Policy))

	st := &run{cfg: &cfg, pages: make(map[string]string)}

	var lines []string
	err := g.stage(ctx, StageRead, func(context.Context) error {
		var err error
		lines, err = g.reader.ReadLines(cfg.Input.Path)
		return err
	})
	if err != nil {
		return err
	}

	if err := g.stage(ctx, StageParse, func(sctx context.Context) error {
		gl, err := glossary.Parse(lines, cfg.ParseOptions()...)
		if err != nil {
			return err
		}
		st.gloss = gl
		result.Terms = gl.Len()
		g.recorder.SetGlossaryTerms(gl.Len())
		result.Unlinkable = glossary.UnlinkableTerms(gl, cfg.Separators())
		for _, t := range result.Unlinkable {
			observability.WarnContext(sctx, g.logger, "Term contains separator characters and will not be linked in definitions",
				logfields.Term(t))
		}
		return nil
	}); err != nil {
		return err
	}

	if err := g.stage(ctx, StageLinkMap, func(context.Context) error {
		st.links = glossary.BuildLinkMap(st.gloss)
		return st.links.Covers(st.gloss)
	}); err != nil {
		return err
	}

	renderer, err := g.newRenderer(st.cfg)
	if err != nil {
		return err
	}

	if err := g.stage(ctx, StageRenderIndex, func(context.Context) error {
		page, err := renderer.IndexPage(st.gloss, st.links)
		if err != nil {
			return err
		}
		return g.write(st, result, glossary.IndexPageName, page)
	}); err != nil {
		return err
	}

	if err := g.stage(ctx, StageRenderTerms, func(sctx context.Context) error {
		for _, term := range st.gloss.Terms() {
			if err := sctx.Err(); err != nil {
				return err
			}
			page, err := renderer.TermPage(st.gloss, st.links, term)
			if err != nil {
				return err
			}
			if err := g.write(st, result, glossary.PageName(term), page); err != nil {
				return err
			}
		}
		return nil
	}); err != nil {
		return err
	}

	if !cfg.Output.Verify {
		return nil
	}
	return g.stage(ctx, StageVerify, func(sctx context.Context) error {
		res, err := linkverify.NewVerifier(g.logger).VerifyPages(sctx, st.pages)
		if err != nil {
			return err
		}
		result.Verification = res
		g.recorder.SetBrokenLinks(len(res.Broken))
		if !res.OK() {
			return foundationerrors.ValidationError("generated site has broken internal links").
				WithContext("count", len(res.Broken)).
				WithContext("first", res.Broken[0].Page+" -> "+res.Broken[0].URL).
				Build()
		}
		return nil
	})
}

// newRenderer prepares page templates, rendering the intro markdown when
// one is configured.
func (g *Generator) newRenderer(cfg *config.Config) (*render.Renderer, error) {
	opts := render.Options{Title: cfg.Site.Title, Link: cfg.LinkOptions()}
	if cfg.Site.Intro != "" {
		lines, err := g.reader.ReadLines(cfg.Site.Intro)
		if err != nil {
			return nil, err
		}
		intro, err := render.Markdown([]byte(strings.Join(lines, "\n")))
		if err != nil {
			return nil, err
		}
		opts.Intro = intro
	}
	return render.New(opts)
}

func (g *Generator) write(st *run, result *Result, name, content string) error {
	if err := g.writer.WritePage(name, content); err != nil {
		return err
	}
	st.pages[name] = content
	result.PagesWritten++
	g.recorder.AddPagesWritten(1)
	return nil
}

// stage times fn, records its outcome and checks for cancellation first.
func (g *Generator) stage(ctx context.Context, name string, fn func(context.Context) error) error {
	ctx = observability.WithStage(ctx, name)
	if err := ctx.Err(); err != nil {
		g.recorder.IncStageResult(name, metrics.ResultCanceled)
		return err
	}

	start := time.Now()
	err := fn(ctx)
	d := time.Since(start)
	g.recorder.ObserveStageDuration(name, d)

	switch {
	case err == nil:
		g.recorder.IncStageResult(name, metrics.ResultSuccess)
		observability.DebugContext(ctx, g.logger, "Stage complete",
			logfields.DurationMS(float64(d.Microseconds())/1000))
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		g.recorder.IncStageResult(name, metrics.ResultCanceled)
	default:
		g.recorder.IncStageResult(name, metrics.ResultFailed)
	}
	return err
}
