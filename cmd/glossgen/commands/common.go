package commands

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/glossgen/internal/config"
)

// Global carries process-wide state into every command.
type Global struct {
	Ctx    context.Context
	Logger *slog.Logger
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// NewGlobal binds the standard streams.
func NewGlobal(ctx context.Context) *Global {
	return &Global{
		Ctx:    ctx,
		Logger: slog.Default(),
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}
}

func (g *Global) runContext() context.Context {
	if g.Ctx == nil {
		return context.Background()
	}
	return g.Ctx
}

// CLI definition & global flags.
type CLI struct {
	Config  string           `short:"c" help:"Configuration file path (default: glossgen.yaml when present)"`
	Verbose bool             `short:"v" help:"Enable verbose logging"`
	Version kong.VersionFlag `name:"version" help:"Show version and exit"`

	Build BuildCmd `cmd:"" default:"withargs" help:"Generate the glossary site (default command)"`
	Watch WatchCmd `cmd:"" help:"Regenerate the site whenever the glossary source changes"`
	Check CheckCmd `cmd:"" help:"Verify internal links of a generated site"`
}

// AfterApply runs after flag parsing; set up logging once. Commands refine
// it after the configuration file is loaded.
// nolint:unparam // AfterApply currently never returns an error.
func (c *CLI) AfterApply() error {
	level := slog.LevelInfo
	if c.Verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	return nil
}

// SourceFlags are shared by the commands that generate pages. Set flags win
// over environment and configuration file values.
type SourceFlags struct {
	Input           string `short:"i" help:"Glossary source file"`
	Output          string `short:"o" help:"Existing directory the pages are written into"`
	Charset         string `help:"Character set of the source file (IANA name)"`
	Strict          bool   `help:"Reject a final definition that is not followed by a blank line"`
	AllowDuplicates bool   `name:"allow-duplicates" help:"Let a later definition of a term replace the earlier one"`
	Policy          string `help:"Link substitution policy (span, global)"`
	Title           string `help:"Index page title"`
	Intro           string `help:"Markdown file rendered above the index list"`
	NoPrompt        bool   `name:"no-prompt" help:"Fail instead of prompting when input or output is missing"`
}

func (f *SourceFlags) apply(cfg *config.Config) {
	if f.Input != "" {
		cfg.Input.Path = f.Input
	}
	if f.Output != "" {
		cfg.Output.Directory = f.Output
	}
	if f.Charset != "" {
		cfg.Input.Charset = f.Charset
	}
	if f.Strict {
		cfg.Parsing.Strict = true
	}
	if f.AllowDuplicates {
		cfg.Parsing.Duplicates = "last-wins"
	}
	if f.Policy != "" {
		cfg.Linking.Policy = f.Policy
	}
	if f.Title != "" {
		cfg.Site.Title = f.Title
	}
	if f.Intro != "" {
		cfg.Site.Intro = f.Intro
	}
}

// prepare loads configuration, applies flags, prompts for missing locations
// and validates the result. The returned logger follows the logging section.
func (f *SourceFlags) prepare(g *Global, root *CLI) (*config.Config, *slog.Logger, error) {
	cfg, err := config.Load(root.Config)
	if err != nil {
		return nil, nil, err
	}
	f.apply(cfg)
	if !f.NoPrompt {
		if err := promptMissing(newPrompter(g.Stdin, g.Stdout), cfg); err != nil {
			return nil, nil, err
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}
	logger := configureLogger(g, root, cfg)
	logger.Debug("Effective configuration", slog.String("config", cfg.String()))
	return cfg, logger, nil
}

func configureLogger(g *Global, root *CLI, cfg *config.Config) *slog.Logger {
	w := g.Stderr
	if w == nil {
		w = os.Stderr
	}
	logger := cfg.Logging.NewLogger(w, root.Verbose)
	slog.SetDefault(logger)
	g.Logger = logger
	return logger
}
