// Package config loads glossgen settings from glossgen.yaml, .env files and
// GLOSSGEN_* environment variables.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	foundationerrors "git.home.luguber.info/inful/glossgen/internal/foundation/errors"
)

// DefaultPath is read when no configuration file is named explicitly.
const DefaultPath = "glossgen.yaml"

// EnvPrefix prefixes every environment override.
const EnvPrefix = "GLOSSGEN_"

// Config is the complete glossgen configuration.
type Config struct {
	Input   InputConfig   `yaml:"input" envPrefix:"INPUT_"`
	Output  OutputConfig  `yaml:"output" envPrefix:"OUTPUT_"`
	Site    SiteConfig    `yaml:"site" envPrefix:"SITE_"`
	Parsing ParsingConfig `yaml:"parsing" envPrefix:"PARSING_"`
	Linking LinkingConfig `yaml:"linking" envPrefix:"LINKING_"`
	Logging LoggingConfig `yaml:"logging" envPrefix:"LOGGING_"`
	Metrics MetricsConfig `yaml:"metrics" envPrefix:"METRICS_"`
	Watch   WatchConfig   `yaml:"watch" envPrefix:"WATCH_"`
}

// InputConfig names the glossary source file.
type InputConfig struct {
	Path    string `yaml:"path" env:"PATH"`
	Charset string `yaml:"charset" env:"CHARSET"`
}

// OutputConfig names the directory pages are written to. The directory must
// already exist.
type OutputConfig struct {
	Directory string `yaml:"directory" env:"DIRECTORY"`
	Verify    bool   `yaml:"verify" env:"VERIFY"`
}

// SiteConfig holds presentation settings of the index page.
type SiteConfig struct {
	Title string `yaml:"title" env:"TITLE"`
	// Intro is an optional markdown file rendered above the index list.
	Intro string `yaml:"intro" env:"INTRO"`
}

// ParsingConfig controls how the glossary source is read.
type ParsingConfig struct {
	Strict     bool   `yaml:"strict" env:"STRICT"`
	Duplicates string `yaml:"duplicates" env:"DUPLICATES"`
}

// LinkingConfig controls definition cross-linking.
type LinkingConfig struct {
	Policy     string `yaml:"policy" env:"POLICY"`
	Separators string `yaml:"separators" env:"SEPARATORS"`
}

// LoggingConfig selects slog level and handler.
type LoggingConfig struct {
	Level  string `yaml:"level" env:"LEVEL"`
	Format string `yaml:"format" env:"FORMAT"`
}

// MetricsConfig enables Prometheus output.
type MetricsConfig struct {
	// Textfile receives the registry after a build (node exporter textfile format).
	Textfile string `yaml:"textfile" env:"TEXTFILE"`
	// Listen serves /metrics while watching, e.g. ":9102".
	Listen string `yaml:"listen" env:"LISTEN"`
}

// WatchConfig tunes watch mode.
type WatchConfig struct {
	Debounce time.Duration `yaml:"debounce" env:"DEBOUNCE"`
	// Interval triggers a rebuild periodically; zero disables it.
	Interval time.Duration `yaml:"interval" env:"INTERVAL"`
}

// Load reads configuration with precedence env > file > defaults. An empty
// path reads DefaultPath when it exists; a named file that is missing is an
// error.
func Load(path string) (*Config, error) {
	if err := loadEnvFiles(".env", ".env.local"); err != nil {
		return nil, err
	}

	cfg := &Config{}
	file := path
	if file == "" {
		file = DefaultPath
	}
	if err := readFile(file, path != "", cfg); err != nil {
		return nil, err
	}
	if err := applyEnv(cfg); err != nil {
		return nil, err
	}
	applyDefaults(cfg)
	return cfg, nil
}

// Default returns a configuration with only defaults applied.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

func readFile(path string, required bool, cfg *Config) error {
	data, err := os.ReadFile(path) // #nosec G304 -- path is user-provided config location
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) && !required {
			return nil
		}
		return foundationerrors.WrapError(err, foundationerrors.CategoryConfig, "read configuration file").
			Fatal().
			UserAction().
			WithContext("path", path).
			Build()
	}

	expanded := os.ExpandEnv(string(data))
	if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
		return foundationerrors.WrapError(err, foundationerrors.CategoryConfig, "parse configuration file").
			Fatal().
			UserAction().
			WithContext("path", path).
			Build()
	}
	slog.Debug("Loaded configuration file", slog.String("path", path))
	return nil
}

// loadEnvFiles loads each existing file; variables already set in the
// process environment win.
func loadEnvFiles(paths ...string) error {
	for _, p := range paths {
		if _, err := os.Stat(p); err != nil {
			continue
		}
		if err := godotenv.Load(p); err != nil {
			return foundationerrors.WrapError(err, foundationerrors.CategoryConfig, "load env file").
				Fatal().
				UserAction().
				WithContext("path", p).
				Build()
		}
		slog.Debug("Loaded environment file", slog.String("path", p))
	}
	return nil
}

func applyEnv(cfg *Config) error {
	if err := env.ParseWithOptions(cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return foundationerrors.WrapError(err, foundationerrors.CategoryConfig, "parse environment overrides").
			Fatal().
			UserAction().
			WithContext("prefix", EnvPrefix).
			Build()
	}
	return nil
}

// String summarizes the effective settings for debug logs.
func (c *Config) String() string {
	return fmt.Sprintf("input=%s output=%s policy=%s duplicates=%s strict=%t",
		c.Input.Path, c.Output.Directory, c.Linking.Policy, c.Parsing.Duplicates, c.Parsing.Strict)
}
