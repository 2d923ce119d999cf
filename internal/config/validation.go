package config

import (
	"strings"

	foundationerrors "git.home.luguber.info/inful/glossgen/internal/foundation/errors"
	"git.home.luguber.info/inful/glossgen/internal/foundation/normalization"
	"git.home.luguber.info/inful/glossgen/internal/glossary"
)

var duplicatesNormalizer = normalization.NewEnumNormalizer("duplicates policy", map[string]glossary.DuplicatePolicy{
	"reject":    glossary.DuplicateReject,
	"error":     glossary.DuplicateReject,
	"last-wins": glossary.DuplicateLastWins,
	"last":      glossary.DuplicateLastWins,
}, glossary.DuplicateReject)

// Validate checks the settings needed for a build and normalizes enum values
// in place.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Input.Path) == "" {
		return foundationerrors.ConfigError("input path is required").
			WithContext("setting", "input.path").
			Build()
	}
	if strings.TrimSpace(c.Output.Directory) == "" {
		return foundationerrors.ConfigError("output directory is required").
			WithContext("setting", "output.directory").
			Build()
	}
	return c.Normalize()
}

// Normalize validates enum settings and rewrites them to their canonical
// spelling. Input and output locations are not checked.
func (c *Config) Normalize() error {
	policy, err := glossary.ParsePolicy(c.Linking.Policy)
	if err != nil {
		return foundationerrors.WrapError(err, foundationerrors.CategoryConfig, "invalid link policy").
			Fatal().
			UserAction().
			WithContext("setting", "linking.policy").
			WithContext("value", c.Linking.Policy).
			Build()
	}
	c.Linking.Policy = string(policy)

	dup, err := ParseDuplicatePolicy(c.Parsing.Duplicates)
	if err != nil {
		return err
	}
	c.Parsing.Duplicates = dup.String()

	if _, err := logLevelNormalizer.NormalizeWithValidation(c.Logging.Level); err != nil {
		return foundationerrors.WrapError(err, foundationerrors.CategoryConfig, "invalid log level").
			Fatal().
			UserAction().
			WithContext("setting", "logging.level").
			Build()
	}
	c.Logging.Level = string(NormalizeLogLevel(c.Logging.Level))
	if _, err := logFormatNormalizer.NormalizeWithValidation(c.Logging.Format); err != nil {
		return foundationerrors.WrapError(err, foundationerrors.CategoryConfig, "invalid log format").
			Fatal().
			UserAction().
			WithContext("setting", "logging.format").
			Build()
	}
	c.Logging.Format = string(NormalizeLogFormat(c.Logging.Format))

	if c.Watch.Interval < 0 {
		return foundationerrors.ConfigError("watch interval must not be negative").
			WithContext("setting", "watch.interval").
			Build()
	}
	return nil
}

// ParseDuplicatePolicy maps a configured duplicates value; empty means reject.
func ParseDuplicatePolicy(raw string) (glossary.DuplicatePolicy, error) {
	if strings.TrimSpace(raw) == "" {
		return glossary.DuplicateReject, nil
	}
	p, err := duplicatesNormalizer.NormalizeWithValidation(raw)
	if err == nil {
		return p, nil
	}
	return glossary.DuplicateReject, foundationerrors.WrapError(err, foundationerrors.CategoryConfig, "invalid duplicates policy").
		Fatal().
		UserAction().
		WithContext("setting", "parsing.duplicates").
		WithContext("value", raw).
		Build()
}

// ParseOptions translates the parsing section into glossary options.
func (c *Config) ParseOptions() []glossary.ParseOption {
	dup, _ := ParseDuplicatePolicy(c.Parsing.Duplicates)
	return []glossary.ParseOption{
		glossary.WithDuplicatePolicy(dup),
		glossary.WithStrict(c.Parsing.Strict),
	}
}

// LinkOptions translates the linking section into glossary options.
func (c *Config) LinkOptions() []glossary.LinkOption {
	policy, _ := glossary.ParsePolicy(c.Linking.Policy)
	opts := []glossary.LinkOption{glossary.WithPolicy(policy)}
	if c.Linking.Separators != "" {
		opts = append(opts, glossary.WithSeparators(glossary.NewSeparatorSet(c.Linking.Separators)))
	}
	return opts
}

// Separators returns the configured separator set.
func (c *Config) Separators() glossary.SeparatorSet {
	if c.Linking.Separators == "" {
		return glossary.DefaultSeparators()
	}
	return glossary.NewSeparatorSet(c.Linking.Separators)
}
