// Package errors provides the classified error primitives used across glossgen.
//
// Key features:
//   - ErrorCategory: Broad error classification (config, input, duplicate, filesystem, ...)
//   - ErrorSeverity: Impact level (fatal, error, warning, info)
//   - RetryStrategy: Whether a new run can succeed without user intervention
//   - ClassifiedError: Structured error with category, severity, and context
//   - ErrorBuilder: Fluent API for creating classified errors
//   - CLIErrorAdapter: Exit codes and user-facing messages
//
// Example usage:
//
//	err := errors.InputError("term has no definition").
//		WithCause(glossary.ErrMalformedInput).
//		WithContext("line", 12).
//		Build()
package errors
