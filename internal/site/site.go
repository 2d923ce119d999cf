// Package site reads glossary sources and writes generated pages.
package site

import (
	"errors"
)

var (
	// ErrMissingOutputDirectory is the cause when the output directory is absent.
	ErrMissingOutputDirectory = errors.New("output directory does not exist")

	// ErrIOFailure is the cause of every other read or write failure.
	ErrIOFailure = errors.New("i/o failure")
)

// LineReader reads a source file as lines without terminators.
type LineReader interface {
	ReadLines(path string) ([]string, error)
}

// PageWriter stores one generated page under name.
type PageWriter interface {
	WritePage(name, content string) error
}
