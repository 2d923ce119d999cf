package site

import (
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	foundationerrors "git.home.luguber.info/inful/glossgen/internal/foundation/errors"
	"git.home.luguber.info/inful/glossgen/internal/glossary"
)

// FileSource reads sources from disk, decoding them from a configured
// character set into UTF-8.
type FileSource struct {
	charset string
	enc     encoding.Encoding
}

// NewFileSource returns a source for the named IANA charset. An empty name
// or any UTF-8 alias reads UTF-8 and drops a leading byte order mark.
func NewFileSource(charset string) (*FileSource, error) {
	enc, err := lookupEncoding(charset)
	if err != nil {
		return nil, err
	}
	return &FileSource{charset: charset, enc: enc}, nil
}

func lookupEncoding(name string) (encoding.Encoding, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "utf-8", "utf8":
		return unicode.UTF8BOM, nil
	}
	enc, err := ianaindex.IANA.Encoding(name)
	if err != nil || enc == nil {
		return nil, foundationerrors.ConfigError("unsupported input encoding").
			WithCause(err).
			WithContext("encoding", name).
			Build()
	}
	return enc, nil
}

// Charset returns the configured charset name.
func (s *FileSource) Charset() string {
	if s.charset == "" {
		return "utf-8"
	}
	return s.charset
}

// ReadLines implements LineReader.
func (s *FileSource) ReadLines(path string) ([]string, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		msg := "cannot open glossary source"
		if errors.Is(err, fs.ErrNotExist) {
			msg = "glossary source does not exist"
		}
		return nil, foundationerrors.FileSystemError(msg).
			WithCause(errors.Join(ErrIOFailure, err)).
			WithContext("path", path).
			Build()
	}
	defer func() {
		_ = f.Close() // read-only
	}()

	return s.decodeLines(f, path)
}

func (s *FileSource) decodeLines(r io.Reader, path string) ([]string, error) {
	lines, err := glossary.ReadAllLines(transform.NewReader(r, s.enc.NewDecoder()))
	if err != nil {
		return nil, foundationerrors.FileSystemError("cannot read glossary source").
			WithCause(errors.Join(ErrIOFailure, err)).
			WithContext("path", path).
			WithContext("encoding", s.Charset()).
			Build()
	}
	return lines, nil
}
