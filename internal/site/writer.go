package site

import (
	"errors"
	"io/fs"
	"maps"
	"os"
	"path/filepath"
	"strings"
	"sync"

	foundationerrors "git.home.luguber.info/inful/glossgen/internal/foundation/errors"
)

// DirWriter writes pages into an existing directory. It never creates the
// directory.
type DirWriter struct {
	dir string
}

// NewDirWriter checks that dir exists and is a directory.
func NewDirWriter(dir string) (*DirWriter, error) {
	w := &DirWriter{dir: dir}
	if err := w.checkDir(); err != nil {
		return nil, err
	}
	return w, nil
}

// Dir returns the output directory.
func (w *DirWriter) Dir() string { return w.dir }

func (w *DirWriter) checkDir() error {
	st, err := os.Stat(w.dir)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return foundationerrors.FileSystemError("output directory does not exist").
			WithCause(ErrMissingOutputDirectory).
			WithContext("path", w.dir).
			Build()
	case err != nil:
		return foundationerrors.FileSystemError("cannot access output directory").
			WithCause(errors.Join(ErrIOFailure, err)).
			WithContext("path", w.dir).
			Build()
	case !st.IsDir():
		return foundationerrors.FileSystemError("output path is not a directory").
			WithCause(ErrMissingOutputDirectory).
			WithContext("path", w.dir).
			Build()
	}
	return nil
}

// WritePage implements PageWriter. name must be a plain file name; a term
// containing a path separator cannot be written.
func (w *DirWriter) WritePage(name, content string) error {
	path := filepath.Join(w.dir, name)
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return foundationerrors.FileSystemError("page name is not a plain file name").
			WithCause(ErrIOFailure).
			WithContext("path", path).
			WithContext("page", name).
			Build()
	}
	if err := w.checkDir(); err != nil {
		return err
	}
	// #nosec G306 -- generated pages are meant to be served publicly.
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return foundationerrors.FileSystemError("cannot write page").
			WithCause(errors.Join(ErrIOFailure, err)).
			WithContext("path", path).
			Build()
	}
	return nil
}

// MemoryWriter keeps pages in memory. Used for dry runs and tests.
type MemoryWriter struct {
	mu    sync.Mutex
	pages map[string]string
	order []string
}

// NewMemoryWriter returns an empty MemoryWriter.
func NewMemoryWriter() *MemoryWriter {
	return &MemoryWriter{pages: make(map[string]string)}
}

// WritePage implements PageWriter.
func (m *MemoryWriter) WritePage(name, content string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.pages[name]; !ok {
		m.order = append(m.order, name)
	}
	m.pages[name] = content
	return nil
}

// Page returns the content written under name.
func (m *MemoryWriter) Page(name string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.pages[name]
	return p, ok
}

// Names returns page names in the order they were first written.
func (m *MemoryWriter) Names() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.order...)
}

// Pages returns a copy of all pages.
func (m *MemoryWriter) Pages() map[string]string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return maps.Clone(m.pages)
}
