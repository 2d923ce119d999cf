package watch

import (
	"context"
	"errors"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	foundationerrors "git.home.luguber.info/inful/glossgen/internal/foundation/errors"
	"git.home.luguber.info/inful/glossgen/internal/logfields"
)

// DefaultDebounce is the quiet window used when Options.Debounce is zero.
const DefaultDebounce = 300 * time.Millisecond

// RebuildFunc regenerates the whole site.
type RebuildFunc func(ctx context.Context) error

// Options configures a Watcher.
type Options struct {
	// Files whose changes trigger a rebuild. Empty entries are ignored.
	Files []string
	// Debounce is the quiet window before a rebuild starts.
	Debounce time.Duration
	// Interval adds a periodic rebuild; zero disables it.
	Interval time.Duration
	Logger   *slog.Logger
}

// Watcher rebuilds the site on source changes.
type Watcher struct {
	rebuild RebuildFunc
	opts    Options
	logger  *slog.Logger
	files   map[string]struct{}
	dirs    []string

	mu      sync.Mutex
	builds  int
	lastErr error
}

// New validates options and resolves the watched files to absolute paths.
func New(rebuild RebuildFunc, opts Options) (*Watcher, error) {
	if rebuild == nil {
		return nil, foundationerrors.ValidationError("rebuild function is required").Build()
	}
	if opts.Debounce <= 0 {
		opts.Debounce = DefaultDebounce
	}
	if opts.Interval < 0 {
		return nil, foundationerrors.ValidationError("watch interval must not be negative").Build()
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	w := &Watcher{rebuild: rebuild, opts: opts, logger: logger, files: map[string]struct{}{}}
	seenDirs := map[string]struct{}{}
	for _, f := range opts.Files {
		if strings.TrimSpace(f) == "" {
			continue
		}
		abs, err := filepath.Abs(f)
		if err != nil {
			return nil, foundationerrors.WrapError(err, foundationerrors.CategoryFileSystem, "resolve watched file").
				Fatal().
				WithContext("path", f).
				Build()
		}
		w.files[abs] = struct{}{}
		dir := filepath.Dir(abs)
		if _, ok := seenDirs[dir]; !ok {
			seenDirs[dir] = struct{}{}
			w.dirs = append(w.dirs, dir)
		}
	}
	if len(w.files) == 0 {
		return nil, foundationerrors.ValidationError("no files to watch").Build()
	}
	return w, nil
}

// Builds returns the number of completed rebuilds and the last error.
func (w *Watcher) Builds() (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.builds, w.lastErr
}

// Run builds once, then rebuilds on every relevant change until ctx is done.
// Failed rebuilds are logged and watching continues.
func (w *Watcher) Run(ctx context.Context) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return foundationerrors.WrapError(err, foundationerrors.CategoryRuntime, "create file watcher").Fatal().Build()
	}
	defer func() { _ = fsw.Close() }()

	for _, dir := range w.dirs {
		if err := fsw.Add(dir); err != nil {
			return foundationerrors.WrapError(err, foundationerrors.CategoryFileSystem, "watch directory").
				Fatal().
				UserAction().
				WithContext("path", dir).
				Build()
		}
	}

	rebuildReq := make(chan struct{}, 1)
	deb := newDebouncer(w.opts.Debounce, rebuildReq)
	defer deb.stop()

	if w.opts.Interval > 0 {
		sched, err := NewScheduler(w.logger)
		if err != nil {
			return err
		}
		if _, err := sched.SchedulePeriodicRebuild(w.opts.Interval, func() { request(rebuildReq) }); err != nil {
			return err
		}
		sched.Start(ctx)
		defer func() {
			if err := sched.Stop(context.Background()); err != nil {
				w.logger.Warn("Scheduler shutdown error", logfields.Error(err))
			}
		}()
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		w.rebuildWorker(ctx, rebuildReq)
	}()
	request(rebuildReq)

	w.logger.Info("Watching for changes", logfields.Count(len(w.files)))
	err = w.loop(ctx, fsw, deb)
	wg.Wait()
	return err
}

func (w *Watcher) loop(ctx context.Context, fsw *fsnotify.Watcher, deb *debouncer) error {
	for {
		select {
		case <-ctx.Done():
			w.logger.Info("Stopping watch")
			return nil
		case ev, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if w.relevant(ev) {
				w.logger.Debug("File change detected", logfields.Path(ev.Name), slog.String("op", ev.Op.String()))
				deb.trigger()
			}
		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("Watcher error", logfields.Error(err))
		}
	}
}

// relevant reports whether ev touches a watched file.
func (w *Watcher) relevant(ev fsnotify.Event) bool {
	if ev.Op == fsnotify.Chmod || shouldIgnoreEvent(ev.Name) {
		return false
	}
	abs, err := filepath.Abs(ev.Name)
	if err != nil {
		return false
	}
	_, ok := w.files[abs]
	return ok
}

// rebuildWorker runs rebuilds one at a time. Requests arriving during a
// rebuild wait in the single-slot channel and cause one follow-up.
func (w *Watcher) rebuildWorker(ctx context.Context, rebuildReq <-chan struct{}) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-rebuildReq:
			w.processRebuild(ctx)
		}
	}
}

func (w *Watcher) processRebuild(ctx context.Context) {
	err := w.rebuild(ctx)
	if err != nil && !errors.Is(err, context.Canceled) {
		w.logger.Warn("Rebuild failed", logfields.Error(err))
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	w.builds++
	w.lastErr = err
}

// shouldIgnoreEvent returns true for editor swap, backup and lock files.
func shouldIgnoreEvent(path string) bool {
	base := filepath.Base(path)
	if strings.HasSuffix(base, "~") ||
		strings.HasSuffix(base, ".swp") ||
		strings.HasSuffix(base, ".swx") ||
		strings.HasPrefix(base, ".#") ||
		strings.HasPrefix(base, "#") && strings.HasSuffix(base, "#") {
		return true
	}
	return base == ".DS_Store" || base == "Thumbs.db"
}
