// Package watch re-parses a .env file whenever it changes on disk.
package watch

import (
	"context"
	"fmt"
	"log/slog"
	"maps"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/lizzyg/envparse/internal/source"
)

// DefaultDebounce is the quiet period after the last event before re-reading.
const DefaultDebounce = 250 * time.Millisecond

// Watcher delivers the parsed contents of one file each time they change.
type Watcher struct {
	path     string
	onChange func(map[string]string)
	onError  func(error)
	loader   *source.Loader
	logger   *slog.Logger
	debounce time.Duration
}

// Option allows functional configuration.
type Option func(*Watcher)

// WithLogger sets a custom slog logger.
func WithLogger(l *slog.Logger) Option { return func(w *Watcher) { w.logger = l } }

// WithDebounce sets the quiet period; zero re-reads on every event.
func WithDebounce(d time.Duration) Option { return func(w *Watcher) { w.debounce = d } }

// WithLoader sets the loader used to read the file.
func WithLoader(l *source.Loader) Option { return func(w *Watcher) { w.loader = l } }

// WithErrorHandler receives read failures. They are logged either way and
// never stop the watcher.
func WithErrorHandler(fn func(error)) Option { return func(w *Watcher) { w.onError = fn } }

// New builds a Watcher for path. onChange runs on the goroutine calling Run.
func New(path string, onChange func(map[string]string), opts ...Option) *Watcher {
	w := &Watcher{
		path:     path,
		onChange: onChange,
		onError:  func(error) {},
		logger:   slog.Default(),
		debounce: DefaultDebounce,
	}
	for _, o := range opts {
		o(w)
	}
	if w.loader == nil {
		w.loader = source.New(source.WithLogger(w.logger))
	}
	return w
}

// Run reads the file once, then again after every write or re-creation,
// until ctx is done. The parent directory is watched so that editors that
// save by renaming a temporary file over the original are noticed.
func (w *Watcher) Run(ctx context.Context) error {
	abs, err := filepath.Abs(w.path)
	if err != nil {
		return fmt.Errorf("resolve %s: %w", w.path, err)
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer fw.Close()

	if err := fw.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("watch %s: %w", filepath.Dir(abs), err)
	}
	w.logger.Info("watching file", slog.String("path", abs), slog.Duration("debounce", w.debounce))

	var last map[string]string
	reload := func() {
		m, err := w.loader.ReadFile(ctx, abs)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			w.logger.Warn("reload failed", slog.String("path", abs), slog.Any("err", err))
			w.onError(err)
			return
		}
		if last != nil && maps.Equal(last, m) {
			w.logger.Debug("file changed without new entries", slog.String("path", abs))
			return
		}
		last = m
		w.onChange(m)
	}
	reload()

	var timer *time.Timer
	var fire <-chan time.Time
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("watcher stopped", slog.String("path", abs))
			return nil

		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != abs {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			w.logger.Debug("file changed", slog.String("path", abs), slog.String("op", event.Op.String()))
			if w.debounce <= 0 {
				reload()
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			reload()

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.logger.Error("watcher error", slog.String("path", abs), slog.Any("err", err))
			w.onError(err)
		}
	}
}
