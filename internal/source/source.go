// Package source reads .env files from disk and merges them.
package source

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/lizzyg/envparse"
	moderr "github.com/lizzyg/envparse/errors"
	"github.com/lizzyg/envparse/internal/retry"
)

// Stdin is the path that stands for standard input.
const Stdin = "-"

// maxOpenFiles bounds the files Load reads at once.
const maxOpenFiles = 8

// Loader reads and parses files.
type Loader struct {
	logger *slog.Logger
	stdin  io.Reader
	retry  retry.Config
}

// Option allows functional configuration.
type Option func(*Loader)

// WithLogger sets a custom slog logger.
func WithLogger(l *slog.Logger) Option { return func(ld *Loader) { ld.logger = l } }

// WithStdin sets the reader used for the "-" path.
func WithStdin(r io.Reader) Option { return func(ld *Loader) { ld.stdin = r } }

// WithRetry sets the backoff used by ReadFile.
func WithRetry(c retry.Config) Option { return func(ld *Loader) { ld.retry = c } }


// New builds a Loader.
func New(opts ...Option) *Loader {
	ld := &Loader{
		logger: slog.Default(),
		stdin:  os.Stdin,
		retry:  retry.DefaultConfig(),
	}
	for _, o := range opts {
		o(ld)
	}
	return ld
}

// Load parses every path concurrently and merges the results in argument
// order, so a key in a later file overrides the same key in an earlier one.
func (ld *Loader) Load(ctx context.Context, paths ...string) (map[string]string, error) {
	if len(paths) == 0 {
		return nil, moderr.ErrNoInput
	}
	results := make([]map[string]string, len(paths))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxOpenFiles)
	for i, p := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			m, err := ld.parse(p)
			if err != nil {
				return err
			}
			results[i] = m
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return Merge(results...), nil
}

// ReadFile parses one file, retrying while it is briefly missing or busy,
// which is what an editor's atomic save looks like from the outside.
func (ld *Loader) ReadFile(ctx context.Context, path string) (map[string]string, error) {
	var out map[string]string
	err := retry.WithRetryConfig(ctx, func() error {
		m, err := ld.parse(path)
		if err != nil {
			return err
		}
		out = m
		return nil
	}, ld.retry)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (ld *Loader) parse(path string) (map[string]string, error) {
	start := time.Now()
	var r io.Reader
	if path == Stdin {
		r = ld.stdin
	} else {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	}
	m, err := envparse.ParseReader(r)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	ld.logger.Debug("parsed file",
		slog.String("path", path),
		slog.Int("entries", len(m)),
		slog.Duration("latency", time.Since(start)),
	)
	return m, nil
}

// Merge combines maps left to right; later maps win.
func Merge(ms ...map[string]string) map[string]string {
	out := make(map[string]string)
	for _, m := range ms {
		for k, v := range m {
			out[k] = v
		}
	}
	return out
}
