package watch

import (
	"context"
	"maps"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/lizzyg/envparse/internal/retry"
	"github.com/lizzyg/envparse/internal/source"
)

func replaceFile(t *testing.T, path, content string) {
	t.Helper()
	tmp := path + ".tmp"
	require.NoError(t, os.WriteFile(tmp, []byte(content), 0o600))
	require.NoError(t, os.Rename(tmp, path))
}

// waitFor drains ch until it sees want. Intermediate states (an editor's
// truncate before write) are allowed.
func waitFor(t *testing.T, ch <-chan map[string]string, want map[string]string) {
	t.Helper()
	deadline := time.After(5 * time.Second)
	for {
		select {
		case m := <-ch:
			if maps.Equal(m, want) {
				return
			}
		case <-deadline:
			t.Fatalf("timed out waiting for %q", want)
		}
	}
}

func start(t *testing.T, w *Watcher) (stop func()) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()
	return func() {
		cancel()
		select {
		case err := <-done:
			require.NoError(t, err)
		case <-time.After(5 * time.Second):
			t.Fatal("watcher did not stop")
		}
	}
}

func TestWatcherDeliversChanges(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("A=1\n"), 0o600))

	got := make(chan map[string]string, 16)
	w := New(path, func(m map[string]string) { got <- m }, WithDebounce(20*time.Millisecond))
	stop := start(t, w)

	waitFor(t, got, map[string]string{"A": "1"})

	replaceFile(t, path, "A=2\nB = x # y\n")
	waitFor(t, got, map[string]string{"A": "2", "B": "x # y"})

	stop()
}

func TestWatcherInPlaceWrites(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	path := filepath.Join(t.TempDir(), "app.env")
	require.NoError(t, os.WriteFile(path, []byte("A=1\n"), 0o600))

	got := make(chan map[string]string, 16)
	w := New(path, func(m map[string]string) { got <- m }, WithDebounce(0))
	stop := start(t, w)

	waitFor(t, got, map[string]string{"A": "1"})
	require.NoError(t, os.WriteFile(path, []byte("A=1\nC=3\n"), 0o600))
	waitFor(t, got, map[string]string{"A": "1", "C": "3"})

	stop()
}

func TestWatcherReportsMissingFileThenRecovers(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	path := filepath.Join(t.TempDir(), ".env")
	errs := make(chan error, 4)
	got := make(chan map[string]string, 16)
	loader := source.New(source.WithRetry(retry.Config{MaxAttempts: 2, BaseDelay: time.Millisecond, MaxDelay: time.Millisecond}))
	w := New(path, func(m map[string]string) { got <- m },
		WithLoader(loader),
		WithDebounce(10*time.Millisecond),
		WithErrorHandler(func(err error) { errs <- err }),
	)
	stop := start(t, w)

	select {
	case err := <-errs:
		require.ErrorIs(t, err, os.ErrNotExist)
	case <-time.After(5 * time.Second):
		t.Fatal("expected an error for the missing file")
	}

	replaceFile(t, path, "READY=yes\n")
	waitFor(t, got, map[string]string{"READY": "yes"})

	stop()
}
