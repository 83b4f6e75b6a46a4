package watch

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatcher_ReportsWrites(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".grenrc.yml")
	require.NoError(t, os.WriteFile(path, []byte("prefix: a\n"), 0o644))

	w, err := New(path, 10*time.Millisecond)
	require.NoError(t, err)
	defer w.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	changes := w.Changes(ctx)

	require.NoError(t, os.WriteFile(path, []byte("prefix: b\n"), 0o644))

	select {
	case got := <-changes:
		assert.Equal(t, w.Path(), got)
	case <-ctx.Done():
		t.Fatal("timed out waiting for change")
	}
}

func TestWatcher_IgnoresSiblings(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".grenrc.yml")

	w, err := New(path, 10*time.Millisecond)
	require.NoError(t, err)
	defer w.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 300*time.Millisecond)
	defer cancel()
	changes := w.Changes(ctx)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.txt"), []byte("x"), 0o644))

	select {
	case got, ok := <-changes:
		if ok {
			t.Fatalf("unexpected change for %s", got)
		}
	case <-time.After(time.Second):
		t.Fatal("channel not closed after context cancellation")
	}
}

func TestWatcher_CloseIsIdempotent(t *testing.T) {
	w, err := New(filepath.Join(t.TempDir(), "x.json"), DefaultDebounce)
	require.NoError(t, err)

	assert.NoError(t, w.Close())
	assert.NoError(t, w.Close())
}

func TestNew_MissingDirectory(t *testing.T) {
	_, err := New(filepath.Join(t.TempDir(), "missing", "x.json"), DefaultDebounce)
	assert.Error(t, err)
}

func TestWatcher_ErrorsAreLoggedAndReported(t *testing.T) {
	var lines []string
	var mu sync.Mutex
	SetDebugLogger(func(format string, args ...any) {
		mu.Lock()
		defer mu.Unlock()
		lines = append(lines, fmt.Sprintf(format, args...))
	})
	t.Cleanup(func() { SetDebugLogger(nil) })

	path := filepath.Join(t.TempDir(), ".grenrc.yml")
	w, err := New(path, 10*time.Millisecond)
	require.NoError(t, err)
	defer w.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	changes := w.Changes(ctx)

	w.watcher.Errors <- errors.New("event queue overflow")

	select {
	case got := <-changes:
		assert.Equal(t, w.Path(), got)
	case <-ctx.Done():
		t.Fatal("timed out waiting for change after watcher error")
	}

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, lines, 1)
	assert.Contains(t, lines[0], "event queue overflow")
}
