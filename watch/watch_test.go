package watch

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/alecthomas/assert/v2"
)

func TestWatcherDebouncesWrites(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "main.ves")
	assert.NoError(t, os.WriteFile(file, []byte("a"), 0o644))

	var (
		mu    sync.Mutex
		calls []string
	)
	changed := make(chan struct{}, 10)

	w, err := New([]string{file}, 50*time.Millisecond, func(_ context.Context, path string) {
		mu.Lock()
		calls = append(calls, path)
		mu.Unlock()
		changed <- struct{}{}
	})
	assert.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan struct{})
	go func() {
		w.Run(ctx)
		close(done)
	}()

	for _, content := range []string{"b", "bc", "bcd"} {
		assert.NoError(t, os.WriteFile(file, []byte(content), 0o644))
	}

	select {
	case <-changed:
	case <-time.After(5 * time.Second):
		t.Fatal("no change reported")
	}

	// Let a stray second callback land before counting.
	time.Sleep(200 * time.Millisecond)
	mu.Lock()
	assert.Equal(t, []string{file}, calls)
	mu.Unlock()

	cancel()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not stop")
	}
}

func TestWatcherIgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "main.ves")
	assert.NoError(t, os.WriteFile(file, []byte("a"), 0o644))

	changed := make(chan string, 1)
	w, err := New([]string{file}, 10*time.Millisecond, func(_ context.Context, path string) {
		changed <- path
	})
	assert.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go w.Run(ctx)

	assert.NoError(t, os.WriteFile(filepath.Join(dir, "other.ves"), []byte("x"), 0o644))

	select {
	case path := <-changed:
		t.Fatalf("unexpected change for %s", path)
	case <-time.After(200 * time.Millisecond):
	}
}

func TestNewMissingFile(t *testing.T) {
	_, err := New([]string{filepath.Join(t.TempDir(), "missing.ves")}, time.Millisecond, func(context.Context, string) {})
	assert.Error(t, err)
}
