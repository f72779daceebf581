package catalog

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"go.uber.org/goleak"
)

func TestWatchDebouncesAndStops(t *testing.T) {
	defer goleak.VerifyNone(t)

	root := t.TempDir()
	path := filepath.Join(root, "catalog.yaml")
	writeFile(t, path, "items: []\n")
	writeFile(t, filepath.Join(root, "unrelated.txt"), "x")

	ctx, cancel := context.WithCancel(context.Background())
	changes := make(chan struct{}, 8)
	done := make(chan error, 1)
	go func() {
		done <- Watch(ctx, path, func() { changes <- struct{}{} })
	}()

	// Give the watcher time to register before writing.
	time.Sleep(100 * time.Millisecond)

	for i := 0; i < 3; i++ {
		if err := os.WriteFile(path, []byte("items: []\n# edit\n"), 0o644); err != nil {
			t.Fatalf("write: %v", err)
		}
	}
	if err := os.WriteFile(filepath.Join(root, "unrelated.txt"), []byte("y"), 0o644); err != nil {
		t.Fatalf("write unrelated: %v", err)
	}

	select {
	case <-changes:
	case <-time.After(3 * time.Second):
		t.Fatal("expected change notification")
	}

	select {
	case <-changes:
		t.Fatal("burst of writes should coalesce into one notification")
	case <-time.After(2 * DebounceInterval):
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("watch returned %v", err)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("watcher did not stop after cancel")
	}
}

func TestWatchMissingDirectory(t *testing.T) {
	err := Watch(context.Background(), filepath.Join(t.TempDir(), "gone", "catalog.yaml"), func() {})
	if err == nil {
		t.Fatal("expected setup error for missing directory")
	}
}
