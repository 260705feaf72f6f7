package sweep

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestConfigWatcherTriggersReload(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("autogit:\n  repodir: /tmp\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	reloaded := make(chan struct{}, 1)
	w := NewConfigWatcher(path, discard())

	done := make(chan error, 1)
	go func() {
		done <- w.Watch(ctx, func() error {
			select {
			case reloaded <- struct{}{}:
			default:
			}
			return nil
		})
	}()

	// Give the watcher time to register before writing.
	time.Sleep(100 * time.Millisecond)

	if err := os.WriteFile(path, []byte("autogit:\n  repodir: /srv\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case <-reloaded:
	case <-ctx.Done():
		t.Fatal("reload callback was not invoked after config write")
	}

	cancel()
	if err := <-done; err != nil {
		t.Fatalf("Watch returned error: %v", err)
	}
}

func TestConfigWatcherIgnoresSiblingFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("autogit: {}\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	reloaded := make(chan struct{}, 1)
	w := NewConfigWatcher(path, discard())

	go func() {
		_ = w.Watch(ctx, func() error {
			reloaded <- struct{}{}
			return nil
		})
	}()

	time.Sleep(100 * time.Millisecond)

	if err := os.WriteFile(filepath.Join(dir, "other.yaml"), []byte("x: 1\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case <-reloaded:
		t.Fatal("reload fired for an unrelated file")
	case <-time.After(600 * time.Millisecond):
	}
}
