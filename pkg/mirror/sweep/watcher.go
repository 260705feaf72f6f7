package sweep

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// ConfigWatcher watches the configuration file and triggers a reload
// callback when it changes. Writes are debounced so editors that save in
// multiple steps do not trigger reload storms.
type ConfigWatcher struct {
	path     string
	debounce time.Duration
	logger   *slog.Logger
}

// NewConfigWatcher creates a watcher for the configuration file at path.
func NewConfigWatcher(path string, logger *slog.Logger) *ConfigWatcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &ConfigWatcher{
		path:     path,
		debounce: 250 * time.Millisecond,
		logger:   logger.With("component", "sweep.watcher"),
	}
}

// Watch blocks until ctx is canceled, invoking onReload after each
// (debounced) change to the configuration file. The parent directory is
// watched rather than the file itself so atomic rename-based saves are
// observed.
func (w *ConfigWatcher) Watch(ctx context.Context, onReload func() error) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}
	defer watcher.Close()

	dir := filepath.Dir(w.path)
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("failed to watch %q: %w", dir, err)
	}

	w.logger.Info("config watcher started", "path", w.path)

	var timer *time.Timer
	fire := make(chan struct{}, 1)

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("config watcher stopped")
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != filepath.Clean(w.path) {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(w.debounce, func() {
				select {
				case fire <- struct{}{}:
				default:
				}
			})

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("config watcher error", "error", err)

		case <-fire:
			w.logger.Info("configuration changed, reloading", "path", w.path)
			if err := onReload(); err != nil {
				w.logger.Error("config reload failed, keeping previous configuration", "error", err)
			}
		}
	}
}
