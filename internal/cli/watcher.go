package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/ksyq12/inicfg/internal/logger"
)

// debounceDuration collapses the burst of events an editor save produces.
const debounceDuration = 300 * time.Millisecond

// fileWatcher watches the file's directory, so atomic replacements by
// rename are seen as well as in-place writes.
type fileWatcher struct{}

func (w *fileWatcher) Watch(ctx context.Context, path string, onChange func()) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("resolve %s: %w", path, err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("watch %s: %w", path, err)
	}
	logger.DebugFields("watcher started", logger.Fields{"path": abs})

	var debounce *time.Timer
	var fire <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			if debounce != nil {
				debounce.Stop()
			}
			logger.Debug("watcher stopped")
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != abs {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename) {
				logger.DebugFields("file changed", logger.Fields{"op": event.Op.String()})
				if debounce == nil {
					debounce = time.NewTimer(debounceDuration)
				} else {
					debounce.Reset(debounceDuration)
				}
				fire = debounce.C
			}

		case <-fire:
			fire = nil
			onChange()

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.LogError(err, "watcher error")
		}
	}
}
