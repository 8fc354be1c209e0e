package config

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/HamadUllahgit/graph-api-onedrive-integration/internal/logger"
)

// Watch monitors the config file at path and invokes onChange with the
// freshly loaded configuration whenever it is rewritten, so a rotated
// client secret is picked up without a restart. The parent directory is
// watched rather than the file itself so replace-by-rename updates are
// still observed. Watch blocks until ctx is cancelled.
func Watch(ctx context.Context, path string, onChange func(*Config)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(filepath.Dir(path)); err != nil {
		return fmt.Errorf("watch config directory: %w", err)
	}

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Name != path || event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}

			cfg, err := Load(path)
			if err != nil {
				logger.Errorf("reload config: %v", err)
				continue
			}
			if err := cfg.Validate(); err != nil {
				logger.Errorf("reload config: %v", err)
				continue
			}
			onChange(cfg)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Errorf("config watcher: %v", err)
		}
	}
}
