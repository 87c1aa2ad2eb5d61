package config

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"honnef.co/go/outline"
)

// Watch reloads the configuration file at path into s whenever it is written
// or recreated, until ctx is done. Files that fail to load are logged and
// ignored, keeping the previous configuration.
//
// The file's directory is watched rather than the file itself, so that
// editors replacing the file don't end the watch.
func Watch(ctx context.Context, path string, s *Settings) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("config: watch: %w", err)
	}
	defer w.Close()
	name := filepath.Clean(path)
	if err := w.Add(filepath.Dir(name)); err != nil {
		return fmt.Errorf("config: watch %s: %w", path, err)
	}

	log := outline.Logger().With("path", path)
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != name ||
				!(event.Has(fsnotify.Write) || event.Has(fsnotify.Create)) {
				continue
			}
			cfg, err := Load(path)
			if err != nil {
				log.Warn("config reload rejected", "error", err)
				continue
			}
			if err := s.Store(cfg); err != nil {
				log.Warn("config reload rejected", "error", err)
				continue
			}
			log.Info("config reloaded", "policy", cfg.Policy)
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			log.Warn("config watcher error", "error", err)
		}
	}
}
