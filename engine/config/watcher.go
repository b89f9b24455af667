package config

import (
	"context"
	"fmt"
	"log"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watch reloads the config file whenever it is written and passes each successfully
// loaded config to onChange. Decode failures are logged and the previous config stays
// in effect. The containing directory is watched so editors that replace the file on
// save are still observed.
//
// Watch blocks until ctx is cancelled.
//
// Parameters:
//   - ctx: cancels the watch
//   - path: the config file to watch
//   - onChange: receives every reloaded config
//
// Returns:
//   - error: error if the watcher cannot be created, or ctx.Err() on cancellation
func Watch(ctx context.Context, path string, onChange func(*Config)) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("resolve config path: %w", err)
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create config watcher: %w", err)
	}
	defer w.Close()

	if err := w.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("watch %s: %w", filepath.Dir(abs), err)
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != abs || ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			cfg, err := Load(abs)
			if err != nil {
				log.Printf("[Config] reload of %s rejected: %v", abs, err)
				continue
			}
			log.Printf("[Config] reloaded %s", abs)
			onChange(cfg)
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			log.Printf("[Config] watcher error: %v", err)
		}
	}
}
