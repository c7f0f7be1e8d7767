package preview

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// WatchFile feeds every change of path into p until ctx is done. The parent
// directory is watched so editors that save via rename are still seen.
func WatchFile(ctx context.Context, path string, p *Previewer) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer w.Close()

	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	if err := w.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("watch %s: %w", filepath.Dir(abs), err)
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != abs {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			b, err := os.ReadFile(abs)
			if err != nil {
				// Rename-based saves briefly leave no file behind.
				continue
			}
			p.Update(string(b))
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			p.log.Warn("preview watcher error", zap.Error(err))
		}
	}
}
