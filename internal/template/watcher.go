package template

import (
	"context"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// WatchSeed starts an fsnotify watcher on the seed file and reloads the
// registry whenever the file changes, until ctx is cancelled.
//
// The parent directory is watched rather than the file itself: editors that
// save via rename-and-replace would otherwise silently detach the watch.
// Reloads are debounced so a burst of write events triggers one reload.
func WatchSeed(ctx context.Context, reg *Registry, path string, logger *slog.Logger) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	absPath, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	if err := w.Add(filepath.Dir(absPath)); err != nil {
		return err
	}

	logger.Info("seed watcher: started", slog.String("path", absPath))

	var reloadTimer *time.Timer
	var reloadCh <-chan time.Time

	scheduleReload := func() {
		if reloadTimer == nil {
			reloadTimer = time.NewTimer(200 * time.Millisecond)
			reloadCh = reloadTimer.C
		} else {
			reloadTimer.Reset(200 * time.Millisecond)
		}
	}

	for {
		select {
		case <-ctx.Done():
			if reloadTimer != nil {
				reloadTimer.Stop()
			}
			logger.Info("seed watcher: stopped")
			return nil

		case <-reloadCh:
			reload(reg, absPath, logger)

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != absPath {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0 {
				scheduleReload()
			}

		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Warn("seed watcher: error", slog.String("error", err.Error()))
		}
	}
}

// reload re-reads the seed file and upserts its records. A broken file or a
// broken entry keeps the registry's current state for that template.
func reload(reg *Registry, path string, logger *slog.Logger) {
	records, err := LoadSeed(path)
	if err != nil {
		logger.Warn("seed reload failed", slog.String("error", err.Error()))
		return
	}
	for _, verr := range reg.Upsert(records) {
		logger.Warn("seed template rejected", slog.String("error", verr.Error()))
	}
	logger.Info("seed templates reloaded",
		slog.String("path", path),
		slog.Int("count", len(records)))
}
