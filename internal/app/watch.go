package app

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"docvault"
)

// Watch calls fn with the current document, then again every time the backing
// file is written or replaced, until ctx is done. Reload failures are logged
// and do not stop the watch; a tampered file is reported and skipped.
func (a *App) Watch(ctx context.Context, fn func(docvault.Document)) error {
	cfg := a.Config
	cfg.Empty = false
	w := New(cfg, a.Log)

	s, err := w.Open()
	if err != nil {
		return err
	}
	path, err := filepath.Abs(s.Path())
	if err != nil {
		return fmt.Errorf("%w: %w", docvault.ErrIO, err)
	}
	state := s.GetState()

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("%w: %w", docvault.ErrIO, err)
	}
	defer func() { _ = watcher.Close() }()
	// Watch the directory: atomic saves replace the file, which drops a
	// watch placed on the file itself.
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		return fmt.Errorf("%w: %w", docvault.ErrIO, err)
	}
	fn(state)

	for {
		select {
		case <-ctx.Done():
			return nil
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			a.Log.Warn("watch error", "err", err)
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !sameFile(ev.Name, path) || !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
				continue
			}
			s, err := w.Open()
			if err != nil {
				a.Log.Warn("reload failed", "path", path, "err", err)
				continue
			}
			a.Log.Debug("reloaded", "path", path, "event", ev.Op.String())
			fn(s.GetState())
		}
	}
}

func sameFile(name, abs string) bool {
	p, err := filepath.Abs(name)
	return err == nil && p == abs
}
