package main

import (
	"context"
	"log/slog"
	"path/filepath"

	"github.com/bep/debounce"
	"github.com/fsnotify/fsnotify"
	"github.com/pkg/errors"

	"github.com/wykwit-tylko/common-core-geometry/pkg/config"
)

// watch renders path once and then again after every change, until ctx
// is cancelled. Failed renders are logged and do not stop the loop.
func watch(ctx context.Context, app *App, cfg *config.Config, path string) error {
	if path == "-" {
		return errors.New("watch: cannot watch standard input")
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrap(err, "watch: create watcher")
	}
	defer w.Close()

	// Editors often save by replacing the file, which drops a watch on
	// the file itself.
	if err := w.Add(filepath.Dir(path)); err != nil {
		return errors.Wrapf(err, "watch: add %s", filepath.Dir(path))
	}

	rerender := func() {
		if err := renderFile(app, cfg, path); err != nil {
			slog.Error("render failed", "source", path, "error", err)
		}
	}
	rerender()
	slog.Info("watching for changes", "source", path)

	debounced := debounce.New(cfg.Debounce)
	target := filepath.Clean(path)
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if !isScriptChange(ev, target) {
				continue
			}
			slog.Debug("script changed", "op", ev.Op.String())
			debounced(rerender)
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			slog.Warn("watch error", "error", err)
		}
	}
}

// isScriptChange reports whether ev rewrote or recreated target.
func isScriptChange(ev fsnotify.Event, target string) bool {
	if filepath.Clean(ev.Name) != target {
		return false
	}
	return ev.Op&(fsnotify.Write|fsnotify.Create) != 0
}
