package project

import (
	"context"
	"path/filepath"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/fsnotify/fsnotify"

	"github.com/yamada28go/tauria-tsgen/logger"
)

// debounceDelay coalesces the event bursts editors produce on save.
const debounceDelay = 200 * time.Millisecond

// Watch runs an initial generation pass, then watches the input
// directory and regenerates whenever a .rs file changes. A failing pass
// is logged and the watcher keeps running. Watch returns when the
// context is cancelled.
func Watch(ctx context.Context, cfg *Config, opts RunOptions) error {
	if err := Run(cfg, opts); err != nil {
		logger.Errorf("generation failed: %v", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrap(err, "create watcher")
	}
	defer watcher.Close()

	if err := watcher.Add(cfg.InputPath); err != nil {
		return errors.Wrapf(err, "watch %s", cfg.InputPath)
	}
	logger.Infof("watching %s", cfg.InputPath)

	debounce := time.NewTimer(debounceDelay)
	if !debounce.Stop() {
		<-debounce.C
	}

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !triggersRegen(ev) {
				continue
			}
			logger.Debugw("source changed", "file", ev.Name, "op", ev.Op.String())
			debounce.Reset(debounceDelay)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warnw("watch error", "error", err)

		case <-debounce.C:
			if err := Run(cfg, opts); err != nil {
				logger.Errorf("generation failed: %v", err)
			}
		}
	}
}

func triggersRegen(ev fsnotify.Event) bool {
	if filepath.Ext(ev.Name) != ".rs" {
		return false
	}
	return ev.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) != 0
}
