package main

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/hashicorp/go-hclog"
)

const defaultWatchDebounce = 300 * time.Millisecond

// sourceWatcher reports changes to the source image. It watches the parent
// directory because editors commonly save by replacing the file.
type sourceWatcher struct {
	name     string
	debounce time.Duration
	watcher  *fsnotify.Watcher
	logger   hclog.Logger
}

func newSourceWatcher(path string, debounce time.Duration, logger hclog.Logger) (*sourceWatcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", path, err)
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}
	dir := filepath.Dir(abs)
	if err := fsw.Add(dir); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("failed to watch folder %s: %w", dir, err)
	}
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &sourceWatcher{
		name:     filepath.Base(abs),
		debounce: debounce,
		watcher:  fsw,
		logger:   logger,
	}, nil
}

// Run calls onChange once per burst of writes to the source until ctx is
// done. onChange runs on the calling goroutine, so exports never overlap.
func (w *sourceWatcher) Run(ctx context.Context, onChange func()) error {
	defer w.watcher.Close()

	fire := make(chan struct{}, 1)
	var timer *time.Timer
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Base(event.Name) != w.name {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			w.logger.Debug("source changed", "event", event.Op.String(), "path", event.Name)
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(w.debounce, func() {
				select {
				case fire <- struct{}{}:
				default:
				}
			})

		case <-fire:
			onChange()

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watcher error", "error", err)
		}
	}
}
