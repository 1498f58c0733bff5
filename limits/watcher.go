package limits

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// watchDebounce coalesces the burst of write events some editors emit
// when saving a file.
const watchDebounce = 200 * time.Millisecond

// Watch re-applies the override file whenever it changes on disk, until the
// context is cancelled. It blocks; run it in a goroutine:
//
//	go func() {
//	    if err := reg.Watch(ctx, "limits.yaml"); err != nil {
//	        slog.Error("limits watch stopped", "error", err)
//	    }
//	}()
//
// A reload failure (unparseable file, invalid entry) is logged as a warning
// and the last successfully applied table stays in effect.
func (r *Registry) Watch(ctx context.Context, path string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	// Watch the directory rather than the file: editors that replace the
	// file on save (rename + create) would otherwise drop the watch.
	dir := filepath.Dir(path)
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}

	target, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("resolve %s: %w", path, err)
	}

	var pending *time.Timer
	reload := make(chan struct{}, 1)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			abs, err := filepath.Abs(event.Name)
			if err != nil || abs != target {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			if pending != nil {
				pending.Stop()
			}
			pending = time.AfterFunc(watchDebounce, func() {
				select {
				case reload <- struct{}{}:
				default:
				}
			})

		case <-reload:
			if err := r.LoadOverrides(path); err != nil {
				slog.Warn("limits override reload failed, keeping previous table",
					slog.String("path", path),
					slog.Any("error", err))
				continue
			}
			slog.Debug("limits overrides reloaded", slog.String("path", path))

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			slog.Warn("limits watcher error", slog.Any("error", err))
		}
	}
}
