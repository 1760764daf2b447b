package runner

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"
)

// Watch re-runs the checker whenever a watched source file changes. Each
// burst of events is debounced by the configured settle delay, then one
// full run over paths fires and its result is handed to onRun. Watch
// blocks until ctx is done.
func (r *Runner) Watch(ctx context.Context, paths []string, onRun func(*Result)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	for _, root := range paths {
		if err := r.watchTree(watcher, root); err != nil {
			return err
		}
	}

	debounce := r.config.Run.DebounceDuration()
	timer := time.NewTimer(debounce)
	timer.Stop()

	r.log.WithFields(logrus.Fields{
		"paths":    paths,
		"debounce": debounce,
	}).Info("Watching for source changes")

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			// Only write and create events on matching files schedule a
			// run.
			if event.Op&(fsnotify.Write|fsnotify.Create) != 0 && r.matchesExtension(event.Name) {
				r.log.WithField("path", event.Name).Debug("Source changed")
				timer.Reset(debounce)
			}
			// Also watch new directories.
			if event.Op&fsnotify.Create != 0 {
				if fi, err := os.Stat(event.Name); err == nil && fi.IsDir() {
					if err := watcher.Add(event.Name); err != nil {
						r.log.WithError(err).WithField("path", event.Name).Warn("Cannot watch new directory")
					}
				}
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			r.log.WithError(err).Warn("Watcher error")

		case <-timer.C:
			result, err := r.Run(ctx, paths)
			if err != nil {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				r.log.WithError(err).Error("Watch run failed")
				continue
			}
			if onRun != nil {
				onRun(result)
			}
		}
	}
}

// watchTree adds root and all directories under it to the watcher.
func (r *Runner) watchTree(watcher *fsnotify.Watcher, root string) error {
	info, err := os.Stat(root)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return watcher.Add(filepath.Dir(root))
	}

	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && (strings.HasPrefix(d.Name(), ".") || r.excluded(d.Name())) {
			return filepath.SkipDir
		}
		return watcher.Add(path)
	})
}
