package runner

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/bep/debounce"
	"github.com/fsnotify/fsnotify"

	"github.com/yaklabco/gramlint/internal/logging"
)

// WatchDebounce is how long the watcher waits for the filesystem to settle
// before re-running a batch. Editors tend to fire several events per save.
const WatchDebounce = 250 * time.Millisecond

// Watch runs one batch, then watches the discovered files' directories and
// re-runs on changes until the context is cancelled. Every completed run is
// delivered through onChange, which may be called from the debounce
// goroutine.
func Watch(ctx context.Context, opts Options, onChange func(*Result)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	files, err := Discover(ctx, opts)
	if err != nil {
		return err
	}

	dirs := make(map[string]struct{})
	for _, f := range files {
		dirs[filepath.Dir(f)] = struct{}{}
	}
	if len(dirs) == 0 {
		// Nothing matched yet; watch the working directory so newly
		// created files are picked up.
		workDir, err := resolveWorkDir(opts.WorkingDir)
		if err != nil {
			return err
		}
		dirs[workDir] = struct{}{}
	}
	for dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			return fmt.Errorf("watch %s: %w", dir, err)
		}
	}

	logger := logging.Default()

	run := func() {
		if ctx.Err() != nil {
			return
		}
		result, err := Run(ctx, opts)
		if err != nil {
			logger.Error("watch run failed", logging.FieldError, err)
		}
		if result != nil {
			onChange(result)
		}
	}

	run()

	debounced := debounce.New(WatchDebounce)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !relevantEvent(event, opts) {
				continue
			}
			debounced(run)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watch error", logging.FieldError, err)
		}
	}
}

// relevantEvent reports whether the event concerns a checkable file.
func relevantEvent(event fsnotify.Event, opts Options) bool {
	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
		return false
	}
	return hasMatchingExtension(event.Name, opts.effectiveExtensions())
}
