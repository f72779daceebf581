package catalog

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DebounceInterval coalesces bursts of filesystem events (editors often
// write, rename and chmod in quick succession) into one change notification.
const DebounceInterval = 200 * time.Millisecond

// Watch calls onChange after the catalog at path, or a post in its posts
// directory, changes on disk. It blocks until ctx is cancelled and returns
// nil then; setup failures are returned immediately.
//
// The catalog's directory is watched rather than the file itself so that
// editors which save by renaming over the original keep being tracked.
func Watch(ctx context.Context, path string, onChange func()) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	dir := filepath.Dir(abs)
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}
	postsDir := PostsDir(abs)
	if postsDir != "" && postsDir != dir {
		if info, err := os.Stat(postsDir); err == nil && info.IsDir() {
			if err := watcher.Add(postsDir); err != nil {
				log.Warn("watch posts dir", "dir", postsDir, "error", err)
			}
		}
	}
	log.Debug("watching catalog", "path", abs, "posts", postsDir)

	relevant := func(name string) bool {
		name = filepath.Clean(name)
		if name == abs {
			return true
		}
		return postsDir != "" && filepath.Dir(name) == postsDir &&
			strings.EqualFold(filepath.Ext(name), ".md")
	}

	var (
		timer *time.Timer
		fire  <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			log.Debug("catalog watcher stopped", "path", abs)
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			if !relevant(event.Name) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(DebounceInterval)
			} else {
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(DebounceInterval)
			}
			fire = timer.C

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Warn("catalog watcher error", "path", abs, "error", err)

		case <-fire:
			fire = nil
			onChange()
		}
	}
}
