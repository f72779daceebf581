// watcher.go bridges catalog file watching into the Bubble Tea program.
//
// catalog.Watch reports debounced changes to the catalog file and its posts
// directory. Each change reloads the catalog off the UI goroutine and sends
// the result to the program as a catalogChangedMsg, so the swap itself
// happens inside Update like every other state change.
package app

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/treykane/cli-gallery/internal/catalog"
)

// Sender is the part of *tea.Program the watcher needs.
type Sender interface {
	Send(msg tea.Msg)
}

// WatchCatalog blocks, reloading path and sending the result to program on
// every change, until ctx is cancelled.
func WatchCatalog(ctx context.Context, program Sender, path string) error {
	return catalog.Watch(ctx, path, func() {
		cat, err := catalog.Load(path)
		if err != nil {
			appLog.Warn("reload catalog", "path", path, "error", err)
		} else {
			appLog.Info("reloaded catalog", "path", path, "items", len(cat.Items))
		}
		program.Send(catalogChangedMsg{catalog: cat, err: err})
	})
}
