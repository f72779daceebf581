package gallery

import "log/slog"

// Gallery owns the canonical item list, the pin and hide sets, the column
// count and the viewer. It is the only writer of those sets; hosts observe
// them through Columns and Ordered and mutate them through TogglePin and
// Hide.
type Gallery struct {
	items    []Item
	pinned   IDSet
	hidden   IDSet
	columns  int
	viewer   *Viewer
	loadMore func()
	log      *slog.Logger
}

// New returns an empty gallery with one column and a viewer built from opts.
func New(opts ViewerOptions) *Gallery {
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}
	return &Gallery{
		pinned:  NewIDSet(),
		hidden:  NewIDSet(),
		columns: 1,
		viewer:  NewViewer(opts),
		log:     log,
	}
}

// Viewer exposes the lightbox controller.
func (g *Gallery) Viewer() *Viewer {
	return g.viewer
}

// Items returns the source list as last set.
func (g *Gallery) Items() []Item {
	return g.items
}

// SetItems replaces the source list. Pins and hides for ids that vanished are
// pruned and the viewer is re-synced, closing it if its item is gone.
func (g *Gallery) SetItems(items []Item) {
	g.items = append(g.items[:0:0], items...)
	if n := g.pinned.Prune(g.items); n > 0 {
		g.log.Debug("pruned stale pins", "count", n)
	}
	g.hidden.Prune(g.items)
	g.syncViewer()
}

// SetColumnCount sets the number of layout columns; values below one are
// stored as one.
func (g *Gallery) SetColumnCount(n int) {
	g.columns = max(1, n)
}

func (g *Gallery) ColumnCount() int {
	return g.columns
}

// Columns computes the current column assignment.
func (g *Gallery) Columns() Columns {
	return Arrange(g.items, g.pinned, g.hidden, g.columns)
}

// Ordered returns the visible items in display order; the viewer navigates
// over exactly this list.
func (g *Gallery) Ordered() []Item {
	return Order(g.items, g.pinned, g.hidden)
}

// TogglePin pins or unpins id and reports the new membership. Ids that are
// not in the list are ignored.
func (g *Gallery) TogglePin(id string) bool {
	if indexOf(g.items, id) < 0 {
		return false
	}
	pinned := g.pinned.Toggle(id)
	g.syncViewer()
	return pinned
}

// Hide removes id from the visible layout for the rest of the session.
// There is no unhide. Hiding the open item closes the viewer.
func (g *Gallery) Hide(id string) {
	if indexOf(g.items, id) < 0 || g.hidden.Has(id) {
		return
	}
	g.hidden.Add(id)
	g.syncViewer()
}

func (g *Gallery) IsPinned(id string) bool {
	return g.pinned.Has(id)
}

func (g *Gallery) IsHidden(id string) bool {
	return g.hidden.Has(id)
}

// Pinned returns the pinned ids, sorted.
func (g *Gallery) Pinned() []string {
	return g.pinned.IDs()
}

// Hidden returns the hidden ids, sorted.
func (g *Gallery) Hidden() []string {
	return g.hidden.IDs()
}

// OpenViewer opens the viewer on id. Hidden or unknown ids are ignored.
func (g *Gallery) OpenViewer(id string) bool {
	i := indexOf(g.items, id)
	if i < 0 || g.hidden.Has(id) {
		return false
	}
	g.syncViewer()
	g.viewer.Open(g.items[i])
	return true
}

// SetLoadMore registers the host callback fired by LoadMoreVisible.
func (g *Gallery) SetLoadMore(fn func()) {
	g.loadMore = fn
}

// LoadMoreVisible is called when the end-of-list sentinel becomes visible.
func (g *Gallery) LoadMoreVisible() {
	if g.loadMore != nil {
		g.loadMore()
	}
}

// Related returns up to k items related to id. See Related.
func (g *Gallery) Related(id string, k int) []Item {
	i := indexOf(g.items, id)
	if i < 0 {
		return nil
	}
	return Related(g.items, g.items[i], g.hidden, k)
}

func (g *Gallery) syncViewer() {
	g.viewer.SetItems(g.Ordered())
}
