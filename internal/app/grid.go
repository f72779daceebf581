package app

import (
	"fmt"

	"github.com/treykane/cli-gallery/internal/gallery"
)

func (m *Model) currentColumn() []gallery.Item {
	cols := m.gallery.Columns()
	if m.cursorCol < 0 || m.cursorCol >= len(cols) {
		return nil
	}
	return cols[m.cursorCol]
}

func (m *Model) selectedItem() (gallery.Item, bool) {
	col := m.currentColumn()
	if m.cursorRow < 0 || m.cursorRow >= len(col) {
		return gallery.Item{}, false
	}
	return col[m.cursorRow], true
}

// clampCursor keeps the cursor on a real card. With fewer items than
// columns, trailing columns are empty and the cursor falls back to the last
// non-empty one.
func (m *Model) clampCursor() {
	cols := m.gallery.Columns()
	m.cursorCol = clamp(m.cursorCol, 0, len(cols)-1)
	for m.cursorCol > 0 && len(cols[m.cursorCol]) == 0 {
		m.cursorCol--
	}
	if len(cols) == 0 || len(cols[m.cursorCol]) == 0 {
		m.cursorCol, m.cursorRow = 0, 0
		return
	}
	m.cursorRow = clamp(m.cursorRow, 0, len(cols[m.cursorCol])-1)
}

// moveCursor moves within a column (dy) or across columns (dx). Reaching the
// last card of a column counts as the load-more sentinel coming into view.
func (m *Model) moveCursor(dx, dy int) {
	cols := m.gallery.Columns()
	if len(cols) == 0 {
		return
	}
	if dx != 0 {
		next := m.cursorCol + dx
		for next >= 0 && next < len(cols) && len(cols[next]) == 0 {
			next += dx
		}
		if next < 0 || next >= len(cols) {
			return
		}
		m.cursorCol = next
	}
	m.cursorRow += dy
	m.clampCursor()
	m.ensureCursorVisible()
	if col := m.currentColumn(); len(col) > 0 && m.cursorRow == len(col)-1 && dy > 0 {
		m.gallery.LoadMoreVisible()
	}
}

// focusItem puts the cursor on id if it is in the grid.
func (m *Model) focusItem(id string) {
	col, row := m.gallery.Columns().Locate(id)
	if col < 0 {
		m.clampCursor()
		return
	}
	m.cursorCol, m.cursorRow = col, row
	m.ensureCursorVisible()
}

// ensureCursorVisible scrolls the grid so the selected card is on screen.
func (m *Model) ensureCursorVisible() {
	height := m.calculateLayout().GridHeight
	p, ok := findPlacement(placeCards(m.gallery.Columns(), m.width), m.cursorCol, m.cursorRow)
	if !ok || height <= 0 {
		return
	}
	if p.Y < m.gridOffset {
		m.gridOffset = p.Y
	}
	if p.Y+p.H > m.gridOffset+height {
		m.gridOffset = p.Y + p.H - height
	}
	m.gridOffset = max(0, m.gridOffset)
}

// scrollGrid scrolls by delta lines. Scrolling into the bottom edge fires
// the load-more sentinel.
func (m *Model) scrollGrid(delta int) {
	height := m.calculateLayout().GridHeight
	total := gridContentHeight(placeCards(m.gallery.Columns(), m.width))
	maxOffset := max(0, total-height)
	m.gridOffset = clamp(m.gridOffset+delta, 0, maxOffset)
	if delta > 0 && m.gridOffset == maxOffset {
		m.gallery.LoadMoreVisible()
	}
}

func (m *Model) openSelected() {
	item, ok := m.selectedItem()
	if !ok {
		return
	}
	if !m.gallery.OpenViewer(item.ID) {
		return
	}
	m.applyViewerRegions()
	m.lastViewed = item.ID
	m.status = item.Title
}

func (m *Model) togglePin(item gallery.Item) {
	if item.ID == "" {
		return
	}
	if m.gallery.TogglePin(item.ID) {
		m.pinMemory.Add(item.ID)
		m.status = fmt.Sprintf("Pinned %q", item.Title)
	} else {
		m.pinMemory.Remove(item.ID)
		m.status = fmt.Sprintf("Unpinned %q", item.Title)
	}
	if !m.gallery.Viewer().IsOpen() {
		m.focusItem(item.ID)
	}
}

func (m *Model) hideItem(item gallery.Item) {
	if item.ID == "" {
		return
	}
	m.gallery.Hide(item.ID)
	if !m.gallery.IsHidden(item.ID) {
		return
	}
	m.hideMemory.Add(item.ID)
	if m.lastViewed == item.ID {
		m.lastViewed = ""
	}
	m.clampCursor()
	m.ensureCursorVisible()
	m.status = fmt.Sprintf("Hidden %q (%d hidden)", item.Title, m.hideMemory.Len())
}
