package app

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/treykane/cli-gallery/internal/gallery"
)

// handleKey routes a key press to the active layer: popup, viewer, or grid.
func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	if key == "ctrl+c" {
		m.Teardown()
		return m, tea.Quit
	}
	switch {
	case m.overlay == overlayExport:
		return m.handleExportKey(msg)
	case m.overlay == overlayHelp:
		return m.handleHelpKey(key)
	case m.gallery.Viewer().IsOpen():
		return m.handleViewerKey(key)
	default:
		return m.handleGridKey(key)
	}
}

func (m *Model) handleHelpKey(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "esc", "q", "?", "enter":
		m.overlay = overlayNone
	}
	return m, nil
}

// handleGridKey dispatches browse-mode actions.
func (m *Model) handleGridKey(key string) (tea.Model, tea.Cmd) {
	switch m.gridActionForKey(key) {
	case actionQuit:
		m.Teardown()
		return m, tea.Quit
	case actionHelp:
		m.overlay = overlayHelp
	case actionCursorUp:
		m.moveCursor(0, -1)
	case actionCursorDown:
		m.moveCursor(0, 1)
	case actionCursorLeft:
		m.moveCursor(-1, 0)
	case actionCursorRight:
		m.moveCursor(1, 0)
	case actionJumpTop:
		m.cursorRow = 0
		m.clampCursor()
		m.ensureCursorVisible()
	case actionJumpBottom:
		if col := m.currentColumn(); len(col) > 0 {
			m.cursorRow = len(col) - 1
			m.ensureCursorVisible()
			m.gallery.LoadMoreVisible()
		}
	case actionOpen:
		m.openSelected()
	case actionPin:
		if item, ok := m.selectedItem(); ok {
			m.togglePin(item)
		}
	case actionHide:
		if item, ok := m.selectedItem(); ok {
			m.hideItem(item)
		}
	case actionNextSection:
		m.switchSection(1)
	case actionPrevSection:
		m.switchSection(-1)
	case actionLoadMore:
		before := m.revealed
		m.gallery.LoadMoreVisible()
		if m.revealed == before {
			m.status = "Everything is loaded"
		}
	case actionExport:
		m.openExportPopup()
	}
	return m, nil
}

// handleViewerKey dispatches viewer actions. Close and navigation go through
// the event bus so the viewer's own keyboard handling decides what happens.
func (m *Model) handleViewerKey(key string) (tea.Model, tea.Cmd) {
	v := m.gallery.Viewer()
	switch m.viewerActionForKey(key) {
	case actionViewerClose:
		m.bus.Dispatch(gallery.KeyEvent{Key: "esc"})
	case actionViewerPrevious:
		m.bus.Dispatch(gallery.KeyEvent{Key: "left"})
	case actionViewerNext:
		m.bus.Dispatch(gallery.KeyEvent{Key: "right"})
	case actionViewerZoom:
		v.ToggleZoom()
	case actionViewerShare:
		v.ToggleShareMenu()
	case actionViewerCopy:
		v.CopyLink()
		if v.State().CopyFeedback {
			m.status = "Link copied"
		} else {
			m.status = "Clipboard unavailable"
		}
	case actionViewerDownload:
		return m, m.startDownload()
	case actionViewerScrollUp:
		m.viewport.LineUp(1)
	case actionViewerScrollDn:
		m.viewport.LineDown(1)
	case actionPin:
		m.togglePin(v.State().Current)
	case actionHide:
		m.hideItem(v.State().Current)
	case actionHelp:
		m.overlay = overlayHelp
	}
	return m, nil
}
