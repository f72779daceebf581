package app

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/treykane/cli-gallery/internal/gallery"
)

// handleMouse routes mouse events. While the viewer is open, presses go to
// the event bus as pointer-down events in screen coordinates; the viewer
// decides whether they dismiss the share panel or hit the backdrop.
func (m *Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.gallery.Viewer().IsOpen() {
		switch {
		case msg.Button == tea.MouseButtonWheelUp:
			m.viewport.LineUp(WheelStep)
		case msg.Button == tea.MouseButtonWheelDown:
			m.viewport.LineDown(WheelStep)
		case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
			m.bus.Dispatch(gallery.PointerDownEvent{X: msg.X, Y: msg.Y})
		}
		return m, nil
	}
	if m.overlay != overlayNone {
		return m, nil
	}

	switch {
	case msg.Button == tea.MouseButtonWheelUp:
		m.scrollGrid(-WheelStep)
	case msg.Button == tea.MouseButtonWheelDown:
		m.scrollGrid(WheelStep)
	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
		m.handleGridClick(msg.X, msg.Y)
	}
	return m, nil
}

func (m *Model) handleGridClick(x, y int) {
	layout := m.calculateLayout()
	if y < layout.GridTop {
		if tab, ok := m.tabAt(x); ok && tab != m.tab {
			m.switchSection(tab - m.tab)
		}
		return
	}
	if y >= layout.GridTop+layout.GridHeight {
		return
	}
	placements := placeCards(m.gallery.Columns(), m.width)
	p, ok := hitCard(placements, x, y-layout.GridTop+m.gridOffset)
	if !ok {
		return
	}
	m.cursorCol, m.cursorRow = p.Col, p.Row
	m.openSelected()
}

// tabAt returns the index of the section tab drawn at column x.
func (m *Model) tabAt(x int) (int, bool) {
	left := 0
	for i, s := range m.tabs {
		w := lipgloss.Width(tabStyle.Render(m.tabTitle(s)))
		if x >= left && x < left+w {
			return i, true
		}
		left += w
	}
	return 0, false
}
