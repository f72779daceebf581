package app

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/treykane/cli-gallery/internal/gallery"
)

// View draws the full UI: section tabs, the grid or the open viewer, and the
// status footer.
func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	footerHeight := m.footerHeightForWidth(m.width)
	layout := m.calculateLayout()

	var content string
	switch {
	case m.gallery.Viewer().IsOpen():
		content = m.renderViewer(m.width, layout.ContentRows)
	default:
		content = m.renderTabs(m.width) + "\n" + m.renderGrid(m.width, layout.GridHeight)
	}
	switch m.overlay {
	case overlayHelp:
		content = m.renderHelpOverlay(m.width, layout.ContentRows)
	case overlayExport:
		content = m.renderExportOverlay(m.width, layout.ContentRows)
	}
	content = padBlock(content, m.width, layout.ContentRows)

	view := content + "\n" + m.renderStatus(m.width, footerHeight)
	return padBlock(view, m.width, m.height)
}

// tabTitle labels a section tab with its item count.
func (m *Model) tabTitle(s gallery.Section) string {
	return fmt.Sprintf("%s %d", tabLabel(s), len(m.catalog.Filter(s)))
}

func (m *Model) renderTabs(width int) string {
	var b strings.Builder
	for i, s := range m.tabs {
		style := tabStyle
		if i == m.tab {
			style = tabActiveStyle
		}
		b.WriteString(style.Render(m.tabTitle(s)))
	}
	tabs := b.String()
	title := m.catalog.Title
	if title == "" {
		return truncate(tabs, width)
	}
	room := width - lipgloss.Width(tabs) - 1
	if room < 4 {
		return truncate(tabs, width)
	}
	title = mutedStyle.Render(truncatePlain(title, room))
	gap := max(1, width-lipgloss.Width(tabs)-lipgloss.Width(title))
	return tabs + strings.Repeat(" ", gap) + title
}

func (m *Model) renderExportOverlay(width, height int) string {
	popupWidth := min(70, max(40, width-8))
	innerWidth := max(0, popupWidth-popupStyle.GetHorizontalFrameSize())
	m.input.Width = max(1, innerWidth-lipgloss.Width(m.input.Prompt)-1)

	lines := []string{
		titleStyle.Render("Export HTML"),
		mutedStyle.Render(truncatePlain(fmt.Sprintf("%s · %d items · %d columns",
			tabLabel(m.currentSection()), len(m.sectionItems()), m.gallery.ColumnCount()), innerWidth)),
		"",
		m.input.View(),
		"",
		mutedStyle.Render("Enter export · Esc cancel"),
	}
	popup := popupStyle.Width(popupWidth - 2).Render(padBlock(strings.Join(lines, "\n"), innerWidth, len(lines)))
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, popup)
}

func (m *Model) renderHelpOverlay(width, height int) string {
	popupWidth := min(64, max(30, width-4))
	innerWidth := max(0, popupWidth-popupStyle.GetHorizontalFrameSize())
	innerHeight := max(1, height-popupStyle.GetVerticalFrameSize())
	popup := popupStyle.Width(popupWidth - 2).Render(m.renderHelp(innerWidth, innerHeight))
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, popup)
}

func (m *Model) renderHelp(width, height int) string {
	row := func(action, fallback, label string) string {
		return fmt.Sprintf("  %-16s %s", m.allActionKeys(action, fallback), label)
	}
	lines := []string{
		titleStyle.Render("Keyboard Shortcuts"),
		"",
		"Grid",
		row(actionCursorUp, "↑", "Move up"),
		row(actionCursorDown, "↓", "Move down"),
		row(actionCursorLeft, "←", "Previous column"),
		row(actionCursorRight, "→", "Next column"),
		row(actionJumpTop, "g", "Top of column"),
		row(actionJumpBottom, "G", "Bottom of column"),
		row(actionOpen, "Enter", "Open viewer"),
		row(actionNextSection, "Tab", "Next section"),
		row(actionPrevSection, "Shift+Tab", "Previous section"),
		row(actionLoadMore, "m", "Load more"),
		row(actionPin, "t", "Pin / unpin"),
		row(actionHide, "x", "Hide for this session"),
		row(actionExport, "e", "Export HTML"),
		"",
		"Viewer",
		row(actionViewerPrevious, "←", "Previous item"),
		row(actionViewerNext, "→", "Next item"),
		row(actionViewerZoom, "z", "Zoom image"),
		row(actionViewerShare, "s", "Share menu"),
		row(actionViewerCopy, "c", "Copy link"),
		row(actionViewerDownload, "d", "Download image"),
		row(actionViewerScrollUp, "↑", "Scroll description up"),
		row(actionViewerScrollDn, "↓", "Scroll description down"),
		row(actionViewerClose, "Esc", "Close viewer"),
		"",
		"Mouse: click a card to open it, click outside the viewer to close it.",
		"",
		row(actionHelp, "?", "Toggle help"),
		row(actionQuit, "q", "Quit"),
	}

	visible := min(height, len(lines))
	out := make([]string, 0, visible)
	for i := 0; i < visible; i++ {
		out = append(out, truncate(lines[i], width))
	}
	return strings.Join(out, "\n")
}
