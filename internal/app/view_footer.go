package app

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

func (m *Model) renderStatus(width, rows int) string {
	statusRows, _ := m.buildStatusRows(width, rows)
	for len(statusRows) < rows {
		statusRows = append(statusRows, "")
	}

	rendered := make([]string, 0, len(statusRows))
	for _, line := range statusRows {
		line = " " + truncate(line, max(0, width-1))
		rendered = append(rendered, statusStyle.Width(width).Render(line))
	}
	return strings.Join(rendered, "\n")
}

// buildStatusRows packs help, context and status segments into at most
// rowLimit rows and reports whether everything fit.
func (m *Model) buildStatusRows(width, rowLimit int) ([]string, bool) {
	if width <= 0 || rowLimit <= 0 {
		return nil, true
	}

	help := m.statusHelpSegments()
	context := m.statusContextSegments()
	status := m.statusMessageSegment()

	segments := make([]string, 0, len(help)+len(context)+2)
	if len(help) > 0 {
		segments = append(segments, "Keys: "+help[0])
		segments = append(segments, help[1:]...)
	}
	if len(context) > 0 {
		segments = append(segments, "Context: "+context[0])
		segments = append(segments, context[1:]...)
	}
	if status != "" {
		segments = append(segments, "Status: "+status)
	}

	rows := make([]string, 1, rowLimit)
	rowIndex := 0
	fit := true
	for _, seg := range segments {
		seg = strings.TrimSpace(seg)
		if seg == "" {
			continue
		}
		segment := seg
		if lipgloss.Width(segment) > width {
			segment = truncateWithEllipsis(segment, width)
		}

		candidate := segment
		if rows[rowIndex] != "" {
			candidate = rows[rowIndex] + " | " + segment
		}
		if lipgloss.Width(candidate) <= width {
			rows[rowIndex] = candidate
			continue
		}
		if rowIndex+1 < rowLimit {
			rowIndex++
			rows = append(rows, segment)
			continue
		}

		fit = false
		rows[rowIndex] = truncateWithEllipsis(rows[rowIndex]+" | "+segment, width)
		break
	}
	return rows, fit
}

func truncateWithEllipsis(value string, width int) string {
	if width <= 0 {
		return ""
	}
	if lipgloss.Width(value) <= width {
		return value
	}
	if width == 1 {
		return "…"
	}
	return ansi.Truncate(value, width-1, "") + "…"
}

func (m *Model) statusHelpSegments() []string {
	key := m.primaryActionKey
	switch m.overlay {
	case overlayHelp:
		return []string{"Help", "Esc/? close"}
	case overlayExport:
		return []string{"Export", "type path", "Enter export", "Esc cancel"}
	}
	if m.gallery.Viewer().IsOpen() {
		return []string{
			key(actionViewerPrevious, "←") + "/" + key(actionViewerNext, "→") + " prev/next",
			key(actionViewerZoom, "z") + " zoom",
			key(actionViewerShare, "s") + " share",
			key(actionViewerCopy, "c") + " copy link",
			key(actionViewerDownload, "d") + " download",
			key(actionPin, "t") + " pin",
			key(actionHide, "x") + " hide",
			key(actionViewerScrollUp, "↑") + "/" + key(actionViewerScrollDn, "↓") + " scroll",
			key(actionViewerClose, "Esc") + " close",
		}
	}
	return []string{
		"arrows move",
		key(actionOpen, "Enter") + " open",
		key(actionNextSection, "Tab") + " section",
		key(actionPin, "t") + " pin",
		key(actionHide, "x") + " hide",
		key(actionLoadMore, "m") + " more",
		key(actionExport, "e") + " export",
		key(actionHelp, "?") + " help",
		key(actionQuit, "q") + " quit",
	}
}

func (m *Model) statusContextSegments() []string {
	parts := []string{tabLabel(m.currentSection())}
	total := len(m.sectionItems())
	if m.revealed < total {
		parts = append(parts, fmt.Sprintf("%d of %d", m.revealed, total))
	} else {
		parts = append(parts, fmt.Sprintf("%d items", total))
	}
	parts = append(parts, fmt.Sprintf("%d cols", m.gallery.ColumnCount()))
	if n := m.pinMemory.Len(); n > 0 {
		parts = append(parts, fmt.Sprintf("%d pinned", n))
	}
	if n := m.hideMemory.Len(); n > 0 {
		parts = append(parts, fmt.Sprintf("%d hidden", n))
	}
	if m.downloads > 0 {
		parts = append(parts, m.spinner.View()+fmt.Sprintf(" %d downloading", m.downloads))
	}
	return parts
}

func (m *Model) statusMessageSegment() string {
	return strings.TrimSpace(m.status)
}
