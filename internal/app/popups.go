package app

import (
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/treykane/cli-gallery/internal/config"
	"github.com/treykane/cli-gallery/internal/export"
)

func (m *Model) openExportPopup() {
	dir := m.cfg.DownloadDir
	if dir == "" {
		dir = "."
	}
	m.input.SetValue(filepath.Join(dir, ExportFileName))
	m.input.CursorEnd()
	m.input.Focus()
	m.overlay = overlayExport
	m.status = "Export: Enter to write, Esc to cancel"
}

func (m *Model) closeExportPopup() {
	m.input.Blur()
	m.overlay = overlayNone
}

func (m *Model) handleExportKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.closeExportPopup()
		m.status = "Export cancelled"
		return m, nil
	case "enter":
		path := strings.TrimSpace(m.input.Value())
		if path == "" {
			m.status = "Export path is empty"
			return m, nil
		}
		normalized, err := config.NormalizePath(path)
		if err != nil {
			m.status = "Invalid export path: " + err.Error()
			return m, nil
		}
		m.closeExportPopup()
		m.status = "Exporting…"
		return m, m.exportCmd(normalized)
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// exportCmd writes the current section, with the session's pins and hides
// and the on-screen column count, as a static HTML page.
func (m *Model) exportCmd(path string) tea.Cmd {
	cat := m.catalog
	cat.Items = m.sectionItems()
	opts := export.Options{
		Columns: m.gallery.ColumnCount(),
		Pinned:  m.pinMemory.IDs(),
		Hidden:  m.hideMemory.IDs(),
	}
	return func() tea.Msg {
		return exportResultMsg{path: path, err: export.WriteFile(path, cat, opts)}
	}
}
