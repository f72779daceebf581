package app

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/treykane/cli-gallery/internal/catalog"
)

// downloadResultMsg reports a finished viewer download.
type downloadResultMsg struct {
	id    string
	title string
	path  string
	err   error
}

// exportResultMsg reports a finished HTML export.
type exportResultMsg struct {
	path string
	err  error
}

// catalogChangedMsg carries a reloaded catalog from the file watcher. A
// failed reload keeps the current catalog on screen.
type catalogChangedMsg struct {
	catalog catalog.Catalog
	err     error
}

func (m *Model) handleWindowResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width = msg.Width
	m.height = msg.Height
	m.gallery.SetColumnCount(m.cfg.Breakpoints.ColumnsForWidth(m.width))

	m.input.Width = max(10, min(60, m.width-10))

	m.applyViewerRegions()
	m.clampCursor()
	m.ensureCursorVisible()
	return m, nil
}

func (m *Model) handleSpinnerTick(msg spinner.TickMsg) (tea.Model, tea.Cmd) {
	if m.downloads == 0 {
		return m, nil
	}
	var cmd tea.Cmd
	m.spinner, cmd = m.spinner.Update(msg)
	return m, cmd
}

// startDownload runs the viewer's download job off the UI goroutine.
func (m *Model) startDownload() tea.Cmd {
	v := m.gallery.Viewer()
	job := v.Download()
	if job == nil {
		return nil
	}
	item := v.State().Current
	m.downloads++
	m.status = fmt.Sprintf("Downloading %q…", item.Title)
	run := func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), DownloadTimeout)
		defer cancel()
		path, err := job(ctx)
		return downloadResultMsg{id: item.ID, title: item.Title, path: path, err: err}
	}
	if m.downloads == 1 {
		return tea.Batch(run, m.spinner.Tick)
	}
	return run
}

func (m *Model) handleDownloadResult(msg downloadResultMsg) (tea.Model, tea.Cmd) {
	m.downloads = max(0, m.downloads-1)
	if msg.err != nil {
		m.setStatusError(fmt.Sprintf("Download failed: %v", msg.err), msg.err, "id", msg.id)
		return m, nil
	}
	m.status = fmt.Sprintf("Saved %q to %s", msg.title, msg.path)
	return m, nil
}

func (m *Model) handleExportResult(msg exportResultMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.setStatusError(fmt.Sprintf("Export failed: %v", msg.err), msg.err, "path", msg.path)
		return m, nil
	}
	m.status = "Exported " + filepath.Base(msg.path)
	appLog.Info("exported gallery", "path", msg.path)
	return m, nil
}

// handleCatalogChanged swaps in a reloaded catalog. The section tab, paging
// depth, configured base URL and remembered pins and hides carry over; ids
// that vanished are pruned from memory. The viewer stays open when its item still exists.
func (m *Model) handleCatalogChanged(msg catalogChangedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.setStatusError("Catalog reload failed", msg.err, "path", m.catalog.Path)
		return m, nil
	}
	section := m.currentSection()
	m.catalog = msg.catalog.WithDefaultBaseURL(m.cfg.BaseURL)
	m.tabs = buildTabs(m.catalog)
	m.tab = 0
	for i, s := range m.tabs {
		if s == section {
			m.tab = i
			break
		}
	}
	m.pinMemory.Prune(m.catalog.Items)
	m.hideMemory.Prune(m.catalog.Items)
	m.invalidateDescriptions()
	m.applyItems()
	m.ensureCursorVisible()
	m.status = fmt.Sprintf("Catalog reloaded (%d items)", len(m.catalog.Items))
	return m, nil
}
