// Package app is the terminal host for the gallery: a Bubble Tea program that
// shows a catalog as a masonry grid, feeds key and mouse input to the
// gallery's viewer controller, and runs its timers on the Bubble Tea loop.
package app

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/treykane/cli-gallery/internal/catalog"
	"github.com/treykane/cli-gallery/internal/config"
	"github.com/treykane/cli-gallery/internal/gallery"
	"github.com/treykane/cli-gallery/internal/logging"
	"github.com/treykane/cli-gallery/internal/media"
)

// overlayMode names the popup drawn above the grid, if any. The viewer is
// not an overlay mode; its visibility is owned by the viewer controller.
type overlayMode int

const (
	overlayNone overlayMode = iota
	overlayHelp
	overlayExport
)

// Options configures a Model. Nil capabilities get production defaults.
type Options struct {
	Config  config.Config
	Catalog catalog.Catalog
	// Clipboard defaults to the system clipboard with an OSC 52 fallback
	// written to Output.
	Clipboard gallery.Clipboard
	// Output is the writer handed to tea.WithOutput. The OSC 52 fallback
	// shares it with the renderer. Defaults to a TerminalOutput on stdout.
	Output io.Writer
	// Saver defaults to a media.Saver writing into Config.DownloadDir.
	Saver gallery.Saver
}

// Model holds the Bubble Tea state for the gallery UI.
type Model struct {
	cfg     config.Config
	catalog catalog.Catalog

	// Core collaborators
	gallery *gallery.Gallery
	bus     *gallery.EventBus
	sched   *teaScheduler

	// Section tabs; tabs[0] is "" meaning every section.
	tabs []gallery.Section
	tab  int

	// revealed is how many of the section's items are paged in.
	revealed int

	// Pins and hides survive section switches even though the gallery only
	// ever holds one section's items.
	pinMemory  gallery.IDSet
	hideMemory gallery.IDSet

	// Grid cursor and vertical scroll, in grid lines.
	cursorCol  int
	cursorRow  int
	gridOffset int

	// lastViewed is the item the viewer showed on the previous update, so
	// the grid cursor can follow it when the viewer closes.
	lastViewed string

	// Viewer description pane
	viewport     viewport.Model
	paneKey      descriptionKey
	descriptions map[descriptionKey]string

	// Popups
	overlay overlayMode
	input   textinput.Model

	// Download indicator
	spinner   spinner.Model
	downloads int

	// Keybindings
	keyForAction map[string][]string
	gridKeys     map[string]string
	viewerKeys   map[string]string

	width  int
	height int
	status string
}

// New builds the initial model for opts.
func New(opts Options) *Model {
	cfg := opts.Config
	if cfg.PageSize < 1 {
		cfg.PageSize = config.DefaultPageSize
	}
	if cfg.Breakpoints == (config.Breakpoints{}) {
		cfg.Breakpoints = config.DefaultBreakpoints()
	}

	clip := opts.Clipboard
	if clip == nil {
		out := opts.Output
		if out == nil {
			out = NewTerminalOutput(os.Stdout)
		}
		clip = newSystemClipboard(out)
	}
	saver := opts.Saver
	if saver == nil {
		saver = &media.Saver{Dir: cfg.DownloadDir}
	}

	m := &Model{
		cfg:          cfg,
		catalog:      opts.Catalog.WithDefaultBaseURL(cfg.BaseURL),
		bus:          gallery.NewEventBus(),
		sched:        newTeaScheduler(),
		pinMemory:    gallery.NewIDSet(),
		hideMemory:   gallery.NewIDSet(),
		viewport:     viewport.New(0, 0),
		descriptions: map[descriptionKey]string{},
		status:       "Ready",
	}
	m.gallery = gallery.New(gallery.ViewerOptions{
		Scheduler: m.sched,
		Input:     m.bus,
		Clipboard: clip,
		Saver:     saver,
		Link:      func(item gallery.Item) string { return m.catalog.Link(item) },
		Logger:    logging.New("viewer"),
	})
	m.gallery.SetLoadMore(m.revealMore)

	input := textinput.New()
	input.Placeholder = "path/to/gallery.html"
	input.CharLimit = 512
	m.input = input

	spin := spinner.New()
	spin.Spinner = spinner.Dot
	m.spinner = spin

	m.loadKeybindings(cfg)
	m.tabs = buildTabs(opts.Catalog)
	m.revealed = cfg.PageSize
	m.applyItems()
	return m
}

// Init sets the terminal title.
func (m *Model) Init() tea.Cmd {
	title := m.catalog.Title
	if title == "" {
		title = "Gallery"
	}
	return tea.SetWindowTitle(title)
}

// Update handles one message, then syncs the viewer pane and flushes timers
// the viewer scheduled while handling it.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	model, cmd := m.update(msg)
	m.followViewer()
	if m.gallery.Viewer().IsOpen() {
		// The footer height follows the status text, so the viewer box can
		// move between updates.
		m.applyViewerRegions()
	}
	m.syncViewerPane()
	return model, tea.Batch(cmd, m.sched.drain())
}

func (m *Model) update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleWindowResize(msg)
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.MouseMsg:
		return m.handleMouse(msg)
	case timerFiredMsg:
		m.sched.fire(msg.id)
		return m, nil
	case spinner.TickMsg:
		return m.handleSpinnerTick(msg)
	case downloadResultMsg:
		return m.handleDownloadResult(msg)
	case exportResultMsg:
		return m.handleExportResult(msg)
	case catalogChangedMsg:
		return m.handleCatalogChanged(msg)
	}
	return m, nil
}

// Gallery exposes the core state, mainly for the CLI and tests.
func (m *Model) Gallery() *gallery.Gallery {
	return m.gallery
}

// Teardown releases the viewer's input subscription and timers.
func (m *Model) Teardown() {
	m.gallery.Viewer().Teardown()
}

func buildTabs(cat catalog.Catalog) []gallery.Section {
	return append([]gallery.Section{""}, cat.Sections()...)
}

func tabLabel(s gallery.Section) string {
	if s == "" {
		return "All"
	}
	return s.Label()
}

func (m *Model) currentSection() gallery.Section {
	if m.tab < 0 || m.tab >= len(m.tabs) {
		return ""
	}
	return m.tabs[m.tab]
}

func (m *Model) sectionItems() []gallery.Item {
	return m.catalog.Filter(m.currentSection())
}

// applyItems pushes the revealed page of the current section into the
// gallery and re-applies remembered pins and hides.
func (m *Model) applyItems() {
	items := m.sectionItems()
	m.revealed = clamp(m.revealed, min(m.cfg.PageSize, len(items)), len(items))
	m.gallery.SetItems(items[:m.revealed])
	for _, id := range m.pinMemory.IDs() {
		if !m.gallery.IsPinned(id) {
			m.gallery.TogglePin(id)
		}
	}
	for _, id := range m.hideMemory.IDs() {
		m.gallery.Hide(id)
	}
	m.clampCursor()
}

// revealMore is the gallery's load-more callback: it pages in the next
// PageSize items of the current section.
func (m *Model) revealMore() {
	total := len(m.sectionItems())
	if m.revealed >= total {
		return
	}
	m.revealed = min(total, m.revealed+m.cfg.PageSize)
	m.applyItems()
	m.status = fmt.Sprintf("Showing %d of %d", m.revealed, total)
	appLog.Debug("revealed page", "section", string(m.currentSection()), "revealed", m.revealed, "total", total)
}

func (m *Model) switchSection(delta int) {
	if len(m.tabs) == 0 {
		return
	}
	m.gallery.Viewer().Close()
	m.tab = (m.tab + delta + len(m.tabs)) % len(m.tabs)
	m.revealed = m.cfg.PageSize
	m.cursorCol, m.cursorRow, m.gridOffset = 0, 0, 0
	m.applyItems()
	m.status = tabLabel(m.currentSection())
}

// followViewer moves the grid cursor to the last item the viewer showed once
// it closes, however it was closed.
func (m *Model) followViewer() {
	state := m.gallery.Viewer().State()
	if state.Open {
		m.lastViewed = state.Current.ID
		return
	}
	if m.lastViewed != "" {
		m.focusItem(m.lastViewed)
		m.lastViewed = ""
	}
}
