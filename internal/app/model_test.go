package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/treykane/cli-gallery/internal/catalog"
	"github.com/treykane/cli-gallery/internal/config"
	"github.com/treykane/cli-gallery/internal/gallery"
)

type fakeClipboard struct {
	texts []string
	err   error
}

func (c *fakeClipboard) WriteAll(text string) error {
	if c.err != nil {
		return c.err
	}
	c.texts = append(c.texts, text)
	return nil
}

type fakeSaver struct {
	saved []string
	err   error
}

func (s *fakeSaver) Save(_ context.Context, item gallery.Item) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	s.saved = append(s.saved, item.ID)
	return "/downloads/" + item.ID + ".jpg", nil
}

func testCatalog(n int) catalog.Catalog {
	items := make([]gallery.Item, 0, n)
	sections := []gallery.Section{gallery.SectionPhotos, gallery.SectionBlog}
	for i := 1; i <= n; i++ {
		items = append(items, gallery.Item{
			ID:      fmt.Sprintf("p%d", i),
			Title:   fmt.Sprintf("Item %d", i),
			Image:   fmt.Sprintf("https://img.example.com/%d.jpg", i),
			Section: sections[(i-1)%len(sections)],
		})
	}
	return catalog.Catalog{Title: "Test", BaseURL: "https://example.com", Items: items}
}

type testModel struct {
	*Model
	clip  *fakeClipboard
	saver *fakeSaver
}

func newTestModel(t *testing.T, cat catalog.Catalog, pageSize int) testModel {
	t.Helper()
	clip := &fakeClipboard{}
	saver := &fakeSaver{}
	m := New(Options{
		Config: config.Config{
			PageSize:    pageSize,
			Breakpoints: config.DefaultBreakpoints(),
			DownloadDir: t.TempDir(),
		},
		Catalog:   cat,
		Clipboard: clip,
		Saver:     saver,
	})
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 60})
	return testModel{Model: m, clip: clip, saver: saver}
}

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func press(m *Model, msgs ...tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	for _, msg := range msgs {
		_, cmd = m.Update(msg)
	}
	return cmd
}

func click(x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}
}

// firePendingTimers runs every still-pending viewer timer as if its tick
// had arrived.
func firePendingTimers(m *Model) {
	ids := make([]gallery.TimerID, 0, len(m.sched.pending))
	for id := range m.sched.pending {
		ids = append(ids, id)
	}
	for _, id := range ids {
		m.Update(timerFiredMsg{id: id})
	}
}

func TestWindowResizeSetsColumnCountFromBreakpoints(t *testing.T) {
	tm := newTestModel(t, testCatalog(8), 24)
	cases := map[int]int{30: 1, 60: 2, 100: 3, 119: 3, 120: 4, 200: 4}
	for width, want := range cases {
		tm.Update(tea.WindowSizeMsg{Width: width, Height: 40})
		if got := tm.gallery.ColumnCount(); got != want {
			t.Fatalf("width %d: expected %d columns, got %d", width, want, got)
		}
	}
}

func TestGridCursorMovesAcrossColumnsAndRows(t *testing.T) {
	tm := newTestModel(t, testCatalog(7), 24)

	press(tm.Model, tea.KeyMsg{Type: tea.KeyRight})
	if item, _ := tm.selectedItem(); item.ID != "p2" {
		t.Fatalf("expected p2 after right, got %q", item.ID)
	}
	press(tm.Model, runeKey('j'))
	if item, _ := tm.selectedItem(); item.ID != "p5" {
		t.Fatalf("expected p5 after down, got %q", item.ID)
	}
	press(tm.Model, tea.KeyMsg{Type: tea.KeyRight}, tea.KeyMsg{Type: tea.KeyRight})
	if tm.cursorCol != 2 || tm.cursorRow != 1 {
		t.Fatalf("expected cursor clamped to column 2 row 1, got %d,%d", tm.cursorCol, tm.cursorRow)
	}
	press(tm.Model, runeKey('G'))
	if item, _ := tm.selectedItem(); item.ID != "p6" {
		t.Fatalf("expected last card of column 2 (p6), got %q", item.ID)
	}
	press(tm.Model, runeKey('g'))
	if item, _ := tm.selectedItem(); item.ID != "p3" {
		t.Fatalf("expected top of column 2 (p3), got %q", item.ID)
	}
}

func TestEnterOpensViewerAndEscClosesIt(t *testing.T) {
	tm := newTestModel(t, testCatalog(6), 24)
	v := tm.gallery.Viewer()

	press(tm.Model, tea.KeyMsg{Type: tea.KeyEnter})
	if !v.IsOpen() || v.State().Current.ID != "p1" {
		t.Fatalf("expected viewer open on p1, got %+v", v.State())
	}

	press(tm.Model, tea.KeyMsg{Type: tea.KeyRight}, tea.KeyMsg{Type: tea.KeyRight})
	if got := v.State().Current.ID; got != "p3" {
		t.Fatalf("expected p3 after two nexts, got %q", got)
	}

	press(tm.Model, tea.KeyMsg{Type: tea.KeyEsc})
	if v.IsOpen() {
		t.Fatal("expected esc to close the viewer")
	}
	if item, _ := tm.selectedItem(); item.ID != "p3" {
		t.Fatalf("expected grid cursor to follow the viewer to p3, got %q", item.ID)
	}
}

func TestViewerNavigationStopsAtEnds(t *testing.T) {
	tm := newTestModel(t, testCatalog(2), 24)
	v := tm.gallery.Viewer()

	press(tm.Model, tea.KeyMsg{Type: tea.KeyEnter}, tea.KeyMsg{Type: tea.KeyLeft})
	if got := v.State().Current.ID; got != "p1" {
		t.Fatalf("expected previous at first item to stay on p1, got %q", got)
	}
	press(tm.Model, runeKey('l'), runeKey('l'), runeKey('l'))
	if got := v.State().Current.ID; got != "p2" {
		t.Fatalf("expected next at last item to stay on p2, got %q", got)
	}
}

func TestZoomPersistsAcrossNavigationAndResetsOnReopen(t *testing.T) {
	tm := newTestModel(t, testCatalog(3), 24)
	v := tm.gallery.Viewer()

	press(tm.Model, tea.KeyMsg{Type: tea.KeyEnter}, runeKey('z'), tea.KeyMsg{Type: tea.KeyRight})
	if !v.State().Zoomed {
		t.Fatal("expected zoom to survive navigation")
	}
	press(tm.Model, tea.KeyMsg{Type: tea.KeyEsc}, tea.KeyMsg{Type: tea.KeyEnter})
	if v.State().Zoomed {
		t.Fatal("expected zoom reset when the viewer reopens")
	}
}

func TestPinMovesItemToFrontAndSurvivesSectionSwitch(t *testing.T) {
	tm := newTestModel(t, testCatalog(6), 24)

	press(tm.Model, tea.KeyMsg{Type: tea.KeyRight}, tea.KeyMsg{Type: tea.KeyRight}, runeKey('j'))
	press(tm.Model, runeKey('t'))
	if got := tm.gallery.Ordered()[0].ID; got != "p6" {
		t.Fatalf("expected pinned p6 first, got %q", got)
	}
	if item, _ := tm.selectedItem(); item.ID != "p6" {
		t.Fatalf("expected cursor to follow pinned item, got %q", item.ID)
	}

	press(tm.Model, tea.KeyMsg{Type: tea.KeyTab})
	if tm.currentSection() != gallery.SectionPhotos {
		t.Fatalf("expected photos tab, got %q", tm.currentSection())
	}
	press(tm.Model, tea.KeyMsg{Type: tea.KeyShiftTab})
	if !tm.gallery.IsPinned("p6") || tm.gallery.Ordered()[0].ID != "p6" {
		t.Fatal("expected pin to survive switching sections")
	}

	press(tm.Model, runeKey('t'))
	if tm.gallery.IsPinned("p6") || tm.pinMemory.Has("p6") {
		t.Fatal("expected second toggle to unpin")
	}
}

func TestHideRemovesItemAndClosesViewerOnCurrent(t *testing.T) {
	tm := newTestModel(t, testCatalog(4), 24)
	v := tm.gallery.Viewer()

	press(tm.Model, tea.KeyMsg{Type: tea.KeyEnter}, tea.KeyMsg{Type: tea.KeyRight})
	press(tm.Model, runeKey('x'))
	if v.IsOpen() {
		t.Fatal("expected hiding the open item to close the viewer")
	}
	for _, item := range tm.gallery.Ordered() {
		if item.ID == "p2" {
			t.Fatal("expected p2 to be hidden")
		}
	}
	press(tm.Model, tea.KeyMsg{Type: tea.KeyEnter})
	press(tm.Model, tea.KeyMsg{Type: tea.KeyRight})
	if got := v.State().Current.ID; got != "p3" {
		t.Fatalf("expected navigation to skip hidden p2, got %q", got)
	}
}

func TestCopyLinkFeedbackAndShareMenuTimers(t *testing.T) {
	tm := newTestModel(t, testCatalog(3), 24)
	v := tm.gallery.Viewer()

	press(tm.Model, tea.KeyMsg{Type: tea.KeyEnter}, runeKey('s'), runeKey('c'))
	if len(tm.clip.texts) != 1 || tm.clip.texts[0] != "https://example.com/gallery/p1" {
		t.Fatalf("unexpected clipboard writes %v", tm.clip.texts)
	}
	state := v.State()
	if !state.CopyFeedback || !state.ShareMenuOpen {
		t.Fatalf("expected feedback and open share menu right after copy, got %+v", state)
	}
	if !strings.Contains(tm.View(), "Link copied") {
		t.Fatal("expected share panel to show copy feedback")
	}

	firePendingTimers(tm.Model)
	state = v.State()
	if state.CopyFeedback || state.ShareMenuOpen {
		t.Fatalf("expected timers to clear feedback and close share menu, got %+v", state)
	}
}

func TestCopyLinkAgainDropsSupersededTimers(t *testing.T) {
	tm := newTestModel(t, testCatalog(3), 24)

	press(tm.Model, tea.KeyMsg{Type: tea.KeyEnter}, runeKey('c'))
	first := make([]gallery.TimerID, 0, 2)
	for id := range tm.sched.pending {
		first = append(first, id)
	}
	press(tm.Model, runeKey('c'))

	for _, id := range first {
		tm.Update(timerFiredMsg{id: id})
	}
	if !tm.gallery.Viewer().State().CopyFeedback {
		t.Fatal("expected stale ticks from the first copy to be ignored")
	}
	if len(tm.sched.pending) != 2 {
		t.Fatalf("expected 2 live timers, got %d", len(tm.sched.pending))
	}
}

func TestCopyLinkFailureLeavesStateUntouched(t *testing.T) {
	tm := newTestModel(t, testCatalog(2), 24)
	tm.clip.err = errors.New("no clipboard")

	press(tm.Model, tea.KeyMsg{Type: tea.KeyEnter}, runeKey('s'), runeKey('c'))
	state := tm.gallery.Viewer().State()
	if state.CopyFeedback || !state.ShareMenuOpen {
		t.Fatalf("expected unchanged state after clipboard failure, got %+v", state)
	}
	if tm.status != "Clipboard unavailable" {
		t.Fatalf("unexpected status %q", tm.status)
	}
	if len(tm.sched.pending) != 0 {
		t.Fatalf("expected no timers after failed copy, got %d", len(tm.sched.pending))
	}
}

func TestMouseClickOpensCardAndBackdropCloses(t *testing.T) {
	tm := newTestModel(t, testCatalog(6), 24)
	v := tm.gallery.Viewer()
	layout := tm.calculateLayout()

	p, ok := findPlacement(placeCards(tm.gallery.Columns(), tm.width), 1, 1)
	if !ok {
		t.Fatal("expected a card at column 1 row 1")
	}
	press(tm.Model, click(p.X+1, layout.GridTop+p.Y+1))
	if !v.IsOpen() || v.State().Current.ID != "p5" {
		t.Fatalf("expected click to open p5, got %+v", v.State())
	}

	geo := calculateViewerGeometry(tm.width, layout.ContentRows)
	press(tm.Model, click(geo.Box.X+3, geo.Box.Y+geo.Box.H-2))
	if !v.IsOpen() {
		t.Fatal("expected click inside the viewer to keep it open")
	}

	press(tm.Model, click(0, 0))
	if v.IsOpen() {
		t.Fatal("expected backdrop click to close the viewer")
	}
}

func TestPointerOutsideSharePanelClosesOnlyTheMenu(t *testing.T) {
	tm := newTestModel(t, testCatalog(3), 24)
	v := tm.gallery.Viewer()

	press(tm.Model, tea.KeyMsg{Type: tea.KeyEnter}, runeKey('s'))
	geo := calculateViewerGeometry(tm.width, tm.calculateLayout().ContentRows)
	press(tm.Model, click(geo.Share.X+1, geo.Share.Y+1))
	if !v.State().ShareMenuOpen {
		t.Fatal("expected click inside the share panel to keep it open")
	}

	press(tm.Model, click(geo.Inner.X+1, geo.Inner.Y+geo.Inner.H-1))
	state := v.State()
	if state.ShareMenuOpen || !state.Open {
		t.Fatalf("expected share menu closed and viewer open, got %+v", state)
	}
}

func TestLoadMoreRevealsNextPage(t *testing.T) {
	tm := newTestModel(t, testCatalog(10), 4)
	if got := len(tm.gallery.Items()); got != 4 {
		t.Fatalf("expected first page of 4, got %d", got)
	}

	press(tm.Model, runeKey('m'))
	if got := len(tm.gallery.Items()); got != 8 {
		t.Fatalf("expected 8 after load more, got %d", got)
	}

	// Reaching the last card of a column fires the sentinel.
	press(tm.Model, runeKey('j'), runeKey('j'))
	if got := len(tm.gallery.Items()); got != 10 {
		t.Fatalf("expected all 10 after reaching the column end, got %d", got)
	}
	press(tm.Model, runeKey('m'))
	if tm.status != "Everything is loaded" {
		t.Fatalf("unexpected status %q", tm.status)
	}
}

func TestDownloadRunsSaverOffTheUpdateLoop(t *testing.T) {
	tm := newTestModel(t, testCatalog(2), 24)

	cmd := press(tm.Model, tea.KeyMsg{Type: tea.KeyEnter}, runeKey('d'))
	if cmd == nil {
		t.Fatal("expected download command")
	}
	if len(tm.saver.saved) != 0 {
		t.Fatal("expected saver to run only when the command executes")
	}
	if tm.downloads != 1 {
		t.Fatalf("expected one running download, got %d", tm.downloads)
	}

	result, ok := findMsg[downloadResultMsg](cmd)
	if !ok {
		t.Fatal("expected a download result message")
	}
	tm.Update(result)
	if tm.downloads != 0 || !strings.Contains(tm.status, "/downloads/p1.jpg") {
		t.Fatalf("unexpected state after download: downloads=%d status=%q", tm.downloads, tm.status)
	}
}

func TestDownloadFailureShowsStatus(t *testing.T) {
	tm := newTestModel(t, testCatalog(2), 24)
	tm.saver.err = errors.New("boom")

	cmd := press(tm.Model, tea.KeyMsg{Type: tea.KeyEnter}, runeKey('d'))
	result, ok := findMsg[downloadResultMsg](cmd)
	if !ok {
		t.Fatal("expected a download result message")
	}
	tm.Update(result)
	if !strings.HasPrefix(tm.status, "Download failed") {
		t.Fatalf("unexpected status %q", tm.status)
	}
}

func TestExportPopupWritesHTML(t *testing.T) {
	tm := newTestModel(t, testCatalog(5), 24)
	path := filepath.Join(t.TempDir(), "out.html")

	press(tm.Model, runeKey('e'))
	if tm.overlay != overlayExport {
		t.Fatal("expected export popup")
	}
	tm.input.SetValue(path)
	cmd := press(tm.Model, tea.KeyMsg{Type: tea.KeyEnter})
	result, ok := findMsg[exportResultMsg](cmd)
	if !ok {
		t.Fatal("expected an export result message")
	}
	tm.Update(result)
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected export file: %v", err)
	}
	if tm.status != "Exported out.html" {
		t.Fatalf("unexpected status %q", tm.status)
	}
}

func TestCatalogChangedPrunesPinsAndKeepsSection(t *testing.T) {
	tm := newTestModel(t, testCatalog(6), 24)
	press(tm.Model, runeKey('t'))
	press(tm.Model, tea.KeyMsg{Type: tea.KeyRight}, runeKey('t'))
	if tm.pinMemory.Len() != 2 {
		t.Fatalf("expected 2 pins, got %d", tm.pinMemory.Len())
	}
	press(tm.Model, tea.KeyMsg{Type: tea.KeyTab})

	next := testCatalog(6)
	next.Items = next.Items[1:]
	tm.Update(catalogChangedMsg{catalog: next})

	if tm.currentSection() != gallery.SectionPhotos {
		t.Fatalf("expected to stay on photos, got %q", tm.currentSection())
	}
	if tm.pinMemory.Has("p1") || !tm.pinMemory.Has("p2") {
		t.Fatalf("expected p1 pruned and p2 kept, got %v", tm.pinMemory.IDs())
	}

	tm.Update(catalogChangedMsg{err: errors.New("bad yaml")})
	if len(tm.catalog.Items) != 5 || tm.status != "Catalog reload failed" {
		t.Fatalf("expected failed reload to keep catalog, status %q", tm.status)
	}
}

func TestCatalogReloadKeepsConfiguredBaseURL(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	body := "items:\n  - id: a\n    title: A\n    image: https://img.example.com/a.jpg\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	cat, err := catalog.Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	clip := &fakeClipboard{}
	m := New(Options{
		Config:    config.Config{BaseURL: "https://me.example", DownloadDir: t.TempDir()},
		Catalog:   cat,
		Clipboard: clip,
		Saver:     &fakeSaver{},
	})
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 60})
	press(m, tea.KeyMsg{Type: tea.KeyEnter}, runeKey('c'))

	reloaded, err := catalog.Load(path)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	m.Update(catalogChangedMsg{catalog: reloaded})
	press(m, runeKey('c'))

	want := []string{"https://me.example/gallery/a", "https://me.example/gallery/a"}
	if len(clip.texts) != 2 || clip.texts[0] != want[0] || clip.texts[1] != want[1] {
		t.Fatalf("expected links %v, got %v", want, clip.texts)
	}
}

func TestViewRendersGridAndViewer(t *testing.T) {
	tm := newTestModel(t, testCatalog(4), 24)

	view := tm.View()
	for _, want := range []string{"All 4", "Item 1", "Item 4", "Keys:"} {
		if !strings.Contains(view, want) {
			t.Fatalf("expected grid view to contain %q", want)
		}
	}
	if got := len(strings.Split(view, "\n")); got != tm.height {
		t.Fatalf("expected %d lines, got %d", tm.height, got)
	}

	press(tm.Model, tea.KeyMsg{Type: tea.KeyEnter}, runeKey('s'))
	view = tm.View()
	for _, want := range []string{"1 / 4", "Share", "https://example.com/gallery/p1"} {
		if !strings.Contains(view, want) {
			t.Fatalf("expected viewer view to contain %q", want)
		}
	}
}

// findMsg runs cmd, expanding batches, and returns the first message of
// type T. Commands producing other messages are ignored.
func findMsg[T tea.Msg](cmd tea.Cmd) (T, bool) {
	var zero T
	if cmd == nil {
		return zero, false
	}
	switch msg := cmd().(type) {
	case T:
		return msg, true
	case tea.BatchMsg:
		for _, c := range msg {
			if got, ok := findMsg[T](c); ok {
				return got, true
			}
		}
	}
	return zero, false
}
