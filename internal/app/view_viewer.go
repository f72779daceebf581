package app

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/treykane/cli-gallery/internal/gallery"
)

// viewerHeaderRows is the title line, the meta line and a spacer.
const viewerHeaderRows = 3

// aspectRatio is the width/height ratio an aspect class stands for.
func aspectRatio(a gallery.Aspect) float64 {
	switch a {
	case gallery.AspectTall:
		return 2.0 / 3.0
	case gallery.AspectWide:
		return 16.0 / 9.0
	default:
		return 1
	}
}

// viewerImageSize fits the image block into the viewer. Terminal cells are
// about twice as tall as wide, so a square image is two columns per row.
// Unzoomed, the image may use three fifths of the body; zoomed, all of it.
func viewerImageSize(item gallery.Item, zoomed bool, width, bodyRows int) (cols, rows int) {
	if width <= 0 || bodyRows <= 0 {
		return 0, 0
	}
	ratio := aspectRatio(gallery.AspectOf(item))
	maxRows := bodyRows
	if !zoomed {
		maxRows = max(1, bodyRows*3/5)
	}
	rows = min(maxRows, int(math.Floor(float64(width)/(2*ratio))))
	rows = max(1, rows)
	cols = min(width, max(1, int(math.Round(float64(rows)*2*ratio))))
	return cols, rows
}

// descriptionHeight is the number of rows left for the description
// viewport below the image, the spacer, and the related line.
func (m *Model) descriptionHeight(geo viewerGeometry) int {
	state := m.gallery.Viewer().State()
	if !state.Open || state.Zoomed {
		return 0
	}
	body := geo.Inner.H - viewerHeaderRows
	_, imageRows := viewerImageSize(state.Current, false, geo.Inner.W, body)
	return max(0, body-imageRows-2)
}

// renderViewer draws the viewer box over a backdrop filling the content
// rows. Its position matches calculateViewerGeometry, which is also what
// the controller hit-tests pointer events against.
func (m *Model) renderViewer(width, height int) string {
	geo := calculateViewerGeometry(width, height)
	state := m.gallery.Viewer().State()
	if geo.Inner.W <= 0 || geo.Inner.H <= 0 {
		return padBlock(titleStyle.Render(state.Current.Title), width, height)
	}

	inner := m.renderViewerBody(state, geo)
	if state.ShareMenuOpen && geo.Share.H > 0 {
		panel := strings.Split(m.renderSharePanel(state, geo.Share.W), "\n")
		inner = overlayRight(inner, panel, geo.Share.Y-geo.Inner.Y, geo.Inner.W)
	}
	box := viewerStyle.
		Width(max(1, geo.Box.W-viewerStyle.GetHorizontalBorderSize())).
		Height(max(1, geo.Box.H-viewerStyle.GetVerticalBorderSize())).
		Render(padBlock(strings.Join(inner, "\n"), geo.Inner.W, geo.Inner.H))
	boxLines := strings.Split(box, "\n")

	backdrop := backdropStyle.Render(strings.Repeat("░", width))
	side := backdropStyle.Render(strings.Repeat("░", geo.Box.X))
	rows := make([]string, height)
	for y := range rows {
		i := y - geo.Box.Y
		if i < 0 || i >= len(boxLines) {
			rows[y] = backdrop
			continue
		}
		right := max(0, width-geo.Box.X-lipgloss.Width(boxLines[i]))
		rows[y] = side + boxLines[i] + backdropStyle.Render(strings.Repeat("░", right))
	}
	return strings.Join(rows, "\n")
}

func (m *Model) renderViewerBody(state gallery.ViewerState, geo viewerGeometry) []string {
	item := state.Current
	w := geo.Inner.W
	v := m.gallery.Viewer()

	position := ""
	if v.Index() >= 0 {
		position = fmt.Sprintf("%d / %d", v.Index()+1, v.Len())
	}
	title := item.Title
	if m.gallery.IsPinned(item.ID) {
		title = "★ " + title
	}
	title = titleStyle.Render(truncatePlain(title, max(1, w-lipgloss.Width(position)-1)))
	gap := max(1, w-lipgloss.Width(title)-lipgloss.Width(position))
	lines := []string{
		title + strings.Repeat(" ", gap) + mutedStyle.Render(position),
		mutedStyle.Render(truncatePlain(viewerMeta(item), w)),
		"",
	}

	body := geo.Inner.H - viewerHeaderRows
	cols, rows := viewerImageSize(item, state.Zoomed, w, body)
	for _, line := range imagePlaceholder(item, cols, rows) {
		lines = append(lines, lipgloss.PlaceHorizontal(w, lipgloss.Center, line))
	}
	if state.Zoomed {
		return lines
	}

	lines = append(lines, "")
	if m.viewport.Height > 0 {
		lines = append(lines, strings.Split(padBlock(m.viewport.View(), w, m.viewport.Height), "\n")...)
	}
	if related := m.relatedLine(item.ID, w); related != "" {
		lines = append(lines, related)
	}
	return lines
}

func viewerMeta(item gallery.Item) string {
	parts := []string{item.Section.Label()}
	if item.Category != "" {
		parts = append(parts, item.Category)
	}
	if item.Date != "" {
		parts = append(parts, item.Date)
	}
	for _, tag := range item.Tags {
		parts = append(parts, "#"+tag)
	}
	return strings.Join(parts, " · ")
}

func (m *Model) relatedLine(id string, width int) string {
	related := m.gallery.Related(id, RelatedLimit)
	if len(related) == 0 {
		return ""
	}
	titles := make([]string, len(related))
	for i, item := range related {
		titles[i] = item.Title
	}
	return mutedStyle.Render(truncatePlain("Related: "+strings.Join(titles, " · "), width))
}

// renderSharePanel draws the share menu at exactly width × SharePanelRows.
func (m *Model) renderSharePanel(state gallery.ViewerState, width int) string {
	inner := max(1, width-shareStyle.GetHorizontalFrameSize())
	status := mutedStyle.Render(m.primaryActionKey(actionViewerCopy, "c") + " copy link")
	if state.CopyFeedback {
		status = feedbackStyle.Render("✓ Link copied")
	}
	lines := []string{
		titleStyle.Render("Share"),
		truncatePlain(m.catalog.Link(state.Current), inner),
		status,
	}
	rows := max(1, SharePanelRows-shareStyle.GetVerticalBorderSize())
	body := padBlock(strings.Join(lines, "\n"), inner, rows)
	return shareStyle.Width(max(1, width-shareStyle.GetHorizontalBorderSize())).Render(body)
}
