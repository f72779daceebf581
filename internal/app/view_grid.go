package app

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/treykane/cli-gallery/internal/gallery"
)

// renderGrid draws the visible window of the masonry grid. Each column is
// drawn onto its own canvas of card lines, then the canvases are cut at the
// scroll offset and joined row by row.
func (m *Model) renderGrid(width, height int) string {
	if height <= 0 {
		return ""
	}
	columns := m.gallery.Columns()
	if len(m.gallery.Ordered()) == 0 {
		msg := mutedStyle.Render("Nothing to show in " + tabLabel(m.currentSection()))
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, msg)
	}

	widths := columnWidths(len(columns), width)
	selected, _ := m.selectedItem()
	canvases := make([][]string, len(columns))
	for c, col := range columns {
		canvas := make([]string, 0, len(col)*(CardChromeRows+TallImageRows))
		for _, item := range col {
			card := m.renderCard(item, widths[c], item.ID == selected.ID)
			canvas = append(canvas, strings.Split(card, "\n")...)
		}
		canvases[c] = canvas
	}

	rows := make([]string, height)
	for r := range rows {
		line := r + m.gridOffset
		var b strings.Builder
		for c, canvas := range canvases {
			cell := ""
			if line < len(canvas) {
				cell = canvas[line]
			}
			b.WriteString(padRight(cell, widths[c]))
		}
		rows[r] = b.String()
	}
	return strings.Join(rows, "\n")
}

// renderCard draws one card exactly cardHeight(item) rows tall.
func (m *Model) renderCard(item gallery.Item, width int, selected bool) string {
	style := cardStyle
	switch {
	case selected:
		style = cardSelected
	case m.gallery.IsPinned(item.ID):
		style = cardPinned
	}
	inner := max(1, width-style.GetHorizontalFrameSize())
	imageRows := cardHeight(item) - CardChromeRows

	title := truncatePlain(item.Title, inner)
	if m.gallery.IsPinned(item.ID) {
		title = pinStyle.Render("★ ") + truncatePlain(item.Title, max(0, inner-2))
	}
	if selected {
		title = titleStyle.Render(title)
	}
	lines := []string{title, mutedStyle.Render(truncatePlain(cardMeta(item), inner))}
	lines = append(lines, imagePlaceholder(item, inner, imageRows)...)

	body := padBlock(strings.Join(lines, "\n"), inner, len(lines))
	return style.Width(max(1, width-style.GetHorizontalBorderSize())).Render(body)
}

func cardMeta(item gallery.Item) string {
	parts := []string{item.Section.Label()}
	if item.Category != "" {
		parts = append(parts, item.Category)
	}
	if item.Featured {
		parts = append(parts, "featured")
	}
	return strings.Join(parts, " · ")
}

// imagePlaceholder fills a width × rows block standing in for the image,
// labelled with its aspect class in the middle row.
func imagePlaceholder(item gallery.Item, width, rows int) []string {
	if rows <= 0 || width <= 0 {
		return nil
	}
	fill := strings.Repeat("▒", width)
	out := make([]string, rows)
	for i := range out {
		out[i] = imageStyle.Render(fill)
	}
	label := " " + gallery.AspectOf(item).String() + " "
	if lipgloss.Width(label) < width {
		pad := (width - lipgloss.Width(label)) / 2
		out[rows/2] = imageStyle.Render(strings.Repeat("▒", pad)) + mutedStyle.Render(label) +
			imageStyle.Render(strings.Repeat("▒", width-pad-lipgloss.Width(label)))
	}
	return out
}
