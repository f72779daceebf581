// layout.go centralizes the terminal geometry for the gallery screen.
//
// The screen is a one-row section tab bar, the masonry grid, and a two or
// three row footer. The grid is split into equal-width columns; cards are
// stacked inside each column with heights taken from their aspect class, so
// columns end at different rows exactly like a CSS masonry layout.
//
// The same placements drive rendering, scrolling and mouse hit testing, so
// they are computed in one place and never derived from rendered strings.
package app

import (
	"github.com/treykane/cli-gallery/internal/gallery"
)

// LayoutDimensions holds the calculated regions of the screen.
type LayoutDimensions struct {
	GridTop     int // first screen row of the grid
	GridHeight  int // rows available to the grid
	ContentRows int // rows above the footer (tab bar + grid)
	ColumnWidth int // width of every grid column but the last
}

// cardPlacement locates one card in grid coordinates (row 0 is the top of
// the unscrolled grid).
type cardPlacement struct {
	ID       string
	Col, Row int
	X, Y     int
	W, H     int
}

func (p cardPlacement) contains(x, y int) bool {
	return x >= p.X && x < p.X+p.W && y >= p.Y && y < p.Y+p.H
}

// viewerGeometry holds the screen rectangles of the open viewer.
type viewerGeometry struct {
	Box   gallery.Rect // outer viewer box including border
	Inner gallery.Rect // content area inside border and padding
	Share gallery.Rect // share panel, only meaningful while it is open
}

// calculateLayout computes the screen regions for the current size.
func (m *Model) calculateLayout() LayoutDimensions {
	contentRows := max(0, m.height-m.footerHeightForWidth(m.width))
	columns := max(1, m.gallery.ColumnCount())
	return LayoutDimensions{
		GridTop:     HeaderRows,
		GridHeight:  max(0, contentRows-HeaderRows),
		ContentRows: contentRows,
		ColumnWidth: max(1, m.width/columns),
	}
}

// footerHeightForWidth prefers FooterMinRows and expands to FooterMaxRows
// when the footer segments cannot fit.
func (m *Model) footerHeightForWidth(width int) int {
	_, fit := m.buildStatusRows(width, FooterMinRows)
	if fit {
		return FooterMinRows
	}
	return FooterMaxRows
}

// cardHeight is the full height of an item's card including its border.
func cardHeight(item gallery.Item) int {
	switch gallery.AspectOf(item) {
	case gallery.AspectTall:
		return CardChromeRows + TallImageRows
	case gallery.AspectWide:
		return CardChromeRows + WideImageRows
	default:
		return CardChromeRows + SquareImageRows
	}
}

// placeCards stacks each column's cards top to bottom. The last column
// absorbs the remainder of width.
func placeCards(columns gallery.Columns, width int) []cardPlacement {
	widths := columnWidths(len(columns), width)
	out := make([]cardPlacement, 0, 16)
	x := 0
	for c, col := range columns {
		w := widths[c]
		y := 0
		for r, item := range col {
			h := cardHeight(item)
			out = append(out, cardPlacement{ID: item.ID, Col: c, Row: r, X: x, Y: y, W: w, H: h})
			y += h
		}
		x += w
	}
	return out
}

// columnWidths splits width into n columns; the last one absorbs the
// remainder.
func columnWidths(n, width int) []int {
	n = max(1, n)
	base := max(1, width/n)
	out := make([]int, n)
	for i := range out {
		out[i] = base
	}
	out[n-1] = max(1, width-base*(n-1))
	return out
}

// gridContentHeight is the height of the tallest column.
func gridContentHeight(placements []cardPlacement) int {
	bottom := 0
	for _, p := range placements {
		bottom = max(bottom, p.Y+p.H)
	}
	return bottom
}

func findPlacement(placements []cardPlacement, col, row int) (cardPlacement, bool) {
	for _, p := range placements {
		if p.Col == col && p.Row == row {
			return p, true
		}
	}
	return cardPlacement{}, false
}

// hitCard returns the card under grid coordinates (x, y).
func hitCard(placements []cardPlacement, x, y int) (cardPlacement, bool) {
	for _, p := range placements {
		if p.contains(x, y) {
			return p, true
		}
	}
	return cardPlacement{}, false
}

// calculateViewerGeometry places the viewer box inside the content rows,
// leaving a margin of backdrop on every side, and pins the share panel to
// the top right of the inner area below the header lines.
func calculateViewerGeometry(width, contentRows int) viewerGeometry {
	box := gallery.Rect{
		X: ViewerMarginX,
		Y: ViewerMarginY,
		W: max(0, width-2*ViewerMarginX),
		H: max(0, contentRows-2*ViewerMarginY),
	}
	inner := gallery.Rect{
		X: box.X + viewerStyle.GetBorderLeftSize() + viewerStyle.GetPaddingLeft(),
		Y: box.Y + viewerStyle.GetBorderTopSize(),
		W: max(0, box.W-viewerStyle.GetHorizontalFrameSize()),
		H: max(0, box.H-viewerStyle.GetVerticalFrameSize()),
	}
	shareW := min(SharePanelWidth, inner.W)
	share := gallery.Rect{
		X: inner.X + inner.W - shareW,
		Y: inner.Y + 2,
		W: shareW,
		H: min(SharePanelRows, max(0, inner.H-2)),
	}
	return viewerGeometry{Box: box, Inner: inner, Share: share}
}

// applyViewerRegions hands the current viewer rectangles to the controller
// so pointer events resolve against what is on screen.
func (m *Model) applyViewerRegions() {
	geo := calculateViewerGeometry(m.width, m.calculateLayout().ContentRows)
	m.gallery.Viewer().SetRegions(geo.Box, geo.Share)
}
