package app

import "time"

// Layout constants define the default dimensions and spacing for the UI
const (
	// HeaderRows is the number of rows used by the section tab bar.
	HeaderRows = 1

	// FooterMinRows is the default number of rows reserved for the bottom
	// status/help area.
	FooterMinRows = 2
	// FooterMaxRows is the expanded footer height used when content does not
	// fit within FooterMinRows.
	FooterMaxRows = 3

	// CardChromeRows is the border plus the title and meta lines of a card.
	CardChromeRows = 4

	// ViewerMarginX and ViewerMarginY separate the viewer box from the
	// screen edge. Clicks in the margin land on the backdrop.
	ViewerMarginX = 2
	ViewerMarginY = 1

	// SharePanelWidth is the preferred width of the share panel.
	SharePanelWidth = 44
	// SharePanelRows is the share panel height including its border.
	SharePanelRows = 5

	// RelatedLimit caps the related items listed under a description.
	RelatedLimit = 3

	// WheelStep is how many grid lines one mouse wheel notch scrolls.
	WheelStep = 3
)

// Card image heights per aspect class, in rows.
const (
	SquareImageRows = 3
	TallImageRows   = 5
	WideImageRows   = 2
)

// Rendering constants control render caching
const (
	// RenderWidthBucket is the granularity for width-based render caching.
	// Widths are rounded down to a multiple of this value.
	RenderWidthBucket = 20
)

// Timing constants
const (
	// DownloadTimeout bounds a single image download started from the viewer.
	DownloadTimeout = 2 * time.Minute
	// ExportFileName is the default name for the HTML export.
	ExportFileName = "gallery.html"
)
