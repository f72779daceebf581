package app

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"
)

// truncate fits a string to the given terminal width.
func truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if lipgloss.Width(s) <= width {
		return s
	}
	return ansi.Truncate(s, width, "")
}

// truncatePlain shortens unstyled text to width cells with an ellipsis.
func truncatePlain(s string, width int) string {
	if width <= 0 {
		return ""
	}
	return runewidth.Truncate(s, width, "…")
}

// padRight pads a (possibly styled) line with spaces to exactly width cells.
func padRight(line string, width int) string {
	line = truncate(line, width)
	if visible := lipgloss.Width(line); visible < width {
		line += strings.Repeat(" ", width-visible)
	}
	return line
}

// padBlock normalizes content to a fixed width and height so old UI text is cleared.
func padBlock(content string, width, height int) string {
	if width <= 0 || height <= 0 {
		return ""
	}

	lines := strings.Split(content, "\n")
	if len(lines) > height {
		lines = lines[:height]
	}
	for i, line := range lines {
		lines[i] = padRight(line, width)
	}
	for len(lines) < height {
		lines = append(lines, strings.Repeat(" ", width))
	}
	return strings.Join(lines, "\n")
}

// overlayRight draws panel flush against the right edge of base, starting
// at row top. base lines are fitted to width first.
func overlayRight(base, panel []string, top, width int) []string {
	out := append([]string(nil), base...)
	for i, p := range panel {
		row := top + i
		if row < 0 || row >= len(out) {
			continue
		}
		left := max(0, width-lipgloss.Width(p))
		out[row] = padRight(out[row], left) + p
	}
	return out
}

// clamp bounds a value between minVal and maxVal.
func clamp(value, minVal, maxVal int) int {
	if value < minVal {
		return minVal
	}
	if value > maxVal {
		return maxVal
	}
	return value
}

// renderWidthBucket buckets widths so the cache is more reusable.
func renderWidthBucket(width int) int {
	if width <= 0 {
		return 80
	}
	if width < RenderWidthBucket {
		return width
	}
	return (width / RenderWidthBucket) * RenderWidthBucket
}
