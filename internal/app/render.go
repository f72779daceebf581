// render.go renders item descriptions for the viewer pane.
//
// Descriptions are markdown and go through Glamour. Two caches keep this
// cheap while paging through the viewer:
//
//   - Glamour TermRenderer instances are kept per width bucket in a small
//     LRU, since building one parses the whole style sheet.
//   - Rendered descriptions are kept per item id and width bucket, so
//     flipping back and forth between neighbours never re-renders.
//
// Widths are rounded down to a multiple of RenderWidthBucket, so small
// resizes reuse existing renders.
//
// The style comes from CLI_GALLERY_GLAMOUR_STYLE, then GLAMOUR_STYLE, then
// "dark". "auto" asks Glamour to detect the terminal background.
package app

import (
	"container/list"
	"os"
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
)

type descriptionKey struct {
	id    string
	width int
}

var (
	// maxRendererCacheEntries bounds the number of width-specific Glamour
	// renderers retained in memory.
	maxRendererCacheEntries = 8

	rendererCacheMu    sync.Mutex
	rendererCache      = map[int]*glamour.TermRenderer{}
	rendererCacheOrder = list.New()
	rendererCacheNodes = map[int]*list.Element{}
)

// syncViewerPane sizes the viewer viewport and loads the open item's
// description when the item or the width bucket changed since the last call.
func (m *Model) syncViewerPane() {
	state := m.gallery.Viewer().State()
	if !state.Open {
		m.paneKey = descriptionKey{}
		return
	}
	geo := calculateViewerGeometry(m.width, m.calculateLayout().ContentRows)
	m.viewport.Width = geo.Inner.W
	m.viewport.Height = m.descriptionHeight(geo)
	width := renderWidthBucket(geo.Inner.W)
	key := descriptionKey{id: state.Current.ID, width: width}
	if key == m.paneKey {
		return
	}
	m.paneKey = key
	m.viewport.SetContent(m.describe(state.Current.ID, state.Current.Description, width))
	m.viewport.GotoTop()
}

// describe returns the rendered description for an item, from cache when
// possible.
func (m *Model) describe(id, markdown string, width int) string {
	key := descriptionKey{id: id, width: width}
	if out, ok := m.descriptions[key]; ok {
		return out
	}
	out := renderMarkdown(markdown, width)
	m.descriptions[key] = out
	return out
}

// invalidateDescriptions drops rendered descriptions, e.g. after a catalog
// reload changed item text.
func (m *Model) invalidateDescriptions() {
	m.descriptions = map[descriptionKey]string{}
	m.paneKey = descriptionKey{}
}

// renderMarkdown converts markdown to ANSI text. If Glamour fails the raw
// markdown is returned so the user still sees the content.
func renderMarkdown(content string, width int) string {
	if strings.TrimSpace(content) == "" {
		return mutedStyle.Render("No description.")
	}
	if width <= 0 {
		width = 80
	}
	renderer, err := getRenderer(width)
	if err != nil {
		appLog.Error("create markdown renderer", "width", width, "error", err)
		return content
	}
	out, err := renderer.Render(content)
	if err != nil {
		appLog.Error("render markdown content", "width", width, "error", err)
		return content
	}
	return strings.Trim(out, "\n")
}

// getRenderer returns a cached Glamour renderer for width, creating one and
// evicting the least recently used when the cache is full.
func getRenderer(width int) (*glamour.TermRenderer, error) {
	rendererCacheMu.Lock()
	defer rendererCacheMu.Unlock()
	if renderer, ok := rendererCache[width]; ok {
		if node, ok := rendererCacheNodes[width]; ok {
			rendererCacheOrder.MoveToBack(node)
		}
		return renderer, nil
	}
	renderer, err := glamour.NewTermRenderer(
		glamourStyleOption(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil, err
	}
	rendererCache[width] = renderer
	rendererCacheNodes[width] = rendererCacheOrder.PushBack(width)
	for len(rendererCache) > maxRendererCacheEntries && rendererCacheOrder.Len() > 0 {
		oldest := rendererCacheOrder.Front()
		w, _ := oldest.Value.(int)
		rendererCacheOrder.Remove(oldest)
		delete(rendererCache, w)
		delete(rendererCacheNodes, w)
	}
	return renderer, nil
}

func resetRendererCacheForTests() {
	rendererCacheMu.Lock()
	defer rendererCacheMu.Unlock()
	rendererCache = map[int]*glamour.TermRenderer{}
	rendererCacheOrder = list.New()
	rendererCacheNodes = map[int]*list.Element{}
}

func glamourStyleOption() glamour.TermRendererOption {
	style := strings.ToLower(strings.TrimSpace(os.Getenv("CLI_GALLERY_GLAMOUR_STYLE")))
	if style == "" {
		style = strings.ToLower(strings.TrimSpace(os.Getenv("GLAMOUR_STYLE")))
	}
	switch style {
	case "auto":
		return glamour.WithAutoStyle()
	case "dark", "light", "notty":
		return glamour.WithStandardStyle(style)
	default:
		return glamour.WithStandardStyle("dark")
	}
}
