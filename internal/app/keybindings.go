package app

import (
	"slices"
	"strings"

	"github.com/treykane/cli-gallery/internal/config"
)

// Action identifiers. A key press is looked up in gridKeys or viewerKeys and the
// resulting action is dispatched by handleGridKey or handleViewerKey.
// Defaults live in defaultActionKeys; the "keybindings" object in
// ~/.cli-gallery/config.json overrides them per action.
const (
	actionCursorUp    = "grid.cursor.up"
	actionCursorDown  = "grid.cursor.down"
	actionCursorLeft  = "grid.cursor.left"
	actionCursorRight = "grid.cursor.right"
	actionJumpTop     = "grid.jump.top"
	actionJumpBottom  = "grid.jump.bottom"
	actionOpen        = "grid.open"
	actionNextSection = "section.next"
	actionPrevSection = "section.previous"
	actionLoadMore    = "grid.load_more"

	// actionPin and actionHide apply to the grid selection, or to the open
	// item while the viewer is showing.
	actionPin  = "item.pin.toggle"
	actionHide = "item.hide"

	actionViewerClose    = "viewer.close"
	actionViewerPrevious = "viewer.previous"
	actionViewerNext     = "viewer.next"
	actionViewerZoom     = "viewer.zoom.toggle"
	actionViewerShare    = "viewer.share.toggle"
	actionViewerCopy     = "viewer.copy_link"
	actionViewerDownload = "viewer.download"
	actionViewerScrollUp = "viewer.scroll.up"
	actionViewerScrollDn = "viewer.scroll.down"

	actionExport = "gallery.export"
	actionHelp   = "help.toggle"
	actionQuit   = "app.quit"
)

// defaultActionKeys maps each action to its factory-default keys, in Bubble
// Tea notation ("ctrl+", "shift+", "enter", "esc", single characters).
// Grid and viewer actions may share keys because only one of the two
// handlers is active at a time.
var defaultActionKeys = map[string][]string{
	actionCursorUp:       {"up", "k"},
	actionCursorDown:     {"down", "j"},
	actionCursorLeft:     {"left", "h"},
	actionCursorRight:    {"right", "l"},
	actionJumpTop:        {"g", "home"},
	actionJumpBottom:     {"shift+g", "end"},
	actionOpen:           {"enter", "space"},
	actionNextSection:    {"tab"},
	actionPrevSection:    {"shift+tab"},
	actionLoadMore:       {"m"},
	actionPin:            {"t"},
	actionHide:           {"x"},
	actionViewerClose:    {"esc", "q"},
	actionViewerPrevious: {"left", "h"},
	actionViewerNext:     {"right", "l"},
	actionViewerZoom:     {"z"},
	actionViewerShare:    {"s"},
	actionViewerCopy:     {"c"},
	actionViewerDownload: {"d"},
	actionViewerScrollUp: {"up", "k"},
	actionViewerScrollDn: {"down", "j"},
	actionExport:         {"e"},
	actionHelp:           {"?"},
	actionQuit:           {"q", "ctrl+c"},
}

// viewerActions are resolved against the viewer key table; everything else
// against the grid table.
var viewerActions = map[string]bool{
	actionViewerClose:    true,
	actionViewerPrevious: true,
	actionViewerNext:     true,
	actionViewerZoom:     true,
	actionViewerShare:    true,
	actionViewerCopy:     true,
	actionViewerDownload: true,
	actionViewerScrollUp: true,
	actionViewerScrollDn: true,
	actionPin:            true,
	actionHide:           true,
	actionHelp:           true,
}

// isGridAction reports whether action belongs in the grid key table. Pin,
// hide and help work in both tables.
func isGridAction(action string) bool {
	if action == actionPin || action == actionHide || action == actionHelp {
		return true
	}
	return !viewerActions[action]
}

// loadKeybindings builds both lookup tables from the defaults and the
// config overrides. An override replaces the action's full default key set.
func (m *Model) loadKeybindings(cfg config.Config) {
	m.keyForAction = map[string][]string{}
	for action, keys := range defaultActionKeys {
		m.keyForAction[action] = append([]string(nil), keys...)
	}
	for action, key := range cfg.Keybindings {
		m.applyKeybindingOverride(action, key)
	}
	m.gridKeys = m.buildActionKeyIndex(isGridAction)
	m.viewerKeys = m.buildActionKeyIndex(func(action string) bool { return viewerActions[action] })
}

func (m *Model) applyKeybindingOverride(action, key string) {
	action = strings.TrimSpace(action)
	key = normalizeKeyString(key)
	if action == "" || key == "" {
		return
	}
	if _, ok := defaultActionKeys[action]; !ok {
		appLog.Warn("ignore unknown keybinding action", "action", action)
		return
	}
	m.keyForAction[action] = []string{key}
}

// buildActionKeyIndex constructs a key → action table for the actions
// accepted by include. Conflicts are logged; the alphabetically first action
// keeps the key so startup is deterministic.
func (m *Model) buildActionKeyIndex(include func(string) bool) map[string]string {
	actions := make([]string, 0, len(m.keyForAction))
	for action := range m.keyForAction {
		if include(action) {
			actions = append(actions, action)
		}
	}
	slices.Sort(actions)

	index := map[string]string{}
	for _, action := range actions {
		for _, key := range m.keyForAction[action] {
			if key == "" {
				continue
			}
			if existing, ok := index[key]; ok && existing != action {
				appLog.Warn("keybinding conflict ignored", "key", key, "action", action, "existing_action", existing)
				continue
			}
			index[key] = action
		}
	}
	return index
}

// normalizeKeyString converts a user-provided key string into the canonical
// lowercase form Bubble Tea reports. A single uppercase letter becomes
// "shift+<letter>" so "G" and "shift+g" are equivalent in config files.
//
//	normalizeKeyString("Ctrl+P")  → "ctrl+p"
//	normalizeKeyString(" G ")     → "shift+g"
//	normalizeKeyString(" ")       → "space"
func normalizeKeyString(key string) string {
	if key == " " {
		return "space"
	}
	key = strings.TrimSpace(key)
	if key == "" {
		return ""
	}
	if len([]rune(key)) == 1 && strings.ToUpper(key) == key && strings.ToLower(key) != key {
		return "shift+" + strings.ToLower(key)
	}
	return strings.ToLower(key)
}

func (m *Model) gridActionForKey(key string) string {
	return m.gridKeys[normalizeKeyString(key)]
}

func (m *Model) viewerActionForKey(key string) string {
	return m.viewerKeys[normalizeKeyString(key)]
}

func (m *Model) actionKeyLabels(action string) []string {
	keys, ok := m.keyForAction[action]
	if !ok || len(keys) == 0 {
		return nil
	}
	labels := make([]string, 0, len(keys))
	for _, key := range keys {
		label := humanizeKeyLabel(key)
		if label == "" || slices.Contains(labels, label) {
			continue
		}
		labels = append(labels, label)
	}
	return labels
}

func (m *Model) primaryActionKey(action, fallback string) string {
	keys := m.actionKeyLabels(action)
	if len(keys) == 0 {
		return fallback
	}
	return keys[0]
}

func (m *Model) allActionKeys(action, fallback string) string {
	keys := m.actionKeyLabels(action)
	if len(keys) == 0 {
		return fallback
	}
	return strings.Join(keys, "/")
}

func humanizeKeyLabel(key string) string {
	normalized := normalizeKeyString(key)
	if normalized == "" {
		return ""
	}
	special := map[string]string{
		"up":     "↑",
		"down":   "↓",
		"left":   "←",
		"right":  "→",
		"enter":  "Enter",
		"esc":    "Esc",
		"tab":    "Tab",
		"home":   "Home",
		"end":    "End",
		"pgup":   "PgUp",
		"pgdown": "PgDn",
		"space":  "Space",
	}
	parts := strings.Split(normalized, "+")
	for i, part := range parts {
		switch part {
		case "ctrl":
			parts[i] = "Ctrl"
		case "alt":
			parts[i] = "Alt"
		case "shift":
			parts[i] = "Shift"
		default:
			if label, ok := special[part]; ok {
				parts[i] = label
				continue
			}
			runes := []rune(part)
			if len(runes) == 1 {
				parts[i] = part
			} else {
				parts[i] = strings.ToUpper(part[:1]) + part[1:]
			}
		}
	}
	return strings.Join(parts, "+")
}
