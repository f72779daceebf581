package app

import (
	"testing"

	"github.com/treykane/cli-gallery/internal/config"
)

func TestDefaultKeysResolvePerLayer(t *testing.T) {
	m := &Model{}
	m.loadKeybindings(config.Config{})

	grid := map[string]string{
		"up":        actionCursorUp,
		"k":         actionCursorUp,
		"right":     actionCursorRight,
		"G":         actionJumpBottom,
		"enter":     actionOpen,
		" ":         actionOpen,
		"tab":       actionNextSection,
		"shift+tab": actionPrevSection,
		"t":         actionPin,
		"x":         actionHide,
		"q":         actionQuit,
		"z":         "",
	}
	for key, want := range grid {
		if got := m.gridActionForKey(key); got != want {
			t.Fatalf("gridActionForKey(%q) = %q, want %q", key, got, want)
		}
	}

	viewer := map[string]string{
		"esc":   actionViewerClose,
		"q":     actionViewerClose,
		"right": actionViewerNext,
		"h":     actionViewerPrevious,
		"z":     actionViewerZoom,
		"c":     actionViewerCopy,
		"t":     actionPin,
		"down":  actionViewerScrollDn,
		"enter": "",
	}
	for key, want := range viewer {
		if got := m.viewerActionForKey(key); got != want {
			t.Fatalf("viewerActionForKey(%q) = %q, want %q", key, got, want)
		}
	}
}

func TestKeybindingOverrideReplacesDefaults(t *testing.T) {
	m := &Model{}
	m.loadKeybindings(config.Config{
		Keybindings: map[string]string{
			actionViewerZoom: "Z",
			actionPin:        "p",
			"not.an.action":  "y",
		},
	})

	if got := m.viewerActionForKey("shift+z"); got != actionViewerZoom {
		t.Fatalf("expected Z override to map to zoom, got %q", got)
	}
	if got := m.viewerActionForKey("z"); got != "" {
		t.Fatalf("expected default z to be replaced, got %q", got)
	}
	if got := m.gridActionForKey("p"); got != actionPin {
		t.Fatalf("expected pin override in grid table, got %q", got)
	}
	if got := m.gridActionForKey("y"); got != "" {
		t.Fatalf("expected unknown action to be ignored, got %q", got)
	}
	if got := m.primaryActionKey(actionViewerZoom, "z"); got != "Shift+z" {
		t.Fatalf("unexpected label %q", got)
	}
}

func TestKeybindingConflictKeepsFirstActionAlphabetically(t *testing.T) {
	m := &Model{}
	m.loadKeybindings(config.Config{
		Keybindings: map[string]string{
			actionExport: "t",
		},
	})
	// gallery.export sorts before item.pin.toggle.
	if got := m.gridActionForKey("t"); got != actionExport {
		t.Fatalf("expected conflict to resolve to %q, got %q", actionExport, got)
	}
}

func TestNormalizeKeyString(t *testing.T) {
	cases := map[string]string{
		"Ctrl+P": "ctrl+p",
		" G ":    "shift+g",
		" ":      "space",
		"":       "",
		"enter":  "enter",
	}
	for in, want := range cases {
		if got := normalizeKeyString(in); got != want {
			t.Fatalf("normalizeKeyString(%q) = %q, want %q", in, got, want)
		}
	}
}
