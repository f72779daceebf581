package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestLoadReturnsErrNotConfiguredWhenMissing(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	_, err := Load()
	if !errors.Is(err, ErrNotConfigured) {
		t.Fatalf("expected ErrNotConfigured, got %v", err)
	}
}

func TestLoadOrDefaultFallsBack(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	cfg, err := LoadOrDefault()
	if err != nil {
		t.Fatalf("load or default: %v", err)
	}
	if cfg.PageSize != DefaultPageSize {
		t.Fatalf("expected default page size %d, got %d", DefaultPageSize, cfg.PageSize)
	}
	if cfg.Breakpoints != DefaultBreakpoints() {
		t.Fatalf("expected default breakpoints, got %+v", cfg.Breakpoints)
	}
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	cfg := Config{
		Catalog:     "~/portfolio/catalog.yaml",
		DownloadDir: "~/pics",
		Keybindings: map[string]string{"gallery.pin.toggle": "P"},
	}
	if err := Save(cfg); err != nil {
		t.Fatalf("save config: %v", err)
	}

	exists, err := Exists()
	if err != nil {
		t.Fatalf("exists: %v", err)
	}
	if !exists {
		t.Fatal("expected config file to exist")
	}

	loaded, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}

	if want := filepath.Join(home, "portfolio", "catalog.yaml"); loaded.Catalog != want {
		t.Fatalf("expected catalog %q, got %q", want, loaded.Catalog)
	}
	if want := filepath.Join(home, "pics"); loaded.DownloadDir != want {
		t.Fatalf("expected download dir %q, got %q", want, loaded.DownloadDir)
	}
	if loaded.PageSize != DefaultPageSize {
		t.Fatalf("expected default page size, got %d", loaded.PageSize)
	}
	if loaded.Keybindings["gallery.pin.toggle"] != "P" {
		t.Fatalf("expected keybinding override to survive, got %v", loaded.Keybindings)
	}

	path, err := ConfigPath()
	if err != nil {
		t.Fatalf("config path: %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat config path: %v", err)
	}
	if info.Mode().Perm() != 0o600 {
		t.Fatalf("expected 0600 config file, got %v", info.Mode().Perm())
	}
}

func TestLoadRejectsBadJSON(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	path, _ := ConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte("{nope"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := Load(); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{name: "defaults", mutate: func(*Config) {}},
		{name: "zero page size", mutate: func(c *Config) { c.PageSize = 0 }, wantErr: true},
		{name: "unordered breakpoints", mutate: func(c *Config) { c.Breakpoints = Breakpoints{Narrow: 50, Medium: 40, Wide: 120} }, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestColumnsForWidth(t *testing.T) {
	b := DefaultBreakpoints()
	tests := []struct {
		width int
		want  int
	}{
		{width: 0, want: 1},
		{width: 39, want: 1},
		{width: 40, want: 2},
		{width: 79, want: 2},
		{width: 80, want: 3},
		{width: 119, want: 3},
		{width: 120, want: 4},
		{width: 300, want: 4},
	}
	for _, tt := range tests {
		if got := b.ColumnsForWidth(tt.width); got != tt.want {
			t.Fatalf("ColumnsForWidth(%d) = %d, want %d", tt.width, got, tt.want)
		}
	}
}

func TestNormalizePathExpandsHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	got, err := NormalizePath(" ~/a/../b ")
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if want := filepath.Join(home, "b"); got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
	if _, err := NormalizePath("  "); err == nil {
		t.Fatal("expected error for empty path")
	}
}
