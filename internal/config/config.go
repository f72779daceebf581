package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/treykane/cli-gallery/internal/logging"
)

const (
	configDirName  = ".cli-gallery"
	configFileName = "config.json"

	// DefaultPageSize is how many items the gallery reveals per page.
	DefaultPageSize = 24
)

var ErrNotConfigured = errors.New("cli-gallery is not configured")

var log = logging.New("config")

// Breakpoints map terminal width to a column count: below Narrow one column,
// below Medium two, below Wide three, otherwise four.
type Breakpoints struct {
	Narrow int `json:"narrow"`
	Medium int `json:"medium"`
	Wide   int `json:"wide"`
}

// Config stores user-defined CLI Gallery settings.
type Config struct {
	// Catalog is the YAML catalog file. Empty means the built-in sample.
	Catalog     string            `json:"catalog,omitempty"`
	DownloadDir string            `json:"download_dir,omitempty"`
	BaseURL     string            `json:"base_url,omitempty"`
	PageSize    int               `json:"page_size,omitempty"`
	Breakpoints Breakpoints       `json:"breakpoints"`
	LogLevel    string            `json:"log_level,omitempty"`
	LogFile     string            `json:"log_file,omitempty"`
	Keybindings map[string]string `json:"keybindings,omitempty"`
}

// DefaultBreakpoints returns the stock width thresholds.
func DefaultBreakpoints() Breakpoints {
	return Breakpoints{Narrow: 40, Medium: 80, Wide: 120}
}

// Default returns a configuration with default values.
func Default() Config {
	return Config{
		DownloadDir: defaultDownloadDir(),
		PageSize:    DefaultPageSize,
		Breakpoints: DefaultBreakpoints(),
		LogLevel:    "info",
	}
}

func defaultDownloadDir() string {
	home, err := os.UserHomeDir()
	if err != nil || strings.TrimSpace(home) == "" {
		return "downloads"
	}
	return filepath.Join(home, "Downloads")
}

// ConfigPath returns the configuration file path.
func ConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, configDirName, configFileName), nil
}

// DefaultLogPath returns the log file used when the TUI runs.
func DefaultLogPath() string {
	home, err := os.UserHomeDir()
	if err != nil || strings.TrimSpace(home) == "" {
		return filepath.Join(configDirName, "logs", "gallery.log")
	}
	return filepath.Join(home, configDirName, "logs", "gallery.log")
}

// Exists reports whether the config file exists.
func Exists() (bool, error) {
	path, err := ConfigPath()
	if err != nil {
		return false, err
	}
	_, err = os.Stat(path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	return false, err
}

// Load reads and validates the saved configuration. Zero-valued fields are
// filled from Default.
func Load() (Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return Config{}, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Config{}, ErrNotConfigured
		}
		return Config{}, err
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	cfg = withDefaults(cfg)

	if err := cfg.normalize(); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadOrDefault returns the saved configuration, or Default when no config
// file exists yet.
func LoadOrDefault() (Config, error) {
	cfg, err := Load()
	if errors.Is(err, ErrNotConfigured) {
		log.Debug("no config file, using defaults")
		return Default(), nil
	}
	return cfg, err
}

// Save writes configuration to disk.
func Save(cfg Config) error {
	cfg = withDefaults(cfg)
	if err := cfg.normalize(); err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	path, err := ConfigPath()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return err
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')

	return os.WriteFile(path, data, 0o600)
}

// Validate checks value ranges.
func (c Config) Validate() error {
	if c.PageSize < 1 {
		return fmt.Errorf("page_size must be positive, got %d", c.PageSize)
	}
	b := c.Breakpoints
	if b.Narrow < 1 || b.Narrow >= b.Medium || b.Medium >= b.Wide {
		return fmt.Errorf("breakpoints must satisfy 0 < narrow < medium < wide, got %d/%d/%d", b.Narrow, b.Medium, b.Wide)
	}
	return nil
}

// ColumnsForWidth maps a terminal width to a column count using the
// configured breakpoints.
func (b Breakpoints) ColumnsForWidth(width int) int {
	switch {
	case width < b.Narrow:
		return 1
	case width < b.Medium:
		return 2
	case width < b.Wide:
		return 3
	default:
		return 4
	}
}

func withDefaults(cfg Config) Config {
	def := Default()
	if cfg.PageSize == 0 {
		cfg.PageSize = def.PageSize
	}
	if cfg.Breakpoints == (Breakpoints{}) {
		cfg.Breakpoints = def.Breakpoints
	}
	if strings.TrimSpace(cfg.DownloadDir) == "" {
		cfg.DownloadDir = def.DownloadDir
	}
	if strings.TrimSpace(cfg.LogLevel) == "" {
		cfg.LogLevel = def.LogLevel
	}
	return cfg
}

func (c *Config) normalize() error {
	if strings.TrimSpace(c.Catalog) != "" {
		path, err := NormalizePath(c.Catalog)
		if err != nil {
			return fmt.Errorf("invalid catalog: %w", err)
		}
		c.Catalog = path
	}
	dir, err := NormalizePath(c.DownloadDir)
	if err != nil {
		return fmt.Errorf("invalid download_dir: %w", err)
	}
	c.DownloadDir = dir
	if strings.TrimSpace(c.LogFile) != "" {
		path, err := NormalizePath(c.LogFile)
		if err != nil {
			return fmt.Errorf("invalid log_file: %w", err)
		}
		c.LogFile = path
	}
	return nil
}

// NormalizePath expands and normalizes a user-supplied path.
func NormalizePath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", errors.New("path is required")
	}

	expanded, err := expandHome(trimmed)
	if err != nil {
		return "", err
	}

	abs, err := filepath.Abs(expanded)
	if err != nil {
		return "", err
	}

	return filepath.Clean(abs), nil
}

func expandHome(path string) (string, error) {
	if path == "~" {
		return os.UserHomeDir()
	}
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, strings.TrimPrefix(path, "~/")), nil
	}
	return path, nil
}
