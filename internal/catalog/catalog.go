// Package catalog loads the portfolio items the gallery displays from a YAML
// catalog file and an optional directory of markdown posts.
package catalog

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/treykane/cli-gallery/internal/gallery"
	"github.com/treykane/cli-gallery/internal/logging"
)

var (
	ErrDuplicateID = errors.New("duplicate item id")
	ErrImageType   = errors.New("unsupported image type")
)

var log = logging.New("catalog")

// imageExts is the allowlist for local image files.
var imageExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
	".avif": true,
}

// Catalog is a loaded portfolio.
type Catalog struct {
	Title   string
	BaseURL string
	// Path is the catalog file the items came from. Empty for Sample.
	Path  string
	Items []gallery.Item
}

type fileFormat struct {
	Title    string         `yaml:"title"`
	BaseURL  string         `yaml:"base_url"`
	PostsDir string         `yaml:"posts_dir"`
	Items    []gallery.Item `yaml:"items"`
}

// Load reads the catalog at path along with any posts it references.
func Load(path string) (Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Catalog{}, fmt.Errorf("read catalog %s: %w", path, err)
	}

	var raw fileFormat
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return Catalog{}, fmt.Errorf("parse catalog %s: %w", path, err)
	}

	dir := filepath.Dir(path)
	items := raw.Items
	if strings.TrimSpace(raw.PostsDir) != "" {
		postsDir := resolvePath(dir, raw.PostsDir)
		posts, err := loadPosts(postsDir)
		if err != nil {
			return Catalog{}, fmt.Errorf("load posts for %s: %w", path, err)
		}
		items = append(items, posts...)
	}

	items, err = normalizeItems(items, dir)
	if err != nil {
		return Catalog{}, fmt.Errorf("catalog %s: %w", path, err)
	}

	log.Debug("loaded catalog", "path", path, "items", len(items))
	return Catalog{
		Title:   strings.TrimSpace(raw.Title),
		BaseURL: strings.TrimSpace(raw.BaseURL),
		Path:    path,
		Items:   items,
	}, nil
}

// PostsDir returns the absolute posts directory named by the catalog at
// path, or "" when it names none.
func PostsDir(path string) string {
	data, err := os.ReadFile(path)
	if err != nil {
		return ""
	}
	var raw fileFormat
	if yaml.Unmarshal(data, &raw) != nil || strings.TrimSpace(raw.PostsDir) == "" {
		return ""
	}
	return resolvePath(filepath.Dir(path), raw.PostsDir)
}

// Link returns the shareable URL of an item.
func (c Catalog) Link(item gallery.Item) string {
	base := strings.TrimRight(c.BaseURL, "/")
	return base + "/gallery/" + url.PathEscape(item.ID)
}

// WithDefaultBaseURL returns c with BaseURL set to fallback when the catalog
// file did not name one.
func (c Catalog) WithDefaultBaseURL(fallback string) Catalog {
	if strings.TrimSpace(c.BaseURL) == "" {
		c.BaseURL = fallback
	}
	return c
}

// Sections reports which sections have at least one item, in display order.
func (c Catalog) Sections() []gallery.Section {
	present := make(map[gallery.Section]bool)
	for _, item := range c.Items {
		present[item.Section] = true
	}
	out := make([]gallery.Section, 0, len(gallery.Sections))
	for _, s := range gallery.Sections {
		if present[s] {
			out = append(out, s)
		}
	}
	return out
}

// Filter returns the items in section, or every item when section is empty.
func (c Catalog) Filter(section gallery.Section) []gallery.Item {
	if section == "" {
		return append([]gallery.Item(nil), c.Items...)
	}
	out := make([]gallery.Item, 0, len(c.Items))
	for _, item := range c.Items {
		if item.Section == section {
			out = append(out, item)
		}
	}
	return out
}

func normalizeItems(items []gallery.Item, dir string) ([]gallery.Item, error) {
	seen := make(map[string]bool, len(items))
	out := make([]gallery.Item, 0, len(items))
	for _, item := range items {
		item.ID = strings.TrimSpace(item.ID)
		if item.ID == "" {
			item.ID = uuid.NewString()
		}
		if seen[item.ID] {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateID, item.ID)
		}
		seen[item.ID] = true

		item.Title = strings.TrimSpace(item.Title)
		if item.Title == "" {
			item.Title = item.ID
		}
		item.Section = gallery.ParseSection(string(item.Section))
		item.Tags = normalizeTags(item.Tags)

		image, err := resolveImage(dir, item.Image)
		if err != nil {
			return nil, fmt.Errorf("item %q: %w", item.ID, err)
		}
		item.Image = image
		out = append(out, item)
	}
	return out, nil
}

// IsRemote reports whether image is an http(s) URL.
func IsRemote(image string) bool {
	u, err := url.Parse(image)
	if err != nil {
		return false
	}
	return u.Scheme == "http" || u.Scheme == "https"
}

func resolveImage(dir, image string) (string, error) {
	image = strings.TrimSpace(image)
	if image == "" || IsRemote(image) {
		return image, nil
	}
	ext := strings.ToLower(filepath.Ext(image))
	if !imageExts[ext] {
		return "", fmt.Errorf("%w: %q", ErrImageType, image)
	}
	return resolvePath(dir, image), nil
}

func resolvePath(dir, path string) string {
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	return filepath.Join(dir, path)
}

func loadPosts(dir string) ([]gallery.Item, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), ".md") {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)

	items := make([]gallery.Item, 0, len(names))
	for _, name := range names {
		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			return nil, err
		}
		meta, body, err := parseFrontmatterAndBody(string(data))
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		items = append(items, meta.item(strings.TrimSuffix(name, filepath.Ext(name)), body))
	}
	return items, nil
}

func normalizeTags(values []string) []string {
	if len(values) == 0 {
		return nil
	}
	seen := map[string]bool{}
	out := make([]string, 0, len(values))
	for _, value := range values {
		tag := strings.ToLower(strings.TrimSpace(value))
		if tag == "" || seen[tag] {
			continue
		}
		seen[tag] = true
		out = append(out, tag)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
