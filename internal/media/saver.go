// Package media downloads gallery images to local disk.
package media

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strconv"
	"strings"
	"unicode"

	"github.com/treykane/cli-gallery/internal/catalog"
	"github.com/treykane/cli-gallery/internal/gallery"
	"github.com/treykane/cli-gallery/internal/logging"
)

const (
	dirPermissions  = 0o755
	filePermissions = 0o644
	partSuffix      = ".part"
	defaultExt      = ".jpg"
	userAgent       = "cli-gallery"
)

var ErrNoImage = errors.New("item has no image")

var log = logging.New("media")

// Saver copies item images into Dir. A download is staged in a hidden
// ".part" file and only renamed into place once fully written and synced,
// so an interrupted save never leaves a truncated image behind.
type Saver struct {
	Dir    string
	Client *http.Client
}

// Save implements gallery.Saver and returns the final file path.
func (s *Saver) Save(ctx context.Context, item gallery.Item) (string, error) {
	image := strings.TrimSpace(item.Image)
	if image == "" {
		return "", fmt.Errorf("%w: %s", ErrNoImage, item.ID)
	}
	if err := os.MkdirAll(s.Dir, dirPermissions); err != nil {
		return "", fmt.Errorf("create download dir: %w", err)
	}

	src, err := s.open(ctx, image)
	if err != nil {
		return "", fmt.Errorf("fetch %s: %w", item.ID, err)
	}
	defer src.Close()

	tmp, err := os.CreateTemp(s.Dir, ".gallery-*"+partSuffix)
	if err != nil {
		return "", fmt.Errorf("stage %s: %w", item.ID, err)
	}
	tmpPath := tmp.Name()
	committed := false
	defer func() {
		if !committed {
			_ = os.Remove(tmpPath)
		}
	}()

	if _, err := io.Copy(tmp, src); err != nil {
		tmp.Close()
		return "", fmt.Errorf("write %s: %w", item.ID, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return "", fmt.Errorf("sync %s: %w", item.ID, err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("close %s: %w", item.ID, err)
	}

	final, err := claimPath(s.Dir, FileBase(item), imageExt(image))
	if err != nil {
		return "", fmt.Errorf("name %s: %w", item.ID, err)
	}
	if err := os.Rename(tmpPath, final); err != nil {
		_ = os.Remove(final)
		return "", fmt.Errorf("commit %s: %w", item.ID, err)
	}
	committed = true
	log.Info("saved image", "id", item.ID, "path", final)
	return final, nil
}

func (s *Saver) open(ctx context.Context, image string) (io.ReadCloser, error) {
	if !catalog.IsRemote(image) {
		return os.Open(image)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, image, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)
	client := s.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("unexpected status %s", resp.Status)
	}
	return resp.Body, nil
}

// FileBase derives a filesystem-safe base name from the item title, falling
// back to its id.
func FileBase(item gallery.Item) string {
	if slug := slugify(item.Title); slug != "" {
		return slug
	}
	if slug := slugify(item.ID); slug != "" {
		return slug
	}
	return "image"
}

func slugify(value string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(strings.TrimSpace(value)) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			dash = false
			continue
		}
		if !dash && b.Len() > 0 {
			b.WriteByte('-')
			dash = true
		}
	}
	return strings.TrimRight(b.String(), "-")
}

func imageExt(image string) string {
	p := image
	if u, err := url.Parse(image); err == nil && catalog.IsRemote(image) {
		p = path.Base(u.Path)
	}
	ext := strings.ToLower(filepath.Ext(p))
	if ext == "" || len(ext) > 6 {
		return defaultExt
	}
	return ext
}

// claimPath reserves dir/base+ext, or the first free dir/base-N+ext, by
// creating an empty placeholder exclusively. Concurrent saves of the same
// title therefore never share a name. The caller renames over the
// placeholder.
func claimPath(dir, base, ext string) (string, error) {
	candidate := filepath.Join(dir, base+ext)
	for n := 1; ; n++ {
		f, err := os.OpenFile(candidate, os.O_CREATE|os.O_EXCL|os.O_WRONLY, filePermissions)
		if err == nil {
			if err := f.Close(); err != nil {
				_ = os.Remove(candidate)
				return "", err
			}
			return candidate, nil
		}
		if !errors.Is(err, os.ErrExist) {
			return "", err
		}
		candidate = filepath.Join(dir, base+"-"+strconv.Itoa(n)+ext)
	}
}
