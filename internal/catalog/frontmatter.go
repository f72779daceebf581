package catalog

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/treykane/cli-gallery/internal/gallery"
)

// postMeta is the frontmatter block of a markdown post.
type postMeta struct {
	ID       string   `yaml:"id"`
	Title    string   `yaml:"title"`
	Date     string   `yaml:"date"`
	Category string   `yaml:"category"`
	Section  string   `yaml:"section"`
	Image    string   `yaml:"image"`
	Tags     []string `yaml:"tags"`
	Featured bool     `yaml:"featured"`
}

// item builds a gallery item from the post. Posts default to the blog
// section and to their file stem as id so pins survive a reload.
func (m postMeta) item(stem, body string) gallery.Item {
	id := strings.TrimSpace(m.ID)
	if id == "" {
		id = stem
	}
	section := gallery.SectionBlog
	if strings.TrimSpace(m.Section) != "" {
		section = gallery.ParseSection(m.Section)
	}
	return gallery.Item{
		ID:          id,
		Title:       m.Title,
		Description: strings.TrimSpace(body),
		Image:       m.Image,
		Category:    m.Category,
		Section:     section,
		Featured:    m.Featured,
		Tags:        m.Tags,
		Date:        m.Date,
	}
}

// parseFrontmatterAndBody splits a leading "---" block from content. Content
// without a frontmatter block is returned whole as the body.
func parseFrontmatterAndBody(content string) (postMeta, string, error) {
	const delim = "---"
	trimmed := strings.TrimPrefix(content, "\ufeff")
	trimmed = strings.ReplaceAll(trimmed, "\r\n", "\n")
	if !strings.HasPrefix(trimmed, delim+"\n") {
		return postMeta{}, content, nil
	}

	lines := strings.Split(trimmed, "\n")
	end := -1
	for i := 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == delim {
			end = i
			break
		}
	}
	if end <= 0 {
		return postMeta{}, content, nil
	}

	var meta postMeta
	if err := yaml.Unmarshal([]byte(strings.Join(lines[1:end], "\n")), &meta); err != nil {
		return postMeta{}, "", fmt.Errorf("parse frontmatter: %w", err)
	}
	return meta, strings.Join(lines[end+1:], "\n"), nil
}
