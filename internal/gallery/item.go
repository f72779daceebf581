// Package gallery holds the interaction core of the portfolio browser: the
// masonry layout engine that packs visible items into columns, and the
// viewer controller that drives the lightbox.
//
// Nothing in this package touches the terminal, the filesystem or the
// network. Hosts inject a Scheduler for timers, an InputSource for key and
// pointer events, and Clipboard/Saver capabilities for the two actions that
// can fail.
package gallery

import "strings"

// Section names the portfolio page an item belongs to.
type Section string

const (
	SectionPhotos   Section = "photos"
	SectionBlog     Section = "blog"
	SectionStories  Section = "stories"
	SectionProjects Section = "projects"
)

// Sections lists every section in display order.
var Sections = []Section{SectionPhotos, SectionBlog, SectionStories, SectionProjects}

// ParseSection maps a free-form section name to a known Section. Unknown or
// empty values fall back to SectionPhotos.
func ParseSection(value string) Section {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "blog", "post", "posts":
		return SectionBlog
	case "stories", "story":
		return SectionStories
	case "projects", "project":
		return SectionProjects
	default:
		return SectionPhotos
	}
}

// Label returns the tab title for the section.
func (s Section) Label() string {
	switch s {
	case SectionBlog:
		return "Blog"
	case SectionStories:
		return "Stories"
	case SectionProjects:
		return "Projects"
	default:
		return "Photos"
	}
}

// Item is one displayable media entry. Items are never mutated by this
// package; pin and hide flags are tracked separately, keyed by ID.
type Item struct {
	ID          string   `json:"id" yaml:"id"`
	Title       string   `json:"title" yaml:"title"`
	Description string   `json:"description,omitempty" yaml:"description"`
	Image       string   `json:"image" yaml:"image"`
	Category    string   `json:"category,omitempty" yaml:"category"`
	Section     Section  `json:"section,omitempty" yaml:"section"`
	Featured    bool     `json:"featured,omitempty" yaml:"featured"`
	Tags        []string `json:"tags,omitempty" yaml:"tags"`
	Date        string   `json:"date,omitempty" yaml:"date"`
}

// Aspect is the aspect-ratio class used to size an item's card.
type Aspect int

const (
	AspectSquare Aspect = iota
	AspectTall
	AspectWide
)

func (a Aspect) String() string {
	switch a {
	case AspectTall:
		return "tall"
	case AspectWide:
		return "wide"
	default:
		return "square"
	}
}

// AspectOf picks the aspect class for an item. Featured items are always
// tall; otherwise the category decides. It never affects ordering.
func AspectOf(item Item) Aspect {
	if item.Featured {
		return AspectTall
	}
	switch strings.ToLower(strings.TrimSpace(item.Category)) {
	case "portrait", "people", "fashion":
		return AspectTall
	case "landscape", "architecture", "panorama", "travel":
		return AspectWide
	default:
		return AspectSquare
	}
}

// indexOf returns the position of id in items, or -1.
func indexOf(items []Item, id string) int {
	for i, item := range items {
		if item.ID == id {
			return i
		}
	}
	return -1
}
