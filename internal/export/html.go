// Package export renders a catalog as a static HTML masonry page using the
// same column assignment the terminal gallery shows.
package export

import (
	"bytes"
	"fmt"
	"html/template"
	"io"
	"os"
	"path/filepath"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/treykane/cli-gallery/internal/catalog"
	"github.com/treykane/cli-gallery/internal/gallery"
	"github.com/treykane/cli-gallery/internal/logging"
)

// DefaultColumns is the column count used when Options.Columns is unset.
const DefaultColumns = 3

var log = logging.New("export")

// Options controls which layout is exported.
type Options struct {
	Columns int
	Pinned  []string
	Hidden  []string
}

type pageData struct {
	Title   string
	Columns []columnData
}

type columnData struct {
	Cards []cardData
}

type cardData struct {
	ID          string
	Title       string
	Image       string
	Link        string
	Aspect      string
	Pinned      bool
	Featured    bool
	Category    string
	Date        string
	Description template.HTML
}

var markdown = goldmark.New(goldmark.WithExtensions(extension.GFM))

var page = template.Must(template.New("page").Parse(`<!doctype html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.Title}}</title>
<style>
body{font-family:system-ui,sans-serif;margin:0;padding:1.5rem;background:#111;color:#eee}
h1{font-weight:600}
.masonry{display:flex;gap:1rem;align-items:flex-start}
.column{flex:1;display:flex;flex-direction:column;gap:1rem;min-width:0}
.card{background:#1c1c1c;border-radius:8px;overflow:hidden}
.card img{width:100%;display:block;object-fit:cover}
.card.square img{aspect-ratio:1/1}
.card.tall img{aspect-ratio:3/4}
.card.wide img{aspect-ratio:4/3}
.card .body{padding:.75rem}
.card .meta{color:#999;font-size:.8rem}
.pin{color:#f5c542}
a{color:inherit}
</style>
</head>
<body>
<h1>{{.Title}}</h1>
<div class="masonry">
{{- range .Columns}}
<div class="column">
{{- range .Cards}}
<article class="card {{.Aspect}}" id="{{.ID}}">
{{- if .Image}}<a href="{{.Link}}"><img src="{{.Image}}" alt="{{.Title}}" loading="lazy"></a>{{end}}
<div class="body">
<h2>{{if .Pinned}}<span class="pin">&#9733;</span> {{end}}{{.Title}}</h2>
<p class="meta">{{.Category}}{{if .Date}} &middot; {{.Date}}{{end}}</p>
{{.Description}}
</div>
</article>
{{- end}}
</div>
{{- end}}
</div>
</body>
</html>
`))

// HTML writes the page for cat to w.
func HTML(w io.Writer, cat catalog.Catalog, opts Options) error {
	columns := opts.Columns
	if columns < 1 {
		columns = DefaultColumns
	}
	pinned := gallery.NewIDSet(opts.Pinned...)
	hidden := gallery.NewIDSet(opts.Hidden...)
	arranged := gallery.Arrange(cat.Items, pinned, hidden, columns)

	title := cat.Title
	if title == "" {
		title = "Gallery"
	}
	data := pageData{Title: title, Columns: make([]columnData, len(arranged))}
	for i, col := range arranged {
		cards := make([]cardData, 0, len(col))
		for _, item := range col {
			desc, err := renderMarkdown(item.Description)
			if err != nil {
				return fmt.Errorf("render %s description: %w", item.ID, err)
			}
			cards = append(cards, cardData{
				ID:          item.ID,
				Title:       item.Title,
				Image:       item.Image,
				Link:        cat.Link(item),
				Aspect:      gallery.AspectOf(item).String(),
				Pinned:      pinned.Has(item.ID),
				Featured:    item.Featured,
				Category:    item.Category,
				Date:        item.Date,
				Description: desc,
			})
		}
		data.Columns[i] = columnData{Cards: cards}
	}
	return page.Execute(w, data)
}

// WriteFile renders the page to path, creating parent directories.
func WriteFile(path string, cat catalog.Catalog, opts Options) error {
	var buf bytes.Buffer
	if err := HTML(&buf, cat, opts); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return err
	}
	log.Info("exported gallery", "path", path, "items", len(cat.Items))
	return nil
}

// renderMarkdown converts a description to HTML. Goldmark drops raw HTML
// unless configured otherwise, so the output is safe to embed.
func renderMarkdown(src string) (template.HTML, error) {
	if src == "" {
		return "", nil
	}
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(src), &buf); err != nil {
		return "", err
	}
	return template.HTML(buf.String()), nil
}
