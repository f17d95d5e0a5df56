package server

import (
	"embed"
	"html/template"

	"github.com/idelchi/photolock/internal/gallery"
)

//go:embed templates/gallery.html
var templateFS embed.FS

var galleryTemplate = template.Must(template.ParseFS(templateFS, "templates/gallery.html"))

// pageData feeds the gallery template.
type pageData struct {
	Title    string
	Error    string
	Unlocked bool
	Slots    []slot
}

// slot is one <img> of the gallery page.
type slot struct {
	Index  int
	Src    template.URL
	Alt    string
	Failed bool
}

// Number is the 1-based position shown to visitors.
func (s slot) Number() int {
	return s.Index + 1
}

// pageDisplay collects loader results into the page slots.
// The loader only calls it concurrently for distinct indices, which touch distinct elements.
type pageDisplay struct {
	slots []slot
}

var _ gallery.Display = (*pageDisplay)(nil)

func newPageDisplay(n int) *pageDisplay {
	slots := make([]slot, n)
	for i := range slots {
		slots[i].Index = i
	}

	return &pageDisplay{slots: slots}
}

func (d *pageDisplay) Slots() int {
	return len(d.slots)
}

func (d *pageDisplay) Show(i int, dataURI string) {
	// The URI is produced by gallery.DataURI from a sniffed image type.
	d.slots[i].Src = template.URL(dataURI) //nolint:gosec // generated data: URI
}

func (d *pageDisplay) Fail(i int, err error) {
	d.slots[i].Failed = true
	d.slots[i].Alt = gallery.Generic(err)
}
