package pagination

import (
	"github.com/gompdf/pagebreak/internal/layout"
)

// DynamicPage materializes concrete pages on demand from a prototype page.
// Size, header, footer, watermark and attributes come from the prototype;
// the list of produced pages and the unbounded content to be split belong
// to the dynamic page itself.
//
// A DynamicPage is not safe for concurrent use. Its pages may be read by
// other goroutines only after pagination has finished.
type DynamicPage struct {
	prototype *Page
	current   *Page
	pages     []*Page
	content   []layout.Node
}

// NewDynamicPage creates a dynamic page from a copy of prototype. A nil
// prototype falls back to DefaultPage.
func NewDynamicPage(prototype *Page) *DynamicPage {
	if prototype == nil {
		prototype = DefaultPage()
	}
	return &DynamicPage{prototype: prototype.Copy()}
}

// Prototype returns the page new pages are copied from
func (d *DynamicPage) Prototype() *Page { return d.prototype }

// SetPrototype replaces the prototype, already created pages are kept
func (d *DynamicPage) SetPrototype(p *Page) {
	if p == nil {
		p = DefaultPage()
	}
	d.prototype = p
}

// Add appends a node to the unbounded content of the dynamic page
func (d *DynamicPage) Add(n layout.Node) {
	d.content = append(d.content, n)
}

// Children returns the unbounded content waiting to be split into pages
func (d *DynamicPage) Children() []layout.Node { return d.content }

// CurrentPage returns the page accepting content, creating the first page
// when none exists yet.
func (d *DynamicPage) CurrentPage() *Page {
	if d.current == nil {
		d.CreateNextPage()
	}
	return d.current
}

// CreateNextPage appends a fresh copy of the prototype and makes it current
func (d *DynamicPage) CreateNextPage() *Page {
	page := d.prototype.Copy()
	index := len(d.pages)
	page.SetContext(&PageContext{Index: index + 1, Owner: d})
	d.pages = append(d.pages, page)
	d.current = page
	return page
}

// Pages returns the pages created so far in page order
func (d *DynamicPage) Pages() []*Page { return d.pages }

// PageCount returns the number of pages created so far
func (d *DynamicPage) PageCount() int { return len(d.pages) }

// Copy returns a dynamic page with its own copy of the prototype and the
// content but without any pages.
func (d *DynamicPage) Copy() *DynamicPage {
	c := &DynamicPage{prototype: d.prototype.Copy()}
	for _, n := range d.content {
		c.content = append(c.content, n.Clone())
	}
	c.Reset()
	return c
}

// Reset forgets all pages, the prototype is left alone
func (d *DynamicPage) Reset() {
	d.pages = nil
	d.current = nil
}

// Flush releases every page and resets the dynamic page
func (d *DynamicPage) Flush() {
	for _, page := range d.pages {
		page.Flush()
	}
	d.Reset()
	d.prototype.Flush()
}

// DrawingTasks returns the drawing tasks of all pages in page order
func (d *DynamicPage) DrawingTasks() []layout.DrawingTask {
	var tasks []layout.DrawingTask
	for _, page := range d.pages {
		tasks = append(tasks, page.DrawingTasks()...)
	}
	return tasks
}

// Boundary returns the content area of the current page
func (d *DynamicPage) Boundary() (first, diagonal layout.Point) {
	page := d.CurrentPage()
	return page.FirstPoint(), page.DiagonalPoint()
}

func (d *DynamicPage) FirstPoint() layout.Point    { return d.prototype.FirstPoint() }
func (d *DynamicPage) DiagonalPoint() layout.Point { return d.prototype.DiagonalPoint() }
func (d *DynamicPage) Height() float64             { return d.prototype.Height() }
func (d *DynamicPage) Width() float64              { return d.prototype.Width() }
func (d *DynamicPage) MarginBottom() float64       { return d.prototype.MarginBottom() }
func (d *DynamicPage) Size() PageSize              { return d.prototype.Size }

func (d *DynamicPage) Header() layout.Node    { return d.prototype.Header() }
func (d *DynamicPage) Footer() layout.Node    { return d.prototype.Footer() }
func (d *DynamicPage) Watermark() layout.Node { return d.prototype.Watermark() }

func (d *DynamicPage) SetHeader(n layout.Node)    { d.prototype.SetHeader(n) }
func (d *DynamicPage) SetFooter(n layout.Node)    { d.prototype.SetFooter(n) }
func (d *DynamicPage) SetWatermark(n layout.Node) { d.prototype.SetWatermark(n) }

// Attribute reads an attribute of the prototype
func (d *DynamicPage) Attribute(name string) (string, bool) {
	return d.prototype.Attribute(name)
}

// SetAttribute writes an attribute to the prototype and to every page
// created so far.
func (d *DynamicPage) SetAttribute(name, value string) {
	for _, page := range d.pages {
		page.SetAttribute(name, value)
	}
	d.prototype.SetAttribute(name, value)
}

// MergeEnhancement merges enhancement attributes into the prototype. Pages
// already created keep what they were copied with.
func (d *DynamicPage) MergeEnhancement(name string, attrs map[string]string) {
	d.prototype.MergeEnhancement(name, attrs)
}
