package pagination

import (
	"fmt"
	"maps"

	"github.com/gompdf/pagebreak/internal/layout"
)

// PageSize represents standard page sizes
type PageSize struct {
	Width  float64
	Height float64
	Name   string
}

// Standard page sizes in points (1/72 inch)
var (
	PageSizeA4     = PageSize{Width: 595.28, Height: 841.89, Name: "A4"}
	PageSizeLetter = PageSize{Width: 612.00, Height: 792.00, Name: "Letter"}
	PageSizeLegal  = PageSize{Width: 612.00, Height: 1008.00, Name: "Legal"}
	PageSizeA3     = PageSize{Width: 841.89, Height: 1190.55, Name: "A3"}
	PageSizeA5     = PageSize{Width: 419.53, Height: 595.28, Name: "A5"}
)

// PageSizes lists the standard sizes by name
var PageSizes = map[string]PageSize{
	PageSizeA3.Name:     PageSizeA3,
	PageSizeA4.Name:     PageSizeA4,
	PageSizeA5.Name:     PageSizeA5,
	PageSizeLetter.Name: PageSizeLetter,
	PageSizeLegal.Name:  PageSizeLegal,
}

// Landscape returns the size with width and height swapped so that the page
// is wider than tall.
func (s PageSize) Landscape() PageSize {
	if s.Width < s.Height {
		s.Width, s.Height = s.Height, s.Width
	}
	return s
}

// Margins represents page margins
type Margins struct {
	Top    float64
	Right  float64
	Bottom float64
	Left   float64
}

// Names of the enhancements a page knows how to draw
const (
	EnhancementBackground = "background"
	EnhancementBorder     = "border"
)

// Page is a single finite page. Its content area is the page rectangle minus
// the margins; Height reports the height of that area.
type Page struct {
	Size    PageSize
	Margins Margins

	header    layout.Node
	footer    layout.Node
	watermark layout.Node

	attributes   map[string]string
	enhancements map[string]map[string]string

	children []layout.Node
	context  *PageContext
}

// PageContext ties a concrete page to its 1-based position in the dynamic
// page that produced it.
type PageContext struct {
	Index int
	Owner *DynamicPage
}

// PageCount returns the number of pages of the owning dynamic page
func (c *PageContext) PageCount() int {
	if c == nil || c.Owner == nil {
		return 1
	}
	return c.Owner.PageCount()
}

// NewPage creates an empty page
func NewPage(size PageSize, margins Margins) *Page {
	return &Page{
		Size:         size,
		Margins:      margins,
		attributes:   make(map[string]string),
		enhancements: make(map[string]map[string]string),
	}
}

// DefaultPage returns an empty A4 page with one inch margins
func DefaultPage() *Page {
	return NewPage(PageSizeA4, Margins{Top: 72, Right: 72, Bottom: 72, Left: 72})
}

// FirstPoint returns the top left corner of the content area
func (p *Page) FirstPoint() layout.Point {
	return layout.Pt(p.Margins.Left, p.Size.Height-p.Margins.Top)
}

// DiagonalPoint returns the bottom right corner of the content area
func (p *Page) DiagonalPoint() layout.Point {
	return layout.Pt(p.Size.Width-p.Margins.Right, p.Margins.Bottom)
}

// Height returns the height of the content area
func (p *Page) Height() float64 {
	return p.Size.Height - p.Margins.Top - p.Margins.Bottom
}

// Width returns the width of the content area
func (p *Page) Width() float64 {
	return p.Size.Width - p.Margins.Left - p.Margins.Right
}

func (p *Page) MarginBottom() float64 { return p.Margins.Bottom }

// Add appends a node to the page content. Adding the node added last again
// does nothing: a fragment moved to a page is added again when it is cut there.
func (p *Page) Add(n layout.Node) {
	if k := len(p.children); k > 0 && p.children[k-1] == n {
		return
	}
	p.children = append(p.children, n)
}

func (p *Page) Children() []layout.Node { return p.children }

func (p *Page) Context() *PageContext { return p.context }

func (p *Page) SetContext(ctx *PageContext) { p.context = ctx }

func (p *Page) Header() layout.Node    { return p.header }
func (p *Page) Footer() layout.Node    { return p.footer }
func (p *Page) Watermark() layout.Node { return p.watermark }

func (p *Page) SetHeader(n layout.Node)    { p.header = n }
func (p *Page) SetFooter(n layout.Node)    { p.footer = n }
func (p *Page) SetWatermark(n layout.Node) { p.watermark = n }

// Attribute returns a named attribute
func (p *Page) Attribute(name string) (string, bool) {
	v, ok := p.attributes[name]
	return v, ok
}

// SetAttribute sets a named attribute
func (p *Page) SetAttribute(name, value string) {
	if p.attributes == nil {
		p.attributes = make(map[string]string)
	}
	p.attributes[name] = value
}

// Enhancement returns the attributes of a named enhancement
func (p *Page) Enhancement(name string) map[string]string {
	return p.enhancements[name]
}

// MergeEnhancement merges attrs into the named enhancement, existing keys are
// overwritten.
func (p *Page) MergeEnhancement(name string, attrs map[string]string) {
	if p.enhancements == nil {
		p.enhancements = make(map[string]map[string]string)
	}
	current, ok := p.enhancements[name]
	if !ok {
		current = make(map[string]string, len(attrs))
		p.enhancements[name] = current
	}
	maps.Copy(current, attrs)
}

// Copy returns a structural copy of the page without its content and context
func (p *Page) Copy() *Page {
	c := &Page{
		Size:         p.Size,
		Margins:      p.Margins,
		header:       cloneNode(p.header),
		footer:       cloneNode(p.footer),
		watermark:    cloneNode(p.watermark),
		attributes:   maps.Clone(p.attributes),
		enhancements: make(map[string]map[string]string, len(p.enhancements)),
	}
	if c.attributes == nil {
		c.attributes = make(map[string]string)
	}
	for name, attrs := range p.enhancements {
		c.enhancements[name] = maps.Clone(attrs)
	}
	return c
}

// Flush releases the page content
func (p *Page) Flush() {
	p.children = nil
	p.context = nil
}

// DrawingTasks returns the work needed to paint the page: the page itself,
// the background, the watermark, the header, the content in document order,
// the footer and finally the border.
func (p *Page) DrawingTasks() []layout.DrawingTask {
	ctx := layout.DrawContext{Page: 1, Pages: 1}
	if p.context != nil {
		ctx = layout.DrawContext{Page: p.context.Index, Pages: p.context.PageCount()}
	}

	size := p.Size
	tasks := []layout.DrawingTask{func(c layout.Canvas) error {
		c.AddPage(size.Width, size.Height)
		return nil
	}}

	if bg := p.enhancements[EnhancementBackground]; bg != nil {
		if color, ok := layout.ParseColor(bg["color"]); ok {
			tasks = append(tasks, func(c layout.Canvas) error {
				c.SetFillColor(color[0], color[1], color[2])
				c.Rect(0, 0, size.Width, size.Height, "F")
				return nil
			})
		}
	}

	for _, n := range []layout.Node{p.watermark, p.header} {
		if n != nil {
			tasks = append(tasks, n.DrawingTasks(ctx)...)
		}
	}
	for _, n := range p.children {
		tasks = append(tasks, n.DrawingTasks(ctx)...)
	}
	if p.footer != nil {
		tasks = append(tasks, p.footer.DrawingTasks(ctx)...)
	}

	if border := p.enhancements[EnhancementBorder]; border != nil {
		color, _ := layout.ParseColor(border["color"])
		width := parseWidth(border["width"], 1)
		first, diagonal := p.FirstPoint(), p.DiagonalPoint()
		tasks = append(tasks, func(c layout.Canvas) error {
			c.SetDrawColor(color[0], color[1], color[2])
			c.SetLineWidth(width)
			c.Rect(first.X, diagonal.Y, diagonal.X-first.X, first.Y-diagonal.Y, "D")
			return nil
		})
	}
	return tasks
}

func cloneNode(n layout.Node) layout.Node {
	if n == nil {
		return nil
	}
	return n.Clone()
}

// parseWidth parses a float value with a default
func parseWidth(value string, defaultValue float64) float64 {
	var result float64
	if _, err := fmt.Sscanf(value, "%f", &result); err != nil || result <= 0 {
		return defaultValue
	}
	return result
}
