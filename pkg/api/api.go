package api

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/gompdf/pagebreak/internal/layout"
	"github.com/gompdf/pagebreak/internal/pagination"
	"github.com/gompdf/pagebreak/internal/parser/boxtree"
	"github.com/gompdf/pagebreak/internal/render/pdf"
	"github.com/gompdf/pagebreak/internal/res"
)

// Paginator is the main API: it stacks laid out boxes into the content area
// of a page prototype, breaks them into pages and renders the pages to PDF.
type Paginator struct {
	options Options
	log     *zap.Logger
}

// New creates a new paginator with default options
func New(opts ...Option) *Paginator {
	options := DefaultOptions()
	for _, opt := range opts {
		opt(&options)
	}
	return NewWithOptions(options)
}

// NewWithOptions creates a new paginator with the specified options
func NewWithOptions(options Options) *Paginator {
	log := options.Logger
	if log == nil {
		log = zap.NewNop()
	}
	return &Paginator{options: options, log: log}
}

// Options returns the options of the paginator
func (p *Paginator) Options() Options {
	return p.options
}

// WithOption returns a new paginator with the specified option set
func (p *Paginator) WithOption(option Option) *Paginator {
	newOptions := p.options
	newOptions.ResourcePaths = append([]string(nil), p.options.ResourcePaths...)
	option(&newOptions)
	return NewWithOptions(newOptions)
}

// PageSize returns the page size after applying the orientation
func (p *Paginator) PageSize() pagination.PageSize {
	size := pagination.PageSize{Width: p.options.PageWidth, Height: p.options.PageHeight, Name: "custom"}
	for _, known := range pagination.PageSizes {
		if (known.Width == size.Width && known.Height == size.Height) || (known.Width == size.Height && known.Height == size.Width) {
			size.Name = known.Name
		}
	}
	switch p.options.PageOrientation {
	case PageOrientationLandscape:
		size = size.Landscape()
	case PageOrientationPortrait, "":
		if size.Width > size.Height {
			size.Width, size.Height = size.Height, size.Width
		}
	}
	return size
}

// Prototype builds the page every produced page is copied from. Header and
// footer bands are carved out of the content area.
func (p *Paginator) Prototype() *pagination.Page {
	o := &p.options
	size := p.PageSize()

	margins := pagination.Margins{Top: o.MarginTop, Right: o.MarginRight, Bottom: o.MarginBottom, Left: o.MarginLeft}
	width := size.Width - margins.Left - margins.Right
	if o.Header.Text != "" {
		margins.Top += o.Header.Height
	}
	if o.Footer.Text != "" {
		margins.Bottom += o.Footer.Height
	}
	page := pagination.NewPage(size, margins)

	if o.Header.Text != "" {
		header := bandText("header", o.Header, "left")
		layout.Stack([]layout.Node{header}, o.MarginLeft, size.Height-o.MarginTop, width)
		page.SetHeader(header)
	}
	if o.Footer.Text != "" {
		footer := bandText("footer", o.Footer, "center")
		layout.Stack([]layout.Node{footer}, o.MarginLeft, o.MarginBottom+o.Footer.Height, width)
		page.SetFooter(footer)
	}
	if o.Watermark.Text != "" {
		mark := layout.NewTextBox(strings.Split(o.Watermark.Text, "\n"), o.Watermark.FontSize, 0)
		mark.Name, mark.Align, mark.Color = "watermark", "center", o.Watermark.Color
		layout.Stack([]layout.Node{mark}, 0, (size.Height+mark.Height())/2, size.Width)
		page.SetWatermark(mark)
	}

	if o.Background != "" {
		page.MergeEnhancement(pagination.EnhancementBackground, map[string]string{"color": o.Background})
	}
	if o.BorderColor != "" {
		page.MergeEnhancement(pagination.EnhancementBorder, map[string]string{
			"color": o.BorderColor,
			"width": strconv.FormatFloat(o.BorderWidth, 'f', -1, 64),
		})
	}
	return page
}

func bandText(name string, band Band, align string) *layout.TextBox {
	t := layout.NewTextBox(strings.Split(band.Text, "\n"), band.FontSize, 0)
	t.Name, t.Align = name, align
	return t
}

// Paginate stacks nodes top-down in the content area of the prototype and
// breaks them into pages. The nodes are positioned in place but never split;
// the pages hold copies.
func (p *Paginator) Paginate(nodes ...layout.Node) (*pagination.DynamicPage, error) {
	dp := pagination.NewDynamicPage(p.Prototype())

	first := dp.FirstPoint()
	layout.Stack(nodes, first.X, first.Y, dp.Width())
	for _, n := range nodes {
		dp.Add(n)
	}

	engine := pagination.NewEngine(p.log)
	engine.SetOptions(pagination.Options{MaxIterations: p.options.MaxIterations})
	if err := engine.Paginate(dp); err != nil {
		return nil, err
	}
	p.log.Info("Content paginated", zap.Int("nodes", len(nodes)), zap.Int("pages", dp.PageCount()))
	return dp, nil
}

// Render paginates nodes and writes the PDF to w. It returns the number of
// pages written.
func (p *Paginator) Render(w io.Writer, nodes ...layout.Node) (int, error) {
	return p.render(nil, func(r *pdf.Renderer, tasks []layout.DrawingTask) (int, error) {
		return r.Render(tasks, w, p.renderOptions())
	}, nodes)
}

// RenderFile paginates nodes and writes the PDF to the file at outputPath
func (p *Paginator) RenderFile(outputPath string, nodes ...layout.Node) (int, error) {
	return p.render(nil, func(r *pdf.Renderer, tasks []layout.DrawingTask) (int, error) {
		return r.RenderFile(tasks, outputPath, p.renderOptions())
	}, nodes)
}

// ConvertFile reads a box tree description and writes the paginated PDF to
// outputPath. Image sources are resolved relative to the description.
func (p *Paginator) ConvertFile(inputPath, outputPath string) (int, error) {
	nodes, err := boxtree.NewParser().ParseFile(inputPath)
	if err != nil {
		return 0, err
	}
	return p.render(p.newLoader(inputPath), func(r *pdf.Renderer, tasks []layout.DrawingTask) (int, error) {
		return r.RenderFile(tasks, outputPath, p.renderOptions())
	}, nodes)
}

func (p *Paginator) render(loader *res.Loader, output func(*pdf.Renderer, []layout.DrawingTask) (int, error), nodes []layout.Node) (int, error) {
	dp, err := p.Paginate(nodes...)
	if err != nil {
		return 0, err
	}
	defer dp.Flush()

	if loader == nil {
		loader = p.newLoader("")
	}
	renderer := pdf.NewRenderer(loader, p.log)
	renderer.MaxImagePixels = p.options.MaxImagePixels
	renderer.Compress = p.options.Compress

	pages, err := output(renderer, dp.DrawingTasks())
	if err != nil {
		return pages, fmt.Errorf("failed to render PDF: %w", err)
	}
	return pages, nil
}

func (p *Paginator) newLoader(base string) *res.Loader {
	loader := res.NewLoader(base, p.log)
	for _, path := range p.options.ResourcePaths {
		loader.AddSearchPath(path)
	}
	return loader
}

func (p *Paginator) renderOptions() pdf.RenderOptions {
	return pdf.RenderOptions{
		Title:    p.options.Title,
		Author:   p.options.Author,
		Subject:  p.options.Subject,
		Keywords: p.options.Keywords,
		Creator:  "pagebreak",
		Producer: p.options.Producer,
	}
}
