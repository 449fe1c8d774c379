package pdf

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"codeberg.org/go-pdf/fpdf"
	"github.com/disintegration/imaging"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/gompdf/pagebreak/internal/layout"
	"github.com/gompdf/pagebreak/internal/res"
)

// DefaultMaxImagePixels is the largest image embedded without downscaling
const DefaultMaxImagePixels = 4096 * 4096

// Renderer executes drawing tasks on a PDF document
type Renderer struct {
	// Loader resolves image sources, images are skipped when nil
	Loader *res.Loader
	// Log receives diagnostics
	Log *zap.Logger
	// MaxImagePixels bounds the size of embedded images, larger images are
	// downscaled preserving their aspect ratio
	MaxImagePixels int
	// Compress enables stream compression
	Compress bool
	// FontFamily is one of the PDF core fonts
	FontFamily string
}

// RenderOptions contains options for rendering
type RenderOptions struct {
	Title    string
	Author   string
	Subject  string
	Keywords string
	Creator  string
	Producer string
}

// NewRenderer creates a new PDF renderer
func NewRenderer(loader *res.Loader, log *zap.Logger) *Renderer {
	if log == nil {
		log = zap.NewNop()
	}
	return &Renderer{
		Loader:         loader,
		Log:            log,
		MaxImagePixels: DefaultMaxImagePixels,
		Compress:       true,
		FontFamily:     "Helvetica",
	}
}

// Render executes tasks in order and writes the resulting document to w. It
// returns the number of pages written. A failing task does not stop the
// remaining ones; all task errors are returned together after the document
// has been written.
func (r *Renderer) Render(tasks []layout.DrawingTask, w io.Writer, options RenderOptions) (int, error) {
	doc := fpdf.New("P", "pt", "A4", "")
	doc.SetCompression(r.Compress)
	doc.SetAutoPageBreak(false, 0)
	doc.SetMargins(0, 0, 0)
	doc.SetTitle(options.Title, true)
	doc.SetAuthor(options.Author, true)
	doc.SetSubject(options.Subject, true)
	doc.SetKeywords(options.Keywords, true)
	doc.SetCreator(options.Creator, true)
	doc.SetProducer(options.Producer, true)

	c := &canvas{
		r:     r,
		doc:   doc,
		tr:    doc.UnicodeTranslatorFromDescriptor(""),
		known: make(map[string]bool),
	}

	var errs error
	for i, task := range tasks {
		if err := task(c); err != nil {
			r.Log.Warn("Drawing task failed", zap.Int("task", i), zap.Int("page", doc.PageNo()), zap.Error(err))
			errs = multierr.Append(errs, err)
		}
		if doc.Err() {
			return 0, fmt.Errorf("failed to draw page %d: %w", doc.PageNo(), doc.Error())
		}
	}
	if c.height == 0 {
		return 0, fmt.Errorf("nothing to render")
	}

	if err := doc.Output(w); err != nil {
		return 0, fmt.Errorf("failed to write PDF: %w", err)
	}
	r.Log.Debug("PDF written", zap.Int("pages", doc.PageCount()), zap.Int("tasks", len(tasks)))
	return doc.PageCount(), errs
}

// RenderFile renders tasks into the file at path, creating missing
// directories.
func (r *Renderer) RenderFile(tasks []layout.DrawingTask, path string, options RenderOptions) (pages int, err error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return 0, fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return 0, fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() {
		err = multierr.Append(err, f.Close())
	}()
	return r.Render(tasks, f, options)
}

// canvas adapts an fpdf document to layout.Canvas. fpdf measures y from the
// top of the page, so every y coordinate is flipped against the page height.
type canvas struct {
	r      *Renderer
	doc    *fpdf.Fpdf
	tr     func(string) string
	height float64
	known  map[string]bool
}

var _ layout.Canvas = (*canvas)(nil)

func (c *canvas) y(y float64) float64 { return c.height - y }

// AddPage always passes portrait: fpdf swaps the size of landscape pages,
// while width and height here are already final.
func (c *canvas) AddPage(width, height float64) {
	c.doc.AddPageFormat("P", fpdf.SizeType{Wd: width, Ht: height})
	c.height = height
}

func (c *canvas) SetFillColor(r, g, b int) { c.doc.SetFillColor(r, g, b) }
func (c *canvas) SetDrawColor(r, g, b int) { c.doc.SetDrawColor(r, g, b) }
func (c *canvas) SetTextColor(r, g, b int) { c.doc.SetTextColor(r, g, b) }
func (c *canvas) SetLineWidth(width float64) { c.doc.SetLineWidth(width) }

func (c *canvas) Rect(x, y, w, h float64, style string) {
	c.doc.Rect(x, c.y(y+h), w, h, style)
}

func (c *canvas) Text(run layout.TextRun) {
	if run.Text == "" {
		return
	}
	c.doc.SetFont(c.r.FontFamily, "", run.Size)
	text := c.tr(run.Text)

	x := run.X
	textWidth := c.doc.GetStringWidth(text)
	switch strings.ToLower(run.Align) {
	case "center":
		x += (run.Width - textWidth) / 2
	case "right", "end":
		x += run.Width - textWidth
	}
	if x < run.X {
		x = run.X
	}
	c.doc.Text(x, c.y(run.Baseline), text)
}

func (c *canvas) Image(src string, x, y, w, h float64) error {
	if c.r.Loader == nil {
		return nil
	}
	if !c.known[src] {
		if err := c.register(src); err != nil {
			// keep the space visible
			c.doc.SetDrawColor(160, 160, 160)
			c.doc.SetLineWidth(0.5)
			c.doc.Rect(x, c.y(y+h), w, h, "D")
			return err
		}
		c.known[src] = true
	}
	c.doc.ImageOptions(src, x, c.y(y+h), w, h, false, fpdf.ImageOptions{ImageType: "PNG"}, 0, "")
	return nil
}

// register loads and decodes an image source and embeds it as PNG
func (c *canvas) register(src string) error {
	resource, err := c.r.Loader.LoadImage(src)
	if err != nil {
		return err
	}
	img, format, err := resource.Decode()
	if err != nil {
		return err
	}

	bounds := img.Bounds()
	if limit := c.r.MaxImagePixels; limit > 0 && bounds.Dx()*bounds.Dy() > limit {
		img = downscale(img, limit)
		c.r.Log.Debug("Image downscaled",
			zap.String("format", format),
			zap.Int("from", bounds.Dx()*bounds.Dy()),
			zap.Int("to", img.Bounds().Dx()*img.Bounds().Dy()))
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return fmt.Errorf("unable to encode image: %w", err)
	}
	c.doc.RegisterImageOptionsReader(src, fpdf.ImageOptions{ImageType: "PNG"}, &buf)
	if c.doc.Err() {
		err := c.doc.Error()
		c.doc.ClearError()
		return fmt.Errorf("unable to embed image: %w", err)
	}
	return nil
}

// downscale shrinks img to at most limit pixels
func downscale(img image.Image, limit int) image.Image {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	for w*h > limit && w > 1 && h > 1 {
		w, h = w*3/4, h*3/4
	}
	return imaging.Fit(img, max(w, 1), max(h, 1), imaging.Lanczos)
}
