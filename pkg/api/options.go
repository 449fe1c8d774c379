package api

import (
	"go.uber.org/zap"

	"github.com/gompdf/pagebreak/internal/pagination"
)

// Band is a header or footer repeated on every page. Its text may contain the
// {page} and {pages} placeholders.
type Band struct {
	Text     string
	Height   float64
	FontSize float64
}

// Watermark is text drawn across the middle of every page below the content
type Watermark struct {
	Text     string
	FontSize float64
	Color    string
}

// Options represents configuration options for the paginator
type Options struct {
	// Page dimensions
	PageWidth  float64
	PageHeight float64
	// Page orientation: portrait or landscape
	PageOrientation PageOrientation

	// Page margins
	MarginTop    float64
	MarginRight  float64
	MarginBottom float64
	MarginLeft   float64

	// Repeated page decoration
	Header      Band
	Footer      Band
	Watermark   Watermark
	Background  string
	BorderColor string
	BorderWidth float64

	// MaxIterations bounds the number of splits of a single node
	MaxIterations int

	// Resource paths searched for images
	ResourcePaths []string
	// MaxImagePixels bounds the size of embedded images
	MaxImagePixels int
	// Compress enables PDF stream compression
	Compress bool

	// Document metadata
	Title    string
	Author   string
	Subject  string
	Keywords string
	Producer string

	// Logger receives diagnostics, nil discards them
	Logger *zap.Logger
}

// Option is a function that modifies Options
type Option func(*Options)

// PageOrientation represents page orientation
type PageOrientation string

const (
	// PageOrientationPortrait sets the page to portrait orientation
	PageOrientationPortrait PageOrientation = "portrait"
	// PageOrientationLandscape sets the page to landscape orientation
	PageOrientationLandscape PageOrientation = "landscape"
)

// DefaultOptions returns the default options
func DefaultOptions() Options {
	return Options{
		PageWidth:       pagination.PageSizeA4.Width,
		PageHeight:      pagination.PageSizeA4.Height,
		PageOrientation: PageOrientationPortrait,

		// 1 inch = 72 points
		MarginTop:    72,
		MarginRight:  72,
		MarginBottom: 72,
		MarginLeft:   72,

		MaxIterations:  pagination.DefaultMaxIterations,
		MaxImagePixels: 4096 * 4096,
		Compress:       true,
		Producer:       "pagebreak",
	}
}

// WithPageSize sets the page size
func WithPageSize(width, height float64) Option {
	return func(o *Options) {
		o.PageWidth = width
		o.PageHeight = height
	}
}

// WithPageSizeA4 sets the page size to A4
func WithPageSizeA4() Option {
	return WithPageSize(pagination.PageSizeA4.Width, pagination.PageSizeA4.Height)
}

// WithPageSizeLetter sets the page size to US Letter
func WithPageSizeLetter() Option {
	return WithPageSize(pagination.PageSizeLetter.Width, pagination.PageSizeLetter.Height)
}

// WithPageSizeLegal sets the page size to US Legal
func WithPageSizeLegal() Option {
	return WithPageSize(pagination.PageSizeLegal.Width, pagination.PageSizeLegal.Height)
}

// WithPageOrientation sets the page orientation
func WithPageOrientation(orientation PageOrientation) Option {
	return func(o *Options) {
		o.PageOrientation = orientation
	}
}

// WithMargins sets the page margins
func WithMargins(top, right, bottom, left float64) Option {
	return func(o *Options) {
		o.MarginTop = top
		o.MarginRight = right
		o.MarginBottom = bottom
		o.MarginLeft = left
	}
}

// WithHeader repeats text in a band of the given height above the content
func WithHeader(text string, height, fontSize float64) Option {
	return func(o *Options) {
		o.Header = Band{Text: text, Height: height, FontSize: fontSize}
	}
}

// WithFooter repeats text in a band of the given height below the content
func WithFooter(text string, height, fontSize float64) Option {
	return func(o *Options) {
		o.Footer = Band{Text: text, Height: height, FontSize: fontSize}
	}
}

// WithWatermark draws text across every page
func WithWatermark(text string, fontSize float64, color string) Option {
	return func(o *Options) {
		o.Watermark = Watermark{Text: text, FontSize: fontSize, Color: color}
	}
}

// WithBackground fills every page with a colour
func WithBackground(color string) Option {
	return func(o *Options) {
		o.Background = color
	}
}

// WithBorder outlines the content area of every page
func WithBorder(color string, width float64) Option {
	return func(o *Options) {
		o.BorderColor = color
		o.BorderWidth = width
	}
}

// WithMaxIterations bounds the number of splits of a single node
func WithMaxIterations(n int) Option {
	return func(o *Options) {
		o.MaxIterations = n
	}
}

// WithResourcePath adds a path to search for images
func WithResourcePath(path string) Option {
	return func(o *Options) {
		o.ResourcePaths = append(o.ResourcePaths, path)
	}
}

// WithMaxImagePixels bounds the size of embedded images
func WithMaxImagePixels(n int) Option {
	return func(o *Options) {
		o.MaxImagePixels = n
	}
}

// WithCompression enables or disables PDF stream compression
func WithCompression(compress bool) Option {
	return func(o *Options) {
		o.Compress = compress
	}
}

// WithTitle sets the document title
func WithTitle(title string) Option {
	return func(o *Options) {
		o.Title = title
	}
}

// WithAuthor sets the document author
func WithAuthor(author string) Option {
	return func(o *Options) {
		o.Author = author
	}
}

// WithSubject sets the document subject
func WithSubject(subject string) Option {
	return func(o *Options) {
		o.Subject = subject
	}
}

// WithKeywords sets the document keywords
func WithKeywords(keywords string) Option {
	return func(o *Options) {
		o.Keywords = keywords
	}
}

// WithProducer sets the document producer
func WithProducer(producer string) Option {
	return func(o *Options) {
		o.Producer = producer
	}
}

// WithLogger sets the logger receiving diagnostics
func WithLogger(log *zap.Logger) Option {
	return func(o *Options) {
		o.Logger = log
	}
}
