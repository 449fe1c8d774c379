package pagebreak

import (
	"github.com/gompdf/pagebreak/internal/layout"
	"github.com/gompdf/pagebreak/pkg/api"
)

type Paginator = api.Paginator
type Options = api.Options
type Option = api.Option
type PageOrientation = api.PageOrientation
type Band = api.Band
type Watermark = api.Watermark

type Node = layout.Node
type BlockBox = layout.BlockBox
type TextBox = layout.TextBox
type ImageBox = layout.ImageBox
type PageBreak = layout.PageBreak

var (
	NewBlockBox  = layout.NewBlockBox
	NewContainer = layout.NewContainer
	NewTextBox   = layout.NewTextBox
	NewImageBox  = layout.NewImageBox
	NewPageBreak = layout.NewPageBreak
)

func New(opts ...Option) *Paginator             { return api.New(opts...) }
func NewWithOptions(options Options) *Paginator { return api.NewWithOptions(options) }
func DefaultOptions() Options                   { return api.DefaultOptions() }

var (
	WithPageSize        = api.WithPageSize
	WithPageSizeA4      = api.WithPageSizeA4
	WithPageSizeLetter  = api.WithPageSizeLetter
	WithPageSizeLegal   = api.WithPageSizeLegal
	WithPageOrientation = api.WithPageOrientation
	WithMargins         = api.WithMargins
	WithHeader          = api.WithHeader
	WithFooter          = api.WithFooter
	WithWatermark       = api.WithWatermark
	WithBackground      = api.WithBackground
	WithBorder          = api.WithBorder
	WithMaxIterations   = api.WithMaxIterations
	WithResourcePath    = api.WithResourcePath
	WithMaxImagePixels  = api.WithMaxImagePixels
	WithCompression     = api.WithCompression
	WithTitle           = api.WithTitle
	WithAuthor          = api.WithAuthor
	WithSubject         = api.WithSubject
	WithKeywords        = api.WithKeywords
	WithProducer        = api.WithProducer
	WithLogger          = api.WithLogger
)

const (
	PageOrientationPortrait  = api.PageOrientationPortrait
	PageOrientationLandscape = api.PageOrientationLandscape
)
