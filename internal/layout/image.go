package layout

// ImageBox represents a replaced element of fixed size. It can never be
// split: when it does not fit it moves to the next page as a whole.
type ImageBox struct {
	Name    string
	Src     string // resolved by the renderer through its resource loader
	Width   float64
	Margins VerticalMargins

	first    Point
	diagonal Point
}

// NewImageBox creates an image box; a zero size defaults to a 40pt square
func NewImageBox(src string, width, height float64) *ImageBox {
	if width <= 0 {
		width = 40
	}
	if height <= 0 {
		height = 40
	}
	return &ImageBox{
		Src:      src,
		Width:    width,
		diagonal: Pt(width, -height),
	}
}

func (b *ImageBox) Label() string { return b.Name }

func (b *ImageBox) FirstPoint() Point     { return b.first }
func (b *ImageBox) DiagonalPoint() Point  { return b.diagonal }
func (b *ImageBox) Height() float64       { return b.first.Y - b.diagonal.Y }
func (b *ImageBox) MarginTop() float64    { return b.Margins.Top }
func (b *ImageBox) MarginBottom() float64 { return b.Margins.Bottom }
func (b *ImageBox) Children() []Node      { return nil }

func (b *ImageBox) Translate(dx, dy float64) {
	b.first = translated(b.first, dx, dy)
	b.diagonal = translated(b.diagonal, dx, dy)
}

func (b *ImageBox) Split(float64) Node { return nil }

func (b *ImageBox) Clone() Node {
	clone := *b
	return &clone
}

func (b *ImageBox) DrawingTasks(DrawContext) []DrawingTask {
	if b.Src == "" {
		return nil
	}
	src, x, y := b.Src, b.first.X, b.diagonal.Y
	w, h := b.diagonal.X-b.first.X, b.Height()
	return []DrawingTask{func(c Canvas) error {
		return c.Image(src, x, y, w, h)
	}}
}

// place keeps the intrinsic width, narrowed to the available width
func (b *ImageBox) place(x, top, width float64) float64 {
	h := b.Height()
	w := b.Width
	if w <= 0 || w > width {
		w = width
	}
	b.first = Pt(x, top)
	b.diagonal = Pt(x+w, top-h)
	return h
}
