package layout

import (
	"math"
	"strconv"
	"strings"
)

// Placeholders replaced in text when a page is drawn
const (
	PageNumberPlaceholder = "{page}"
	PageCountPlaceholder  = "{pages}"
)

// TextBox holds already broken lines of text of equal line height. It only
// splits between lines.
type TextBox struct {
	Name       string
	Lines      []string
	LineHeight float64
	FontSize   float64
	Color      string
	Align      string
	Margins    VerticalMargins

	first    Point
	diagonal Point
}

// NewTextBox creates a text box; a non-positive line height defaults to
// 1.2 times the font size.
func NewTextBox(lines []string, fontSize, lineHeight float64) *TextBox {
	if fontSize <= 0 {
		fontSize = 12
	}
	if lineHeight <= 0 {
		lineHeight = fontSize * 1.2
	}
	t := &TextBox{
		Lines:      lines,
		LineHeight: lineHeight,
		FontSize:   fontSize,
	}
	t.diagonal = Pt(0, -t.naturalHeight())
	return t
}

func (t *TextBox) naturalHeight() float64 {
	return float64(len(t.Lines)) * t.LineHeight
}

func (t *TextBox) Label() string { return t.Name }

func (t *TextBox) FirstPoint() Point     { return t.first }
func (t *TextBox) DiagonalPoint() Point  { return t.diagonal }
func (t *TextBox) Height() float64       { return t.first.Y - t.diagonal.Y }
func (t *TextBox) MarginTop() float64    { return t.Margins.Top }
func (t *TextBox) MarginBottom() float64 { return t.Margins.Bottom }
func (t *TextBox) Children() []Node      { return nil }

func (t *TextBox) Translate(dx, dy float64) {
	t.first = translated(t.first, dx, dy)
	t.diagonal = translated(t.diagonal, dx, dy)
}

// Split keeps as many whole lines above line as possible. The tail starts at
// the split line and carries the remaining lines.
func (t *TextBox) Split(line float64) Node {
	if line <= 0 || line >= t.Height() || t.LineHeight <= 0 {
		return nil
	}
	n := int(math.Floor(line/t.LineHeight + 1e-9))
	if n <= 0 || n >= len(t.Lines) {
		return nil
	}
	splitY := t.first.Y - line
	headBottom := t.first.Y - float64(n)*t.LineHeight
	gap := headBottom - splitY

	tail := &TextBox{
		Name:       t.Name,
		Lines:      append([]string(nil), t.Lines[n:]...),
		LineHeight: t.LineHeight,
		FontSize:   t.FontSize,
		Color:      t.Color,
		Align:      t.Align,
		Margins:    VerticalMargins{Bottom: t.Margins.Bottom},
		first:      Pt(t.first.X, splitY),
		diagonal:   Pt(t.diagonal.X, t.diagonal.Y-gap),
	}
	t.Lines = t.Lines[:n:n]
	t.diagonal = Pt(t.diagonal.X, headBottom)
	t.Margins.Bottom = 0
	return tail
}

func (t *TextBox) Clone() Node {
	clone := *t
	clone.Lines = append([]string(nil), t.Lines...)
	return &clone
}

// DrawingTasks writes one text run per line
func (t *TextBox) DrawingTasks(ctx DrawContext) []DrawingTask {
	if len(t.Lines) == 0 {
		return nil
	}
	color, _ := ParseColor(t.Color)
	width := t.diagonal.X - t.first.X
	lines := make([]string, len(t.Lines))
	for i, l := range t.Lines {
		lines[i] = ExpandPlaceholders(l, ctx)
	}
	first, lineHeight, size, align := t.first, t.LineHeight, t.FontSize, t.Align
	return []DrawingTask{func(c Canvas) error {
		c.SetTextColor(color[0], color[1], color[2])
		for i, l := range lines {
			// baseline sits at 80% of the font size below the line top plus half the leading
			baseline := first.Y - float64(i)*lineHeight - (lineHeight-size)/2 - size*0.8
			c.Text(TextRun{X: first.X, Baseline: baseline, Width: width, Size: size, Align: align, Text: l})
		}
		return nil
	}}
}

// ExpandPlaceholders substitutes the page number placeholders in s
func ExpandPlaceholders(s string, ctx DrawContext) string {
	if !strings.Contains(s, "{") {
		return s
	}
	return strings.NewReplacer(
		PageNumberPlaceholder, strconv.Itoa(ctx.Page),
		PageCountPlaceholder, strconv.Itoa(ctx.Pages),
	).Replace(s)
}

func (t *TextBox) place(x, top, width float64) float64 {
	h := t.naturalHeight()
	t.first = Pt(x, top)
	t.diagonal = Pt(x+width, top-h)
	return h
}
