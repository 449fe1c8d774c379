package pagination

import (
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/gompdf/pagebreak/internal/layout"
)

// recordingCanvas records drawing calls in a compact textual form. Text
// colours are not recorded.
type recordingCanvas struct {
	ops []string
}

func (c *recordingCanvas) AddPage(w, h float64) {
	c.ops = append(c.ops, fmt.Sprintf("page %gx%g", w, h))
}

func (c *recordingCanvas) SetFillColor(r, g, b int) {
	c.ops = append(c.ops, fmt.Sprintf("fill %d,%d,%d", r, g, b))
}

func (c *recordingCanvas) SetDrawColor(r, g, b int) {
	c.ops = append(c.ops, fmt.Sprintf("draw %d,%d,%d", r, g, b))
}

func (c *recordingCanvas) SetTextColor(int, int, int) {}

func (c *recordingCanvas) SetLineWidth(w float64) {
	c.ops = append(c.ops, fmt.Sprintf("width %g", w))
}

func (c *recordingCanvas) Rect(x, y, w, h float64, style string) {
	c.ops = append(c.ops, fmt.Sprintf("rect %g,%g %gx%g %s", x, y, w, h, style))
}

func (c *recordingCanvas) Text(run layout.TextRun) {
	c.ops = append(c.ops, "text "+run.Text)
}

func (c *recordingCanvas) Image(src string, x, y, w, h float64) error {
	c.ops = append(c.ops, fmt.Sprintf("image %s %g,%g %gx%g", src, x, y, w, h))
	return nil
}

func TestPage_Geometry(t *testing.T) {
	p := NewPage(PageSize{Width: 600, Height: 800}, Margins{Top: 50, Right: 40, Bottom: 30, Left: 20})

	if got, want := p.FirstPoint(), layout.Pt(20, 750); got != want {
		t.Errorf("FirstPoint() = %v, want %v", got, want)
	}
	if got, want := p.DiagonalPoint(), layout.Pt(560, 30); got != want {
		t.Errorf("DiagonalPoint() = %v, want %v", got, want)
	}
	if p.Height() != 720 || p.Width() != 540 || p.MarginBottom() != 30 {
		t.Errorf("Height/Width/MarginBottom = %v/%v/%v", p.Height(), p.Width(), p.MarginBottom())
	}
}

func TestPage_AddIsIdempotent(t *testing.T) {
	p := testPage()
	a, b := block(10), block(20)
	// a moved fragment is added on arrival and again when it is cut
	p.Add(a)
	p.Add(a)
	p.Add(b)
	p.Add(b)

	children := p.Children()
	if len(children) != 2 || children[0] != a || children[1] != b {
		t.Errorf("Children() = %v, want the two distinct nodes in order", children)
	}
}

func TestPage_Copy(t *testing.T) {
	p := testPage()
	header := layout.NewTextBox([]string{"header"}, 10, 0)
	p.SetHeader(header)
	p.SetAttribute("lang", "en")
	p.MergeEnhancement(EnhancementBorder, map[string]string{"color": "#000"})
	p.Add(block(10))
	p.SetContext(&PageContext{Index: 3})

	c := p.Copy()
	if len(c.Children()) != 0 || c.Context() != nil {
		t.Error("Copy() must not carry content or context")
	}
	if c.Header() == nil || c.Header() == header {
		t.Error("Copy() must clone the header")
	}
	if v, _ := c.Attribute("lang"); v != "en" {
		t.Errorf("copied attribute = %q", v)
	}

	c.SetAttribute("lang", "fr")
	c.MergeEnhancement(EnhancementBorder, map[string]string{"color": "#f00"})
	if v, _ := p.Attribute("lang"); v != "en" {
		t.Errorf("original attribute changed to %q", v)
	}
	if got := p.Enhancement(EnhancementBorder)["color"]; got != "#000" {
		t.Errorf("original enhancement changed to %q", got)
	}
}

func TestPage_MergeEnhancement(t *testing.T) {
	p := testPage()
	if p.Enhancement(EnhancementBackground) != nil {
		t.Fatal("new page has a background")
	}
	p.MergeEnhancement(EnhancementBorder, map[string]string{"color": "#000", "width": "1"})
	p.MergeEnhancement(EnhancementBorder, map[string]string{"width": "3"})

	want := map[string]string{"color": "#000", "width": "3"}
	if diff := cmp.Diff(want, p.Enhancement(EnhancementBorder)); diff != "" {
		t.Errorf("border mismatch (-want +got):\n%s", diff)
	}
}

func TestPageContext_PageCount(t *testing.T) {
	var nilCtx *PageContext
	if nilCtx.PageCount() != 1 {
		t.Errorf("nil context PageCount() = %d, want 1", nilCtx.PageCount())
	}
	if (&PageContext{Index: 1}).PageCount() != 1 {
		t.Error("context without owner must report one page")
	}

	dp := NewDynamicPage(testPage())
	dp.CurrentPage()
	ctx := dp.CreateNextPage().Context()
	dp.CreateNextPage()
	if ctx.Index != 2 || ctx.PageCount() != 3 {
		t.Errorf("context = %d of %d, want 2 of 3", ctx.Index, ctx.PageCount())
	}
}

func TestPage_DrawingTasksOrder(t *testing.T) {
	p := NewPage(PageSize{Width: 600, Height: 800}, Margins{Top: 50, Right: 50, Bottom: 50, Left: 50})
	p.MergeEnhancement(EnhancementBackground, map[string]string{"color": "#ffffff"})
	p.MergeEnhancement(EnhancementBorder, map[string]string{"color": "#000", "width": "2"})

	mark := layout.NewTextBox([]string{"draft"}, 40, 0)
	header := layout.NewTextBox([]string{"page {page} of {pages}"}, 10, 0)
	footer := layout.NewTextBox([]string{"footer"}, 10, 0)
	layout.Stack([]layout.Node{header}, 50, 790, 500)
	layout.Stack([]layout.Node{footer}, 50, 40, 500)
	layout.Stack([]layout.Node{mark}, 0, 424, 600)
	p.SetWatermark(mark)
	p.SetHeader(header)
	p.SetFooter(footer)

	body := block(100)
	body.Fill = "#0000ff"
	layout.Stack([]layout.Node{body}, 50, 750, 500)
	p.Add(body)

	c := &recordingCanvas{}
	for _, task := range p.DrawingTasks() {
		if err := task(c); err != nil {
			t.Fatalf("task error = %v", err)
		}
	}

	want := []string{
		"page 600x800",
		"fill 255,255,255",
		"rect 0,0 600x800 F",
		"text draft",
		"text page 1 of 1",
		"fill 0,0,255",
		"rect 50,650 500x100 F",
		"text footer",
		"draw 0,0,0",
		"width 2",
		"rect 50,50 500x700 D",
	}
	if diff := cmp.Diff(want, c.ops); diff != "" {
		t.Errorf("drawing mismatch (-want +got):\n%s", diff)
	}
}

func TestPage_Flush(t *testing.T) {
	p := testPage()
	p.Add(block(10))
	p.SetContext(&PageContext{Index: 1})
	p.Flush()
	if len(p.Children()) != 0 || p.Context() != nil {
		t.Error("Flush() must release content and context")
	}
}

func TestParseWidth(t *testing.T) {
	tests := []struct {
		value string
		want  float64
	}{
		{"2.5", 2.5},
		{"", 1},
		{"thick", 1},
		{"-3", 1},
	}
	for _, tt := range tests {
		if got := parseWidth(tt.value, 1); got != tt.want {
			t.Errorf("parseWidth(%q) = %v, want %v", tt.value, got, tt.want)
		}
	}
}
