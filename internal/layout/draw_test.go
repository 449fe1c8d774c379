package layout

import (
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
)

type recordingCanvas struct {
	ops  []string
	runs []TextRun
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

func (c *recordingCanvas) SetTextColor(r, g, b int) {
	c.ops = append(c.ops, fmt.Sprintf("color %d,%d,%d", r, g, b))
}

func (c *recordingCanvas) SetLineWidth(w float64) {
	c.ops = append(c.ops, fmt.Sprintf("width %g", w))
}

func (c *recordingCanvas) Rect(x, y, w, h float64, style string) {
	c.ops = append(c.ops, fmt.Sprintf("rect %g,%g %gx%g %s", x, y, w, h, style))
}

func (c *recordingCanvas) Text(run TextRun) {
	c.ops = append(c.ops, "text "+run.Text)
	c.runs = append(c.runs, run)
}

func (c *recordingCanvas) Image(src string, x, y, w, h float64) error {
	c.ops = append(c.ops, fmt.Sprintf("image %s %g,%g %gx%g", src, x, y, w, h))
	return nil
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		value string
		want  [3]int
		ok    bool
	}{
		{"#ff8000", [3]int{255, 128, 0}, true},
		{"#F80", [3]int{255, 136, 0}, true},
		{" #000000 ", [3]int{0, 0, 0}, true},
		{"rgb(1,2,3)", [3]int{1, 2, 3}, true},
		{"rgb(10, 20, 30)", [3]int{10, 20, 30}, true},
		{"#12345", [3]int{}, false},
		{"#gggggg", [3]int{}, false},
		{"teal", [3]int{}, false},
		{"", [3]int{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			got, ok := ParseColor(tt.value)
			if got != tt.want || ok != tt.ok {
				t.Errorf("ParseColor(%q) = %v, %v, want %v, %v", tt.value, got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestExpandPlaceholders(t *testing.T) {
	ctx := DrawContext{Page: 3, Pages: 12}
	tests := map[string]string{
		"Page {page} of {pages}": "Page 3 of 12",
		"{pages}{page}":          "123",
		"no placeholders":        "no placeholders",
		"{unknown}":              "{unknown}",
	}
	for in, want := range tests {
		if got := ExpandPlaceholders(in, ctx); got != want {
			t.Errorf("ExpandPlaceholders(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestTextBox_DrawingTasks(t *testing.T) {
	text := NewTextBox([]string{"{page}/{pages}", "second"}, 10, 12)
	text.Color = "#102030"
	text.Align = "right"
	Stack([]Node{text}, 20, 100, 200)

	canvas := &recordingCanvas{}
	for _, task := range text.DrawingTasks(DrawContext{Page: 2, Pages: 5}) {
		if err := task(canvas); err != nil {
			t.Fatalf("task error = %v", err)
		}
	}

	if diff := cmp.Diff([]string{"color 16,32,48", "text 2/5", "text second"}, canvas.ops); diff != "" {
		t.Errorf("drawing mismatch (-want +got):\n%s", diff)
	}
	want := []TextRun{
		{X: 20, Baseline: 91, Width: 200, Size: 10, Align: "right", Text: "2/5"},
		{X: 20, Baseline: 79, Width: 200, Size: 10, Align: "right", Text: "second"},
	}
	if diff := cmp.Diff(want, canvas.runs); diff != "" {
		t.Errorf("runs mismatch (-want +got):\n%s", diff)
	}
}

func TestImageBox_DrawingTasks(t *testing.T) {
	img := NewImageBox("logo.png", 400, 50)
	Stack([]Node{img}, 10, 300, 250)

	if got := img.DiagonalPoint().X - img.FirstPoint().X; got != 250 {
		t.Errorf("image width = %v, want it narrowed to 250", got)
	}

	canvas := &recordingCanvas{}
	for _, task := range img.DrawingTasks(DrawContext{}) {
		if err := task(canvas); err != nil {
			t.Fatalf("task error = %v", err)
		}
	}
	if diff := cmp.Diff([]string{"image logo.png 10,250 250x50"}, canvas.ops); diff != "" {
		t.Errorf("drawing mismatch (-want +got):\n%s", diff)
	}

	if tasks := NewImageBox("", 10, 10).DrawingTasks(DrawContext{}); len(tasks) != 0 {
		t.Error("image without source must not draw")
	}
}
