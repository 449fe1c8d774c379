package pdf

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"go.uber.org/zap/zaptest"

	"github.com/gompdf/pagebreak/internal/layout"
	"github.com/gompdf/pagebreak/internal/res"
)

func pageTask(w, h float64) layout.DrawingTask {
	return func(c layout.Canvas) error {
		c.AddPage(w, h)
		return nil
	}
}

func pngDataURL(t *testing.T, w, h int) string {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewGray(image.Rect(0, 0, w, h))); err != nil {
		t.Fatalf("Failed to encode png: %v", err)
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes())
}

func TestRender(t *testing.T) {
	r := NewRenderer(nil, zaptest.NewLogger(t))
	r.Compress = false

	text := layout.NewTextBox([]string{"Hello", "{page} of {pages}"}, 12, 0)
	text.Align = "center"
	layout.Stack([]layout.Node{text}, 72, 700, 400)
	box := layout.NewBlockBox("box", 50)
	box.Fill, box.Stroke = "#eeeeee", "#333333"
	layout.Stack([]layout.Node{box}, 72, 600, 400)

	ctx := layout.DrawContext{Page: 1, Pages: 2}
	tasks := []layout.DrawingTask{pageTask(595.28, 841.89)}
	tasks = append(tasks, text.DrawingTasks(ctx)...)
	tasks = append(tasks, box.DrawingTasks(ctx)...)
	tasks = append(tasks, pageTask(841.89, 595.28))

	var buf bytes.Buffer
	pages, err := r.Render(tasks, &buf, RenderOptions{Title: "Report", Producer: "test"})
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if pages != 2 {
		t.Errorf("Render() = %d pages, want 2", pages)
	}

	out := buf.Bytes()
	if !bytes.HasPrefix(out, []byte("%PDF-")) {
		t.Fatalf("output is not a PDF: %q", out[:min(len(out), 16)])
	}
	for _, want := range []string{"(Hello) Tj", "(1 of 2) Tj", "/Title"} {
		if !bytes.Contains(out, []byte(want)) {
			t.Errorf("output does not contain %q", want)
		}
	}
}

func TestRender_NothingToRender(t *testing.T) {
	var buf bytes.Buffer
	if _, err := NewRenderer(nil, nil).Render(nil, &buf, RenderOptions{}); err == nil {
		t.Fatal("Render() expected error for no pages")
	}
	if buf.Len() != 0 {
		t.Error("nothing must be written when there are no pages")
	}
}

func TestRender_Images(t *testing.T) {
	loader := res.NewLoader("", zaptest.NewLogger(t))
	r := NewRenderer(loader, zaptest.NewLogger(t))

	ok := layout.NewImageBox(pngDataURL(t, 8, 4), 80, 40)
	again := layout.NewImageBox(ok.Src, 40, 20)
	missing := layout.NewImageBox("missing.png", 40, 40)
	layout.Stack([]layout.Node{ok, again, missing}, 72, 700, 400)

	tasks := []layout.DrawingTask{pageTask(595.28, 841.89)}
	for _, n := range []layout.Node{ok, again, missing} {
		tasks = append(tasks, n.DrawingTasks(layout.DrawContext{Page: 1, Pages: 1})...)
	}

	var buf bytes.Buffer
	pages, err := r.Render(tasks, &buf, RenderOptions{})
	if err == nil || !strings.Contains(err.Error(), "missing.png") {
		t.Errorf("Render() error = %v, want the missing image reported", err)
	}
	if pages != 1 || !bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")) {
		t.Errorf("document must still be written, got %d pages", pages)
	}

	// without a loader images are skipped
	buf.Reset()
	if _, err := NewRenderer(nil, nil).Render(tasks, &buf, RenderOptions{}); err != nil {
		t.Errorf("Render() without loader error = %v", err)
	}
}

// every drawing primitive of the adapter is reachable through layout.Canvas
func TestCanvas_MethodSet(t *testing.T) {
	iface := reflect.TypeFor[layout.Canvas]()
	impl := reflect.TypeFor[*canvas]()
	for i := range impl.NumMethod() {
		name := impl.Method(i).Name
		if _, ok := iface.MethodByName(name); !ok {
			t.Errorf("canvas.%s is not part of layout.Canvas", name)
		}
	}
	if impl.NumMethod() != iface.NumMethod() {
		t.Errorf("canvas has %d methods, layout.Canvas %d", impl.NumMethod(), iface.NumMethod())
	}
}

func TestDownscale(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 40, 30))
	small := downscale(img, 100)
	b := small.Bounds()
	if b.Dx()*b.Dy() > 100 {
		t.Errorf("downscale() = %dx%d, want at most 100 pixels", b.Dx(), b.Dy())
	}
	if b.Dx() < b.Dy() {
		t.Errorf("downscale() = %dx%d lost the aspect ratio", b.Dx(), b.Dy())
	}
}

func TestRenderFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "nested", "doc.pdf")
	pages, err := NewRenderer(nil, zaptest.NewLogger(t)).RenderFile([]layout.DrawingTask{pageTask(300, 300)}, path, RenderOptions{})
	if err != nil {
		t.Fatalf("RenderFile() error = %v", err)
	}
	if pages != 1 {
		t.Errorf("RenderFile() = %d pages, want 1", pages)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read output: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF-")) {
		t.Error("output file is not a PDF")
	}
}
