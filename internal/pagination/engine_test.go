package pagination

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/zap/zaptest"

	"github.com/gompdf/pagebreak/internal/layout"
)

func TestEngine_Deterministic(t *testing.T) {
	text := layout.NewTextBox(lines(120), 10, 12)
	section := layout.NewContainer("section", block(500), layout.NewImageBox("chart.png", 200, 300), block(200))
	nodes := []layout.Node{block(150), text, section, layout.NewPageBreak(), block(40)}

	dp := NewDynamicPage(testPage())
	layout.Stack(nodes, 0, 800, 600)
	for _, n := range nodes {
		dp.Add(n)
	}
	before := make([]string, len(nodes))
	for i, n := range nodes {
		before[i] = layout.Describe(n)
	}

	engine := NewEngine(zaptest.NewLogger(t))
	if err := engine.Paginate(dp); err != nil {
		t.Fatalf("first Paginate() error = %v", err)
	}
	first, count := spans(dp), dp.PageCount()

	if err := engine.Paginate(dp); err != nil {
		t.Fatalf("second Paginate() error = %v", err)
	}
	if dp.PageCount() != count {
		t.Errorf("PageCount() = %d, want %d", dp.PageCount(), count)
	}
	if diff := cmp.Diff(first, spans(dp)); diff != "" {
		t.Errorf("second pass differs (-first +second):\n%s", diff)
	}

	for i, n := range nodes {
		if got := layout.Describe(n); got != before[i] {
			t.Errorf("content node %d changed from %s to %s", i, before[i], got)
		}
	}
	if len(text.Lines) != 120 {
		t.Errorf("content text has %d lines, want 120", len(text.Lines))
	}
	if len(section.Children()) != 3 {
		t.Errorf("content section has %d children, want 3", len(section.Children()))
	}
}

func TestEngine_Empty(t *testing.T) {
	dp := NewDynamicPage(testPage())
	if err := NewEngine(nil).Paginate(dp); err != nil {
		t.Fatalf("Paginate() error = %v", err)
	}
	if dp.PageCount() != 0 {
		t.Errorf("PageCount() = %d for empty content, want 0", dp.PageCount())
	}
}

func TestEngine_PagesAreFresh(t *testing.T) {
	dp := NewDynamicPage(testPage())
	n := block(1500)
	layout.Stack([]layout.Node{n}, 0, 800, 600)
	dp.Add(n)

	engine := NewEngine(zaptest.NewLogger(t))
	if err := engine.Paginate(dp); err != nil {
		t.Fatalf("Paginate() error = %v", err)
	}
	old := dp.Pages()
	if err := engine.Paginate(dp); err != nil {
		t.Fatalf("Paginate() error = %v", err)
	}
	for i, page := range dp.Pages() {
		if page == old[i] {
			t.Errorf("page %d reused across passes", i+1)
		}
		if page.Children()[0] == n {
			t.Errorf("page %d holds the content node itself", i+1)
		}
	}
}
