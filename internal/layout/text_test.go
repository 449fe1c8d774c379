package layout

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestNewTextBox_Defaults(t *testing.T) {
	text := NewTextBox([]string{"a", "b"}, 0, 0)
	size := 12.0
	if text.FontSize != size || text.LineHeight != size*1.2 {
		t.Errorf("font size %v, line height %v", text.FontSize, text.LineHeight)
	}
	if text.Height() != 2*text.LineHeight {
		t.Errorf("Height() = %v before placement", text.Height())
	}
}

func TestTextBox_Split(t *testing.T) {
	text := NewTextBox([]string{"a", "b", "c", "d"}, 10, 20)
	text.Margins = VerticalMargins{Top: 3, Bottom: 6}
	Stack([]Node{text}, 0, 103, 100)

	rest := text.Split(50)
	if rest == nil {
		t.Fatal("Split() returned nil")
	}
	tail := rest.(*TextBox)

	if diff := cmp.Diff([]string{"a", "b"}, text.Lines); diff != "" {
		t.Errorf("head lines mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"c", "d"}, tail.Lines); diff != "" {
		t.Errorf("tail lines mismatch (-want +got):\n%s", diff)
	}
	// head ends on a line boundary 10pt above the split line, the tail is
	// pushed down by that gap
	if got, want := extentOf(text), (extent{100, 60}); got != want {
		t.Errorf("head = %v, want %v", got, want)
	}
	if got, want := extentOf(tail), (extent{50, 10}); got != want {
		t.Errorf("tail = %v, want %v", got, want)
	}
	if text.Height()+tail.Height() != 80 {
		t.Errorf("head and tail add up to %v, want 80", text.Height()+tail.Height())
	}
	if text.MarginBottom() != 0 || tail.MarginBottom() != 6 || tail.MarginTop() != 0 {
		t.Error("bottom margin must move to the tail")
	}

	tail.Lines[0] = "changed"
	text.Lines = append(text.Lines, "x")
	if tail.Lines[0] != "changed" || len(tail.Lines) != 2 {
		t.Error("head and tail share line storage")
	}
}

func TestTextBox_SplitRefused(t *testing.T) {
	tests := []struct {
		name string
		line float64
	}{
		{"above the first line end", 15},
		{"at the top", 0},
		{"at the bottom", 80},
		{"below the box", 200},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text := NewTextBox([]string{"a", "b", "c", "d"}, 10, 20)
			Stack([]Node{text}, 0, 80, 100)
			if rest := text.Split(tt.line); rest != nil {
				t.Fatalf("Split(%v) = %v, want nil", tt.line, Describe(rest))
			}
			if len(text.Lines) != 4 || extentOf(text) != (extent{80, 0}) {
				t.Errorf("Split(%v) modified the box", tt.line)
			}
		})
	}
}

func TestTextBox_SplitOnExactBoundary(t *testing.T) {
	text := NewTextBox([]string{"a", "b", "c"}, 10, 20)
	Stack([]Node{text}, 0, 60, 100)

	rest := text.Split(40)
	if rest == nil {
		t.Fatal("Split() returned nil")
	}
	if got, want := extentOf(text), (extent{60, 20}); got != want {
		t.Errorf("head = %v, want %v", got, want)
	}
	if got, want := extentOf(rest), (extent{20, 0}); got != want {
		t.Errorf("tail = %v, want %v", got, want)
	}
}

func TestTextBox_Clone(t *testing.T) {
	text := NewTextBox([]string{"a", "b"}, 10, 0)
	clone := text.Clone().(*TextBox)
	clone.Lines[0] = "z"
	if text.Lines[0] != "a" {
		t.Error("Clone() shares lines")
	}
}
