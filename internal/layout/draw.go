package layout

import (
	"fmt"
	"strconv"
	"strings"
)

// Canvas is the drawing surface drawing tasks are executed against. All
// coordinates are given in page space (y grows upwards); rectangles and
// images are anchored at their lower left corner.
type Canvas interface {
	AddPage(width, height float64)
	SetFillColor(r, g, b int)
	SetDrawColor(r, g, b int)
	SetTextColor(r, g, b int)
	SetLineWidth(width float64)
	Rect(x, y, w, h float64, style string)
	Text(run TextRun)
	Image(src string, x, y, w, h float64) error
}

// TextRun is a single line of text. X and Width describe the line box the
// text is aligned in, Baseline is the y coordinate of the baseline.
type TextRun struct {
	X        float64
	Baseline float64
	Width    float64
	Size     float64
	Align    string
	Text     string
}

// DrawContext carries the page a node is drawn on
type DrawContext struct {
	Page  int
	Pages int
}

// DrawingTask is a unit of deferred rendering work
type DrawingTask func(c Canvas) error

// ParseColor parses a CSS like colour value (#rgb, #rrggbb, rgb(r,g,b)).
// Unknown values yield black and false.
func ParseColor(value string) ([3]int, bool) {
	value = strings.TrimSpace(value)
	if strings.HasPrefix(value, "#") {
		if r, g, b, ok := parseHexColor(value); ok {
			return [3]int{r, g, b}, true
		}
	}

	var r, g, b int
	if _, err := fmt.Sscanf(value, "rgb(%d,%d,%d)", &r, &g, &b); err == nil {
		return [3]int{r, g, b}, true
	}
	if _, err := fmt.Sscanf(value, "rgb(%d, %d, %d)", &r, &g, &b); err == nil {
		return [3]int{r, g, b}, true
	}

	return [3]int{0, 0, 0}, false
}

// parseHexColor parses #RRGGBB or #RGB into r,g,b
func parseHexColor(s string) (int, int, int, bool) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(s) == 3 {
		s = string([]byte{s[0], s[0], s[1], s[1], s[2], s[2]})
	}
	if len(s) != 6 {
		return 0, 0, 0, false
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return 0, 0, 0, false
	}
	return int(v >> 16 & 0xff), int(v >> 8 & 0xff), int(v & 0xff), true
}

// boxTasks draws the background and the outline of a box
func boxTasks(first, diagonal Point, fill, stroke string, strokeWidth float64) []DrawingTask {
	var tasks []DrawingTask
	w, h := diagonal.X-first.X, first.Y-diagonal.Y
	if h <= 0 {
		return nil
	}
	if c, ok := ParseColor(fill); ok && fill != "" {
		tasks = append(tasks, func(cv Canvas) error {
			cv.SetFillColor(c[0], c[1], c[2])
			cv.Rect(first.X, diagonal.Y, w, h, "F")
			return nil
		})
	}
	if c, ok := ParseColor(stroke); ok && stroke != "" {
		if strokeWidth <= 0 {
			strokeWidth = 1
		}
		tasks = append(tasks, func(cv Canvas) error {
			cv.SetDrawColor(c[0], c[1], c[2])
			cv.SetLineWidth(strokeWidth)
			cv.Rect(first.X, diagonal.Y, w, h, "D")
			return nil
		})
	}
	return tasks
}
