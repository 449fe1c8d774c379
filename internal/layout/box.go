package layout

import (
	"fmt"

	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
)

// Point is a position in page space. Y grows towards the top of the page, so
// the first point of a box always lies above its diagonal point.
type Point = vec.Vec2

// Pt returns the point (x, y)
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

// Node is a positioned rectangular box with children.
//
// Translate moves the box and all of its descendants. dx moves it to the
// right, dy moves it in layout direction (down the page), so a positive dy
// decreases the y coordinates. Successive translations add up.
//
// Split cuts the box at line, measured from its own top edge. The receiver is
// shrunk to the part above the line and the part below is returned. The
// returned tail starts exactly at the split line; when the head ends above the
// line, the content of the tail is pushed down by that gap so that the heights
// of head and tail always add up to the original height. Split returns nil and
// leaves the receiver untouched when there is nothing to cut off, or when no
// non-empty head can be produced.
//
// Nodes are compared by identity, so implementations should be pointer types.
type Node interface {
	FirstPoint() Point
	DiagonalPoint() Point
	Height() float64
	MarginBottom() float64
	Children() []Node
	Translate(dx, dy float64)
	Split(line float64) Node
	Clone() Node
	DrawingTasks(ctx DrawContext) []DrawingTask
}

// Bounds returns the bounding rectangle of a node
func Bounds(n Node) rect.Rect {
	first, diagonal := n.FirstPoint(), n.DiagonalPoint()
	return rect.Rect{LLx: first.X, LLy: diagonal.Y, URx: diagonal.X, URy: first.Y}
}

// Describe returns a short human readable description of a node for logs and
// error messages.
func Describe(n Node) string {
	if n == nil {
		return "<nil>"
	}
	name := ""
	if named, ok := n.(interface{ Label() string }); ok {
		name = named.Label()
	}
	first, diagonal := n.FirstPoint(), n.DiagonalPoint()
	if name == "" {
		return fmt.Sprintf("%T[%.2f..%.2f]", n, first.Y, diagonal.Y)
	}
	return fmt.Sprintf("%T(%s)[%.2f..%.2f]", n, name, first.Y, diagonal.Y)
}

func translated(p Point, dx, dy float64) Point {
	return p.Add(vec.Vec2{X: dx, Y: -dy})
}

func cloneNodes(nodes []Node) []Node {
	if nodes == nil {
		return nil
	}
	out := make([]Node, len(nodes))
	for i, n := range nodes {
		out[i] = n.Clone()
	}
	return out
}
