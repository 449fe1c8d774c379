package layout

// placer is implemented by nodes that know how to lay themselves out in a
// column of the given width with their top edge at top.
type placer interface {
	place(x, top, width float64) float64
}

// Stack lays out nodes top-down in document order, starting at top, and
// returns the height consumed including the margins between the nodes.
// Nodes not built by this package keep their size and are only moved.
func Stack(nodes []Node, x, top, width float64) float64 {
	y := top
	for _, n := range nodes {
		if m, ok := n.(interface{ MarginTop() float64 }); ok {
			y -= m.MarginTop()
		}

		var h float64
		if p, ok := n.(placer); ok {
			h = p.place(x, y, width)
		} else {
			first := n.FirstPoint()
			n.Translate(x-first.X, first.Y-y)
			h = n.Height()
		}

		y -= h + n.MarginBottom()
	}
	return top - y
}
