package layout

// VerticalMargins are the margins kept above and below a box
type VerticalMargins struct {
	Top    float64
	Bottom float64
}

// BlockBox represents a block-level box in the layout. A leaf block has a
// fixed height, a block with children is as tall as its stacked children.
type BlockBox struct {
	Name        string
	Fill        string
	Stroke      string
	StrokeWidth float64
	Margins     VerticalMargins

	first    Point
	diagonal Point
	children []Node
}

// NewBlockBox creates a new block box of the given height. Its geometry is
// assigned by Stack or SetBounds.
func NewBlockBox(name string, height float64) *BlockBox {
	return &BlockBox{
		Name:     name,
		diagonal: Pt(0, -height),
	}
}

// NewContainer creates a block box holding the given children
func NewContainer(name string, children ...Node) *BlockBox {
	b := NewBlockBox(name, 0)
	b.children = append(b.children, children...)
	return b
}

// AddChild adds a child box
func (b *BlockBox) AddChild(child Node) {
	b.children = append(b.children, child)
}

// SetBounds positions the box itself, children are left alone
func (b *BlockBox) SetBounds(first, diagonal Point) {
	b.first, b.diagonal = first, diagonal
}

func (b *BlockBox) Label() string { return b.Name }

func (b *BlockBox) FirstPoint() Point     { return b.first }
func (b *BlockBox) DiagonalPoint() Point  { return b.diagonal }
func (b *BlockBox) Height() float64       { return b.first.Y - b.diagonal.Y }
func (b *BlockBox) Width() float64        { return b.diagonal.X - b.first.X }
func (b *BlockBox) MarginTop() float64    { return b.Margins.Top }
func (b *BlockBox) MarginBottom() float64 { return b.Margins.Bottom }
func (b *BlockBox) Children() []Node      { return b.children }

// Translate moves the box together with its children
func (b *BlockBox) Translate(dx, dy float64) {
	b.first = translated(b.first, dx, dy)
	b.diagonal = translated(b.diagonal, dx, dy)
	for _, child := range b.children {
		child.Translate(dx, dy)
	}
}

// Split cuts the block at line. A leaf block is cut exactly at the line.
// Children of a container that lie above the line stay in the head, children
// below it move into the tail and a child crossing the line is split in turn.
// A crossing child that cannot be split moves into the tail as a whole; the
// space it leaves behind is the gap by which the rest of the tail is pushed
// down.
func (b *BlockBox) Split(line float64) Node {
	if line <= 0 || line >= b.Height() {
		return nil
	}
	splitY := b.first.Y - line

	if len(b.children) == 0 {
		tail := b.fragment(Pt(b.first.X, splitY), b.diagonal, nil)
		b.diagonal = Pt(b.diagonal.X, splitY)
		b.Margins.Bottom = 0
		return tail
	}

	var head, tail []Node
	push := 0.0
	for _, child := range b.children {
		if push != 0 {
			child.Translate(0, push)
		}
		switch {
		case child.DiagonalPoint().Y >= splitY:
			head = append(head, child)
		case child.FirstPoint().Y <= splitY:
			tail = append(tail, child)
		default:
			top := child.FirstPoint().Y
			if rest := child.Split(top - splitY); rest != nil {
				push += child.DiagonalPoint().Y - splitY
				head = append(head, child)
				tail = append(tail, rest)
			} else {
				gap := top - splitY
				child.Translate(0, gap)
				push += gap
				tail = append(tail, child)
			}
		}
	}

	if len(head) == 0 {
		// nothing fits above the line, undo and move the whole block
		for _, child := range tail {
			child.Translate(0, -push)
		}
		return nil
	}

	rest := b.fragment(Pt(b.first.X, splitY), Pt(b.diagonal.X, b.diagonal.Y-push), tail)
	b.children = head
	b.diagonal = Pt(b.diagonal.X, splitY+push)
	b.Margins.Bottom = 0
	return rest
}

// fragment creates the tail of a split sharing the decoration of b
func (b *BlockBox) fragment(first, diagonal Point, children []Node) *BlockBox {
	return &BlockBox{
		Name:        b.Name,
		Fill:        b.Fill,
		Stroke:      b.Stroke,
		StrokeWidth: b.StrokeWidth,
		Margins:     VerticalMargins{Bottom: b.Margins.Bottom},
		first:       first,
		diagonal:    diagonal,
		children:    children,
	}
}

// Clone returns a deep copy of the box
func (b *BlockBox) Clone() Node {
	clone := *b
	clone.children = cloneNodes(b.children)
	return &clone
}

// DrawingTasks paints the box decoration followed by its children
func (b *BlockBox) DrawingTasks(ctx DrawContext) []DrawingTask {
	tasks := boxTasks(b.first, b.diagonal, b.Fill, b.Stroke, b.StrokeWidth)
	for _, child := range b.children {
		tasks = append(tasks, child.DrawingTasks(ctx)...)
	}
	return tasks
}

func (b *BlockBox) place(x, top, width float64) float64 {
	h := b.Height()
	if len(b.children) > 0 {
		h = Stack(b.children, x, top, width)
	}
	b.first = Pt(x, top)
	b.diagonal = Pt(x+width, top-h)
	return h
}
