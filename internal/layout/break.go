package layout

// PageBreak is an invisible marker that closes the current page right after
// the content preceding it.
type PageBreak struct {
	at Point
}

// NewPageBreak returns a page break marker
func NewPageBreak() *PageBreak {
	return &PageBreak{}
}

func (p *PageBreak) FirstPoint() Point     { return p.at }
func (p *PageBreak) DiagonalPoint() Point  { return p.at }
func (p *PageBreak) Height() float64       { return 0 }
func (p *PageBreak) MarginBottom() float64 { return 0 }
func (p *PageBreak) Children() []Node      { return nil }

func (p *PageBreak) Translate(dx, dy float64) {
	p.at = translated(p.at, dx, dy)
}

func (p *PageBreak) Split(float64) Node { return nil }

func (p *PageBreak) Clone() Node {
	clone := *p
	return &clone
}

func (p *PageBreak) DrawingTasks(DrawContext) []DrawingTask { return nil }

func (p *PageBreak) place(x, top, _ float64) float64 {
	p.at = Pt(x, top)
	return 0
}
