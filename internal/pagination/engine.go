package pagination

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/gompdf/pagebreak/internal/layout"
)

// Options represents options for the pagination engine
type Options struct {
	// MaxIterations bounds the number of splits of a single node, zero
	// selects DefaultMaxIterations.
	MaxIterations int
}

// Engine runs formatting passes over dynamic pages
type Engine struct {
	options Options
	log     *zap.Logger
}

// NewEngine creates a new pagination engine
func NewEngine(log *zap.Logger) *Engine {
	if log == nil {
		log = zap.NewNop()
	}
	return &Engine{
		options: Options{MaxIterations: DefaultMaxIterations},
		log:     log,
	}
}

// SetOptions sets the options for the pagination engine
func (e *Engine) SetOptions(options Options) {
	e.options = options
}

// pass is the subject of one formatting pass: the geometry of the dynamic
// page with a private copy of its content.
type pass struct {
	*DynamicPage
	children []layout.Node
}

func (p *pass) Children() []layout.Node { return p.children }

// Paginate breaks the content of d into pages. Previously produced pages are
// discarded first and the content of d is left untouched, so running it
// again yields the same pages.
func (e *Engine) Paginate(d *DynamicPage) error {
	d.Reset()

	subject := &pass{DynamicPage: d}
	for _, n := range d.Children() {
		subject.children = append(subject.children, n.Clone())
	}

	splitter := NewSplitter(subject, d, NewPagePolicy(d),
		WithLogger(e.log),
		WithMaxIterations(e.options.MaxIterations))
	if err := splitter.Split(); err != nil {
		d.Reset()
		return fmt.Errorf("failed to paginate: %w", err)
	}

	e.log.Debug("Pagination finished",
		zap.Int("pages", d.PageCount()),
		zap.Int("nodes", len(subject.children)),
		zap.Float64("translation", splitter.TotalVerticalTranslation()))
	return nil
}
