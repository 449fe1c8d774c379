package pagination

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/gompdf/pagebreak/internal/layout"
)

// ErrSplitDiverged reports a node that never fits no matter how often it is
// split. It points at a broken Split implementation or at content that is
// taller than a page and cannot be split; the pass must be discarded.
var ErrSplitDiverged = errors.New("split does not converge")

// DefaultMaxIterations bounds the number of splits of a single child
const DefaultMaxIterations = 1 << 16

// forcedBreakAllowance is added below a node that forces a break so that it
// always counts as overflowing.
const forcedBreakAllowance = 1

// Subject is the container whose children are distributed over pages.
// Height is the height of the area available on one page.
type Subject interface {
	DiagonalPoint() layout.Point
	Height() float64
	MarginBottom() float64
	Children() []layout.Node
}

// PageSource hands out the page currently accepting content
type PageSource interface {
	CurrentPage() *Page
}

// Policy supplies the behaviour that differs between splitting contexts.
//
// ForcesBreak reports whether the subject must be broken right after n.
// Add places n into the subject. Break closes the part of the subject being
// filled so that the next call to CurrentPage returns a fresh page.
type Policy interface {
	ForcesBreak(n layout.Node) bool
	Add(n layout.Node)
	Break()
}

// Splitter distributes the children of a subject over pages. A Splitter is
// not reentrant; one Split call must finish before the next starts.
type Splitter struct {
	subject Subject
	pages   PageSource
	policy  Policy

	log           *zap.Logger
	maxIterations int

	totalVerticalTranslation float64
}

// SplitterOption configures a Splitter
type SplitterOption func(*Splitter)

// WithLogger sets the logger used for split diagnostics
func WithLogger(log *zap.Logger) SplitterOption {
	return func(s *Splitter) {
		if log != nil {
			s.log = log
		}
	}
}

// WithMaxIterations bounds the number of splits of a single child
func WithMaxIterations(n int) SplitterOption {
	return func(s *Splitter) {
		if n > 0 {
			s.maxIterations = n
		}
	}
}

// NewSplitter creates a splitter for subject
func NewSplitter(subject Subject, pages PageSource, policy Policy, opts ...SplitterOption) *Splitter {
	s := &Splitter{
		subject:       subject,
		pages:         pages,
		policy:        policy,
		log:           zap.NewNop(),
		maxIterations: DefaultMaxIterations,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// TotalVerticalTranslation returns the offset consumed by page breaks so far
func (s *Splitter) TotalVerticalTranslation() float64 {
	return s.totalVerticalTranslation
}

// Split walks the children of the subject in document order and places each
// of them, splitting and moving fragments to new pages where they overflow.
// Nodes are modified in place.
func (s *Splitter) Split() error {
	s.totalVerticalTranslation = 0
	children := append([]layout.Node(nil), s.subject.Children()...)
	for _, child := range children {
		if err := s.splitChildIfNecessary(child); err != nil {
			return err
		}
	}
	return nil
}

func (s *Splitter) splitChildIfNecessary(n layout.Node) error {
	n.Translate(0, -s.totalVerticalTranslation)

	pageYCoordEnd := s.subject.DiagonalPoint().Y
	forced := s.policy.ForcesBreak(n)
	if forced {
		pageYCoordEnd = n.DiagonalPoint().Y + forcedBreakAllowance
	}

	var (
		hasBeenSplit bool
		stalled      int
	)
	for i := 0; ; i++ {
		if !shouldBeSplit(n, pageYCoordEnd) {
			if !hasBeenSplit {
				s.policy.Add(n)
			}
			return nil
		}
		if i >= s.maxIterations {
			return fmt.Errorf("%w: %s still overflows after %d splits", ErrSplitDiverged, layout.Describe(n), i)
		}

		var progressed bool
		n, progressed = s.splitChildAndGetProductOfSplitting(n)
		hasBeenSplit = true
		if forced {
			// the break happened, from now on the node only has to fit
			forced = false
			pageYCoordEnd = s.subject.DiagonalPoint().Y
		}

		if progressed {
			stalled = 0
		} else if stalled++; stalled > 1 {
			return fmt.Errorf("%w: %s does not fit on an empty page", ErrSplitDiverged, layout.Describe(n))
		}
	}
}

// shouldBeSplit reports whether n reaches below pageYCoordEnd. A node flush
// with the end does not overflow.
func shouldBeSplit(n layout.Node, pageYCoordEnd float64) bool {
	return n.DiagonalPoint().Y < pageYCoordEnd
}

// splitChildAndGetProductOfSplitting cuts n at the bottom of the current page,
// opens the next page and moves the part that did not fit to its top. It
// returns the moved fragment and whether anything changed at all.
func (s *Splitter) splitChildAndGetProductOfSplitting(n layout.Node) (layout.Node, bool) {
	subjectYCoordEnd := s.subject.DiagonalPoint().Y
	glyphYCoordStart := n.FirstPoint().Y
	splitLine := glyphYCoordStart - subjectYCoordEnd
	split := layout.Describe(n)

	tail := n.Split(splitLine)

	gap := 0.0
	if tail != nil {
		gap = n.DiagonalPoint().Y - subjectYCoordEnd
		glyphYCoordStart = tail.FirstPoint().Y
		s.policy.Add(n)
		n = tail
	}

	translation := s.subject.Height() + s.subject.MarginBottom() - glyphYCoordStart

	s.log.Debug("Splitting node",
		zap.String("node", split),
		zap.Float64("line", splitLine),
		zap.Bool("remainder", tail != nil),
		zap.Float64("gap", gap),
		zap.Float64("translation", translation))

	s.breakSubjectOfSplittingIncreaseTranslation(translation - gap)
	s.addToCurrentPageAndTranslate(n, translation)

	return n, tail != nil || translation != 0
}

func (s *Splitter) breakSubjectOfSplittingIncreaseTranslation(delta float64) {
	if delta < 0 {
		s.log.Warn("Negative page break translation", zap.Float64("delta", delta))
	}
	s.policy.Break()
	s.totalVerticalTranslation += delta
}

func (s *Splitter) addToCurrentPageAndTranslate(n layout.Node, translation float64) {
	s.pages.CurrentPage().Add(n)
	n.Translate(0, -translation)
}

// PagePolicy splits content over the pages of a DynamicPage. Only explicit
// page break markers force a break.
type PagePolicy struct {
	page *DynamicPage
}

// NewPagePolicy returns the whole-page policy for d
func NewPagePolicy(d *DynamicPage) *PagePolicy {
	return &PagePolicy{page: d}
}

func (p *PagePolicy) ForcesBreak(n layout.Node) bool {
	_, ok := n.(*layout.PageBreak)
	return ok
}

func (p *PagePolicy) Add(n layout.Node) {
	p.page.CurrentPage().Add(n)
}

// Break opens the next page. On a dynamic page without pages this opens the
// first one, so a break before any content is a no-op.
func (p *PagePolicy) Break() {
	p.page.CreateNextPage()
}
