// Package boxtree reads a YAML description of laid out boxes. The
// description is the output of a formatting pass: every box states its
// height or its content, positions are assigned when the tree is stacked.
//
//	version: 1
//	nodes:
//	  - type: block
//	    height: 120
//	    fill: "#eeeeee"
//	  - type: text
//	    text: |
//	      first line
//	      second line
//	  - type: break
//	  - type: image
//	    src: logo.png
//	    width: 120
//	    height: 60
package boxtree

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	validator "github.com/go-playground/validator/v10"
	yaml "gopkg.in/yaml.v3"

	"github.com/gompdf/pagebreak/internal/layout"
)

// MaxNodes bounds the number of nodes one description may expand to
const MaxNodes = 100000

// ErrTooManyNodes reports a description whose repeats expand beyond MaxNodes
var ErrTooManyNodes = errors.New("too many nodes")

// Node types
const (
	TypeBlock = "block"
	TypeText  = "text"
	TypeImage = "image"
	TypeBreak = "break"
)

// NodeSpec is the description of a single node
type NodeSpec struct {
	Type         string     `yaml:"type" validate:"oneof=block text image break"`
	Name         string     `yaml:"name,omitempty"`
	Repeat       int        `yaml:"repeat,omitempty" validate:"gte=0,lte=10000"`
	Height       float64    `yaml:"height,omitempty" validate:"gte=0"`
	Width        float64    `yaml:"width,omitempty" validate:"gte=0"`
	MarginTop    float64    `yaml:"margin_top,omitempty" validate:"gte=0"`
	MarginBottom float64    `yaml:"margin_bottom,omitempty" validate:"gte=0"`
	Fill         string     `yaml:"fill,omitempty"`
	Stroke       string     `yaml:"stroke,omitempty"`
	StrokeWidth  float64    `yaml:"stroke_width,omitempty" validate:"gte=0"`
	Text         string     `yaml:"text,omitempty"`
	Lines        []string   `yaml:"lines,omitempty"`
	FontSize     float64    `yaml:"font_size,omitempty" validate:"gte=0"`
	LineHeight   float64    `yaml:"line_height,omitempty" validate:"gte=0"`
	Color        string     `yaml:"color,omitempty"`
	Align        string     `yaml:"align,omitempty" validate:"omitempty,oneof=left center right"`
	Src          string     `yaml:"src,omitempty"`
	Children     []NodeSpec `yaml:"children,omitempty" validate:"dive"`
}

// Document is a parsed box tree description
type Document struct {
	Version int        `yaml:"version" validate:"eq=1"`
	Nodes   []NodeSpec `yaml:"nodes" validate:"dive"`
}

// Parser reads box tree descriptions
type Parser struct {
	validate *validator.Validate
}

// NewParser creates a new box tree parser
func NewParser() *Parser {
	return &Parser{validate: validator.New(validator.WithRequiredStructEnabled())}
}

// ParseString parses a description from a string
func (p *Parser) ParseString(content string) ([]layout.Node, error) {
	return p.Parse(strings.NewReader(content))
}

// ParseFile parses the description stored in a file
func (p *Parser) ParseFile(path string) ([]layout.Node, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read box tree: %w", err)
	}
	return p.Parse(bytes.NewReader(data))
}

// Parse parses a description and builds the nodes it lists
func (p *Parser) Parse(r io.Reader) ([]layout.Node, error) {
	doc, err := p.Decode(r)
	if err != nil {
		return nil, err
	}
	return Build(doc.Nodes)
}

// Decode reads and validates a description without building nodes
func (p *Parser) Decode(r io.Reader) (*Document, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var doc Document
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("empty box tree")
		}
		return nil, fmt.Errorf("failed to decode box tree: %w", err)
	}
	if err := p.validate.Struct(&doc); err != nil {
		return nil, fmt.Errorf("invalid box tree: %w", err)
	}
	return &doc, nil
}

// Build creates nodes from their descriptions. Repeats multiply through
// nested children; the expanded tree may hold at most MaxNodes nodes.
func Build(specs []NodeSpec) ([]layout.Node, error) {
	if countNodes(specs, MaxNodes) > MaxNodes {
		return nil, fmt.Errorf("%w: more than %d", ErrTooManyNodes, MaxNodes)
	}
	return buildAll(specs)
}

// countNodes returns the number of nodes specs expand to, or limit+1 once
// that number exceeds limit.
func countNodes(specs []NodeSpec, limit int) int {
	total := 0
	for i := range specs {
		per := 1 + countNodes(specs[i].Children, limit)
		count := max(specs[i].Repeat, 1)
		if per > limit || count > (limit-total)/per {
			return limit + 1
		}
		total += count * per
	}
	return total
}

func buildAll(specs []NodeSpec) ([]layout.Node, error) {
	var nodes []layout.Node
	for i := range specs {
		spec := &specs[i]
		count := max(spec.Repeat, 1)
		for range count {
			n, err := build(spec)
			if err != nil {
				return nil, fmt.Errorf("node %d (%s): %w", i, spec.Type, err)
			}
			nodes = append(nodes, n)
		}
	}
	return nodes, nil
}

func build(spec *NodeSpec) (layout.Node, error) {
	margins := layout.VerticalMargins{Top: spec.MarginTop, Bottom: spec.MarginBottom}

	switch spec.Type {
	case TypeBlock:
		b := layout.NewBlockBox(spec.Name, spec.Height)
		b.Fill, b.Stroke, b.StrokeWidth = spec.Fill, spec.Stroke, spec.StrokeWidth
		b.Margins = margins
		if len(spec.Children) > 0 {
			if spec.Height > 0 {
				return nil, fmt.Errorf("block with children cannot have a height")
			}
			children, err := buildAll(spec.Children)
			if err != nil {
				return nil, err
			}
			for _, c := range children {
				b.AddChild(c)
			}
		}
		return b, nil

	case TypeText:
		lines := spec.Lines
		if spec.Text != "" {
			if len(lines) > 0 {
				return nil, fmt.Errorf("text and lines are mutually exclusive")
			}
			lines = strings.Split(strings.TrimRight(spec.Text, "\n"), "\n")
		}
		if len(lines) == 0 {
			return nil, fmt.Errorf("text has no lines")
		}
		t := layout.NewTextBox(append([]string(nil), lines...), spec.FontSize, spec.LineHeight)
		t.Name, t.Color, t.Align = spec.Name, spec.Color, spec.Align
		t.Margins = margins
		return t, nil

	case TypeImage:
		if spec.Src == "" {
			return nil, fmt.Errorf("image has no source")
		}
		img := layout.NewImageBox(spec.Src, spec.Width, spec.Height)
		img.Name = spec.Name
		img.Margins = margins
		return img, nil

	case TypeBreak:
		return layout.NewPageBreak(), nil
	}
	return nil, fmt.Errorf("unknown node type %q", spec.Type)
}
