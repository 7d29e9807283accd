package diagram

import (
	"fmt"
	"strings"

	"github.com/matzehuels/recoveryflow/pkg/errors"
)

// Direction is the rank direction handed to the layout engine.
type Direction string

// Rank directions understood by Graphviz.
const (
	TopToBottom Direction = "TB"
	LeftToRight Direction = "LR"
	BottomToTop Direction = "BT"
	RightToLeft Direction = "RL"
)

var directionNames = map[string]Direction{
	"top-to-bottom": TopToBottom,
	"left-to-right": LeftToRight,
	"bottom-to-top": BottomToTop,
	"right-to-left": RightToLeft,
	"tb":            TopToBottom,
	"lr":            LeftToRight,
	"bt":            BottomToTop,
	"rl":            RightToLeft,
}

// ParseDirection maps a long or Graphviz-style direction name to a Direction,
// ignoring case. Unrecognized input is returned verbatim so the render step
// can reject it.
func ParseDirection(s string) Direction {
	if d, ok := directionNames[strings.ToLower(strings.TrimSpace(s))]; ok {
		return d
	}
	return Direction(s)
}

// Valid reports whether d is one of the four rank directions.
func (d Direction) Valid() bool {
	switch d {
	case TopToBottom, LeftToRight, BottomToTop, RightToLeft:
		return true
	}
	return false
}

// Output formats with special handling. Any other format string is passed to
// the engine as-is.
const (
	FormatPNG = "png"
	FormatSVG = "svg"
	FormatPDF = "pdf"
)

// DefaultLayout is the Graphviz hierarchical layout program.
const DefaultLayout = "dot"

// Node is a labeled vertex. Labels may span several lines.
type Node struct {
	Key   string
	Label string
}

// Edge is a directed transition between two node keys.
type Edge struct {
	From string
	To   string
}

// Config holds the rendering attributes of a diagram.
type Config struct {
	Direction Direction
	Format    string
	Size      string // Graphviz size attribute in inches, e.g. "8" or "8,6!"
	Layout    string // Graphviz layout program
	Comment   string // first line of the description
}

// DefaultConfig returns top-to-bottom PNG output with the dot layout.
func DefaultConfig() Config {
	return Config{
		Direction: TopToBottom,
		Format:    FormatPNG,
		Layout:    DefaultLayout,
	}
}

// State is the lifecycle stage of a Diagram.
type State int

const (
	// Building accepts configuration and declarations.
	Building State = iota
	// Rendered is terminal: the diagram has been written at least once.
	Rendered
)

func (s State) String() string {
	switch s {
	case Building:
		return "building"
	case Rendered:
		return "rendered"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Diagram is a directed graph under construction. It owns its nodes, in
// declaration order, and its edges, in the order they were added.
//
// A Diagram is not safe for concurrent use.
type Diagram struct {
	config Config
	order  []string
	labels map[string]string
	edges  []Edge
	state  State
}

// New creates an empty diagram with [DefaultConfig] and the given comment.
func New(comment string) *Diagram {
	cfg := DefaultConfig()
	cfg.Comment = comment
	return &Diagram{
		config: cfg,
		labels: make(map[string]string),
	}
}

func (d *Diagram) mutable(op string) error {
	if d.state != Building {
		return errors.New(errors.ErrCodeInvalidState, "%s: diagram already %s", op, d.state)
	}
	return nil
}

// Configure sets the rank direction, output format and size hint. Values are
// not checked here; the render step rejects what the engine cannot use.
func (d *Diagram) Configure(direction Direction, format, size string) error {
	if err := d.mutable("configure"); err != nil {
		return err
	}
	d.config.Direction = ParseDirection(string(direction))
	d.config.Format = format
	d.config.Size = size
	return nil
}

// SetLayout selects the Graphviz layout program (dot, neato, fdp, ...).
func (d *Diagram) SetLayout(layout string) error {
	if err := d.mutable("set layout"); err != nil {
		return err
	}
	d.config.Layout = layout
	return nil
}

// SetComment sets the comment written at the top of the description.
func (d *Diagram) SetComment(comment string) error {
	if err := d.mutable("set comment"); err != nil {
		return err
	}
	d.config.Comment = comment
	return nil
}

// AddNode declares a node. Declaring an existing key replaces its label and
// keeps its original position.
func (d *Diagram) AddNode(key, label string) error {
	if err := d.mutable("add node"); err != nil {
		return err
	}
	if _, ok := d.labels[key]; !ok {
		d.order = append(d.order, key)
	}
	d.labels[key] = label
	return nil
}

// AddEdges appends edges in the given order. Endpoints are checked at render
// time, not here.
func (d *Diagram) AddEdges(edges ...Edge) error {
	if err := d.mutable("add edges"); err != nil {
		return err
	}
	d.edges = append(d.edges, edges...)
	return nil
}

// Config returns a copy of the rendering attributes.
func (d *Diagram) Config() Config {
	return d.config
}

// State returns the lifecycle stage.
func (d *Diagram) State() State {
	return d.state
}

// Nodes returns the declared nodes in declaration order.
func (d *Diagram) Nodes() []Node {
	nodes := make([]Node, len(d.order))
	for i, k := range d.order {
		nodes[i] = Node{Key: k, Label: d.labels[k]}
	}
	return nodes
}

// Edges returns the edges in the order they were added.
func (d *Diagram) Edges() []Edge {
	return append([]Edge(nil), d.edges...)
}

// NodeCount returns the number of distinct node keys.
func (d *Diagram) NodeCount() int { return len(d.order) }

// EdgeCount returns the number of edges, duplicates included.
func (d *Diagram) EdgeCount() int { return len(d.edges) }

// Validate checks that every edge endpoint was declared. The first offending
// edge is reported as UNKNOWN_NODE.
func (d *Diagram) Validate() error {
	for _, e := range d.edges {
		for _, k := range [2]string{e.From, e.To} {
			if _, ok := d.labels[k]; !ok {
				return errors.New(errors.ErrCodeUnknownNode, "edge %s -> %s references undeclared node %q", e.From, e.To, k)
			}
		}
	}
	return nil
}

func (d *Diagram) markRendered() {
	d.state = Rendered
}
