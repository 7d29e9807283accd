// Package diagram builds small directed-graph diagrams and renders them with
// Graphviz.
//
// # Overview
//
// A [Diagram] collects labeled nodes and directed edges plus a handful of
// rendering attributes. A [Renderer] serializes it to DOT, hands the
// description to an [Engine] for layout and rasterization, and writes the
// result to <basename>.<format>. Layout is never computed here; the engine is
// a black box.
//
//	d := diagram.New("Signup flow")
//	_ = d.AddNode("L", "Landing Page")
//	_ = d.AddNode("LS", "Login / Signup")
//	_ = d.AddEdges(diagram.Edge{From: "L", To: "LS"})
//
//	r := diagram.NewRenderer(diagram.WithLogger(logger))
//	res, err := r.Render(ctx, d, "signup", false)
//
// # Lifecycle
//
// A diagram starts in [Building] and moves to [Rendered] after the first
// successful render. Mutations after that fail with INVALID_STATE; rendering
// again is allowed and rewrites the same files.
//
// # Validation
//
// Declarations are accepted without checks. At render time, edges that name
// undeclared nodes fail with UNKNOWN_NODE and an invalid rank direction or
// size fails with RENDER_CONFIG, both before any file is written. A format the
// engine rejects also fails with RENDER_CONFIG, but only after the retained
// <basename>.gv has been written; no image is written in either case.
//
// # Determinism
//
// [Diagram.DOT] emits nodes in declaration order and edges in insertion
// order, so identical declarations produce byte-identical descriptions.
// Redeclaring a node replaces its label in place.
//
// # Engines
//
//   - [GraphvizEngine]: in-process via [github.com/goccy/go-graphviz]; PDF
//     output additionally requires rsvg-convert
//   - [ExecEngine]: the system dot binary
package diagram
