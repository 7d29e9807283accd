// Package pkg provides the libraries behind recoveryflow, which draws the
// screen and flow map of the AI recovery trainer app.
//
// # Overview
//
// The pkg directory is organized into these areas:
//
//  1. [workflow] - The fixed set of screens and transitions
//  2. [diagram] - Diagram builder, DOT output, layout engines and viewer
//  3. [cache] - Rendered image cache (file, Redis, null)
//  4. [observability] - Render and cache hooks, Prometheus textfile export
//  5. [errors] - Coded errors shared by all packages
//
// # Architecture
//
// The data flow of a single run:
//
//	workflow.Build
//	      ↓
//	  [diagram] Diagram (Building)
//	      ↓
//	  Renderer: validate → write .gv → engine (or cache) → write image
//	      ↓
//	  Diagram (Rendered), optional viewer launch
//
// # Quick Start
//
//	d, _ := workflow.Build(workflow.Options{Format: "svg"})
//	r := diagram.NewRenderer(diagram.WithDir("out"))
//	res, err := r.Render(ctx, d, workflow.DefaultBasename, false)
//
// # Testing
//
//	go test ./pkg/...           # All tests
//	go test -run Example ./...  # Examples only
//
// [workflow]: https://pkg.go.dev/github.com/matzehuels/recoveryflow/pkg/workflow
// [diagram]: https://pkg.go.dev/github.com/matzehuels/recoveryflow/pkg/diagram
// [cache]: https://pkg.go.dev/github.com/matzehuels/recoveryflow/pkg/cache
// [observability]: https://pkg.go.dev/github.com/matzehuels/recoveryflow/pkg/observability
// [errors]: https://pkg.go.dev/github.com/matzehuels/recoveryflow/pkg/errors
package pkg
