package diagram

import (
	"bytes"
	"context"
	"os/exec"
	"regexp"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/recoveryflow/pkg/errors"
)

// Engine lays out a DOT description and rasterizes it. Implementations
// classify failures with ENGINE_UNAVAILABLE when they cannot run at all and
// RENDER_CONFIG when they reject the layout or format.
type Engine interface {
	// Name identifies the engine in cache keys and logs.
	Name() string
	Render(ctx context.Context, dot []byte, layout, format string) ([]byte, error)
}

// sizeRe matches Graphviz size values: "w", "w,h", optionally with a
// trailing "!" to scale up to the size.
var sizeRe = regexp.MustCompile(`^\d+(\.\d+)?(,\d+(\.\d+)?)?!?$`)

// checkConfig rejects attribute values Graphviz would silently ignore, so a
// typo surfaces as RENDER_CONFIG instead of an unexpected layout.
func checkConfig(cfg Config) error {
	if cfg.Direction != "" && !cfg.Direction.Valid() {
		return errors.New(errors.ErrCodeRenderConfig, "unsupported rank direction %q (want TB, LR, BT or RL)", cfg.Direction)
	}
	if cfg.Size != "" && !sizeRe.MatchString(cfg.Size) {
		return errors.New(errors.ErrCodeRenderConfig, "invalid size %q (want \"w\", \"w,h\" or \"w,h!\" in inches)", cfg.Size)
	}
	if cfg.Format == "" {
		return errors.New(errors.ErrCodeRenderConfig, "output format is empty")
	}
	return nil
}

// =============================================================================
// In-process Graphviz
// =============================================================================

// GraphvizEngine renders in-process with the WebAssembly build of Graphviz, so
// no system installation is needed. PDF output is produced from SVG through
// rsvg-convert.
type GraphvizEngine struct{}

// NewGraphvizEngine returns the in-process engine.
func NewGraphvizEngine() *GraphvizEngine {
	return &GraphvizEngine{}
}

// Name returns "graphviz".
func (e *GraphvizEngine) Name() string { return "graphviz" }

// Render lays out dot with the given layout program and encodes it as format.
func (e *GraphvizEngine) Render(ctx context.Context, dot []byte, layout, format string) ([]byte, error) {
	if format == FormatPDF {
		svg, err := e.Render(ctx, dot, layout, FormatSVG)
		if err != nil {
			return nil, err
		}
		return ToPDF(ctx, svg)
	}

	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeEngineUnavailable, err, "init graphviz")
	}
	defer gv.Close()

	if layout != "" {
		gv.SetLayout(graphviz.Layout(layout))
	}

	g, err := graphviz.ParseBytes(dot)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "parse description")
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.Format(format), &buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeRenderConfig, err, "render %s with %s layout", format, layout)
	}
	return buf.Bytes(), nil
}

// =============================================================================
// System Graphviz
// =============================================================================

// ExecEngine shells out to a Graphviz binary (dot by default), which supports
// every output format the local installation was built with.
type ExecEngine struct {
	Binary string
}

// NewExecEngine returns an engine running binary, or "dot" when empty.
func NewExecEngine(binary string) *ExecEngine {
	if binary == "" {
		binary = "dot"
	}
	return &ExecEngine{Binary: binary}
}

// Name returns "exec".
func (e *ExecEngine) Name() string { return "exec" }

// Render pipes dot into the binary and returns its stdout.
func (e *ExecEngine) Render(ctx context.Context, dot []byte, layout, format string) ([]byte, error) {
	path, err := exec.LookPath(e.Binary)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeEngineUnavailable, err,
			"graphviz binary %q not found. Install with:\n  macOS:  brew install graphviz\n  Linux:  apt install graphviz", e.Binary)
	}

	args := []string{"-T" + format}
	if layout != "" {
		args = append(args, "-K"+layout)
	}
	cmd := exec.CommandContext(ctx, path, args...)
	cmd.Stdin = bytes.NewReader(dot)

	var out, errBuf bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &errBuf

	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, errors.Wrap(errors.ErrCodeRenderConfig, err, "%s: %s", e.Binary, strings.TrimSpace(errBuf.String()))
	}
	return out.Bytes(), nil
}

// NewEngine returns the engine registered under name: "graphviz" (or empty)
// for the in-process engine, "exec" for the system dot binary.
func NewEngine(name string) (Engine, error) {
	switch name {
	case "", "graphviz":
		return NewGraphvizEngine(), nil
	case "exec":
		return NewExecEngine(""), nil
	default:
		return nil, errors.New(errors.ErrCodeInvalidInput, "unknown engine %q (must be 'graphviz' or 'exec')", name)
	}
}

var (
	_ Engine = (*GraphvizEngine)(nil)
	_ Engine = (*ExecEngine)(nil)
)
