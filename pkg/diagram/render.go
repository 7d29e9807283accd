package diagram

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/recoveryflow/pkg/cache"
	"github.com/matzehuels/recoveryflow/pkg/errors"
	"github.com/matzehuels/recoveryflow/pkg/observability"
)

// SourceExt is the extension of the retained graph description.
const SourceExt = ".gv"

// Renderer turns a Diagram into files on disk.
type Renderer struct {
	engine     Engine
	viewer     Viewer
	logger     *log.Logger
	cache      cache.Cache
	cacheTTL   time.Duration
	dir        string
	keepSource bool
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithEngine sets the layout engine. The default is [GraphvizEngine].
func WithEngine(e Engine) Option {
	return func(r *Renderer) { r.engine = e }
}

// WithViewer sets the viewer used when rendering with open set.
func WithViewer(v Viewer) Option {
	return func(r *Renderer) { r.viewer = v }
}

// WithLogger sets the logger. The default is log.Default().
func WithLogger(l *log.Logger) Option {
	return func(r *Renderer) { r.logger = l }
}

// WithCache stores artifacts in c for ttl (zero keeps them forever).
func WithCache(c cache.Cache, ttl time.Duration) Option {
	return func(r *Renderer) {
		r.cache = c
		r.cacheTTL = ttl
	}
}

// WithDir sets the output directory. The default is the working directory.
func WithDir(dir string) Option {
	return func(r *Renderer) { r.dir = dir }
}

// WithKeepSource controls whether the description is written next to the
// image as <basename>.gv. It is on by default.
func WithKeepSource(keep bool) Option {
	return func(r *Renderer) { r.keepSource = keep }
}

// NewRenderer creates a renderer with the in-process engine, the system
// viewer, no cache and source retention enabled.
func NewRenderer(opts ...Option) *Renderer {
	r := &Renderer{
		engine:     NewGraphvizEngine(),
		viewer:     NewSystemViewer(),
		logger:     log.Default(),
		cache:      cache.NewNullCache(),
		dir:        ".",
		keepSource: true,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Result describes one completed render.
type Result struct {
	ID         string        // unique per render call
	Path       string        // written artifact
	SourcePath string        // retained description, empty when not kept
	Format     string        // png, svg or pdf
	Size       int           // artifact bytes
	Cached     bool          // artifact came from the cache
	Duration   time.Duration // wall time including the viewer launch
	Warnings   []error       // non-fatal problems, e.g. VIEWER_LAUNCH
}

// Render writes d to <dir>/<basename>.<format> and, when open is set, asks the
// viewer to display it.
//
// Failures before the artifact is written are returned as errors and leave the
// diagram in its current state. A viewer failure is recorded in
// Result.Warnings instead. After the first successful call the diagram is
// Rendered; rendering it again rewrites the same files with the same content.
func (r *Renderer) Render(ctx context.Context, d *Diagram, basename string, open bool) (*Result, error) {
	start := time.Now()
	format := d.Config().Format
	hooks := observability.Render()
	hooks.OnRenderStart(ctx, format)

	res, err := r.render(ctx, d, basename)
	size := 0
	if res != nil {
		size = res.Size
	}
	hooks.OnRenderComplete(ctx, format, size, time.Since(start), err)
	if err != nil {
		return nil, err
	}
	d.markRendered()

	if open {
		err := r.viewer.Open(ctx, res.Path)
		hooks.OnViewerLaunch(ctx, err)
		if err != nil {
			warn := errors.Wrap(errors.ErrCodeViewerLaunch, err, "open %s", res.Path)
			r.logger.Warn("Could not open viewer", "path", res.Path, "err", err)
			res.Warnings = append(res.Warnings, warn)
		}
	}

	res.Duration = time.Since(start)
	return res, nil
}

func (r *Renderer) render(ctx context.Context, d *Diagram, basename string) (*Result, error) {
	if basename == "" {
		return nil, errors.New(errors.ErrCodeInvalidInput, "output basename is empty")
	}
	if err := d.Validate(); err != nil {
		return nil, err
	}
	cfg := d.Config()
	if err := checkConfig(cfg); err != nil {
		return nil, err
	}

	res := &Result{
		ID:     uuid.NewString(),
		Path:   filepath.Join(r.dir, basename+"."+cfg.Format),
		Format: cfg.Format,
	}
	r.logger.Debug("Rendering diagram", "id", res.ID, "nodes", d.NodeCount(), "edges", d.EdgeCount(),
		"engine", r.engine.Name(), "layout", cfg.Layout, "format", cfg.Format)

	dot := d.DOT()
	if r.keepSource {
		res.SourcePath = filepath.Join(r.dir, basename+SourceExt)
		if err := os.WriteFile(res.SourcePath, dot, 0644); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "write %s", res.SourcePath)
		}
		r.logger.Debug("Wrote description", "path", res.SourcePath, "bytes", len(dot))
	}

	data, cached, err := r.rasterize(ctx, dot, cfg)
	if err != nil {
		return nil, err
	}
	if err := os.WriteFile(res.Path, data, 0644); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "write %s", res.Path)
	}
	res.Size = len(data)
	res.Cached = cached
	r.logger.Debug("Wrote artifact", "path", res.Path, "bytes", res.Size, "cached", cached)
	return res, nil
}

// rasterize returns the artifact bytes, from the cache when possible. Cache
// failures are logged and never fail the render.
func (r *Renderer) rasterize(ctx context.Context, dot []byte, cfg Config) ([]byte, bool, error) {
	key := cache.ArtifactKey(dot, cache.ArtifactKeyOpts{
		Engine: r.engine.Name(),
		Layout: cfg.Layout,
		Format: cfg.Format,
	})
	hooks := observability.Cache()

	data, ok, err := r.cache.Get(ctx, key)
	if err != nil {
		r.logger.Warn("Cache read failed", "err", err)
	}
	if ok && len(data) > 0 {
		hooks.OnCacheHit(ctx, "artifact")
		return data, true, nil
	}
	hooks.OnCacheMiss(ctx, "artifact")

	data, err = r.engine.Render(ctx, dot, cfg.Layout, cfg.Format)
	if err != nil {
		return nil, false, err
	}

	if err := r.cache.Set(ctx, key, data, r.cacheTTL); err != nil {
		r.logger.Warn("Cache write failed", "err", err)
	} else {
		hooks.OnCacheSet(ctx, "artifact", len(data))
	}
	return data, false, nil
}
