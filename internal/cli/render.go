package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/matzehuels/recoveryflow/pkg/diagram"
	"github.com/matzehuels/recoveryflow/pkg/observability"
	"github.com/matzehuels/recoveryflow/pkg/workflow"
)

// renderFlags holds the raw flag values of the render command. Only flags the
// user actually set override the config file.
type renderFlags struct {
	configPath string
	noCache    bool
	cacheTTL   time.Duration
	values     config
}

// renderCommand creates the render command, which is also the root action.
func (c *CLI) renderCommand() *cobra.Command {
	flags := renderFlags{
		values:   defaultConfig(),
		cacheTTL: defaultCacheTTL,
	}

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render the workflow diagram to an image",
		Long: `Render the AI recovery trainer workflow diagram.

The graph description is written next to the image as <basename>.gv and the
image as <basename>.<format>. On success the image is opened in the system
viewer unless --open=false is given.

Settings are read from the compiled-in defaults, then from --config, then from
flags given on the command line.

Rendered images are cached locally; use --no-cache to always run the engine.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.resolve(cmd.Flags())
			if err != nil {
				return err
			}
			return c.runRender(cmd.Context(), cfg)
		},
	}

	v := &flags.values
	cmd.Flags().StringVar(&flags.configPath, "config", "", "TOML config file")
	cmd.Flags().StringVarP(&v.Basename, "output", "o", v.Basename, "output basename, without extension")
	cmd.Flags().StringVar(&v.Dir, "dir", v.Dir, "output directory")
	cmd.Flags().StringVarP(&v.Format, "format", "f", v.Format, "output format: png (default), svg, pdf")
	cmd.Flags().StringVar(&v.Direction, "direction", v.Direction, "rank direction: TB (default), LR, BT, RL")
	cmd.Flags().StringVar(&v.Size, "size", v.Size, "size bound in inches, e.g. 8 or 8,10")
	cmd.Flags().StringVar(&v.Layout, "layout", v.Layout, "layout algorithm: dot (default), neato, circo, ...")
	cmd.Flags().StringVar(&v.Engine, "engine", v.Engine, "render engine: graphviz (default, embedded), exec (dot binary)")
	cmd.Flags().BoolVar(&v.KeepSource, "keep-source", v.KeepSource, "keep the .gv description next to the image")
	cmd.Flags().BoolVar(&v.Open, "open", v.Open, "open the image in the system viewer")
	cmd.Flags().StringVar(&v.MetricsFile, "metrics-file", "", "write Prometheus metrics to this file")
	cmd.Flags().BoolVar(&flags.noCache, "no-cache", false, "disable caching")
	cmd.Flags().StringVar(&v.Cache.RedisURL, "redis-url", "", "use a Redis artifact cache, e.g. redis://localhost:6379/0")
	cmd.Flags().DurationVar(&flags.cacheTTL, "cache-ttl", flags.cacheTTL, "lifetime of cached images")

	return cmd
}

// resolve layers the config file and the changed flags over the defaults.
func (f *renderFlags) resolve(fs *pflag.FlagSet) (config, error) {
	cfg, err := loadConfig(f.configPath)
	if err != nil {
		return cfg, err
	}

	set := func(name string, apply func()) {
		if fs.Changed(name) {
			apply()
		}
	}
	set("output", func() { cfg.Basename = f.values.Basename })
	set("dir", func() { cfg.Dir = f.values.Dir })
	set("format", func() { cfg.Format = f.values.Format })
	set("direction", func() { cfg.Direction = f.values.Direction })
	set("size", func() { cfg.Size = f.values.Size })
	set("layout", func() { cfg.Layout = f.values.Layout })
	set("engine", func() { cfg.Engine = f.values.Engine })
	set("keep-source", func() { cfg.KeepSource = f.values.KeepSource })
	set("open", func() { cfg.Open = f.values.Open })
	set("metrics-file", func() { cfg.MetricsFile = f.values.MetricsFile })
	set("redis-url", func() { cfg.Cache.RedisURL = f.values.Cache.RedisURL })
	set("cache-ttl", func() { cfg.Cache.TTL = duration{f.cacheTTL} })
	if f.noCache {
		cfg.Cache.Disabled = true
	}
	return cfg, nil
}

// runRender builds the workflow diagram and renders it with cfg.
func (c *CLI) runRender(ctx context.Context, cfg config) error {
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	d, err := workflow.Build(cfg.workflowOptions())
	if err != nil {
		return fmt.Errorf("build workflow: %w", err)
	}
	logger.Debug("Built workflow", "nodes", d.NodeCount(), "edges", d.EdgeCount(), "format", cfg.Format, "direction", cfg.Direction)

	engine := c.engine
	if engine == nil {
		if engine, err = diagram.NewEngine(cfg.Engine); err != nil {
			return err
		}
	}
	viewer := c.viewer
	if viewer == nil {
		viewer = diagram.NewSystemViewer()
	}

	artifacts, err := newCache(cfg.Cache, logger)
	if err != nil {
		return fmt.Errorf("open cache: %w", err)
	}
	defer artifacts.Close()

	if cfg.MetricsFile != "" {
		hooks := observability.NewPrometheusHooks()
		observability.SetRenderHooks(hooks)
		observability.SetCacheHooks(hooks)
		defer observability.Reset()
		defer func() {
			if err := hooks.WriteTextfile(cfg.MetricsFile); err != nil {
				logger.Warn("Could not write metrics", "path", cfg.MetricsFile, "err", err)
			}
		}()
	}

	renderer := diagram.NewRenderer(
		diagram.WithEngine(engine),
		diagram.WithViewer(viewer),
		diagram.WithLogger(logger),
		diagram.WithCache(artifacts, cfg.Cache.TTL.Duration),
		diagram.WithDir(cfg.Dir),
		diagram.WithKeepSource(cfg.KeepSource),
	)

	var spinner *Spinner
	if isTerminal(os.Stderr) && logger.GetLevel() > LogDebug {
		spinner = newSpinner(ctx, os.Stderr, fmt.Sprintf("Rendering %s with %s...", cfg.Format, engine.Name()))
		spinner.Start()
	}
	res, err := renderer.Render(ctx, d, cfg.Basename, cfg.Open)
	if spinner != nil {
		spinner.Stop()
	}
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return err
	}

	c.printSuccess("Rendered %s", filepath.Base(res.Path))
	c.printFile(res.Path)
	if res.SourcePath != "" {
		c.printFile(res.SourcePath)
	}
	c.printStats(d.NodeCount(), d.EdgeCount(), res.Size, res.Cached)
	for _, w := range res.Warnings {
		c.printWarning("%v", w)
	}

	prog.done("Rendered "+filepath.Base(res.Path), "id", res.ID, "cached", res.Cached)
	return nil
}
