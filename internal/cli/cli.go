// Package cli implements the recoveryflow command-line interface.
//
// Running the binary without a subcommand renders the AI recovery trainer
// workflow with its compiled-in defaults, exactly like "recoveryflow render".
//
// # Commands
//
//   - render: lay out the workflow and write the image (default)
//   - dot: print the graph description without rendering
//   - cache: manage the rendered artifact cache
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. The logger is
// carried in the command context.
package cli

import (
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/recoveryflow/pkg/buildinfo"
	"github.com/matzehuels/recoveryflow/pkg/cache"
	"github.com/matzehuels/recoveryflow/pkg/diagram"
)

// appName is the application name used for directories and display.
const appName = "recoveryflow"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
	out    io.Writer

	// engine and viewer replace the configured ones when set.
	engine diagram.Engine
	viewer diagram.Viewer
}

// New creates a CLI that logs to w. Command results are printed to stdout.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		out:    os.Stdout,
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// SetOutput redirects command results (not logs) to w.
func (c *CLI) SetOutput(w io.Writer) {
	c.out = w
}

// RootCommand creates the root cobra command with all subcommands registered.
// The root command itself behaves like "render".
func (c *CLI) RootCommand() *cobra.Command {
	render := c.renderCommand()

	root := &cobra.Command{
		Use:          appName,
		Short:        "Render the AI recovery trainer workflow diagram",
		Long:         `recoveryflow draws the screen and flow map of the AI recovery trainer app with Graphviz and writes it to an image file.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		RunE:         render.RunE,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}
	root.Flags().AddFlagSet(render.Flags())
	root.SetVersionTemplate(buildinfo.Template())
	root.SetOut(c.out)

	root.AddCommand(render)
	root.AddCommand(c.dotCommand())
	root.AddCommand(c.cacheCommand())

	return root
}

// cacheDir returns the cache directory using XDG standard (~/.cache/recoveryflow/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// fileCacheDir returns the configured cache directory, or the XDG default.
func fileCacheDir(cfg cacheConfig) (string, error) {
	if cfg.Dir != "" {
		return cfg.Dir, nil
	}
	return cacheDir()
}

// newCache opens the artifact cache selected by cfg. A disabled cache, or a
// cache directory that cannot be resolved or created, yields a NullCache; the
// render then runs uncached. Only a malformed Redis URL is an error.
func newCache(cfg cacheConfig, logger *log.Logger) (cache.Cache, error) {
	switch {
	case cfg.Disabled:
		return cache.NewNullCache(), nil
	case cfg.RedisURL != "":
		return cache.NewRedisCache(cfg.RedisURL)
	}

	dir, err := fileCacheDir(cfg)
	if err != nil {
		logger.Warn("Cache disabled: no cache directory", "err", err)
		return cache.NewNullCache(), nil
	}
	fc, err := cache.NewFileCache(dir)
	if err != nil {
		logger.Warn("Cache disabled: cannot open cache directory", "dir", dir, "err", err)
		return cache.NewNullCache(), nil
	}
	return fc, nil
}
