package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/recoveryflow/pkg/diagram"
	"github.com/matzehuels/recoveryflow/pkg/errors"
	"github.com/matzehuels/recoveryflow/pkg/workflow"
)

const defaultCacheTTL = 7 * 24 * time.Hour

// config holds the settings of a render run. Values come from the compiled-in
// defaults, then an optional TOML file, then explicitly set flags.
type config struct {
	Basename    string      `toml:"basename"`
	Dir         string      `toml:"dir"`
	Format      string      `toml:"format"`
	Direction   string      `toml:"direction"`
	Size        string      `toml:"size"`
	Layout      string      `toml:"layout"`
	Engine      string      `toml:"engine"`
	KeepSource  bool        `toml:"keep_source"`
	Open        bool        `toml:"open"`
	MetricsFile string      `toml:"metrics_file"`
	Cache       cacheConfig `toml:"cache"`
}

type cacheConfig struct {
	Disabled bool     `toml:"disabled"`
	Dir      string   `toml:"dir"`
	RedisURL string   `toml:"redis_url"`
	TTL      duration `toml:"ttl"`
}

// duration reads Go duration strings such as "72h" from TOML.
type duration struct {
	time.Duration
}

func (d *duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", text, err)
	}
	d.Duration = v
	return nil
}

func (d duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

func defaultConfig() config {
	return config{
		Basename:   workflow.DefaultBasename,
		Dir:        ".",
		Format:     diagram.FormatPNG,
		Direction:  string(diagram.TopToBottom),
		Size:       workflow.DefaultSize,
		Layout:     diagram.DefaultLayout,
		Engine:     "graphviz",
		KeepSource: true,
		Open:       true,
		Cache:      cacheConfig{TTL: duration{defaultCacheTTL}},
	}
}

// loadConfig reads path on top of the defaults. Keys missing from the file
// keep their default values.
func loadConfig(path string) (config, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidInput, err, "read config %s", path)
	}
	md, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse config %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return cfg, errors.New(errors.ErrCodeInvalidInput, "unknown config key %q in %s", undecoded[0].String(), path)
	}
	return cfg, nil
}

// workflowOptions converts the render settings to workflow build options.
func (c config) workflowOptions() workflow.Options {
	return workflow.Options{
		Direction: diagram.ParseDirection(c.Direction),
		Format:    c.Format,
		Size:      c.Size,
		Layout:    c.Layout,
	}
}
