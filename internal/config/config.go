package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/philipparndt/meshray/pkg/geometry"
	"github.com/philipparndt/meshray/pkg/raycast"
)

// Config holds the engine and command settings.
type Config struct {
	// Engine
	Strategy     string  `json:"strategy" yaml:"strategy" toml:"strategy"`
	Tolerance    float64 `json:"tolerance" yaml:"tolerance" toml:"tolerance"`
	Workers      int     `json:"workers" yaml:"workers" toml:"workers"`
	TaskFraction float64 `json:"task_fraction" yaml:"task_fraction" toml:"task_fraction"`

	// Commands
	RenderWidth   int      `json:"render_width" yaml:"render_width" toml:"render_width"`
	RenderHeight  int      `json:"render_height" yaml:"render_height" toml:"render_height"`
	WatchDebounce Duration `json:"watch_debounce" yaml:"watch_debounce" toml:"watch_debounce"`
}

// Duration is a time.Duration written as "250ms", "1s" in config files
type Duration time.Duration

// UnmarshalText implements encoding.TextUnmarshaler
func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = Duration(parsed)
	return nil
}

// MarshalText implements encoding.TextMarshaler
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// Load reads a config file. The format follows the extension: .yaml/.yml,
// .toml or .json. Fields not set in the file keep their zero values.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	var cfg Config
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &cfg)
	case ".toml":
		err = toml.Unmarshal(data, &cfg)
	case ".json":
		err = json.Unmarshal(data, &cfg)
	default:
		return Config{}, fmt.Errorf("config: unsupported format %q for %s", ext, path)
	}
	if err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}

	return cfg, nil
}

// Flags holds CLI flag values that override config file settings.
type Flags struct {
	Strategy  string
	Tolerance float64
	Workers   int
}

// Resolve applies CLI overrides, then fills empty fields with defaults.
// An unknown strategy name is an error.
func (c *Config) Resolve(flags Flags) error {
	// CLI flags override config file
	if flags.Strategy != "" {
		c.Strategy = flags.Strategy
	}
	if flags.Tolerance > 0 {
		c.Tolerance = flags.Tolerance
	}
	if flags.Workers > 0 {
		c.Workers = flags.Workers
	}

	if c.Strategy == "" {
		c.Strategy = raycast.Partitioned.String()
	}
	if _, err := raycast.ParseStrategy(c.Strategy); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if c.Tolerance <= 0 {
		c.Tolerance = geometry.Eps
	}
	if c.Workers <= 0 {
		c.Workers = runtime.NumCPU()
	}
	if c.TaskFraction <= 0 || c.TaskFraction > 1 {
		c.TaskFraction = raycast.DefaultTaskFraction
	}
	if c.RenderWidth <= 0 {
		c.RenderWidth = 256
	}
	if c.RenderHeight <= 0 {
		c.RenderHeight = c.RenderWidth
	}
	if c.WatchDebounce <= 0 {
		c.WatchDebounce = Duration(250 * time.Millisecond)
	}
	return nil
}

// EngineOptions converts a resolved config to engine options
func (c Config) EngineOptions() raycast.Options {
	strategy, err := raycast.ParseStrategy(c.Strategy)
	if err != nil {
		strategy = raycast.DefaultOptions().Strategy
	}
	return raycast.Options{
		Strategy:     strategy,
		Tolerance:    c.Tolerance,
		Workers:      c.Workers,
		TaskFraction: c.TaskFraction,
	}
}
