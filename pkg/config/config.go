// Package config loads command settings from GEOMSVG_* environment
// variables and lets command-line flags override them.
package config

import (
	"log/slog"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/pkg/errors"
)

// Prefix is the environment variable prefix, e.g. GEOMSVG_WIDTH.
const Prefix = "geomsvg"

// Config holds the command settings.
type Config struct {
	// Canvas defaults, used until a script calls (canvas ...) or (background ...).
	Width      int    `envconfig:"WIDTH" default:"800"`
	Height     int    `envconfig:"HEIGHT" default:"600"`
	Background string `envconfig:"BACKGROUND" default:""`

	// Evaluation and tessellation
	Timeout   time.Duration `envconfig:"TIMEOUT" default:"5s"`
	MeshCells int           `envconfig:"MESH_CELLS" default:"24"`

	// Quiet period after a file change before watch mode re-renders.
	Debounce time.Duration `envconfig:"DEBOUNCE" default:"150ms"`

	Output   string `envconfig:"OUTPUT" default:"scene.svg"`
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`
}

// Load reads the configuration from the environment.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(Prefix, &cfg); err != nil {
		return nil, errors.Wrap(err, "config: process environment")
	}
	return &cfg, nil
}

// Flags holds CLI flag values that override environment settings.
type Flags struct {
	Width      int
	Height     int
	Background string
	Timeout    time.Duration
	MeshCells  int
	Output     string
	LogLevel   string
}

// Apply overrides settings with every non-zero flag.
func (c *Config) Apply(flags Flags) {
	if flags.Width > 0 {
		c.Width = flags.Width
	}
	if flags.Height > 0 {
		c.Height = flags.Height
	}
	if flags.Background != "" {
		c.Background = flags.Background
	}
	if flags.Timeout > 0 {
		c.Timeout = flags.Timeout
	}
	if flags.MeshCells > 0 {
		c.MeshCells = flags.MeshCells
	}
	if flags.Output != "" {
		c.Output = flags.Output
	}
	if flags.LogLevel != "" {
		c.LogLevel = flags.LogLevel
	}
}

// Validate reports the first setting that cannot be used.
func (c *Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return errors.Errorf("config: canvas %dx%d must be positive", c.Width, c.Height)
	}
	if c.Timeout <= 0 {
		return errors.Errorf("config: timeout %s must be positive", c.Timeout)
	}
	if c.Debounce < 0 {
		return errors.Errorf("config: debounce %s must not be negative", c.Debounce)
	}
	if c.MeshCells <= 0 {
		return errors.Errorf("config: mesh cells %d must be positive", c.MeshCells)
	}
	if c.Output == "" {
		return errors.New("config: output path is empty")
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	return nil
}

// Level parses LogLevel ("debug", "info", "warn", "error").
func (c *Config) Level() (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, errors.Wrapf(err, "config: log level %q", c.LogLevel)
	}
	return l, nil
}
