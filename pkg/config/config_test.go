package config

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 800, cfg.Width)
	assert.Equal(t, 600, cfg.Height)
	assert.Equal(t, "", cfg.Background)
	assert.Equal(t, 5*time.Second, cfg.Timeout)
	assert.Equal(t, 24, cfg.MeshCells)
	assert.Equal(t, 150*time.Millisecond, cfg.Debounce)
	assert.Equal(t, "scene.svg", cfg.Output)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.NoError(t, cfg.Validate())
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("GEOMSVG_WIDTH", "1024")
	t.Setenv("GEOMSVG_HEIGHT", "768")
	t.Setenv("GEOMSVG_BACKGROUND", "#101010")
	t.Setenv("GEOMSVG_TIMEOUT", "250ms")
	t.Setenv("GEOMSVG_MESH_CELLS", "48")
	t.Setenv("GEOMSVG_LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 1024, cfg.Width)
	assert.Equal(t, 768, cfg.Height)
	assert.Equal(t, "#101010", cfg.Background)
	assert.Equal(t, 250*time.Millisecond, cfg.Timeout)
	assert.Equal(t, 48, cfg.MeshCells)

	lvl, err := cfg.Level()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, lvl)
}

func TestLoadRejectsMalformedValue(t *testing.T) {
	t.Setenv("GEOMSVG_WIDTH", "wide")
	_, err := Load()
	assert.Error(t, err)
}

func TestApply(t *testing.T) {
	cfg := Config{Width: 800, Height: 600, Timeout: time.Second, MeshCells: 24, Output: "scene.svg", LogLevel: "info"}

	cfg.Apply(Flags{})
	assert.Equal(t, 800, cfg.Width, "zero flags must not override")
	assert.Equal(t, "scene.svg", cfg.Output)

	cfg.Apply(Flags{Width: 320, Output: "out.svg", LogLevel: "warn", Timeout: 2 * time.Second})
	assert.Equal(t, 320, cfg.Width)
	assert.Equal(t, 600, cfg.Height)
	assert.Equal(t, "out.svg", cfg.Output)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, 2*time.Second, cfg.Timeout)
}

func TestValidate(t *testing.T) {
	valid := func() Config {
		return Config{Width: 800, Height: 600, Timeout: time.Second, MeshCells: 24, Output: "scene.svg", LogLevel: "info"}
	}
	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"zero width", func(c *Config) { c.Width = 0 }},
		{"negative height", func(c *Config) { c.Height = -1 }},
		{"zero timeout", func(c *Config) { c.Timeout = 0 }},
		{"zero mesh cells", func(c *Config) { c.MeshCells = 0 }},
		{"negative debounce", func(c *Config) { c.Debounce = -time.Second }},
		{"empty output", func(c *Config) { c.Output = "" }},
		{"bad log level", func(c *Config) { c.LogLevel = "loud" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid()
			tt.mutate(&c)
			assert.Error(t, c.Validate())
		})
	}
	c := valid()
	assert.NoError(t, c.Validate())
}
