package flipbook

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultOutputDir(t *testing.T) {
	assert.Equal(t, "/videos/cat_flipbook", DefaultOutputDir("/videos/cat.mp4"))
	assert.Equal(t, "clips/run.v2_flipbook", DefaultOutputDir("clips/run.v2.mov"))
}

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := DefaultConfig("/videos/cat.mp4")
	assert.NoError(t, cfg.Validate())
	assert.Equal(t, 0.1, cfg.IntervalSeconds)
	assert.Equal(t, 800, cfg.TargetWidth)
	assert.Equal(t, 0.5, cfg.SplitRatio)
	assert.Equal(t, 40, cfg.FontSize)
	assert.True(t, cfg.AddBorder)
	assert.Equal(t, 60, cfg.LabelBandHeight())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"no video", func(c *Config) { c.VideoPath = "" }},
		{"no output", func(c *Config) { c.OutputDir = "" }},
		{"zero interval", func(c *Config) { c.IntervalSeconds = 0 }},
		{"negative interval", func(c *Config) { c.IntervalSeconds = -0.1 }},
		{"nan interval", func(c *Config) { c.IntervalSeconds = math.NaN() }},
		{"inf interval", func(c *Config) { c.IntervalSeconds = math.Inf(1) }},
		{"zero width", func(c *Config) { c.TargetWidth = 0 }},
		{"split zero", func(c *Config) { c.SplitRatio = 0 }},
		{"split one", func(c *Config) { c.SplitRatio = 1 }},
		{"zero font", func(c *Config) { c.FontSize = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig("/videos/cat.mp4")
			tt.mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
