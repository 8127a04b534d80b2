package flipbook

import (
	"errors"
	"fmt"
	"math"
	"path/filepath"
	"strings"
)

// Config is a validated set of pipeline parameters.
type Config struct {
	VideoPath       string
	OutputDir       string
	IntervalSeconds float64
	TargetWidth     int
	SplitRatio      float64
	FontSize        int
	AddBorder       bool
	// FontPath, when set, is tried before the platform fonts.
	FontPath string
}

// DefaultConfig returns the stock parameters for videoPath, writing next to
// the video in DefaultOutputDir.
func DefaultConfig(videoPath string) Config {
	return Config{
		VideoPath:       videoPath,
		OutputDir:       DefaultOutputDir(videoPath),
		IntervalSeconds: 0.1,
		TargetWidth:     800,
		SplitRatio:      0.5,
		FontSize:        40,
		AddBorder:       true,
	}
}

// DefaultOutputDir returns "<video dir>/<video name>_flipbook".
// For example, "/videos/cat.mp4" returns "/videos/cat_flipbook".
func DefaultOutputDir(videoPath string) string {
	base := filepath.Base(videoPath)
	name := strings.TrimSuffix(base, filepath.Ext(base))
	return filepath.Join(filepath.Dir(videoPath), name+"_flipbook")
}

// Validate checks every option and reports the first one out of range.
func (c Config) Validate() error {
	switch {
	case c.VideoPath == "":
		return errors.New("video path is required")
	case c.OutputDir == "":
		return errors.New("output directory is required")
	case !(c.IntervalSeconds > 0) || math.IsInf(c.IntervalSeconds, 0):
		return fmt.Errorf("interval must be a positive number of seconds, got %v", c.IntervalSeconds)
	case c.TargetWidth <= 0:
		return fmt.Errorf("width must be positive, got %d", c.TargetWidth)
	case !(c.SplitRatio > 0 && c.SplitRatio < 1):
		return fmt.Errorf("split ratio must be between 0 and 1 (exclusive), got %v", c.SplitRatio)
	case c.FontSize <= 0:
		return fmt.Errorf("font size must be positive, got %d", c.FontSize)
	}
	return nil
}

// LabelBandHeight is the height of the white strip added below each page
// for its number.
func (c Config) LabelBandHeight() int {
	return c.FontSize + labelBandPadding
}
