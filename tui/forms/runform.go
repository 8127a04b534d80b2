package forms

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/user/flipbook-cli/flipbook"
)

// RunFormResult holds the raw field values of the run form. Numeric fields
// stay strings until Config parses them.
type RunFormResult struct {
	VideoPath string
	OutputDir string
	Interval  string
	Width     string
	Split     string
	FontSize  string
	Border    bool
}

// NewRunFormResult prefills the form from cfg.
func NewRunFormResult(cfg flipbook.Config) *RunFormResult {
	return &RunFormResult{
		VideoPath: cfg.VideoPath,
		OutputDir: cfg.OutputDir,
		Interval:  strconv.FormatFloat(cfg.IntervalSeconds, 'f', -1, 64),
		Width:     strconv.Itoa(cfg.TargetWidth),
		Split:     strconv.FormatFloat(cfg.SplitRatio, 'f', -1, 64),
		FontSize:  strconv.Itoa(cfg.FontSize),
		Border:    cfg.AddBorder,
	}
}

// Config parses the form values on top of base. An empty output directory
// falls back to the default next to the video.
func (r *RunFormResult) Config(base flipbook.Config) (flipbook.Config, error) {
	cfg := base
	cfg.VideoPath = strings.TrimSpace(r.VideoPath)
	cfg.OutputDir = strings.TrimSpace(r.OutputDir)
	if cfg.OutputDir == "" {
		cfg.OutputDir = flipbook.DefaultOutputDir(cfg.VideoPath)
	}
	cfg.AddBorder = r.Border

	var err error
	if cfg.IntervalSeconds, err = parsePositiveFloat(r.Interval); err != nil {
		return cfg, fmt.Errorf("interval: %w", err)
	}
	if cfg.TargetWidth, err = parsePositiveInt(r.Width); err != nil {
		return cfg, fmt.Errorf("width: %w", err)
	}
	if cfg.SplitRatio, err = parseSplit(r.Split); err != nil {
		return cfg, fmt.Errorf("split: %w", err)
	}
	if cfg.FontSize, err = parsePositiveInt(r.FontSize); err != nil {
		return cfg, fmt.Errorf("font size: %w", err)
	}
	return cfg, nil
}

// NewRunForm creates a huh form collecting the flipbook settings.
// The result pointer is bound to the form fields and will be populated on submit.
func NewRunForm(result *RunFormResult) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewNote().Title("New Flipbook"),

			huh.NewInput().
				Title("Video").
				Description("Path to the source video").
				Value(&result.VideoPath).
				Validate(validateVideo),

			huh.NewInput().
				Title("Output directory").
				Description("Leave empty for <video>_flipbook").
				Value(&result.OutputDir),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Interval").
				Description("Seconds between sampled frames").
				Value(&result.Interval).
				Validate(func(s string) error {
					_, err := parsePositiveFloat(s)
					return err
				}),

			huh.NewInput().
				Title("Width").
				Description("Page width in pixels").
				Value(&result.Width).
				Validate(func(s string) error {
					_, err := parsePositiveInt(s)
					return err
				}),

			huh.NewInput().
				Title("Split").
				Description("Fraction of the height taken from the next frame (between 0 and 1)").
				Value(&result.Split).
				Validate(func(s string) error {
					_, err := parseSplit(s)
					return err
				}),

			huh.NewInput().
				Title("Font size").
				Value(&result.FontSize).
				Validate(func(s string) error {
					_, err := parsePositiveInt(s)
					return err
				}),

			huh.NewConfirm().
				Title("Border").
				Affirmative("Yes").
				Negative("No").
				Value(&result.Border),
		),
	).WithTheme(Theme())
}

func validateVideo(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return errors.New("video is required")
	}
	info, err := os.Stat(s)
	if err != nil {
		return fmt.Errorf("video not found: %s", s)
	}
	if info.IsDir() {
		return fmt.Errorf("%s is a directory", s)
	}
	return nil
}

func parsePositiveFloat(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, errors.New("must be a number")
	}
	if v <= 0 {
		return 0, errors.New("must be greater than 0")
	}
	return v, nil
}

func parsePositiveInt(s string) (int, error) {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, errors.New("must be a whole number")
	}
	if v <= 0 {
		return 0, errors.New("must be greater than 0")
	}
	return v, nil
}

func parseSplit(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, errors.New("must be a number")
	}
	if v <= 0 || v >= 1 {
		return 0, errors.New("must be between 0 and 1, exclusive")
	}
	return v, nil
}
