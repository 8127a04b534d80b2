package cmd

import (
	"github.com/spf13/cobra"
	"github.com/user/flipbook-cli/config"
	"github.com/user/flipbook-cli/flipbook"
)

// runOptions are the pipeline flags shared by generate and tui.
type runOptions struct {
	output   string
	interval float64
	width    int
	split    float64
	fontSize int
	border   bool
	font     string
	decoder  string
}

func (o *runOptions) register(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVarP(&o.output, "output", "o", "", "Output directory (default <video>_flipbook next to the video)")
	f.Float64VarP(&o.interval, "interval", "i", 0.1, "Seconds between sampled frames (env FLIPBOOK_INTERVAL)")
	f.IntVarP(&o.width, "width", "w", 800, "Page width in pixels (env FLIPBOOK_WIDTH)")
	f.Float64VarP(&o.split, "split", "s", 0.5, "Fraction of each page taken from the next frame (env FLIPBOOK_SPLIT)")
	f.IntVar(&o.fontSize, "font-size", 40, "Page number font size in pixels (env FLIPBOOK_FONT_SIZE)")
	f.BoolVar(&o.border, "border", true, "Draw a 2px black border around each page (env FLIPBOOK_BORDER)")
	f.StringVar(&o.font, "font", "", "TrueType/OpenType font tried before the platform fonts (env FLIPBOOK_FONT)")
	f.StringVar(&o.decoder, "decoder", "auto", "Decoder: auto, ffmpeg or mpeg1 (env FLIPBOOK_DECODER)")
}

// pipelineConfig merges environment defaults with the flags the user set.
// An explicit flag always wins over the environment.
func (o *runOptions) pipelineConfig(cmd *cobra.Command, env *config.Config, videoPath string) (flipbook.Config, string) {
	changed := cmd.Flags().Changed

	cfg := flipbook.DefaultConfig(videoPath)
	cfg.IntervalSeconds = pick(changed("interval"), o.interval, env.Interval)
	cfg.TargetWidth = pick(changed("width"), o.width, env.Width)
	cfg.SplitRatio = pick(changed("split"), o.split, env.Split)
	cfg.FontSize = pick(changed("font-size"), o.fontSize, env.FontSize)
	cfg.AddBorder = pick(changed("border"), o.border, env.Border)
	cfg.FontPath = pick(changed("font"), o.font, env.FontPath)
	if o.output != "" {
		cfg.OutputDir = o.output
	}
	if videoPath == "" && o.output == "" {
		cfg.OutputDir = ""
	}

	return cfg, pick(changed("decoder"), o.decoder, env.Decoder)
}

func pick[T any](useFlag bool, flag, env T) T {
	if useFlag {
		return flag
	}
	return env
}
