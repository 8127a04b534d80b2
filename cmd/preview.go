package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/user/flipbook-cli/mpv"
)

var previewCmd = &cobra.Command{
	Use:   "preview <output-dir>",
	Short: "Flip through written pages in mpv",
	Long: `Open a directory of flipbook pages in mpv as a looping slideshow,
showing one page per --interval seconds.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := args[0]
		info, err := os.Stat(dir)
		if os.IsNotExist(err) {
			return fmt.Errorf("directory not found: %s", dir)
		}
		if err != nil {
			return fmt.Errorf("failed to access directory: %w", err)
		}
		if !info.IsDir() {
			return fmt.Errorf("not a directory: %s", dir)
		}

		interval := envCfg.Interval
		if cmd.Flags().Changed("interval") {
			interval, _ = cmd.Flags().GetFloat64("interval")
		}
		if !(interval > 0) {
			return fmt.Errorf("interval must be positive, got %v", interval)
		}

		process, err := mpv.LaunchSlideshow(dir, 1/interval)
		if err != nil {
			return fmt.Errorf("failed to launch mpv: %w", err)
		}
		fmt.Printf("Previewing %s at %g pages/s\n", dir, 1/interval)

		// Wait for mpv to exit
		return process.Wait()
	},
}

func init() {
	previewCmd.Flags().Float64P("interval", "i", 0.1, "Seconds each page is shown (env FLIPBOOK_INTERVAL)")

	rootCmd.AddCommand(previewCmd)
}
