package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/user/flipbook-cli/flipbook"
	"github.com/user/flipbook-cli/tui"
	"github.com/user/flipbook-cli/video"
	"go.uber.org/zap"
)

var tuiOpts runOptions

var tuiCmd = &cobra.Command{
	Use:   "tui [video-file]",
	Short: "Generate a flipbook interactively",
	Long: `Fill in the flipbook settings in a form, then watch the pipeline run.
Flags and FLIPBOOK_* variables pre-fill the form.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		videoPath := ""
		if len(args) == 1 {
			videoPath = args[0]
		}
		cfg, decoderName := tuiOpts.pipelineConfig(cmd, envCfg, videoPath)

		// Log lines would tear the alternate screen.
		quiet := zap.NewNop()
		decoder, err := video.NewDecoder(decoderName, quiet)
		if err != nil {
			return err
		}

		noHistory, _ := cmd.Flags().GetBool("no-history")

		state, runErr := tui.Run(flipbook.NewPipeline(decoder, quiet), cfg)
		if state != nil {
			history := startHistory(state.Config, decoder.Name(), state.StartedAt, envCfg.History && !noHistory)
			history.finish(state, runErr)
			history.close()
		}
		if errors.Is(runErr, tui.ErrAbandoned) {
			fmt.Fprintf(os.Stderr, "Run abandoned after %d page(s); partial output left in %s\n",
				state.Pages, state.Config.OutputDir)
			return runErr
		}
		if errors.Is(runErr, tui.ErrAborted) {
			return nil
		}
		if runErr != nil {
			return runErr
		}
		fmt.Printf("Flipbook created: %d pages in %s\n", state.Pages, state.Config.OutputDir)
		return nil
	},
}

func init() {
	tuiOpts.register(tuiCmd)
	tuiCmd.Flags().Bool("no-history", false, "Do not record this run (env FLIPBOOK_HISTORY=false)")

	rootCmd.AddCommand(tuiCmd)
}
