package cmd

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"github.com/user/flipbook-cli/db"
	"github.com/user/flipbook-cli/flipbook"
	"github.com/user/flipbook-cli/mpv"
	"github.com/user/flipbook-cli/pkg/timeutil"
	"github.com/user/flipbook-cli/video"
	"go.uber.org/zap"
)

var generateOpts runOptions

var generateCmd = &cobra.Command{
	Use:   "generate <video-file>",
	Short: "Generate flipbook pages from a video",
	Long: `Sample the video every --interval seconds, splice each frame with the
next one at --split of its height, and write numbered PNG pages to the
output directory.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		preview, _ := cmd.Flags().GetBool("preview")
		noHistory, _ := cmd.Flags().GetBool("no-history")

		cfg, decoderName := generateOpts.pipelineConfig(cmd, envCfg, args[0])
		if err := cfg.Validate(); err != nil {
			return err
		}

		decoder, err := video.NewDecoder(decoderName, log)
		if err != nil {
			return err
		}
		log.Info("decoder selected", zap.String("decoder", decoder.Name()))

		history := startHistory(cfg, decoder.Name(), time.Now(), envCfg.History && !noHistory)
		defer history.close()

		fmt.Printf("Generating flipbook: %s\n", cfg.VideoPath)

		var bar *progressbar.ProgressBar
		state, runErr := flipbook.NewPipeline(decoder, log).Run(cfg, func(p flipbook.Progress) {
			switch p.Stage {
			case flipbook.StageSampled:
				fmt.Printf("✓ Sampled %d frames\n", p.Frames)
			case flipbook.StageInterleaved:
				fmt.Printf("✓ Interleaved %d composites\n", p.Total)
				bar = newPageBar(p.Total)
			case flipbook.StageWriting:
				_ = bar.Set(p.Current)
			case flipbook.StageWritten:
				_ = bar.Finish()
				fmt.Printf("✓ Wrote %d pages\n", p.Current)
			}
		})
		history.finish(state, runErr)
		if runErr != nil {
			if bar != nil {
				fmt.Fprintln(os.Stderr)
			}
			if state != nil && state.Pages > 0 {
				fmt.Fprintf(os.Stderr, "%d page(s) were written to %s before the error\n", state.Pages, cfg.OutputDir)
			}
			return runErr
		}

		fmt.Println()
		fmt.Printf("Flipbook created: %d pages in %s (%s)\n", state.Pages, cfg.OutputDir, timeutil.FormatElapsed(state.Elapsed()))
		fmt.Printf("  frame rate %.3g fps, every %d frame(s), font %s\n", state.FrameRate, state.FrameStep, state.Font)
		for _, w := range state.FontWarnings {
			fmt.Printf("  font fallback: %s\n", w)
		}

		if preview {
			process, err := mpv.LaunchSlideshow(cfg.OutputDir, 1/cfg.IntervalSeconds)
			if err != nil {
				return fmt.Errorf("failed to launch preview: %w", err)
			}
			fmt.Println("Preview opened in mpv")
			return process.Process.Release()
		}
		return nil
	},
}

func newPageBar(total int) *progressbar.ProgressBar {
	return progressbar.NewOptions(total,
		progressbar.OptionSetDescription("Writing pages"),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "█",
			SaucerHead:    "█",
			SaucerPadding: "░",
			BarStart:      "▐",
			BarEnd:        "▌",
		}),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(40),
		progressbar.OptionSetRenderBlankState(true),
		progressbar.OptionOnCompletion(func() { fmt.Fprintln(os.Stderr) }),
	)
}

// historyRecorder writes one run to the history database. Every failure is
// logged and swallowed; a nil recorder does nothing.
type historyRecorder struct {
	db    *sql.DB
	runID int64
}

func startHistory(cfg flipbook.Config, decoder string, startedAt time.Time, enabled bool) *historyRecorder {
	if !enabled {
		return nil
	}
	database, err := openHistory()
	if err != nil {
		log.Warn("run history unavailable", zap.Error(err))
		return nil
	}
	runID, err := db.InsertRun(database, db.NewRun{
		VideoPath:       cfg.VideoPath,
		OutputDir:       cfg.OutputDir,
		IntervalSeconds: cfg.IntervalSeconds,
		TargetWidth:     cfg.TargetWidth,
		SplitRatio:      cfg.SplitRatio,
		FontSize:        cfg.FontSize,
		AddBorder:       cfg.AddBorder,
		Decoder:         decoder,
		StartedAt:       startedAt,
	})
	if err != nil {
		log.Warn("failed to record run", zap.Error(err))
		database.Close()
		return nil
	}
	return &historyRecorder{db: database, runID: runID}
}

func (h *historyRecorder) finish(state *flipbook.RunState, runErr error) {
	if h == nil {
		return
	}
	res := db.RunResult{FinishedAt: time.Now()}
	if state != nil {
		if !state.FinishedAt.IsZero() {
			res.FinishedAt = state.FinishedAt
		}
		res.FrameStep = state.FrameStep
		res.FrameCount = state.Frames
		res.PageCount = state.Pages
		res.Font = state.Font
	}

	var err error
	if runErr != nil {
		res.Error = runErr.Error()
		err = db.MarkRunError(h.db, h.runID, res)
	} else {
		err = db.MarkRunComplete(h.db, h.runID, res)
	}
	if err != nil {
		log.Warn("failed to update run history", zap.Int64("run_id", h.runID), zap.Error(err))
	}
}

func (h *historyRecorder) close() {
	if h == nil {
		return
	}
	if err := h.db.Close(); err != nil && !errors.Is(err, sql.ErrConnDone) {
		log.Warn("failed to close run history", zap.Error(err))
	}
}

func init() {
	generateOpts.register(generateCmd)
	generateCmd.Flags().Bool("preview", false, "Open the pages in mpv when done")
	generateCmd.Flags().Bool("no-history", false, "Do not record this run (env FLIPBOOK_HISTORY=false)")

	rootCmd.AddCommand(generateCmd)
}
