package cmd

import (
	"fmt"
	"math"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/user/flipbook-cli/deps"
	"github.com/user/flipbook-cli/flipbook"
	"github.com/user/flipbook-cli/pkg/timeutil"
	"github.com/user/flipbook-cli/video"
)

var probeCmd = &cobra.Command{
	Use:   "probe <video-file>",
	Short: "Show video metadata and the expected page count",
	Long: `Read the video's metadata with ffprobe and report the frame step and
number of pages a run at the given interval would produce.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := deps.CheckFfprobe(); err != nil {
			return err
		}

		interval := envCfg.Interval
		if cmd.Flags().Changed("interval") {
			interval, _ = cmd.Flags().GetFloat64("interval")
		}
		if !(interval > 0) || math.IsInf(interval, 0) {
			return fmt.Errorf("interval must be a positive number of seconds, got %v", interval)
		}

		info, err := video.Probe(args[0])
		if err != nil {
			return fmt.Errorf("failed to probe video: %w", err)
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintf(w, "File:\t%s\n", args[0])
		fmt.Fprintf(w, "Codec:\t%s\n", info.Codec)
		fmt.Fprintf(w, "Resolution:\t%dx%d\n", info.Width, info.Height)
		fmt.Fprintf(w, "Duration:\t%s\n", timeutil.FormatTime(info.Duration))

		if !(info.FrameRate > 0) {
			fmt.Fprintln(w, "Frame rate:\tunknown")
			w.Flush()
			return fmt.Errorf("frame rate is unknown; the video cannot be sampled")
		}
		fmt.Fprintf(w, "Frame rate:\t%.3f fps\n", info.FrameRate)

		frames, estimated := sourceFrames(info)
		step := flipbook.FrameStep(info.FrameRate, interval)
		pages := expectedPages(frames, step)
		approx := ""
		if estimated {
			approx = "~"
		}
		if frames > 0 {
			fmt.Fprintf(w, "Frames:\t%s%d\n", approx, frames)
		} else {
			fmt.Fprintln(w, "Frames:\tunknown")
		}
		fmt.Fprintf(w, "Frame step:\tevery %d frame(s) at %gs\n", step, interval)
		if frames > 0 {
			fmt.Fprintf(w, "Pages:\t%s%d\n", approx, pages)
		}
		w.Flush()

		if frames > 0 && pages < 2 {
			fmt.Println()
			fmt.Println("Too short: a flipbook needs at least 2 sampled frames. Try a smaller --interval.")
		}
		return nil
	},
}

// sourceFrames returns the stream's frame count, estimating it from the
// duration when the container does not record it.
func sourceFrames(info video.Info) (int, bool) {
	if info.FrameCount > 0 {
		return info.FrameCount, false
	}
	if info.Duration > 0 && info.FrameRate > 0 {
		return int(math.Round(info.Duration * info.FrameRate)), true
	}
	return 0, false
}

// expectedPages is the number of frames sampled from frames source frames
// when keeping every step-th one, starting with the first.
func expectedPages(frames, step int) int {
	if frames <= 0 || step <= 0 {
		return 0
	}
	return (frames + step - 1) / step
}

func init() {
	probeCmd.Flags().Float64P("interval", "i", 0.1, "Seconds between sampled frames (env FLIPBOOK_INTERVAL)")

	rootCmd.AddCommand(probeCmd)
}
