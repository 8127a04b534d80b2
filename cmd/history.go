package cmd

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"github.com/user/flipbook-cli/db"
	"github.com/user/flipbook-cli/pkg/timeutil"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List past flipbook runs",
	Long:  `List recorded runs, newest first. Use --prune to forget runs older than a duration.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		prune, _ := cmd.Flags().GetDuration("prune")

		database, err := openHistory()
		if err != nil {
			return err
		}
		defer database.Close()

		if prune > 0 {
			n, err := db.DeleteRunsBefore(database, time.Now().Add(-prune))
			if err != nil {
				return fmt.Errorf("failed to prune history: %w", err)
			}
			fmt.Printf("Removed %d run(s) older than %s\n", n, prune)
			return nil
		}

		runs, err := db.SelectRuns(database, limit)
		if err != nil {
			return fmt.Errorf("failed to query history: %w", err)
		}
		if len(runs) == 0 {
			fmt.Println("No runs recorded yet.")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tStarted\tStatus\tPages\tElapsed\tVideo")
		fmt.Fprintln(w, "--\t-------\t------\t-----\t-------\t-----")
		for _, r := range runs {
			video := r.VideoPath
			if len(video) > 50 {
				video = "..." + video[len(video)-47:]
			}
			fmt.Fprintf(w, "%d\t%s\t%s\t%d\t%s\t%s\n",
				r.ID,
				r.StartedAt.Local().Format("2006-01-02 15:04"),
				r.Status,
				r.PageCount,
				timeutil.FormatElapsed(r.Elapsed()),
				video,
			)
		}
		w.Flush()

		fmt.Printf("\nTotal: %d run(s)\n", len(runs))
		return nil
	},
}

var historyShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show the parameters and outcome of one run",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid run ID: %s", args[0])
		}

		database, err := openHistory()
		if err != nil {
			return err
		}
		defer database.Close()

		r, err := db.SelectRunByID(database, id)
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("run %d not found", id)
		}
		if err != nil {
			return fmt.Errorf("failed to query run: %w", err)
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintf(w, "Run:\t%d\n", r.ID)
		fmt.Fprintf(w, "Status:\t%s\n", r.Status)
		fmt.Fprintf(w, "Video:\t%s\n", r.VideoPath)
		fmt.Fprintf(w, "Output:\t%s\n", r.OutputDir)
		fmt.Fprintf(w, "Interval:\t%gs\n", r.IntervalSeconds)
		fmt.Fprintf(w, "Width:\t%dpx\n", r.TargetWidth)
		fmt.Fprintf(w, "Split:\t%g\n", r.SplitRatio)
		fmt.Fprintf(w, "Font size:\t%d\n", r.FontSize)
		fmt.Fprintf(w, "Border:\t%t\n", r.AddBorder)
		fmt.Fprintf(w, "Decoder:\t%s\n", r.Decoder)
		fmt.Fprintf(w, "Frame step:\t%d\n", r.FrameStep)
		fmt.Fprintf(w, "Frames:\t%d\n", r.FrameCount)
		fmt.Fprintf(w, "Pages:\t%d\n", r.PageCount)
		if r.Font != "" {
			fmt.Fprintf(w, "Font:\t%s\n", r.Font)
		}
		fmt.Fprintf(w, "Started:\t%s\n", r.StartedAt.Local().Format(time.DateTime))
		fmt.Fprintf(w, "Elapsed:\t%s\n", timeutil.FormatElapsed(r.Elapsed()))
		if r.Error != "" {
			fmt.Fprintf(w, "Error:\t%s\n", r.Error)
		}
		return w.Flush()
	},
}

func init() {
	historyCmd.Flags().Int("limit", 20, "Maximum number of runs to list")
	historyCmd.Flags().Duration("prune", 0, "Delete runs older than this (e.g. 720h) instead of listing")

	historyCmd.AddCommand(historyShowCmd)
	rootCmd.AddCommand(historyCmd)
}
