package cmd

import (
	"database/sql"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/user/flipbook-cli/config"
	"github.com/user/flipbook-cli/db"
	"github.com/user/flipbook-cli/deps"
	"github.com/user/flipbook-cli/flipbook"
	"github.com/user/flipbook-cli/pkg/logger"
	"go.uber.org/zap"
)

var Version = "0.1.0"

var (
	// envCfg holds the environment defaults, loaded before every command.
	envCfg *config.Config
	log    *zap.Logger

	logLevel string
)

var rootCmd = &cobra.Command{
	Use:   "flipbook",
	Short: "Turn a video into printable flipbook pages",
	Long: `flipbook samples a video at a fixed interval, splices each sampled
frame with the next one, and writes numbered PNG pages ready to print
and bind as a flipbook.

Features:
  - ffmpeg decoding with a pure-Go MPEG-1 fallback
  - Interactive form and progress screen (flipbook tui)
  - Preview a written page set in mpv
  - Run history stored in SQLite`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		envCfg = cfg

		level := cfg.LogLevel
		if cmd.Flags().Changed("log-level") {
			level = logLevel
		}
		l, err := logger.New(level)
		if err != nil {
			return err
		}
		log = l
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if log != nil {
			_ = log.Sync()
		}
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("flipbook version %s\n", Version)
	},
}

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check system dependencies",
	Long: `Check that the external tools (ffmpeg, ffprobe, mpv) are installed and
report which font will be used for page numbers.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("Checking dependencies...")
		fmt.Println()

		allGood := true

		for _, r := range deps.CheckAll() {
			if !r.OK() {
				fmt.Printf("✗ %s: NOT FOUND\n", r.Name)
				fmt.Printf("  Install from: %s\n", r.InstallURL)
				allGood = false
			} else {
				fmt.Printf("✓ %s: OK\n", r.Name)
			}
		}

		cfg := flipbook.DefaultConfig("")
		cfg.FontSize = envCfg.FontSize
		cfg.FontPath = envCfg.FontPath
		resolved := flipbook.ResolveFont(cfg.FontSize, flipbook.FontCandidates(cfg), zap.NewNop())
		defer resolved.Close()
		if resolved.Builtin() {
			fmt.Printf("! font: no TrueType font found, using %s\n", resolved.Name)
		} else {
			fmt.Printf("✓ font: %s\n", resolved.Name)
		}

		fmt.Println()
		if allGood {
			fmt.Println("All dependencies are installed!")
		} else {
			fmt.Println("Some dependencies are missing. ffmpeg is needed for formats other than MPEG-1; mpv only for previews.")
			os.Exit(1)
		}
	},
}

// openHistory opens the run history database named by the environment.
func openHistory() (*sql.DB, error) {
	path, err := envCfg.DatabasePath()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve history path: %w", err)
	}
	database, err := db.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open history: %w", err)
	}
	return database, nil
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(doctorCmd)
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
