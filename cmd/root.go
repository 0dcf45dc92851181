package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/user/clip-stitch-cli/db"
	"github.com/user/clip-stitch-cli/deps"
	"github.com/user/clip-stitch-cli/stitch"
	"github.com/user/clip-stitch-cli/tui"
)

var Version = "0.1.0"

var (
	saveFilePath string
	videoPath    string
	outputPath   string
	force        bool
	progress     bool
	verbose      bool
)

var rootCmd = &cobra.Command{
	Use:   "clip-stitch-cli --save-file-path <path> --video-path <path>",
	Short: "Render tagged clip selections into a single video",
	Long: `clip-stitch-cli reads a save file of clip selections produced during a
tagging session and renders them, in order, into one output file.

The selections are trimmed and concatenated in a single ffmpeg pass using a
filter graph, so the source video is read only once. Each run is recorded
in a local history database (see 'clip-stitch-cli history').`,
	RunE: runRender,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("clip-stitch-cli version %s\n", Version)
	},
}

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check system dependencies",
	Long:  `Check that ffmpeg is installed and available in PATH.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("Checking dependencies...")
		fmt.Println()

		if err := deps.CheckFfmpeg(); err != nil {
			fmt.Println("✗ ffmpeg: NOT FOUND")
			fmt.Printf("  Install from: %s\n", deps.FfmpegInstallURL)
			fmt.Println()
			fmt.Println("ffmpeg is required to render clips. Please install it.")
			os.Exit(1)
		}

		fmt.Println("✓ ffmpeg: OK")
		fmt.Println()
		fmt.Println("All dependencies are installed!")
	},
}

func runRender(cmd *cobra.Command, args []string) error {
	logger, err := newLogger(verbose)
	if err != nil {
		return fmt.Errorf("failed to set up logging: %w", err)
	}
	defer logger.Sync()

	absVideo, err := filepath.Abs(videoPath)
	if err != nil {
		return fmt.Errorf("failed to resolve video path: %w", err)
	}
	info, err := os.Stat(absVideo)
	if os.IsNotExist(err) {
		return fmt.Errorf("video file not found: %s", absVideo)
	}
	if err != nil {
		return fmt.Errorf("failed to access video file: %w", err)
	}
	if info.IsDir() {
		return fmt.Errorf("path is a directory, not a video file: %s", absVideo)
	}

	if err := confirmOverwrite(outputPath, force); err != nil {
		return err
	}

	// History is best-effort: a broken database never blocks a render.
	database, err := db.Open()
	if err != nil {
		logger.Warn("render history unavailable", zap.Error(err))
		database = nil
	} else {
		defer database.Close()
	}

	stitcher := stitch.New(database, logger)
	opts := stitch.Options{
		SaveFilePath: saveFilePath,
		VideoPath:    absVideo,
		OutputPath:   outputPath,
	}

	var result *stitch.Result
	if progress {
		result, err = tui.RunProgress(context.Background(), stitcher, opts)
	} else {
		opts.Stdout = os.Stdout
		opts.Stderr = os.Stderr
		result, err = stitcher.Render(context.Background(), opts)
	}
	if err != nil {
		return err
	}

	fmt.Printf("Rendered %d clip(s) to %s (%.1fs of footage, %s elapsed)\n",
		result.ClipCount, result.OutputPath, result.Duration,
		result.Elapsed.Round(100*time.Millisecond))
	return nil
}

// confirmOverwrite asks before replacing an existing output file unless
// force is set. A declined prompt aborts the run.
func confirmOverwrite(path string, force bool) error {
	if force {
		return nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}

	overwrite := false
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(fmt.Sprintf("Overwrite %s?", path)).
				Description("The output file already exists.").
				Affirmative("Yes, overwrite").
				Negative("No, abort").
				Value(&overwrite),
		),
	)
	if err := form.Run(); err != nil {
		return fmt.Errorf("output file %s already exists (use --force to overwrite): %w", path, err)
	}
	if !overwrite {
		return fmt.Errorf("aborted: output file %s already exists", path)
	}
	return nil
}

// newLogger builds the zap logger: a chatty development logger with
// --verbose, otherwise warnings and up on stderr.
func newLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	return cfg.Build()
}

func init() {
	rootCmd.Flags().StringVar(&saveFilePath, "save-file-path", "", "path to the JSON save file of clip selections")
	rootCmd.Flags().StringVar(&videoPath, "video-path", "", "path to the source video file")
	rootCmd.Flags().StringVarP(&outputPath, "output", "o", "out.mkv", "destination file for the rendered video")
	rootCmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite an existing output file without asking")
	rootCmd.Flags().BoolVar(&progress, "progress", false, "show a progress view instead of streaming ffmpeg output")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "enable debug logging")
	rootCmd.MarkFlagRequired("save-file-path")
	rootCmd.MarkFlagRequired("video-path")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(doctorCmd)
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
