package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/AnyUserName/onewebp-cli/internal/ctxlog"
)

var (
	version = "0.1.0"
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "onewebp",
	Short: "Convert JPEG, PNG and WebP images to WebP and compute perceptual hashes",
	Long: `onewebp converts JPEG, PNG and WebP images to WebP (or PNG),
optionally bounded in size, and prints 64-bit perceptual hashes.`,
	Version:           version,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setupLogger,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"onewebp %s (%s/%s, %s)\n",
		version, runtime.GOOS, runtime.GOARCH, runtime.Version(),
	))
}

func setupLogger(cmd *cobra.Command, _ []string) error {
	cmd.SetContext(ctxlog.WithLogger(cmd.Context(), newLogger(cmd.ErrOrStderr(), verbose)))
	return nil
}

func newLogger(w io.Writer, debug bool) *slog.Logger {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
