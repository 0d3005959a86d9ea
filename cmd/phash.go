package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/AnyUserName/onewebp-cli/internal/ctxlog"
	"github.com/AnyUserName/onewebp-cli/internal/hasher"
	"github.com/AnyUserName/onewebp-cli/webp"
	"github.com/AnyUserName/onewebp-cli/webperr"
)

var phashDigest bool

var phashCmd = &cobra.Command{
	Use:   "phash <input-file>",
	Short: "Print the 64-bit perceptual hash of an image in hex",
	Args:  exactlyOneFile,
	RunE:  runPHash,
}

func init() {
	phashCmd.Flags().BoolVar(&phashDigest, "digest", false, "also print the xxHash64 content digest")
	rootCmd.AddCommand(phashCmd)
}

func exactlyOneFile(_ *cobra.Command, args []string) error {
	switch {
	case len(args) == 0:
		return &webperr.UsageError{Reason: "missing input file name", Usage: "onewebp phash <input-file>"}
	case len(args) > 1:
		return &webperr.UsageError{Reason: fmt.Sprintf("expected one input file, got %d", len(args)), Usage: "onewebp phash <input-file>"}
	}
	return nil
}

func runPHash(cmd *cobra.Command, args []string) error {
	path := args[0]
	logger := ctxlog.FromContext(cmd.Context())

	src, err := os.ReadFile(path)
	if err != nil {
		return &webperr.IOError{Op: "read", Path: path, Err: err}
	}

	conv, err := webp.New(webp.WithLogger(logger))
	if err != nil {
		return err
	}
	h, err := conv.PerceptualHash(src)
	if err != nil {
		return fmt.Errorf("phash %s: %w", path, err)
	}

	logger.Debug("hashed", "input", path, "size", formatBytes(int64(len(src))))
	if phashDigest {
		fmt.Fprintf(cmd.OutOrStdout(), "%x %s\n", h, hasher.ContentHash(src, hasher.DigestLen))
		return nil
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%x\n", h)
	return nil
}
