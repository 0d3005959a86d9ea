package cmd

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/AnyUserName/onewebp-cli/internal/args"
	"github.com/AnyUserName/onewebp-cli/internal/ctxlog"
	"github.com/AnyUserName/onewebp-cli/internal/fsutil"
	"github.com/AnyUserName/onewebp-cli/internal/hasher"
	"github.com/AnyUserName/onewebp-cli/webp"
	"github.com/AnyUserName/onewebp-cli/webperr"
)

var convertCmd = &cobra.Command{
	Use:   "convert [options] <input.jpg|png|webp> <output.webp|png>",
	Short: "Convert an image to WebP (or PNG)",
	Long:  args.Usage("onewebp convert"),
	// Converter options are single-dash words (-mt, -png) that pflag
	// cannot express; internal/args parses them instead.
	DisableFlagParsing: true,
	RunE:               runConvert,
}

func init() {
	rootCmd.AddCommand(convertCmd)
}

func runConvert(cmd *cobra.Command, tokens []string) error {
	if len(tokens) == 1 && (tokens[0] == "--help" || tokens[0] == "-help") {
		return cmd.Help()
	}

	tokens, debug := stripVerbose(tokens)
	logger := ctxlog.FromContext(cmd.Context())
	if debug {
		logger = newLogger(cmd.ErrOrStderr(), true)
	}
	start := time.Now()

	res, err := args.Parse(tokens)
	if err != nil {
		if errors.Is(err, webperr.ErrUsage) {
			fmt.Fprint(cmd.ErrOrStderr(), args.Usage("onewebp convert"))
		}
		return err
	}
	for _, tok := range res.Ignored {
		logger.Warn("ignoring unknown option", "option", tok)
	}

	src, err := os.ReadFile(res.Input)
	if err != nil {
		return &webperr.IOError{Op: "read", Path: res.Input, Err: err}
	}

	conv, err := webp.New(webp.WithLogger(logger))
	if err != nil {
		return err
	}
	logger.Debug("engine ready", "encoders", conv.Encoders())

	dst := make([]byte, webp.DefaultBufferSize)
	n, err := conv.ConvertInto(src, dst, res.Params)
	if err != nil {
		return fmt.Errorf("convert %s: %w", res.Input, err)
	}
	out := dst[:n]

	if err := fsutil.WriteFileAtomic(res.Output, out, 0o644); err != nil {
		return &webperr.IOError{Op: "write", Path: res.Output, Err: err}
	}

	logger.Debug("converted",
		"input", res.Input,
		"input_size", formatBytes(int64(len(src))),
		"input_digest", hasher.ContentHash(src, hasher.DigestLen),
		"output", res.Output,
		"output_size", formatBytes(int64(n)),
		"output_digest", hasher.ContentHash(out, hasher.DigestLen),
		"elapsed", time.Since(start).Round(time.Millisecond),
	)
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d bytes to %s\n", n, res.Output)
	return nil
}

// stripVerbose removes the root -v/--verbose flag from the option part of
// the tokens, which cobra leaves unparsed for this command.
func stripVerbose(tokens []string) ([]string, bool) {
	if len(tokens) <= 2 {
		return tokens, false
	}
	found := false
	opts := tokens[:len(tokens)-2]
	kept := make([]string, 0, len(tokens))
	for _, tok := range opts {
		if tok == "-v" || tok == "--verbose" {
			found = true
			continue
		}
		kept = append(kept, tok)
	}
	return append(kept, tokens[len(tokens)-2:]...), found
}

func formatBytes(b int64) string {
	switch {
	case b >= 1<<20:
		return fmt.Sprintf("%.1f MB", float64(b)/(1<<20))
	case b >= 1<<10:
		return fmt.Sprintf("%.1f KB", float64(b)/(1<<10))
	default:
		return fmt.Sprintf("%d B", b)
	}
}
