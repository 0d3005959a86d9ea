package cmd

import (
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/AnyUserName/onewebp-cli/params"
	"github.com/AnyUserName/onewebp-cli/webperr"
)

var paramsCmd = &cobra.Command{
	Use:   "params <word>",
	Short: "Decode and validate a packed options word (decimal or 0x hex)",
	Args:  cobra.ExactArgs(1),
	RunE:  runParams,
}

func init() {
	rootCmd.AddCommand(paramsCmd)
}

func runParams(cmd *cobra.Command, args []string) error {
	word, err := strconv.ParseUint(args[0], 0, 64)
	if err != nil {
		return &webperr.InvalidOptionError{Field: "options word", Value: args[0], Err: err}
	}

	p, err := params.Decode(word)
	if err != nil {
		fmt.Fprintf(cmd.OutOrStdout(), "  ✗ %#016x: %v\n", word, err)
		return err
	}
	printParams(cmd.OutOrStdout(), word, p)
	return nil
}

func printParams(w io.Writer, word uint64, p params.Params) {
	dim := func(v int) string {
		if v == 0 {
			return "unconstrained"
		}
		return strconv.Itoa(v) + "px"
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "  Word:           %#016x\n", word)
	fmt.Fprintf(w, "  Quality:        %d\n", p.Quality())
	fmt.Fprintf(w, "  Compression:    %d\n", p.Compression())
	fmt.Fprintf(w, "  Max width:      %s\n", dim(p.MaxWidth()))
	fmt.Fprintf(w, "  Max height:     %s\n", dim(p.MaxHeight()))
	fmt.Fprintf(w, "  JPEG scaling:   %t\n", p.JpegScaling())
	fmt.Fprintf(w, "  Lossless:       %t\n", p.Lossless())
	fmt.Fprintf(w, "  Multithreaded:  %t\n", p.Multithreaded())
	fmt.Fprintf(w, "  PNG output:     %t\n", p.PNG())
	fmt.Fprintf(w, "  JPEG input:     %t\n", p.JPEG())
	fmt.Fprintln(w)
}
