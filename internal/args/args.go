// Package args parses the converter's command line: single-dash options in
// any order followed by exactly two paths.
package args

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/AnyUserName/onewebp-cli/params"
	"github.com/AnyUserName/onewebp-cli/webperr"
)

// UsageLine is the positional form reported on arity errors.
const UsageLine = "[options] <input.jpg|png|webp> <output.webp|png>"

// Result is a successfully parsed command line.
type Result struct {
	Params params.Params
	Input  string
	Output string
	// Ignored lists unknown options skipped in permissive mode.
	Ignored []string
}

// Parser turns tokens into a Result. The zero value is permissive: unknown
// options are skipped and reported in Result.Ignored.
type Parser struct {
	// Strict rejects unknown options with a usage error.
	Strict bool
}

// Parse is Parser{}.Parse.
func Parse(tokens []string) (Result, error) {
	return Parser{}.Parse(tokens)
}

// Parse consumes options while more than two tokens remain. The remaining
// tokens must be exactly the input and output paths.
func (p Parser) Parse(tokens []string) (Result, error) {
	var res Result
	b := params.NewBuilder()

	i := 0
	for i < len(tokens)-2 {
		tok := tokens[i]
		i++

		switch tok {
		case "-q", "-c", "-w", "-h":
			// i <= len-2 here, so the value token exists.
			val := tokens[i]
			i++
			if err := setNumeric(b, tok, val); err != nil {
				return Result{}, err
			}
		case "-j":
			b.SetJpegScaling(true)
		case "-l":
			b.SetLossless(true)
		case "-mt":
			b.SetMultithreaded(true)
		case "-png":
			b.SetPNG(true)
		case "-jpeg":
			b.SetJPEG(true)
		default:
			if !isOption(tok) {
				return Result{}, &webperr.UsageError{
					Reason: fmt.Sprintf("unexpected argument %q", tok),
					Usage:  UsageLine,
				}
			}
			if p.Strict {
				return Result{}, &webperr.UsageError{
					Reason: fmt.Sprintf("unknown option %q", tok),
					Usage:  UsageLine,
				}
			}
			res.Ignored = append(res.Ignored, tok)
		}
	}

	if i+2 != len(tokens) {
		return Result{}, &webperr.UsageError{
			Reason: fmt.Sprintf("expected input and output paths, got %d argument(s) after options", max(len(tokens)-i, 0)),
			Usage:  UsageLine,
		}
	}

	res.Params = b.Build()
	res.Input = tokens[i]
	res.Output = tokens[i+1]
	return res, nil
}

var numericFields = map[string]struct {
	name     string
	min, max int
	set      func(*params.Builder, int) error
}{
	"-q": {"quality", params.MinQuality, params.MaxQuality, (*params.Builder).SetQuality},
	"-c": {"compression", params.MinCompression, params.MaxCompression, (*params.Builder).SetCompression},
	"-w": {"max width", params.MinDimension, params.MaxDimension, (*params.Builder).SetMaxWidth},
	"-h": {"max height", params.MinDimension, params.MaxDimension, (*params.Builder).SetMaxHeight},
}

func setNumeric(b *params.Builder, flag, val string) error {
	f := numericFields[flag]
	n, err := strconv.Atoi(val)
	if err != nil {
		return &webperr.InvalidOptionError{
			Field: f.name,
			Value: val,
			Min:   f.min,
			Max:   f.max,
			Err:   err,
		}
	}
	return f.set(b, n)
}

func isOption(tok string) bool {
	return len(tok) > 1 && strings.HasPrefix(tok, "-")
}

// Usage returns the help text for the converter.
func Usage(prog string) string {
	return fmt.Sprintf(`Usage: %s %s
  -q 0..100 : Output quality (default %d)
  -c 1..6   : Compression level (default %d)
  -w px     : Max width
  -h px     : Max height
  -j        : Use JPEG scaling
  -l        : Lossless compression
  -mt       : Multithreaded encoding
  -png      : PNG output
  -jpeg     : Treat input as JPEG
`, prog, UsageLine, params.DefaultQuality, params.DefaultCompression)
}
