package encoder

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"os/exec"
	"strconv"
	"sync"
	"sync/atomic"

	libwebp "github.com/chai2010/webp"
)

// LibWebPEncoder encodes in process through the libwebp bindings. The
// bindings expose quality and lossless only; Method and Threads are ignored.
type LibWebPEncoder struct{}

func (e *LibWebPEncoder) Format() string  { return "webp" }
func (e *LibWebPEncoder) Name() string    { return "libwebp" }
func (e *LibWebPEncoder) Available() bool { return true }

func (e *LibWebPEncoder) Encode(w io.Writer, img image.Image, opts Options) error {
	return libwebp.Encode(w, img, &libwebp.Options{
		Lossless: opts.Lossless,
		Quality:  float32(opts.Quality),
		Exact:    opts.Lossless,
	})
}

// Atomic counter for unique temp file names across goroutines.
var tempCounter atomic.Int64

// CWebPEncoder encodes by shelling out to cwebp, which honors the effort
// level and threading hint.
// Install: brew install webp / apt install webp
type CWebPEncoder struct {
	// Path to the binary; empty means look up "cwebp" on PATH.
	Path string

	once      sync.Once
	available bool
	cwebpPath string
}

func (e *CWebPEncoder) Format() string { return "webp" }
func (e *CWebPEncoder) Name() string   { return "cwebp" }

func (e *CWebPEncoder) Available() bool {
	e.once.Do(func() {
		name := e.Path
		if name == "" {
			name = "cwebp"
		}
		path, err := exec.LookPath(name)
		if err == nil {
			e.available = true
			e.cwebpPath = path
		}
	})
	return e.available
}

func (e *CWebPEncoder) Encode(w io.Writer, img image.Image, opts Options) error {
	if !e.Available() {
		return fmt.Errorf("cwebp not found in PATH; install with: brew install webp")
	}

	// Write source as PNG to temp file (cwebp reads files).
	id := tempCounter.Add(1)
	srcFile, err := os.CreateTemp("", fmt.Sprintf("onewebp_src_%d_*.png", id))
	if err != nil {
		return fmt.Errorf("create temp: %w", err)
	}
	srcPath := srcFile.Name()
	defer os.Remove(srcPath)

	enc := &png.Encoder{CompressionLevel: png.BestSpeed}
	if err := enc.Encode(srcFile, img); err != nil {
		srcFile.Close()
		return fmt.Errorf("encode temp png: %w", err)
	}
	if err := srcFile.Close(); err != nil {
		return fmt.Errorf("close temp: %w", err)
	}

	dstFile, err := os.CreateTemp("", fmt.Sprintf("onewebp_dst_%d_*.webp", id))
	if err != nil {
		return fmt.Errorf("create temp: %w", err)
	}
	dstPath := dstFile.Name()
	dstFile.Close()
	defer os.Remove(dstPath)

	cmd := exec.Command(e.cwebpPath, cwebpArgs(opts, srcPath, dstPath)...)
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("cwebp: %w: %s", err, string(out))
	}

	f, err := os.Open(dstPath)
	if err != nil {
		return err
	}
	defer f.Close()
	_, err = io.Copy(w, f)
	return err
}

func cwebpArgs(opts Options, src, dst string) []string {
	args := []string{
		"-q", strconv.Itoa(opts.Quality),
		"-m", strconv.Itoa(opts.Method), // compression method (0=fast, 6=best)
	}
	if opts.Lossless {
		args = append(args, "-lossless", "-exact")
	}
	if opts.Threads {
		args = append(args, "-mt")
	}
	return append(args, "-quiet", src, "-o", dst)
}
