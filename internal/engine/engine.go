// Package engine is the in-process image engine. It is driven only by the
// packed options word and source bytes, and reports failures as Status
// codes wrapped in *Error.
package engine

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"io"
	"math"
	"sync"

	"github.com/disintegration/imaging"

	"github.com/AnyUserName/onewebp-cli/internal/engine/encoder"
	"github.com/AnyUserName/onewebp-cli/params"
)

var (
	errEmptyImage = errors.New("image has no pixels")
	errNoEncoder  = errors.New("no encoder available")
)

// Config selects the encoders the engine may use.
type Config struct {
	// CWebPPath overrides the cwebp lookup on PATH.
	CWebPPath string
	// DisableCWebP keeps encoding in process.
	DisableCWebP bool
}

// Engine converts and hashes images. It holds only its encoder registry and
// is safe for concurrent use.
type Engine struct {
	reg *encoder.Registry
}

// New builds an engine. It fails if no WebP encoder is available.
func New(cfg Config) (*Engine, error) {
	var all []encoder.Encoder
	for _, enc := range encoder.Defaults(cfg.CWebPPath) {
		if cfg.DisableCWebP && enc.Name() == "cwebp" {
			continue
		}
		all = append(all, enc)
	}
	return newWithRegistry(encoder.NewRegistry(all...))
}

func newWithRegistry(reg *encoder.Registry) (*Engine, error) {
	if reg.Get("webp") == nil {
		return nil, fail(StatusCompress, fmt.Errorf("webp: %w", errNoEncoder))
	}
	return &Engine{reg: reg}, nil
}

var (
	loadOnce   sync.Once
	loadEngine *Engine
	loadErr    error
)

// Load returns the process-wide engine, creating it on first use with the
// default Config. Later calls return the same engine, or the same error.
func Load() (*Engine, error) {
	loadOnce.Do(func() {
		loadEngine, loadErr = New(Config{})
	})
	return loadEngine, loadErr
}

// Encoders describes the registry, e.g. "encoders: webp/libwebp, png/png".
func (e *Engine) Encoders() string {
	return e.reg.String()
}

// ConvertFixed converts src into dst and returns the number of bytes written.
// If the output does not fit, nothing usable is in dst and the error has
// StatusBuffer with the required size.
func (e *Engine) ConvertFixed(src, dst []byte, word uint64) (int32, error) {
	fw := &fixedWriter{buf: dst}
	if err := e.convert(src, word, fw); err != nil {
		return int32(statusOf(err)), err
	}
	if fw.overflow || fw.n > math.MaxInt32 {
		return int32(StatusBuffer), &Error{Status: StatusBuffer, Required: fw.n}
	}
	return int32(fw.n), nil
}

// ConvertOwned converts src into a newly allocated slice sized to the output.
func (e *Engine) ConvertOwned(src []byte, word uint64) ([]byte, error) {
	var buf bytes.Buffer
	if err := e.convert(src, word, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (e *Engine) convert(src []byte, word uint64, w io.Writer) error {
	p, err := params.Decode(word)
	if err != nil {
		return fail(StatusParams, err)
	}

	img, err := decode(src, p)
	if err != nil {
		return err
	}

	img, err = fit(img, p.MaxWidth(), p.MaxHeight())
	if err != nil {
		return err
	}

	format := "webp"
	if p.PNG() {
		format = "png"
	}
	enc := e.reg.Get(format)
	if enc == nil {
		return fail(StatusCompress, fmt.Errorf("%s: %w", format, errNoEncoder))
	}

	err = enc.Encode(w, img, encoder.Options{
		Quality:  p.Quality(),
		Method:   p.Compression(),
		Lossless: p.Lossless(),
		Threads:  p.Multithreaded(),
	})
	if err != nil {
		return fail(StatusCompress, fmt.Errorf("%s: %w", enc.Name(), err))
	}
	return nil
}

// fit shrinks img to lie within maxW x maxH (0 = format maximum), keeping
// the aspect ratio by constraining the dominant axis. Images never grow.
func fit(img image.Image, maxW, maxH int) (image.Image, error) {
	if maxW == 0 {
		maxW = params.MaxDimension
	}
	if maxH == 0 {
		maxH = params.MaxDimension
	}

	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= maxW && h <= maxH {
		return img, nil
	}

	if float64(w)/float64(maxW) > float64(h)/float64(maxH) {
		maxH = 0
	} else {
		maxW = 0
	}
	out := imaging.Resize(img, maxW, maxH, imaging.Lanczos)
	if out.Bounds().Empty() {
		return nil, fail(StatusTransform, fmt.Errorf("resize %dx%d: %w", w, h, errEmptyImage))
	}
	return out, nil
}

func statusOf(err error) Status {
	var ee *Error
	if errors.As(err, &ee) {
		return ee.Status
	}
	return StatusCompress
}

// fixedWriter copies into a caller buffer. On overflow it keeps counting so
// the caller learns the size it would have needed.
type fixedWriter struct {
	buf      []byte
	n        int
	overflow bool
}

func (fw *fixedWriter) Write(p []byte) (int, error) {
	if !fw.overflow && fw.n+len(p) <= len(fw.buf) {
		copy(fw.buf[fw.n:], p)
	} else {
		fw.overflow = true
	}
	fw.n += len(p)
	return len(p), nil
}
