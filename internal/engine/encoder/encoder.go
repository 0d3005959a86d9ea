// Package encoder provides the output encoders used by the image engine.
package encoder

import (
	"image"
	"io"
)

// Options are the encoder-facing subset of the conversion parameters.
type Options struct {
	Quality  int  // 0-100
	Method   int  // effort 1-6, higher is slower and smaller
	Lossless bool // WebP only
	Threads  bool // hint; encoders without threading ignore it
}

// Encoder writes an image in one output format.
type Encoder interface {
	// Format returns the output format name ("webp" or "png").
	Format() string

	// Name identifies the implementation (e.g. "libwebp", "cwebp").
	Name() string

	// Available returns true if the encoder is ready to use.
	// External encoders (cwebp) may not be installed.
	Available() bool

	// Encode writes img to w.
	Encode(w io.Writer, img image.Image, opts Options) error
}
