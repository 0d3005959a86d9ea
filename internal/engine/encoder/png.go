package encoder

import (
	"image"
	"image/png"
	"io"
)

// PNGEncoder encodes images to PNG using Go's standard library.
type PNGEncoder struct{}

func (e *PNGEncoder) Format() string  { return "png" }
func (e *PNGEncoder) Name() string    { return "png" }
func (e *PNGEncoder) Available() bool { return true }

func (e *PNGEncoder) Encode(w io.Writer, img image.Image, opts Options) error {
	enc := &png.Encoder{CompressionLevel: pngLevel(opts.Method)}
	return enc.Encode(w, img)
}

// pngLevel maps the 1-6 effort scale onto zlib levels.
func pngLevel(method int) png.CompressionLevel {
	switch {
	case method <= 2:
		return png.BestSpeed
	case method <= 4:
		return png.DefaultCompression
	default:
		return png.BestCompression
	}
}
