// Package webp converts JPEG, PNG and WebP images to WebP or PNG and computes
// perceptual hashes by handing packed parameters to an image engine.
//
// Two output conventions are offered. ConvertInto writes into a buffer the
// caller owns and reports the length; Convert returns a slice sized to the
// output. Both block until the engine returns.
package webp

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/AnyUserName/onewebp-cli/internal/engine"
	"github.com/AnyUserName/onewebp-cli/params"
	"github.com/AnyUserName/onewebp-cli/webperr"
)

// DefaultBufferSize is the destination size the converter tool uses.
const DefaultBufferSize = 4 << 20

// Engine is the boundary contract. word is params.Params.Encode output.
//
// ConvertFixed returns the number of bytes written to dst. ConvertOwned
// returns a slice the caller owns. Implementations must be safe for
// concurrent use if the Converter is shared.
type Engine interface {
	ConvertFixed(src, dst []byte, word uint64) (int32, error)
	ConvertOwned(src []byte, word uint64) ([]byte, error)
	PerceptualHash(src []byte) (uint64, error)
}

// Converter is the entry point for conversions. It holds no per-call state.
type Converter struct {
	engine Engine
	logger *slog.Logger
}

// Option configures a Converter.
type Option func(*Converter)

// WithEngine replaces the built-in engine.
func WithEngine(e Engine) Option {
	return func(c *Converter) { c.engine = e }
}

// WithLogger sets the logger for debug output; the default is slog.Default.
func WithLogger(l *slog.Logger) Option {
	return func(c *Converter) { c.logger = l }
}

// New returns a Converter. Unless WithEngine is given, the built-in engine is
// loaded once per process; a load failure is returned as an EngineError.
func New(opts ...Option) (*Converter, error) {
	c := &Converter{}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = slog.Default()
	}
	if c.engine == nil {
		e, err := engine.Load()
		if err != nil {
			return nil, translate("load", err)
		}
		c.engine = e
	}
	return c, nil
}

// Encoders describes the encoders behind the converter, e.g.
// "encoders: webp/cwebp, webp/libwebp, png/png". Engines that do not report
// their encoders yield "".
func (c *Converter) Encoders() string {
	if d, ok := c.engine.(interface{ Encoders() string }); ok {
		return d.Encoders()
	}
	return ""
}

// ConvertInto converts src into dst and returns the number of bytes written.
// If dst is too small the error is a *webperr.BufferTooSmallError and the
// contents of dst are unspecified.
func (c *Converter) ConvertInto(src, dst []byte, p params.Params) (int, error) {
	word := p.Encode()
	c.logger.Debug("convert fixed", "src_bytes", len(src), "dst_cap", len(dst), "params", p.String(), "word", fmt.Sprintf("%#016x", word))

	n, err := c.engine.ConvertFixed(src, dst, word)
	if err != nil {
		err = translate("convert", err)
		var bts *webperr.BufferTooSmallError
		if errors.As(err, &bts) {
			bts.Available = len(dst)
		}
		return 0, err
	}
	if n < 0 || int(n) > len(dst) {
		return 0, &webperr.EngineError{
			Op:   "convert",
			Code: int(n),
			Msg:  fmt.Sprintf("written length %d outside buffer of %d", n, len(dst)),
		}
	}
	return int(n), nil
}

// Convert converts src into a new slice owned by the caller.
func (c *Converter) Convert(src []byte, p params.Params) ([]byte, error) {
	word := p.Encode()
	c.logger.Debug("convert owned", "src_bytes", len(src), "params", p.String(), "word", fmt.Sprintf("%#016x", word))

	out, err := c.engine.ConvertOwned(src, word)
	if err != nil {
		return nil, translate("convert", err)
	}
	return out, nil
}

// PerceptualHash returns the 64-bit perceptual hash of src. It takes no
// parameters; the hash is independent of source format and size.
func (c *Converter) PerceptualHash(src []byte) (uint64, error) {
	h, err := c.engine.PerceptualHash(src)
	if err != nil {
		return 0, translate("phash", err)
	}
	return h, nil
}

// translate maps engine failures onto the webperr taxonomy. Errors that are
// already classified pass through.
func translate(op string, err error) error {
	var ee *engine.Error
	if errors.As(err, &ee) {
		if ee.Status == engine.StatusBuffer {
			return &webperr.BufferTooSmallError{Required: ee.Required}
		}
		return &webperr.EngineError{Op: op, Code: int(ee.Status), Msg: ee.Status.String(), Err: ee.Err}
	}
	for _, kind := range []error{webperr.ErrBufferTooSmall, webperr.ErrEngineFailure, webperr.ErrInvalidOption, webperr.ErrIO} {
		if errors.Is(err, kind) {
			return err
		}
	}
	return &webperr.EngineError{Op: op, Code: int(engine.StatusUnknown), Msg: engine.StatusUnknown.String(), Err: err}
}
