package webp

import (
	"sync"

	"github.com/AnyUserName/onewebp-cli/params"
)

var (
	defaultOnce sync.Once
	defaultConv *Converter
	defaultErr  error
)

// Default returns the shared Converter backed by the built-in engine.
func Default() (*Converter, error) {
	defaultOnce.Do(func() {
		defaultConv, defaultErr = New()
	})
	return defaultConv, defaultErr
}

// ConvertInto is Default().ConvertInto.
func ConvertInto(src, dst []byte, p params.Params) (int, error) {
	c, err := Default()
	if err != nil {
		return 0, err
	}
	return c.ConvertInto(src, dst, p)
}

// Convert is Default().Convert.
func Convert(src []byte, p params.Params) ([]byte, error) {
	c, err := Default()
	if err != nil {
		return nil, err
	}
	return c.Convert(src, p)
}

// PerceptualHash is Default().PerceptualHash.
func PerceptualHash(src []byte) (uint64, error) {
	c, err := Default()
	if err != nil {
		return 0, err
	}
	return c.PerceptualHash(src)
}
