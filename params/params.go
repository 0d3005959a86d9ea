// Package params holds the validated conversion parameters and their packed
// 64-bit form, the only representation the image engine accepts.
package params

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/AnyUserName/onewebp-cli/webperr"
)

// Ranges accepted by the setters.
const (
	MinQuality     = 0
	MaxQuality     = 100
	MinCompression = 1
	MaxCompression = 6
	MinDimension   = 1
	MaxDimension   = 16383

	DefaultQuality     = 80
	DefaultCompression = 5
)

// Word layout. Must stay in sync with the engine.
const (
	shiftMaxWidth    = 0
	shiftMaxHeight   = 16
	shiftQuality     = 32
	shiftCompression = 40

	BitJpegScaling   uint64 = 1 << 48
	BitLossless      uint64 = 1 << 49
	BitMultithreaded uint64 = 1 << 50
	BitPNG           uint64 = 1 << 51
	BitJPEG          uint64 = 1 << 52

	// ReservedMask covers bits 53-63.
	ReservedMask uint64 = 0x7ff << 53
)

// Params is an immutable set of conversion parameters. The zero value is not
// meaningful; start from Default or a Builder.
type Params struct {
	quality       int
	compression   int
	maxWidth      int // 0 = unconstrained
	maxHeight     int // 0 = unconstrained
	jpegScaling   bool
	lossless      bool
	multithreaded bool
	png           bool
	jpeg          bool
}

// Default returns quality 80, compression 5 and no size bound.
func Default() Params {
	return Params{quality: DefaultQuality, compression: DefaultCompression}
}

func (p Params) Quality() int        { return p.quality }
func (p Params) Compression() int    { return p.compression }
func (p Params) MaxWidth() int       { return p.maxWidth }
func (p Params) MaxHeight() int      { return p.maxHeight }
func (p Params) JpegScaling() bool   { return p.jpegScaling }
func (p Params) Lossless() bool      { return p.lossless }
func (p Params) Multithreaded() bool { return p.multithreaded }

// PNG reports whether PNG output is forced instead of WebP.
func (p Params) PNG() bool { return p.png }

// JPEG reports whether the input is treated as JPEG regardless of sniffing.
func (p Params) JPEG() bool { return p.jpeg }

// Bounded reports whether a width or height limit is set.
func (p Params) Bounded() bool { return p.maxWidth != 0 || p.maxHeight != 0 }

// Encode packs the parameters into the engine's options word. Field widths
// match the validated ranges, so no field can spill into its neighbour.
func (p Params) Encode() uint64 {
	w := uint64(p.maxWidth)<<shiftMaxWidth |
		uint64(p.maxHeight)<<shiftMaxHeight |
		uint64(p.quality)<<shiftQuality |
		uint64(p.compression)<<shiftCompression
	if p.jpegScaling {
		w |= BitJpegScaling
	}
	if p.lossless {
		w |= BitLossless
	}
	if p.multithreaded {
		w |= BitMultithreaded
	}
	if p.png {
		w |= BitPNG
	}
	if p.jpeg {
		w |= BitJPEG
	}
	return w
}

// Decode unpacks an options word. Reserved bits must be zero and every
// field must be in range; 0 width or height is accepted as "unconstrained".
func Decode(word uint64) (Params, error) {
	if word&ReservedMask != 0 {
		return Params{}, &webperr.InvalidOptionError{
			Field: "reserved bits",
			Value: fmt.Sprintf("%#x", word&ReservedMask),
			Err:   fmt.Errorf("bits 53-63 must be zero"),
		}
	}

	p := Params{
		maxWidth:      int(word >> shiftMaxWidth & 0xffff),
		maxHeight:     int(word >> shiftMaxHeight & 0xffff),
		quality:       int(word >> shiftQuality & 0xff),
		compression:   int(word >> shiftCompression & 0xff),
		jpegScaling:   word&BitJpegScaling != 0,
		lossless:      word&BitLossless != 0,
		multithreaded: word&BitMultithreaded != 0,
		png:           word&BitPNG != 0,
		jpeg:          word&BitJPEG != 0,
	}

	if err := checkRange("quality", p.quality, MinQuality, MaxQuality); err != nil {
		return Params{}, err
	}
	if err := checkRange("compression", p.compression, MinCompression, MaxCompression); err != nil {
		return Params{}, err
	}
	if p.maxWidth != 0 {
		if err := checkRange("max width", p.maxWidth, MinDimension, MaxDimension); err != nil {
			return Params{}, err
		}
	}
	if p.maxHeight != 0 {
		if err := checkRange("max height", p.maxHeight, MinDimension, MaxDimension); err != nil {
			return Params{}, err
		}
	}
	return p, nil
}

func (p Params) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "q=%d c=%d", p.quality, p.compression)
	if p.maxWidth != 0 {
		fmt.Fprintf(&sb, " w=%d", p.maxWidth)
	}
	if p.maxHeight != 0 {
		fmt.Fprintf(&sb, " h=%d", p.maxHeight)
	}
	for _, f := range []struct {
		on   bool
		name string
	}{
		{p.jpegScaling, "jpeg-scaling"},
		{p.lossless, "lossless"},
		{p.multithreaded, "mt"},
		{p.png, "png"},
		{p.jpeg, "jpeg-in"},
	} {
		if f.on {
			sb.WriteString(" " + f.name)
		}
	}
	return sb.String()
}

func checkRange(field string, v, lo, hi int) error {
	if v < lo || v > hi {
		return &webperr.InvalidOptionError{
			Field: field,
			Value: strconv.Itoa(v),
			Min:   lo,
			Max:   hi,
		}
	}
	return nil
}
