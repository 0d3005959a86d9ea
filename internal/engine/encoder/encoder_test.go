package encoder

import (
	"bytes"
	"image"
	"image/png"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	xwebp "golang.org/x/image/webp"

	"github.com/AnyUserName/onewebp-cli/internal/testutil"
)

type stubEncoder struct {
	format, name string
	ok           bool
}

func (s *stubEncoder) Format() string  { return s.format }
func (s *stubEncoder) Name() string    { return s.name }
func (s *stubEncoder) Available() bool { return s.ok }
func (s *stubEncoder) Encode(io.Writer, image.Image, Options) error {
	return nil
}

func TestRegistryOrderAndAvailability(t *testing.T) {
	r := NewRegistry(
		&stubEncoder{"webp", "missing", false},
		&stubEncoder{"webp", "first", true},
		&stubEncoder{"webp", "second", true},
		&stubEncoder{"png", "png", true},
	)

	require.NotNil(t, r.Get("webp"))
	assert.Equal(t, "first", r.Get("WEBP").Name())
	assert.Equal(t, "png", r.Get("png").Name())
	assert.Nil(t, r.Get("avif"))
	assert.Equal(t, []string{"webp/first", "webp/second", "png/png"}, r.Available())
	assert.Equal(t, "encoders: webp/first, webp/second, png/png", r.String())
}

func TestRegistryEmpty(t *testing.T) {
	assert.Equal(t, "no encoders available", NewRegistry().String())
}

func TestCWebPMissingBinary(t *testing.T) {
	e := &CWebPEncoder{Path: "/nonexistent/cwebp"}
	assert.False(t, e.Available())
	assert.Error(t, e.Encode(io.Discard, testutil.Gradient(4, 4), Options{Quality: 80, Method: 5}))

	r := NewRegistry(append([]Encoder{e}, &LibWebPEncoder{}, &PNGEncoder{})...)
	assert.Equal(t, "libwebp", r.Get("webp").Name())
}

func TestCWebPArgs(t *testing.T) {
	got := cwebpArgs(Options{Quality: 90, Method: 6, Lossless: true, Threads: true}, "in.png", "out.webp")
	assert.Equal(t, []string{"-q", "90", "-m", "6", "-lossless", "-exact", "-mt", "-quiet", "in.png", "-o", "out.webp"}, got)

	got = cwebpArgs(Options{Quality: 0, Method: 1}, "a", "b")
	assert.Equal(t, []string{"-q", "0", "-m", "1", "-quiet", "a", "-o", "b"}, got)
}

func TestLibWebPLossy(t *testing.T) {
	var buf bytes.Buffer
	enc := &LibWebPEncoder{}
	require.NoError(t, enc.Encode(&buf, testutil.Gradient(64, 48), Options{Quality: 75, Method: 4}))

	data := buf.Bytes()
	require.Greater(t, len(data), 12)
	assert.Equal(t, "RIFF", string(data[:4]))
	assert.Equal(t, "WEBP", string(data[8:12]))

	cfg, err := xwebp.DecodeConfig(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, 64, cfg.Width)
	assert.Equal(t, 48, cfg.Height)
}

func TestLibWebPLosslessExact(t *testing.T) {
	src := testutil.SolidWithBorder(32, 24, 90)

	var buf bytes.Buffer
	require.NoError(t, (&LibWebPEncoder{}).Encode(&buf, src, Options{Quality: 100, Method: 6, Lossless: true}))

	img, err := xwebp.Decode(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	for y := 0; y < 24; y++ {
		for x := 0; x < 32; x++ {
			r0, g0, b0, a0 := src.At(x, y).RGBA()
			r1, g1, b1, a1 := img.At(x, y).RGBA()
			require.Equal(t, [4]uint32{r0, g0, b0, a0}, [4]uint32{r1, g1, b1, a1}, "pixel %d,%d", x, y)
		}
	}
}

func TestPNGEncoder(t *testing.T) {
	src := testutil.AlphaGradient(20, 10)
	for _, method := range []int{1, 3, 6} {
		var buf bytes.Buffer
		require.NoError(t, (&PNGEncoder{}).Encode(&buf, src, Options{Method: method}))
		img, err := png.Decode(&buf)
		require.NoError(t, err)
		assert.Equal(t, src.Bounds(), img.Bounds())
	}
}

func TestPNGLevel(t *testing.T) {
	assert.Equal(t, png.BestSpeed, pngLevel(1))
	assert.Equal(t, png.BestSpeed, pngLevel(2))
	assert.Equal(t, png.DefaultCompression, pngLevel(4))
	assert.Equal(t, png.BestCompression, pngLevel(5))
	assert.Equal(t, png.BestCompression, pngLevel(6))
}
