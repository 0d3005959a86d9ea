package engine

import (
	"image"
	"image/color"
	"math/bits"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AnyUserName/onewebp-cli/internal/testutil"
)

func solid(w, h int, c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

func TestPerceptualHashDeterministic(t *testing.T) {
	e := newTestEngine(t)
	src := testutil.JPEG(testutil.Gradient(320, 240))

	h1, err := e.PerceptualHash(src)
	require.NoError(t, err)
	for i := 0; i < 3; i++ {
		h2, err := e.PerceptualHash(append([]byte(nil), src...))
		require.NoError(t, err)
		require.Equal(t, h1, h2)
	}
	assert.NotZero(t, h1)
}

// split is black on one half and white on the other, 64x64 so the hash
// resample is a copy.
func split(horizontal bool) *image.NRGBA {
	img := solid(hashSize, hashSize, color.NRGBA{0, 0, 0, 255})
	for y := 0; y < hashSize; y++ {
		for x := 0; x < hashSize; x++ {
			if (horizontal && x >= hashSize/2) || (!horizontal && y >= hashSize/2) {
				img.SetNRGBA(x, y, color.NRGBA{255, 255, 255, 255})
			}
		}
	}
	return img
}

// A step edge has positive DCT-II terms at 0, 3 and 7 along its axis; the
// expected values are fixed so hashes stay comparable across runs and builds.
func TestPerceptualHashGolden(t *testing.T) {
	e := newTestEngine(t)
	cases := []struct {
		name string
		src  []byte
		want uint64
	}{
		{"left dark right light", testutil.PNG(split(true)), 0x0100000001000001},
		{"top dark bottom light", testutil.PNG(split(false)), 0x89},
		{"flat", testutil.PNG(solid(hashSize, hashSize, color.NRGBA{10, 20, 30, 255})), 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			h, err := e.PerceptualHash(tc.src)
			require.NoError(t, err)
			assert.Equal(t, tc.want, h, "got %#016x", h)
		})
	}
}

func TestPerceptualHashFlatImage(t *testing.T) {
	e := newTestEngine(t)
	// Only the DC coefficient exceeds the block mean.
	h, err := e.PerceptualHash(testutil.PNG(solid(100, 70, color.NRGBA{100, 150, 200, 255})))
	require.NoError(t, err)
	assert.Equal(t, uint64(1), h)
}

func TestPerceptualHashFormatInvariant(t *testing.T) {
	e := newTestEngine(t)
	img := testutil.SolidWithBorder(200, 150, 60)

	fromPNG, err := e.PerceptualHash(testutil.PNG(img))
	require.NoError(t, err)
	fromWebP, err := e.PerceptualHash(testutil.WebP(img))
	require.NoError(t, err)
	assert.Equal(t, fromPNG, fromWebP, "lossless sources must hash identically")

	grad := testutil.Gradient(400, 300)
	a, err := e.PerceptualHash(testutil.PNG(grad))
	require.NoError(t, err)
	b, err := e.PerceptualHash(testutil.JPEG(grad))
	require.NoError(t, err)
	assert.LessOrEqual(t, bits.OnesCount64(a^b), 12, "png %016x jpeg %016x", a, b)
}

func TestPerceptualHashDistinguishes(t *testing.T) {
	e := newTestEngine(t)
	a, err := e.PerceptualHash(testutil.PNG(testutil.Gradient(128, 128)))
	require.NoError(t, err)
	b, err := e.PerceptualHash(testutil.PNG(testutil.SolidWithBorder(128, 128, 30)))
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestPerceptualHashGarbage(t *testing.T) {
	e := newTestEngine(t)
	_, err := e.PerceptualHash([]byte{0xff, 0xd8, 0x00})
	requireStatus(t, err, StatusFormat)
}

func TestDCTConstant(t *testing.T) {
	v := make([]float64, hashSize)
	for i := range v {
		v[i] = 10
	}
	out := make([]float64, 8)
	dct(v, out)
	// Orthonormal DCT-II: DC = sum / sqrt(N).
	assert.InDelta(t, 10*hashSize/8.0, out[0], 1e-9)
	for i := 1; i < 8; i++ {
		assert.InDelta(t, 0, out[i], 1e-9)
	}
}

func TestBitmask(t *testing.T) {
	var c [64]float64
	c[3] = 64
	c[10] = 64
	assert.Equal(t, uint64(1)<<3|uint64(1)<<10, bitmask(&c))
}
