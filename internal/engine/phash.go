package engine

import (
	"fmt"
	"math"

	"github.com/disintegration/imaging"

	"github.com/AnyUserName/onewebp-cli/params"
)

const hashSize = 64

// cosTable[i][j] = cos(i*pi*(j+0.5)/hashSize); only the first 8 rows are
// needed because the hash keeps the 8x8 low-frequency block.
var cosTable [8][hashSize]float64

func init() {
	for i := range cosTable {
		for j := range cosTable[i] {
			cosTable[i][j] = math.Cos(float64(i) * math.Pi * (float64(j) + 0.5) / hashSize)
		}
	}
}

// hashParams decodes JPEG at the smallest scale that still covers 64x64.
var hashParams = func() params.Params {
	b := params.NewBuilder()
	if err := b.SetMaxWidth(hashSize); err != nil {
		panic(err)
	}
	if err := b.SetMaxHeight(hashSize); err != nil {
		panic(err)
	}
	return b.SetJpegScaling(true).Build()
}()

// PerceptualHash returns the 64-bit DCT hash of src: the image is reduced to
// 64x64 luma, transformed, and bit i of the result is set when low-frequency
// coefficient i exceeds the mean of the 8x8 block. Identical bytes always
// produce the same hash.
func (e *Engine) PerceptualHash(src []byte) (uint64, error) {
	img, err := decode(src, hashParams)
	if err != nil {
		return 0, err
	}

	small := imaging.Resize(img, hashSize, hashSize, imaging.Box)
	if small.Bounds().Dx() != hashSize || small.Bounds().Dy() != hashSize {
		return 0, fail(StatusTransform, fmt.Errorf("resize to %dx%d: %w", hashSize, hashSize, errEmptyImage))
	}

	var gray [hashSize * hashSize]float64
	for y := 0; y < hashSize; y++ {
		row := small.Pix[y*small.Stride:]
		for x := 0; x < hashSize; x++ {
			r, g, b := float64(row[x*4]), float64(row[x*4+1]), float64(row[x*4+2])
			gray[y*hashSize+x] = r*0.299 + g*0.587 + b*0.114
		}
	}

	coeffs := dct8x8(&gray)
	return bitmask(&coeffs), nil
}

// dct computes the first len(out) orthonormal DCT-II coefficients of v.
func dct(v []float64, out []float64) {
	scale := math.Sqrt(2.0 / hashSize)
	for i := range out {
		var sum float64
		for j, x := range v {
			sum += x * cosTable[i][j]
		}
		sum *= scale
		if i == 0 {
			sum *= math.Sqrt2 / 2
		}
		out[i] = sum
	}
}

// dct8x8 transforms rows then the first 8 columns. The result is indexed
// column-major: coefficient (row u, column v) is at v*8+u.
func dct8x8(pixels *[hashSize * hashSize]float64) [64]float64 {
	var rows [hashSize][8]float64
	for y := 0; y < hashSize; y++ {
		dct(pixels[y*hashSize:(y+1)*hashSize], rows[y][:])
	}

	var out [64]float64
	var col [hashSize]float64
	for x := 0; x < 8; x++ {
		for y := 0; y < hashSize; y++ {
			col[y] = rows[y][x]
		}
		dct(col[:], out[x*8:(x+1)*8])
	}
	return out
}

func bitmask(coeffs *[64]float64) uint64 {
	var sum float64
	for _, c := range coeffs {
		sum += c
	}
	mean := sum / 64

	var mask uint64
	for i, c := range coeffs {
		if c > mean {
			mask |= 1 << i
		}
	}
	return mask
}
