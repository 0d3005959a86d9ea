package engine

import (
	"bytes"
	"image"
	"image/jpeg"
	"image/png"

	"github.com/disintegration/imaging"
	xwebp "golang.org/x/image/webp"

	"github.com/AnyUserName/onewebp-cli/params"
)

type sourceKind int

const (
	kindJPEG sourceKind = iota
	kindPNG
	kindWebP
)

func (k sourceKind) String() string {
	switch k {
	case kindPNG:
		return "png"
	case kindWebP:
		return "webp"
	default:
		return "jpeg"
	}
}

// sniff picks the decoder. Anything unrecognised is handed to the JPEG
// decoder, which reports ERR_FORMAT if it is not JPEG either.
func sniff(src []byte, p params.Params) sourceKind {
	switch {
	case p.JPEG():
		return kindJPEG
	case len(src) >= 4 && string(src[1:4]) == "PNG":
		return kindPNG
	case len(src) >= 12 && string(src[0:4]) == "RIFF" && string(src[8:12]) == "WEBP":
		return kindWebP
	default:
		return kindJPEG
	}
}

// decode reads the header first so that garbage input is ERR_FORMAT and a
// truncated or corrupt body is ERR_DECOMPRESS.
func decode(src []byte, p params.Params) (image.Image, error) {
	kind := sniff(src, p)

	var (
		decodeConfig func([]byte) (image.Config, error)
		decodeImage  func([]byte) (image.Image, error)
	)
	switch kind {
	case kindPNG:
		decodeConfig = func(b []byte) (image.Config, error) { return png.DecodeConfig(bytes.NewReader(b)) }
		decodeImage = func(b []byte) (image.Image, error) { return png.Decode(bytes.NewReader(b)) }
	case kindWebP:
		decodeConfig = func(b []byte) (image.Config, error) { return xwebp.DecodeConfig(bytes.NewReader(b)) }
		decodeImage = func(b []byte) (image.Image, error) { return xwebp.Decode(bytes.NewReader(b)) }
	default:
		decodeConfig = func(b []byte) (image.Config, error) { return jpeg.DecodeConfig(bytes.NewReader(b)) }
		decodeImage = func(b []byte) (image.Image, error) { return jpeg.Decode(bytes.NewReader(b)) }
	}

	cfg, err := decodeConfig(src)
	if err != nil {
		return nil, fail(StatusFormat, err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, fail(StatusFormat, errEmptyImage)
	}

	img, err := decodeImage(src)
	if err != nil {
		return nil, fail(StatusDecompress, err)
	}

	if kind == kindJPEG && p.JpegScaling() && p.Bounded() {
		if n := jpegScale(cfg.Width, cfg.Height, p.MaxWidth(), p.MaxHeight()); n != 0 {
			w := (cfg.Width*n + 7) / 8
			h := (cfg.Height*n + 7) / 8
			img = imaging.Resize(img, w, h, imaging.Box)
		}
	}
	return img, nil
}

// jpegScale returns the numerator n of the n/8 decode scale for an image of
// w x h bounded by maxW x maxH (0 = unbounded), or 0 for no scaling.
func jpegScale(w, h, maxW, maxH int) int {
	sw, sh := 16, 16
	if maxW != 0 {
		sw = w / maxW
	}
	if maxH != 0 {
		sh = h / maxH
	}
	s := min(sw, sh)

	switch {
	case s >= 12:
		return 1
	case s >= 6:
		return 2
	case s >= 4:
		return 3
	case s >= 3:
		return 4
	case s >= 2:
		return 6
	default:
		return 0
	}
}
