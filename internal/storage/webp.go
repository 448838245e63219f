package storage

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"

	"github.com/chai2010/webp"
	"golang.org/x/image/draw"
)

const (
	MaxUploadBytes = 8 << 20
	MaxImageWidth  = 2048
	webpQuality    = 80

	ContentTypeWebP = "image/webp"
)

var ErrUnsupportedImage = errors.New("unsupported image format")

// ToWebP decodes a png, jpeg or webp image, scales it down to MaxImageWidth
// when wider, and re-encodes it as lossy WebP.
func ToWebP(r io.Reader) ([]byte, error) {
	src, _, err := image.Decode(io.LimitReader(r, MaxUploadBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedImage, err)
	}

	img := fit(src, MaxImageWidth)

	var buf bytes.Buffer
	if err := webp.Encode(&buf, img, &webp.Options{Quality: webpQuality}); err != nil {
		return nil, fmt.Errorf("webp encode: %w", err)
	}
	return buf.Bytes(), nil
}

func fit(src image.Image, maxWidth int) image.Image {
	b := src.Bounds()
	if b.Dx() <= maxWidth {
		return src
	}

	h := b.Dy() * maxWidth / b.Dx()
	if h < 1 {
		h = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, maxWidth, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, b, draw.Over, nil)
	return dst
}
