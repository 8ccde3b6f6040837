package misc

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math"
)

// HSVToNRGBA converts a hue in degrees with saturation and value in [0, 1] to an
// opaque color.
func HSVToNRGBA(h, s, v float64) color.NRGBA {
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	c := v * s
	x := c * (1 - math.Abs(math.Mod(h/60.0, 2)-1))
	m := v - c

	var r, g, b float64
	switch {
	case h < 60:
		r, g, b = c, x, 0
	case h < 120:
		r, g, b = x, c, 0
	case h < 180:
		r, g, b = 0, c, x
	case h < 240:
		r, g, b = 0, x, c
	case h < 300:
		r, g, b = x, 0, c
	default:
		r, g, b = c, 0, x
	}

	return color.NRGBA{
		R: uint8((r + m) * 255),
		G: uint8((g + m) * 255),
		B: uint8((b + m) * 255),
		A: 255,
	}
}

// NewImage wraps a row-major RGBA buffer without copying it. The buffer is not
// alpha-premultiplied, so NRGBA keeps the bytes exactly as rendered.
func NewImage(pixels []byte, width int, height int) (*image.NRGBA, error) {
	if width < 1 || height < 1 {
		return nil, fmt.Errorf("invalid image size %dx%d", width, height)
	}
	if len(pixels) != 4*width*height {
		return nil, fmt.Errorf("buffer holds %d bytes, a %dx%d image needs %d", len(pixels), width, height, 4*width*height)
	}
	return &image.NRGBA{
		Pix:    pixels,
		Stride: 4 * width,
		Rect:   image.Rect(0, 0, width, height),
	}, nil
}

func EncodePNG(img image.Image) ([]byte, error) {
	var buffer bytes.Buffer
	if err := png.Encode(&buffer, img); err != nil {
		return nil, fmt.Errorf("unable to encode png: %w", err)
	}
	return buffer.Bytes(), nil
}

// WritePNG stores a rendered buffer as an RGBA png at fileName.
func WritePNG(fileName string, pixels []byte, width int, height int) error {
	img, err := NewImage(pixels, width, height)
	if err != nil {
		return err
	}
	encoded, err := EncodePNG(img)
	if err != nil {
		return err
	}
	_, err = WriteFile(fileName, encoded)
	return err
}
