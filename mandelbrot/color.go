package mandelbrot

import (
	"fmt"
	"image/color"
	"strings"

	"mandelbrot/misc"
)

const (
	Gradient ColorMode = iota
	Grayscale
)

// ColorMode selects how escape times become pixels.
//
// Gradient is meant for display: escaped points walk once around the hue wheel
// over the iteration budget and members of the set are opaque black.
// Grayscale is the export mode: RGB is always white and the escape step,
// clamped to a byte, goes straight into the alpha channel.
type ColorMode int

func (cm ColorMode) String() string {
	switch cm {
	case Gradient:
		return "gradient"
	case Grayscale:
		return "grayscale"
	}
	return fmt.Sprintf("ColorMode(%d)", int(cm))
}

func ParseColorMode(name string) (ColorMode, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "gradient", "hsv":
		return Gradient, nil
	case "grayscale", "greyscale", "alpha":
		return Grayscale, nil
	}
	return Gradient, fmt.Errorf("unknown color mode %q", name)
}

func (cm ColorMode) MarshalText() ([]byte, error) {
	return []byte(cm.String()), nil
}

func (cm *ColorMode) UnmarshalText(text []byte) error {
	mode, err := ParseColorMode(string(text))
	if err != nil {
		return err
	}
	*cm = mode
	return nil
}

var (
	// InsideColor marks members of the set in Gradient mode.
	InsideColor = color.NRGBA{R: 0, G: 0, B: 0, A: 255}
	// InsideAlpha marks members of the set in Grayscale mode.
	InsideAlpha = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
)

// ColorMapper turns the result of EscapeTime into a color for one render pass.
type ColorMapper struct {
	budget uint
	hues   []color.NRGBA
	mode   ColorMode
}

func NewColorMapper(mode ColorMode, budget uint) ColorMapper {
	cm := ColorMapper{
		budget: budget,
		mode:   mode,
	}
	if mode == Gradient {
		cm.hues = generateHuePalette(budget)
	}
	return cm
}

func (cm *ColorMapper) Color(step uint, escaped bool) color.NRGBA {
	if cm.mode == Grayscale {
		if !escaped {
			return InsideAlpha
		}
		if step > 255 {
			step = 255
		}
		return color.NRGBA{R: 255, G: 255, B: 255, A: uint8(step)}
	}

	if !escaped {
		return InsideColor
	}
	if step < uint(len(cm.hues)) {
		return cm.hues[step]
	}
	return misc.HSVToNRGBA(hueForStep(step, cm.budget), 1.0, 1.0)
}
