package mandelbrot

import (
	"image/color"

	"mandelbrot/misc"
)

// Budgets above this size compute hues per pixel instead of holding a table.
const maxPaletteSize = 1 << 16

func hueForStep(step uint, budget uint) float64 {
	if budget == 0 {
		return 0
	}
	return 360.0 * float64(step) / float64(budget)
}

// generateHuePalette precomputes the gradient color of every escape step below
// budget so the render loop only does a lookup.
func generateHuePalette(budget uint) []color.NRGBA {
	if budget > maxPaletteSize {
		return nil
	}
	palette := make([]color.NRGBA, budget)
	for step := uint(0); step < budget; step++ {
		palette[step] = misc.HSVToNRGBA(hueForStep(step, budget), 1.0, 1.0)
	}
	return palette
}
