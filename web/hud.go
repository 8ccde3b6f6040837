package web

import (
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"mandelbrot/viewport"
)

const (
	hudPadding    = 4
	hudLineHeight = 15
)

var (
	hudBackground = color.NRGBA{R: 0, G: 0, B: 0, A: 160}
	hudForeground = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	hudPrinter    = message.NewPrinter(language.English)
)

func hudLines(state viewport.State) []string {
	return []string{
		hudPrinter.Sprintf("iterations: %d", state.Budget),
		hudPrinter.Sprintf("upper left: %.6g, %.6g", real(state.View.UpperLeft), imag(state.View.UpperLeft)),
		hudPrinter.Sprintf("lower right: %.6g, %.6g", real(state.View.LowerRight), imag(state.View.LowerRight)),
	}
}

// DrawHUD writes the iteration budget and view corners into the top left corner
// of img over a translucent panel.
func DrawHUD(img draw.Image, state viewport.State) {
	lines := hudLines(state)

	d := &font.Drawer{Dst: img, Src: image.NewUniform(hudForeground), Face: basicfont.Face7x13}
	var width fixed.Int26_6
	for _, line := range lines {
		width = max(width, d.MeasureString(line))
	}

	panel := image.Rect(0, 0, width.Ceil()+2*hudPadding, len(lines)*hudLineHeight+2*hudPadding).Intersect(img.Bounds())
	draw.Draw(img, panel, image.NewUniform(hudBackground), image.Point{}, draw.Over)

	for i, line := range lines {
		d.Dot = fixed.P(hudPadding, hudPadding+(i+1)*hudLineHeight-3)
		d.DrawString(line)
	}
}
