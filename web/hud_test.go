package web

import (
	"image"
	"image/color"
	"image/draw"
	"testing"

	"mandelbrot/viewport"
)

func TestHUDLines(t *testing.T) {
	lines := hudLines(viewport.State{Budget: 1 << 20, View: viewport.DefaultView})
	want := []string{
		"iterations: 1,048,576",
		"upper left: -3, 2",
		"lower right: 1, -2",
	}
	if len(lines) != len(want) {
		t.Fatalf("got %d lines, want %d", len(lines), len(want))
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, lines[i], want[i])
		}
	}
}

func TestDrawHUD(t *testing.T) {
	white := color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	img := image.NewNRGBA(image.Rect(0, 0, 400, 100))
	draw.Draw(img, img.Bounds(), image.NewUniform(white), image.Point{}, draw.Src)

	DrawHUD(img, viewport.State{Budget: 256, View: viewport.DefaultView})

	if got := img.NRGBAAt(1, 1); got.R >= 255 || got.A != 255 {
		t.Errorf("panel pixel = %v, want darkened and opaque", got)
	}
	if got := img.NRGBAAt(399, 99); got != white {
		t.Errorf("pixel outside the panel = %v, want %v", got, white)
	}
}

func TestDrawHUDOnTinyImage(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 3, 2))
	DrawHUD(img, viewport.State{Budget: 1, View: viewport.DefaultView})
}
