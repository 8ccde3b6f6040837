package mandelbrot

import (
	"encoding/json"
	"fmt"
	"math"
)

// Bounds is the size in pixels of a rendered buffer.
type Bounds struct {
	Width  int
	Height int
}

func (b Bounds) String() string {
	return fmt.Sprintf("%dx%d", b.Width, b.Height)
}

func (b Bounds) Verify() error {
	if b.Width < 1 || b.Height < 1 {
		return fmt.Errorf("%w: got %s", ErrInvalidBounds, b)
	}
	return nil
}

// ViewRectangle is the region of the complex plane mapped onto the pixel buffer.
type ViewRectangle struct {
	UpperLeft  complex128
	LowerRight complex128
}

func (v ViewRectangle) String() string {
	output := "{View "
	output += fmt.Sprintf("UpperLeft: %g ", v.UpperLeft)
	output += fmt.Sprintf("LowerRight: %g}", v.LowerRight)
	return output
}

// Verify reports whether the rectangle is finite and correctly oriented: the
// upper-left corner has the smaller real part and the larger imaginary part.
func (v ViewRectangle) Verify() error {
	for _, f := range []float64{real(v.UpperLeft), imag(v.UpperLeft), real(v.LowerRight), imag(v.LowerRight)} {
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return fmt.Errorf("%w: %s is not finite", ErrDegenerateView, v)
		}
	}
	if !(real(v.UpperLeft) < real(v.LowerRight)) || !(imag(v.UpperLeft) > imag(v.LowerRight)) {
		return fmt.Errorf("%w: %s", ErrDegenerateView, v)
	}
	return nil
}

// Width and Height are the extent of the rectangle on the complex plane.
func (v ViewRectangle) Width() float64 {
	return real(v.LowerRight) - real(v.UpperLeft)
}

func (v ViewRectangle) Height() float64 {
	return imag(v.UpperLeft) - imag(v.LowerRight)
}

// Center is the midpoint of the rectangle.
func (v ViewRectangle) Center() complex128 {
	return (v.UpperLeft + v.LowerRight) / 2
}

type jsonView struct {
	UpperLeft  [2]float64 `json:"upper_left"`
	LowerRight [2]float64 `json:"lower_right"`
}

// MarshalJSON writes each corner as a [re, im] pair since encoding/json has no
// complex number support.
func (v ViewRectangle) MarshalJSON() ([]byte, error) {
	return json.Marshal(jsonView{
		UpperLeft:  [2]float64{real(v.UpperLeft), imag(v.UpperLeft)},
		LowerRight: [2]float64{real(v.LowerRight), imag(v.LowerRight)},
	})
}

func (v *ViewRectangle) UnmarshalJSON(data []byte) error {
	var jv jsonView
	if err := json.Unmarshal(data, &jv); err != nil {
		return err
	}
	v.UpperLeft = complex(jv.UpperLeft[0], jv.UpperLeft[1])
	v.LowerRight = complex(jv.LowerRight[0], jv.LowerRight[1])
	return nil
}

// PixelToPoint converts the (column, row) pixel of an image with the given bounds
// to its point on the complex plane. Pixel rows grow downwards while the
// imaginary axis grows upwards, so the vertical term is subtracted.
//
// Pixels outside of bounds are extrapolated along the same lines.
func PixelToPoint(bounds Bounds, column int, row int, view ViewRectangle) complex128 {
	width := real(view.LowerRight) - real(view.UpperLeft)
	height := imag(view.UpperLeft) - imag(view.LowerRight)
	return complex(
		real(view.UpperLeft)+float64(column)*width/float64(bounds.Width),
		imag(view.UpperLeft)-float64(row)*height/float64(bounds.Height),
	)
}
