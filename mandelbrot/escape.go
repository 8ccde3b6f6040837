package mandelbrot

// EscapeTime decides whether c is in the Mandelbrot set using at most limit
// iterations of z = z*z + c.
//
// When the orbit leaves the circle of radius two at iteration i, EscapeTime
// returns (i, true). When it stays inside for all limit iterations the point is
// treated as a member and EscapeTime returns (0, false).
func EscapeTime(c complex128, limit uint) (uint, bool) {
	z := complex(0, 0)
	for i := uint(0); i < limit; i++ {
		z = z*z + c
		if real(z)*real(z)+imag(z)*imag(z) > 4.0 {
			return i, true
		}
	}
	return 0, false
}
