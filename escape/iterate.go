package escape

// Iterate runs z = z² + c starting at z0 until |z|² exceeds Bailout or
// maxIter steps are taken, and returns the number of steps.
//
// The cross term 2·Re·Im is recovered from w = (Re+Im)² so each step needs
// three multiplications.
func Iterate(z0, c complex128, maxIter int) int {
	x0, y0 := real(z0), imag(z0)
	cr, ci := real(c), imag(c)

	x2 := x0 * x0
	y2 := y0 * y0
	w := (x0 + y0) * (x0 + y0)

	i := 0
	for i < maxIter && x2+y2 <= Bailout {
		x := x2 - y2 + cr
		y := w - x2 - y2 + ci
		xy := x + y
		x2 = x * x
		y2 = y * y
		w = xy * xy
		i++
	}
	return i
}
