package biquad

import (
	"math"
	"math/cmplx"
)

// Poles returns the roots of the denominator 1 + A1 z^-1 + A2 z^-2.
// A first-order section has its second pole at the origin.
func (c *Coefficients) Poles() [2]complex128 {
	return roots(1, c.A1, c.A2)
}

// Zeros returns the roots of the numerator B0 + B1 z^-1 + B2 z^-2.
func (c *Coefficients) Zeros() [2]complex128 {
	return roots(c.B0, c.B1, c.B2)
}

// PoleRadius returns the largest pole magnitude. A section is stable when
// the radius is below 1; the closer to 1, the longer it rings.
func (c *Coefficients) PoleRadius() float64 {
	p := c.Poles()

	return math.Max(cmplx.Abs(p[0]), cmplx.Abs(p[1]))
}

// MaxPoleRadius returns the largest pole radius over a cascade, or 0 for
// an empty one.
func MaxPoleRadius(coeffs []Coefficients) float64 {
	r := 0.0
	for i := range coeffs {
		r = math.Max(r, coeffs[i].PoleRadius())
	}

	return r
}

// roots solves a + b z^-1 + c z^-2 = 0 for z, i.e. a z^2 + b z + c = 0.
func roots(a, b, c float64) [2]complex128 {
	switch {
	case a == 0 && b == 0:
		return [2]complex128{}
	case a == 0:
		// Degenerate numerator: b z + c = 0, second root at the origin.
		return [2]complex128{complex(-c/b, 0), 0}
	}

	sq := cmplx.Sqrt(complex(b*b-4*a*c, 0))
	den := complex(2*a, 0)

	return [2]complex128{(complex(-b, 0) + sq) / den, (complex(-b, 0) - sq) / den}
}
