package biquad

import "math"

// Coefficients holds the transfer function coefficients for a single
// second-order section (biquad). a0 is normalized to 1 and not stored.
//
// The sign convention follows Direct Form II Transposed:
//
//	y  = B0*x + d0
//	d0 = B1*x - A1*y + d1
//	d1 = B2*x - A2*y
type Coefficients struct {
	B0, B1, B2 float64 // feedforward (numerator)
	A1, A2     float64 // feedback (denominator)
}

// identity backs stages that never had coefficients installed. It is never
// written.
var identity = Coefficients{B0: 1}

// Identity returns the pass-through coefficient set H(z) = 1.
func Identity() Coefficients {
	return identity
}

// IsFinite reports whether every coefficient is neither NaN nor ±Inf.
func (c *Coefficients) IsFinite() bool {
	for _, v := range [...]float64{c.B0, c.B1, c.B2, c.A1, c.A2} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}

	return true
}

// IsStable reports whether both poles lie strictly inside the unit circle
// (stability triangle |A2| < 1, |A1| < 1 + A2).
func (c *Coefficients) IsStable() bool {
	return math.Abs(c.A2) < 1 && math.Abs(c.A1) < 1+c.A2
}

// ImpulseResponse returns the first n samples of h[n] computed from zero
// state. It does not touch any Stage.
func (c *Coefficients) ImpulseResponse(n int) []float64 {
	if n <= 0 {
		return nil
	}

	ir := make([]float64, n)

	var d0, d1 float64

	x := 1.0
	for i := range ir {
		y := c.B0*x + d0
		d0 = c.B1*x - c.A1*y + d1
		d1 = c.B2*x - c.A2*y
		ir[i] = y
		x = 0
	}

	return ir
}
