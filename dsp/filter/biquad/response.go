package biquad

import (
	"math"
	"math/cmplx"
)

// omega maps a frequency in Hz to radians per sample.
func omega(freqHz, sampleRate float64) float64 {
	return 2 * math.Pi * freqHz / sampleRate
}

// quad evaluates p0 + p1*z + p2*z^2 by Horner's rule.
func quad(p0, p1, p2 float64, z complex128) complex128 {
	return complex(p0, 0) + z*(complex(p1, 0)+z*complex(p2, 0))
}

// Response evaluates the transfer function on the unit circle at freqHz.
func (c *Coefficients) Response(freqHz, sampleRate float64) complex128 {
	zinv := cmplx.Rect(1, -omega(freqHz, sampleRate))

	return quad(c.B0, c.B1, c.B2, zinv) / quad(1, c.A1, c.A2, zinv)
}

// MagnitudeSquared returns |H(f)|^2 from the real-valued expansion of
// numerator and denominator, with no complex arithmetic.
func (c *Coefficients) MagnitudeSquared(freqHz, sampleRate float64) float64 {
	w := omega(freqHz, sampleRate)

	return power(c.B0, c.B1, c.B2, w) / power(1, c.A1, c.A2, w)
}

// power returns |p0 + p1 e^-jw + p2 e^-2jw|^2.
func power(p0, p1, p2, w float64) float64 {
	cos1, cos2 := math.Cos(w), math.Cos(2*w)

	return p0*p0 + p1*p1 + p2*p2 + 2*(p0*p1+p1*p2)*cos1 + 2*p0*p2*cos2
}

// Magnitude returns the linear gain |H(f)|.
func (c *Coefficients) Magnitude(freqHz, sampleRate float64) float64 {
	return math.Sqrt(c.MagnitudeSquared(freqHz, sampleRate))
}

// MagnitudeDB returns the gain at freqHz in dB.
func (c *Coefficients) MagnitudeDB(freqHz, sampleRate float64) float64 {
	return 10 * math.Log10(c.MagnitudeSquared(freqHz, sampleRate))
}

// Phase returns arg H(f) in radians, within [-pi, pi].
func (c *Coefficients) Phase(freqHz, sampleRate float64) float64 {
	return cmplx.Phase(c.Response(freqHz, sampleRate))
}

// CascadeMagnitude is the product of the section magnitudes, which is the
// gain of the sections run in series. An empty cascade has unity gain.
func CascadeMagnitude(coeffs []Coefficients, freqHz, sampleRate float64) float64 {
	mag := 1.0
	for i := range coeffs {
		mag *= coeffs[i].Magnitude(freqHz, sampleRate)
	}

	return mag
}

// CascadeMagnitudeDB returns [CascadeMagnitude] in dB.
func CascadeMagnitudeDB(coeffs []Coefficients, freqHz, sampleRate float64) float64 {
	return 20 * math.Log10(CascadeMagnitude(coeffs, freqHz, sampleRate))
}
