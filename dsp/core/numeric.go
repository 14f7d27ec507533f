package core

import "math"

// Clamp limits value to the inclusive range [lo, hi].
func Clamp(value, lo, hi float64) float64 {
	if lo > hi {
		lo, hi = hi, lo
	}

	if value < lo {
		return lo
	}

	if value > hi {
		return hi
	}

	return value
}

// IsFinite reports whether x is neither NaN nor ±Inf.
func IsFinite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}

// FlushDenormals converts tiny denormal-like values to exact zero.
// Filter delay lines decaying towards silence otherwise drift into the
// subnormal range where arithmetic is slow.
func FlushDenormals(x float64) float64 {
	const epsilon = 1e-30
	if x > -epsilon && x < epsilon {
		return 0
	}

	return x
}

// DBToLinear converts dB to linear amplitude (20*log10 convention).
func DBToLinear(db float64) float64 {
	return math.Pow(10, db/20)
}

// LinearToDB converts linear amplitude to dB (20*log10 convention).
// Returns -Inf for zero and NaN for negative values.
func LinearToDB(linear float64) float64 {
	if linear < 0 {
		return math.NaN()
	}

	if linear == 0 {
		return math.Inf(-1)
	}

	return 20 * math.Log10(linear)
}

// MapToLog10 maps a proportion in [0, 1] onto the logarithmic range [lo, hi].
// Both bounds must be positive.
func MapToLog10(proportion, lo, hi float64) float64 {
	logLo := math.Log10(lo)
	logHi := math.Log10(hi)

	return math.Pow(10, logLo+proportion*(logHi-logLo))
}

// LogSpace returns n logarithmically spaced points from lo to hi inclusive.
func LogSpace(n int, lo, hi float64) []float64 {
	if n <= 0 {
		return nil
	}

	out := make([]float64, n)
	if n == 1 {
		out[0] = lo
		return out
	}

	for i := range out {
		out[i] = MapToLog10(float64(i)/float64(n-1), lo, hi)
	}

	return out
}
