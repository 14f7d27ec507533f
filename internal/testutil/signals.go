package testutil

import (
	"math"
	"math/rand"
)

// Sine returns n samples of a sine at freqHz with the given amplitude,
// starting at phase 0.
func Sine(freqHz, sampleRate, amplitude float64, n int) []float64 {
	out := make([]float64, n)
	step := 2 * math.Pi * freqHz / sampleRate

	for i := range out {
		out[i] = amplitude * math.Sin(step*float64(i))
	}

	return out
}

// Noise returns n samples of uniform white noise in [-amplitude, amplitude]
// from a fixed seed.
func Noise(seed int64, amplitude float64, n int) []float64 {
	out := make([]float64, n)
	rng := rand.New(rand.NewSource(seed))

	for i := range out {
		out[i] = (rng.Float64()*2 - 1) * amplitude
	}

	return out
}

// Impulse returns n samples with a unit impulse at pos.
func Impulse(n, pos int) []float64 {
	out := make([]float64, n)
	if pos >= 0 && pos < n {
		out[pos] = 1
	}

	return out
}

// Stereo returns two independent copies of mono, for use as left and right.
func Stereo(mono []float64) (left, right []float64) {
	return append([]float64(nil), mono...), append([]float64(nil), mono...)
}

// RMS returns the root mean square of x, or 0 for an empty slice.
func RMS(x []float64) float64 {
	if len(x) == 0 {
		return 0
	}

	var sum float64
	for _, v := range x {
		sum += v * v
	}

	return math.Sqrt(sum / float64(len(x)))
}

// GainDB returns the level of out relative to in, in dB, measured over the
// samples after skip so that filter transients are ignored.
func GainDB(in, out []float64, skip int) float64 {
	skip = min(skip, len(in), len(out))

	return 20 * math.Log10(RMS(out[skip:])/RMS(in[skip:]))
}
