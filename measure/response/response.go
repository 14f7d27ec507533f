package response

import (
	"errors"
	"fmt"
	"math"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-vecmath"
)

// Errors returned by Measure.
var (
	ErrEmptyIR           = errors.New("response: impulse response is empty")
	ErrInvalidSampleRate = errors.New("response: sample rate must be positive")
)

// Response is a measured magnitude spectrum from DC to Nyquist.
type Response struct {
	sampleRate float64
	size       int
	mag        []float64
}

// Measure zero-pads ir to a power of two, transforms it and keeps the
// magnitude of bins 0..size/2.
func Measure(ir []float64, sampleRate float64) (*Response, error) {
	if len(ir) == 0 {
		return nil, ErrEmptyIR
	}

	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSampleRate, sampleRate)
	}

	size := nextPowerOf2(max(len(ir), 2))

	plan, err := algofft.NewPlan64(size)
	if err != nil {
		return nil, fmt.Errorf("response: failed to create FFT plan: %w", err)
	}

	padded := make([]complex128, size)
	for i, v := range ir {
		padded[i] = complex(v, 0)
	}

	freq := make([]complex128, size)
	if err := plan.Forward(freq, padded); err != nil {
		return nil, fmt.Errorf("response: forward FFT failed: %w", err)
	}

	bins := size/2 + 1
	re := make([]float64, bins)
	im := make([]float64, bins)

	for k := range bins {
		re[k] = real(freq[k])
		im[k] = imag(freq[k])
	}

	mag := make([]float64, bins)
	vecmath.Magnitude(mag, re, im)

	return &Response{sampleRate: sampleRate, size: size, mag: mag}, nil
}

// Bins returns the number of magnitude bins (FFT size / 2 + 1).
func (r *Response) Bins() int { return len(r.mag) }

// Size returns the FFT size used.
func (r *Response) Size() int { return r.size }

// SampleRate returns the sample rate the response was measured at.
func (r *Response) SampleRate() float64 { return r.sampleRate }

// Freq returns the centre frequency of bin k in Hz.
func (r *Response) Freq(k int) float64 {
	return float64(k) * r.sampleRate / float64(r.size)
}

// Magnitude returns a copy of the linear bin magnitudes.
func (r *Response) Magnitude() []float64 {
	return append([]float64(nil), r.mag...)
}

// MagnitudeAt returns the linear magnitude at freqHz, interpolating
// linearly between neighbouring bins. Frequencies outside [0, Nyquist] are
// clamped.
func (r *Response) MagnitudeAt(freqHz float64) float64 {
	pos := freqHz * float64(r.size) / r.sampleRate
	last := float64(len(r.mag) - 1)

	switch {
	case !(pos > 0):
		return r.mag[0]
	case pos >= last:
		return r.mag[len(r.mag)-1]
	}

	k := int(pos)
	frac := pos - float64(k)

	return r.mag[k] + frac*(r.mag[k+1]-r.mag[k])
}

// MagnitudeDBAt returns MagnitudeAt in dB.
func (r *Response) MagnitudeDBAt(freqHz float64) float64 {
	m := r.MagnitudeAt(freqHz)
	if m <= 0 {
		return math.Inf(-1)
	}

	return 20 * math.Log10(m)
}

func nextPowerOf2(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}

	return p
}
