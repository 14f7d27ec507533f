package design

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-eq/dsp/core"
	"github.com/cwbudde/algo-eq/dsp/filter/biquad"
)

const defaultQ = 1 / math.Sqrt2

// Lowpass designs an RBJ lowpass biquad at freq (Hz) with quality factor q.
func Lowpass(freq, q, sampleRate float64) biquad.Coefficients {
	w0, ok := normalizedW0(freq, sampleRate)
	if !ok {
		return biquad.Coefficients{}
	}

	q = normalizedQ(q)
	cw := math.Cos(w0)
	alpha := math.Sin(w0) / (2 * q)

	b1 := 1 - cw
	b0 := b1 / 2
	b2 := b0
	a0 := 1 + alpha
	a1 := -2 * cw
	a2 := 1 - alpha

	return normalizeBiquad(b0, b1, b2, a0, a1, a2)
}

// Highpass designs an RBJ highpass biquad at freq (Hz) with quality factor q.
func Highpass(freq, q, sampleRate float64) biquad.Coefficients {
	w0, ok := normalizedW0(freq, sampleRate)
	if !ok {
		return biquad.Coefficients{}
	}

	q = normalizedQ(q)
	cw := math.Cos(w0)
	alpha := math.Sin(w0) / (2 * q)

	b0 := (1 + cw) / 2
	b1 := -(1 + cw)
	b2 := b0
	a0 := 1 + alpha
	a1 := -2 * cw
	a2 := 1 - alpha

	return normalizeBiquad(b0, b1, b2, a0, a1, a2)
}

// Peak designs a peaking-EQ biquad with gain in dB using the RBJ formula.
// It returns the zero value for parameters outside the design domain; use
// [PeakEQ] to get an error instead.
func Peak(freq, gainDB, q, sampleRate float64) biquad.Coefficients {
	w0, ok := normalizedW0(freq, sampleRate)
	if !ok {
		return biquad.Coefficients{}
	}

	q = normalizedQ(q)
	cw := math.Cos(w0)
	alpha := math.Sin(w0) / (2 * q)
	// Amplitude square root: the peak reaches a*a = 10^(gainDB/20).
	a := core.DBToLinear(gainDB / 2)

	b0 := 1 + alpha*a
	b1 := -2 * cw
	b2 := 1 - alpha*a
	a0 := 1 + alpha/a
	a1 := -2 * cw
	a2 := 1 - alpha/a

	return normalizeBiquad(b0, b1, b2, a0, a1, a2)
}

// PeakEQ designs a peak/bell filter centred on freq with the given Q and
// gain in dB. Unlike [Peak] it rejects parameters outside the design domain:
// the sample rate must be positive, 0 < freq < sampleRate/2, q > 0 and the
// gain finite.
//
// A gain of 0 dB yields the identity transfer function.
func PeakEQ(freq, q, gainDB, sampleRate float64) (biquad.Coefficients, error) {
	if err := checkFrequency(freq, sampleRate); err != nil {
		return biquad.Coefficients{}, err
	}

	if !core.IsFinite(q) || q <= 0 {
		return biquad.Coefficients{}, fmt.Errorf("%w: q=%v", ErrInvalidQ, q)
	}

	if !core.IsFinite(gainDB) {
		return biquad.Coefficients{}, fmt.Errorf("%w: gain=%v dB", ErrInvalidGain, gainDB)
	}

	c := Peak(freq, gainDB, q, sampleRate)
	if !c.IsFinite() {
		return biquad.Coefficients{}, fmt.Errorf("%w: f=%v q=%v gain=%v", ErrInvalidGain, freq, q, gainDB)
	}

	return c, nil
}

func checkFrequency(freq, sampleRate float64) error {
	if !core.IsFinite(sampleRate) || sampleRate <= 0 {
		return fmt.Errorf("%w: %v", ErrInvalidSampleRate, sampleRate)
	}

	if _, ok := normalizedW0(freq, sampleRate); !ok {
		return fmt.Errorf("%w: f=%v fs=%v", ErrInvalidFrequency, freq, sampleRate)
	}

	return nil
}

func normalizedW0(freq, sampleRate float64) (float64, bool) {
	if sampleRate <= 0 || !core.IsFinite(sampleRate) {
		return 0, false
	}

	nyquist := sampleRate / 2
	if freq <= 0 || freq >= nyquist || !core.IsFinite(freq) {
		return 0, false
	}

	return 2 * math.Pi * freq / sampleRate, true
}

func normalizedQ(q float64) float64 {
	if q <= 0 || !core.IsFinite(q) {
		return defaultQ
	}

	return q
}

func normalizeBiquad(b0, b1, b2, a0, a1, a2 float64) biquad.Coefficients {
	if a0 == 0 || !core.IsFinite(a0) {
		return biquad.Coefficients{}
	}

	return biquad.Coefficients{
		B0: b0 / a0,
		B1: b1 / a0,
		B2: b2 / a0,
		A1: a1 / a0,
		A2: a2 / a0,
	}
}
