package design

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-eq/dsp/filter/biquad"
)

// ButterworthHP designs a highpass Butterworth filter of the given order as
// a cascade of second-order sections.
//
// Sections are emitted in a fixed order, lowest Q first, so the same inputs
// always produce the same bank. Even orders yield order/2 sections; odd
// orders append a first-order section (B2=A2=0).
func ButterworthHP(freq float64, order int, sampleRate float64) ([]biquad.Coefficients, error) {
	return butterworth(freq, order, sampleRate, Highpass, butterworthFirstOrderHP)
}

// ButterworthLP designs a lowpass Butterworth cascade. Section ordering and
// odd-order handling match [ButterworthHP].
func ButterworthLP(freq float64, order int, sampleRate float64) ([]biquad.Coefficients, error) {
	return butterworth(freq, order, sampleRate, Lowpass, butterworthFirstOrderLP)
}

type (
	secondOrderFn func(freq, q, sampleRate float64) biquad.Coefficients
	firstOrderFn  func(freq, sampleRate float64) biquad.Coefficients
)

func butterworth(freq float64, order int, sampleRate float64, second secondOrderFn, first firstOrderFn) ([]biquad.Coefficients, error) {
	if order <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidOrder, order)
	}

	if err := checkFrequency(freq, sampleRate); err != nil {
		return nil, err
	}

	sections := make([]biquad.Coefficients, 0, (order+1)/2)

	n2 := order / 2
	for i := n2 - 1; i >= 0; i-- {
		sections = append(sections, second(freq, butterworthQ(order, i), sampleRate))
	}

	if order%2 != 0 {
		sections = append(sections, first(freq, sampleRate))
	}

	return sections, nil
}

// butterworthQ returns the quality factor of the pole pair at index for a
// Butterworth filter of the given order. index ranges over [0, order/2).
func butterworthQ(order, index int) float64 {
	theta := math.Pi * float64(2*index+1) / (2 * float64(order))

	s := math.Sin(theta)
	if s == 0 {
		return defaultQ
	}

	return 1 / (2 * s)
}

func butterworthFirstOrderLP(freq, sampleRate float64) biquad.Coefficients {
	k := math.Tan(math.Pi * freq / sampleRate)
	norm := 1 / (1 + k)

	return biquad.Coefficients{
		B0: k * norm,
		B1: k * norm,
		A1: (k - 1) * norm,
	}
}

func butterworthFirstOrderHP(freq, sampleRate float64) biquad.Coefficients {
	k := math.Tan(math.Pi * freq / sampleRate)
	norm := 1 / (1 + k)

	return biquad.Coefficients{
		B0: norm,
		B1: -norm,
		A1: (k - 1) * norm,
	}
}
