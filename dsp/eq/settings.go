package eq

import (
	"fmt"

	"github.com/cwbudde/algo-eq/dsp/core"
	"github.com/cwbudde/algo-eq/dsp/filter/biquad"
	"github.com/cwbudde/algo-eq/dsp/filter/design"
)

// Design frequencies are kept below this fraction of the sample rate, so a
// 20 kHz high cut stays realizable at 32 kHz.
const maxFreqRatio = 0.49

// Settings is a complete, immutable coefficient snapshot for one parameter
// set at one sample rate. A published *Settings is shared between goroutines
// and must never be modified.
type Settings struct {
	// Generation orders snapshots published by one Processor. It is zero
	// for settings built directly with NewSettings.
	Generation uint64
	SampleRate float64
	Params     Params

	Peak    biquad.Coefficients
	LowCut  CutBank
	HighCut CutBank
}

// NewSettings designs every filter of the chain for p at sampleRate.
func NewSettings(p Params, sampleRate float64) (*Settings, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	if !core.IsFinite(sampleRate) || sampleRate <= 0 {
		return nil, fmt.Errorf("%w: sample rate %v", core.ErrInvalidConfig, sampleRate)
	}

	limit := sampleRate * maxFreqRatio

	peak, err := design.PeakEQ(min(p.PeakFreq, limit), p.PeakQ, p.PeakGainDB, sampleRate)
	if err != nil {
		return nil, fmt.Errorf("eq: peak: %w", err)
	}

	low, err := cutBank(design.ButterworthHP, min(p.LowCutFreq, limit), p.LowCutSlope, sampleRate)
	if err != nil {
		return nil, fmt.Errorf("eq: low cut: %w", err)
	}

	high, err := cutBank(design.ButterworthLP, min(p.HighCutFreq, limit), p.HighCutSlope, sampleRate)
	if err != nil {
		return nil, fmt.Errorf("eq: high cut: %w", err)
	}

	return &Settings{
		SampleRate: sampleRate,
		Params:     p,
		Peak:       peak,
		LowCut:     low,
		HighCut:    high,
	}, nil
}

type butterworthFn func(freq float64, order int, sampleRate float64) ([]biquad.Coefficients, error)

func cutBank(fn butterworthFn, freq float64, slope Slope, sampleRate float64) (CutBank, error) {
	sections, err := fn(freq, slope.Order(), sampleRate)
	if err != nil {
		return CutBank{}, err
	}

	return newCutBank(sections, slope)
}

// Magnitude returns the linear magnitude response of the whole chain.
func (s *Settings) Magnitude(freqHz float64) float64 {
	return s.LowCut.Magnitude(freqHz, s.SampleRate) *
		s.Peak.Magnitude(freqHz, s.SampleRate) *
		s.HighCut.Magnitude(freqHz, s.SampleRate)
}

// MagnitudeDB returns the response of the whole chain in dB.
func (s *Settings) MagnitudeDB(freqHz float64) float64 {
	return core.LinearToDB(s.Magnitude(freqHz))
}

// ResponseCurve evaluates the chain at n log-spaced frequencies from lo to
// hi and returns the frequencies and their responses in dB.
func (s *Settings) ResponseCurve(n int, lo, hi float64) (freqs, db []float64) {
	freqs = core.LogSpace(n, lo, hi)
	db = make([]float64, len(freqs))

	for i, f := range freqs {
		db[i] = s.MagnitudeDB(f)
	}

	return freqs, db
}

// PoleRadius returns the largest pole radius of all active sections. It is
// below 1 for every legal parameter set.
func (s *Settings) PoleRadius() float64 {
	return max(
		s.Peak.PoleRadius(),
		biquad.MaxPoleRadius(s.LowCut.Sections[:s.LowCut.Active]),
		biquad.MaxPoleRadius(s.HighCut.Sections[:s.HighCut.Active]),
	)
}

// ImpulseResponse returns the first n output samples of a fresh chain
// configured with s, driven by a unit impulse.
func (s *Settings) ImpulseResponse(n int) []float64 {
	if n <= 0 {
		return nil
	}

	var c Chain
	c.Apply(s)

	ir := make([]float64, n)
	ir[0] = 1
	c.ProcessBlock(ir)

	return ir
}
