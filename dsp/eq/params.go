package eq

import (
	"errors"
	"fmt"
)

// ErrParamRange is wrapped by [Params.Validate] for out-of-range values.
var ErrParamRange = errors.New("eq: parameter out of range")

// Legal parameter ranges.
const (
	MinFreq   = 20.0
	MaxFreq   = 20000.0
	MinQ      = 0.1
	MaxQ      = 10.0
	MinGainDB = -24.0
	MaxGainDB = 24.0
)

// Params is one snapshot of the user-facing equalizer parameters.
// It is a plain value: the core reads it, it never mutates it.
type Params struct {
	PeakFreq   float64 // Hz
	PeakGainDB float64 // dB
	PeakQ      float64

	LowCutFreq  float64 // Hz
	HighCutFreq float64 // Hz

	LowCutSlope  Slope
	HighCutSlope Slope
}

// DefaultParams returns a flat setting: cuts at the edges of the audio band,
// 0 dB peak at 750 Hz, gentlest slopes.
func DefaultParams() Params {
	return Params{
		PeakFreq:     750,
		PeakGainDB:   0,
		PeakQ:        1,
		LowCutFreq:   MinFreq,
		HighCutFreq:  MaxFreq,
		LowCutSlope:  Slope12,
		HighCutSlope: Slope12,
	}
}

// Validate reports the first parameter outside its legal range.
func (p Params) Validate() error {
	checks := []struct {
		name   string
		v      float64
		lo, hi float64
	}{
		{"peak frequency", p.PeakFreq, MinFreq, MaxFreq},
		{"peak gain", p.PeakGainDB, MinGainDB, MaxGainDB},
		{"peak Q", p.PeakQ, MinQ, MaxQ},
		{"low-cut frequency", p.LowCutFreq, MinFreq, MaxFreq},
		{"high-cut frequency", p.HighCutFreq, MinFreq, MaxFreq},
	}

	for _, c := range checks {
		// Written so that NaN fails.
		if !(c.v >= c.lo && c.v <= c.hi) {
			return fmt.Errorf("%w: %s %v not in [%v, %v]", ErrParamRange, c.name, c.v, c.lo, c.hi)
		}
	}

	if !p.LowCutSlope.Valid() {
		return fmt.Errorf("%w: low-cut slope %d", ErrParamRange, int(p.LowCutSlope))
	}

	if !p.HighCutSlope.Valid() {
		return fmt.Errorf("%w: high-cut slope %d", ErrParamRange, int(p.HighCutSlope))
	}

	return nil
}
