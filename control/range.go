package control

import (
	"math"

	"github.com/cwbudde/algo-eq/dsp/core"
)

// Range maps a parameter's plain value onto the normalized [0, 1] scale
// hosts automate. Interval snaps plain values (0 disables snapping). Skew
// below 1 gives the lower part of the range more of the normalized scale,
// which suits frequencies.
type Range struct {
	Start, End float64
	Interval   float64
	Skew       float64
}

func (r Range) skew() float64 {
	if r.Skew <= 0 {
		return 1
	}

	return r.Skew
}

// FromNormalized converts a normalized position to a snapped plain value.
func (r Range) FromNormalized(p float64) float64 {
	p = core.Clamp(p, 0, 1)
	if s := r.skew(); s != 1 && p > 0 {
		p = math.Exp(math.Log(p) / s)
	}

	return r.Snap(r.Start + (r.End-r.Start)*p)
}

// ToNormalized converts a plain value to its normalized position.
func (r Range) ToNormalized(v float64) float64 {
	if r.End == r.Start {
		return 0
	}

	p := (r.Clamp(v) - r.Start) / (r.End - r.Start)
	if s := r.skew(); s != 1 {
		p = math.Pow(p, s)
	}

	return p
}

// Snap rounds v to the nearest interval step and clamps it to the range.
func (r Range) Snap(v float64) float64 {
	if r.Interval > 0 {
		snapped := r.Start + r.Interval*math.Round((v-r.Start)/r.Interval)
		// Values already on the grid are kept bit-exact.
		if math.Abs(snapped-v) > r.Interval*1e-9 {
			v = snapped
		}
	}

	return r.Clamp(v)
}

// Clamp limits v to [Start, End].
func (r Range) Clamp(v float64) float64 {
	return core.Clamp(v, r.Start, r.End)
}
