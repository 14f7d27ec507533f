package control

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRange_FrequencySkew(t *testing.T) {
	r := Range{Start: 20, End: 20000, Interval: 1, Skew: 0.25}

	assert.Equal(t, 20.0, r.FromNormalized(0))
	assert.Equal(t, 20000.0, r.FromNormalized(1))
	assert.Equal(t, 20.0, r.FromNormalized(-3), "below 0 clamps")
	assert.Equal(t, 20000.0, r.FromNormalized(7), "above 1 clamps")

	// Skew 0.25 puts the 750 Hz default a little below the middle.
	assert.InDelta(t, 0.4372, r.ToNormalized(750), 1e-3)

	// Half way up the control is still well below 2 kHz.
	mid := r.FromNormalized(0.5)
	assert.Less(t, mid, 2000.0)
	assert.Greater(t, mid, 1000.0)
}

func TestRange_RoundTrip(t *testing.T) {
	r := Range{Start: 20, End: 20000, Interval: 1, Skew: 0.25}

	for _, v := range []float64{20, 21, 100, 750, 1000, 5000, 19999, 20000} {
		assert.InDelta(t, v, r.FromNormalized(r.ToNormalized(v)), 1e-9, "value %v", v)
	}
}

func TestRange_SnapAndClamp(t *testing.T) {
	gain := Range{Start: -24, End: 24, Interval: 0.5, Skew: 1}
	assert.Equal(t, 3.5, gain.Snap(3.4))
	assert.Equal(t, 24.0, gain.Snap(30))
	assert.Equal(t, -24.0, gain.Snap(-30))
	assert.InDelta(t, 0.5, gain.ToNormalized(0), 1e-12)

	free := Range{Start: 0, End: 1}
	assert.Equal(t, 0.123, free.Snap(0.123), "no interval means no snapping")
	assert.InDelta(t, 0.25, free.ToNormalized(0.25), 1e-12, "zero skew is linear")

	assert.Equal(t, 0.0, Range{Start: 5, End: 5}.ToNormalized(5))
}
