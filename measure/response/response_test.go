package response

import (
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/algo-eq/dsp/eq"
	"github.com/cwbudde/algo-eq/internal/testutil"
)

func TestMeasure_ImpulseIsFlat(t *testing.T) {
	r, err := Measure(testutil.Impulse(1000, 0), 48000)
	if err != nil {
		t.Fatal(err)
	}

	if r.Size() != 1024 || r.Bins() != 513 {
		t.Fatalf("size/bins = %d/%d, want 1024/513", r.Size(), r.Bins())
	}

	for k, m := range r.Magnitude() {
		if math.Abs(m-1) > 1e-12 {
			t.Fatalf("bin %d: |X| = %v, want 1", k, m)
		}
	}
}

func TestMeasure_Errors(t *testing.T) {
	if _, err := Measure(nil, 48000); !errors.Is(err, ErrEmptyIR) {
		t.Fatalf("err = %v, want ErrEmptyIR", err)
	}

	for _, sr := range []float64{0, -1, math.NaN()} {
		if _, err := Measure([]float64{1}, sr); !errors.Is(err, ErrInvalidSampleRate) {
			t.Fatalf("sr=%v: err = %v, want ErrInvalidSampleRate", sr, err)
		}
	}
}

func TestResponse_FreqAndInterpolation(t *testing.T) {
	r, err := Measure([]float64{0.5, 0.5, 0, 0}, 8000)
	if err != nil {
		t.Fatal(err)
	}

	// Two-tap average: |H| = |cos(pi f / fs)|, bins every 2000 Hz.
	if r.Bins() != 3 || r.Freq(1) != 2000 {
		t.Fatalf("bins=%d Freq(1)=%v, want 3 and 2000", r.Bins(), r.Freq(1))
	}

	if got := r.MagnitudeAt(0); math.Abs(got-1) > 1e-12 {
		t.Fatalf("DC = %v, want 1", got)
	}

	if got := r.MagnitudeAt(2000); math.Abs(got-math.Sqrt2/2) > 1e-12 {
		t.Fatalf("bin 1 = %v, want %v", got, math.Sqrt2/2)
	}

	if got, want := r.MagnitudeAt(1000), (1+math.Sqrt2/2)/2; math.Abs(got-want) > 1e-12 {
		t.Fatalf("interpolated = %v, want %v", got, want)
	}

	if got := r.MagnitudeAt(1e6); got != r.MagnitudeAt(4000) {
		t.Fatalf("above Nyquist not clamped: %v", got)
	}

	if got := r.MagnitudeAt(-5); got != r.MagnitudeAt(0) {
		t.Fatalf("negative frequency not clamped: %v", got)
	}

	if db := r.MagnitudeDBAt(4000); db > -200 {
		t.Fatalf("null at Nyquist = %v dB", db)
	}

	silent, err := Measure(make([]float64, 4), 8000)
	if err != nil {
		t.Fatal(err)
	}

	if !math.IsInf(silent.MagnitudeDBAt(1000), -1) {
		t.Fatalf("silence should measure -Inf dB, got %v", silent.MagnitudeDBAt(1000))
	}
}

func TestMeasure_MatchesEQDesign(t *testing.T) {
	p := eq.DefaultParams()
	p.PeakFreq = 1000
	p.PeakGainDB = 12
	p.PeakQ = 2
	p.LowCutFreq = 80
	p.LowCutSlope = eq.Slope24
	p.HighCutFreq = 12000
	p.HighCutSlope = eq.Slope48

	s, err := eq.NewSettings(p, 48000)
	if err != nil {
		t.Fatal(err)
	}

	r, err := Measure(s.ImpulseResponse(1<<15), s.SampleRate)
	if err != nil {
		t.Fatal(err)
	}

	for _, f := range []float64{80, 250, 1000, 2000, 6000, 12000} {
		testutil.RequireNearDB(t, "measured response", r.MagnitudeDBAt(f), s.MagnitudeDB(f), 0.05)
	}
}
