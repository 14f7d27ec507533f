package biquad

import (
	"math"
	"math/cmplx"
	"testing"
)

func TestMagnitudeSquared_MatchesResponse(t *testing.T) {
	c := tracedCoeffs()
	sr := 48000.0

	for _, freq := range []float64{100, 500, 1000, 5000, 10000, 20000} {
		h := c.Response(freq, sr)
		fromResponse := real(h)*real(h) + imag(h)*imag(h)

		fromClosed := c.MagnitudeSquared(freq, sr)
		if !almostEqual(fromClosed, fromResponse, 1e-10) {
			t.Errorf("freq=%v: MagnitudeSquared=%.15f, |Response|²=%.15f", freq, fromClosed, fromResponse)
		}
	}
}

func TestMagnitude_ConsistentForms(t *testing.T) {
	c := tracedCoeffs()
	sr := 48000.0

	for _, freq := range []float64{100, 1000, 10000} {
		lin := c.Magnitude(freq, sr)
		if !almostEqual(lin, cmplx.Abs(c.Response(freq, sr)), 1e-10) {
			t.Errorf("freq=%v: Magnitude=%v, |Response|=%v", freq, lin, cmplx.Abs(c.Response(freq, sr)))
		}

		db := c.MagnitudeDB(freq, sr)
		if !almostEqual(db, 20*math.Log10(lin), 1e-10) {
			t.Errorf("freq=%v: MagnitudeDB=%v, 20*log10(Magnitude)=%v", freq, db, 20*math.Log10(lin))
		}
	}
}

func TestPhase_MatchesResponse(t *testing.T) {
	c := tracedCoeffs()
	sr := 48000.0

	for _, freq := range []float64{100, 500, 1000, 5000, 10000} {
		if got, want := c.Phase(freq, sr), cmplx.Phase(c.Response(freq, sr)); !almostEqual(got, want, 1e-10) {
			t.Errorf("freq=%v: Phase=%.15f, arg(Response)=%.15f", freq, got, want)
		}
	}
}

func TestResponse_Identity(t *testing.T) {
	c := Identity()
	sr := 48000.0

	for _, freq := range []float64{0, 100, 1000, 10000, 24000} {
		if mag := cmplx.Abs(c.Response(freq, sr)); !almostEqual(mag, 1, 1e-12) {
			t.Errorf("freq=%v: |H|=%v, want 1", freq, mag)
		}
	}
}

func TestResponse_Allpass(t *testing.T) {
	a1, a2 := -0.5, 0.3
	c := Coefficients{B0: a2, B1: a1, B2: 1, A1: a1, A2: a2}
	sr := 48000.0

	for _, freq := range []float64{100, 500, 1000, 5000, 10000, 20000} {
		if mag := cmplx.Abs(c.Response(freq, sr)); !almostEqual(mag, 1, 1e-10) {
			t.Errorf("freq=%v: |H|=%.15f, want 1", freq, mag)
		}
	}
}

func TestCascadeMagnitude_ProductOfSections(t *testing.T) {
	coeffs := []Coefficients{
		tracedCoeffs(),
		{B0: 0.9, B1: 0.2, B2: 0.05, A1: -0.3, A2: 0.08},
	}
	sr := 48000.0

	for _, freq := range []float64{50, 1000, 15000} {
		want := coeffs[0].Magnitude(freq, sr) * coeffs[1].Magnitude(freq, sr)
		if got := CascadeMagnitude(coeffs, freq, sr); !almostEqual(got, want, 1e-12) {
			t.Errorf("freq=%v: CascadeMagnitude=%v, want %v", freq, got, want)
		}

		if got := CascadeMagnitudeDB(coeffs, freq, sr); !almostEqual(got, 20*math.Log10(want), 1e-10) {
			t.Errorf("freq=%v: CascadeMagnitudeDB=%v, want %v", freq, got, 20*math.Log10(want))
		}
	}

	if got := CascadeMagnitude(nil, 1000, sr); got != 1 {
		t.Fatalf("empty cascade magnitude = %v, want 1", got)
	}
}

func TestImpulseResponse_MatchesStage(t *testing.T) {
	c := tracedCoeffs()
	ir := c.ImpulseResponse(6)

	s := NewStage(c)
	for i := range ir {
		var x float64
		if i == 0 {
			x = 1
		}

		if y := s.ProcessSample(x); !almostEqual(y, ir[i], eps) {
			t.Fatalf("sample %d: stage=%v, ImpulseResponse=%v", i, y, ir[i])
		}
	}

	if c.ImpulseResponse(0) != nil {
		t.Fatal("ImpulseResponse(0) should be nil")
	}
}

func TestIsFinite(t *testing.T) {
	c := tracedCoeffs()
	if !c.IsFinite() {
		t.Fatal("finite coefficients reported as non-finite")
	}

	c.A2 = math.NaN()
	if c.IsFinite() {
		t.Fatal("NaN coefficient reported as finite")
	}

	c.A2 = math.Inf(1)
	if c.IsFinite() {
		t.Fatal("Inf coefficient reported as finite")
	}
}
