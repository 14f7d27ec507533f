package core

import (
	"math"
	"testing"
)

func TestClamp(t *testing.T) {
	tests := []struct {
		name     string
		value    float64
		lo       float64
		hi       float64
		expected float64
	}{
		{name: "inside", value: 0.5, lo: 0, hi: 1, expected: 0.5},
		{name: "below", value: -1, lo: 0, hi: 1, expected: 0},
		{name: "above", value: 2, lo: 0, hi: 1, expected: 1},
		{name: "swapped", value: 2, lo: 1, hi: 0, expected: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Clamp(tt.value, tt.lo, tt.hi)
			if got != tt.expected {
				t.Fatalf("Clamp() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestIsFinite(t *testing.T) {
	if !IsFinite(1.5) {
		t.Fatal("1.5 reported as non-finite")
	}

	for _, v := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		if IsFinite(v) {
			t.Fatalf("%v reported as finite", v)
		}
	}
}

func TestFlushDenormals(t *testing.T) {
	if got := FlushDenormals(1e-35); got != 0 {
		t.Fatalf("FlushDenormals(1e-35) = %v, want 0", got)
	}

	if got := FlushDenormals(-0.25); got != -0.25 {
		t.Fatalf("FlushDenormals(-0.25) = %v, want -0.25", got)
	}
}

func TestDBConversions(t *testing.T) {
	linear := DBToLinear(-6)

	db := LinearToDB(linear)
	if math.Abs(db+6) > 1e-10 {
		t.Fatalf("LinearToDB(DBToLinear(-6)) = %v, want -6", db)
	}

	if !math.IsInf(LinearToDB(0), -1) {
		t.Fatal("expected -Inf for zero")
	}

	if !math.IsNaN(LinearToDB(-1)) {
		t.Fatal("expected NaN for negative amplitude")
	}
}

func TestMapToLog10(t *testing.T) {
	tests := []struct {
		p, want float64
	}{
		{0, 20},
		{1, 20000},
		{0.5, math.Sqrt(20 * 20000)},
		{1.0 / 3, 200},
	}

	for _, tt := range tests {
		if got := MapToLog10(tt.p, 20, 20000); math.Abs(got-tt.want) > 1e-9*tt.want {
			t.Errorf("MapToLog10(%v) = %v, want %v", tt.p, got, tt.want)
		}
	}
}

func TestLogSpace(t *testing.T) {
	pts := LogSpace(3, 20, 20000)
	if len(pts) != 3 {
		t.Fatalf("len = %d, want 3", len(pts))
	}

	want := []float64{20, math.Sqrt(20 * 20000), 20000}
	for i := range want {
		if math.Abs(pts[i]-want[i]) > 1e-9*want[i] {
			t.Fatalf("pts[%d] = %v, want %v", i, pts[i], want[i])
		}
	}

	if got := LogSpace(1, 50, 100); len(got) != 1 || got[0] != 50 {
		t.Fatalf("LogSpace(1) = %v, want [50]", got)
	}

	if LogSpace(0, 1, 2) != nil {
		t.Fatal("LogSpace(0) should be nil")
	}
}
