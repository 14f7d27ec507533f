package biquad

import (
	"sync/atomic"

	"github.com/cwbudde/algo-eq/dsp/core"
)

// Stage is a single biquad section whose coefficients may be replaced by a
// control goroutine while an audio goroutine is filtering.
//
// The coefficient set and the bypass flag are the only state shared between
// goroutines. The delay line belongs to whichever goroutine calls the
// Process and Reset methods; those must not be called concurrently.
//
// The zero value is a pass-through stage with empty history.
type Stage struct {
	coeffs   atomic.Pointer[Coefficients]
	bypassed atomic.Bool
	clear    atomic.Bool

	d0, d1 float64
}

// NewStage returns a Stage with the given coefficients and zero state.
func NewStage(c Coefficients) *Stage {
	s := &Stage{}
	s.SetCoefficients(c)

	return s
}

// SetCoefficients replaces the active coefficient set as one atomic step.
// c is copied, so the caller may reuse it.
func (s *Stage) SetCoefficients(c Coefficients) {
	s.coeffs.Store(&c)
}

// Publish installs c without copying it. The value behind c must never be
// written again; it is shared with the processing goroutine from now on.
// Publish does not allocate and is safe to call on the audio goroutine.
func (s *Stage) Publish(c *Coefficients) {
	if c == nil {
		c = &identity
	}

	s.coeffs.Store(c)
}

// Coefficients returns a copy of the active coefficient set.
func (s *Stage) Coefficients() Coefficients {
	return *s.active()
}

func (s *Stage) active() *Coefficients {
	if c := s.coeffs.Load(); c != nil {
		return c
	}

	return &identity
}

// SetBypassed enables or disables bypass. A bypassed stage passes samples
// through unchanged and leaves its history untouched; toggling bypass never
// clears history by itself.
func (s *Stage) SetBypassed(bypassed bool) {
	s.bypassed.Store(bypassed)
}

// Bypassed reports whether the stage is bypassed.
func (s *Stage) Bypassed() bool {
	return s.bypassed.Load()
}

// RequestReset asks the processing goroutine to clear the delay line before
// it filters the next sample. It is the only way a control goroutine may
// influence history.
func (s *Stage) RequestReset() {
	s.clear.Store(true)
}

// ProcessSample filters one input sample and returns the output.
func (s *Stage) ProcessSample(x float64) float64 {
	if s.clear.Load() && s.clear.CompareAndSwap(true, false) {
		s.Reset()
	}

	if s.bypassed.Load() {
		return x
	}

	c := s.active()
	y := c.B0*x + s.d0
	s.d0 = c.B1*x - c.A1*y + s.d1
	s.d1 = c.B2*x - c.A2*y

	return y
}

// ProcessBlock filters buf in place. The coefficient set is loaded once, so
// every sample of the block is computed with the same set. Zero-alloc.
func (s *Stage) ProcessBlock(buf []float64) {
	if s.clear.Load() && s.clear.CompareAndSwap(true, false) {
		s.Reset()
	}

	if s.bypassed.Load() || len(buf) == 0 {
		return
	}

	c := s.active()
	b0, b1, b2 := c.B0, c.B1, c.B2
	a1, a2 := c.A1, c.A2
	d0, d1 := s.d0, s.d1

	for i, x := range buf {
		y := b0*x + d0
		d0 = b1*x - a1*y + d1
		d1 = b2*x - a2*y
		buf[i] = y
	}

	s.d0 = core.FlushDenormals(d0)
	s.d1 = core.FlushDenormals(d1)
}

// Reset clears the delay line to zero.
func (s *Stage) Reset() {
	s.d0 = 0
	s.d1 = 0
}

// State returns the current delay-line state [d0, d1].
func (s *Stage) State() [2]float64 {
	return [2]float64{s.d0, s.d1}
}

// SetState restores a previously saved delay-line state.
func (s *Stage) SetState(state [2]float64) {
	s.d0 = state[0]
	s.d1 = state[1]
}

// Magnitude returns the linear magnitude response of the stage as currently
// configured: 1 when bypassed, |H(f)| otherwise.
func (s *Stage) Magnitude(freqHz, sampleRate float64) float64 {
	if s.Bypassed() {
		return 1
	}

	c := s.active()

	return c.Magnitude(freqHz, sampleRate)
}
