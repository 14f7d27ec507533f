package eq

import (
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/cwbudde/algo-eq/dsp/filter/biquad"
)

// ErrBankTooShort is returned when a coefficient bank holds fewer sections
// than the requested slope needs.
var ErrBankTooShort = errors.New("eq: coefficient bank too short")

// CutBank is the output of one Butterworth design, sized for the steepest
// slope. Sections beyond Active are unused.
type CutBank struct {
	Sections [MaxStages]biquad.Coefficients
	Active   int
}

func newCutBank(sections []biquad.Coefficients, slope Slope) (CutBank, error) {
	var b CutBank

	if !slope.Valid() {
		return b, fmt.Errorf("%w: %d", ErrInvalidSlope, int(slope))
	}

	n := slope.Stages()
	if len(sections) < n {
		return b, fmt.Errorf("%w: have %d, need %d", ErrBankTooShort, len(sections), n)
	}

	copy(b.Sections[:], sections[:n])
	b.Active = n

	return b, nil
}

// Magnitude returns the combined linear magnitude of the active sections.
func (b *CutBank) Magnitude(freqHz, sampleRate float64) float64 {
	return biquad.CascadeMagnitude(b.Sections[:b.Active], freqHz, sampleRate)
}

// Cascade is a fixed-capacity series of biquad stages used for the low-cut
// and high-cut filters. Stages at index Active and above are bypassed.
//
// The zero value is a pass-through cascade of MaxStages identity stages.
type Cascade struct {
	stages [MaxStages]biquad.Stage
	active atomic.Int32
}

// Configure installs bank[0:slope.Stages()] and bypasses the remaining
// stages. Stages that were bypassed and become active have their history
// cleared before they next filter. Configure may be called from a control
// goroutine while another goroutine processes.
func (c *Cascade) Configure(bank []biquad.Coefficients, slope Slope) error {
	if !slope.Valid() {
		return fmt.Errorf("%w: %d", ErrInvalidSlope, int(slope))
	}

	n := slope.Stages()
	if len(bank) < n {
		return fmt.Errorf("%w: have %d, need %d", ErrBankTooShort, len(bank), n)
	}

	for i := range c.stages {
		st := &c.stages[i]
		if i >= n {
			st.SetBypassed(true)
			continue
		}

		st.SetCoefficients(bank[i])
		c.activate(st)
	}

	c.active.Store(int32(n))

	return nil
}

// Install is the allocation-free form of Configure. The bank must not be
// modified afterwards; the stages reference its sections directly.
func (c *Cascade) Install(bank *CutBank) {
	n := min(max(bank.Active, 0), MaxStages)

	for i := range c.stages {
		st := &c.stages[i]
		if i >= n {
			st.SetBypassed(true)
			continue
		}

		st.Publish(&bank.Sections[i])
		c.activate(st)
	}

	c.active.Store(int32(n))
}

func (c *Cascade) activate(st *biquad.Stage) {
	if st.Bypassed() {
		st.RequestReset()
		st.SetBypassed(false)
	}
}

// ActiveStages returns the number of non-bypassed stages.
func (c *Cascade) ActiveStages() int {
	return int(c.active.Load())
}

// Stage returns stage i for inspection. It panics if i is out of range.
func (c *Cascade) Stage(i int) *biquad.Stage {
	return &c.stages[i]
}

// ProcessSample runs x through every stage in order.
func (c *Cascade) ProcessSample(x float64) float64 {
	for i := range c.stages {
		x = c.stages[i].ProcessSample(x)
	}

	return x
}

// ProcessBlock filters buf in place, stage by stage.
func (c *Cascade) ProcessBlock(buf []float64) {
	for i := range c.stages {
		c.stages[i].ProcessBlock(buf)
	}
}

// Reset clears the history of every stage, bypassed or not.
func (c *Cascade) Reset() {
	for i := range c.stages {
		c.stages[i].Reset()
	}
}

// Magnitude returns the product of the stage magnitudes at freqHz.
func (c *Cascade) Magnitude(freqHz, sampleRate float64) float64 {
	m := 1.0
	for i := range c.stages {
		m *= c.stages[i].Magnitude(freqHz, sampleRate)
	}

	return m
}
