package eq

import "github.com/cwbudde/algo-eq/dsp/filter/biquad"

// Chain is the per-channel filter path: low cut, then peak, then high cut.
// Coefficient updates may come from any goroutine; processing and Reset
// belong to one goroutine.
type Chain struct {
	lowCut  Cascade
	peak    biquad.Stage
	highCut Cascade
}

// Configure computes settings for p at sampleRate and applies them.
func (c *Chain) Configure(p Params, sampleRate float64) error {
	s, err := NewSettings(p, sampleRate)
	if err != nil {
		return err
	}

	c.Apply(s)

	return nil
}

// Apply installs s into all three filters without allocating.
func (c *Chain) Apply(s *Settings) {
	c.lowCut.Install(&s.LowCut)
	c.peak.Publish(&s.Peak)
	c.highCut.Install(&s.HighCut)
}

// LowCut returns the low-cut cascade.
func (c *Chain) LowCut() *Cascade { return &c.lowCut }

// Peak returns the peak stage.
func (c *Chain) Peak() *biquad.Stage { return &c.peak }

// HighCut returns the high-cut cascade.
func (c *Chain) HighCut() *Cascade { return &c.highCut }

// ProcessSample filters one sample through low cut, peak and high cut.
func (c *Chain) ProcessSample(x float64) float64 {
	x = c.lowCut.ProcessSample(x)
	x = c.peak.ProcessSample(x)

	return c.highCut.ProcessSample(x)
}

// ProcessBlock filters buf in place.
func (c *Chain) ProcessBlock(buf []float64) {
	c.lowCut.ProcessBlock(buf)
	c.peak.ProcessBlock(buf)
	c.highCut.ProcessBlock(buf)
}

// Reset clears the history of every stage.
func (c *Chain) Reset() {
	c.lowCut.Reset()
	c.peak.Reset()
	c.highCut.Reset()
}

// Magnitude returns the linear magnitude of the chain as currently
// configured.
func (c *Chain) Magnitude(freqHz, sampleRate float64) float64 {
	return c.lowCut.Magnitude(freqHz, sampleRate) *
		c.peak.Magnitude(freqHz, sampleRate) *
		c.highCut.Magnitude(freqHz, sampleRate)
}
