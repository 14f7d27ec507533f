package control

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/cwbudde/algo-eq/dsp/eq"
)

// DefaultRate is the polling rate of a Controller, matching a typical
// editor refresh.
const DefaultRate = 60.0

// Updater receives parameter snapshots. *eq.Processor implements it.
type Updater interface {
	UpdateParameters(p eq.Params) error
}

// Controller forwards registry changes to an Updater at a bounded rate.
type Controller struct {
	reg      *Registry
	up       Updater
	log      zerolog.Logger
	interval time.Duration

	changed atomic.Bool
}

// Option configures a Controller.
type Option func(*Controller)

// WithRate sets the polling rate in Hz. Non-positive values are ignored.
func WithRate(hz float64) Option {
	return func(c *Controller) {
		if hz > 0 {
			c.interval = time.Duration(float64(time.Second) / hz)
		}
	}
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(l zerolog.Logger) Option {
	return func(c *Controller) {
		c.log = l
	}
}

// NewController watches reg and feeds up. The first Poll always pushes the
// current snapshot.
func NewController(reg *Registry, up Updater, opts ...Option) *Controller {
	c := &Controller{
		reg:      reg,
		up:       up,
		log:      zerolog.Nop(),
		interval: time.Second / DefaultRate,
	}

	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}

	c.changed.Store(true)
	reg.OnChange(func(string, float64) { c.changed.Store(true) })

	return c
}

// Interval returns the polling interval.
func (c *Controller) Interval() time.Duration {
	return c.interval
}

// Poll pushes a snapshot if any parameter changed since the last push. It
// reports whether an update was attempted.
func (c *Controller) Poll() (bool, error) {
	if !c.changed.CompareAndSwap(true, false) {
		return false, nil
	}

	p := c.reg.Snapshot()
	if err := c.up.UpdateParameters(p); err != nil {
		c.log.Warn().Err(err).Interface("params", p).Msg("parameter update rejected")
		return true, err
	}

	c.log.Debug().
		Float64("peak_freq", p.PeakFreq).
		Float64("peak_gain_db", p.PeakGainDB).
		Float64("peak_q", p.PeakQ).
		Float64("low_cut_freq", p.LowCutFreq).
		Stringer("low_cut_slope", p.LowCutSlope).
		Float64("high_cut_freq", p.HighCutFreq).
		Stringer("high_cut_slope", p.HighCutSlope).
		Msg("parameters updated")

	return true, nil
}

// Run polls until ctx is done and returns ctx.Err(). Rejected updates are
// logged and do not stop the loop.
func (c *Controller) Run(ctx context.Context) error {
	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	c.log.Info().Dur("interval", c.interval).Msg("controller started")

	for {
		select {
		case <-ctx.Done():
			c.log.Info().Msg("controller stopped")
			return ctx.Err()
		case <-ticker.C:
			_, _ = c.Poll()
		}
	}
}
