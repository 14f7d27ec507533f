package control

import (
	"errors"
	"fmt"
	"sync"

	"github.com/cwbudde/algo-eq/dsp/core"
	"github.com/cwbudde/algo-eq/dsp/eq"
)

var (
	// ErrUnknownParameter is returned for IDs the registry does not hold.
	ErrUnknownParameter = errors.New("control: unknown parameter")
	// ErrNonFinite is returned when a NaN or infinite value is set.
	ErrNonFinite = errors.New("control: value is not finite")
)

// Parameter IDs.
const (
	LowCutFreq   = "LoCut Freq"
	HighCutFreq  = "HiCut Freq"
	PeakFreq     = "Peak Freq"
	PeakGain     = "Peak Gain"
	PeakQ        = "Peak Q"
	LowCutSlope  = "LoCut Slope"
	HighCutSlope = "HiCut Slope"
)

// Listener is called after a parameter value changed. It runs on the
// goroutine that made the change and must not block.
type Listener func(id string, value float64)

// Registry is the set of equalizer parameters in declaration order.
type Registry struct {
	params []*Parameter
	byID   map[string]*Parameter

	mu        sync.RWMutex
	listeners []Listener
}

// NewRegistry returns a registry holding every equalizer parameter at its
// default value.
func NewRegistry() *Registry {
	def := eq.DefaultParams()
	freq := Range{Start: eq.MinFreq, End: eq.MaxFreq, Interval: 1, Skew: 0.25}

	slopes := make([]string, len(eq.Slopes))
	for i, s := range eq.Slopes {
		slopes[i] = s.String()
	}

	choice := Range{Start: 0, End: float64(len(slopes) - 1), Interval: 1, Skew: 1}

	r := &Registry{byID: make(map[string]*Parameter)}
	r.add(
		newParameter(LowCutFreq, "Hz", freq, def.LowCutFreq),
		newParameter(HighCutFreq, "Hz", freq, def.HighCutFreq),
		newParameter(PeakFreq, "Hz", freq, def.PeakFreq),
		newParameter(PeakGain, "dB", Range{Start: eq.MinGainDB, End: eq.MaxGainDB, Interval: 0.5, Skew: 1}, def.PeakGainDB),
		newParameter(PeakQ, "", Range{Start: eq.MinQ, End: eq.MaxQ, Interval: 0.05, Skew: 1}, def.PeakQ),
		newParameter(LowCutSlope, "", choice, float64(def.LowCutSlope), slopes...),
		newParameter(HighCutSlope, "", choice, float64(def.HighCutSlope), slopes...),
	)

	return r
}

func (r *Registry) add(params ...*Parameter) {
	for _, p := range params {
		r.params = append(r.params, p)
		r.byID[p.ID] = p
	}
}

// Parameters returns all parameters in declaration order.
func (r *Registry) Parameters() []*Parameter {
	return append([]*Parameter(nil), r.params...)
}

// Lookup returns the parameter with the given ID.
func (r *Registry) Lookup(id string) (*Parameter, error) {
	p, ok := r.byID[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownParameter, id)
	}

	return p, nil
}

// Get returns the plain value of a parameter.
func (r *Registry) Get(id string) (float64, error) {
	p, err := r.Lookup(id)
	if err != nil {
		return 0, err
	}

	return p.Value(), nil
}

// Set stores a plain value, snapped to the parameter's step and clamped to
// its range, and notifies listeners if the value changed. NaN and infinite
// values are rejected and leave the parameter untouched.
func (r *Registry) Set(id string, value float64) error {
	p, err := r.Lookup(id)
	if err != nil {
		return err
	}

	if !core.IsFinite(value) {
		return fmt.Errorf("%w: %s = %v", ErrNonFinite, id, value)
	}

	if v, changed := p.store(value); changed {
		r.notify(id, v)
	}

	return nil
}

// SetNormalized stores a value given on the normalized [0, 1] scale.
func (r *Registry) SetNormalized(id string, normalized float64) error {
	p, err := r.Lookup(id)
	if err != nil {
		return err
	}

	if !core.IsFinite(normalized) {
		return fmt.Errorf("%w: %s = %v", ErrNonFinite, id, normalized)
	}

	return r.Set(id, p.Range.FromNormalized(normalized))
}

// OnChange registers a listener for value changes.
func (r *Registry) OnChange(l Listener) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.listeners = append(r.listeners, l)
}

func (r *Registry) notify(id string, v float64) {
	r.mu.RLock()
	listeners := r.listeners
	r.mu.RUnlock()

	for _, l := range listeners {
		l(id, v)
	}
}

// Snapshot reads every parameter into an eq.Params value.
func (r *Registry) Snapshot() eq.Params {
	v := func(id string) float64 { return r.byID[id].Value() }

	return eq.Params{
		PeakFreq:     v(PeakFreq),
		PeakGainDB:   v(PeakGain),
		PeakQ:        v(PeakQ),
		LowCutFreq:   v(LowCutFreq),
		HighCutFreq:  v(HighCutFreq),
		LowCutSlope:  eq.Slope(v(LowCutSlope)),
		HighCutSlope: eq.Slope(v(HighCutSlope)),
	}
}

// Restore loads a saved parameter set as is: values are not snapped to the
// parameter steps, so a Snapshot afterwards returns p. Nothing is changed if
// p is invalid.
func (r *Registry) Restore(p eq.Params) error {
	if err := p.Validate(); err != nil {
		return err
	}

	values := []struct {
		id string
		v  float64
	}{
		{LowCutFreq, p.LowCutFreq},
		{HighCutFreq, p.HighCutFreq},
		{PeakFreq, p.PeakFreq},
		{PeakGain, p.PeakGainDB},
		{PeakQ, p.PeakQ},
		{LowCutSlope, float64(p.LowCutSlope)},
		{HighCutSlope, float64(p.HighCutSlope)},
	}

	for _, e := range values {
		if v, changed := r.byID[e.id].storeExact(e.v); changed {
			r.notify(e.id, v)
		}
	}

	return nil
}
