package control

import (
	"fmt"
	"math"
	"sync/atomic"
)

// DisplayLabelProvider is implemented by anything that can describe its
// current value to a user, e.g. "1.20 kHz" or "24 dB/Oct".
type DisplayLabelProvider interface {
	DisplayLabel() string
}

// Parameter is one automatable value. The plain value is stored as atomic
// float64 bits, so hosts, UIs and the controller may read and write it from
// different goroutines.
type Parameter struct {
	ID      string
	Name    string
	Unit    string
	Range   Range
	Default float64
	// Labels names each step of a choice parameter. Choice values are
	// indices into Labels.
	Labels []string

	value atomic.Uint64
}

func newParameter(id, unit string, r Range, def float64, labels ...string) *Parameter {
	p := &Parameter{ID: id, Name: id, Unit: unit, Range: r, Default: def, Labels: labels}
	p.value.Store(math.Float64bits(def))

	return p
}

// Value returns the current plain value.
func (p *Parameter) Value() float64 {
	return math.Float64frombits(p.value.Load())
}

// Normalized returns the current value on the [0, 1] scale.
func (p *Parameter) Normalized() float64 {
	return p.Range.ToNormalized(p.Value())
}

// store snaps v into range, stores it and reports whether it changed.
func (p *Parameter) store(v float64) (float64, bool) {
	return p.storeExact(p.Range.Snap(v))
}

// storeExact clamps v into range without snapping.
func (p *Parameter) storeExact(v float64) (float64, bool) {
	v = p.Range.Clamp(v)
	old := p.value.Swap(math.Float64bits(v))

	return v, old != math.Float64bits(v)
}

// IsChoice reports whether the parameter selects among labelled options.
func (p *Parameter) IsChoice() bool {
	return len(p.Labels) > 0
}

// DisplayLabel formats the current value the way the editor shows it.
func (p *Parameter) DisplayLabel() string {
	return p.Format(p.Value())
}

// Format renders v with the parameter's unit.
func (p *Parameter) Format(v float64) string {
	if p.IsChoice() {
		i := int(math.Round(v))
		if i < 0 || i >= len(p.Labels) {
			return fmt.Sprintf("%d", i)
		}

		return p.Labels[i]
	}

	switch p.Unit {
	case "Hz":
		if v > 999 {
			return fmt.Sprintf("%.2f kHz", v/1000)
		}

		return fmt.Sprintf("%.0f Hz", v)
	case "dB":
		return fmt.Sprintf("%+.1f dB", v)
	case "":
		return fmt.Sprintf("%.2f", v)
	default:
		return fmt.Sprintf("%.2f %s", v, p.Unit)
	}
}
