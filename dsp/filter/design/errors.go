package design

import "errors"

// Domain errors returned by the validating designers. Returned errors wrap
// one of these and can be tested with errors.Is.
var (
	ErrInvalidSampleRate = errors.New("design: sample rate must be positive and finite")
	ErrInvalidFrequency  = errors.New("design: frequency must lie in (0, sampleRate/2)")
	ErrInvalidQ          = errors.New("design: Q must be positive and finite")
	ErrInvalidGain       = errors.New("design: gain must be finite")
	ErrInvalidOrder      = errors.New("design: order must be positive")
)
