// Package response measures the magnitude response of a linear system from
// its impulse response with an FFT.
//
// It complements the analytic response of a coefficient set: rendering a
// filter chain's impulse response and measuring it here checks the runtime
// path against the design.
//
//	ir := settings.ImpulseResponse(8192)
//	r, _ := response.Measure(ir, settings.SampleRate)
//	db := r.MagnitudeDBAt(1000)
package response
