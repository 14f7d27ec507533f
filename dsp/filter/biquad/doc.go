// Package biquad provides second-order IIR filter runtime primitives.
//
// [Coefficients] describe one second-order transfer function in Direct Form II
// Transposed sign convention. A [Stage] filters a stream with one coefficient
// set and can have that set replaced while another goroutine is filtering:
// coefficients are published as immutable values through an atomic pointer,
// so a processing call observes either the previous or the new set, never a
// mix of both.
//
// Coefficient design (Butterworth, parametric peak) lives in dsp/filter/design.
package biquad
