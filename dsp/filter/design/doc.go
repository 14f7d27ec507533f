// Package design provides digital IIR filter coefficient designers.
//
// The functions in this package produce biquad coefficients consumable by
// dsp/filter/biquad. Designers are pure: identical inputs always yield
// bit-identical coefficients, which keeps independently configured channels
// coefficient-identical.
//
// Two flavours exist. [Lowpass], [Highpass] and [Peak] never fail and return
// the zero value for parameters outside their domain. [PeakEQ],
// [ButterworthHP] and [ButterworthLP] validate their inputs and report a
// domain error instead, so callers never install NaN or Inf coefficients.
package design
