// Package eq implements a three-band equalizer filter chain for stereo audio:
// a Butterworth low-cut cascade, a parametric peak filter and a Butterworth
// high-cut cascade.
//
// Coefficients are computed at control rate from [Params] into an immutable
// [Settings] value. A [Processor] publishes each new Settings with a single
// atomic pointer store; the audio goroutine picks it up at the next block
// boundary and installs it into both channel chains, so every sample of a
// block, on both channels, is computed from the same parameter snapshot.
//
// Nothing in this package starts goroutines, takes locks or allocates on the
// audio path.
package eq
