// Package resample provides rational sample-rate conversion using a
// polyphase FIR filter bank.
//
// A Resampler converts a stream from rate R to rate R*P/Q. The prototype
// filter is a windowed sinc (4-term Blackman-Harris by default) decomposed
// into P branches; a precomputed path table selects the branch and input
// offset for every output sample. The last taps-1 input frames are carried
// between calls, so splitting a stream into blocks produces exactly the
// same output as a single call.
//
// Real and complex streams share one implementation. Complex buffers hold
// interleaved I/Q pairs, two slice elements per frame. Integer element
// types saturate to their representable range instead of wrapping.
//
// Common workflows:
//   - New[float32](p, q) for real streams
//   - NewComplex[int16](p, q) for interleaved I/Q streams
//   - NewForRates[float64](44100, 48000) to derive the ratio from rates
//
// Buffers are caller-sized: a valid call consumes a multiple of Q input
// frames and fills the matching multiple of P output frames.
package resample
