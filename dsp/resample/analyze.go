package resample

import (
	"fmt"
	"math"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-vecmath"
)

// FilterInfo summarizes the frequency response of a prototype filter.
type FilterInfo struct {
	// Cutoff is the design passband edge in cycles per input sample,
	// 1/(2*max(P,Q)).
	Cutoff float64
	// DCGain is the response at DC; the design normalization makes it P.
	DCGain float64
	// PassbandRippleDB is the worst deviation from DC gain inside the
	// passband, in dB.
	PassbandRippleDB float64
	// StopbandDB is the peak stopband level relative to DC gain, in dB.
	StopbandDB float64
}

// AnalyzeFilter computes the magnitude response of a prototype filter for
// ratio p/q via a zero-padded FFT of fftSize bins. fftSize must be at least
// len(proto); zero selects four times the prototype length rounded up to a
// power of two.
func AnalyzeFilter(proto []float64, p, q, fftSize int) (FilterInfo, error) {
	if len(proto) == 0 {
		return FilterInfo{}, fmt.Errorf("%w: empty prototype", ErrInvalidSize)
	}

	if p <= 0 || q <= 0 {
		return FilterInfo{}, ErrInvalidRatio
	}

	if fftSize == 0 {
		fftSize = nextPow2(4 * len(proto))
	}

	if fftSize < len(proto) {
		return FilterInfo{}, fmt.Errorf("%w: fft size %d is below prototype length %d",
			ErrInvalidSize, fftSize, len(proto))
	}

	plan, err := algofft.NewPlan64(fftSize)
	if err != nil {
		return FilterInfo{}, err
	}

	in := make([]complex128, fftSize)
	for i, v := range proto {
		in[i] = complex(v, 0)
	}

	out := make([]complex128, fftSize)
	if err := plan.Forward(out, in); err != nil {
		return FilterInfo{}, err
	}

	half := fftSize / 2
	re := make([]float64, half)
	im := make([]float64, half)

	for i := range half {
		re[i] = real(out[i])
		im[i] = imag(out[i])
	}

	mag := make([]float64, half)
	vecmath.Magnitude(mag, re, im)

	dc := mag[0]
	if dc == 0 {
		return FilterInfo{}, fmt.Errorf("%w: zero DC gain", ErrInvalidSize)
	}

	cutoff := 1 / (2 * float64(max(p, q)))

	// The transition band is set by the window main lobe, which spans a
	// handful of DFT bins of the prototype length.
	transition := 8 / float64(len(proto))
	passEnd := cutoff - transition
	stopStart := cutoff + transition

	ripple := 0.0
	stop := math.Inf(-1)

	for i := range half {
		f := float64(i) / float64(fftSize)
		level := 20 * math.Log10(mag[i]/dc)

		switch {
		case f <= passEnd:
			if dev := math.Abs(level); dev > ripple {
				ripple = dev
			}
		case f >= stopStart:
			if level > stop {
				stop = level
			}
		}
	}

	return FilterInfo{
		Cutoff:           cutoff,
		DCGain:           dc,
		PassbandRippleDB: ripple,
		StopbandDB:       stop,
	}, nil
}

func nextPow2(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}

	return p
}
