package resample

import (
	"math"

	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-resample/dsp/window"
)

// design builds the windowed-sinc prototype of length p*taps and scatters it
// into p polyphase branches of taps coefficients each, with each branch in
// newest-tap-first convolution order. The prototype is normalized so its DC
// gain equals p, which cancels the 1/p interpolation loss of branch
// selection.
func design(p, q, taps int, windowType window.Type, windowOpts []window.Option) (proto []float64, partitions [][]float64) {
	n := p * taps
	cutoff := float64(max(p, q))
	center := float64(n) / 2

	proto = make([]float64, n)
	for i := range proto {
		proto[i] = sinc((float64(i) - center) / cutoff)
	}

	opts := append(append([]window.Option(nil), windowOpts...), window.WithPeriodic())
	vecmath.MulBlockInPlace(proto, window.Generate(windowType, n, opts...))

	sum := 0.0
	for _, v := range proto {
		sum += v
	}

	beta := float64(p) / sum
	vecmath.ScaleBlock(proto, proto, beta)

	partitions = make([][]float64, p)
	for b := range partitions {
		branch := make([]float64, taps)
		for j := range branch {
			branch[j] = proto[(taps-1-j)*p+b]
		}

		partitions[b] = branch
	}

	return proto, partitions
}

// approximateRatio expands v as a continued fraction, stopping before the
// denominator exceeds maxDen.
func approximateRatio(v float64, maxDen int) (num, den int) {
	if maxDen <= 0 {
		maxDen = 4096
	}

	if v <= 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return 1, 1
	}

	a0 := math.Floor(v)
	p0, q0 := 1.0, 0.0
	p1, q1 := a0, 1.0
	x := v

	for {
		frac := x - math.Floor(x)
		if frac == 0 {
			break
		}

		x = 1 / frac
		a := math.Floor(x)
		p2 := a*p1 + p0

		q2 := a*q1 + q0
		if q2 > float64(maxDen) {
			break
		}

		p0, q0 = p1, q1
		p1, q1 = p2, q2
	}

	num = int(math.Round(p1))

	den = int(math.Round(q1))
	if num <= 0 || den <= 0 {
		return 1, 1
	}

	g := gcd(num, den)

	return num / g, den / g
}

func gcd(a, b int) int {
	for b != 0 {
		a, b = b, a%b
	}

	if a == 0 {
		return 1
	}

	return a
}

func sinc(x float64) float64 {
	if x == 0 {
		return 1
	}

	px := math.Pi * x

	return math.Sin(px) / px
}
