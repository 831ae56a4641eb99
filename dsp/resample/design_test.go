package resample

import (
	"math"
	"testing"
)

// referencePrototype computes the windowed-sinc prototype directly from the
// closed form: sinc((i - N/2)/cutoff) shaped by the periodic 4-term
// Blackman-Harris window, normalized to DC gain p.
func referencePrototype(p, q, taps int) []float64 {
	n := p * taps
	cutoff := float64(max(p, q))

	proto := make([]float64, n)
	sum := 0.0
	for i := range proto {
		x := (float64(i) - float64(n)/2) / cutoff
		s := 1.0
		if x != 0 {
			s = math.Sin(math.Pi*x) / (math.Pi * x)
		}
		w := 0.35875 -
			0.48829*math.Cos(2*math.Pi*float64(i)/float64(n)) +
			0.14128*math.Cos(4*math.Pi*float64(i)/float64(n)) -
			0.01168*math.Cos(6*math.Pi*float64(i)/float64(n))
		proto[i] = s * w
		sum += proto[i]
	}

	beta := float64(p) / sum
	for i := range proto {
		proto[i] *= beta
	}
	return proto
}

func TestPrototypeClosedForm(t *testing.T) {
	for _, pq := range [][2]int{{3, 2}, {2, 5}, {1, 1}} {
		p, q := pq[0], pq[1]
		r, err := New[float64](p, q, WithTaps(8))
		if err != nil {
			t.Fatalf("New(%d,%d) error = %v", p, q, err)
		}

		want := referencePrototype(p, q, 8)
		got := r.Prototype()
		if len(got) != len(want) {
			t.Fatalf("p=%d q=%d prototype length = %d, want %d", p, q, len(got), len(want))
		}
		for i := range want {
			if diff := math.Abs(got[i] - want[i]); diff > 1e-12 {
				t.Fatalf("p=%d q=%d proto[%d] = %v, want %v", p, q, i, got[i], want[i])
			}
		}
	}
}

func TestPrototypeDCGain(t *testing.T) {
	for _, pq := range [][2]int{{1, 1}, {3, 2}, {7, 3}} {
		p, q := pq[0], pq[1]
		r, err := New[float64](p, q, WithTaps(64))
		if err != nil {
			t.Fatalf("New(%d,%d) error = %v", p, q, err)
		}

		sum := 0.0
		for _, v := range r.Prototype() {
			sum += v
		}
		if diff := math.Abs(sum - float64(p)); diff > 1e-9 {
			t.Fatalf("p=%d q=%d DC gain = %v, want %d", p, q, sum, p)
		}
	}
}

func TestBranchesAreReversedPolyphaseRows(t *testing.T) {
	const p, q, taps = 3, 2, 8

	r, err := New[float64](p, q, WithTaps(taps))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	proto := r.Prototype()
	if len(r.partitions) != p {
		t.Fatalf("branches = %d, want %d", len(r.partitions), p)
	}
	for b, branch := range r.partitions {
		if len(branch) != taps {
			t.Fatalf("branch %d length = %d, want %d", b, len(branch), taps)
		}
		for j, c := range branch {
			if want := proto[(taps-1-j)*p+b]; c != want {
				t.Fatalf("branch %d tap %d = %v, want %v", b, j, c, want)
			}
		}
	}
}

func TestCutoffUsesLargerSide(t *testing.T) {
	// Downsampling by 3 must narrow the filter relative to 1:1, even though
	// both have a single branch.
	down, err := New[float64](1, 3, WithTaps(64))
	if err != nil {
		t.Fatalf("New(1,3) error = %v", err)
	}
	unity, err := New[float64](1, 1, WithTaps(64))
	if err != nil {
		t.Fatalf("New(1,1) error = %v", err)
	}

	a := down.Prototype()
	b := unity.Prototype()
	same := true
	for i := range a {
		if a[i] != b[i] {
			same = false
			break
		}
	}
	if same {
		t.Fatal("Q>P did not affect the prototype cutoff")
	}
}

func TestApproximateRatio(t *testing.T) {
	cases := []struct {
		in, out float64
		p, q    int
	}{
		{44100, 48000, 160, 147},
		{48000, 44100, 147, 160},
		{48000, 96000, 2, 1},
		{96000, 48000, 1, 2},
		{1000, 1000, 1, 1},
	}
	for _, tc := range cases {
		p, q := approximateRatio(tc.out/tc.in, 4096)
		if p != tc.p || q != tc.q {
			t.Fatalf("%v->%v: got %d/%d, want %d/%d", tc.in, tc.out, p, q, tc.p, tc.q)
		}
	}
}

func TestGCD(t *testing.T) {
	cases := []struct{ a, b, want int }{
		{12, 8, 4},
		{7, 5, 1},
		{0, 5, 5},
		{0, 0, 1},
	}
	for _, tc := range cases {
		if got := gcd(tc.a, tc.b); got != tc.want {
			t.Fatalf("gcd(%d,%d) = %d, want %d", tc.a, tc.b, got, tc.want)
		}
	}
}
