package testutil

import (
	"fmt"
	"math"
	"testing"
)

// RequireSliceNearlyEqual fails t if got and want differ in length or if
// any element pair exceeds eps (absolute tolerance).
func RequireSliceNearlyEqual(t *testing.T, got, want []float64, eps float64) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("length mismatch: got %d, want %d", len(got), len(want))
	}
	for i := range got {
		diff := math.Abs(got[i] - want[i])
		if diff > eps {
			t.Fatalf("index %d: got %v, want %v (diff %v > eps %v)", i, got[i], want[i], diff, eps)
		}
	}
}

// RequireFinite fails t if any element is NaN or Inf.
func RequireFinite(t *testing.T, data []float64) {
	t.Helper()
	for i, v := range data {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			t.Fatalf("index %d: non-finite value %v", i, v)
		}
	}
}

// MaxAbsDiff returns the maximum absolute difference between two slices.
// Returns an error if the slices differ in length.
func MaxAbsDiff(a, b []float64) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("length mismatch: %d vs %d", len(a), len(b))
	}
	maxDiff := 0.0
	for i := range a {
		d := math.Abs(a[i] - b[i])
		if d > maxDiff {
			maxDiff = d
		}
	}
	return maxDiff, nil
}

// Residual returns sqrt(sum of squared errors)/n between want and got,
// comparing want[i] against got[i+skip] so that filter settling and delay
// at the start of got are ignored. n is the number of compared samples.
func Residual(want, got []float64, skip int) float64 {
	n := len(got) - skip
	if n <= 0 {
		return 0
	}

	err := 0.0
	for i := range n {
		d := want[i] - got[i+skip]
		err += d * d
	}
	return math.Sqrt(err) / float64(n)
}

// ResidualIQ is Residual over interleaved I/Q buffers. skip and the
// returned normalization count are in frames; both components of a frame
// contribute to the squared error.
func ResidualIQ(want, got []float64, skip int) float64 {
	n := len(got)/2 - skip
	if n <= 0 {
		return 0
	}

	err := 0.0
	for i := range n {
		di := want[2*i] - got[2*(i+skip)]
		dq := want[2*i+1] - got[2*(i+skip)+1]
		err += di*di + dq*dq
	}
	return math.Sqrt(err) / float64(n)
}
