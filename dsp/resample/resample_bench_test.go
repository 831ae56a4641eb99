package resample

import (
	"strconv"
	"testing"

	"github.com/cwbudde/algo-resample/internal/testutil"
)

func BenchmarkResampleReal(b *testing.B) {
	for _, frames := range []int{1024, 8192} {
		b.Run("float64/"+strconv.Itoa(frames), func(b *testing.B) {
			r, err := New[float64](3, 2)
			if err != nil {
				b.Fatalf("New() error = %v", err)
			}

			in := testutil.DeterministicNoise(1, 1.0, frames)
			out := make([]float64, frames/2*3)

			b.ReportAllocs()
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				if err := r.Resample(in, out); err != nil {
					b.Fatal(err)
				}
			}
		})

		b.Run("int16/"+strconv.Itoa(frames), func(b *testing.B) {
			r, err := New[int16](3, 2)
			if err != nil {
				b.Fatalf("New() error = %v", err)
			}

			in := toSamples[int16](testutil.DeterministicNoise(1, 1.0, frames), 1<<14)
			out := make([]int16, frames/2*3)

			b.ReportAllocs()
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				if err := r.Resample(in, out); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

func BenchmarkResampleComplex(b *testing.B) {
	for _, frames := range []int{1024, 8192} {
		b.Run("float32/"+strconv.Itoa(frames), func(b *testing.B) {
			r, err := NewComplex[float32](3, 2)
			if err != nil {
				b.Fatalf("NewComplex() error = %v", err)
			}

			in := toSamples[float32](testutil.ToneIQ(2e3, 1e6, 0.9, frames), 1)
			out := make([]float32, frames/2*3*2)

			b.ReportAllocs()
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				if err := r.Resample(in, out); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

func BenchmarkDesign(b *testing.B) {
	b.Run("real/128", func(b *testing.B) {
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			if _, err := New[float64](3, 2); err != nil {
				b.Fatal(err)
			}
		}
	})
	b.Run("complex/384", func(b *testing.B) {
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			if _, err := NewComplex[float32](3, 2); err != nil {
				b.Fatal(err)
			}
		}
	})
}
