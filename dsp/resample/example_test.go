package resample_test

import (
	"fmt"

	"github.com/cwbudde/algo-resample/dsp/resample"
)

func ExampleNew() {
	r, _ := resample.New[float64](3, 2, resample.WithTaps(16))

	in := make([]float64, 64)
	out := make([]float64, r.OutputLen(len(in)))
	_ = r.Resample(in, out)

	fmt.Printf("in=%d out=%d\n", len(in), len(out))
	// Output:
	// in=64 out=96
}

func ExampleNewComplex() {
	r, _ := resample.NewComplex[int16](5, 4, resample.WithTaps(32))

	fmt.Printf("min input=%d frames, taps=%d\n", r.MinInput()/2, r.Taps())
	// Output:
	// min input=32 frames, taps=32
}

func ExampleNewForRates() {
	r, _ := resample.NewForRates[float32](44100, 48000)
	p, q := r.Ratio()
	fmt.Printf("ratio=%d/%d\n", p, q)
	// Output:
	// ratio=160/147
}

func ExampleAnalyzeFilter() {
	r, _ := resample.New[float64](3, 2)

	info, _ := resample.AnalyzeFilter(r.Prototype(), 3, 2, 0)
	fmt.Printf("cutoff=%.4f dc=%.1f\n", info.Cutoff, info.DCGain)
	// Output:
	// cutoff=0.1667 dc=3.0
}
