// Command resample converts raw sample files between rates related by a
// rational ratio P/Q.
//
// Usage:
//
//	resample -i in.dat -o out.dat -p 3 -q 2 [-t fc32] [-taps n]
//
// Samples are raw little-endian values with no framing; complex types hold
// interleaved I/Q pairs. Use -list to see the supported sample types and
// -filter to print the designed filter response instead of converting.
//
// Examples:
//
//	resample -i capture.fc32 -o capture_1p5x.fc32 -p 3 -q 2
//	resample -i audio.s16 -o audio.s16.out -p 160 -q 147 -t s16
//	resample -p 3 -q 2 -t fc32 -filter
//	resample -list
package main

import (
	"bytes"
	"encoding/binary"
	"flag"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/cwbudde/algo-resample/dsp/resample"
)

// Target number of bytes consumed per streaming call.
const blockSize = 4096

type cliArgs struct {
	infile  string
	outfile string
	typ     string
	p, q    int
	taps    int
}

type sampleKind struct {
	tag  string
	name string
	// bytes per frame: element width times components.
	frameBytes int
	run        func(args cliArgs, in io.Reader, out io.Writer) (frames int64, err error)
	analyze    func(args cliArgs) (resample.FilterInfo, int, error)
}

var sampleKinds = []sampleKind{
	{"fc64", "complex float64", 16, runStream[float64](2), analyzeKind[float64](2)},
	{"fc32", "complex float32", 8, runStream[float32](2), analyzeKind[float32](2)},
	{"sc64", "complex int64", 16, runStream[int64](2), analyzeKind[int64](2)},
	{"sc32", "complex int32", 8, runStream[int32](2), analyzeKind[int32](2)},
	{"sc16", "complex int16", 4, runStream[int16](2), analyzeKind[int16](2)},
	{"sc8", "complex int8", 2, runStream[int8](2), analyzeKind[int8](2)},
	{"f64", "float64", 8, runStream[float64](1), analyzeKind[float64](1)},
	{"f32", "float32", 4, runStream[float32](1), analyzeKind[float32](1)},
	{"s64", "int64", 8, runStream[int64](1), analyzeKind[int64](1)},
	{"s32", "int32", 4, runStream[int32](1), analyzeKind[int32](1)},
	{"s16", "int16", 2, runStream[int16](1), analyzeKind[int16](1)},
	{"s8", "int8", 1, runStream[int8](1), analyzeKind[int8](1)},
}

func kindByTag(tag string) (sampleKind, bool) {
	for _, k := range sampleKinds {
		if k.tag == tag {
			return k, true
		}
	}
	return sampleKind{}, false
}

func main() {
	var args cliArgs

	flag.StringVar(&args.infile, "i", "", "input file")
	flag.StringVar(&args.infile, "ifile", "", "input file")
	flag.StringVar(&args.outfile, "o", "", "output file")
	flag.StringVar(&args.outfile, "ofile", "", "output file")
	flag.IntVar(&args.p, "p", 0, "rational rate numerator 'P'")
	flag.IntVar(&args.p, "numerator", 0, "rational rate numerator 'P'")
	flag.IntVar(&args.q, "q", 0, "rational rate denominator 'Q'")
	flag.IntVar(&args.q, "denominator", 0, "rational rate denominator 'Q'")
	flag.StringVar(&args.typ, "t", "fc32", "sample type (see -list)")
	flag.StringVar(&args.typ, "sampletype", "fc32", "sample type (see -list)")
	flag.IntVar(&args.taps, "taps", 0, "filter taps per branch (0 = per-kind default)")
	filterOnly := flag.Bool("filter", false, "print the designed filter response and exit")
	list := flag.Bool("list", false, "list supported sample types")
	version := flag.Bool("version", false, "print version and exit")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: resample -i <infile> -o <outfile> -p <num> -q <den> [flags]\n\n")
		fmt.Fprintf(os.Stderr, "Converts a raw sample file from rate R to rate R*P/Q.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  resample -i capture.fc32 -o out.fc32 -p 3 -q 2\n")
		fmt.Fprintf(os.Stderr, "  resample -i audio.s16 -o out.s16 -p 160 -q 147 -t s16\n")
		fmt.Fprintf(os.Stderr, "  resample -p 3 -q 2 -filter\n")
		fmt.Fprintf(os.Stderr, "  resample -list\n")
	}
	flag.Parse()

	if *version {
		fmt.Println("resample version 0.1.0")
		return
	}

	if *list {
		printTypes()
		return
	}

	kind, ok := kindByTag(args.typ)
	if !ok {
		fmt.Fprintf(os.Stderr, "error: unknown sample type %q (use -list)\n", args.typ)
		os.Exit(1)
	}

	if args.p <= 0 || args.q <= 0 {
		fmt.Fprintf(os.Stderr, "error: -p and -q must be positive\n")
		flag.Usage()
		os.Exit(1)
	}

	if *filterOnly {
		if err := printFilter(kind, args); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if args.infile == "" || args.outfile == "" {
		fmt.Fprintf(os.Stderr, "error: input and output files are required\n")
		flag.Usage()
		os.Exit(1)
	}

	in, err := os.Open(args.infile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: failed to open input file %s: %v\n", args.infile, err)
		os.Exit(1)
	}
	defer in.Close()

	out, err := os.Create(args.outfile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: failed to open output file %s: %v\n", args.outfile, err)
		os.Exit(1)
	}

	frames, err := kind.run(args, in, out)
	if cerr := out.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Wrote %d '%s' samples (%d bytes) to file %s\n",
		frames, kind.name, frames*int64(kind.frameBytes), args.outfile)
}

func printTypes() {
	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Tag\tSample\tBytes\n")
	fmt.Fprintf(tw, "---\t------\t-----\n")
	for _, k := range sampleKinds {
		fmt.Fprintf(tw, "%s\t%s\t%d\n", k.tag, k.name, k.frameBytes)
	}
	tw.Flush()
}

func printFilter(kind sampleKind, args cliArgs) error {
	info, taps, err := kind.analyze(args)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Ratio\t%d/%d\n", args.p, args.q)
	fmt.Fprintf(tw, "Taps per branch\t%d\n", taps)
	fmt.Fprintf(tw, "Prototype length\t%d\n", args.p*taps)
	fmt.Fprintf(tw, "Cutoff\t%.6f cycles/sample\n", info.Cutoff)
	fmt.Fprintf(tw, "DC gain\t%.4f\n", info.DCGain)
	fmt.Fprintf(tw, "Passband ripple\t%.4f dB\n", info.PassbandRippleDB)
	fmt.Fprintf(tw, "Stopband peak\t%.2f dB\n", info.StopbandDB)
	return tw.Flush()
}

func newResampler[T resample.Sample](width int, args cliArgs) (*resample.Resampler[T], error) {
	var opts []resample.Option
	if args.taps > 0 {
		opts = append(opts, resample.WithTaps(args.taps))
	}
	if width == 2 {
		return resample.NewComplex[T](args.p, args.q, opts...)
	}
	return resample.New[T](args.p, args.q, opts...)
}

// analyzeKind returns a function that designs the filter for one sample kind
// and reports its frequency response.
func analyzeKind[T resample.Sample](width int) func(cliArgs) (resample.FilterInfo, int, error) {
	return func(args cliArgs) (resample.FilterInfo, int, error) {
		r, err := newResampler[T](width, args)
		if err != nil {
			return resample.FilterInfo{}, 0, err
		}

		info, err := resample.AnalyzeFilter(r.Prototype(), args.p, args.q, 0)
		return info, r.Taps(), err
	}
}

// runStream returns a function that streams one sample kind through a
// resampler in blocks of roughly blockSize bytes. The block is a multiple
// of Q frames; a short tail shrinks the block count, and a final fragment
// below one Q-frame group is dropped.
func runStream[T resample.Sample](width int) func(cliArgs, io.Reader, io.Writer) (int64, error) {
	return func(args cliArgs, in io.Reader, out io.Writer) (int64, error) {
		r, err := newResampler[T](width, args)
		if err != nil {
			return 0, err
		}

		var elem T
		elemBytes := binary.Size(elem)
		blockBytes := elemBytes * width * args.q

		blocks := blockSize / blockBytes
		if blocks < 1 {
			blocks = 1
		}

		input := make([]T, blocks*args.q*width)
		output := make([]T, blocks*args.p*width)
		raw := make([]byte, len(input)*elemBytes)

		var written int64

		for {
			n, err := io.ReadFull(in, raw)
			if err == io.EOF {
				break
			}
			if err != nil && err != io.ErrUnexpectedEOF {
				return written, err
			}

			if n != len(raw) {
				if n < blockBytes {
					break
				}
				blocks = n / blockBytes
				input = input[:blocks*args.q*width]
				output = output[:blocks*args.p*width]
				raw = raw[:len(input)*elemBytes]
			}

			if err := binary.Read(bytes.NewReader(raw), binary.LittleEndian, input); err != nil {
				return written, err
			}

			if err := r.Resample(input, output); err != nil {
				return written, err
			}

			if err := binary.Write(out, binary.LittleEndian, output); err != nil {
				return written, err
			}

			written += int64(len(output) / width)
		}

		return written, nil
	}
}
