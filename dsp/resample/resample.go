package resample

import (
	"errors"
	"fmt"
	"math"

	"github.com/cwbudde/algo-resample/dsp/window"
)

var (
	// ErrInvalidRatio indicates a non-positive rate numerator or denominator.
	ErrInvalidRatio = errors.New("resample: invalid ratio")
	// ErrInvalidTaps indicates a non-positive per-branch tap count.
	ErrInvalidTaps = errors.New("resample: invalid tap count")
	// ErrInvalidRate indicates an invalid input/output sample rate.
	ErrInvalidRate = errors.New("resample: invalid sample rate")
	// ErrInvalidSize indicates input/output buffers whose lengths do not
	// satisfy the P/Q block contract of Resample.
	ErrInvalidSize = errors.New("resample: invalid buffer size")
)

// Sample is the set of element types a Resampler can stream. Integer types
// saturate to their representable range on output; floating types are stored
// as computed.
type Sample interface {
	int8 | int16 | int32 | int64 | float32 | float64
}

const (
	// DefaultRealTaps is the per-branch tap count for real streams.
	DefaultRealTaps = 128
	// DefaultComplexTaps is the per-branch tap count for complex streams.
	DefaultComplexTaps = 384

	// Initial precomputed path table length. Grown at call time when a
	// larger output block is requested.
	defaultPathLen = 128
)

type config struct {
	taps       int
	windowType window.Type
	windowOpts []window.Option
	maxDen     int
}

// Option configures the resampler.
type Option func(*config)

// WithTaps overrides the per-branch tap count. Zero keeps the stream-kind
// default (128 real, 384 complex).
func WithTaps(n int) Option {
	return func(cfg *config) {
		cfg.taps = n
	}
}

// WithWindow selects the window applied to the prototype filter. The default
// is the periodic 4-term Blackman-Harris window.
func WithWindow(t window.Type, opts ...window.Option) Option {
	return func(cfg *config) {
		cfg.windowType = t
		cfg.windowOpts = append([]window.Option(nil), opts...)
	}
}

// WithMaxDenominator caps denominator size for rate-ratio approximation.
func WithMaxDenominator(n int) Option {
	return func(cfg *config) {
		if n > 0 {
			cfg.maxDen = n
		}
	}
}

func defaultConfig() config {
	return config{
		windowType: window.TypeBlackmanHarris4Term,
		maxDen:     4096,
	}
}

type pathEntry struct {
	offset int
	branch int
}

// Resampler converts a sample stream from rate R to rate R*P/Q using a
// polyphase FIR filter bank. The last taps-1 input frames are carried
// between calls, so chunked streaming produces the same output as one
// monolithic call.
//
// A Resampler owns mutable state (history, path table) and must not be
// called concurrently; use one instance per stream.
type Resampler[T Sample] struct {
	p, q  int
	taps  int
	width int // components per frame: 1 real, 2 complex interleaved

	proto      []float64
	partitions [][]float64
	paths      []pathEntry

	history []T
	work    []T

	sat saturator[T]
}

// New creates a resampler for a real stream with rate ratio p/q.
// The ratio is used as given; callers wanting a reduced ratio should
// divide out common factors themselves or use NewForRates.
func New[T Sample](p, q int, opts ...Option) (*Resampler[T], error) {
	return newResampler[T](p, q, 1, DefaultRealTaps, opts)
}

// NewComplex creates a resampler for a complex stream with rate ratio p/q.
// Buffers hold interleaved I/Q component pairs, two slice elements per frame.
func NewComplex[T Sample](p, q int, opts ...Option) (*Resampler[T], error) {
	return newResampler[T](p, q, 2, DefaultComplexTaps, opts)
}

// NewForRates creates a real-stream resampler by approximating
// outRate/inRate as a rational ratio.
func NewForRates[T Sample](inRate, outRate float64, opts ...Option) (*Resampler[T], error) {
	p, q, err := ratioForRates(inRate, outRate, opts)
	if err != nil {
		return nil, err
	}

	return New[T](p, q, opts...)
}

// NewComplexForRates creates a complex-stream resampler by approximating
// outRate/inRate as a rational ratio.
func NewComplexForRates[T Sample](inRate, outRate float64, opts ...Option) (*Resampler[T], error) {
	p, q, err := ratioForRates(inRate, outRate, opts)
	if err != nil {
		return nil, err
	}

	return NewComplex[T](p, q, opts...)
}

func ratioForRates(inRate, outRate float64, opts []Option) (p, q int, err error) {
	if inRate <= 0 || outRate <= 0 || math.IsNaN(inRate) || math.IsNaN(outRate) {
		return 0, 0, ErrInvalidRate
	}

	cfg := defaultConfig()

	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	p, q = approximateRatio(outRate/inRate, cfg.maxDen)

	return p, q, nil
}

func newResampler[T Sample](p, q, width, defaultTaps int, opts []Option) (*Resampler[T], error) {
	if p <= 0 || q <= 0 {
		return nil, ErrInvalidRatio
	}

	cfg := defaultConfig()

	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	if cfg.taps == 0 {
		cfg.taps = defaultTaps
	}

	if cfg.taps < 0 {
		return nil, ErrInvalidTaps
	}

	proto, partitions := design(p, q, cfg.taps, cfg.windowType, cfg.windowOpts)

	r := &Resampler[T]{
		p:          p,
		q:          q,
		taps:       cfg.taps,
		width:      width,
		proto:      proto,
		partitions: partitions,
		history:    make([]T, (cfg.taps-1)*width),
		sat:        saturatorFor[T](),
	}
	r.growPaths(defaultPathLen)

	return r, nil
}

// Resample converts one input block into one output block, overwriting
// output entirely. Input and output frame counts must be matching multiples
// of Q and P, and input must cover at least the taps-1 frame history. On
// error, history and path table are left unchanged.
func (r *Resampler[T]) Resample(input, output []T) error {
	if err := r.validate(len(input), len(output)); err != nil {
		return err
	}

	outFrames := len(output) / r.width
	if outFrames > len(r.paths) {
		r.growPaths(outFrames)
	}

	histLen := len(r.history)

	need := histLen + len(input)
	if cap(r.work) < need {
		r.work = make([]T, need)
	}

	work := r.work[:need]
	copy(work, r.history)
	copy(work[histLen:], input)
	r.work = work

	if r.width == 2 {
		for k := range outFrames {
			path := r.paths[k]
			taps := r.partitions[path.branch]
			xi := path.offset * 2

			var re, im float64

			for _, c := range taps {
				re += c * float64(work[xi])
				im += c * float64(work[xi+1])
				xi += 2
			}

			output[2*k] = r.sat.narrow(re)
			output[2*k+1] = r.sat.narrow(im)
		}
	} else {
		for k := range outFrames {
			path := r.paths[k]
			taps := r.partitions[path.branch]
			xi := path.offset

			var acc float64

			for _, c := range taps {
				acc += c * float64(work[xi])
				xi++
			}

			output[k] = r.sat.narrow(acc)
		}
	}

	copy(r.history, input[len(input)-histLen:])

	return nil
}

func (r *Resampler[T]) validate(inLen, outLen int) error {
	if r.width == 2 && (inLen%2 != 0 || outLen%2 != 0) {
		return fmt.Errorf("%w: interleaved complex buffers need even lengths (input %d, output %d)",
			ErrInvalidSize, inLen, outLen)
	}

	in := inLen / r.width

	out := outLen / r.width
	if in%r.q != 0 || out%r.p != 0 || in/r.q != out/r.p {
		return fmt.Errorf("%w: input %d and output %d frames do not divide as %d/%d",
			ErrInvalidSize, in, out, r.p, r.q)
	}

	if in < r.taps-1 {
		return fmt.Errorf("%w: input %d frames is below the %d-frame history minimum",
			ErrInvalidSize, in, r.taps-1)
	}

	return nil
}

// growPaths rebuilds the path table to exactly n entries. Requests at or
// below the current length keep the existing table.
func (r *Resampler[T]) growPaths(n int) {
	if n <= len(r.paths) {
		return
	}

	paths := make([]pathEntry, n)
	for i := range paths {
		paths[i] = pathEntry{offset: r.q * i / r.p, branch: r.q * i % r.p}
	}

	r.paths = paths
}

// Reset zero-fills the history, returning the instance to its initial state.
func (r *Resampler[T]) Reset() {
	clear(r.history)
}

// Ratio returns the conversion factors p/q as given at construction.
func (r *Resampler[T]) Ratio() (p, q int) {
	return r.p, r.q
}

// Taps returns the tap count in each polyphase branch.
func (r *Resampler[T]) Taps() int {
	return r.taps
}

// Complex reports whether the stream holds interleaved I/Q frames.
func (r *Resampler[T]) Complex() bool {
	return r.width == 2
}

// MinInput returns the smallest valid input slice length in elements:
// the history requirement rounded up to a whole number of Q-frame blocks.
func (r *Resampler[T]) MinInput() int {
	blocks := max(1, (r.taps-1+r.q-1)/r.q)

	return blocks * r.q * r.width
}

// OutputLen returns the output slice length matching a valid input length,
// or -1 if no valid output length exists for inputLen.
func (r *Resampler[T]) OutputLen(inputLen int) int {
	frames := inputLen / r.width
	if inputLen%r.width != 0 || frames%r.q != 0 {
		return -1
	}

	return frames / r.q * r.p * r.width
}

// Prototype returns a copy of the normalized prototype filter before
// polyphase decomposition.
func (r *Resampler[T]) Prototype() []float64 {
	out := make([]float64, len(r.proto))
	copy(out, r.proto)

	return out
}
