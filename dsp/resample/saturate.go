package resample

import "math"

// saturator narrows a float64 accumulator to the stream element type. For
// integer element types it clamps to the representable range first; the
// bounds are compared in float64 but emitted as exact integer limits so the
// final conversion never leaves the target range. Conversion truncates
// toward zero. Floating element types pass through unclamped.
type saturator[T Sample] struct {
	active   bool
	lo, hi   float64
	min, max int64
}

func (s *saturator[T]) narrow(acc float64) T {
	if s.active {
		if acc <= s.lo {
			return T(s.min)
		}

		if acc >= s.hi {
			return T(s.max)
		}
	}

	return T(acc)
}

func saturatorFor[T Sample]() saturator[T] {
	var zero T
	switch any(zero).(type) {
	case int8:
		return saturator[T]{active: true, lo: math.MinInt8, hi: math.MaxInt8, min: math.MinInt8, max: math.MaxInt8}
	case int16:
		return saturator[T]{active: true, lo: math.MinInt16, hi: math.MaxInt16, min: math.MinInt16, max: math.MaxInt16}
	case int32:
		return saturator[T]{active: true, lo: math.MinInt32, hi: math.MaxInt32, min: math.MinInt32, max: math.MaxInt32}
	case int64:
		return saturator[T]{active: true, lo: math.MinInt64, hi: math.MaxInt64, min: math.MinInt64, max: math.MaxInt64}
	default:
		return saturator[T]{}
	}
}
