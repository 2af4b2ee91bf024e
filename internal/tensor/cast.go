package tensor

import "math"

// Cast converts v to the element type D using the same rules as Go's native
// numeric conversions, with two differences for floating-point sources:
//
//   - float to integer truncates toward zero and saturates at the target
//     bounds; NaN becomes 0.
//   - complex to any real type keeps only the real part (intentionally lossy).
//
// Integer narrowing wraps (two's complement) and real to complex sets the
// imaginary part to zero.
func Cast[D, S Scalar](v S) D {
	if same, ok := any(v).(D); ok {
		return same
	}
	switch x := any(v).(type) {
	case uint8:
		return fromUint[D](uint64(x))
	case uint16:
		return fromUint[D](uint64(x))
	case uint32:
		return fromUint[D](uint64(x))
	case uint64:
		return fromUint[D](x)
	case int8:
		return fromInt[D](int64(x))
	case int16:
		return fromInt[D](int64(x))
	case int32:
		return fromInt[D](int64(x))
	case int64:
		return fromInt[D](x)
	case float32:
		return fromFloat[D](float64(x))
	case float64:
		return fromFloat[D](x)
	case complex64:
		return fromComplex[D](complex128(x))
	case complex128:
		return fromComplex[D](x)
	default:
		panic("unsupported type")
	}
}

func fromUint[D Scalar](u uint64) D {
	var out D
	switch p := any(&out).(type) {
	case *uint8:
		*p = uint8(u)
	case *uint16:
		*p = uint16(u)
	case *uint32:
		*p = uint32(u)
	case *uint64:
		*p = u
	case *int8:
		*p = int8(u)
	case *int16:
		*p = int16(u)
	case *int32:
		*p = int32(u)
	case *int64:
		*p = int64(u)
	case *float32:
		*p = float32(u)
	case *float64:
		*p = float64(u)
	case *complex64:
		*p = complex(float32(u), 0)
	case *complex128:
		*p = complex(float64(u), 0)
	}
	return out
}

func fromInt[D Scalar](i int64) D {
	var out D
	switch p := any(&out).(type) {
	case *uint8:
		*p = uint8(i)
	case *uint16:
		*p = uint16(i)
	case *uint32:
		*p = uint32(i)
	case *uint64:
		*p = uint64(i)
	case *int8:
		*p = int8(i)
	case *int16:
		*p = int16(i)
	case *int32:
		*p = int32(i)
	case *int64:
		*p = i
	case *float32:
		*p = float32(i)
	case *float64:
		*p = float64(i)
	case *complex64:
		*p = complex(float32(i), 0)
	case *complex128:
		*p = complex(float64(i), 0)
	}
	return out
}

func fromFloat[D Scalar](f float64) D {
	var out D
	switch p := any(&out).(type) {
	case *uint8:
		*p = uint8(saturateUint(f, math.MaxUint8))
	case *uint16:
		*p = uint16(saturateUint(f, math.MaxUint16))
	case *uint32:
		*p = uint32(saturateUint(f, math.MaxUint32))
	case *uint64:
		*p = saturateUint(f, math.MaxUint64)
	case *int8:
		*p = int8(saturateInt(f, math.MinInt8, math.MaxInt8))
	case *int16:
		*p = int16(saturateInt(f, math.MinInt16, math.MaxInt16))
	case *int32:
		*p = int32(saturateInt(f, math.MinInt32, math.MaxInt32))
	case *int64:
		*p = saturateInt(f, math.MinInt64, math.MaxInt64)
	case *float32:
		*p = float32(f)
	case *float64:
		*p = f
	case *complex64:
		*p = complex(float32(f), 0)
	case *complex128:
		*p = complex(f, 0)
	}
	return out
}

func fromComplex[D Scalar](c complex128) D {
	var out D
	switch p := any(&out).(type) {
	case *complex64:
		*p = complex64(c)
	case *complex128:
		*p = c
	default:
		return fromFloat[D](real(c))
	}
	return out
}

// saturateInt truncates f toward zero and clamps it to [lo, hi].
// float64(hi) may round up (2^63 for MaxInt64), which the >= comparison covers.
func saturateInt(f float64, lo, hi int64) int64 {
	switch {
	case math.IsNaN(f):
		return 0
	case f <= float64(lo):
		return lo
	case f >= float64(hi):
		return hi
	}
	return int64(f)
}

// saturateUint truncates f toward zero and clamps it to [0, hi].
func saturateUint(f float64, hi uint64) uint64 {
	switch {
	case math.IsNaN(f), f <= 0:
		return 0
	case f >= float64(hi):
		return hi
	}
	return uint64(f)
}
