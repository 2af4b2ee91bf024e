package npy

import (
	"fmt"
	"math"

	"github.com/born-ml/ndarray/internal/tensor"
)

// decodeFunc reads one on-disk element from the front of b and casts it to T.
type decodeFunc[T tensor.Scalar] func(b []byte) T

// encodeFunc casts v to the on-disk type and appends its bytes to dst.
type encodeFunc[T tensor.Scalar] func(dst []byte, v T) []byte

// decoderFor selects the element decoder for the on-disk type and byte order.
//
//nolint:gocyclo,cyclop // One case per supported element type
func decoderFor[T tensor.Scalar](dt tensor.DataType, order ByteOrder) (decodeFunc[T], error) {
	e := order.engine()
	switch dt {
	case tensor.Uint8:
		return func(b []byte) T { return tensor.Cast[T](b[0]) }, nil
	case tensor.Uint16:
		return func(b []byte) T { return tensor.Cast[T](e.Uint16(b)) }, nil
	case tensor.Uint32:
		return func(b []byte) T { return tensor.Cast[T](e.Uint32(b)) }, nil
	case tensor.Uint64:
		return func(b []byte) T { return tensor.Cast[T](e.Uint64(b)) }, nil
	case tensor.Int8:
		return func(b []byte) T { return tensor.Cast[T](int8(b[0])) }, nil
	case tensor.Int16:
		return func(b []byte) T { return tensor.Cast[T](int16(e.Uint16(b))) }, nil
	case tensor.Int32:
		return func(b []byte) T { return tensor.Cast[T](int32(e.Uint32(b))) }, nil
	case tensor.Int64:
		return func(b []byte) T { return tensor.Cast[T](int64(e.Uint64(b))) }, nil
	case tensor.Float32:
		return func(b []byte) T { return tensor.Cast[T](math.Float32frombits(e.Uint32(b))) }, nil
	case tensor.Float64:
		return func(b []byte) T { return tensor.Cast[T](math.Float64frombits(e.Uint64(b))) }, nil
	case tensor.Complex64:
		return func(b []byte) T {
			re := math.Float32frombits(e.Uint32(b))
			im := math.Float32frombits(e.Uint32(b[4:]))
			return tensor.Cast[T](complex(re, im))
		}, nil
	case tensor.Complex128:
		return func(b []byte) T {
			re := math.Float64frombits(e.Uint64(b))
			im := math.Float64frombits(e.Uint64(b[8:]))
			return tensor.Cast[T](complex(re, im))
		}, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedDType, dt)
	}
}

// encoderFor selects the element encoder for the on-disk type and byte order.
//
//nolint:gocyclo,cyclop // One case per supported element type
func encoderFor[T tensor.Scalar](dt tensor.DataType, order ByteOrder) (encodeFunc[T], error) {
	e := order.engine()
	switch dt {
	case tensor.Uint8:
		return func(dst []byte, v T) []byte { return append(dst, tensor.Cast[uint8](v)) }, nil
	case tensor.Uint16:
		return func(dst []byte, v T) []byte { return e.AppendUint16(dst, tensor.Cast[uint16](v)) }, nil
	case tensor.Uint32:
		return func(dst []byte, v T) []byte { return e.AppendUint32(dst, tensor.Cast[uint32](v)) }, nil
	case tensor.Uint64:
		return func(dst []byte, v T) []byte { return e.AppendUint64(dst, tensor.Cast[uint64](v)) }, nil
	case tensor.Int8:
		return func(dst []byte, v T) []byte { return append(dst, byte(tensor.Cast[int8](v))) }, nil
	case tensor.Int16:
		return func(dst []byte, v T) []byte { return e.AppendUint16(dst, uint16(tensor.Cast[int16](v))) }, nil
	case tensor.Int32:
		return func(dst []byte, v T) []byte { return e.AppendUint32(dst, uint32(tensor.Cast[int32](v))) }, nil
	case tensor.Int64:
		return func(dst []byte, v T) []byte { return e.AppendUint64(dst, uint64(tensor.Cast[int64](v))) }, nil
	case tensor.Float32:
		return func(dst []byte, v T) []byte {
			return e.AppendUint32(dst, math.Float32bits(tensor.Cast[float32](v)))
		}, nil
	case tensor.Float64:
		return func(dst []byte, v T) []byte {
			return e.AppendUint64(dst, math.Float64bits(tensor.Cast[float64](v)))
		}, nil
	case tensor.Complex64:
		return func(dst []byte, v T) []byte {
			c := tensor.Cast[complex64](v)
			dst = e.AppendUint32(dst, math.Float32bits(real(c)))
			return e.AppendUint32(dst, math.Float32bits(imag(c)))
		}, nil
	case tensor.Complex128:
		return func(dst []byte, v T) []byte {
			c := tensor.Cast[complex128](v)
			dst = e.AppendUint64(dst, math.Float64bits(real(c)))
			return e.AppendUint64(dst, math.Float64bits(imag(c)))
		}, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedDType, dt)
	}
}
