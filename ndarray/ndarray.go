// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package ndarray

import (
	"github.com/born-ml/ndarray/internal/tensor"
)

// Type aliases for public API

// Scalar is the constraint satisfied by every supported element type.
type Scalar = tensor.Scalar

// DataType identifies an element type at runtime.
type DataType = tensor.DataType

// Data type constants.
const (
	Uint8      DataType = tensor.Uint8
	Uint16     DataType = tensor.Uint16
	Uint32     DataType = tensor.Uint32
	Uint64     DataType = tensor.Uint64
	Int8       DataType = tensor.Int8
	Int16      DataType = tensor.Int16
	Int32      DataType = tensor.Int32
	Int64      DataType = tensor.Int64
	Float32    DataType = tensor.Float32
	Float64    DataType = tensor.Float64
	Complex64  DataType = tensor.Complex64
	Complex128 DataType = tensor.Complex128
)

// Shape represents the dimensions of an array.
// Example: Shape{2, 3, 4} is a 3D array with dimensions 2×3×4.
type Shape = tensor.Shape

// Index is a multi-dimensional coordinate.
type Index = tensor.Index

// Order is a traversal order.
type Order = tensor.Order

// Traversal orders.
const (
	RowMajor    Order = tensor.RowMajor
	ColumnMajor Order = tensor.ColumnMajor
)

// Array is an owned N-dimensional array.
type Array[T Scalar] = tensor.Array[T]

// View is a read-only window onto an array.
type View[T Scalar] = tensor.View[T]

// MutView is a read/write window onto an array.
type MutView[T Scalar] = tensor.MutView[T]

// NDData is read access shared by arrays and views.
type NDData[T Scalar] = tensor.NDData[T]

// NDDataMut is read/write access shared by arrays and mutable views.
type NDDataMut[T Scalar] = tensor.NDDataMut[T]

// New creates an array of the given shape with every element set to fill.
func New[T Scalar](shape Shape, fill T) *Array[T] {
	return tensor.New(shape, fill)
}

// Zeros creates an array filled with zeros.
func Zeros[T Scalar](shape Shape) *Array[T] {
	return tensor.Zeros[T](shape)
}

// FromSlice creates an array from row-major data.
func FromSlice[T Scalar](shape Shape, data []T) (*Array[T], error) {
	return tensor.FromSlice(shape, data)
}

// MustFromSlice is FromSlice that panics on a size mismatch.
func MustFromSlice[T Scalar](shape Shape, data []T) *Array[T] {
	return tensor.MustFromSlice(shape, data)
}

// FromFunc creates an array whose element at each index is fn(idx).
func FromFunc[T Scalar](shape Shape, fn func(idx Index) T) *Array[T] {
	return tensor.FromFunc(shape, fn)
}

// Copy creates a new owned array from an array or a view.
func Copy[T Scalar](src NDData[T]) *Array[T] {
	return tensor.Copy(src)
}

// CastArray converts every element of src with Cast.
func CastArray[D, S Scalar](src NDData[S]) *Array[D] {
	return tensor.CastArray[D](src)
}

// Cast converts one value between element types.
// Float to integer truncates and saturates (NaN becomes 0); complex to real
// keeps the real part.
func Cast[D, S Scalar](v S) D {
	return tensor.Cast[D](v)
}

// Equal reports whether a and b have the same shape and elements.
func Equal[T Scalar](a, b NDData[T]) bool {
	return tensor.Equal(a, b)
}

// Walk visits every index of shape once in the given order.
func Walk(shape Shape, order Order, fn func(idx Index) error) error {
	return tensor.Walk(shape, order, fn)
}

// DataTypeOf returns the DataType of T.
func DataTypeOf[T Scalar]() DataType {
	return tensor.DataTypeOf[T]()
}
