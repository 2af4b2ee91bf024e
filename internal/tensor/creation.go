package tensor

import "fmt"

// New creates an array of the given shape with every element set to fill.
// Panics if the shape has a negative dimension.
//
// Example:
//
//	a := tensor.New[float32](tensor.Shape{3, 4}, 1)
func New[T Scalar](shape Shape, fill T) *Array[T] {
	if err := shape.Validate(); err != nil {
		panic(fmt.Sprintf("tensor.New(%v): %v", shape, err))
	}
	data := make([]T, shape.NumElements())
	var zero T
	if fill != zero {
		fillData(data, fill)
	}
	return &Array[T]{
		shape:   shape.Clone(),
		strides: shape.ComputeStrides(),
		data:    data,
	}
}

// Zeros creates an array filled with zeros.
func Zeros[T Scalar](shape Shape) *Array[T] {
	var zero T
	return New(shape, zero)
}

// FromSlice creates an array from row-major data.
// The slice is copied into the array's memory.
func FromSlice[T Scalar](shape Shape, data []T) (*Array[T], error) {
	if err := shape.Validate(); err != nil {
		return nil, fmt.Errorf("invalid shape: %w", err)
	}
	if shape.NumElements() != len(data) {
		return nil, fmt.Errorf("shape %v requires %d elements, but got %d", shape, shape.NumElements(), len(data))
	}
	return &Array[T]{
		shape:   shape.Clone(),
		strides: shape.ComputeStrides(),
		data:    append(make([]T, 0, len(data)), data...),
	}, nil
}

// MustFromSlice is FromSlice that panics on a size mismatch.
func MustFromSlice[T Scalar](shape Shape, data []T) *Array[T] {
	a, err := FromSlice(shape, data)
	if err != nil {
		panic(err)
	}
	return a
}

// Copy creates a new owned array with the shape and elements of src,
// which may be an array or a view.
func Copy[T Scalar](src NDData[T]) *Array[T] {
	shape := src.Shape().Clone()
	return &Array[T]{
		shape:   shape,
		strides: shape.ComputeStrides(),
		data:    append(make([]T, 0, src.Size()), src.Data()...),
	}
}

// CastArray creates a new array where each element of src is converted with Cast.
func CastArray[D, S Scalar](src NDData[S]) *Array[D] {
	shape := src.Shape().Clone()
	in := src.Data()
	out := make([]D, len(in))
	for i, v := range in {
		out[i] = Cast[D](v)
	}
	return &Array[D]{
		shape:   shape,
		strides: shape.ComputeStrides(),
		data:    out,
	}
}

// FromFunc creates an array whose element at each index is fn(idx).
// The index passed to fn must not be retained.
func FromFunc[T Scalar](shape Shape, fn func(idx Index) T) *Array[T] {
	a := Zeros[T](shape)
	each(a.shape, func(idx Index) {
		a.data[idx.ToPos(a.shape, a.strides)] = fn(idx)
	})
	return a
}

func fillData[T Scalar](data []T, v T) {
	for i := range data {
		data[i] = v
	}
}
