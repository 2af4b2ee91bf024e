package tensor

import (
	"fmt"
	"math"
)

// Shape represents the dimensions of an array.
type Shape []int

// NumElements returns the total number of elements in the array.
// A rank-0 shape has one element; any zero-length dimension gives zero.
func (s Shape) NumElements() int {
	n := 1
	for _, dim := range s {
		n *= dim
	}
	return n
}

// CheckedElements returns the element count of a shape with non-negative
// dimensions and false if the count does not fit an int.
func (s Shape) CheckedElements() (int, bool) {
	n := 1
	for _, dim := range s {
		if dim == 0 {
			return 0, true
		}
	}
	for _, dim := range s {
		if n > math.MaxInt/dim {
			return 0, false
		}
		n *= dim
	}
	return n, true
}

// Validate checks if the shape is valid: all dimensions >= 0 and an element
// count that fits an int.
func (s Shape) Validate() error {
	for i, dim := range s {
		if dim < 0 {
			return fmt.Errorf("invalid dimension at index %d: %d (must be >= 0)", i, dim)
		}
	}
	if _, ok := s.CheckedElements(); !ok {
		return fmt.Errorf("element count of %v overflows int", []int(s))
	}
	return nil
}

// Equal checks if two shapes have the same rank and the same lengths.
func (s Shape) Equal(other Shape) bool {
	if len(s) != len(other) {
		return false
	}
	for i := range s {
		if s[i] != other[i] {
			return false
		}
	}
	return true
}

// Clone returns a copy of the shape.
func (s Shape) Clone() Shape {
	clone := make(Shape, len(s))
	copy(clone, s)
	return clone
}

// Reversed returns a copy of the shape with the dimension order reversed.
func (s Shape) Reversed() Shape {
	rev := make(Shape, len(s))
	for i, dim := range s {
		rev[len(s)-1-i] = dim
	}
	return rev
}

// ComputeStrides calculates row-major strides for the shape.
// Strides define memory layout: stride[i] = product of all dimensions after i.
func (s Shape) ComputeStrides() []int {
	strides := make([]int, len(s))
	if len(s) == 0 {
		return strides
	}

	strides[len(s)-1] = 1
	for i := len(s) - 2; i >= 0; i-- {
		strides[i] = strides[i+1] * s[i+1]
	}
	return strides
}
