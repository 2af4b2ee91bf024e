package tensor

import (
	"errors"
	"fmt"
)

// Index is a multi-dimensional coordinate, one entry per dimension.
type Index []int

// ToPos returns the linear storage position of the index: Σ idx[i]*strides[i].
// Panics if the rank differs from the shape or any coordinate is out of range.
func (idx Index) ToPos(shape Shape, strides []int) int {
	if len(idx) != len(shape) {
		panic(fmt.Sprintf("index %v has %d coordinates, expected %d", []int(idx), len(idx), len(shape)))
	}
	pos := 0
	for i, c := range idx {
		if c < 0 || c >= shape[i] {
			panic(fmt.Sprintf("index %d out of bounds for dimension %d (size %d)", c, i, shape[i]))
		}
		pos += c * strides[i]
	}
	return pos
}

// IncRowMajor advances the index with the last dimension varying fastest.
// After the last element the index wraps to all zeros.
func (idx Index) IncRowMajor(shape Shape) {
	idx.checkRank("IncRowMajor", shape)
	for i := len(idx) - 1; i >= 0; i-- {
		idx[i]++
		if idx[i] < shape[i] {
			return
		}
		idx[i] = 0
	}
}

// IncColMajor advances the index with the first dimension varying fastest.
func (idx Index) IncColMajor(shape Shape) {
	idx.checkRank("IncColMajor", shape)
	for i := range idx {
		idx[i]++
		if idx[i] < shape[i] {
			return
		}
		idx[i] = 0
	}
}

// DecRowMajor steps the index back by one in row-major order.
// Stepping back from all zeros wraps to the last element.
func (idx Index) DecRowMajor(shape Shape) {
	idx.checkRank("DecRowMajor", shape)
	for i := len(idx) - 1; i >= 0; i-- {
		if idx[i] > 0 {
			idx[i]--
			return
		}
		idx[i] = shape[i] - 1
	}
}

// DecColMajor steps the index back by one in column-major order.
func (idx Index) DecColMajor(shape Shape) {
	idx.checkRank("DecColMajor", shape)
	for i := range idx {
		if idx[i] > 0 {
			idx[i]--
			return
		}
		idx[i] = shape[i] - 1
	}
}

// IsZero reports whether every coordinate is zero.
func (idx Index) IsZero() bool {
	for _, c := range idx {
		if c != 0 {
			return false
		}
	}
	return true
}

func (idx Index) checkRank(op string, shape Shape) {
	if len(idx) != len(shape) {
		panic(fmt.Sprintf("Index.%s: index has %d coordinates, shape has %d dimensions", op, len(idx), len(shape)))
	}
}

// Order is the traversal order of a multi-dimensional index.
type Order int

// Traversal orders.
const (
	RowMajor    Order = iota // last dimension varies fastest (C order)
	ColumnMajor              // first dimension varies fastest (Fortran order)
)

// String returns a human-readable name for the order.
func (o Order) String() string {
	switch o {
	case RowMajor:
		return "row-major"
	case ColumnMajor:
		return "column-major"
	default:
		return "unknown"
	}
}

// Next advances idx by one step in this order.
func (o Order) Next(idx Index, shape Shape) {
	switch o {
	case RowMajor:
		idx.IncRowMajor(shape)
	case ColumnMajor:
		idx.IncColMajor(shape)
	default:
		panic(fmt.Sprintf("unknown order %d", int(o)))
	}
}

// Prev steps idx back by one in this order.
func (o Order) Prev(idx Index, shape Shape) {
	switch o {
	case RowMajor:
		idx.DecRowMajor(shape)
	case ColumnMajor:
		idx.DecColMajor(shape)
	default:
		panic(fmt.Sprintf("unknown order %d", int(o)))
	}
}

// Walk visits every valid index of shape exactly once in the given order.
// The traversal starts at all zeros and ends when the index wraps back to zero.
// A shape with a zero-length dimension visits nothing; a rank-0 shape visits the
// empty index once. The index passed to fn is reused between calls: fn may modify
// it temporarily but must restore it before returning, and must not retain it.
// A non-nil error from fn stops the walk and is returned.
func Walk(shape Shape, order Order, fn func(idx Index) error) error {
	if shape.NumElements() == 0 {
		return nil
	}
	idx := make(Index, len(shape))
	for {
		if err := fn(idx); err != nil {
			return err
		}
		order.Next(idx, shape)
		if idx.IsZero() {
			return nil
		}
	}
}

// each is Walk in row-major order for callbacks that cannot fail.
func each(shape Shape, fn func(idx Index)) {
	_ = Walk(shape, RowMajor, func(idx Index) error {
		fn(idx)
		return nil
	})
}

// errStopWalk ends a Walk early without reporting a failure.
var errStopWalk = errors.New("stop walk")
