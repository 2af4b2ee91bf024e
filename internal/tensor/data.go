package tensor

import "fmt"

// NDData is read access to an N-dimensional array of T.
// Implemented by *Array[T], *View[T] and *MutView[T].
type NDData[T Scalar] interface {
	// Shape returns the dimension lengths. Callers must not modify it.
	Shape() Shape
	// Strides returns the row-major strides. Callers must not modify them.
	Strides() []int
	// Data returns the contiguous row-major storage window.
	Data() []T
	// Dim returns the rank.
	Dim() int
	// Size returns the number of elements.
	Size() int
	// At returns the element at the given coordinates.
	At(indices ...int) T
}

// NDDataMut is read/write access to an N-dimensional array of T.
// Implemented by *Array[T] and *MutView[T].
type NDDataMut[T Scalar] interface {
	NDData[T]
	// Set stores value at the given coordinates.
	Set(value T, indices ...int)
	// Ref returns a pointer to the element at the given coordinates.
	Ref(indices ...int) *T
	// Assign copies every element of other, which must have the same shape.
	Assign(other NDData[T])
}

var (
	_ NDDataMut[float64] = (*Array[float64])(nil)
	_ NDDataMut[float64] = (*MutView[float64])(nil)
	_ NDData[float64]    = (*View[float64])(nil)
)

// Equal reports whether a and b have the same rank, the same dimension lengths,
// and equal elements at every index.
func Equal[T Scalar](a, b NDData[T]) bool {
	if !a.Shape().Equal(b.Shape()) {
		return false
	}
	err := Walk(a.Shape(), RowMajor, func(idx Index) error {
		if a.At(idx...) != b.At(idx...) {
			return errStopWalk
		}
		return nil
	})
	return err == nil
}

// sliceWindow validates a prefix index and returns the storage window it selects.
func sliceWindow(op string, shape Shape, strides, prefix []int) (start, end int) {
	if len(prefix) == 0 || len(prefix) >= len(shape) {
		panic(fmt.Sprintf("%s(%v): prefix must have between 1 and %d coordinates, got %d",
			op, prefix, len(shape)-1, len(prefix)))
	}
	for i, c := range prefix {
		if c < 0 || c >= shape[i] {
			panic(fmt.Sprintf("%s(%v): index %d out of bounds for dimension %d (shape %v)",
				op, prefix, c, i, shape))
		}
		start += c * strides[i]
	}
	return start, start + strides[len(prefix)-1]
}

// checkSameShape panics unless other has exactly the given shape.
func checkSameShape(op string, shape, other Shape) {
	if len(shape) != len(other) {
		panic(fmt.Sprintf("%s: rank mismatch (%d != %d)", op, len(other), len(shape)))
	}
	if !shape.Equal(other) {
		panic(fmt.Sprintf("%s: shape mismatch (%v != %v)", op, other, shape))
	}
}

// assign copies src into dst element by element.
func assign[T Scalar](dst []T, shape Shape, strides []int, src NDData[T]) {
	each(shape, func(idx Index) {
		dst[idx.ToPos(shape, strides)] = src.At(idx...)
	})
}

// transposeSquare applies new[i0..in] = old[in..i0] in place.
// Every dimension must have the same length.
func transposeSquare[T Scalar](op string, data []T, shape Shape, strides []int) {
	for i := range shape {
		if shape[i] != shape[0] {
			panic(fmt.Sprintf("%s: generic transpose needs equal dimension lengths, shape[0] != shape[%d] (%d != %d)",
				op, i, shape[0], shape[i]))
		}
	}
	old := append([]T(nil), data...)
	rev := make(Index, len(shape))
	each(shape, func(idx Index) {
		for i := range idx {
			rev[i] = idx[len(idx)-1-i]
		}
		data[idx.ToPos(shape, strides)] = old[rev.ToPos(shape, strides)]
	})
}
