package tensor

import "fmt"

// Transpose reverses both the shape and the coordinate order of every element:
// the element at [i0, ..., in] moves to [in, ..., i0]. Any shape is accepted.
// Requires that no views are live.
func (a *Array[T]) Transpose() {
	a.borrows.checkWrite("Array.Transpose")

	oldShape, oldStrides, old := a.shape, a.strides, a.data
	shape := oldShape.Reversed()
	strides := shape.ComputeStrides()
	data := make([]T, len(old))

	rev := make(Index, len(shape))
	each(shape, func(idx Index) {
		for i := range idx {
			rev[i] = idx[len(idx)-1-i]
		}
		data[idx.ToPos(shape, strides)] = old[rev.ToPos(oldShape, oldStrides)]
	})

	a.shape, a.strides, a.data = shape, strides, data
}

// Insert grows dimension dim by other.Shape()[dim], placing other's elements
// starting at position pos. pos == Shape()[dim] appends.
// other must have the same rank and the same lengths in every other dimension.
// Requires that no views are live.
//
// Example:
//
//	a := tensor.New[int32](tensor.Shape{2, 3}, 0)
//	b := tensor.New[int32](tensor.Shape{2, 1}, 7)
//	a.Insert(1, 1, b) // a is now [2, 4] with column 1 set to 7
func (a *Array[T]) Insert(dim, pos int, other NDData[T]) {
	a.borrows.checkWrite("Array.Insert")
	if dim < 0 || dim >= a.Dim() {
		panic(fmt.Sprintf("Array.Insert: dim out of range (%d, rank %d)", dim, a.Dim()))
	}
	if pos < 0 || pos > a.shape[dim] {
		panic(fmt.Sprintf("Array.Insert: pos is out of bound (%d > %d)", pos, a.shape[dim]))
	}
	otherShape := other.Shape()
	if len(otherShape) != a.Dim() {
		panic(fmt.Sprintf("Array.Insert: rank mismatch (%d != %d)", len(otherShape), a.Dim()))
	}
	for i := range a.shape {
		if i != dim && a.shape[i] != otherShape[i] {
			panic(fmt.Sprintf("Array.Insert: shapes differ at dimension %d (%d != %d)", i, otherShape[i], a.shape[i]))
		}
	}

	n := otherShape[dim]
	oldShape, oldStrides, old := a.shape, a.strides, a.data
	shape := oldShape.Clone()
	shape[dim] += n
	strides := shape.ComputeStrides()
	data := make([]T, shape.NumElements())

	each(shape, func(idx Index) {
		dst := idx.ToPos(shape, strides)
		c := idx[dim]
		switch {
		case c < pos:
			data[dst] = old[idx.ToPos(oldShape, oldStrides)]
		case c < pos+n:
			idx[dim] = c - pos
			data[dst] = other.At(idx...)
			idx[dim] = c
		default:
			idx[dim] = c - n
			data[dst] = old[idx.ToPos(oldShape, oldStrides)]
			idx[dim] = c
		}
	})

	a.shape, a.strides, a.data = shape, strides, data
}

// Remove deletes positions [start, end) of dimension dim, the inverse of Insert.
// Requires that no views are live.
func (a *Array[T]) Remove(dim, start, end int) {
	a.borrows.checkWrite("Array.Remove")
	if dim < 0 || dim >= a.Dim() {
		panic(fmt.Sprintf("Array.Remove: dim out of range (%d, rank %d)", dim, a.Dim()))
	}
	if start < 0 || start >= end {
		panic(fmt.Sprintf("Array.Remove: empty or negative range [%d, %d)", start, end))
	}
	if end > a.shape[dim] {
		panic(fmt.Sprintf("Array.Remove: end is out of bound (%d > %d)", end, a.shape[dim]))
	}

	n := end - start
	oldShape, oldStrides, old := a.shape, a.strides, a.data
	shape := oldShape.Clone()
	shape[dim] -= n
	strides := shape.ComputeStrides()
	data := make([]T, shape.NumElements())

	each(shape, func(idx Index) {
		dst := idx.ToPos(shape, strides)
		c := idx[dim]
		if c < start {
			data[dst] = old[idx.ToPos(oldShape, oldStrides)]
			return
		}
		idx[dim] = c + n
		data[dst] = old[idx.ToPos(oldShape, oldStrides)]
		idx[dim] = c
	})

	a.shape, a.strides, a.data = shape, strides, data
}

// Extract returns a new array holding the hyper-rectangle [start, end).
// Both indices must have Dim() coordinates with start[i] < end[i] <= Shape()[i].
func (a *Array[T]) Extract(start, end Index) *Array[T] {
	a.borrows.checkRead("Array.Extract")
	if len(start) != a.Dim() || len(end) != a.Dim() {
		panic(fmt.Sprintf("Array.Extract: start and end need %d coordinates, got %d and %d",
			a.Dim(), len(start), len(end)))
	}
	shape := make(Shape, a.Dim())
	for i := range shape {
		if start[i] < 0 || start[i] >= end[i] {
			panic(fmt.Sprintf("Array.Extract: empty range in dimension %d ([%d, %d))", i, start[i], end[i]))
		}
		if end[i] > a.shape[i] {
			panic(fmt.Sprintf("Array.Extract: end is out of bound in dimension %d (%d > %d)", i, end[i], a.shape[i]))
		}
		shape[i] = end[i] - start[i]
	}

	out := Zeros[T](shape)
	src := make(Index, len(shape))
	each(shape, func(idx Index) {
		for i := range idx {
			src[i] = idx[i] + start[i]
		}
		out.data[idx.ToPos(out.shape, out.strides)] = a.data[src.ToPos(a.shape, a.strides)]
	})
	return out
}

// Split cuts dimension dim at pos. The array keeps positions [0, pos) and the
// returned array holds [pos, Shape()[dim]), which must be non-empty. Splitting
// at 0 moves every position and leaves the array empty along dim.
// Requires that no views are live.
func (a *Array[T]) Split(dim, pos int) *Array[T] {
	if dim < 0 || dim >= a.Dim() {
		panic(fmt.Sprintf("Array.Split: dim out of range (%d, rank %d)", dim, a.Dim()))
	}
	if pos < 0 || pos >= a.shape[dim] {
		panic(fmt.Sprintf("Array.Split: pos must be inside [0, %d), got %d", a.shape[dim], pos))
	}
	start := make(Index, a.Dim())
	start[dim] = pos
	end := Index(a.shape.Clone())
	upper := a.Extract(start, end)
	a.Remove(dim, pos, end[dim])
	return upper
}
