package tensor

import "fmt"

// Array is an owned N-dimensional array with row-major contiguous storage.
//
// Views handed out by Slice and SliceMut borrow the array's storage. While a
// mutable view is live the array cannot be read; while any view is live it
// cannot be written, transposed or reshaped. Release the views to check them in.
//
// Example:
//
//	a := tensor.New[float64](tensor.Shape{3, 4}, 0)
//	a.Set(1.5, 2, 3)
//	row := a.Slice(2) // View of shape [4]
//	defer row.Release()
type Array[T Scalar] struct {
	shape   Shape
	strides []int
	data    []T
	borrows borrowState
}

// Shape returns the array's shape.
func (a *Array[T]) Shape() Shape {
	return a.shape
}

// Strides returns the array's row-major strides.
func (a *Array[T]) Strides() []int {
	return a.strides
}

// Dim returns the number of dimensions.
func (a *Array[T]) Dim() int {
	return len(a.shape)
}

// Size returns the total number of elements.
func (a *Array[T]) Size() int {
	return a.shape.NumElements()
}

// DType returns the runtime element type.
func (a *Array[T]) DType() DataType {
	return DataTypeOf[T]()
}

// Data returns the underlying storage in row-major order.
//
// WARNING: Modifications to the returned slice will modify the array.
func (a *Array[T]) Data() []T {
	a.borrows.checkRead("Array.Data")
	return a.data
}

// At returns the element at the given indices.
// Panics if the number of indices differs from Dim() or any index is out of bounds.
func (a *Array[T]) At(indices ...int) T {
	a.borrows.checkRead("Array.At")
	return a.data[Index(indices).ToPos(a.shape, a.strides)]
}

// Set sets the element at the given indices.
// Panics if indices are out of bounds.
func (a *Array[T]) Set(value T, indices ...int) {
	a.borrows.checkWrite("Array.Set")
	a.data[Index(indices).ToPos(a.shape, a.strides)] = value
}

// Ref returns a pointer to the element at the given indices.
// The pointer is invalidated by any shape-mutating operation.
func (a *Array[T]) Ref(indices ...int) *T {
	a.borrows.checkWrite("Array.Ref")
	return &a.data[Index(indices).ToPos(a.shape, a.strides)]
}

// Fill sets every element to value.
func (a *Array[T]) Fill(value T) {
	a.borrows.checkWrite("Array.Fill")
	fillData(a.data, value)
}

// Slice borrows the sub-array selected by a prefix of leading indices.
// The view has shape Shape()[len(prefix):] and shares storage with the array.
// Panics unless 0 < len(prefix) < Dim() and every prefix index is in range.
func (a *Array[T]) Slice(prefix ...int) *View[T] {
	start, end := sliceWindow("Array.Slice", a.shape, a.strides, prefix)
	a.borrows.acquireShared("Array.Slice")
	return newView(&a.borrows, a.shape[len(prefix):], a.strides[len(prefix):], a.data[start:end:end])
}

// SliceMut is Slice with write access. No other view may be live.
func (a *Array[T]) SliceMut(prefix ...int) *MutView[T] {
	start, end := sliceWindow("Array.SliceMut", a.shape, a.strides, prefix)
	a.borrows.acquireExclusive("Array.SliceMut")
	return newMutView(&a.borrows, a.shape[len(prefix):], a.strides[len(prefix):], a.data[start:end:end])
}

// Equal reports whether other has the same shape and the same elements.
func (a *Array[T]) Equal(other NDData[T]) bool {
	return Equal[T](a, other)
}

// Clone returns a deep copy of the array.
func (a *Array[T]) Clone() *Array[T] {
	return Copy[T](a)
}

// Assign copies other into the array. Panics if the shapes differ.
func (a *Array[T]) Assign(other NDData[T]) {
	a.borrows.checkWrite("Array.Assign")
	checkSameShape("Array.Assign", a.shape, other.Shape())
	assign(a.data, a.shape, a.strides, other)
}

// Reshape changes the shape without moving data.
// Panics if the new shape has a different number of elements.
func (a *Array[T]) Reshape(shape Shape) {
	a.borrows.checkWrite("Array.Reshape")
	if err := shape.Validate(); err != nil {
		panic(fmt.Sprintf("Array.Reshape(%v): %v", shape, err))
	}
	if shape.NumElements() != a.Size() {
		panic(fmt.Sprintf("Array.Reshape(%v): new shape has %d elements, current shape %v has %d",
			shape, shape.NumElements(), a.shape, a.Size()))
	}
	a.shape = shape.Clone()
	a.strides = a.shape.ComputeStrides()
}

// String returns a short description of the array.
func (a *Array[T]) String() string {
	return fmt.Sprintf("Array[%s]%v", a.DType(), a.shape)
}
