package tensor

// View is a read-only window onto a contiguous sub-range of an array or another
// view. It is created by Slice and must be released before its parent is
// written or reshaped.
type View[T Scalar] struct {
	viewHandle
	shape   Shape
	strides []int
	data    []T
}

func newView[T Scalar](parent *borrowState, shape Shape, strides []int, data []T) *View[T] {
	return &View[T]{
		viewHandle: viewHandle{parent: parent},
		shape:      shape,
		strides:    strides,
		data:       data,
	}
}

// Shape returns the view's shape.
func (v *View[T]) Shape() Shape {
	v.checkLive("View.Shape")
	return v.shape
}

// Strides returns the view's strides.
func (v *View[T]) Strides() []int {
	v.checkLive("View.Strides")
	return v.strides
}

// Dim returns the number of dimensions.
func (v *View[T]) Dim() int {
	return len(v.Shape())
}

// Size returns the total number of elements.
func (v *View[T]) Size() int {
	return v.Shape().NumElements()
}

// Data returns the borrowed storage window. Callers must not write through it.
func (v *View[T]) Data() []T {
	v.checkLive("View.Data")
	return v.data
}

// At returns the element at the given indices.
func (v *View[T]) At(indices ...int) T {
	v.checkLive("View.At")
	return v.data[Index(indices).ToPos(v.shape, v.strides)]
}

// Slice borrows a sub-view selected by a prefix of leading indices.
func (v *View[T]) Slice(prefix ...int) *View[T] {
	v.checkLive("View.Slice")
	start, end := sliceWindow("View.Slice", v.shape, v.strides, prefix)
	v.borrows.acquireShared("View.Slice")
	return newView(&v.borrows, v.shape[len(prefix):], v.strides[len(prefix):], v.data[start:end:end])
}

// Equal reports whether other has the same shape and the same elements.
func (v *View[T]) Equal(other NDData[T]) bool {
	return Equal[T](v, other)
}

// MutView is a read/write window onto a contiguous sub-range of an array or
// another mutable view. It is created by SliceMut and is the only live borrow
// of its parent until released.
type MutView[T Scalar] struct {
	viewHandle
	shape   Shape
	strides []int
	data    []T
}

func newMutView[T Scalar](parent *borrowState, shape Shape, strides []int, data []T) *MutView[T] {
	return &MutView[T]{
		viewHandle: viewHandle{parent: parent, exclusive: true},
		shape:      shape,
		strides:    strides,
		data:       data,
	}
}

// Shape returns the view's shape.
func (v *MutView[T]) Shape() Shape {
	v.checkLive("MutView.Shape")
	return v.shape
}

// Strides returns the view's strides.
func (v *MutView[T]) Strides() []int {
	v.checkLive("MutView.Strides")
	return v.strides
}

// Dim returns the number of dimensions.
func (v *MutView[T]) Dim() int {
	return len(v.Shape())
}

// Size returns the total number of elements.
func (v *MutView[T]) Size() int {
	return v.Shape().NumElements()
}

// Data returns the borrowed storage window.
//
// WARNING: Modifications to the returned slice will modify the parent array.
func (v *MutView[T]) Data() []T {
	v.checkLive("MutView.Data")
	v.borrows.checkRead("MutView.Data")
	return v.data
}

// At returns the element at the given indices.
func (v *MutView[T]) At(indices ...int) T {
	v.checkLive("MutView.At")
	v.borrows.checkRead("MutView.At")
	return v.data[Index(indices).ToPos(v.shape, v.strides)]
}

// Set sets the element at the given indices.
func (v *MutView[T]) Set(value T, indices ...int) {
	*v.Ref(indices...) = value
}

// Ref returns a pointer to the element at the given indices.
func (v *MutView[T]) Ref(indices ...int) *T {
	v.checkLive("MutView.Ref")
	v.borrows.checkWrite("MutView.Ref")
	return &v.data[Index(indices).ToPos(v.shape, v.strides)]
}

// Slice borrows a read-only sub-view. The mutable view cannot be written
// until the sub-view is released.
func (v *MutView[T]) Slice(prefix ...int) *View[T] {
	v.checkLive("MutView.Slice")
	start, end := sliceWindow("MutView.Slice", v.shape, v.strides, prefix)
	v.borrows.acquireShared("MutView.Slice")
	return newView(&v.borrows, v.shape[len(prefix):], v.strides[len(prefix):], v.data[start:end:end])
}

// SliceMut re-borrows a mutable sub-view. The mutable view cannot be used
// until the sub-view is released.
func (v *MutView[T]) SliceMut(prefix ...int) *MutView[T] {
	v.checkLive("MutView.SliceMut")
	start, end := sliceWindow("MutView.SliceMut", v.shape, v.strides, prefix)
	v.borrows.acquireExclusive("MutView.SliceMut")
	return newMutView(&v.borrows, v.shape[len(prefix):], v.strides[len(prefix):], v.data[start:end:end])
}

// Assign copies other into the view. Panics if the shapes differ.
func (v *MutView[T]) Assign(other NDData[T]) {
	v.checkLive("MutView.Assign")
	v.borrows.checkWrite("MutView.Assign")
	checkSameShape("MutView.Assign", v.shape, other.Shape())
	assign(v.data, v.shape, v.strides, other)
}

// Transpose reverses the coordinate order of every element in place:
// new[i0, ..., in] = old[in, ..., i0]. The shape is unchanged, so every
// dimension must have the same length; otherwise Transpose panics.
func (v *MutView[T]) Transpose() {
	v.checkLive("MutView.Transpose")
	v.borrows.checkWrite("MutView.Transpose")
	transposeSquare("MutView.Transpose", v.data, v.shape, v.strides)
}

// Equal reports whether other has the same shape and the same elements.
func (v *MutView[T]) Equal(other NDData[T]) bool {
	return Equal[T](v, other)
}
