package tensor

import "unsafe"

// RawBuffer is the contiguous-buffer contract consumed by external compute
// collaborators (dense linear algebra kernels, device backends).
type RawBuffer interface {
	// Shape returns the dimension lengths.
	Shape() Shape
	// Strides returns the row-major strides.
	Strides() []int
	// RawBytes returns the element storage reinterpreted as bytes.
	RawBytes() []byte
	// ByteSize returns len(RawBytes()).
	ByteSize() int
}

// RawBufferMut adds write access to the raw storage.
type RawBufferMut interface {
	RawBuffer
	// RawBytesMut returns the element storage as writable bytes.
	RawBytesMut() []byte
}

var (
	_ RawBufferMut = (*Array[float32])(nil)
	_ RawBufferMut = (*MutView[float32])(nil)
	_ RawBuffer    = (*View[float32])(nil)
)

// asBytes reinterprets a typed slice as bytes without copying.
func asBytes[T Scalar](data []T) []byte {
	if len(data) == 0 {
		return nil
	}
	size := len(data) * int(unsafe.Sizeof(data[0]))
	//nolint:gosec // unsafe.Slice for zero-copy hand-off, bounds checked by len(data)
	return unsafe.Slice((*byte)(unsafe.Pointer(&data[0])), size)
}

// RawBytes returns the array storage as bytes in host byte order.
// The slice aliases the array and is valid until the next shape-mutating
// operation.
func (a *Array[T]) RawBytes() []byte {
	a.borrows.checkRead("Array.RawBytes")
	return asBytes(a.data)
}

// RawBytesMut returns the array storage as writable bytes.
func (a *Array[T]) RawBytesMut() []byte {
	a.borrows.checkWrite("Array.RawBytesMut")
	return asBytes(a.data)
}

// ByteSize returns the total memory size in bytes.
func (a *Array[T]) ByteSize() int {
	return a.Size() * DataTypeOf[T]().Size()
}

// RawBytes returns the view's storage window as bytes.
func (v *View[T]) RawBytes() []byte {
	return asBytes(v.Data())
}

// ByteSize returns the size of the view's window in bytes.
func (v *View[T]) ByteSize() int {
	return v.Size() * DataTypeOf[T]().Size()
}

// RawBytes returns the view's storage window as bytes.
func (v *MutView[T]) RawBytes() []byte {
	return asBytes(v.Data())
}

// RawBytesMut returns the view's storage window as writable bytes.
func (v *MutView[T]) RawBytesMut() []byte {
	v.checkLive("MutView.RawBytesMut")
	v.borrows.checkWrite("MutView.RawBytesMut")
	return asBytes(v.data)
}

// ByteSize returns the size of the view's window in bytes.
func (v *MutView[T]) ByteSize() int {
	return v.Size() * DataTypeOf[T]().Size()
}
