// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package ndarray provides strided N-dimensional arrays of numeric elements.
//
// # Overview
//
// An Array owns contiguous row-major storage. Views borrow a window of it:
//   - Array[T]: owned array with shape-changing operations
//   - View[T], MutView[T]: read-only and read/write windows made by Slice
//   - Index and Walk: multi-dimensional index arithmetic in row-major or
//     column-major order
//   - Cast: numeric conversion between the supported element types
//
// # Basic Usage
//
//	import "github.com/born-ml/ndarray/ndarray"
//
//	func main() {
//	    a := ndarray.New(ndarray.Shape{3, 4}, float64(0))
//	    a.Set(1.5, 2, 3)
//
//	    row := a.Slice(2) // View of shape [4]
//	    fmt.Println(row.At(3))
//	    row.Release()
//
//	    a.Insert(1, 4, ndarray.New(ndarray.Shape{3, 1}, float64(9)))
//	    a.Transpose() // shape [5, 3]
//	}
//
// # Supported Data Types
//
// Elements may be any of uint8, uint16, uint32, uint64, int8, int16, int32,
// int64, float32, float64, complex64 and complex128.
//
// # Borrowing
//
// While a MutView is live its parent can be neither read nor written; while
// any View is live the parent cannot be written or reshaped. Violations panic.
// Release a view to check it back in.
package ndarray
