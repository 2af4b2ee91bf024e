// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package npy reads and writes arrays in the NumPy .npy format and in .npz
// archives of .npy entries.
//
// Reading converts the stored elements to the requested element type:
//
//	a, err := npy.Load[float64]("weights.npy")
//	if err != nil {
//	    return err
//	}
//
// Writing defaults to the array's own element type, little-endian bytes and
// row-major element order. Options override each of them:
//
//	err := npy.Save[float64]("weights.npy", a,
//	    npy.WithDType(ndarray.Float32),
//	    npy.WithByteOrder(npy.BigEndian),
//	    npy.WithOrder(ndarray.ColumnMajor),
//	)
//
// Format versions 1.0 and 2.0 are supported. Version 2.0 is chosen when a
// header does not fit the 16-bit length field.
package npy
