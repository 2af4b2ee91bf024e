// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package ndarray

import "github.com/born-ml/ndarray/internal/tensor"

// RawBuffer exposes array storage as bytes for compute collaborators such as
// linear algebra kernels and GPU devices.
//
// Example:
//
//	a := ndarray.New(ndarray.Shape{128, 128}, float32(1))
//	var buf ndarray.RawBuffer = a
//	upload(buf.RawBytes())
type RawBuffer = tensor.RawBuffer

// RawBufferMut adds write access to RawBuffer.
type RawBufferMut = tensor.RawBufferMut
