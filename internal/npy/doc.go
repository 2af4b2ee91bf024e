// Package npy reads and writes the NumPy array exchange format.
//
// A .npy file holds one array:
//
//	Format Structure:
//	  [6 bytes: Magic "\x93NUMPY"]
//	  [2 bytes: Version (major, minor)]
//	  [2 or 4 bytes: Header length (uint16 LE for v1, uint32 LE for v2)]
//	  [Header: Python dict literal, space padded, '\n' terminated]
//	  [Element data: one element per index, in the declared order]
//
// The header declares three fields:
//
//	{'descr': '<f8', 'fortran_order': False, 'shape': (2, 3), }
//
// descr is a byte order mark ('<', '>', '|' or '=') followed by a type code
// (u1 u2 u4 u8 i1 i2 i4 i8 f4 f8 c8 c16). fortran_order selects column-major
// element order. The whole preamble is padded to a multiple of 16 bytes.
//
// Elements are decoded as their on-disk type and converted to the requested
// in-memory type with tensor.Cast, so a file of int16 can be loaded as
// float64 and vice versa.
//
// A .npz file is a zip archive of .npy entries; see CreateArchive and
// OpenArchive.
//
// Example usage:
//
//	// Save an array as big-endian float32
//	a := tensor.New[float64](tensor.Shape{2, 3}, 1)
//	if err := npy.Save("a.npy", a, npy.WithDType(tensor.Float32), npy.WithByteOrder(npy.BigEndian)); err != nil {
//	    log.Fatal(err)
//	}
//
//	// Load it back as float64
//	b, err := npy.Load[float64]("a.npy")
//	if err != nil {
//	    log.Fatal(err)
//	}
package npy
