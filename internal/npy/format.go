package npy

import (
	"fmt"

	"github.com/born-ml/ndarray/internal/endian"
	"github.com/born-ml/ndarray/internal/tensor"
)

// Format constants.
const (
	Magic           = "\x93NUMPY"
	MagicSize       = 6
	HeaderAlignment = 16                // Preamble is padded to a multiple of 16 bytes
	maxHeaderV1     = 1<<16 - 1         // Largest header a uint16 length can describe
	maxHeaderSize   = 100 * 1024 * 1024 // Refuse to allocate headers larger than this
)

// ByteOrder is the on-disk byte order of multi-byte elements.
type ByteOrder int

// Supported byte orders.
const (
	LittleEndian ByteOrder = iota
	BigEndian
)

// NativeByteOrder returns the host's byte order.
func NativeByteOrder() ByteOrder {
	if endian.IsNativeLittleEndian() {
		return LittleEndian
	}
	return BigEndian
}

// String returns a human-readable byte order name.
func (o ByteOrder) String() string {
	switch o {
	case LittleEndian:
		return "little-endian"
	case BigEndian:
		return "big-endian"
	default:
		return "unknown"
	}
}

// engine returns the encoding engine for the byte order.
func (o ByteOrder) engine() endian.Engine {
	if o == BigEndian {
		return endian.Big()
	}
	return endian.Little()
}

// mark returns the descr prefix character for the byte order.
func (o ByteOrder) mark() byte {
	if o == BigEndian {
		return '>'
	}
	return '<'
}

// ParseByteOrder converts "<", ">", "|", "=" or a name ("little", "big",
// "native") into a ByteOrder.
func ParseByteOrder(s string) (ByteOrder, error) {
	switch s {
	case "<", "|", "little", "little-endian", "le":
		return LittleEndian, nil
	case ">", "big", "big-endian", "be":
		return BigEndian, nil
	case "=", "native":
		return NativeByteOrder(), nil
	default:
		return 0, fmt.Errorf("unknown byte order %q", s)
	}
}

// Header is the decoded .npy preamble.
type Header struct {
	Major     byte            // Format major version (1 or 2)
	Minor     byte            // Format minor version
	DType     tensor.DataType // On-disk element type
	ByteOrder ByteOrder       // On-disk byte order
	Order     tensor.Order    // Element order (fortran_order True = ColumnMajor)
	Shape     tensor.Shape    // Array shape
}

// Descr returns the header's descr string (e.g., "<f8").
func (h Header) Descr() string {
	code, ok := typeCode(h.DType)
	if !ok {
		return "?"
	}
	if h.DType.Size() == 1 {
		return "|" + code
	}
	return string(h.ByteOrder.mark()) + code
}

// DataSize returns the size of the element data in bytes.
func (h Header) DataSize() int64 {
	return int64(h.Shape.NumElements()) * int64(h.DType.Size())
}

// typeCode converts a tensor.DataType to its descr type code.
func typeCode(dt tensor.DataType) (string, bool) {
	switch dt {
	case tensor.Uint8:
		return "u1", true
	case tensor.Uint16:
		return "u2", true
	case tensor.Uint32:
		return "u4", true
	case tensor.Uint64:
		return "u8", true
	case tensor.Int8:
		return "i1", true
	case tensor.Int16:
		return "i2", true
	case tensor.Int32:
		return "i4", true
	case tensor.Int64:
		return "i8", true
	case tensor.Float32:
		return "f4", true
	case tensor.Float64:
		return "f8", true
	case tensor.Complex64:
		return "c8", true
	case tensor.Complex128:
		return "c16", true
	default:
		return "", false
	}
}

// parseTypeCode converts a descr type code to tensor.DataType.
func parseTypeCode(code string) (tensor.DataType, bool) {
	switch code {
	case "u1":
		return tensor.Uint8, true
	case "u2":
		return tensor.Uint16, true
	case "u4":
		return tensor.Uint32, true
	case "u8":
		return tensor.Uint64, true
	case "i1":
		return tensor.Int8, true
	case "i2":
		return tensor.Int16, true
	case "i4":
		return tensor.Int32, true
	case "i8":
		return tensor.Int64, true
	case "f4":
		return tensor.Float32, true
	case "f8":
		return tensor.Float64, true
	case "c8":
		return tensor.Complex64, true
	case "c16":
		return tensor.Complex128, true
	default:
		return 0, false
	}
}

// ParseDType accepts a type code ("f4"), a full descr ("<f4", whose byte order
// mark is ignored) or a type name ("float32").
func ParseDType(s string) (tensor.DataType, error) {
	if len(s) > 1 {
		switch s[0] {
		case '<', '>', '|', '=':
			s = s[1:]
		}
	}
	if dt, ok := parseTypeCode(s); ok {
		return dt, nil
	}
	for _, dt := range tensor.DataTypes {
		if dt.String() == s {
			return dt, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnsupportedDType, s)
}
