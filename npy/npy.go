// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package npy

import (
	"io"

	"github.com/born-ml/ndarray/internal/npy"
	"github.com/born-ml/ndarray/internal/tensor"
)

// Header describes a stored array.
type Header = npy.Header

// HeaderError reports a malformed header field.
type HeaderError = npy.HeaderError

// ByteOrder is the on-disk byte order of elements.
type ByteOrder = npy.ByteOrder

// Byte orders.
const (
	LittleEndian ByteOrder = npy.LittleEndian
	BigEndian    ByteOrder = npy.BigEndian
)

// Option configures how an array is written.
type Option = npy.Option

// Compression selects how .npz entries are stored.
type Compression = npy.Compression

// Archive compression methods.
const (
	CompressionStored  Compression = npy.CompressionStored
	CompressionDeflate Compression = npy.CompressionDeflate
	CompressionZstd    Compression = npy.CompressionZstd
)

// Reader reads one array from a .npy file.
type Reader = npy.Reader

// Writer writes one array to a .npy file.
type Writer = npy.Writer

// ArchiveReader reads arrays from a .npz archive.
type ArchiveReader = npy.ArchiveReader

// ArchiveWriter adds arrays to a .npz archive.
type ArchiveWriter = npy.ArchiveWriter

// Errors.
var (
	ErrInvalidMagic       = npy.ErrInvalidMagic
	ErrUnsupportedVersion = npy.ErrUnsupportedVersion
	ErrHeaderTooLarge     = npy.ErrHeaderTooLarge
	ErrMissingField       = npy.ErrMissingField
	ErrInvalidHeader      = npy.ErrInvalidHeader
	ErrInvalidShape       = npy.ErrInvalidShape
	ErrUnsupportedDType   = npy.ErrUnsupportedDType
	ErrTruncatedData      = npy.ErrTruncatedData
	ErrWriterClosed       = npy.ErrWriterClosed
	ErrReaderClosed       = npy.ErrReaderClosed
	ErrEntryNotFound      = npy.ErrEntryNotFound
	ErrDuplicateEntry     = npy.ErrDuplicateEntry
	ErrChecksumMismatch   = npy.ErrChecksumMismatch
)

// WithDType writes elements as dt instead of the array's element type.
func WithDType(dt tensor.DataType) Option { return npy.WithDType(dt) }

// WithByteOrder sets the on-disk byte order.
func WithByteOrder(bo ByteOrder) Option { return npy.WithByteOrder(bo) }

// WithOrder sets the on-disk element order.
func WithOrder(order tensor.Order) Option { return npy.WithOrder(order) }

// ParseByteOrder parses "little", "big" or "native".
func ParseByteOrder(s string) (ByteOrder, error) { return npy.ParseByteOrder(s) }

// ParseDType parses an element type name such as "float32".
func ParseDType(s string) (tensor.DataType, error) { return npy.ParseDType(s) }

// ParseCompression parses "stored", "deflate" or "zstd".
func ParseCompression(s string) (Compression, error) { return npy.ParseCompression(s) }

// ReadHeader reads and parses the preamble and header of a .npy stream.
func ReadHeader(r io.Reader) (Header, error) { return npy.ReadHeader(r) }

// WriteHeader writes the preamble and padded header for h.
func WriteHeader(w io.Writer, h Header) error { return npy.WriteHeader(w, h) }

// Decode reads a header and its elements from r, converting them to T.
func Decode[T tensor.Scalar](r io.Reader) (*tensor.Array[T], Header, error) {
	return npy.Decode[T](r)
}

// Encode writes a to w.
func Encode[T tensor.Scalar](w io.Writer, a tensor.NDData[T], opts ...Option) error {
	return npy.Encode(w, a, opts...)
}

// Load reads the array stored at path.
func Load[T tensor.Scalar](path string) (*tensor.Array[T], error) {
	return npy.Load[T](path)
}

// Save writes a to path, replacing any existing file.
func Save[T tensor.Scalar](path string, a tensor.NDData[T], opts ...Option) error {
	return npy.Save(path, a, opts...)
}

// NewReader opens path and reads its header.
func NewReader(path string) (*Reader, error) { return npy.NewReader(path) }

// ReadArray reads the elements of r's array as T.
func ReadArray[T tensor.Scalar](r *Reader) (*tensor.Array[T], error) {
	return npy.ReadArray[T](r)
}

// NewWriter creates path for writing one array.
func NewWriter(path string, opts ...Option) (*Writer, error) { return npy.NewWriter(path, opts...) }

// WriteArray writes a through w. A Writer accepts one array.
func WriteArray[T tensor.Scalar](w *Writer, a tensor.NDData[T]) error {
	return npy.WriteArray(w, a)
}

// CreateArchive creates a .npz archive at path.
func CreateArchive(path string, c Compression) (*ArchiveWriter, error) {
	return npy.CreateArchive(path, c)
}

// AddArray adds a to the archive as name.npy.
func AddArray[T tensor.Scalar](w *ArchiveWriter, name string, a tensor.NDData[T], opts ...Option) error {
	return npy.AddArray(w, name, a, opts...)
}

// OpenArchive opens the .npz archive at path.
func OpenArchive(path string) (*ArchiveReader, error) { return npy.OpenArchive(path) }

// ReadArchiveArray reads the named entry as T.
func ReadArchiveArray[T tensor.Scalar](r *ArchiveReader, name string) (*tensor.Array[T], error) {
	return npy.ReadArchiveArray[T](r, name)
}

// Checksum returns the xxhash64 of a's encoded element data.
func Checksum[T tensor.Scalar](a tensor.NDData[T], opts ...Option) (uint64, error) {
	return npy.Checksum(a, opts...)
}

// ValidateChecksum compares two checksums.
func ValidateChecksum(computed, stored uint64) error { return npy.ValidateChecksum(computed, stored) }

// MmapReader reads one array from a memory-mapped .npy file.
type MmapReader = npy.MmapReader

// NewMmapReader maps the file at path read-only and parses its header.
func NewMmapReader(path string) (*MmapReader, error) { return npy.NewMmapReader(path) }

// ReadMmapArray decodes the mapped array as element type T.
func ReadMmapArray[T tensor.Scalar](r *MmapReader) (*tensor.Array[T], error) {
	return npy.ReadMmapArray[T](r)
}
