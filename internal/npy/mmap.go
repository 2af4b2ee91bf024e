package npy

import (
	"bytes"
	"fmt"
	"os"

	"github.com/born-ml/ndarray/internal/tensor"
)

// MmapReader provides memory-mapped access to a .npy file.
// Only the header is parsed when the file is opened; element data is read
// through the OS page cache on demand.
type MmapReader struct {
	file       *os.File
	data       []byte // mmap'd region (read-only)
	size       int64
	header     Header
	dataOffset int64
	closed     bool
}

// NewMmapReader maps the file at path read-only and parses its header.
//
// Important: Always call Close() when done to unmap the file (use defer).
func NewMmapReader(path string) (*MmapReader, error) {
	//nolint:gosec // G304: File path comes from user input, which is expected for array loading
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}

	stat, err := file.Stat()
	if err != nil {
		_ = file.Close()
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}
	if stat.Size() == 0 {
		_ = file.Close()
		return nil, fmt.Errorf("%w: %s is empty", ErrInvalidMagic, path)
	}

	data, err := mmapFile(file, stat.Size())
	if err != nil {
		_ = file.Close()
		return nil, fmt.Errorf("mmap failed: %w", err)
	}

	r := &MmapReader{
		file: file,
		data: data,
		size: stat.Size(),
	}

	h, offset, err := readHeader(bytes.NewReader(data))
	if err != nil {
		_ = r.Close()
		return nil, fmt.Errorf("failed to parse header of %s: %w", path, err)
	}
	if r.size-offset < h.DataSize() {
		_ = r.Close()
		return nil, fmt.Errorf("%w: %s has %d data bytes, header describes %d",
			ErrTruncatedData, path, r.size-offset, h.DataSize())
	}
	r.header = h
	r.dataOffset = offset

	return r, nil
}

// Header returns the parsed header.
func (r *MmapReader) Header() Header {
	return r.header
}

// DataOffset returns the byte offset of the first element.
func (r *MmapReader) DataOffset() int64 {
	return r.dataOffset
}

// Data returns a zero-copy slice of the element data as stored on disk.
// The slice is valid only while the reader is open and must not be written.
func (r *MmapReader) Data() ([]byte, error) {
	if r.closed {
		return nil, ErrReaderClosed
	}
	return r.data[r.dataOffset : r.dataOffset+r.header.DataSize()], nil
}

// Checksum returns the xxhash of the element data.
func (r *MmapReader) Checksum() (uint64, error) {
	data, err := r.Data()
	if err != nil {
		return 0, err
	}
	return ComputeChecksum(data), nil
}

// Close unmaps and closes the file.
func (r *MmapReader) Close() error {
	if r.closed {
		return nil
	}
	r.closed = true

	var err error
	if r.data != nil {
		err = munmapFile(r.data)
		r.data = nil
	}

	if closeErr := r.file.Close(); closeErr != nil && err == nil {
		err = closeErr
	}

	return err
}

// ReadMmapArray decodes the mapped array as element type T.
// When the stored layout already matches T in native byte order and row-major
// order the element bytes are copied in one step.
func ReadMmapArray[T tensor.Scalar](r *MmapReader) (*tensor.Array[T], error) {
	data, err := r.Data()
	if err != nil {
		return nil, err
	}

	h := r.header
	if h.DType == tensor.DataTypeOf[T]() && h.Order == tensor.RowMajor &&
		(h.ByteOrder == NativeByteOrder() || h.DType.Size() == 1) {
		a := tensor.Zeros[T](h.Shape)
		copy(a.RawBytesMut(), data)
		return a, nil
	}
	return decodeData[T](bytes.NewReader(data), h)
}
