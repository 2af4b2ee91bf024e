package npy

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/born-ml/ndarray/internal/tensor"
)

// Decode reads a complete .npy stream from r into a new array of element type T.
// Elements are decoded as their on-disk type and converted with tensor.Cast.
// Decode never reads past the end of the element data, so several arrays can
// be decoded from one stream in sequence.
func Decode[T tensor.Scalar](r io.Reader) (*tensor.Array[T], Header, error) {
	h, err := ReadHeader(r)
	if err != nil {
		return nil, Header{}, err
	}
	payload, err := readPayload(r, h.DataSize())
	if err != nil {
		return nil, Header{}, err
	}
	a, err := decodeData[T](bytes.NewReader(payload), h)
	if err != nil {
		return nil, Header{}, err
	}
	return a, h, nil
}

// readPayload reads exactly size bytes from a stream of unknown length. The
// buffer grows with the bytes actually read, so a header that declares more
// data than the stream holds fails before the array is allocated.
func readPayload(r io.Reader, size int64) ([]byte, error) {
	payload, err := io.ReadAll(io.LimitReader(r, size))
	if err != nil {
		return nil, fmt.Errorf("failed to read element data: %w", err)
	}
	if int64(len(payload)) < size {
		return nil, fmt.Errorf("%w: got %d of %d data bytes", ErrTruncatedData, len(payload), size)
	}
	return payload, nil
}

// decodeData reads the element payload described by h. Callers must have
// checked that r holds h.DataSize() bytes.
func decodeData[T tensor.Scalar](r io.Reader, h Header) (*tensor.Array[T], error) {
	dec, err := decoderFor[T](h.DType, h.ByteOrder)
	if err != nil {
		return nil, err
	}
	if err := h.Shape.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidShape, err)
	}

	a := tensor.Zeros[T](h.Shape)
	br := bufio.NewReader(io.LimitReader(r, h.DataSize()))
	elem := make([]byte, h.DType.Size())
	err = tensor.Walk(h.Shape, h.Order, func(idx tensor.Index) error {
		if _, err := io.ReadFull(br, elem); err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
				return fmt.Errorf("%w: stopped at index %v", ErrTruncatedData, []int(idx))
			}
			return fmt.Errorf("failed to read element %v: %w", []int(idx), err)
		}
		a.Set(dec(elem), idx...)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return a, nil
}

// Reader reads a single array from a .npy file.
// The header is parsed when the file is opened.
type Reader struct {
	file       *os.File
	header     Header
	dataOffset int64 // Offset where element data starts
	closed     bool
}

// NewReader opens path and parses its header.
func NewReader(path string) (*Reader, error) {
	//nolint:gosec // G304: File path comes from user input, which is expected for array loading
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}

	h, offset, err := readHeader(file)
	if err != nil {
		_ = file.Close() // Best effort close on error
		return nil, fmt.Errorf("failed to parse header of %s: %w", path, err)
	}

	info, err := file.Stat()
	if err != nil {
		_ = file.Close()
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}
	if info.Size()-offset < h.DataSize() {
		_ = file.Close()
		return nil, fmt.Errorf("%w: %s has %d data bytes, header describes %d",
			ErrTruncatedData, path, info.Size()-offset, h.DataSize())
	}

	return &Reader{
		file:       file,
		header:     h,
		dataOffset: offset,
	}, nil
}

// Header returns the parsed header.
func (r *Reader) Header() Header {
	return r.header
}

// DataOffset returns the byte offset of the first element.
func (r *Reader) DataOffset() int64 {
	return r.dataOffset
}

// payload returns a reader over the element data.
func (r *Reader) payload() (io.Reader, error) {
	if r.closed {
		return nil, ErrReaderClosed
	}
	return io.NewSectionReader(r.file, r.dataOffset, r.header.DataSize()), nil
}

// Checksum returns the xxhash of the raw element data as stored on disk.
func (r *Reader) Checksum() (uint64, error) {
	p, err := r.payload()
	if err != nil {
		return 0, err
	}
	return ComputeChecksumReader(p)
}

// Close closes the underlying file.
func (r *Reader) Close() error {
	if r.closed {
		return nil
	}
	r.closed = true
	return r.file.Close()
}

// ReadArray decodes the file's array as element type T.
// It can be called more than once.
func ReadArray[T tensor.Scalar](r *Reader) (*tensor.Array[T], error) {
	p, err := r.payload()
	if err != nil {
		return nil, err
	}
	return decodeData[T](p, r.header)
}

// Load reads the .npy file at path as element type T.
//
// Example:
//
//	a, err := npy.Load[float64]("weights.npy")
func Load[T tensor.Scalar](path string) (*tensor.Array[T], error) {
	r, err := NewReader(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = r.Close() }()
	return ReadArray[T](r)
}
