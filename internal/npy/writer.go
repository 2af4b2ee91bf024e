package npy

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/born-ml/ndarray/internal/tensor"
)

// options controls how an array is written.
type options struct {
	dtype     *tensor.DataType
	byteOrder ByteOrder
	order     tensor.Order
}

// Option configures Encode and the writers.
type Option func(*options)

// WithDType stores elements as dt instead of the array's own element type.
// Values are converted with tensor.Cast.
func WithDType(dt tensor.DataType) Option {
	return func(o *options) { o.dtype = &dt }
}

// WithByteOrder sets the on-disk byte order (default little-endian).
func WithByteOrder(bo ByteOrder) Option {
	return func(o *options) { o.byteOrder = bo }
}

// WithOrder sets the element order (default row-major).
func WithOrder(order tensor.Order) Option {
	return func(o *options) { o.order = order }
}

func buildOptions(opts []Option) options {
	o := options{byteOrder: LittleEndian, order: tensor.RowMajor}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// headerFor returns the header describing a written with the given options.
func headerFor[T tensor.Scalar](a tensor.NDData[T], o options) Header {
	dt := tensor.DataTypeOf[T]()
	if o.dtype != nil {
		dt = *o.dtype
	}
	return Header{
		Major:     1,
		DType:     dt,
		ByteOrder: o.byteOrder,
		Order:     o.order,
		Shape:     a.Shape().Clone(),
	}
}

// Encode writes a as a complete .npy stream to w.
//
// Example:
//
//	err := npy.Encode(w, a, npy.WithByteOrder(npy.BigEndian), npy.WithOrder(tensor.ColumnMajor))
func Encode[T tensor.Scalar](w io.Writer, a tensor.NDData[T], opts ...Option) error {
	h := headerFor(a, buildOptions(opts))
	if err := WriteHeader(w, h); err != nil {
		return err
	}
	return encodeData(w, a, h)
}

// encodeData writes the element payload of a in the layout described by h.
func encodeData[T tensor.Scalar](w io.Writer, a tensor.NDData[T], h Header) error {
	enc, err := encoderFor[T](h.DType, h.ByteOrder)
	if err != nil {
		return err
	}

	bw := bufio.NewWriter(w)
	elem := make([]byte, 0, h.DType.Size())
	err = tensor.Walk(h.Shape, h.Order, func(idx tensor.Index) error {
		elem = enc(elem[:0], a.At(idx...))
		if _, err := bw.Write(elem); err != nil {
			return fmt.Errorf("failed to write element %v: %w", []int(idx), err)
		}
		return nil
	})
	if err != nil {
		return err
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("failed to write element data: %w", err)
	}
	return nil
}

// Writer writes a single array to a .npy file.
type Writer struct {
	file    *os.File
	opts    options
	written bool
	closed  bool
}

// NewWriter creates the file at path. The options apply to the array written
// with WriteArray.
func NewWriter(path string, opts ...Option) (*Writer, error) {
	//nolint:gosec // G304: File path comes from user input, which is expected for array saving
	file, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create file: %w", err)
	}
	return &Writer{
		file: file,
		opts: buildOptions(opts),
	}, nil
}

// Close closes the underlying file.
func (w *Writer) Close() error {
	if w.closed {
		return nil
	}
	w.closed = true
	return w.file.Close()
}

// WriteArray encodes a into the file. A .npy file holds one array, so a
// second call fails.
func WriteArray[T tensor.Scalar](w *Writer, a tensor.NDData[T]) error {
	if w.closed {
		return ErrWriterClosed
	}
	if w.written {
		return fmt.Errorf("array already written to %s", w.file.Name())
	}
	w.written = true

	h := headerFor(a, w.opts)
	if err := WriteHeader(w.file, h); err != nil {
		return err
	}
	return encodeData(w.file, a, h)
}

// Save writes a to a new .npy file at path.
// A failed write leaves a truncated file behind.
func Save[T tensor.Scalar](path string, a tensor.NDData[T], opts ...Option) error {
	w, err := NewWriter(path, opts...)
	if err != nil {
		return err
	}
	if err := WriteArray(w, a); err != nil {
		_ = w.Close()
		return err
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("failed to close file: %w", err)
	}
	return nil
}
