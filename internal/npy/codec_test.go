package npy

import (
	"bytes"
	"encoding/binary"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/ndarray/internal/tensor"
)

// sample returns the [2, 3] array with element (i, j) = i*3 + j*5.
func sample[T tensor.Scalar]() *tensor.Array[T] {
	return tensor.FromFunc(tensor.Shape{2, 3}, func(idx tensor.Index) T {
		return tensor.Cast[T](int64(idx[0]*3 + idx[1]*5))
	})
}

func roundTrip[T tensor.Scalar](t *testing.T) {
	t.Helper()
	for _, bo := range []ByteOrder{LittleEndian, BigEndian} {
		for _, order := range []tensor.Order{tensor.RowMajor, tensor.ColumnMajor} {
			name := tensor.DataTypeOf[T]().String() + "/" + bo.String() + "/" + order.String()
			t.Run(name, func(t *testing.T) {
				want := sample[T]()

				var buf bytes.Buffer
				require.NoError(t, Encode[T](&buf, want, WithByteOrder(bo), WithOrder(order)))

				got, h, err := Decode[T](&buf)
				require.NoError(t, err)
				assert.True(t, want.Equal(got), "decoded %v", got.Data())
				assert.Equal(t, tensor.DataTypeOf[T](), h.DType)
				assert.Equal(t, order, h.Order)
				assert.Equal(t, tensor.Shape{2, 3}, h.Shape)
				assert.Zero(t, buf.Len())
			})
		}
	}
}

func TestRoundTrip(t *testing.T) {
	roundTrip[uint8](t)
	roundTrip[uint16](t)
	roundTrip[uint32](t)
	roundTrip[uint64](t)
	roundTrip[int8](t)
	roundTrip[int16](t)
	roundTrip[int32](t)
	roundTrip[int64](t)
	roundTrip[float32](t)
	roundTrip[float64](t)
	roundTrip[complex64](t)
	roundTrip[complex128](t)
}

func TestEncodeLayout(t *testing.T) {
	a := sample[int32]()

	t.Run("row-major little-endian", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, Encode[int32](&buf, a))
		payload := buf.Bytes()[len(buf.Bytes())-24:]

		want := []int32{0, 5, 10, 3, 8, 13}
		for i, v := range want {
			assert.Equal(t, uint32(v), binary.LittleEndian.Uint32(payload[4*i:]))
		}
	})

	t.Run("column-major big-endian", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, Encode[int32](&buf, a, WithByteOrder(BigEndian), WithOrder(tensor.ColumnMajor)))
		assert.Contains(t, buf.String(), "'descr': '>i4', 'fortran_order': True, 'shape': (2, 3), }")
		payload := buf.Bytes()[len(buf.Bytes())-24:]

		want := []int32{0, 3, 5, 8, 10, 13}
		for i, v := range want {
			assert.Equal(t, uint32(v), binary.BigEndian.Uint32(payload[4*i:]))
		}
	})
}

func TestDecodeCasts(t *testing.T) {
	src := tensor.MustFromSlice(tensor.Shape{4}, []float64{1.7, -2.5, math.NaN(), 1e12})

	var buf bytes.Buffer
	require.NoError(t, Encode[float64](&buf, src))

	got, h, err := Decode[int32](&buf)
	require.NoError(t, err)
	assert.Equal(t, tensor.Float64, h.DType)
	assert.Equal(t, []int32{1, -2, 0, math.MaxInt32}, got.Data())
}

func TestEncodeWithDType(t *testing.T) {
	src := tensor.MustFromSlice(tensor.Shape{3}, []float64{0.5, 300, -1})

	var buf bytes.Buffer
	require.NoError(t, Encode[float64](&buf, src, WithDType(tensor.Uint8)))
	assert.Contains(t, buf.String(), "'descr': '|u1'")

	got, h, err := Decode[uint8](&buf)
	require.NoError(t, err)
	assert.Equal(t, tensor.Uint8, h.DType)
	assert.Equal(t, []uint8{0, 255, 0}, got.Data())
}

func TestComplexToReal(t *testing.T) {
	src := tensor.MustFromSlice(tensor.Shape{2}, []complex128{complex(1.5, 2), complex(-3, 4)})

	var buf bytes.Buffer
	require.NoError(t, Encode[complex128](&buf, src))

	got, _, err := Decode[float64](&buf)
	require.NoError(t, err)
	assert.Equal(t, []float64{1.5, -3}, got.Data())
}

func TestDecodeScalarAndEmpty(t *testing.T) {
	t.Run("rank 0", func(t *testing.T) {
		src := tensor.New(tensor.Shape{}, float32(4.25))

		var buf bytes.Buffer
		require.NoError(t, Encode[float32](&buf, src))
		assert.Contains(t, buf.String(), "'shape': ()")

		got, _, err := Decode[float32](&buf)
		require.NoError(t, err)
		assert.Equal(t, 0, got.Dim())
		assert.Equal(t, float32(4.25), got.At())
	})

	t.Run("zero-length dimension", func(t *testing.T) {
		src := tensor.Zeros[int16](tensor.Shape{3, 0})

		var buf bytes.Buffer
		require.NoError(t, Encode[int16](&buf, src))
		assert.Zero(t, buf.Len()%HeaderAlignment)

		got, _, err := Decode[int16](&buf)
		require.NoError(t, err)
		assert.Equal(t, tensor.Shape{3, 0}, got.Shape())
		assert.Equal(t, 0, got.Size())
	})
}

func TestDecodeTruncated(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Encode[float64](&buf, sample[float64]()))
	data := buf.Bytes()[:buf.Len()-3]

	_, _, err := Decode[float64](bytes.NewReader(data))
	assert.ErrorIs(t, err, ErrTruncatedData)
}

func TestDecodeDeclaredSizeBeyondStream(t *testing.T) {
	// 2^40 float64 elements declared, a few bytes present
	data := append(preamble("{'descr': '<f8', 'fortran_order': False, 'shape': (1099511627776,), }"), make([]byte, 100)...)

	_, _, err := Decode[float64](bytes.NewReader(data))
	assert.ErrorIs(t, err, ErrTruncatedData)
}

func TestDecodeOverflowingShape(t *testing.T) {
	data := append(preamble("{'descr': '|u1', 'fortran_order': False, 'shape': (4611686018427387904, 4), }"), 1, 2, 3, 4)

	_, _, err := Decode[uint8](bytes.NewReader(data))
	assert.ErrorIs(t, err, ErrInvalidShape)

	path := filepath.Join(t.TempDir(), "wrap.npy")
	require.NoError(t, os.WriteFile(path, data, 0o600))
	_, err = Load[uint8](path)
	assert.ErrorIs(t, err, ErrInvalidShape)
}

func TestDecodeBadMagic(t *testing.T) {
	_, _, err := Decode[float64](bytes.NewReader([]byte("PK\x03\x04 not an array file")))
	require.ErrorIs(t, err, ErrInvalidMagic)
	assert.Contains(t, err.Error(), "bad magic")
}

func TestDecodeSequence(t *testing.T) {
	a := sample[int64]()
	b := tensor.New(tensor.Shape{4}, uint16(9))

	var buf bytes.Buffer
	require.NoError(t, Encode[int64](&buf, a))
	require.NoError(t, Encode[uint16](&buf, b))

	gotA, _, err := Decode[int64](&buf)
	require.NoError(t, err)
	gotB, _, err := Decode[uint16](&buf)
	require.NoError(t, err)
	assert.True(t, a.Equal(gotA))
	assert.True(t, b.Equal(gotB))
}

func TestEncodeView(t *testing.T) {
	a := tensor.FromFunc(tensor.Shape{3, 2, 2}, func(idx tensor.Index) float32 {
		return float32(idx[0]*100 + idx[1]*10 + idx[2])
	})
	v := a.Slice(1)

	var buf bytes.Buffer
	require.NoError(t, Encode[float32](&buf, v))

	got, _, err := Decode[float32](&buf)
	require.NoError(t, err)
	assert.Equal(t, []float32{100, 101, 110, 111}, got.Data())
	assert.True(t, v.Equal(got))
	v.Release()
}

func TestSaveLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sample.npy")
	want := sample[float64]()

	require.NoError(t, Save[float64](path, want, WithOrder(tensor.ColumnMajor), WithByteOrder(BigEndian)))

	got, err := Load[float64](path)
	require.NoError(t, err)
	assert.True(t, want.Equal(got))

	t.Run("reader", func(t *testing.T) {
		r, err := NewReader(path)
		require.NoError(t, err)
		defer func() { _ = r.Close() }()

		h := r.Header()
		assert.Equal(t, ">f8", h.Descr())
		assert.Equal(t, tensor.ColumnMajor, h.Order)
		assert.Zero(t, r.DataOffset()%HeaderAlignment)

		first, err := ReadArray[float64](r)
		require.NoError(t, err)
		second, err := ReadArray[int32](r)
		require.NoError(t, err)
		assert.True(t, first.Equal(want))
		assert.Equal(t, []int32{0, 5, 10, 3, 8, 13}, second.Data())

		require.NoError(t, r.Close())
		_, err = ReadArray[float64](r)
		assert.ErrorIs(t, err, ErrReaderClosed)
		_, err = r.Checksum()
		assert.ErrorIs(t, err, ErrReaderClosed)
	})

	t.Run("writer holds one array", func(t *testing.T) {
		w, err := NewWriter(filepath.Join(dir, "once.npy"))
		require.NoError(t, err)
		require.NoError(t, WriteArray[float64](w, want))
		assert.Error(t, WriteArray[float64](w, want))
		require.NoError(t, w.Close())
		assert.ErrorIs(t, WriteArray[float64](w, want), ErrWriterClosed)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := Load[float64](filepath.Join(dir, "missing.npy"))
		assert.Error(t, err)
	})
}
