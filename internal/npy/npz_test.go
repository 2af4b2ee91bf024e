package npy

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/zip"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/ndarray/internal/tensor"
)

func TestArchiveRoundTrip(t *testing.T) {
	weights := sample[float64]()
	labels := tensor.MustFromSlice(tensor.Shape{4}, []int32{3, 1, 4, 1})
	mask := tensor.New(tensor.Shape{2, 2, 2}, uint8(1))

	for _, c := range []Compression{CompressionStored, CompressionDeflate, CompressionZstd} {
		t.Run(c.String(), func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "arrays.npz")

			aw, err := CreateArchive(path, c)
			require.NoError(t, err)
			require.NoError(t, AddArray[float64](aw, "weights", weights, WithOrder(tensor.ColumnMajor)))
			require.NoError(t, AddArray[int32](aw, "labels.npy", labels, WithByteOrder(BigEndian)))
			require.NoError(t, AddArray[uint8](aw, "mask", mask))
			require.NoError(t, aw.Close())

			ar, err := OpenArchive(path)
			require.NoError(t, err)
			defer func() { _ = ar.Close() }()

			assert.Equal(t, []string{"labels", "mask", "weights"}, ar.Names())

			h, err := ar.ArchiveHeader("weights")
			require.NoError(t, err)
			assert.Equal(t, tensor.ColumnMajor, h.Order)
			assert.Equal(t, tensor.Shape{2, 3}, h.Shape)

			gotW, err := ReadArchiveArray[float64](ar, "weights")
			require.NoError(t, err)
			assert.True(t, weights.Equal(gotW))

			gotL, err := ReadArchiveArray[int32](ar, "labels.npy")
			require.NoError(t, err)
			assert.True(t, labels.Equal(gotL))

			gotM, err := ReadArchiveArray[uint8](ar, "mask")
			require.NoError(t, err)
			assert.True(t, mask.Equal(gotM))

			wantSum, err := Checksum[uint8](mask)
			require.NoError(t, err)
			gotSum, err := Checksum[uint8](gotM)
			require.NoError(t, err)
			assert.NoError(t, ValidateChecksum(gotSum, wantSum))
		})
	}
}

func TestArchiveErrors(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "errs.npz")
	a := sample[int16]()

	aw, err := CreateArchive(path, CompressionDeflate)
	require.NoError(t, err)
	require.NoError(t, AddArray[int16](aw, "a", a))
	assert.ErrorIs(t, AddArray[int16](aw, "a.npy", a), ErrDuplicateEntry)
	assert.Error(t, AddArray[int16](aw, "", a))
	require.NoError(t, aw.Close())
	assert.ErrorIs(t, AddArray[int16](aw, "b", a), ErrWriterClosed)

	ar, err := OpenArchive(path)
	require.NoError(t, err)
	defer func() { _ = ar.Close() }()

	_, err = ReadArchiveArray[int16](ar, "missing")
	assert.ErrorIs(t, err, ErrEntryNotFound)
	_, err = ar.ArchiveHeader("missing")
	assert.ErrorIs(t, err, ErrEntryNotFound)

	_, err = OpenArchive(filepath.Join(dir, "missing.npz"))
	assert.Error(t, err)
}

func TestParseCompression(t *testing.T) {
	for _, c := range []Compression{CompressionStored, CompressionDeflate, CompressionZstd} {
		got, err := ParseCompression(c.String())
		require.NoError(t, err)
		assert.Equal(t, c, got)
	}
	_, err := ParseCompression("lzma")
	assert.Error(t, err)
}

func TestArchiveEntryShorterThanHeader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "short.npz")

	f, err := os.Create(path)
	require.NoError(t, err)
	zw := zip.NewWriter(f)
	ew, err := zw.Create("big.npy")
	require.NoError(t, err)
	// 2^40 float64 elements declared, eight bytes present
	_, err = ew.Write(preamble("{'descr': '<f8', 'fortran_order': False, 'shape': (1099511627776,), }"))
	require.NoError(t, err)
	_, err = ew.Write(make([]byte, 8))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	require.NoError(t, f.Close())

	ar, err := OpenArchive(path)
	require.NoError(t, err)
	defer func() { _ = ar.Close() }()

	h, err := ar.ArchiveHeader("big")
	require.NoError(t, err)
	assert.Equal(t, tensor.Shape{1 << 40}, h.Shape)

	_, err = ReadArchiveArray[float64](ar, "big")
	assert.ErrorIs(t, err, ErrTruncatedData)
}
