// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package npy_test

import (
	"bytes"
	"errors"
	"path/filepath"
	"testing"

	"github.com/born-ml/ndarray/ndarray"
	"github.com/born-ml/ndarray/npy"
)

func TestSaveLoad(t *testing.T) {
	a := ndarray.FromFunc(ndarray.Shape{3, 2}, func(idx ndarray.Index) float64 {
		return float64(idx[0]) + float64(idx[1])/2
	})
	path := filepath.Join(t.TempDir(), "a.npy")

	if err := npy.Save[float64](path, a, npy.WithByteOrder(npy.BigEndian), npy.WithOrder(ndarray.ColumnMajor)); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	got, err := npy.Load[float64](path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !ndarray.Equal[float64](a, got) {
		t.Errorf("loaded array differs: %v", got)
	}

	// Decoding converts to the requested element type
	ints, err := npy.Load[int16](path)
	if err != nil {
		t.Fatalf("Load[int16] failed: %v", err)
	}
	if ints.At(2, 1) != 2 {
		t.Errorf("At(2, 1) = %d, want 2", ints.At(2, 1))
	}
}

func TestEncodeDecode(t *testing.T) {
	a := ndarray.MustFromSlice(ndarray.Shape{4}, []uint16{1, 2, 3, 65535})

	var buf bytes.Buffer
	if err := npy.Encode[uint16](&buf, a, npy.WithDType(ndarray.Uint8)); err != nil {
		t.Fatalf("Encode failed: %v", err)
	}

	got, h, err := npy.Decode[uint16](&buf)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if h.Descr() != "|u1" {
		t.Errorf("Descr() = %q, want |u1", h.Descr())
	}
	if got.At(3) != 255 {
		t.Errorf("At(3) = %d, want saturated 255", got.At(3))
	}

	_, err = npy.ReadHeader(bytes.NewReader([]byte("not a npy file at all")))
	if !errors.Is(err, npy.ErrInvalidMagic) {
		t.Errorf("ReadHeader error = %v, want ErrInvalidMagic", err)
	}
}

func TestArchive(t *testing.T) {
	path := filepath.Join(t.TempDir(), "arrays.npz")
	a := ndarray.New(ndarray.Shape{2, 2}, complex64(1+2i))

	aw, err := npy.CreateArchive(path, npy.CompressionZstd)
	if err != nil {
		t.Fatalf("CreateArchive failed: %v", err)
	}
	if err := npy.AddArray[complex64](aw, "z", a); err != nil {
		t.Fatalf("AddArray failed: %v", err)
	}
	if err := aw.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	ar, err := npy.OpenArchive(path)
	if err != nil {
		t.Fatalf("OpenArchive failed: %v", err)
	}
	defer func() { _ = ar.Close() }()

	got, err := npy.ReadArchiveArray[complex64](ar, "z")
	if err != nil {
		t.Fatalf("ReadArchiveArray failed: %v", err)
	}
	if !got.Equal(a) {
		t.Errorf("archive entry differs: %v", got)
	}

	want, _ := npy.Checksum[complex64](a)
	sum, _ := npy.Checksum[complex64](got)
	if err := npy.ValidateChecksum(sum, want); err != nil {
		t.Error(err)
	}
}
