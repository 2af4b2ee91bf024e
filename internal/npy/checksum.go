package npy

import (
	"io"

	"github.com/cespare/xxhash/v2"

	"github.com/born-ml/ndarray/internal/tensor"
)

// ComputeChecksum computes the xxhash64 checksum of data.
func ComputeChecksum(data []byte) uint64 {
	return xxhash.Sum64(data)
}

// ComputeChecksumReader computes the xxhash64 checksum from an io.Reader.
// This is useful for hashing large payloads without loading them into memory.
func ComputeChecksumReader(r io.Reader) (uint64, error) {
	h := xxhash.New()
	if _, err := io.Copy(h, r); err != nil {
		return 0, err
	}
	return h.Sum64(), nil
}

// ValidateChecksum compares a computed checksum against a stored one.
// Returns ErrChecksumMismatch if they don't match.
func ValidateChecksum(computed, stored uint64) error {
	if computed != stored {
		return ErrChecksumMismatch
	}
	return nil
}

// Checksum returns the checksum of the element data Encode would write for a
// with the same options. It equals Reader.Checksum of the saved file.
func Checksum[T tensor.Scalar](a tensor.NDData[T], opts ...Option) (uint64, error) {
	d := xxhash.New()
	if err := encodeData(d, a, headerFor(a, buildOptions(opts))); err != nil {
		return 0, err
	}
	return d.Sum64(), nil
}
