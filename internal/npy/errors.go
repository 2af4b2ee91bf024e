package npy

import (
	"errors"
	"fmt"
)

// Common errors.
var (
	ErrInvalidMagic       = errors.New("bad magic: not a npy file")
	ErrUnsupportedVersion = errors.New("unsupported format version")
	ErrHeaderTooLarge     = errors.New("header exceeds maximum size")
	ErrMissingField       = errors.New("header field missing")
	ErrInvalidHeader      = errors.New("invalid header")
	ErrInvalidShape       = errors.New("invalid shape")
	ErrUnsupportedDType   = errors.New("unsupported element type")
	ErrTruncatedData      = errors.New("element data shorter than header describes")
	ErrWriterClosed       = errors.New("writer is closed")
	ErrReaderClosed       = errors.New("reader is closed")
	ErrEntryNotFound      = errors.New("archive entry not found")
	ErrDuplicateEntry     = errors.New("duplicate archive entry")
	ErrChecksumMismatch   = errors.New("checksum mismatch: data may be corrupted")
)

// HeaderError describes a header field that could not be parsed.
type HeaderError struct {
	Field  string // Header field (e.g., "descr", "shape")
	Header string // Full header text
	Err    error  // Underlying sentinel or parse error
}

// Error implements the error interface.
func (e *HeaderError) Error() string {
	return fmt.Sprintf("%v: field %q in header %q", e.Err, e.Field, e.Header)
}

// Unwrap returns the underlying error.
func (e *HeaderError) Unwrap() error {
	return e.Err
}
