package npy

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/klauspost/compress/zip"
	"github.com/klauspost/compress/zstd"

	"github.com/born-ml/ndarray/internal/tensor"
)

// Compression identifies how archive entries are stored.
type Compression uint8

const (
	// CompressionStored writes entries uncompressed, like numpy.savez.
	CompressionStored Compression = iota

	// CompressionDeflate writes deflate entries, like numpy.savez_compressed.
	CompressionDeflate

	// CompressionZstd writes zstd entries (zip method 93). numpy cannot
	// read these archives.
	CompressionZstd
)

// npyExt is the entry suffix used for every array in an archive.
const npyExt = ".npy"

// String returns the name of the compression.
func (c Compression) String() string {
	switch c {
	case CompressionStored:
		return "stored"
	case CompressionDeflate:
		return "deflate"
	case CompressionZstd:
		return "zstd"
	default:
		return fmt.Sprintf("unknown(%d)", c)
	}
}

// ParseCompression parses a compression from its string representation.
func ParseCompression(name string) (Compression, error) {
	switch name {
	case "stored", "none", "":
		return CompressionStored, nil
	case "deflate":
		return CompressionDeflate, nil
	case "zstd":
		return CompressionZstd, nil
	default:
		return 0, fmt.Errorf("unknown compression: %q", name)
	}
}

func (c Compression) method() uint16 {
	switch c {
	case CompressionDeflate:
		return zip.Deflate
	case CompressionZstd:
		return zstd.ZipMethodWinZip
	default:
		return zip.Store
	}
}

// ArchiveWriter writes several named arrays into one .npz file.
type ArchiveWriter struct {
	file        *os.File
	zw          *zip.Writer
	compression Compression
	names       map[string]struct{}
	closed      bool
}

// CreateArchive creates the .npz file at path.
func CreateArchive(path string, compression Compression) (*ArchiveWriter, error) {
	//nolint:gosec // G304: File path comes from user input, which is expected for array saving
	file, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create file: %w", err)
	}
	zw := zip.NewWriter(file)
	if compression == CompressionZstd {
		zw.RegisterCompressor(zstd.ZipMethodWinZip, zstd.ZipCompressor())
	}
	return &ArchiveWriter{
		file:        file,
		zw:          zw,
		compression: compression,
		names:       make(map[string]struct{}),
	}, nil
}

// Close writes the archive directory and closes the file.
func (w *ArchiveWriter) Close() error {
	if w.closed {
		return nil
	}
	w.closed = true
	if err := w.zw.Close(); err != nil {
		_ = w.file.Close()
		return fmt.Errorf("failed to finish archive: %w", err)
	}
	return w.file.Close()
}

// AddArray encodes a as the entry name (stored as name.npy).
//
// Example:
//
//	aw, _ := npy.CreateArchive("arrays.npz", npy.CompressionDeflate)
//	_ = npy.AddArray(aw, "weights", w)
//	_ = aw.Close()
func AddArray[T tensor.Scalar](w *ArchiveWriter, name string, a tensor.NDData[T], opts ...Option) error {
	if w.closed {
		return ErrWriterClosed
	}
	name = strings.TrimSuffix(name, npyExt)
	if name == "" {
		return fmt.Errorf("archive entry name is empty")
	}
	if _, ok := w.names[name]; ok {
		return fmt.Errorf("%w: %q", ErrDuplicateEntry, name)
	}

	ew, err := w.zw.CreateHeader(&zip.FileHeader{
		Name:   name + npyExt,
		Method: w.compression.method(),
	})
	if err != nil {
		return fmt.Errorf("failed to create entry %q: %w", name, err)
	}
	if err := Encode(ew, a, opts...); err != nil {
		return fmt.Errorf("failed to encode entry %q: %w", name, err)
	}
	w.names[name] = struct{}{}
	return nil
}

// ArchiveReader reads named arrays from a .npz file.
type ArchiveReader struct {
	rc      *zip.ReadCloser
	entries map[string]*zip.File
}

// OpenArchive opens the .npz file at path. Entries compressed with zstd are
// readable as well as stored and deflate ones.
func OpenArchive(path string) (*ArchiveReader, error) {
	rc, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open archive: %w", err)
	}
	rc.RegisterDecompressor(zstd.ZipMethodWinZip, zstd.ZipDecompressor())

	entries := make(map[string]*zip.File, len(rc.File))
	for _, f := range rc.File {
		if !strings.HasSuffix(f.Name, npyExt) {
			continue
		}
		entries[strings.TrimSuffix(f.Name, npyExt)] = f
	}
	return &ArchiveReader{rc: rc, entries: entries}, nil
}

// Close closes the archive.
func (r *ArchiveReader) Close() error {
	return r.rc.Close()
}

// Names returns the array names in the archive, sorted.
func (r *ArchiveReader) Names() []string {
	names := make([]string, 0, len(r.entries))
	for name := range r.entries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (r *ArchiveReader) entry(name string) (*zip.File, error) {
	f, ok := r.entries[strings.TrimSuffix(name, npyExt)]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrEntryNotFound, name)
	}
	return f, nil
}

// ArchiveHeader returns the header of the named array without decoding its data.
func (r *ArchiveReader) ArchiveHeader(name string) (Header, error) {
	f, err := r.entry(name)
	if err != nil {
		return Header{}, err
	}
	src, err := f.Open()
	if err != nil {
		return Header{}, fmt.Errorf("failed to open entry %q: %w", name, err)
	}
	defer func() { _ = src.Close() }()

	h, err := ReadHeader(src)
	if err != nil {
		return Header{}, fmt.Errorf("entry %q: %w", name, err)
	}
	return h, nil
}

// ReadArchiveArray decodes the named array as element type T.
func ReadArchiveArray[T tensor.Scalar](r *ArchiveReader, name string) (*tensor.Array[T], error) {
	f, err := r.entry(name)
	if err != nil {
		return nil, err
	}
	src, err := f.Open()
	if err != nil {
		if errors.Is(err, zip.ErrAlgorithm) {
			return nil, fmt.Errorf("entry %q uses unsupported compression method %d: %w", name, f.Method, err)
		}
		return nil, fmt.Errorf("failed to open entry %q: %w", name, err)
	}
	defer func() { _ = src.Close() }()

	h, preamble, err := readHeader(src)
	if err != nil {
		return nil, fmt.Errorf("entry %q: %w", name, err)
	}
	if f.UncompressedSize64 < uint64(preamble)+uint64(h.DataSize()) { //nolint:gosec // G115: both are non-negative
		return nil, fmt.Errorf("%w: entry %q holds %d bytes, header describes %d",
			ErrTruncatedData, name, f.UncompressedSize64, preamble+h.DataSize())
	}
	payload, err := readPayload(src, h.DataSize())
	if err != nil {
		return nil, fmt.Errorf("entry %q: %w", name, err)
	}
	a, err := decodeData[T](bytes.NewReader(payload), h)
	if err != nil {
		return nil, fmt.Errorf("entry %q: %w", name, err)
	}
	return a, nil
}

