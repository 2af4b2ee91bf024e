package npy

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/born-ml/ndarray/internal/tensor"
)

// Header field delimiters. Fields are located by literal substrings rather
// than by a general dict parser.
const (
	descrStart   = "'descr': '"
	descrEnd     = "'"
	fortranStart = "'fortran_order': "
	fortranEnd   = ","
	shapeStart   = "'shape': ("
	shapeEnd     = ")"
)

// ReadHeader reads the preamble from r, leaving r positioned at the first
// element.
func ReadHeader(r io.Reader) (Header, error) {
	h, _, err := readHeader(r)
	return h, err
}

// readHeader reads the preamble and returns it with its total size in bytes.
func readHeader(r io.Reader) (Header, int64, error) {
	// Read magic bytes
	magic := make([]byte, MagicSize)
	if _, err := io.ReadFull(r, magic); err != nil {
		return Header{}, 0, fmt.Errorf("failed to read magic bytes: %w", err)
	}
	if string(magic) != Magic {
		return Header{}, 0, fmt.Errorf("%w: got %q", ErrInvalidMagic, magic)
	}

	// Read version
	var version [2]byte
	if _, err := io.ReadFull(r, version[:]); err != nil {
		return Header{}, 0, fmt.Errorf("failed to read version: %w", err)
	}

	// Read header length; its width depends on the major version
	var headerLen uint32
	preamble := int64(MagicSize + 2)
	switch version[0] {
	case 1:
		var n uint16
		if err := binary.Read(r, binary.LittleEndian, &n); err != nil {
			return Header{}, 0, fmt.Errorf("failed to read header length: %w", err)
		}
		headerLen = uint32(n)
		preamble += 2
	case 2:
		if err := binary.Read(r, binary.LittleEndian, &headerLen); err != nil {
			return Header{}, 0, fmt.Errorf("failed to read header length: %w", err)
		}
		preamble += 4
	default:
		return Header{}, 0, fmt.Errorf("%w: %d.%d (supported: 1.x, 2.x)", ErrUnsupportedVersion, version[0], version[1])
	}
	if headerLen > maxHeaderSize {
		return Header{}, 0, fmt.Errorf("%w: %d bytes", ErrHeaderTooLarge, headerLen)
	}

	// Read header text
	text := make([]byte, headerLen)
	if _, err := io.ReadFull(r, text); err != nil {
		return Header{}, 0, fmt.Errorf("failed to read header: %w", err)
	}
	if !utf8.Valid(text) {
		return Header{}, 0, fmt.Errorf("%w: header is not valid UTF-8", ErrInvalidHeader)
	}

	h, err := parseHeader(string(text))
	if err != nil {
		return Header{}, 0, err
	}
	h.Major, h.Minor = version[0], version[1]
	return h, preamble + int64(headerLen), nil
}

// parseHeader extracts descr, fortran_order and shape from the header text.
func parseHeader(text string) (Header, error) {
	var h Header

	descr, ok := extractBetween(text, descrStart, descrEnd)
	if !ok {
		return Header{}, &HeaderError{Field: "descr", Header: text, Err: ErrMissingField}
	}
	fortran, ok := extractBetween(text, fortranStart, fortranEnd)
	if !ok {
		return Header{}, &HeaderError{Field: "fortran_order", Header: text, Err: ErrMissingField}
	}
	shape, ok := extractBetween(text, shapeStart, shapeEnd)
	if !ok {
		return Header{}, &HeaderError{Field: "shape", Header: text, Err: ErrMissingField}
	}

	var err error
	if h.DType, h.ByteOrder, err = parseDescr(descr); err != nil {
		return Header{}, &HeaderError{Field: "descr", Header: text, Err: err}
	}

	switch strings.TrimSpace(fortran) {
	case "False":
		h.Order = tensor.RowMajor
	case "True":
		h.Order = tensor.ColumnMajor
	default:
		return Header{}, &HeaderError{
			Field:  "fortran_order",
			Header: text,
			Err:    fmt.Errorf("%w: fortran_order %q", ErrInvalidHeader, fortran),
		}
	}

	if h.Shape, err = parseShape(shape); err != nil {
		return Header{}, &HeaderError{Field: "shape", Header: text, Err: err}
	}
	// The element data must be addressable as one slice
	if n, _ := h.Shape.CheckedElements(); n > math.MaxInt/h.DType.Size() {
		return Header{}, &HeaderError{
			Field:  "shape",
			Header: text,
			Err:    fmt.Errorf("%w: %v elements of %s exceed the addressable size", ErrInvalidShape, []int(h.Shape), h.DType),
		}
	}
	return h, nil
}

// extractBetween returns the text between the first occurrence of start and
// the next occurrence of end after it.
func extractBetween(source, start, end string) (string, bool) {
	i := strings.Index(source, start)
	if i < 0 {
		return "", false
	}
	i += len(start)
	j := strings.Index(source[i:], end)
	if j < 0 {
		return "", false
	}
	return source[i : i+j], true
}

// parseDescr splits a descr into element type and byte order.
func parseDescr(descr string) (tensor.DataType, ByteOrder, error) {
	if len(descr) < 2 {
		return 0, 0, fmt.Errorf("%w: descr %q", ErrUnsupportedDType, descr)
	}
	order, err := ParseByteOrder(descr[:1])
	if err != nil {
		return 0, 0, fmt.Errorf("%w: descr %q: %v", ErrUnsupportedDType, descr, err)
	}
	dt, ok := parseTypeCode(descr[1:])
	if !ok {
		return 0, 0, fmt.Errorf("%w: descr %q", ErrUnsupportedDType, descr)
	}
	return dt, order, nil
}

// parseShape parses the inside of a shape tuple, e.g. "2, 3" or "5,".
func parseShape(s string) (tensor.Shape, error) {
	shape := tensor.Shape{}
	for _, tok := range strings.Split(s, ",") {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			continue
		}
		n, err := strconv.Atoi(tok)
		if err != nil {
			return nil, fmt.Errorf("%w: %q: %v", ErrInvalidShape, tok, err)
		}
		if n < 0 {
			return nil, fmt.Errorf("%w: negative dimension %d", ErrInvalidShape, n)
		}
		shape = append(shape, n)
	}
	if _, ok := shape.CheckedElements(); !ok {
		return nil, fmt.Errorf("%w: element count of %v overflows", ErrInvalidShape, []int(shape))
	}
	return shape, nil
}

// MarshalBinary encodes the preamble: magic, version, header length and the
// padded header text. Version 1.0 is used unless the header does not fit a
// uint16 length, in which case version 2.0 is used. The Major and Minor
// fields of h are ignored.
func (h Header) MarshalBinary() ([]byte, error) {
	code, ok := typeCode(h.DType)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedDType, h.DType)
	}
	if err := h.Shape.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidShape, err)
	}

	var dict strings.Builder
	dict.WriteString("{'descr': '")
	if h.DType.Size() == 1 {
		dict.WriteByte('|')
	} else {
		dict.WriteByte(h.ByteOrder.mark())
	}
	dict.WriteString(code)
	dict.WriteString("', 'fortran_order': ")
	if h.Order == tensor.ColumnMajor {
		dict.WriteString("True")
	} else {
		dict.WriteString("False")
	}
	dict.WriteString(", 'shape': (")
	for i, dim := range h.Shape {
		if i > 0 {
			dict.WriteString(", ")
		}
		dict.WriteString(strconv.Itoa(dim))
	}
	if len(h.Shape) == 1 {
		dict.WriteByte(',')
	}
	dict.WriteString("), }")
	text := dict.String()

	// Choose the version whose length field fits, then pad the whole preamble
	major, lenField := byte(1), 2
	if paddedLen(len(text), lenField) > maxHeaderV1 {
		major, lenField = 2, 4
	}
	headerLen := paddedLen(len(text), lenField)

	var buf bytes.Buffer
	buf.Grow(MagicSize + 2 + lenField + headerLen)
	buf.WriteString(Magic)
	buf.WriteByte(major)
	buf.WriteByte(0)
	if lenField == 2 {
		buf.Write(binary.LittleEndian.AppendUint16(nil, uint16(headerLen)))
	} else {
		buf.Write(binary.LittleEndian.AppendUint32(nil, uint32(headerLen)))
	}
	buf.WriteString(text)
	buf.WriteString(strings.Repeat(" ", headerLen-len(text)-1))
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

// paddedLen returns the header length (text, spaces and '\n') that makes the
// preamble a multiple of HeaderAlignment.
func paddedLen(textLen, lenField int) int {
	total := MagicSize + 2 + lenField + textLen + 1
	padding := (HeaderAlignment - total%HeaderAlignment) % HeaderAlignment
	return textLen + padding + 1
}

// WriteHeader writes the encoded preamble to w.
func WriteHeader(w io.Writer, h Header) error {
	pre, err := h.MarshalBinary()
	if err != nil {
		return err
	}
	if _, err := w.Write(pre); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	return nil
}
