// Package binary provides bounds-checked binary reading and writing primitives
// for tag blocks held in memory.
package binary

import (
	"bytes"
	"errors"
	"fmt"
	"io"
)

// ErrOutOfBounds is wrapped by every read that falls outside the buffer.
var ErrOutOfBounds = errors.New("out of bounds")

// SafeReader wraps io.ReaderAt with bounds checking and helpful error messages.
type SafeReader struct {
	r    io.ReaderAt
	name string
	size int64
}

// NewSafeReader creates a new SafeReader. name identifies the data in errors.
func NewSafeReader(r io.ReaderAt, size int64, name string) *SafeReader {
	return &SafeReader{
		r:    r,
		size: size,
		name: name,
	}
}

// FromBytes creates a SafeReader over an in-memory buffer.
func FromBytes(data []byte, name string) *SafeReader {
	return NewSafeReader(bytes.NewReader(data), int64(len(data)), name)
}

// Name returns the label associated with this reader.
func (sr *SafeReader) Name() string {
	return sr.name
}

// Size returns the number of readable bytes.
func (sr *SafeReader) Size() int64 {
	return sr.size
}

// ReadAt reads bytes at the given offset with context for error messages.
func (sr *SafeReader) ReadAt(b []byte, off int64, what string) error {
	if off < 0 || off > sr.size || (off == sr.size && len(b) > 0) {
		return fmt.Errorf("%s: offset %d %w (size: %d) while reading %s",
			sr.name, off, ErrOutOfBounds, sr.size, what)
	}

	if off+int64(len(b)) > sr.size {
		return fmt.Errorf("%s: read of %d bytes at offset %d is %w of size %d while reading %s",
			sr.name, len(b), off, ErrOutOfBounds, sr.size, what)
	}

	if len(b) == 0 {
		return nil
	}

	n, err := sr.r.ReadAt(b, off)
	if err != nil && err != io.EOF {
		return fmt.Errorf("%s: failed to read %s at offset %d: %w", sr.name, what, off, err)
	}

	if n < len(b) {
		return fmt.Errorf("%s: short read for %s at offset %d: got %d bytes, expected %d",
			sr.name, what, off, n, len(b))
	}

	return nil
}

// Bytes reads n bytes at off into a new slice.
func (sr *SafeReader) Bytes(off int64, n int, what string) ([]byte, error) {
	if n < 0 {
		return nil, fmt.Errorf("%s: negative length %d for %s: %w", sr.name, n, what, ErrOutOfBounds)
	}
	buf := make([]byte, n)
	if err := sr.ReadAt(buf, off, what); err != nil {
		return nil, err
	}
	return buf, nil
}

// Read reads a big-endian value of type T from the given offset.
// T must be uint8, uint16, uint32, or uint64.
func Read[T uint8 | uint16 | uint32 | uint64](sr *SafeReader, off int64, what string) (T, error) {
	return ReadEndian[T](sr, off, what, BigEndian)
}

func sizeOf[T uint8 | uint16 | uint32 | uint64]() int {
	var zero T
	switch any(zero).(type) {
	case uint8:
		return 1
	case uint16:
		return 2
	case uint32:
		return 4
	default:
		return 8
	}
}

// Reader provides sequential reading with automatic offset tracking.
type Reader struct {
	*SafeReader
	offset int64
	endian Endianness
}

// NewReader creates a new big-endian Reader starting at the given offset.
func NewReader(sr *SafeReader, offset int64) *Reader {
	return &Reader{
		SafeReader: sr,
		offset:     offset,
		endian:     BigEndian,
	}
}

// NewReaderLE creates a new little-endian Reader starting at the given offset.
func NewReaderLE(sr *SafeReader, offset int64) *Reader {
	return &Reader{
		SafeReader: sr,
		offset:     offset,
		endian:     LittleEndian,
	}
}

// ReadValue reads a numeric value in the reader's byte order and advances the offset.
func ReadValue[T uint8 | uint16 | uint32 | uint64](r *Reader, what string) (T, error) {
	val, err := ReadEndian[T](r.SafeReader, r.offset, what, r.endian)
	if err != nil {
		var zero T
		return zero, err
	}

	r.offset += int64(sizeOf[T]())
	return val, nil
}

// ReadBytes reads n bytes and advances the offset.
func (r *Reader) ReadBytes(n int, what string) ([]byte, error) {
	buf, err := r.SafeReader.Bytes(r.offset, n, what)
	if err != nil {
		return nil, err
	}

	r.offset += int64(n)
	return buf, nil
}

// ReadString reads a string of the given length and advances the offset.
func (r *Reader) ReadString(length int, what string) (string, error) {
	buf, err := r.ReadBytes(length, what)
	if err != nil {
		return "", err
	}
	return string(buf), nil
}

// Skip advances the offset by n bytes.
func (r *Reader) Skip(n int64) {
	r.offset += n
}

// Offset returns the current offset.
func (r *Reader) Offset() int64 {
	return r.offset
}

// Remaining returns the number of bytes left after the current offset.
func (r *Reader) Remaining() int64 {
	return max(r.size-r.offset, 0)
}

// ChainReader allows chaining multiple reads with deferred error checking.
// Once a read fails, every later read returns a zero value.
type ChainReader struct {
	*Reader
	err error
}

// NewChainReader creates a new ChainReader.
func NewChainReader(r *Reader) *ChainReader {
	return &ChainReader{Reader: r}
}

// ReadChained reads a value with deferred error checking.
func ReadChained[T uint8 | uint16 | uint32 | uint64](cr *ChainReader, what string) T {
	if cr.err != nil {
		var zero T
		return zero
	}

	val, err := ReadValue[T](cr.Reader, what)
	if err != nil {
		cr.err = err
		var zero T
		return zero
	}

	return val
}

// Bytes reads n bytes, accumulating any error.
func (cr *ChainReader) Bytes(n int, what string) []byte {
	if cr.err != nil {
		return nil
	}

	val, err := cr.Reader.ReadBytes(n, what)
	if err != nil {
		cr.err = err
		return nil
	}

	return val
}

// String reads a string, accumulating any error.
func (cr *ChainReader) String(length int, what string) string {
	return string(cr.Bytes(length, what))
}

// Error returns the accumulated error, if any.
func (cr *ChainReader) Error() error {
	return cr.err
}
