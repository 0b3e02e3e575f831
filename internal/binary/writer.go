package binary

import (
	"io"
)

// SafeWriter wraps io.Writer with position tracking.
type SafeWriter struct {
	w      io.Writer
	offset int64
}

// NewSafeWriter creates a new SafeWriter.
func NewSafeWriter(w io.Writer) *SafeWriter {
	return &SafeWriter{w: w}
}

// Offset returns the current position (number of bytes written).
func (sw *SafeWriter) Offset() int64 {
	return sw.offset
}

// WriteBytes writes raw bytes to the underlying writer.
func (sw *SafeWriter) WriteBytes(b []byte) error {
	n, err := sw.w.Write(b)
	sw.offset += int64(n)
	return err
}

// WriteString writes a string as bytes to the underlying writer.
func (sw *SafeWriter) WriteString(s string) error {
	return sw.WriteBytes([]byte(s))
}

// WriteSynchsafe writes v as a 4-byte synchsafe integer.
func (sw *SafeWriter) WriteSynchsafe(v uint32) error {
	return sw.WriteBytes(EncodeSynchsafe(v))
}

// Write writes a value of type T in big-endian byte order.
// T must be uint8, uint16, uint32, or uint64.
func Write[T uint8 | uint16 | uint32 | uint64](sw *SafeWriter, val T) error {
	return WriteEndian(sw, val, BigEndian)
}

// WriteLE writes a value of type T in little-endian byte order.
// T must be uint8, uint16, uint32, or uint64.
func WriteLE[T uint8 | uint16 | uint32 | uint64](sw *SafeWriter, val T) error {
	return WriteEndian(sw, val, LittleEndian)
}

// WriteEndian writes a value of type T with the given byte order.
func WriteEndian[T uint8 | uint16 | uint32 | uint64](sw *SafeWriter, val T, endian Endianness) error {
	buf := make([]byte, sizeOf[T]())
	order := endian.order()

	var zero T
	switch any(zero).(type) {
	case uint8:
		buf[0] = byte(val)
	case uint16:
		order.PutUint16(buf, uint16(val))
	case uint32:
		order.PutUint32(buf, uint32(val))
	case uint64:
		order.PutUint64(buf, uint64(val))
	}

	return sw.WriteBytes(buf)
}
