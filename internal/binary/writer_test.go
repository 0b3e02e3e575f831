package binary

import (
	"bytes"
	"testing"
)

func TestSafeWriter(t *testing.T) {
	buf := &bytes.Buffer{}
	sw := NewSafeWriter(buf)

	steps := []func() error{
		func() error { return sw.WriteString("RIFF") },
		func() error { return WriteLE[uint32](sw, 0x0A0B0C0D) },
		func() error { return Write[uint16](sw, 0x0102) },
		func() error { return Write[uint8](sw, 0xFF) },
		func() error { return sw.WriteSynchsafe(257) },
	}
	for i, step := range steps {
		if err := step(); err != nil {
			t.Fatalf("step %d: %v", i, err)
		}
	}

	want := []byte{
		'R', 'I', 'F', 'F',
		0x0D, 0x0C, 0x0B, 0x0A,
		0x01, 0x02,
		0xFF,
		0x00, 0x00, 0x02, 0x01,
	}
	if !bytes.Equal(buf.Bytes(), want) {
		t.Errorf("got % x, want % x", buf.Bytes(), want)
	}
	if sw.Offset() != int64(len(want)) {
		t.Errorf("offset = %d, want %d", sw.Offset(), len(want))
	}
}

func TestWriteEndian_Uint64(t *testing.T) {
	buf := &bytes.Buffer{}
	sw := NewSafeWriter(buf)

	if err := WriteEndian[uint64](sw, 0x0102030405060708, BigEndian); err != nil {
		t.Fatal(err)
	}
	if err := WriteEndian[uint64](sw, 0x0102030405060708, LittleEndian); err != nil {
		t.Fatal(err)
	}

	want := []byte{1, 2, 3, 4, 5, 6, 7, 8, 8, 7, 6, 5, 4, 3, 2, 1}
	if !bytes.Equal(buf.Bytes(), want) {
		t.Errorf("got % x, want % x", buf.Bytes(), want)
	}
}
