package riff

import (
	"bytes"
	"fmt"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"

	binutil "github.com/simonhull/audiotag/internal/binary"
	"github.com/simonhull/audiotag/internal/types"
)

// parseInfo decodes the sub-chunks of an INFO list body. base is the file
// offset of body, used in error reports.
func parseInfo(body []byte, base int64) ([]types.RawEntry, error) {
	sr := binutil.FromBytes(body, "INFO list")
	r := binutil.NewReaderLE(sr, 0)

	var entries []types.RawEntry
	for r.Remaining() >= chunkHeaderSize {
		at := r.Offset()
		id, _ := r.ReadString(4, "field ID")
		size, _ := binutil.ReadValue[uint32](r, "field size")
		if !validID(id) {
			return nil, &types.MalformedTagError{
				Format: types.FormatRIFF,
				Offset: base + at,
				Reason: fmt.Sprintf("invalid field ID %q", id),
			}
		}

		value, err := r.ReadBytes(int(size), "field "+id)
		if err != nil {
			return nil, &types.MalformedTagError{
				Format: types.FormatRIFF,
				Offset: base + at,
				Reason: fmt.Sprintf("field %s of %d bytes overruns list", id, size),
				Err:    err,
			}
		}

		// Some writers omit the pad byte after odd-sized fields.
		if size%2 == 1 && r.Remaining() > 0 {
			if pad, _ := sr.Bytes(r.Offset(), 1, "pad"); pad[0] == 0 {
				r.Skip(1)
			}
		}

		entries = append(entries, types.RawEntry{ID: id, Values: []string{decodeValue(value)}})
	}
	return entries, nil
}

// validID reports whether id is four printable ASCII characters.
func validID(id string) bool {
	if len(id) != 4 {
		return false
	}
	for i := range 4 {
		if id[i] < 0x20 || id[i] > 0x7E {
			return false
		}
	}
	return true
}

// decodeValue trims the NUL terminator and anything after it. Values that
// are not valid UTF-8 are read as Latin-1.
func decodeValue(b []byte) string {
	if i := bytes.IndexByte(b, 0); i >= 0 {
		b = b[:i]
	}
	if utf8.Valid(b) {
		return string(b)
	}
	s, err := charmap.ISO8859_1.NewDecoder().Bytes(b)
	if err != nil {
		return string(b)
	}
	return string(s)
}

// writeField writes one sub-chunk with a NUL-terminated UTF-8 value.
func writeField(w *binutil.SafeWriter, id, value string) error {
	if !validID(id) {
		return fmt.Errorf("invalid field ID %q", id)
	}
	payload := append([]byte(value), 0)
	if err := w.WriteString(id); err != nil {
		return err
	}
	if err := binutil.WriteLE(w, uint32(len(payload))); err != nil {
		return err
	}
	if len(payload)%2 == 1 {
		payload = append(payload, 0)
	}
	return w.WriteBytes(payload)
}
