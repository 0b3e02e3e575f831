package id3v2

import (
	"fmt"
	"strings"

	binutil "github.com/simonhull/audiotag/internal/binary"
	"github.com/simonhull/audiotag/internal/types"
)

// Frame format flags. A frame carrying any of them is kept opaque.
const (
	v23FormatFlags = 0x00E0 // compression, encryption, grouping
	v24FormatFlags = 0x004F // grouping, compression, encryption, unsync, data length
)

// parseFrames walks the frames of a tag body starting at offset.
func parseFrames(body []byte, offset int64, major byte) ([]types.RawEntry, error) {
	sr := binutil.FromBytes(body, "ID3v2 frames")
	end := int64(len(body))

	var entries []types.RawEntry
	for offset+frameHeaderSize <= end {
		// Padding (null bytes) ends the frame list.
		if body[offset] == 0 {
			break
		}

		hdr, err := sr.Bytes(offset, frameHeaderSize, "frame header")
		if err != nil {
			return nil, malformed(headerSize+offset, "truncated frame header", err)
		}
		id := string(hdr[0:4])
		if !validFrameID(id) {
			return nil, malformed(headerSize+offset, fmt.Sprintf("invalid frame id %q", id), nil)
		}

		size := frameSize(body, offset, major)
		flags, _ := binutil.ReadBE[uint16](sr, offset+8, "frame flags")

		payload, err := sr.Bytes(offset+frameHeaderSize, int(size), "frame "+id)
		if err != nil {
			return nil, malformed(headerSize+offset, fmt.Sprintf("frame %s of %d bytes overruns tag", id, size), err)
		}

		entries = append(entries, decodeFrame(id, flags, payload, major))
		offset += frameHeaderSize + int64(size)
	}

	return entries, nil
}

// frameSize reads the size of the frame at offset. Sizes are plain
// big-endian. For ID3v2.4 a synchsafe reading is used instead when the
// plain one lands on an invalid frame boundary and the synchsafe one
// does not, as most 2.4 writers use synchsafe frame sizes.
func frameSize(body []byte, offset int64, major byte) uint32 {
	raw := body[offset+4 : offset+8]
	plain := uint32(raw[0])<<24 | uint32(raw[1])<<16 | uint32(raw[2])<<8 | uint32(raw[3])
	if major < 4 || !binutil.IsSynchsafe(raw) {
		return plain
	}
	synchsafe := binutil.DecodeSynchsafe(raw)
	if plain == synchsafe {
		return plain
	}
	next := func(size uint32) int64 { return offset + frameHeaderSize + int64(size) }
	if !frameBoundary(body, next(plain)) && frameBoundary(body, next(synchsafe)) {
		return synchsafe
	}
	return plain
}

// frameBoundary reports whether off is where a frame list may continue:
// the end of the body, padding, or another frame header.
func frameBoundary(body []byte, off int64) bool {
	switch {
	case off > int64(len(body)):
		return false
	case off == int64(len(body)):
		return true
	case body[off] == 0:
		return true
	case off+frameHeaderSize <= int64(len(body)):
		return validFrameID(string(body[off : off+4]))
	default:
		return false
	}
}

func validFrameID(id string) bool {
	if len(id) != 4 {
		return false
	}
	for _, c := range []byte(id) {
		if (c < 'A' || c > 'Z') && (c < '0' || c > '9') {
			return false
		}
	}
	return true
}

func hasFormatFlags(flags uint16, major byte) bool {
	if major >= 4 {
		return flags&v24FormatFlags != 0
	}
	return flags&v23FormatFlags != 0
}

// decodeFrame turns a frame into a raw entry. Frames that are not text,
// comment or lyrics frames are kept opaque.
func decodeFrame(id string, flags uint16, payload []byte, major byte) types.RawEntry {
	entry := types.RawEntry{ID: id, Flags: flags}
	opaque := func() types.RawEntry {
		entry.Payload = append([]byte{}, payload...)
		return entry
	}

	if hasFormatFlags(flags, major) || len(payload) == 0 || payload[0] > encUTF8 {
		return opaque()
	}
	enc := payload[0]
	entry.Encoding = enc
	data := payload[1:]

	switch {
	case id == "TXXX":
		// Format: [encoding][description\0][value]
		i := findNullTerminator(data, enc)
		if i < 0 {
			return opaque()
		}
		entry.Description = decodeText(data[:i], enc)
		entry.Values = decodeValues(data[i+len(terminator(enc)):], enc)

	case strings.HasPrefix(id, "T"):
		entry.Values = decodeValues(data, enc)

	case id == "COMM" || id == "USLT":
		// Format: [encoding][language(3)][description\0][text]
		if len(data) < 3 {
			return opaque()
		}
		entry.Language = string(data[:3])
		data = data[3:]
		i := findNullTerminator(data, enc)
		if i < 0 {
			entry.Values = []string{decodeText(data, enc)}
			break
		}
		entry.Description = decodeText(data[:i], enc)
		entry.Values = []string{decodeText(data[i+len(terminator(enc)):], enc)}

	default:
		return opaque()
	}

	return entry
}

// writeEntry encodes one entry as one or more frames. ID3v2.4 keeps
// several values in one NUL-separated frame; ID3v2.3 repeats the frame.
func writeEntry(w *binutil.SafeWriter, e types.RawEntry, major byte) error {
	if !validFrameID(e.ID) {
		return fmt.Errorf("invalid frame id %q", e.ID)
	}

	if e.Opaque() {
		return writeFrame(w, e.ID, e.Flags, e.Payload)
	}

	// Text is always re-encoded, so encoding-related flags are dropped.
	flags := e.Flags &^ v24FormatFlags &^ v23FormatFlags

	if major < 4 && len(e.Values) > 1 {
		for _, v := range e.Values {
			single := e
			single.Values = []string{v}
			if err := writeEntry(w, single, major); err != nil {
				return err
			}
		}
		return nil
	}

	payload, err := encodePayload(e, major)
	if err != nil {
		return err
	}
	return writeFrame(w, e.ID, flags, payload)
}

func encodePayload(e types.RawEntry, major byte) ([]byte, error) {
	enc := chooseEncoding(major, append([]string{e.Description}, e.Values...)...)
	term := terminator(enc)
	out := []byte{enc}

	appendText := func(s string) error {
		b, err := encodeText(s, enc)
		if err != nil {
			return err
		}
		out = append(out, b...)
		return nil
	}

	switch {
	case e.ID == "COMM" || e.ID == "USLT":
		lang := e.Language
		if len(lang) != 3 {
			lang = "eng"
		}
		out = append(out, lang...)
		if err := appendText(e.Description); err != nil {
			return nil, err
		}
		out = append(out, term...)
		if err := appendText(e.First()); err != nil {
			return nil, err
		}
		return append(out, term...), nil

	case e.ID == "TXXX":
		if err := appendText(e.Description); err != nil {
			return nil, err
		}
		out = append(out, term...)
	}

	for _, v := range e.Values {
		if err := appendText(v); err != nil {
			return nil, err
		}
		out = append(out, term...)
	}
	return out, nil
}

// writeFrame writes a frame header with a plain big-endian size, then the payload.
func writeFrame(w *binutil.SafeWriter, id string, flags uint16, payload []byte) error {
	if err := w.WriteString(id); err != nil {
		return err
	}
	if err := binutil.Write(w, uint32(len(payload))); err != nil {
		return err
	}
	if err := binutil.Write(w, flags); err != nil {
		return err
	}
	return w.WriteBytes(payload)
}
