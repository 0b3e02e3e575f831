// Package id3v2 implements the ID3v2.3 and ID3v2.4 tag codec.
//
// The tag sits at the start of the file. Its 10-byte header carries the
// version, flags and the size of everything after the header. Frames
// follow back to back until the size is used up or padding begins.
package id3v2

import (
	"bytes"
	"fmt"

	binutil "github.com/simonhull/audiotag/internal/binary"
	"github.com/simonhull/audiotag/internal/registry"
	"github.com/simonhull/audiotag/internal/types"
)

const (
	headerSize      = 10
	frameHeaderSize = 10
	footerSize      = 10
)

// Header flags.
const (
	flagUnsynchronisation = 0x80
	flagExtendedHeader    = 0x40
	flagFooter            = 0x10
)

// DefaultVersion is the major version used for new tags.
const DefaultVersion = 3

func init() {
	registry.Register(Codec{})
}

// Header represents an ID3v2 tag header.
type Header struct {
	Major    byte
	Revision byte
	Flags    byte
	Size     uint32 // bytes after the header, excluding any footer
}

// Codec is the ID3v2 registry entry.
type Codec struct{}

// Format implements registry.Codec.
func (Codec) Format() types.MetadataFormat {
	return types.FormatID3v2
}

// ReadHeader decodes the tag header at the start of data.
//
// Version 2.4 sizes are synchsafe; version 2.3 and below are plain
// big-endian. Some writers put a synchsafe size in a 2.3 header, so when
// the plain size does not end on a plausible boundary and the synchsafe
// reading does, the synchsafe reading is used.
func ReadHeader(data []byte) (Header, bool) {
	sr := binutil.FromBytes(data, "ID3v2")
	buf, err := sr.Bytes(0, headerSize, "ID3v2 header")
	if err != nil || string(buf[0:3]) != "ID3" {
		return Header{}, false
	}

	h := Header{Major: buf[3], Revision: buf[4], Flags: buf[5]}
	if h.Major == 0xFF || h.Revision == 0xFF {
		return Header{}, false
	}

	sizeBytes := buf[6:10]
	synchsafe := binutil.DecodeSynchsafe(sizeBytes)
	if h.Major >= 4 {
		h.Size = synchsafe
	} else {
		plain, _ := binutil.ReadBE[uint32](sr, 6, "ID3v2 size")
		h.Size = plain
		if plain != synchsafe && binutil.IsSynchsafe(sizeBytes) &&
			!plausibleEnd(data, h.end(plain)) && plausibleEnd(data, h.end(synchsafe)) {
			h.Size = synchsafe
		}
	}

	if h.end(h.Size) > int64(len(data)) {
		return Header{}, false
	}
	return h, true
}

// end returns the offset just past a tag of the given body size.
func (h Header) end(size uint32) int64 {
	end := int64(headerSize) + int64(size)
	if h.Major >= 4 && h.Flags&flagFooter != 0 {
		end += footerSize
	}
	return end
}

// plausibleEnd reports whether off looks like the first byte after a tag:
// end of file, padding, an audio frame sync, or another known marker.
func plausibleEnd(data []byte, off int64) bool {
	if off > int64(len(data)) {
		return false
	}
	if off == int64(len(data)) {
		return true
	}
	rest := data[off:]
	if len(rest) >= 2 && rest[0] == 0xFF && rest[1]&0xE0 == 0xE0 {
		return true
	}
	for _, marker := range []string{"fLaC", "RIFF", "TAG", "ID3"} {
		if bytes.HasPrefix(rest, []byte(marker)) {
			return true
		}
	}
	return false
}

// Locate implements registry.Codec. Tags of any version are located so
// that a rewrite strips them.
func (Codec) Locate(data []byte) (types.Span, bool) {
	h, ok := ReadHeader(data)
	if !ok {
		return types.Span{}, false
	}
	return types.Span{Start: 0, End: h.end(h.Size)}, true
}

// Parse implements registry.Codec. Only versions 2.3 and 2.4 are decoded;
// other versions read as absent.
func (Codec) Parse(data []byte) (*types.TagBlock, error) {
	h, ok := ReadHeader(data)
	if !ok || (h.Major != 3 && h.Major != 4) {
		return nil, types.ErrTagNotFound
	}

	body := data[headerSize : headerSize+int64(h.Size)]
	if h.Major == 3 && h.Flags&flagUnsynchronisation != 0 {
		body = removeUnsync(body)
	}

	start, err := skipExtendedHeader(body, h)
	if err != nil {
		return nil, err
	}

	block := &types.TagBlock{
		Format:   types.FormatID3v2,
		Major:    h.Major,
		Revision: h.Revision,
		Flags:    h.Flags,
		Size:     int64(h.Size),
	}

	entries, err := parseFrames(body, start, h.Major)
	if err != nil {
		return nil, err
	}
	block.Entries = entries
	return block, nil
}

// skipExtendedHeader returns the offset of the first frame in body.
func skipExtendedHeader(body []byte, h Header) (int64, error) {
	if h.Flags&flagExtendedHeader == 0 {
		return 0, nil
	}

	sr := binutil.FromBytes(body, "ID3v2 extended header")
	sizeBytes, err := sr.Bytes(0, 4, "extended header size")
	if err != nil {
		return 0, malformed(headerSize, "truncated extended header", err)
	}

	var skip int64
	if h.Major >= 4 {
		// ID3v2.4: synchsafe size including the size field itself
		skip = int64(binutil.DecodeSynchsafe(sizeBytes))
	} else {
		// ID3v2.3: plain size excluding the size field
		size, _ := binutil.ReadBE[uint32](sr, 0, "extended header size")
		skip = int64(size) + 4
	}
	if skip < 4 || skip > int64(len(body)) {
		return 0, malformed(headerSize, fmt.Sprintf("extended header size %d overruns tag", skip), nil)
	}
	return skip, nil
}

// Serialize implements registry.Codec. The block's Major selects the
// version; zero means DefaultVersion. When the frames fit in the block's
// declared Size the rest is zero padding, so the tag keeps its size;
// otherwise the tag grows to fit.
func (Codec) Serialize(block *types.TagBlock) ([]byte, error) {
	major := block.Major
	if major == 0 {
		major = DefaultVersion
	}
	if major != 3 && major != 4 {
		return nil, fmt.Errorf("cannot write ID3v2.%d", major)
	}

	var frames bytes.Buffer
	fw := binutil.NewSafeWriter(&frames)
	for _, e := range block.Entries {
		if err := writeEntry(fw, e, major); err != nil {
			return nil, fmt.Errorf("frame %s: %w", e.ID, err)
		}
	}

	if pad := block.Size - int64(frames.Len()); pad > 0 {
		frames.Write(make([]byte, pad))
	}

	size := uint32(frames.Len())
	if major >= 4 && size > binutil.MaxSynchsafe {
		return nil, fmt.Errorf("tag of %d bytes exceeds ID3v2.4 limit", size)
	}

	var out bytes.Buffer
	w := binutil.NewSafeWriter(&out)
	if err := w.WriteString("ID3"); err != nil {
		return nil, err
	}
	if err := w.WriteBytes([]byte{major, 0, 0}); err != nil {
		return nil, err
	}
	if major >= 4 {
		if err := w.WriteSynchsafe(size); err != nil {
			return nil, err
		}
	} else if err := binutil.Write(w, size); err != nil {
		return nil, err
	}
	if err := w.WriteBytes(frames.Bytes()); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

// Replace implements registry.Codec. The existing tag, if any, is cut from
// the front of the file and the new one is prepended.
func (c Codec) Replace(data []byte, block *types.TagBlock) ([]byte, error) {
	audio := data
	if span, ok := c.Locate(data); ok {
		audio = data[span.End:]
	}

	if block == nil || block.Len() == 0 {
		return bytes.Clone(audio), nil
	}

	tag, err := c.Serialize(block)
	if err != nil {
		return nil, err
	}

	out := make([]byte, 0, len(tag)+len(audio))
	out = append(out, tag...)
	return append(out, audio...), nil
}

// removeUnsync reverses tag-level unsynchronisation (0xFF 0x00 -> 0xFF).
func removeUnsync(b []byte) []byte {
	return bytes.ReplaceAll(b, []byte{0xFF, 0x00}, []byte{0xFF})
}

func malformed(offset int64, reason string, err error) error {
	return &types.MalformedTagError{
		Format: types.FormatID3v2,
		Offset: offset,
		Reason: reason,
		Err:    err,
	}
}
