// Package flac walks the metadata block chain of a FLAC stream and
// rewrites it. The stream may be preceded by an ID3v2 tag.
package flac

import (
	"bytes"
	"fmt"

	goflac "github.com/go-flac/go-flac"

	binutil "github.com/simonhull/audiotag/internal/binary"
	"github.com/simonhull/audiotag/internal/id3v2"
	"github.com/simonhull/audiotag/internal/types"
)

// Metadata block types.
const (
	BlockStreamInfo    = 0
	BlockPadding       = 1
	BlockApplication   = 2
	BlockSeekTable     = 3
	BlockVorbisComment = 4
	BlockCueSheet      = 5
	BlockPicture       = 6
)

const (
	magic           = "fLaC"
	blockHeaderSize = 4
)

// Block describes one metadata block in place.
type Block struct {
	Type   byte
	Last   bool
	Offset int64 // offset of the 4-byte block header
	Length int64 // payload length
}

// Span returns the bytes covered by the block, header included.
func (b Block) Span() types.Span {
	return types.Span{Start: b.Offset, End: b.Offset + blockHeaderSize + b.Length}
}

// Payload returns the block body within data.
func (b Block) Payload(data []byte) []byte {
	start := b.Offset + blockHeaderSize
	return data[start : start+b.Length]
}

// StreamStart returns the offset of the "fLaC" marker, skipping a leading
// ID3v2 tag.
func StreamStart(data []byte) (int64, bool) {
	var start int64
	if span, ok := (id3v2.Codec{}).Locate(data); ok {
		start = span.End
	}
	if !bytes.HasPrefix(data[start:], []byte(magic)) {
		return 0, false
	}
	return start, true
}

// IsFLAC reports whether data holds a FLAC stream.
func IsFLAC(data []byte) bool {
	_, ok := StreamStart(data)
	return ok
}

// Blocks walks the metadata block chain. The error is a
// *types.MalformedTagError reported against format when a block header or
// payload runs past the end of the data.
func Blocks(data []byte, format types.MetadataFormat) ([]Block, error) {
	start, ok := StreamStart(data)
	if !ok {
		return nil, types.ErrTagNotFound
	}

	sr := binutil.FromBytes(data, "FLAC")
	offset := start + int64(len(magic))
	var blocks []Block
	for {
		header, err := binutil.Read[uint32](sr, offset, "metadata block header")
		if err != nil {
			return nil, &types.MalformedTagError{Format: format, Offset: offset, Reason: "truncated block header", Err: err}
		}

		b := Block{
			Type:   byte((header >> 24) & 0x7F),
			Last:   header>>31 == 1,
			Offset: offset,
			Length: int64(header & 0x00FFFFFF),
		}
		if b.Span().End > sr.Size() {
			return nil, &types.MalformedTagError{
				Format: format,
				Offset: offset,
				Reason: fmt.Sprintf("block type %d of %d bytes overruns file", b.Type, b.Length),
			}
		}
		blocks = append(blocks, b)

		offset = b.Span().End
		if b.Last {
			return blocks, nil
		}
	}
}

// Find returns the first block of type typ.
func Find(data []byte, typ byte, format types.MetadataFormat) (Block, bool, error) {
	blocks, err := Blocks(data, format)
	if err != nil {
		return Block{}, false, err
	}
	for _, b := range blocks {
		if b.Type == typ {
			return b, true, nil
		}
	}
	return Block{}, false, nil
}

// ReplaceBlock removes every block of type typ and, when payload is not
// nil, inserts one new block where the first removed block stood (or
// after STREAMINFO when there was none). The ID3v2 prefix, the other
// blocks and the audio frames are kept as they are.
func ReplaceBlock(data []byte, typ byte, payload []byte) ([]byte, error) {
	start, ok := StreamStart(data)
	if !ok {
		return nil, fmt.Errorf("not a FLAC stream")
	}
	if payload != nil && len(payload) > 0xFFFFFF {
		return nil, fmt.Errorf("block of %d bytes exceeds FLAC limit", len(payload))
	}

	f, err := goflac.ParseBytes(bytes.NewReader(data[start:]))
	if err != nil {
		return nil, fmt.Errorf("parse FLAC stream: %w", err)
	}

	insertAt := -1
	kept := make([]*goflac.MetaDataBlock, 0, len(f.Meta)+1)
	for _, m := range f.Meta {
		if byte(m.Type) == typ {
			if insertAt < 0 {
				insertAt = len(kept)
			}
			continue
		}
		kept = append(kept, m)
	}

	if payload != nil {
		if insertAt < 0 {
			insertAt = min(1, len(kept))
		}
		block := &goflac.MetaDataBlock{Type: goflac.BlockType(typ), Data: payload}
		kept = append(kept[:insertAt], append([]*goflac.MetaDataBlock{block}, kept[insertAt:]...)...)
	}
	f.Meta = kept

	out := make([]byte, 0, len(data)+len(payload))
	out = append(out, data[:start]...)
	return append(out, f.Marshal()...), nil
}
