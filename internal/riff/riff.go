// Package riff implements the RIFF INFO codec for WAVE files.
//
// INFO fields live in a LIST chunk of type "INFO" at the top level of the
// RIFF chunk. Each field is a sub-chunk: a four-character ID, a
// little-endian size and a NUL-terminated string, padded to an even
// length.
package riff

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	goriff "github.com/go-audio/riff"

	binutil "github.com/simonhull/audiotag/internal/binary"
	"github.com/simonhull/audiotag/internal/id3v2"
	"github.com/simonhull/audiotag/internal/registry"
	"github.com/simonhull/audiotag/internal/types"
)

const chunkHeaderSize = 8

var (
	listID = [4]byte{'L', 'I', 'S', 'T'}
	infoID = [4]byte{'I', 'N', 'F', 'O'}
)

func init() {
	registry.Register(Codec{})
}

// chunk is a top-level chunk in place. End includes the pad byte.
type chunk struct {
	ID    [4]byte
	Start int64
	Size  int64
	End   int64
}

// container describes the RIFF chunk found in a file.
type container struct {
	Start  int64 // offset of "RIFF"
	End    int64 // end of the RIFF chunk, clipped to the data
	Chunks []chunk
}

// IsWAVE reports whether data holds a RIFF/WAVE stream, allowing for a
// leading ID3v2 tag.
func IsWAVE(data []byte) bool {
	_, err := walk(data)
	return err == nil
}

// walk lists the top-level chunks of the RIFF chunk. It stops at the
// declared RIFF size or the end of the data, whichever comes first.
func walk(data []byte) (*container, error) {
	var start int64
	if span, ok := (id3v2.Codec{}).Locate(data); ok {
		start = span.End
	}

	r := bytes.NewReader(data[start:])
	p := goriff.New(r)
	if err := p.ParseHeaders(); err != nil {
		return nil, types.ErrTagNotFound
	}
	if p.Format != goriff.WavFormatID {
		return nil, types.ErrTagNotFound
	}

	c := &container{
		Start: start,
		End:   min(start+chunkHeaderSize+int64(p.Size), int64(len(data))),
	}
	offset := start + chunkHeaderSize + 4
	for offset+chunkHeaderSize <= c.End {
		ch, err := p.NextChunk()
		if err != nil {
			break
		}

		size := int64(binary.LittleEndian.Uint32(data[offset+4:]))
		end := offset + chunkHeaderSize + size
		if end > c.End {
			if ch.ID == listID {
				return nil, &types.MalformedTagError{
					Format: types.FormatRIFF,
					Offset: offset,
					Reason: fmt.Sprintf("LIST chunk of %d bytes overruns RIFF chunk", size),
				}
			}
			// Streaming writers leave the data size unset; nothing useful follows.
			break
		}

		// The pad byte after an odd-sized chunk may be missing at the end.
		next := chunk{ID: ch.ID, Start: offset, Size: size, End: min(end+size%2, c.End)}
		c.Chunks = append(c.Chunks, next)

		offset = next.End
		if _, err := r.Seek(offset-start, io.SeekStart); err != nil {
			break
		}
	}
	return c, nil
}

// infoLists returns every top-level LIST chunk of type INFO.
func (c *container) infoLists(data []byte) []chunk {
	var lists []chunk
	for _, ch := range c.Chunks {
		if ch.ID != listID || ch.Size < 4 {
			continue
		}
		if bytes.Equal(data[ch.Start+chunkHeaderSize:ch.Start+chunkHeaderSize+4], infoID[:]) {
			lists = append(lists, ch)
		}
	}
	return lists
}

// Codec is the RIFF registry entry.
type Codec struct{}

// Format implements registry.Codec.
func (Codec) Format() types.MetadataFormat {
	return types.FormatRIFF
}

// Locate implements registry.Codec. The span covers the first INFO list.
func (Codec) Locate(data []byte) (types.Span, bool) {
	c, err := walk(data)
	if err != nil {
		return types.Span{}, false
	}
	lists := c.infoLists(data)
	if len(lists) == 0 {
		return types.Span{}, false
	}
	return types.Span{Start: lists[0].Start, End: lists[0].End}, true
}

// Parse implements registry.Codec.
func (Codec) Parse(data []byte) (*types.TagBlock, error) {
	c, err := walk(data)
	if err != nil {
		return nil, err
	}
	lists := c.infoLists(data)
	if len(lists) == 0 {
		return nil, types.ErrTagNotFound
	}

	list := lists[0]
	body := data[list.Start+chunkHeaderSize+4 : list.Start+chunkHeaderSize+list.Size]
	entries, err := parseInfo(body, list.Start+chunkHeaderSize+4)
	if err != nil {
		return nil, err
	}
	return &types.TagBlock{
		Format:  types.FormatRIFF,
		Size:    list.Size,
		Entries: entries,
	}, nil
}

// Serialize implements registry.Codec. It returns the complete LIST chunk.
func (Codec) Serialize(block *types.TagBlock) ([]byte, error) {
	var body bytes.Buffer
	w := binutil.NewSafeWriter(&body)
	if err := w.WriteBytes(infoID[:]); err != nil {
		return nil, err
	}
	for _, e := range block.Entries {
		for _, v := range e.Values {
			if err := writeField(w, e.ID, v); err != nil {
				return nil, fmt.Errorf("field %s: %w", e.ID, err)
			}
		}
	}

	var out bytes.Buffer
	cw := binutil.NewSafeWriter(&out)
	if err := cw.WriteBytes(listID[:]); err != nil {
		return nil, err
	}
	if err := binutil.WriteLE(cw, uint32(body.Len())); err != nil {
		return nil, err
	}
	if err := cw.WriteBytes(body.Bytes()); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

// Replace implements registry.Codec. Existing INFO lists are removed; the
// new list takes the place of the first one, or is appended to the end of
// the RIFF chunk. The RIFF size is updated to match.
func (c Codec) Replace(data []byte, block *types.TagBlock) ([]byte, error) {
	ct, err := walk(data)
	if err != nil {
		var malformed *types.MalformedTagError
		if errors.As(err, &malformed) {
			return nil, err
		}
		return nil, fmt.Errorf("not a RIFF/WAVE stream")
	}

	var list []byte
	if block != nil && block.Len() > 0 {
		if list, err = c.Serialize(block); err != nil {
			return nil, err
		}
	}

	lists := ct.infoLists(data)
	insertAt := ct.End
	if len(lists) > 0 {
		insertAt = lists[0].Start
	}

	out := make([]byte, 0, len(data)+len(list))
	pos := int64(0)
	for _, l := range lists {
		out = append(out, data[pos:l.Start]...)
		if l.Start == insertAt {
			out = append(out, list...)
		}
		pos = l.End
	}
	out = append(out, data[pos:ct.End]...)
	if len(lists) == 0 {
		// An odd-sized last chunk may be missing its pad byte.
		if (ct.End-ct.Start)%2 == 1 && len(list) > 0 {
			out = append(out, 0)
		}
		out = append(out, list...)
	}
	riffEnd := int64(len(out))
	out = append(out, data[ct.End:]...)

	size := riffEnd - ct.Start - chunkHeaderSize
	if size > 0xFFFFFFFF {
		return nil, fmt.Errorf("RIFF chunk of %d bytes exceeds format limit", size)
	}
	binary.LittleEndian.PutUint32(out[ct.Start+4:], uint32(size))
	return out, nil
}
