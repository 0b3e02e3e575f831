// Package id3v1 implements the ID3v1 and ID3v1.1 tag codec: a fixed
// 128-byte block at the end of the file.
package id3v1

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/text/encoding/charmap"

	binutil "github.com/simonhull/audiotag/internal/binary"
	"github.com/simonhull/audiotag/internal/genre"
	"github.com/simonhull/audiotag/internal/registry"
	"github.com/simonhull/audiotag/internal/types"
)

// TagSize is the fixed size of an ID3v1 tag.
const TagSize = 128

// Field identifiers used for raw entries.
const (
	FieldTitle   = "TITLE"
	FieldArtist  = "ARTIST"
	FieldAlbum   = "ALBUM"
	FieldYear    = "YEAR"
	FieldComment = "COMMENT"
	FieldTrack   = "TRACK"
	FieldGenre   = "GENRE"
)

// field is one fixed-width text slot.
type field struct {
	id     string
	offset int
	width  int
}

var textFields = []field{
	{FieldTitle, 3, 30},
	{FieldArtist, 33, 30},
	{FieldAlbum, 63, 30},
	{FieldYear, 93, 4},
}

const (
	commentOffset = 97
	trackOffset   = 126
	genreOffset   = 127
)

func init() {
	registry.Register(Codec{})
}

// Codec is the ID3v1 registry entry.
type Codec struct{}

// Format implements registry.Codec.
func (Codec) Format() types.MetadataFormat {
	return types.FormatID3v1
}

// Locate implements registry.Codec.
func (Codec) Locate(data []byte) (types.Span, bool) {
	if len(data) < TagSize {
		return types.Span{}, false
	}
	start := int64(len(data) - TagSize)
	if string(data[start:start+3]) != "TAG" {
		return types.Span{}, false
	}
	return types.Span{Start: start, End: int64(len(data))}, true
}

// Parse implements registry.Codec. The genre byte is reported in bracket
// form ("(17)"); 255 means no genre.
func (c Codec) Parse(data []byte) (*types.TagBlock, error) {
	span, ok := c.Locate(data)
	if !ok {
		return nil, types.ErrTagNotFound
	}

	sr := binutil.FromBytes(data[span.Start:span.End], "ID3v1")
	tag, err := sr.Bytes(0, TagSize, "ID3v1 tag")
	if err != nil {
		return nil, &types.MalformedTagError{Format: types.FormatID3v1, Offset: span.Start, Reason: "short tag", Err: err}
	}

	block := &types.TagBlock{Format: types.FormatID3v1, Size: TagSize}
	add := func(id, value string) {
		if value != "" {
			block.Entries = append(block.Entries, types.RawEntry{ID: id, Values: []string{value}})
		}
	}

	for _, f := range textFields {
		add(f.id, decodeField(tag[f.offset:f.offset+f.width]))
	}

	// ID3v1.1: a zero byte before the last comment byte marks a track number.
	commentWidth := 30
	if tag[trackOffset-1] == 0 && tag[trackOffset] != 0 {
		commentWidth = 28
		block.Revision = 1
	}
	add(FieldComment, decodeField(tag[commentOffset:commentOffset+commentWidth]))
	if block.Revision == 1 {
		add(FieldTrack, strconv.Itoa(int(tag[trackOffset])))
	}

	if code := tag[genreOffset]; code != genre.UnknownCode {
		add(FieldGenre, fmt.Sprintf("(%d)", code))
	}

	return block, nil
}

// Serialize implements registry.Codec. Text is written as ISO-8859-1 and
// truncated to the field width. A genre name missing from the legacy
// table is written as the unknown code.
func (Codec) Serialize(block *types.TagBlock) ([]byte, error) {
	tag := make([]byte, TagSize)
	copy(tag, "TAG")

	for _, f := range textFields {
		copy(tag[f.offset:f.offset+f.width], encodeField(block.GetFirst(f.id), f.width))
	}

	track := parseTrack(block.GetFirst(FieldTrack))
	if track > 0 {
		copy(tag[commentOffset:commentOffset+28], encodeField(block.GetFirst(FieldComment), 28))
		tag[trackOffset-1] = 0
		tag[trackOffset] = byte(track)
	} else {
		copy(tag[commentOffset:commentOffset+30], encodeField(block.GetFirst(FieldComment), 30))
	}

	tag[genreOffset] = byte(genreCode(block.GetFirst(FieldGenre)))
	return tag, nil
}

// Replace implements registry.Codec. The tag is always the last 128 bytes.
func (c Codec) Replace(data []byte, block *types.TagBlock) ([]byte, error) {
	audio := data
	if span, ok := c.Locate(data); ok {
		audio = data[:span.Start]
	}
	if block == nil || block.Len() == 0 {
		return bytes.Clone(audio), nil
	}

	tag, err := c.Serialize(block)
	if err != nil {
		return nil, err
	}
	out := make([]byte, 0, len(audio)+len(tag))
	out = append(out, audio...)
	return append(out, tag...), nil
}

// decodeField decodes a NUL- or space-padded Latin-1 field.
func decodeField(b []byte) string {
	if i := bytes.IndexByte(b, 0); i >= 0 {
		b = b[:i]
	}
	s, err := charmap.ISO8859_1.NewDecoder().Bytes(b)
	if err != nil {
		return strings.TrimSpace(string(b))
	}
	return strings.TrimSpace(string(s))
}

// encodeField encodes s as Latin-1, writing '?' for characters outside
// it, and truncates the result to width bytes.
func encodeField(s string, width int) []byte {
	s = strings.Map(func(r rune) rune {
		if r > 0xFF {
			return '?'
		}
		return r
	}, s)
	b, err := charmap.ISO8859_1.NewEncoder().Bytes([]byte(s))
	if err != nil {
		b = []byte(s)
	}
	if len(b) > width {
		b = b[:width]
	}
	return b
}

// parseTrack reads the leading number of "N" or "N/M", limited to a byte.
func parseTrack(s string) int {
	s, _, _ = strings.Cut(strings.TrimSpace(s), "/")
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 0 || n > 255 {
		return 0
	}
	return n
}

// genreCode accepts "(N)" or a table name.
func genreCode(s string) int {
	s = strings.TrimSpace(s)
	if s == "" {
		return genre.UnknownCode
	}
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		if n, err := strconv.Atoi(s[1 : len(s)-1]); err == nil && n >= 0 && n <= 255 {
			return n
		}
	}
	return genre.CodeOrUnknown(s)
}

// Truncate returns s as it would read back from a field of the given width.
func Truncate(s string, width int) string {
	return decodeField(encodeField(s, width))
}

