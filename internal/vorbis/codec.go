package vorbis

import (
	"errors"

	"github.com/simonhull/audiotag/internal/flac"
	"github.com/simonhull/audiotag/internal/registry"
	"github.com/simonhull/audiotag/internal/types"
)

func init() {
	registry.Register(Codec{})
}

// Codec is the VORBIS registry entry. It reads and writes the
// VORBIS_COMMENT block of a FLAC stream.
type Codec struct{}

// Format implements registry.Codec.
func (Codec) Format() types.MetadataFormat {
	return types.FormatVorbis
}

// Locate implements registry.Codec. The span covers the block header.
func (Codec) Locate(data []byte) (types.Span, bool) {
	b, ok, err := flac.Find(data, flac.BlockVorbisComment, types.FormatVorbis)
	if err != nil || !ok {
		return types.Span{}, false
	}
	return b.Span(), true
}

// Parse implements registry.Codec.
func (Codec) Parse(data []byte) (*types.TagBlock, error) {
	b, ok, err := flac.Find(data, flac.BlockVorbisComment, types.FormatVorbis)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, types.ErrTagNotFound
	}

	block, err := ParseComment(b.Payload(data))
	if err != nil {
		return nil, &types.MalformedTagError{
			Format: types.FormatVorbis,
			Offset: b.Offset,
			Reason: "invalid comment block",
			Err:    err,
		}
	}
	return block, nil
}

// Serialize implements registry.Codec. It returns the block payload
// without the FLAC block header.
func (Codec) Serialize(block *types.TagBlock) ([]byte, error) {
	return MarshalComment(block)
}

// Replace implements registry.Codec. Every existing comment block is
// dropped; a nil or empty block leaves none.
func (c Codec) Replace(data []byte, block *types.TagBlock) ([]byte, error) {
	if !flac.IsFLAC(data) {
		return nil, errors.New("comment blocks are only written to FLAC streams")
	}

	var payload []byte
	if block != nil && block.Len() > 0 {
		var err error
		if payload, err = c.Serialize(block); err != nil {
			return nil, err
		}
	}
	return flac.ReplaceBlock(data, flac.BlockVorbisComment, payload)
}
