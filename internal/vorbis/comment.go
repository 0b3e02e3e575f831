// Package vorbis implements the Vorbis comment codec.
//
// A comment payload is a little-endian length-prefixed vendor string, a
// comment count, then that many length-prefixed "KEY=value" UTF-8 strings.
// Keys are case-insensitive and may repeat. In FLAC the payload is the body
// of the VORBIS_COMMENT metadata block.
package vorbis

import (
	"bytes"
	"fmt"
	"strings"

	binutil "github.com/simonhull/audiotag/internal/binary"
	"github.com/simonhull/audiotag/internal/types"
)

// DefaultVendor is written when a block carries no vendor string.
const DefaultVendor = "audiotag"

// ParseComment decodes a comment payload. Each comment becomes one entry
// with the key as spelled on disk. Comments without '=' are skipped.
func ParseComment(payload []byte) (*types.TagBlock, error) {
	sr := binutil.FromBytes(payload, "Vorbis comment")
	cr := binutil.NewChainReader(binutil.NewReaderLE(sr, 0))

	vendorLen := binutil.ReadChained[uint32](cr, "vendor length")
	if cr.Error() == nil && int64(vendorLen) > cr.Remaining() {
		return nil, fmt.Errorf("vendor length %d overruns block", vendorLen)
	}
	vendor := cr.String(int(vendorLen), "vendor string")
	count := binutil.ReadChained[uint32](cr, "comment count")
	if err := cr.Error(); err != nil {
		return nil, err
	}

	// Each comment needs at least its 4-byte length.
	if int64(count) > cr.Remaining()/4 {
		return nil, fmt.Errorf("comment count %d overruns block", count)
	}

	block := &types.TagBlock{
		Format: types.FormatVorbis,
		Vendor: vendor,
		Size:   int64(len(payload)),
	}
	for i := range count {
		n := binutil.ReadChained[uint32](cr, "comment length")
		if cr.Error() == nil && int64(n) > cr.Remaining() {
			return nil, fmt.Errorf("comment %d length %d overruns block", i, n)
		}
		comment := cr.String(int(n), "comment")
		if err := cr.Error(); err != nil {
			return nil, fmt.Errorf("comment %d: %w", i, err)
		}

		key, value, ok := strings.Cut(comment, "=")
		if !ok || key == "" {
			continue
		}
		block.Entries = append(block.Entries, types.RawEntry{ID: key, Values: []string{value}})
	}
	return block, nil
}

// MarshalComment encodes block as a comment payload. An entry with several
// values is written as one comment per value.
func MarshalComment(block *types.TagBlock) ([]byte, error) {
	vendor := block.Vendor
	if vendor == "" {
		vendor = DefaultVendor
	}

	var comments []string
	for _, e := range block.Entries {
		if e.ID == "" || strings.ContainsRune(e.ID, '=') {
			return nil, fmt.Errorf("invalid comment key %q", e.ID)
		}
		for _, v := range e.Values {
			comments = append(comments, e.ID+"="+v)
		}
	}

	var buf bytes.Buffer
	w := binutil.NewSafeWriter(&buf)
	if err := binutil.WriteLE(w, uint32(len(vendor))); err != nil {
		return nil, err
	}
	if err := w.WriteString(vendor); err != nil {
		return nil, err
	}
	if err := binutil.WriteLE(w, uint32(len(comments))); err != nil {
		return nil, err
	}
	for _, c := range comments {
		if err := binutil.WriteLE(w, uint32(len(c))); err != nil {
			return nil, err
		}
		if err := w.WriteString(c); err != nil {
			return nil, err
		}
	}
	return buf.Bytes(), nil
}
