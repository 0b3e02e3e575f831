// Package registry manages the tag codecs for each metadata format.
package registry

import (
	"sync"

	"github.com/simonhull/audiotag/internal/types"
)

// Codec is the contract every tag format implements. Codecs operate on the
// complete file contents held in memory.
type Codec interface {
	// Format returns the metadata format handled by the codec.
	Format() types.MetadataFormat

	// Locate returns the byte range of the tag block, or false when the
	// file carries none.
	Locate(data []byte) (types.Span, bool)

	// Parse decodes the tag block. It returns types.ErrTagNotFound when no
	// block is present and *types.MalformedTagError when the marker is
	// present but the structure is broken.
	Parse(data []byte) (*types.TagBlock, error)

	// Serialize encodes a block into its on-disk bytes.
	Serialize(block *types.TagBlock) ([]byte, error)

	// Replace returns the file contents with the tag block replaced by
	// block. A nil block removes the tag.
	Replace(data []byte, block *types.TagBlock) ([]byte, error)
}

var (
	mu     sync.RWMutex
	codecs = make(map[types.MetadataFormat]Codec)
)

// Register registers a codec for its format.
// This is called by format packages during initialization (init functions).
func Register(c Codec) {
	mu.Lock()
	defer mu.Unlock()
	codecs[c.Format()] = c
}

// Get returns the codec for a given format.
// Returns nil if no codec is registered for the format.
func Get(format types.MetadataFormat) Codec {
	mu.RLock()
	defer mu.RUnlock()
	return codecs[format]
}
