package audiotag

import (
	"github.com/simonhull/audiotag/internal/mapping"
	"github.com/simonhull/audiotag/internal/types"
)

// Key is a unified metadata key.
type Key = types.Key

// Unified metadata keys.
const (
	KeyTitle        = types.KeyTitle
	KeyArtists      = types.KeyArtists
	KeyAlbum        = types.KeyAlbum
	KeyAlbumArtists = types.KeyAlbumArtists
	KeyComposers    = types.KeyComposers
	KeyGenres       = types.KeyGenres
	KeyComment      = types.KeyComment
	KeyLyrics       = types.KeyLyrics
	KeyLanguage     = types.KeyLanguage
	KeyBPM          = types.KeyBPM
	KeyReleaseDate  = types.KeyReleaseDate
	KeyTrackNumber  = types.KeyTrackNumber
	KeyCopyright    = types.KeyCopyright
	KeyPublisher    = types.KeyPublisher
)

// Shape is the declared value type of a key.
type Shape = types.Shape

// Value shapes.
const (
	ShapeString = types.ShapeString
	ShapeList   = types.ShapeList
	ShapeInt    = types.ShapeInt
)

// Metadata is the unified view of a file's tags. Values are string,
// []string or int according to the key's shape.
type Metadata = types.Metadata

// RawEntry is one native field as stored in a tag.
type RawEntry = types.RawEntry

// AllKeys returns every unified key in display order.
func AllKeys() []Key {
	return append([]Key(nil), types.AllKeys...)
}

// ParseKey returns the key named s.
func ParseKey(s string) (Key, error) {
	return types.ParseKey(s)
}

// SupportsField reports whether format can store key.
func SupportsField(format MetadataFormat, key Key) bool {
	return mapping.Supports(format, key)
}

// SupportedFields lists the keys format can store.
func SupportedFields(format MetadataFormat) []Key {
	return mapping.SupportedKeys(format)
}
