package types

import "fmt"

// Key is a unified metadata key shared by every tag format.
type Key string

// Unified metadata keys.
const (
	KeyTitle        Key = "title"
	KeyArtists      Key = "artists"
	KeyAlbum        Key = "album"
	KeyAlbumArtists Key = "album_artists"
	KeyComposers    Key = "composers"
	KeyGenres       Key = "genres_names"
	KeyComment      Key = "comment"
	KeyLyrics       Key = "lyrics"
	KeyLanguage     Key = "language"
	KeyBPM          Key = "bpm"
	KeyReleaseDate  Key = "release_date"
	KeyTrackNumber  Key = "track_number"
	KeyCopyright    Key = "copyright"
	KeyPublisher    Key = "publisher"
)

// AllKeys lists every unified key in display order.
var AllKeys = []Key{
	KeyTitle,
	KeyArtists,
	KeyAlbum,
	KeyAlbumArtists,
	KeyComposers,
	KeyGenres,
	KeyComment,
	KeyLyrics,
	KeyLanguage,
	KeyBPM,
	KeyReleaseDate,
	KeyTrackNumber,
	KeyCopyright,
	KeyPublisher,
}

// Shape is the declared value type of a key.
type Shape int

const (
	// ShapeString holds a single string.
	ShapeString Shape = iota
	// ShapeList holds []string.
	ShapeList
	// ShapeInt holds an int.
	ShapeInt
)

func (s Shape) String() string {
	switch s {
	case ShapeString:
		return "string"
	case ShapeList:
		return "[]string"
	case ShapeInt:
		return "int"
	default:
		return fmt.Sprintf("Shape(%d)", int(s))
	}
}

// Shape returns the declared value shape of the key.
func (k Key) Shape() Shape {
	switch k {
	case KeyArtists, KeyAlbumArtists, KeyComposers, KeyGenres:
		return ShapeList
	case KeyBPM, KeyTrackNumber:
		return ShapeInt
	default:
		return ShapeString
	}
}

// IsMultiValue reports whether the key holds a list.
func (k Key) IsMultiValue() bool {
	return k.Shape() == ShapeList
}

// Valid reports whether k is a known key.
func (k Key) Valid() bool {
	for _, known := range AllKeys {
		if k == known {
			return true
		}
	}
	return false
}

// ParseKey returns the key named s.
func ParseKey(s string) (Key, error) {
	if k := Key(s); k.Valid() {
		return k, nil
	}
	return "", fmt.Errorf("unknown metadata key %q", s)
}
