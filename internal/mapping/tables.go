package mapping

import (
	"github.com/simonhull/audiotag/internal/id3v1"
	"github.com/simonhull/audiotag/internal/id3v2"
	"github.com/simonhull/audiotag/internal/types"
)

// ID3v2 date frames. TDRC replaced TYER in version 2.4.
const (
	frameRecordingTime = "TDRC"
	frameYear          = "TYER"
)

// tables maps each format's supported keys to native field identifiers.
var tables = map[types.MetadataFormat]map[types.Key]string{
	types.FormatID3v1: {
		types.KeyTitle:       id3v1.FieldTitle,
		types.KeyArtists:     id3v1.FieldArtist,
		types.KeyAlbum:       id3v1.FieldAlbum,
		types.KeyGenres:      id3v1.FieldGenre,
		types.KeyComment:     id3v1.FieldComment,
		types.KeyReleaseDate: id3v1.FieldYear,
		types.KeyTrackNumber: id3v1.FieldTrack,
	},
	types.FormatID3v2: {
		types.KeyTitle:        "TIT2",
		types.KeyArtists:      "TPE1",
		types.KeyAlbum:        "TALB",
		types.KeyAlbumArtists: "TPE2",
		types.KeyComposers:    "TCOM",
		types.KeyGenres:       "TCON",
		types.KeyComment:      "COMM",
		types.KeyLyrics:       "USLT",
		types.KeyLanguage:     "TLAN",
		types.KeyBPM:          "TBPM",
		types.KeyReleaseDate:  frameRecordingTime,
		types.KeyTrackNumber:  "TRCK",
		types.KeyCopyright:    "TCOP",
		types.KeyPublisher:    "TPUB",
	},
	types.FormatVorbis: {
		types.KeyTitle:        "TITLE",
		types.KeyArtists:      "ARTIST",
		types.KeyAlbum:        "ALBUM",
		types.KeyAlbumArtists: "ALBUMARTIST",
		types.KeyComposers:    "COMPOSER",
		types.KeyGenres:       "GENRE",
		types.KeyComment:      "COMMENT",
		types.KeyLyrics:       "LYRICS",
		types.KeyLanguage:     "LANGUAGE",
		types.KeyBPM:          "BPM",
		types.KeyReleaseDate:  "DATE",
		types.KeyTrackNumber:  "TRACKNUMBER",
		types.KeyCopyright:    "COPYRIGHT",
		types.KeyPublisher:    "PUBLISHER",
	},
	types.FormatRIFF: {
		types.KeyTitle:       "INAM",
		types.KeyArtists:     "IART",
		types.KeyAlbum:       "IPRD",
		types.KeyGenres:      "IGNR",
		types.KeyComment:     "ICMT",
		types.KeyLyrics:      "ILYT",
		types.KeyLanguage:    "ILNG",
		types.KeyReleaseDate: "ICRD",
		types.KeyTrackNumber: "ITRK",
		types.KeyCopyright:   "ICOP",
	},
}

// Supports reports whether format can store key.
func Supports(format types.MetadataFormat, key types.Key) bool {
	_, ok := tables[format][key]
	return ok
}

// SupportedKeys lists the keys format can store, in display order.
func SupportedKeys(format types.MetadataFormat) []types.Key {
	var keys []types.Key
	for _, k := range types.AllKeys {
		if Supports(format, k) {
			keys = append(keys, k)
		}
	}
	return keys
}

// NativeID returns the field identifier format uses for key. For ID3v2
// the release date frame depends on the major version.
func NativeID(format types.MetadataFormat, key types.Key, major byte) (string, bool) {
	id, ok := tables[format][key]
	if !ok {
		return "", false
	}
	if major == 0 {
		major = id3v2.DefaultVersion
	}
	if format == types.FormatID3v2 && key == types.KeyReleaseDate && major < 4 {
		return frameYear, true
	}
	return id, true
}
