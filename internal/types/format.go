// Package types provides the core data structures shared by the tag codecs,
// the field mapper and the public API.
package types

import (
	"fmt"
	"path/filepath"
	"slices"
	"strings"
)

// MetadataFormat identifies one binary tag format.
type MetadataFormat int

const (
	// FormatID3v1 is the fixed 128-byte trailer.
	FormatID3v1 MetadataFormat = iota + 1
	// FormatID3v2 is the frame-based header tag (2.3 and 2.4).
	FormatID3v2
	// FormatVorbis is the Vorbis comment block carried in FLAC.
	FormatVorbis
	// FormatRIFF is the LIST/INFO chunk carried in WAV.
	FormatRIFF
)

// AllFormats lists every metadata format.
var AllFormats = []MetadataFormat{FormatID3v1, FormatID3v2, FormatVorbis, FormatRIFF}

// String returns the canonical upper-case name of the format.
func (f MetadataFormat) String() string {
	switch f {
	case FormatID3v1:
		return "ID3V1"
	case FormatID3v2:
		return "ID3V2"
	case FormatVorbis:
		return "VORBIS"
	case FormatRIFF:
		return "RIFF"
	default:
		return fmt.Sprintf("MetadataFormat(%d)", int(f))
	}
}

// ParseMetadataFormat parses a format name case-insensitively.
func ParseMetadataFormat(s string) (MetadataFormat, error) {
	for _, f := range AllFormats {
		if strings.EqualFold(s, f.String()) {
			return f, nil
		}
	}
	return 0, fmt.Errorf("unknown metadata format %q", s)
}

// Container is an audio container type.
type Container int

const (
	// ContainerMP3 carries ID3v2 and ID3v1.
	ContainerMP3 Container = iota + 1
	// ContainerFLAC carries Vorbis comments, ID3v2 and ID3v1.
	ContainerFLAC
	// ContainerWAV carries RIFF INFO, ID3v2 and ID3v1.
	ContainerWAV
)

// String returns the container name.
func (c Container) String() string {
	switch c {
	case ContainerMP3:
		return "MP3"
	case ContainerFLAC:
		return "FLAC"
	case ContainerWAV:
		return "WAV"
	default:
		return fmt.Sprintf("Container(%d)", int(c))
	}
}

// Extensions returns the file extensions for this container.
func (c Container) Extensions() []string {
	switch c {
	case ContainerMP3:
		return []string{".mp3"}
	case ContainerFLAC:
		return []string{".flac"}
	case ContainerWAV:
		return []string{".wav"}
	default:
		return nil
	}
}

// Formats returns the applicable metadata formats in read priority order.
func (c Container) Formats() []MetadataFormat {
	switch c {
	case ContainerMP3:
		return []MetadataFormat{FormatID3v2, FormatID3v1}
	case ContainerFLAC:
		return []MetadataFormat{FormatVorbis, FormatID3v2, FormatID3v1}
	case ContainerWAV:
		return []MetadataFormat{FormatRIFF, FormatID3v2, FormatID3v1}
	default:
		return nil
	}
}

// DefaultFormat returns the format written when the caller does not pick one.
func (c Container) DefaultFormat() MetadataFormat {
	return c.Formats()[0]
}

// Supports reports whether format f may be carried by this container.
func (c Container) Supports(f MetadataFormat) bool {
	return slices.Contains(c.Formats(), f)
}

// DetectContainer determines the container type from the file extension.
func DetectContainer(path string) (Container, error) {
	ext := strings.ToLower(filepath.Ext(path))
	for _, c := range []Container{ContainerMP3, ContainerFLAC, ContainerWAV} {
		if slices.Contains(c.Extensions(), ext) {
			return c, nil
		}
	}
	return 0, &UnsupportedFileTypeError{Path: path, Extension: ext}
}

// Span is a half-open byte range [Start, End) within a file.
type Span struct {
	Start int64
	End   int64
}

// Len returns the number of bytes in the span.
func (s Span) Len() int64 {
	return s.End - s.Start
}
