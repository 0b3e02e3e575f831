package audiotag

import (
	"github.com/simonhull/audiotag/internal/types"
)

// MetadataFormat is an alias to types.MetadataFormat.
type MetadataFormat = types.MetadataFormat

// Metadata formats.
const (
	FormatID3v1  = types.FormatID3v1
	FormatID3v2  = types.FormatID3v2
	FormatVorbis = types.FormatVorbis
	FormatRIFF   = types.FormatRIFF
)

// Container is an alias to types.Container.
type Container = types.Container

// Audio containers.
const (
	ContainerMP3  = types.ContainerMP3
	ContainerFLAC = types.ContainerFLAC
	ContainerWAV  = types.ContainerWAV
)

// DetectContainer returns the container type named by the file extension.
// Unknown extensions fail with *UnsupportedFileTypeError.
func DetectContainer(path string) (Container, error) {
	return types.DetectContainer(path)
}

// ParseFormat parses a format name such as "id3v2" or "VORBIS".
func ParseFormat(s string) (MetadataFormat, error) {
	return types.ParseMetadataFormat(s)
}
