package types

import (
	"errors"
	"slices"
	"testing"
)

func TestContainer_Formats(t *testing.T) {
	tests := []struct {
		path     string
		want     Container
		formats  []MetadataFormat
		fallback MetadataFormat
	}{
		{"song.mp3", ContainerMP3, []MetadataFormat{FormatID3v2, FormatID3v1}, FormatID3v2},
		{"Song.FLAC", ContainerFLAC, []MetadataFormat{FormatVorbis, FormatID3v2, FormatID3v1}, FormatVorbis},
		{"/music/take.wav", ContainerWAV, []MetadataFormat{FormatRIFF, FormatID3v2, FormatID3v1}, FormatRIFF},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			c, err := DetectContainer(tt.path)
			if err != nil {
				t.Fatalf("DetectContainer() error = %v", err)
			}
			if c != tt.want {
				t.Errorf("DetectContainer() = %s, want %s", c, tt.want)
			}
			if !slices.Equal(c.Formats(), tt.formats) {
				t.Errorf("Formats() = %v, want %v", c.Formats(), tt.formats)
			}
			if c.DefaultFormat() != tt.fallback {
				t.Errorf("DefaultFormat() = %s, want %s", c.DefaultFormat(), tt.fallback)
			}
		})
	}
}

func TestContainer_Supports(t *testing.T) {
	if ContainerMP3.Supports(FormatVorbis) {
		t.Error("MP3 should not support VORBIS")
	}
	if ContainerMP3.Supports(FormatRIFF) {
		t.Error("MP3 should not support RIFF")
	}
	if !ContainerWAV.Supports(FormatID3v1) {
		t.Error("WAV should support ID3V1")
	}
}

func TestDetectContainer_Unsupported(t *testing.T) {
	for _, path := range []string{"cover.jpg", "noext", "book.m4b"} {
		_, err := DetectContainer(path)
		var target *UnsupportedFileTypeError
		if !errors.As(err, &target) {
			t.Errorf("DetectContainer(%q) error = %v, want *UnsupportedFileTypeError", path, err)
		}
	}
}

func TestParseMetadataFormat(t *testing.T) {
	for _, f := range AllFormats {
		got, err := ParseMetadataFormat(f.String())
		if err != nil || got != f {
			t.Errorf("ParseMetadataFormat(%q) = %v, %v", f.String(), got, err)
		}
	}
	if got, err := ParseMetadataFormat("vorbis"); err != nil || got != FormatVorbis {
		t.Errorf("ParseMetadataFormat(vorbis) = %v, %v", got, err)
	}
	if _, err := ParseMetadataFormat("APE"); err == nil {
		t.Error("ParseMetadataFormat(APE) should fail")
	}
}

func TestErrors_Messages(t *testing.T) {
	cause := errors.New("short read")
	tests := []struct {
		err  error
		want string
	}{
		{&FormatNotSupportedError{Container: ContainerMP3, Format: FormatVorbis}, "format VORBIS is not supported by MP3 files"},
		{&FieldNotSupportedError{Format: FormatID3v1, Key: KeyLyrics}, "field lyrics is not supported by format ID3V1"},
		{&InvalidMetadataTypeError{Key: KeyBPM, Want: ShapeInt, Got: "120"}, "invalid value for bpm: want int, got string"},
		{&MalformedTagError{Format: FormatID3v2, Offset: 10, Reason: "frame overruns tag", Err: cause}, "malformed ID3V2 tag at offset 10: frame overruns tag: short read"},
		{&UnsupportedFileTypeError{Path: "a.ogg", Extension: ".ogg"}, `a.ogg: unsupported file type ".ogg"`},
	}

	for _, tt := range tests {
		if got := tt.err.Error(); got != tt.want {
			t.Errorf("Error() = %q, want %q", got, tt.want)
		}
	}

	wrapped := &MalformedTagError{Format: FormatRIFF, Err: cause}
	if !errors.Is(wrapped, cause) {
		t.Error("MalformedTagError should unwrap to its cause")
	}
}
