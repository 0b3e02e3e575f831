package types

import (
	"errors"
	"fmt"
)

// ErrTagNotFound is returned by codecs when a file carries no tag block of
// the requested format. It is an expected result, not a failure.
var ErrTagNotFound = errors.New("tag not found")

// FormatNotSupportedError is returned when a metadata format is not
// applicable to the audio container.
type FormatNotSupportedError struct {
	Container Container
	Format    MetadataFormat
}

func (e *FormatNotSupportedError) Error() string {
	return fmt.Sprintf("format %s is not supported by %s files", e.Format, e.Container)
}

// FieldNotSupportedError is returned when a unified key has no native field
// in the requested format.
type FieldNotSupportedError struct {
	Format MetadataFormat
	Key    Key
}

func (e *FieldNotSupportedError) Error() string {
	return fmt.Sprintf("field %s is not supported by format %s", e.Key, e.Format)
}

// InvalidMetadataTypeError is returned when a value's shape does not match
// the declared shape of its key.
type InvalidMetadataTypeError struct {
	Key  Key
	Want Shape
	Got  any
}

func (e *InvalidMetadataTypeError) Error() string {
	return fmt.Sprintf("invalid value for %s: want %s, got %T", e.Key, e.Want, e.Got)
}

// MalformedTagError is returned when a tag marker is present but the
// structure behind it is broken.
type MalformedTagError struct {
	Format MetadataFormat
	Offset int64
	Reason string
	Err    error
}

func (e *MalformedTagError) Error() string {
	msg := fmt.Sprintf("malformed %s tag at offset %d: %s", e.Format, e.Offset, e.Reason)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *MalformedTagError) Unwrap() error {
	return e.Err
}

// UnsupportedFileTypeError is returned when the file extension does not name
// a known container.
type UnsupportedFileTypeError struct {
	Path      string
	Extension string
}

func (e *UnsupportedFileTypeError) Error() string {
	if e.Extension == "" {
		return fmt.Sprintf("%s: unsupported file type (no extension)", e.Path)
	}
	return fmt.Sprintf("%s: unsupported file type %q", e.Path, e.Extension)
}
