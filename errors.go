package audiotag

import (
	"github.com/simonhull/audiotag/internal/types"
)

// ErrTagNotFound reports that a file carries no tag of a format. The
// engine treats it as an empty contribution; it is exported for callers
// working with ReadRaw.
var ErrTagNotFound = types.ErrTagNotFound

// FormatNotSupportedError is an alias to types.FormatNotSupportedError.
type FormatNotSupportedError = types.FormatNotSupportedError

// FieldNotSupportedError is an alias to types.FieldNotSupportedError.
type FieldNotSupportedError = types.FieldNotSupportedError

// InvalidMetadataTypeError is an alias to types.InvalidMetadataTypeError.
type InvalidMetadataTypeError = types.InvalidMetadataTypeError

// MalformedTagError is an alias to types.MalformedTagError.
type MalformedTagError = types.MalformedTagError

// UnsupportedFileTypeError is an alias to types.UnsupportedFileTypeError.
type UnsupportedFileTypeError = types.UnsupportedFileTypeError
