package audiotag

import "fmt"

// Strategy decides what happens to the formats a write does not target.
type Strategy int

const (
	// StrategyPreserve writes only the target format. Other tags are left
	// as they are.
	StrategyPreserve Strategy = iota

	// StrategySync writes the target format, then applies the same values
	// to every other format already present in the file. Keys a secondary
	// format cannot store are skipped for that format.
	StrategySync

	// StrategyCleanup writes the target format and removes every other
	// format's tag.
	StrategyCleanup
)

func (s Strategy) String() string {
	switch s {
	case StrategyPreserve:
		return "preserve"
	case StrategySync:
		return "sync"
	case StrategyCleanup:
		return "cleanup"
	default:
		return fmt.Sprintf("Strategy(%d)", int(s))
	}
}

// WithStrategy sets how a write treats non-target formats.
//
// Example:
//
//	err := audiotag.Write("song.flac", md, audiotag.WithStrategy(audiotag.StrategyCleanup))
//	// only the Vorbis comment block remains
func WithStrategy(s Strategy) Option {
	return func(o *options) {
		o.strategy = s
	}
}

// WithBackup keeps a copy of the original file before it is replaced.
//
// The backup has the suffix appended to the original filename, so
// WithBackup(".bak") keeps "song.mp3.bak" next to "song.mp3". An existing
// backup is overwritten.
//
// Example:
//
//	err := audiotag.Write("song.mp3", md, audiotag.WithBackup(".bak"))
func WithBackup(suffix string) Option {
	return func(o *options) {
		o.backupSuffix = suffix
	}
}

// WithValidation re-reads the file after writing and checks that every
// written format decodes to the values that were meant to be stored, as
// that format stores them: an ID3v1 title is compared truncated to 30
// bytes, a RIFF artist list joined and split again.
//
// This adds a second read per write.
func WithValidation() Option {
	return func(o *options) {
		o.validate = true
	}
}

// WithPreserveModTime keeps the original file modification time.
func WithPreserveModTime() Option {
	return func(o *options) {
		o.preserveModTime = true
	}
}
