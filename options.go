package audiotag

// Option configures a read, write or delete call.
//
// Options use the functional options pattern. Each call applies only the
// options that concern it.
//
// Example:
//
//	err := audiotag.Write("song.mp3", md,
//	    audiotag.WithID3v2Version(4),
//	    audiotag.WithStrategy(audiotag.StrategySync),
//	)
type Option func(*options)

// options holds configuration for one call.
type options struct {
	format          MetadataFormat // 0 = container priority / default format
	id3v2Version    int            // 0 = keep existing, else 3 or 4
	strategy        Strategy
	backupSuffix    string
	validate        bool
	preserveModTime bool
}

// defaultOptions returns the default configuration.
func defaultOptions() *options {
	return &options{strategy: StrategyPreserve}
}

func applyOptions(opts []Option) *options {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// WithFormat restricts a call to one metadata format.
//
// Reads return only that format's view instead of the priority merge.
// Writes target that format instead of the container's default.
//
// Example:
//
//	title, err := audiotag.ReadField("song.flac", audiotag.KeyTitle,
//	    audiotag.WithFormat(audiotag.FormatID3v2),
//	)
func WithFormat(format MetadataFormat) Option {
	return func(o *options) {
		o.format = format
	}
}

// WithID3v2Version selects the ID3v2 major version (3 or 4) for writes.
//
// By default an existing tag keeps its version and new tags are written
// as ID3v2.3.
func WithID3v2Version(major int) Option {
	return func(o *options) {
		o.id3v2Version = major
	}
}
