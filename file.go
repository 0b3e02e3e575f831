package audiotag

import (
	"context"
	"errors"
	"fmt"
	"os"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/simonhull/audiotag/internal/logger"
	"github.com/simonhull/audiotag/internal/mapping"
	"github.com/simonhull/audiotag/internal/registry"
	"github.com/simonhull/audiotag/internal/types"

	// Tag codecs register themselves with the registry.
	_ "github.com/simonhull/audiotag/internal/id3v1"
	_ "github.com/simonhull/audiotag/internal/id3v2"
	_ "github.com/simonhull/audiotag/internal/riff"
	_ "github.com/simonhull/audiotag/internal/vorbis"
)

var log = logger.WithName("audiotag")

// audioFile holds a file's contents for the length of one call.
type audioFile struct {
	path      string
	container Container
	data      []byte
}

// load detects the container from the extension and reads the file.
func load(path string) (*audioFile, error) {
	container, err := types.DetectContainer(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	return &audioFile{path: path, container: container, data: data}, nil
}

// checkFormat fails when format cannot live in the file's container.
func (f *audioFile) checkFormat(format MetadataFormat) error {
	if !f.container.Supports(format) {
		return &FormatNotSupportedError{Container: f.container, Format: format}
	}
	return nil
}

// block parses the tag of one format. A missing tag gives nil, nil.
func (f *audioFile) block(format MetadataFormat) (*types.TagBlock, error) {
	codec := registry.Get(format)
	if codec == nil {
		return nil, fmt.Errorf("no codec registered for %s", format)
	}

	block, err := codec.Parse(f.data)
	if errors.Is(err, types.ErrTagNotFound) {
		log.WithField("path", f.path).Debugf("no %s tag", format)
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return block, nil
}

// view returns the unified metadata of one format.
func (f *audioFile) view(format MetadataFormat) (Metadata, error) {
	block, err := f.block(format)
	if err != nil {
		return nil, err
	}
	return mapping.Decode(block), nil
}

// merged combines the views of every applicable format key by key, taking
// each key from the first format in priority order that carries it.
func (f *audioFile) merged() (Metadata, error) {
	md := Metadata{}
	for _, format := range f.container.Formats() {
		view, err := f.view(format)
		if err != nil {
			return nil, err
		}
		md.Merge(view)
	}
	return md, nil
}

// Read returns the unified metadata of the file.
//
// Every format the container may carry is read, and each key is taken from
// the highest-priority format that has a value for it: Vorbis, then ID3v2,
// then ID3v1 for FLAC; RIFF, then ID3v2, then ID3v1 for WAV; ID3v2, then
// ID3v1 for MP3. With WithFormat only that format is read.
//
// Example:
//
//	md, err := audiotag.Read("song.flac")
//	if err != nil {
//		return err
//	}
//	fmt.Println(md.String(audiotag.KeyTitle), md.Strings(audiotag.KeyArtists))
func Read(path string, opts ...Option) (Metadata, error) {
	o := applyOptions(opts)
	if o.format != 0 {
		return ReadFormat(path, o.format)
	}

	f, err := load(path)
	if err != nil {
		return nil, err
	}
	return f.merged()
}

// ReadFormat returns the unified metadata of a single format without any
// merging. The result is empty when the file has no tag of that format.
// A format the container cannot carry fails with *FormatNotSupportedError.
func ReadFormat(path string, format MetadataFormat) (Metadata, error) {
	f, err := load(path)
	if err != nil {
		return nil, err
	}
	if err := f.checkFormat(format); err != nil {
		return nil, err
	}
	return f.view(format)
}

// ReadField returns the value of one key, or nil when no format carries
// it. Formats are tried in priority order.
//
// With WithFormat only that format is consulted, and a key the format
// cannot store fails with *FieldNotSupportedError.
func ReadField(path string, key Key, opts ...Option) (any, error) {
	if !key.Valid() {
		return nil, fmt.Errorf("unknown metadata key %q", key)
	}

	o := applyOptions(opts)
	f, err := load(path)
	if err != nil {
		return nil, err
	}

	formats := f.container.Formats()
	if o.format != 0 {
		if err := f.checkFormat(o.format); err != nil {
			return nil, err
		}
		if !mapping.Supports(o.format, key) {
			return nil, &FieldNotSupportedError{Format: o.format, Key: key}
		}
		formats = []MetadataFormat{o.format}
	}

	for _, format := range formats {
		if !mapping.Supports(format, key) {
			continue
		}
		block, err := f.block(format)
		if err != nil {
			return nil, err
		}
		if v, ok := mapping.DecodeKey(block, key); ok {
			return v, nil
		}
	}
	return nil, nil
}

// ReadRaw returns the native entries of one format as stored in the file,
// including repeats and fields without a unified key. It returns
// ErrTagNotFound when the file has no tag of that format.
func ReadRaw(path string, format MetadataFormat) ([]RawEntry, error) {
	f, err := load(path)
	if err != nil {
		return nil, err
	}
	if err := f.checkFormat(format); err != nil {
		return nil, err
	}

	block, err := f.block(format)
	if err != nil {
		return nil, err
	}
	if block == nil {
		return nil, ErrTagNotFound
	}
	return block.Entries, nil
}

// Headers reports, for every format the container may carry, whether the
// file has a tag of that format.
func Headers(path string) (map[MetadataFormat]bool, error) {
	f, err := load(path)
	if err != nil {
		return nil, err
	}

	present := make(map[MetadataFormat]bool, len(f.container.Formats()))
	for _, format := range f.container.Formats() {
		_, ok := registry.Get(format).Locate(f.data)
		present[format] = ok
	}
	return present, nil
}

// ReadMany reads multiple files concurrently.
//
// Files are read in parallel using up to runtime.NumCPU() goroutines.
// Results are returned in the same order as the input paths. The first
// failure cancels the remaining reads and is returned.
//
// Example:
//
//	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
//	defer cancel()
//
//	all, err := audiotag.ReadMany(ctx, paths...)
//	if err != nil {
//		log.Fatal(err)
//	}
func ReadMany(ctx context.Context, paths ...string) ([]Metadata, error) {
	if len(paths) == 0 {
		return nil, nil
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())

	results := make([]Metadata, len(paths))
	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			md, err := Read(path)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			results[i] = md
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
