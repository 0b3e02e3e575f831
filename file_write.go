package audiotag

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"reflect"

	"github.com/sirupsen/logrus"

	"github.com/simonhull/audiotag/internal/id3v2"
	"github.com/simonhull/audiotag/internal/mapping"
	"github.com/simonhull/audiotag/internal/registry"
	"github.com/simonhull/audiotag/internal/types"
)

// Write stores md in the file.
//
// The target is the container's default format (Vorbis for FLAC, RIFF for
// WAV, ID3v2 for MP3) unless WithFormat names another. Keys absent from md
// are left as they are; a nil value removes the field. The whole request
// is validated before any byte is produced: an unknown key or a value of
// the wrong shape fails with *InvalidMetadataTypeError, a key the target
// cannot store with *FieldNotSupportedError, and a target the container
// cannot carry with *FormatNotSupportedError. On any error the file is
// unchanged.
//
// The file is replaced atomically: the new contents are written to a
// temporary file in the same directory, synced, and renamed over the
// original.
//
// Example:
//
//	err := audiotag.Write("song.mp3", audiotag.Metadata{
//	    audiotag.KeyTitle:   "Song",
//	    audiotag.KeyArtists: []string{"A", "B"},
//	})
func Write(path string, md Metadata, opts ...Option) error {
	o := applyOptions(opts)

	container, err := types.DetectContainer(path)
	if err != nil {
		return err
	}
	target := o.format
	if target == 0 {
		target = container.DefaultFormat()
	}
	if !container.Supports(target) {
		return &FormatNotSupportedError{Container: container, Format: target}
	}
	if o.id3v2Version != 0 && o.id3v2Version != 3 && o.id3v2Version != 4 {
		return fmt.Errorf("unsupported ID3v2 version 2.%d", o.id3v2Version)
	}
	if err := mapping.Check(target, md); err != nil {
		return err
	}

	f, err := load(path)
	if err != nil {
		return err
	}

	written := []writtenTag{{target, md}}
	data, err := f.apply(target, md, o)
	if err != nil {
		return err
	}
	f.data = data

	for _, format := range f.container.Formats() {
		if format == target {
			continue
		}
		if _, ok := registry.Get(format).Locate(f.data); !ok {
			continue
		}

		switch o.strategy {
		case StrategySync:
			subset := supportedSubset(format, md)
			data, err = f.apply(format, subset, o)
			written = append(written, writtenTag{format, subset})
		case StrategyCleanup:
			data, err = registry.Get(format).Replace(f.data, nil)
		default:
			continue
		}
		if err != nil {
			return fmt.Errorf("%s %s: %w", o.strategy, format, err)
		}
		f.data = data
	}

	log.WithFields(logrus.Fields{
		"path":     path,
		"format":   target,
		"strategy": o.strategy,
	}).Debug("writing tags")

	if err := writeFile(path, f.data, o); err != nil {
		return err
	}

	if o.validate {
		if err := validate(path, f.data, written); err != nil {
			return fmt.Errorf("validation failed: %w", err)
		}
	}
	return nil
}

// apply encodes md into the file's tag of format and returns the new file
// contents. A tag left with no entries is removed.
func (f *audioFile) apply(format MetadataFormat, md Metadata, o *options) ([]byte, error) {
	block, err := f.block(format)
	if err != nil {
		return nil, err
	}
	if block == nil {
		block = types.NewTagBlock(format)
	}

	if format == FormatID3v2 {
		switch {
		case o.id3v2Version != 0:
			block.Major = byte(o.id3v2Version)
		case block.Major != 3 && block.Major != 4:
			block.Major = id3v2.DefaultVersion
		}
	}

	if err := mapping.Encode(block, md); err != nil {
		return nil, err
	}
	return registry.Get(format).Replace(f.data, block)
}

// supportedSubset keeps the keys format can store.
func supportedSubset(format MetadataFormat, md Metadata) Metadata {
	out := Metadata{}
	for k, v := range md {
		if mapping.Supports(format, k) {
			out[k] = v
		}
	}
	return out
}

// writeFile replaces the file at path with data.
//
// This is an atomic operation: writes to a temporary file first, then
// renames to the output path. If any step fails, the original file remains
// unchanged and the temporary file is removed.
func writeFile(path string, data []byte, o *options) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("stat file: %w", err)
	}

	// Create temp file in same directory as output (for atomic rename)
	tempFile, err := os.CreateTemp(filepath.Dir(path), ".audiotag-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tempPath := tempFile.Name()

	success := false
	defer func() {
		if !success {
			_ = tempFile.Close()    //nolint:errcheck // Best effort cleanup
			_ = os.Remove(tempPath) //nolint:errcheck // Best effort cleanup
		}
	}()

	if _, err := tempFile.Write(data); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tempFile.Chmod(info.Mode().Perm()); err != nil {
		return fmt.Errorf("chmod temp file: %w", err)
	}

	// Sync temp file (fsync) to ensure data is on disk
	if err := tempFile.Sync(); err != nil {
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := tempFile.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}

	if o.backupSuffix != "" {
		if err := copyFile(path, path+o.backupSuffix, info.Mode().Perm()); err != nil {
			return fmt.Errorf("create backup: %w", err)
		}
	}

	if err := os.Rename(tempPath, path); err != nil {
		return fmt.Errorf("rename temp to output: %w", err)
	}
	success = true

	if o.preserveModTime {
		_ = os.Chtimes(path, info.ModTime(), info.ModTime()) //nolint:errcheck // Non-fatal: file was written successfully
	}
	return nil
}

// copyFile copies src to dst, replacing dst.
func copyFile(src, dst string, perm os.FileMode) error {
	data, err := os.ReadFile(src)
	if err != nil {
		return err
	}
	return os.WriteFile(dst, data, perm)
}

// writtenTag is one format a write stored and the values it was given.
type writtenTag struct {
	format MetadataFormat
	md     Metadata
}

// validate re-reads path and checks that it holds exactly want and that
// each written format decodes to the values it was given, as the format
// stores them: truncated, joined and trimmed the way its codec does.
func validate(path string, want []byte, written []writtenTag) error {
	got, err := load(path)
	if err != nil {
		return fmt.Errorf("re-read: %w", err)
	}
	if !bytes.Equal(got.data, want) {
		return fmt.Errorf("file contents differ from what was written")
	}

	for _, w := range written {
		stored, err := got.view(w.format)
		if err != nil {
			return err
		}
		expected, err := got.expectedView(w.format, w.md)
		if err != nil {
			return err
		}
		if err := compareViews(w.format, w.md.Keys(), stored, expected); err != nil {
			return err
		}
	}
	return nil
}

// expectedView returns what format decodes to when it holds only md. The
// values go through the same encode and serialize path as a real write,
// on a copy of the file.
func (f *audioFile) expectedView(format MetadataFormat, md Metadata) (Metadata, error) {
	block := types.NewTagBlock(format)
	if existing, err := f.block(format); err != nil {
		return nil, err
	} else if existing != nil {
		block.Major = existing.Major
	}
	if err := mapping.Encode(block, md); err != nil {
		return nil, err
	}

	data, err := registry.Get(format).Replace(f.data, block)
	if err != nil {
		return nil, err
	}
	alone := &audioFile{path: f.path, container: f.container, data: data}
	return alone.view(format)
}

// compareViews checks keys in stored against expected. A key missing from
// both matches.
func compareViews(format MetadataFormat, keys []Key, stored, expected Metadata) error {
	for _, k := range keys {
		if !reflect.DeepEqual(stored[k], expected[k]) {
			return fmt.Errorf("%s %s: stored %v, want %v", format, k, stored[k], expected[k])
		}
	}
	return nil
}
