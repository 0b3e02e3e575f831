// Package mapping translates between each format's native fields and the
// unified metadata keys.
//
// Decoding runs list fields through the multi-value reconciler and genre
// fields through the genre resolver. Encoding writes lists the way each
// format stores them: repeated Vorbis comments, one NUL-separated ID3v2.4
// frame or repeated ID3v2.3 frames, and a single "; "-joined value for
// ID3v1 and RIFF.
package mapping

import (
	"slices"
	"strconv"
	"strings"

	"github.com/simonhull/audiotag/internal/genre"
	"github.com/simonhull/audiotag/internal/multivalue"
	"github.com/simonhull/audiotag/internal/types"
)

const defaultLanguage = "eng"

// Decode returns the unified view of block. Only keys that carry a
// non-empty value are present.
func Decode(block *types.TagBlock) types.Metadata {
	md := types.Metadata{}
	if block == nil {
		return md
	}
	for _, key := range SupportedKeys(block.Format) {
		if v, ok := decodeKey(key, rawValues(block, key)); ok {
			md[key] = v
		}
	}
	return md
}

// DecodeKey returns the unified value of one key, if block carries it.
func DecodeKey(block *types.TagBlock, key types.Key) (any, bool) {
	if block == nil || !Supports(block.Format, key) {
		return nil, false
	}
	return decodeKey(key, rawValues(block, key))
}

// rawValues collects the raw values stored for key.
func rawValues(block *types.TagBlock, key types.Key) []string {
	id, _ := NativeID(block.Format, key, block.Major)
	if block.Format != types.FormatID3v2 {
		return block.Get(id)
	}

	switch key {
	case types.KeyReleaseDate:
		if v := block.Get(frameRecordingTime); len(v) > 0 {
			return v
		}
		return block.Get(frameYear)
	case types.KeyComment, types.KeyLyrics:
		return describedLast(block.Lookup(id))
	}
	return block.Get(id)
}

// describedLast orders COMM and USLT values so frames without a
// description come first.
func describedLast(entries []types.RawEntry) []string {
	var plain, described []string
	for _, e := range entries {
		switch {
		case e.Opaque():
		case e.Description == "":
			plain = append(plain, e.Values...)
		default:
			described = append(described, e.Values...)
		}
	}
	return append(plain, described...)
}

func decodeKey(key types.Key, raw []string) (any, bool) {
	switch key.Shape() {
	case types.ShapeList:
		var values []string
		if key == types.KeyGenres {
			values = genre.Resolve(raw)
		} else {
			values = multivalue.Reconcile(raw)
		}
		return values, len(values) > 0
	case types.ShapeInt:
		return leadingInt(multivalue.First(raw))
	default:
		s := multivalue.First(raw)
		return s, s != ""
	}
}

// leadingInt parses the digits at the start of s, so "3/12" gives 3 and
// "120.5" gives 120.
func leadingInt(s string) (int, bool) {
	end := strings.IndexFunc(s, func(r rune) bool { return r < '0' || r > '9' })
	if end < 0 {
		end = len(s)
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0, false
	}
	return n, true
}

// Encode applies md to block. A nil or blank value removes the field.
// Keys the format cannot store fail with *types.FieldNotSupportedError and
// values of the wrong shape with *types.InvalidMetadataTypeError; block
// is left unchanged in both cases.
func Encode(block *types.TagBlock, md types.Metadata) error {
	if err := Check(block.Format, md); err != nil {
		return err
	}

	for _, key := range md.Keys() {
		v := md[key]
		id, _ := NativeID(block.Format, key, block.Major)
		if types.IsEmptyValue(v) {
			remove(block, key, id)
			continue
		}
		set(block, key, id, nativeValues(block.Format, key, v))
	}
	return nil
}

// Check validates md against the support table of format without
// touching any tag.
func Check(format types.MetadataFormat, md types.Metadata) error {
	for _, key := range md.Keys() {
		if err := types.CheckValue(key, md[key]); err != nil {
			return err
		}
		if !Supports(format, key) {
			return &types.FieldNotSupportedError{Format: format, Key: key}
		}
	}
	return nil
}

// nativeValues renders a unified value as the raw values format stores.
func nativeValues(format types.MetadataFormat, key types.Key, v any) []string {
	var values []string
	switch val := v.(type) {
	case string:
		values = []string{val}
	case int:
		values = []string{strconv.Itoa(val)}
	case []string:
		for _, s := range val {
			if s = strings.TrimSpace(s); s != "" {
				values = append(values, s)
			}
		}
	}

	if len(values) < 2 {
		return values
	}
	switch format {
	case types.FormatID3v1:
		if key == types.KeyGenres {
			return []string{firstKnownGenre(values)}
		}
		return []string{multivalue.Join(values)}
	case types.FormatRIFF:
		return []string{multivalue.Join(values)}
	}
	return values
}

// firstKnownGenre picks the first genre the legacy table can code.
func firstKnownGenre(names []string) string {
	for _, name := range names {
		if _, ok := genre.Code(name); ok {
			return name
		}
	}
	return names[0]
}

func set(block *types.TagBlock, key types.Key, id string, values []string) {
	switch block.Format {
	case types.FormatVorbis:
		entries := make([]types.RawEntry, len(values))
		for i, v := range values {
			entries[i] = types.RawEntry{ID: id, Values: []string{v}}
		}
		block.Set(id, entries...)

	case types.FormatID3v2:
		entry := types.RawEntry{ID: id, Values: values}
		switch key {
		case types.KeyReleaseDate:
			block.Remove(otherDateFrame(id))
			block.Set(id, entry)
		case types.KeyComment, types.KeyLyrics:
			setUndescribed(block, entry)
		default:
			block.Set(id, entry)
		}

	default:
		block.Set(id, types.RawEntry{ID: id, Values: values})
	}
}

// setUndescribed replaces the COMM or USLT frames that have no
// description, keeping the language of the first one. Described frames
// are left alone.
func setUndescribed(block *types.TagBlock, entry types.RawEntry) {
	entry.Language = defaultLanguage
	pos := -1
	var kept []types.RawEntry
	for _, e := range block.Entries {
		if e.ID == entry.ID && e.Description == "" && !e.Opaque() {
			if pos < 0 {
				pos = len(kept)
				if len(e.Language) == 3 {
					entry.Language = e.Language
				}
			}
			continue
		}
		kept = append(kept, e)
	}
	if pos < 0 {
		pos = len(kept)
	}
	block.Entries = slices.Insert(kept, pos, entry)
}

func otherDateFrame(id string) string {
	if id == frameYear {
		return frameRecordingTime
	}
	return frameYear
}

func remove(block *types.TagBlock, key types.Key, id string) {
	if block.Format == types.FormatID3v2 && key == types.KeyReleaseDate {
		block.Remove(frameRecordingTime)
		block.Remove(frameYear)
		return
	}
	block.Remove(id)
}
