package types

import (
	"iter"
	"slices"
	"strings"
)

// RawEntry is one field as found literally in a tag block.
//
// Several entries may share an ID; each repeat is kept as its own entry.
type RawEntry struct {
	// ID is the native field identifier (TIT2, ARTIST, INAM, ...).
	ID string

	// Values holds the decoded text values. ID3v2.4 text frames may carry
	// several NUL-separated values in one frame.
	Values []string

	// Description and Language are set for ID3v2 COMM, USLT and TXXX frames.
	Description string
	Language    string

	// Encoding is the ID3v2 text encoding byte the entry was read with.
	Encoding byte

	// Flags holds the ID3v2 frame flags.
	Flags uint16

	// Payload holds the undecoded frame body for entries the codec does not
	// interpret. Such entries are written back byte for byte.
	Payload []byte
}

// Opaque reports whether the entry is carried as raw bytes.
func (e RawEntry) Opaque() bool {
	return e.Payload != nil
}

// First returns the first value or "".
func (e RawEntry) First() string {
	if len(e.Values) == 0 {
		return ""
	}
	return e.Values[0]
}

// TagBlock is the decoded content of one tag format instance in one file.
type TagBlock struct {
	Format MetadataFormat

	// Major and Revision hold the ID3v2 version (3 or 4). ID3v1 uses
	// Revision 1 for the v1.1 track layout.
	Major    byte
	Revision byte

	// Flags holds header flags as read.
	Flags byte

	// Size is the declared size of the block on disk.
	Size int64

	// Vendor is the Vorbis comment vendor string.
	Vendor string

	Entries []RawEntry
}

// NewTagBlock creates an empty block for format f.
func NewTagBlock(f MetadataFormat) *TagBlock {
	return &TagBlock{Format: f}
}

// sameID compares field identifiers; Vorbis keys compare case-insensitively.
func (b *TagBlock) sameID(a, c string) bool {
	if b.Format == FormatVorbis {
		return strings.EqualFold(a, c)
	}
	return a == c
}

// All returns an iterator over every entry in file order.
//
// Example:
//
//	for id, values := range block.All() {
//		fmt.Printf("%s: %v\n", id, values)
//	}
func (b *TagBlock) All() iter.Seq2[string, []string] {
	return func(yield func(string, []string) bool) {
		for _, e := range b.Entries {
			if !yield(e.ID, e.Values) {
				return
			}
		}
	}
}

// Lookup returns every entry with the given ID in file order.
func (b *TagBlock) Lookup(id string) []RawEntry {
	var out []RawEntry
	for _, e := range b.Entries {
		if b.sameID(e.ID, id) {
			out = append(out, e)
		}
	}
	return out
}

// Get returns the values of every non-opaque entry with the given ID,
// flattened in file order.
func (b *TagBlock) Get(id string) []string {
	var out []string
	for _, e := range b.Lookup(id) {
		if !e.Opaque() {
			out = append(out, e.Values...)
		}
	}
	return out
}

// GetFirst returns the first value for id, or "".
func (b *TagBlock) GetFirst(id string) string {
	values := b.Get(id)
	if len(values) == 0 {
		return ""
	}
	return values[0]
}

// Has reports whether any entry with the given ID exists.
func (b *TagBlock) Has(id string) bool {
	return slices.ContainsFunc(b.Entries, func(e RawEntry) bool { return b.sameID(e.ID, id) })
}

// Remove deletes every entry with the given ID and returns how many were removed.
func (b *TagBlock) Remove(id string) int {
	before := len(b.Entries)
	b.Entries = slices.DeleteFunc(b.Entries, func(e RawEntry) bool { return b.sameID(e.ID, id) })
	return before - len(b.Entries)
}

// Set replaces every entry with the given ID by entries. The replacements
// take the position of the first existing match and inherit its on-disk
// spelling of the ID; with no match they are appended.
func (b *TagBlock) Set(id string, entries ...RawEntry) {
	pos := slices.IndexFunc(b.Entries, func(e RawEntry) bool { return b.sameID(e.ID, id) })
	if pos < 0 {
		b.Entries = append(b.Entries, entries...)
		return
	}

	spelling := b.Entries[pos].ID
	for i := range entries {
		entries[i].ID = spelling
	}

	kept := make([]RawEntry, 0, len(b.Entries)+len(entries))
	for i, e := range b.Entries {
		if i == pos {
			kept = append(kept, entries...)
		}
		if !b.sameID(e.ID, id) {
			kept = append(kept, e)
		}
	}
	b.Entries = kept
}

// Len returns the number of entries.
func (b *TagBlock) Len() int {
	return len(b.Entries)
}

// Clone returns a deep copy of the block.
func (b *TagBlock) Clone() *TagBlock {
	c := *b
	c.Entries = make([]RawEntry, len(b.Entries))
	for i, e := range b.Entries {
		e.Values = slices.Clone(e.Values)
		e.Payload = slices.Clone(e.Payload)
		c.Entries[i] = e
	}
	return &c
}
