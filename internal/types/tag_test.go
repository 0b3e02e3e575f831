package types

import (
	"slices"
	"testing"
)

func TestTagBlock_RepeatedEntries(t *testing.T) {
	b := NewTagBlock(FormatID3v2)
	b.Entries = []RawEntry{
		{ID: "TPE1", Values: []string{"A"}},
		{ID: "TIT2", Values: []string{"Song"}},
		{ID: "TPE1", Values: []string{"B"}},
		{ID: "APIC", Payload: []byte{0x00}},
	}

	if got := b.Get("TPE1"); !slices.Equal(got, []string{"A", "B"}) {
		t.Errorf("Get(TPE1) = %v, want [A B]", got)
	}
	if n := len(b.Lookup("TPE1")); n != 2 {
		t.Errorf("Lookup(TPE1) = %d entries, want 2", n)
	}
	if got := b.Get("APIC"); got != nil {
		t.Errorf("Get(APIC) = %v, opaque entries carry no values", got)
	}
	if b.GetFirst("TIT2") != "Song" {
		t.Errorf("GetFirst(TIT2) = %q", b.GetFirst("TIT2"))
	}
}

func TestTagBlock_Set(t *testing.T) {
	b := NewTagBlock(FormatVorbis)
	b.Entries = []RawEntry{
		{ID: "title", Values: []string{"Old"}},
		{ID: "ARTIST", Values: []string{"A"}},
		{ID: "Title", Values: []string{"Older"}},
	}

	b.Set("TITLE", RawEntry{ID: "TITLE", Values: []string{"New"}})

	var ids []string
	for id, values := range b.All() {
		ids = append(ids, id+"="+values[0])
	}
	want := []string{"title=New", "ARTIST=A"}
	if !slices.Equal(ids, want) {
		t.Errorf("entries = %v, want %v", ids, want)
	}

	b.Set("GENRE", RawEntry{ID: "GENRE", Values: []string{"Rock"}})
	if b.Len() != 3 || b.Entries[2].ID != "GENRE" {
		t.Errorf("new key should be appended, got %+v", b.Entries)
	}
}

func TestTagBlock_Remove(t *testing.T) {
	b := NewTagBlock(FormatRIFF)
	b.Entries = []RawEntry{{ID: "INAM"}, {ID: "IART"}, {ID: "INAM"}}

	if n := b.Remove("INAM"); n != 2 {
		t.Errorf("Remove(INAM) = %d, want 2", n)
	}
	if b.Has("INAM") || !b.Has("IART") {
		t.Errorf("unexpected entries after Remove: %+v", b.Entries)
	}
	// RIFF IDs are case-sensitive.
	if n := b.Remove("iart"); n != 0 {
		t.Errorf("Remove(iart) = %d, want 0", n)
	}
}

func TestTagBlock_Clone(t *testing.T) {
	b := NewTagBlock(FormatID3v2)
	b.Entries = []RawEntry{{ID: "TPE1", Values: []string{"A"}}}

	c := b.Clone()
	c.Entries[0].Values[0] = "changed"
	if b.Entries[0].Values[0] != "A" {
		t.Error("Clone shares value slices with the original")
	}
}
