package audiotag_test

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/dhowden/tag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simonhull/audiotag"
)

func TestRoundTrip(t *testing.T) {
	tests := []struct {
		name   string
		newFn  func(testing.TB) string
		format audiotag.MetadataFormat
		md     audiotag.Metadata
	}{
		{"mp3 id3v2", newMP3, audiotag.FormatID3v2, audiotag.Metadata{
			audiotag.KeyTitle:       "Song",
			audiotag.KeyArtists:     []string{"A", "B"},
			audiotag.KeyAlbum:       "Album",
			audiotag.KeyComposers:   []string{"C"},
			audiotag.KeyLyrics:      "la la",
			audiotag.KeyBPM:         120,
			audiotag.KeyReleaseDate: "1999",
			audiotag.KeyTrackNumber: 7,
			audiotag.KeyPublisher:   "Label",
		}},
		{"mp3 id3v1", newMP3, audiotag.FormatID3v1, audiotag.Metadata{
			audiotag.KeyTitle:       "Song",
			audiotag.KeyArtists:     []string{"A"},
			audiotag.KeyGenres:      []string{"Rock"},
			audiotag.KeyReleaseDate: "1999",
			audiotag.KeyTrackNumber: 7,
		}},
		{"flac vorbis", newFLAC, audiotag.FormatVorbis, audiotag.Metadata{
			audiotag.KeyTitle:        "Song",
			audiotag.KeyArtists:      []string{"A", "B"},
			audiotag.KeyAlbumArtists: []string{"Various"},
			audiotag.KeyGenres:       []string{"Rock", "Blues"},
			audiotag.KeyLanguage:     "eng",
			audiotag.KeyBPM:          90,
			audiotag.KeyCopyright:    "(c) 1999",
		}},
		{"flac id3v2", newFLAC, audiotag.FormatID3v2, audiotag.Metadata{
			audiotag.KeyTitle: "Song",
		}},
		{"wav riff", newWAV, audiotag.FormatRIFF, audiotag.Metadata{
			audiotag.KeyTitle:       "Song",
			audiotag.KeyArtists:     []string{"A", "B"},
			audiotag.KeyComment:     "odd",
			audiotag.KeyTrackNumber: 3,
		}},
		{"wav id3v1", newWAV, audiotag.FormatID3v1, audiotag.Metadata{
			audiotag.KeyTitle: "Song",
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := tt.newFn(t)

			require.NoError(t, audiotag.Write(path, tt.md, audiotag.WithFormat(tt.format)))

			got, err := audiotag.ReadFormat(path, tt.format)
			require.NoError(t, err)
			assert.Equal(t, tt.md, got)
		})
	}
}

func TestRoundTrip_ID3v1Truncation(t *testing.T) {
	path := newMP3(t)
	long := "A title that is much longer than thirty characters"

	require.NoError(t, audiotag.Write(path, audiotag.Metadata{audiotag.KeyTitle: long},
		audiotag.WithFormat(audiotag.FormatID3v1)))

	got, err := audiotag.ReadField(path, audiotag.KeyTitle, audiotag.WithFormat(audiotag.FormatID3v1))
	require.NoError(t, err)
	assert.Equal(t, long[:30], got)
}

func TestRoundTrip_ID3v24(t *testing.T) {
	path := newMP3(t)
	md := audiotag.Metadata{
		audiotag.KeyArtists:     []string{"A", "B", "C"},
		audiotag.KeyReleaseDate: "2004-05-06",
	}

	require.NoError(t, audiotag.Write(path, md, audiotag.WithID3v2Version(4)))

	got, err := audiotag.Read(path)
	require.NoError(t, err)
	assert.Equal(t, md, got)

	raw, err := audiotag.ReadRaw(path, audiotag.FormatID3v2)
	require.NoError(t, err)
	ids := make([]string, 0, len(raw))
	for _, e := range raw {
		ids = append(ids, e.ID)
	}
	assert.ElementsMatch(t, []string{"TPE1", "TDRC"}, ids)
}

func TestRead_RepetitionEqualsSplitting(t *testing.T) {
	repeated := newMP3(t)
	require.NoError(t, audiotag.Write(repeated, audiotag.Metadata{
		audiotag.KeyArtists: []string{"A", "B", "C"},
	}, audiotag.WithID3v2Version(3)))

	raw, err := audiotag.ReadRaw(repeated, audiotag.FormatID3v2)
	require.NoError(t, err)
	require.Len(t, raw, 3)

	for _, joined := range []string{"A;B;C", "A/B/C"} {
		single := newMP3(t)
		require.NoError(t, audiotag.Write(single, audiotag.Metadata{
			audiotag.KeyArtists: []string{joined},
		}))

		a, err := audiotag.ReadField(repeated, audiotag.KeyArtists)
		require.NoError(t, err)
		b, err := audiotag.ReadField(single, audiotag.KeyArtists)
		require.NoError(t, err)
		assert.Equal(t, []string{"A", "B", "C"}, a)
		assert.Equal(t, a, b, joined)
	}
}

func TestRead_GenreResolution(t *testing.T) {
	tests := []struct {
		raw  string
		want []string
	}{
		{"(17)(6)", []string{"Rock", "Grunge"}},
		{"(17)Rock", []string{"Rock"}},
		{"(999)", []string{"(999)"}},
		{"Rock/Rock", []string{"Rock"}},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			path := newMP3(t)
			require.NoError(t, audiotag.Write(path, audiotag.Metadata{
				audiotag.KeyGenres: []string{tt.raw},
			}))

			got, err := audiotag.ReadField(path, audiotag.KeyGenres)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRead_PriorityMerge(t *testing.T) {
	path := newFLAC(t)

	require.NoError(t, audiotag.Write(path, audiotag.Metadata{audiotag.KeyTitle: "V"}))
	require.NoError(t, audiotag.Write(path, audiotag.Metadata{
		audiotag.KeyTitle:   "I",
		audiotag.KeyArtists: []string{"From ID3"},
	}, audiotag.WithFormat(audiotag.FormatID3v2)))
	require.NoError(t, audiotag.Write(path, audiotag.Metadata{
		audiotag.KeyAlbum: "From v1",
	}, audiotag.WithFormat(audiotag.FormatID3v1)))

	md, err := audiotag.Read(path)
	require.NoError(t, err)
	assert.Equal(t, audiotag.Metadata{
		audiotag.KeyTitle:   "V",
		audiotag.KeyArtists: []string{"From ID3"},
		audiotag.KeyAlbum:   "From v1",
	}, md)

	removed, err := audiotag.DeleteFormat(path, audiotag.FormatVorbis)
	require.NoError(t, err)
	assert.True(t, removed)

	md, err = audiotag.Read(path)
	require.NoError(t, err)
	assert.Equal(t, "I", md.String(audiotag.KeyTitle))
}

func TestRead_WithFormat(t *testing.T) {
	path := newFLAC(t)
	require.NoError(t, audiotag.Write(path, audiotag.Metadata{audiotag.KeyTitle: "V"}))
	require.NoError(t, audiotag.Write(path, audiotag.Metadata{audiotag.KeyTitle: "I"},
		audiotag.WithFormat(audiotag.FormatID3v2)))

	md, err := audiotag.Read(path, audiotag.WithFormat(audiotag.FormatID3v2))
	require.NoError(t, err)
	assert.Equal(t, "I", md.String(audiotag.KeyTitle))

	md, err = audiotag.ReadFormat(path, audiotag.FormatID3v1)
	require.NoError(t, err)
	assert.Empty(t, md)
}

func TestReadField(t *testing.T) {
	path := newMP3(t)
	require.NoError(t, audiotag.Write(path, audiotag.Metadata{
		audiotag.KeyTitle: "Song",
		audiotag.KeyBPM:   128,
	}))

	got, err := audiotag.ReadField(path, audiotag.KeyBPM)
	require.NoError(t, err)
	assert.Equal(t, 128, got)

	got, err = audiotag.ReadField(path, audiotag.KeyAlbum)
	require.NoError(t, err)
	assert.Nil(t, got)

	_, err = audiotag.ReadField(path, audiotag.KeyLyrics, audiotag.WithFormat(audiotag.FormatID3v1))
	var fieldErr *audiotag.FieldNotSupportedError
	require.ErrorAs(t, err, &fieldErr)
	assert.Equal(t, audiotag.FormatID3v1, fieldErr.Format)
	assert.Equal(t, audiotag.KeyLyrics, fieldErr.Key)

	_, err = audiotag.ReadField(path, audiotag.Key("mood"))
	assert.Error(t, err)
}

func TestReadRaw(t *testing.T) {
	path := newMP3(t)

	_, err := audiotag.ReadRaw(path, audiotag.FormatID3v2)
	assert.ErrorIs(t, err, audiotag.ErrTagNotFound)

	require.NoError(t, audiotag.Write(path, audiotag.Metadata{
		audiotag.KeyComment: "hello",
	}))

	raw, err := audiotag.ReadRaw(path, audiotag.FormatID3v2)
	require.NoError(t, err)
	require.Len(t, raw, 1)
	assert.Equal(t, "COMM", raw[0].ID)
	assert.Equal(t, "eng", raw[0].Language)
	assert.Equal(t, []string{"hello"}, raw[0].Values)
}

func TestRead_ForeignReader(t *testing.T) {
	path := newMP3(t)
	require.NoError(t, audiotag.Write(path, audiotag.Metadata{
		audiotag.KeyTitle:   "Song",
		audiotag.KeyArtists: []string{"Band"},
		audiotag.KeyAlbum:   "Album",
	}))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	m, err := tag.ReadFrom(f)
	require.NoError(t, err)
	assert.Equal(t, "Song", m.Title())
	assert.Equal(t, "Band", m.Artist())
	assert.Equal(t, "Album", m.Album())
}

func TestRead_Errors(t *testing.T) {
	t.Run("unsupported extension", func(t *testing.T) {
		path := writeFixture(t, "song.ogg", []byte("OggS"))

		_, err := audiotag.Read(path)
		var typeErr *audiotag.UnsupportedFileTypeError
		require.ErrorAs(t, err, &typeErr)
		assert.Equal(t, ".ogg", typeErr.Extension)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := audiotag.Read(filepath.Join(t.TempDir(), "missing.mp3"))
		assert.ErrorIs(t, err, fs.ErrNotExist)
	})

	t.Run("format not in container", func(t *testing.T) {
		_, err := audiotag.ReadFormat(newMP3(t), audiotag.FormatVorbis)
		var formatErr *audiotag.FormatNotSupportedError
		require.ErrorAs(t, err, &formatErr)
		assert.Equal(t, audiotag.ContainerMP3, formatErr.Container)
	})

	t.Run("malformed tag", func(t *testing.T) {
		// The frame declares 50 bytes inside a 20-byte tag.
		data := []byte{'I', 'D', '3', 3, 0, 0, 0, 0, 0, 20,
			'T', 'I', 'T', '2', 0, 0, 0, 50, 0, 0, 0, 'S', 'o', 'n', 'g'}
		data = append(data, make([]byte, 5)...)
		data = append(data, mp3Audio...)
		path := writeFixture(t, "bad.mp3", data)

		_, err := audiotag.Read(path)
		var malformed *audiotag.MalformedTagError
		require.ErrorAs(t, err, &malformed)
		assert.Equal(t, audiotag.FormatID3v2, malformed.Format)
	})
}

func TestHeaders(t *testing.T) {
	path := newWAV(t)

	present, err := audiotag.Headers(path)
	require.NoError(t, err)
	assert.Equal(t, map[audiotag.MetadataFormat]bool{
		audiotag.FormatRIFF:  false,
		audiotag.FormatID3v2: false,
		audiotag.FormatID3v1: false,
	}, present)

	require.NoError(t, audiotag.Write(path, audiotag.Metadata{audiotag.KeyTitle: "Song"}))
	require.NoError(t, audiotag.Write(path, audiotag.Metadata{audiotag.KeyTitle: "Song"},
		audiotag.WithFormat(audiotag.FormatID3v1)))

	present, err = audiotag.Headers(path)
	require.NoError(t, err)
	assert.True(t, present[audiotag.FormatRIFF])
	assert.False(t, present[audiotag.FormatID3v2])
	assert.True(t, present[audiotag.FormatID3v1])
}

func TestReadMany(t *testing.T) {
	paths := make([]string, 0, 6)
	for i, title := range []string{"one", "two", "three", "four", "five", "six"} {
		path := fixtures[[]string{"mp3", "flac", "wav"}[i%3]](t)
		require.NoError(t, audiotag.Write(path, audiotag.Metadata{audiotag.KeyTitle: title}))
		paths = append(paths, path)
	}

	all, err := audiotag.ReadMany(context.Background(), paths...)
	require.NoError(t, err)
	require.Len(t, all, len(paths))
	for i, title := range []string{"one", "two", "three", "four", "five", "six"} {
		assert.Equal(t, title, all[i].String(audiotag.KeyTitle))
	}
}

func TestReadMany_Errors(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		all, err := audiotag.ReadMany(context.Background())
		require.NoError(t, err)
		assert.Nil(t, all)
	})

	t.Run("missing file", func(t *testing.T) {
		missing := filepath.Join(t.TempDir(), "missing.flac")

		_, err := audiotag.ReadMany(context.Background(), newMP3(t), missing)
		require.Error(t, err)
		assert.ErrorIs(t, err, fs.ErrNotExist)
		assert.Contains(t, err.Error(), missing)
	})

	t.Run("cancelled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := audiotag.ReadMany(ctx, newMP3(t), newFLAC(t))
		assert.True(t, errors.Is(err, context.Canceled))
	})
}

func BenchmarkRead(b *testing.B) {
	path := newFLAC(b)
	if err := audiotag.Write(path, audiotag.Metadata{
		audiotag.KeyTitle:   "Song",
		audiotag.KeyArtists: []string{"A", "B"},
	}); err != nil {
		b.Fatal(err)
	}

	b.ReportAllocs()
	for b.Loop() {
		if _, err := audiotag.Read(path); err != nil {
			b.Fatal(err)
		}
	}
}
