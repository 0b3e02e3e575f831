// Package audiotag reads and writes audio metadata across tag formats.
//
// A file can carry several tags at once: an MP3 may hold both ID3v2 and
// ID3v1, a FLAC stream a Vorbis comment block alongside stray ID3 tags,
// and a WAV file a RIFF INFO list as well as ID3. audiotag presents all of
// them through one set of keys and one value model.
//
// # Quick Start
//
//	md, err := audiotag.Read("song.flac")
//	if err != nil {
//		log.Fatal(err)
//	}
//	fmt.Println(md.String(audiotag.KeyTitle))
//	fmt.Println(md.Strings(audiotag.KeyArtists))
//
//	err = audiotag.Write("song.flac", audiotag.Metadata{
//		audiotag.KeyGenres: []string{"Rock", "Blues"},
//	})
//
// # Supported Formats
//
//   - MP3: ID3v2.3/2.4 (priority), ID3v1/1.1
//   - FLAC: Vorbis comments (priority), ID3v2, ID3v1
//   - WAV: RIFF LIST/INFO (priority), ID3v2, ID3v1
//
// # Reading
//
// Read merges formats key by key: each key comes from the highest-priority
// format that has a value for it. ReadFormat returns one format without
// merging, ReadField one key, and ReadRaw the native entries as stored.
//
// Multi-value keys (artists, album artists, composers, genres) are always
// returned as []string. Values stored as a single delimited string are
// split on the first separator present, tried in the order "//", "/",
// "\\", "\", ";", ",". Values stored as repeated native fields are never
// split. Genres written as ID3 codes such as "(17)" or "(17)(6)Rock" are
// resolved to names.
//
// # Writing
//
// Write targets the container's default format unless WithFormat names
// another. The request is validated before anything is written, and the
// file is replaced atomically. WithStrategy decides what happens to the
// other formats in the file.
//
// # Error Handling
//
// Failures are typed and can be matched with errors.As:
//
//   - *UnsupportedFileTypeError: unknown file extension
//   - *FormatNotSupportedError: format cannot live in the container
//   - *FieldNotSupportedError: format cannot store the key
//   - *InvalidMetadataTypeError: value has the wrong shape for its key
//   - *MalformedTagError: a tag is present but broken
//
// A missing file is reported with an error wrapping fs.ErrNotExist.
//
// # Logging
//
// The library logs at debug level through logrus. Set AUDIOTAG_LOG_LEVEL
// (for example "debug" or "silent") to change the level.
package audiotag
