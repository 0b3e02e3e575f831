package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simonhull/audiotag"
)

func taggedMP3(t *testing.T) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "song.mp3")
	audio := append([]byte{0xFF, 0xFB, 0x90, 0x64}, make([]byte, 200)...)
	require.NoError(t, os.WriteFile(path, audio, 0o644))
	require.NoError(t, audiotag.Write(path, audiotag.Metadata{
		audiotag.KeyTitle:   "Song",
		audiotag.KeyArtists: []string{"A", "B"},
	}))
	return path
}

// resetFlags restores the package-level flag values after a test.
func resetFlags(t *testing.T) {
	t.Helper()
	t.Cleanup(func() {
		formatName, asJSON, continueOnError = "", false, false
	})
}

func TestRun_Text(t *testing.T) {
	resetFlags(t)
	path := taggedMP3(t)

	var out bytes.Buffer
	require.NoError(t, run(&out, []string{path}))

	assert.Contains(t, out.String(), "== "+path)
	assert.Contains(t, out.String(), "[ID3V2]")
	assert.Contains(t, out.String(), `TIT2 = "Song"`)
	assert.Contains(t, out.String(), "[unified]")
	assert.NotContains(t, out.String(), "[ID3V1]")
}

func TestRun_JSON(t *testing.T) {
	resetFlags(t)
	asJSON = true
	path := taggedMP3(t)

	var out bytes.Buffer
	require.NoError(t, run(&out, []string{path}))

	var d struct {
		Path    string          `json:"path"`
		Headers map[string]bool `json:"headers"`
		Unified map[string]any  `json:"unified"`
	}
	require.NoError(t, json.Unmarshal(out.Bytes(), &d))
	assert.Equal(t, path, d.Path)
	assert.Equal(t, map[string]bool{"ID3V2": true, "ID3V1": false}, d.Headers)
	assert.Equal(t, "Song", d.Unified["title"])
	assert.Equal(t, []any{"A", "B"}, d.Unified["artists"])
}

func TestRun_Errors(t *testing.T) {
	resetFlags(t)
	missing := filepath.Join(t.TempDir(), "missing.mp3")
	path := taggedMP3(t)

	var out bytes.Buffer
	err := run(&out, []string{missing, path})
	require.Error(t, err)
	assert.Empty(t, out.String())

	continueOnError = true
	out.Reset()
	err = run(&out, []string{missing, path})
	assert.EqualError(t, err, "1 of 2 files failed")
	assert.Contains(t, out.String(), "error:")
	assert.Contains(t, out.String(), `TIT2 = "Song"`)

	formatName = "mp4"
	assert.Error(t, run(&out, []string{path}))
}
