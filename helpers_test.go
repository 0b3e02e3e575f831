package audiotag_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	goflac "github.com/go-flac/go-flac"
	"github.com/stretchr/testify/require"
)

// mp3Audio stands in for MPEG frames. The engine never decodes audio.
var mp3Audio = append([]byte{0xFF, 0xFB, 0x90, 0x64}, make([]byte, 400)...)

// newMP3 writes an untagged MP3 file and returns its path.
func newMP3(t testing.TB) string {
	t.Helper()
	return writeFixture(t, "song.mp3", mp3Audio)
}

// newFLAC writes an untagged FLAC stream and returns its path.
func newFLAC(t testing.TB) string {
	t.Helper()

	f := &goflac.File{
		Meta: []*goflac.MetaDataBlock{
			{Type: goflac.StreamInfo, Data: make([]byte, 34)},
			{Type: goflac.Padding, Data: make([]byte, 64)},
		},
		Frames: []byte{0xFF, 0xF8, 0x69, 0x08, 0x00, 0x01, 0x02, 0x03},
	}
	return writeFixture(t, "song.flac", f.Marshal())
}

// newWAV writes an untagged WAV file with the go-audio encoder and returns
// its path.
func newWAV(t testing.TB) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "song.wav")
	f, err := os.Create(path)
	require.NoError(t, err)

	enc := wav.NewEncoder(f, 8000, 16, 1, 1)
	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: 1, SampleRate: 8000},
		Data:           []int{0, 100, -100, 200, -200, 0, 50},
		SourceBitDepth: 16,
	}
	require.NoError(t, enc.Write(buf))
	require.NoError(t, enc.Close())
	require.NoError(t, f.Close())
	return path
}

func writeFixture(t testing.TB, name string, data []byte) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func readBytes(t testing.TB, path string) []byte {
	t.Helper()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return data
}

// fixtures builds one untagged file per container.
var fixtures = map[string]func(testing.TB) string{
	"mp3":  newMP3,
	"flac": newFLAC,
	"wav":  newWAV,
}
