package audio

import (
	"bytes"
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// wavBytes builds a canonical 44-byte PCM WAV header followed by silence.
func wavBytes(t *testing.T, sampleRate, channels, bitDepth, seconds int) []byte {
	t.Helper()
	byteRate := sampleRate * channels * bitDepth / 8
	dataLen := byteRate * seconds
	var buf bytes.Buffer
	buf.WriteString("RIFF")
	binary.Write(&buf, binary.LittleEndian, uint32(36+dataLen))
	buf.WriteString("WAVE")
	buf.WriteString("fmt ")
	binary.Write(&buf, binary.LittleEndian, uint32(16))
	binary.Write(&buf, binary.LittleEndian, uint16(1)) // PCM
	binary.Write(&buf, binary.LittleEndian, uint16(channels))
	binary.Write(&buf, binary.LittleEndian, uint32(sampleRate))
	binary.Write(&buf, binary.LittleEndian, uint32(byteRate))
	binary.Write(&buf, binary.LittleEndian, uint16(channels*bitDepth/8))
	binary.Write(&buf, binary.LittleEndian, uint16(bitDepth))
	buf.WriteString("data")
	binary.Write(&buf, binary.LittleEndian, uint32(dataLen))
	buf.Write(make([]byte, dataLen))
	return buf.Bytes()
}

func writeFile(t *testing.T, dir, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, data, 0644))
	return path
}

func TestProbeWAV(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "mono.wav", wavBytes(t, 16000, 1, 16, 1))

	info, err := ProbeWAV(path)
	require.NoError(t, err)
	require.Equal(t, 16000, info.SampleRate)
	require.Equal(t, 1, info.Channels)
	require.Equal(t, 16, info.BitDepth)
	// The header-derived duration includes the 36 bytes of RIFF preamble, so
	// allow a small margin instead of asserting an exact second.
	require.InDelta(t, 1.0, info.Duration.Seconds(), 0.01)
}

func TestProbeWAV_Stereo(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "stereo.wav", wavBytes(t, 44100, 2, 16, 2))

	info, err := ProbeWAV(path)
	require.NoError(t, err)
	require.Equal(t, 44100, info.SampleRate)
	require.Equal(t, 2, info.Channels)
	require.InDelta(t, 2.0, info.Duration.Seconds(), 0.01)
}

func TestProbeWAV_Invalid(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "fake.wav", []byte("this is not a riff container"))

	_, err := ProbeWAV(path)
	require.Error(t, err)
}

func TestProbeWAV_Missing(t *testing.T) {
	_, err := ProbeWAV(filepath.Join(t.TempDir(), "absent.wav"))
	require.Error(t, err)
}

func TestContentType(t *testing.T) {
	dir := t.TempDir()

	// Magic bytes win even when the extension lies.
	flacMagic := append([]byte("fLaC"), make([]byte, 16)...)
	m4aMagic := append([]byte{0, 0, 0, 24}, []byte("ftypM4A \x00\x00\x00\x00")...)

	tests := []struct {
		name string
		path string
		want string
	}{
		{"wav by extension", writeFile(t, dir, "a.wav", wavBytes(t, 8000, 1, 16, 1)), "audio/wav"},
		{"mp3 by extension", writeFile(t, dir, "b.mp3", []byte("not really audio data here")), "audio/mpeg"},
		{"flac by magic", writeFile(t, dir, "c.bin", flacMagic), "audio/flac"},
		{"m4a magic overrides aac extension", writeFile(t, dir, "d.aac", m4aMagic), "audio/mp4"},
		{"mp4 by extension", writeFile(t, dir, "e.mp4", []byte("0000000000000000")), "video/mp4"},
		{"unknown", writeFile(t, dir, "f.xyz", []byte("0000000000000000")), ""},
		{"missing file falls back to extension", filepath.Join(dir, "absent.flac"), "audio/flac"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, ContentType(tt.path))
		})
	}
}
