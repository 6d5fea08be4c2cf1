package audio

import (
	"errors"
	"os"
	"time"

	"github.com/go-audio/wav"
)

// WAVInfo summarizes a WAV file header.
type WAVInfo struct {
	SampleRate int
	Channels   int
	BitDepth   int
	Duration   time.Duration
}

// ProbeWAV reads the RIFF/WAVE headers of path and returns the stream
// parameters. The PCM payload itself is never decoded.
func ProbeWAV(path string) (WAVInfo, error) {
	f, err := os.Open(path)
	if err != nil {
		return WAVInfo{}, err
	}
	defer f.Close()

	dec := wav.NewDecoder(f)
	if !dec.IsValidFile() {
		return WAVInfo{}, errors.New("not a valid WAV file")
	}
	dur, err := dec.Duration()
	if err != nil {
		return WAVInfo{}, err
	}
	return WAVInfo{
		SampleRate: int(dec.SampleRate),
		Channels:   int(dec.NumChans),
		BitDepth:   int(dec.BitDepth),
		Duration:   dur,
	}, nil
}
