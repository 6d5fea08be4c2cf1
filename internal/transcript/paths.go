// Package transcript renders transcription results into the on-disk artifact
// set: a plain transcript, a timestamped transcript, and a raw response
// snapshot. All three artifacts are keyed by the source file's stem, so two
// sources that differ only in extension map to the same set.
package transcript

import (
	"os"
	"path/filepath"
	"strings"
)

// ArtifactSet holds the output paths derived from one source file.
type ArtifactSet struct {
	Plain       string // <stem>_transcript.txt
	Timestamped string // <stem>_timestamped.txt
	Snapshot    string // <stem>_full_response.json
}

// Stem returns the source file name without directory or extension.
func Stem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// Artifacts maps a source media path to its artifact paths in outputDir.
func Artifacts(outputDir, sourcePath string) ArtifactSet {
	stem := Stem(sourcePath)
	return ArtifactSet{
		Plain:       filepath.Join(outputDir, stem+"_transcript.txt"),
		Timestamped: filepath.Join(outputDir, stem+"_timestamped.txt"),
		Snapshot:    filepath.Join(outputDir, stem+"_full_response.json"),
	}
}

// PlainExists reports whether the plain transcript artifact is already on
// disk. This is the marker the skip filter keys on; the other two artifacts
// are never consulted.
func (a ArtifactSet) PlainExists() bool {
	_, err := os.Stat(a.Plain)
	return err == nil
}
