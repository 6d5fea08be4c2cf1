// Package audio inspects media files before upload: content-type detection
// for the HTTP request and lightweight WAV header probing for the work-list
// stats. Nothing here decodes audio payloads.
package audio

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/dhowden/tag"
)

// ContentType returns the MIME type to send for path. It prefers magic-byte
// identification via the tag library and falls back to the file extension.
// Returns "" when the type cannot be determined; callers should omit the
// Content-Type header in that case and let the server sniff.
func ContentType(path string) string {
	f, err := os.Open(path)
	if err != nil {
		return contentTypeFromExtension(path)
	}
	defer f.Close()

	if _, fileType, err := tag.Identify(f); err == nil {
		if ct := contentTypeFromFileType(fileType); ct != "" {
			return ct
		}
	}
	return contentTypeFromExtension(path)
}

// contentTypeFromFileType maps the tag library's detected file type to a MIME
// type. WAV and raw AAC are not identified by the library and resolve through
// the extension fallback instead.
func contentTypeFromFileType(ft tag.FileType) string {
	switch ft {
	case tag.MP3:
		return "audio/mpeg"
	case tag.FLAC:
		return "audio/flac"
	case tag.OGG:
		return "audio/ogg"
	case tag.M4A, tag.M4B, tag.M4P, tag.ALAC:
		return "audio/mp4"
	default:
		return ""
	}
}

func contentTypeFromExtension(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".mp4":
		return "video/mp4"
	case ".mp3":
		return "audio/mpeg"
	case ".wav":
		return "audio/wav"
	case ".m4a":
		return "audio/mp4"
	case ".flac":
		return "audio/flac"
	case ".aac":
		return "audio/aac"
	case ".ogg":
		return "audio/ogg"
	default:
		return ""
	}
}
