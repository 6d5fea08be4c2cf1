package transcript

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/backmassage/scribemaster/internal/deepgram"
)

// Words are grouped into fixed buckets of this many seconds; a word belongs
// to the bucket its start offset falls in, regardless of where the previous
// bucket's words ended.
const bucketSeconds = 10

// ErrNoWords reports a response that carried no word-level timings, so no
// timestamped transcript can be built.
var ErrNoWords = errors.New("response has no word timings")

// WriteTimestamped renders the timestamped transcript artifact: one
// paragraph per populated ten-second bucket, prefixed with the bucket's
// start offset as [MM:SS].
func WriteTimestamped(path, sourceName string, words []deepgram.Word) error {
	if len(words) == 0 {
		return ErrNoWords
	}
	var b strings.Builder
	b.WriteString(header("Timestamped Transcript: " + sourceName))
	b.WriteString(strings.Join(bucketLines(words), "\n\n"))
	b.WriteByte('\n')
	return os.WriteFile(path, []byte(b.String()), 0644)
}

// bucketLines renders words into "[MM:SS] text" lines. Buckets with no word
// starts produce no line, so silence gaps collapse instead of printing empty
// markers.
func bucketLines(words []deepgram.Word) []string {
	var lines []string
	bucket := -1
	var texts []string
	flush := func() {
		if len(texts) > 0 {
			offset := bucket * bucketSeconds
			lines = append(lines, fmt.Sprintf("[%s] %s", formatOffset(offset), strings.Join(texts, " ")))
		}
		texts = nil
	}
	for _, w := range words {
		bkt := 0
		if w.Start > 0 {
			bkt = int(w.Start) / bucketSeconds
		}
		if bkt != bucket {
			flush()
			bucket = bkt
		}
		texts = append(texts, w.Text())
	}
	flush()
	return lines
}

// formatOffset renders a second offset as MM:SS. Minutes run past 59 for
// long recordings ("75:07") rather than rolling into hours.
func formatOffset(seconds int) string {
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}
