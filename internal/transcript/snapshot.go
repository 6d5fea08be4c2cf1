package transcript

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

// WriteSnapshot archives the verbatim API response, pretty-printed, as the
// JSON artifact. It fails when raw is empty or not valid JSON; callers treat
// that as a warning rather than a file failure, since the transcripts have
// already been written at that point.
func WriteSnapshot(path string, raw []byte) error {
	if len(raw) == 0 {
		return errors.New("empty response payload")
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "  "); err != nil {
		return fmt.Errorf("response is not valid JSON: %w", err)
	}
	buf.WriteByte('\n')
	return os.WriteFile(path, buf.Bytes(), 0644)
}
