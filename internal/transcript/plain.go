package transcript

import (
	"os"
	"strings"
)

const ruleWidth = 80

// header returns the artifact banner: a title line, a rule of '=' characters,
// and a blank separator line.
func header(title string) string {
	return title + "\n" + strings.Repeat("=", ruleWidth) + "\n\n"
}

// WritePlain renders the plain transcript artifact. The text is written
// verbatim unless wrap is positive, in which case each line is greedily
// wrapped at that column without breaking words.
func WritePlain(path, sourceName, text string, wrap int) error {
	var b strings.Builder
	b.WriteString(header("Transcript: " + sourceName))
	if wrap > 0 {
		text = wrapText(text, wrap)
	}
	b.WriteString(text)
	if !strings.HasSuffix(text, "\n") {
		b.WriteByte('\n')
	}
	return os.WriteFile(path, []byte(b.String()), 0644)
}

// wrapText wraps each line of s at width columns. Words longer than the
// width stay on a line of their own; blank lines survive so paragraph
// breaks are preserved.
func wrapText(s string, width int) string {
	var out []string
	for _, line := range strings.Split(s, "\n") {
		words := strings.Fields(line)
		if len(words) == 0 {
			out = append(out, "")
			continue
		}
		cur := words[0]
		for _, w := range words[1:] {
			if len(cur)+1+len(w) > width {
				out = append(out, cur)
				cur = w
			} else {
				cur += " " + w
			}
		}
		out = append(out, cur)
	}
	return strings.Join(out, "\n")
}
