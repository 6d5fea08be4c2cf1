package display

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		name  string
		bytes int64
		want  string
	}{
		{"zero", 0, "0 B"},
		{"small bytes", 512, "512 B"},
		{"exactly 1 KiB", 1024, "1.0 KiB"},
		{"1.5 KiB", 1536, "1.5 KiB"},
		{"1 MiB", 1024 * 1024, "1.0 MiB"},
		{"1 GiB", 1024 * 1024 * 1024, "1.0 GiB"},
		{"typical recording 700 MiB", 734003200, "700.0 MiB"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, FormatBytes(tt.bytes))
		})
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		name string
		d    time.Duration
		want string
	}{
		{"zero", 0, "0s"},
		{"seconds only", 42 * time.Second, "42s"},
		{"rounds subsecond", 41*time.Second + 600*time.Millisecond, "42s"},
		{"minutes and seconds", 3*time.Minute + 7*time.Second, "3m 7s"},
		{"exact minute", time.Minute, "1m 0s"},
		{"hours", time.Hour + 12*time.Minute + 3*time.Second, "1h 12m 3s"},
		{"negative clamps to zero", -5 * time.Second, "0s"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, FormatDuration(tt.d))
		})
	}
}

func TestFormatConfidence(t *testing.T) {
	tests := []struct {
		name string
		c    float64
		want string
	}{
		{"high", 0.98765, "98.8%"},
		{"low", 0.5, "50.0%"},
		{"zero", 0, "0.0%"},
		{"full", 1, "100.0%"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, FormatConfidence(tt.c))
		})
	}
}
