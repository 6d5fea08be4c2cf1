// Package config holds runtime configuration: defaults, validation, and path
// rules. All defaults match the legacy transcription script for parity.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ColorMode controls ANSI color output.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"   // Enable colors when stderr is a TTY (default).
	ColorAlways ColorMode = "always" // Force colors on.
	ColorNever  ColorMode = "never"  // Disable colors entirely.
)

// Config holds all runtime settings. It is populated by [DefaultConfig] and
// then mutated by the CLI layer before being passed (by pointer) to packages
// that need it. Fields are grouped by concern with inline documentation of
// defaults and fixed values.
type Config struct {
	// Paths.
	InputDir  string
	OutputDir string // Default: "<InputDir>/transcripts".

	// API settings.
	APIKey      string
	BaseURL     string        // Default: "https://api.deepgram.com".
	Model       string        // Default: "nova-3".
	Language    string        // Default: "en".
	SmartFormat bool          // Default: true. Cleared by --no-smart-format.
	Timeout     time.Duration // Per-attempt request timeout. Default: 10m.
	MaxRetries  int           // Total attempts per file. Default: 3.

	// Behavior flags.
	DryRun       bool
	SkipExisting bool // Default: true. Cleared by --force.
	WrapWidth    int  // Plain transcript wrap column. Default: 0 (verbatim).

	// Display and logging.
	ShowProgress bool      // Default: true. Cleared by --no-progress.
	ColorMode    ColorMode // Default: "auto".
	LogLevel     string    // Default: "info".
	LogFile      string    // Optional log file path.
}

// DefaultConfig returns a Config with all defaults matching the legacy
// transcription script. Used as the base before the CLI applies overrides.
func DefaultConfig() Config {
	return Config{
		InputDir:     ".",
		BaseURL:      "https://api.deepgram.com",
		Model:        "nova-3",
		Language:     "en",
		SmartFormat:  true,
		Timeout:      10 * time.Minute,
		MaxRetries:   3,
		DryRun:       false,
		SkipExisting: true,
		WrapWidth:    0,
		ShowProgress: true,
		ColorMode:    ColorAuto,
		LogLevel:     "info",
	}
}

// NormalizeDirArg strips trailing slashes from a directory path.
// The filesystem root "/" is returned unchanged so we don't produce an empty string.
func NormalizeDirArg(path string) string {
	if path == "/" {
		return "/"
	}
	return strings.TrimRight(path, "/")
}

// Validate checks field values that the CLI layer cannot enforce through flag
// tags alone. It does not touch the filesystem; path resolution is checked
// separately by [Config.ValidatePaths].
func (c *Config) Validate() error {
	if c.InputDir == "" {
		return errors.New("input directory must not be empty")
	}
	if c.Model == "" {
		return errors.New("model must not be empty")
	}
	if c.Language == "" {
		return errors.New("language must not be empty")
	}
	if c.BaseURL == "" {
		return errors.New("API URL must not be empty")
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("invalid timeout %v (must be positive)", c.Timeout)
	}
	if c.MaxRetries < 1 {
		return fmt.Errorf("invalid max retries %d (must be at least 1)", c.MaxRetries)
	}
	if c.WrapWidth < 0 {
		return fmt.Errorf("invalid wrap width %d (must not be negative)", c.WrapWidth)
	}
	switch c.ColorMode {
	case ColorAuto, ColorAlways, ColorNever:
		// valid
	default:
		return errors.New("invalid color mode (use 'auto', 'always' or 'never')")
	}
	if !c.DryRun && c.APIKey == "" {
		return errors.New("no API key (set DEEPGRAM_API_KEY or pass --api-key)")
	}
	return nil
}

// ValidatePaths ensures the resolved output directory is not the input
// directory itself, which would drop transcript artifacts next to the media
// sources. A nested output directory is allowed; discovery never descends
// into subdirectories. Both arguments must be absolute, symlink-resolved
// paths.
func (c *Config) ValidatePaths(inputAbs, outputAbs string) error {
	if outputAbs == inputAbs {
		return errors.New("output directory must not be the input directory itself")
	}
	return nil
}
