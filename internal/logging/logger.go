// Package logging configures the global zerolog logger: console output on
// stderr, optional plain-text file sink, and level filtering. Call [Setup]
// once during startup, before any command runs.
package logging

import (
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/backmassage/scribemaster/internal/config"
	"github.com/backmassage/scribemaster/internal/term"
)

// Setup resolves the color mode, applies the requested log level, and points
// the global logger at stderr plus, when logFile is non-empty, an append-only
// file. The returned closer flushes and closes the file sink; it is safe to
// call when no file was opened.
func Setup(level, logFile string, mode config.ColorMode) (func() error, error) {
	term.Configure(mode)

	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return nil, err
	}
	zerolog.SetGlobalLevel(lvl)

	console := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: "15:04:05",
		NoColor:    !term.Enabled(),
	}

	var file *os.File
	writers := []io.Writer{console}
	if logFile != "" {
		if err := os.MkdirAll(filepath.Dir(logFile), 0755); err != nil {
			return nil, err
		}
		file, err = os.OpenFile(logFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
		if err != nil {
			return nil, err
		}
		writers = append(writers, zerolog.ConsoleWriter{
			Out:        file,
			TimeFormat: "2006-01-02 15:04:05",
			NoColor:    true,
		})
	}

	log.Logger = zerolog.New(zerolog.MultiLevelWriter(writers...)).With().Timestamp().Logger()

	closer := func() error {
		if file != nil {
			return file.Close()
		}
		return nil
	}
	return closer, nil
}
