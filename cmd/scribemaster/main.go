// Command scribemaster is the CLI entrypoint for the Scribemaster batch
// transcriber.
//
// It loads .env files, parses the command line, configures logging, and
// dispatches to the selected subcommand (run is the default).
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/backmassage/scribemaster/internal/cli"
	"github.com/backmassage/scribemaster/internal/config"
	"github.com/backmassage/scribemaster/internal/display"
	"github.com/backmassage/scribemaster/internal/logging"
)

// version and commit are injected at build time via -ldflags.
// When built with plain "go build" (no make), these retain their defaults.
var (
	version = "1.0.0"
	commit  = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	// Environment files load before kong so env-bound flags see their values.
	loadEnvFiles()

	kctx := kong.Parse(&cli.CLI,
		kong.Name("scribemaster"),
		kong.Description("Batch-transcribe media files with the Deepgram speech-to-text API."),
		kong.UsageOnError(),
		kong.Vars{
			"version": fmt.Sprintf("scribemaster %s (%s)", version, commit),
		},
	)

	// The logger doesn't exist yet, so setup errors go directly to stderr via
	// fmt. From here on all output goes through the global logger.
	closeLogs, err := logging.Setup(cli.CLI.LogLevel, cli.CLI.LogFile, config.ColorMode(cli.CLI.Color))
	if err != nil {
		fmt.Fprintf(os.Stderr, "scribemaster: %v\n", err)
		return 1
	}
	defer func() {
		if err := closeLogs(); err != nil {
			fmt.Fprintf(os.Stderr, "scribemaster: closing log file: %v\n", err)
		}
	}()

	display.PrintBanner()
	log.Info().Msgf("=== Scribemaster v%s (%s) ===", version, commit)

	if err := kctx.Run(&cli.CLI.Context); err != nil {
		log.Error().Msgf("%v", err)
		return 1
	}
	return 0
}

// loadEnvFiles pulls API credentials from .env files. godotenv never
// overrides variables already present in the environment, so a real
// DEEPGRAM_API_KEY always wins over a file.
func loadEnvFiles() {
	envFiles := []string{".env"}
	if homeDir, err := os.UserHomeDir(); err == nil {
		envFiles = append(envFiles, filepath.Join(homeDir, ".scribemaster.env"))
	}
	for _, envFile := range envFiles {
		if _, err := os.Stat(envFile); err != nil {
			continue
		}
		if err := godotenv.Load(envFile); err != nil {
			fmt.Fprintf(os.Stderr, "scribemaster: cannot load %s: %v\n", envFile, err)
		}
	}
}
