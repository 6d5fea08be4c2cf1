// Package check provides system diagnostics (check command): API key
// presence and verification, directory status, and the supported format
// list. Diagnostics print everything they find and only the key problems
// turn into an error, so users see the full picture in one pass.
package check

import (
	"context"
	"errors"
	"os"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/backmassage/scribemaster/internal/config"
	"github.com/backmassage/scribemaster/internal/deepgram"
	"github.com/backmassage/scribemaster/internal/pipeline"
)

// Sentinel errors returned by Run when the API key cannot be used.
var (
	ErrNoAPIKey    = errors.New("no API key configured")
	ErrKeyRejected = errors.New("API key rejected by the API")
)

// KeyVerifier is the minimal API capability Run needs. Defined here (rather
// than depending on the concrete client) so check stays testable with a stub.
type KeyVerifier interface {
	VerifyKey(ctx context.Context) error
}

// Run executes the diagnostic flow: key presence, key verification, input
// and output directory status, supported formats. It returns nil when the
// key is usable; an unreachable API is only warned about, since that says
// nothing about the configuration itself.
func Run(ctx context.Context, cfg *config.Config, v KeyVerifier) error {
	log.Info().Msg("=== System Check ===")

	err := checkKey(ctx, cfg, v)
	checkInputDir(cfg)
	checkOutputDir(cfg)
	log.Info().Msgf("Supported formats: %s", strings.Join(pipeline.Extensions(), " "))
	return err
}

func checkKey(ctx context.Context, cfg *config.Config, v KeyVerifier) error {
	if cfg.APIKey == "" {
		log.Error().Msg("API key: not set (use --api-key or DEEPGRAM_API_KEY)")
		return ErrNoAPIKey
	}
	log.Info().Msgf("API key: %s", maskKey(cfg.APIKey))

	if v == nil {
		return nil
	}
	err := v.VerifyKey(ctx)
	if err == nil {
		log.Info().Msg("API key accepted")
		return nil
	}
	var apiErr *deepgram.APIError
	if errors.As(err, &apiErr) && !apiErr.Transient() {
		log.Error().Msgf("API key rejected: %v", err)
		return ErrKeyRejected
	}
	log.Warn().Msgf("Could not reach API: %v", err)
	return nil
}

func checkInputDir(cfg *config.Config) {
	fi, err := os.Stat(cfg.InputDir)
	if err != nil || !fi.IsDir() {
		log.Warn().Msgf("Input: %s (not found)", cfg.InputDir)
		return
	}
	files, err := pipeline.Discover(cfg.InputDir)
	if err != nil {
		log.Warn().Msgf("Input: %s (unreadable: %v)", cfg.InputDir, err)
		return
	}
	log.Info().Msgf("Input: %s (%d media file(s))", cfg.InputDir, len(files))
}

func checkOutputDir(cfg *config.Config) {
	if cfg.OutputDir == "" {
		return
	}
	if fi, err := os.Stat(cfg.OutputDir); err == nil && fi.IsDir() {
		log.Info().Msgf("Output: %s (exists)", cfg.OutputDir)
	} else {
		log.Info().Msgf("Output: %s (will be created)", cfg.OutputDir)
	}
}

// maskKey hides all but the last four characters of the key.
func maskKey(k string) string {
	if len(k) <= 4 {
		return "****"
	}
	return "****" + k[len(k)-4:]
}
