package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/require"

	"github.com/backmassage/scribemaster/internal/config"
)

func TestSetup_NoFile(t *testing.T) {
	closer, err := Setup("info", "", config.ColorNever)
	require.NoError(t, err)
	log.Info().Msg("test message")
	require.NoError(t, closer())
}

func TestSetup_WithFile(t *testing.T) {
	dir := t.TempDir()
	logFile := filepath.Join(dir, "nested", "scribemaster.log")

	closer, err := Setup("info", logFile, config.ColorNever)
	require.NoError(t, err)
	log.Info().Msg("to file")
	require.NoError(t, closer())

	b, err := os.ReadFile(logFile)
	require.NoError(t, err)
	require.Contains(t, string(b), "to file")
	require.Contains(t, string(b), "INF")
}

func TestSetup_BadLevel(t *testing.T) {
	_, err := Setup("chatty", "", config.ColorNever)
	require.Error(t, err)
}
