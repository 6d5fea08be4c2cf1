// Package pipeline orchestrates file discovery, per-file processing, and
// batch summary reporting.
package pipeline

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/backmassage/scribemaster/internal/audio"
	"github.com/backmassage/scribemaster/internal/config"
	"github.com/backmassage/scribemaster/internal/deepgram"
	"github.com/backmassage/scribemaster/internal/display"
	"github.com/backmassage/scribemaster/internal/term"
	"github.com/backmassage/scribemaster/internal/transcript"
)

const minFileSize = 1000

// Transcriber is the remote speech-to-text capability the pipeline drives.
// *deepgram.Client satisfies it; tests substitute a scripted fake.
type Transcriber interface {
	Transcribe(ctx context.Context, path string) (*deepgram.Response, error)
}

// Run is the top-level batch entry point. It discovers files, prints the
// work list, processes each file sequentially, and returns aggregate stats.
// An unreadable or empty input directory is reported and yields zero stats;
// it is not an error for the batch as a whole.
func Run(ctx context.Context, cfg *config.Config, tr Transcriber) RunStats {
	var stats RunStats

	files, err := Discover(cfg.InputDir)
	if err != nil {
		log.Error().Msgf("File discovery failed: %v", err)
		return stats
	}
	if len(files) == 0 {
		log.Warn().Msgf("No media files found in %s", cfg.InputDir)
		log.Info().Msgf("Supported formats: %s", strings.Join(Extensions(), " "))
		return stats
	}

	stats.Total = len(files)
	logBatchHeader(cfg, files)

	for i, path := range files {
		stats.Current = i + 1

		if ctx.Err() != nil {
			log.Warn().Msg("Interrupted")
			break
		}

		processFile(ctx, cfg, tr, path, &stats)
	}

	logSummary(cfg, &stats)
	return stats
}

// processFile handles one media file: skip check → validate → transcribe
// with retry → render artifacts.
func processFile(ctx context.Context, cfg *config.Config, tr Transcriber, path string, stats *RunStats) {
	basename := filepath.Base(path)
	log.Info().Msgf("[%d/%d] %s", stats.Current, stats.Total, basename)

	arts := transcript.Artifacts(cfg.OutputDir, path)

	// --- Skip-existing check ---
	if cfg.SkipExisting && arts.PlainExists() {
		log.Warn().Msgf("Skip (already transcribed): %s", basename)
		stats.Skipped++
		return
	}

	// --- Validate ---
	fi, err := os.Stat(path)
	if err != nil {
		log.Error().Msgf("File not found: %s", path)
		stats.Failed++
		return
	}
	if fi.Size() < minFileSize {
		log.Error().Msgf("File too small (possibly corrupt): %s", path)
		stats.Failed++
		return
	}

	log.Info().Msgf("  Size: %s", display.FormatBytes(fi.Size()))
	logWAVStats(path)

	// --- Dry-run ---
	if cfg.DryRun {
		log.Info().Msgf("[DRY] Would transcribe with model %s (%s)", cfg.Model, cfg.Language)
		stats.Transcribed++
		return
	}

	// --- Transcribe with retry ---
	start := time.Now()
	res, err := tr.Transcribe(ctx, path)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			log.Warn().Msg("Interrupted during transcription")
			return
		}
		log.Error().Msgf("Transcription failed: %v", err)
		stats.Failed++
		return
	}

	// --- Render artifacts ---
	if !writeArtifacts(cfg, arts, basename, res) {
		stats.Failed++
		return
	}

	// --- Update stats ---
	stats.Transcribed++
	stats.TotalInputBytes += fi.Size()
	stats.AudioDuration += res.AudioDuration()

	log.Info().Msgf("Transcribed in %s (audio %s, confidence %s)",
		display.FormatDuration(time.Since(start)),
		display.FormatDuration(res.AudioDuration()),
		display.FormatConfidence(res.Confidence()))
}

// writeArtifacts renders the three artifacts in fixed order. The plain
// transcript is the one that counts: its failure fails the file. The
// timestamped transcript and the raw snapshot degrade to warnings so a
// rendering hiccup never wastes a paid transcription.
func writeArtifacts(cfg *config.Config, arts transcript.ArtifactSet, basename string, res *deepgram.Response) bool {
	if err := transcript.WritePlain(arts.Plain, basename, res.Transcript(), cfg.WrapWidth); err != nil {
		log.Error().Msgf("Cannot write transcript: %v", err)
		return false
	}
	log.Info().Msgf("  -> %s", filepath.Base(arts.Plain))

	if err := transcript.WriteTimestamped(arts.Timestamped, basename, res.Words()); err != nil {
		if errors.Is(err, transcript.ErrNoWords) {
			log.Warn().Msg("  No word timings in response, timestamped transcript skipped")
		} else {
			log.Warn().Msgf("  Timestamped transcript failed: %v", err)
		}
	} else {
		log.Info().Msgf("  -> %s", filepath.Base(arts.Timestamped))
	}

	if err := transcript.WriteSnapshot(arts.Snapshot, res.Raw); err != nil {
		log.Warn().Msgf("  Raw response not archived: %v", err)
	} else {
		log.Info().Msgf("  -> %s", filepath.Base(arts.Snapshot))
	}
	return true
}

// logWAVStats logs stream parameters for WAV sources. Other formats would
// need a full decode pass to know this, so they only get the size line.
func logWAVStats(path string) {
	if strings.ToLower(filepath.Ext(path)) != ".wav" {
		return
	}
	info, err := audio.ProbeWAV(path)
	if err != nil {
		log.Warn().Msgf("  WAV header unreadable: %v", err)
		return
	}
	log.Info().Msgf("  WAV: %d Hz | %d ch | %d bit | %s",
		info.SampleRate, info.Channels, info.BitDepth, display.FormatDuration(info.Duration))
}

// --- Logging helpers ---

// logBatchHeader prints the batch settings and the work list, marking each
// file [SKIP] or [TODO]. Files whose stems collide share one artifact set,
// which is worth a warning before any money is spent.
func logBatchHeader(cfg *config.Config, files []string) {
	log.Info().Msgf("Found %d file(s) in %s", len(files), cfg.InputDir)
	log.Info().Msgf("Model: %s | Language: %s | Smart format: %v", cfg.Model, cfg.Language, cfg.SmartFormat)
	log.Info().Msgf("Output: %s", cfg.OutputDir)

	stems := make(map[string]string, len(files))
	for _, path := range files {
		basename := filepath.Base(path)
		stem := transcript.Stem(path)
		if prev, dup := stems[stem]; dup {
			log.Warn().Msgf("  %s and %s share one transcript set (same stem %q)", prev, basename, stem)
		}
		stems[stem] = basename

		status := term.Green + "[TODO]" + term.NC
		if cfg.SkipExisting && transcript.Artifacts(cfg.OutputDir, path).PlainExists() {
			status = term.Yellow + "[SKIP]" + term.NC
		}
		log.Info().Msgf("  %s %s", status, basename)
	}

	if cfg.DryRun {
		log.Warn().Msg("DRY RUN: no uploads, no files written")
	}
}

func logSummary(cfg *config.Config, stats *RunStats) {
	log.Info().Msg("==============================")
	log.Info().Msgf("Done: %d transcribed, %d skipped, %d failed", stats.Transcribed, stats.Skipped, stats.Failed)
	log.Info().Msgf("  Total files processed: %d of %d", stats.Current, stats.Total)

	if cfg.DryRun {
		log.Info().Msg("  Audio transcribed: n/a (dry run)")
		return
	}
	if stats.Transcribed > 0 {
		log.Info().Msgf("  Media uploaded: %s", display.FormatBytes(stats.TotalInputBytes))
		log.Info().Msgf("  Audio transcribed: %s", display.FormatDuration(stats.AudioDuration))
	}
	log.Info().Msgf("  Transcripts in: %s", cfg.OutputDir)
}
