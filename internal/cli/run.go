package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/backmassage/scribemaster/internal/config"
	"github.com/backmassage/scribemaster/internal/deepgram"
	"github.com/backmassage/scribemaster/internal/pipeline"
	"github.com/backmassage/scribemaster/internal/term"
)

type RunCMD struct {
	APIFlags `embed:""`

	InputDir    string        `name:"input-dir" short:"i" default:"." help:"Directory scanned for media files"`
	OutputDir   string        `name:"output-dir" short:"o" help:"Directory for transcript artifacts (default: <input-dir>/transcripts)"`
	Model       string        `short:"m" default:"nova-3" help:"Transcription model identifier"`
	Language    string        `short:"l" default:"en" help:"Spoken language code"`
	SmartFormat bool          `default:"true" negatable:"" help:"Apply smart formatting (punctuation, numerals) to the transcript"`
	Timeout     time.Duration `default:"10m" help:"Wall-clock limit per upload attempt"`
	MaxRetries  int           `default:"3" help:"Total attempts per file, including the first"`
	Wrap        int           `default:"0" help:"Soft-wrap the plain transcript at this column (0 disables)"`
	Force       bool          `short:"f" help:"Retranscribe files whose transcript already exists"`
	DryRun      bool          `short:"d" help:"Show what would be transcribed without uploading or writing"`
	NoProgress  bool          `help:"Disable the upload progress bar"`
}

func (r *RunCMD) Run(cctx *Context) error {
	cfg := config.DefaultConfig()
	cfg.InputDir = config.NormalizeDirArg(r.InputDir)
	cfg.OutputDir = config.NormalizeDirArg(r.OutputDir)
	cfg.APIKey = r.APIKey
	cfg.BaseURL = r.APIURL
	cfg.Model = r.Model
	cfg.Language = r.Language
	cfg.SmartFormat = r.SmartFormat
	cfg.Timeout = r.Timeout
	cfg.MaxRetries = r.MaxRetries
	cfg.DryRun = r.DryRun
	cfg.SkipExisting = !r.Force
	cfg.WrapWidth = r.Wrap
	cfg.ShowProgress = !r.NoProgress && term.IsTerminal(os.Stderr)
	if cfg.OutputDir == "" {
		cfg.OutputDir = filepath.Join(cfg.InputDir, "transcripts")
	}

	if err := cfg.Validate(); err != nil {
		return err
	}

	// The output directory is created up front so path resolution below sees
	// the real directory, not a dangling path.
	if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
		return fmt.Errorf("cannot create output directory %s: %w", cfg.OutputDir, err)
	}

	// A missing input directory is not fatal here: the pipeline reports it as
	// an empty run. Path safety is only checked when input actually resolves.
	if inputAbs, err := absPath(cfg.InputDir); err == nil {
		outputAbs, err := absPath(cfg.OutputDir)
		if err != nil {
			return fmt.Errorf("cannot resolve output path %s: %w", cfg.OutputDir, err)
		}
		if err := cfg.ValidatePaths(inputAbs, outputAbs); err != nil {
			return err
		}
	}

	// Cancel the run context on SIGINT/SIGTERM so the batch can stop between
	// files without leaving partial output.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		log.Warn().Msg("Received interrupt, finishing current file…")
		cancel()
	}()

	client := deepgram.NewClient(cfg.BaseURL, cfg.APIKey, deepgram.Options{
		Model:        cfg.Model,
		Language:     cfg.Language,
		SmartFormat:  cfg.SmartFormat,
		Timeout:      cfg.Timeout,
		MaxRetries:   cfg.MaxRetries,
		ShowProgress: cfg.ShowProgress,
	})

	stats := pipeline.Run(ctx, &cfg, client)
	if stats.Failed > 0 {
		return fmt.Errorf("%d file(s) failed", stats.Failed)
	}
	return nil
}

// absPath returns the absolute, symlink-resolved path for safe comparison of
// the input and output directories.
func absPath(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	return filepath.EvalSymlinks(abs)
}
