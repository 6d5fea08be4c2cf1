package cli

import (
	"context"
	"path/filepath"

	"github.com/backmassage/scribemaster/internal/check"
	"github.com/backmassage/scribemaster/internal/config"
	"github.com/backmassage/scribemaster/internal/deepgram"
)

type CheckCMD struct {
	APIFlags `embed:""`

	InputDir  string `name:"input-dir" short:"i" default:"." help:"Directory scanned for media files"`
	OutputDir string `name:"output-dir" short:"o" help:"Directory for transcript artifacts (default: <input-dir>/transcripts)"`
}

func (c *CheckCMD) Run(cctx *Context) error {
	cfg := config.DefaultConfig()
	cfg.InputDir = config.NormalizeDirArg(c.InputDir)
	cfg.OutputDir = config.NormalizeDirArg(c.OutputDir)
	cfg.APIKey = c.APIKey
	cfg.BaseURL = c.APIURL
	if cfg.OutputDir == "" {
		cfg.OutputDir = filepath.Join(cfg.InputDir, "transcripts")
	}

	client := deepgram.NewClient(cfg.BaseURL, cfg.APIKey, deepgram.Options{})
	return check.Run(context.Background(), &cfg, client)
}
