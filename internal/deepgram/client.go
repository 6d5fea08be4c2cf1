// Package deepgram implements the slice of the Deepgram REST API that batch
// transcription needs: posting a media file to /v1/listen with the transcription
// options in the query string, and validating an API key against /v1/auth/token.
//
// Uploads stream straight from disk; the file is reopened for every attempt so
// retries never depend on a rewindable reader.
package deepgram

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/schollz/progressbar/v3"

	"github.com/backmassage/scribemaster/internal/audio"
)

const (
	listenPath = "/v1/listen"
	authPath   = "/v1/auth/token"

	keyCheckTimeout = 30 * time.Second
)

// Options controls how transcription requests are built and retried.
type Options struct {
	Model        string
	Language     string
	SmartFormat  bool
	Timeout      time.Duration // Per-attempt deadline.
	MaxRetries   int           // Total attempts, including the first.
	ShowProgress bool          // Render an upload progress bar on stderr.
}

// Client talks to one Deepgram deployment with one API key.
type Client struct {
	baseURL string
	apiKey  string
	opts    Options
	httpc   *http.Client
}

// NewClient returns a client for baseURL. Zero or negative Timeout and
// MaxRetries fall back to safe values; the deadline lives in the request
// context, so the underlying http.Client carries no timeout of its own.
func NewClient(baseURL, apiKey string, opts Options) *Client {
	if opts.Timeout <= 0 {
		opts.Timeout = 10 * time.Minute
	}
	if opts.MaxRetries < 1 {
		opts.MaxRetries = 1
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		opts:    opts,
		httpc:   &http.Client{},
	}
}

// Transcribe uploads the media file at path and returns the decoded response.
// Transient failures (network errors, per-attempt timeouts, HTTP 408/429/5xx)
// are retried immediately up to Options.MaxRetries total attempts. Permanent
// failures and context cancellation return right away.
func (c *Client) Transcribe(ctx context.Context, path string) (*Response, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	contentType := audio.ContentType(path)

	var lastErr error
	for attempt := 1; attempt <= c.opts.MaxRetries; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if attempt > 1 {
			log.Warn().Msgf("Retry %d/%d: %s", attempt, c.opts.MaxRetries, filepath.Base(path))
		}
		resp, err := c.transcribeOnce(ctx, path, contentType, fi.Size())
		if err == nil {
			return resp, nil
		}
		lastErr = err
		if !IsTransient(err) {
			return nil, err
		}
	}
	return nil, fmt.Errorf("giving up after %d attempt(s): %w", c.opts.MaxRetries, lastErr)
}

func (c *Client) transcribeOnce(ctx context.Context, path, contentType string, size int64) (*Response, error) {
	attemptCtx, cancel := context.WithTimeout(ctx, c.opts.Timeout)
	defer cancel()

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var body io.Reader = f
	if c.opts.ShowProgress {
		bar := progressbar.NewOptions64(size,
			progressbar.OptionSetDescription("uploading "+filepath.Base(path)),
			progressbar.OptionSetWriter(os.Stderr),
			progressbar.OptionShowBytes(true),
			progressbar.OptionClearOnFinish(),
		)
		body = io.TeeReader(f, bar)
		defer func() { _ = bar.Finish() }()
	}

	req, err := http.NewRequestWithContext(attemptCtx, http.MethodPost, c.listenURL(), body)
	if err != nil {
		return nil, err
	}
	req.ContentLength = size
	req.Header.Set("Authorization", "Token "+c.apiKey)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &APIError{StatusCode: resp.StatusCode, Body: excerpt(data)}
	}

	var out Response
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	out.Raw = data
	return &out, nil
}

// listenURL builds the /v1/listen URL. The fixed formatting options mirror
// what the legacy script always sent: punctuation, paragraphs and utterances
// on, diarization off.
func (c *Client) listenURL() string {
	q := url.Values{}
	q.Set("model", c.opts.Model)
	q.Set("language", c.opts.Language)
	q.Set("smart_format", strconv.FormatBool(c.opts.SmartFormat))
	q.Set("punctuate", "true")
	q.Set("paragraphs", "true")
	q.Set("utterances", "true")
	q.Set("diarize", "false")
	return c.baseURL + listenPath + "?" + q.Encode()
}

// VerifyKey checks the configured API key against the auth endpoint.
// A nil return means the key was accepted.
func (c *Client) VerifyKey(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, keyCheckTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+authPath, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Token "+c.apiKey)

	resp, err := c.httpc.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	data, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &APIError{StatusCode: resp.StatusCode, Body: excerpt(data)}
	}
	return nil
}

// excerpt collapses a response body to one short line for error messages.
func excerpt(b []byte) string {
	s := strings.Join(strings.Fields(string(b)), " ")
	const max = 200
	if len(s) > max {
		s = s[:max] + "..."
	}
	return s
}
