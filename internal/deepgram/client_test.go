package deepgram

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

const sampleResponse = `{
  "metadata": {
    "request_id": "4d36b2f9-0d12-4bd8-96c6-2f7a0e2b9c10",
    "created": "2026-08-23T10:15:04.000Z",
    "duration": 12.5,
    "channels": 1,
    "models": ["general-nova-3"]
  },
  "results": {
    "channels": [
      {
        "alternatives": [
          {
            "transcript": "Hello world. This is a test.",
            "confidence": 0.9871,
            "words": [
              {"word": "hello", "start": 0.08, "end": 0.49, "confidence": 0.99, "punctuated_word": "Hello"},
              {"word": "world", "start": 0.56, "end": 1.02, "confidence": 0.98, "punctuated_word": "world."}
            ]
          }
        ]
      }
    ]
  }
}`

func mediaFile(t *testing.T, name string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	data := make([]byte, 2048)
	copy(data, "media payload")
	require.NoError(t, os.WriteFile(path, data, 0644))
	return path
}

func testOptions() Options {
	return Options{
		Model:       "nova-3",
		Language:    "en",
		SmartFormat: true,
		Timeout:     5 * time.Second,
		MaxRetries:  3,
	}
}

func TestTranscribe_Success(t *testing.T) {
	var gotReq *http.Request
	var gotBody []byte
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotReq = r.Clone(context.Background())
		gotBody, _ = io.ReadAll(r.Body)
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, sampleResponse)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "dg_test_key", testOptions())
	res, err := c.Transcribe(context.Background(), mediaFile(t, "clip.mp3"))
	require.NoError(t, err)

	require.Equal(t, http.MethodPost, gotReq.Method)
	require.Equal(t, "/v1/listen", gotReq.URL.Path)
	require.Equal(t, "Token dg_test_key", gotReq.Header.Get("Authorization"))
	require.Equal(t, "audio/mpeg", gotReq.Header.Get("Content-Type"))
	q := gotReq.URL.Query()
	require.Equal(t, "nova-3", q.Get("model"))
	require.Equal(t, "en", q.Get("language"))
	require.Equal(t, "true", q.Get("smart_format"))
	require.Equal(t, "true", q.Get("punctuate"))
	require.Equal(t, "true", q.Get("paragraphs"))
	require.Equal(t, "true", q.Get("utterances"))
	require.Equal(t, "false", q.Get("diarize"))
	require.Len(t, gotBody, 2048)

	require.Equal(t, "Hello world. This is a test.", res.Transcript())
	require.InDelta(t, 0.9871, res.Confidence(), 1e-9)
	require.Len(t, res.Words(), 2)
	require.Equal(t, "Hello", res.Words()[0].Text())
	require.Equal(t, 12500*time.Millisecond, res.AudioDuration())
	require.JSONEq(t, sampleResponse, string(res.Raw))
}

func TestTranscribe_RetriesTransientThenSucceeds(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hits.Add(1) < 3 {
			http.Error(w, `{"err_msg":"backend busy"}`, http.StatusServiceUnavailable)
			return
		}
		fmt.Fprint(w, sampleResponse)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "dg_test_key", testOptions())
	res, err := c.Transcribe(context.Background(), mediaFile(t, "clip.wav"))
	require.NoError(t, err)
	require.Equal(t, int32(3), hits.Load())
	require.NotEmpty(t, res.Transcript())
}

func TestTranscribe_GivesUpAfterMaxAttempts(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		http.Error(w, "upstream down", http.StatusBadGateway)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "dg_test_key", testOptions())
	_, err := c.Transcribe(context.Background(), mediaFile(t, "clip.mp3"))
	require.Error(t, err)
	require.Equal(t, int32(3), hits.Load())
	require.Contains(t, err.Error(), "giving up after 3 attempt(s)")

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusBadGateway, apiErr.StatusCode)
}

func TestTranscribe_PermanentFailureNotRetried(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		http.Error(w, `{"err_code":"INVALID_AUTH"}`, http.StatusUnauthorized)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "bad_key", testOptions())
	_, err := c.Transcribe(context.Background(), mediaFile(t, "clip.mp3"))
	require.Error(t, err)
	require.Equal(t, int32(1), hits.Load())

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	require.False(t, apiErr.Transient())
}

func TestTranscribe_AttemptTimeoutIsRetried(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer srv.Close()

	opts := testOptions()
	opts.Timeout = 50 * time.Millisecond
	opts.MaxRetries = 2
	c := NewClient(srv.URL, "dg_test_key", opts)
	_, err := c.Transcribe(context.Background(), mediaFile(t, "clip.mp3"))
	require.Error(t, err)
	require.Equal(t, int32(2), hits.Load())
	require.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestTranscribe_CanceledBeforeStart(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := NewClient(srv.URL, "dg_test_key", testOptions())
	_, err := c.Transcribe(ctx, mediaFile(t, "clip.mp3"))
	require.ErrorIs(t, err, context.Canceled)
	require.Equal(t, int32(0), hits.Load())
}

func TestTranscribe_MissingFile(t *testing.T) {
	c := NewClient("http://127.0.0.1:1", "dg_test_key", testOptions())
	_, err := c.Transcribe(context.Background(), filepath.Join(t.TempDir(), "absent.mp3"))
	require.Error(t, err)
	require.True(t, os.IsNotExist(err))
}

func TestVerifyKey(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		if r.Header.Get("Authorization") != "Token good_key" {
			http.Error(w, `{"err_code":"INVALID_AUTH"}`, http.StatusUnauthorized)
			return
		}
		fmt.Fprint(w, `{"key_id":"abc"}`)
	}))
	defer srv.Close()

	good := NewClient(srv.URL, "good_key", testOptions())
	require.NoError(t, good.VerifyKey(context.Background()))
	require.Equal(t, "/v1/auth/token", gotPath)

	bad := NewClient(srv.URL, "bad_key", testOptions())
	err := bad.VerifyKey(context.Background())
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
}

func TestIsTransient(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"canceled", context.Canceled, false},
		{"deadline", context.DeadlineExceeded, true},
		{"server error", &APIError{StatusCode: 500}, true},
		{"bad gateway", &APIError{StatusCode: 502}, true},
		{"rate limited", &APIError{StatusCode: 429}, true},
		{"request timeout", &APIError{StatusCode: 408}, true},
		{"bad request", &APIError{StatusCode: 400}, false},
		{"unauthorized", &APIError{StatusCode: 401}, false},
		{"payload too large", &APIError{StatusCode: 413}, false},
		{"wrapped api error", fmt.Errorf("attempt: %w", &APIError{StatusCode: 503}), true},
		{"plain error", errors.New("boom"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, IsTransient(tt.err))
		})
	}
}
