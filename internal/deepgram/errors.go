package deepgram

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
)

// APIError is a non-2xx response from the API. Body holds a single-line
// excerpt of the response payload for log output.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("deepgram: HTTP %d", e.StatusCode)
	}
	return fmt.Sprintf("deepgram: HTTP %d: %s", e.StatusCode, e.Body)
}

// Transient reports whether the status is worth retrying: request timeout,
// rate limiting, or a server-side failure. Other 4xx responses indicate a
// problem with the request itself and will not improve on retry.
func (e *APIError) Transient() bool {
	switch {
	case e.StatusCode == http.StatusRequestTimeout:
		return true
	case e.StatusCode == http.StatusTooManyRequests:
		return true
	case e.StatusCode >= 500:
		return true
	default:
		return false
	}
}

// IsTransient classifies an error from [Client.Transcribe] attempts.
// User cancellation is never transient; a per-attempt deadline and network
// failures are. Anything else (bad request, malformed response, local I/O)
// fails the attempt for good.
func IsTransient(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Transient()
	}
	var netErr net.Error
	return errors.As(err, &netErr)
}
