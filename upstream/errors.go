package upstream

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrUnauthorized is returned when the upstream rejects the bearer token
// (401) or refuses the action (403). By the time a caller sees it the
// session store has already been forced to Anonymous; the caller's job is
// to route the user to a login view, never to retry.
var ErrUnauthorized = errors.New("upstream: unauthorized")

// ErrNetworkUnavailable is returned when no response was received at all —
// DNS failure, refused connection, timeout. Distinct from server-reported
// errors so the UI can offer "retry" rather than "fix your input".
var ErrNetworkUnavailable = errors.New("upstream: network unavailable")

// APIError is a 4xx/5xx the upstream reported. Message carries the JSON
// error body's message when one was present, else the status text.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("upstream: %d %s", e.StatusCode, e.Message)
}

// newAPIError builds an APIError from a status code and a decoded error
// body. Upstream error bodies use either "message" or "error" as the key.
func newAPIError(status int, body map[string]any) *APIError {
	msg := ""
	if m, ok := body["message"].(string); ok {
		msg = m
	} else if m, ok := body["error"].(string); ok {
		msg = m
	}
	if msg == "" {
		msg = http.StatusText(status)
	}
	return &APIError{StatusCode: status, Message: msg}
}
