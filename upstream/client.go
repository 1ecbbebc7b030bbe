// Package upstream is the authenticated HTTP client for the movies API.
// It owns the single configured base URL, attaches the session's bearer
// token to every outbound request, and maps responses onto a fixed error
// taxonomy. Its one side effect outside of returning results is forcing the
// session store to Anonymous when the upstream rejects the token; it never
// retries and never navigates.
package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/w3lalitsaini/anti-movies/config"
	"github.com/w3lalitsaini/anti-movies/session"
)

// Client dispatches requests to the upstream movies API.
// Obtain one via New; the zero value is not usable.
type Client struct {
	baseURL string
	http    *http.Client
	store   *session.Store
	cache   *catalogCache
}

// Option customises a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client. Used by tests and by
// callers that need custom transport settings.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// New builds a client bound to cfg.APIBaseURL, reading credentials from the
// given session store on every request.
func New(cfg config.Config, store *session.Store, opts ...Option) *Client {
	c := &Client{
		baseURL: cfg.APIBaseURL,
		http:    &http.Client{Timeout: cfg.RequestTimeout},
		store:   store,
		cache:   newCatalogCache(cfg.CacheTTL),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// newRequest builds a request against the base URL with the current bearer
// token attached. An Anonymous store dispatches without an Authorization
// header — many catalog endpoints are public reads.
func (c *Client) newRequest(ctx context.Context, method, path string, query url.Values, contentType string, body io.Reader) (*http.Request, error) {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return nil, fmt.Errorf("upstream: building request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if s := c.store.Current(); s != nil {
		req.Header.Set("Authorization", "Bearer "+s.Token)
	}
	return req, nil
}

// send dispatches the request and decodes a 2xx body into out (when out is
// non-nil). Response handling follows one policy for every endpoint:
//
//   - no response at all        → error wrapping ErrNetworkUnavailable
//   - 401 or 403               → session store logout, then ErrUnauthorized
//   - any other 4xx/5xx        → *APIError from the JSON error body
//
// The logout trigger is the client's only side effect; redirecting the user
// afterwards is the caller's responsibility.
func (c *Client) send(req *http.Request, out any) error {
	resp, err := c.http.Do(req)
	if err != nil {
		// A cancelled context is the caller tearing the view down, not an
		// outage — keep it distinguishable so nobody renders a retry banner
		// into a page that no longer exists.
		if ctxErr := req.Context().Err(); ctxErr != nil {
			return fmt.Errorf("upstream: %s %s: %w", req.Method, req.URL.Path, ctxErr)
		}
		return fmt.Errorf("%w: %s %s: %v", ErrNetworkUnavailable, req.Method, req.URL.Path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		c.store.Logout()
		return ErrUnauthorized
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("upstream: reading response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var body map[string]any
		_ = json.Unmarshal(raw, &body) // best effort — fall back to status text
		return newAPIError(resp.StatusCode, body)
	}

	if out == nil || len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("upstream: decoding response: %w", err)
	}
	return nil
}

// doJSON runs a JSON-in/JSON-out call. in and out may each be nil.
func (c *Client) doJSON(ctx context.Context, method, path string, query url.Values, in, out any) error {
	var body io.Reader
	contentType := ""
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("upstream: encoding request: %w", err)
		}
		body = bytes.NewReader(raw)
		contentType = "application/json"
	}

	req, err := c.newRequest(ctx, method, path, query, contentType, body)
	if err != nil {
		return err
	}
	return c.send(req, out)
}
