// Package vwaclient is the programmatic client for the tokenization API.
// It owns all network I/O for consumers: a configured resource client,
// the endpoint registry, a keyed query cache with request coalescing,
// and pure portfolio/market view derivations.
package vwaclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"
)

// SessionStore holds the bearer credential for the current session. The
// store is passed into the client explicitly; there is no ambient global
// credential lookup.
type SessionStore interface {
	Token() string
	SetToken(token string)
	Clear()
}

// MemorySessionStore is a mutex-guarded in-memory SessionStore.
type MemorySessionStore struct {
	mu    sync.Mutex
	token string
}

func NewMemorySessionStore() *MemorySessionStore { return &MemorySessionStore{} }

func (s *MemorySessionStore) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

func (s *MemorySessionStore) SetToken(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
}

func (s *MemorySessionStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
}

// NetworkError wraps a transport failure: no response was received.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string { return fmt.Sprintf("network error: %v", e.Err) }
func (e *NetworkError) Unwrap() error { return e.Err }

// HTTPError is a received non-2xx response. The body is retained for
// caller-side display.
type HTTPError struct {
	Status int
	Body   []byte
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("http error: status %d: %s", e.Status, e.Body)
}

// SchemaError is a response body that did not match the endpoint's
// declared shape. Shapes are validated at the client boundary so that
// malformed payloads never propagate into view code.
type SchemaError struct {
	Endpoint string
	Err      error
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("schema error: %s: %v", e.Endpoint, e.Err)
}
func (e *SchemaError) Unwrap() error { return e.Err }

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpc = hc }
}

// WithOnSessionInvalid registers the session-invalidated handler. The
// host decides what invalidation means (redirect to login, re-prompt for
// a wallet); the client itself never reloads anything.
func WithOnSessionInvalid(fn func()) Option {
	return func(c *Client) { c.onSessionInvalid = fn }
}

// Client is the resource client. It is the sole component permitted to
// perform network I/O against the API.
type Client struct {
	baseURL          string
	httpc            *http.Client
	session          SessionStore
	onSessionInvalid func()
}

// NewClient creates a resource client for the given base URL. The
// session store is required; pass a fresh MemorySessionStore for an
// unauthenticated client.
func NewClient(baseURL string, session SessionStore, opts ...Option) *Client {
	c := &Client{
		baseURL: baseURL,
		httpc:   &http.Client{Timeout: 30 * time.Second},
		session: session,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Do performs a request against the API. The bearer credential is
// attached when one exists. A 401 clears the stored credential and
// emits the session-invalidated signal exactly once per response,
// before the HTTPError is returned.
func (c *Client) Do(ctx context.Context, method, path string, body any) ([]byte, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encoding request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.session.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, &NetworkError{Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &NetworkError{Err: err}
	}

	if resp.StatusCode == http.StatusUnauthorized {
		c.session.Clear()
		if c.onSessionInvalid != nil {
			c.onSessionInvalid()
		}
		return nil, &HTTPError{Status: resp.StatusCode, Body: respBody}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &HTTPError{Status: resp.StatusCode, Body: respBody}
	}

	return respBody, nil
}

// envelope is the server's success wrapper.
type envelope[T any] struct {
	Data T `json:"data"`
}

// decode unmarshals an enveloped response body into T, reporting a
// SchemaError on mismatch.
func decode[T any](endpoint string, body []byte) (T, error) {
	var env envelope[T]
	if err := json.Unmarshal(body, &env); err != nil {
		var zero T
		return zero, &SchemaError{Endpoint: endpoint, Err: err}
	}
	return env.Data, nil
}

// Call performs a registry-named request and decodes the enveloped
// response into T.
func Call[T any](ctx context.Context, c *Client, name string, params map[string]string, body any) (T, error) {
	var zero T
	ep, ok := Lookup(name)
	if !ok {
		return zero, fmt.Errorf("unknown endpoint %q", name)
	}
	respBody, err := c.Do(ctx, ep.Method, ep.Render(params), body)
	if err != nil {
		return zero, err
	}
	return decode[T](name, respBody)
}
