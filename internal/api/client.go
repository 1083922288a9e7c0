package api

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/existflow/taskboard/internal/logger"
	"github.com/google/uuid"
)

// TokenSource supplies the bearer token for each request. An empty token
// means the request goes out unauthenticated.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// Client talks to the project/task backend
type Client struct {
	baseURL    string
	tokens     TokenSource
	httpClient *http.Client
}

// Option configures a Client
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithTimeout bounds every request. Zero keeps the default of no timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.httpClient.Timeout = d }
}

// WithInsecureTLS skips certificate verification, for the backend's
// self-signed development certificate
func WithInsecureTLS() Option {
	return func(c *Client) {
		tr := http.DefaultTransport.(*http.Transport).Clone()
		tr.TLSClientConfig = &tls.Config{InsecureSkipVerify: true} //nolint:gosec
		c.httpClient.Transport = tr
	}
}

// New creates a client for the backend at baseURL
func New(baseURL string, tokens TokenSource, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		tokens:     tokens,
		httpClient: &http.Client{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the backend root without a trailing slash
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Do sends a JSON request and decodes a JSON response into out (when out is
// non-nil). Transport failures and non-2xx responses return *Error.
func (c *Client) Do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	url := c.baseURL + path
	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	requestID := uuid.New().String()
	req.Header.Set("X-Request-ID", requestID)
	c.authorize(ctx, req)

	logger.Debug("HTTP Request",
		logger.F("method", method),
		logger.F("url", url),
		logger.F("requestID", requestID),
		logger.F("authenticated", req.Header.Get("Authorization") != ""))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		logger.Error("HTTP request failed", logger.Err(err), logger.F("url", url))
		return &Error{Message: MessageUnreachable, Err: err}
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	logger.Debug("HTTP Response",
		logger.F("status", resp.StatusCode),
		logger.F("requestID", requestID))

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return &Error{StatusCode: resp.StatusCode, Message: MessageGeneric, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &Error{
			StatusCode: resp.StatusCode,
			Message:    messageFromBody(resp.Header.Get("Content-Type"), respBody),
		}
		logger.Warn("Request rejected",
			logger.F("method", method),
			logger.F("url", url),
			logger.F("status", resp.StatusCode),
			logger.F("message", apiErr.Message))
		return apiErr
	}

	if out == nil || len(bytes.TrimSpace(respBody)) == 0 {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		logger.Error("Failed to decode response", logger.Err(err), logger.F("url", url))
		return &Error{StatusCode: resp.StatusCode, Message: MessageGeneric, Err: err}
	}
	return nil
}

// authorize attaches the bearer token. Token lookup failures are logged and
// the request continues without the header.
func (c *Client) authorize(ctx context.Context, req *http.Request) {
	if c.tokens == nil {
		return
	}
	token, err := c.tokens.Token(ctx)
	if err != nil {
		logger.Warn("Failed to read token, sending request without it", logger.Err(err))
		return
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
}

// IsStatus reports whether err is an *Error with the given status code
func IsStatus(err error, status int) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.StatusCode == status
}
