// Package restapi implements service.Service over the task-manager REST API.
package restapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/oauth2"

	"taskdash/internal/credential"
	"taskdash/internal/logging"
	"taskdash/internal/service"
)

// RequestIDHeader carries a per-request correlation id.
const RequestIDHeader = "X-Request-ID"

// Client is an authenticated client for the REST API.
// It reads the credential store on every request and never writes it.
type Client struct {
	baseURL string
	http    *http.Client
	log     *logrus.Entry
}

// Option configures a Client.
type Option func(*options)

type options struct {
	httpClient *http.Client
	logger     *logrus.Logger
}

// WithHTTPClient sets the underlying HTTP client. Its transport is wrapped
// with the bearer interceptor; its timeout, if any, is kept.
func WithHTTPClient(c *http.Client) Option {
	return func(o *options) { o.httpClient = c }
}

// WithLogger sets the logger used for request tracing.
func WithLogger(l *logrus.Logger) Option {
	return func(o *options) { o.logger = l }
}

// New creates a client for baseURL that authenticates from store.
func New(baseURL string, store credential.Store, opts ...Option) *Client {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}

	base := http.DefaultTransport
	var timeout time.Duration
	if o.httpClient != nil {
		if o.httpClient.Transport != nil {
			base = o.httpClient.Transport
		}
		timeout = o.httpClient.Timeout
	}

	log := logging.Component(o.logger, "restapi")

	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http: &http.Client{
			Transport: &bearerTransport{store: store, base: base, log: log},
			Timeout:   timeout,
		},
		log: log,
	}
}

// bearerTransport attaches the stored credential, if any, to each request.
type bearerTransport struct {
	store credential.Store
	base  http.RoundTripper
	log   *logrus.Entry
}

func (t *bearerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	out := req.Clone(req.Context())

	tok, err := t.store.Get()
	switch {
	case err == nil:
		(&oauth2.Token{AccessToken: tok, TokenType: "Bearer"}).SetAuthHeader(out)
	case errors.Is(err, credential.ErrNoCredential):
		// unauthenticated
	default:
		t.log.WithError(err).Warn("credential unreadable, sending request unauthenticated")
	}

	return t.base.RoundTrip(out)
}

// Request issues method on base+path. A non-nil body is sent as JSON; a
// non-nil out receives the decoded JSON response. Transport failures and
// non-2xx responses come back as *service.Error.
func (c *Client) Request(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	requestID := uuid.NewString()
	req.Header.Set(RequestIDHeader, requestID)

	log := c.log.WithFields(logrus.Fields{
		"request_id": requestID,
		"method":     method,
		"path":       path,
	})
	log.Debug("request started")

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		log.WithError(err).Debug("request failed")
		return &service.Error{Kind: service.NetworkFailure, Err: err}
	}
	defer resp.Body.Close()

	log.WithFields(logrus.Fields{
		"status":      resp.StatusCode,
		"duration_ms": time.Since(start).Milliseconds(),
	}).Debug("request completed")

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return decodeError(resp)
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &service.Error{
			Kind:   service.ServerFailure,
			Status: resp.StatusCode,
			Err:    fmt.Errorf("invalid response body: %w", err),
		}
	}
	return nil
}

var (
	_ service.Service       = (*Client)(nil)
	_ service.Authenticator = (*Client)(nil)
)
