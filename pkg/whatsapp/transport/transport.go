// Package transport performs the raw HTTP exchanges of the client over a bounded connection pool.
package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
)

const (
	contentTypeJSON = "application/json"
	contentTypeForm = "application/x-www-form-urlencoded"

	DefaultTimeout    = 30 * time.Second
	DefaultPoolSize   = 10
	DefaultMaxRetries = 3
)

// Config sizes the transport. Zero values fall back to the package defaults; a negative
// MaxRetries disables retries.
type Config struct {
	Timeout    time.Duration
	PoolSize   int
	MaxRetries int
}

// Response is a fully read HTTP response.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

type Transport struct {
	client     *http.Client
	maxRetries int
	logger     *zap.Logger
}

type Option func(*Transport)

// WithHTTPClient replaces the pooled client. The configured timeout and pool size are not applied to it.
func WithHTTPClient(c *http.Client) Option {
	return func(t *Transport) {
		t.client = c
	}
}

func New(cfg Config, logger *zap.Logger, opts ...Option) *Transport {
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.PoolSize <= 0 {
		cfg.PoolSize = DefaultPoolSize
	}
	if cfg.MaxRetries == 0 {
		cfg.MaxRetries = DefaultMaxRetries
	}
	if cfg.MaxRetries < 0 {
		cfg.MaxRetries = 0
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	base := http.DefaultTransport.(*http.Transport).Clone()
	base.MaxIdleConns = cfg.PoolSize
	base.MaxIdleConnsPerHost = cfg.PoolSize
	base.MaxConnsPerHost = cfg.PoolSize

	t := &Transport{
		client: &http.Client{
			Timeout:   cfg.Timeout,
			Transport: base,
		},
		maxRetries: cfg.MaxRetries,
		logger:     logger,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Get issues a GET with params encoded into the query string.
func (t *Transport) Get(ctx context.Context, rawURL string, headers http.Header, params url.Values) (*Response, error) {
	target := rawURL
	if len(params) > 0 {
		sep := "?"
		if strings.Contains(rawURL, "?") {
			sep = "&"
		}
		target = rawURL + sep + params.Encode()
	}
	return t.do(ctx, http.MethodGet, target, headers, "", nil)
}

// PostJSON marshals body and posts it as application/json.
func (t *Transport) PostJSON(ctx context.Context, rawURL string, headers http.Header, body any) (*Response, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}
	return t.do(ctx, http.MethodPost, rawURL, headers, contentTypeJSON, payload)
}

// PostForm posts form as application/x-www-form-urlencoded.
func (t *Transport) PostForm(ctx context.Context, rawURL string, headers http.Header, form url.Values) (*Response, error) {
	return t.do(ctx, http.MethodPost, rawURL, headers, contentTypeForm, []byte(form.Encode()))
}

func (t *Transport) do(
	ctx context.Context,
	method, rawURL string,
	headers http.Header,
	contentType string,
	payload []byte,
) (*Response, error) {
	var lastErr error
	for attempt := 0; attempt <= t.maxRetries; attempt++ {
		resp, err := t.once(ctx, method, rawURL, headers, contentType, payload)
		if err == nil {
			return resp, nil
		}
		lastErr = err

		if ctx.Err() != nil || !retryable(err) {
			break
		}
		if attempt < t.maxRetries {
			t.logger.Warn("Retrying request after connection failure",
				zap.String("method", method),
				zap.String("url", rawURL),
				zap.Int("attempt", attempt+1),
				zap.Error(err))
		}
	}
	return nil, lastErr
}

func (t *Transport) once(
	ctx context.Context,
	method, rawURL string,
	headers http.Header,
	contentType string,
	payload []byte,
) (*Response, error) {
	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, rawURL, body)
	if err != nil {
		return nil, &RequestError{Err: fmt.Errorf("failed to create request: %w", err)}
	}
	for key, values := range headers {
		for _, v := range values {
			req.Header.Add(key, v)
		}
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := t.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			t.logger.Warn("Failed to close response body", zap.Error(err))
		}
	}()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &ResponseError{StatusCode: resp.StatusCode, Err: fmt.Errorf("failed to read response body: %w", err)}
	}

	return &Response{
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Body:       data,
	}, nil
}

// RequestError marks a request that could not be built. It is never retried.
type RequestError struct {
	Err error
}

func (e *RequestError) Error() string {
	return e.Err.Error()
}

func (e *RequestError) Unwrap() error {
	return e.Err
}

// ResponseError marks a failure after the server answered. The request was delivered, so it
// is never retried.
type ResponseError struct {
	StatusCode int
	Err        error
}

func (e *ResponseError) Error() string {
	return e.Err.Error()
}

func (e *ResponseError) Unwrap() error {
	return e.Err
}

// retryable reports whether err happened while dialing, before any byte of the request was
// sent. Failures after that point may mean the message was already accepted.
func retryable(err error) bool {
	var reqErr *RequestError
	var respErr *ResponseError
	if errors.As(err, &reqErr) || errors.As(err, &respErr) {
		return false
	}
	var opErr *net.OpError
	if !errors.As(err, &opErr) || opErr.Op != "dial" {
		return false
	}
	return !opErr.Timeout()
}
