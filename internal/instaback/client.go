// Package instaback is the HTTP client for the InstaBack backend. It attaches
// the session token, bounds every attempt with a timeout, and recovers from
// transient network failures by falling back to a same-origin proxy function
// and then retrying the direct request.
package instaback

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

const (
	DefaultTimeout    = 8 * time.Second
	DefaultMaxRetries = 1
	DefaultRetryDelay = 500 * time.Millisecond
)

// successBody replaces empty and non-JSON success responses.
var successBody = json.RawMessage(`{"success":true}`)

// TokenSource supplies the bearer token for each request. An empty token
// sends the request unauthenticated.
type TokenSource interface {
	Token() string
}

// StaticToken is a TokenSource that always returns the same token.
type StaticToken string

func (t StaticToken) Token() string { return string(t) }

// Options configures a Client. Zero values select the defaults.
type Options struct {
	BaseURL  string
	ProxyURL string // same-origin proxy function; empty disables the fallback
	Tokens   TokenSource

	// ProxyToken is the proxy function's shared secret, sent as its bearer
	// credential. The session token still travels in the payload.
	ProxyToken string

	HTTPClient *http.Client
	Timeout    time.Duration // per attempt
	MaxRetries int           // direct retries after the proxy attempt; negative disables
	RetryDelay time.Duration

	Locale string
	Logger *slog.Logger

	// Offline classifies the final network error as "device offline" rather
	// than "server unreachable".
	Offline func(error) bool
}

// Client issues JSON requests to the backend.
type Client struct {
	baseURL    string
	proxyURL   string
	proxyToken string
	tokens     TokenSource
	httpClient *http.Client
	timeout    time.Duration
	maxRetries int
	retryDelay time.Duration
	messages   catalog
	logger     *slog.Logger
	offline    func(error) bool

	// sleep waits between retries; replaced in tests.
	sleep func(ctx context.Context, d time.Duration) error
}

// New creates a Client from opts.
func New(opts Options) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(opts.BaseURL, "/"),
		proxyURL:   opts.ProxyURL,
		proxyToken: opts.ProxyToken,
		tokens:     opts.Tokens,
		httpClient: opts.HTTPClient,
		timeout:    opts.Timeout,
		maxRetries: opts.MaxRetries,
		retryDelay: opts.RetryDelay,
		messages:   catalogFor(opts.Locale),
		logger:     opts.Logger,
		offline:    opts.Offline,
		sleep:      sleepContext,
	}
	if c.tokens == nil {
		c.tokens = StaticToken("")
	}
	if c.httpClient == nil {
		c.httpClient = &http.Client{}
	}
	if c.timeout <= 0 {
		c.timeout = DefaultTimeout
	}
	switch {
	case c.maxRetries == 0:
		c.maxRetries = DefaultMaxRetries
	case c.maxRetries < 0:
		c.maxRetries = 0
	}
	if c.retryDelay <= 0 {
		c.retryDelay = DefaultRetryDelay
	}
	if c.logger == nil {
		c.logger = slog.New(slog.DiscardHandler)
	}
	if c.offline == nil {
		c.offline = looksOffline
	}
	return c
}

// BaseURL returns the backend origin the client targets.
func (c *Client) BaseURL() string { return c.baseURL }

// Request describes one backend call.
type Request struct {
	Method  string
	Path    string // starts with "/", may carry a query string
	Body    any    // marshaled as JSON; json.RawMessage and []byte are sent as-is
	Headers http.Header
}

// Do performs req and returns the raw JSON response body. Empty or non-JSON
// success bodies come back as {"success":true}.
func (c *Client) Do(ctx context.Context, req Request) (json.RawMessage, error) {
	if req.Method == "" {
		req.Method = http.MethodGet
	}
	body, err := encodeBody(req.Body)
	if err != nil {
		return nil, err
	}
	header := c.header(req.Method, req.Headers)

	direct := func(ctx context.Context) (json.RawMessage, error) {
		return c.send(ctx, req.Method, c.baseURL+req.Path, header, body, true)
	}
	var proxy attemptFunc
	if c.proxyURL != "" && (len(body) == 0 || json.Valid(body)) {
		proxy = func(ctx context.Context) (json.RawMessage, error) {
			return c.sendViaProxy(ctx, req, header, body)
		}
	}
	return c.run(ctx, req.Method+" "+req.Path, direct, proxy)
}

// DoJSON performs a request and decodes the response into out (when non-nil).
func (c *Client) DoJSON(ctx context.Context, method, path string, body, out any) error {
	raw, err := c.Do(ctx, Request{Method: method, Path: path, Body: body})
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}

type attemptFunc func(ctx context.Context) (json.RawMessage, error)

// run drives the recovery protocol: one direct attempt; on a network error
// one proxy attempt (when configured); then up to maxRetries direct retries
// separated by retryDelay. Application errors stop the sequence at once,
// except when the proxy function itself turns the attempt away.
func (c *Client) run(ctx context.Context, op string, direct, proxy attemptFunc) (json.RawMessage, error) {
	raw, err := direct(ctx)
	if err == nil {
		return raw, nil
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return nil, ctxErr
	}
	if !IsNetworkError(err) {
		return nil, err
	}
	attempts := 1
	lastErr := err

	if proxy != nil {
		c.logger.Warn("direct request failed, trying proxy", "op", op, "err", err)
		attempts++
		raw, err = proxy(ctx)
		if err == nil {
			return raw, nil
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		switch {
		case IsNetworkError(err):
			lastErr = err
		case proxyUnavailable(err):
			c.logger.Warn("proxy unavailable, retrying directly", "op", op, "status", StatusCode(err), "err", err)
		default:
			return nil, err
		}
	}

	for i := 0; i < c.maxRetries; i++ {
		if err := c.sleep(ctx, c.retryDelay); err != nil {
			return nil, err
		}
		attempts++
		c.logger.Warn("retrying request", "op", op, "attempt", attempts, "err", lastErr)
		raw, err = direct(ctx)
		if err == nil {
			return raw, nil
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		if !IsNetworkError(err) {
			return nil, err
		}
		lastErr = err
	}

	c.logger.Error("request failed after retries", "op", op, "attempts", attempts, "err", lastErr)
	return nil, c.networkError(lastErr, attempts)
}

func (c *Client) networkError(err error, attempts int) *NetworkError {
	ne := &NetworkError{Attempts: attempts, Err: err, Message: c.messages.serverError}
	if c.offline(err) {
		ne.Offline = true
		ne.Message = c.messages.offline
	}
	return ne
}

// header builds the headers every direct attempt carries. Authorization is
// added per attempt so a refreshed token is picked up by retries.
func (c *Client) header(method string, extra http.Header) http.Header {
	h := http.Header{}
	h.Set("Content-Type", "application/json")
	h.Set("Accept", "application/json")
	if method == http.MethodGet {
		h.Set("Cache-Control", "no-cache")
		h.Set("Pragma", "no-cache")
	}
	for k, vs := range extra {
		for _, v := range vs {
			h.Add(k, v)
		}
	}
	return h
}

// send performs a single attempt bounded by the per-attempt timeout. The
// bearer token is attached only when withToken is set.
func (c *Client) send(ctx context.Context, method, url string, header http.Header, body []byte, withToken bool) (json.RawMessage, error) {
	actx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var bodyReader io.Reader
	if body != nil {
		bodyReader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(actx, method, url, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header = header.Clone()
	if token := c.tokens.Token(); withToken && token != "" && req.Header.Get("Authorization") == "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, &transportError{err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, &transportError{err: fmt.Errorf("reading response: %w", err)}
	}
	return decodeResponse(resp.StatusCode, respBody)
}

func decodeResponse(status int, body []byte) (json.RawMessage, error) {
	if status == 0 || status >= 400 {
		return nil, &APIError{StatusCode: status, Message: ExtractMessage(body, status), Body: body}
	}
	trimmed := bytes.TrimSpace(body)
	if status == http.StatusNoContent || len(trimmed) == 0 || !json.Valid(trimmed) {
		return successBody, nil
	}
	return json.RawMessage(trimmed), nil
}

func encodeBody(body any) ([]byte, error) {
	switch b := body.(type) {
	case nil:
		return nil, nil
	case json.RawMessage:
		return b, nil
	case []byte:
		return b, nil
	}
	data, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshaling request body: %w", err)
	}
	return data, nil
}

func sleepContext(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
