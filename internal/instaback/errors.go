package instaback

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"syscall"
)

// APIError is an application-level error response from the backend: any
// 4xx/5xx status outside the transient set. It is never retried.
type APIError struct {
	StatusCode int
	Message    string
	Body       []byte
}

func (e *APIError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Message)
}

// NetworkError is returned once every direct, proxy and retry attempt has
// failed with a transient network condition. Message is user-facing and
// localized.
type NetworkError struct {
	Offline  bool
	Message  string
	Attempts int
	Err      error
}

func (e *NetworkError) Error() string { return e.Message }

func (e *NetworkError) Unwrap() error { return e.Err }

// transportError wraps a failure below HTTP: DNS, connect, reset, timeout.
type transportError struct {
	err error
}

func (e *transportError) Error() string { return "network request failed: " + e.err.Error() }

func (e *transportError) Unwrap() error { return e.err }

// transientStatuses are HTTP statuses treated as network failures.
// 0 covers responses that carry no status at all.
var transientStatuses = map[int]bool{
	0:                             true,
	http.StatusBadGateway:         true,
	http.StatusServiceUnavailable: true,
	http.StatusGatewayTimeout:     true,
}

// IsNetworkError reports whether err is a transient network failure that the
// client retries: a transport error, a per-attempt timeout, or a 0/502/503/504
// response.
func IsNetworkError(err error) bool {
	if err == nil {
		return false
	}
	var te *transportError
	if errors.As(err, &te) {
		return true
	}
	var ae *APIError
	if errors.As(err, &ae) {
		return transientStatuses[ae.StatusCode]
	}
	var ne *NetworkError
	return errors.As(err, &ne)
}

// looksOffline is the default offline classifier: name resolution failures
// and unreachable networks mean the device has no usable connection.
func looksOffline(err error) bool {
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return true
	}
	return errors.Is(err, syscall.ENETUNREACH) || errors.Is(err, syscall.EHOSTUNREACH)
}

// StatusCode returns the HTTP status carried by err, or 0.
func StatusCode(err error) int {
	var ae *APIError
	if errors.As(err, &ae) {
		return ae.StatusCode
	}
	return 0
}

// IsStatus reports whether err carries one of the given HTTP statuses.
func IsStatus(err error, codes ...int) bool {
	status := StatusCode(err)
	if status == 0 {
		return false
	}
	for _, c := range codes {
		if status == c {
			return true
		}
	}
	return false
}

// UserMessage returns the text to show a user for err.
func UserMessage(err error) string {
	var ne *NetworkError
	if errors.As(err, &ne) {
		return ne.Message
	}
	var ae *APIError
	if errors.As(err, &ae) {
		return ae.Message
	}
	if errors.Is(err, context.Canceled) {
		return "request canceled"
	}
	return err.Error()
}

// maxTextMessage bounds how much of a non-JSON error body is surfaced.
const maxTextMessage = 200

// ExtractMessage pulls a human-readable message out of an error body. It
// looks at message, error (string or object with message), detail,
// errors[0].message and msg, then falls back to the trimmed body text and
// finally the status text.
func ExtractMessage(body []byte, status int) string {
	var m map[string]any
	if json.Unmarshal(body, &m) == nil {
		if s := stringField(m, "message"); s != "" {
			return s
		}
		switch e := m["error"].(type) {
		case string:
			if strings.TrimSpace(e) != "" {
				return e
			}
		case map[string]any:
			if s := stringField(e, "message"); s != "" {
				return s
			}
		}
		if s := stringField(m, "detail"); s != "" {
			return s
		}
		if errs, ok := m["errors"].([]any); ok && len(errs) > 0 {
			if first, ok := errs[0].(map[string]any); ok {
				if s := stringField(first, "message"); s != "" {
					return s
				}
			}
			if s, ok := errs[0].(string); ok && s != "" {
				return s
			}
		}
		if s := stringField(m, "msg"); s != "" {
			return s
		}
	} else if text := strings.TrimSpace(string(body)); text != "" && !strings.HasPrefix(text, "<") {
		if r := []rune(text); len(r) > maxTextMessage {
			text = string(r[:maxTextMessage]) + "..."
		}
		return text
	}
	if t := http.StatusText(status); t != "" {
		return t
	}
	return fmt.Sprintf("request failed with status %d", status)
}

func stringField(m map[string]any, key string) string {
	s, _ := m[key].(string)
	return strings.TrimSpace(s)
}
