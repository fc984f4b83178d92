package instaback

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// ProxyRequest is the payload POSTed to the same-origin proxy function. The
// token travels in its own field; Headers never carries Authorization.
type ProxyRequest struct {
	Endpoint string            `json:"endpoint"`
	Method   string            `json:"method"`
	Headers  map[string]string `json:"headers,omitempty"`
	Body     json.RawMessage   `json:"body,omitempty"`
	Token    string            `json:"token,omitempty"`
}

// errProxyBody is returned when a request body cannot be carried in the
// proxy's JSON payload.
var errProxyBody = errors.New("proxy fallback requires a JSON body")

// proxyUnavailable reports whether err means the proxy function itself could
// not serve the attempt: it rejected our credential, is not deployed, or
// could not carry the body. The direct retries still run.
func proxyUnavailable(err error) bool {
	return errors.Is(err, errProxyBody) || IsStatus(err,
		http.StatusUnauthorized, http.StatusForbidden, http.StatusNotFound, http.StatusMethodNotAllowed)
}

// sendViaProxy relays req through the proxy function. The proxy answers with
// the upstream status and body unchanged, so the response is decoded exactly
// like a direct one.
func (c *Client) sendViaProxy(ctx context.Context, req Request, header http.Header, body []byte) (json.RawMessage, error) {
	headers := make(map[string]string, len(header))
	for k, vs := range header {
		if strings.EqualFold(k, "Authorization") || len(vs) == 0 {
			continue
		}
		headers[k] = strings.Join(vs, ", ")
	}
	payload := ProxyRequest{
		Endpoint: req.Path,
		Method:   req.Method,
		Headers:  headers,
		Token:    c.tokens.Token(),
	}
	if len(body) > 0 {
		if !json.Valid(body) {
			return nil, errProxyBody
		}
		payload.Body = body
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshaling proxy request: %w", err)
	}
	ph := http.Header{}
	ph.Set("Content-Type", "application/json")
	ph.Set("Accept", "application/json")
	if c.proxyToken != "" {
		ph.Set("Authorization", "Bearer "+c.proxyToken)
	}
	return c.send(ctx, http.MethodPost, c.proxyURL, ph, data, false)
}
