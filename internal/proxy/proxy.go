// Package proxy is the same-origin relay the client falls back to when the
// backend cannot be reached directly. It forwards one JSON request to the
// backend and answers with the upstream status and body unchanged.
package proxy

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/mengash94/planora-plan-ora.net-sub000/internal/instaback"
	"github.com/mengash94/planora-plan-ora.net-sub000/internal/model"
	"github.com/mengash94/planora-plan-ora.net-sub000/internal/store"
)

const (
	// Path is where the relay function is mounted.
	Path = "/functions/instabackProxy"

	DefaultTimeout = 8 * time.Second

	maxRequestBytes  = 1 << 20
	maxResponseBytes = 10 << 20
)

var allowedMethods = map[string]bool{
	http.MethodGet:    true,
	http.MethodPost:   true,
	http.MethodPut:    true,
	http.MethodPatch:  true,
	http.MethodDelete: true,
}

// Headers the caller may not set on the upstream request.
var strippedHeaders = map[string]bool{
	"authorization":     true,
	"host":              true,
	"content-length":    true,
	"connection":        true,
	"transfer-encoding": true,
	"cookie":            true,
}

// Options configures a Server. Zero values select the defaults.
type Options struct {
	Upstream   string // backend origin, e.g. https://api.instaback.ai
	HTTPClient *http.Client
	Timeout    time.Duration
	Audit      store.AuditStore
	Logger     *slog.Logger
}

// Server relays requests to the backend.
type Server struct {
	upstream   string
	httpClient *http.Client
	timeout    time.Duration
	audit      store.AuditStore
	logger     *slog.Logger
}

// New creates a Server from opts.
func New(opts Options) *Server {
	s := &Server{
		upstream:   strings.TrimRight(opts.Upstream, "/"),
		httpClient: opts.HTTPClient,
		timeout:    opts.Timeout,
		audit:      opts.Audit,
		logger:     opts.Logger,
	}
	if s.httpClient == nil {
		s.httpClient = &http.Client{}
	}
	if s.timeout <= 0 {
		s.timeout = DefaultTimeout
	}
	if s.audit == nil {
		s.audit = store.NoopAuditStore{}
	}
	if s.logger == nil {
		s.logger = slog.New(slog.DiscardHandler)
	}
	return s
}

// NewHTTPHandler returns an http.Handler with all routes registered.
// When authToken is non-empty, requests (except GET /health) must include
// a valid Authorization: Bearer <token> header.
func (s *Server) NewHTTPHandler(authToken string) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST "+Path, s.handleProxy)
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /audit", s.handleAudit)
	return RecoveryMiddleware(s.logger, AuthMiddleware(authToken, mux))
}

// handleHealth handles GET /health.
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleAudit handles GET /audit?limit=N.
func (s *Server) handleAudit(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid limit")
			return
		}
		limit = n
	}
	calls, err := s.audit.ListProxyCalls(r.Context(), limit)
	if err != nil {
		s.logger.Error("list proxy calls failed", "err", err)
		writeError(w, http.StatusInternalServerError, "failed to list proxy calls")
		return
	}
	if calls == nil {
		calls = []*model.ProxyCall{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"calls": calls})
}

// handleProxy handles POST /functions/instabackProxy.
func (s *Server) handleProxy(w http.ResponseWriter, r *http.Request) {
	var req instaback.ProxyRequest
	if err := json.NewDecoder(io.LimitReader(r.Body, maxRequestBytes)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	req.Method = strings.ToUpper(strings.TrimSpace(req.Method))
	if req.Method == "" {
		req.Method = http.MethodGet
	}
	if err := validate(req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	start := time.Now()
	status, header, body, err := s.forward(r.Context(), req)
	call := &model.ProxyCall{
		Method:     req.Method,
		Endpoint:   req.Endpoint,
		Status:     status,
		Duration:   time.Since(start),
		RemoteAddr: r.RemoteAddr,
	}
	if err != nil {
		call.Status = http.StatusBadGateway
		call.Error = err.Error()
	}
	s.record(r.Context(), call)

	if err != nil {
		s.logger.Warn("upstream request failed", "path", req.Endpoint, "err", err)
		writeError(w, http.StatusBadGateway, "upstream request failed")
		return
	}

	if ct := header.Get("Content-Type"); ct != "" {
		w.Header().Set("Content-Type", ct)
	} else {
		w.Header().Set("Content-Type", "application/json")
	}
	w.WriteHeader(status)
	_, _ = w.Write(body)
}

// forward sends req to the backend and returns the upstream response.
func (s *Server) forward(ctx context.Context, req instaback.ProxyRequest) (int, http.Header, []byte, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	var body io.Reader
	if len(req.Body) > 0 && req.Method != http.MethodGet {
		body = bytes.NewReader(req.Body)
	}
	upReq, err := http.NewRequestWithContext(ctx, req.Method, s.upstream+req.Endpoint, body)
	if err != nil {
		return 0, nil, nil, fmt.Errorf("build upstream request: %w", err)
	}
	for k, v := range req.Headers {
		if strippedHeaders[strings.ToLower(k)] {
			continue
		}
		upReq.Header.Set(k, v)
	}
	if upReq.Header.Get("Accept") == "" {
		upReq.Header.Set("Accept", "application/json")
	}
	if body != nil && upReq.Header.Get("Content-Type") == "" {
		upReq.Header.Set("Content-Type", "application/json")
	}
	if req.Token != "" {
		upReq.Header.Set("Authorization", "Bearer "+req.Token)
	}

	resp, err := s.httpClient.Do(upReq)
	if err != nil {
		return 0, nil, nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return 0, nil, nil, fmt.Errorf("read upstream response: %w", err)
	}
	return resp.StatusCode, resp.Header, data, nil
}

// record writes call to the audit log. Failures are logged only.
func (s *Server) record(ctx context.Context, call *model.ProxyCall) {
	if err := s.audit.RecordProxyCall(context.WithoutCancel(ctx), call); err != nil {
		s.logger.Warn("failed to record proxy call", "path", call.Endpoint, "err", err)
	}
}

// validate checks that req targets a relative backend path with a
// supported method.
func validate(req instaback.ProxyRequest) error {
	if !allowedMethods[req.Method] {
		return fmt.Errorf("method %q is not allowed", req.Method)
	}
	return validateEndpoint(req.Endpoint)
}

func validateEndpoint(endpoint string) error {
	if endpoint == "" {
		return errors.New("endpoint is required")
	}
	if !strings.HasPrefix(endpoint, "/") || strings.HasPrefix(endpoint, "//") || strings.Contains(endpoint, `\`) {
		return errors.New("endpoint must be a path starting with /")
	}
	u, err := url.Parse(endpoint)
	if err != nil {
		return fmt.Errorf("invalid endpoint: %w", err)
	}
	if u.Scheme != "" || u.Host != "" {
		return errors.New("endpoint must not include a scheme or host")
	}
	for _, seg := range strings.Split(u.Path, "/") {
		if seg == ".." {
			return errors.New("endpoint must not contain ..")
		}
	}
	return nil
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
