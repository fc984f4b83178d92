package service

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/mengash94/planora-plan-ora.net-sub000/internal/events"
	"github.com/mengash94/planora-plan-ora.net-sub000/internal/instaback"
)

// recordedRequest captures one request seen by the fake backend.
type recordedRequest struct {
	Method string
	Path   string // path plus raw query
	Body   map[string]any
}

// fakeBackend routes "METHOD /path?query" to canned responses. Unrouted
// requests answer 404.
type fakeBackend struct {
	t      *testing.T
	mu     sync.Mutex
	routes map[string]http.HandlerFunc
	seen   []recordedRequest
}

func newFakeBackend(t *testing.T) *fakeBackend {
	return &fakeBackend{t: t, routes: map[string]http.HandlerFunc{}}
}

func (f *fakeBackend) handle(route string, h http.HandlerFunc) {
	f.routes[route] = h
}

// json registers a route answering status with body.
func (f *fakeBackend) json(route string, status int, body string) {
	f.handle(route, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	})
}

func (f *fakeBackend) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	target := r.URL.Path
	if r.URL.RawQuery != "" {
		target += "?" + r.URL.RawQuery
	}
	rec := recordedRequest{Method: r.Method, Path: target}
	if ct := r.Header.Get("Content-Type"); ct == "application/json" {
		data, _ := io.ReadAll(r.Body)
		if len(data) > 0 {
			_ = json.Unmarshal(data, &rec.Body)
		}
	}
	f.mu.Lock()
	f.seen = append(f.seen, rec)
	h, ok := f.routes[r.Method+" "+target]
	f.mu.Unlock()
	if !ok {
		w.WriteHeader(http.StatusNotFound)
		_, _ = io.WriteString(w, `{"error":"not found"}`)
		return
	}
	h(w, r)
}

func (f *fakeBackend) requests() []recordedRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]recordedRequest(nil), f.seen...)
}

func (f *fakeBackend) paths() []string {
	var out []string
	for _, r := range f.requests() {
		out = append(out, r.Method+" "+r.Path)
	}
	return out
}

func (f *fakeBackend) find(method, path string) (recordedRequest, bool) {
	for _, r := range f.requests() {
		if r.Method == method && r.Path == path {
			return r, true
		}
	}
	return recordedRequest{}, false
}

// newTestService wires a Service to the fake backend through a real client.
func newTestService(t *testing.T, backend *fakeBackend) (*Service, *events.Recorder) {
	t.Helper()
	srv := httptest.NewServer(backend)
	t.Cleanup(srv.Close)
	api := instaback.New(instaback.Options{
		BaseURL:    srv.URL,
		Tokens:     instaback.StaticToken("tok"),
		RetryDelay: time.Millisecond,
	})
	rec := &events.Recorder{}
	return New(api, Options{Publisher: rec}), rec
}
