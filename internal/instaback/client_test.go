package instaback

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"
	"unicode/utf8"
)

const (
	directHost = "api.instaback.test"
	proxyHost  = "app.planora.test"
)

// roundTripFunc lets a test script the transport directly.
type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(r *http.Request) (*http.Response, error) { return f(r) }

// scriptedTransport records every attempt as "direct" or "proxy" and answers
// from per-host scripts. A nil response in a script means a transport error.
type scriptedTransport struct {
	mu     sync.Mutex
	calls  []string
	bodies map[string][]string
	direct []func(*http.Request) (*http.Response, error)
	proxy  []func(*http.Request) (*http.Response, error)
}

func (s *scriptedTransport) RoundTrip(r *http.Request) (*http.Response, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	kind := "direct"
	script := &s.direct
	if r.URL.Host == proxyHost {
		kind = "proxy"
		script = &s.proxy
	}
	s.calls = append(s.calls, kind)
	if s.bodies == nil {
		s.bodies = map[string][]string{}
	}
	if r.Body != nil {
		data, _ := io.ReadAll(r.Body)
		s.bodies[kind] = append(s.bodies[kind], string(data))
	}
	if len(*script) == 0 {
		return nil, errors.New("connection refused")
	}
	next := (*script)[0]
	*script = (*script)[1:]
	return next(r)
}

func respond(status int, body string) func(*http.Request) (*http.Response, error) {
	return func(r *http.Request) (*http.Response, error) {
		return &http.Response{
			StatusCode: status,
			Header:     http.Header{"Content-Type": []string{"application/json"}},
			Body:       io.NopCloser(strings.NewReader(body)),
			Request:    r,
		}, nil
	}
}

func fail(err error) func(*http.Request) (*http.Response, error) {
	return func(*http.Request) (*http.Response, error) { return nil, err }
}

// newScriptedClient builds a client over t with recorded retry sleeps.
func newScriptedClient(tr http.RoundTripper, withProxy bool, slept *[]time.Duration) *Client {
	opts := Options{
		BaseURL:    "https://" + directHost + "/api",
		Tokens:     StaticToken("tok_123"),
		HTTPClient: &http.Client{Transport: tr},
		Locale:     "en",
	}
	if withProxy {
		opts.ProxyURL = "https://" + proxyHost + "/functions/instabackProxy"
	}
	c := New(opts)
	c.sleep = func(_ context.Context, d time.Duration) error {
		if slept != nil {
			*slept = append(*slept, d)
		}
		return nil
	}
	return c
}

func TestDo_SetsHeaders(t *testing.T) {
	var got http.Header
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Clone()
		_, _ = w.Write([]byte(`{"id":"e1"}`))
	}))
	defer srv.Close()

	c := New(Options{BaseURL: srv.URL, Tokens: StaticToken("tok_abc")})
	raw, err := c.Do(context.Background(), Request{Method: http.MethodGet, Path: "/Event/e1"})
	if err != nil {
		t.Fatalf("Do() error = %v", err)
	}
	if string(raw) != `{"id":"e1"}` {
		t.Errorf("body = %s", raw)
	}
	for k, want := range map[string]string{
		"Authorization": "Bearer tok_abc",
		"Content-Type":  "application/json",
		"Accept":        "application/json",
		"Cache-Control": "no-cache",
		"Pragma":        "no-cache",
	} {
		if v := got.Get(k); v != want {
			t.Errorf("header %s = %q, want %q", k, v, want)
		}
	}
}

func TestDo_PostHasNoCacheHeadersAndNoTokenWhenLoggedOut(t *testing.T) {
	var got http.Header
	var body string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Clone()
		data, _ := io.ReadAll(r.Body)
		body = string(data)
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id":"t1"}`))
	}))
	defer srv.Close()

	c := New(Options{BaseURL: srv.URL})
	if _, err := c.Do(context.Background(), Request{Method: http.MethodPost, Path: "/Task", Body: map[string]string{"title": "x"}}); err != nil {
		t.Fatalf("Do() error = %v", err)
	}
	if got.Get("Authorization") != "" {
		t.Errorf("Authorization = %q, want empty", got.Get("Authorization"))
	}
	if got.Get("Cache-Control") != "" {
		t.Errorf("Cache-Control = %q on POST, want empty", got.Get("Cache-Control"))
	}
	if body != `{"title":"x"}` {
		t.Errorf("body = %q", body)
	}
}

func TestDo_NormalizesEmptySuccess(t *testing.T) {
	for _, tc := range []struct {
		name   string
		status int
		body   string
	}{
		{"NoContent", http.StatusNoContent, ""},
		{"EmptyOK", http.StatusOK, ""},
		{"Whitespace", http.StatusOK, "  \n"},
		{"PlainText", http.StatusOK, "deleted"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				_, _ = w.Write([]byte(tc.body))
			}))
			defer srv.Close()

			raw, err := New(Options{BaseURL: srv.URL}).Do(context.Background(), Request{Method: http.MethodDelete, Path: "/Task/t1"})
			if err != nil {
				t.Fatalf("Do() error = %v", err)
			}
			if string(raw) != `{"success":true}` {
				t.Errorf("body = %s, want {\"success\":true}", raw)
			}
		})
	}
}

func TestDo_NotFoundIsNotRetried(t *testing.T) {
	tr := &scriptedTransport{
		direct: []func(*http.Request) (*http.Response, error){
			respond(http.StatusNotFound, `{"error":"Task not found"}`),
		},
	}
	var slept []time.Duration
	c := newScriptedClient(tr, true, &slept)

	_, err := c.Do(context.Background(), Request{Method: http.MethodGet, Path: "/Task/missing"})
	var ae *APIError
	if !errors.As(err, &ae) {
		t.Fatalf("error = %v (%T), want *APIError", err, err)
	}
	if ae.StatusCode != http.StatusNotFound || ae.Message != "Task not found" {
		t.Errorf("APIError = %+v", ae)
	}
	if strings.Join(tr.calls, ",") != "direct" {
		t.Errorf("calls = %v, want [direct]", tr.calls)
	}
	if len(slept) != 0 {
		t.Errorf("slept %v, want no retry delay", slept)
	}
}

func TestDo_ServerErrorNotInRetrySetIsImmediate(t *testing.T) {
	tr := &scriptedTransport{
		direct: []func(*http.Request) (*http.Response, error){
			respond(http.StatusInternalServerError, `{"message":"boom"}`),
		},
	}
	c := newScriptedClient(tr, true, nil)
	_, err := c.Do(context.Background(), Request{Method: http.MethodPut, Path: "/Task/t1", Body: map[string]string{}})
	if StatusCode(err) != http.StatusInternalServerError {
		t.Fatalf("StatusCode = %d, want 500 (err=%v)", StatusCode(err), err)
	}
	if len(tr.calls) != 1 {
		t.Errorf("calls = %v, want exactly one", tr.calls)
	}
}

func TestDo_TransportErrorTriesProxyFirst(t *testing.T) {
	tr := &scriptedTransport{
		direct: []func(*http.Request) (*http.Response, error){fail(errors.New("connection reset"))},
		proxy:  []func(*http.Request) (*http.Response, error){respond(http.StatusOK, `{"id":"t1"}`)},
	}
	var slept []time.Duration
	c := newScriptedClient(tr, true, &slept)

	raw, err := c.Do(context.Background(), Request{Method: http.MethodGet, Path: "/Task/t1"})
	if err != nil {
		t.Fatalf("Do() error = %v", err)
	}
	if string(raw) != `{"id":"t1"}` {
		t.Errorf("body = %s", raw)
	}
	if strings.Join(tr.calls, ",") != "direct,proxy" {
		t.Errorf("calls = %v, want [direct proxy]", tr.calls)
	}
	if len(slept) != 0 {
		t.Errorf("slept %v before proxy, want none", slept)
	}
}

func TestDo_ProxyFailureThenDirectRetry(t *testing.T) {
	tr := &scriptedTransport{
		direct: []func(*http.Request) (*http.Response, error){
			fail(errors.New("connection refused")),
			respond(http.StatusOK, `{"ok":1}`),
		},
		proxy: []func(*http.Request) (*http.Response, error){respond(http.StatusBadGateway, `{"error":"upstream unreachable"}`)},
	}
	var slept []time.Duration
	c := newScriptedClient(tr, true, &slept)

	if _, err := c.Do(context.Background(), Request{Method: http.MethodGet, Path: "/Event"}); err != nil {
		t.Fatalf("Do() error = %v", err)
	}
	if strings.Join(tr.calls, ",") != "direct,proxy,direct" {
		t.Errorf("calls = %v, want [direct proxy direct]", tr.calls)
	}
	if len(slept) != 1 || slept[0] != DefaultRetryDelay {
		t.Errorf("slept = %v, want [%v]", slept, DefaultRetryDelay)
	}
}

func TestDo_AllAttemptsFail(t *testing.T) {
	tr := &scriptedTransport{}
	c := newScriptedClient(tr, true, nil)

	_, err := c.Do(context.Background(), Request{Method: http.MethodGet, Path: "/Event"})
	var ne *NetworkError
	if !errors.As(err, &ne) {
		t.Fatalf("error = %v (%T), want *NetworkError", err, err)
	}
	if ne.Attempts != 3 {
		t.Errorf("Attempts = %d, want 3", ne.Attempts)
	}
	if ne.Offline {
		t.Error("Offline = true for a refused connection")
	}
	if ne.Message != catalogs["en"].serverError {
		t.Errorf("Message = %q", ne.Message)
	}
	if strings.Join(tr.calls, ",") != "direct,proxy,direct" {
		t.Errorf("calls = %v", tr.calls)
	}
}

func TestDo_OfflineMessage(t *testing.T) {
	dnsErr := &net.DNSError{Err: "no such host", Name: directHost, IsNotFound: true}
	tr := &scriptedTransport{
		direct: []func(*http.Request) (*http.Response, error){fail(dnsErr), fail(dnsErr)},
		proxy:  []func(*http.Request) (*http.Response, error){fail(&net.DNSError{Err: "no such host", Name: proxyHost})},
	}
	c := newScriptedClient(tr, true, nil)
	c.messages = catalogFor("he")

	_, err := c.Do(context.Background(), Request{Method: http.MethodGet, Path: "/Event"})
	var ne *NetworkError
	if !errors.As(err, &ne) {
		t.Fatalf("error = %v, want *NetworkError", err)
	}
	if !ne.Offline {
		t.Error("Offline = false for a DNS failure")
	}
	if ne.Message != catalogs["he"].offline {
		t.Errorf("Message = %q, want Hebrew offline message", ne.Message)
	}
	if UserMessage(err) != ne.Message {
		t.Errorf("UserMessage = %q", UserMessage(err))
	}
}

func TestDo_ProxyPayload(t *testing.T) {
	tr := &scriptedTransport{
		direct: []func(*http.Request) (*http.Response, error){fail(errors.New("connection refused"))},
	}
	var proxyHeader http.Header
	tr.proxy = []func(*http.Request) (*http.Response, error){
		func(r *http.Request) (*http.Response, error) {
			proxyHeader = r.Header.Clone()
			return respond(http.StatusOK, `{"id":"t9"}`)(r)
		},
	}
	c := newScriptedClient(tr, true, nil)
	_, err := c.Do(context.Background(), Request{
		Method:  http.MethodPost,
		Path:    "/Task",
		Body:    map[string]string{"title": "Order cake"},
		Headers: http.Header{"X-Client": []string{"cli"}},
	})
	if err != nil {
		t.Fatalf("Do() error = %v", err)
	}
	if proxyHeader.Get("Authorization") != "" {
		t.Errorf("proxy request carried Authorization %q", proxyHeader.Get("Authorization"))
	}

	var payload ProxyRequest
	if err := json.Unmarshal([]byte(tr.bodies["proxy"][0]), &payload); err != nil {
		t.Fatalf("decoding proxy payload: %v", err)
	}
	if payload.Endpoint != "/Task" || payload.Method != http.MethodPost {
		t.Errorf("payload endpoint/method = %q %q", payload.Endpoint, payload.Method)
	}
	if payload.Token != "tok_123" {
		t.Errorf("payload token = %q, want tok_123", payload.Token)
	}
	if string(payload.Body) != `{"title":"Order cake"}` {
		t.Errorf("payload body = %s", payload.Body)
	}
	if _, ok := payload.Headers["Authorization"]; ok {
		t.Error("payload headers contain Authorization")
	}
	if payload.Headers["X-Client"] != "cli" || payload.Headers["Content-Type"] != "application/json" {
		t.Errorf("payload headers = %v", payload.Headers)
	}
}

func TestDo_ProxyApplicationErrorSurfaces(t *testing.T) {
	tr := &scriptedTransport{
		direct: []func(*http.Request) (*http.Response, error){fail(errors.New("connection refused"))},
		proxy:  []func(*http.Request) (*http.Response, error){respond(http.StatusUnprocessableEntity, `{"message":"title is required"}`)},
	}
	c := newScriptedClient(tr, true, nil)
	_, err := c.Do(context.Background(), Request{Method: http.MethodPost, Path: "/Task", Body: map[string]string{}})
	if !IsStatus(err, http.StatusUnprocessableEntity) {
		t.Fatalf("error = %v, want 422", err)
	}
	if UserMessage(err) != "title is required" {
		t.Errorf("UserMessage = %q", UserMessage(err))
	}
	if len(tr.calls) != 2 {
		t.Errorf("calls = %v, want no retry after proxy 422", tr.calls)
	}
}

func TestDo_RejectedProxyStillRetriesDirect(t *testing.T) {
	for _, status := range []int{
		http.StatusUnauthorized,
		http.StatusForbidden,
		http.StatusNotFound,
		http.StatusMethodNotAllowed,
	} {
		t.Run(http.StatusText(status), func(t *testing.T) {
			tr := &scriptedTransport{
				direct: []func(*http.Request) (*http.Response, error){
					respond(http.StatusBadGateway, ``),
					respond(http.StatusOK, `{"id":"e1"}`),
				},
				proxy: []func(*http.Request) (*http.Response, error){respond(status, `{"error":"missing authorization header"}`)},
			}
			var slept []time.Duration
			c := newScriptedClient(tr, true, &slept)
			raw, err := c.Do(context.Background(), Request{Method: http.MethodGet, Path: "/Event/e1"})
			if err != nil {
				t.Fatalf("Do() error = %v", err)
			}
			if string(raw) != `{"id":"e1"}` {
				t.Errorf("body = %s", raw)
			}
			if strings.Join(tr.calls, ",") != "direct,proxy,direct" {
				t.Errorf("calls = %v, want [direct proxy direct]", tr.calls)
			}
			if len(slept) != 1 {
				t.Errorf("slept %v, want one retry delay", slept)
			}
		})
	}
}

func TestDo_RejectedProxyThenRetriesExhausted(t *testing.T) {
	tr := &scriptedTransport{
		direct: []func(*http.Request) (*http.Response, error){
			fail(errors.New("connection refused")),
			fail(errors.New("connection refused")),
		},
		proxy: []func(*http.Request) (*http.Response, error){respond(http.StatusUnauthorized, `{"error":"invalid token"}`)},
	}
	c := newScriptedClient(tr, true, nil)
	_, err := c.Do(context.Background(), Request{Method: http.MethodGet, Path: "/Event/e1"})
	var ne *NetworkError
	if !errors.As(err, &ne) {
		t.Fatalf("error = %v, want *NetworkError", err)
	}
	if ne.Attempts != 3 {
		t.Errorf("attempts = %d, want 3", ne.Attempts)
	}
	if strings.Contains(UserMessage(err), "invalid token") {
		t.Errorf("UserMessage leaked the proxy rejection: %q", UserMessage(err))
	}
}

func TestDo_ProxyCredential(t *testing.T) {
	tr := &scriptedTransport{
		direct: []func(*http.Request) (*http.Response, error){fail(errors.New("connection refused"))},
	}
	var proxyHeader http.Header
	tr.proxy = []func(*http.Request) (*http.Response, error){
		func(r *http.Request) (*http.Response, error) {
			proxyHeader = r.Header.Clone()
			return respond(http.StatusOK, `{"id":"e1"}`)(r)
		},
	}
	c := newScriptedClient(tr, true, nil)
	c.proxyToken = "shared-secret"
	if _, err := c.Do(context.Background(), Request{Method: http.MethodGet, Path: "/Event/e1"}); err != nil {
		t.Fatalf("Do() error = %v", err)
	}
	if got := proxyHeader.Get("Authorization"); got != "Bearer shared-secret" {
		t.Errorf("proxy Authorization = %q, want the shared secret", got)
	}
	var payload ProxyRequest
	if err := json.Unmarshal([]byte(tr.bodies["proxy"][0]), &payload); err != nil {
		t.Fatalf("decoding proxy payload: %v", err)
	}
	if payload.Token != "tok_123" {
		t.Errorf("payload token = %q, want the session token", payload.Token)
	}
}

func TestDo_NonJSONBodySkipsProxy(t *testing.T) {
	tr := &scriptedTransport{
		direct: []func(*http.Request) (*http.Response, error){
			fail(errors.New("connection refused")),
			respond(http.StatusOK, `{"ok":true}`),
		},
		proxy: []func(*http.Request) (*http.Response, error){respond(http.StatusOK, `{}`)},
	}
	c := newScriptedClient(tr, true, nil)
	_, err := c.Do(context.Background(), Request{Method: http.MethodPost, Path: "/raw", Body: []byte("not json")})
	if err != nil {
		t.Fatalf("Do() error = %v", err)
	}
	if strings.Join(tr.calls, ",") != "direct,direct" {
		t.Errorf("calls = %v, want [direct direct]", tr.calls)
	}
}

func TestDo_ServiceUnavailableRetriedWithoutProxy(t *testing.T) {
	var mu sync.Mutex
	hits := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		hits++
		n := hits
		mu.Unlock()
		if n == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	c := New(Options{BaseURL: srv.URL, RetryDelay: time.Millisecond})
	raw, err := c.Do(context.Background(), Request{Method: http.MethodGet, Path: "/Task?event_id=e1"})
	if err != nil {
		t.Fatalf("Do() error = %v", err)
	}
	if string(raw) != `[]` || hits != 2 {
		t.Errorf("raw=%s hits=%d, want [] after 2 hits", raw, hits)
	}
}

func TestDo_NegativeMaxRetriesDisablesRetry(t *testing.T) {
	tr := &scriptedTransport{}
	c := New(Options{
		BaseURL:    "https://" + directHost,
		HTTPClient: &http.Client{Transport: tr},
		MaxRetries: -1,
	})
	_, err := c.Do(context.Background(), Request{Path: "/Event"})
	var ne *NetworkError
	if !errors.As(err, &ne) || ne.Attempts != 1 {
		t.Fatalf("error = %v, want NetworkError after 1 attempt", err)
	}
}

func TestDo_PerAttemptTimeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-release:
		}
	}))
	defer srv.Close()
	defer close(release)

	c := New(Options{BaseURL: srv.URL, Timeout: 50 * time.Millisecond, RetryDelay: time.Millisecond})
	start := time.Now()
	_, err := c.Do(context.Background(), Request{Path: "/Event"})
	var ne *NetworkError
	if !errors.As(err, &ne) {
		t.Fatalf("error = %v, want *NetworkError", err)
	}
	if ne.Attempts != 2 {
		t.Errorf("Attempts = %d, want 2", ne.Attempts)
	}
	if elapsed := time.Since(start); elapsed > 5*time.Second {
		t.Errorf("took %v, per-attempt timeout not applied", elapsed)
	}
}

func TestDo_CallerCancellationStops(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	tr := roundTripFunc(func(r *http.Request) (*http.Response, error) {
		cancel()
		return nil, r.Context().Err()
	})
	c := New(Options{BaseURL: "https://" + directHost, ProxyURL: "https://" + proxyHost, HTTPClient: &http.Client{Transport: tr}})
	_, err := c.Do(ctx, Request{Path: "/Event"})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("error = %v, want context.Canceled", err)
	}
}

func TestDoJSON_Decodes(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	}))
	defer srv.Close()

	var out struct {
		Status string `json:"status"`
	}
	if err := New(Options{BaseURL: srv.URL}).DoJSON(context.Background(), http.MethodGet, "/health", nil, &out); err != nil {
		t.Fatalf("DoJSON() error = %v", err)
	}
	if out.Status != "ok" {
		t.Errorf("status = %q", out.Status)
	}
}

func TestExtractMessage(t *testing.T) {
	for _, tc := range []struct {
		name   string
		body   string
		status int
		want   string
	}{
		{"Message", `{"message":"Title is required"}`, 400, "Title is required"},
		{"ErrorString", `{"error":"Unauthorized"}`, 401, "Unauthorized"},
		{"ErrorObject", `{"error":{"message":"Token expired"}}`, 401, "Token expired"},
		{"Detail", `{"detail":"Not allowed"}`, 403, "Not allowed"},
		{"ErrorsArray", `{"errors":[{"message":"bad email"}]}`, 422, "bad email"},
		{"ErrorsStrings", `{"errors":["bad phone"]}`, 422, "bad phone"},
		{"Msg", `{"msg":"quota"}`, 429, "quota"},
		{"PlainText", `rate limited`, 429, "rate limited"},
		{"HTML", `<html>oops</html>`, 500, "Internal Server Error"},
		{"EmptyJSON", `{}`, 404, "Not Found"},
		{"Empty", ``, 418, "I'm a teapot"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			if got := ExtractMessage([]byte(tc.body), tc.status); got != tc.want {
				t.Errorf("ExtractMessage() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestExtractMessage_TruncatesLongText(t *testing.T) {
	got := ExtractMessage([]byte(strings.Repeat("a", 500)), 400)
	if len(got) != maxTextMessage+3 {
		t.Errorf("len = %d, want %d", len(got), maxTextMessage+3)
	}

	// Hebrew text offset by one byte so a byte cut would land mid-rune.
	got = ExtractMessage([]byte("a"+strings.Repeat("ש", 300)), 500)
	if !utf8.ValidString(got) {
		t.Fatalf("truncated message is not valid UTF-8: %q", got)
	}
	if n := utf8.RuneCountInString(got); n != maxTextMessage+3 {
		t.Errorf("runes = %d, want %d", n, maxTextMessage+3)
	}
	if !strings.HasSuffix(got, "...") {
		t.Errorf("message %q lacks ellipsis", got)
	}
}

func TestIsNetworkError(t *testing.T) {
	for _, tc := range []struct {
		name string
		err  error
		want bool
	}{
		{"Nil", nil, false},
		{"Transport", &transportError{err: errors.New("x")}, true},
		{"BadGateway", &APIError{StatusCode: 502}, true},
		{"Unavailable", &APIError{StatusCode: 503}, true},
		{"GatewayTimeout", &APIError{StatusCode: 504}, true},
		{"ZeroStatus", &APIError{StatusCode: 0}, true},
		{"NotFound", &APIError{StatusCode: 404}, false},
		{"Internal", &APIError{StatusCode: 500}, false},
		{"Plain", errors.New("x"), false},
	} {
		if got := IsNetworkError(tc.err); got != tc.want {
			t.Errorf("%s: IsNetworkError() = %v, want %v", tc.name, got, tc.want)
		}
	}
}
