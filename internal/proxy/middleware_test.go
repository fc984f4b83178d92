package proxy

import (
	"context"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

// stubHandler is a no-op gRPC handler used in interceptor tests.
func stubHandler(_ context.Context, _ any) (any, error) {
	return "ok", nil
}

const guardedMethod = "/planora.v1.Admin/Prune"

func TestAuthInterceptor(t *testing.T) {
	for _, tc := range []struct {
		name     string
		token    string
		method   string
		md       metadata.MD
		wantCode codes.Code
	}{
		{"Disabled", "", guardedMethod, nil, codes.OK},
		{"HealthExempt", "secret", "/grpc.health.v1.Health/Check", nil, codes.OK},
		{"MissingMetadata", "secret", guardedMethod, nil, codes.Unauthenticated},
		{"MissingAuthHeader", "secret", guardedMethod, metadata.Pairs("other", "value"), codes.Unauthenticated},
		{"WrongToken", "secret", guardedMethod, metadata.Pairs("authorization", "Bearer wrong"), codes.Unauthenticated},
		{"InvalidScheme", "secret", guardedMethod, metadata.Pairs("authorization", "Basic secret"), codes.Unauthenticated},
		{"CorrectToken", "secret", guardedMethod, metadata.Pairs("authorization", "Bearer secret"), codes.OK},
	} {
		t.Run(tc.name, func(t *testing.T) {
			ctx := context.Background()
			if tc.md != nil {
				ctx = metadata.NewIncomingContext(ctx, tc.md)
			}
			resp, err := AuthInterceptor(tc.token)(ctx, nil, &grpc.UnaryServerInfo{FullMethod: tc.method}, stubHandler)
			if got := status.Code(err); got != tc.wantCode {
				t.Fatalf("code = %v, want %v (err %v)", got, tc.wantCode, err)
			}
			if tc.wantCode == codes.OK && resp != "ok" {
				t.Fatalf("expected 'ok', got %v", resp)
			}
		})
	}
}

func TestRecoveryInterceptor(t *testing.T) {
	interceptor := RecoveryInterceptor(New(Options{}).logger)
	panicking := func(context.Context, any) (any, error) { panic("boom") }
	_, err := interceptor(context.Background(), nil, &grpc.UnaryServerInfo{FullMethod: guardedMethod}, panicking)
	if status.Code(err) != codes.Internal {
		t.Fatalf("expected Internal, got %v", err)
	}
}

func TestAuthMiddleware(t *testing.T) {
	ok := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	for _, tc := range []struct {
		name   string
		token  string
		method string
		path   string
		header string
		want   int
	}{
		{"NoHeader", "secret", http.MethodPost, Path, "", http.StatusUnauthorized},
		{"WrongToken", "secret", http.MethodPost, Path, "Bearer wrong", http.StatusUnauthorized},
		{"InvalidScheme", "secret", http.MethodPost, Path, "Basic secret", http.StatusUnauthorized},
		{"CorrectToken", "secret", http.MethodPost, Path, "Bearer secret", http.StatusOK},
		{"HealthExempt", "secret", http.MethodGet, "/health", "", http.StatusOK},
		{"AuditGuarded", "secret", http.MethodGet, "/audit", "", http.StatusUnauthorized},
		{"Disabled", "", http.MethodPost, Path, "", http.StatusOK},
	} {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(tc.method, tc.path, nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rec := httptest.NewRecorder()
			AuthMiddleware(tc.token, ok).ServeHTTP(rec, req)
			if rec.Code != tc.want {
				t.Fatalf("expected %d, got %d; body: %s", tc.want, rec.Code, rec.Body.String())
			}
		})
	}
}

func TestGRPCHealth(t *testing.T) {
	srv, hs := NewGRPCServer("secret", nil)
	lis, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	go func() { _ = srv.Serve(lis) }()
	t.Cleanup(srv.Stop)

	conn, err := grpc.NewClient(lis.Addr().String(), grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { conn.Close() })
	client := healthpb.NewHealthClient(conn)

	resp, err := client.Check(context.Background(), &healthpb.HealthCheckRequest{Service: ServiceName})
	if err != nil {
		t.Fatalf("Check: %v", err)
	}
	if resp.GetStatus() != healthpb.HealthCheckResponse_SERVING {
		t.Fatalf("status = %v, want SERVING", resp.GetStatus())
	}

	hs.Shutdown()
	resp, err = client.Check(context.Background(), &healthpb.HealthCheckRequest{Service: ServiceName})
	if err != nil {
		t.Fatalf("Check after shutdown: %v", err)
	}
	if resp.GetStatus() != healthpb.HealthCheckResponse_NOT_SERVING {
		t.Fatalf("status = %v, want NOT_SERVING", resp.GetStatus())
	}
}
