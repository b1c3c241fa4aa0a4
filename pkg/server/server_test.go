package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"zedtex/zedtex/pkg/compiler"
	"zedtex/zedtex/pkg/config"
	"zedtex/zedtex/pkg/telemetry/health"
	"zedtex/zedtex/pkg/telemetry/logging"
	"zedtex/zedtex/pkg/telemetry/metrics"
	"zedtex/zedtex/pkg/zed"
)

func testServerConfig() *config.ServerConfig {
	return &config.ServerConfig{
		ListenAddress:   "127.0.0.1:0",
		ReadTimeout:     5 * time.Second,
		WriteTimeout:    5 * time.Second,
		ShutdownTimeout: 2 * time.Second,
		MaxBodyBytes:    1 << 16,
	}
}

func newTestServer(t *testing.T) (*Server, *metrics.Collector) {
	t.Helper()
	collector := metrics.NewCollector(&config.MetricsConfig{
		Enabled:   true,
		Namespace: "test",
		Subsystem: "server",
	}, nil)
	comp := compiler.New(zed.DefaultOptions()).WithMetrics(collector)

	srv := NewServer(testServerConfig(), comp).
		WithMetrics(collector, "/metrics").
		WithHealth(health.New(time.Second).WithVersion("test"), config.HealthConfig{
			Enabled:       true,
			LivenessPath:  "/health",
			ReadinessPath: "/ready",
		})
	return srv, collector
}

func postCompile(t *testing.T, h http.Handler, body string) (*httptest.ResponseRecorder, CompileResponse) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, CompilePath, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var resp CompileResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("response is not JSON: %v\n%s", err, rec.Body.String())
	}
	return rec, resp
}

func TestCompileEndpoint(t *testing.T) {
	srv, _ := newTestServer(t)
	h := srv.Handler()

	tests := []struct {
		name       string
		body       string
		wantStatus int
		wantOutput string
		wantError  string
	}{
		{
			name:       "default dialect",
			body:       `{"source": "p and q => r"}`,
			wantStatus: http.StatusOK,
			wantOutput: `\[ p \land q \implies r \]`,
		},
		{
			name:       "zed dialect",
			body:       `{"source": "p and q => r", "dialect": "zed"}`,
			wantStatus: http.StatusOK,
			wantOutput: `\Rightarrow`,
		},
		{
			name:       "parse error",
			body:       `{"source": "p and", "name": "hw.txt"}`,
			wantStatus: http.StatusUnprocessableEntity,
			wantError:  "parse",
		},
		{
			name:       "lex error",
			body:       `{"source": "x $ y"}`,
			wantStatus: http.StatusUnprocessableEntity,
			wantError:  "lex",
		},
		{
			name:       "unknown dialect",
			body:       `{"source": "p", "dialect": "latex"}`,
			wantStatus: http.StatusBadRequest,
			wantError:  ErrorTypeRequest,
		},
		{
			name:       "malformed JSON",
			body:       `{"source": `,
			wantStatus: http.StatusBadRequest,
			wantError:  ErrorTypeRequest,
		},
		{
			name:       "unknown field",
			body:       `{"src": "p"}`,
			wantStatus: http.StatusBadRequest,
			wantError:  ErrorTypeRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, resp := postCompile(t, h, tt.body)
			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d (%s)", rec.Code, tt.wantStatus, rec.Body.String())
			}
			if tt.wantOutput != "" && !strings.Contains(resp.Output, tt.wantOutput) {
				t.Errorf("output = %q, want it to contain %q", resp.Output, tt.wantOutput)
			}
			if tt.wantError == "" {
				if resp.Error != nil {
					t.Errorf("error = %+v, want none", resp.Error)
				}
				return
			}
			if resp.Error == nil {
				t.Fatal("error = nil, want one")
			}
			if resp.Error.Type != tt.wantError {
				t.Errorf("error type = %q, want %q", resp.Error.Type, tt.wantError)
			}
		})
	}
}

func TestCompileEndpoint_ErrorLocation(t *testing.T) {
	srv, _ := newTestServer(t)
	_, resp := postCompile(t, srv.Handler(), `{"source": "p and q\nx $ y"}`)

	if resp.Error == nil {
		t.Fatal("error = nil, want a lex error")
	}
	if resp.Error.Line != 2 || resp.Error.Column != 3 {
		t.Errorf("location = %d:%d, want 2:3", resp.Error.Line, resp.Error.Column)
	}
	if !strings.Contains(resp.Error.Snippet, "x $ y") {
		t.Errorf("snippet = %q, want the offending line", resp.Error.Snippet)
	}
	if strings.Contains(resp.Error.Message, "\n") {
		t.Errorf("message = %q, want a single line", resp.Error.Message)
	}
}

func TestCompileEndpoint_Warnings(t *testing.T) {
	opts := zed.DefaultOptions()
	opts.MaxLineWidth = 20
	srv := NewServer(testServerConfig(), compiler.New(opts))

	body, _ := json.Marshal(CompileRequest{
		Source: "axdef\n  limit : N\nwhere\n  limit > 0 and limit < 1000000 and limit /= 42\nend",
	})
	rec, resp := postCompile(t, srv.Handler(), string(body))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (%s)", rec.Code, rec.Body.String())
	}
	if len(resp.Warnings) == 0 {
		t.Fatal("warnings = none, want a line width warning")
	}
	if resp.Warnings[0].Line != 1 {
		t.Errorf("warning line = %d, want 1", resp.Warnings[0].Line)
	}
}

func TestCompileEndpoint_MethodNotAllowed(t *testing.T) {
	srv, _ := newTestServer(t)
	req := httptest.NewRequest(http.MethodGet, CompilePath, nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want 405", rec.Code)
	}
	if got := rec.Header().Get("Allow"); got != http.MethodPost {
		t.Errorf("Allow = %q, want POST", got)
	}
}

func TestCompileEndpoint_BodyTooLarge(t *testing.T) {
	cfg := testServerConfig()
	cfg.MaxBodyBytes = 32
	srv := NewServer(cfg, compiler.New(zed.DefaultOptions()))

	body, _ := json.Marshal(CompileRequest{Source: strings.Repeat("p and ", 20) + "q"})
	rec, resp := postCompile(t, srv.Handler(), string(body))
	if rec.Code != http.StatusRequestEntityTooLarge {
		t.Errorf("status = %d, want 413", rec.Code)
	}
	if resp.Error == nil || resp.Error.Type != ErrorTypeRequest {
		t.Errorf("error = %+v, want a request error", resp.Error)
	}
}

func TestHealthAndMetricsRoutes(t *testing.T) {
	srv, _ := newTestServer(t)
	h := srv.Handler()

	postCompile(t, h, `{"source": "p"}`)

	tests := []struct {
		path       string
		wantStatus int
		wantBody   string
	}{
		{"/health", http.StatusOK, `"status":"ok"`},
		{"/ready", http.StatusOK, `"compiler"`},
		{"/metrics", http.StatusOK, `test_server_compiles_total{dialect="fuzz",status="success"} 1`},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.path, nil))
			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if !strings.Contains(rec.Body.String(), tt.wantBody) {
				t.Errorf("body = %s, want it to contain %s", rec.Body.String(), tt.wantBody)
			}
		})
	}
}

func TestRoutesWithoutTelemetry(t *testing.T) {
	srv := NewServer(testServerConfig(), compiler.New(zed.DefaultOptions()))
	h := srv.Handler()

	for _, path := range []string{"/health", "/metrics"} {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		if rec.Code != http.StatusNotFound {
			t.Errorf("%s status = %d, want 404", path, rec.Code)
		}
	}
}

func TestRequestIDMiddleware(t *testing.T) {
	var seen string
	h := RequestIDMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = logging.GetRequestID(r.Context())
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if seen == "" || rec.Header().Get(RequestIDHeader) != seen {
		t.Errorf("generated ID = %q, header = %q", seen, rec.Header().Get(RequestIDHeader))
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "client-id")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if seen != "client-id" {
		t.Errorf("request ID = %q, want the client's", seen)
	}
}

func TestRecoveryMiddleware(t *testing.T) {
	var logs bytes.Buffer
	logger, err := logging.New(logging.Config{Level: "error", Format: "json", Writer: &logs})
	if err != nil {
		t.Fatal(err)
	}

	h := RecoveryMiddleware(logger)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", rec.Code)
	}
	if strings.Contains(rec.Body.String(), "boom") {
		t.Error("panic value leaked into the response")
	}
	if !strings.Contains(logs.String(), "panic in handler") {
		t.Errorf("logs = %s, want the panic logged", logs.String())
	}
}

func TestServeAndShutdown(t *testing.T) {
	srv, _ := newTestServer(t)
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Serve(ctx, ln) }()

	url := "http://" + ln.Addr().String()
	var resp *http.Response
	for i := 0; i < 50; i++ {
		resp, err = http.Post(url+CompilePath, "application/json", strings.NewReader(`{"source": "p"}`))
		if err == nil {
			break
		}
		time.Sleep(20 * time.Millisecond)
	}
	if err != nil {
		t.Fatalf("POST error = %v", err)
	}
	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want 200", resp.StatusCode)
	}
	if !srv.IsRunning() {
		t.Error("IsRunning() = false while serving")
	}
	if srv.Addr() == nil {
		t.Error("Addr() = nil while serving")
	}

	if err := srv.Serve(ctx, mustListen(t)); err == nil {
		t.Error("second Serve() should fail")
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Serve() error = %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
	if srv.IsRunning() {
		t.Error("IsRunning() = true after shutdown")
	}
}

func mustListen(t *testing.T) net.Listener {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	return ln
}
