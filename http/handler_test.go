package http

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/mark3labs/solix"
	"github.com/mark3labs/solix/metrics"
	"github.com/mark3labs/solix/retry"
	"github.com/mark3labs/solix/service"
)

const (
	walletA = "4Nd1mBQtrMJVYVfKf2PJy9NZUZdTAsp7D4xWLs4gDB4T"
	walletB = "CuieVDEDtLo7FypA9SbLM9saXFdb1dsshEkyErMqkRQq"
	usdc    = "EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v"
)

var fastRetry = retry.Policy{Attempts: 3, BaseDelay: time.Millisecond, MaxDelay: 2 * time.Millisecond, Factor: 2}

func u64(v uint64) *uint64 { return &v }

func newConfig(t *testing.T) *Config {
	t.Helper()
	svc, err := service.New()
	if err != nil {
		t.Fatalf("service.New: %v", err)
	}
	return &Config{
		Service: svc,
		Logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		Metrics: metrics.New(),
	}
}

func newClient(t *testing.T, url string) *Client {
	t.Helper()
	client, err := NewClient(url, WithRetryPolicy(fastRetry))
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	return client
}

func post(t *testing.T, h http.Handler, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestEndpointsAreUnique(t *testing.T) {
	seen := map[string]bool{}
	for _, ep := range Endpoints() {
		if seen[ep.Path] {
			t.Errorf("duplicate path %s", ep.Path)
		}
		seen[ep.Path] = true
		if ep.Operation == "" || ep.Invoke == nil {
			t.Errorf("endpoint %s is incomplete", ep.Path)
		}
	}
	if len(seen) != 10 {
		t.Errorf("got %d endpoints, want 10", len(seen))
	}
}

func TestHandlerStatuses(t *testing.T) {
	h := NewHandler(newConfig(t))

	tests := []struct {
		name       string
		path       string
		body       string
		wantStatus int
		wantBody   string
	}{
		{
			name:       "send sol",
			path:       "/send/sol",
			body:       `{"from":"` + walletA + `","to":"` + walletB + `","lamports":1000}`,
			wantStatus: http.StatusOK,
			wantBody:   `"instructionData":"AgAAAOgDAAAAAAAA"`,
		},
		{
			name:       "send sol above 2^53",
			path:       "/send/sol",
			body:       `{"from":"` + walletA + `","to":"` + walletB + `","lamports":9007199254740993}`,
			wantStatus: http.StatusOK,
			wantBody:   `"instructionData":"AgAAAAEAAAAAACAA"`,
		},
		{
			name:       "send sol max u64",
			path:       "/send/sol",
			body:       `{"from":"` + walletA + `","to":"` + walletB + `","lamports":18446744073709551615}`,
			wantStatus: http.StatusOK,
			wantBody:   `"instructionData":"AgAAAP//////////"`,
		},
		{
			name:       "send sol u64 overflow",
			path:       "/send/sol",
			body:       `{"from":"` + walletA + `","to":"` + walletB + `","lamports":18446744073709551616}`,
			wantStatus: http.StatusBadRequest,
			wantBody:   `"error":"Invalid value for field 'lamports'"`,
		},
		{
			name:       "missing fields",
			path:       "/send/sol",
			body:       `{}`,
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"success":false,"error":"Missing required fields: from, to, lamports"}`,
		},
		{
			name:       "empty body",
			path:       "/message/sign",
			body:       ``,
			wantStatus: http.StatusBadRequest,
			wantBody:   `"success":false`,
		},
		{
			name:       "malformed json",
			path:       "/send/sol",
			body:       `{"from":`,
			wantStatus: http.StatusBadRequest,
			wantBody:   `"error":"Invalid JSON request body"`,
		},
		{
			name:       "wrong type",
			path:       "/send/sol",
			body:       `{"from":"` + walletA + `","to":"` + walletB + `","lamports":"1000"}`,
			wantStatus: http.StatusBadRequest,
			wantBody:   `"error":"Invalid value for field 'lamports'"`,
		},
		{
			name:       "zero amount",
			path:       "/send/sol",
			body:       `{"from":"` + walletA + `","to":"` + walletB + `","lamports":0}`,
			wantStatus: http.StatusBadRequest,
			wantBody:   `"success":false`,
		},
		{
			name:       "bad key",
			path:       "/token/associated-account",
			body:       `{"owner":"0OIl","mint":"` + usdc + `"}`,
			wantStatus: http.StatusBadRequest,
			wantBody:   `"error":"Invalid base58 encoding for field 'owner'"`,
		},
		{
			name:       "keypair without body",
			path:       "/keypair",
			body:       ``,
			wantStatus: http.StatusOK,
			wantBody:   `"secret":`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := post(t, h, tt.path, tt.body)
			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d (body %s)", rec.Code, tt.wantStatus, rec.Body.String())
			}
			if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
				t.Errorf("Content-Type = %q", ct)
			}
			if !strings.Contains(rec.Body.String(), tt.wantBody) {
				t.Errorf("body %s does not contain %s", rec.Body.String(), tt.wantBody)
			}
		})
	}
}

func TestHandlerRouting(t *testing.T) {
	h := NewHandler(newConfig(t))

	t.Run("unknown path", func(t *testing.T) {
		rec := post(t, h, "/nope", `{}`)
		if rec.Code != http.StatusNotFound {
			t.Errorf("status = %d, want 404", rec.Code)
		}
	})

	t.Run("wrong method", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/send/sol", nil))
		if rec.Code != http.StatusMethodNotAllowed {
			t.Errorf("status = %d, want 405", rec.Code)
		}
	})

	t.Run("health", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
		if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"status":"ok"`) {
			t.Errorf("health = %d %s", rec.Code, rec.Body.String())
		}
	})

	t.Run("body limit", func(t *testing.T) {
		config := newConfig(t)
		config.MaxBodyBytes = 16
		rec := post(t, NewHandler(config), "/send/sol", strings.Repeat(" ", 17)+"{}")
		if rec.Code != http.StatusBadRequest || !strings.Contains(rec.Body.String(), "Request body too large") {
			t.Errorf("got %d %s", rec.Code, rec.Body.String())
		}
	})
}

func TestHandlerMetrics(t *testing.T) {
	config := newConfig(t)
	h := NewHandler(config)

	post(t, h, "/send/sol", `{"from":"`+walletA+`","to":"`+walletB+`","lamports":1000}`)
	post(t, h, "/send/sol", `{}`)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	body := rec.Body.String()
	for _, want := range []string{
		`solix_requests_total{operation="send_sol",outcome="ok"} 1`,
		`solix_requests_total{operation="send_sol",outcome="MissingField"} 1`,
	} {
		if !strings.Contains(body, want) {
			t.Errorf("metrics missing %s", want)
		}
	}

	t.Run("disabled", func(t *testing.T) {
		config := newConfig(t)
		config.Metrics = nil
		rec := httptest.NewRecorder()
		NewHandler(config).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
		if rec.Code != http.StatusNotFound {
			t.Errorf("status = %d, want 404", rec.Code)
		}
	})
}

func TestHandlerMountsMCP(t *testing.T) {
	config := newConfig(t)
	config.MCP = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})
	rec := post(t, NewHandler(config), "/mcp", `{}`)
	if rec.Code != http.StatusTeapot {
		t.Errorf("status = %d, want 418", rec.Code)
	}
}

func TestLoggingMiddleware(t *testing.T) {
	var buf strings.Builder
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	h := LoggingMiddleware(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/bad" {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		_, _ = w.Write([]byte("ok"))
	}))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/good", nil))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/bad", nil))

	out := buf.String()
	if !strings.Contains(out, "level=INFO msg=request") || !strings.Contains(out, "status=200") {
		t.Errorf("missing info line: %s", out)
	}
	if !strings.Contains(out, `level=WARN msg="request failed"`) || !strings.Contains(out, "status=400") {
		t.Errorf("missing warn line: %s", out)
	}
}

func TestClient(t *testing.T) {
	server := httptest.NewServer(NewHandler(newConfig(t)))
	defer server.Close()
	client := newClient(t, server.URL)
	ctx := context.Background()

	if err := client.Health(ctx); err != nil {
		t.Fatalf("Health: %v", err)
	}

	kp, err := client.GenerateKeypair(ctx)
	if err != nil {
		t.Fatalf("GenerateKeypair: %v", err)
	}

	signed, err := client.SignMessage(ctx, solix.SignMessageRequest{Message: "Hello, Solana!", Secret: kp.Secret})
	if err != nil {
		t.Fatalf("SignMessage: %v", err)
	}
	if signed.Pubkey != kp.Pubkey {
		t.Errorf("pubkey = %s, want %s", signed.Pubkey, kp.Pubkey)
	}

	verified, err := client.VerifyMessage(ctx, solix.VerifyMessageRequest{
		Message:   "Hello, Solana!",
		Signature: signed.Signature,
		Pubkey:    kp.Pubkey,
	})
	if err != nil || !verified.Valid {
		t.Errorf("VerifyMessage = %+v, %v", verified, err)
	}

	ix, err := client.SendSol(ctx, solix.SendSolRequest{From: walletA, To: walletB, Lamports: u64(1000)})
	if err != nil {
		t.Fatalf("SendSol: %v", err)
	}
	if ix.InstructionData != "AgAAAOgDAAAAAAAA" {
		t.Errorf("instructionData = %s", ix.InstructionData)
	}

	ata, err := client.AssociatedAccount(ctx, solix.AssociatedAccountRequest{Owner: walletA, Mint: usdc})
	if err != nil || ata.Address == "" {
		t.Errorf("AssociatedAccount = %+v, %v", ata, err)
	}

	_, err = client.SendSol(ctx, solix.SendSolRequest{From: walletA})
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %v", err)
	}
	if apiErr.StatusCode != http.StatusBadRequest || apiErr.Message != "Missing required fields: to, lamports" {
		t.Errorf("apiErr = %+v", apiErr)
	}
}

func TestClientRetries(t *testing.T) {
	inner := NewHandler(newConfig(t))

	t.Run("gateway errors are retried", func(t *testing.T) {
		var calls atomic.Int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if calls.Add(1) < 3 {
				w.WriteHeader(http.StatusServiceUnavailable)
				return
			}
			inner.ServeHTTP(w, r)
		}))
		defer server.Close()

		if _, err := newClient(t, server.URL).GenerateKeypair(context.Background()); err != nil {
			t.Fatalf("GenerateKeypair: %v", err)
		}
		if calls.Load() != 3 {
			t.Errorf("calls = %d, want 3", calls.Load())
		}
	})

	t.Run("client errors are not retried", func(t *testing.T) {
		var calls atomic.Int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls.Add(1)
			inner.ServeHTTP(w, r)
		}))
		defer server.Close()

		_, err := newClient(t, server.URL).SendSol(context.Background(), solix.SendSolRequest{})
		if err == nil {
			t.Fatal("expected error")
		}
		if calls.Load() != 1 {
			t.Errorf("calls = %d, want 1", calls.Load())
		}
	})
}

func TestNewClientOptions(t *testing.T) {
	if _, err := NewClient(""); err == nil {
		t.Error("expected error for empty base URL")
	}
	if _, err := NewClient("http://localhost", WithHTTPClient(nil)); err == nil {
		t.Error("expected error for nil http client")
	}
	if _, err := NewClient("http://localhost/", WithHTTPClient(&http.Client{Timeout: time.Second})); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}
