package middleware

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/brightwell-digital/cms-backend/pkg/logger"
	"github.com/brightwell-digital/cms-backend/pkg/ratelimit"
)

type failingStore struct{}

func (failingStore) IncrWithTTL(ctx context.Context, key string, ttl time.Duration) (int64, error) {
	return 0, errors.New("store down")
}

func newLimitedHandler(t *testing.T, store CounterStore, limit int) http.Handler {
	t.Helper()

	logg := logger.New(logger.Options{ServiceName: "test", Output: io.Discard})

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	return RateLimit(NewRateLimitPolicy(time.Minute, limit), store, nil, logg)(next)
}

func doRequest(handler http.Handler, path, forwardedFor string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, nil)
	req.RemoteAddr = "198.51.100.7:41852"
	if forwardedFor != "" {
		req.Header.Set("X-Forwarded-For", forwardedFor)
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestRateLimitBlocksAfterLimit(t *testing.T) {
	handler := newLimitedHandler(t, ratelimit.NewMemoryStore(), 10)

	for i := 0; i < 10; i++ {
		rec := doRequest(handler, "/api/v1/auth/login", "")
		if rec.Code != http.StatusNoContent {
			t.Fatalf("request %d: got status %d, want %d", i+1, rec.Code, http.StatusNoContent)
		}
	}

	rec := doRequest(handler, "/api/v1/auth/login", "")
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("got status %d, want %d", rec.Code, http.StatusTooManyRequests)
	}
}

func TestRateLimitTracksClientsIndependently(t *testing.T) {
	handler := newLimitedHandler(t, ratelimit.NewMemoryStore(), 1)

	if rec := doRequest(handler, "/api/v1/auth/login", "203.0.113.10"); rec.Code != http.StatusNoContent {
		t.Fatalf("first client: got status %d", rec.Code)
	}
	if rec := doRequest(handler, "/api/v1/auth/login", "203.0.113.10"); rec.Code != http.StatusTooManyRequests {
		t.Fatalf("first client second hit: got status %d", rec.Code)
	}
	if rec := doRequest(handler, "/api/v1/auth/login", "203.0.113.99"); rec.Code != http.StatusNoContent {
		t.Fatalf("second client: got status %d", rec.Code)
	}
}

func TestRateLimitTracksPathsIndependently(t *testing.T) {
	handler := newLimitedHandler(t, ratelimit.NewMemoryStore(), 1)

	if rec := doRequest(handler, "/api/v1/auth/login", ""); rec.Code != http.StatusNoContent {
		t.Fatalf("login: got status %d", rec.Code)
	}
	if rec := doRequest(handler, "/api/v1/auth/password-reset", ""); rec.Code != http.StatusNoContent {
		t.Fatalf("password-reset: got status %d", rec.Code)
	}
	if rec := doRequest(handler, "/api/v1/auth/login", ""); rec.Code != http.StatusTooManyRequests {
		t.Fatalf("login second hit: got status %d", rec.Code)
	}
}

func TestRateLimitFailsOpenOnStoreError(t *testing.T) {
	handler := newLimitedHandler(t, failingStore{}, 1)

	for i := 0; i < 3; i++ {
		if rec := doRequest(handler, "/api/v1/auth/login", ""); rec.Code != http.StatusNoContent {
			t.Fatalf("request %d: got status %d", i+1, rec.Code)
		}
	}
}

func TestRateLimitDisabledPolicyPassesThrough(t *testing.T) {
	handler := newLimitedHandler(t, failingStore{}, 0)

	if rec := doRequest(handler, "/api/v1/auth/login", ""); rec.Code != http.StatusNoContent {
		t.Fatalf("got status %d", rec.Code)
	}
}

func TestClientIPPrecedence(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "198.51.100.7:41852"

	if got := clientIP(req); got != "198.51.100.7" {
		t.Fatalf("remote addr: got %q", got)
	}

	req.Header.Set("X-Real-IP", "192.0.2.44")
	if got := clientIP(req); got != "192.0.2.44" {
		t.Fatalf("real ip: got %q", got)
	}

	req.Header.Set("X-Forwarded-For", "203.0.113.5, 10.0.0.1")
	if got := clientIP(req); got != "203.0.113.5" {
		t.Fatalf("forwarded for: got %q", got)
	}
}
