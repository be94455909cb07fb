package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/pratododia/cardapio-backend/pkg/config"
	pkgerrors "github.com/pratododia/cardapio-backend/pkg/errors"
)

type fakeRateStore struct {
	mu     sync.Mutex
	counts map[string]int64
	err    error
}

func newFakeRateStore() *fakeRateStore {
	return &fakeRateStore{counts: map[string]int64{}}
}

func (s *fakeRateStore) IncrWithTTL(_ context.Context, key string, _ time.Duration) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return 0, s.err
	}
	s.counts[key]++
	return s.counts[key], nil
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestLoginRateLimitAllowsUnderLimit(t *testing.T) {
	store := newFakeRateStore()
	cfg := config.AuthRateLimitConfig{LoginWindow: time.Minute, LoginIPLimit: 3}
	handler := LoginRateLimit(cfg, store, nil)(okHandler())

	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodPost, "/api/admin/v1/auth/login", nil)
		req.RemoteAddr = "1.2.3.4:5678"
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("attempt %d: expected 200, got %d", i+1, rec.Code)
		}
	}
}

func TestLoginRateLimitBlocksOverLimit(t *testing.T) {
	store := newFakeRateStore()
	cfg := config.AuthRateLimitConfig{LoginWindow: time.Minute, LoginIPLimit: 2}
	handler := LoginRateLimit(cfg, store, nil)(okHandler())

	var lastCode int
	var lastBody []byte
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodPost, "/api/admin/v1/auth/login", nil)
		req.RemoteAddr = "1.2.3.4:5678"
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)
		lastCode = rec.Code
		lastBody = rec.Body.Bytes()
	}

	if lastCode != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", lastCode)
	}
	var payload struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	if err := json.Unmarshal(lastBody, &payload); err != nil {
		t.Fatalf("decode error: %v", err)
	}
	if payload.Error.Code != string(pkgerrors.CodeRateLimit) {
		t.Fatalf("unexpected code: %s", payload.Error.Code)
	}
}

func TestLoginRateLimitSeparateIPs(t *testing.T) {
	store := newFakeRateStore()
	cfg := config.AuthRateLimitConfig{LoginWindow: time.Minute, LoginIPLimit: 1}
	handler := LoginRateLimit(cfg, store, nil)(okHandler())

	for _, addr := range []string{"1.2.3.4:1111", "5.6.7.8:2222"} {
		req := httptest.NewRequest(http.MethodPost, "/api/admin/v1/auth/login", nil)
		req.RemoteAddr = addr
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("ip %s: expected 200, got %d", addr, rec.Code)
		}
	}
}

func TestLoginRateLimitFailsOpenOnStoreError(t *testing.T) {
	store := newFakeRateStore()
	store.err = errors.New("redis down")
	cfg := config.AuthRateLimitConfig{LoginWindow: time.Minute, LoginIPLimit: 1}
	handler := LoginRateLimit(cfg, store, nil)(okHandler())

	req := httptest.NewRequest(http.MethodPost, "/api/admin/v1/auth/login", nil)
	req.RemoteAddr = "1.2.3.4:5678"
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 when the store is unavailable, got %d", rec.Code)
	}
}

func TestClientIPPrefersForwardedFor(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "9.9.9.9:1234"
	req.Header.Set("X-Forwarded-For", "1.1.1.1, 2.2.2.2")

	if got := clientIP(req); got != "1.1.1.1" {
		t.Fatalf("expected first forwarded ip, got %s", got)
	}
}
