package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/rigtrack/rigtrack-backend/pkg/config"
	pkgerrors "github.com/rigtrack/rigtrack-backend/pkg/errors"
)

func TestRateLimit_AllowsUnderLimit(t *testing.T) {
	store := newFakeRateStore()
	cfg := config.APIRateLimitConfig{Window: time.Minute, IPLimit: 2}
	handler := RateLimit(cfg, store, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/assets", nil)
	req.RemoteAddr = "1.2.3.4:5678"
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestRateLimit_DeniesOverLimit(t *testing.T) {
	store := newFakeRateStore()
	cfg := config.APIRateLimitConfig{Window: time.Minute, IPLimit: 2}
	handler := RateLimit(cfg, store, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodGet, "/api/assets", nil)
		req.RemoteAddr = "1.2.3.4:5678"
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		if i < 2 {
			if rec.Code != http.StatusOK {
				t.Fatalf("expected success before limit, got %d", rec.Code)
			}
			continue
		}
		if rec.Code != http.StatusTooManyRequests {
			t.Fatalf("expected 429, got %d", rec.Code)
		}
		var payload struct {
			Error struct {
				Code string `json:"code"`
			} `json:"error"`
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
			t.Fatalf("decode error: %v", err)
		}
		if payload.Error.Code != string(pkgerrors.CodeRateLimit) {
			t.Fatalf("unexpected code: %s", payload.Error.Code)
		}
	}
}

func TestRateLimit_CountsPerIP(t *testing.T) {
	store := newFakeRateStore()
	cfg := config.APIRateLimitConfig{Window: time.Minute, IPLimit: 1}
	handler := RateLimit(cfg, store, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	first := httptest.NewRequest(http.MethodGet, "/api/rigs", nil)
	first.RemoteAddr = "1.2.3.4:5678"
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, first)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 for first ip, got %d", rec.Code)
	}

	other := httptest.NewRequest(http.MethodGet, "/api/rigs", nil)
	other.RemoteAddr = "9.8.7.6:5678"
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, other)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 for second ip, got %d", rec.Code)
	}

	repeat := httptest.NewRequest(http.MethodGet, "/api/rigs", nil)
	repeat.RemoteAddr = "1.2.3.4:9999"
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, repeat)
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429 for exhausted ip, got %d", rec.Code)
	}
}

func TestRateLimit_DisabledWithoutConfig(t *testing.T) {
	store := newFakeRateStore()
	handler := RateLimit(config.APIRateLimitConfig{}, store, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	for i := 0; i < 5; i++ {
		req := httptest.NewRequest(http.MethodGet, "/api/assets", nil)
		req.RemoteAddr = "1.2.3.4:5678"
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected passthrough, got %d", rec.Code)
		}
	}
	if store.calls != 0 {
		t.Fatalf("expected store untouched, got %d calls", store.calls)
	}
}

type fakeRateStore struct {
	mu     sync.Mutex
	counts map[string]int64
	calls  int
}

func newFakeRateStore() *fakeRateStore {
	return &fakeRateStore{counts: map[string]int64{}}
}

func (f *fakeRateStore) FixedWindowAllow(ctx context.Context, scope string, limit int64, window time.Duration) (bool, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.counts[scope]++
	count := f.counts[scope]
	return count <= limit, count, nil
}
