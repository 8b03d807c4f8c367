package limiter

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

type errStore struct{}

func (errStore) Incr(context.Context, string, time.Duration) (int, time.Duration, error) {
	return 0, 0, errors.New("store unavailable")
}

func limiterTestServer(l *Limiter) (http.Handler, *int) {
	calls := 0
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusOK)
	})
	return l.Middleware(next), &calls
}

func TestLimiter_AdmitsUnderQuota(t *testing.T) {
	h, calls := limiterTestServer(New(3, 10*time.Minute, newMemoryStore()))

	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodPost, "/send-email", nil)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("request %d: expected 200, got %d", i+1, rec.Code)
		}
	}
	if *calls != 3 {
		t.Errorf("expected 3 handler invocations, got %d", *calls)
	}
}

// TestLimiter_RejectsOverQuota verifies the fixed 429 payload and that the
// pipeline is never invoked for throttled requests.
func TestLimiter_RejectsOverQuota(t *testing.T) {
	h, calls := limiterTestServer(New(2, 10*time.Minute, newMemoryStore()))

	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodPost, "/send-email", nil)
		h.ServeHTTP(httptest.NewRecorder(), req)
	}

	req := httptest.NewRequest(http.MethodPost, "/send-email", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusTooManyRequests {
		t.Errorf("expected 429, got %d", rec.Code)
	}
	if *calls != 2 {
		t.Errorf("expected pipeline to run only for admitted requests, got %d", *calls)
	}
	if rec.Header().Get("Retry-After") == "" {
		t.Error("expected Retry-After header on 429")
	}

	var resp struct {
		Success bool   `json:"success"`
		Msg     string `json:"msg"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Success {
		t.Error("expected success=false")
	}
	if resp.Msg != "Too many requests. Try again later." {
		t.Errorf("expected fixed denial message, got %q", resp.Msg)
	}
}

// TestLimiter_SeparateAddresses verifies that quotas are per address.
func TestLimiter_SeparateAddresses(t *testing.T) {
	h, calls := limiterTestServer(New(1, 10*time.Minute, newMemoryStore()))

	first := httptest.NewRequest(http.MethodPost, "/send-email", nil)
	first.RemoteAddr = "10.0.0.1:1111"
	h.ServeHTTP(httptest.NewRecorder(), first)

	second := httptest.NewRequest(http.MethodPost, "/send-email", nil)
	second.RemoteAddr = "10.0.0.2:2222"
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, second)

	if rec.Code != http.StatusOK {
		t.Errorf("expected 200 for a different address, got %d", rec.Code)
	}
	if *calls != 2 {
		t.Errorf("expected both addresses admitted, got %d", *calls)
	}
}

// TestLimiter_FailsOpenOnStoreError verifies a broken store admits the
// request rather than taking the endpoint down.
func TestLimiter_FailsOpenOnStoreError(t *testing.T) {
	h, calls := limiterTestServer(New(1, time.Minute, errStore{}))

	req := httptest.NewRequest(http.MethodPost, "/send-email", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("expected 200 (fail open), got %d", rec.Code)
	}
	if *calls != 1 {
		t.Errorf("expected handler to run, got %d calls", *calls)
	}
}
