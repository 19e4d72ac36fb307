package server

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestSecurityLoggingMiddleware_RateLimiting(t *testing.T) {
	detector := NewSuspiciousActivityDetector()
	middleware := SecurityLoggingMiddleware(nil, detector)

	handler := middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	ip := "192.168.1.100"
	req := httptest.NewRequest("GET", "/api/v1/markets/crypto/BTC/round", nil)
	req.RemoteAddr = ip + ":1234"

	// Limit is 1000 requests per window
	for i := 0; i < 1000; i++ {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("request %d failed with status %d", i, rec.Code)
		}
	}

	// Next request should be blocked
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusTooManyRequests {
		t.Errorf("expected status 429 Too Many Requests, got %d", rec.Code)
	}

	detector.mu.Lock()
	count := detector.requestCountByIP[ip]
	detector.mu.Unlock()

	if count != 1001 {
		t.Errorf("expected count 1001, got %d", count)
	}

	// The limit is per-IP: a different client placing a stake is unaffected
	otherReq := httptest.NewRequest("POST", "/api/v1/stakes", nil)
	otherReq.RemoteAddr = "10.0.0.7:5678"

	otherRec := httptest.NewRecorder()
	handler.ServeHTTP(otherRec, otherReq)

	if otherRec.Code != http.StatusOK {
		t.Errorf("expected other client to pass, got status %d", otherRec.Code)
	}
}
