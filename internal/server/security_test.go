package server

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestAuthMiddleware(t *testing.T) {
	apiKey := "secret-key"
	middleware := AuthMiddleware(apiKey, nil, NewAbuseDetector())

	tests := []struct {
		name           string
		providedKey    string
		queryKey       string
		path           string
		expectedStatus int
	}{
		{
			name:           "Valid API Key",
			providedKey:    apiKey,
			path:           "/api/v1/sessions",
			expectedStatus: http.StatusOK,
		},
		{
			name:           "Valid query key",
			queryKey:       apiKey,
			path:           "/api/v1/events",
			expectedStatus: http.StatusOK,
		},
		{
			name:           "Invalid API Key",
			providedKey:    "wrong-key",
			path:           "/api/v1/sessions",
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "Missing API Key",
			path:           "/api/v1/sessions",
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "Public Path - Healthz",
			path:           "/healthz",
			expectedStatus: http.StatusOK,
		},
		{
			name:           "Public Path - Metrics",
			path:           "/metrics",
			expectedStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			target := tt.path
			if tt.queryKey != "" {
				target += "?" + QueryParamAPIKey + "=" + tt.queryKey
			}
			req := httptest.NewRequest("GET", target, nil)
			if tt.providedKey != "" {
				req.Header.Set(HeaderAPIKey, tt.providedKey)
			}
			rec := httptest.NewRecorder()

			handler := middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
			}))

			handler.ServeHTTP(rec, req)

			if rec.Code != tt.expectedStatus {
				t.Errorf("expected status %d, got %d", tt.expectedStatus, rec.Code)
			}
		})
	}
}

func TestAuthMiddleware_EmptyKeyDisablesAuth(t *testing.T) {
	handler := AuthMiddleware("", nil, NewAbuseDetector())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest("POST", "/api/v1/sessions", nil))

	if rec.Code != http.StatusNoContent {
		t.Errorf("expected status 204, got %d", rec.Code)
	}
}

func TestAuthMiddleware_LocksOutRepeatedFailures(t *testing.T) {
	handler := AuthMiddleware("secret-key", nil, NewAbuseDetector())(okHandler())

	send := func(key string) int {
		req := httptest.NewRequest("POST", "/api/v1/sessions/x/draws", nil)
		req.RemoteAddr = "203.0.113.7:999"
		req.Header.Set(HeaderAPIKey, key)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		return rec.Code
	}

	for i := 0; i < FailedAuthLockoutCount; i++ {
		if code := send("guess"); code != http.StatusUnauthorized {
			t.Fatalf("attempt %d: expected 401, got %d", i, code)
		}
	}
	if code := send("secret-key"); code != http.StatusTooManyRequests {
		t.Errorf("expected locked out client to get 429 even with the right key, got %d", code)
	}
}

func TestExtractIP(t *testing.T) {
	tests := []struct {
		name       string
		remoteAddr string
		forwarded  string
		trusted    []string
		want       string
	}{
		{"direct", "10.0.0.5:5555", "", nil, "10.0.0.5"},
		{"untrusted proxy ignored", "10.0.0.5:5555", "1.2.3.4", nil, "10.0.0.5"},
		{"trusted proxy", "10.0.0.1:5555", "1.2.3.4, 5.6.7.8", []string{"10.0.0.1"}, "5.6.7.8"},
		{"no port", "10.0.0.9", "", nil, "10.0.0.9"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/", nil)
			req.RemoteAddr = tt.remoteAddr
			if tt.forwarded != "" {
				req.Header.Set(HeaderForwardedFor, tt.forwarded)
			}
			if got := extractIP(req, tt.trusted); got != tt.want {
				t.Errorf("extractIP() = %q, want %q", got, tt.want)
			}
		})
	}
}
