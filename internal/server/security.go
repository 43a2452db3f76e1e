package server

import (
	"crypto/subtle"
	"log/slog"
	"net"
	"net/http"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/osse101/LuckyDraw_Go/internal/logger"
)

// requestClass buckets requests for rate limiting. Draws commit winners and
// get a much smaller budget than reads.
type requestClass int

const (
	classRead requestClass = iota
	classDraw
)

func classify(r *http.Request) requestClass {
	if r.Method == http.MethodPost && (strings.HasSuffix(r.URL.Path, DrawPathSuffix) || strings.HasSuffix(r.URL.Path, DrawNextPathSuffix)) {
		return classDraw
	}
	return classRead
}

func isPublicPath(path string) bool {
	for _, p := range PublicPaths {
		if strings.HasPrefix(path, p) {
			return true
		}
	}
	return false
}

// AuthMiddleware validates the API key from the header or, for EventSource
// and browser websocket clients, the api_key query parameter. An empty
// apiKey disables the check. IPs that keep failing are locked out until the
// detector window rolls over.
func AuthMiddleware(apiKey string, trustedProxies []string, detector *AbuseDetector) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if apiKey == "" {
			slog.Warn(LogMsgAuthDisabled)
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if isPublicPath(r.URL.Path) {
				next.ServeHTTP(w, r)
				return
			}

			ip := extractIP(r, trustedProxies)
			if detector.AuthLocked(ip) {
				http.Error(w, ErrMsgTooManyRequests, http.StatusTooManyRequests)
				return
			}

			providedKey := r.Header.Get(HeaderAPIKey)
			if providedKey == "" {
				providedKey = r.URL.Query().Get(QueryParamAPIKey)
			}
			if subtle.ConstantTimeCompare([]byte(providedKey), []byte(apiKey)) != 1 {
				detector.RecordFailedAuth(ip)
				logger.FromContext(r.Context()).Warn(LogMsgAuthFailed,
					"path", r.URL.Path,
					"has_key", providedKey != "",
					"ip", ip)
				http.Error(w, ErrMsgUnauthorized, http.StatusUnauthorized)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RequestSizeLimitMiddleware limits request body size
func RequestSizeLimitMiddleware(maxBytes int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
			next.ServeHTTP(w, r)
		})
	}
}

type ipCounters struct {
	reads      int
	draws      int
	failedAuth int
}

// AbuseDetector counts requests and failed logins per client IP over a
// fixed window.
type AbuseDetector struct {
	mu          sync.Mutex
	byIP        map[string]*ipCounters
	windowStart time.Time
	now         func() time.Time
}

// NewAbuseDetector starts a detector whose first window opens now
func NewAbuseDetector() *AbuseDetector {
	return &AbuseDetector{
		byIP:        make(map[string]*ipCounters),
		windowStart: time.Now(),
		now:         time.Now,
	}
}

// countersLocked returns the counters of ip in the current window.
// Caller must hold the mutex.
func (d *AbuseDetector) countersLocked(ip string) *ipCounters {
	if now := d.now(); now.Sub(d.windowStart) > RateWindowMinutes*time.Minute {
		d.byIP = make(map[string]*ipCounters)
		d.windowStart = now
	}
	c, ok := d.byIP[ip]
	if !ok {
		c = &ipCounters{}
		d.byIP[ip] = c
	}
	return c
}

// RecordFailedAuth counts a rejected API key
func (d *AbuseDetector) RecordFailedAuth(ip string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	c := d.countersLocked(ip)
	c.failedAuth++
	switch c.failedAuth {
	case FailedAuthAlertAtCount:
		slog.Warn(SecurityAlertFailedAuth, "ip", ip, "count", c.failedAuth)
	case FailedAuthLockoutCount:
		slog.Warn(SecurityAlertAuthLockout, "ip", ip, "window_minutes", RateWindowMinutes)
	}
}

// AuthLocked reports whether ip failed authentication too often this window
func (d *AbuseDetector) AuthLocked(ip string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.countersLocked(ip).failedAuth >= FailedAuthLockoutCount
}

// Allow counts one request of class for ip and reports whether it is
// still within budget.
func (d *AbuseDetector) Allow(ip string, class requestClass) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	c := d.countersLocked(ip)
	if class == classDraw {
		c.draws++
		if c.draws > DrawRateLimitPerWindow {
			if c.draws == DrawRateLimitPerWindow+1 {
				slog.Warn(SecurityAlertDrawRate, "ip", ip)
			}
			return false
		}
	}

	c.reads++
	if c.reads > RateLimitPerWindow {
		if c.reads%100 == 0 {
			slog.Warn(SecurityAlertHighRate, "ip", ip, "count_in_window", c.reads)
		}
		return false
	}
	return true
}

// RateLimitMiddleware enforces the per-IP request budgets
func RateLimitMiddleware(trustedProxies []string, detector *AbuseDetector) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !detector.Allow(extractIP(r, trustedProxies), classify(r)) {
				http.Error(w, ErrMsgTooManyRequests, http.StatusTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// extractIP gets the client IP address from request.
// It only trusts X-Forwarded-For if the request comes from a trusted proxy.
func extractIP(r *http.Request, trustedProxies []string) string {
	remoteIP, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		remoteIP = r.RemoteAddr
	}

	if slices.Contains(trustedProxies, remoteIP) {
		if forwarded := r.Header.Get(HeaderForwardedFor); forwarded != "" {
			// Rightmost entry is the hop our trusted proxy saw.
			ips := strings.Split(forwarded, ",")
			return strings.TrimSpace(ips[len(ips)-1])
		}
	}

	return remoteIP
}

// SecurityHeadersMiddleware adds security headers to responses
func SecurityHeadersMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := w.Header()
			h.Set(HeaderContentType, HeaderValueNoSniff)
			h.Set(HeaderFrameOptions, HeaderValueSameOrigin)
			h.Set(HeaderXSSProtection, HeaderValueXSSBlock)
			h.Set(HeaderReferrerPolicy, HeaderValueReferrerStrictOrigin)
			next.ServeHTTP(w, r)
		})
	}
}
