package server

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/osse101/LuckyDraw_Go/internal/handler"
	"github.com/osse101/LuckyDraw_Go/internal/logger"
	"github.com/osse101/LuckyDraw_Go/internal/metrics"
	"github.com/osse101/LuckyDraw_Go/internal/raffle"
	"github.com/osse101/LuckyDraw_Go/internal/sse"
	"github.com/osse101/LuckyDraw_Go/internal/stage"
)

// Dependencies are the components the HTTP routes are served from.
type Dependencies struct {
	Raffle    raffle.Service
	Defaults  handler.DatasetPaths
	Events    *sse.Hub
	Stage     *stage.Registry
	Readiness []handler.HealthChecker
}

type Server struct {
	httpServer *http.Server
}

// NewServer creates a new Server instance
func NewServer(port int, apiKey string, trustedProxies []string, deps Dependencies) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf(":%d", port),
			Handler:           NewRouter(apiKey, trustedProxies, deps),
			ReadHeaderTimeout: ReadHeaderTimeoutSeconds * time.Second,
			IdleTimeout:       IdleTimeoutSeconds * time.Second,
		},
	}
}

// NewRouter builds the full route tree.
func NewRouter(apiKey string, trustedProxies []string, deps Dependencies) http.Handler {
	r := chi.NewRouter()

	// Middleware stack
	// Chi middleware executes in order defined (outermost to innermost)
	detector := NewAbuseDetector()

	r.Use(middleware.Recoverer)
	r.Use(SecurityHeadersMiddleware())
	r.Use(loggingMiddleware)
	r.Use(AuthMiddleware(apiKey, trustedProxies, detector))
	r.Use(RateLimitMiddleware(trustedProxies, detector))
	r.Use(RequestSizeLimitMiddleware(MaxRequestBytes))
	r.Use(metrics.Middleware)

	// Health check routes (unversioned)
	r.Get("/healthz", handler.HandleHealthz())
	r.Get("/readyz", handler.HandleReadyz(deps.Readiness...))

	// Version endpoint (public, for deployment verification)
	r.Get("/version", handler.HandleVersion())

	// Metrics endpoint (public, for Prometheus scraping)
	r.Handle("/metrics", promhttp.Handler())

	sessions := handler.NewSessionHandler(deps.Raffle, deps.Defaults)

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/sessions", func(r chi.Router) {
			r.Post("/", sessions.HandleCreateSession)
			r.Post("/upload", sessions.HandleUploadSession)

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", sessions.HandleGetSession)
				r.Delete("/", sessions.HandleDeleteSession)
				r.Get("/groups", sessions.HandleListGroups)
				r.Get("/winners", sessions.HandleWinners)
				r.Post("/draws", sessions.HandleDrawGroup)
				r.Post("/draws/next", sessions.HandleDrawNext)
				if deps.Stage != nil {
					r.Get("/stage", stage.Handler(deps.Stage))
				}
			})
		})

		if deps.Events != nil {
			r.Get("/events", sse.Handler(deps.Events))
		}
	})

	// Swagger documentation
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	return r
}

// responseWriter wraps http.ResponseWriter to capture the status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
	written    bool
}

func newResponseWriter(w http.ResponseWriter) *responseWriter {
	return &responseWriter{
		ResponseWriter: w,
		statusCode:     http.StatusOK, // default status
	}
}

func (rw *responseWriter) WriteHeader(statusCode int) {
	if !rw.written {
		rw.statusCode = statusCode
		rw.written = true
		rw.ResponseWriter.WriteHeader(statusCode)
	}
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	if !rw.written {
		rw.WriteHeader(http.StatusOK)
	}
	return rw.ResponseWriter.Write(b)
}

// Flush passes through for SSE
func (rw *responseWriter) Flush() {
	if f, ok := rw.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

// Hijack passes through for websocket upgrades
func (rw *responseWriter) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	h, ok := rw.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, errors.New("response writer does not support hijacking")
	}
	rw.statusCode = http.StatusSwitchingProtocols
	rw.written = true
	return h.Hijack()
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		for _, p := range quietPaths {
			if strings.HasPrefix(r.URL.Path, p) {
				next.ServeHTTP(w, r)
				return
			}
		}

		requestID := r.Header.Get(middleware.RequestIDHeader)
		if requestID == "" {
			requestID = logger.GenerateRequestID()
		}
		ctx := logger.WithRequestID(r.Context(), requestID)
		r = r.WithContext(ctx)
		w.Header().Set(middleware.RequestIDHeader, requestID)

		log := logger.FromContext(ctx)

		log.Info(LogMsgRequestStarted,
			"method", r.Method,
			"path", r.URL.Path,
			"remote_addr", r.RemoteAddr,
			"content_length", r.ContentLength,
			"user_agent", r.UserAgent())

		sanitizedHeaders := make(http.Header)
		for k, v := range r.Header {
			if strings.EqualFold(k, HeaderAPIKey) || strings.EqualFold(k, HeaderAuthorization) {
				sanitizedHeaders[k] = []string{RedactedValue}
			} else {
				sanitizedHeaders[k] = v
			}
		}
		log.Debug(LogMsgRequestHeaders, "headers", sanitizedHeaders)

		rw := newResponseWriter(w)
		next.ServeHTTP(rw, r)

		duration := time.Since(start)
		log.Info(LogMsgRequestCompleted,
			"method", r.Method,
			"path", r.URL.Path,
			"status", rw.statusCode,
			"duration_ms", duration.Milliseconds())
	})
}

// Start starts the server
func (s *Server) Start() error {
	slog.Default().Info(LogMsgServerStarting, "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Stop stops the server gracefully
func (s *Server) Stop(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
