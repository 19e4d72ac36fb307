package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/pricetide/pricetide/internal/database"
	"github.com/pricetide/pricetide/internal/handler"
	"github.com/pricetide/pricetide/internal/logger"
	"github.com/pricetide/pricetide/internal/market"
	"github.com/pricetide/pricetide/internal/metrics"
	"github.com/pricetide/pricetide/internal/round"
	"github.com/pricetide/pricetide/internal/sse"
	"github.com/pricetide/pricetide/internal/stake"
	"github.com/pricetide/pricetide/internal/stats"
	"github.com/pricetide/pricetide/internal/user"
)

type Server struct {
	httpServer   *http.Server
	dbPool       database.Pool
	userService  user.Service
	roundService round.Service
	stakeService stake.Service
	statsService stats.Service
}

// NewServer creates a new Server instance
func NewServer(port int, apiKey string, trustedProxies []string, dbPool database.Pool, userService user.Service, roundService round.Service, stakeService stake.Service, statsService stats.Service, catalog *market.Catalog, hub *sse.Hub) *Server {
	r := chi.NewRouter()

	// Middleware stack
	// Chi middleware executes in order defined (outermost to innermost)
	detector := NewSuspiciousActivityDetector()

	r.Use(SecurityHeadersMiddleware())
	r.Use(AuthMiddleware(apiKey, trustedProxies, detector))
	r.Use(SecurityLoggingMiddleware(trustedProxies, detector))
	r.Use(RequestSizeLimitMiddleware(MaxRequestBodyBytes))
	r.Use(metrics.Middleware)
	r.Use(loggingMiddleware)

	// Health check routes (unversioned)
	r.Get("/healthz", handler.HandleHealthz())
	r.Get("/readyz", handler.HandleReadyz(dbPool))

	// Version endpoint (public, for deployment verification)
	r.Get("/version", handler.HandleVersion())

	// Metrics endpoint (public, for Prometheus scraping)
	r.Handle("/metrics", promhttp.Handler())

	// Server-sent event stream for round and stake updates
	r.Get("/events", sse.Handler(hub))

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		// Market routes. Fixed-key families open rounds on demand when the
		// current round is requested.
		r.Route("/markets", func(r chi.Router) {
			r.Get("/", handler.HandleListMarkets(catalog))
			r.Get("/{family}/{marketKey}/round", handler.HandleGetCurrentRound(roundService))
			r.Get("/{family}/{marketKey}/history", handler.HandleGetRoundHistory(roundService))
		})

		// User routes
		r.Route("/users", func(r chi.Router) {
			r.Post("/", handler.HandleRegisterUser(userService))
			r.Get("/lookup", handler.HandleGetUserByUsername(userService))
			r.Get("/{userID}", handler.HandleGetUser(userService))
			r.Get("/{userID}/balance", handler.HandleGetBalance(userService))
			r.Get("/{userID}/stakes", handler.HandleListUserStakes(stakeService))
		})

		// Round routes. The custom family gets its own creation and listing
		// endpoints under a static prefix.
		r.Route("/rounds", func(r chi.Router) {
			r.Post("/custom", handler.HandleCreateCustomRound(roundService))
			r.Get("/custom/active", handler.HandleListActiveCustomRounds(roundService))
			r.Get("/{roundID}", handler.HandleGetRound(roundService))
			r.Get("/{roundID}/stakes", handler.HandleListRoundStakes(stakeService))
		})

		// Stake routes
		r.Post("/stakes", handler.HandlePlaceStake(stakeService))

		// Stats routes
		r.Route("/stats", func(r chi.Router) {
			r.Get("/leaderboard", handler.HandleGetLeaderboard(statsService))
			r.Get("/winners", handler.HandleGetRecentWinners(statsService))
		})
	})

	return &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf(":%d", port),
			Handler:           r,
			ReadHeaderTimeout: 5 * time.Second,
		},
		dbPool:       dbPool,
		userService:  userService,
		roundService: roundService,
		stakeService: stakeService,
		statsService: statsService,
	}
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

// Flush passes through to the underlying writer so the SSE stream works
// behind the logging middleware
func (rw *responseWriter) Flush() {
	if f, ok := rw.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		// Skip logging for health check endpoints and metrics
		// Use HasPrefix to catch potential variations (e.g. /healthz/)
		if strings.HasPrefix(r.URL.Path, "/healthz") ||
			strings.HasPrefix(r.URL.Path, "/readyz") ||
			strings.HasPrefix(r.URL.Path, "/metrics") {
			next.ServeHTTP(w, r)
			return
		}

		// Generate unique request ID
		requestID := logger.GenerateRequestID()

		ctx := logger.WithRequestID(r.Context(), requestID)
		r = r.WithContext(ctx)

		log := logger.FromContext(ctx)

		log.Info(LogMsgRequestStarted,
			"method", r.Method,
			"path", r.URL.Path,
			"remote_addr", r.RemoteAddr,
			"content_length", r.ContentLength,
			"user_agent", r.UserAgent())

		// Sanitize headers for logging
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
			"duration_ms", duration.Milliseconds(),
			"duration", duration)
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
