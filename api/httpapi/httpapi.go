package httpapi

import (
	"encoding/json"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"glidescore/core"
	"glidescore/leaderboard"
)

// Options configures the HTTP API surface.
type Options struct {
	// AllowCORSOrigin, if non-empty, enables basic CORS with the given origin (use "*" for any).
	AllowCORSOrigin string
	// RequestTimeout bounds each request; zero disables the timeout middleware.
	RequestTimeout time.Duration
	// RateLimitEnabled toggles rate limiting.
	RateLimitEnabled bool
	// RateLimitRPM is the allowed requests per minute per client IP.
	RateLimitRPM int
	// RateLimitBurst defines burst capacity.
	RateLimitBurst int
}

// NewMux builds the http.Handler exposing the leaderboard REST API.
// Routes:
//   - GET  /health
//   - POST /scores
//   - GET  /leaderboard
//   - GET  /stats
//   - POST /logs
func NewMux(svc *leaderboard.Service, opts Options) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	if opts.RequestTimeout > 0 {
		r.Use(chimw.Timeout(opts.RequestTimeout))
	}

	h := &handlers{svc: svc}
	r.Get("/health", h.health)
	r.Post("/scores", h.submitScore)
	r.Get("/leaderboard", h.leaderboard)
	r.Get("/stats", h.stats)
	r.Post("/logs", h.receiveLogs)

	var handler http.Handler = r
	if opts.AllowCORSOrigin != "" {
		handler = withCORS(handler, opts.AllowCORSOrigin)
	}
	if opts.RateLimitEnabled && opts.RateLimitRPM > 0 && opts.RateLimitBurst > 0 {
		handler = withRateLimit(handler, opts.RateLimitRPM, opts.RateLimitBurst)
	}
	return handler
}

type handlers struct {
	svc *leaderboard.Service
}

func (h *handlers) health(w http.ResponseWriter, r *http.Request) {
	status := h.svc.CheckHealth(r.Context())
	code := http.StatusOK
	if !status.Healthy() {
		code = http.StatusServiceUnavailable
	}
	writeJSON(w, code, status)
}

func (h *handlers) submitScore(w http.ResponseWriter, r *http.Request) {
	var sub core.Submission
	if err := json.NewDecoder(r.Body).Decode(&sub); err != nil {
		writeError(w, http.StatusBadRequest, core.ErrInvalidRequest.Error())
		return
	}
	rank, err := h.svc.Submit(r.Context(), sub)
	if err != nil {
		if core.IsClientFault(err) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		// server fault: the cause is already logged, keep the wire generic
		writeError(w, http.StatusInternalServerError, "Failed to save score")
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{
		"message": "Score submitted successfully",
		"rank":    rank,
	})
}

func (h *handlers) leaderboard(w http.ResponseWriter, r *http.Request) {
	entries, err := h.svc.Top(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load leaderboard")
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

func (h *handlers) stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.svc.Stats(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to calculate statistics")
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (h *handlers) receiveLogs(w http.ResponseWriter, r *http.Request) {
	var entry leaderboard.ClientLogEntry
	if err := json.NewDecoder(r.Body).Decode(&entry); err != nil {
		writeError(w, http.StatusBadRequest, "No log data provided")
		return
	}
	if err := h.svc.ClientLog(r.Context(), entry); err != nil {
		if core.IsClientFault(err) {
			writeError(w, http.StatusBadRequest, "No log data provided")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to process log")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Log received"})
}

// Helpers

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

type apiError struct {
	Error string `json:"error"`
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, apiError{Error: msg})
}

// withCORS wraps a handler with a minimal CORS policy.
func withCORS(next http.Handler, origin string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", origin)
		w.Header().Set("Vary", "Origin")
		if r.Method == http.MethodOptions {
			w.Header().Set("Access-Control-Allow-Methods", "GET,POST,OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// withRateLimit applies a simple token-bucket limiter per client IP.
func withRateLimit(next http.Handler, rpm int, burst int) http.Handler {
	limiter := newRateLimiter(rpm, burst)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !limiter.allow(clientKey(r)) {
			writeError(w, http.StatusTooManyRequests, "too many requests")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func clientKey(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

type rateLimiter struct {
	rpm   float64
	burst float64
	mu    sync.Mutex
	b     map[string]*bucket
}

type bucket struct {
	tokens float64
	last   time.Time
}

func newRateLimiter(rpm, burst int) *rateLimiter {
	return &rateLimiter{
		rpm:   float64(rpm),
		burst: float64(burst),
		b:     make(map[string]*bucket),
	}
}

func (l *rateLimiter) allow(key string) bool {
	now := time.Now()
	l.mu.Lock()
	defer l.mu.Unlock()

	b, ok := l.b[key]
	if !ok {
		l.b[key] = &bucket{tokens: l.burst - 1, last: now}
		return true
	}

	elapsed := now.Sub(b.last).Minutes()
	b.tokens += elapsed * l.rpm
	if b.tokens > l.burst {
		b.tokens = l.burst
	}
	if b.tokens < 1 {
		b.last = now
		return false
	}
	b.tokens--
	b.last = now
	return true
}
