// cmd/api/middleware.go
// HTTP middleware wrapped around the router. See routes.go for the order.
package main

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/aoideee/bookreviews/internal/logging"
	"github.com/aoideee/bookreviews/internal/metrics"
	"github.com/go-chi/cors"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// requestIDHeader carries the request id in both directions.
const requestIDHeader = "X-Request-ID"

type contextKey string

const requestIDContextKey = contextKey("request_id")

// requestIDFromContext returns the id stored by requestID, or "".
func requestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestIDContextKey).(string)
	return id
}

// recoverPanic turns a panic in any downstream handler into a 500 response
// and closes the connection.
func (app *applicationDependencies) recoverPanic(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				w.Header().Set("Connection", "close")
				app.serverErrorResponse(w, r, fmt.Errorf("%s", err))
			}
		}()
		next.ServeHTTP(w, r)
	})
}

// statusWriter remembers the status code written by a handler.
type statusWriter struct {
	http.ResponseWriter
	status int
}

func (sw *statusWriter) WriteHeader(code int) {
	sw.status = code
	sw.ResponseWriter.WriteHeader(code)
}

// requestID reuses an incoming X-Request-ID when it is a valid UUID and
// generates one otherwise. The id is echoed in the response, stored in the
// request context and attached to the completion log line.
func (app *applicationDependencies) requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(requestIDHeader)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}

		w.Header().Set(requestIDHeader, id)
		r = r.WithContext(context.WithValue(r.Context(), requestIDContextKey, id))

		start := time.Now()
		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(sw, r)

		app.logger.Debug("request completed",
			zap.String(logging.FieldRequestID, id),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", sw.status),
			zap.Duration("duration", time.Since(start)),
		)
	})
}

// instrument records Prometheus request metrics.
func (app *applicationDependencies) instrument(next http.Handler) http.Handler {
	return metrics.InstrumentHandler(next)
}

// enableCORS applies go-chi/cors for the configured trusted origins. With no
// trusted origins no CORS headers are sent at all.
func (app *applicationDependencies) enableCORS(next http.Handler) http.Handler {
	if len(app.config.CORS.TrustedOrigins) == 0 {
		return next
	}

	c := cors.New(cors.Options{
		AllowedOrigins: app.config.CORS.TrustedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", requestIDHeader},
		ExposedHeaders: []string{requestIDHeader},
		MaxAge:         300,
	})
	return c.Handler(next)
}

// client holds a per-IP rate limiter and the time it was last seen.
type client struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// ipRateLimiter hands out one token bucket per client IP. Entries idle for
// longer than idle are evicted by a sweeper goroutine that runs until stop.
type ipRateLimiter struct {
	mu      sync.Mutex
	clients map[string]*client
	rps     rate.Limit
	burst   int
	idle    time.Duration

	done     chan struct{}
	stopped  chan struct{}
	stopOnce sync.Once
}

func newIPRateLimiter(rps float64, burst int) *ipRateLimiter {
	return &ipRateLimiter{
		clients: make(map[string]*client),
		rps:     rate.Limit(rps),
		burst:   burst,
		idle:    3 * time.Minute,
		done:    make(chan struct{}),
		stopped: make(chan struct{}),
	}
}

// start launches the sweeper, which runs every interval.
func (l *ipRateLimiter) start(interval time.Duration) {
	go func() {
		defer close(l.stopped)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-l.done:
				return
			case now := <-ticker.C:
				l.sweep(now)
			}
		}
	}()
}

// stop ends the sweeper and waits for it to exit. Safe to call more than once.
func (l *ipRateLimiter) stop() {
	l.stopOnce.Do(func() { close(l.done) })
	<-l.stopped
}

func (l *ipRateLimiter) sweep(now time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for ip, c := range l.clients {
		if now.Sub(c.lastSeen) > l.idle {
			delete(l.clients, ip)
		}
	}
}

func (l *ipRateLimiter) allow(ip string, now time.Time) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	c, found := l.clients[ip]
	if !found {
		c = &client{limiter: rate.NewLimiter(l.rps, l.burst)}
		l.clients[ip] = c
	}
	c.lastSeen = now
	return c.limiter.AllowN(now, 1)
}

// rateLimit applies the application's per-IP limiter. It is a no-op when
// limiting is disabled.
func (app *applicationDependencies) rateLimit(next http.Handler) http.Handler {
	if app.limiter == nil {
		return next
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip, _, err := net.SplitHostPort(r.RemoteAddr)
		if err != nil {
			app.serverErrorResponse(w, r, err)
			return
		}

		if !app.limiter.allow(ip, time.Now()) {
			app.rateLimitExceededResponse(w, r)
			return
		}

		next.ServeHTTP(w, r)
	})
}
