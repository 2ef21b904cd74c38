package middleware

import (
	"context"
	"encoding/json"
	"goalTracker/internal/logger"
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type contextKey string

const (
	RequestIDHeader            = "X-Request-ID"
	RequestIdKey    contextKey = "request_id"

	maxRequestIDLen = 64
)

// RequestID reuses a sane incoming X-Request-ID or issues a new one.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestId := strings.TrimSpace(r.Header.Get(RequestIDHeader))
		if requestId == "" || len(requestId) > maxRequestIDLen {
			requestId = uuid.NewString()
		}

		w.Header().Set(RequestIDHeader, requestId)
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), RequestIdKey, requestId)))
	})
}

func GetRequestID(ctx context.Context) string {
	id, _ := ctx.Value(RequestIdKey).(string)
	return id
}

// statusRecorder remembers the first status written; later WriteHeader
// calls are dropped like net/http does.
type statusRecorder struct {
	http.ResponseWriter
	status int
	bytes  int
	sent   bool
}

func (sr *statusRecorder) WriteHeader(code int) {
	if sr.sent {
		return
	}
	sr.status = code
	sr.sent = true
	sr.ResponseWriter.WriteHeader(code)
}

func (sr *statusRecorder) Write(b []byte) (int, error) {
	if !sr.sent {
		sr.WriteHeader(http.StatusOK)
	}
	n, err := sr.ResponseWriter.Write(b)
	sr.bytes += n
	return n, err
}

// Logging writes one line per finished request. Stylesheet requests go to
// debug so page loads don't double the log volume.
func Logging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		route := r.URL.Path
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}

		logger.Log(levelFor(r, rec.status), "HTTP: Запрос обработан",
			zap.String("request_id", GetRequestID(r.Context())),
			zap.String("method", r.Method),
			zap.String("route", route),
			zap.String("query", r.URL.RawQuery),
			zap.String("client_ip", r.RemoteAddr),
			zap.Int("status", rec.status),
			zap.Int("bytes_written", rec.bytes),
			zap.Duration("ms", time.Since(start)),
		)
	})
}

func levelFor(r *http.Request, status int) zapcore.Level {
	switch {
	case status >= http.StatusInternalServerError:
		return zap.ErrorLevel
	case status >= http.StatusBadRequest:
		return zap.WarnLevel
	case strings.HasPrefix(r.URL.Path, "/static/"):
		return zap.DebugLevel
	default:
		return zap.InfoLevel
	}
}

// Timeout bounds the request context. Storage calls observe the deadline,
// the handler still writes its own response. timeout <= 0 disables it.
func Timeout(timeout time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if timeout <= 0 {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, cancel := context.WithTimeout(r.Context(), timeout)
			defer cancel()

			next.ServeHTTP(w, r.WithContext(ctx))

			if ctx.Err() == context.DeadlineExceeded {
				logger.Warn("HTTP: Таймаут запроса",
					zap.String("request_id", GetRequestID(r.Context())),
					zap.String("path", r.URL.Path),
					zap.Duration("ms", timeout))
			}
		})
	}
}

type window struct {
	writes  int
	resetAt time.Time
}

// limiter counts state-changing requests per client ip in fixed one-minute
// windows.
type limiter struct {
	mu      sync.Mutex
	rpm     int
	clients map[string]*window
	sweepAt time.Time
}

// take registers one write; ok is false when the client is over the limit.
func (l *limiter) take(ip string, now time.Time) (remaining int, resetAt time.Time, ok bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if now.After(l.sweepAt) {
		for key, w := range l.clients {
			if now.After(w.resetAt) {
				delete(l.clients, key)
			}
		}
		l.sweepAt = now.Add(time.Minute)
	}

	w, exists := l.clients[ip]
	if !exists || now.After(w.resetAt) {
		w = &window{resetAt: now.Add(time.Minute)}
		l.clients[ip] = w
	}
	if w.writes >= l.rpm {
		return 0, w.resetAt, false
	}
	w.writes++
	return l.rpm - w.writes, w.resetAt, true
}

// RateLimit allows rpm adds, edits, completions and deletes per client per
// minute. Reads are never limited. rpm <= 0 disables the limit.
func RateLimit(rpm int) func(http.Handler) http.Handler {
	l := &limiter{rpm: rpm, clients: make(map[string]*window)}

	return func(next http.Handler) http.Handler {
		if rpm <= 0 {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !changesState(r.Method) {
				next.ServeHTTP(w, r)
				return
			}

			now := time.Now()
			remaining, resetAt, ok := l.take(getIp(r), now)
			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(rpm))
			w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(remaining))
			w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(resetAt.Unix(), 10))

			if !ok {
				retryAfter := max(1, int(resetAt.Sub(now).Seconds()))
				logger.Warn("HTTP: Превышен лимит запросов",
					zap.String("client_ip", r.RemoteAddr),
					zap.Int("retry_after", retryAfter))

				w.Header().Set("Content-Type", "application/json")
				w.Header().Set("Retry-After", strconv.Itoa(retryAfter))
				w.WriteHeader(http.StatusTooManyRequests)
				_ = json.NewEncoder(w).Encode(map[string]any{
					"error":       "rate_limit_exceeded",
					"message":     "Too many changes, try again later",
					"retry_after": retryAfter,
					"request_id":  GetRequestID(r.Context()),
				})
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func changesState(method string) bool {
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
		return true
	}
	return false
}

func getIp(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
