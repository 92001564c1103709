package middle

import (
	"context"
	"fmt"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/google/uuid"
	zap "go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type ctxKey int

const (
	requestIDKey ctxKey = iota
	loggerKey
)

// SlowRequest is the duration above which a request is logged as slow.
const SlowRequest = 1 * time.Second

// responseWriter is a minimal wrapper for http.ResponseWriter that allows the
// written HTTP status code to be captured for logging.
type responseWriter struct {
	http.ResponseWriter
	status      int
	wroteHeader bool
	size        int
}

func wrapResponseWriter(w http.ResponseWriter) *responseWriter {
	return &responseWriter{ResponseWriter: w, status: http.StatusOK}
}

func (rw *responseWriter) Status() int {
	return rw.status
}

func (rw *responseWriter) WriteHeader(code int) {
	if rw.wroteHeader {
		return
	}
	rw.status = code
	rw.ResponseWriter.WriteHeader(code)
	rw.wroteHeader = true
}

func (rw *responseWriter) Write(body []byte) (int, error) {
	rw.wroteHeader = true
	n, err := rw.ResponseWriter.Write(body)
	rw.size += n
	return n, err
}

// Chain wraps h so that the first middleware is the outermost.
func Chain(h http.Handler, mw ...func(http.Handler) http.Handler) http.Handler {
	for i := len(mw) - 1; i >= 0; i-- {
		h = mw[i](h)
	}
	return h
}

// LoggingMiddleware logs the incoming HTTP request & its duration.
func LoggingMiddleware(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			wrapped := wrapResponseWriter(w)
			log := LoggerFrom(r.Context(), logger)

			defer func() {
				if err := recover(); err != nil {
					wrapped.WriteHeader(http.StatusInternalServerError)
					log.Error("Internal Server Error",
						zap.Any("panic", err),
						zap.String("stack", string(debug.Stack())),
					)
				}

				duration := time.Since(start)
				log.Debug("Request completed",
					zap.String("method", r.Method),
					zap.String("path", r.URL.EscapedPath()),
					zap.Int("status", wrapped.Status()),
					zap.Int("bytes", wrapped.size),
					zap.Duration("duration", duration),
					zap.String("client_ip", r.RemoteAddr),
					zap.String("user_agent", r.UserAgent()),
					zap.Object("headers", zapcore.ObjectMarshalerFunc(func(enc zapcore.ObjectEncoder) error {
						for k, v := range r.Header {
							enc.AddString(k, fmt.Sprintf("%v", v))
						}
						return nil
					})),
				)

				if duration > SlowRequest {
					log.Warn("Slow request",
						zap.String("method", r.Method),
						zap.String("path", r.URL.EscapedPath()),
						zap.Duration("duration", duration),
					)
				}
			}()

			next.ServeHTTP(wrapped, r)
		})
	}
}

// RequestIDMiddleware adds a unique request ID to each request and a logger
// tagged with it to the request context.
func RequestIDMiddleware(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requestID := generateRequestID()
			w.Header().Set("X-Request-ID", requestID)

			ctx := context.WithValue(r.Context(), requestIDKey, requestID)
			ctx = context.WithValue(ctx, loggerKey, logger.With(zap.String("request_id", requestID)))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequestID returns the id set by RequestIDMiddleware, or "".
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

// LoggerFrom returns the request logger, or fallback when there is none.
func LoggerFrom(ctx context.Context, fallback *zap.Logger) *zap.Logger {
	if l, ok := ctx.Value(loggerKey).(*zap.Logger); ok {
		return l
	}
	if fallback == nil {
		return zap.NewNop()
	}
	return fallback
}

func generateRequestID() string {
	return "req-" + uuid.New().String()
}
