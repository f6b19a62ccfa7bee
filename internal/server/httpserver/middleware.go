package httpserver

import (
	"context"
	"net"
	"net/http"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/yndnr/login-challenge-go/internal/core/domain"
	"github.com/yndnr/login-challenge-go/internal/server/httpserver/handler"
	"github.com/yndnr/login-challenge-go/internal/telemetry/logger"
)

// HeaderRequestID carries the request id in both directions.
const HeaderRequestID = "X-Request-ID"

type requestIDKey struct{}

// Middleware wraps an http.Handler.
type Middleware func(http.Handler) http.Handler

// Chain applies middlewares so that the first one runs outermost.
func Chain(h http.Handler, middlewares ...Middleware) http.Handler {
	for i := len(middlewares) - 1; i >= 0; i-- {
		h = middlewares[i](h)
	}
	return h
}

// RequestID tags each request with the client's X-Request-ID or a fresh
// ULID, echoes it in the response and binds a request-scoped logger to the
// context. Handlers read the logger with logger.FromContext.
func RequestID(log logger.Logger) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := r.Header.Get(HeaderRequestID)
			if id == "" {
				id = "req-" + ulid.Make().String()
			}
			w.Header().Set(HeaderRequestID, id)

			ctx := context.WithValue(r.Context(), requestIDKey{}, id)
			ctx = logger.WithLogger(ctx, log.With("request_id", id))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequestIDFromContext returns the id set by RequestID, or "".
func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

// AccessLog logs each completed request through the request-scoped logger.
// Successful requests log at debug, 4xx at warn and 5xx at error.
func AccessLog() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(sw, r)

			log := logger.FromContext(r.Context())
			attrs := []any{
				"method", r.Method,
				"path", r.URL.Path,
				"status", sw.status,
				"duration_ms", time.Since(start).Milliseconds(),
				"remote", remoteHost(r),
			}
			switch {
			case sw.status >= http.StatusInternalServerError:
				log.Error("request failed", attrs...)
			case sw.status >= http.StatusBadRequest:
				log.Warn("request rejected", attrs...)
			default:
				log.Debug("request served", attrs...)
			}
		})
	}
}

// Recover turns a handler panic into a 500 system error response.
func Recover() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				logger.FromContext(r.Context()).Error("panic recovered",
					"panic", rec,
					"path", r.URL.Path,
				)
				code := domain.ErrSystemFault.Code
				w.Header().Set("Content-Type", "application/json")
				w.Header().Set("X-Error-Code", code)
				w.WriteHeader(http.StatusInternalServerError)
				_ = handler.Encode(w, handler.NewErrorResponse(RequestIDFromContext(r.Context()), code, "internal server error"))
			}()
			next.ServeHTTP(w, r)
		})
	}
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

// remoteHost strips the port from RemoteAddr. The diagnostics server is not
// meant to sit behind a proxy, so forwarding headers are ignored.
func remoteHost(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
