package httpserver

import (
	"net/http"

	"github.com/yndnr/login-challenge-go/internal/server/httpserver/handler"
	"github.com/yndnr/login-challenge-go/internal/telemetry/logger"
)

// RouterConfig holds configuration for the HTTP router.
type RouterConfig struct {
	// Status reports controller state for GET /status.
	Status handler.StatusProvider

	// Metrics serves GET /metrics. Nil disables the endpoint.
	Metrics http.Handler

	// Logger for request logging.
	Logger logger.Logger

	// EnableAccessLog logs every request.
	EnableAccessLog bool
}

// DefaultRouterConfig returns default router configuration.
func DefaultRouterConfig() *RouterConfig {
	return &RouterConfig{
		Logger:          logger.Default(),
		EnableAccessLog: true,
	}
}

// NewRouter creates and configures the HTTP router with all routes and middleware.
func NewRouter(cfg *RouterConfig) http.Handler {
	if cfg == nil {
		cfg = DefaultRouterConfig()
	}
	log := cfg.Logger
	if log == nil {
		log = logger.Default()
	}

	h := handler.New(cfg.Status, log)

	mux := http.NewServeMux()
	mux.Handle("GET /healthz", h)
	mux.Handle("GET /status", h)
	if cfg.Metrics != nil {
		mux.Handle("GET /metrics", cfg.Metrics)
	}

	middlewares := []Middleware{RequestID(log), Recover()}
	if cfg.EnableAccessLog {
		middlewares = append(middlewares, AccessLog())
	}
	return Chain(mux, middlewares...)
}
