package handler

import (
	"net/http"
	"time"

	"github.com/yndnr/login-challenge-go/internal/core/service"
	"github.com/yndnr/login-challenge-go/internal/telemetry/logger"
)

// StatusProvider reports the controller state.
type StatusProvider interface {
	Status() service.Status
}

// Handler serves GET /healthz and GET /status.
type Handler struct {
	status  StatusProvider
	logger  logger.Logger
	started time.Time
	mux     *http.ServeMux
}

// New creates a Handler. A nil status makes /status answer 503.
func New(status StatusProvider, log logger.Logger) *Handler {
	if log == nil {
		log = logger.Default()
	}
	h := &Handler{
		status:  status,
		logger:  log,
		started: time.Now(),
		mux:     http.NewServeMux(),
	}
	h.mux.HandleFunc("GET /healthz", h.handleHealth)
	h.mux.HandleFunc("GET /status", h.handleStatus)
	return h
}

// ServeHTTP implements http.Handler.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mux.ServeHTTP(w, r)
}

func (h *Handler) writeJSON(w http.ResponseWriter, r *http.Request, status int, data any) {
	h.write(w, r, status, NewResponse(requestID(w, r), data))
}

func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, status int, code, message string) {
	w.Header().Set("X-Error-Code", code)
	h.write(w, r, status, NewErrorResponse(requestID(w, r), code, message))
}

func (h *Handler) write(w http.ResponseWriter, r *http.Request, status int, resp *Response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := Encode(w, resp); err != nil {
		h.logger.Warn("failed to encode response", "path", r.URL.Path, "error", err)
	}
}

// requestID returns the id echoed by the middleware, else the client's.
func requestID(w http.ResponseWriter, r *http.Request) string {
	if id := w.Header().Get("X-Request-ID"); id != "" {
		return id
	}
	return r.Header.Get("X-Request-ID")
}
