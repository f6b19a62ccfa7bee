package handler

import (
	"net/http"
	"time"

	"github.com/yndnr/login-challenge-go/internal/infra/buildinfo"
)

// CodeStatusUnavailable is returned by /status when no controller is attached.
const CodeStatusUnavailable = "LC-SYS-5030"

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, r, http.StatusOK, HealthResponse{
		Status:  "healthy",
		Version: buildinfo.Version,
		Uptime:  time.Since(h.started).Truncate(time.Second).String(),
	})
}

func (h *Handler) handleStatus(w http.ResponseWriter, r *http.Request) {
	if h.status == nil {
		h.writeError(w, r, http.StatusServiceUnavailable, CodeStatusUnavailable, "status not available")
		return
	}
	h.writeJSON(w, r, http.StatusOK, h.status.Status())
}
