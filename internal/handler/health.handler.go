package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/ksbmInfotechOfficial/vscct/pkg/response"
)

// HealthHandler reports process liveness plus a best-effort database probe.
type HealthHandler struct {
	pingDB func(ctx context.Context) error
}

// NewHealthHandler takes a database ping func; nil means no database was
// connected at startup.
func NewHealthHandler(pingDB func(ctx context.Context) error) *HealthHandler {
	return &HealthHandler{pingDB: pingDB}
}

// Root handles GET /.
func (h *HealthHandler) Root(w http.ResponseWriter, r *http.Request) {
	response.JSONMessage(w, http.StatusOK, "VSSCT API is running", nil)
}

// Health handles GET /health.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	dbStatus := "disconnected"
	if h.pingDB != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := h.pingDB(ctx); err == nil {
			dbStatus = "connected"
		}
	}

	response.JSON(w, http.StatusOK, map[string]any{
		"status":    "ok",
		"database":  dbStatus,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
