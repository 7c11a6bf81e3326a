package api

import (
	"net/http"

	"github.com/go-chi/render"
	"go.uber.org/zap"

	"github.com/Altair788/AdHub/internal/shared/models"
)

// Healthz проверяет доступность БД. 503, если ping не прошёл.
func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	if err := h.Svc.Health.Check(r.Context()); err != nil {
		h.Log.Warn("health check failed", zap.Error(err))
		render.Status(r, http.StatusServiceUnavailable)
		render.JSON(w, r, models.HealthResponse{Status: "unavailable"})
		return
	}
	render.JSON(w, r, models.HealthResponse{Status: "ok"})
}
