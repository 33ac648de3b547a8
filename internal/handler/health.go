package handler

import (
	"net/http"

	"github.com/Dan9191/finance-service/internal/svcerr"
)

// Health godoc
// @Summary Service liveness
// @Description Always healthy while the process serves requests. Reports schema readiness without touching the database.
// @Tags health
// @Produce json
// @Success 200 {object} healthResponse
// @Router /health [get]
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	resp := healthResponse{
		Status:    "healthy",
		Timestamp: h.now().UTC(),
		Service:   ServiceName,
		Version:   ServiceVersion,
	}

	status, err := h.readiness.Snapshot()
	resp.Schema = string(status)
	if err != nil {
		resp.SchemaError = err.Error()
	}

	h.writeJSON(w, r, http.StatusOK, resp)
}

// DatabaseHealth godoc
// @Summary Database connectivity
// @Description Pings the database and runs a trivial query.
// @Tags health
// @Produce json
// @Success 200 {object} databaseHealthResponse
// @Failure 503 {object} databaseHealthResponse
// @Router /health/db [get]
func (h *Handler) DatabaseHealth(w http.ResponseWriter, r *http.Request) {
	err := h.svc.CheckDatabase(r.Context())

	switch {
	case err == nil:
		h.writeJSON(w, r, http.StatusOK, databaseHealthResponse{
			Status:    "healthy",
			Database:  "connected",
			Timestamp: h.now().UTC(),
			Message:   "Database connection successful",
		})
	case svcerr.IsUnreachable(err):
		h.log.WithError(err).Warn("Database unreachable")
		h.writeJSON(w, r, http.StatusServiceUnavailable, databaseHealthResponse{
			Status:    "unhealthy",
			Database:  "disconnected",
			Timestamp: h.now().UTC(),
		})
	default:
		h.log.WithError(err).Warn("Database probe failed")
		h.writeJSON(w, r, http.StatusServiceUnavailable, databaseHealthResponse{
			Status:    "unhealthy",
			Database:  "error",
			Timestamp: h.now().UTC(),
			Error:     err.Error(),
		})
	}
}
