package handler

import (
	"encoding/json"
	"net/http"

	"github.com/Dan9191/finance-service/internal/middleware"
	"github.com/sirupsen/logrus"
)

func (h *Handler) writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.log.WithError(err).
			WithField("request_id", middleware.RequestIDFromContext(r.Context())).
			Error("Failed to write json response")
	}
}

// internalError logs err and answers with a body-less generic 500.
func (h *Handler) internalError(w http.ResponseWriter, r *http.Request, err error) {
	h.log.WithError(err).WithFields(logrus.Fields{
		"request_id": middleware.RequestIDFromContext(r.Context()),
		"method":     r.Method,
		"path":       r.URL.Path,
	}).Error("Request failed")
	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}
