package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"helpmatch-backend/internal/logger"
	"helpmatch-backend/internal/service"
)

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		json.NewEncoder(w).Encode(payload)
	}
}

func writeErrorMessage(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// writeError maps the service error taxonomy onto HTTP statuses. Invalid
// state carries the entity's current state so the client can reconcile.
func writeError(w http.ResponseWriter, err error) {
	var ise *service.InvalidStateError
	switch {
	case errors.Is(err, service.ErrNotFound):
		writeErrorMessage(w, http.StatusNotFound, "not found")
	case errors.Is(err, service.ErrForbidden):
		writeErrorMessage(w, http.StatusForbidden, "forbidden")
	case errors.Is(err, service.ErrInvalidInput):
		writeErrorMessage(w, http.StatusBadRequest, "invalid input")
	case errors.Is(err, service.ErrInvalidCredentials):
		writeErrorMessage(w, http.StatusUnauthorized, "invalid credentials")
	case errors.As(err, &ise):
		writeJSON(w, http.StatusConflict, map[string]string{
			"error":         "invalid state",
			"current_state": ise.Current,
		})
	default:
		logger.Error("Request failed", "error", err)
		writeErrorMessage(w, http.StatusInternalServerError, "internal error")
	}
}
