package handler

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"
)

// errorResponse represents the standard JSON structure for returning API errors.
type errorResponse struct {
	Error string `json:"error"`
}

// writeJSON sends a JSON response with a specific HTTP status code and marshals the provided payload.
func writeJSON(log *zap.Logger, w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if payload != nil {
		if err := json.NewEncoder(w).Encode(payload); err != nil {
			log.Error("failed to write response", zap.Error(err))
		}
	}
}

// writeError logs the error message and sends a standardized JSON error response to the client.
func writeError(log *zap.Logger, w http.ResponseWriter, status int, msg string) {
	log.Warn("request rejected", zap.Int("status", status), zap.String("reason", msg))
	writeJSON(log, w, status, errorResponse{Error: msg})
}
