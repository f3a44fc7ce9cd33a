package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/preston-bernstein/goal-light/internal/http/middleware"
	"github.com/preston-bernstein/goal-light/internal/http/requestutil"
	"github.com/preston-bernstein/goal-light/internal/logging"
)

type errorBody struct {
	Error     string `json:"error"`
	RequestID string `json:"requestId,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, payload any, logger *slog.Logger) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logging.Error(logger, "failed to encode response", err)
	}
}

// writeError echoes the request ID so a failed status call can be found in the logs.
func writeError(w http.ResponseWriter, r *http.Request, status int, message string, logger *slog.Logger) {
	body := errorBody{Error: message, RequestID: middleware.RequestIDFromContext(r.Context())}
	if body.RequestID == "" {
		body.RequestID = r.Header.Get(requestutil.HeaderRequestID())
	}
	writeJSON(w, status, body, loggerFromContext(r, logger))
}

func loggerFromContext(r *http.Request, fallback *slog.Logger) *slog.Logger {
	if fallback == nil {
		fallback = slog.Default()
	}
	if r == nil {
		return fallback
	}
	return logging.FromContext(r.Context(), fallback)
}
