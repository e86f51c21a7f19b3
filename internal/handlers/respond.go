package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"go.uber.org/zap"

	"ambutrack/internal/apperr"
	"ambutrack/internal/models"
)

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// writeSuccess wraps data in the success envelope.
func writeSuccess(w http.ResponseWriter, status int, message string, data any) {
	writeJSON(w, status, models.APIResponse{
		Success:    true,
		StatusCode: status,
		Message:    message,
		Data:       data,
		Timestamp:  time.Now().UTC().Format(time.RFC3339),
	})
}

// writeError maps the error taxonomy to the error envelope. Infrastructure
// errors are logged with detail but surface to the caller as a bare 500.
func writeError(w http.ResponseWriter, r *http.Request, err error, logr *zap.Logger) {
	status := http.StatusInternalServerError
	errorName := "Internal Server Error"
	message := "Internal server error"

	switch {
	case apperr.IsValidation(err):
		status = http.StatusBadRequest
		errorName = "Bad Request"
		message = err.Error()
	case apperr.IsNotFound(err):
		status = http.StatusNotFound
		errorName = "Not Found"
		message = err.Error()
	default:
		logr.Error("request failed", zap.String("path", r.URL.Path), zap.Error(err))
	}

	writeJSON(w, status, models.APIError{
		Success:    false,
		StatusCode: status,
		Message:    message,
		Error:      errorName,
		Timestamp:  time.Now().UTC().Format(time.RFC3339),
		Path:       r.URL.Path,
	})
}

// writeBadRequest is for request decoding failures before any service call.
func writeBadRequest(w http.ResponseWriter, r *http.Request, message string) {
	writeJSON(w, http.StatusBadRequest, models.APIError{
		Success:    false,
		StatusCode: http.StatusBadRequest,
		Message:    message,
		Error:      "Bad Request",
		Timestamp:  time.Now().UTC().Format(time.RFC3339),
		Path:       r.URL.Path,
	})
}
