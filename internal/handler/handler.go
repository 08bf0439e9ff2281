package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"course-market/internal/model"

	"github.com/rs/zerolog"
)

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		// Log the error but don't expose it to the client
		return
	}
}

// writeError writes an error response with the given status code, code and message.
func writeError(w http.ResponseWriter, status int, code, message string, logger zerolog.Logger) {
	logger.Error().Str("code", code).Str("error", message).Int("status", status).Msg("handler error")
	writeJSON(w, status, model.ErrorResponse{Error: code, Message: message})
}

// writeServiceError maps domain errors to 4xx responses and everything else to 500.
func writeServiceError(w http.ResponseWriter, err error, fallback string, logger zerolog.Logger) {
	var derr *model.DomainError
	if errors.As(err, &derr) {
		status := http.StatusBadRequest
		if derr == model.ErrProductNotFound {
			status = http.StatusNotFound
		}
		writeError(w, status, derr.Code, derr.Message, logger)
		return
	}

	logger.Error().Err(err).Msg(fallback)
	writeError(w, http.StatusInternalServerError, model.ErrCodeInternalError, fallback, logger)
}
