// internal/api/handler/response.go
package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"fintrack/internal/api/types"
	"fintrack/internal/util"
)

// Response messages for failures.
const (
	msgValidationFailed = "Input validation failed"
	msgNotFound         = "Resource not found"
	msgInternal         = "Internal server error"
)

func respondWithJSON(w http.ResponseWriter, logger *slog.Logger, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		logger.Error("Failed to marshal JSON response", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_, _ = w.Write(response)
}

// respondWithError maps the error taxonomy onto status codes and envelopes.
// Validation and lookup failures are expected outcomes and are logged at Warn;
// anything else is an internal fault whose cause is logged but never returned.
func respondWithError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	ctx := r.Context()

	if ve, ok := util.AsValidationError(err); ok {
		logger.WarnContext(ctx, "Validation error", "error", ve.Message, "details", ve.Details)
		respondWithJSON(w, logger, http.StatusBadRequest, types.Fail(msgValidationFailed, ve.Message, ve.Details...))
		return
	}

	if util.IsError(err, util.ErrNotFound) {
		logger.WarnContext(ctx, "Not found", "error", err)
		respondWithJSON(w, logger, http.StatusNotFound, types.Fail(msgNotFound, err.Error()))
		return
	}

	logger.ErrorContext(ctx, "Unhandled error",
		"error", err,
		"method", r.Method,
		"path", r.URL.Path)
	respondWithJSON(w, logger, http.StatusInternalServerError, types.Fail(msgInternal, "internal server error"))
}
