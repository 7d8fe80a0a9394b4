package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	apperrors "github.com/lifeline-ai/backend/pkg/errors"
)

// apiResponse is the envelope returned by every endpoint.
type apiResponse struct {
	Success   bool      `json:"success"`
	Data      any       `json:"data,omitempty"`
	Error     *apiError `json:"error,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func respondWithJSON(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(apiResponse{
		Success:   true,
		Data:      data,
		Timestamp: time.Now().UTC(),
	}); err != nil {
		return
	}
}

func respondWithError(w http.ResponseWriter, statusCode int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(apiResponse{
		Success:   false,
		Error:     &apiError{Code: code, Message: message},
		Timestamp: time.Now().UTC(),
	}); err != nil {
		return
	}
}

// respondWithAppError maps an application error to the matching HTTP status.
// The fallback code identifies the operation that failed when the error is
// not a validation or not-found error.
func respondWithAppError(w http.ResponseWriter, err error, fallbackCode string) {
	if appErr, ok := err.(*apperrors.AppError); ok {
		switch appErr.Type {
		case apperrors.ErrorTypeValidation:
			respondWithError(w, http.StatusBadRequest, "VALIDATION_ERROR", appErr.Message)
		case apperrors.ErrorTypeNotFound:
			respondWithError(w, http.StatusNotFound, "NOT_FOUND", appErr.Message)
		default:
			respondWithError(w, http.StatusInternalServerError, fallbackCode, appErr.Message)
		}
		return
	}
	respondWithError(w, http.StatusInternalServerError, fallbackCode, "internal server error")
}
