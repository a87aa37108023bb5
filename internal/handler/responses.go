package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/jprdgz/sakahan-api/internal/domain"
	"github.com/jprdgz/sakahan-api/internal/logger"
)

// Standard response types for consistent API responses

// SuccessResponse represents a simple successful operation message
type SuccessResponse struct {
	Message string `json:"message"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// respondJSON sends a JSON response with the given status code and payload
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	// Encode to a pooled buffer first so a marshal failure never produces
	// a half-written body.
	buf := getBuffer()
	defer putBuffer(buf)

	if err := json.NewEncoder(buf).Encode(payload); err != nil {
		slog.Error("Failed to encode JSON response", "error", err)
		return
	}

	if _, err := buf.WriteTo(w); err != nil {
		slog.Error("Failed to write response buffer", "error", err)
	}
}

// respondError sends a JSON error response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, ErrorResponse{Error: message})
}

// respondServiceError logs a failed service call and writes the mapped
// user-facing error response.
func respondServiceError(w http.ResponseWriter, r *http.Request, opName string, err error) {
	logger.FromContext(r.Context()).Error(opName+" failed", "error", err)
	status, userMsg := mapServiceErrorToUserMessage(err)
	respondError(w, status, userMsg)
}

// User-facing error messages for service errors
const (
	ErrMsgGenericServerError  = "Something went wrong"
	ErrMsgUnknownError        = "Unknown error"
	ErrMsgInvalidRequestError = "Invalid request. Please check your inputs."

	ErrMsgFieldNotFoundError = "Field not found"
	ErrMsgFieldArchivedError = "This field has already been harvested and archived"
	ErrMsgFieldHasYieldError = "This field has recorded harvests and cannot be deleted"

	ErrMsgTaskNotFoundError  = "Task not found"
	ErrMsgTaskCompletedError = "This task has already been completed"

	ErrMsgCropNotFoundError = "Crop not found"
	ErrMsgEmptyCatalogError = "The crop catalog is not available right now"

	ErrMsgFarmerNotFoundError = "Farmer not found"
)

// mapServiceErrorToUserMessage maps domain errors to user-friendly HTTP
// status codes and messages.
func mapServiceErrorToUserMessage(err error) (int, string) {
	if err == nil {
		return http.StatusInternalServerError, ErrMsgUnknownError
	}

	switch {
	case errors.Is(err, domain.ErrFieldNotFound):
		return http.StatusNotFound, ErrMsgFieldNotFoundError
	case errors.Is(err, domain.ErrTaskNotFound):
		return http.StatusNotFound, ErrMsgTaskNotFoundError
	case errors.Is(err, domain.ErrFarmerNotFound):
		return http.StatusNotFound, ErrMsgFarmerNotFoundError
	case errors.Is(err, domain.ErrCropNotFound):
		return http.StatusBadRequest, ErrMsgCropNotFoundError
	case errors.Is(err, domain.ErrFieldArchived):
		return http.StatusConflict, ErrMsgFieldArchivedError
	case errors.Is(err, domain.ErrTaskCompleted):
		return http.StatusConflict, ErrMsgTaskCompletedError
	case errors.Is(err, domain.ErrFieldHasYield):
		return http.StatusConflict, ErrMsgFieldHasYieldError
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, domain.ErrEmptyCatalog):
		return http.StatusInternalServerError, ErrMsgEmptyCatalogError
	}

	// Unwrapped or infrastructure errors stay generic; details go to the
	// log, not the client.
	return http.StatusInternalServerError, ErrMsgGenericServerError
}
