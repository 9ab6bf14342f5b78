package dto

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"sort"

	"github.com/taskfabric/taskfabric/internal/domain"
)

// ErrorResponse is the envelope returned for every failed request.
type ErrorResponse struct {
	Success bool          `json:"success"`
	Message string        `json:"message"`
	Errors  []ErrorDetail `json:"errors,omitempty"`
}

// ErrorDetail represents a single field-level validation error within
// an ErrorResponse.
type ErrorDetail struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// NewErrorResponse builds the error envelope for a domain error. Internal
// errors are masked with a generic message so storage details never leak to
// clients.
func NewErrorResponse(err error) (int, ErrorResponse) {
	status := domainErrorToStatus(err)

	resp := ErrorResponse{
		Success: false,
		Message: err.Error(),
	}
	if status == http.StatusInternalServerError {
		resp.Message = "internal server error"
	}

	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		resp.Message = "validation failed"
		resp.Errors = validationFieldsToDetails(verr.Fields)
	}

	return status, resp
}

// WriteErrorResponse writes the error envelope for the given domain error,
// mapping sentinel errors to HTTP status codes.
func WriteErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	status, resp := NewErrorResponse(err)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if encErr := json.NewEncoder(w).Encode(resp); encErr != nil {
		slog.ErrorContext(r.Context(), "failed to encode error response",
			slog.Any("error", encErr),
		)
	}
}

// domainErrorToStatus maps domain sentinel errors to HTTP status codes.
func domainErrorToStatus(err error) int {
	switch {
	case errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrUnauthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// validationFieldsToDetails converts domain validation fields to sorted
// ErrorDetail entries.
func validationFieldsToDetails(fields map[string]string) []ErrorDetail {
	details := make([]ErrorDetail, 0, len(fields))
	for field, msg := range fields {
		details = append(details, ErrorDetail{
			Field:   field,
			Message: msg,
		})
	}
	sort.Slice(details, func(i, j int) bool {
		return details[i].Field < details[j].Field
	})
	return details
}
