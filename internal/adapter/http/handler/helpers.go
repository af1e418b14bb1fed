package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/khrisnaSoluix/lending-engine/internal/adapter/http/dto"
	"github.com/khrisnaSoluix/lending-engine/internal/domain"
)

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// writeError writes an error response.
func writeError(w http.ResponseWriter, status int, message, details string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(dto.ErrorResponse{
		Error:   message,
		Message: details,
	})
}

// mapDomainError maps domain errors to HTTP status codes.
func mapDomainError(err error) int {
	switch {
	case errors.Is(err, domain.ErrAccountNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrReferenceAlreadyUsed):
		return http.StatusConflict
	case errors.Is(err, domain.ErrAccountNotOpen),
		errors.Is(err, domain.ErrOutstandingDebt),
		errors.Is(err, domain.ErrOutstandingRedraw):
		return http.StatusConflict
	case errors.Is(err, domain.ErrInvalidAmount),
		errors.Is(err, domain.ErrWrongDenomination),
		errors.Is(err, domain.ErrMultipleInstructions),
		errors.Is(err, domain.ErrRestrictedAddress),
		errors.Is(err, domain.ErrDrawdownsNotPermitted),
		errors.Is(err, domain.ErrExceedsCreditLimit),
		errors.Is(err, domain.ErrExceedsOverdraft),
		errors.Is(err, domain.ErrOverpaymentExceedsDebt),
		errors.Is(err, domain.ErrMissingParameter),
		errors.Is(err, domain.ErrUnsupportedAmortisationMethod),
		errors.Is(err, domain.ErrUnsupportedDayCount):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// parseIntQuery parses an integer query parameter with a default value.
func parseIntQuery(r *http.Request, key string, defaultValue int) int {
	val := r.URL.Query().Get(key)
	if val == "" {
		return defaultValue
	}
	i, err := strconv.Atoi(val)
	if err != nil {
		return defaultValue
	}
	return i
}
