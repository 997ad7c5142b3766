package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"splitledger/internal/auth"
	"splitledger/internal/calculator"
	"splitledger/internal/storage"
)

// writeJSON encodes v as the response body with the given status code.
func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps a domain error to its status code and a JSON error body.
// Validation errors keep their per-field detail; opaque persistence faults
// are reported as a generic 500 without leaking internals.
func writeError(w http.ResponseWriter, err error) {
	var verr *validationError
	if errors.As(err, &verr) {
		writeJSON(w, http.StatusBadRequest, map[string]any{"errors": verr.fields})
		return
	}

	code := statusFor(err)
	msg := err.Error()
	if code == http.StatusInternalServerError {
		msg = "internal server error"
	}
	writeJSON(w, code, map[string]string{"error": msg})
}

// statusFor classifies domain errors by the taxonomy: validation failures are
// 400, not-found conditions 404, auth failures 401, conflicts 409, and
// everything else an opaque 500.
func statusFor(err error) int {
	switch {
	case errors.Is(err, storage.ErrUserNotFound),
		errors.Is(err, storage.ErrExpenseNotFound),
		errors.Is(err, calculator.ErrNoExpenses):
		return http.StatusNotFound

	case errors.Is(err, storage.ErrEmailExists):
		return http.StatusConflict

	case errors.Is(err, auth.ErrInvalidCredentials),
		errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrMissingToken):
		return http.StatusUnauthorized

	case errors.Is(err, auth.ErrWeakPassword),
		errors.Is(err, calculator.ErrEmptyParticipants),
		errors.Is(err, calculator.ErrInvalidSplitMethod),
		errors.Is(err, calculator.ErrNegativeAmount),
		errors.Is(err, calculator.ErrPercentageMismatch),
		errors.Is(err, calculator.ErrAmountMismatch),
		errors.Is(err, calculator.ErrMissingPercentage),
		errors.Is(err, calculator.ErrMissingAmount),
		errors.Is(err, calculator.ErrUnknownParticipant):
		return http.StatusBadRequest

	default:
		return http.StatusInternalServerError
	}
}
