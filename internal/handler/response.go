package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/avolkov/ledger-service/internal/models"
)

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, message string) {
	writeJSON(w, code, map[string]string{"error": message})
}

// statusFor maps domain errors to HTTP status codes: validation failures
// to 400, missing accounts to 404, conflicts to 409. Anything else is an
// internal failure (persistence included).
func statusFor(err error) int {
	switch {
	case errors.Is(err, models.ErrNameRequired), errors.Is(err, models.ErrInvalidAmount):
		return http.StatusBadRequest
	case errors.Is(err, models.ErrAccountNotFound):
		return http.StatusNotFound
	case errors.Is(err, models.ErrInsufficientFunds),
		errors.Is(err, models.ErrSameAccount),
		errors.Is(err, models.ErrBalanceNotZero):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func writeDomainError(w http.ResponseWriter, err error) {
	code := statusFor(err)
	if code == http.StatusInternalServerError {
		writeError(w, code, "internal server error")
		return
	}
	writeError(w, code, err.Error())
}
