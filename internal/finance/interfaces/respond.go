package interfaces

import (
	"encoding/json"
	"errors"
	"net/http"

	financeErrors "github.com/fintrackapp/fintrack/internal/finance/errors"
)

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func respondError(w http.ResponseWriter, status int, message string, errors ...[]string) {
	payload := map[string]interface{}{
		"status":  "error",
		"message": message,
		"code":    status,
	}

	if len(errors) > 0 && len(errors[0]) > 0 {
		payload["errors"] = errors[0]
	}

	respondJSON(w, status, payload)
}

func errInvalidFilter(name string) error {
	return financeErrors.NewValidationError("Invalid filter value: " + name)
}

// respondServiceError maps the shared error taxonomy onto HTTP statuses.
func respondServiceError(
	respond func(w http.ResponseWriter, status int, message string, errors ...[]string),
	w http.ResponseWriter,
	err error,
	fallback string,
) {
	switch {
	case financeErrors.IsValidationError(err):
		respond(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, financeErrors.ErrNotFound):
		respond(w, http.StatusNotFound, "Record not found")
	case errors.Is(err, financeErrors.ErrConflict):
		respond(w, http.StatusConflict, "Record with this name already exists")
	case errors.Is(err, financeErrors.ErrReferenced):
		respond(w, http.StatusConflict, "Record is still used by existing transactions")
	default:
		respond(w, http.StatusInternalServerError, fallback)
	}
}
