// Package render writes JSON responses and maps domain errors to status codes.
package render

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/MrJamesThe3rd/placebi/internal/entry"
	"github.com/MrJamesThe3rd/placebi/internal/finance"
	"github.com/MrJamesThe3rd/placebi/internal/ledger"
)

type errorResponse struct {
	Error    string            `json:"error"`
	Fields   map[string]string `json:"fields,omitempty"`
	Redirect string            `json:"redirect,omitempty"`
}

func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func Error(w http.ResponseWriter, status int, msg string) {
	JSON(w, status, errorResponse{Error: msg})
}

// SetupRequired answers requests made before the restaurant profile exists.
func SetupRequired(w http.ResponseWriter) {
	JSON(w, http.StatusConflict, errorResponse{
		Error:    "restaurant setup required",
		Redirect: "/setup",
	})
}

// Err maps err to a status: field errors 422, unknown records 404, anything
// else 500. Server errors are logged.
func Err(w http.ResponseWriter, r *http.Request, err error) {
	if fe, ok := entry.AsFieldErrors(err); ok {
		JSON(w, http.StatusUnprocessableEntity, errorResponse{Error: "validation failed", Fields: fe})
		return
	}

	switch {
	case errors.Is(err, ledger.ErrNotFound):
		Error(w, http.StatusNotFound, "not found")
	case errors.Is(err, ledger.ErrPersist):
		slog.Error("state not persisted", "path", r.URL.Path, "error", err)
		Error(w, http.StatusInternalServerError, "state could not be saved")
	case errors.Is(err, finance.ErrUnknownPaymentMethod):
		slog.Error("invalid stored data", "path", r.URL.Path, "error", err)
		Error(w, http.StatusInternalServerError, "internal error")
	default:
		slog.Error("request failed", "path", r.URL.Path, "error", err)
		Error(w, http.StatusInternalServerError, "internal error")
	}
}

// Decode reads a JSON body into v, answering 400 on failure.
func Decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		Error(w, http.StatusBadRequest, err.Error())
		return false
	}

	return true
}
