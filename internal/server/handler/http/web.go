// Package http provides the HTTP handlers and routing for the contactdesk
// API. Every response is wrapped in the {data, paging, errors} envelope.
package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"contactdesk/internal/models"
	"contactdesk/internal/service"
	"contactdesk/internal/validation"
)

// dataResponse is the success envelope: {"data": ..., "paging": ...}.
type dataResponse struct {
	Data   any            `json:"data"`
	Paging *models.Paging `json:"paging,omitempty"`
}

// errorResponse is the failure envelope: {"errors": ...}, where errors is
// either a message string or a list of field errors.
type errorResponse struct {
	Errors any `json:"errors"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeData(w http.ResponseWriter, data any) {
	writeJSON(w, http.StatusOK, dataResponse{Data: data})
}

func writePage(w http.ResponseWriter, data any, paging *models.Paging) {
	writeJSON(w, http.StatusOK, dataResponse{Data: data, Paging: paging})
}

func writeError(w http.ResponseWriter, status int, errs any) {
	writeJSON(w, status, errorResponse{Errors: errs})
}

// writeServiceError maps a service failure to its HTTP status. Validation
// failures carry per-field messages; anything outside the known taxonomy is
// a 500 with no detail leaked.
func writeServiceError(w http.ResponseWriter, err error) {
	var verr *validation.Error
	if errors.As(err, &verr) {
		writeError(w, http.StatusBadRequest, verr.Fields)
		return
	}

	switch {
	case errors.Is(err, service.ErrUsernameTaken):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrInvalidCredentials):
		writeError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, service.ErrContactNotFound),
		errors.Is(err, service.ErrAddressNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}
