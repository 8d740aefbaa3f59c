package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/eduplex/eduplex-backend/internal/apperr"
	"github.com/eduplex/eduplex-backend/internal/assess"
	"github.com/eduplex/eduplex-backend/internal/rbac"
)

func callerFrom(r *http.Request) assess.Caller {
	return assess.Caller{
		ID:   rbac.SubjectFromContext(r.Context()),
		Role: rbac.RoleFromContext(r.Context()),
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

type errBody struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

// writeErr maps service errors onto HTTP statuses. Validation failures carry
// the offending field; storage failures stay generic.
func writeErr(w http.ResponseWriter, err error) {
	var ve *assess.ValidationError
	if errors.As(err, &ve) {
		writeJSON(w, http.StatusBadRequest, errBody{Error: ve.Reason, Field: ve.Field})
		return
	}
	if e, ok := apperr.As(err); ok {
		status := http.StatusInternalServerError
		switch e.Code {
		case apperr.CodeInvalid:
			status = http.StatusBadRequest
		case apperr.CodeUnauthorized:
			status = http.StatusUnauthorized
		case apperr.CodeForbidden:
			status = http.StatusForbidden
		case apperr.CodeNotFound:
			status = http.StatusNotFound
		case apperr.CodeConflict:
			status = http.StatusConflict
		case apperr.CodeStorage:
			status = http.StatusInternalServerError
		}
		writeJSON(w, status, errBody{Error: e.Message})
		return
	}
	writeJSON(w, http.StatusInternalServerError, errBody{Error: "internal error"})
}
