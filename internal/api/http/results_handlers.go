package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/eduplex/eduplex-backend/internal/assess"
)

// GET /api/student/results — caller's own results, newest first.
func ListOwnResultsHandler(svc *assess.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		out, err := svc.ListOwnResults(r.Context(), callerFrom(r))
		if err != nil {
			writeErr(w, err)
			return
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// GET /api/teacher/results/{testID} — creator or admin only; anyone else is
// refused, never given an empty list.
func ListTestResultsHandler(svc *assess.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "testID")
		out, err := svc.ListTestResults(r.Context(), callerFrom(r), id)
		if err != nil {
			writeErr(w, err)
			return
		}
		writeJSON(w, http.StatusOK, out)
	}
}
