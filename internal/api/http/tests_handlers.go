package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/eduplex/eduplex-backend/internal/assess"
)

// POST /api/teacher/tests
func DefineTestHandler(svc *assess.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var draft assess.TestDraft
		if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
			writeJSON(w, http.StatusBadRequest, errBody{Error: "bad json"})
			return
		}
		t, err := svc.DefineTest(r.Context(), callerFrom(r), draft)
		if err != nil {
			writeErr(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, t)
	}
}

// GET /api/tests/{testID}
func GetTestHandler(svc *assess.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "testID")
		t, err := svc.GetTest(r.Context(), callerFrom(r), id)
		if err != nil {
			writeErr(w, err)
			return
		}
		writeJSON(w, http.StatusOK, t)
	}
}

// POST /api/tests/{testID}/submit  { "answers": [...], "time_spent_min": n }
func SubmitTestHandler(svc *assess.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "testID")
		var req struct {
			Answers      []string `json:"answers"`
			TimeSpentMin float64  `json:"time_spent_min"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, errBody{Error: "bad json"})
			return
		}
		sub, err := svc.SubmitTest(r.Context(), callerFrom(r), id, req.Answers, req.TimeSpentMin)
		if err != nil {
			writeErr(w, err)
			return
		}
		writeJSON(w, http.StatusOK, sub)
	}
}
