package http

import (
	"net/http"

	"github.com/eduplex/eduplex-backend/internal/rbac"
	"github.com/eduplex/eduplex-backend/internal/recommend"
)

// GET /api/ai/recommendations — course suggestions from the separate,
// non-deterministic recommender collaborator.
func RecommendationsHandler(rec *recommend.Recommender) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sub := rbac.SubjectFromContext(r.Context())
		out, err := rec.ForStudent(r.Context(), sub)
		if err != nil {
			writeErr(w, err)
			return
		}
		writeJSON(w, http.StatusOK, out)
	}
}
