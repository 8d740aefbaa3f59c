package http

import (
	"net/http"

	"github.com/eduplex/eduplex-backend/internal/analytics"
)

// GET /api/stats/overview — role-scoped snapshot for the caller.
// GET /api/admin/stats shares this handler behind an admin-only guard.
func StatsOverviewHandler(agg *analytics.Aggregator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		view, err := agg.Aggregate(r.Context(), callerFrom(r))
		if err != nil {
			writeErr(w, err)
			return
		}
		writeJSON(w, http.StatusOK, view)
	}
}
