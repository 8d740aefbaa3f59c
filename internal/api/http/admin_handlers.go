package http

import (
	"database/sql"
	"net/http"
)

// GET /api/admin/users — all users, newest first, hashes never included.
func ListUsersHandler(dbh *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		role := r.URL.Query().Get("role")
		var (
			rows *sql.Rows
			err  error
		)
		if role == "" {
			rows, err = dbh.QueryContext(r.Context(),
				`SELECT id, name, email, role, profile_image FROM users ORDER BY created_at DESC`)
		} else {
			rows, err = dbh.QueryContext(r.Context(),
				`SELECT id, name, email, role, profile_image FROM users WHERE role=$1 ORDER BY created_at DESC`, role)
		}
		if err != nil {
			writeJSON(w, http.StatusInternalServerError, errBody{Error: "storage error"})
			return
		}
		defer rows.Close()
		out := []userView{}
		for rows.Next() {
			var u userView
			if err := rows.Scan(&u.ID, &u.Name, &u.Email, &u.Role, &u.ProfileImage); err != nil {
				writeJSON(w, http.StatusInternalServerError, errBody{Error: "storage error"})
				return
			}
			out = append(out, u)
		}
		writeJSON(w, http.StatusOK, out)
	}
}
