package http

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	authmw "github.com/eduplex/eduplex-backend/internal/auth/middleware"
	"github.com/eduplex/eduplex-backend/internal/rbac"
	"github.com/eduplex/eduplex-backend/internal/storage"
)

// isUniqueViolation matches the constraint errors of both wired drivers:
// sqlite reports "UNIQUE constraint failed", postgres "duplicate key value
// violates unique constraint".
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint") || strings.Contains(msg, "duplicate key")
}

type userView struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	Role         string `json:"role"`
	ProfileImage string `json:"profile_image,omitempty"`
}

// POST /api/auth/register  { "name": ..., "email": ..., "password": ..., "role": ... }
func RegisterHandler(dbh *sql.DB, authSvc *authmw.AuthService, bcryptCost int) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Name     string `json:"name"`
			Email    string `json:"email"`
			Password string `json:"password"`
			Role     string `json:"role"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, errBody{Error: "bad json"})
			return
		}
		req.Name = strings.TrimSpace(req.Name)
		req.Email = strings.ToLower(strings.TrimSpace(req.Email))
		if req.Name == "" || req.Email == "" || req.Password == "" {
			writeJSON(w, http.StatusBadRequest, errBody{Error: "name, email and password required"})
			return
		}
		role := rbac.RoleStudent
		if req.Role != "" {
			parsed, err := rbac.ParseRole(req.Role)
			if err != nil {
				writeJSON(w, http.StatusBadRequest, errBody{Error: "invalid role"})
				return
			}
			role = parsed
		}

		var exists int
		err := dbh.QueryRowContext(r.Context(), `SELECT 1 FROM users WHERE email=$1`, req.Email).Scan(&exists)
		if err == nil {
			writeJSON(w, http.StatusConflict, errBody{Error: "email already registered"})
			return
		}
		if !errors.Is(err, sql.ErrNoRows) {
			writeJSON(w, http.StatusInternalServerError, errBody{Error: "storage error"})
			return
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
		if err != nil {
			writeJSON(w, http.StatusInternalServerError, errBody{Error: "internal error"})
			return
		}
		now := time.Now().Unix()
		id := uuid.NewString()
		if _, err := dbh.ExecContext(r.Context(),
			`INSERT INTO users (id, name, email, password_hash, role, created_at, last_login) VALUES ($1,$2,$3,$4,$5,$6,$7)`,
			id, req.Name, req.Email, string(hash), string(role), now, now); err != nil {
			// two registrations can race past the SELECT; the UNIQUE
			// constraint arbitrates and the loser gets the same conflict
			if isUniqueViolation(err) {
				writeJSON(w, http.StatusConflict, errBody{Error: "email already registered"})
				return
			}
			writeJSON(w, http.StatusInternalServerError, errBody{Error: "storage error"})
			return
		}

		tok, err := authSvc.IssueJWT(id, req.Name, req.Email, role)
		if err != nil {
			writeJSON(w, http.StatusInternalServerError, errBody{Error: "internal error"})
			return
		}
		writeJSON(w, http.StatusCreated, map[string]any{
			"token": tok,
			"user":  userView{ID: id, Name: req.Name, Email: req.Email, Role: string(role)},
		})
	}
}

// POST /api/auth/login  { "email": ..., "password": ... }
func LoginHandler(dbh *sql.DB, authSvc *authmw.AuthService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Email    string `json:"email"`
			Password string `json:"password"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, errBody{Error: "bad json"})
			return
		}
		req.Email = strings.ToLower(strings.TrimSpace(req.Email))

		var (
			u    userView
			hash string
		)
		err := dbh.QueryRowContext(r.Context(),
			`SELECT id, name, email, password_hash, role, profile_image FROM users WHERE email=$1`, req.Email).
			Scan(&u.ID, &u.Name, &u.Email, &hash, &u.Role, &u.ProfileImage)
		if errors.Is(err, sql.ErrNoRows) {
			// same message for unknown email and bad password
			writeJSON(w, http.StatusBadRequest, errBody{Error: "invalid email or password"})
			return
		}
		if err != nil {
			writeJSON(w, http.StatusInternalServerError, errBody{Error: "storage error"})
			return
		}
		if bcrypt.CompareHashAndPassword([]byte(hash), []byte(req.Password)) != nil {
			writeJSON(w, http.StatusBadRequest, errBody{Error: "invalid email or password"})
			return
		}
		role, err := rbac.ParseRole(u.Role)
		if err != nil {
			writeJSON(w, http.StatusInternalServerError, errBody{Error: "internal error"})
			return
		}
		tok, err := authSvc.IssueJWT(u.ID, u.Name, u.Email, role)
		if err != nil {
			writeJSON(w, http.StatusInternalServerError, errBody{Error: "internal error"})
			return
		}
		_, _ = dbh.ExecContext(r.Context(), `UPDATE users SET last_login=$1 WHERE id=$2`, time.Now().Unix(), u.ID)
		writeJSON(w, http.StatusOK, map[string]any{"token": tok, "user": u})
	}
}

// GET /api/auth/profile
func ProfileHandler(dbh *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sub := rbac.SubjectFromContext(r.Context())
		var u userView
		err := dbh.QueryRowContext(r.Context(),
			`SELECT id, name, email, role, profile_image FROM users WHERE id=$1`, sub).
			Scan(&u.ID, &u.Name, &u.Email, &u.Role, &u.ProfileImage)
		if errors.Is(err, sql.ErrNoRows) {
			writeJSON(w, http.StatusNotFound, errBody{Error: "user not found"})
			return
		}
		if err != nil {
			writeJSON(w, http.StatusInternalServerError, errBody{Error: "storage error"})
			return
		}
		writeJSON(w, http.StatusOK, u)
	}
}

// PUT /api/profile/update — multipart with optional profileImage file.
// Passwords are never updatable through this path.
func UpdateProfileHandler(dbh *sql.DB, bs storage.BlobStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sub := rbac.SubjectFromContext(r.Context())
		name := strings.TrimSpace(r.FormValue("name"))

		imageKey := ""
		if f, hdr, err := r.FormFile("profileImage"); err == nil {
			defer f.Close()
			key := storage.UploadKey("profiles", hdr.Filename)
			if _, err := bs.Put(key, f); err != nil {
				writeJSON(w, http.StatusInternalServerError, errBody{Error: "storage error"})
				return
			}
			imageKey = "/uploads/" + key
		}

		switch {
		case name != "" && imageKey != "":
			_, _ = dbh.ExecContext(r.Context(), `UPDATE users SET name=$1, profile_image=$2 WHERE id=$3`, name, imageKey, sub)
		case name != "":
			_, _ = dbh.ExecContext(r.Context(), `UPDATE users SET name=$1 WHERE id=$2`, name, sub)
		case imageKey != "":
			_, _ = dbh.ExecContext(r.Context(), `UPDATE users SET profile_image=$1 WHERE id=$2`, imageKey, sub)
		}

		ProfileHandler(dbh)(w, r)
	}
}
