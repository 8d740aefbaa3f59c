package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/eduplex/eduplex-backend/internal/rbac"
)

func TestIssueAndParseRoundTrip(t *testing.T) {
	svc := NewAuthService("test-secret", time.Hour)
	token, err := svc.IssueJWT("user-1", "Ada", "ada@example.com", rbac.RoleTeacher)
	if err != nil {
		t.Fatal(err)
	}

	claims, err := svc.Parse(token)
	if err != nil {
		t.Fatal(err)
	}
	if claims.Subject != "user-1" {
		t.Errorf("subject = %q", claims.Subject)
	}
	if claims.Role != "teacher" {
		t.Errorf("role = %q", claims.Role)
	}
	if claims.Email != "ada@example.com" {
		t.Errorf("email = %q", claims.Email)
	}
	if claims.Issuer != "eduplex" {
		t.Errorf("issuer = %q", claims.Issuer)
	}
}

func TestParseRejectsWrongSecret(t *testing.T) {
	token, err := NewAuthService("secret-a", time.Hour).IssueJWT("u", "", "", rbac.RoleStudent)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := NewAuthService("secret-b", time.Hour).Parse(token); err == nil {
		t.Fatal("token signed with another secret accepted")
	}
}

func TestParseRejectsExpired(t *testing.T) {
	svc := NewAuthService("test-secret", time.Hour)
	claims := &Claims{
		Role: "student",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "u",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Parse(token); err == nil {
		t.Fatal("expired token accepted")
	}
}

func TestJWTMiddleware(t *testing.T) {
	svc := NewAuthService("test-secret", time.Hour)
	var gotSubject string
	var gotRole rbac.Role
	h := JWTMiddleware(svc)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotSubject = rbac.SubjectFromContext(r.Context())
		gotRole = rbac.RoleFromContext(r.Context())
	}))

	// missing header
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("no header got %d", rec.Code)
	}

	// garbage token
	rec = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("garbage token got %d", rec.Code)
	}

	// valid token attaches identity
	token, err := svc.IssueJWT("user-1", "Ada", "ada@example.com", rbac.RoleStudent)
	if err != nil {
		t.Fatal(err)
	}
	rec = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("valid token got %d", rec.Code)
	}
	if gotSubject != "user-1" || gotRole != rbac.RoleStudent {
		t.Fatalf("context carries %q/%q", gotSubject, gotRole)
	}
}

func TestJWTMiddlewareRejectsUnknownRole(t *testing.T) {
	// Signed correctly but carrying a role outside the closed set.
	claims := &Claims{
		Role: "superuser",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "u",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatal(err)
	}

	svc := NewAuthService("test-secret", time.Hour)
	h := JWTMiddleware(svc)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler ran for unknown role")
	}))
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("unknown role got %d", rec.Code)
	}
}
