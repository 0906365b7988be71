package handler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/omercanga/cv-site/internal/domain"
	"github.com/omercanga/cv-site/internal/handler"
	"github.com/omercanga/cv-site/internal/repository/sqlite"
	"github.com/omercanga/cv-site/internal/service"
)

const testJWTSecret = "test-secret-for-handler-tests"

func newTestServices(t *testing.T) (*service.AuthService, *service.UserService, *service.PostService, *service.HomeService, *sqlite.DB) {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	db, err := sqlite.New(dbPath)
	if err != nil {
		t.Fatalf("New DB: %v", err)
	}
	if err := db.Migrate(context.Background()); err != nil {
		t.Fatalf("Migrate: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	return service.NewAuthService(db.Users(), testJWTSecret, 4),
		service.NewUserService(db.Users(), 4),
		service.NewPostService(db.Posts()),
		service.NewHomeService(db.Home()),
		db
}

func registerTestUser(t *testing.T, auth *service.AuthService, name, email string) (string, *domain.User) {
	t.Helper()
	token, user, err := auth.Register(context.Background(), name, email, "password123")
	if err != nil {
		t.Fatalf("Register %s: %v", email, err)
	}
	return token, user
}

func errorMessage(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]string
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	return body["error"]
}

func protectedRequest(token string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req
}

func TestGuard_ValidToken(t *testing.T) {
	auth, _, _, _, _ := newTestServices(t)
	token, _ := registerTestUser(t, auth, "Valid User", "valid@example.com")

	var gotName string
	inner := func(w http.ResponseWriter, r *http.Request) {
		if user := handler.UserFromContext(r.Context()); user != nil {
			gotName = user.Name
		}
		w.WriteHeader(http.StatusOK)
	}

	w := httptest.NewRecorder()
	guard := handler.NewGuard(auth, nil)
	guard.Protect("GET /protected", inner).ServeHTTP(w, protectedRequest(token))

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if gotName != "Valid User" {
		t.Fatalf("expected user 'Valid User' in context, got %q", gotName)
	}
}

func TestGuard_MissingHeader(t *testing.T) {
	auth, _, _, _, _ := newTestServices(t)

	inner := func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("inner handler should not be called")
	}

	w := httptest.NewRecorder()
	guard := handler.NewGuard(auth, nil)
	guard.Protect("GET /protected", inner).ServeHTTP(w, protectedRequest(""))

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}

func TestGuard_InvalidToken(t *testing.T) {
	auth, _, _, _, _ := newTestServices(t)

	inner := func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("inner handler should not be called")
	}

	w := httptest.NewRecorder()
	guard := handler.NewGuard(auth, nil)
	guard.Protect("GET /protected", inner).ServeHTTP(w, protectedRequest("invalid.jwt.token"))

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
	if msg := errorMessage(t, w); msg != "Invalid token." {
		t.Fatalf("expected invalid-token message, got %q", msg)
	}
}

func TestGuard_ExpiredTokenDistinctMessage(t *testing.T) {
	auth, _, _, _, _ := newTestServices(t)
	_, user := registerTestUser(t, auth, "Expired", "expired@example.com")

	token, err := auth.IssueToken(user.ID, -time.Minute)
	if err != nil {
		t.Fatalf("IssueToken: %v", err)
	}

	inner := func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("inner handler should not be called")
	}

	w := httptest.NewRecorder()
	guard := handler.NewGuard(auth, nil)
	guard.Protect("GET /protected", inner).ServeHTTP(w, protectedRequest(token))

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
	if msg := errorMessage(t, w); msg != "Session expired. Please log in again." {
		t.Fatalf("expected session-expired message, got %q", msg)
	}
}

func TestGuard_DeletedUser(t *testing.T) {
	auth, _, _, _, db := newTestServices(t)
	token, user := registerTestUser(t, auth, "Ghost", "ghost@example.com")

	// Delete the account after the token was issued.
	if err := db.Users().Delete(context.Background(), user.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	inner := func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("inner handler should not be called")
	}

	w := httptest.NewRecorder()
	guard := handler.NewGuard(auth, nil)
	guard.Protect("GET /protected", inner).ServeHTTP(w, protectedRequest(token))

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for deleted user, got %d", w.Code)
	}
}

func TestGuard_DeactivatedUser(t *testing.T) {
	auth, _, _, _, db := newTestServices(t)
	token, user := registerTestUser(t, auth, "Suspended", "suspended@example.com")

	// The token still verifies, but the live active flag wins.
	if err := db.Users().UpdateActive(context.Background(), user.ID, false); err != nil {
		t.Fatalf("UpdateActive: %v", err)
	}

	inner := func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("inner handler should not be called")
	}

	w := httptest.NewRecorder()
	guard := handler.NewGuard(auth, nil)
	guard.Protect("GET /protected", inner).ServeHTTP(w, protectedRequest(token))

	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for deactivated user, got %d", w.Code)
	}
}

func TestGuard_AdminPolicy(t *testing.T) {
	auth, _, _, _, db := newTestServices(t)
	userToken, _ := registerTestUser(t, auth, "Regular", "regular@example.com")

	if err := auth.EnsureAdmin(context.Background(), "Admin", "admin@example.com", "adminpass123"); err != nil {
		t.Fatalf("EnsureAdmin: %v", err)
	}
	admin, err := db.Users().GetByEmail(context.Background(), "admin@example.com")
	if err != nil {
		t.Fatalf("GetByEmail: %v", err)
	}
	adminToken, err := auth.IssueToken(admin.ID, time.Hour)
	if err != nil {
		t.Fatalf("IssueToken: %v", err)
	}

	guard := handler.NewGuard(auth, map[string]domain.Role{
		"GET /protected": domain.RoleAdmin,
	})

	called := false
	inner := func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.WriteHeader(http.StatusOK)
	}

	w := httptest.NewRecorder()
	guard.Protect("GET /protected", inner).ServeHTTP(w, protectedRequest(userToken))
	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for regular user on admin route, got %d", w.Code)
	}
	if called {
		t.Fatal("inner handler should not be called for regular user")
	}

	w = httptest.NewRecorder()
	guard.Protect("GET /protected", inner).ServeHTTP(w, protectedRequest(adminToken))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 for admin, got %d", w.Code)
	}
	if !called {
		t.Fatal("inner handler should be called for admin")
	}
}
