package service_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/omercanga/cv-site/internal/domain"
	"github.com/omercanga/cv-site/internal/repository/sqlite"
	"github.com/omercanga/cv-site/internal/service"
)

const testJWTSecret = "test-secret-key-for-unit-tests"

func newTestDB(t *testing.T) *sqlite.DB {
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
	return db
}

func newTestAuthService(t *testing.T) (*service.AuthService, *sqlite.DB) {
	t.Helper()
	db := newTestDB(t)
	// Use cost 4 for fast tests.
	auth := service.NewAuthService(db.Users(), testJWTSecret, 4)
	return auth, db
}

func TestAuthService_Register_Success(t *testing.T) {
	auth, _ := newTestAuthService(t)
	ctx := context.Background()

	token, user, err := auth.Register(ctx, "New User", "new@example.com", "password123")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	if token == "" {
		t.Fatal("expected non-empty token")
	}
	if user.ID == 0 {
		t.Fatal("expected user ID to be set")
	}
	if user.Role != domain.RoleUser {
		t.Fatalf("expected default role user, got %s", user.Role)
	}
	if !user.Active {
		t.Fatal("expected new user to be active")
	}

	userID, err := auth.ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}
	if userID != user.ID {
		t.Fatalf("expected user ID %d from token, got %d", user.ID, userID)
	}
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	auth, _ := newTestAuthService(t)
	ctx := context.Background()

	_, _, err := auth.Register(ctx, "User 1", "dup@example.com", "password123")
	if err != nil {
		t.Fatalf("first register: %v", err)
	}

	_, _, err = auth.Register(ctx, "User 2", "dup@example.com", "password456")
	if !errors.Is(err, domain.ErrDuplicateEmail) {
		t.Fatalf("expected ErrDuplicateEmail, got %v", err)
	}
}

func TestAuthService_Register_InvalidInput(t *testing.T) {
	auth, _ := newTestAuthService(t)
	ctx := context.Background()

	tests := []struct {
		name     string
		userName string
		email    string
		password string
	}{
		{"empty name", "", "a@b.com", "password123"},
		{"empty email", "Name", "", "password123"},
		{"empty password", "Name", "a@b.com", ""},
		{"short password", "Name", "a@b.com", "short"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := auth.Register(ctx, tc.userName, tc.email, tc.password)
			if !errors.Is(err, domain.ErrInvalidInput) {
				t.Fatalf("expected ErrInvalidInput, got %v", err)
			}
		})
	}
}

func TestAuthService_Login_Success(t *testing.T) {
	auth, _ := newTestAuthService(t)
	ctx := context.Background()

	_, registered, err := auth.Register(ctx, "Login User", "login@example.com", "password123")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	token, user, err := auth.Login(ctx, "login@example.com", "password123")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if token == "" {
		t.Fatal("expected non-empty token")
	}
	if user.ID != registered.ID {
		t.Fatalf("expected user ID %d, got %d", registered.ID, user.ID)
	}

	userID, err := auth.ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}
	if userID != registered.ID {
		t.Fatalf("expected token to resolve to user %d, got %d", registered.ID, userID)
	}
}

func TestAuthService_Login_WrongPasswordMatchesUnknownEmail(t *testing.T) {
	auth, _ := newTestAuthService(t)
	ctx := context.Background()

	_, _, err := auth.Register(ctx, "User", "known@example.com", "password123")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	// Wrong password and unknown email must be indistinguishable.
	_, _, wrongPwErr := auth.Login(ctx, "known@example.com", "wrongpassword")
	if !errors.Is(wrongPwErr, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for wrong password, got %v", wrongPwErr)
	}

	_, _, unknownErr := auth.Login(ctx, "nobody@example.com", "password123")
	if !errors.Is(unknownErr, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for unknown email, got %v", unknownErr)
	}

	if wrongPwErr.Error() != unknownErr.Error() {
		t.Fatalf("expected identical errors, got %q vs %q", wrongPwErr, unknownErr)
	}
}

func TestAuthService_Login_DisabledAccount(t *testing.T) {
	auth, db := newTestAuthService(t)
	ctx := context.Background()

	_, user, err := auth.Register(ctx, "Disabled", "disabled@example.com", "password123")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	if err := db.Users().UpdateActive(ctx, user.ID, false); err != nil {
		t.Fatalf("UpdateActive: %v", err)
	}

	_, _, err = auth.Login(ctx, "disabled@example.com", "password123")
	if !errors.Is(err, domain.ErrAccountDisabled) {
		t.Fatalf("expected ErrAccountDisabled, got %v", err)
	}
}

func TestAuthService_ValidateToken_Expired(t *testing.T) {
	auth, _ := newTestAuthService(t)

	token, err := auth.IssueToken(42, -time.Minute)
	if err != nil {
		t.Fatalf("IssueToken: %v", err)
	}

	_, err = auth.ValidateToken(token)
	if !errors.Is(err, domain.ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
}

func TestAuthService_ValidateToken_Invalid(t *testing.T) {
	auth, _ := newTestAuthService(t)

	_, err := auth.ValidateToken("not-a-valid-jwt")
	if !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestAuthService_ValidateToken_Tampered(t *testing.T) {
	auth, _ := newTestAuthService(t)

	token, err := auth.IssueToken(1, time.Hour)
	if err != nil {
		t.Fatalf("IssueToken: %v", err)
	}

	// Flip several characters in the signature.
	tampered := token[:len(token)-5] + "XXXXX"
	_, err = auth.ValidateToken(tampered)
	if !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized for tampered token, got %v", err)
	}
}

func TestAuthService_ValidateToken_WrongSecret(t *testing.T) {
	auth1, db := newTestAuthService(t)

	token, err := auth1.IssueToken(1, time.Hour)
	if err != nil {
		t.Fatalf("IssueToken: %v", err)
	}

	auth2 := service.NewAuthService(db.Users(), "a-completely-different-secret", 4)
	_, err = auth2.ValidateToken(token)
	if !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized for wrong secret, got %v", err)
	}
}

func TestAuthService_UpdatePassword_AdminOnly(t *testing.T) {
	auth, db := newTestAuthService(t)
	ctx := context.Background()

	if err := auth.EnsureAdmin(ctx, "Admin", "admin@example.com", "adminpass123"); err != nil {
		t.Fatalf("EnsureAdmin: %v", err)
	}
	admin, err := db.Users().GetByEmail(ctx, "admin@example.com")
	if err != nil {
		t.Fatalf("GetByEmail: %v", err)
	}

	_, alice, err := auth.Register(ctx, "Alice", "alice@example.com", "password1")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	// A regular user may not reset someone else's password.
	if err := auth.UpdatePassword(ctx, alice, "admin@example.com", "newpassword"); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden for non-admin actor, got %v", err)
	}

	// Unknown target fails with ErrNotFound.
	if err := auth.UpdatePassword(ctx, admin, "ghost@example.com", "newpassword"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown target, got %v", err)
	}

	// Admin resets Alice's password without her current one.
	if err := auth.UpdatePassword(ctx, admin, "alice@example.com", "password2"); err != nil {
		t.Fatalf("UpdatePassword: %v", err)
	}

	if _, _, err := auth.Login(ctx, "alice@example.com", "password1"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected old password to be rejected, got %v", err)
	}
	if _, _, err := auth.Login(ctx, "alice@example.com", "password2"); err != nil {
		t.Fatalf("expected new password to work, got %v", err)
	}
}

func TestAuthService_ChangeOwnPassword(t *testing.T) {
	auth, _ := newTestAuthService(t)
	ctx := context.Background()

	_, user, err := auth.Register(ctx, "Changer", "change@example.com", "password1")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	if err := auth.ChangeOwnPassword(ctx, user, "notmypassword", "password2"); !errors.Is(err, domain.ErrWrongPassword) {
		t.Fatalf("expected ErrWrongPassword, got %v", err)
	}

	if err := auth.ChangeOwnPassword(ctx, user, "password1", "password2"); err != nil {
		t.Fatalf("ChangeOwnPassword: %v", err)
	}

	if _, _, err := auth.Login(ctx, "change@example.com", "password2"); err != nil {
		t.Fatalf("expected new password to work, got %v", err)
	}
}

func TestAuthService_EnsureAdmin_Idempotent(t *testing.T) {
	auth, db := newTestAuthService(t)
	ctx := context.Background()

	if err := auth.EnsureAdmin(ctx, "Admin", "admin@example.com", "adminpass123"); err != nil {
		t.Fatalf("first EnsureAdmin: %v", err)
	}
	if err := auth.EnsureAdmin(ctx, "Admin", "admin@example.com", "differentpass"); err != nil {
		t.Fatalf("second EnsureAdmin: %v", err)
	}

	// The original password still works; the second call did not reset it.
	if _, _, err := auth.Login(ctx, "admin@example.com", "adminpass123"); err != nil {
		t.Fatalf("Login after repeat EnsureAdmin: %v", err)
	}

	users, err := db.Users().List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(users) != 1 {
		t.Fatalf("expected 1 user, got %d", len(users))
	}
}

func TestAuthService_EnsureAdmin_PromotesExistingUser(t *testing.T) {
	auth, db := newTestAuthService(t)
	ctx := context.Background()

	_, user, err := auth.Register(ctx, "Future Admin", "promote@example.com", "password123")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if user.Role != domain.RoleUser {
		t.Fatalf("expected role user, got %s", user.Role)
	}

	if err := auth.EnsureAdmin(ctx, "Future Admin", "promote@example.com", "ignoredpass"); err != nil {
		t.Fatalf("EnsureAdmin: %v", err)
	}

	promoted, err := db.Users().GetByID(ctx, user.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if promoted.Role != domain.RoleAdmin {
		t.Fatalf("expected role admin after promotion, got %s", promoted.Role)
	}
}
