package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/omercanga/cv-site/internal/domain"
	"github.com/omercanga/cv-site/internal/service"
)

type contextKey string

const userContextKey contextKey = "user"

// UserFromContext extracts the authenticated user from the request context.
// Returns nil if no user is authenticated.
func UserFromContext(ctx context.Context) *domain.User {
	user, _ := ctx.Value(userContextKey).(*domain.User)
	return user
}

// Guard enforces bearer-token authentication plus a declarative per-route
// role policy. A protected route not listed in the policy table accepts any
// authenticated, active user; routes mapped to RoleAdmin additionally require
// the admin role. Invariants specific to an operation (e.g. which users may
// be deleted) stay in the services behind the handlers.
type Guard struct {
	auth     *service.AuthService
	policies map[string]domain.Role
}

// NewGuard creates a Guard with the given route policy table, keyed by the
// ServeMux pattern the handler is registered under.
func NewGuard(auth *service.AuthService, policies map[string]domain.Role) *Guard {
	return &Guard{auth: auth, policies: policies}
}

// Protect wraps a handler with the full access-control sequence: extract the
// bearer token, validate it, re-load the user from the store, enforce the
// active flag, apply the route's role policy, and attach the user to the
// request context.
//
// Token validity is checked against live user state on every request: a
// token for a deleted account fails with 401, a token for a deactivated
// account fails with 403, even while the token itself still verifies.
func (g *Guard) Protect(pattern string, next http.HandlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := bearerToken(r)
		if !ok {
			writeError(w, http.StatusUnauthorized, "Authentication required.")
			return
		}

		userID, err := g.auth.ValidateToken(token)
		if err != nil {
			// Expired gets a distinct message so the client can prompt a
			// fresh login instead of retrying.
			if errors.Is(err, domain.ErrTokenExpired) {
				writeError(w, http.StatusUnauthorized, "Session expired. Please log in again.")
				return
			}
			writeError(w, http.StatusUnauthorized, "Invalid token.")
			return
		}

		user, err := g.auth.GetUserByID(r.Context(), userID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				// Account deleted after the token was issued.
				writeError(w, http.StatusUnauthorized, "Invalid token.")
				return
			}
			slog.Error("load user for auth", "error", err)
			writeError(w, http.StatusInternalServerError, "An unexpected error occurred.")
			return
		}

		if !user.Active {
			writeError(w, http.StatusForbidden, "Your account has been disabled.")
			return
		}

		if required, ok := g.policies[pattern]; ok && required == domain.RoleAdmin && user.Role != domain.RoleAdmin {
			writeError(w, http.StatusForbidden, "You do not have permission to perform this action.")
			return
		}

		ctx := context.WithValue(r.Context(), userContextKey, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// bearerToken extracts the token from an "Authorization: Bearer <token>" header.
func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	token, found := strings.CutPrefix(header, "Bearer ")
	if !found || token == "" {
		return "", false
	}
	return token, true
}

// SecurityHeaders sets conservative browser security headers on every response.
func SecurityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")
		next.ServeHTTP(w, r)
	})
}

// CORS allows the configured SPA origins to call the API, including
// preflight requests carrying the Authorization header.
func CORS(allowedOrigins []string, next http.Handler) http.Handler {
	allowed := make(map[string]bool, len(allowedOrigins))
	for _, origin := range allowedOrigins {
		allowed[origin] = true
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if origin != "" && allowed[origin] {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Credentials", "true")
			w.Header().Add("Vary", "Origin")
		}

		if r.Method == http.MethodOptions {
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}
