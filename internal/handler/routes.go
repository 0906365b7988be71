package handler

import (
	"net/http"

	"github.com/omercanga/cv-site/internal/domain"
	"github.com/omercanga/cv-site/internal/service"
)

// RegisterRoutes sets up all HTTP routes on the given mux.
//
// The policy table below is the single place that maps protected routes to a
// required role. Protected routes not listed require only a valid token for
// an active account. Operation-specific invariants (which users may be
// deleted, current-password checks) live in the services.
func RegisterRoutes(
	mux *http.ServeMux,
	auth *service.AuthService,
	users *service.UserService,
	posts *service.PostService,
	home *service.HomeService,
) {
	authHandler := NewAuthHandler(auth)
	userHandler := NewUserHandler(users, auth)
	postHandler := NewPostHandler(posts)
	homeHandler := NewHomeHandler(home)
	adminHandler := NewAdminHandler(posts)

	guard := NewGuard(auth, map[string]domain.Role{
		"PUT /api/auth/update-password": domain.RoleAdmin,
		"GET /api/users":                domain.RoleAdmin,
		"POST /api/users":               domain.RoleAdmin,
		"DELETE /api/users/{id}":        domain.RoleAdmin,
		"PUT /api/users/{id}/role":      domain.RoleAdmin,
		"PUT /api/users/{id}/active":    domain.RoleAdmin,
		"GET /api/admin/dashboard":      domain.RoleAdmin,
	})
	protect := func(pattern string, h http.HandlerFunc) {
		mux.Handle(pattern, guard.Protect(pattern, h))
	}

	mux.HandleFunc("GET /healthz", HandleHealthz)

	// Authentication.
	mux.HandleFunc("POST /api/auth/login", authHandler.HandleLogin)
	mux.HandleFunc("POST /api/auth/register", authHandler.HandleRegister)
	protect("PUT /api/auth/update-password", authHandler.HandleUpdatePassword)

	// User management.
	protect("GET /api/users", userHandler.HandleList)
	protect("POST /api/users", userHandler.HandleCreate)
	protect("DELETE /api/users/{id}", userHandler.HandleDelete)
	protect("PUT /api/users/{id}/role", userHandler.HandleSetRole)
	protect("PUT /api/users/{id}/active", userHandler.HandleSetActive)
	protect("PUT /api/users/password", userHandler.HandleChangePassword)

	// Blog.
	mux.HandleFunc("GET /api/blog", postHandler.HandleList)
	mux.HandleFunc("GET /api/blog/{slug}", postHandler.HandleGetBySlug)
	protect("GET /api/blog/id/{id}", postHandler.HandleGetByID)
	protect("POST /api/blog", postHandler.HandleCreate)
	protect("PUT /api/blog/{id}", postHandler.HandleUpdate)
	protect("DELETE /api/blog/{id}", postHandler.HandleDelete)

	// Home content.
	mux.HandleFunc("GET /api/home", homeHandler.HandleGet)
	protect("PUT /api/home", homeHandler.HandleUpdate)

	// Admin dashboard.
	protect("GET /api/admin/dashboard", adminHandler.HandleDashboard)
}
