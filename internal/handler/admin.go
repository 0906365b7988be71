package handler

import (
	"log/slog"
	"net/http"

	"github.com/omercanga/cv-site/internal/service"
)

// AdminHandler serves the admin dashboard summary.
type AdminHandler struct {
	posts *service.PostService
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(posts *service.PostService) *AdminHandler {
	return &AdminHandler{posts: posts}
}

// HandleDashboard returns the post count and the five most recent posts.
// GET /api/admin/dashboard
func (h *AdminHandler) HandleDashboard(w http.ResponseWriter, r *http.Request) {
	count, err := h.posts.Count(r.Context())
	if err != nil {
		slog.Error("count posts", "error", err)
		writeError(w, http.StatusInternalServerError, "An unexpected error occurred.")
		return
	}

	recent, err := h.posts.Recent(r.Context(), 5)
	if err != nil {
		slog.Error("list recent posts", "error", err)
		writeError(w, http.StatusInternalServerError, "An unexpected error occurred.")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"postCount":   count,
		"recentPosts": toPostDTOs(recent),
	})
}
