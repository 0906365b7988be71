package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/omercanga/cv-site/internal/domain"
	"github.com/omercanga/cv-site/internal/service"
)

// HomeHandler handles the public landing page content.
type HomeHandler struct {
	home *service.HomeService
}

// NewHomeHandler creates a new HomeHandler.
func NewHomeHandler(home *service.HomeService) *HomeHandler {
	return &HomeHandler{home: home}
}

// HandleGet returns the home page content, seeding defaults on first read.
// GET /api/home (public)
func (h *HomeHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	content, err := h.home.Get(r.Context())
	if err != nil {
		slog.Error("get home content", "error", err)
		writeError(w, http.StatusInternalServerError, "An unexpected error occurred.")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"home": toHomeDTO(content)})
}

// HandleUpdate overwrites the home page content.
// PUT /api/home
func (h *HomeHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Title      string `json:"title"`
		Subtitle   string `json:"subtitle"`
		About      string `json:"about"`
		Skills     string `json:"skills"`
		Experience string `json:"experience"`
		Education  string `json:"education"`
		Contact    string `json:"contact"`
	}
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	content, err := h.home.Update(r.Context(), service.HomeInput{
		Title:      req.Title,
		Subtitle:   req.Subtitle,
		About:      req.About,
		Skills:     req.Skills,
		Experience: req.Experience,
		Education:  req.Education,
		Contact:    req.Contact,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			writeError(w, http.StatusNotFound, "Home content not found.")
		case errors.Is(err, domain.ErrInvalidInput):
			writeError(w, http.StatusUnprocessableEntity, err.Error())
		default:
			slog.Error("update home content", "error", err)
			writeError(w, http.StatusInternalServerError, "An unexpected error occurred.")
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"home": toHomeDTO(content)})
}
