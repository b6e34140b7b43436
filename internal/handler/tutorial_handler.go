package handler

import (
	"net/http"

	"daurulang/internal/model"
	"daurulang/internal/service"

	"github.com/rs/zerolog"
)

// TutorialHandler handles tutorial detail, submission and viewer interactions.
type TutorialHandler struct {
	service service.TutorialService
	logger  zerolog.Logger
}

// NewTutorialHandler creates a new tutorial handler.
func NewTutorialHandler(service service.TutorialService, logger zerolog.Logger) *TutorialHandler {
	return &TutorialHandler{
		service: service,
		logger:  logger.With().Str("handler", "tutorial").Logger(),
	}
}

// GetByID handles GET /api/tutorials/{id}.
func (h *TutorialHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	tutorial, err := h.service.GetByID(r.Context(), r.PathValue("id"), viewer(r))
	if err != nil {
		writeServiceError(w, r, err, "failed to retrieve tutorial", h.logger)
		return
	}
	writeJSON(w, http.StatusOK, tutorial)
}

// Create handles POST /api/tutorials.
func (h *TutorialHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req model.TutorialRequest
	if !decodeJSON(w, r, &req, h.logger) {
		return
	}

	tutorial, err := h.service.Create(r.Context(), viewer(r), req)
	if err != nil {
		writeServiceError(w, r, err, "failed to create tutorial", h.logger)
		return
	}
	writeJSON(w, http.StatusCreated, tutorial)
}

// AddComment handles POST /api/tutorials/{id}/comments.
func (h *TutorialHandler) AddComment(w http.ResponseWriter, r *http.Request) {
	var req model.CommentRequest
	if !decodeJSON(w, r, &req, h.logger) {
		return
	}

	comment, err := h.service.AddComment(r.Context(), r.PathValue("id"), viewer(r), req)
	if err != nil {
		writeServiceError(w, r, err, "failed to add comment", h.logger)
		return
	}
	writeJSON(w, http.StatusCreated, comment)
}

// ToggleSaved handles POST /api/tutorials/{id}/save.
func (h *TutorialHandler) ToggleSaved(w http.ResponseWriter, r *http.Request) {
	interaction, err := h.service.ToggleSaved(r.Context(), r.PathValue("id"), viewer(r))
	if err != nil {
		writeServiceError(w, r, err, "failed to update bookmark", h.logger)
		return
	}
	writeJSON(w, http.StatusOK, interaction)
}

// ToggleCompleted handles POST /api/tutorials/{id}/complete.
func (h *TutorialHandler) ToggleCompleted(w http.ResponseWriter, r *http.Request) {
	interaction, err := h.service.ToggleCompleted(r.Context(), r.PathValue("id"), viewer(r))
	if err != nil {
		writeServiceError(w, r, err, "failed to update progress", h.logger)
		return
	}
	writeJSON(w, http.StatusOK, interaction)
}

// Rate handles POST /api/tutorials/{id}/rating.
func (h *TutorialHandler) Rate(w http.ResponseWriter, r *http.Request) {
	var req model.RatingRequest
	if !decodeJSON(w, r, &req, h.logger) {
		return
	}

	interaction, err := h.service.Rate(r.Context(), r.PathValue("id"), viewer(r), req)
	if err != nil {
		writeServiceError(w, r, err, "failed to rate tutorial", h.logger)
		return
	}
	writeJSON(w, http.StatusOK, interaction)
}
