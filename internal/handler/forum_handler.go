package handler

import (
	"net/http"

	"daurulang/internal/model"
	"daurulang/internal/service"

	"github.com/rs/zerolog"
)

// ForumHandler handles forum topic submission.
type ForumHandler struct {
	service service.ForumService
	logger  zerolog.Logger
}

// NewForumHandler creates a new forum handler.
func NewForumHandler(service service.ForumService, logger zerolog.Logger) *ForumHandler {
	return &ForumHandler{
		service: service,
		logger:  logger.With().Str("handler", "forum").Logger(),
	}
}

// CreateTopic handles POST /api/forum/topics.
func (h *ForumHandler) CreateTopic(w http.ResponseWriter, r *http.Request) {
	var req model.ForumPostRequest
	if !decodeJSON(w, r, &req, h.logger) {
		return
	}

	topic, err := h.service.CreateTopic(r.Context(), viewer(r), req)
	if err != nil {
		writeServiceError(w, r, err, "failed to create topic", h.logger)
		return
	}
	writeJSON(w, http.StatusAccepted, topic)
}
