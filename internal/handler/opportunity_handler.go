package handler

import (
	"net/http"

	"daurulang/internal/service"

	"github.com/rs/zerolog"
)

// OpportunityHandler handles business opportunity requests.
type OpportunityHandler struct {
	service service.OpportunityService
	logger  zerolog.Logger
}

// NewOpportunityHandler creates a new opportunity handler.
func NewOpportunityHandler(service service.OpportunityService, logger zerolog.Logger) *OpportunityHandler {
	return &OpportunityHandler{
		service: service,
		logger:  logger.With().Str("handler", "opportunity").Logger(),
	}
}

// List handles GET /api/opportunities.
func (h *OpportunityHandler) List(w http.ResponseWriter, r *http.Request) {
	page, err := h.service.List(r.Context(), filterFromQuery(r), pageFromQuery(r))
	if err != nil {
		writeServiceError(w, r, err, "failed to retrieve opportunities", h.logger)
		return
	}
	writeJSON(w, http.StatusOK, page)
}

// GetByID handles GET /api/opportunities/{id}.
func (h *OpportunityHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	opp, err := h.service.GetByID(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, r, err, "failed to retrieve opportunity", h.logger)
		return
	}
	writeJSON(w, http.StatusOK, opp)
}
