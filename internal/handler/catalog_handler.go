package handler

import (
	"net/http"

	"daurulang/internal/service"

	"github.com/rs/zerolog"
)

// CatalogHandler handles the waste type catalogue and the sorting guide.
type CatalogHandler struct {
	service service.CatalogService
	logger  zerolog.Logger
}

// NewCatalogHandler creates a new catalog handler.
func NewCatalogHandler(service service.CatalogService, logger zerolog.Logger) *CatalogHandler {
	return &CatalogHandler{
		service: service,
		logger:  logger.With().Str("handler", "catalog").Logger(),
	}
}

// List handles GET /api/catalog.
func (h *CatalogHandler) List(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, service.ViewCatalog)
}

// Guide handles GET /api/guide.
func (h *CatalogHandler) Guide(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, service.ViewGuide)
}

func (h *CatalogHandler) list(w http.ResponseWriter, r *http.Request, view service.View) {
	page, err := h.service.List(r.Context(), view, filterFromQuery(r), pageFromQuery(r))
	if err != nil {
		writeServiceError(w, r, err, "failed to retrieve waste types", h.logger)
		return
	}
	writeJSON(w, http.StatusOK, page)
}

// GetByID handles GET /api/catalog/{id}.
func (h *CatalogHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	item, err := h.service.GetByID(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, r, err, "failed to retrieve waste type", h.logger)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

// Categories handles GET /api/categories.
func (h *CatalogHandler) Categories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.service.Categories(r.Context())
	if err != nil {
		writeServiceError(w, r, err, "failed to retrieve categories", h.logger)
		return
	}
	writeJSON(w, http.StatusOK, categories)
}
