package handler

import (
	"context"
	"net/http"
	"strings"

	"daurulang/internal/geo"
	"daurulang/internal/model"
	"daurulang/internal/service"

	"github.com/rs/zerolog"
)

// BuyerHandler handles waste buyer administration and the map editor.
type BuyerHandler struct {
	service service.BuyerService
	editor  *geo.Editor
	logger  zerolog.Logger
}

// NewBuyerHandler creates a new buyer handler.
func NewBuyerHandler(service service.BuyerService, editor *geo.Editor, logger zerolog.Logger) *BuyerHandler {
	return &BuyerHandler{
		service: service,
		editor:  editor,
		logger:  logger.With().Str("handler", "buyer").Logger(),
	}
}

type saveResponse struct {
	Buyer  *model.WasteBuyer  `json:"buyer"`
	Buyers []model.WasteBuyer `json:"buyers"`
}

// List handles GET /api/admin/buyers.
func (h *BuyerHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	buyers, err := h.service.List(r.Context(), service.BuyerFilter{
		Search: q.Get("search"),
		Type:   q.Get("type"),
	})
	if err != nil {
		writeServiceError(w, r, err, "failed to retrieve buyers", h.logger)
		return
	}
	writeJSON(w, http.StatusOK, buyers)
}

// SaveLocation handles PUT /api/admin/buyers/{id}/location.
func (h *BuyerHandler) SaveLocation(w http.ResponseWriter, r *http.Request) {
	var req model.LocationRequest
	if !decodeJSON(w, r, &req, h.logger) {
		return
	}

	buyer, err := h.service.SaveLocation(r.Context(), r.PathValue("id"), req.Latitude, req.Longitude)
	if err != nil {
		writeServiceError(w, r, err, "failed to save location", h.logger)
		return
	}
	h.editor.Merge(*buyer)
	writeJSON(w, http.StatusOK, buyer)
}

// MapBuyers handles GET /api/admin/map/buyers. The list is loaded on first use
// or when refresh=true, and afterwards reflects saved markers.
func (h *BuyerHandler) MapBuyers(w http.ResponseWriter, r *http.Request) {
	buyers, err := h.mapBuyers(r.Context(), r.URL.Query().Get("refresh") == "true")
	if err != nil {
		writeServiceError(w, r, err, "failed to retrieve buyers", h.logger)
		return
	}
	writeJSON(w, http.StatusOK, buyers)
}

// mapBuyers returns the editor's buyer list, loading it when empty or when
// refresh is set.
func (h *BuyerHandler) mapBuyers(ctx context.Context, refresh bool) ([]model.WasteBuyer, error) {
	buyers := h.editor.Buyers()
	if len(buyers) > 0 && !refresh {
		return buyers, nil
	}
	loaded, err := h.service.List(ctx, service.BuyerFilter{})
	if err != nil {
		return nil, err
	}
	h.editor.SetBuyers(loaded)
	return h.editor.Buyers(), nil
}

// StartSession handles POST /api/admin/map/sessions.
func (h *BuyerHandler) StartSession(w http.ResponseWriter, r *http.Request) {
	var req model.EditSessionRequest
	if !decodeJSON(w, r, &req, h.logger) {
		return
	}

	buyerID := strings.TrimSpace(req.BuyerID)
	if buyerID == "" {
		writeServiceError(w, r, &model.ValidationError{Fields: map[string]string{
			"buyerId": "Select a buyer to place on the map",
		}}, "", h.logger)
		return
	}

	if _, err := h.mapBuyers(r.Context(), false); err != nil {
		writeServiceError(w, r, err, "failed to retrieve buyers", h.logger)
		return
	}
	sess, err := h.editor.Start(buyerID)
	if err != nil {
		writeServiceError(w, r, err, "failed to start session", h.logger)
		return
	}
	writeJSON(w, http.StatusCreated, sess)
}

// PickMarker handles PUT /api/admin/map/sessions/{id}/marker.
func (h *BuyerHandler) PickMarker(w http.ResponseWriter, r *http.Request) {
	var req model.LocationRequest
	if !decodeJSON(w, r, &req, h.logger) {
		return
	}
	if req.Latitude == nil || req.Longitude == nil {
		writeServiceError(w, r, model.ErrNoCoordinate, "", h.logger)
		return
	}

	sess, err := h.editor.Pick(r.PathValue("id"), model.Location{
		Latitude:  *req.Latitude,
		Longitude: *req.Longitude,
	})
	if err != nil {
		writeServiceError(w, r, err, "failed to place marker", h.logger)
		return
	}
	writeJSON(w, http.StatusOK, sess)
}

// SaveSession handles POST /api/admin/map/sessions/{id}/save.
func (h *BuyerHandler) SaveSession(w http.ResponseWriter, r *http.Request) {
	buyer, err := h.editor.Save(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, r, err, "failed to save location", h.logger)
		return
	}
	writeJSON(w, http.StatusOK, saveResponse{Buyer: buyer, Buyers: h.editor.Buyers()})
}

// EndSession handles DELETE /api/admin/map/sessions/{id}.
func (h *BuyerHandler) EndSession(w http.ResponseWriter, r *http.Request) {
	if err := h.editor.End(r.PathValue("id")); err != nil {
		writeServiceError(w, r, err, "failed to end session", h.logger)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
