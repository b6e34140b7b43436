package router

import (
	"context"
	"net/http"

	"daurulang/internal/handler"
	"daurulang/internal/middleware"
	"daurulang/internal/session"

	"github.com/rs/zerolog"
)

// Handlers groups the HTTP handlers served by the API.
type Handlers struct {
	Catalog     *handler.CatalogHandler
	Opportunity *handler.OpportunityHandler
	Tutorial    *handler.TutorialHandler
	Auth        *handler.AuthHandler
	Forum       *handler.ForumHandler
	Buyer       *handler.BuyerHandler

	// Ready reports whether backing stores are reachable. Nil means always ready.
	Ready func(ctx context.Context) error
}

// New creates a new HTTP router with all routes and middleware configured.
// Admin routes additionally require the X-API-Key header.
func New(h Handlers, sessions session.Provider, apiKey string, logger zerolog.Logger) http.Handler {
	mux := http.NewServeMux()

	// Health check endpoint (no authentication required)
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if h.Ready != nil {
			if err := h.Ready(r.Context()); err != nil {
				logger.Error().Err(err).Msg("health check failed")
				w.WriteHeader(http.StatusServiceUnavailable)
				w.Write([]byte(`{"status": "unavailable"}`))
				return
			}
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "healthy"}`))
	})

	// Catalogue, guide and opportunities
	mux.HandleFunc("GET /api/catalog", h.Catalog.List)
	mux.HandleFunc("GET /api/catalog/{id}", h.Catalog.GetByID)
	mux.HandleFunc("GET /api/guide", h.Catalog.Guide)
	mux.HandleFunc("GET /api/categories", h.Catalog.Categories)
	mux.HandleFunc("GET /api/opportunities", h.Opportunity.List)
	mux.HandleFunc("GET /api/opportunities/{id}", h.Opportunity.GetByID)

	// Tutorials
	mux.HandleFunc("GET /api/tutorials/{id}", h.Tutorial.GetByID)
	mux.HandleFunc("POST /api/tutorials", h.Tutorial.Create)
	mux.HandleFunc("POST /api/tutorials/{id}/comments", h.Tutorial.AddComment)
	mux.HandleFunc("POST /api/tutorials/{id}/save", h.Tutorial.ToggleSaved)
	mux.HandleFunc("POST /api/tutorials/{id}/complete", h.Tutorial.ToggleCompleted)
	mux.HandleFunc("POST /api/tutorials/{id}/rating", h.Tutorial.Rate)

	// Accounts and forum
	mux.HandleFunc("POST /api/auth/login", h.Auth.Login)
	mux.HandleFunc("POST /api/auth/register", h.Auth.Register)
	mux.HandleFunc("POST /api/auth/forgot-password", h.Auth.ForgotPassword)
	mux.HandleFunc("POST /api/auth/logout", h.Auth.Logout)
	mux.HandleFunc("POST /api/forum/topics", h.Forum.CreateTopic)

	// Admin: buyers and the map editor
	admin := http.NewServeMux()
	admin.HandleFunc("GET /api/admin/buyers", h.Buyer.List)
	admin.HandleFunc("PUT /api/admin/buyers/{id}/location", h.Buyer.SaveLocation)
	admin.HandleFunc("GET /api/admin/map/buyers", h.Buyer.MapBuyers)
	admin.HandleFunc("POST /api/admin/map/sessions", h.Buyer.StartSession)
	admin.HandleFunc("PUT /api/admin/map/sessions/{id}/marker", h.Buyer.PickMarker)
	admin.HandleFunc("POST /api/admin/map/sessions/{id}/save", h.Buyer.SaveSession)
	admin.HandleFunc("DELETE /api/admin/map/sessions/{id}", h.Buyer.EndSession)
	mux.Handle("/api/admin/", middleware.APIKeyAuth(apiKey, logger)(admin))

	// Apply middleware in order: RequestID -> Recovery -> Logging -> CORS -> Session
	var handler http.Handler = mux
	handler = middleware.Session(sessions, logger)(handler)
	handler = middleware.CORS(handler)
	handler = middleware.Logging(logger)(handler)
	handler = middleware.Recovery(logger)(handler)
	handler = middleware.RequestID(handler)

	return handler
}
