package handler

import (
	"net/http"

	"daurulang/internal/middleware"
	"daurulang/internal/model"
	"daurulang/internal/service"

	"github.com/rs/zerolog"
)

// AuthHandler handles login, registration, password reset and logout.
type AuthHandler struct {
	service service.AuthService
	logger  zerolog.Logger
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(service service.AuthService, logger zerolog.Logger) *AuthHandler {
	return &AuthHandler{
		service: service,
		logger:  logger.With().Str("handler", "auth").Logger(),
	}
}

type messageResponse struct {
	Message string `json:"message"`
}

// Login handles POST /api/auth/login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req model.Credentials
	if !decodeJSON(w, r, &req, h.logger) {
		return
	}

	sess, err := h.service.Login(r.Context(), req)
	if err != nil {
		writeServiceError(w, r, err, "login failed", h.logger)
		return
	}
	writeJSON(w, http.StatusOK, sess)
}

// Register handles POST /api/auth/register.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req model.Registration
	if !decodeJSON(w, r, &req, h.logger) {
		return
	}

	user, err := h.service.Register(r.Context(), req)
	if err != nil {
		writeServiceError(w, r, err, "registration failed", h.logger)
		return
	}
	writeJSON(w, http.StatusCreated, user)
}

// ForgotPassword handles POST /api/auth/forgot-password.
func (h *AuthHandler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req model.ForgotPasswordRequest
	if !decodeJSON(w, r, &req, h.logger) {
		return
	}

	msg, err := h.service.ForgotPassword(r.Context(), req)
	if err != nil {
		writeServiceError(w, r, err, "password reset failed", h.logger)
		return
	}
	if msg == "" {
		msg = "If the email is registered, a reset link has been sent"
	}
	writeJSON(w, http.StatusOK, messageResponse{Message: msg})
}

// Logout handles POST /api/auth/logout.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if token := middleware.BearerToken(r); token != "" {
		h.service.Logout(token)
	}
	w.WriteHeader(http.StatusNoContent)
}
