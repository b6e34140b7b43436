package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"daurulang/internal/authclient"
	"daurulang/internal/middleware"
	"daurulang/internal/model"
	"daurulang/internal/session"

	"github.com/rs/zerolog"
)

// maxBodyBytes caps JSON request bodies.
const maxBodyBytes = 1 << 20

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	// The status line is already sent, so an encoding failure cannot be reported.
	_ = json.NewEncoder(w).Encode(data)
}

// writeError writes an error response with the given status code, code and message.
func writeError(w http.ResponseWriter, r *http.Request, status int, code, message string, logger zerolog.Logger) {
	evt := logger.Warn()
	if status >= http.StatusInternalServerError {
		evt = logger.Error()
	}
	evt.Str("code", code).Int("status", status).Str("path", r.URL.Path).Msg(message)

	writeJSON(w, status, model.ErrorResponse{
		Error:         code,
		Message:       message,
		CorrelationID: middleware.RequestIDFromContext(r.Context()),
	})
}

// writeServiceError maps a service error onto an HTTP response. fallback is
// the message shown for unexpected failures.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error, fallback string, logger zerolog.Logger) {
	var (
		verr *model.ValidationError
		derr *model.DomainError
	)
	apiErr, upstream := authclient.AsAPIError(err)

	switch {
	case errors.As(err, &verr):
		logger.Debug().Str("path", r.URL.Path).Interface("fields", verr.Fields).Msg("validation failed")
		writeJSON(w, http.StatusBadRequest, model.ErrorResponse{
			Error:         model.ErrCodeValidation,
			Message:       "Please correct the highlighted fields",
			Fields:        verr.Fields,
			CorrelationID: middleware.RequestIDFromContext(r.Context()),
		})

	case upstream:
		status := apiErr.Status
		if status < 400 || status >= 500 {
			status = http.StatusBadGateway
		}
		message := apiErr.Message
		if message == "" {
			message = fallback
		}
		logger.Warn().Err(err).Msg("authentication service rejected request")
		writeError(w, r, status, model.ErrCodeUpstream, message, logger)

	case errors.As(err, &derr):
		writeError(w, r, domainStatus(derr.Code), derr.Code, derr.Message, logger)

	default:
		logger.Error().Err(err).Str("path", r.URL.Path).Msg("request failed")
		writeError(w, r, http.StatusInternalServerError, model.ErrCodeInternalError, fallback, logger)
	}
}

func domainStatus(code string) int {
	switch code {
	case model.ErrCodeAuthRequired:
		return http.StatusUnauthorized
	case model.ErrCodeNotFound, model.ErrCodeSessionNotFound:
		return http.StatusNotFound
	case model.ErrCodeNoCoordinate, model.ErrCodeValidation:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// decodeJSON reads a JSON request body into v, writing a 400 on failure.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any, logger zerolog.Logger) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		logger.Debug().Err(err).Msg("invalid request body")
		writeError(w, r, http.StatusBadRequest, model.ErrCodeInvalidJSON, "invalid request body", logger)
		return false
	}
	return true
}

// viewer returns the signed-in user, or nil for anonymous requests.
func viewer(r *http.Request) *model.User {
	user, ok := session.UserFromContext(r.Context())
	if !ok {
		return nil
	}
	return &user
}

// filterFromQuery reads search, category and sort from the query string.
func filterFromQuery(r *http.Request) model.FilterState {
	q := r.URL.Query()
	return model.FilterState{
		Search:   q.Get("search"),
		Category: q.Get("category"),
		Sort:     model.SortKey(q.Get("sort")),
	}.Normalize()
}

// pageFromQuery reads the 1-indexed page number. Missing or malformed values mean page 1.
func pageFromQuery(r *http.Request) int {
	page, err := strconv.Atoi(strings.TrimSpace(r.URL.Query().Get("page")))
	if err != nil || page < 1 {
		return 1
	}
	return page
}
