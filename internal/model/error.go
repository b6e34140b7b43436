package model

import (
	"sort"
	"strings"
)

// ErrorResponse represents a standardised error response.
type ErrorResponse struct {
	Error         string            `json:"error"`
	Message       string            `json:"message"`
	Fields        map[string]string `json:"fields,omitempty"`
	CorrelationID string            `json:"correlationId,omitempty"`
}

// Standard error codes for API responses
const (
	ErrCodeInvalidJSON      = "INVALID_JSON"
	ErrCodeValidation       = "VALIDATION_FAILED"
	ErrCodeAuthRequired     = "AUTH_REQUIRED"
	ErrCodeNotFound         = "NOT_FOUND"
	ErrCodeNoCoordinate     = "NO_COORDINATE"
	ErrCodeSessionNotFound  = "EDIT_SESSION_NOT_FOUND"
	ErrCodeUpstream         = "UPSTREAM_ERROR"
	ErrCodeUnauthorised     = "UNAUTHORIZED"
	ErrCodeInternalError    = "INTERNAL_ERROR"
	ErrCodeMethodNotAllowed = "METHOD_NOT_ALLOWED"
)

// Domain errors for business logic
type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Common domain errors
var (
	ErrAuthRequired        = NewDomainError(ErrCodeAuthRequired, "Please log in to continue")
	ErrNotFound            = NewDomainError(ErrCodeNotFound, "Resource not found")
	ErrCatalogItemNotFound = NewDomainError(ErrCodeNotFound, "Waste type not found")
	ErrOpportunityNotFound = NewDomainError(ErrCodeNotFound, "Business opportunity not found")
	ErrTutorialNotFound    = NewDomainError(ErrCodeNotFound, "Tutorial not found")
	ErrBuyerNotFound       = NewDomainError(ErrCodeNotFound, "Waste buyer not found")
	ErrNoCoordinate        = NewDomainError(ErrCodeNoCoordinate, "Select a location on the map before saving")
	ErrEditSessionNotFound = NewDomainError(ErrCodeSessionNotFound, "Map editing session not found")
)

// ValidationError carries field-scoped messages from form validation.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k + ": " + e.Fields[k]
	}
	return "validation failed: " + strings.Join(parts, "; ")
}
