// Package authclient talks to the external authentication service.
package authclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"daurulang/internal/model"

	"github.com/rs/zerolog"
)

// Client defines the authentication service operations.
type Client interface {
	// Login verifies credentials and returns the account.
	Login(ctx context.Context, creds model.Credentials) (*model.User, error)

	// Register creates an account and returns it.
	Register(ctx context.Context, reg model.Registration) (*model.User, error)

	// ForgotPassword asks the service to send a reset email. The returned
	// string is the service's confirmation message, possibly empty.
	ForgotPassword(ctx context.Context, email string) (string, error)
}

// APIError is a non-2xx answer from the authentication service.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("auth service returned status %d", e.Status)
	}
	return fmt.Sprintf("auth service returned status %d: %s", e.Status, e.Message)
}

// envelope is the body shape of every auth service response.
type envelope struct {
	User    *model.User `json:"user,omitempty"`
	Message string      `json:"message,omitempty"`
}

// httpClient implements Client over JSON/HTTP.
type httpClient struct {
	baseURL string
	http    *http.Client
	logger  zerolog.Logger
}

// New creates a client for the service at baseURL.
func New(baseURL string, timeout time.Duration, logger zerolog.Logger) Client {
	return &httpClient{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
		logger:  logger.With().Str("component", "auth-client").Logger(),
	}
}

// Login verifies credentials and returns the account.
func (c *httpClient) Login(ctx context.Context, creds model.Credentials) (*model.User, error) {
	var out envelope
	if err := c.post(ctx, "/auth/login", creds, &out); err != nil {
		return nil, err
	}
	if out.User == nil {
		return nil, fmt.Errorf("auth service login response has no user")
	}
	return out.User, nil
}

// Register creates an account and returns it.
func (c *httpClient) Register(ctx context.Context, reg model.Registration) (*model.User, error) {
	var out envelope
	if err := c.post(ctx, "/auth/register", reg, &out); err != nil {
		return nil, err
	}
	if out.User == nil {
		return nil, fmt.Errorf("auth service register response has no user")
	}
	return out.User, nil
}

// ForgotPassword asks the service to send a reset email.
func (c *httpClient) ForgotPassword(ctx context.Context, email string) (string, error) {
	var out envelope
	if err := c.post(ctx, "/auth/forgot-password", model.ForgotPasswordRequest{Email: email}, &out); err != nil {
		return "", err
	}
	return out.Message, nil
}

func (c *httpClient) post(ctx context.Context, path string, in, out any) error {
	body, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		c.logger.Error().Err(err).Str("path", path).Msg("auth service request failed")
		return fmt.Errorf("auth service request failed: %w", err)
	}
	defer resp.Body.Close()

	c.logger.Debug().
		Str("path", path).
		Int("status", resp.StatusCode).
		Dur("duration", time.Since(start)).
		Msg("auth service responded")

	// Responses are capped at 1 MiB.
	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return fmt.Errorf("failed to read auth service response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{Status: resp.StatusCode}
		var e envelope
		if json.Unmarshal(raw, &e) == nil {
			apiErr.Message = e.Message
		}
		c.logger.Warn().
			Str("path", path).
			Int("status", resp.StatusCode).
			Str("message", apiErr.Message).
			Msg("auth service rejected request")
		return apiErr
	}

	if len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("failed to decode auth service response: %w", err)
	}
	return nil
}

// AsAPIError unwraps err into an *APIError.
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	ok := errors.As(err, &apiErr)
	return apiErr, ok
}
