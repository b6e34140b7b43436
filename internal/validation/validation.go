// Package validation implements the pre-submission checks for the auth,
// tutorial, comment and forum forms. Checks never panic; failures come back
// as a *model.ValidationError keyed by form field.
package validation

import (
	"regexp"
	"strings"

	"daurulang/internal/model"
)

// MinPasswordLength is the shortest password accepted at registration.
const MinPasswordLength = 8

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Errors collects one message per field. The first message for a field wins.
type Errors map[string]string

// Add records msg for field unless the field already failed.
func (e Errors) Add(field, msg string) {
	if _, exists := e[field]; !exists {
		e[field] = msg
	}
}

// Err returns nil when no field failed.
func (e Errors) Err() error {
	if len(e) == 0 {
		return nil
	}
	fields := make(map[string]string, len(e))
	for k, v := range e {
		fields[k] = v
	}
	return &model.ValidationError{Fields: fields}
}

// Required fails field when value is blank after trimming.
func (e Errors) Required(field, value, msg string) bool {
	if strings.TrimSpace(value) == "" {
		e.Add(field, msg)
		return false
	}
	return true
}

// Email fails field unless value looks like text@text.text.
func (e Errors) Email(field, value string) {
	if !e.Required(field, value, "Email is required") {
		return
	}
	if !emailPattern.MatchString(strings.TrimSpace(value)) {
		e.Add(field, "Email format is invalid")
	}
}

// NonEmptyList fails field unless at least one entry is non-blank.
func (e Errors) NonEmptyList(field string, values []string, msg string) {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return
		}
	}
	e.Add(field, msg)
}

// Rating fails field unless value is between 1 and 5.
func (e Errors) Rating(field string, value int) {
	if value < 1 || value > 5 {
		e.Add(field, "Rating must be between 1 and 5")
	}
}

// Login validates the login form.
func Login(c model.Credentials) error {
	errs := Errors{}
	errs.Email("email", c.Email)
	if c.Password == "" {
		errs.Add("password", "Password is required")
	}
	return errs.Err()
}

// Register validates the registration form.
func Register(r model.Registration) error {
	errs := Errors{}
	errs.Required("name", r.Name, "Name is required")
	errs.Email("email", r.Email)

	switch {
	case r.Password == "":
		errs.Add("password", "Password is required")
	case len([]rune(r.Password)) < MinPasswordLength:
		errs.Add("password", "Password must be at least 8 characters")
	}

	if r.ConfirmPassword != r.Password {
		errs.Add("confirmPassword", "Passwords do not match")
	}
	return errs.Err()
}

// ForgotPassword validates the password reset form.
func ForgotPassword(r model.ForgotPasswordRequest) error {
	errs := Errors{}
	errs.Email("email", r.Email)
	return errs.Err()
}

// Tutorial validates a tutorial submission.
func Tutorial(r model.TutorialRequest) error {
	errs := Errors{}
	errs.Required("title", r.Title, "Title is required")
	errs.Required("description", r.Description, "Description is required")
	errs.NonEmptyList("materials", r.Materials, "Add at least one material")
	errs.NonEmptyList("steps", r.Steps, "Add at least one step")
	return errs.Err()
}

// Comment validates a tutorial comment.
func Comment(r model.CommentRequest) error {
	errs := Errors{}
	errs.Required("text", r.Text, "Comment cannot be empty")
	if r.Rating != nil {
		errs.Rating("rating", *r.Rating)
	}
	return errs.Err()
}

// Rating validates a standalone tutorial rating.
func Rating(r model.RatingRequest) error {
	errs := Errors{}
	errs.Rating("rating", r.Rating)
	return errs.Err()
}

// ForumPost validates a new forum topic.
func ForumPost(r model.ForumPostRequest) error {
	errs := Errors{}
	errs.Required("title", r.Title, "Title is required")
	errs.Required("body", r.Body, "Topic body is required")
	return errs.Err()
}
