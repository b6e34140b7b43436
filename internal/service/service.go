package service

import (
	"context"

	"daurulang/internal/listing"
	"daurulang/internal/model"
)

// View names a list page that shares the catalog pipeline but has its own page size.
type View string

const (
	ViewCatalog View = "catalog"
	ViewGuide   View = "guide"
)

// CatalogService defines operations for browsing waste types.
type CatalogService interface {
	// List filters, sorts and paginates waste types for the given view.
	List(ctx context.Context, view View, filter model.FilterState, page int) (*listing.Page[model.CatalogItem], error)

	// GetByID retrieves a single waste type.
	GetByID(ctx context.Context, id string) (*model.CatalogItem, error)

	// Categories retrieves every category.
	Categories(ctx context.Context) ([]model.Category, error)
}

// OpportunityService defines operations for browsing business opportunities.
type OpportunityService interface {
	// List filters, sorts and paginates opportunities.
	List(ctx context.Context, filter model.FilterState, page int) (*listing.Page[model.BusinessOpportunity], error)

	// GetByID retrieves a single opportunity.
	GetByID(ctx context.Context, id string) (*model.BusinessOpportunity, error)
}

// TutorialService defines operations on tutorials and viewer interactions.
// A nil viewer means the request is anonymous.
type TutorialService interface {
	// GetByID retrieves a tutorial. For a signed-in viewer it carries their interaction.
	GetByID(ctx context.Context, id string, viewer *model.User) (*model.Tutorial, error)

	// AddComment posts a comment on behalf of viewer.
	AddComment(ctx context.Context, id string, viewer *model.User, req model.CommentRequest) (*model.Comment, error)

	// ToggleSaved flips the viewer's bookmark and returns the new interaction.
	ToggleSaved(ctx context.Context, id string, viewer *model.User) (*model.Interaction, error)

	// ToggleCompleted flips the viewer's completion flag and returns the new interaction.
	ToggleCompleted(ctx context.Context, id string, viewer *model.User) (*model.Interaction, error)

	// Rate records the viewer's rating and returns the new interaction.
	Rate(ctx context.Context, id string, viewer *model.User, req model.RatingRequest) (*model.Interaction, error)

	// Create submits a new tutorial authored by viewer.
	Create(ctx context.Context, viewer *model.User, req model.TutorialRequest) (*model.Tutorial, error)
}

// BuyerFilter narrows the buyer list by text and buyer type.
type BuyerFilter struct {
	Search string
	Type   string
}

// BuyerService defines operations for waste buyer administration.
type BuyerService interface {
	// List returns buyers matching filter, ordered by name.
	List(ctx context.Context, filter BuyerFilter) ([]model.WasteBuyer, error)

	// SaveLocation stores both coordinates of a buyer. Either coordinate
	// missing is rejected without touching storage.
	SaveLocation(ctx context.Context, id string, lat, lng *float64) (*model.WasteBuyer, error)
}

// AuthService defines account operations backed by the authentication service.
type AuthService interface {
	// Login verifies credentials and opens a session.
	Login(ctx context.Context, creds model.Credentials) (*model.Session, error)

	// Register creates an account. It does not open a session.
	Register(ctx context.Context, reg model.Registration) (*model.User, error)

	// ForgotPassword requests a password reset email.
	ForgotPassword(ctx context.Context, req model.ForgotPasswordRequest) (string, error)

	// Logout ends the session identified by token.
	Logout(token string)
}

// ForumService defines forum operations.
type ForumService interface {
	// CreateTopic validates and acknowledges a new topic.
	CreateTopic(ctx context.Context, viewer *model.User, req model.ForumPostRequest) (*model.ForumTopic, error)
}
