package repository

import (
	"context"

	"daurulang/internal/model"
)

// CatalogRepository defines data access for waste types and their categories.
type CatalogRepository interface {
	// ListItems retrieves every waste type with its category.
	ListItems(ctx context.Context) ([]model.CatalogItem, error)

	// GetItem retrieves a single waste type. Returns nil when it does not exist.
	GetItem(ctx context.Context, id string) (*model.CatalogItem, error)

	// ListCategories retrieves every category ordered by name.
	ListCategories(ctx context.Context) ([]model.Category, error)

	// UpsertCategories inserts or updates categories.
	UpsertCategories(ctx context.Context, categories []model.Category) error

	// UpsertItems inserts or updates waste types.
	UpsertItems(ctx context.Context, items []model.CatalogItem) error
}

// OpportunityRepository defines data access for business opportunities.
type OpportunityRepository interface {
	// List retrieves every business opportunity.
	List(ctx context.Context) ([]model.BusinessOpportunity, error)

	// GetByID retrieves a single opportunity. Returns nil when it does not exist.
	GetByID(ctx context.Context, id string) (*model.BusinessOpportunity, error)

	// Upsert inserts or updates opportunities.
	Upsert(ctx context.Context, opportunities []model.BusinessOpportunity) error
}

// TutorialRepository defines data access for tutorials and viewer interactions.
type TutorialRepository interface {
	// GetByID retrieves a tutorial with its rating summary and comments.
	// Returns nil when it does not exist.
	GetByID(ctx context.Context, id string) (*model.Tutorial, error)

	// GetInteraction retrieves the viewer's interaction flags for a tutorial.
	GetInteraction(ctx context.Context, tutorialID, userID string) (model.Interaction, error)

	// AddComment stores a comment. A rating on the comment also becomes the
	// viewer's rating of the tutorial.
	AddComment(ctx context.Context, comment *model.Comment) error

	// ToggleSaved flips the viewer's bookmark and returns the new state.
	ToggleSaved(ctx context.Context, tutorialID, userID string) (bool, error)

	// ToggleCompleted flips the viewer's completion flag and returns the new state.
	ToggleCompleted(ctx context.Context, tutorialID, userID string) (bool, error)

	// Rate records the viewer's rating of a tutorial.
	Rate(ctx context.Context, tutorialID, userID string, rating int) error

	// Create inserts a tutorial, or updates it when the ID already exists.
	Create(ctx context.Context, tutorial *model.Tutorial) error
}

// BuyerRepository defines data access for waste buyers.
type BuyerRepository interface {
	// List retrieves every waste buyer ordered by name.
	List(ctx context.Context) ([]model.WasteBuyer, error)

	// GetByID retrieves a single buyer. Returns nil when it does not exist.
	GetByID(ctx context.Context, id string) (*model.WasteBuyer, error)

	// UpdateLocation sets both coordinates of a buyer and returns the updated record.
	// Returns model.ErrBuyerNotFound when the buyer does not exist.
	UpdateLocation(ctx context.Context, id string, loc model.Location) (*model.WasteBuyer, error)

	// Upsert inserts or updates buyers.
	Upsert(ctx context.Context, buyers []model.WasteBuyer) error
}
