package service

import (
	"context"
	"fmt"

	"daurulang/internal/config"
	"daurulang/internal/listing"
	"daurulang/internal/model"
	"daurulang/internal/repository"

	"github.com/rs/zerolog"
)

// catalogService implements CatalogService.
type catalogService struct {
	catalogRepo repository.CatalogRepository
	pageSizes   config.ListingConfig
	logger      zerolog.Logger
}

// NewCatalogService creates a new catalog service.
func NewCatalogService(catalogRepo repository.CatalogRepository, pageSizes config.ListingConfig, logger zerolog.Logger) CatalogService {
	return &catalogService{
		catalogRepo: catalogRepo,
		pageSizes:   pageSizes,
		logger:      logger.With().Str("service", "catalog").Logger(),
	}
}

func (s *catalogService) pageSize(view View) int {
	if view == ViewGuide {
		return s.pageSizes.GuidePageSize
	}
	return s.pageSizes.CatalogPageSize
}

// List filters, sorts and paginates waste types for the given view.
func (s *catalogService) List(ctx context.Context, view View, filter model.FilterState, page int) (*listing.Page[model.CatalogItem], error) {
	items, err := s.catalogRepo.ListItems(ctx)
	if err != nil {
		s.logger.Error().Err(err).Str("view", string(view)).Msg("failed to list waste types")
		return nil, fmt.Errorf("failed to list waste types: %w", err)
	}

	filter = filter.Normalize()
	result := listing.Paginate(listing.Apply(items, filter), page, s.pageSize(view))

	s.logger.Debug().
		Str("view", string(view)).
		Str("category", filter.Category).
		Str("sort", string(filter.Sort)).
		Int("matched", result.TotalItems).
		Int("page", result.Page).
		Msg("listed waste types")

	return &result, nil
}

// GetByID retrieves a single waste type.
func (s *catalogService) GetByID(ctx context.Context, id string) (*model.CatalogItem, error) {
	if id == "" {
		return nil, model.ErrCatalogItemNotFound
	}

	item, err := s.catalogRepo.GetItem(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Str("item_id", id).Msg("failed to get waste type")
		return nil, fmt.Errorf("failed to get waste type: %w", err)
	}

	if item == nil {
		s.logger.Debug().Str("item_id", id).Msg("waste type not found")
		return nil, model.ErrCatalogItemNotFound
	}

	return item, nil
}

// Categories retrieves every category.
func (s *catalogService) Categories(ctx context.Context) ([]model.Category, error) {
	categories, err := s.catalogRepo.ListCategories(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list categories")
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return categories, nil
}
