package service

import (
	"context"
	"fmt"

	"daurulang/internal/listing"
	"daurulang/internal/model"
	"daurulang/internal/repository"

	"github.com/rs/zerolog"
)

// opportunityService implements OpportunityService.
type opportunityService struct {
	opportunityRepo repository.OpportunityRepository
	pageSize        int
	logger          zerolog.Logger
}

// NewOpportunityService creates a new business opportunity service.
func NewOpportunityService(opportunityRepo repository.OpportunityRepository, pageSize int, logger zerolog.Logger) OpportunityService {
	return &opportunityService{
		opportunityRepo: opportunityRepo,
		pageSize:        pageSize,
		logger:          logger.With().Str("service", "opportunity").Logger(),
	}
}

// List filters, sorts and paginates opportunities.
func (s *opportunityService) List(ctx context.Context, filter model.FilterState, page int) (*listing.Page[model.BusinessOpportunity], error) {
	opportunities, err := s.opportunityRepo.List(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list opportunities")
		return nil, fmt.Errorf("failed to list opportunities: %w", err)
	}

	result := listing.Paginate(listing.Apply(opportunities, filter), page, s.pageSize)

	s.logger.Debug().
		Int("matched", result.TotalItems).
		Int("page", result.Page).
		Msg("listed opportunities")

	return &result, nil
}

// GetByID retrieves a single opportunity.
func (s *opportunityService) GetByID(ctx context.Context, id string) (*model.BusinessOpportunity, error) {
	if id == "" {
		s.logger.Warn().Msg("opportunity ID is empty")
		return nil, model.ErrOpportunityNotFound
	}

	opp, err := s.opportunityRepo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Str("opportunity_id", id).Msg("failed to get opportunity")
		return nil, fmt.Errorf("failed to get opportunity: %w", err)
	}

	if opp == nil {
		s.logger.Debug().Str("opportunity_id", id).Msg("opportunity not found")
		return nil, model.ErrOpportunityNotFound
	}

	return opp, nil
}
