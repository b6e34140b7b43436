package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"daurulang/internal/listing"
	"daurulang/internal/model"
	"daurulang/internal/repository"

	"github.com/rs/zerolog"
)

// buyerService implements BuyerService.
type buyerService struct {
	buyerRepo repository.BuyerRepository
	logger    zerolog.Logger
}

// NewBuyerService creates a new waste buyer service.
func NewBuyerService(buyerRepo repository.BuyerRepository, logger zerolog.Logger) BuyerService {
	return &buyerService{
		buyerRepo: buyerRepo,
		logger:    logger.With().Str("service", "buyer").Logger(),
	}
}

// List returns buyers matching filter, ordered by name.
func (s *buyerService) List(ctx context.Context, filter BuyerFilter) ([]model.WasteBuyer, error) {
	buyers, err := s.buyerRepo.List(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list buyers")
		return nil, fmt.Errorf("failed to list buyers: %w", err)
	}

	return listing.Apply(buyers, model.FilterState{
		Search:   filter.Search,
		Category: strings.ToLower(strings.TrimSpace(filter.Type)),
		Sort:     model.SortNameAsc,
	}), nil
}

// SaveLocation stores both coordinates of a buyer.
func (s *buyerService) SaveLocation(ctx context.Context, id string, lat, lng *float64) (*model.WasteBuyer, error) {
	if lat == nil || lng == nil {
		s.logger.Debug().Str("buyer_id", id).Msg("location rejected, coordinate missing")
		return nil, model.ErrNoCoordinate
	}

	loc := model.Location{Latitude: *lat, Longitude: *lng}
	if !loc.Valid() {
		return nil, &model.ValidationError{Fields: map[string]string{
			"location": "Coordinates are out of range",
		}}
	}

	buyer, err := s.buyerRepo.UpdateLocation(ctx, id, loc)
	if err != nil {
		if errors.Is(err, model.ErrBuyerNotFound) {
			return nil, err
		}
		s.logger.Error().Err(err).Str("buyer_id", id).Msg("failed to save location")
		return nil, fmt.Errorf("failed to save location: %w", err)
	}

	s.logger.Info().
		Str("buyer_id", id).
		Float64("latitude", loc.Latitude).
		Float64("longitude", loc.Longitude).
		Msg("buyer location saved")

	return buyer, nil
}
