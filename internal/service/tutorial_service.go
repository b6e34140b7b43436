package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"daurulang/internal/model"
	"daurulang/internal/repository"
	"daurulang/internal/validation"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// tutorialService implements TutorialService.
type tutorialService struct {
	tutorialRepo repository.TutorialRepository
	now          func() time.Time
	logger       zerolog.Logger
}

// NewTutorialService creates a new tutorial service.
func NewTutorialService(tutorialRepo repository.TutorialRepository, logger zerolog.Logger) TutorialService {
	return &tutorialService{
		tutorialRepo: tutorialRepo,
		now:          time.Now,
		logger:       logger.With().Str("service", "tutorial").Logger(),
	}
}

// GetByID retrieves a tutorial. For a signed-in viewer it carries their interaction.
func (s *tutorialService) GetByID(ctx context.Context, id string, viewer *model.User) (*model.Tutorial, error) {
	tutorial, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	if viewer != nil {
		interaction, err := s.tutorialRepo.GetInteraction(ctx, id, viewer.ID)
		if err != nil {
			s.logger.Error().Err(err).Str("tutorial_id", id).Str("user_id", viewer.ID).Msg("failed to get interaction")
			return nil, fmt.Errorf("failed to get interaction: %w", err)
		}
		tutorial.Interaction = &interaction
	}

	return tutorial, nil
}

// AddComment posts a comment on behalf of viewer. Anonymous viewers and blank
// comments are rejected before any storage call.
func (s *tutorialService) AddComment(ctx context.Context, id string, viewer *model.User, req model.CommentRequest) (*model.Comment, error) {
	if viewer == nil {
		return nil, model.ErrAuthRequired
	}
	if err := validation.Comment(req); err != nil {
		return nil, err
	}
	if _, err := s.find(ctx, id); err != nil {
		return nil, err
	}

	comment := &model.Comment{
		ID:         uuid.NewString(),
		TutorialID: id,
		UserID:     viewer.ID,
		UserName:   viewer.Name,
		Text:       strings.TrimSpace(req.Text),
		Rating:     req.Rating,
		CreatedAt:  s.now().UTC(),
	}

	if err := s.tutorialRepo.AddComment(ctx, comment); err != nil {
		s.logger.Error().Err(err).Str("tutorial_id", id).Msg("failed to add comment")
		return nil, fmt.Errorf("failed to add comment: %w", err)
	}

	s.logger.Info().
		Str("tutorial_id", id).
		Str("comment_id", comment.ID).
		Bool("rated", comment.Rating != nil).
		Msg("comment added")

	return comment, nil
}

// ToggleSaved flips the viewer's bookmark and returns the new interaction.
func (s *tutorialService) ToggleSaved(ctx context.Context, id string, viewer *model.User) (*model.Interaction, error) {
	return s.toggle(ctx, id, viewer, "saved", s.tutorialRepo.ToggleSaved)
}

// ToggleCompleted flips the viewer's completion flag and returns the new interaction.
func (s *tutorialService) ToggleCompleted(ctx context.Context, id string, viewer *model.User) (*model.Interaction, error) {
	return s.toggle(ctx, id, viewer, "completed", s.tutorialRepo.ToggleCompleted)
}

func (s *tutorialService) toggle(
	ctx context.Context,
	id string,
	viewer *model.User,
	flag string,
	fn func(ctx context.Context, tutorialID, userID string) (bool, error),
) (*model.Interaction, error) {
	if viewer == nil {
		return nil, model.ErrAuthRequired
	}
	if _, err := s.find(ctx, id); err != nil {
		return nil, err
	}

	state, err := fn(ctx, id, viewer.ID)
	if err != nil {
		s.logger.Error().Err(err).Str("tutorial_id", id).Str("flag", flag).Msg("failed to toggle interaction")
		return nil, fmt.Errorf("failed to toggle %s: %w", flag, err)
	}

	s.logger.Debug().Str("tutorial_id", id).Str("flag", flag).Bool("state", state).Msg("interaction toggled")
	return s.interaction(ctx, id, viewer.ID)
}

// Rate records the viewer's rating and returns the new interaction.
func (s *tutorialService) Rate(ctx context.Context, id string, viewer *model.User, req model.RatingRequest) (*model.Interaction, error) {
	if viewer == nil {
		return nil, model.ErrAuthRequired
	}
	if err := validation.Rating(req); err != nil {
		return nil, err
	}
	if _, err := s.find(ctx, id); err != nil {
		return nil, err
	}

	if err := s.tutorialRepo.Rate(ctx, id, viewer.ID, req.Rating); err != nil {
		s.logger.Error().Err(err).Str("tutorial_id", id).Msg("failed to rate tutorial")
		return nil, fmt.Errorf("failed to rate tutorial: %w", err)
	}

	return s.interaction(ctx, id, viewer.ID)
}

// Create submits a new tutorial authored by viewer.
func (s *tutorialService) Create(ctx context.Context, viewer *model.User, req model.TutorialRequest) (*model.Tutorial, error) {
	if viewer == nil {
		return nil, model.ErrAuthRequired
	}
	if err := validation.Tutorial(req); err != nil {
		return nil, err
	}

	tutorial := &model.Tutorial{
		ID:          uuid.NewString(),
		Title:       strings.TrimSpace(req.Title),
		Description: strings.TrimSpace(req.Description),
		Difficulty:  model.ParseDifficulty(req.Difficulty),
		Duration:    strings.TrimSpace(req.Duration),
		Content:     model.NormalizeContent(req.Materials, req.Steps, req.Tips),
		MediaURL:    strings.TrimSpace(req.MediaURL),
		Comments:    []model.Comment{},
		CreatedBy:   viewer.ID,
		CreatedAt:   s.now().UTC(),
	}

	if err := s.tutorialRepo.Create(ctx, tutorial); err != nil {
		s.logger.Error().Err(err).Str("title", tutorial.Title).Msg("failed to create tutorial")
		return nil, fmt.Errorf("failed to create tutorial: %w", err)
	}

	s.logger.Info().
		Str("tutorial_id", tutorial.ID).
		Str("difficulty", string(tutorial.Difficulty)).
		Str("created_by", viewer.ID).
		Msg("tutorial created")

	return tutorial, nil
}

func (s *tutorialService) find(ctx context.Context, id string) (*model.Tutorial, error) {
	if id == "" {
		return nil, model.ErrTutorialNotFound
	}

	tutorial, err := s.tutorialRepo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Str("tutorial_id", id).Msg("failed to get tutorial")
		return nil, fmt.Errorf("failed to get tutorial: %w", err)
	}
	if tutorial == nil {
		s.logger.Debug().Str("tutorial_id", id).Msg("tutorial not found")
		return nil, model.ErrTutorialNotFound
	}
	return tutorial, nil
}

func (s *tutorialService) interaction(ctx context.Context, id, userID string) (*model.Interaction, error) {
	interaction, err := s.tutorialRepo.GetInteraction(ctx, id, userID)
	if err != nil {
		s.logger.Error().Err(err).Str("tutorial_id", id).Msg("failed to get interaction")
		return nil, fmt.Errorf("failed to get interaction: %w", err)
	}
	return &interaction, nil
}
