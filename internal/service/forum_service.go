package service

import (
	"context"
	"strings"
	"time"

	"daurulang/internal/model"
	"daurulang/internal/validation"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// forumService implements ForumService. Topics are acknowledged, not stored.
type forumService struct {
	now    func() time.Time
	logger zerolog.Logger
}

// NewForumService creates a new forum service.
func NewForumService(logger zerolog.Logger) ForumService {
	return &forumService{
		now:    time.Now,
		logger: logger.With().Str("service", "forum").Logger(),
	}
}

// CreateTopic validates and acknowledges a new topic.
func (s *forumService) CreateTopic(_ context.Context, viewer *model.User, req model.ForumPostRequest) (*model.ForumTopic, error) {
	if viewer == nil {
		return nil, model.ErrAuthRequired
	}
	if err := validation.ForumPost(req); err != nil {
		return nil, err
	}

	topic := &model.ForumTopic{
		ID:        uuid.NewString(),
		Title:     strings.TrimSpace(req.Title),
		Body:      strings.TrimSpace(req.Body),
		AuthorID:  viewer.ID,
		CreatedAt: s.now().UTC(),
	}

	s.logger.Info().Str("topic_id", topic.ID).Str("author_id", viewer.ID).Msg("forum topic accepted")
	return topic, nil
}
