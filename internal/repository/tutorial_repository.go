package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"daurulang/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// tutorialRepository implements the TutorialRepository interface using PostgreSQL.
type tutorialRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewTutorialRepository creates a new PostgreSQL-backed tutorial repository.
func NewTutorialRepository(pool *pgxpool.Pool, logger zerolog.Logger) TutorialRepository {
	return &tutorialRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "tutorial").Logger(),
	}
}

// GetByID retrieves a tutorial with its rating summary and comments.
func (r *tutorialRepository) GetByID(ctx context.Context, id string) (*model.Tutorial, error) {
	query := `
		SELECT t.id, t.title, t.description, t.difficulty, t.duration, t.content,
		       t.media_url, t.created_by, t.created_at,
		       COALESCE(AVG(i.rating), 0)::DOUBLE PRECISION, COUNT(i.rating)
		FROM tutorials t
		LEFT JOIN tutorial_interactions i ON i.tutorial_id = t.id
		WHERE t.id = $1
		GROUP BY t.id
	`

	var (
		t          model.Tutorial
		difficulty string
		content    *string
	)
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&t.ID, &t.Title, &t.Description, &difficulty, &t.Duration, &content,
		&t.MediaURL, &t.CreatedBy, &t.CreatedAt,
		&t.AverageRating, &t.RatingCount,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug().Str("tutorial_id", id).Msg("tutorial not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("tutorial_id", id).Msg("failed to query tutorial")
		return nil, fmt.Errorf("failed to query tutorial: %w", err)
	}

	t.Difficulty = model.ParseDifficulty(difficulty)

	var raw []byte
	if content != nil {
		raw = []byte(*content)
	}
	if t.Content, err = model.ParseContent(raw); err != nil {
		r.logger.Error().Err(err).Str("tutorial_id", id).Msg("stored tutorial content is malformed")
		return nil, fmt.Errorf("failed to parse tutorial content: %w", err)
	}

	if t.Comments, err = r.listComments(ctx, id); err != nil {
		return nil, err
	}

	return &t, nil
}

// listComments retrieves the comments of a tutorial, newest first.
func (r *tutorialRepository) listComments(ctx context.Context, tutorialID string) ([]model.Comment, error) {
	query := `
		SELECT id, tutorial_id, user_id, user_name, text, rating, created_at
		FROM tutorial_comments
		WHERE tutorial_id = $1
		ORDER BY created_at DESC, id
	`

	rows, err := r.pool.Query(ctx, query, tutorialID)
	if err != nil {
		r.logger.Error().Err(err).Str("tutorial_id", tutorialID).Msg("failed to query comments")
		return nil, fmt.Errorf("failed to query comments: %w", err)
	}
	defer rows.Close()

	comments := []model.Comment{}
	for rows.Next() {
		var c model.Comment
		if err := rows.Scan(&c.ID, &c.TutorialID, &c.UserID, &c.UserName, &c.Text, &c.Rating, &c.CreatedAt); err != nil {
			r.logger.Error().Err(err).Msg("failed to scan comment row")
			return nil, fmt.Errorf("failed to scan comment: %w", err)
		}
		comments = append(comments, c)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating comment rows")
		return nil, fmt.Errorf("error iterating comments: %w", err)
	}

	return comments, nil
}

// GetInteraction retrieves the viewer's flags. A viewer who never interacted
// gets the zero Interaction.
func (r *tutorialRepository) GetInteraction(ctx context.Context, tutorialID, userID string) (model.Interaction, error) {
	query := `
		SELECT saved, completed, COALESCE(rating, 0)
		FROM tutorial_interactions
		WHERE tutorial_id = $1 AND user_id = $2
	`

	var in model.Interaction
	err := r.pool.QueryRow(ctx, query, tutorialID, userID).Scan(&in.Saved, &in.Completed, &in.Rating)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		r.logger.Error().Err(err).
			Str("tutorial_id", tutorialID).
			Str("user_id", userID).
			Msg("failed to query interaction")
		return model.Interaction{}, fmt.Errorf("failed to query interaction: %w", err)
	}

	return in, nil
}

// AddComment stores a comment and, when rated, the viewer's rating, in one transaction.
func (r *tutorialRepository) AddComment(ctx context.Context, c *model.Comment) (err error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to begin transaction")
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil {
				r.logger.Error().Err(rbErr).Msg("failed to rollback transaction")
			}
		}
	}()

	_, err = tx.Exec(ctx, `
		INSERT INTO tutorial_comments (id, tutorial_id, user_id, user_name, text, rating, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, c.ID, c.TutorialID, c.UserID, c.UserName, c.Text, c.Rating, c.CreatedAt)
	if err != nil {
		r.logger.Error().Err(err).Str("tutorial_id", c.TutorialID).Msg("failed to insert comment")
		return fmt.Errorf("failed to insert comment: %w", err)
	}

	if c.Rating != nil {
		if err = upsertRating(ctx, tx, c.TutorialID, c.UserID, *c.Rating); err != nil {
			r.logger.Error().Err(err).Str("tutorial_id", c.TutorialID).Msg("failed to record comment rating")
			return err
		}
	}

	if err = tx.Commit(ctx); err != nil {
		r.logger.Error().Err(err).Str("tutorial_id", c.TutorialID).Msg("failed to commit transaction")
		return fmt.Errorf("failed to commit comment: %w", err)
	}

	r.logger.Debug().
		Str("tutorial_id", c.TutorialID).
		Str("comment_id", c.ID).
		Msg("comment created successfully")

	return nil
}

// ToggleSaved flips the viewer's bookmark.
func (r *tutorialRepository) ToggleSaved(ctx context.Context, tutorialID, userID string) (bool, error) {
	return r.toggle(ctx, "saved", tutorialID, userID)
}

// ToggleCompleted flips the viewer's completion flag.
func (r *tutorialRepository) ToggleCompleted(ctx context.Context, tutorialID, userID string) (bool, error) {
	return r.toggle(ctx, "completed", tutorialID, userID)
}

// toggle flips a boolean interaction column. column is one of the fixed
// names above, never user input.
func (r *tutorialRepository) toggle(ctx context.Context, column, tutorialID, userID string) (bool, error) {
	query := fmt.Sprintf(`
		INSERT INTO tutorial_interactions (tutorial_id, user_id, %[1]s)
		VALUES ($1, $2, TRUE)
		ON CONFLICT (tutorial_id, user_id)
		DO UPDATE SET %[1]s = NOT tutorial_interactions.%[1]s
		RETURNING %[1]s
	`, column)

	var state bool
	if err := r.pool.QueryRow(ctx, query, tutorialID, userID).Scan(&state); err != nil {
		r.logger.Error().Err(err).
			Str("tutorial_id", tutorialID).
			Str("user_id", userID).
			Str("flag", column).
			Msg("failed to toggle interaction")
		return false, fmt.Errorf("failed to toggle %s: %w", column, err)
	}

	return state, nil
}

// Rate records the viewer's rating of a tutorial.
func (r *tutorialRepository) Rate(ctx context.Context, tutorialID, userID string, rating int) error {
	if err := upsertRating(ctx, r.pool, tutorialID, userID, rating); err != nil {
		r.logger.Error().Err(err).Str("tutorial_id", tutorialID).Msg("failed to rate tutorial")
		return err
	}
	return nil
}

// execer is satisfied by both the pool and a transaction.
type execer interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

func upsertRating(ctx context.Context, db execer, tutorialID, userID string, rating int) error {
	_, err := db.Exec(ctx, `
		INSERT INTO tutorial_interactions (tutorial_id, user_id, rating)
		VALUES ($1, $2, $3)
		ON CONFLICT (tutorial_id, user_id) DO UPDATE SET rating = EXCLUDED.rating
	`, tutorialID, userID, rating)
	if err != nil {
		return fmt.Errorf("failed to record rating: %w", err)
	}
	return nil
}

// Create inserts a tutorial, or updates it when the ID already exists.
// Content is stored as a JSON document.
func (r *tutorialRepository) Create(ctx context.Context, t *model.Tutorial) error {
	content, err := json.Marshal(t.Content)
	if err != nil {
		return fmt.Errorf("failed to encode tutorial content: %w", err)
	}

	query := `
		INSERT INTO tutorials (id, title, description, difficulty, duration, content, media_url, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (id) DO UPDATE SET
			title = EXCLUDED.title,
			description = EXCLUDED.description,
			difficulty = EXCLUDED.difficulty,
			duration = EXCLUDED.duration,
			content = EXCLUDED.content,
			media_url = EXCLUDED.media_url
	`

	_, err = r.pool.Exec(ctx, query,
		t.ID, t.Title, t.Description, string(t.Difficulty), t.Duration, string(content),
		t.MediaURL, t.CreatedBy, t.CreatedAt,
	)
	if err != nil {
		r.logger.Error().Err(err).Str("tutorial_id", t.ID).Msg("failed to create tutorial")
		return fmt.Errorf("failed to create tutorial: %w", err)
	}

	r.logger.Debug().Str("tutorial_id", t.ID).Msg("tutorial created successfully")
	return nil
}
