package repository

import (
	"context"
	"errors"
	"fmt"

	"daurulang/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// opportunityRepository implements the OpportunityRepository interface using PostgreSQL.
type opportunityRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewOpportunityRepository creates a new PostgreSQL-backed business opportunity repository.
func NewOpportunityRepository(pool *pgxpool.Pool, logger zerolog.Logger) OpportunityRepository {
	return &opportunityRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "opportunity").Logger(),
	}
}

const opportunityColumns = `
	id, title, description, category, investment, income_min, income_max,
	challenges, implementation, media_url
`

func scanOpportunity(row pgx.Row) (model.BusinessOpportunity, error) {
	var o model.BusinessOpportunity
	err := row.Scan(
		&o.ID, &o.Title, &o.Description, &o.Category, &o.Investment,
		&o.Income.Min, &o.Income.Max, &o.Challenges, &o.Implementation, &o.MediaURL,
	)
	return o, err
}

// List retrieves every business opportunity.
func (r *opportunityRepository) List(ctx context.Context) ([]model.BusinessOpportunity, error) {
	query := `SELECT ` + opportunityColumns + ` FROM business_opportunities ORDER BY id`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query business opportunities")
		return nil, fmt.Errorf("failed to query business opportunities: %w", err)
	}
	defer rows.Close()

	opportunities := []model.BusinessOpportunity{}
	for rows.Next() {
		o, err := scanOpportunity(rows)
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to scan business opportunity row")
			return nil, fmt.Errorf("failed to scan business opportunity: %w", err)
		}
		opportunities = append(opportunities, o)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating business opportunity rows")
		return nil, fmt.Errorf("error iterating business opportunities: %w", err)
	}

	return opportunities, nil
}

// GetByID retrieves a single business opportunity by its ID.
func (r *opportunityRepository) GetByID(ctx context.Context, id string) (*model.BusinessOpportunity, error) {
	query := `SELECT ` + opportunityColumns + ` FROM business_opportunities WHERE id = $1`

	o, err := scanOpportunity(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug().Str("opportunity_id", id).Msg("business opportunity not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("opportunity_id", id).Msg("failed to query business opportunity")
		return nil, fmt.Errorf("failed to query business opportunity: %w", err)
	}

	return &o, nil
}

// Upsert inserts or updates business opportunities in one batch.
func (r *opportunityRepository) Upsert(ctx context.Context, opportunities []model.BusinessOpportunity) error {
	if len(opportunities) == 0 {
		return nil
	}

	query := `
		INSERT INTO business_opportunities (` + opportunityColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (id) DO UPDATE SET
			title = EXCLUDED.title,
			description = EXCLUDED.description,
			category = EXCLUDED.category,
			investment = EXCLUDED.investment,
			income_min = EXCLUDED.income_min,
			income_max = EXCLUDED.income_max,
			challenges = EXCLUDED.challenges,
			implementation = EXCLUDED.implementation,
			media_url = EXCLUDED.media_url
	`

	batch := &pgx.Batch{}
	for _, o := range opportunities {
		batch.Queue(query,
			o.ID, o.Title, o.Description, o.Category, o.Investment,
			o.Income.Min, o.Income.Max, o.Challenges, o.Implementation, o.MediaURL,
		)
	}

	if err := r.pool.SendBatch(ctx, batch).Close(); err != nil {
		r.logger.Error().Err(err).Int("count", len(opportunities)).Msg("failed to upsert business opportunities")
		return fmt.Errorf("failed to upsert business opportunities: %w", err)
	}

	r.logger.Debug().Int("count", len(opportunities)).Msg("business opportunities upserted")
	return nil
}
