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

// catalogRepository implements the CatalogRepository interface using PostgreSQL.
type catalogRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewCatalogRepository creates a new PostgreSQL-backed catalogue repository.
func NewCatalogRepository(pool *pgxpool.Pool, logger zerolog.Logger) CatalogRepository {
	return &catalogRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "catalog").Logger(),
	}
}

const catalogItemColumns = `
	w.id, w.name, w.description, w.price_min, w.price_max, w.unit, c.id, c.name
`

func scanCatalogItem(row pgx.Row) (model.CatalogItem, error) {
	var it model.CatalogItem
	err := row.Scan(
		&it.ID, &it.Name, &it.Description,
		&it.Price.Min, &it.Price.Max, &it.Unit,
		&it.Category.ID, &it.Category.Name,
	)
	return it, err
}

// ListItems retrieves every waste type with its category.
func (r *catalogRepository) ListItems(ctx context.Context) ([]model.CatalogItem, error) {
	query := `SELECT ` + catalogItemColumns + `
		FROM waste_types w
		JOIN categories c ON c.id = w.category_id
		ORDER BY w.id
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query waste types")
		return nil, fmt.Errorf("failed to query waste types: %w", err)
	}
	defer rows.Close()

	items := []model.CatalogItem{}
	for rows.Next() {
		it, err := scanCatalogItem(rows)
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to scan waste type row")
			return nil, fmt.Errorf("failed to scan waste type: %w", err)
		}
		items = append(items, it)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating waste type rows")
		return nil, fmt.Errorf("error iterating waste types: %w", err)
	}

	return items, nil
}

// GetItem retrieves a single waste type by its ID.
func (r *catalogRepository) GetItem(ctx context.Context, id string) (*model.CatalogItem, error) {
	query := `SELECT ` + catalogItemColumns + `
		FROM waste_types w
		JOIN categories c ON c.id = w.category_id
		WHERE w.id = $1
	`

	it, err := scanCatalogItem(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug().Str("waste_type_id", id).Msg("waste type not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("waste_type_id", id).Msg("failed to query waste type")
		return nil, fmt.Errorf("failed to query waste type: %w", err)
	}

	return &it, nil
}

// ListCategories retrieves every category ordered by name.
func (r *catalogRepository) ListCategories(ctx context.Context) ([]model.Category, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, name FROM categories ORDER BY name`)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query categories")
		return nil, fmt.Errorf("failed to query categories: %w", err)
	}

	categories, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (model.Category, error) {
		var c model.Category
		err := row.Scan(&c.ID, &c.Name)
		return c, err
	})
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to scan category rows")
		return nil, fmt.Errorf("failed to scan categories: %w", err)
	}

	return categories, nil
}

// UpsertCategories inserts or updates categories in one batch.
func (r *catalogRepository) UpsertCategories(ctx context.Context, categories []model.Category) error {
	if len(categories) == 0 {
		return nil
	}

	query := `
		INSERT INTO categories (id, name) VALUES ($1, $2)
		ON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name
	`

	batch := &pgx.Batch{}
	for _, c := range categories {
		batch.Queue(query, c.ID, c.Name)
	}

	if err := r.pool.SendBatch(ctx, batch).Close(); err != nil {
		r.logger.Error().Err(err).Int("count", len(categories)).Msg("failed to upsert categories")
		return fmt.Errorf("failed to upsert categories: %w", err)
	}

	r.logger.Debug().Int("count", len(categories)).Msg("categories upserted")
	return nil
}

// UpsertItems inserts or updates waste types in one batch.
func (r *catalogRepository) UpsertItems(ctx context.Context, items []model.CatalogItem) error {
	if len(items) == 0 {
		return nil
	}

	query := `
		INSERT INTO waste_types (id, name, description, category_id, price_min, price_max, unit)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			description = EXCLUDED.description,
			category_id = EXCLUDED.category_id,
			price_min = EXCLUDED.price_min,
			price_max = EXCLUDED.price_max,
			unit = EXCLUDED.unit
	`

	batch := &pgx.Batch{}
	for _, it := range items {
		batch.Queue(query, it.ID, it.Name, it.Description, it.Category.ID, it.Price.Min, it.Price.Max, it.Unit)
	}

	if err := r.pool.SendBatch(ctx, batch).Close(); err != nil {
		r.logger.Error().Err(err).Int("count", len(items)).Msg("failed to upsert waste types")
		return fmt.Errorf("failed to upsert waste types: %w", err)
	}

	r.logger.Debug().Int("count", len(items)).Msg("waste types upserted")
	return nil
}
