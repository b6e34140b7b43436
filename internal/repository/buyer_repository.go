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

// buyerRepository implements the BuyerRepository interface using PostgreSQL.
type buyerRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewBuyerRepository creates a new PostgreSQL-backed waste buyer repository.
func NewBuyerRepository(pool *pgxpool.Pool, logger zerolog.Logger) BuyerRepository {
	return &buyerRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "buyer").Logger(),
	}
}

const buyerColumns = `id, name, type, address, city, province, contact, latitude, longitude`

func scanBuyer(row pgx.Row) (model.WasteBuyer, error) {
	var (
		b        model.WasteBuyer
		lat, lng *float64
	)
	err := row.Scan(&b.ID, &b.Name, &b.Type, &b.Address, &b.City, &b.Province, &b.Contact, &lat, &lng)
	if err != nil {
		return b, err
	}
	// The table constraint keeps both columns NULL or both set.
	if lat != nil && lng != nil {
		b.Location = &model.Location{Latitude: *lat, Longitude: *lng}
	}
	return b, nil
}

// List retrieves every waste buyer ordered by name.
func (r *buyerRepository) List(ctx context.Context) ([]model.WasteBuyer, error) {
	query := `SELECT ` + buyerColumns + ` FROM waste_buyers ORDER BY name, id`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query waste buyers")
		return nil, fmt.Errorf("failed to query waste buyers: %w", err)
	}
	defer rows.Close()

	buyers := []model.WasteBuyer{}
	for rows.Next() {
		b, err := scanBuyer(rows)
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to scan waste buyer row")
			return nil, fmt.Errorf("failed to scan waste buyer: %w", err)
		}
		buyers = append(buyers, b)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating waste buyer rows")
		return nil, fmt.Errorf("error iterating waste buyers: %w", err)
	}

	return buyers, nil
}

// GetByID retrieves a single waste buyer by its ID.
func (r *buyerRepository) GetByID(ctx context.Context, id string) (*model.WasteBuyer, error) {
	query := `SELECT ` + buyerColumns + ` FROM waste_buyers WHERE id = $1`

	b, err := scanBuyer(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug().Str("buyer_id", id).Msg("waste buyer not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("buyer_id", id).Msg("failed to query waste buyer")
		return nil, fmt.Errorf("failed to query waste buyer: %w", err)
	}

	return &b, nil
}

// UpdateLocation sets both coordinates of a buyer in one statement.
func (r *buyerRepository) UpdateLocation(ctx context.Context, id string, loc model.Location) (*model.WasteBuyer, error) {
	query := `
		UPDATE waste_buyers SET latitude = $2, longitude = $3
		WHERE id = $1
		RETURNING ` + buyerColumns

	b, err := scanBuyer(r.pool.QueryRow(ctx, query, id, loc.Latitude, loc.Longitude))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Warn().Str("buyer_id", id).Msg("location update for unknown waste buyer")
			return nil, model.ErrBuyerNotFound
		}
		r.logger.Error().Err(err).Str("buyer_id", id).Msg("failed to update waste buyer location")
		return nil, fmt.Errorf("failed to update waste buyer location: %w", err)
	}

	r.logger.Debug().
		Str("buyer_id", id).
		Float64("latitude", loc.Latitude).
		Float64("longitude", loc.Longitude).
		Msg("waste buyer location updated")

	return &b, nil
}

// Upsert inserts or updates waste buyers in one batch. A buyer without a
// location keeps the coordinates already stored for it.
func (r *buyerRepository) Upsert(ctx context.Context, buyers []model.WasteBuyer) error {
	if len(buyers) == 0 {
		return nil
	}

	query := `
		INSERT INTO waste_buyers (` + buyerColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			type = EXCLUDED.type,
			address = EXCLUDED.address,
			city = EXCLUDED.city,
			province = EXCLUDED.province,
			contact = EXCLUDED.contact,
			latitude = COALESCE(EXCLUDED.latitude, waste_buyers.latitude),
			longitude = COALESCE(EXCLUDED.longitude, waste_buyers.longitude)
	`

	batch := &pgx.Batch{}
	for _, b := range buyers {
		var lat, lng *float64
		if b.Location != nil {
			lat, lng = &b.Location.Latitude, &b.Location.Longitude
		}
		batch.Queue(query, b.ID, b.Name, string(b.Type), b.Address, b.City, b.Province, b.Contact, lat, lng)
	}

	if err := r.pool.SendBatch(ctx, batch).Close(); err != nil {
		r.logger.Error().Err(err).Int("count", len(buyers)).Msg("failed to upsert waste buyers")
		return fmt.Errorf("failed to upsert waste buyers: %w", err)
	}

	r.logger.Debug().Int("count", len(buyers)).Msg("waste buyers upserted")
	return nil
}
