package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Schema is the DDL for every table the service reads and writes.
const Schema = `
	CREATE TABLE IF NOT EXISTS categories (
		id   TEXT PRIMARY KEY,
		name TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS waste_types (
		id          TEXT PRIMARY KEY,
		name        TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		category_id TEXT NOT NULL REFERENCES categories(id),
		price_min   DOUBLE PRECISION NOT NULL DEFAULT 0,
		price_max   DOUBLE PRECISION NOT NULL DEFAULT 0,
		unit        TEXT NOT NULL DEFAULT 'kg'
	);
	CREATE INDEX IF NOT EXISTS idx_waste_types_category ON waste_types(category_id);

	CREATE TABLE IF NOT EXISTS business_opportunities (
		id             TEXT PRIMARY KEY,
		title          TEXT NOT NULL,
		description    TEXT NOT NULL DEFAULT '',
		category       TEXT NOT NULL DEFAULT '',
		investment     DOUBLE PRECISION,
		income_min     DOUBLE PRECISION NOT NULL DEFAULT 0,
		income_max     DOUBLE PRECISION NOT NULL DEFAULT 0,
		challenges     TEXT NOT NULL DEFAULT '',
		implementation TEXT NOT NULL DEFAULT '',
		media_url      TEXT NOT NULL DEFAULT ''
	);

	CREATE TABLE IF NOT EXISTS tutorials (
		id          TEXT PRIMARY KEY,
		title       TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		difficulty  TEXT NOT NULL DEFAULT 'mudah',
		duration    TEXT NOT NULL DEFAULT '',
		content     TEXT,
		media_url   TEXT NOT NULL DEFAULT '',
		created_by  TEXT NOT NULL DEFAULT '',
		created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);

	CREATE TABLE IF NOT EXISTS tutorial_comments (
		id          TEXT PRIMARY KEY,
		tutorial_id TEXT NOT NULL REFERENCES tutorials(id) ON DELETE CASCADE,
		user_id     TEXT NOT NULL,
		user_name   TEXT NOT NULL DEFAULT '',
		text        TEXT NOT NULL,
		rating      INTEGER CHECK (rating BETWEEN 1 AND 5),
		created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);
	CREATE INDEX IF NOT EXISTS idx_tutorial_comments_tutorial ON tutorial_comments(tutorial_id);

	CREATE TABLE IF NOT EXISTS tutorial_interactions (
		tutorial_id TEXT NOT NULL REFERENCES tutorials(id) ON DELETE CASCADE,
		user_id     TEXT NOT NULL,
		saved       BOOLEAN NOT NULL DEFAULT FALSE,
		completed   BOOLEAN NOT NULL DEFAULT FALSE,
		rating      INTEGER CHECK (rating BETWEEN 1 AND 5),
		PRIMARY KEY (tutorial_id, user_id)
	);

	CREATE TABLE IF NOT EXISTS waste_buyers (
		id        TEXT PRIMARY KEY,
		name      TEXT NOT NULL,
		type      TEXT NOT NULL CHECK (type IN ('bank-sampah', 'pengepul', 'pabrik')),
		address   TEXT NOT NULL DEFAULT '',
		city      TEXT NOT NULL DEFAULT '',
		province  TEXT NOT NULL DEFAULT '',
		contact   TEXT NOT NULL DEFAULT '',
		latitude  DOUBLE PRECISION,
		longitude DOUBLE PRECISION,
		CHECK ((latitude IS NULL) = (longitude IS NULL))
	);
`

// Migrate creates any missing tables and indexes.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, Schema); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	return nil
}
