// Command dbcheck verifies the configured PostgreSQL server is reachable and
// lists its databases.
package main

import (
	"context"
	"fmt"
	"os"

	"daurulang/internal/config"

	"github.com/jackc/pgx/v5"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Unable to load configuration: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()

	// The maintenance database exists even before ours is created.
	maintenance := cfg.Database
	maintenance.Database = "postgres"
	if err := listDatabases(ctx, maintenance.ConnectionString()); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}

	conn, err := pgx.Connect(ctx, cfg.Database.ConnectionString())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Unable to connect to database %s: %v\n", cfg.Database.Database, err)
		os.Exit(1)
	}
	defer conn.Close(ctx)

	var tables int
	err = conn.QueryRow(ctx, `
		SELECT COUNT(*) FROM information_schema.tables
		WHERE table_schema = 'public'
	`).Scan(&tables)
	if err != nil {
		fmt.Fprintf(os.Stderr, "QueryRow failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("\nSuccessfully connected to database: %s (%d tables)\n", cfg.Database.Database, tables)
	if tables == 0 {
		fmt.Println("Run `go run ./cmd/seed migrate` to create the schema.")
	}
}

func listDatabases(ctx context.Context, connString string) error {
	conn, err := pgx.Connect(ctx, connString)
	if err != nil {
		return fmt.Errorf("unable to connect to postgres database: %w", err)
	}
	defer conn.Close(ctx)

	rows, err := conn.Query(ctx, "SELECT datname FROM pg_database WHERE datistemplate = false ORDER BY datname")
	if err != nil {
		return fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()

	fmt.Println("Available databases:")
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return fmt.Errorf("scan failed: %w", err)
		}
		fmt.Printf("  - %s\n", name)
	}
	return rows.Err()
}
