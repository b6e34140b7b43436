// Command seed creates the schema and loads reference data into PostgreSQL.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"daurulang/internal/config"
	"daurulang/internal/database"
	"daurulang/internal/repository"
	"daurulang/internal/seed"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// app carries what every subcommand needs once configuration is loaded.
type app struct {
	cfg    *config.Config
	logger zerolog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:           "seed",
		Short:         "Manage daurulang reference data",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}
			a.cfg = cfg
			a.logger = config.NewLogger(cfg.Logger, "daurulang-seed")
			return nil
		},
	}

	root.AddCommand(a.migrateCmd(), a.loadCmd())
	return root
}

func (a *app) migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create any missing tables",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			pool, err := database.NewPool(cmd.Context(), a.cfg.Database, a.logger)
			if err != nil {
				return fmt.Errorf("failed to initialize database: %w", err)
			}
			defer pool.Close()

			if err := database.Migrate(cmd.Context(), pool); err != nil {
				return err
			}
			a.logger.Info().Msg("schema is up to date")
			return nil
		},
	}
}

func (a *app) loadCmd() *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "load [file...]",
		Short: "Load seed files (JSON lines or YAML, optionally gzipped)",
		Long: `Loads reference data files and upserts them. Files are read from S3 when
S3_ENABLED is set, falling back to the local file system. Without arguments
the files listed in SEED_FILES are used.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			files := args
			if len(files) == 0 {
				files = a.cfg.Seed.Files
			}
			ctx := cmd.Context()

			loader, err := a.newLoader(ctx)
			if err != nil {
				return err
			}

			if dryRun {
				ds, err := seed.NewSeeder(loader, seed.Repositories{}, a.logger).Load(ctx, files)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%d records valid in %d files\n", ds.Len(), len(files))
				return nil
			}

			pool, err := database.NewPool(ctx, a.cfg.Database, a.logger)
			if err != nil {
				return fmt.Errorf("failed to initialize database: %w", err)
			}
			defer pool.Close()

			if err := database.Migrate(ctx, pool); err != nil {
				return err
			}

			sum, err := seed.NewSeeder(loader, repositories(pool, a.logger), a.logger).Run(ctx, files)
			if err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(sum)
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Parse and validate the files without writing to the database")
	return cmd
}

func (a *app) newLoader(ctx context.Context) (seed.Loader, error) {
	fileLoader := seed.NewFileLoader(a.logger)
	if !a.cfg.S3.Enabled {
		a.logger.Info().Msg("using local file system for seed files (S3 disabled)")
		return fileLoader, nil
	}

	s3Loader, err := seed.NewS3Loader(ctx, a.cfg.S3.Bucket, a.cfg.S3.Region, a.logger)
	if err != nil {
		a.logger.Warn().
			Err(err).
			Msg("failed to initialise S3 loader, falling back to local file system only")
		return fileLoader, nil
	}
	return seed.NewFallbackLoader(s3Loader, fileLoader, a.cfg.S3.Prefix, true, a.logger), nil
}

func repositories(pool *pgxpool.Pool, logger zerolog.Logger) seed.Repositories {
	return seed.Repositories{
		Catalog:       repository.NewCatalogRepository(pool, logger),
		Opportunities: repository.NewOpportunityRepository(pool, logger),
		Tutorials:     repository.NewTutorialRepository(pool, logger),
		Buyers:        repository.NewBuyerRepository(pool, logger),
	}
}
