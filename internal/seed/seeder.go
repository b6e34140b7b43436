package seed

import (
	"context"
	"fmt"
	"time"

	"daurulang/internal/repository"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// maxConcurrentLoads bounds how many seed files are read at once.
const maxConcurrentLoads = 4

// Repositories are the stores a dataset is written to.
type Repositories struct {
	Catalog       repository.CatalogRepository
	Opportunities repository.OpportunityRepository
	Tutorials     repository.TutorialRepository
	Buyers        repository.BuyerRepository
}

// Summary counts what a seed run wrote.
type Summary struct {
	Categories    int `json:"categories"`
	WasteTypes    int `json:"wasteTypes"`
	Opportunities int `json:"opportunities"`
	Tutorials     int `json:"tutorials"`
	Buyers        int `json:"buyers"`
}

// Seeder loads seed files and upserts them.
type Seeder struct {
	loader Loader
	repos  Repositories
	now    func() time.Time
	logger zerolog.Logger
}

// NewSeeder creates a seeder reading through loader.
func NewSeeder(loader Loader, repos Repositories, logger zerolog.Logger) *Seeder {
	return &Seeder{
		loader: loader,
		repos:  repos,
		now:    time.Now,
		logger: logger.With().Str("component", "seeder").Logger(),
	}
}

// Load reads files concurrently and merges them in the order given. The first
// failure cancels the remaining loads.
func (s *Seeder) Load(ctx context.Context, files []string) (*Dataset, error) {
	results := make([]*Dataset, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentLoads)
	for i, file := range files {
		g.Go(func() error {
			ds, err := s.loader.Load(gctx, file)
			if err != nil {
				return fmt.Errorf("failed to load seed file %s: %w", file, err)
			}
			results[i] = ds
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		s.logger.Error().Err(err).Msg("seed loading failed")
		return nil, err
	}

	merged := &Dataset{}
	for _, ds := range results {
		merged.Merge(ds)
	}
	merged.Normalize()

	if err := merged.Validate(); err != nil {
		return nil, fmt.Errorf("invalid seed data: %w", err)
	}

	s.logger.Info().
		Int("files", len(files)).
		Int("records", merged.Len()).
		Msg("seed files loaded")

	return merged, nil
}

// Apply writes ds in dependency order: categories before waste types.
func (s *Seeder) Apply(ctx context.Context, ds *Dataset) (Summary, error) {
	var sum Summary

	if len(ds.Categories) > 0 {
		if err := s.repos.Catalog.UpsertCategories(ctx, ds.Categories); err != nil {
			return sum, fmt.Errorf("failed to seed categories: %w", err)
		}
		sum.Categories = len(ds.Categories)
	}

	if len(ds.WasteTypes) > 0 {
		if err := s.repos.Catalog.UpsertItems(ctx, ds.WasteTypes); err != nil {
			return sum, fmt.Errorf("failed to seed waste types: %w", err)
		}
		sum.WasteTypes = len(ds.WasteTypes)
	}

	if len(ds.Opportunities) > 0 {
		if err := s.repos.Opportunities.Upsert(ctx, ds.Opportunities); err != nil {
			return sum, fmt.Errorf("failed to seed opportunities: %w", err)
		}
		sum.Opportunities = len(ds.Opportunities)
	}

	for i := range ds.Tutorials {
		t := &ds.Tutorials[i]
		if t.CreatedAt.IsZero() {
			t.CreatedAt = s.now().UTC()
		}
		if err := s.repos.Tutorials.Create(ctx, t); err != nil {
			return sum, fmt.Errorf("failed to seed tutorial %s: %w", t.ID, err)
		}
		sum.Tutorials++
	}

	if len(ds.Buyers) > 0 {
		if err := s.repos.Buyers.Upsert(ctx, ds.Buyers); err != nil {
			return sum, fmt.Errorf("failed to seed buyers: %w", err)
		}
		sum.Buyers = len(ds.Buyers)
	}

	s.logger.Info().
		Int("categories", sum.Categories).
		Int("waste_types", sum.WasteTypes).
		Int("opportunities", sum.Opportunities).
		Int("tutorials", sum.Tutorials).
		Int("buyers", sum.Buyers).
		Msg("seed data applied")

	return sum, nil
}

// Run loads files and applies them.
func (s *Seeder) Run(ctx context.Context, files []string) (Summary, error) {
	ds, err := s.Load(ctx, files)
	if err != nil {
		return Summary{}, err
	}
	return s.Apply(ctx, ds)
}
