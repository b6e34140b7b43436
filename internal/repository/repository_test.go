package repository

import (
	"context"
	"testing"
	"time"

	"daurulang/internal/database"
	"daurulang/internal/model"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// setupTestDB creates a PostgreSQL testcontainer with the service schema applied.
func setupTestDB(t *testing.T) *pgxpool.Pool {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping repository test that needs a database container")
	}

	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("postgres"),
		postgres.WithPassword("postgres"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	require.NoError(t, err)

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	pool, err := pgxpool.New(ctx, connStr)
	require.NoError(t, err)

	require.NoError(t, database.Migrate(ctx, pool))

	t.Cleanup(func() {
		pool.Close()
		_ = pgContainer.Terminate(ctx)
	})

	return pool
}

func TestCatalogRepository(t *testing.T) {
	pool := setupTestDB(t)
	repo := NewCatalogRepository(pool, zerolog.Nop())
	ctx := context.Background()

	categories := []model.Category{
		{ID: "plastik", Name: "Plastik"},
		{ID: "kertas", Name: "Kertas"},
	}
	items := []model.CatalogItem{
		{ID: "W1", Name: "Botol Plastik", Description: "PET", Category: categories[0], Price: model.PriceRange{Min: 1000, Max: 3000}, Unit: "kg"},
		{ID: "W2", Name: "Kardus", Description: "Kemasan", Category: categories[1], Price: model.PriceRange{Min: 800, Max: 1500}, Unit: "kg"},
	}

	require.NoError(t, repo.UpsertCategories(ctx, categories))
	require.NoError(t, repo.UpsertItems(ctx, items))

	t.Run("ListItems joins categories", func(t *testing.T) {
		got, err := repo.ListItems(ctx)
		require.NoError(t, err)
		assert.Equal(t, items, got)
	})

	t.Run("ListCategories orders by name", func(t *testing.T) {
		got, err := repo.ListCategories(ctx)
		require.NoError(t, err)
		assert.Equal(t, []model.Category{categories[1], categories[0]}, got)
	})

	t.Run("GetItem", func(t *testing.T) {
		got, err := repo.GetItem(ctx, "W2")
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, items[1], *got)

		missing, err := repo.GetItem(ctx, "nope")
		require.NoError(t, err)
		assert.Nil(t, missing)
	})

	t.Run("Upsert updates existing rows", func(t *testing.T) {
		updated := items[0]
		updated.Price.Min = 1200
		require.NoError(t, repo.UpsertItems(ctx, []model.CatalogItem{updated}))

		got, err := repo.GetItem(ctx, "W1")
		require.NoError(t, err)
		assert.Equal(t, 1200.0, got.Price.Min)
	})
}

func TestOpportunityRepository(t *testing.T) {
	pool := setupTestDB(t)
	repo := NewOpportunityRepository(pool, zerolog.Nop())
	ctx := context.Background()

	investment := 2_500_000.0
	opportunities := []model.BusinessOpportunity{
		{ID: "O1", Title: "Ecobrick", Category: "kerajinan", Income: model.PriceRange{Min: 100000, Max: 500000}},
		{ID: "O2", Title: "Pelet plastik", Category: "industri", Investment: &investment, MediaURL: "https://cdn.example/pelet.jpg"},
	}
	require.NoError(t, repo.Upsert(ctx, opportunities))

	got, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Nil(t, got[0].Investment)
	require.NotNil(t, got[1].Investment)
	assert.Equal(t, investment, *got[1].Investment)

	one, err := repo.GetByID(ctx, "O1")
	require.NoError(t, err)
	assert.Equal(t, opportunities[0], *one)

	missing, err := repo.GetByID(ctx, "O9")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestBuyerRepository(t *testing.T) {
	pool := setupTestDB(t)
	repo := NewBuyerRepository(pool, zerolog.Nop())
	ctx := context.Background()

	buyers := []model.WasteBuyer{
		{ID: "B1", Name: "Bank Sampah Melati", Type: model.BuyerBankSampah, City: "Bandung"},
		{ID: "B2", Name: "Pengepul Jaya", Type: model.BuyerPengepul, City: "Bogor", Location: &model.Location{Latitude: -6.59, Longitude: 106.79}},
	}
	require.NoError(t, repo.Upsert(ctx, buyers))

	t.Run("List keeps absent locations absent", func(t *testing.T) {
		got, err := repo.List(ctx)
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Nil(t, got[0].Location)
		assert.Equal(t, buyers[1].Location, got[1].Location)
	})

	t.Run("UpdateLocation sets both coordinates", func(t *testing.T) {
		loc := model.Location{Latitude: -6.91, Longitude: 107.61}
		got, err := repo.UpdateLocation(ctx, "B1", loc)
		require.NoError(t, err)
		require.NotNil(t, got.Location)
		assert.Equal(t, loc, *got.Location)

		stored, err := repo.GetByID(ctx, "B1")
		require.NoError(t, err)
		assert.Equal(t, loc, *stored.Location)
	})

	t.Run("UpdateLocation on unknown buyer", func(t *testing.T) {
		_, err := repo.UpdateLocation(ctx, "B404", model.Location{})
		assert.ErrorIs(t, err, model.ErrBuyerNotFound)
	})
}

func TestTutorialRepository(t *testing.T) {
	pool := setupTestDB(t)
	repo := NewTutorialRepository(pool, zerolog.Nop())
	ctx := context.Background()

	tutorial := &model.Tutorial{
		ID:          "T1",
		Title:       "Pot dari botol",
		Description: "Pot gantung",
		Difficulty:  model.DifficultyMedium,
		Duration:    "30 menit",
		Content: model.TutorialContent{
			Materials: []string{"Botol"},
			Steps:     []string{"Potong", "Isi tanah"},
			Tips:      []string{},
		},
		CreatedBy: "u1",
		CreatedAt: time.Now().UTC().Truncate(time.Millisecond),
	}
	require.NoError(t, repo.Create(ctx, tutorial))

	t.Run("GetByID normalises content", func(t *testing.T) {
		got, err := repo.GetByID(ctx, "T1")
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, tutorial.Content, got.Content)
		assert.Equal(t, model.DifficultyMedium, got.Difficulty)
		assert.Empty(t, got.Comments)
	})

	t.Run("Double-encoded legacy content", func(t *testing.T) {
		_, err := pool.Exec(ctx, `INSERT INTO tutorials (id, title, difficulty, content) VALUES ('T2', 'Lama', 'Sulit', $1)`,
			`"{\"materials\":[\"Kain\"],\"steps\":[\"Jahit\"]}"`)
		require.NoError(t, err)

		got, err := repo.GetByID(ctx, "T2")
		require.NoError(t, err)
		assert.Equal(t, []string{"Kain"}, got.Content.Materials)
		assert.Equal(t, model.DifficultyHard, got.Difficulty)
	})

	t.Run("Toggles flip state", func(t *testing.T) {
		saved, err := repo.ToggleSaved(ctx, "T1", "u2")
		require.NoError(t, err)
		assert.True(t, saved)

		saved, err = repo.ToggleSaved(ctx, "T1", "u2")
		require.NoError(t, err)
		assert.False(t, saved)

		completed, err := repo.ToggleCompleted(ctx, "T1", "u2")
		require.NoError(t, err)
		assert.True(t, completed)

		in, err := repo.GetInteraction(ctx, "T1", "u2")
		require.NoError(t, err)
		assert.Equal(t, model.Interaction{Saved: false, Completed: true}, in)
	})

	t.Run("Comment with rating updates summary", func(t *testing.T) {
		four := 4
		require.NoError(t, repo.AddComment(ctx, &model.Comment{
			ID: "c1", TutorialID: "T1", UserID: "u3", UserName: "Rina",
			Text: "Berhasil!", Rating: &four, CreatedAt: time.Now(),
		}))
		require.NoError(t, repo.Rate(ctx, "T1", "u2", 2))

		got, err := repo.GetByID(ctx, "T1")
		require.NoError(t, err)
		require.Len(t, got.Comments, 1)
		assert.Equal(t, "Berhasil!", got.Comments[0].Text)
		assert.Equal(t, 2, got.RatingCount)
		assert.InDelta(t, 3.0, got.AverageRating, 0.001)
	})

	t.Run("Missing tutorial", func(t *testing.T) {
		got, err := repo.GetByID(ctx, "T404")
		require.NoError(t, err)
		assert.Nil(t, got)

		in, err := repo.GetInteraction(ctx, "T404", "u1")
		require.NoError(t, err)
		assert.Equal(t, model.Interaction{}, in)
	})
}
