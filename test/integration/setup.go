package integration

import (
	"bytes"
	"compress/gzip"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"daurulang/internal/config"
	"daurulang/internal/database"
	"daurulang/internal/repository"
	"daurulang/internal/seed"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// TestDB represents a test database instance.
type TestDB struct {
	Container *postgres.PostgresContainer
	Pool      *pgxpool.Pool
	ConnStr   string
}

// SetupTestDB creates a PostgreSQL test container, connects through the
// service's own pool setup and applies the schema.
func SetupTestDB(t *testing.T) *TestDB {
	t.Helper()

	ctx := context.Background()

	postgresContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second)),
	)
	if err != nil {
		t.Fatalf("failed to start postgres container: %v", err)
	}

	connStr, err := postgresContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("failed to get connection string: %v", err)
	}

	host, err := postgresContainer.Host(ctx)
	if err != nil {
		t.Fatalf("failed to get container host: %v", err)
	}
	port, err := postgresContainer.MappedPort(ctx, "5432/tcp")
	if err != nil {
		t.Fatalf("failed to get container port: %v", err)
	}

	dbConfig := config.DatabaseConfig{
		Host:            host,
		Port:            port.Int(),
		User:            "testuser",
		Password:        "testpass",
		Database:        "testdb",
		MaxConnections:  10,
		MinConnections:  2,
		MaxConnLifetime: 300,
	}

	pool, err := database.NewPool(ctx, dbConfig, zerolog.Nop())
	if err != nil {
		t.Fatalf("failed to create connection pool: %v", err)
	}

	if err := database.Migrate(ctx, pool); err != nil {
		t.Fatalf("failed to create schema: %v", err)
	}

	t.Cleanup(func() {
		pool.Close()
		if err := postgresContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	return &TestDB{
		Container: postgresContainer,
		Pool:      pool,
		ConnStr:   connStr,
	}
}

const catalogLines = `{"kind":"category","id":"plastik","name":"Plastik"}
{"kind":"category","id":"kertas","name":"Kertas"}
{"kind":"category","id":"logam","name":"Logam"}
{"kind":"waste_type","id":"W1","name":"Botol PET","description":"Botol minuman bening","category":{"id":"plastik"},"price":{"min":1000,"max":3000},"unit":"kg"}
{"kind":"waste_type","id":"W2","name":"Kardus","description":"Kemasan karton","category":{"id":"kertas"},"price":{"min":800,"max":1500},"unit":"kg"}
{"kind":"waste_type","id":"W3","name":"Kaleng Aluminium","description":"Kaleng minuman","category":{"id":"logam"},"price":{"min":12000,"max":15000},"unit":"kg"}
{"kind":"waste_type","id":"W4","name":"Gelas Plastik","description":"Gelas air mineral, bukan botol","category":{"id":"plastik"},"price":{"min":1500,"max":2500},"unit":"kg"}
{"kind":"waste_type","id":"W5","name":"Koran","description":"Kertas koran bekas","category":{"id":"kertas"},"price":{"min":1200,"max":2000},"unit":"kg"}
{"kind":"opportunity","id":"O1","title":"Ecobrick","description":"Bata dari botol plastik","category":"kerajinan","potentialIncome":{"min":100000,"max":500000}}
{"kind":"tutorial","id":"T1","title":"Pot gantung dari botol","description":"Pot untuk tanaman gantung","difficulty":"Mudah","duration":"30 menit","content":"{\"materials\":[\"Botol PET\",\"Tali\"],\"steps\":[\"Potong botol\",\"Pasang tali\"]}"}
`

const buyersYAML = `
buyers:
  - id: B1
    name: Bank Sampah Melati
    type: bank-sampah
    address: Jl. Melati 1
    city: Bandung
    province: Jawa Barat
  - id: B2
    name: Pengepul Jaya
    type: pengepul
    city: Bogor
    province: Jawa Barat
    location:
      latitude: -6.59
      longitude: 106.79
`

// WriteSeedFiles writes a gzipped JSON lines file and a YAML file into a
// temporary directory and returns their paths.
func WriteSeedFiles(t *testing.T) []string {
	t.Helper()
	dir := t.TempDir()

	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	if _, err := gz.Write([]byte(catalogLines)); err != nil {
		t.Fatalf("failed to gzip seed file: %v", err)
	}
	if err := gz.Close(); err != nil {
		t.Fatalf("failed to gzip seed file: %v", err)
	}

	files := map[string][]byte{
		"catalog.jsonl.gz": buf.Bytes(),
		"buyers.yaml":      []byte(buyersYAML),
	}
	paths := make([]string, 0, len(files))
	for _, name := range []string{"catalog.jsonl.gz", "buyers.yaml"} {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, files[name], 0o600); err != nil {
			t.Fatalf("failed to write seed file %s: %v", name, err)
		}
		paths = append(paths, path)
	}
	return paths
}

// SeedReferenceData loads the fixture files through the seeder.
func SeedReferenceData(t *testing.T, pool *pgxpool.Pool) seed.Summary {
	t.Helper()

	logger := zerolog.Nop()
	seeder := seed.NewSeeder(seed.NewFileLoader(logger), seed.Repositories{
		Catalog:       repository.NewCatalogRepository(pool, logger),
		Opportunities: repository.NewOpportunityRepository(pool, logger),
		Tutorials:     repository.NewTutorialRepository(pool, logger),
		Buyers:        repository.NewBuyerRepository(pool, logger),
	}, logger)

	sum, err := seeder.Run(context.Background(), WriteSeedFiles(t))
	if err != nil {
		t.Fatalf("failed to seed reference data: %v", err)
	}
	return sum
}

// CleanupDB cleans all data from test tables.
func CleanupDB(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()

	ctx := context.Background()

	tables := []string{
		"tutorial_interactions",
		"tutorial_comments",
		"tutorials",
		"waste_types",
		"categories",
		"business_opportunities",
		"waste_buyers",
	}
	for _, table := range tables {
		_, err := pool.Exec(ctx, fmt.Sprintf("DELETE FROM %s", table))
		if err != nil {
			t.Logf("failed to clean table %s: %v", table, err)
		}
	}
}
