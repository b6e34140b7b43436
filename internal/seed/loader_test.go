package seed

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// createTestSeedFile writes a gzipped seed file and returns its path.
func createTestSeedFile(t *testing.T, filename, content string) string {
	t.Helper()
	filePath := filepath.Join(t.TempDir(), filename)
	require.NoError(t, os.WriteFile(filePath, gzipped(t, content).Bytes(), 0o600))
	return filePath
}

func TestFileLoader_Load_Success(t *testing.T) {
	loader := NewFileLoader(zerolog.Nop())
	filePath := createTestSeedFile(t, "catalog.jsonl.gz", sampleLines)

	ds, err := loader.Load(context.Background(), filePath)

	require.NoError(t, err)
	require.NotNil(t, ds)
	assert.Equal(t, 5, ds.Len())
}

func TestFileLoader_Load_FileNotFound(t *testing.T) {
	loader := NewFileLoader(zerolog.Nop())

	ds, err := loader.Load(context.Background(), "/nonexistent/path/file.jsonl.gz")

	assert.Error(t, err)
	assert.Nil(t, ds)
	assert.Contains(t, err.Error(), "failed to open seed file")
}

func TestFileLoader_Load_InvalidGzip(t *testing.T) {
	filePath := filepath.Join(t.TempDir(), "invalid.jsonl.gz")
	require.NoError(t, os.WriteFile(filePath, []byte("not a gzip file"), 0o600))

	ds, err := NewFileLoader(zerolog.Nop()).Load(context.Background(), filePath)

	assert.Error(t, err)
	assert.Nil(t, ds)
	assert.Contains(t, err.Error(), "failed to create gzip reader")
}

func TestFileLoader_Load_PlainYAML(t *testing.T) {
	filePath := filepath.Join(t.TempDir(), "buyers.yaml")
	require.NoError(t, os.WriteFile(filePath, []byte(sampleYAML), 0o600))

	ds, err := NewFileLoader(zerolog.Nop()).Load(context.Background(), filePath)

	require.NoError(t, err)
	assert.Len(t, ds.Buyers, 1)
}

func TestFileLoader_Load_ContextCancelled(t *testing.T) {
	lines := ""
	for i := 0; i < 2500; i++ {
		lines += `{"kind":"category","id":"c","name":"C"}` + "\n"
	}
	filePath := createTestSeedFile(t, "big.jsonl.gz", lines)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	ds, err := NewFileLoader(zerolog.Nop()).Load(ctx, filePath)

	assert.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, ds)
}
