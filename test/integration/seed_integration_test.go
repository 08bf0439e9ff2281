package integration

import (
	"bytes"
	"compress/gzip"
	"context"
	"os"
	"path/filepath"
	"testing"

	"course-market/internal/seed"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeSeedFile(t *testing.T, lines ...string) string {
	t.Helper()

	var buf bytes.Buffer
	gzipWriter := gzip.NewWriter(&buf)
	for _, line := range lines {
		_, err := gzipWriter.Write([]byte(line + "\n"))
		require.NoError(t, err)
	}
	require.NoError(t, gzipWriter.Close())

	path := filepath.Join(t.TempDir(), "catalog.jsonl.gz")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))
	return path
}

func TestSeeder_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	testDB := SetupTestDB(t)
	backend := StartBackend(t, testDB)
	ctx := context.Background()
	CleanupDB(t, testDB.Pool)

	first := writeSeedFile(t,
		`{"name":"Big 4 Auditor Financial Analyst","price":300000,"image":"a.png"}`,
		`{"name":"","price":1,"image":""}`,
	)
	second := writeSeedFile(t, `{"name":"Belajar Go dari Nol","price":150000,"image":"b.png"}`)

	seeder := seed.NewSeeder(seed.NewFileLoader(zerolog.Nop()), backend.Repo, backend.Svc, zerolog.Nop())

	inserted, err := seeder.Run(ctx, []string{first, second})
	require.NoError(t, err)
	assert.Equal(t, 2, inserted)

	products, err := backend.Repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, "Big 4 Auditor Financial Analyst", products[0].Name)
	assert.Equal(t, "Belajar Go dari Nol", products[1].Name)

	// A non-empty catalogue is left alone
	inserted, err = seeder.Run(ctx, []string{first})
	require.NoError(t, err)
	assert.Zero(t, inserted)
}
