package archive

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/climata/internal/artifact"
)

// Integration test; requires a reachable PostgreSQL.
func TestRepository(t *testing.T) {
	connString := os.Getenv("DATABASE_URL")
	if connString == "" {
		t.Skip("DATABASE_URL not set, skipping integration test")
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, connString)
	require.NoError(t, err, "database connection failed")
	defer pool.Close()

	repo := NewRepository(pool)
	require.NoError(t, repo.EnsureSchema(ctx))

	readings := []artifact.Reading{
		{Station: "GHCND:TEST1", Date: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), Datatype: "TMAX", Value: 7.2},
		{Station: "GHCND:TEST1", Date: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), Datatype: "TMIN", Value: -1.1},
	}

	written, err := repo.SaveReadings(ctx, readings)
	require.NoError(t, err)
	assert.Equal(t, int64(2), written)

	// Upsert: saving again must not duplicate rows.
	_, err = repo.SaveReadings(ctx, readings)
	require.NoError(t, err)

	count, err := repo.CountReadings(ctx)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, count, int64(2))

	latest, err := repo.LatestFetch(ctx)
	require.NoError(t, err)
	assert.NotEmpty(t, latest)
}

func TestSaveReadingsEmpty(t *testing.T) {
	repo := NewRepository(nil)

	written, err := repo.SaveReadings(context.Background(), nil)
	require.NoError(t, err)
	assert.Zero(t, written)
}
