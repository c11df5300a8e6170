package archive

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/wonny/climata/internal/artifact"
)

// Repository stores collected readings in PostgreSQL for ad-hoc inspection.
// The CSV artifact remains the pipeline's source of truth; this table is a
// convenience mirror.
// ⭐ SSOT: 관측값 저장소는 여기서만
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a new readings repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// EnsureSchema creates the readings table if it does not exist.
func (r *Repository) EnsureSchema(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS readings (
			station    TEXT NOT NULL,
			date       DATE NOT NULL,
			datatype   TEXT NOT NULL,
			value      DOUBLE PRECISION NOT NULL,
			fetched_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			PRIMARY KEY (station, date, datatype)
		)
	`)
	if err != nil {
		return fmt.Errorf("ensure readings schema: %w", err)
	}
	return nil
}

// SaveReadings upserts a batch of readings and returns the number written.
// Reruns of the collector overwrite previous values for the same key.
func (r *Repository) SaveReadings(ctx context.Context, readings []artifact.Reading) (int64, error) {
	if len(readings) == 0 {
		return 0, nil
	}

	batch := &pgx.Batch{}
	for _, rd := range readings {
		batch.Queue(`
			INSERT INTO readings (station, date, datatype, value)
			VALUES ($1, $2, $3, $4)
			ON CONFLICT (station, date, datatype)
			DO UPDATE SET value = EXCLUDED.value, fetched_at = now()
		`, rd.Station, rd.Date, rd.Datatype, rd.Value)
	}

	results := r.pool.SendBatch(ctx, batch)
	defer results.Close()

	var written int64
	for range readings {
		tag, err := results.Exec()
		if err != nil {
			return written, fmt.Errorf("upsert reading: %w", err)
		}
		written += tag.RowsAffected()
	}
	return written, nil
}

// CountReadings returns the number of archived readings.
func (r *Repository) CountReadings(ctx context.Context) (int64, error) {
	var count int64
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM readings`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count readings: %w", err)
	}
	return count, nil
}

// LatestFetch returns the most recent archive write time formatted for
// display, or empty when the table is empty.
func (r *Repository) LatestFetch(ctx context.Context) (string, error) {
	var latest *string
	err := r.pool.QueryRow(ctx,
		`SELECT to_char(MAX(fetched_at), 'YYYY-MM-DD HH24:MI:SS') FROM readings`,
	).Scan(&latest)
	if err != nil {
		return "", fmt.Errorf("latest fetch: %w", err)
	}
	if latest == nil {
		return "", nil
	}
	return *latest, nil
}
