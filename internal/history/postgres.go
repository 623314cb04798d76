package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	_ "github.com/lib/pq"
)

const postgresSchema = `
CREATE TABLE IF NOT EXISTS screenings (
	id            TEXT PRIMARY KEY,
	created_at    TIMESTAMPTZ NOT NULL,
	symptoms      JSONB NOT NULL,
	top_condition TEXT NOT NULL DEFAULT '',
	top_score     DOUBLE PRECISION NOT NULL DEFAULT 0,
	urgency       TEXT NOT NULL DEFAULT '',
	emergency     BOOLEAN NOT NULL DEFAULT FALSE,
	analysis      JSONB NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_screenings_created_at ON screenings(created_at DESC);
`

// PostgresStore is the shared history store.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore connects with the given DSN and ensures the schema
// exists.
func NewPostgresStore(dsn string) (*PostgresStore, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres history store: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping postgres history store: %w", err)
	}
	if _, err := db.Exec(postgresSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create history schema: %w", err)
	}
	return &PostgresStore{db: db}, nil
}

// NewPostgresStoreWithDB wraps an existing connection; the schema is
// assumed to exist. Used by tests.
func NewPostgresStoreWithDB(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// Save inserts one screening record.
func (s *PostgresStore) Save(ctx context.Context, rec *ScreeningRecord) error {
	symptoms, err := json.Marshal(rec.Symptoms)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO screenings (id, created_at, symptoms, top_condition, top_score, urgency, emergency, analysis)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		rec.ID, rec.CreatedAt, string(symptoms), rec.TopCondition, rec.TopScore, rec.Urgency, rec.Emergency, rec.Analysis)
	if err != nil {
		return fmt.Errorf("save screening %s: %w", rec.ID, err)
	}
	return nil
}

// List returns the most recent records, newest first.
func (s *PostgresStore) List(ctx context.Context, limit int) ([]*ScreeningRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, created_at, symptoms, top_condition, top_score, urgency, emergency, analysis
		 FROM screenings ORDER BY created_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("list screenings: %w", err)
	}
	defer rows.Close()
	return scanRecords(rows)
}

// Get returns one record by id, or sql.ErrNoRows.
func (s *PostgresStore) Get(ctx context.Context, id string) (*ScreeningRecord, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, created_at, symptoms, top_condition, top_score, urgency, emergency, analysis
		 FROM screenings WHERE id = $1`, id)
	return scanRecord(row)
}

// Count reports the total number of stored screenings.
func (s *PostgresStore) Count(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM screenings`).Scan(&n)
	return n, err
}

// Close closes the underlying database.
func (s *PostgresStore) Close() error { return s.db.Close() }
