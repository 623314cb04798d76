package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	_ "modernc.org/sqlite"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS screenings (
	id            TEXT PRIMARY KEY,
	created_at    TIMESTAMP NOT NULL,
	symptoms      TEXT NOT NULL,
	top_condition TEXT NOT NULL DEFAULT '',
	top_score     REAL NOT NULL DEFAULT 0,
	urgency       TEXT NOT NULL DEFAULT '',
	emergency     INTEGER NOT NULL DEFAULT 0,
	analysis      BLOB NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_screenings_created_at ON screenings(created_at DESC);
`

// SQLiteStore is the embedded history store.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (or creates) the database file and ensures the
// schema exists. WAL mode keeps concurrent reads cheap during writes.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite history store: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable WAL: %w", err)
	}
	if _, err := db.Exec(sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create history schema: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Save inserts one screening record.
func (s *SQLiteStore) Save(ctx context.Context, rec *ScreeningRecord) error {
	symptoms, err := json.Marshal(rec.Symptoms)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO screenings (id, created_at, symptoms, top_condition, top_score, urgency, emergency, analysis)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.CreatedAt, string(symptoms), rec.TopCondition, rec.TopScore, rec.Urgency, rec.Emergency, rec.Analysis)
	if err != nil {
		return fmt.Errorf("save screening %s: %w", rec.ID, err)
	}
	return nil
}

// List returns the most recent records, newest first.
func (s *SQLiteStore) List(ctx context.Context, limit int) ([]*ScreeningRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, created_at, symptoms, top_condition, top_score, urgency, emergency, analysis
		 FROM screenings ORDER BY created_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("list screenings: %w", err)
	}
	defer rows.Close()
	return scanRecords(rows)
}

// Get returns one record by id, or sql.ErrNoRows.
func (s *SQLiteStore) Get(ctx context.Context, id string) (*ScreeningRecord, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, created_at, symptoms, top_condition, top_score, urgency, emergency, analysis
		 FROM screenings WHERE id = ?`, id)
	return scanRecord(row)
}

// Count reports the total number of stored screenings.
func (s *SQLiteStore) Count(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM screenings`).Scan(&n)
	return n, err
}

// Close closes the underlying database.
func (s *SQLiteStore) Close() error { return s.db.Close() }

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanRecord(row rowScanner) (*ScreeningRecord, error) {
	rec := &ScreeningRecord{}
	var symptoms string
	if err := row.Scan(&rec.ID, &rec.CreatedAt, &symptoms, &rec.TopCondition,
		&rec.TopScore, &rec.Urgency, &rec.Emergency, &rec.Analysis); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(symptoms), &rec.Symptoms); err != nil {
		return nil, fmt.Errorf("decode symptoms for %s: %w", rec.ID, err)
	}
	return rec, nil
}

func scanRecords(rows *sql.Rows) ([]*ScreeningRecord, error) {
	records := []*ScreeningRecord{}
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}
