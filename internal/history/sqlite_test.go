package history

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/symptom-triage-server/internal/domain"
)

func createTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	tmpDir, err := os.MkdirTemp("", "triage-history-*")
	require.NoError(t, err)
	t.Cleanup(func() { os.RemoveAll(tmpDir) })

	store, err := NewSQLiteStore(filepath.Join(tmpDir, "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func testRecord(id string) *ScreeningRecord {
	return &ScreeningRecord{
		ID:           id,
		CreatedAt:    time.Now().UTC(),
		Symptoms:     []string{"chest pain", "fatigue"},
		TopCondition: "heart",
		TopScore:     4.5,
		Urgency:      "moderate",
		Emergency:    false,
		Analysis:     []byte(`{"diseases":[]}`),
	}
}

func TestNewSQLiteStore(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "triage-history-*")
	require.NoError(t, err)
	defer os.RemoveAll(tmpDir)

	dbPath := filepath.Join(tmpDir, "test.db")
	store, err := NewSQLiteStore(dbPath)
	require.NoError(t, err)
	require.NotNil(t, store)
	defer store.Close()

	_, err = os.Stat(dbPath)
	assert.NoError(t, err, "database file should exist")
}

func TestSQLiteStore_SaveAndGet(t *testing.T) {
	store := createTestStore(t)
	ctx := context.Background()

	rec := testRecord("rec-1")
	require.NoError(t, store.Save(ctx, rec))

	got, err := store.Get(ctx, "rec-1")
	require.NoError(t, err)
	assert.Equal(t, rec.ID, got.ID)
	assert.Equal(t, rec.Symptoms, got.Symptoms)
	assert.Equal(t, rec.TopCondition, got.TopCondition)
	assert.InDelta(t, rec.TopScore, got.TopScore, 1e-9)
	assert.Equal(t, rec.Urgency, got.Urgency)
	assert.JSONEq(t, string(rec.Analysis), string(got.Analysis))
}

func TestSQLiteStore_GetMissing(t *testing.T) {
	store := createTestStore(t)

	_, err := store.Get(context.Background(), "nope")
	assert.True(t, errors.Is(err, sql.ErrNoRows))
}

func TestSQLiteStore_ListNewestFirst(t *testing.T) {
	store := createTestStore(t)
	ctx := context.Background()

	old := testRecord("rec-old")
	old.CreatedAt = time.Now().UTC().Add(-time.Hour)
	recent := testRecord("rec-new")

	require.NoError(t, store.Save(ctx, old))
	require.NoError(t, store.Save(ctx, recent))

	records, err := store.List(ctx, 10)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "rec-new", records[0].ID)
	assert.Equal(t, "rec-old", records[1].ID)

	limited, err := store.List(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, limited, 1)

	total, err := store.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, total)
}

func TestNewRecord(t *testing.T) {
	age := 50
	analysis := &domain.SymptomAnalysis{
		InputSymptoms: []string{"chest pain"},
		Emergency:     true,
		Diseases: []domain.DiseaseScore{
			{ID: "heart", Score: 7.2, Urgency: domain.UrgencyHigh},
		},
		Demographics: domain.Demographics{Age: &age, Sex: "male"},
	}

	rec, err := NewRecord("rec-9", analysis)
	require.NoError(t, err)
	assert.Equal(t, "rec-9", rec.ID)
	assert.Equal(t, "heart", rec.TopCondition)
	assert.InDelta(t, 7.2, rec.TopScore, 1e-9)
	assert.Equal(t, "high", rec.Urgency)
	assert.True(t, rec.Emergency)
	assert.NotEmpty(t, rec.Analysis)
	assert.False(t, rec.CreatedAt.IsZero())
}

func TestNewRecord_NoDiseases(t *testing.T) {
	rec, err := NewRecord("rec-0", &domain.SymptomAnalysis{InputSymptoms: []string{"x"}})
	require.NoError(t, err)
	assert.Empty(t, rec.TopCondition)
	assert.Zero(t, rec.TopScore)
}
