// Package history persists completed screening analyses so past results
// can be listed and exported. Two stores implement the same interface:
// an embedded SQLite store for single-node deployments and a PostgreSQL
// store for shared ones.
package history

import (
	"context"
	"encoding/json"
	"time"

	"github.com/symptom-triage-server/internal/domain"
)

// ScreeningRecord is one persisted analysis outcome. Analysis holds the
// full response payload as JSON; the scalar columns exist for listing
// and filtering without unmarshaling.
type ScreeningRecord struct {
	ID           string    `json:"id"`
	CreatedAt    time.Time `json:"created_at"`
	Symptoms     []string  `json:"symptoms"`
	TopCondition string    `json:"top_condition"`
	TopScore     float64   `json:"top_score"`
	Urgency      string    `json:"urgency"`
	Emergency    bool      `json:"emergency"`
	Analysis     []byte    `json:"-"`
}

// Store persists and lists screening records.
type Store interface {
	Save(ctx context.Context, rec *ScreeningRecord) error
	List(ctx context.Context, limit int) ([]*ScreeningRecord, error)
	Get(ctx context.Context, id string) (*ScreeningRecord, error)
	Count(ctx context.Context) (int, error)
	Close() error
}

// NewRecord builds a record from a finished analysis. The caller
// supplies the id (a UUID in practice).
func NewRecord(id string, analysis *domain.SymptomAnalysis) (*ScreeningRecord, error) {
	payload, err := json.Marshal(analysis)
	if err != nil {
		return nil, err
	}

	rec := &ScreeningRecord{
		ID:        id,
		CreatedAt: time.Now().UTC(),
		Symptoms:  analysis.InputSymptoms,
		Emergency: analysis.Emergency,
		Analysis:  payload,
	}
	if len(analysis.Diseases) > 0 {
		top := analysis.Diseases[0]
		rec.TopCondition = top.ID
		rec.TopScore = top.Score
		rec.Urgency = top.Urgency.String()
	}
	return rec, nil
}
