package api

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/symptom-triage-server/internal/domain"
	"github.com/symptom-triage-server/internal/history"
	"github.com/symptom-triage-server/internal/knowledge"
	"github.com/symptom-triage-server/internal/service"
)

type memoryStore struct {
	mu      sync.Mutex
	records []*history.ScreeningRecord
}

func (m *memoryStore) Save(_ context.Context, rec *history.ScreeningRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records = append(m.records, rec)
	return nil
}

func (m *memoryStore) List(_ context.Context, limit int) ([]*history.ScreeningRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if limit > len(m.records) {
		limit = len(m.records)
	}
	return m.records[:limit], nil
}

func (m *memoryStore) Get(_ context.Context, id string) (*history.ScreeningRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, rec := range m.records {
		if rec.ID == id {
			return rec, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (m *memoryStore) Count(context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.records), nil
}

func (m *memoryStore) Close() error { return nil }

func (m *memoryStore) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.records)
}

type stubPredictor struct {
	result *domain.PredictionResult
	err    error
}

func (p *stubPredictor) Predict(context.Context, string, map[string]float64) (*domain.PredictionResult, error) {
	return p.result, p.err
}

func newTestServer(t *testing.T, store history.Store, predictor domain.Predictor) *Server {
	t.Helper()

	registry, err := knowledge.NewRegistry()
	require.NoError(t, err)
	logger := logrus.New()
	logger.SetLevel(logrus.ErrorLevel)
	triage := service.NewTriageService(registry, logger)

	cfg := &domain.Config{
		Logging:   domain.LoggingConfig{Level: "error"},
		RateLimit: domain.RateLimitConfig{PerMinute: 100, Burst: 100, ClientCacheSize: 16},
	}

	server, err := NewServer(cfg, triage, triage, predictor, store, logger)
	require.NoError(t, err)
	return server
}

func doJSON(t *testing.T, handler http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	return w
}

func TestHandleSymptomCheck(t *testing.T) {
	store := &memoryStore{}
	server := newTestServer(t, store, &stubPredictor{})

	w := doJSON(t, server.Router(), http.MethodPost, "/api/v1/symptom-check", map[string]interface{}{
		"symptoms": []string{"chest pain", "cant breathe"},
		"age":      55,
		"sex":      "male",
	})

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Success  bool                    `json:"success"`
		Analysis *domain.SymptomAnalysis `json:"analysis"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	require.NotNil(t, resp.Analysis)
	assert.True(t, resp.Analysis.Emergency)
	require.NotEmpty(t, resp.Analysis.Diseases)
	assert.Equal(t, "heart", resp.Analysis.Diseases[0].ID)
	assert.Equal(t, 4, resp.Analysis.DiseasesScreened)

	// History is saved asynchronously.
	require.Eventually(t, func() bool { return store.count() == 1 },
		time.Second, 10*time.Millisecond)
}

func TestHandleSymptomCheck_ValidationError(t *testing.T) {
	server := newTestServer(t, &memoryStore{}, &stubPredictor{})

	w := doJSON(t, server.Router(), http.MethodPost, "/api/v1/symptom-check", map[string]interface{}{
		"symptoms": []string{},
	})

	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp struct {
		Success bool   `json:"success"`
		Error   string `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.Equal(t, "Please provide a list of symptoms", resp.Error)
}

func TestHandleSymptomCheck_MalformedBody(t *testing.T) {
	server := newTestServer(t, &memoryStore{}, &stubPredictor{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/symptom-check", bytes.NewBufferString("{not json"))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	server.Router().ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Request body is required")
}

func TestHandleSymptomFollowup(t *testing.T) {
	store := &memoryStore{}
	server := newTestServer(t, store, &stubPredictor{})

	w := doJSON(t, server.Router(), http.MethodPost, "/api/v1/symptom-followup", map[string]interface{}{
		"symptoms": []string{"persistent sadness", "feeling hopeless"},
		"answers":  map[string]string{"self_harm": "yes"},
	})

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Success  bool                    `json:"success"`
		Analysis *domain.SymptomAnalysis `json:"analysis"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotNil(t, resp.Analysis)
	assert.True(t, resp.Analysis.Emergency)
	assert.Empty(t, resp.Analysis.FollowupQuestions)
}

func TestHandleSuggestions(t *testing.T) {
	server := newTestServer(t, &memoryStore{}, &stubPredictor{})

	w := doJSON(t, server.Router(), http.MethodGet, "/api/v1/symptom-suggestions", nil)

	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Success      bool     `json:"success"`
		Suggestions  []string `json:"suggestions"`
		SynonymCount int      `json:"synonym_count"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Contains(t, resp.Suggestions, "Chest Pain")
	assert.Greater(t, resp.SynonymCount, 100)
}

func TestHandlePredict(t *testing.T) {
	server := newTestServer(t, &memoryStore{},
		&stubPredictor{result: &domain.PredictionResult{Label: "elevated risk", Probability: 0.82}})

	w := doJSON(t, server.Router(), http.MethodPost, "/api/v1/predict", map[string]interface{}{
		"condition_id": "heart",
		"features":     map[string]float64{"age": 55, "bp": 140},
	})

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "elevated risk")
}

func TestHandlePredict_MissingCondition(t *testing.T) {
	server := newTestServer(t, &memoryStore{}, &stubPredictor{})

	w := doJSON(t, server.Router(), http.MethodPost, "/api/v1/predict", map[string]interface{}{
		"features": map[string]float64{"age": 55},
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "condition_id is required")
}

func TestHandlePredict_ServiceFailure(t *testing.T) {
	server := newTestServer(t, &memoryStore{},
		&stubPredictor{err: errors.New("connection refused")})

	w := doJSON(t, server.Router(), http.MethodPost, "/api/v1/predict", map[string]interface{}{
		"condition_id": "heart",
	})

	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Contains(t, w.Body.String(), "EXTERNAL_API_ERROR")
}

func TestHandleHistory(t *testing.T) {
	store := &memoryStore{}
	analysis := &domain.SymptomAnalysis{InputSymptoms: []string{"fatigue"}}
	rec, err := history.NewRecord("rec-1", analysis)
	require.NoError(t, err)
	require.NoError(t, store.Save(context.Background(), rec))

	server := newTestServer(t, store, &stubPredictor{})

	w := doJSON(t, server.Router(), http.MethodGet, "/api/v1/history", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "rec-1")

	w = doJSON(t, server.Router(), http.MethodGet, "/api/v1/history?limit=0", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandleHistoryRecord(t *testing.T) {
	store := &memoryStore{}
	analysis := &domain.SymptomAnalysis{InputSymptoms: []string{"fatigue"}}
	rec, err := history.NewRecord("rec-1", analysis)
	require.NoError(t, err)
	require.NoError(t, store.Save(context.Background(), rec))

	server := newTestServer(t, store, &stubPredictor{})

	w := doJSON(t, server.Router(), http.MethodGet, "/api/v1/history/rec-1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "fatigue")

	w = doJSON(t, server.Router(), http.MethodGet, "/api/v1/history/nope", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRateLimitOnAnalysisRoutes(t *testing.T) {
	registry, err := knowledge.NewRegistry()
	require.NoError(t, err)
	logger := logrus.New()
	logger.SetLevel(logrus.ErrorLevel)
	triage := service.NewTriageService(registry, logger)

	cfg := &domain.Config{
		Logging:   domain.LoggingConfig{Level: "error"},
		RateLimit: domain.RateLimitConfig{PerMinute: 1, Burst: 1, ClientCacheSize: 16},
	}
	server, err := NewServer(cfg, triage, triage, &stubPredictor{}, &memoryStore{}, logger)
	require.NoError(t, err)

	body := map[string]interface{}{"symptoms": []string{"fatigue"}}
	first := doJSON(t, server.Router(), http.MethodPost, "/api/v1/symptom-check", body)
	assert.Equal(t, http.StatusOK, first.Code)

	second := doJSON(t, server.Router(), http.MethodPost, "/api/v1/symptom-check", body)
	assert.Equal(t, http.StatusTooManyRequests, second.Code)

	// Unlimited routes stay reachable.
	third := doJSON(t, server.Router(), http.MethodGet, "/api/v1/symptom-suggestions", nil)
	assert.Equal(t, http.StatusOK, third.Code)
}

func TestHandleHealth(t *testing.T) {
	server := newTestServer(t, &memoryStore{}, &stubPredictor{})

	w := doJSON(t, server.Router(), http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "healthy")
}
