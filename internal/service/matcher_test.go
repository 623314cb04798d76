package service

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/symptom-triage-server/internal/domain"
)

func newTestMatcher(t *testing.T) *SymptomMatcher {
	t.Helper()
	kb := newTestRegistry(t)
	logger := logrus.New()
	logger.SetLevel(logrus.ErrorLevel)
	return NewSymptomMatcher(kb, NewSynonymResolver(kb), logger)
}

func intPtr(v int) *int { return &v }

func findResult(results []domain.DiseaseScore, id string) *domain.DiseaseScore {
	for i := range results {
		if results[i].ID == id {
			return &results[i]
		}
	}
	return nil
}

func TestSymptomMatcher_ExactMatch(t *testing.T) {
	m := newTestMatcher(t)

	results, _ := m.Match([]string{"chest pain"}, nil, "", nil)
	require.NotEmpty(t, results)

	heart := results[0]
	assert.Equal(t, "heart", heart.ID)
	assert.InDelta(t, 3.0, heart.Score, 1e-9)
	assert.InDelta(t, 3.0, heart.RawScore, 1e-9)
	require.Len(t, heart.MatchedSymptoms, 1)
	assert.Equal(t, "chest pain", heart.MatchedSymptoms[0].MatchedTo)
	assert.Equal(t, domain.SeverityModerate, heart.MatchedSymptoms[0].Severity)
	assert.Equal(t, domain.UrgencyLow, heart.Urgency)
	assert.Equal(t, domain.TriageInformational, heart.Triage)
}

func TestSymptomMatcher_SynonymsResolveBeforeMatching(t *testing.T) {
	m := newTestMatcher(t)

	results, expansionLog := m.Match([]string{"cant breathe", "heart racing"}, nil, "", nil)
	require.NotEmpty(t, results)
	require.Len(t, expansionLog, 2)

	heart := findResult(results, "heart")
	require.NotNil(t, heart)
	// shortness of breath (2.5) + rapid heartbeat (2.5)
	assert.InDelta(t, 5.0, heart.Score, 1e-9)
	assert.Equal(t, "cant breathe", heart.MatchedSymptoms[0].UserInput)
	assert.Equal(t, "shortness of breath", heart.MatchedSymptoms[0].MatchedTo)
}

func TestSymptomMatcher_SeverityMultipliers(t *testing.T) {
	m := newTestMatcher(t)

	tests := []struct {
		severity  domain.Severity
		wantScore float64
	}{
		{domain.SeverityMild, 2.1},     // 3 * 0.7
		{domain.SeverityModerate, 3.0}, // 3 * 1.0
		{domain.SeveritySevere, 4.2},   // 3 * 1.4
	}

	for _, tt := range tests {
		t.Run(string(tt.severity), func(t *testing.T) {
			results, _ := m.Match([]string{"chest pain"}, nil, "",
				map[string]domain.Severity{"chest pain": tt.severity})
			heart := findResult(results, "heart")
			require.NotNil(t, heart)
			assert.InDelta(t, tt.wantScore, heart.Score, 1e-9)
		})
	}
}

func TestSymptomMatcher_SeverityKeyedByRawInput(t *testing.T) {
	m := newTestMatcher(t)

	// The severity map is keyed by what the user typed, not the
	// canonical name it resolves to.
	results, _ := m.Match([]string{"cant breathe"}, nil, "",
		map[string]domain.Severity{"cant breathe": domain.SeveritySevere})
	heart := findResult(results, "heart")
	require.NotNil(t, heart)
	assert.InDelta(t, 3.5, heart.Score, 1e-9) // 2.5 * 1.4

	// Keying by the canonical name misses.
	results, _ = m.Match([]string{"cant breathe"}, nil, "",
		map[string]domain.Severity{"shortness of breath": domain.SeveritySevere})
	heart = findResult(results, "heart")
	require.NotNil(t, heart)
	assert.InDelta(t, 2.5, heart.Score, 1e-9)
}

func TestSymptomMatcher_DemographicAdjustment(t *testing.T) {
	m := newTestMatcher(t)

	results, _ := m.Match([]string{"chest pain"}, intPtr(50), "male", nil)
	heart := findResult(results, "heart")
	require.NotNil(t, heart)

	// 3 * 1.2 (age >= 45) * 1.15 (male) = 4.14, rounded to 4.1.
	assert.InDelta(t, 4.1, heart.Score, 1e-9)
	assert.InDelta(t, 3.0, heart.RawScore, 1e-9, "raw score stays unadjusted")
	require.Len(t, heart.DemographicNotes, 2)
	assert.Equal(t, "Age 50 increases Heart Disease risk (+20%)", heart.DemographicNotes[0])
	assert.Equal(t, "Sex-based risk adjustment (+15%)", heart.DemographicNotes[1])
}

func TestSymptomMatcher_DemographicAdjustmentBelowThreshold(t *testing.T) {
	m := newTestMatcher(t)

	results, _ := m.Match([]string{"chest pain"}, intPtr(30), "female", nil)
	heart := findResult(results, "heart")
	require.NotNil(t, heart)

	// Under the age threshold and at a neutral sex factor nothing
	// changes and no notes appear.
	assert.InDelta(t, 3.0, heart.Score, 1e-9)
	assert.Empty(t, heart.DemographicNotes)
}

func TestSymptomMatcher_HighUrgencyAndTriage(t *testing.T) {
	m := newTestMatcher(t)

	symptoms := []string{"chest pain", "shortness of breath", "cold sweats", "irregular heartbeat"}
	results, _ := m.Match(symptoms, nil, "", nil)
	require.NotEmpty(t, results)

	heart := results[0]
	require.Equal(t, "heart", heart.ID)
	// 3 + 2.5 + 2 + 3 = 10.5 >= 1.5 * threshold 6
	assert.InDelta(t, 10.5, heart.Score, 1e-9)
	assert.Equal(t, domain.UrgencyHigh, heart.Urgency)
	assert.Greater(t, heart.Confidence, 0.5)
	assert.Equal(t, domain.TriageUrgent, heart.Triage)
}

func TestSymptomMatcher_ConfidenceBounds(t *testing.T) {
	m := newTestMatcher(t)

	// A perfect single-symptom match caps at 0.99, never 1.0.
	results, _ := m.Match([]string{"chest pain"}, nil, "", nil)
	heart := findResult(results, "heart")
	require.NotNil(t, heart)
	assert.InDelta(t, 0.99, heart.Confidence, 1e-9)

	// Every confidence stays within (0, 0.99].
	results, _ = m.Match([]string{"chest pain", "fatigue", "nausea", "dizziness"}, intPtr(80), "male", nil)
	for _, r := range results {
		assert.Greater(t, r.Confidence, 0.0, "%s", r.ID)
		assert.LessOrEqual(t, r.Confidence, 0.99, "%s", r.ID)
	}
}

func TestSymptomMatcher_TokenOverlapMatch(t *testing.T) {
	m := newTestMatcher(t)

	// "chest pain" shares the "pain" token with kidney's "back pain"
	// (weight 2): overlap 1 of larger set 2 exceeds 0.4, scoring
	// 2 * 1/2 = 1.
	results, _ := m.Match([]string{"chest pain"}, nil, "", nil)
	kidney := findResult(results, "kidney")
	require.NotNil(t, kidney)
	assert.InDelta(t, 1.0, kidney.Score, 1e-9)
	assert.Equal(t, "back pain", kidney.MatchedSymptoms[0].MatchedTo)
}

func TestSymptomMatcher_FuzzyMatch(t *testing.T) {
	m := newTestMatcher(t)

	// "chest pian" never resolves or substring-matches, but its fuzzy
	// ratio against "chest pain" is 0.9, and the fuzzy score
	// 3 * 0.9 = 2.7 beats the token-overlap candidate of 1.5.
	results, _ := m.Match([]string{"chest pian"}, nil, "", nil)
	heart := findResult(results, "heart")
	require.NotNil(t, heart)
	assert.InDelta(t, 2.7, heart.Score, 1e-9)
	assert.Equal(t, "chest pain", heart.MatchedSymptoms[0].MatchedTo)
}

func TestSymptomMatcher_NoMatchBelowFuzzyThreshold(t *testing.T) {
	m := newTestMatcher(t)

	results, _ := m.Match([]string{"zebra stripes"}, nil, "", nil)
	assert.Empty(t, results)
}

func TestSymptomMatcher_Deterministic(t *testing.T) {
	m := newTestMatcher(t)

	symptoms := []string{"fatigue", "nausea", "dizziness", "back pain"}
	first, _ := m.Match(symptoms, intPtr(55), "female", nil)
	for i := 0; i < 5; i++ {
		again, _ := m.Match(symptoms, intPtr(55), "female", nil)
		require.Equal(t, first, again, "matching must be reproducible")
	}
}

func TestSymptomMatcher_SortedByScoreDescending(t *testing.T) {
	m := newTestMatcher(t)

	results, _ := m.Match([]string{"fatigue", "frequent urination", "excessive thirst"}, nil, "", nil)
	require.NotEmpty(t, results)
	for i := 1; i < len(results); i++ {
		assert.GreaterOrEqual(t, results[i-1].Score, results[i].Score)
	}
	assert.Equal(t, "diabetes", results[0].ID)
}

func TestSymptomMatcher_FollowupFlagOnlyInAmbiguousBand(t *testing.T) {
	m := newTestMatcher(t)

	// dizziness alone: heart confidence 1.5/3 = 0.5, inside the
	// [0.15, 0.65] band.
	results, _ := m.Match([]string{"dizziness"}, nil, "", nil)
	heart := findResult(results, "heart")
	require.NotNil(t, heart)
	assert.True(t, heart.HasFollowupQuestions)

	// A near-perfect match is confident enough to skip follow-ups.
	results, _ = m.Match([]string{"chest pain"}, nil, "", nil)
	heart = findResult(results, "heart")
	require.NotNil(t, heart)
	assert.False(t, heart.HasFollowupQuestions)
}

func TestSymptomMatcher_UnmatchedSymptomsAreCounted(t *testing.T) {
	m := newTestMatcher(t)

	results, _ := m.Match([]string{"chest pain", "zebra stripes"}, nil, "", nil)
	heart := findResult(results, "heart")
	require.NotNil(t, heart)
	assert.Equal(t, 1, heart.SymptomCount)
	assert.Equal(t, 2, heart.TotalSymptomsChecked)

	// Confidence normalizes against what two symptoms could have
	// scored: 3 / (3 + 3) = 0.5.
	assert.InDelta(t, 0.5, heart.Confidence, 1e-9)
}
