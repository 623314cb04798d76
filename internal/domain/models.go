package domain

import "github.com/symptom-triage-server/internal/knowledge"

// ExpansionEntry records a synonym resolution that changed the user's
// wording, so the response can explain what was matched.
type ExpansionEntry struct {
	Original   string `json:"original"`
	ResolvedTo string `json:"resolved_to"`
}

// MatchedSymptom links one user symptom to the knowledge-base symptom
// it scored against for a given condition.
type MatchedSymptom struct {
	UserInput string   `json:"user_input"`
	MatchedTo string   `json:"matched_to"`
	Weight    float64  `json:"weight"`
	Severity  Severity `json:"severity"`
}

// DiseaseScore is the per-condition result of a matching pass.
type DiseaseScore struct {
	ID                   string           `json:"id"`
	Name                 string           `json:"name"`
	Icon                 string           `json:"icon"`
	BodySystem           string           `json:"body_system"`
	BodySystemIcon       string           `json:"body_system_icon"`
	Confidence           float64          `json:"confidence"`
	Score                float64          `json:"score"`
	RawScore             float64          `json:"raw_score"`
	MatchedSymptoms      []MatchedSymptom `json:"matched_symptoms"`
	Urgency              Urgency          `json:"urgency"`
	Triage               Triage           `json:"triage"`
	Description          string           `json:"description"`
	SymptomCount         int              `json:"symptom_count"`
	TotalSymptomsChecked int              `json:"total_symptoms_checked"`
	DemographicNotes     []string         `json:"demographic_notes"`
	HasFollowupQuestions bool             `json:"has_followup_questions"`
}

// Alert is an emergency red-flag notification. Severity is always
// "critical"; the field exists so callers can render alerts uniformly.
type Alert struct {
	Name     string `json:"name"`
	Message  string `json:"message"`
	Action   string `json:"action"`
	Severity string `json:"severity"`
}

// Advice is the tiered guidance generated from the ranked results.
type Advice struct {
	Level    AdviceLevel `json:"level"`
	Icon     string      `json:"icon"`
	Text     string      `json:"text"`
	SelfCare []string    `json:"self_care"`
}

// BodySystemGroup partitions results by anatomical system for display.
type BodySystemGroup struct {
	System   string         `json:"system"`
	Icon     string         `json:"icon"`
	Diseases []DiseaseScore `json:"diseases"`
}

// ConditionFollowups carries the outstanding follow-up questions for
// one ambiguous condition.
type ConditionFollowups struct {
	DiseaseID   string                       `json:"disease_id"`
	DiseaseName string                       `json:"disease_name"`
	Questions   []knowledge.FollowupQuestion `json:"questions"`
}

// Demographics echoes the validated demographic inputs back to the
// caller. Age is nil when absent or out of range.
type Demographics struct {
	Age *int   `json:"age"`
	Sex string `json:"sex"`
}

// SymptomCheckRequest is the request shape for an initial analysis.
type SymptomCheckRequest struct {
	Symptoms    []string          `json:"symptoms"`
	Age         *int              `json:"age"`
	Sex         string            `json:"sex"`
	SeverityMap map[string]string `json:"severity_map"`
}

// FollowupRequest re-runs an analysis with follow-up answers applied.
type FollowupRequest struct {
	SymptomCheckRequest
	Answers map[string]string `json:"answers"`
}

// SymptomAnalysis is the full response payload of an analysis or
// refinement pass. It is assembled fresh per request and never stored
// by the engine.
type SymptomAnalysis struct {
	InputSymptoms         []string             `json:"input_symptoms"`
	ExpansionLog          []ExpansionEntry     `json:"expansion_log"`
	Diseases              []DiseaseScore       `json:"diseases"`
	BodySystemGroups      []BodySystemGroup    `json:"body_system_groups"`
	Advice                Advice               `json:"advice"`
	Emergency             bool                 `json:"emergency"`
	EmergencyAlerts       []Alert              `json:"emergency_alerts"`
	FollowupQuestions     []ConditionFollowups `json:"followup_questions"`
	Demographics          Demographics         `json:"demographics"`
	TotalSymptomsAnalyzed int                  `json:"total_symptoms_analyzed"`
	DiseasesScreened      int                  `json:"diseases_screened"`
	Disclaimer            string               `json:"disclaimer"`
}

// PredictionRequest is forwarded to the external statistical-prediction
// service for one condition's trained classifier.
type PredictionRequest struct {
	ConditionID string             `json:"condition_id"`
	Features    map[string]float64 `json:"features"`
}

// PredictionResult is the opaque classifier output.
type PredictionResult struct {
	Label       string  `json:"label"`
	Probability float64 `json:"probability"`
}
