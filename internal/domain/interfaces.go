package domain

import "context"

// Predictor is the external statistical-prediction collaborator: the
// trained per-condition classifiers served by the ML path. The triage
// engine never calls it; only the request handler does.
type Predictor interface {
	Predict(ctx context.Context, conditionID string, features map[string]float64) (*PredictionResult, error)
}

// Analyzer is the triage engine surface the API layer depends on.
type Analyzer interface {
	Analyze(req *SymptomCheckRequest) (*SymptomAnalysis, error)
	Refine(req *FollowupRequest) (*SymptomAnalysis, error)
}
