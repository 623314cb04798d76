package service

import (
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/symptom-triage-server/internal/domain"
	"github.com/symptom-triage-server/internal/knowledge"
)

// maxSymptomsPerRequest caps how many symptoms one request may carry.
const maxSymptomsPerRequest = 20

// TriageService orchestrates a full analysis pass: validation, synonym
// resolution, red-flag detection, condition matching, advice, grouping,
// and follow-up collection. It is stateless and safe for concurrent
// use.
type TriageService struct {
	kb       *knowledge.Registry
	resolver *SynonymResolver
	redFlags *RedFlagDetector
	matcher  *SymptomMatcher
	refiner  *FollowupRefiner
	advice   *AdviceGenerator
	grouper  *ResultGrouper
	logger   *logrus.Logger
}

// NewTriageService wires the engine components over a shared registry.
func NewTriageService(kb *knowledge.Registry, logger *logrus.Logger) *TriageService {
	resolver := NewSynonymResolver(kb)
	return &TriageService{
		kb:       kb,
		resolver: resolver,
		redFlags: NewRedFlagDetector(kb, logger),
		matcher:  NewSymptomMatcher(kb, resolver, logger),
		refiner:  NewFollowupRefiner(kb, logger),
		advice:   NewAdviceGenerator(),
		grouper:  NewResultGrouper(kb),
		logger:   logger,
	}
}

// Suggestions returns the autocomplete symptom list.
func (s *TriageService) Suggestions() []string { return s.kb.Suggestions }

// SynonymCount reports how many colloquial phrases the resolver knows.
func (s *TriageService) SynonymCount() int { return s.kb.SynonymCount() }

// Analyze runs the initial analysis pass for a symptom set. The only
// error it returns is a *domain.ValidationError for malformed input;
// unknown symptoms and empty result sets degrade gracefully into an
// informational response.
func (s *TriageService) Analyze(req *domain.SymptomCheckRequest) (*domain.SymptomAnalysis, error) {
	symptoms, err := validateSymptoms(req.Symptoms)
	if err != nil {
		return nil, err
	}
	age, sex := validateDemographics(req.Age, req.Sex)
	severityMap := normalizeSeverityMap(req.SeverityMap)

	canonical, _ := s.resolver.ResolveAll(symptoms)
	alerts := s.redFlags.Detect(canonical)

	results, expansionLog := s.matcher.Match(symptoms, age, sex, severityMap)

	s.logger.WithFields(logrus.Fields{
		"symptoms": len(symptoms),
		"results":  len(results),
		"alerts":   len(alerts),
	}).Info("Symptom analysis completed")

	return s.assemble(symptoms, expansionLog, results, alerts, age, sex, true), nil
}

// Refine re-runs the analysis with follow-up answers applied: base
// matching, boost application, re-sort, re-tier, and crisis escalation
// when a crisis-flagged answer was affirmed.
func (s *TriageService) Refine(req *domain.FollowupRequest) (*domain.SymptomAnalysis, error) {
	symptoms, err := validateSymptoms(req.Symptoms)
	if err != nil {
		return nil, err
	}
	age, sex := validateDemographics(req.Age, req.Sex)
	severityMap := normalizeSeverityMap(req.SeverityMap)

	results, _ := s.matcher.Match(symptoms, age, sex, severityMap)
	results, crisisTriggered := s.refiner.Refine(results, req.Answers)

	canonical, _ := s.resolver.ResolveAll(symptoms)
	alerts := s.redFlags.Detect(canonical)

	if crisisTriggered && !hasAlert(alerts, knowledge.CrisisRuleName) {
		if rule, ok := s.kb.RedFlag(knowledge.CrisisRuleName); ok {
			alerts = append(alerts, domain.Alert{
				Name:     rule.Name,
				Message:  rule.Message,
				Action:   rule.Action,
				Severity: AlertSeverityCritical,
			})
		}
	}

	s.logger.WithFields(logrus.Fields{
		"symptoms": len(symptoms),
		"answers":  len(req.Answers),
		"crisis":   crisisTriggered,
	}).Info("Follow-up refinement completed")

	// Refinement responses carry no further follow-up questions.
	return s.assemble(symptoms, nil, results, alerts, age, sex, false), nil
}

// assemble builds the response payload shared by both passes.
func (s *TriageService) assemble(symptoms []string, expansionLog []domain.ExpansionEntry, results []domain.DiseaseScore, alerts []domain.Alert, age *int, sex string, collectFollowups bool) *domain.SymptomAnalysis {
	followups := []domain.ConditionFollowups{}
	if collectFollowups {
		followups = s.grouper.CollectFollowupQuestions(results)
	}
	if expansionLog == nil {
		expansionLog = []domain.ExpansionEntry{}
	}

	return &domain.SymptomAnalysis{
		InputSymptoms:         symptoms,
		ExpansionLog:          expansionLog,
		Diseases:              results,
		BodySystemGroups:      s.grouper.GroupByBodySystem(results),
		Advice:                s.advice.Generate(results, alerts),
		Emergency:             len(alerts) > 0,
		EmergencyAlerts:       alerts,
		FollowupQuestions:     followups,
		Demographics:          domain.Demographics{Age: age, Sex: sex},
		TotalSymptomsAnalyzed: len(symptoms),
		DiseasesScreened:      len(s.kb.Conditions),
		Disclaimer:            s.kb.Disclaimer,
	}
}

// validateSymptoms trims and filters the raw symptom list, enforcing
// the non-empty and size constraints.
func validateSymptoms(symptoms []string) ([]string, *domain.ValidationError) {
	if len(symptoms) == 0 {
		return nil, domain.NewValidationError("symptoms", "Please provide a list of symptoms", symptoms)
	}

	cleaned := make([]string, 0, len(symptoms))
	for _, s := range symptoms {
		if t := strings.TrimSpace(s); t != "" {
			cleaned = append(cleaned, t)
		}
	}

	if len(cleaned) == 0 {
		return nil, domain.NewValidationError("symptoms", "Please provide at least one valid symptom", symptoms)
	}
	if len(cleaned) > maxSymptomsPerRequest {
		return nil, domain.NewValidationError("symptoms", "Please provide no more than 20 symptoms at a time", len(cleaned))
	}

	return cleaned, nil
}

// validateDemographics normalizes age and sex, silently discarding
// out-of-range or unrecognized values rather than rejecting the
// request.
func validateDemographics(age *int, sex string) (*int, string) {
	var validAge *int
	if age != nil && *age >= 0 && *age <= 150 {
		validAge = age
	}

	validSex := strings.ToLower(strings.TrimSpace(sex))
	if !domain.ValidSex(validSex) {
		validSex = ""
	}

	return validAge, validSex
}

// normalizeSeverityMap converts raw severity strings to typed levels,
// dropping unrecognized values so the matcher defaults them to
// moderate.
func normalizeSeverityMap(raw map[string]string) map[string]domain.Severity {
	out := make(map[string]domain.Severity, len(raw))
	for symptom, level := range raw {
		if s := domain.Severity(strings.ToLower(level)); s.IsValid() {
			out[symptom] = s
		}
	}
	return out
}

func hasAlert(alerts []domain.Alert, name string) bool {
	for _, a := range alerts {
		if a.Name == name {
			return true
		}
	}
	return false
}
