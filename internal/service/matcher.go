package service

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/symptom-triage-server/internal/domain"
	"github.com/symptom-triage-server/internal/knowledge"
)

// tokenOverlapThreshold is the minimum share of the larger token set
// that must overlap for a token-level match.
const tokenOverlapThreshold = 0.4

// SymptomMatcher scores user symptoms against every condition profile
// using a layered strategy: exact, substring, token-overlap, then
// fuzzy. Results carry demographic adjustment, confidence, urgency, and
// triage.
type SymptomMatcher struct {
	kb       *knowledge.Registry
	resolver *SynonymResolver
	logger   *logrus.Logger
}

// NewSymptomMatcher creates a matcher over the registry.
func NewSymptomMatcher(kb *knowledge.Registry, resolver *SynonymResolver, logger *logrus.Logger) *SymptomMatcher {
	return &SymptomMatcher{kb: kb, resolver: resolver, logger: logger}
}

// Match scores the user symptoms against every condition and returns
// the ranked results (score descending, ties in condition declaration
// order) plus the synonym expansion log. Age and sex are optional;
// severityMap keys are the raw user symptom strings.
func (m *SymptomMatcher) Match(userSymptoms []string, age *int, sex string, severityMap map[string]domain.Severity) ([]domain.DiseaseScore, []domain.ExpansionEntry) {
	canonical, expansionLog := m.resolver.ResolveAll(userSymptoms)

	results := []domain.DiseaseScore{}
	for _, cond := range m.kb.Conditions {
		if score, ok := m.scoreCondition(cond, userSymptoms, canonical, age, sex, severityMap); ok {
			results = append(results, score)
		}
	}

	// Stable: ties keep condition declaration order.
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	m.logger.WithFields(logrus.Fields{
		"symptoms":           len(userSymptoms),
		"conditions_matched": len(results),
	}).Debug("Completed symptom matching pass")

	return results, expansionLog
}

// scoreCondition evaluates one condition; ok is false when no user
// symptom matched anything in its profile.
func (m *SymptomMatcher) scoreCondition(cond *knowledge.ConditionProfile, userSymptoms, canonical []string, age *int, sex string, severityMap map[string]domain.Severity) (domain.DiseaseScore, bool) {
	var matched []domain.MatchedSymptom
	totalScore := 0.0

	for i, raw := range userSymptoms {
		bestMatch, bestScore := m.bestKnownSymptom(cond, canonical[i])
		if bestMatch == "" || bestScore <= 0 {
			continue
		}

		severity := domain.SeverityModerate
		if s, ok := severityMap[raw]; ok && s.IsValid() {
			severity = s
		}
		weighted := bestScore * severity.Multiplier()

		matched = append(matched, domain.MatchedSymptom{
			UserInput: raw,
			MatchedTo: bestMatch,
			Weight:    round2(weighted),
			Severity:  severity,
		})
		totalScore += weighted
	}

	if len(matched) == 0 {
		return domain.DiseaseScore{}, false
	}

	demoFactor, demoNotes := m.demographicFactor(cond, age, sex)
	adjusted := totalScore * demoFactor

	confidence := math.Min(round2(adjusted/math.Max(m.maxPossibleScore(cond, len(userSymptoms)), 1)), 0.99)

	urgency := domain.UrgencyLow
	switch {
	case adjusted >= cond.UrgencyThreshold*1.5:
		urgency = domain.UrgencyHigh
	case adjusted >= cond.UrgencyThreshold:
		urgency = domain.UrgencyModerate
	}

	var triage domain.Triage
	switch {
	case urgency == domain.UrgencyHigh && confidence > 0.5:
		triage = domain.TriageUrgent
	case urgency == domain.UrgencyHigh:
		triage = domain.TriagePrompt
	case urgency == domain.UrgencyModerate:
		triage = domain.TriageStandard
	default:
		triage = domain.TriageInformational
	}

	// Follow-ups only help in the ambiguous confidence band.
	hasFollowups := len(m.kb.QuestionsFor(cond.ID)) > 0 &&
		confidence >= 0.15 && confidence <= 0.65

	return domain.DiseaseScore{
		ID:                   cond.ID,
		Name:                 cond.Name,
		Icon:                 cond.Icon,
		BodySystem:           cond.BodySystem,
		BodySystemIcon:       cond.BodySystemIcon,
		Confidence:           confidence,
		Score:                round1(adjusted),
		RawScore:             round1(totalScore),
		MatchedSymptoms:      matched,
		Urgency:              urgency,
		Triage:               triage,
		Description:          cond.Description,
		SymptomCount:         len(matched),
		TotalSymptomsChecked: len(userSymptoms),
		DemographicNotes:     demoNotes,
		HasFollowupQuestions: hasFollowups,
	}, true
}

// bestKnownSymptom finds the single best-scoring known symptom for one
// canonicalized user symptom. An exact hit takes the table weight and
// stops the scan. Otherwise substring, token-overlap, and fuzzy
// candidates compete on resulting score; the fuzzy branch is gated on
// the raw table weight exceeding the current best, so a fuzzy candidate
// can be skipped even when it would have out-scored a token-overlap
// one. That gate is load-bearing for compatibility; do not tighten it.
func (m *SymptomMatcher) bestKnownSymptom(cond *knowledge.ConditionProfile, canonical string) (string, float64) {
	bestMatch := ""
	bestScore := 0.0

	for _, sw := range cond.Symptoms {
		if canonical == sw.Name {
			return sw.Name, sw.Weight
		} else if strings.Contains(sw.Name, canonical) || strings.Contains(canonical, sw.Name) {
			if sw.Weight > bestScore {
				bestMatch, bestScore = sw.Name, sw.Weight
			}
		} else {
			userTokens := tokenSet(canonical)
			knownTokens := tokenSet(sw.Name)
			overlap := overlapCount(userTokens, knownTokens)
			larger := len(userTokens)
			if len(knownTokens) > larger {
				larger = len(knownTokens)
			}
			if overlap >= 1 && float64(overlap)/float64(larger) > tokenOverlapThreshold {
				candidate := sw.Weight * float64(overlap) / float64(len(knownTokens))
				if candidate > bestScore {
					bestMatch, bestScore = sw.Name, candidate
				}
			}
		}

		if sw.Weight > bestScore {
			if sim := similarityRatio(canonical, sw.Name); sim >= fuzzySimilarityThreshold && sw.Weight*sim > bestScore {
				bestMatch, bestScore = sw.Name, sw.Weight*sim
			}
		}
	}

	return bestMatch, bestScore
}

// demographicFactor computes the multiplicative adjustment and its
// human-readable notes.
func (m *SymptomMatcher) demographicFactor(cond *knowledge.ConditionProfile, age *int, sex string) (float64, []string) {
	factor := 1.0
	notes := []string{}

	if age != nil && *age >= cond.AgeModifier.Threshold {
		factor *= cond.AgeModifier.Factor
		pct := int(math.Round((cond.AgeModifier.Factor - 1) * 100))
		notes = append(notes, fmt.Sprintf("Age %d increases %s risk (+%d%%)", *age, cond.Name, pct))
	}

	if sex != "" {
		sexFactor, ok := cond.SexModifier[strings.ToLower(sex)]
		if !ok {
			sexFactor = 1.0
		}
		if sexFactor != 1.0 {
			factor *= sexFactor
			pct := int(math.Round((sexFactor - 1) * 100))
			notes = append(notes, fmt.Sprintf("Sex-based risk adjustment (+%d%%)", pct))
		}
	}

	return factor, notes
}

// maxPossibleScore sums the n largest weights in the condition's
// table. n is the number of symptoms the user supplied, not the number
// matched: confidence is normalized against what this many symptoms
// could have scored at best.
func (m *SymptomMatcher) maxPossibleScore(cond *knowledge.ConditionProfile, n int) float64 {
	weights := make([]float64, len(cond.Symptoms))
	for i, sw := range cond.Symptoms {
		weights[i] = sw.Weight
	}
	sort.Sort(sort.Reverse(sort.Float64Slice(weights)))
	if n > len(weights) {
		n = len(weights)
	}
	sum := 0.0
	for _, w := range weights[:n] {
		sum += w
	}
	return sum
}

func tokenSet(s string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, tok := range strings.Fields(s) {
		set[tok] = struct{}{}
	}
	return set
}

func overlapCount(a, b map[string]struct{}) int {
	n := 0
	for tok := range a {
		if _, ok := b[tok]; ok {
			n++
		}
	}
	return n
}
