package service

import (
	"math"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/symptom-triage-server/internal/domain"
	"github.com/symptom-triage-server/internal/knowledge"
)

// defaultUrgencyThreshold is the fallback when re-tiering a result
// whose condition is somehow absent from the registry.
const defaultUrgencyThreshold = 5.0

// FollowupRefiner applies follow-up answers to an existing result set,
// re-sorts, and re-tiers.
type FollowupRefiner struct {
	kb     *knowledge.Registry
	logger *logrus.Logger
}

// NewFollowupRefiner creates a refiner over the registry.
func NewFollowupRefiner(kb *knowledge.Registry, logger *logrus.Logger) *FollowupRefiner {
	return &FollowupRefiner{kb: kb, logger: logger}
}

// Refine applies every answered follow-up question's boosts to the
// results, then re-sorts by score and re-tiers. It reports whether any
// answer triggered a crisis escalation. Unknown question ids and
// undeclared select options are ignored.
//
// Re-tiering here uses a simpler triage mapping than the initial
// matching pass (no confidence split between urgent and prompt). The
// two passes intentionally diverge; keep them separate.
func (f *FollowupRefiner) Refine(results []domain.DiseaseScore, answers map[string]string) ([]domain.DiseaseScore, bool) {
	crisisTriggered := false

	for i := range results {
		for _, q := range f.kb.QuestionsFor(results[i].ID) {
			answer, ok := answers[q.ID]
			if !ok {
				continue
			}

			switch q.Kind {
			case knowledge.QuestionYesNo:
				if affirmative(answer) {
					if f.applyBoosts(&results[i], q.YesBoost) {
						crisisTriggered = true
					}
				}
			case knowledge.QuestionSelect:
				if boosts, declared := q.OptionBoosts[answer]; declared {
					if f.applyBoosts(&results[i], boosts) {
						crisisTriggered = true
					}
				}
			}
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	for i := range results {
		threshold := defaultUrgencyThreshold
		if cond, ok := f.kb.Condition(results[i].ID); ok {
			threshold = cond.UrgencyThreshold
		}
		switch {
		case results[i].Score >= threshold*1.5:
			results[i].Urgency = domain.UrgencyHigh
			results[i].Triage = domain.TriageUrgent
		case results[i].Score >= threshold:
			results[i].Urgency = domain.UrgencyModerate
			results[i].Triage = domain.TriageStandard
		default:
			results[i].Urgency = domain.UrgencyLow
			results[i].Triage = domain.TriageInformational
		}
	}

	if crisisTriggered {
		f.logger.Warn("Crisis escalation triggered by follow-up answer")
	}

	return results, crisisTriggered
}

// applyBoosts applies one ordered boost list to a result and reports
// whether a crisis boost was present. Rounding happens per boost, so
// later boosts compound on rounded values.
func (f *FollowupRefiner) applyBoosts(r *domain.DiseaseScore, boosts []knowledge.Boost) bool {
	crisis := false
	for _, b := range boosts {
		switch b.Symptom {
		case knowledge.BoostGlobal:
			r.Score = round1(r.Score * b.Value)
			r.Confidence = math.Min(round2(r.Confidence*b.Value), 0.99)
		case knowledge.BoostCrisis:
			crisis = true
		default:
			r.Score = round1(r.Score + b.Value)
		}
	}
	return crisis
}

// affirmative reports whether a yes/no answer counts as yes.
func affirmative(answer string) bool {
	switch strings.ToLower(answer) {
	case "yes", "true", "1":
		return true
	default:
		return false
	}
}
