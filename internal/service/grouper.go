package service

import (
	"github.com/symptom-triage-server/internal/domain"
	"github.com/symptom-triage-server/internal/knowledge"
)

// maxFollowupConditions caps how many top results get follow-up
// question banks attached.
const maxFollowupConditions = 3

// ResultGrouper organizes ranked results for display and attaches
// follow-up question banks where they can sharpen an ambiguous match.
type ResultGrouper struct {
	kb *knowledge.Registry
}

// NewResultGrouper creates a grouper over the registry.
func NewResultGrouper(kb *knowledge.Registry) *ResultGrouper {
	return &ResultGrouper{kb: kb}
}

// GroupByBodySystem buckets results by body system. Groups appear in
// first-seen order and each group keeps its results in rank order.
func (g *ResultGrouper) GroupByBodySystem(results []domain.DiseaseScore) []domain.BodySystemGroup {
	groups := []domain.BodySystemGroup{}
	index := map[string]int{}

	for _, r := range results {
		i, seen := index[r.BodySystem]
		if !seen {
			i = len(groups)
			index[r.BodySystem] = i
			groups = append(groups, domain.BodySystemGroup{
				System: r.BodySystem,
				Icon:   r.BodySystemIcon,
			})
		}
		groups[i].Diseases = append(groups[i].Diseases, r)
	}

	return groups
}

// CollectFollowupQuestions gathers the question banks for the top
// results that flagged HasFollowupQuestions during scoring.
func (g *ResultGrouper) CollectFollowupQuestions(results []domain.DiseaseScore) []domain.ConditionFollowups {
	followups := []domain.ConditionFollowups{}

	limit := len(results)
	if limit > maxFollowupConditions {
		limit = maxFollowupConditions
	}

	for _, r := range results[:limit] {
		if !r.HasFollowupQuestions {
			continue
		}
		followups = append(followups, domain.ConditionFollowups{
			DiseaseID:   r.ID,
			DiseaseName: r.Name,
			Questions:   g.kb.QuestionsFor(r.ID),
		})
	}

	return followups
}
