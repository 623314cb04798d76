// Package service implements the symptom-triage engine: synonym
// resolution, red-flag detection, weighted condition matching,
// follow-up refinement, advice generation, and result grouping.
package service

import (
	"strings"

	"github.com/symptom-triage-server/internal/domain"
	"github.com/symptom-triage-server/internal/knowledge"
)

// SynonymResolver canonicalizes colloquial symptom phrases against the
// knowledge base. Resolution is a pure function of the input and the
// static table.
type SynonymResolver struct {
	kb *knowledge.Registry
}

// NewSynonymResolver creates a resolver over the registry.
func NewSynonymResolver(kb *knowledge.Registry) *SynonymResolver {
	return &SynonymResolver{kb: kb}
}

// Resolve maps a raw phrase to its canonical symptom name. Lookup is
// case-insensitive: exact table hit first, then the first
// substring-compatible entry in table order, then the lower-cased input
// itself. Unknown phrases pass through rather than failing.
func (r *SynonymResolver) Resolve(text string) string {
	lower := strings.ToLower(strings.TrimSpace(text))

	if canonical, ok := r.kb.CanonicalFor(lower); ok {
		return canonical
	}

	// First substring-compatible entry wins, in declared table order.
	for _, s := range r.kb.Synonyms {
		if strings.Contains(lower, s.Phrase) || strings.Contains(s.Phrase, lower) {
			return s.Canonical
		}
	}

	return lower
}

// ResolveAll canonicalizes every symptom and logs the resolutions that
// changed the wording.
func (r *SynonymResolver) ResolveAll(symptoms []string) ([]string, []domain.ExpansionEntry) {
	canonical := make([]string, 0, len(symptoms))
	log := []domain.ExpansionEntry{}
	for _, s := range symptoms {
		resolved := r.Resolve(s)
		canonical = append(canonical, resolved)
		if resolved != strings.ToLower(strings.TrimSpace(s)) {
			log = append(log, domain.ExpansionEntry{Original: s, ResolvedTo: resolved})
		}
	}
	return canonical, log
}
