package knowledge

import "fmt"

// Registry is the indexed, immutable knowledge base. Construct it once
// with NewRegistry and share it across requests.
type Registry struct {
	Synonyms    []SynonymEntry
	RedFlags    []RedFlagRule
	Conditions  []*ConditionProfile
	Suggestions []string
	Disclaimer  string

	synonymIndex   map[string]string
	conditionIndex map[string]*ConditionProfile
	followups      map[string][]FollowupQuestion
}

// NewRegistry builds the registry from the static data tables and
// validates every invariant the engine relies on.
func NewRegistry() (*Registry, error) {
	r := &Registry{
		Synonyms:       synonymTable,
		RedFlags:       redFlagRules,
		Conditions:     conditionProfiles,
		Suggestions:    symptomSuggestions,
		Disclaimer:     DisclaimerText,
		synonymIndex:   make(map[string]string, len(synonymTable)),
		conditionIndex: make(map[string]*ConditionProfile, len(conditionProfiles)),
		followups:      followupQuestions,
	}

	for _, s := range r.Synonyms {
		if s.Phrase == "" || s.Canonical == "" {
			return nil, fmt.Errorf("synonym table: empty phrase or canonical name")
		}
		if _, dup := r.synonymIndex[s.Phrase]; dup {
			return nil, fmt.Errorf("synonym table: duplicate phrase %q", s.Phrase)
		}
		r.synonymIndex[s.Phrase] = s.Canonical
	}

	for _, rule := range r.RedFlags {
		if len(rule.Required) == 0 {
			return nil, fmt.Errorf("red-flag rule %q: required symptom set is empty", rule.Name)
		}
		if rule.MinSupporting > len(rule.Supporting) {
			return nil, fmt.Errorf("red-flag rule %q: min_supporting %d exceeds supporting set size %d",
				rule.Name, rule.MinSupporting, len(rule.Supporting))
		}
	}

	for _, c := range r.Conditions {
		if c.ID == "" {
			return nil, fmt.Errorf("condition %q: missing id", c.Name)
		}
		if len(c.Symptoms) == 0 {
			return nil, fmt.Errorf("condition %q: no symptom entries", c.ID)
		}
		for _, sw := range c.Symptoms {
			if sw.Weight <= 0 {
				return nil, fmt.Errorf("condition %q: symptom %q has non-positive weight %v",
					c.ID, sw.Name, sw.Weight)
			}
		}
		if _, dup := r.conditionIndex[c.ID]; dup {
			return nil, fmt.Errorf("condition %q: duplicate id", c.ID)
		}
		r.conditionIndex[c.ID] = c
	}

	for id := range r.followups {
		if _, ok := r.conditionIndex[id]; !ok {
			return nil, fmt.Errorf("follow-up questions reference unknown condition %q", id)
		}
	}

	return r, nil
}

// Condition returns the profile for an id.
func (r *Registry) Condition(id string) (*ConditionProfile, bool) {
	c, ok := r.conditionIndex[id]
	return c, ok
}

// CanonicalFor returns the canonical name for an exact synonym phrase.
func (r *Registry) CanonicalFor(phrase string) (string, bool) {
	c, ok := r.synonymIndex[phrase]
	return c, ok
}

// QuestionsFor returns the follow-up question bank for a condition, or
// nil when the condition has none.
func (r *Registry) QuestionsFor(conditionID string) []FollowupQuestion {
	return r.followups[conditionID]
}

// RedFlag returns the rule with the given name.
func (r *Registry) RedFlag(name string) (RedFlagRule, bool) {
	for _, rule := range r.RedFlags {
		if rule.Name == name {
			return rule, true
		}
	}
	return RedFlagRule{}, false
}

// SynonymCount reports the size of the synonym table.
func (r *Registry) SynonymCount() int { return len(r.Synonyms) }
