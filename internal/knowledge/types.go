// Package knowledge holds the static triage knowledge base: the synonym
// table, emergency red-flag rules, weighted condition profiles, and the
// follow-up question bank. Everything here is loaded once into a
// Registry at process start and is read-only afterwards, so any number
// of requests may consult it concurrently without coordination.
//
// Entries that participate in first-match-wins or declaration-order
// tie-breaks (synonyms, red-flag rules, conditions, per-condition
// symptom weights) are ordered slices, not maps. The iteration order is
// part of the engine's observable behavior and must stay reproducible.
package knowledge

// SynonymEntry maps a colloquial phrase to its canonical symptom name.
type SynonymEntry struct {
	Phrase    string
	Canonical string
}

// RedFlagRule describes an emergency symptom combination. The rule
// fires when every Required symptom is present and at least
// MinSupporting of the Supporting symptoms are present.
type RedFlagRule struct {
	Name          string
	Required      []string
	Supporting    []string
	MinSupporting int
	Message       string
	Action        string
}

// SymptomWeight is one weighted symptom in a condition profile.
// Weights are positive, typically 0.5-3.0.
type SymptomWeight struct {
	Name   string
	Weight float64
}

// AgeModifier scales a condition's score for patients at or above the
// threshold age.
type AgeModifier struct {
	Threshold int
	Factor    float64
}

// ConditionProfile is one screened condition and its weighted symptom
// knowledge.
type ConditionProfile struct {
	ID               string
	Name             string
	Icon             string
	BodySystem       string
	BodySystemIcon   string
	Symptoms         []SymptomWeight
	UrgencyThreshold float64
	Description      string
	AgeModifier      AgeModifier
	SexModifier      map[string]float64
}

// QuestionKind distinguishes the two follow-up question variants.
type QuestionKind string

const (
	QuestionYesNo  QuestionKind = "yesno"
	QuestionSelect QuestionKind = "select"
)

// Reserved boost keys. BoostGlobal multiplies both score and
// confidence; BoostCrisis flags a crisis escalation and carries no
// score change. Any other key adds its value to the score.
const (
	BoostGlobal = "_global"
	BoostCrisis = "_crisis"
)

// Boost is one score adjustment applied when a follow-up answer
// matches. Boosts are ordered: they apply in declaration order, which
// is observable through intermediate rounding.
type Boost struct {
	Symptom string  `json:"symptom"`
	Value   float64 `json:"value"`
}

// FollowupQuestion is a tagged union over the two question variants:
// yes/no questions carry YesBoost, single-select questions carry
// Options and OptionBoosts.
type FollowupQuestion struct {
	ID           string             `json:"id"`
	Prompt       string             `json:"question"`
	Kind         QuestionKind       `json:"type"`
	YesBoost     []Boost            `json:"yes_boost,omitempty"`
	Options      []string           `json:"options,omitempty"`
	OptionBoosts map[string][]Boost `json:"boosts,omitempty"`
}
