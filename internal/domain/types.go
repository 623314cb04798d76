// Package domain contains the core entities and types for rule-based
// symptom triage: urgency and triage tiers, severity levels, and the
// per-request result records produced by the matching engine.
package domain

import "errors"

// Urgency represents how strongly a condition's score exceeds its
// configured threshold.
type Urgency string

const (
	UrgencyLow      Urgency = "low"
	UrgencyModerate Urgency = "moderate"
	UrgencyHigh     Urgency = "high"
)

// Triage represents the recommended care pathway derived from urgency
// and confidence.
type Triage string

const (
	TriageInformational Triage = "informational"
	TriageStandard      Triage = "standard"
	TriagePrompt        Triage = "prompt"
	TriageUrgent        Triage = "urgent"
)

// AdviceLevel tiers the generated guidance text.
type AdviceLevel string

const (
	AdviceEmergency     AdviceLevel = "emergency"
	AdviceUrgent        AdviceLevel = "urgent"
	AdviceStandard      AdviceLevel = "standard"
	AdviceInformational AdviceLevel = "informational"
)

// Severity is the user-declared intensity of a single symptom.
type Severity string

const (
	SeverityMild     Severity = "mild"
	SeverityModerate Severity = "moderate"
	SeveritySevere   Severity = "severe"
)

// Sex values accepted for demographic adjustment.
const (
	SexMale   = "male"
	SexFemale = "female"
	SexOther  = "other"
)

var (
	ErrNotFound       = errors.New("not found")
	ErrInvalidUrgency = errors.New("invalid urgency tier")
	ErrInvalidTriage  = errors.New("invalid triage level")
)

// IsValid reports whether the urgency tier is one the engine produces.
func (u Urgency) IsValid() bool {
	switch u {
	case UrgencyLow, UrgencyModerate, UrgencyHigh:
		return true
	default:
		return false
	}
}

func (u Urgency) String() string { return string(u) }

// IsValid reports whether the triage level is one the engine produces.
func (t Triage) IsValid() bool {
	switch t {
	case TriageInformational, TriageStandard, TriagePrompt, TriageUrgent:
		return true
	default:
		return false
	}
}

func (t Triage) String() string { return string(t) }

// IsValid reports whether the severity is a recognized level.
func (s Severity) IsValid() bool {
	switch s {
	case SeverityMild, SeverityModerate, SeveritySevere:
		return true
	default:
		return false
	}
}

// Multiplier returns the score multiplier applied to a matched symptom
// declared at this severity. Unrecognized severities scale by 1.0.
func (s Severity) Multiplier() float64 {
	switch s {
	case SeverityMild:
		return 0.7
	case SeveritySevere:
		return 1.4
	default:
		return 1.0
	}
}

// ValidSex reports whether the value is an accepted demographic sex.
func ValidSex(sex string) bool {
	switch sex {
	case SexMale, SexFemale, SexOther:
		return true
	default:
		return false
	}
}
