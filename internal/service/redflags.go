package service

import (
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/symptom-triage-server/internal/domain"
	"github.com/symptom-triage-server/internal/knowledge"
)

// AlertSeverityCritical is the severity carried by every red-flag
// alert.
const AlertSeverityCritical = "critical"

// RedFlagDetector evaluates canonicalized symptoms against the
// emergency rule set. Detection is independent of the scoring engine
// and of demographics: it sees only the symptom set.
type RedFlagDetector struct {
	kb     *knowledge.Registry
	logger *logrus.Logger
}

// NewRedFlagDetector creates a detector over the registry.
func NewRedFlagDetector(kb *knowledge.Registry, logger *logrus.Logger) *RedFlagDetector {
	return &RedFlagDetector{kb: kb, logger: logger}
}

// Detect returns an alert for every rule whose required symptoms are
// all present and whose supporting-symptom count meets the rule's
// minimum. Alerts are emitted in rule declaration order.
func (d *RedFlagDetector) Detect(canonicalSymptoms []string) []domain.Alert {
	alerts := []domain.Alert{}

	for _, rule := range d.kb.RedFlags {
		requiredMet := true
		for _, req := range rule.Required {
			if !symptomPresent(req, canonicalSymptoms) {
				requiredMet = false
				break
			}
		}
		if !requiredMet {
			continue
		}

		supportingCount := 0
		for _, sup := range rule.Supporting {
			if symptomPresent(sup, canonicalSymptoms) {
				supportingCount++
			}
		}
		if supportingCount < rule.MinSupporting {
			continue
		}

		d.logger.WithFields(logrus.Fields{
			"rule":             rule.Name,
			"supporting_count": supportingCount,
		}).Warn("Red-flag rule fired")

		alerts = append(alerts, domain.Alert{
			Name:     rule.Name,
			Message:  rule.Message,
			Action:   rule.Action,
			Severity: AlertSeverityCritical,
		})
	}

	return alerts
}

// symptomPresent reports whether target matches any symptom in the set,
// with substring tolerance in both directions to absorb symptom name
// variations.
func symptomPresent(target string, symptoms []string) bool {
	for _, s := range symptoms {
		if strings.Contains(s, target) || strings.Contains(target, s) {
			return true
		}
	}
	return false
}
