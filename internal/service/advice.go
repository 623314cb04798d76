package service

import (
	"fmt"

	"github.com/symptom-triage-server/internal/domain"
)

// AdviceGenerator produces the severity-tiered guidance block attached
// to every analysis. The tier depends on whether red-flag alerts fired
// and on the urgency of the top-ranked condition.
type AdviceGenerator struct{}

// NewAdviceGenerator creates an advice generator.
func NewAdviceGenerator() *AdviceGenerator {
	return &AdviceGenerator{}
}

// Generate builds the advice block. Emergency alerts dominate
// everything else; otherwise the top result's urgency selects the tier,
// and an empty result set gets the no-match guidance.
func (g *AdviceGenerator) Generate(results []domain.DiseaseScore, alerts []domain.Alert) domain.Advice {
	if len(alerts) > 0 {
		return domain.Advice{
			Level: domain.AdviceEmergency,
			Icon:  "🚨",
			Text: "CRITICAL: Some of your symptoms match patterns associated with medical emergencies. " +
				"Please review the emergency alerts above and seek immediate medical attention.",
			SelfCare: []string{},
		}
	}

	if len(results) == 0 {
		return domain.Advice{
			Level: domain.AdviceInformational,
			Icon:  "ℹ️",
			Text: "Based on the symptoms you described, I wasn't able to find a strong match " +
				"with the conditions in our database. Consider consulting a healthcare " +
				"professional for a thorough evaluation.",
			SelfCare: []string{
				"Keep a symptom diary to track patterns",
				"Stay hydrated and get adequate rest",
				"Schedule a check-up with your primary care physician",
			},
		}
	}

	top := results[0]
	switch top.Urgency {
	case domain.UrgencyHigh:
		return domain.Advice{
			Level: domain.AdviceUrgent,
			Icon:  "⚠️",
			Text: fmt.Sprintf("Your symptoms show a notable alignment with %s. "+
				"I strongly recommend consulting a healthcare professional promptly. "+
				"You can take our %s risk assessment for a more detailed analysis.",
				top.Name, top.Name),
			SelfCare: []string{
				"Do not ignore persistent or worsening symptoms",
				"Seek medical attention within 24-48 hours",
				fmt.Sprintf("Consider our detailed %s assessment for more insights", top.Name),
			},
		}
	case domain.UrgencyModerate:
		return domain.Advice{
			Level: domain.AdviceStandard,
			Icon:  "📋",
			Text: fmt.Sprintf("Your symptoms have some alignment with %s. "+
				"Consider taking our detailed assessment for a more comprehensive evaluation. "+
				"A follow-up with your doctor is also advisable.", top.Name),
			SelfCare: []string{
				"Monitor your symptoms and note any changes",
				"Maintain healthy lifestyle habits",
				"Schedule a routine check-up with your doctor",
			},
		}
	default:
		return domain.Advice{
			Level: domain.AdviceInformational,
			Icon:  "💡",
			Text: fmt.Sprintf("Your symptoms show a mild correlation with %s. "+
				"While this may not be urgent, you can take our assessment for peace of mind, "+
				"or monitor your symptoms and consult a doctor if they persist.", top.Name),
			SelfCare: []string{
				"Continue monitoring your symptoms",
				"Maintain a healthy diet and exercise routine",
				"Consult a healthcare provider if symptoms persist beyond 2 weeks",
			},
		}
	}
}
