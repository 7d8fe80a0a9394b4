package triage

import (
	"context"
	"strings"

	"github.com/lifeline-ai/backend/internal/domain/entities"
	"github.com/lifeline-ai/backend/pkg/config"
)

var (
	criticalKeywords = []string{
		"unconscious", "not breathing", "cardiac arrest", "severe bleeding",
		"can't breathe", "choking", "severe pain", "chest pain", "heart attack",
	}
	highKeywords = []string{
		"broken", "fracture", "burn", "poison", "severe", "urgent", "emergency",
	}
	moderateKeywords = []string{
		"pain", "hurt", "injury", "bleeding", "cut", "wound",
	}

	// Categories whose presence alone escalates the signal sum into the
	// matching tier, independent of keyword hits.
	criticalTypes = map[entities.EmergencyType]bool{
		entities.EmergencyCardiac:     true,
		entities.EmergencyRespiratory: true,
	}
	highTypes = map[entities.EmergencyType]bool{
		entities.EmergencyBleeding: true,
		entities.EmergencyFracture: true,
		entities.EmergencyBurn:     true,
	}
)

// SignalScores maps extracted signal names to numeric scores.
type SignalScores map[string]float64

// RuleScorer buckets a weighted sum of text and category signals into a
// severity tier using the configured thresholds. It is deterministic: the
// same input always produces the same tier.
type RuleScorer struct {
	thresholds config.TriageConfig
	weights    map[string]float64
}

// NewRuleScorer creates a severity scorer over the given thresholds.
func NewRuleScorer(thresholds config.TriageConfig) *RuleScorer {
	return &RuleScorer{thresholds: thresholds}
}

// Score extracts severity signals from the content and category, buckets
// their weighted sum into a tier, and scales the reported score by the
// classification confidence. Scaling happens after bucketing, so confidence
// never changes the tier.
func (s *RuleScorer) Score(ctx context.Context, emergencyType entities.EmergencyType, content string, confidence float64) (*entities.SeverityAssessment, error) {
	signals := extractSignals(emergencyType, content, s.thresholds)
	severity, raw := s.Bucket(signals)

	score := raw
	if score > 1 {
		score = 1
	}
	if confidence > 0 && confidence <= 1 {
		score *= confidence
	}

	return &entities.SeverityAssessment{
		Severity:  severity,
		Score:     score,
		Reasoning: "rule-based severity assessment",
	}, nil
}

// Bucket maps a weighted signal sum into one of the four tiers. Raising any
// signal's score can only raise the sum, so the tier is monotonic in every
// signal. No signal at all lands in the low tier.
func (s *RuleScorer) Bucket(signals SignalScores) (entities.SeverityLevel, float64) {
	var sum float64
	for name, value := range signals {
		weight, ok := s.weights[name]
		if !ok {
			weight = 1.0
		}
		sum += weight * value
	}

	switch {
	case sum >= s.thresholds.CriticalThreshold:
		return entities.SeverityCritical, sum
	case sum >= s.thresholds.HighThreshold:
		return entities.SeverityHigh, sum
	case sum >= s.thresholds.ModerateThreshold:
		return entities.SeverityModerate, sum
	default:
		return entities.SeverityLow, sum
	}
}

// extractSignals derives signal scores from keyword hits and the detected
// category. Each keyword class saturates at its tier's threshold plus a small
// per-hit increment, so a single strong signal is enough to clear its tier.
func extractSignals(emergencyType entities.EmergencyType, content string, thresholds config.TriageConfig) SignalScores {
	text := strings.ToLower(content)
	signals := SignalScores{}

	if hits := countMatches(text, criticalKeywords); hits > 0 {
		signals["critical_keywords"] = thresholds.CriticalThreshold + 0.05*float64(hits)
	}
	if hits := countMatches(text, highKeywords); hits > 0 {
		signals["high_keywords"] = thresholds.HighThreshold + 0.05*float64(hits)
	}
	if hits := countMatches(text, moderateKeywords); hits > 0 {
		signals["moderate_keywords"] = thresholds.ModerateThreshold + 0.05*float64(hits)
	}

	if criticalTypes[emergencyType] {
		signals["category"] = thresholds.CriticalThreshold
	} else if highTypes[emergencyType] {
		signals["category"] = thresholds.HighThreshold
	}

	return signals
}
