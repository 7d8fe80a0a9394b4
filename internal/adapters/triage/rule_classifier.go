package triage

import (
	"context"
	"strings"

	"github.com/lifeline-ai/backend/internal/domain/entities"
	"github.com/lifeline-ai/backend/internal/domain/providers"
)

// categoryKeywords holds the keyword set for one emergency category. The
// slice order below is the fixed match precedence: on equal hit counts the
// earlier category wins.
type categoryKeywords struct {
	Type     entities.EmergencyType
	Keywords []string
}

var classifierKeywords = []categoryKeywords{
	{entities.EmergencyCardiac, []string{"chest pain", "heart", "cardiac", "heart attack", "cardiac arrest", "palpitations"}},
	{entities.EmergencyRespiratory, []string{"breathing", "choke", "asthma", "shortness of breath", "can't breathe", "suffocating"}},
	{entities.EmergencyBleeding, []string{"bleeding", "blood", "cut", "wound", "hemorrhage", "laceration"}},
	{entities.EmergencyFracture, []string{"broken", "fracture", "bone", "dislocated", "sprain"}},
	{entities.EmergencyBurn, []string{"burn", "scald", "fire", "hot", "thermal"}},
	{entities.EmergencyPoisoning, []string{"poison", "toxic", "overdose", "ingested", "chemical"}},
	{entities.EmergencyTrauma, []string{"injury", "hurt", "accident", "fall", "hit", "struck"}},
	{entities.EmergencyMedical, []string{"fever", "pain", "sick", "ill", "nausea", "dizzy", "unconscious"}},
}

// RuleClassifier matches input text against per-category keyword sets. It is
// a total function: any input, including the empty string, yields a valid
// category.
type RuleClassifier struct{}

// NewRuleClassifier creates a keyword-based emergency classifier.
func NewRuleClassifier() providers.EmergencyClassifier {
	return &RuleClassifier{}
}

// Classify picks the category with the most keyword hits. Confidence grows
// with the hit count and is capped at 0.9; no match yields the unknown
// category with low confidence.
func (c *RuleClassifier) Classify(ctx context.Context, content string) (*entities.Classification, error) {
	text := strings.ToLower(content)

	best := entities.EmergencyUnknown
	bestHits := 0

	for _, ck := range classifierKeywords {
		hits := countMatches(text, ck.Keywords)
		if hits > bestHits {
			best = ck.Type
			bestHits = hits
		}
	}

	if bestHits == 0 {
		return &entities.Classification{
			Type:       entities.EmergencyUnknown,
			Confidence: 0.3,
			Reasoning:  "rule-based classification",
		}, nil
	}

	confidence := 0.5 + float64(bestHits)*0.1
	if confidence > 0.9 {
		confidence = 0.9
	}

	return &entities.Classification{
		Type:       best,
		Confidence: confidence,
		Reasoning:  "rule-based classification",
	}, nil
}

func countMatches(text string, keywords []string) int {
	hits := 0
	for _, keyword := range keywords {
		if strings.Contains(text, keyword) {
			hits++
		}
	}
	return hits
}
