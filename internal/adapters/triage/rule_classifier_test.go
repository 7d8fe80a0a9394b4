package triage_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lifeline-ai/backend/internal/adapters/triage"
	"github.com/lifeline-ai/backend/internal/domain/entities"
)

func TestRuleClassifier_Classify(t *testing.T) {
	classifier := triage.NewRuleClassifier()

	tests := []struct {
		name       string
		content    string
		wantType   entities.EmergencyType
		confidence float64
	}{
		{
			name:       "cardiac wins tie over respiratory",
			content:    "I have chest pain and difficulty breathing",
			wantType:   entities.EmergencyCardiac,
			confidence: 0.6,
		},
		{
			name:       "bleeding with multiple hits",
			content:    "he is bleeding badly from a cut wound",
			wantType:   entities.EmergencyBleeding,
			confidence: 0.8,
		},
		{
			name:       "burn",
			content:    "scalded my hand with hot water",
			wantType:   entities.EmergencyBurn,
			confidence: 0.7,
		},
		{
			name:       "poisoning",
			content:    "she ingested a toxic chemical",
			wantType:   entities.EmergencyPoisoning,
			confidence: 0.8,
		},
		{
			name:       "no match yields unknown",
			content:    "the weather is nice today",
			wantType:   entities.EmergencyUnknown,
			confidence: 0.3,
		},
		{
			name:       "empty input yields unknown",
			content:    "",
			wantType:   entities.EmergencyUnknown,
			confidence: 0.3,
		},
		{
			name:       "confidence caps at 0.9",
			content:    "heart attack with cardiac arrest, chest pain and palpitations",
			wantType:   entities.EmergencyCardiac,
			confidence: 0.9,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := classifier.Classify(context.Background(), tt.content)
			require.NoError(t, err)
			assert.Equal(t, tt.wantType, result.Type)
			assert.InDelta(t, tt.confidence, result.Confidence, 1e-9)
			assert.True(t, result.Type.IsValid())
		})
	}
}

func TestRuleClassifier_AlwaysReturnsValidType(t *testing.T) {
	classifier := triage.NewRuleClassifier()

	inputs := []string{"", "   ", "qwerty", "HELP", "fall from ladder", "fever and nausea"}
	for _, content := range inputs {
		result, err := classifier.Classify(context.Background(), content)
		require.NoError(t, err)
		assert.True(t, result.Type.IsValid(), "input %q", content)
		assert.GreaterOrEqual(t, result.Confidence, 0.3)
		assert.LessOrEqual(t, result.Confidence, 0.9)
	}
}

func TestRuleClassifier_CaseInsensitive(t *testing.T) {
	classifier := triage.NewRuleClassifier()

	lower, err := classifier.Classify(context.Background(), "chest pain")
	require.NoError(t, err)
	upper, err := classifier.Classify(context.Background(), "CHEST PAIN")
	require.NoError(t, err)

	assert.Equal(t, lower.Type, upper.Type)
	assert.Equal(t, lower.Confidence, upper.Confidence)
}
