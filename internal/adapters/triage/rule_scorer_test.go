package triage_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lifeline-ai/backend/internal/adapters/triage"
	"github.com/lifeline-ai/backend/internal/domain/entities"
	"github.com/lifeline-ai/backend/pkg/config"
)

func testThresholds() config.TriageConfig {
	return config.TriageConfig{
		ConfidenceThreshold: 0.7,
		CriticalThreshold:   0.8,
		HighThreshold:       0.6,
		ModerateThreshold:   0.4,
	}
}

func TestRuleScorer_Score_Tiers(t *testing.T) {
	scorer := triage.NewRuleScorer(testThresholds())

	tests := []struct {
		name          string
		emergencyType entities.EmergencyType
		content       string
		want          entities.SeverityLevel
	}{
		{
			name:          "cardiac with critical keywords",
			emergencyType: entities.EmergencyCardiac,
			content:       "chest pain and difficulty breathing",
			want:          entities.SeverityCritical,
		},
		{
			name:          "respiratory category alone escalates",
			emergencyType: entities.EmergencyRespiratory,
			content:       "asthma flare",
			want:          entities.SeverityCritical,
		},
		{
			name:          "single high keyword without category escalation",
			emergencyType: entities.EmergencyMedical,
			content:       "this feels urgent",
			want:          entities.SeverityHigh,
		},
		{
			name:          "single moderate keyword",
			emergencyType: entities.EmergencyTrauma,
			content:       "my arm hurts a little",
			want:          entities.SeverityModerate,
		},
		{
			name:          "no signal lands in low",
			emergencyType: entities.EmergencyMedical,
			content:       "feeling a bit tired",
			want:          entities.SeverityLow,
		},
		{
			name:          "empty content lands in low",
			emergencyType: entities.EmergencyUnknown,
			content:       "",
			want:          entities.SeverityLow,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := scorer.Score(context.Background(), tt.emergencyType, tt.content, 0.8)
			require.NoError(t, err)
			assert.Equal(t, tt.want, result.Severity)
			assert.GreaterOrEqual(t, result.Score, 0.0)
			assert.LessOrEqual(t, result.Score, 1.0)
		})
	}
}

func TestRuleScorer_Deterministic(t *testing.T) {
	scorer := triage.NewRuleScorer(testThresholds())

	for i := 0; i < 10; i++ {
		result, err := scorer.Score(context.Background(), entities.EmergencyBleeding, "severe bleeding from a wound", 0.75)
		require.NoError(t, err)
		assert.Equal(t, entities.SeverityCritical, result.Severity)
		assert.InDelta(t, 0.75, result.Score, 1e-9)
	}
}

func TestRuleScorer_ConfidenceScalesScoreNotTier(t *testing.T) {
	scorer := triage.NewRuleScorer(testThresholds())

	high, err := scorer.Score(context.Background(), entities.EmergencyCardiac, "chest pain", 0.9)
	require.NoError(t, err)
	low, err := scorer.Score(context.Background(), entities.EmergencyCardiac, "chest pain", 0.5)
	require.NoError(t, err)

	assert.Equal(t, high.Severity, low.Severity)
	assert.Greater(t, high.Score, low.Score)
}

func TestRuleScorer_Bucket_Monotonic(t *testing.T) {
	scorer := triage.NewRuleScorer(testThresholds())

	rank := map[entities.SeverityLevel]int{
		entities.SeverityLow:      0,
		entities.SeverityModerate: 1,
		entities.SeverityHigh:     2,
		entities.SeverityCritical: 3,
	}

	base := triage.SignalScores{"moderate_keywords": 0.45}
	baseTier, _ := scorer.Bucket(base)

	raised := triage.SignalScores{"moderate_keywords": 0.45, "critical_keywords": 0.85}
	raisedTier, _ := scorer.Bucket(raised)

	assert.GreaterOrEqual(t, rank[raisedTier], rank[baseTier])
}

func TestRuleScorer_Bucket_EmptySignals(t *testing.T) {
	scorer := triage.NewRuleScorer(testThresholds())

	tier, sum := scorer.Bucket(triage.SignalScores{})
	assert.Equal(t, entities.SeverityLow, tier)
	assert.Zero(t, sum)
}
