package triage

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/lifeline-ai/backend/internal/domain/entities"
	"github.com/lifeline-ai/backend/internal/domain/providers"
	"github.com/lifeline-ai/backend/internal/infrastructure/observability"
)

// The fallback decorators realize the AI-then-rules contract: every error
// from the primary strategy (timeout, transport, rate limit, malformed
// output) is recovered locally by the deterministic fallback and never
// surfaces to the caller.

// FallbackClassifier tries the primary classifier and falls back on error.
type FallbackClassifier struct {
	primary  providers.EmergencyClassifier
	fallback providers.EmergencyClassifier
	metrics  *observability.Metrics
}

// NewFallbackClassifier wraps primary with a rule-based fallback.
func NewFallbackClassifier(primary, fallback providers.EmergencyClassifier, metrics *observability.Metrics) providers.EmergencyClassifier {
	return &FallbackClassifier{primary: primary, fallback: fallback, metrics: metrics}
}

func (c *FallbackClassifier) Classify(ctx context.Context, content string) (*entities.Classification, error) {
	result, err := c.primary.Classify(ctx, content)
	if err == nil {
		return result, nil
	}
	recordFallback(ctx, c.metrics, "classifier", err)
	return c.fallback.Classify(ctx, content)
}

// FallbackScorer tries the primary severity scorer and falls back on error.
type FallbackScorer struct {
	primary  providers.SeverityScorer
	fallback providers.SeverityScorer
	metrics  *observability.Metrics
}

// NewFallbackScorer wraps primary with a rule-based fallback.
func NewFallbackScorer(primary, fallback providers.SeverityScorer, metrics *observability.Metrics) providers.SeverityScorer {
	return &FallbackScorer{primary: primary, fallback: fallback, metrics: metrics}
}

func (s *FallbackScorer) Score(ctx context.Context, emergencyType entities.EmergencyType, content string, confidence float64) (*entities.SeverityAssessment, error) {
	result, err := s.primary.Score(ctx, emergencyType, content, confidence)
	if err == nil {
		return result, nil
	}
	recordFallback(ctx, s.metrics, "scorer", err)
	return s.fallback.Score(ctx, emergencyType, content, confidence)
}

// FallbackGenerator tries the primary generator and falls back on error.
type FallbackGenerator struct {
	primary  providers.InstructionGenerator
	fallback providers.InstructionGenerator
	metrics  *observability.Metrics
}

// NewFallbackGenerator wraps primary with a template-based fallback.
func NewFallbackGenerator(primary, fallback providers.InstructionGenerator, metrics *observability.Metrics) providers.InstructionGenerator {
	return &FallbackGenerator{primary: primary, fallback: fallback, metrics: metrics}
}

func (g *FallbackGenerator) Generate(ctx context.Context, emergencyType entities.EmergencyType, severity entities.SeverityLevel) ([]entities.FirstAidInstruction, error) {
	result, err := g.primary.Generate(ctx, emergencyType, severity)
	if err == nil {
		return result, nil
	}
	recordFallback(ctx, g.metrics, "generator", err)
	return g.fallback.Generate(ctx, emergencyType, severity)
}

func recordFallback(ctx context.Context, metrics *observability.Metrics, component string, err error) {
	log.Warn().Err(err).Str("component", component).Msg("AI path failed, using rule-based fallback")
	if metrics != nil {
		observability.RecordAIFallback(ctx, metrics, component)
	}
}
