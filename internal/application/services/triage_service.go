package services

import (
	"context"
	"strings"
	"time"

	"github.com/lifeline-ai/backend/internal/domain/entities"
	"github.com/lifeline-ai/backend/internal/domain/providers"
	"github.com/lifeline-ai/backend/internal/infrastructure/observability"
	"github.com/lifeline-ai/backend/pkg/config"
	apperrors "github.com/lifeline-ai/backend/pkg/errors"
)

// estimatedResponseMinutes is the response-time estimate attached when
// calling emergency services is advised.
const estimatedResponseMinutes = 15

// TriageService orchestrates one emergency request: classify, score,
// generate first aid steps, and resolve the nearest hospital. All strategies
// are injected at construction; the AI-vs-rules decision is made once there,
// not per call.
type TriageService struct {
	classifier providers.EmergencyClassifier
	scorer     providers.SeverityScorer
	generator  providers.InstructionGenerator
	hospitals  *HospitalFinderService
	cfg        config.TriageConfig
}

// NewTriageService creates a new triage orchestrator.
func NewTriageService(
	classifier providers.EmergencyClassifier,
	scorer providers.SeverityScorer,
	generator providers.InstructionGenerator,
	hospitals *HospitalFinderService,
	cfg config.TriageConfig,
) *TriageService {
	return &TriageService{
		classifier: classifier,
		scorer:     scorer,
		generator:  generator,
		hospitals:  hospitals,
		cfg:        cfg,
	}
}

// Detect classifies the text and scores its severity.
func (s *TriageService) Detect(ctx context.Context, content string) (*entities.EmergencyDetection, *entities.SeverityAssessment, error) {
	if strings.TrimSpace(content) == "" {
		return nil, nil, apperrors.NewValidationError("emergency description must not be empty")
	}

	classification, err := s.classifier.Classify(ctx, content)
	if err != nil {
		return nil, nil, apperrors.NewInternalError("classification failed", err)
	}

	assessment, err := s.scorer.Score(ctx, classification.Type, content, classification.Confidence)
	if err != nil {
		return nil, nil, apperrors.NewInternalError("severity scoring failed", err)
	}

	detection := &entities.EmergencyDetection{
		EmergencyType: classification.Type,
		Severity:      assessment.Severity,
		Confidence:    classification.Confidence,
		DetectedAt:    time.Now().UTC(),
	}

	logger := observability.LoggerFromContext(ctx)
	logger.Info().
		Str("emergency_type", string(detection.EmergencyType)).
		Str("severity", string(detection.Severity)).
		Float64("confidence", detection.Confidence).
		Msg("emergency detected")

	return detection, assessment, nil
}

// Analyze runs the full pipeline for one emergency input and assembles the
// response. The input's location, when present, selects the nearest hospital
// within the default radius.
func (s *TriageService) Analyze(ctx context.Context, input *entities.EmergencyInput) (*entities.EmergencyResponse, error) {
	if input == nil {
		return nil, apperrors.NewValidationError("emergency input is required")
	}
	if input.Location != nil {
		if err := input.Location.Validate(); err != nil {
			return nil, err
		}
	}

	detection, assessment, err := s.Detect(ctx, input.Content)
	if err != nil {
		return nil, err
	}

	shouldCall := detection.Severity == entities.SeverityCritical ||
		assessment.Score >= s.cfg.CriticalThreshold

	instructions, err := s.generator.Generate(ctx, detection.EmergencyType, detection.Severity)
	if err != nil {
		return nil, apperrors.NewInternalError("instruction generation failed", err)
	}

	var nearest *entities.Hospital
	if input.Location != nil {
		nearest, err = s.hospitals.Nearest(ctx, input.Location)
		if err != nil {
			// A hospital lookup failure must not sink the triage result.
			observability.LoggerFromContext(ctx).Warn().Err(err).Msg("nearest hospital lookup failed")
			nearest = nil
		}
	}

	response := &entities.EmergencyResponse{
		Detection:           *detection,
		Instructions:        instructions,
		ShouldCallEmergency: shouldCall,
		NearestHospital:     nearest,
	}
	if shouldCall {
		minutes := estimatedResponseMinutes
		response.EstimatedResponseTime = &minutes
	}

	return response, nil
}

// FirstAid returns instructions for an explicit category and severity,
// optionally resolving the nearest hospital.
func (s *TriageService) FirstAid(ctx context.Context, emergencyType entities.EmergencyType, severity entities.SeverityLevel, location *entities.LocationData) (*entities.EmergencyResponse, error) {
	if !emergencyType.IsValid() {
		return nil, apperrors.NewValidationError("unknown emergency type")
	}
	if !severity.IsValid() {
		return nil, apperrors.NewValidationError("unknown severity level")
	}
	if location != nil {
		if err := location.Validate(); err != nil {
			return nil, err
		}
	}

	instructions, err := s.generator.Generate(ctx, emergencyType, severity)
	if err != nil {
		return nil, apperrors.NewInternalError("instruction generation failed", err)
	}

	var nearest *entities.Hospital
	if location != nil {
		nearest, err = s.hospitals.Nearest(ctx, location)
		if err != nil {
			observability.LoggerFromContext(ctx).Warn().Err(err).Msg("nearest hospital lookup failed")
			nearest = nil
		}
	}

	shouldCall := severity == entities.SeverityCritical

	response := &entities.EmergencyResponse{
		Detection: entities.EmergencyDetection{
			EmergencyType: emergencyType,
			Severity:      severity,
			Confidence:    1.0,
			DetectedAt:    time.Now().UTC(),
		},
		Instructions:        instructions,
		ShouldCallEmergency: shouldCall,
		NearestHospital:     nearest,
	}
	if shouldCall {
		minutes := estimatedResponseMinutes
		response.EstimatedResponseTime = &minutes
	}

	return response, nil
}
