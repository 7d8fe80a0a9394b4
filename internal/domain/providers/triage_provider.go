package providers

import (
	"context"

	"github.com/lifeline-ai/backend/internal/domain/entities"
)

// EmergencyClassifier maps free text to an emergency category with a
// confidence value. Implementations must be safe for concurrent use.
type EmergencyClassifier interface {
	Classify(ctx context.Context, content string) (*entities.Classification, error)
}

// SeverityScorer assigns a severity tier and score to a classified emergency.
type SeverityScorer interface {
	Score(ctx context.Context, emergencyType entities.EmergencyType, content string, confidence float64) (*entities.SeverityAssessment, error)
}

// InstructionGenerator produces an ordered, never-empty list of first aid
// steps for an emergency category.
type InstructionGenerator interface {
	Generate(ctx context.Context, emergencyType entities.EmergencyType, severity entities.SeverityLevel) ([]entities.FirstAidInstruction, error)
}

// SpeechTranscriber converts base64-encoded audio into text.
type SpeechTranscriber interface {
	Transcribe(ctx context.Context, audioBase64, format string) (string, error)
}

// ImageAnalyzer describes an emergency scene from a base64-encoded image.
type ImageAnalyzer interface {
	Analyze(ctx context.Context, imageBase64, format string) (string, error)
}
