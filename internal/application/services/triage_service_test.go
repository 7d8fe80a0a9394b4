package services_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lifeline-ai/backend/internal/adapters/triage"
	"github.com/lifeline-ai/backend/internal/application/services"
	"github.com/lifeline-ai/backend/internal/domain/entities"
	"github.com/lifeline-ai/backend/pkg/config"
	apperrors "github.com/lifeline-ai/backend/pkg/errors"
)

func triageConfig() config.TriageConfig {
	return config.TriageConfig{
		ConfidenceThreshold: 0.7,
		CriticalThreshold:   0.8,
		HighThreshold:       0.6,
		ModerateThreshold:   0.4,
	}
}

// newRuleTriage wires the service exactly as it runs without an AI client.
func newRuleTriage() *services.TriageService {
	cfg := triageConfig()
	return services.NewTriageService(
		triage.NewRuleClassifier(),
		triage.NewRuleScorer(cfg),
		triage.NewTemplateGenerator(),
		defaultFinder(),
		cfg,
	)
}

func TestTriageService_Analyze_CardiacEmergency(t *testing.T) {
	service := newRuleTriage()

	response, err := service.Analyze(context.Background(), &entities.EmergencyInput{
		Type:    entities.InputText,
		Content: "I have chest pain and difficulty breathing",
	})
	require.NoError(t, err)

	assert.Equal(t, entities.EmergencyCardiac, response.Detection.EmergencyType)
	assert.Equal(t, entities.SeverityCritical, response.Detection.Severity)
	assert.True(t, response.ShouldCallEmergency)
	require.NotNil(t, response.EstimatedResponseTime)
	assert.Equal(t, 15, *response.EstimatedResponseTime)

	require.NotEmpty(t, response.Instructions)
	assert.Contains(t, strings.ToLower(response.Instructions[0].Title), "emergency")
	assert.Nil(t, response.NearestHospital)
}

func TestTriageService_Analyze_WithLocationResolvesHospital(t *testing.T) {
	service := newRuleTriage()

	response, err := service.Analyze(context.Background(), &entities.EmergencyInput{
		Type:     entities.InputText,
		Content:  "deep cut that is bleeding",
		Location: downtownNYC(),
	})
	require.NoError(t, err)

	assert.Equal(t, entities.EmergencyBleeding, response.Detection.EmergencyType)
	require.NotNil(t, response.NearestHospital)
	assert.Equal(t, "hosp_001", response.NearestHospital.ID)
}

func TestTriageService_Analyze_MinorComplaint(t *testing.T) {
	service := newRuleTriage()

	response, err := service.Analyze(context.Background(), &entities.EmergencyInput{
		Type:    entities.InputText,
		Content: "feeling a bit dizzy",
	})
	require.NoError(t, err)

	assert.Equal(t, entities.EmergencyMedical, response.Detection.EmergencyType)
	assert.False(t, response.ShouldCallEmergency)
	assert.Nil(t, response.EstimatedResponseTime)
	assert.NotEmpty(t, response.Instructions)
}

func TestTriageService_Analyze_Validation(t *testing.T) {
	service := newRuleTriage()

	_, err := service.Analyze(context.Background(), nil)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation))

	_, err = service.Analyze(context.Background(), &entities.EmergencyInput{Content: "   "})
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation))

	_, err = service.Analyze(context.Background(), &entities.EmergencyInput{
		Content:  "chest pain",
		Location: &entities.LocationData{Latitude: 91, Longitude: 0},
	})
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation))
}

func TestTriageService_Detect_MatchesAnalyzeDetection(t *testing.T) {
	service := newRuleTriage()
	content := "she swallowed a toxic chemical"

	detection, assessment, err := service.Detect(context.Background(), content)
	require.NoError(t, err)

	response, err := service.Analyze(context.Background(), &entities.EmergencyInput{
		Type:    entities.InputText,
		Content: content,
	})
	require.NoError(t, err)

	assert.Equal(t, detection.EmergencyType, response.Detection.EmergencyType)
	assert.Equal(t, detection.Severity, response.Detection.Severity)
	assert.Equal(t, detection.Confidence, response.Detection.Confidence)
	assert.NotNil(t, assessment)
}

func TestTriageService_Detect_EmptyContent(t *testing.T) {
	service := newRuleTriage()

	_, _, err := service.Detect(context.Background(), "")
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation))
}

func TestTriageService_FirstAid(t *testing.T) {
	service := newRuleTriage()

	response, err := service.FirstAid(context.Background(), entities.EmergencyBurn, entities.SeverityModerate, downtownNYC())
	require.NoError(t, err)

	assert.Equal(t, entities.EmergencyBurn, response.Detection.EmergencyType)
	assert.Equal(t, entities.SeverityModerate, response.Detection.Severity)
	assert.Equal(t, 1.0, response.Detection.Confidence)
	assert.False(t, response.ShouldCallEmergency)
	assert.NotEmpty(t, response.Instructions)
	require.NotNil(t, response.NearestHospital)
}

func TestTriageService_FirstAid_CriticalAdvisesCall(t *testing.T) {
	service := newRuleTriage()

	response, err := service.FirstAid(context.Background(), entities.EmergencyCardiac, entities.SeverityCritical, nil)
	require.NoError(t, err)

	assert.True(t, response.ShouldCallEmergency)
	require.NotNil(t, response.EstimatedResponseTime)
	assert.Nil(t, response.NearestHospital)
}

func TestTriageService_FirstAid_RejectsUnknownEnums(t *testing.T) {
	service := newRuleTriage()

	_, err := service.FirstAid(context.Background(), entities.EmergencyType("volcano"), entities.SeverityHigh, nil)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation))

	_, err = service.FirstAid(context.Background(), entities.EmergencyBurn, entities.SeverityLevel("mild"), nil)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation))
}
