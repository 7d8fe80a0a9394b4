package openai

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	openai "github.com/sashabaranov/go-openai"

	"github.com/lifeline-ai/backend/internal/domain/entities"
	"github.com/lifeline-ai/backend/internal/infrastructure/observability"
	"github.com/lifeline-ai/backend/pkg/config"
	apperrors "github.com/lifeline-ai/backend/pkg/errors"
)

// Client is the external generative-model client. It implements the AI side
// of the classifier, scorer, generator, transcriber, and image analyzer
// strategies; every call runs under the configured timeout and every failure
// comes back as an external error for the fallback decorators to consume.
type Client struct {
	client     *openai.Client
	model      string
	timeout    time.Duration
	thresholds config.TriageConfig
	metrics    *observability.Metrics
}

// NewClient creates a new OpenAI client.
func NewClient(cfg *config.OpenAIConfig, thresholds config.TriageConfig, metrics *observability.Metrics) (*Client, error) {
	if cfg == nil || cfg.APIKey == "" {
		return nil, errors.New("openai api key is required")
	}

	model := cfg.Model
	if model == "" {
		model = "gpt-4o-mini"
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 20 * time.Second
	}

	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}

	return &Client{
		client:     openai.NewClientWithConfig(clientConfig),
		model:      model,
		timeout:    timeout,
		thresholds: thresholds,
		metrics:    metrics,
	}, nil
}

type classificationPayload struct {
	Type       string   `json:"type"`
	Confidence *float64 `json:"confidence"`
	Reasoning  string   `json:"reasoning"`
}

// Classify asks the model for an emergency category and confidence.
func (c *Client) Classify(ctx context.Context, content string) (*entities.Classification, error) {
	raw, err := c.completeJSON(ctx, "classify", classifySystemPrompt, buildClassifyPrompt(content), 0.3)
	if err != nil {
		return nil, err
	}

	var payload classificationPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, apperrors.NewExternalError("malformed classification response", err)
	}

	emergencyType := entities.EmergencyType(strings.ToLower(payload.Type))
	if !emergencyType.IsValid() {
		emergencyType = entities.EmergencyUnknown
	}

	confidence := 0.7
	if payload.Confidence != nil {
		confidence = *payload.Confidence
	}
	if confidence < 0 || confidence > 1 {
		return nil, apperrors.NewExternalError(
			fmt.Sprintf("classification confidence %.2f out of range", confidence), nil)
	}

	return &entities.Classification{
		Type:       emergencyType,
		Confidence: confidence,
		Reasoning:  payload.Reasoning,
	}, nil
}

type severityPayload struct {
	Severity  string   `json:"severity"`
	Score     *float64 `json:"score"`
	Reasoning string   `json:"reasoning"`
}

// Score asks the model for a severity tier and numeric score.
func (c *Client) Score(ctx context.Context, emergencyType entities.EmergencyType, content string, confidence float64) (*entities.SeverityAssessment, error) {
	raw, err := c.completeJSON(ctx, "score", scoreSystemPrompt, buildScorePrompt(emergencyType, content), 0.2)
	if err != nil {
		return nil, err
	}

	var payload severityPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, apperrors.NewExternalError("malformed severity response", err)
	}

	score := 0.5
	if payload.Score != nil {
		score = *payload.Score
	}
	if score < 0 || score > 1 {
		return nil, apperrors.NewExternalError(
			fmt.Sprintf("severity score %.2f out of range", score), nil)
	}

	severity := entities.SeverityLevel(strings.ToLower(payload.Severity))
	if !severity.IsValid() {
		// Re-bucket an unusable label from the numeric score.
		severity = c.bucketScore(score)
	}

	return &entities.SeverityAssessment{
		Severity:  severity,
		Score:     score,
		Reasoning: payload.Reasoning,
	}, nil
}

type instructionsPayload struct {
	Instructions []struct {
		Step        int    `json:"step"`
		Title       string `json:"title"`
		Description string `json:"description"`
		Duration    *int   `json:"duration"`
	} `json:"instructions"`
}

// Generate asks the model for a step-by-step first aid sequence.
func (c *Client) Generate(ctx context.Context, emergencyType entities.EmergencyType, severity entities.SeverityLevel) ([]entities.FirstAidInstruction, error) {
	raw, err := c.completeJSON(ctx, "generate", generateSystemPrompt, buildGeneratePrompt(emergencyType, severity), 0.4)
	if err != nil {
		return nil, err
	}

	var payload instructionsPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, apperrors.NewExternalError("malformed instructions response", err)
	}
	if len(payload.Instructions) == 0 {
		return nil, apperrors.NewExternalError("model returned no instructions", nil)
	}

	out := make([]entities.FirstAidInstruction, 0, len(payload.Instructions))
	for i, inst := range payload.Instructions {
		step := inst.Step
		if step <= 0 {
			step = i + 1
		}
		title := inst.Title
		if title == "" {
			title = fmt.Sprintf("Step %d", step)
		}
		out = append(out, entities.FirstAidInstruction{
			ID:          uuid.NewString(),
			Step:        step,
			Title:       title,
			Description: inst.Description,
			Duration:    inst.Duration,
		})
	}
	return out, nil
}

// Transcribe converts base64 audio to text using Whisper.
func (c *Client) Transcribe(ctx context.Context, audioBase64, format string) (string, error) {
	audio, err := base64.StdEncoding.DecodeString(audioBase64)
	if err != nil {
		return "", apperrors.NewValidationError("audio payload is not valid base64")
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	start := time.Now()
	resp, err := c.client.CreateTranscription(ctx, openai.AudioRequest{
		Model:    openai.Whisper1,
		FilePath: "audio." + format,
		Reader:   bytes.NewReader(audio),
		Language: "en",
	})
	c.recordCall(ctx, "transcribe", start)
	if err != nil {
		return "", apperrors.NewExternalError("voice transcription failed", err)
	}

	return resp.Text, nil
}

// Analyze describes an emergency image using the vision model.
func (c *Client) Analyze(ctx context.Context, imageBase64, format string) (string, error) {
	if _, err := base64.StdEncoding.DecodeString(imageBase64); err != nil {
		return "", apperrors.NewValidationError("image payload is not valid base64")
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	imageURL := fmt.Sprintf("data:image/%s;base64,%s", format, imageBase64)

	start := time.Now()
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: analyzeImageSystemPrompt,
			},
			{
				Role: openai.ChatMessageRoleUser,
				MultiContent: []openai.ChatMessagePart{
					{
						Type: openai.ChatMessagePartTypeText,
						Text: analyzeImageUserPrompt,
					},
					{
						Type:     openai.ChatMessagePartTypeImageURL,
						ImageURL: &openai.ChatMessageImageURL{URL: imageURL},
					},
				},
			},
		},
		MaxTokens: 500,
	})
	c.recordCall(ctx, "analyze_image", start)
	if err != nil {
		return "", apperrors.NewExternalError("image analysis failed", err)
	}
	if len(resp.Choices) == 0 {
		return "", apperrors.NewExternalError("image analysis returned no choices", nil)
	}

	return resp.Choices[0].Message.Content, nil
}

// completeJSON runs one JSON-mode chat completion and returns the raw
// message content.
func (c *Client) completeJSON(ctx context.Context, operation, system, user string, temperature float32) (json.RawMessage, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	start := time.Now()
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: user},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
		Temperature: temperature,
	})
	c.recordCall(ctx, operation, start)
	if err != nil {
		return nil, mapAPIError(operation, err)
	}
	if len(resp.Choices) == 0 {
		return nil, apperrors.NewExternalError(operation+" returned no choices", nil)
	}

	return json.RawMessage(resp.Choices[0].Message.Content), nil
}

func (c *Client) bucketScore(score float64) entities.SeverityLevel {
	switch {
	case score >= c.thresholds.CriticalThreshold:
		return entities.SeverityCritical
	case score >= c.thresholds.HighThreshold:
		return entities.SeverityHigh
	case score >= c.thresholds.ModerateThreshold:
		return entities.SeverityModerate
	default:
		return entities.SeverityLow
	}
}

func (c *Client) recordCall(ctx context.Context, operation string, start time.Time) {
	if c.metrics != nil {
		observability.RecordAIMetric(ctx, c.metrics, operation, time.Since(start))
	}
}

func mapAPIError(operation string, err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) && apiErr.HTTPStatusCode == 429 {
		return apperrors.NewExternalError(operation+" rate limited", err)
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return apperrors.NewExternalError(operation+" timed out", err)
	}
	return apperrors.NewExternalError(operation+" request failed", err)
}
