package handlers

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/lifeline-ai/backend/internal/domain/entities"
	"github.com/lifeline-ai/backend/internal/domain/providers"
	"github.com/lifeline-ai/backend/internal/infrastructure/observability"
	"github.com/lifeline-ai/backend/pkg/config"
)

const (
	voiceReceivedPlaceholder    = "Voice input received. Please provide text description of the emergency."
	voiceUnavailablePlaceholder = "Unable to process voice input. Please try text input instead."
)

// VoiceHandler handles voice input HTTP requests. The transcriber is
// optional; without one the handler degrades to a text prompt so the
// triage pipeline still produces a response.
type VoiceHandler struct {
	transcriber providers.SpeechTranscriber
	triage      TriageService
	cfg         config.VoiceConfig
}

// NewVoiceHandler creates a new voice handler.
func NewVoiceHandler(transcriber providers.SpeechTranscriber, triage TriageService, cfg config.VoiceConfig) *VoiceHandler {
	return &VoiceHandler{
		transcriber: transcriber,
		triage:      triage,
		cfg:         cfg,
	}
}

type voiceInputRequest struct {
	Audio    string                 `json:"audio"`
	Format   string                 `json:"format"`
	Location *entities.LocationData `json:"location,omitempty"`
}

type voiceProcessResponse struct {
	Transcript string                      `json:"transcript"`
	Result     *entities.EmergencyResponse `json:"result"`
}

// Process handles POST /api/v1/voice/process
func (h *VoiceHandler) Process(w http.ResponseWriter, r *http.Request) {
	var payload voiceInputRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondWithError(w, http.StatusBadRequest, "VALIDATION_ERROR", "invalid request payload")
		return
	}

	if payload.Audio == "" {
		respondWithError(w, http.StatusBadRequest, "VALIDATION_ERROR", "audio is required")
		return
	}

	format := strings.ToLower(strings.TrimSpace(payload.Format))
	if !formatSupported(format, h.cfg.SupportedFormats) {
		respondWithError(w, http.StatusBadRequest, "UNSUPPORTED_FORMAT", "unsupported audio format: "+payload.Format)
		return
	}

	transcript := h.transcribe(r, payload.Audio, format)

	response, err := h.triage.Analyze(r.Context(), &entities.EmergencyInput{
		Type:      entities.InputVoice,
		Content:   transcript,
		Timestamp: time.Now().UTC(),
		Location:  payload.Location,
	})
	if err != nil {
		respondWithAppError(w, err, "VOICE_PROCESSING_ERROR")
		return
	}

	respondWithJSON(w, http.StatusOK, voiceProcessResponse{
		Transcript: transcript,
		Result:     response,
	})
}

func (h *VoiceHandler) transcribe(r *http.Request, audio, format string) string {
	if h.transcriber == nil {
		return voiceReceivedPlaceholder
	}

	transcript, err := h.transcriber.Transcribe(r.Context(), audio, format)
	if err != nil {
		observability.LoggerFromContext(r.Context()).Warn().Err(err).Msg("voice transcription failed, degrading to text prompt")
		return voiceUnavailablePlaceholder
	}
	if strings.TrimSpace(transcript) == "" {
		return voiceUnavailablePlaceholder
	}
	return transcript
}

// Health handles GET /api/v1/voice/health
func (h *VoiceHandler) Health(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, map[string]string{
		"status":  "healthy",
		"service": "voice-processing",
	})
}

func formatSupported(format string, supported []string) bool {
	for _, f := range supported {
		if format == f {
			return true
		}
	}
	return false
}
