package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/lifeline-ai/backend/internal/domain/entities"
)

// TriageService defines the triage operations used by the emergency handler.
type TriageService interface {
	Analyze(ctx context.Context, input *entities.EmergencyInput) (*entities.EmergencyResponse, error)
	Detect(ctx context.Context, content string) (*entities.EmergencyDetection, *entities.SeverityAssessment, error)
	FirstAid(ctx context.Context, emergencyType entities.EmergencyType, severity entities.SeverityLevel, location *entities.LocationData) (*entities.EmergencyResponse, error)
}

// EmergencyHandler handles emergency triage HTTP requests.
type EmergencyHandler struct {
	triage TriageService
}

// NewEmergencyHandler creates a new emergency handler.
func NewEmergencyHandler(triage TriageService) *EmergencyHandler {
	return &EmergencyHandler{triage: triage}
}

type emergencyRequest struct {
	Input     emergencyInputPayload `json:"input"`
	UserID    string                `json:"userId,omitempty"`
	SessionID string                `json:"sessionId,omitempty"`
}

type emergencyInputPayload struct {
	Type     entities.InputType     `json:"type"`
	Content  string                 `json:"content"`
	Location *entities.LocationData `json:"location,omitempty"`
}

type firstAidRequest struct {
	EmergencyType string                 `json:"emergencyType"`
	Severity      string                 `json:"severity"`
	Location      *entities.LocationData `json:"location,omitempty"`
}

type detectionResponse struct {
	Detection  *entities.EmergencyDetection `json:"detection"`
	Assessment *entities.SeverityAssessment `json:"assessment"`
}

// Analyze handles POST /api/v1/emergency/analyze
func (h *EmergencyHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	var payload emergencyRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondWithError(w, http.StatusBadRequest, "VALIDATION_ERROR", "invalid request payload")
		return
	}

	input := &entities.EmergencyInput{
		Type:      payload.Input.Type,
		Content:   payload.Input.Content,
		Timestamp: time.Now().UTC(),
		Location:  payload.Input.Location,
	}

	response, err := h.triage.Analyze(r.Context(), input)
	if err != nil {
		respondWithAppError(w, err, "ANALYSIS_ERROR")
		return
	}

	respondWithJSON(w, http.StatusOK, response)
}

// Detect handles POST /api/v1/emergency/detect
func (h *EmergencyHandler) Detect(w http.ResponseWriter, r *http.Request) {
	var payload emergencyRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondWithError(w, http.StatusBadRequest, "VALIDATION_ERROR", "invalid request payload")
		return
	}

	detection, assessment, err := h.triage.Detect(r.Context(), payload.Input.Content)
	if err != nil {
		respondWithAppError(w, err, "DETECTION_ERROR")
		return
	}

	respondWithJSON(w, http.StatusOK, detectionResponse{
		Detection:  detection,
		Assessment: assessment,
	})
}

// FirstAid handles POST /api/v1/emergency/first-aid
func (h *EmergencyHandler) FirstAid(w http.ResponseWriter, r *http.Request) {
	var payload firstAidRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondWithError(w, http.StatusBadRequest, "VALIDATION_ERROR", "invalid request payload")
		return
	}

	response, err := h.triage.FirstAid(
		r.Context(),
		entities.EmergencyType(payload.EmergencyType),
		entities.SeverityLevel(payload.Severity),
		payload.Location,
	)
	if err != nil {
		respondWithAppError(w, err, "FIRST_AID_ERROR")
		return
	}

	respondWithJSON(w, http.StatusOK, response)
}

// Health handles GET /api/v1/emergency/health
func (h *EmergencyHandler) Health(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, map[string]string{
		"status":  "healthy",
		"service": "emergency-detection",
	})
}
