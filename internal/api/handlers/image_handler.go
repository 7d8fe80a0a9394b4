package handlers

import (
	"encoding/base64"
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
	imageReceivedPlaceholder    = "Image received. Please provide text description of the emergency."
	imageUnavailablePlaceholder = "Unable to process image input. Please try text input instead."
)

// ImageHandler handles image input HTTP requests. The analyzer is optional;
// without one the handler degrades to a text prompt.
type ImageHandler struct {
	analyzer providers.ImageAnalyzer
	triage   TriageService
	cfg      config.ImageConfig
}

// NewImageHandler creates a new image handler.
func NewImageHandler(analyzer providers.ImageAnalyzer, triage TriageService, cfg config.ImageConfig) *ImageHandler {
	return &ImageHandler{
		analyzer: analyzer,
		triage:   triage,
		cfg:      cfg,
	}
}

type imageInputRequest struct {
	Image    string                 `json:"image"`
	Format   string                 `json:"format"`
	Location *entities.LocationData `json:"location,omitempty"`
}

type imageProcessResponse struct {
	Description string                      `json:"description"`
	Result      *entities.EmergencyResponse `json:"result"`
}

// Process handles POST /api/v1/image/process
func (h *ImageHandler) Process(w http.ResponseWriter, r *http.Request) {
	var payload imageInputRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondWithError(w, http.StatusBadRequest, "VALIDATION_ERROR", "invalid request payload")
		return
	}

	if payload.Image == "" {
		respondWithError(w, http.StatusBadRequest, "VALIDATION_ERROR", "image is required")
		return
	}

	format := strings.ToLower(strings.TrimSpace(payload.Format))
	if !formatSupported(format, h.cfg.SupportedFormats) {
		respondWithError(w, http.StatusBadRequest, "UNSUPPORTED_FORMAT", "unsupported image format: "+payload.Format)
		return
	}

	// Base64 expands the payload by ~4/3; compare against the decoded size.
	if decoded := base64.StdEncoding.DecodedLen(len(payload.Image)); decoded > h.cfg.MaxImageBytes {
		respondWithError(w, http.StatusBadRequest, "VALIDATION_ERROR", "image exceeds maximum allowed size")
		return
	}

	description := h.analyze(r, payload.Image, format)

	response, err := h.triage.Analyze(r.Context(), &entities.EmergencyInput{
		Type:      entities.InputImage,
		Content:   description,
		Timestamp: time.Now().UTC(),
		Location:  payload.Location,
	})
	if err != nil {
		respondWithAppError(w, err, "IMAGE_PROCESSING_ERROR")
		return
	}

	respondWithJSON(w, http.StatusOK, imageProcessResponse{
		Description: description,
		Result:      response,
	})
}

func (h *ImageHandler) analyze(r *http.Request, image, format string) string {
	if h.analyzer == nil {
		return imageReceivedPlaceholder
	}

	description, err := h.analyzer.Analyze(r.Context(), image, format)
	if err != nil {
		observability.LoggerFromContext(r.Context()).Warn().Err(err).Msg("image analysis failed, degrading to text prompt")
		return imageUnavailablePlaceholder
	}
	if strings.TrimSpace(description) == "" {
		return imageUnavailablePlaceholder
	}
	return description
}

// Health handles GET /api/v1/image/health
func (h *ImageHandler) Health(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, map[string]string{
		"status":  "healthy",
		"service": "image-processing",
	})
}
