package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/lifeline-ai/backend/internal/domain/entities"
)

// HospitalService defines the hospital lookup operations used by the handler.
type HospitalService interface {
	FindNearby(ctx context.Context, location *entities.LocationData, radiusKm float64, limit int) ([]entities.Hospital, error)
	DefaultRadiusKm() float64
}

// HospitalHandler handles hospital search HTTP requests.
type HospitalHandler struct {
	service HospitalService
}

// NewHospitalHandler creates a new hospital handler.
func NewHospitalHandler(service HospitalService) *HospitalHandler {
	return &HospitalHandler{service: service}
}

type hospitalSearchRequest struct {
	Location *entities.LocationData `json:"location"`
	Radius   *float64               `json:"radius,omitempty"`
	Limit    int                    `json:"limit,omitempty"`
}

type hospitalSearchResponse struct {
	Hospitals []entities.Hospital `json:"hospitals"`
	Count     int                 `json:"count"`
}

// FindNearby handles POST /api/v1/hospitals/nearby
func (h *HospitalHandler) FindNearby(w http.ResponseWriter, r *http.Request) {
	var payload hospitalSearchRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondWithError(w, http.StatusBadRequest, "VALIDATION_ERROR", "invalid request payload")
		return
	}

	radius := h.service.DefaultRadiusKm()
	if payload.Radius != nil {
		radius = *payload.Radius
	}

	hospitals, err := h.service.FindNearby(r.Context(), payload.Location, radius, payload.Limit)
	if err != nil {
		respondWithAppError(w, err, "HOSPITAL_SEARCH_ERROR")
		return
	}

	respondWithJSON(w, http.StatusOK, hospitalSearchResponse{
		Hospitals: hospitals,
		Count:     len(hospitals),
	})
}

// Health handles GET /api/v1/hospitals/health
func (h *HospitalHandler) Health(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, map[string]string{
		"status":  "healthy",
		"service": "hospital-finder",
	})
}
