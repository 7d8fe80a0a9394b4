package entities

import (
	"time"
)

// EmergencyType classifies the kind of emergency detected from user input.
type EmergencyType string

const (
	EmergencyMedical     EmergencyType = "medical"
	EmergencyTrauma      EmergencyType = "trauma"
	EmergencyCardiac     EmergencyType = "cardiac"
	EmergencyRespiratory EmergencyType = "respiratory"
	EmergencyBurn        EmergencyType = "burn"
	EmergencyPoisoning   EmergencyType = "poisoning"
	EmergencyFracture    EmergencyType = "fracture"
	EmergencyBleeding    EmergencyType = "bleeding"
	EmergencyUnknown     EmergencyType = "unknown"
)

// IsValid reports whether the emergency type is one of the known categories.
func (t EmergencyType) IsValid() bool {
	switch t {
	case EmergencyMedical, EmergencyTrauma, EmergencyCardiac, EmergencyRespiratory,
		EmergencyBurn, EmergencyPoisoning, EmergencyFracture, EmergencyBleeding,
		EmergencyUnknown:
		return true
	}
	return false
}

// SeverityLevel indicates the urgency of a detected emergency.
type SeverityLevel string

const (
	SeverityCritical SeverityLevel = "critical"
	SeverityHigh     SeverityLevel = "high"
	SeverityModerate SeverityLevel = "moderate"
	SeverityLow      SeverityLevel = "low"
)

// IsValid reports whether the severity level is one of the four tiers.
func (s SeverityLevel) IsValid() bool {
	switch s {
	case SeverityCritical, SeverityHigh, SeverityModerate, SeverityLow:
		return true
	}
	return false
}

// InputType identifies the modality of an emergency input.
type InputType string

const (
	InputText  InputType = "text"
	InputVoice InputType = "voice"
	InputImage InputType = "image"
)

// EmergencyInput is a single user submission. Values are never mutated after
// construction; each request builds a fresh one.
type EmergencyInput struct {
	Type      InputType     `json:"type"`
	Content   string        `json:"content"`
	Timestamp time.Time     `json:"timestamp"`
	Location  *LocationData `json:"location,omitempty"`
}

// Classification is the output of an emergency classifier.
type Classification struct {
	Type       EmergencyType `json:"type"`
	Confidence float64       `json:"confidence"`
	Reasoning  string        `json:"reasoning,omitempty"`
}

// SeverityAssessment is the output of a severity scorer.
type SeverityAssessment struct {
	Severity  SeverityLevel `json:"severity"`
	Score     float64       `json:"score"`
	Reasoning string        `json:"reasoning,omitempty"`
}

// EmergencyDetection combines classification and severity for one request.
type EmergencyDetection struct {
	EmergencyType EmergencyType `json:"emergencyType"`
	Severity      SeverityLevel `json:"severity"`
	Confidence    float64       `json:"confidence"`
	DetectedAt    time.Time     `json:"detectedAt"`
}

// FirstAidInstruction is one step of a first aid sequence. Step order is
// meaningful; steps are executed sequentially by a human.
type FirstAidInstruction struct {
	ID          string `json:"id"`
	Step        int    `json:"step"`
	Title       string `json:"title"`
	Description string `json:"description"`
	ImageURL    string `json:"imageUrl,omitempty"`
	Duration    *int   `json:"duration,omitempty"`
}

// EmergencyResponse is the full triage result returned to the client.
type EmergencyResponse struct {
	Detection             EmergencyDetection    `json:"detection"`
	Instructions          []FirstAidInstruction `json:"instructions"`
	ShouldCallEmergency   bool                  `json:"shouldCallEmergency"`
	NearestHospital       *Hospital             `json:"nearestHospital,omitempty"`
	EstimatedResponseTime *int                  `json:"estimatedResponseTime,omitempty"`
}
