package entities

import (
	apperrors "github.com/lifeline-ai/backend/pkg/errors"
)

// LocationData is a geographic point with an optional formatted address.
type LocationData struct {
	Latitude  float64  `json:"latitude"`
	Longitude float64  `json:"longitude"`
	Address   string   `json:"address,omitempty"`
	Accuracy  *float64 `json:"accuracy,omitempty"`
}

// Validate checks the coordinate ranges.
func (l *LocationData) Validate() error {
	if l.Latitude < -90 || l.Latitude > 90 {
		return apperrors.NewValidationError("latitude must be between -90 and 90")
	}
	if l.Longitude < -180 || l.Longitude > 180 {
		return apperrors.NewValidationError("longitude must be between -180 and 180")
	}
	return nil
}

// Hospital is one entry of the hospital directory. Distance is computed per
// query against the caller's location and is never stored in the directory.
type Hospital struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Address     string       `json:"address"`
	Phone       string       `json:"phone"`
	Distance    float64      `json:"distance"`
	Location    LocationData `json:"location"`
	Specialties []string     `json:"specialties,omitempty"`
}
