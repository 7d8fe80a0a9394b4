package hospitals

import (
	"context"

	"github.com/lifeline-ai/backend/internal/domain/entities"
	"github.com/lifeline-ai/backend/internal/domain/providers"
)

// StaticDirectory serves a fixed in-memory hospital list. The list is built
// once at construction and never mutated, so it is safe to share across
// requests.
type StaticDirectory struct {
	hospitals []entities.Hospital
}

// NewStaticDirectory creates a directory seeded with the default hospital set.
func NewStaticDirectory() providers.HospitalDirectory {
	return &StaticDirectory{hospitals: defaultHospitals()}
}

// NewStaticDirectoryWith creates a directory over the given candidate list.
// The slice is used as-is; callers must not mutate it afterwards.
func NewStaticDirectoryWith(hospitals []entities.Hospital) providers.HospitalDirectory {
	return &StaticDirectory{hospitals: hospitals}
}

// List returns the candidates in insertion order.
func (d *StaticDirectory) List(ctx context.Context) ([]entities.Hospital, error) {
	out := make([]entities.Hospital, len(d.hospitals))
	copy(out, d.hospitals)
	return out, nil
}

func defaultHospitals() []entities.Hospital {
	return []entities.Hospital{
		{
			ID:      "hosp_001",
			Name:    "City General Hospital",
			Address: "123 Medical Center Dr, New York, NY 10001",
			Phone:   "+1-555-0100",
			Location: entities.LocationData{
				Latitude:  40.7128,
				Longitude: -74.0060,
				Address:   "123 Medical Center Dr, New York, NY 10001",
			},
			Specialties: []string{"Emergency", "Cardiology", "Trauma"},
		},
		{
			ID:      "hosp_002",
			Name:    "Regional Medical Center",
			Address: "456 Health Blvd, New York, NY 10002",
			Phone:   "+1-555-0101",
			Location: entities.LocationData{
				Latitude:  40.7580,
				Longitude: -73.9855,
				Address:   "456 Health Blvd, New York, NY 10002",
			},
			Specialties: []string{"Emergency", "Pediatrics", "Surgery"},
		},
		{
			ID:      "hosp_003",
			Name:    "Community Hospital",
			Address: "789 Care Street, Local City",
			Phone:   "+1-555-0102",
			Location: entities.LocationData{
				Latitude:  40.0,
				Longitude: -75.0,
				Address:   "789 Care Street, Local City",
			},
			Specialties: []string{"Emergency", "Internal Medicine"},
		},
		{
			ID:      "hosp_004",
			Name:    "Emergency Medical Center",
			Address: "321 Urgent Care Ave, Local City",
			Phone:   "+1-555-0103",
			Location: entities.LocationData{
				Latitude:  39.0,
				Longitude: -76.0,
				Address:   "321 Urgent Care Ave, Local City",
			},
			Specialties: []string{"Emergency", "Urgent Care"},
		},
		{
			ID:      "hosp_005",
			Name:    "Central Hospital",
			Address: "555 Main St, Central City",
			Phone:   "+1-555-0104",
			Location: entities.LocationData{
				Latitude:  41.0,
				Longitude: -74.0,
				Address:   "555 Main St, Central City",
			},
			Specialties: []string{"Emergency", "General Medicine"},
		},
	}
}
