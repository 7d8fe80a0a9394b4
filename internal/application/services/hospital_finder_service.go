package services

import (
	"context"
	"sort"

	"github.com/lifeline-ai/backend/internal/domain/entities"
	"github.com/lifeline-ai/backend/internal/domain/providers"
	"github.com/lifeline-ai/backend/internal/infrastructure/observability"
	"github.com/lifeline-ai/backend/pkg/config"
	apperrors "github.com/lifeline-ai/backend/pkg/errors"
)

// HospitalFinderService ranks hospital candidates by great-circle distance
// from a query point. The candidate source and the distance calculation are
// both injected, so a real facility API can replace the static directory
// without touching the ranking.
type HospitalFinderService struct {
	directory providers.HospitalDirectory
	geo       providers.GeolocationProvider
	cfg       config.HospitalConfig
}

// NewHospitalFinderService creates a new hospital finder.
func NewHospitalFinderService(directory providers.HospitalDirectory, geo providers.GeolocationProvider, cfg config.HospitalConfig) *HospitalFinderService {
	return &HospitalFinderService{
		directory: directory,
		geo:       geo,
		cfg:       cfg,
	}
}

// FindNearby returns hospitals within radiusKm of the location, sorted
// ascending by distance, truncated to limit. Equal distances keep the
// directory's insertion order. radius 0 keeps only exact-coincident
// candidates; an empty directory yields an empty result, not an error.
// limit <= 0 uses the configured maximum.
func (s *HospitalFinderService) FindNearby(ctx context.Context, location *entities.LocationData, radiusKm float64, limit int) ([]entities.Hospital, error) {
	if location == nil {
		return nil, apperrors.NewValidationError("location is required")
	}
	if err := location.Validate(); err != nil {
		return nil, err
	}
	if radiusKm < 0 {
		return nil, apperrors.NewValidationError("radius must not be negative")
	}
	if limit <= 0 {
		limit = s.cfg.MaxResults
	}

	candidates, err := s.directory.List(ctx)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to load hospital directory", err)
	}

	from := providers.Coordinates{Latitude: location.Latitude, Longitude: location.Longitude}

	matched := make([]entities.Hospital, 0, len(candidates))
	for _, hospital := range candidates {
		to := providers.Coordinates{
			Latitude:  hospital.Location.Latitude,
			Longitude: hospital.Location.Longitude,
		}
		distance, err := s.geo.CalculateDistance(ctx, from, to)
		if err != nil {
			return nil, apperrors.NewInternalError("distance calculation failed", err)
		}
		if distance > radiusKm {
			continue
		}
		hospital.Distance = distance
		matched = append(matched, hospital)
	}

	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].Distance < matched[j].Distance
	})

	if len(matched) > limit {
		matched = matched[:limit]
	}

	logger := observability.LoggerFromContext(ctx)
	logger.Debug().
		Float64("radius_km", radiusKm).
		Int("matched", len(matched)).
		Msg("hospital search complete")

	return matched, nil
}

// Nearest returns the closest hospital within the default radius, or nil
// when none is in range.
func (s *HospitalFinderService) Nearest(ctx context.Context, location *entities.LocationData) (*entities.Hospital, error) {
	hospitals, err := s.FindNearby(ctx, location, s.cfg.DefaultRadiusKm, 1)
	if err != nil {
		return nil, err
	}
	if len(hospitals) == 0 {
		return nil, nil
	}
	return &hospitals[0], nil
}

// DefaultRadiusKm exposes the configured default search radius.
func (s *HospitalFinderService) DefaultRadiusKm() float64 {
	return s.cfg.DefaultRadiusKm
}
