package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lifeline-ai/backend/internal/adapters/providers/geolocation"
	"github.com/lifeline-ai/backend/internal/adapters/providers/hospitals"
	"github.com/lifeline-ai/backend/internal/application/services"
	"github.com/lifeline-ai/backend/internal/domain/entities"
	"github.com/lifeline-ai/backend/pkg/config"
	apperrors "github.com/lifeline-ai/backend/pkg/errors"
)

func newFinder(directory []entities.Hospital) *services.HospitalFinderService {
	cfg := config.HospitalConfig{DefaultRadiusKm: 10, MaxResults: 10}
	return services.NewHospitalFinderService(
		hospitals.NewStaticDirectoryWith(directory),
		geolocation.NewHaversineProvider(),
		cfg,
	)
}

func defaultFinder() *services.HospitalFinderService {
	cfg := config.HospitalConfig{DefaultRadiusKm: 10, MaxResults: 10}
	return services.NewHospitalFinderService(
		hospitals.NewStaticDirectory(),
		geolocation.NewHaversineProvider(),
		cfg,
	)
}

func downtownNYC() *entities.LocationData {
	return &entities.LocationData{Latitude: 40.7128, Longitude: -74.0060}
}

func TestHospitalFinder_FindNearby_SortedAscending(t *testing.T) {
	finder := defaultFinder()

	result, err := finder.FindNearby(context.Background(), downtownNYC(), 10, 0)
	require.NoError(t, err)
	require.Len(t, result, 2)

	assert.Equal(t, "hosp_001", result[0].ID)
	assert.Equal(t, "hosp_002", result[1].ID)
	assert.LessOrEqual(t, result[0].Distance, result[1].Distance)
	assert.InDelta(t, 0.0, result[0].Distance, 1e-6)
	assert.InDelta(t, 5.3, result[1].Distance, 0.3)
}

func TestHospitalFinder_FindNearby_RadiusZeroKeepsCoincident(t *testing.T) {
	finder := defaultFinder()

	result, err := finder.FindNearby(context.Background(), downtownNYC(), 0, 0)
	require.NoError(t, err)
	require.Len(t, result, 1)
	assert.Equal(t, "hosp_001", result[0].ID)
}

func TestHospitalFinder_FindNearby_WiderRadiusIsSuperset(t *testing.T) {
	finder := defaultFinder()

	narrow, err := finder.FindNearby(context.Background(), downtownNYC(), 10, 0)
	require.NoError(t, err)
	wide, err := finder.FindNearby(context.Background(), downtownNYC(), 300, 0)
	require.NoError(t, err)

	wideIDs := make(map[string]bool, len(wide))
	for _, h := range wide {
		wideIDs[h.ID] = true
	}
	for _, h := range narrow {
		assert.True(t, wideIDs[h.ID], "hospital %s missing from wider search", h.ID)
	}
	assert.Greater(t, len(wide), len(narrow))
}

func TestHospitalFinder_FindNearby_LimitTruncates(t *testing.T) {
	finder := defaultFinder()

	result, err := finder.FindNearby(context.Background(), downtownNYC(), 300, 1)
	require.NoError(t, err)
	require.Len(t, result, 1)
	assert.Equal(t, "hosp_001", result[0].ID)
}

func TestHospitalFinder_FindNearby_EqualDistanceKeepsInsertionOrder(t *testing.T) {
	loc := entities.LocationData{Latitude: 40.7, Longitude: -74.0}
	finder := newFinder([]entities.Hospital{
		{ID: "first", Name: "First", Location: loc},
		{ID: "second", Name: "Second", Location: loc},
	})

	result, err := finder.FindNearby(context.Background(), &entities.LocationData{Latitude: 40.7, Longitude: -74.0}, 5, 0)
	require.NoError(t, err)
	require.Len(t, result, 2)
	assert.Equal(t, "first", result[0].ID)
	assert.Equal(t, "second", result[1].ID)
}

func TestHospitalFinder_FindNearby_EmptyDirectory(t *testing.T) {
	finder := newFinder(nil)

	result, err := finder.FindNearby(context.Background(), downtownNYC(), 100, 0)
	require.NoError(t, err)
	assert.Empty(t, result)
}

func TestHospitalFinder_FindNearby_Validation(t *testing.T) {
	finder := defaultFinder()

	_, err := finder.FindNearby(context.Background(), nil, 10, 0)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation))

	_, err = finder.FindNearby(context.Background(), &entities.LocationData{Latitude: 100, Longitude: 0}, 10, 0)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation))

	_, err = finder.FindNearby(context.Background(), downtownNYC(), -1, 0)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation))
}

func TestHospitalFinder_Nearest(t *testing.T) {
	finder := defaultFinder()

	nearest, err := finder.Nearest(context.Background(), downtownNYC())
	require.NoError(t, err)
	require.NotNil(t, nearest)
	assert.Equal(t, "hosp_001", nearest.ID)

	// Middle of the Atlantic: nothing within the default radius.
	none, err := finder.Nearest(context.Background(), &entities.LocationData{Latitude: 0, Longitude: -30})
	require.NoError(t, err)
	assert.Nil(t, none)
}
