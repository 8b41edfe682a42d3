package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/givebridge/givebridge-backend/internal/cache"
	"github.com/givebridge/givebridge-backend/internal/models"
)

func TestNearbyNGOsFiltersSortsAndAnnotates(t *testing.T) {
	ngoRepo := newFakeNGORepo()
	for _, n := range []struct {
		name string
		lat  float64
	}{
		{"near", 28.6319},
		{"far", 28.9736},
	} {
		require.NoError(t, ngoRepo.Create(context.Background(), &models.NGO{
			Name:     n.name,
			Location: models.NewGeoLocation(77.2090, n.lat),
			Active:   true,
		}))
	}

	service := NewRecommendationService(ngoRepo, cache.New(time.Minute), 15, 10)
	recommendations, err := service.NearbyNGOs(context.Background(), 77.2090, 28.6139, "")
	require.NoError(t, err)

	require.Len(t, recommendations, 1)
	assert.Equal(t, "near", recommendations[0].NGO.Name)
	assert.InDelta(t, 2.0, recommendations[0].DistanceKm, 0.1)
}

func TestNearbyNGOsCategoryFilter(t *testing.T) {
	ngoRepo := newFakeNGORepo()
	require.NoError(t, ngoRepo.Create(context.Background(), &models.NGO{
		Name:       "food-only",
		Location:   models.NewGeoLocation(77.2090, 28.6319),
		Categories: []string{"food"},
		Active:     true,
	}))
	require.NoError(t, ngoRepo.Create(context.Background(), &models.NGO{
		Name:     "takes-anything",
		Location: models.NewGeoLocation(77.2090, 28.6499),
		Active:   true,
	}))

	service := NewRecommendationService(ngoRepo, cache.New(time.Minute), 15, 10)

	clothes, err := service.NearbyNGOs(context.Background(), 77.2090, 28.6139, "clothes")
	require.NoError(t, err)
	require.Len(t, clothes, 1)
	assert.Equal(t, "takes-anything", clothes[0].NGO.Name)

	food, err := service.NearbyNGOs(context.Background(), 77.2090, 28.6139, "food")
	require.NoError(t, err)
	assert.Len(t, food, 2)
}

func TestNearbyNGOsServesFromCache(t *testing.T) {
	ngoRepo := newFakeNGORepo()
	require.NoError(t, ngoRepo.Create(context.Background(), &models.NGO{
		Name:     "near",
		Location: models.NewGeoLocation(77.2090, 28.6319),
		Active:   true,
	}))

	service := NewRecommendationService(ngoRepo, cache.New(time.Minute), 15, 10)

	first, err := service.NearbyNGOs(context.Background(), 77.2090, 28.6139, "")
	require.NoError(t, err)
	require.Len(t, first, 1)

	// A repo failure is invisible while the cache entry is fresh.
	ngoRepo.nearErr = errors.New("directory down")
	second, err := service.NearbyNGOs(context.Background(), 77.2090, 28.6139, "")
	require.NoError(t, err)
	assert.Len(t, second, 1)
}

func TestNearbyNGOsInvalidCoordinate(t *testing.T) {
	service := NewRecommendationService(newFakeNGORepo(), cache.New(time.Minute), 15, 10)
	_, err := service.NearbyNGOs(context.Background(), 200, 28.6, "")
	assert.ErrorIs(t, err, models.ErrInvalidCoordinate)
}
