package services

import (
	"context"
	"fmt"

	"golang.org/x/exp/slog"

	"github.com/givebridge/givebridge-backend/internal/cache"
	"github.com/givebridge/givebridge-backend/internal/geo"
	"github.com/givebridge/givebridge-backend/internal/models"
	"github.com/givebridge/givebridge-backend/internal/repositories"
)

// NGORecommendation is an NGO annotated with its distance from the caller.
type NGORecommendation struct {
	NGO        *models.NGO `json:"ngo"`
	DistanceKm float64     `json:"distanceKm"`
}

// RecommendationService suggests nearby NGOs for a prospective donation.
// Results are cached per location and category for a short TTL since the
// directory changes slowly.
type RecommendationService struct {
	ngoRepo        repositories.NGORepository
	cache          *cache.TTLCache
	searchRadiusKm float64
	maxResults     int
}

// NewRecommendationService creates a new RecommendationService
func NewRecommendationService(ngoRepo repositories.NGORepository, c *cache.TTLCache, searchRadiusKm float64, maxResults int) *RecommendationService {
	if searchRadiusKm <= 0 {
		searchRadiusKm = 15
	}
	if maxResults <= 0 {
		maxResults = 10
	}
	return &RecommendationService{
		ngoRepo:        ngoRepo,
		cache:          c,
		searchRadiusKm: searchRadiusKm,
		maxResults:     maxResults,
	}
}

// NearbyNGOs returns active NGOs within the search radius of the given
// coordinate, nearest first, optionally filtered by accepted category.
func (s *RecommendationService) NearbyNGOs(ctx context.Context, lng, lat float64, category string) ([]NGORecommendation, error) {
	coord := geo.Coordinate{Lng: lng, Lat: lat}
	if !coord.Valid() {
		return nil, models.ErrInvalidCoordinate
	}

	// Coordinates are quantized so nearby callers share cache entries.
	key := fmt.Sprintf("nearby:%.3f:%.3f:%s", lng, lat, category)
	if s.cache != nil {
		if cached, ok := s.cache.Get(key); ok {
			return cached.([]NGORecommendation), nil
		}
	}

	location := models.NewGeoLocation(lng, lat)
	ngos, err := s.ngoRepo.FindActiveNear(ctx, location, s.searchRadiusKm*1000, s.maxResults*3)
	if err != nil {
		return nil, fmt.Errorf("failed to query nearby NGOs: %w", err)
	}

	recommendations := make([]NGORecommendation, 0, len(ngos))
	for _, ngo := range ngos {
		if category != "" && !acceptsCategory(ngo, category) {
			continue
		}
		distance, err := geo.DistanceKm(coord, geo.Coordinate{Lng: ngo.Location.Lng(), Lat: ngo.Location.Lat()})
		if err != nil {
			slog.Warn("Skipping NGO with invalid stored location", "ngoId", ngo.ID)
			continue
		}
		if distance > s.searchRadiusKm {
			continue
		}
		recommendations = append(recommendations, NGORecommendation{NGO: ngo, DistanceKm: distance})
		if len(recommendations) >= s.maxResults {
			break
		}
	}

	if s.cache != nil {
		s.cache.Set(key, recommendations)
	}
	return recommendations, nil
}

// acceptsCategory reports whether the NGO handles the category. An NGO with
// no declared categories accepts everything.
func acceptsCategory(ngo *models.NGO, category string) bool {
	if len(ngo.Categories) == 0 {
		return true
	}
	for _, c := range ngo.Categories {
		if c == category {
			return true
		}
	}
	return false
}
