// Package geo computes great-circle distances and ranks candidate NGOs by
// proximity to a donation's pickup location.
package geo

import (
	"math"
	"sort"

	"github.com/givebridge/givebridge-backend/internal/models"
)

const earthRadiusKm = 6371.0

// Score of the closest ranked candidate; each subsequent rank scores
// scoreStep less. The score is a relative priority hint, not a distance
// transform.
const (
	topScore  = 100
	scoreStep = 10
)

// Coordinate is a longitude/latitude pair in degrees.
type Coordinate struct {
	Lng float64
	Lat float64
}

// Candidate is one NGO considered for assignment.
type Candidate struct {
	ID       string
	Location Coordinate
}

// RankedCandidate is a candidate that passed the distance filter.
type RankedCandidate struct {
	Candidate
	DistanceKm float64
	Score      int
}

// Valid reports whether the coordinate is finite and within
// [-180,180] longitude and [-90,90] latitude.
func (c Coordinate) Valid() bool {
	if math.IsNaN(c.Lng) || math.IsInf(c.Lng, 0) || math.IsNaN(c.Lat) || math.IsInf(c.Lat, 0) {
		return false
	}
	return c.Lng >= -180 && c.Lng <= 180 && c.Lat >= -90 && c.Lat <= 90
}

// DistanceKm returns the haversine great-circle distance between two
// coordinates, rounded to one decimal place.
func DistanceKm(a, b Coordinate) (float64, error) {
	if !a.Valid() || !b.Valid() {
		return 0, models.ErrInvalidCoordinate
	}

	lat1 := a.Lat * math.Pi / 180
	lat2 := b.Lat * math.Pi / 180
	dLat := (b.Lat - a.Lat) * math.Pi / 180
	dLng := (b.Lng - a.Lng) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLng/2)*math.Sin(dLng/2)
	d := 2 * earthRadiusKm * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return math.Round(d*10) / 10, nil
}

// RankCandidates filters candidates to those within maxDistanceKm of origin,
// sorts them ascending by distance (ties keep insertion order) and truncates
// to maxResults. Scores are assigned by rank position only.
func RankCandidates(origin Coordinate, candidates []Candidate, maxDistanceKm float64, maxResults int) ([]RankedCandidate, error) {
	if !origin.Valid() {
		return nil, models.ErrInvalidCoordinate
	}

	ranked := make([]RankedCandidate, 0, len(candidates))
	for _, c := range candidates {
		d, err := DistanceKm(origin, c.Location)
		if err != nil {
			return nil, err
		}
		if d > maxDistanceKm {
			continue
		}
		ranked = append(ranked, RankedCandidate{Candidate: c, DistanceKm: d})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].DistanceKm < ranked[j].DistanceKm
	})

	if maxResults > 0 && len(ranked) > maxResults {
		ranked = ranked[:maxResults]
	}

	for i := range ranked {
		score := topScore - i*scoreStep
		if score < 0 {
			score = 0
		}
		ranked[i].Score = score
	}

	return ranked, nil
}
