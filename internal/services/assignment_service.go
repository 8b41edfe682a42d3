package services

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/exp/slog"

	"github.com/givebridge/givebridge-backend/internal/geo"
	"github.com/givebridge/givebridge-backend/internal/models"
	"github.com/givebridge/givebridge-backend/internal/repositories"
)

// AssignmentService populates a new item donation's candidate-assignment
// list from the NGO directory. It never fails the donation: directory errors
// and empty results leave the donation unassigned with an explanatory
// activity entry.
type AssignmentService struct {
	ngoRepo        repositories.NGORepository
	searchRadiusKm float64
	maxCandidates  int
}

// NewAssignmentService creates a new AssignmentService
func NewAssignmentService(ngoRepo repositories.NGORepository, searchRadiusKm float64, maxCandidates int) *AssignmentService {
	if searchRadiusKm <= 0 {
		searchRadiusKm = 15
	}
	if maxCandidates <= 0 {
		maxCandidates = 3
	}
	return &AssignmentService{
		ngoRepo:        ngoRepo,
		searchRadiusKm: searchRadiusKm,
		maxCandidates:  maxCandidates,
	}
}

// Assign queries active NGOs near the donation's location, ranks them by
// distance and fills donation.AssignedNGOs with pending assignment records.
// Called before the donation is persisted; mutates the donation in place.
func (s *AssignmentService) Assign(ctx context.Context, donation *models.Donation) {
	now := time.Now()

	// Over-fetch so the ranker has the full radius to choose from.
	ngos, err := s.ngoRepo.FindActiveNear(ctx, donation.Location, s.searchRadiusKm*1000, s.maxCandidates*10)
	if err != nil {
		slog.Warn("NGO directory query failed, donation proceeds unassigned", "error", err)
		donation.ActivityLog = append(donation.ActivityLog, models.ActivityEntry{
			Action:    "assignment-failed",
			Actor:     donation.DonorID,
			Message:   "NGO search failed; donation created without assignments",
			Timestamp: now,
		})
		return
	}

	candidates := make([]geo.Candidate, 0, len(ngos))
	byID := make(map[string]*models.NGO, len(ngos))
	for _, ngo := range ngos {
		candidates = append(candidates, geo.Candidate{
			ID:       ngo.ID.Hex(),
			Location: geo.Coordinate{Lng: ngo.Location.Lng(), Lat: ngo.Location.Lat()},
		})
		byID[ngo.ID.Hex()] = ngo
	}

	origin := geo.Coordinate{Lng: donation.Location.Lng(), Lat: donation.Location.Lat()}
	ranked, err := geo.RankCandidates(origin, candidates, s.searchRadiusKm, s.maxCandidates)
	if err != nil {
		slog.Warn("Candidate ranking failed, donation proceeds unassigned", "error", err)
		donation.ActivityLog = append(donation.ActivityLog, models.ActivityEntry{
			Action:    "assignment-failed",
			Actor:     donation.DonorID,
			Message:   "Candidate ranking failed; donation created without assignments",
			Timestamp: now,
		})
		return
	}

	if len(ranked) == 0 {
		donation.ActivityLog = append(donation.ActivityLog, models.ActivityEntry{
			Action:    "no-ngos-found",
			Actor:     donation.DonorID,
			Message:   fmt.Sprintf("No active NGOs found within %.0f km", s.searchRadiusKm),
			Timestamp: now,
		})
		return
	}

	for _, rc := range ranked {
		ngo := byID[rc.ID]
		donation.AssignedNGOs = append(donation.AssignedNGOs, models.Assignment{
			NGOID:      ngo.ID,
			NGOName:    ngo.Name,
			DistanceKm: rc.DistanceKm,
			Status:     models.AssignmentStatusPending,
			AssignedAt: now,
		})
	}

	donation.ActivityLog = append(donation.ActivityLog, models.ActivityEntry{
		Action:    "assigned",
		Actor:     donation.DonorID,
		Message:   fmt.Sprintf("Assigned to %d nearby NGO(s)", len(ranked)),
		Timestamp: now,
	})
}
