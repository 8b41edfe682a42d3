package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/exp/slog"

	"github.com/givebridge/givebridge-backend/internal/geo"
	"github.com/givebridge/givebridge-backend/internal/levels"
	"github.com/givebridge/givebridge-backend/internal/models"
	"github.com/givebridge/givebridge-backend/internal/repositories"
)

// CreateDonationInput is the payload for a new item donation.
type CreateDonationInput struct {
	Items     []models.DonationItem `json:"items" binding:"required"`
	Longitude float64               `json:"longitude"`
	Latitude  float64               `json:"latitude"`
	Address   string                `json:"address"`
	City      string                `json:"city"`
	State     string                `json:"state"`
	ZipCode   string                `json:"zipCode"`
}

// DonationService drives the donation lifecycle: creation with synchronous
// NGO assignment, the per-assignment accept/reject/complete transitions, the
// aggregate status derivation, and the points side-effects on completion.
type DonationService struct {
	donationRepo repositories.DonationRepository
	assigner     *AssignmentService
	progression  *ProgressionService
	notifier     Notifier
}

// NewDonationService creates a new DonationService
func NewDonationService(
	donationRepo repositories.DonationRepository,
	assigner *AssignmentService,
	progression *ProgressionService,
	notifier Notifier,
) *DonationService {
	return &DonationService{
		donationRepo: donationRepo,
		assigner:     assigner,
		progression:  progression,
		notifier:     notifier,
	}
}

// CreateItemDonation validates the submission, runs the assignment pass
// synchronously, persists the donation and then notifies the assigned NGOs.
// Assignment failures never fail creation.
func (s *DonationService) CreateItemDonation(ctx context.Context, donorID primitive.ObjectID, input CreateDonationInput) (*models.Donation, error) {
	if len(input.Items) == 0 {
		return nil, fmt.Errorf("%w: at least one item is required", models.ErrValidationFailed)
	}
	for _, item := range input.Items {
		if strings.TrimSpace(item.Category) == "" {
			return nil, fmt.Errorf("%w: item category is required", models.ErrValidationFailed)
		}
		if item.Quantity <= 0 {
			return nil, fmt.Errorf("%w: item quantity must be positive", models.ErrValidationFailed)
		}
	}
	coord := geo.Coordinate{Lng: input.Longitude, Lat: input.Latitude}
	if !coord.Valid() {
		return nil, models.ErrInvalidCoordinate
	}

	now := time.Now()
	donation := &models.Donation{
		DonorID:      donorID,
		Kind:         models.DonationKindItem,
		Items:        input.Items,
		Location:     models.NewGeoLocation(input.Longitude, input.Latitude),
		Address:      input.Address,
		City:         input.City,
		State:        input.State,
		ZipCode:      input.ZipCode,
		Status:       models.DonationStatusPending,
		AssignedNGOs: []models.Assignment{},
		ActivityLog: []models.ActivityEntry{{
			Action:    "created",
			Actor:     donorID,
			Message:   "Donation submitted",
			Timestamp: now,
		}},
	}

	s.assigner.Assign(ctx, donation)

	if err := s.donationRepo.Create(ctx, donation); err != nil {
		return nil, fmt.Errorf("failed to save donation: %w", err)
	}

	// Notifications go out only once the stored document exists.
	for _, a := range donation.AssignedNGOs {
		s.notify(ctx, a.NGOID, models.NotificationDonationAssigned,
			"New donation nearby",
			fmt.Sprintf("A donation %.1f km away is waiting for your response.", a.DistanceKm),
			map[string]interface{}{"donationId": donation.ID.Hex(), "distanceKm": a.DistanceKm})
	}

	slog.Info("Donation created", "donationId", donation.ID, "donorId", donorID, "assigned", len(donation.AssignedNGOs))
	return donation, nil
}

// CreateMoneyDonation records a monetary donation. It needs no NGO pickup,
// completes immediately and awards points scaled by amount.
func (s *DonationService) CreateMoneyDonation(ctx context.Context, donorID primitive.ObjectID, amount float64) (*models.Donation, *AwardResult, error) {
	if amount <= 0 {
		return nil, nil, fmt.Errorf("%w: amount must be positive", models.ErrValidationFailed)
	}

	now := time.Now()
	donation := &models.Donation{
		DonorID:      donorID,
		Kind:         models.DonationKindMoney,
		Amount:       amount,
		Status:       models.DonationStatusCompleted,
		AssignedNGOs: []models.Assignment{},
		ActivityLog: []models.ActivityEntry{{
			Action:    "created",
			Actor:     donorID,
			Message:   fmt.Sprintf("Monetary donation of %.2f received", amount),
			Timestamp: now,
		}},
	}
	if err := s.donationRepo.Create(ctx, donation); err != nil {
		return nil, nil, fmt.Errorf("failed to save donation: %w", err)
	}

	points, err := levels.PointsForAction(levels.ActionMoney, amount)
	if err != nil {
		return nil, nil, err
	}
	result, err := s.progression.Award(ctx, donorID, points, "money-donation", &donation.ID)
	if err != nil {
		// The donation stands; the award can be replayed from the record.
		slog.Error("Points award failed for monetary donation", "error", err, "donationId", donation.ID)
		return donation, nil, nil
	}
	return donation, result, nil
}

// GetByID retrieves a donation
func (s *DonationService) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Donation, error) {
	return s.donationRepo.FindByID(ctx, id)
}

// GetByDonor lists a donor's donations
func (s *DonationService) GetByDonor(ctx context.Context, donorID primitive.ObjectID, page, limit int) ([]*models.Donation, error) {
	return s.donationRepo.FindByDonor(ctx, donorID, page, limit)
}

// GetByNGO lists donations offered to an NGO
func (s *DonationService) GetByNGO(ctx context.Context, ngoID primitive.ObjectID, page, limit int) ([]*models.Donation, error) {
	return s.donationRepo.FindByNGO(ctx, ngoID, page, limit)
}

// AcceptByNGO transitions the NGO's pending assignment to accepted. The
// first acceptor claims the primary-NGO slot through a conditional update,
// so concurrent accepts cannot both win.
func (s *DonationService) AcceptByNGO(ctx context.Context, donationID, ngoID primitive.ObjectID, notes string) (*models.Donation, error) {
	donation, err := s.donationRepo.FindByID(ctx, donationID)
	if err != nil {
		return nil, err
	}
	if donation.Status.Terminal() {
		return nil, models.ErrInvalidState
	}

	assignment := donation.AssignmentFor(ngoID)
	if assignment == nil {
		return nil, models.ErrNotAssigned
	}
	if assignment.Status != models.AssignmentStatusPending {
		return nil, models.ErrAlreadyDecided
	}

	now := time.Now()
	assignment.Status = models.AssignmentStatusAccepted
	assignment.AcceptedAt = &now
	if notes != "" {
		assignment.Notes = notes
	}
	if err := s.donationRepo.UpdateAssignment(ctx, donationID, ngoID, *assignment); err != nil {
		return nil, fmt.Errorf("failed to update assignment: %w", err)
	}

	entry := models.ActivityEntry{
		Action:    "accepted",
		Actor:     ngoID,
		Message:   fmt.Sprintf("%s accepted the donation", assignment.NGOName),
		Timestamp: now,
	}
	if err := s.donationRepo.AppendActivity(ctx, donationID, entry); err != nil {
		slog.Error("Failed to append activity entry", "error", err, "donationId", donationID)
	}
	donation.ActivityLog = append(donation.ActivityLog, entry)

	won, err := s.donationRepo.SetPrimaryNGOIfUnset(ctx, donationID, ngoID)
	if err != nil {
		return nil, fmt.Errorf("failed to claim primary NGO slot: %w", err)
	}
	if won {
		donation.PrimaryNGOID = &ngoID
		donation.Status = models.DonationStatusAccepted
	}

	s.notify(ctx, donation.DonorID, models.NotificationDonationAccepted,
		"Donation accepted",
		fmt.Sprintf("%s accepted your donation and will arrange pickup.", assignment.NGOName),
		map[string]interface{}{"donationId": donationID.Hex(), "ngoId": ngoID.Hex()})

	slog.Info("Donation accepted", "donationId", donationID, "ngoId", ngoID, "primary", won)
	return donation, nil
}

// RejectByNGO marks the NGO's assignment rejected with the given reason.
// When every assignment is rejected the aggregate status follows, and only
// then is the donor informed.
func (s *DonationService) RejectByNGO(ctx context.Context, donationID, ngoID primitive.ObjectID, reason string) (*models.Donation, error) {
	if strings.TrimSpace(reason) == "" {
		return nil, models.ErrReasonRequired
	}

	donation, err := s.donationRepo.FindByID(ctx, donationID)
	if err != nil {
		return nil, err
	}
	if donation.Status.Terminal() {
		return nil, models.ErrInvalidState
	}

	assignment := donation.AssignmentFor(ngoID)
	if assignment == nil {
		return nil, models.ErrNotAssigned
	}
	if assignment.Status != models.AssignmentStatusPending {
		return nil, models.ErrAlreadyDecided
	}

	now := time.Now()
	assignment.Status = models.AssignmentStatusRejected
	assignment.Notes = reason
	if err := s.donationRepo.UpdateAssignment(ctx, donationID, ngoID, *assignment); err != nil {
		return nil, fmt.Errorf("failed to update assignment: %w", err)
	}

	entry := models.ActivityEntry{
		Action:    "rejected",
		Actor:     ngoID,
		Message:   fmt.Sprintf("%s declined: %s", assignment.NGOName, reason),
		Timestamp: now,
	}
	if err := s.donationRepo.AppendActivity(ctx, donationID, entry); err != nil {
		slog.Error("Failed to append activity entry", "error", err, "donationId", donationID)
	}
	donation.ActivityLog = append(donation.ActivityLog, entry)

	switch {
	case donation.AllAssignmentsRejected():
		if err := s.donationRepo.SetStatus(ctx, donationID, models.DonationStatusRejected); err != nil {
			slog.Error("Failed to set aggregate rejected status", "error", err, "donationId", donationID)
		} else {
			donation.Status = models.DonationStatusRejected
			s.notify(ctx, donation.DonorID, models.NotificationDonationRejected,
				"Donation could not be placed",
				"All nearby NGOs declined your donation.",
				map[string]interface{}{"donationId": donationID.Hex()})
		}
	case donation.AllAssignmentsSettled():
		// This rejection was the last open assignment and another NGO has
		// already completed its pickup.
		if err := s.donationRepo.SetStatus(ctx, donationID, models.DonationStatusCompleted); err != nil {
			slog.Error("Failed to set aggregate completed status", "error", err, "donationId", donationID)
		} else {
			donation.Status = models.DonationStatusCompleted
		}
	}

	slog.Info("Donation rejected by NGO", "donationId", donationID, "ngoId", ngoID)
	return donation, nil
}

// StartPickup moves an accepted assignment to in-progress. Only the primary
// NGO drives the aggregate status.
func (s *DonationService) StartPickup(ctx context.Context, donationID, ngoID primitive.ObjectID) (*models.Donation, error) {
	donation, err := s.donationRepo.FindByID(ctx, donationID)
	if err != nil {
		return nil, err
	}
	if donation.Status.Terminal() {
		return nil, models.ErrInvalidState
	}

	assignment := donation.AssignmentFor(ngoID)
	if assignment == nil {
		return nil, models.ErrNotAssigned
	}
	if assignment.Status != models.AssignmentStatusAccepted {
		return nil, models.ErrInvalidState
	}

	now := time.Now()
	assignment.Status = models.AssignmentStatusInProgress
	if err := s.donationRepo.UpdateAssignment(ctx, donationID, ngoID, *assignment); err != nil {
		return nil, fmt.Errorf("failed to update assignment: %w", err)
	}

	entry := models.ActivityEntry{
		Action:    "pickup-started",
		Actor:     ngoID,
		Message:   fmt.Sprintf("%s started the pickup", assignment.NGOName),
		Timestamp: now,
	}
	if err := s.donationRepo.AppendActivity(ctx, donationID, entry); err != nil {
		slog.Error("Failed to append activity entry", "error", err, "donationId", donationID)
	}
	donation.ActivityLog = append(donation.ActivityLog, entry)

	if donation.PrimaryNGOID != nil && *donation.PrimaryNGOID == ngoID {
		if err := s.donationRepo.SetStatus(ctx, donationID, models.DonationStatusInProgress); err != nil {
			slog.Error("Failed to set aggregate in-progress status", "error", err, "donationId", donationID)
		} else {
			donation.Status = models.DonationStatusInProgress
		}
	}
	return donation, nil
}

// CompletePickup marks the NGO's assignment completed. When every
// assignment has settled the aggregate status becomes completed and the
// donor is awarded category points. The award runs after the completion is
// persisted; its failure does not undo the completion.
func (s *DonationService) CompletePickup(ctx context.Context, donationID, ngoID primitive.ObjectID) (*models.Donation, *AwardResult, error) {
	donation, err := s.donationRepo.FindByID(ctx, donationID)
	if err != nil {
		return nil, nil, err
	}
	if donation.Status.Terminal() {
		return nil, nil, models.ErrInvalidState
	}

	assignment := donation.AssignmentFor(ngoID)
	if assignment == nil {
		return nil, nil, models.ErrNotAssigned
	}
	if assignment.Status != models.AssignmentStatusAccepted && assignment.Status != models.AssignmentStatusInProgress {
		return nil, nil, models.ErrInvalidState
	}

	now := time.Now()
	assignment.Status = models.AssignmentStatusCompleted
	assignment.CompletedAt = &now
	if err := s.donationRepo.UpdateAssignment(ctx, donationID, ngoID, *assignment); err != nil {
		return nil, nil, fmt.Errorf("failed to update assignment: %w", err)
	}

	entry := models.ActivityEntry{
		Action:    "completed",
		Actor:     ngoID,
		Message:   fmt.Sprintf("%s completed the pickup", assignment.NGOName),
		Timestamp: now,
	}
	if err := s.donationRepo.AppendActivity(ctx, donationID, entry); err != nil {
		slog.Error("Failed to append activity entry", "error", err, "donationId", donationID)
	}
	donation.ActivityLog = append(donation.ActivityLog, entry)

	if donation.AllAssignmentsSettled() {
		if err := s.donationRepo.SetStatus(ctx, donationID, models.DonationStatusCompleted); err != nil {
			slog.Error("Failed to set aggregate completed status", "error", err, "donationId", donationID)
		} else {
			donation.Status = models.DonationStatusCompleted
		}
	}

	// Flat award per completed item donation; quantity does not scale it.
	kind := levels.ActionEssentials
	if len(donation.Items) > 0 {
		kind = levels.CategoryFromText(donation.Items[0].Category)
	}
	// CategoryFromText only yields item action kinds, so the lookup cannot fail.
	points, _ := levels.PointsForAction(kind, 0)

	var result *AwardResult
	if points > 0 {
		result, err = s.progression.Award(ctx, donation.DonorID, points, "donation-completed", &donationID)
		if err != nil {
			// Completion stands even when the award fails.
			slog.Error("Points award failed after completion", "error", err, "donationId", donationID)
			result = nil
		}
	}

	data := map[string]interface{}{"donationId": donationID.Hex(), "ngoId": ngoID.Hex()}
	message := fmt.Sprintf("%s picked up your donation. Thank you!", assignment.NGOName)
	if result != nil {
		data["pointsAdded"] = result.PointsAdded
		data["levelUp"] = result.LevelUp
		if result.NewCertificate != nil {
			data["certificateNumber"] = result.NewCertificate.CertificateNumber
		}
		message = fmt.Sprintf("%s You earned %d points.", message, result.PointsAdded)
	}
	s.notify(ctx, donation.DonorID, models.NotificationDonationCompleted, "Donation completed", message, data)

	slog.Info("Donation pickup completed", "donationId", donationID, "ngoId", ngoID, "points", points)
	return donation, result, nil
}

// CancelByDonor cancels a donation that has not progressed past acceptance.
// Every NGO still holding a live assignment is informed.
func (s *DonationService) CancelByDonor(ctx context.Context, donationID, actorID primitive.ObjectID) (*models.Donation, error) {
	donation, err := s.donationRepo.FindByID(ctx, donationID)
	if err != nil {
		return nil, err
	}
	if donation.DonorID != actorID {
		return nil, models.ErrUnauthorized
	}
	if donation.Status != models.DonationStatusPending && donation.Status != models.DonationStatusAccepted {
		return nil, models.ErrInvalidState
	}

	if err := s.donationRepo.SetStatus(ctx, donationID, models.DonationStatusCancelled); err != nil {
		return nil, fmt.Errorf("failed to cancel donation: %w", err)
	}
	donation.Status = models.DonationStatusCancelled

	entry := models.ActivityEntry{
		Action:    "cancelled",
		Actor:     actorID,
		Message:   "Donation cancelled by donor",
		Timestamp: time.Now(),
	}
	if err := s.donationRepo.AppendActivity(ctx, donationID, entry); err != nil {
		slog.Error("Failed to append activity entry", "error", err, "donationId", donationID)
	}
	donation.ActivityLog = append(donation.ActivityLog, entry)

	for _, a := range donation.AssignedNGOs {
		if a.Status == models.AssignmentStatusRejected {
			continue
		}
		s.notify(ctx, a.NGOID, models.NotificationDonationCancelled,
			"Donation cancelled",
			"The donor cancelled a donation assigned to you.",
			map[string]interface{}{"donationId": donationID.Hex()})
	}

	slog.Info("Donation cancelled", "donationId", donationID, "donorId", actorID)
	return donation, nil
}

func (s *DonationService) notify(ctx context.Context, recipientID primitive.ObjectID, kind, title, message string, data map[string]interface{}) {
	if s.notifier == nil {
		return
	}
	s.notifier.Notify(ctx, recipientID, kind, title, message, data)
}
