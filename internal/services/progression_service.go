package services

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/exp/slog"

	"github.com/givebridge/givebridge-backend/internal/levels"
	"github.com/givebridge/givebridge-backend/internal/models"
	"github.com/givebridge/givebridge-backend/internal/repositories"
	"github.com/givebridge/givebridge-backend/internal/utils"
	"github.com/givebridge/givebridge-backend/pkg/certrenderer"
)

// AwardResult describes the outcome of a points award. Callers compose their
// own notification messages from it.
type AwardResult struct {
	PointsAdded    int                 `json:"pointsAdded"`
	TotalPoints    int                 `json:"totalPoints"`
	OldLevel       int                 `json:"oldLevel"`
	NewLevel       int                 `json:"newLevel"`
	LevelUp        bool                `json:"levelUp"`
	NewBadges      []models.Badge      `json:"newBadges"`
	NewCertificate *models.Certificate `json:"newCertificate,omitempty"`
}

// ProgressionService awards points, recomputes levels and issues badges and
// certificates on level-up.
type ProgressionService struct {
	userRepo  repositories.UserRepository
	badgeRepo repositories.BadgeRepository
	certRepo  repositories.CertificateRepository
	pointRepo repositories.PointTransactionRepository
	renderer  certrenderer.Renderer
	notifier  Notifier
	issuer    string
}

// NewProgressionService creates a new ProgressionService
func NewProgressionService(
	userRepo repositories.UserRepository,
	badgeRepo repositories.BadgeRepository,
	certRepo repositories.CertificateRepository,
	pointRepo repositories.PointTransactionRepository,
	renderer certrenderer.Renderer,
	notifier Notifier,
	issuer string,
) *ProgressionService {
	return &ProgressionService{
		userRepo:  userRepo,
		badgeRepo: badgeRepo,
		certRepo:  certRepo,
		pointRepo: pointRepo,
		renderer:  renderer,
		notifier:  notifier,
		issuer:    issuer,
	}
}

// Award adds points to the user's cumulative total and recomputes the level
// from scratch against the level table. On level-up it upserts the badge for
// the landed-on level, issues one certificate, and persists the user's
// progression fields in a single save. Certificate PDF rendering is
// best-effort; its failure never rolls back the award.
func (s *ProgressionService) Award(ctx context.Context, userID primitive.ObjectID, points int, source string, donationID *primitive.ObjectID) (*AwardResult, error) {
	if points < 0 {
		return nil, fmt.Errorf("%w: points must be non-negative", models.ErrValidationFailed)
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("user not found for award: %w", err)
	}

	oldLevel := levels.LevelForPoints(user.Points)
	totalPoints := user.Points + points
	newLevel := levels.LevelForPoints(totalPoints)

	result := &AwardResult{
		PointsAdded: points,
		TotalPoints: totalPoints,
		OldLevel:    oldLevel.Level,
		NewLevel:    newLevel.Level,
		LevelUp:     newLevel.Level > oldLevel.Level,
		NewBadges:   []models.Badge{},
	}

	badges := user.Badges
	if result.LevelUp {
		// A multi-level jump awards only the landed-on level's badge.
		badge, err := s.badgeRepo.UpsertByName(ctx, &models.Badge{
			Name:        newLevel.Name,
			Description: fmt.Sprintf("Awarded for reaching level %d", newLevel.Level),
			Category:    "level",
			Criteria:    models.BadgeCriteria{Type: "points", Value: newLevel.MinPoints},
		})
		if err != nil {
			slog.Error("Failed to upsert level badge", "error", err, "badge", newLevel.Name)
		} else if !user.HasBadge(badge.ID) {
			badges = append(badges, badge.ID)
			result.NewBadges = append(result.NewBadges, *badge)
		}

		cert := &models.Certificate{
			RecipientID:       userID,
			Issuer:            s.issuer,
			Type:              "level-up",
			Title:             fmt.Sprintf("Level %d: %s", newLevel.Level, newLevel.Name),
			Description:       fmt.Sprintf("Reached level %d (%s) with %d points", newLevel.Level, newLevel.Name, totalPoints),
			IssueDate:         time.Now(),
			CertificateNumber: utils.NewCertificateNumber(time.Now()),
		}
		if s.renderer != nil {
			url, err := s.renderer.Render(cert, user)
			if err != nil {
				// Certificate existence is not coupled to PDF availability.
				slog.Warn("Certificate rendering failed, persisting record without URL", "error", err, "certificateNumber", cert.CertificateNumber)
			} else {
				cert.CertificateURL = url
			}
		}
		if err := s.certRepo.Create(ctx, cert); err != nil {
			slog.Error("Failed to persist certificate", "error", err, "userId", userID)
		} else {
			result.NewCertificate = cert
		}
	}

	if err := s.userRepo.SaveProgression(ctx, userID, totalPoints, newLevel.Level, badges); err != nil {
		return nil, fmt.Errorf("failed to save progression: %w", err)
	}

	transaction := &models.PointTransaction{
		UserID:     userID,
		Points:     points,
		Source:     source,
		DonationID: donationID,
	}
	if err := s.pointRepo.Create(ctx, transaction); err != nil {
		// Audit record failure does not undo the award.
		slog.Error("Failed to create point transaction record", "error", err, "userId", userID)
	}

	s.notifyAward(ctx, userID, result, newLevel)

	slog.Info("Points awarded", "userId", userID, "points", points, "total", totalPoints, "levelUp", result.LevelUp, "source", source)
	return result, nil
}

// notifyAward emits the points:earned event. Every award produces one event
// so clients can update progress bars; level-ups carry the level payload.
func (s *ProgressionService) notifyAward(ctx context.Context, userID primitive.ObjectID, result *AwardResult, newLevel levels.Level) {
	if s.notifier == nil {
		return
	}
	data := map[string]interface{}{
		"pointsAdded": result.PointsAdded,
		"totalPoints": result.TotalPoints,
		"level":       result.NewLevel,
		"levelUp":     result.LevelUp,
	}
	title := "Points earned"
	message := fmt.Sprintf("You earned %d points.", result.PointsAdded)
	if result.LevelUp {
		title = "Level up!"
		message = fmt.Sprintf("You earned %d points and reached level %d (%s).", result.PointsAdded, newLevel.Level, newLevel.Name)
		if result.NewCertificate != nil {
			data["certificateNumber"] = result.NewCertificate.CertificateNumber
		}
	}
	s.notifier.Notify(ctx, userID, models.NotificationPointsEarned, title, message, data)
}

// GetCertificates returns the certificates issued to a user
func (s *ProgressionService) GetCertificates(ctx context.Context, userID primitive.ObjectID) ([]*models.Certificate, error) {
	return s.certRepo.FindByRecipient(ctx, userID)
}

// GetBadges resolves a user's badge references to definitions
func (s *ProgressionService) GetBadges(ctx context.Context, userID primitive.ObjectID) ([]*models.Badge, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.badgeRepo.FindByIDs(ctx, user.Badges)
}

// GetPointHistory returns a page of a user's point transactions
func (s *ProgressionService) GetPointHistory(ctx context.Context, userID primitive.ObjectID, page, limit int) ([]*models.PointTransaction, error) {
	return s.pointRepo.FindByUserID(ctx, userID, page, limit)
}
