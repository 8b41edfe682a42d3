package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/givebridge/givebridge-backend/internal/models"
	"github.com/givebridge/givebridge-backend/pkg/certrenderer"
)

type progressionFixture struct {
	service   *ProgressionService
	userRepo  *fakeUserRepo
	badgeRepo *fakeBadgeRepo
	certRepo  *fakeCertificateRepo
	pointRepo *fakePointRepo
	notifier  *recordingNotifier
	userID    primitive.ObjectID
}

func newProgressionFixture(t *testing.T, startingPoints int) *progressionFixture {
	t.Helper()

	userRepo := newFakeUserRepo()
	badgeRepo := newFakeBadgeRepo()
	certRepo := newFakeCertificateRepo()
	pointRepo := newFakePointRepo()
	notifier := &recordingNotifier{}

	user := &models.User{
		Name:   "Asha",
		Email:  "asha@example.com",
		Role:   models.RoleDonor,
		Points: startingPoints,
		Level:  1,
		Badges: []primitive.ObjectID{},
	}
	require.NoError(t, userRepo.Create(context.Background(), user))

	service := NewProgressionService(userRepo, badgeRepo, certRepo, pointRepo, certrenderer.NewMockRenderer(), notifier, "GiveBridge")
	return &progressionFixture{
		service:   service,
		userRepo:  userRepo,
		badgeRepo: badgeRepo,
		certRepo:  certRepo,
		pointRepo: pointRepo,
		notifier:  notifier,
		userID:    user.ID,
	}
}

func TestAwardCrossingThresholdLevelsUp(t *testing.T) {
	f := newProgressionFixture(t, 90)

	result, err := f.service.Award(context.Background(), f.userID, 20, "donation-completed", nil)
	require.NoError(t, err)

	assert.Equal(t, 110, result.TotalPoints)
	assert.Equal(t, 1, result.OldLevel)
	assert.Equal(t, 2, result.NewLevel)
	assert.True(t, result.LevelUp)

	require.Len(t, result.NewBadges, 1)
	assert.Equal(t, "Intermediate", result.NewBadges[0].Name)

	require.NotNil(t, result.NewCertificate)
	assert.Equal(t, "Level 2: Intermediate", result.NewCertificate.Title)
	assert.NotEmpty(t, result.NewCertificate.CertificateNumber)
	assert.NotEmpty(t, result.NewCertificate.CertificateURL)

	user, err := f.userRepo.FindByID(context.Background(), f.userID)
	require.NoError(t, err)
	assert.Equal(t, 110, user.Points)
	assert.Equal(t, 2, user.Level)
	assert.Len(t, user.Badges, 1)

	certs, err := f.certRepo.FindByRecipient(context.Background(), f.userID)
	require.NoError(t, err)
	assert.Len(t, certs, 1)

	notifications := f.notifier.byKind(models.NotificationPointsEarned)
	require.Len(t, notifications, 1)
	assert.Equal(t, true, notifications[0].Data["levelUp"])
	assert.Equal(t, result.NewCertificate.CertificateNumber, notifications[0].Data["certificateNumber"])
}

func TestAwardBelowThresholdKeepsLevel(t *testing.T) {
	f := newProgressionFixture(t, 50)

	result, err := f.service.Award(context.Background(), f.userID, 20, "donation-completed", nil)
	require.NoError(t, err)

	assert.Equal(t, 70, result.TotalPoints)
	assert.False(t, result.LevelUp)
	assert.Empty(t, result.NewBadges)
	assert.Nil(t, result.NewCertificate)

	certs, err := f.certRepo.FindByRecipient(context.Background(), f.userID)
	require.NoError(t, err)
	assert.Empty(t, certs)

	// Every award still produces a points event.
	assert.Len(t, f.notifier.byKind(models.NotificationPointsEarned), 1)
}

func TestAwardMultiLevelJumpGrantsOnlyLandedBadge(t *testing.T) {
	f := newProgressionFixture(t, 0)

	result, err := f.service.Award(context.Background(), f.userID, 600, "money-donation", nil)
	require.NoError(t, err)

	assert.Equal(t, 3, result.NewLevel)
	require.Len(t, result.NewBadges, 1)
	assert.Equal(t, "Advanced", result.NewBadges[0].Name)

	// Skipped levels never get retroactive badges.
	_, err = f.badgeRepo.FindByName(context.Background(), "Intermediate")
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestAwardZeroPoints(t *testing.T) {
	f := newProgressionFixture(t, 100)

	result, err := f.service.Award(context.Background(), f.userID, 0, "event-completed", nil)
	require.NoError(t, err)

	assert.Equal(t, 100, result.TotalPoints)
	assert.False(t, result.LevelUp)
}

func TestAwardNegativePointsRejected(t *testing.T) {
	f := newProgressionFixture(t, 100)

	_, err := f.service.Award(context.Background(), f.userID, -10, "donation-completed", nil)
	assert.ErrorIs(t, err, models.ErrValidationFailed)
}

func TestAwardRendererFailureStillPersistsCertificate(t *testing.T) {
	f := newProgressionFixture(t, 90)
	f.service.renderer = failingRenderer{}

	result, err := f.service.Award(context.Background(), f.userID, 20, "donation-completed", nil)
	require.NoError(t, err)

	require.NotNil(t, result.NewCertificate)
	assert.Empty(t, result.NewCertificate.CertificateURL)
	assert.NotEmpty(t, result.NewCertificate.CertificateNumber)

	certs, err := f.certRepo.FindByRecipient(context.Background(), f.userID)
	require.NoError(t, err)
	require.Len(t, certs, 1)
	assert.Empty(t, certs[0].CertificateURL)
}

func TestAwardBadgeUpsertFailureDoesNotBlockAward(t *testing.T) {
	f := newProgressionFixture(t, 90)
	f.badgeRepo.upsertErr = errors.New("badge store down")

	result, err := f.service.Award(context.Background(), f.userID, 20, "donation-completed", nil)
	require.NoError(t, err)

	assert.True(t, result.LevelUp)
	assert.Empty(t, result.NewBadges)

	user, err := f.userRepo.FindByID(context.Background(), f.userID)
	require.NoError(t, err)
	assert.Equal(t, 110, user.Points)
	assert.Equal(t, 2, user.Level)
}

func TestAwardRecordsPointTransaction(t *testing.T) {
	f := newProgressionFixture(t, 0)
	donationID := primitive.NewObjectID()

	_, err := f.service.Award(context.Background(), f.userID, 20, "donation-completed", &donationID)
	require.NoError(t, err)

	transactions, err := f.pointRepo.FindByUserID(context.Background(), f.userID, 1, 10)
	require.NoError(t, err)
	require.Len(t, transactions, 1)
	assert.Equal(t, 20, transactions[0].Points)
	assert.Equal(t, "donation-completed", transactions[0].Source)
	require.NotNil(t, transactions[0].DonationID)
	assert.Equal(t, donationID, *transactions[0].DonationID)
}

func TestAwardRepeatedLevelUpReusesBadgeDefinition(t *testing.T) {
	f := newProgressionFixture(t, 90)

	first, err := f.service.Award(context.Background(), f.userID, 20, "donation-completed", nil)
	require.NoError(t, err)
	require.Len(t, first.NewBadges, 1)

	// A second user crossing the same threshold shares the definition.
	other := &models.User{Name: "Ravi", Email: "ravi@example.com", Role: models.RoleDonor, Points: 95, Level: 1, Badges: []primitive.ObjectID{}}
	require.NoError(t, f.userRepo.Create(context.Background(), other))

	second, err := f.service.Award(context.Background(), other.ID, 20, "donation-completed", nil)
	require.NoError(t, err)
	require.Len(t, second.NewBadges, 1)
	assert.Equal(t, first.NewBadges[0].ID, second.NewBadges[0].ID)
}
