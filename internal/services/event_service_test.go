package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/givebridge/givebridge-backend/internal/models"
	"github.com/givebridge/givebridge-backend/pkg/certrenderer"
)

type fakeEventRepo struct {
	events map[primitive.ObjectID]*models.VolunteerEvent
}

func newFakeEventRepo() *fakeEventRepo {
	return &fakeEventRepo{events: make(map[primitive.ObjectID]*models.VolunteerEvent)}
}

func (r *fakeEventRepo) Create(ctx context.Context, event *models.VolunteerEvent) error {
	event.ID = primitive.NewObjectID()
	copied := *event
	r.events[event.ID] = &copied
	return nil
}

func (r *fakeEventRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*models.VolunteerEvent, error) {
	e, ok := r.events[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	copied := *e
	return &copied, nil
}

func (r *fakeEventRepo) FindAll(ctx context.Context, page, limit int) ([]*models.VolunteerEvent, error) {
	var out []*models.VolunteerEvent
	for _, e := range r.events {
		copied := *e
		out = append(out, &copied)
	}
	return out, nil
}

func newEventFixture(t *testing.T) (*EventService, *fakeUserRepo, primitive.ObjectID) {
	t.Helper()
	userRepo := newFakeUserRepo()
	volunteer := &models.User{Name: "Ravi", Email: "ravi@example.com", Role: models.RoleDonor, Level: 1, Badges: []primitive.ObjectID{}}
	require.NoError(t, userRepo.Create(context.Background(), volunteer))

	progression := NewProgressionService(userRepo, newFakeBadgeRepo(), newFakeCertificateRepo(), newFakePointRepo(), certrenderer.NewMockRenderer(), &recordingNotifier{}, "GiveBridge")
	service := NewEventService(newFakeEventRepo(), userRepo, progression)
	return service, userRepo, volunteer.ID
}

func TestEventCompleteCreditsPointsAndHours(t *testing.T) {
	service, userRepo, volunteerID := newEventFixture(t)

	event, err := service.Create(context.Background(), primitive.NewObjectID(), CreateEventInput{
		Title: "Weekend food drive",
		Date:  time.Now().Add(48 * time.Hour),
		Hours: 4,
	})
	require.NoError(t, err)

	result, err := service.Complete(context.Background(), event.ID, volunteerID)
	require.NoError(t, err)
	assert.Equal(t, 25, result.PointsAdded)

	volunteer, err := userRepo.FindByID(context.Background(), volunteerID)
	require.NoError(t, err)
	assert.Equal(t, 25, volunteer.Points)
	assert.Equal(t, 4.0, volunteer.VolunteerHours)
}

func TestEventCompleteUnknownEvent(t *testing.T) {
	service, _, volunteerID := newEventFixture(t)

	_, err := service.Complete(context.Background(), primitive.NewObjectID(), volunteerID)
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestEventCreateValidation(t *testing.T) {
	service, _, _ := newEventFixture(t)

	_, err := service.Create(context.Background(), primitive.NewObjectID(), CreateEventInput{Title: "  ", Date: time.Now()})
	assert.ErrorIs(t, err, models.ErrValidationFailed)

	_, err = service.Create(context.Background(), primitive.NewObjectID(), CreateEventInput{Title: "drive", Date: time.Now(), Hours: -1})
	assert.ErrorIs(t, err, models.ErrValidationFailed)
}
