package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/exp/slog"

	"github.com/givebridge/givebridge-backend/internal/levels"
	"github.com/givebridge/givebridge-backend/internal/models"
	"github.com/givebridge/givebridge-backend/internal/repositories"
)

// CreateEventInput is the payload for publishing a volunteer event.
type CreateEventInput struct {
	Title       string    `json:"title" binding:"required"`
	Description string    `json:"description"`
	Date        time.Time `json:"date" binding:"required"`
	Hours       float64   `json:"hours"`
	Longitude   float64   `json:"longitude"`
	Latitude    float64   `json:"latitude"`
}

// EventService manages volunteer events and credits participation
type EventService struct {
	eventRepo   repositories.EventRepository
	userRepo    repositories.UserRepository
	progression *ProgressionService
}

// NewEventService creates a new EventService
func NewEventService(eventRepo repositories.EventRepository, userRepo repositories.UserRepository, progression *ProgressionService) *EventService {
	return &EventService{
		eventRepo:   eventRepo,
		userRepo:    userRepo,
		progression: progression,
	}
}

// Create publishes a volunteer event
func (s *EventService) Create(ctx context.Context, organizerID primitive.ObjectID, input CreateEventInput) (*models.VolunteerEvent, error) {
	if strings.TrimSpace(input.Title) == "" {
		return nil, fmt.Errorf("%w: title is required", models.ErrValidationFailed)
	}
	if input.Hours < 0 {
		return nil, fmt.Errorf("%w: hours must be non-negative", models.ErrValidationFailed)
	}

	event := &models.VolunteerEvent{
		Title:       input.Title,
		Description: input.Description,
		OrganizerID: organizerID,
		Location:    models.NewGeoLocation(input.Longitude, input.Latitude),
		Date:        input.Date,
		Hours:       input.Hours,
	}
	if err := s.eventRepo.Create(ctx, event); err != nil {
		return nil, fmt.Errorf("failed to create event: %w", err)
	}

	slog.Info("Volunteer event created", "eventId", event.ID, "organizerId", organizerID)
	return event, nil
}

// GetByID retrieves a volunteer event
func (s *EventService) GetByID(ctx context.Context, id primitive.ObjectID) (*models.VolunteerEvent, error) {
	return s.eventRepo.FindByID(ctx, id)
}

// List returns a page of upcoming events, soonest first
func (s *EventService) List(ctx context.Context, page, limit int) ([]*models.VolunteerEvent, error) {
	return s.eventRepo.FindAll(ctx, page, limit)
}

// Complete credits a volunteer for attending the event: a flat event point
// award plus the event's hours on their record. Hour crediting is best-effort
// once the award has landed.
func (s *EventService) Complete(ctx context.Context, eventID, volunteerID primitive.ObjectID) (*AwardResult, error) {
	event, err := s.eventRepo.FindByID(ctx, eventID)
	if err != nil {
		return nil, err
	}

	points, err := levels.PointsForAction(levels.ActionEvent, 0)
	if err != nil {
		return nil, err
	}
	result, err := s.progression.Award(ctx, volunteerID, points, "event-completed", nil)
	if err != nil {
		return nil, err
	}

	if event.Hours > 0 {
		if err := s.userRepo.IncrementVolunteerHours(ctx, volunteerID, event.Hours); err != nil {
			slog.Error("Failed to credit volunteer hours", "error", err, "eventId", eventID, "userId", volunteerID)
		}
	}

	slog.Info("Volunteer event completed", "eventId", eventID, "userId", volunteerID, "hours", event.Hours)
	return result, nil
}
