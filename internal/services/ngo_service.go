package services

import (
	"context"
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/exp/slog"

	"github.com/givebridge/givebridge-backend/internal/geo"
	"github.com/givebridge/givebridge-backend/internal/models"
	"github.com/givebridge/givebridge-backend/internal/repositories"
)

// RegisterNGOInput is the payload for adding an NGO to the directory.
type RegisterNGOInput struct {
	Name        string   `json:"name" binding:"required"`
	Email       string   `json:"email" binding:"required,email"`
	Phone       string   `json:"phone"`
	Description string   `json:"description"`
	Longitude   float64  `json:"longitude"`
	Latitude    float64  `json:"latitude"`
	Address     string   `json:"address"`
	City        string   `json:"city"`
	Categories  []string `json:"categories"`
}

// NGOService manages the NGO directory
type NGOService struct {
	ngoRepo repositories.NGORepository
}

// NewNGOService creates a new NGOService
func NewNGOService(ngoRepo repositories.NGORepository) *NGOService {
	return &NGOService{ngoRepo: ngoRepo}
}

// Register adds an NGO to the directory. New NGOs are active immediately and
// become candidates for nearby donations.
func (s *NGOService) Register(ctx context.Context, input RegisterNGOInput) (*models.NGO, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, fmt.Errorf("%w: name is required", models.ErrValidationFailed)
	}
	coord := geo.Coordinate{Lng: input.Longitude, Lat: input.Latitude}
	if !coord.Valid() {
		return nil, models.ErrInvalidCoordinate
	}

	ngo := &models.NGO{
		Name:        input.Name,
		Email:       strings.ToLower(strings.TrimSpace(input.Email)),
		Phone:       input.Phone,
		Description: input.Description,
		Location:    models.NewGeoLocation(input.Longitude, input.Latitude),
		Address:     input.Address,
		City:        input.City,
		Categories:  input.Categories,
		Active:      true,
	}
	if err := s.ngoRepo.Create(ctx, ngo); err != nil {
		return nil, fmt.Errorf("failed to create NGO: %w", err)
	}

	slog.Info("NGO registered", "ngoId", ngo.ID, "name", ngo.Name)
	return ngo, nil
}

// GetByID retrieves an NGO
func (s *NGOService) GetByID(ctx context.Context, id primitive.ObjectID) (*models.NGO, error) {
	return s.ngoRepo.FindByID(ctx, id)
}

// List returns a page of the directory, optionally active NGOs only
func (s *NGOService) List(ctx context.Context, activeOnly bool, page, limit int) ([]*models.NGO, error) {
	return s.ngoRepo.FindAll(ctx, activeOnly, page, limit)
}

// SetActive flips an NGO's availability for new assignments
func (s *NGOService) SetActive(ctx context.Context, id primitive.ObjectID, active bool) (*models.NGO, error) {
	ngo, err := s.ngoRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	ngo.Active = active
	if err := s.ngoRepo.Update(ctx, ngo); err != nil {
		return nil, fmt.Errorf("failed to update NGO: %w", err)
	}
	return ngo, nil
}
