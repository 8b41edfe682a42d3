package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/exp/slog"

	"github.com/givebridge/givebridge-backend/internal/config"
	"github.com/givebridge/givebridge-backend/internal/models"
	"github.com/givebridge/givebridge-backend/internal/repositories"
	"github.com/givebridge/givebridge-backend/internal/utils"
)

// RegisterInput is the payload for account registration.
type RegisterInput struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Role     string `json:"role"`
}

// UserService handles registration, authentication and user queries
type UserService struct {
	userRepo repositories.UserRepository
	config   *config.Config
}

// NewUserService creates a new UserService
func NewUserService(userRepo repositories.UserRepository, config *config.Config) *UserService {
	return &UserService{
		userRepo: userRepo,
		config:   config,
	}
}

// Register creates a new account with a hashed password. Email addresses are
// unique; role defaults to donor.
func (s *UserService) Register(ctx context.Context, input RegisterInput) (*models.User, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if email == "" {
		return nil, fmt.Errorf("%w: email is required", models.ErrValidationFailed)
	}

	existing, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil && !errors.Is(err, models.ErrNotFound) {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: email already registered", models.ErrValidationFailed)
	}

	role := input.Role
	switch role {
	case models.RoleDonor, models.RoleNGO, models.RoleAdmin:
	case "":
		role = models.RoleDonor
	default:
		return nil, fmt.Errorf("%w: unknown role %q", models.ErrValidationFailed, role)
	}

	hash, err := utils.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Name:     input.Name,
		Email:    email,
		Password: hash,
		Role:     role,
		Points:   0,
		Level:    1,
		Badges:   []primitive.ObjectID{},
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	slog.Info("User registered", "userId", user.ID, "role", user.Role)
	return user, nil
}

// Login verifies credentials and issues a signed token
func (s *UserService) Login(ctx context.Context, email, password string) (string, *models.User, error) {
	user, err := s.userRepo.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return "", nil, models.ErrUnauthorized
		}
		return "", nil, err
	}
	if err := utils.CheckPassword(user.Password, password); err != nil {
		return "", nil, models.ErrUnauthorized
	}

	token, err := utils.GenerateJWT(user.ID.Hex(), user.Role, s.config)
	if err != nil {
		return "", nil, fmt.Errorf("failed to sign token: %w", err)
	}
	return token, user, nil
}

// GetByID retrieves a user
func (s *UserService) GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	return s.userRepo.FindByID(ctx, id)
}

// Leaderboard returns the top users by cumulative points
func (s *UserService) Leaderboard(ctx context.Context, limit int) ([]*models.User, error) {
	if limit < 1 || limit > 100 {
		limit = 10
	}
	return s.userRepo.FindTopByPoints(ctx, limit)
}
