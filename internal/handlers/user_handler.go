package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/givebridge/givebridge-backend/internal/levels"
	"github.com/givebridge/givebridge-backend/internal/services"
)

// UserHandler handles user profile and progression HTTP requests
type UserHandler struct {
	userService        *services.UserService
	progressionService *services.ProgressionService
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(userService *services.UserService, progressionService *services.ProgressionService) *UserHandler {
	return &UserHandler{
		userService:        userService,
		progressionService: progressionService,
	}
}

// GetMe handles GET /users/me
func (h *UserHandler) GetMe(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	user, err := h.userService.GetByID(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

// GetByID handles GET /users/:id
func (h *UserHandler) GetByID(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	user, err := h.userService.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

// Leaderboard handles GET /users/leaderboard
func (h *UserHandler) Leaderboard(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	users, err := h.userService.Leaderboard(c.Request.Context(), limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, users)
}

// Levels handles GET /users/levels, the static level table
func (h *UserHandler) Levels(c *gin.Context) {
	c.JSON(http.StatusOK, levels.Table())
}

// GetBadges handles GET /users/me/badges
func (h *UserHandler) GetBadges(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	badges, err := h.progressionService.GetBadges(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, badges)
}

// GetCertificates handles GET /users/me/certificates
func (h *UserHandler) GetCertificates(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	certs, err := h.progressionService.GetCertificates(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, certs)
}

// GetPointHistory handles GET /users/me/points
func (h *UserHandler) GetPointHistory(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	page, limit := pagination(c)

	history, err := h.progressionService.GetPointHistory(c.Request.Context(), userID, page, limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, history)
}
