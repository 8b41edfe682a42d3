package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/givebridge/givebridge-backend/internal/services"
)

// NGOHandler handles NGO directory HTTP requests
type NGOHandler struct {
	ngoService            *services.NGOService
	recommendationService *services.RecommendationService
}

// NewNGOHandler creates a new NGOHandler
func NewNGOHandler(ngoService *services.NGOService, recommendationService *services.RecommendationService) *NGOHandler {
	return &NGOHandler{
		ngoService:            ngoService,
		recommendationService: recommendationService,
	}
}

// Register handles POST /ngos
func (h *NGOHandler) Register(c *gin.Context) {
	var input services.RegisterNGOInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ngo, err := h.ngoService.Register(c.Request.Context(), input)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, ngo)
}

// GetByID handles GET /ngos/:id
func (h *NGOHandler) GetByID(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	ngo, err := h.ngoService.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, ngo)
}

// List handles GET /ngos
func (h *NGOHandler) List(c *gin.Context) {
	page, limit := pagination(c)
	activeOnly := c.DefaultQuery("active", "true") == "true"

	ngos, err := h.ngoService.List(c.Request.Context(), activeOnly, page, limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, ngos)
}

// SetActive handles PUT /ngos/:id/active
func (h *NGOHandler) SetActive(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var input struct {
		Active *bool `json:"active" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ngo, err := h.ngoService.SetActive(c.Request.Context(), id, *input.Active)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, ngo)
}

// Nearby handles GET /ngos/nearby?lng=&lat=&category=
func (h *NGOHandler) Nearby(c *gin.Context) {
	lng, errLng := strconv.ParseFloat(c.Query("lng"), 64)
	lat, errLat := strconv.ParseFloat(c.Query("lat"), 64)
	if errLng != nil || errLat != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "lng and lat query parameters are required"})
		return
	}

	recommendations, err := h.recommendationService.NearbyNGOs(c.Request.Context(), lng, lat, c.Query("category"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, recommendations)
}
