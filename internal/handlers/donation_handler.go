package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/givebridge/givebridge-backend/internal/services"
)

// DonationHandler handles donation lifecycle HTTP requests
type DonationHandler struct {
	donationService *services.DonationService
}

// NewDonationHandler creates a new DonationHandler
func NewDonationHandler(donationService *services.DonationService) *DonationHandler {
	return &DonationHandler{donationService: donationService}
}

// Create handles POST /donations
func (h *DonationHandler) Create(c *gin.Context) {
	donorID, ok := currentUserID(c)
	if !ok {
		return
	}

	var input services.CreateDonationInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	donation, err := h.donationService.CreateItemDonation(c.Request.Context(), donorID, input)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, donation)
}

// CreateMoney handles POST /donations/money
func (h *DonationHandler) CreateMoney(c *gin.Context) {
	donorID, ok := currentUserID(c)
	if !ok {
		return
	}

	var input struct {
		Amount float64 `json:"amount" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	donation, award, err := h.donationService.CreateMoneyDonation(c.Request.Context(), donorID, input.Amount)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"donation": donation, "award": award})
}

// GetByID handles GET /donations/:id
func (h *DonationHandler) GetByID(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	donation, err := h.donationService.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, donation)
}

// GetMine handles GET /donations, the caller's own donations
func (h *DonationHandler) GetMine(c *gin.Context) {
	donorID, ok := currentUserID(c)
	if !ok {
		return
	}
	page, limit := pagination(c)

	donations, err := h.donationService.GetByDonor(c.Request.Context(), donorID, page, limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, donations)
}

// GetAssigned handles GET /donations/assigned, donations offered to the
// calling NGO
func (h *DonationHandler) GetAssigned(c *gin.Context) {
	ngoID, ok := currentUserID(c)
	if !ok {
		return
	}
	page, limit := pagination(c)

	donations, err := h.donationService.GetByNGO(c.Request.Context(), ngoID, page, limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, donations)
}

// GetActivity handles GET /donations/:id/activity
func (h *DonationHandler) GetActivity(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	donation, err := h.donationService.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, donation.ActivityLog)
}

// Accept handles POST /donations/:id/accept
func (h *DonationHandler) Accept(c *gin.Context) {
	ngoID, ok := currentUserID(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var input struct {
		Notes string `json:"notes"`
	}
	_ = c.ShouldBindJSON(&input)

	donation, err := h.donationService.AcceptByNGO(c.Request.Context(), id, ngoID, input.Notes)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, donation)
}

// Reject handles POST /donations/:id/reject
func (h *DonationHandler) Reject(c *gin.Context) {
	ngoID, ok := currentUserID(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var input struct {
		Reason string `json:"reason"`
	}
	_ = c.ShouldBindJSON(&input)

	donation, err := h.donationService.RejectByNGO(c.Request.Context(), id, ngoID, input.Reason)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, donation)
}

// Start handles POST /donations/:id/start
func (h *DonationHandler) Start(c *gin.Context) {
	ngoID, ok := currentUserID(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	donation, err := h.donationService.StartPickup(c.Request.Context(), id, ngoID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, donation)
}

// Complete handles POST /donations/:id/complete
func (h *DonationHandler) Complete(c *gin.Context) {
	ngoID, ok := currentUserID(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	donation, award, err := h.donationService.CompletePickup(c.Request.Context(), id, ngoID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"donation": donation, "award": award})
}

// Cancel handles POST /donations/:id/cancel
func (h *DonationHandler) Cancel(c *gin.Context) {
	donorID, ok := currentUserID(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	donation, err := h.donationService.CancelByDonor(c.Request.Context(), id, donorID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, donation)
}
