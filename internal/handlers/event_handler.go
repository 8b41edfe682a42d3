package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/givebridge/givebridge-backend/internal/services"
)

// EventHandler handles volunteer event HTTP requests
type EventHandler struct {
	eventService *services.EventService
}

// NewEventHandler creates a new EventHandler
func NewEventHandler(eventService *services.EventService) *EventHandler {
	return &EventHandler{eventService: eventService}
}

// Create handles POST /events
func (h *EventHandler) Create(c *gin.Context) {
	organizerID, ok := currentUserID(c)
	if !ok {
		return
	}

	var input services.CreateEventInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	event, err := h.eventService.Create(c.Request.Context(), organizerID, input)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, event)
}

// List handles GET /events
func (h *EventHandler) List(c *gin.Context) {
	page, limit := pagination(c)

	events, err := h.eventService.List(c.Request.Context(), page, limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, events)
}

// GetByID handles GET /events/:id
func (h *EventHandler) GetByID(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	event, err := h.eventService.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, event)
}

// Complete handles POST /events/:id/complete, crediting the caller
func (h *EventHandler) Complete(c *gin.Context) {
	volunteerID, ok := currentUserID(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	result, err := h.eventService.Complete(c.Request.Context(), id, volunteerID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}
