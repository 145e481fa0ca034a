package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rishikreddy7/bus-reservation/internal/models"
	"github.com/rishikreddy7/bus-reservation/internal/services"
	"github.com/sirupsen/logrus"
)

// SearchHandler handles trip search and seat availability requests
type SearchHandler struct {
	search       *services.SearchService
	availability *services.AvailabilityService
	logger       *logrus.Logger
}

// NewSearchHandler creates a new search handler
func NewSearchHandler(search *services.SearchService, availability *services.AvailabilityService, logger *logrus.Logger) *SearchHandler {
	return &SearchHandler{
		search:       search,
		availability: availability,
		logger:       logger,
	}
}

// Search handles POST /api/search
// @Summary Search for buses
// @Description Lists schedules between two cities on a date with seats left and fare
// @Tags Search
// @Accept json
// @Produce json
// @Param search body models.SearchRequest true "Search parameters"
// @Success 200 {object} models.SearchResponse
// @Failure 400 {object} map[string]interface{} "Invalid request"
// @Router /api/search [post]
func (h *SearchHandler) Search(c *gin.Context) {
	var req models.SearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondInvalidBody(c, err)
		return
	}

	offers, err := h.search.Search(c.Request.Context(), &req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, models.SearchResponse{Success: true, Buses: offers})
}

// Availability handles GET /api/schedules/:scheduleId/availability
func (h *SearchHandler) Availability(c *gin.Context) {
	scheduleID, err := uuid.Parse(c.Param("scheduleId"))
	if err != nil {
		respondError(c, h.logger, models.NewBadRequest("INVALID_SCHEDULE_ID", "scheduleId is not a valid identifier"))
		return
	}

	availability, err := h.availability.ForSchedule(c.Request.Context(), scheduleID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":      true,
		"availability": availability,
	})
}
