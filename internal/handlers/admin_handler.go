package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rishikreddy7/bus-reservation/internal/models"
	"github.com/rishikreddy7/bus-reservation/internal/services"
	"github.com/sirupsen/logrus"
)

// AdminHandler handles catalog maintenance for administrators
type AdminHandler struct {
	catalog *services.CatalogService
	logger  *logrus.Logger
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(catalog *services.CatalogService, logger *logrus.Logger) *AdminHandler {
	return &AdminHandler{
		catalog: catalog,
		logger:  logger,
	}
}

// CreateBus handles POST /api/admin/buses
func (h *AdminHandler) CreateBus(c *gin.Context) {
	var req models.CreateBusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondInvalidBody(c, err)
		return
	}

	bus, err := h.catalog.CreateBus(c.Request.Context(), &req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "bus": bus})
}

// ListBuses handles GET /api/admin/buses
func (h *AdminHandler) ListBuses(c *gin.Context) {
	buses, err := h.catalog.ListBuses(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "buses": buses})
}

// CreateRoute handles POST /api/admin/routes
func (h *AdminHandler) CreateRoute(c *gin.Context) {
	var req models.CreateRouteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondInvalidBody(c, err)
		return
	}

	route, err := h.catalog.CreateRoute(c.Request.Context(), &req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "route": route})
}

// ListRoutes handles GET /api/admin/routes
func (h *AdminHandler) ListRoutes(c *gin.Context) {
	routes, err := h.catalog.ListRoutes(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "routes": routes})
}

// CreateSchedule handles POST /api/admin/schedules
func (h *AdminHandler) CreateSchedule(c *gin.Context) {
	var req models.CreateScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondInvalidBody(c, err)
		return
	}

	schedule, err := h.catalog.CreateSchedule(c.Request.Context(), &req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "schedule": schedule})
}

// ListSchedules handles GET /api/admin/schedules
func (h *AdminHandler) ListSchedules(c *gin.Context) {
	schedules, err := h.catalog.ListSchedules(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "schedules": schedules})
}
