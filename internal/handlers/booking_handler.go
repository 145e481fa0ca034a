package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rishikreddy7/bus-reservation/internal/models"
	"github.com/rishikreddy7/bus-reservation/internal/services"
	"github.com/sirupsen/logrus"
)

// BookingHandler handles booking and ticket requests
type BookingHandler struct {
	bookings *services.BookingService
	tickets  *services.TicketService
	logger   *logrus.Logger
}

// NewBookingHandler creates a new booking handler
func NewBookingHandler(bookings *services.BookingService, tickets *services.TicketService, logger *logrus.Logger) *BookingHandler {
	return &BookingHandler{
		bookings: bookings,
		tickets:  tickets,
		logger:   logger,
	}
}

// Create handles POST /api/bookings
// @Summary Book seats on a schedule
// @Tags Bookings
// @Accept json
// @Produce json
// @Param booking body models.CreateBookingRequest true "Schedule and passengers"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{} "Validation error or seat already booked"
// @Failure 404 {object} map[string]interface{} "Schedule not found"
// @Router /api/bookings [post]
func (h *BookingHandler) Create(c *gin.Context) {
	var req models.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondInvalidBody(c, err)
		return
	}

	booking, err := h.bookings.Book(c.Request.Context(), currentUserID(c), &req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success":  true,
		"booking":  booking,
		"ticketId": booking.TicketID,
	})
}

// Get handles GET /api/bookings/:ticketId
func (h *BookingHandler) Get(c *gin.Context) {
	detail, err := h.bookings.GetByTicketID(c.Request.Context(), c.Param("ticketId"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"booking": detail,
	})
}

// List handles GET /api/bookings
func (h *BookingHandler) List(c *gin.Context) {
	bookings, err := h.bookings.ListForUser(c.Request.Context(), currentUserID(c))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"bookings": bookings,
	})
}

// Cancel handles PUT /api/bookings/:ticketId/cancel
func (h *BookingHandler) Cancel(c *gin.Context) {
	changed, err := h.bookings.Cancel(c.Request.Context(), c.Param("ticketId"), currentUserID(c))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	message := "Booking cancelled successfully"
	if !changed {
		message = "Booking already cancelled"
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": message,
	})
}

// DownloadTicket handles GET /api/bookings/:ticketId/pdf
func (h *BookingHandler) DownloadTicket(c *gin.Context) {
	detail, err := h.bookings.GetByTicketID(c.Request.Context(), c.Param("ticketId"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	data, filename, err := h.tickets.RenderPDF(detail)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, "application/pdf", data)
}
