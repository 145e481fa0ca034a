package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/rishikreddy7/bus-reservation/internal/middleware"
	"github.com/rishikreddy7/bus-reservation/pkg/jwt"
)

// Handlers groups every API handler for route registration
type Handlers struct {
	Auth    *AuthHandler
	Search  *SearchHandler
	Booking *BookingHandler
	Admin   *AdminHandler
}

// Register mounts the API under group
func (h *Handlers) Register(api *gin.RouterGroup, jwtService *jwt.Service) {
	requireAuth := middleware.AuthMiddleware(jwtService)

	auth := api.Group("/auth")
	{
		auth.POST("/register", h.Auth.Register)
		auth.POST("/login", h.Auth.Login)
		auth.GET("/me", requireAuth, h.Auth.Me)
	}

	api.POST("/search", h.Search.Search)
	api.GET("/schedules/:scheduleId/availability", h.Search.Availability)

	bookings := api.Group("/bookings")
	{
		bookings.GET("/:ticketId", h.Booking.Get)
		bookings.GET("/:ticketId/pdf", h.Booking.DownloadTicket)

		bookings.POST("", requireAuth, h.Booking.Create)
		bookings.GET("", requireAuth, h.Booking.List)
		bookings.PUT("/:ticketId/cancel", requireAuth, h.Booking.Cancel)
	}

	admin := api.Group("/admin")
	admin.Use(requireAuth, middleware.RequireRole("admin"))
	{
		admin.GET("/buses", h.Admin.ListBuses)
		admin.POST("/buses", h.Admin.CreateBus)
		admin.GET("/routes", h.Admin.ListRoutes)
		admin.POST("/routes", h.Admin.CreateRoute)
		admin.GET("/schedules", h.Admin.ListSchedules)
		admin.POST("/schedules", h.Admin.CreateSchedule)
	}
}
