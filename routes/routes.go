package routes

import (
	"time"

	"medibook/handlers"
	"medibook/middleware"
	"medibook/services/scheduling"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterSchedulingRoutes registers the scheduling engine's endpoints.
func RegisterSchedulingRoutes(r *gin.Engine, h *handlers.SchedulingHandler) {
	api := r.Group("/api/scheduling")
	{
		// Public: the slot list is a non-authoritative hint for pickers.
		api.GET("/doctors/:id/slots", h.GetAvailableSlotsHandler)

		patient := api.Group("")
		patient.Use(middleware.JWTAuthMiddleware(scheduling.RolePatient))
		patient.POST("/appointments", h.BookAppointmentHandler)
		patient.POST("/appointments/:id/pay", h.CreatePaymentIntentHandler)

		// Cancellation is open to all three parties; ownership is enforced
		// inside the service.
		cancel := api.Group("")
		cancel.Use(middleware.JWTAuthMiddleware(scheduling.RolePatient, scheduling.RoleDoctor, scheduling.RoleAdmin))
		cancel.POST("/appointments/:id/cancel", h.CancelAppointmentHandler)
		cancel.GET("/appointments/patient/:id", h.ListPatientAppointmentsHandler)

		doctor := api.Group("")
		doctor.Use(middleware.JWTAuthMiddleware(scheduling.RoleDoctor, scheduling.RoleAdmin))
		doctor.POST("/appointments/:id/complete", h.CompleteAppointmentHandler)
		doctor.GET("/doctors/:id/dashboard", h.DashboardHandler)
		doctor.GET("/appointments/doctor/:id", h.ListDoctorAppointmentsHandler)
		doctor.PUT("/doctors/:id/availability", h.SaveAvailabilityHandler)
		doctor.PATCH("/doctors/:id/available", h.SetAvailableHandler)

		// Payment gateway confirmation callback.
		gateway := api.Group("")
		gateway.Use(middleware.JWTAuthMiddleware(scheduling.RoleAdmin))
		gateway.POST("/appointments/:id/paid", h.MarkPaidHandler)
	}
}

// CORSMiddleware configures cross-origin access for browser clients.
func CORSMiddleware() gin.HandlerFunc {
	return cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	})
}
