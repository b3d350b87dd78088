package handlers

import (
	"net/http"

	"medibook/middleware"
	"medibook/models"
	"medibook/services/scheduling"
	"medibook/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// SchedulingHandler exposes the scheduling engine over HTTP.
type SchedulingHandler struct {
	Service scheduling.SchedulingService
}

// NewSchedulingHandler constructs a SchedulingHandler.
func NewSchedulingHandler(svc scheduling.SchedulingService) *SchedulingHandler {
	return &SchedulingHandler{Service: svc}
}

// respondSchedulingError maps the engine's error taxonomy onto HTTP statuses.
// The code travels in the body so clients can offer the right recovery.
func respondSchedulingError(c *gin.Context, err error) {
	code := scheduling.ErrorCode(err)
	status := http.StatusInternalServerError
	switch code {
	case scheduling.CodeDoctorNotFound, scheduling.CodeAppointmentNotFound:
		status = http.StatusNotFound
	case scheduling.CodeSlotAlreadyBooked, scheduling.CodeDoctorUnavailable,
		scheduling.CodeAlreadyCancelled, scheduling.CodeInvalidStateTransition:
		status = http.StatusConflict
	case scheduling.CodeUnauthorized:
		status = http.StatusForbidden
	case scheduling.CodeInvalidAvailability, scheduling.CodeInvalidInput:
		status = http.StatusBadRequest
	case scheduling.CodeStoreUnavailable:
		status = http.StatusServiceUnavailable
	default:
		utils.GetLogger().Error("unexpected scheduling failure", zap.Error(err))
		c.JSON(status, gin.H{"error": "internal error"})
		return
	}
	c.JSON(status, gin.H{"error": err.Error(), "code": code})
}

// GetAvailableSlotsHandler returns the doctor's bookable slots over the
// rolling window. Public endpoint; the list is a UI hint only.
func (h *SchedulingHandler) GetAvailableSlotsHandler(c *gin.Context) {
	doctorID := c.Param("id")
	slots, err := h.Service.GetAvailableSlots(c.Request.Context(), doctorID)
	if err != nil {
		respondSchedulingError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"doctorId": doctorID, "days": slots})
}

// BookAppointmentHandler reserves a slot for the authenticated patient.
func (h *SchedulingHandler) BookAppointmentHandler(c *gin.Context) {
	patientID := middleware.SubjectID(c)
	if patientID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Patient not authenticated"})
		return
	}

	var req models.BookSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "message": err.Error()})
		return
	}

	appt, err := h.Service.BookAppointment(c.Request.Context(), req.DoctorID, patientID, req.SlotDate, req.SlotTime, req.PaymentMethod)
	if err != nil {
		respondSchedulingError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Appointment booked", "appointment": appt})
}

// CancelAppointmentHandler releases the slot; the owning patient, owning
// doctor, or an admin may call it.
func (h *SchedulingHandler) CancelAppointmentHandler(c *gin.Context) {
	requesterID := middleware.SubjectID(c)
	role := middleware.Role(c)
	if requesterID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	if err := h.Service.CancelAppointment(c.Request.Context(), c.Param("id"), requesterID, role); err != nil {
		respondSchedulingError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Appointment cancelled"})
}

// CompleteAppointmentHandler marks the visit as having occurred.
func (h *SchedulingHandler) CompleteAppointmentHandler(c *gin.Context) {
	doctorID := middleware.SubjectID(c)
	if doctorID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Doctor not authenticated"})
		return
	}

	if err := h.Service.CompleteAppointment(c.Request.Context(), c.Param("id"), doctorID); err != nil {
		respondSchedulingError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Appointment completed"})
}

// MarkPaidHandler is the payment gateway's confirmation callback.
func (h *SchedulingHandler) MarkPaidHandler(c *gin.Context) {
	if err := h.Service.MarkAppointmentPaid(c.Request.Context(), c.Param("id")); err != nil {
		respondSchedulingError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Appointment marked paid"})
}

// CreatePaymentIntentHandler starts an online payment for an appointment.
func (h *SchedulingHandler) CreatePaymentIntentHandler(c *gin.Context) {
	patientID := middleware.SubjectID(c)
	if patientID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Patient not authenticated"})
		return
	}

	clientSecret, err := h.Service.CreatePaymentIntent(c.Request.Context(), c.Param("id"), patientID)
	if err != nil {
		respondSchedulingError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"clientSecret": clientSecret})
}

// DashboardHandler returns the doctor's aggregated metrics snapshot.
func (h *SchedulingHandler) DashboardHandler(c *gin.Context) {
	doctorID := c.Param("id")
	if !dashboardAuthorized(c, doctorID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Dashboard belongs to another doctor"})
		return
	}

	snap, err := h.Service.GetDashboardMetrics(c.Request.Context(), doctorID)
	if err != nil {
		respondSchedulingError(c, err)
		return
	}
	c.JSON(http.StatusOK, snap)
}

func dashboardAuthorized(c *gin.Context, doctorID string) bool {
	role := middleware.Role(c)
	return role == scheduling.RoleAdmin || (role == scheduling.RoleDoctor && middleware.SubjectID(c) == doctorID)
}

// ListPatientAppointmentsHandler lists the authenticated patient's history.
func (h *SchedulingHandler) ListPatientAppointmentsHandler(c *gin.Context) {
	patientID := middleware.SubjectID(c)
	if middleware.Role(c) == scheduling.RoleAdmin {
		patientID = c.Param("id")
	} else if patientID != c.Param("id") {
		c.JSON(http.StatusForbidden, gin.H{"error": "Appointments belong to another patient"})
		return
	}

	appts, err := h.Service.ListPatientAppointments(c.Request.Context(), patientID)
	if err != nil {
		respondSchedulingError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"appointments": appts})
}

// ListDoctorAppointmentsHandler lists a doctor's appointments.
func (h *SchedulingHandler) ListDoctorAppointmentsHandler(c *gin.Context) {
	doctorID := c.Param("id")
	if !dashboardAuthorized(c, doctorID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Appointments belong to another doctor"})
		return
	}

	appts, err := h.Service.ListDoctorAppointments(c.Request.Context(), doctorID)
	if err != nil {
		respondSchedulingError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"appointments": appts})
}

// SaveAvailabilityHandler persists the doctor's weekly template.
func (h *SchedulingHandler) SaveAvailabilityHandler(c *gin.Context) {
	doctorID := c.Param("id")
	role := middleware.Role(c)
	if role != scheduling.RoleAdmin && middleware.SubjectID(c) != doctorID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Availability belongs to another doctor"})
		return
	}

	var req models.SetAvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "message": err.Error()})
		return
	}

	if err := h.Service.SaveAvailability(c.Request.Context(), doctorID, req); err != nil {
		respondSchedulingError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Availability updated"})
}

// SetAvailableHandler flips the doctor's global on/off switch.
func (h *SchedulingHandler) SetAvailableHandler(c *gin.Context) {
	doctorID := c.Param("id")
	role := middleware.Role(c)
	if role != scheduling.RoleAdmin && middleware.SubjectID(c) != doctorID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Availability belongs to another doctor"})
		return
	}

	var body struct {
		Available *bool `json:"available" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil || body.Available == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing or invalid available flag"})
		return
	}

	if err := h.Service.SetDoctorAvailable(c.Request.Context(), doctorID, *body.Available); err != nil {
		respondSchedulingError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Doctor availability flag updated"})
}
