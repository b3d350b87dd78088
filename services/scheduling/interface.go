package scheduling

import (
	"context"
	"time"

	appointmentRepo "medibook/database/repository/appointment"
	doctorRepo "medibook/database/repository/doctor"
	ledgerRepo "medibook/database/repository/ledger"
	"medibook/models"

	"github.com/go-redis/redis/v8"
)

// SchedulingService is the appointment scheduling engine: slot generation,
// the booking lifecycle, and the dashboard aggregation.
type SchedulingService interface {
	GetAvailableSlots(ctx context.Context, doctorID string) ([]models.DaySlots, error)
	BookAppointment(ctx context.Context, doctorID, patientID string, date models.DateKey, slot models.TimeLabel, paymentMethod string) (*models.Appointment, error)
	CancelAppointment(ctx context.Context, appointmentID, requesterID, requesterRole string) error
	CompleteAppointment(ctx context.Context, appointmentID, doctorID string) error
	MarkAppointmentPaid(ctx context.Context, appointmentID string) error
	GetDashboardMetrics(ctx context.Context, doctorID string) (*models.MetricsSnapshot, error)
	ListPatientAppointments(ctx context.Context, patientID string) ([]models.Appointment, error)
	ListDoctorAppointments(ctx context.Context, doctorID string) ([]models.Appointment, error)
	SaveAvailability(ctx context.Context, doctorID string, req models.SetAvailabilityRequest) error
	SetDoctorAvailable(ctx context.Context, doctorID string, available bool) error
	CreatePaymentIntent(ctx context.Context, appointmentID, patientID string) (string, error)
}

// PatientDirectory supplies a patient's public display data for
// denormalization; the profile store behind it is an external collaborator.
type PatientDirectory interface {
	GetSnapshot(ctx context.Context, patientID string) (models.PatientSnapshot, error)
}

// ReminderScheduler schedules an appointment reminder for later delivery.
type ReminderScheduler interface {
	ScheduleReminder(ctx context.Context, appt *models.Appointment) error
}

// DefaultSchedulingService is our production implementation.
type DefaultSchedulingService struct {
	DoctorRepo doctorRepo.DoctorRepository
	ApptRepo   appointmentRepo.AppointmentRepository
	Ledger     ledgerRepo.LedgerRepository
	Patients   PatientDirectory
	Cache      *redis.Client     // optional slot-hint cache
	Reminders  ReminderScheduler // optional
	Clock      func() time.Time  // overridable in tests; defaults to time.Now
}

func (s *DefaultSchedulingService) now() time.Time {
	if s.Clock != nil {
		return s.Clock()
	}
	return time.Now()
}
