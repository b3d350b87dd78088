package scheduling

import (
	"context"
	"errors"

	doctorRepo "medibook/database/repository/doctor"
	ledgerRepo "medibook/database/repository/ledger"
	"medibook/models"
	"medibook/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// BookAppointment reserves a slot and creates the appointment record as one
// atomic unit. The slot list a client used to pick is only a hint: the
// ledger re-checks "slot free?" at commit time, so exactly one of N
// concurrent requests for the same (doctor, date, time) can succeed.
func (s *DefaultSchedulingService) BookAppointment(ctx context.Context, doctorID, patientID string, date models.DateKey, slot models.TimeLabel, paymentMethod string) (*models.Appointment, error) {
	if !date.Valid() {
		return nil, NewSchedulingError(CodeInvalidInput, "malformed slot date "+string(date))
	}
	if _, err := slot.Minutes(); err != nil {
		return nil, NewSchedulingError(CodeInvalidInput, "malformed slot time "+string(slot))
	}
	switch paymentMethod {
	case models.PaymentMethodUnset, models.PaymentMethodCash, models.PaymentMethodOnline:
	default:
		return nil, NewSchedulingError(CodeInvalidInput, "unknown payment method "+paymentMethod)
	}

	var doctor *models.Doctor
	err := s.withRetry(ctx, "fetch doctor for booking", func() error {
		var ferr error
		doctor, ferr = s.DoctorRepo.GetByID(ctx, doctorID)
		return ferr
	})
	if errors.Is(err, doctorRepo.ErrNotFound) {
		return nil, NewSchedulingError(CodeDoctorNotFound, "doctor not found")
	}
	if err != nil {
		return nil, err
	}
	if !doctor.Available {
		return nil, NewSchedulingError(CodeDoctorUnavailable, "doctor is not accepting bookings")
	}

	appt := &models.Appointment{
		ID:            uuid.New().String(),
		DoctorID:      doctor.ID,
		PatientID:     patientID,
		Doctor:        doctor.Snapshot(),
		Patient:       s.patientSnapshot(ctx, patientID),
		SlotDate:      date,
		SlotTime:      slot,
		Amount:        doctor.Fee,
		CreatedAt:     s.now(),
		PaymentMethod: paymentMethod,
	}

	err = s.withRetry(ctx, "book slot", func() error {
		return s.Ledger.BookSlotTransactionally(ctx, appt)
	})
	switch {
	case errors.Is(err, ledgerRepo.ErrDoctorNotFound):
		return nil, NewSchedulingError(CodeDoctorNotFound, "doctor not found")
	case errors.Is(err, ledgerRepo.ErrDoctorUnavailable):
		return nil, NewSchedulingError(CodeDoctorUnavailable, "doctor is not accepting bookings")
	case errors.Is(err, ledgerRepo.ErrSlotTaken):
		return nil, NewSchedulingError(CodeSlotAlreadyBooked, "slot is no longer available")
	case err != nil:
		return nil, err
	}

	s.invalidateSlotCache(ctx, doctorID)
	s.scheduleReminder(ctx, appt)

	utils.GetLogger().Info("appointment booked",
		zap.String("appointmentId", appt.ID),
		zap.String("doctorId", doctorID),
		zap.String("patientId", patientID),
		zap.String("slotDate", string(date)),
		zap.String("slotTime", string(slot)))
	return appt, nil
}

// patientSnapshot resolves the patient's display data; the supplied id is
// trusted, so a missing profile degrades to an id-only snapshot.
func (s *DefaultSchedulingService) patientSnapshot(ctx context.Context, patientID string) models.PatientSnapshot {
	if s.Patients == nil {
		return models.PatientSnapshot{ID: patientID}
	}
	snap, err := s.Patients.GetSnapshot(ctx, patientID)
	if err != nil {
		utils.GetLogger().Warn("patient profile lookup failed, snapshotting id only",
			zap.String("patientId", patientID), zap.Error(err))
		return models.PatientSnapshot{ID: patientID}
	}
	return snap
}

// scheduleReminder is best effort; a queue outage must not fail the booking.
func (s *DefaultSchedulingService) scheduleReminder(ctx context.Context, appt *models.Appointment) {
	if s.Reminders == nil {
		return
	}
	if err := s.Reminders.ScheduleReminder(ctx, appt); err != nil {
		utils.GetLogger().Warn("failed to schedule appointment reminder",
			zap.String("appointmentId", appt.ID), zap.Error(err))
	}
}
