package scheduling

import (
	"context"
	"errors"

	appointmentRepo "medibook/database/repository/appointment"
	ledgerRepo "medibook/database/repository/ledger"
	"medibook/models"
	"medibook/utils"

	"go.uber.org/zap"
)

// Requester roles recognized by the lifecycle operations.
const (
	RolePatient = "patient"
	RoleDoctor  = "doctor"
	RoleAdmin   = "admin"
)

func (s *DefaultSchedulingService) getAppointment(ctx context.Context, id string) (*models.Appointment, error) {
	var appt *models.Appointment
	err := s.withRetry(ctx, "fetch appointment", func() error {
		var ferr error
		appt, ferr = s.ApptRepo.GetByID(ctx, id)
		return ferr
	})
	if errors.Is(err, appointmentRepo.ErrNotFound) {
		return nil, NewSchedulingError(CodeAppointmentNotFound, "appointment not found")
	}
	if err != nil {
		return nil, err
	}
	return appt, nil
}

// CancelAppointment flips the appointment to cancelled and releases its slot
// so the next patient can take it. The owning patient, the owning doctor, or
// an admin may cancel; a completed visit can no longer be cancelled.
func (s *DefaultSchedulingService) CancelAppointment(ctx context.Context, appointmentID, requesterID, requesterRole string) error {
	appt, err := s.getAppointment(ctx, appointmentID)
	if err != nil {
		return err
	}

	if !cancelAuthorized(appt, requesterID, requesterRole) {
		return NewSchedulingError(CodeUnauthorized, "requester may not cancel this appointment")
	}
	if appt.Cancelled {
		return NewSchedulingError(CodeAlreadyCancelled, "appointment is already cancelled")
	}
	if appt.IsCompleted {
		return NewSchedulingError(CodeInvalidStateTransition, "completed appointment cannot be cancelled")
	}

	err = s.withRetry(ctx, "cancel appointment", func() error {
		return s.Ledger.CancelSlotTransactionally(ctx, appt)
	})
	if errors.Is(err, ledgerRepo.ErrNoMatch) {
		// Lost a race with another transition; re-read to report the truth.
		return s.classifyCancelConflict(ctx, appointmentID)
	}
	if err != nil {
		return err
	}

	s.invalidateSlotCache(ctx, appt.DoctorID)
	utils.GetLogger().Info("appointment cancelled",
		zap.String("appointmentId", appointmentID),
		zap.String("requesterId", requesterID),
		zap.String("requesterRole", requesterRole))
	return nil
}

func cancelAuthorized(appt *models.Appointment, requesterID, role string) bool {
	switch role {
	case RoleAdmin:
		return true
	case RolePatient:
		return appt.PatientID == requesterID
	case RoleDoctor:
		return appt.DoctorID == requesterID
	}
	return false
}

func (s *DefaultSchedulingService) classifyCancelConflict(ctx context.Context, appointmentID string) error {
	appt, err := s.getAppointment(ctx, appointmentID)
	if err != nil {
		return err
	}
	if appt.Cancelled {
		return NewSchedulingError(CodeAlreadyCancelled, "appointment is already cancelled")
	}
	return NewSchedulingError(CodeInvalidStateTransition, "completed appointment cannot be cancelled")
}

// CompleteAppointment marks the visit as having occurred. The slot stays
// permanently consumed; completing an already-completed appointment is a
// no-op.
func (s *DefaultSchedulingService) CompleteAppointment(ctx context.Context, appointmentID, doctorID string) error {
	appt, err := s.getAppointment(ctx, appointmentID)
	if err != nil {
		return err
	}

	if appt.DoctorID != doctorID {
		return NewSchedulingError(CodeUnauthorized, "appointment belongs to another doctor")
	}
	if appt.Cancelled {
		return NewSchedulingError(CodeAlreadyCancelled, "cancelled appointment cannot be completed")
	}
	if appt.IsCompleted {
		return nil
	}

	err = s.withRetry(ctx, "complete appointment", func() error {
		return s.ApptRepo.MarkCompleted(ctx, appointmentID, doctorID)
	})
	if errors.Is(err, appointmentRepo.ErrNoMatch) {
		// Either a concurrent completion (fine) or a concurrent cancel.
		fresh, ferr := s.getAppointment(ctx, appointmentID)
		if ferr != nil {
			return ferr
		}
		if fresh.IsCompleted {
			return nil
		}
		return NewSchedulingError(CodeAlreadyCancelled, "cancelled appointment cannot be completed")
	}
	if err != nil {
		return err
	}

	utils.GetLogger().Info("appointment completed",
		zap.String("appointmentId", appointmentID),
		zap.String("doctorId", doctorID))
	return nil
}

// MarkAppointmentPaid is the mutation point the payment gateway collaborator
// calls back into once an online payment is confirmed.
func (s *DefaultSchedulingService) MarkAppointmentPaid(ctx context.Context, appointmentID string) error {
	appt, err := s.getAppointment(ctx, appointmentID)
	if err != nil {
		return err
	}
	if appt.Cancelled {
		return NewSchedulingError(CodeInvalidStateTransition, "cancelled appointment cannot be paid")
	}
	if appt.Payment {
		return nil
	}

	err = s.withRetry(ctx, "mark appointment paid", func() error {
		return s.ApptRepo.MarkPaid(ctx, appointmentID)
	})
	if errors.Is(err, appointmentRepo.ErrNoMatch) {
		return NewSchedulingError(CodeInvalidStateTransition, "cancelled appointment cannot be paid")
	}
	return err
}

func (s *DefaultSchedulingService) ListPatientAppointments(ctx context.Context, patientID string) ([]models.Appointment, error) {
	var appts []models.Appointment
	err := s.withRetry(ctx, "list patient appointments", func() error {
		var ferr error
		appts, ferr = s.ApptRepo.ListByPatient(ctx, patientID)
		return ferr
	})
	return appts, err
}

func (s *DefaultSchedulingService) ListDoctorAppointments(ctx context.Context, doctorID string) ([]models.Appointment, error) {
	var appts []models.Appointment
	err := s.withRetry(ctx, "list doctor appointments", func() error {
		var ferr error
		appts, ferr = s.ApptRepo.ListByDoctor(ctx, doctorID)
		return ferr
	})
	return appts, err
}
