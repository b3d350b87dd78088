package scheduling

import (
	"context"
	"errors"
	"fmt"

	doctorRepo "medibook/database/repository/doctor"
	"medibook/models"
)

const minutesPerDay = 24 * 60

// ValidateTemplate checks a weekly availability template: exactly one entry
// per weekday, and sane working hours on every enabled day. Pure validation,
// no side effects.
func ValidateTemplate(rules []models.DayRule, slotMinutes, breakMinutes int) error {
	if slotMinutes <= 0 {
		return NewSchedulingError(CodeInvalidAvailability, "slot duration must be positive")
	}
	if breakMinutes < 0 {
		return NewSchedulingError(CodeInvalidAvailability, "break minutes cannot be negative")
	}
	if len(rules) != 7 {
		return NewSchedulingError(CodeInvalidAvailability,
			fmt.Sprintf("availability template must have 7 day rules, got %d", len(rules)))
	}

	var seen [7]bool
	for _, r := range rules {
		if r.Weekday < 0 || r.Weekday > 6 {
			return NewSchedulingError(CodeInvalidAvailability,
				fmt.Sprintf("weekday %d out of range", r.Weekday))
		}
		if seen[r.Weekday] {
			return NewSchedulingError(CodeInvalidAvailability,
				fmt.Sprintf("duplicate rule for weekday %d", r.Weekday))
		}
		seen[r.Weekday] = true

		if !r.Enabled {
			continue
		}
		if r.Start < 0 || r.End > minutesPerDay {
			return NewSchedulingError(CodeInvalidAvailability,
				fmt.Sprintf("weekday %d working hours out of range", r.Weekday))
		}
		if r.Start >= r.End {
			return NewSchedulingError(CodeInvalidAvailability,
				fmt.Sprintf("weekday %d start must be before end", r.Weekday))
		}
	}
	return nil
}

// SaveAvailability validates and persists a doctor's weekly template.
func (s *DefaultSchedulingService) SaveAvailability(ctx context.Context, doctorID string, req models.SetAvailabilityRequest) error {
	if err := ValidateTemplate(req.Availability, req.SlotMinutes, req.BreakMinutes); err != nil {
		return err
	}

	err := s.withRetry(ctx, "save availability", func() error {
		return s.DoctorRepo.SetAvailability(ctx, doctorID, req.Availability, req.SlotMinutes, req.BreakMinutes)
	})
	if errors.Is(err, doctorRepo.ErrNotFound) {
		return NewSchedulingError(CodeDoctorNotFound, "doctor not found")
	}
	if err != nil {
		return err
	}

	s.invalidateSlotCache(ctx, doctorID)
	return nil
}

// SetDoctorAvailable flips the doctor's global on/off switch. It is
// independent of per-slot booking state.
func (s *DefaultSchedulingService) SetDoctorAvailable(ctx context.Context, doctorID string, available bool) error {
	err := s.withRetry(ctx, "set available flag", func() error {
		return s.DoctorRepo.SetAvailable(ctx, doctorID, available)
	})
	if errors.Is(err, doctorRepo.ErrNotFound) {
		return NewSchedulingError(CodeDoctorNotFound, "doctor not found")
	}
	if err != nil {
		return err
	}

	s.invalidateSlotCache(ctx, doctorID)
	return nil
}
