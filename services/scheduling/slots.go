package scheduling

import (
	"context"
	"errors"
	"time"

	doctorRepo "medibook/database/repository/doctor"
	"medibook/models"
)

// BuildDaySlots computes the bookable slots for each day of the rolling
// window. Pure function of (doctor, now, days): restartable, no hidden state.
// Each day consults the matching weekday rule; a disabled day contributes an
// empty (but present) slot list. For today, iteration starts at now rounded
// up to the next grid boundary after the day's start time, so a returned
// label is never in the past.
func BuildDaySlots(doctor *models.Doctor, now time.Time, days int) []models.DaySlots {
	window := make([]models.DaySlots, 0, days)

	for i := 0; i < days; i++ {
		day := now.AddDate(0, 0, i)
		key := models.NewDateKey(day)
		entry := models.DaySlots{
			Date:    key,
			Weekday: day.Weekday().String(),
			Slots:   []models.AvailableSlot{},
		}

		rule, ok := doctor.RuleFor(day.Weekday())
		if !ok || !rule.Enabled || doctor.SlotMinutes <= 0 {
			window = append(window, entry)
			continue
		}

		// Consecutive slots are spaced by the slot duration plus the
		// doctor's break.
		step := doctor.SlotMinutes + doctor.BreakMinutes

		start := rule.Start
		if i == 0 {
			start = firstSlotAfter(now, rule.Start, step)
		}

		for m := start; m+doctor.SlotMinutes <= rule.End; m += step {
			label := models.MinutesToLabel(m)
			if doctor.SlotBooked(key, label) {
				continue
			}
			entry.Slots = append(entry.Slots, models.AvailableSlot{
				Date:  key,
				Time:  label,
				Start: m,
			})
		}
		window = append(window, entry)
	}
	return window
}

// firstSlotAfter returns the first grid boundary strictly after now, where
// the grid is anchored at dayStart with the given step. Before working hours
// it is simply dayStart.
func firstSlotAfter(now time.Time, dayStart, step int) int {
	nowMin := now.Hour()*60 + now.Minute()
	if now.Second() > 0 || now.Nanosecond() > 0 {
		nowMin++
	}
	if nowMin < dayStart {
		return dayStart
	}
	intervals := (nowMin-dayStart)/step + 1
	return dayStart + intervals*step
}

// GetAvailableSlots returns the doctor's bookable slots over the booking
// window. The result may be served from the short-TTL hint cache; it is
// always re-validated by the ledger at commit time, so staleness only costs
// the patient a SlotAlreadyBooked round trip.
func (s *DefaultSchedulingService) GetAvailableSlots(ctx context.Context, doctorID string) ([]models.DaySlots, error) {
	if cached, ok := s.cachedSlots(ctx, doctorID); ok {
		return cached, nil
	}

	var doctor *models.Doctor
	err := s.withRetry(ctx, "fetch doctor for slots", func() error {
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

	days := bookingWindowDays()
	if !doctor.Available {
		// The global switch hides every slot but the window shape is kept so
		// clients can still render the days.
		empty := BuildDaySlots(&models.Doctor{Availability: nil}, s.now(), days)
		return empty, nil
	}

	slots := BuildDaySlots(doctor, s.now(), days)
	s.cacheSlots(ctx, doctorID, slots)
	return slots, nil
}
