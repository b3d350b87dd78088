package scheduling

import (
	"context"
	"math"
	"time"

	"medibook/models"
)

// BuildRollingWindow produces day buckets ending at ref, ordered oldest
// first. Display labels follow the dashboard's "Mon 24 Aug" shape.
func BuildRollingWindow(days int, ref time.Time) []models.DayMetrics {
	window := make([]models.DayMetrics, 0, days)
	for i := days - 1; i >= 0; i-- {
		day := ref.AddDate(0, 0, -i)
		window = append(window, models.DayMetrics{
			Date:  models.NewDateKey(day),
			Label: day.Format("Mon 2 Jan"),
		})
	}
	return window
}

// Aggregate folds an appointment history into the dashboard snapshot. It
// never mutates its inputs and is deterministic for a given (appointments,
// ref) pair.
//
// Revenue bucketing keeps the historical heuristic: a paid appointment
// counts as online revenue, an unpaid-but-completed one as cash. Today's
// status classification uses precedence cancelled > completed > scheduled so
// each record lands in exactly one bucket.
func Aggregate(doctorID string, appts []models.Appointment, days int, ref time.Time) *models.MetricsSnapshot {
	window := BuildRollingWindow(days, ref)
	index := make(map[models.DateKey]int, len(window))
	for i, day := range window {
		index[day.Date] = i
	}
	patientsPerDay := make([]map[string]struct{}, len(window))
	for i := range patientsPerDay {
		patientsPerDay[i] = map[string]struct{}{}
	}

	todayKey := models.NewDateKey(ref)
	snap := &models.MetricsSnapshot{DoctorID: doctorID}

	for _, a := range appts {
		i, inWindow := index[a.SlotDate]
		if inWindow {
			window[i].Appointments++
			patientsPerDay[i][a.PatientID] = struct{}{}
			if a.Payment {
				window[i].OnlineRevenue += a.Amount
			} else if a.IsCompleted {
				window[i].CashRevenue += a.Amount
			}
		}

		if a.SlotDate == todayKey {
			switch {
			case a.Cancelled:
				snap.Today.Cancelled++
			case a.IsCompleted:
				snap.Today.Completed++
			default:
				snap.Today.Scheduled++
			}
			if a.Payment || a.IsCompleted {
				snap.Today.Revenue += a.Amount
			}
		}
	}

	var totalPatients int
	for i := range window {
		window[i].Patients = len(patientsPerDay[i])
		snap.TotalAppointments += window[i].Appointments
		snap.OnlineRevenue += window[i].OnlineRevenue
		snap.CashRevenue += window[i].CashRevenue
		totalPatients += window[i].Patients
	}
	if days > 0 {
		snap.AvgAppointmentsDay = int(math.Round(float64(snap.TotalAppointments) / float64(days)))
		snap.AvgPatientsDay = int(math.Round(float64(totalPatients) / float64(days)))
	}

	snap.Window = window
	return snap
}

// GetDashboardMetrics recomputes the doctor's dashboard from the full
// appointment history. Read-only; tolerates weaker isolation than bookings
// since dashboards survive brief staleness.
func (s *DefaultSchedulingService) GetDashboardMetrics(ctx context.Context, doctorID string) (*models.MetricsSnapshot, error) {
	appts, err := s.ListDoctorAppointments(ctx, doctorID)
	if err != nil {
		return nil, err
	}
	return Aggregate(doctorID, appts, bookingWindowDays(), s.now()), nil
}
