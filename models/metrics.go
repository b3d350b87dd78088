package models

// DayMetrics is one bucket of the rolling dashboard window.
type DayMetrics struct {
	Date          DateKey `json:"date"`
	Label         string  `json:"label"` // display label, e.g. "Mon 24 Aug"
	Appointments  int     `json:"appointments"`
	Patients      int     `json:"patients"` // unique patients that day
	OnlineRevenue float64 `json:"onlineRevenue"`
	CashRevenue   float64 `json:"cashRevenue"`
}

// TodaySnapshot partitions today's appointments by status. Precedence when
// classifying is cancelled > completed > scheduled, so no record is counted
// twice.
type TodaySnapshot struct {
	Scheduled int     `json:"scheduled"`
	Completed int     `json:"completed"`
	Cancelled int     `json:"cancelled"`
	Revenue   float64 `json:"revenue"`
}

// MetricsSnapshot is a read-only, point-in-time aggregation of a doctor's
// appointment history over the rolling window. Safe to recompute on every
// request.
type MetricsSnapshot struct {
	DoctorID           string        `json:"doctorId"`
	Window             []DayMetrics  `json:"window"`
	Today              TodaySnapshot `json:"today"`
	TotalAppointments  int           `json:"totalAppointments"`
	OnlineRevenue      float64       `json:"onlineRevenue"`
	CashRevenue        float64       `json:"cashRevenue"`
	AvgAppointmentsDay int           `json:"avgAppointmentsPerDay"`
	AvgPatientsDay     int           `json:"avgPatientsPerDay"`
}
