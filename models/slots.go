package models

// AvailableSlot is one bookable consultation period offered to a patient.
// Start is minutes from midnight, kept alongside the label so clients can
// sort and render without re-parsing.
type AvailableSlot struct {
	Date  DateKey   `json:"date"`
	Time  TimeLabel `json:"time"`
	Start int       `json:"start"`
}

// DaySlots is one day of the rolling booking window. An empty Slots list is
// a valid day with no openings.
type DaySlots struct {
	Date    DateKey         `json:"date"`
	Weekday string          `json:"weekday"`
	Slots   []AvailableSlot `json:"slots"`
}

// BookSlotRequest is the booking payload accepted at the HTTP edge. The slot
// list a client holds is only a hint; the ledger re-validates at commit time.
type BookSlotRequest struct {
	DoctorID      string    `json:"doctorId" binding:"required"`
	SlotDate      DateKey   `json:"slotDate" binding:"required"`
	SlotTime      TimeLabel `json:"slotTime" binding:"required"`
	PaymentMethod string    `json:"paymentMethod,omitempty"`
}

// SetAvailabilityRequest carries a doctor's new weekly template.
type SetAvailabilityRequest struct {
	Availability []DayRule `json:"availability" binding:"required"`
	SlotMinutes  int       `json:"slotMinutes" binding:"required"`
	BreakMinutes int       `json:"breakMinutes"`
}
