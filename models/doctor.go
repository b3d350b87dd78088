package models

import (
	"time"
)

// DayRule describes one weekday of a doctor's recurring availability
// template. Start and End are minutes from midnight (e.g., 540 for 9:00 AM).
type DayRule struct {
	Weekday int  `bson:"weekday" json:"weekday"` // 0 = Sunday, matching time.Weekday
	Enabled bool `bson:"enabled" json:"enabled"`
	Start   int  `bson:"start" json:"start"`
	End     int  `bson:"end" json:"end"`
}

// Doctor is the scheduling aggregate: profile fields snapshotted into
// appointments at booking time, the weekly availability template, and the
// booked-slot ledger. BookedSlots maps a DateKey to the time labels already
// reserved on that day; it is mutated only through the ledger repository's
// conditional updates, never by direct assignment.
type Doctor struct {
	ID           string              `bson:"id" json:"id"`
	Name         string              `bson:"name" json:"name"`
	Image        string              `bson:"image,omitempty" json:"image,omitempty"`
	Speciality   string              `bson:"speciality,omitempty" json:"speciality,omitempty"`
	Fee          float64             `bson:"fee" json:"fee"`
	Available    bool                `bson:"available" json:"available"`
	Availability []DayRule           `bson:"availability" json:"availability"`
	SlotMinutes  int                 `bson:"slotMinutes" json:"slotMinutes"`
	BreakMinutes int                 `bson:"breakMinutes" json:"breakMinutes"`
	BookedSlots  map[string][]string `bson:"bookedSlots,omitempty" json:"bookedSlots,omitempty"`
	CreatedAt    time.Time           `bson:"createdAt" json:"createdAt"`
}

// RuleFor returns the template entry for the given weekday.
func (d *Doctor) RuleFor(w time.Weekday) (DayRule, bool) {
	for _, r := range d.Availability {
		if r.Weekday == int(w) {
			return r, true
		}
	}
	return DayRule{}, false
}

// SlotBooked reports whether the ledger already holds the given slot.
func (d *Doctor) SlotBooked(key DateKey, label TimeLabel) bool {
	for _, booked := range d.BookedSlots[string(key)] {
		if booked == string(label) {
			return true
		}
	}
	return false
}

// Snapshot captures the doctor's public display data for denormalization
// into an appointment record.
func (d *Doctor) Snapshot() DoctorSnapshot {
	return DoctorSnapshot{
		ID:         d.ID,
		Name:       d.Name,
		Image:      d.Image,
		Speciality: d.Speciality,
		Fee:        d.Fee,
	}
}

// DoctorSnapshot is the denormalized doctor view stored on an appointment,
// so historic records stay stable if the profile changes later.
type DoctorSnapshot struct {
	ID         string  `bson:"id" json:"id"`
	Name       string  `bson:"name" json:"name"`
	Image      string  `bson:"image,omitempty" json:"image,omitempty"`
	Speciality string  `bson:"speciality,omitempty" json:"speciality,omitempty"`
	Fee        float64 `bson:"fee" json:"fee"`
}

// PatientSnapshot is the denormalized patient view stored on an appointment.
type PatientSnapshot struct {
	ID    string `bson:"id" json:"id"`
	Name  string `bson:"name" json:"name"`
	Image string `bson:"image,omitempty" json:"image,omitempty"`
}
