package models

import "time"

// Payment method hints a patient may attach at booking time.
const (
	PaymentMethodUnset  = ""
	PaymentMethodCash   = "cash"
	PaymentMethodOnline = "online"
)

// Appointment is one successful reservation of a slot. SlotDate/SlotTime are
// the slot identity and are immutable after creation; Cancelled and
// IsCompleted are one-way flags (scheduled is the sole initial state, both
// terminal states are sinks).
type Appointment struct {
	ID            string          `bson:"id" json:"id"`
	DoctorID      string          `bson:"doctorId" json:"doctorId"`
	PatientID     string          `bson:"patientId" json:"patientId"`
	Doctor        DoctorSnapshot  `bson:"doctor" json:"doctor"`
	Patient       PatientSnapshot `bson:"patient" json:"patient"`
	SlotDate      DateKey         `bson:"slotDate" json:"slotDate"`
	SlotTime      TimeLabel       `bson:"slotTime" json:"slotTime"`
	Amount        float64         `bson:"amount" json:"amount"`
	CreatedAt     time.Time       `bson:"createdAt" json:"createdAt"`
	Cancelled     bool            `bson:"cancelled" json:"cancelled"`
	IsCompleted   bool            `bson:"isCompleted" json:"isCompleted"`
	Payment       bool            `bson:"payment" json:"payment"`
	PaymentMethod string          `bson:"paymentMethod,omitempty" json:"paymentMethod,omitempty"`
}

// Scheduled reports whether the appointment is still in its initial state.
func (a *Appointment) Scheduled() bool {
	return !a.Cancelled && !a.IsCompleted
}
