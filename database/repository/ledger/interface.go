// File: database/repository/ledger/interface.go
package ledgerRepo

import (
	"context"
	"errors"

	"medibook/config"
	"medibook/database"
	"medibook/models"

	"go.mongodb.org/mongo-driver/mongo"
)

var (
	// ErrDoctorNotFound is returned when the ledger holds no doctor with the id.
	ErrDoctorNotFound = errors.New("doctor not found")
	// ErrDoctorUnavailable is returned when the doctor's global switch is off.
	ErrDoctorUnavailable = errors.New("doctor is not accepting bookings")
	// ErrSlotTaken is returned when the slot is already reserved; the caller
	// lost the race or held a stale slot list.
	ErrSlotTaken = errors.New("slot already booked")
	// ErrNoMatch is returned when a conditional appointment update matched
	// nothing, meaning the record changed state under a concurrent request.
	ErrNoMatch = errors.New("appointment state changed concurrently")
)

// LedgerRepository owns every mutation of a doctor's bookedSlots map and the
// appointment writes that must stay consistent with it. Reservation and
// release are conditional updates, so two concurrent bookings of the same
// (doctor, date, time) can never both succeed.
type LedgerRepository interface {
	// BookSlotTransactionally reserves appt's slot on the doctor document and
	// inserts the appointment record as one atomic unit.
	BookSlotTransactionally(ctx context.Context, appt *models.Appointment) error
	// CancelSlotTransactionally flips the appointment to cancelled and
	// releases its slot as one atomic unit.
	CancelSlotTransactionally(ctx context.Context, appt *models.Appointment) error
}

type mongoLedgerRepo struct {
	doctorColl *mongo.Collection
	apptColl   *mongo.Collection
}

// NewMongoLedgerRepo constructs a new MongoDB LedgerRepository.
func NewMongoLedgerRepo() LedgerRepository {
	db := database.MongoClient.Database(config.AppConfig.DatabaseName)
	return &mongoLedgerRepo{
		doctorColl: db.Collection("doctors"),
		apptColl:   db.Collection("appointments"),
	}
}
