// File: database/repository/ledger/transaction.go
package ledgerRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"medibook/models"
)

func slotField(key models.DateKey) string {
	return "bookedSlots." + string(key)
}

// reserveSlot performs the atomic "slot free?" check and "mark booked" write
// in a single conditional update. $ne also matches doctors with no entry yet
// for the date, and $addToSet creates the array on first reservation.
func (r *mongoLedgerRepo) reserveSlot(ctx context.Context, doctorID string, key models.DateKey, label models.TimeLabel) error {
	field := slotField(key)
	filter := bson.M{
		"id":        doctorID,
		"available": true,
		field:       bson.M{"$ne": string(label)},
	}
	update := bson.M{"$addToSet": bson.M{field: string(label)}}

	res, err := r.doctorColl.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to reserve slot: %w", err)
	}
	if res.MatchedCount == 0 {
		return r.classifyReserveFailure(ctx, doctorID)
	}
	return nil
}

// classifyReserveFailure disambiguates a zero-match reservation into the
// ledger's error taxonomy with a follow-up read.
func (r *mongoLedgerRepo) classifyReserveFailure(ctx context.Context, doctorID string) error {
	var doctor models.Doctor
	err := r.doctorColl.FindOne(ctx, bson.M{"id": doctorID}).Decode(&doctor)
	if err == mongo.ErrNoDocuments {
		return ErrDoctorNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to classify reservation failure: %w", err)
	}
	if !doctor.Available {
		return ErrDoctorUnavailable
	}
	return ErrSlotTaken
}

func (r *mongoLedgerRepo) releaseSlot(ctx context.Context, doctorID string, key models.DateKey, label models.TimeLabel) error {
	field := slotField(key)
	update := bson.M{"$pull": bson.M{field: string(label)}}
	if _, err := r.doctorColl.UpdateOne(ctx, bson.M{"id": doctorID}, update); err != nil {
		return fmt.Errorf("failed to release slot: %w", err)
	}
	return nil
}

func (r *mongoLedgerRepo) BookSlotTransactionally(ctx context.Context, appt *models.Appointment) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client := r.doctorColl.Database().Client()
	sess, err := client.StartSession()
	if err != nil {
		return fmt.Errorf("could not start mongo session: %w", err)
	}
	defer sess.EndSession(ctx)

	txnFn := func(sc mongo.SessionContext) error {
		if err := r.reserveSlot(sc, appt.DoctorID, appt.SlotDate, appt.SlotTime); err != nil {
			return err
		}
		if _, err := r.apptColl.InsertOne(sc, appt); err != nil {
			return fmt.Errorf("insert appointment failed: %w", err)
		}
		return nil
	}

	return runInTransaction(ctx, sess, txnFn)
}

func (r *mongoLedgerRepo) CancelSlotTransactionally(ctx context.Context, appt *models.Appointment) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client := r.doctorColl.Database().Client()
	sess, err := client.StartSession()
	if err != nil {
		return fmt.Errorf("could not start mongo session: %w", err)
	}
	defer sess.EndSession(ctx)

	txnFn := func(sc mongo.SessionContext) error {
		// Only a still-scheduled appointment may transition to cancelled.
		filter := bson.M{
			"id":          appt.ID,
			"cancelled":   false,
			"isCompleted": false,
		}
		res, err := r.apptColl.UpdateOne(sc, filter, bson.M{"$set": bson.M{"cancelled": true}})
		if err != nil {
			return fmt.Errorf("cancel appointment failed: %w", err)
		}
		if res.MatchedCount == 0 {
			return ErrNoMatch
		}
		return r.releaseSlot(sc, appt.DoctorID, appt.SlotDate, appt.SlotTime)
	}

	return runInTransaction(ctx, sess, txnFn)
}

func runInTransaction(ctx context.Context, sess mongo.Session, txnFn func(mongo.SessionContext) error) error {
	var opErr error
	if err := mongo.WithSession(ctx, sess, func(sc mongo.SessionContext) error {
		if err := sc.StartTransaction(); err != nil {
			return err
		}
		if err := txnFn(sc); err != nil {
			_ = sc.AbortTransaction(sc)
			opErr = err
			return err
		}
		return sc.CommitTransaction(sc)
	}); err != nil {
		if opErr != nil {
			return opErr
		}
		return fmt.Errorf("ledger transaction failed: %w", err)
	}
	return nil
}
