// File: database/repository/appointment/crud.go
package appointmentRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"medibook/models"
)

func (r *mongoAppointmentRepo) GetByID(ctx context.Context, id string) (*models.Appointment, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var appt models.Appointment
	err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&appt)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch appointment %s: %w", id, err)
	}
	return &appt, nil
}

func (r *mongoAppointmentRepo) ListByPatient(ctx context.Context, patientID string) ([]models.Appointment, error) {
	return r.list(ctx, bson.M{"patientId": patientID})
}

func (r *mongoAppointmentRepo) ListByDoctor(ctx context.Context, doctorID string) ([]models.Appointment, error) {
	return r.list(ctx, bson.M{"doctorId": doctorID})
}

func (r *mongoAppointmentRepo) list(ctx context.Context, filter bson.M) ([]models.Appointment, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query appointments: %w", err)
	}
	defer cursor.Close(ctx)

	var appts []models.Appointment
	if err := cursor.All(ctx, &appts); err != nil {
		return nil, fmt.Errorf("failed to decode appointments: %w", err)
	}
	return appts, nil
}

// MarkCompleted flips isCompleted for a still-scheduled appointment owned by
// doctorID. The filter carries the state preconditions so a concurrent cancel
// cannot race the completion.
func (r *mongoAppointmentRepo) MarkCompleted(ctx context.Context, id, doctorID string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"id":          id,
		"doctorId":    doctorID,
		"cancelled":   false,
		"isCompleted": false,
	}
	res, err := r.coll.UpdateOne(ctx, filter, bson.M{"$set": bson.M{"isCompleted": true}})
	if err != nil {
		return fmt.Errorf("failed to mark appointment %s completed: %w", id, err)
	}
	if res.MatchedCount == 0 {
		return ErrNoMatch
	}
	return nil
}

// MarkPaid is the single mutation point the payment collaborator calls back
// into once an online payment is confirmed.
func (r *mongoAppointmentRepo) MarkPaid(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"id": id, "cancelled": false}
	update := bson.M{"$set": bson.M{"payment": true, "paymentMethod": models.PaymentMethodOnline}}
	res, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to mark appointment %s paid: %w", id, err)
	}
	if res.MatchedCount == 0 {
		return ErrNoMatch
	}
	return nil
}
