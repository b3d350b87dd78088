// File: database/repository/patient/interface.go
package patientRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"medibook/config"
	"medibook/database"
	"medibook/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// ErrNotFound is returned when no patient profile matches the given id.
var ErrNotFound = errors.New("patient not found")

// PatientRepository is the read side of the profile store: it supplies the
// display data snapshotted onto appointments at booking time.
type PatientRepository interface {
	GetSnapshot(ctx context.Context, patientID string) (models.PatientSnapshot, error)
}

type mongoPatientRepo struct {
	coll *mongo.Collection
}

// NewMongoPatientRepo constructs a new MongoDB PatientRepository.
func NewMongoPatientRepo() PatientRepository {
	db := database.MongoClient.Database(config.AppConfig.DatabaseName)
	return &mongoPatientRepo{
		coll: db.Collection("patients"),
	}
}

func (r *mongoPatientRepo) GetSnapshot(ctx context.Context, patientID string) (models.PatientSnapshot, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var snap models.PatientSnapshot
	err := r.coll.FindOne(ctx, bson.M{"id": patientID}).Decode(&snap)
	if err == mongo.ErrNoDocuments {
		return models.PatientSnapshot{}, ErrNotFound
	}
	if err != nil {
		return models.PatientSnapshot{}, fmt.Errorf("failed to fetch patient %s: %w", patientID, err)
	}
	return snap, nil
}
