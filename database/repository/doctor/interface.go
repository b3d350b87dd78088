// File: database/repository/doctor/interface.go
package doctorRepo

import (
	"context"
	"errors"

	"medibook/config"
	"medibook/database"
	"medibook/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// ErrNotFound is returned when no doctor matches the given id.
var ErrNotFound = errors.New("doctor not found")

type DoctorRepository interface {
	Create(ctx context.Context, doctor *models.Doctor) error
	GetByID(ctx context.Context, id string) (*models.Doctor, error)
	SetAvailability(ctx context.Context, id string, rules []models.DayRule, slotMinutes, breakMinutes int) error
	SetAvailable(ctx context.Context, id string, available bool) error
}

type mongoDoctorRepo struct {
	coll *mongo.Collection
}

// NewMongoDoctorRepo constructs a new MongoDB DoctorRepository.
func NewMongoDoctorRepo() DoctorRepository {
	db := database.MongoClient.Database(config.AppConfig.DatabaseName)
	return &mongoDoctorRepo{
		coll: db.Collection("doctors"),
	}
}
