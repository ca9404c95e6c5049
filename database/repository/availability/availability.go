package availabilityRepo

import (
	"context"

	"medvault/database"
	"medvault/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// AvailabilityRepository owns persistence for weekly availability ranges.
type AvailabilityRepository interface {
	Create(ctx context.Context, r *models.AvailabilityRange) error
	GetByID(ctx context.Context, id string) (*models.AvailabilityRange, error)
	Update(ctx context.Context, r *models.AvailabilityRange) error
	Delete(ctx context.Context, id string) error
	ListByDoctor(ctx context.Context, doctorID string) ([]models.AvailabilityRange, error)
	ListByDoctorAndDay(ctx context.Context, doctorID, day string) ([]models.AvailabilityRange, error)
}

type MongoAvailabilityRepo struct {
	coll *mongo.Collection
}

// NewMongoAvailabilityRepo constructs the MongoDB AvailabilityRepository.
func NewMongoAvailabilityRepo() *MongoAvailabilityRepo {
	db := database.GetDatabase()
	r := &MongoAvailabilityRepo{coll: db.Collection("availability")}
	if err := r.ensureIndexes(); err != nil {
		panic(err)
	}
	return r
}
