package availabilityRepo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"medvault/models"
)

const opTimeout = 5 * time.Second

func (r *MongoAvailabilityRepo) Create(ctx context.Context, rng *models.AvailabilityRange) error {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	_, err := r.coll.InsertOne(ctx, rng)
	return err
}

func (r *MongoAvailabilityRepo) GetByID(ctx context.Context, id string) (*models.AvailabilityRange, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	var rng models.AvailabilityRange
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&rng); err != nil {
		return nil, err
	}
	return &rng, nil
}

func (r *MongoAvailabilityRepo) Update(ctx context.Context, rng *models.AvailabilityRange) error {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	rng.UpdatedAt = time.Now()
	_, err := r.coll.ReplaceOne(ctx, bson.M{"id": rng.ID}, rng)
	return err
}

// Delete removes a range; deleting an already-removed range is a no-op.
func (r *MongoAvailabilityRepo) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	_, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	return err
}

// ListByDoctor returns all of a doctor's ranges sorted by day name ascending.
func (r *MongoAvailabilityRepo) ListByDoctor(ctx context.Context, doctorID string) ([]models.AvailabilityRange, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "day", Value: 1}, {Key: "startTime", Value: 1}})
	cursor, err := r.coll.Find(ctx, bson.M{"doctor": doctorID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var ranges []models.AvailabilityRange
	if err := cursor.All(ctx, &ranges); err != nil {
		return nil, err
	}
	return ranges, nil
}

func (r *MongoAvailabilityRepo) ListByDoctorAndDay(ctx context.Context, doctorID, day string) ([]models.AvailabilityRange, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "startTime", Value: 1}})
	cursor, err := r.coll.Find(ctx, bson.M{"doctor": doctorID, "day": day}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var ranges []models.AvailabilityRange
	if err := cursor.All(ctx, &ranges); err != nil {
		return nil, err
	}
	return ranges, nil
}
