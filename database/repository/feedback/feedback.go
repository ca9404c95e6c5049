package feedbackRepo

import (
	"context"
	"fmt"
	"time"

	"medvault/database"
	"medvault/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// FeedbackRepository owns persistence for appointment feedback.
type FeedbackRepository interface {
	Create(ctx context.Context, f *models.Feedback) error
	GetByAppointment(ctx context.Context, appointmentID string) (*models.Feedback, error)
	ListByDoctor(ctx context.Context, doctorID string) ([]models.Feedback, error)
	AppointmentIDsWithFeedback(ctx context.Context, appointmentIDs []string) (map[string]bool, error)
}

type MongoFeedbackRepo struct {
	coll *mongo.Collection
}

// NewMongoFeedbackRepo constructs the MongoDB FeedbackRepository.
func NewMongoFeedbackRepo() *MongoFeedbackRepo {
	db := database.GetDatabase()
	r := &MongoFeedbackRepo{coll: db.Collection("feedback")}
	if err := r.ensureIndexes(); err != nil {
		panic(err)
	}
	return r
}

const opTimeout = 5 * time.Second

func (r *MongoFeedbackRepo) ensureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "appointmentId", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "doctor", Value: 1}, {Key: "createdAt", Value: -1}}},
	}

	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create feedback indexes: %w", err)
	}
	return nil
}

func (r *MongoFeedbackRepo) Create(ctx context.Context, f *models.Feedback) error {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	_, err := r.coll.InsertOne(ctx, f)
	return err
}

func (r *MongoFeedbackRepo) GetByAppointment(ctx context.Context, appointmentID string) (*models.Feedback, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	var f models.Feedback
	if err := r.coll.FindOne(ctx, bson.M{"appointmentId": appointmentID}).Decode(&f); err != nil {
		return nil, err
	}
	return &f, nil
}

func (r *MongoFeedbackRepo) ListByDoctor(ctx context.Context, doctorID string) ([]models.Feedback, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.coll.Find(ctx, bson.M{"doctor": doctorID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var items []models.Feedback
	if err := cursor.All(ctx, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// AppointmentIDsWithFeedback returns the subset of the given appointment ids
// that already have feedback attached.
func (r *MongoFeedbackRepo) AppointmentIDsWithFeedback(ctx context.Context, appointmentIDs []string) (map[string]bool, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	cursor, err := r.coll.Find(ctx, bson.M{"appointmentId": bson.M{"$in": appointmentIDs}})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	seen := make(map[string]bool)
	for cursor.Next(ctx) {
		var f models.Feedback
		if err := cursor.Decode(&f); err != nil {
			return nil, err
		}
		seen[f.AppointmentID] = true
	}
	return seen, cursor.Err()
}
