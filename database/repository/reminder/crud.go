package reminderRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"medvault/models"
)

const opTimeout = 5 * time.Second

func (r *MongoReminderRepo) Create(ctx context.Context, rem *models.Reminder) error {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	_, err := r.coll.InsertOne(ctx, rem)
	return err
}

func (r *MongoReminderRepo) GetByID(ctx context.Context, id string) (*models.Reminder, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	var rem models.Reminder
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&rem); err != nil {
		return nil, err
	}
	return &rem, nil
}

func (r *MongoReminderRepo) Update(ctx context.Context, rem *models.Reminder) error {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	rem.UpdatedAt = time.Now()
	_, err := r.coll.ReplaceOne(ctx, bson.M{"id": rem.ID}, rem)
	return err
}

func (r *MongoReminderRepo) ListActiveByUser(ctx context.Context, userID string) ([]models.Reminder, error) {
	return r.list(ctx, bson.M{"userId": userID, "isActive": true})
}

func (r *MongoReminderRepo) ListUpcomingByUser(ctx context.Context, userID string, from, to time.Time) ([]models.Reminder, error) {
	return r.list(ctx, bson.M{
		"userId":       userID,
		"isActive":     true,
		"isCompleted":  false,
		"reminderDate": bson.M{"$gte": from, "$lte": to},
	})
}

func (r *MongoReminderRepo) SetCompleted(ctx context.Context, id string) error {
	return r.setFields(ctx, id, bson.M{"isCompleted": true})
}

func (r *MongoReminderRepo) Deactivate(ctx context.Context, id string) error {
	return r.setFields(ctx, id, bson.M{"isActive": false})
}

func (r *MongoReminderRepo) setFields(ctx context.Context, id string, fields bson.M) error {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	fields["updatedAt"] = time.Now()
	res, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, bson.M{"$set": fields})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (r *MongoReminderRepo) list(ctx context.Context, filter bson.M) ([]models.Reminder, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "reminderDate", Value: 1}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list reminders: %w", err)
	}
	defer cursor.Close(ctx)

	var reminders []models.Reminder
	if err := cursor.All(ctx, &reminders); err != nil {
		return nil, err
	}
	return reminders, nil
}
