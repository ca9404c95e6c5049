package reminderRepo

import (
	"context"
	"time"

	"medvault/database"
	"medvault/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// ReminderRepository owns persistence for user reminders.
type ReminderRepository interface {
	Create(ctx context.Context, rem *models.Reminder) error
	GetByID(ctx context.Context, id string) (*models.Reminder, error)
	Update(ctx context.Context, rem *models.Reminder) error
	ListActiveByUser(ctx context.Context, userID string) ([]models.Reminder, error)
	ListUpcomingByUser(ctx context.Context, userID string, from, to time.Time) ([]models.Reminder, error)
	SetCompleted(ctx context.Context, id string) error
	Deactivate(ctx context.Context, id string) error
}

type MongoReminderRepo struct {
	coll *mongo.Collection
}

// NewMongoReminderRepo constructs the MongoDB ReminderRepository.
func NewMongoReminderRepo() *MongoReminderRepo {
	db := database.GetDatabase()
	r := &MongoReminderRepo{coll: db.Collection("reminders")}
	if err := r.ensureIndexes(); err != nil {
		panic(err)
	}
	return r
}
