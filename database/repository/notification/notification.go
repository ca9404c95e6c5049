package notificationRepo

import (
	"context"

	"medvault/database"
	"medvault/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// NotificationRepository owns persistence for in-app notifications.
type NotificationRepository interface {
	Create(ctx context.Context, n *models.Notification) error
	GetByID(ctx context.Context, id string) (*models.Notification, error)
	ListByUser(ctx context.Context, userID string, limit int64) ([]models.Notification, error)
	CountUnread(ctx context.Context, userID string) (int64, error)
	MarkRead(ctx context.Context, id string) error
	MarkAllRead(ctx context.Context, userID string) (int64, error)
	Delete(ctx context.Context, id string) error
}

type MongoNotificationRepo struct {
	coll *mongo.Collection
}

// NewMongoNotificationRepo constructs the MongoDB NotificationRepository.
func NewMongoNotificationRepo() *MongoNotificationRepo {
	db := database.GetDatabase()
	r := &MongoNotificationRepo{coll: db.Collection("notifications")}
	if err := r.ensureIndexes(); err != nil {
		panic(err)
	}
	return r
}
