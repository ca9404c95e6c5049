package notification

import (
	"context"

	notificationRepo "medvault/database/repository/notification"
	userRepo "medvault/database/repository/user"
	"medvault/models"
	"medvault/utils"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// Sink accepts domain events as notifications. Implementations must never
// fail the parent operation: delivery problems are logged and swallowed.
type Sink interface {
	Notify(ctx context.Context, n models.Notification)
}

// NotificationService is the full in-app notification API.
type NotificationService interface {
	Sink
	List(ctx context.Context, userID string) ([]models.Notification, error)
	UnreadCount(ctx context.Context, userID string) (int64, error)
	MarkRead(ctx context.Context, id, callerID string) (*models.Notification, error)
	MarkAllRead(ctx context.Context, userID string) (int64, error)
	Delete(ctx context.Context, id, callerID string) error
}

// DefaultNotificationService stores notifications in Mongo and mirrors them
// to FCM push and email on a best-effort basis.
type DefaultNotificationService struct {
	Repo   notificationRepo.NotificationRepository
	Users  userRepo.UserRepository
	Mailer utils.Mailer
	Cache  *redis.Client
	Logger *zap.Logger
}

func (s *DefaultNotificationService) logger() *zap.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return utils.GetLogger()
}
