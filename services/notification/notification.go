package notification

import (
	"context"
	"errors"
	"fmt"
	"time"

	"medvault/models"
	"medvault/utils"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Notify persists the in-app notification, invalidates the unread-count
// cache, then fans out to push and email per SentVia. Only the Mongo write
// can fail, and even that is logged rather than propagated.
func (s *DefaultNotificationService) Notify(ctx context.Context, n models.Notification) {
	if n.ID == "" {
		n.ID = uuid.New().String()
	}
	if n.Priority == "" {
		n.Priority = models.PriorityMedium
	}
	if len(n.SentVia) == 0 {
		n.SentVia = []string{"in_app"}
	}
	n.CreatedAt = time.Now()

	if err := s.Repo.Create(ctx, &n); err != nil {
		s.logger().Error("failed to store notification",
			zap.String("userId", n.UserID), zap.Error(err))
		return
	}
	s.invalidateUnreadCount(ctx, n.UserID)

	for _, channel := range n.SentVia {
		switch channel {
		case "push":
			s.sendPush(ctx, n)
		case "email":
			s.sendEmail(ctx, n)
		}
	}
}

func (s *DefaultNotificationService) List(ctx context.Context, userID string) ([]models.Notification, error) {
	items, err := s.Repo.ListByUser(ctx, userID, 100)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch notifications: %w", err)
	}
	return items, nil
}

// UnreadCount serves the badge counter, caching the Mongo count in Redis.
func (s *DefaultNotificationService) UnreadCount(ctx context.Context, userID string) (int64, error) {
	key := utils.UnreadCountPrefix + userID
	if s.Cache != nil {
		if cached, err := s.Cache.Get(ctx, key).Int64(); err == nil {
			return cached, nil
		}
	}

	count, err := s.Repo.CountUnread(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to count unread notifications: %w", err)
	}
	if s.Cache != nil {
		if err := s.Cache.Set(ctx, key, count, utils.UnreadCountTTL).Err(); err != nil {
			s.logger().Warn("failed to cache unread count", zap.Error(err))
		}
	}
	return count, nil
}

func (s *DefaultNotificationService) MarkRead(ctx context.Context, id, callerID string) (*models.Notification, error) {
	n, err := s.Repo.GetByID(ctx, id)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, utils.ErrNotFound("Notification not found")
	}
	if err != nil {
		return nil, err
	}
	if n.UserID != callerID {
		return nil, utils.ErrForbidden("Not authorized")
	}

	if err := s.Repo.MarkRead(ctx, id); err != nil {
		return nil, err
	}
	s.invalidateUnreadCount(ctx, callerID)

	return s.Repo.GetByID(ctx, id)
}

func (s *DefaultNotificationService) MarkAllRead(ctx context.Context, userID string) (int64, error) {
	modified, err := s.Repo.MarkAllRead(ctx, userID)
	if err != nil {
		return 0, err
	}
	s.invalidateUnreadCount(ctx, userID)
	return modified, nil
}

func (s *DefaultNotificationService) Delete(ctx context.Context, id, callerID string) error {
	n, err := s.Repo.GetByID(ctx, id)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return utils.ErrNotFound("Notification not found")
	}
	if err != nil {
		return err
	}
	if n.UserID != callerID {
		return utils.ErrForbidden("Not authorized")
	}

	if err := s.Repo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidateUnreadCount(ctx, callerID)
	return nil
}

func (s *DefaultNotificationService) invalidateUnreadCount(ctx context.Context, userID string) {
	if s.Cache == nil {
		return
	}
	if err := s.Cache.Del(ctx, utils.UnreadCountPrefix+userID).Err(); err != nil {
		s.logger().Warn("failed to invalidate unread count", zap.Error(err))
	}
}
