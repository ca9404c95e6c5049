package notification

import (
	"context"

	"medvault/models"
	"medvault/utils"

	"firebase.google.com/go/v4/messaging"
	"go.uber.org/zap"
)

// sendPush looks up the user's FCM token and sends a push. Missing tokens
// and transport errors are logged only.
func (s *DefaultNotificationService) sendPush(ctx context.Context, n models.Notification) {
	if utils.FCMClient == nil {
		return
	}

	u, err := s.Users.GetByID(ctx, n.UserID)
	if err != nil {
		s.logger().Warn("push: could not resolve user", zap.String("userId", n.UserID), zap.Error(err))
		return
	}
	if u.FCMToken == "" {
		return
	}

	msg := &messaging.Message{
		Token: u.FCMToken,
		Notification: &messaging.Notification{
			Title: n.Title,
			Body:  n.Message,
		},
		Data: map[string]string{
			"type":              n.Type,
			"relatedEntityId":   n.RelatedEntityID,
			"relatedEntityType": n.RelatedEntityType,
		},
	}
	if n.Priority == models.PriorityHigh {
		msg.Android = &messaging.AndroidConfig{Priority: "high"}
	}

	if _, err := utils.FCMClient.Send(ctx, msg); err != nil {
		s.logger().Warn("push: send failed", zap.String("userId", n.UserID), zap.Error(err))
	}
}

// sendEmail mirrors the notification to the user's mailbox.
func (s *DefaultNotificationService) sendEmail(ctx context.Context, n models.Notification) {
	if s.Mailer == nil {
		return
	}

	u, err := s.Users.GetByID(ctx, n.UserID)
	if err != nil {
		s.logger().Warn("email: could not resolve user", zap.String("userId", n.UserID), zap.Error(err))
		return
	}

	body := "<p>" + n.Message + "</p>"
	if err := s.Mailer.Send(ctx, u.Email, n.Title, body); err != nil {
		s.logger().Warn("email: send failed", zap.String("userId", n.UserID), zap.Error(err))
	}
}
