package reminder

import (
	"context"
	"time"

	reminderRepo "medvault/database/repository/reminder"
	"medvault/models"
	"medvault/services/tasks"
)

// ReminderService owns user-scheduled reminders and their delayed delivery.
type ReminderService interface {
	Create(ctx context.Context, userID string, req models.CreateReminderRequest) (*models.Reminder, error)
	List(ctx context.Context, userID string) ([]models.Reminder, error)
	Upcoming(ctx context.Context, userID string, window time.Duration) ([]models.Reminder, error)
	Update(ctx context.Context, reminderID, userID string, req models.UpdateReminderRequest) (*models.Reminder, error)
	Complete(ctx context.Context, reminderID, userID string) error
	Delete(ctx context.Context, reminderID, userID string) error
}

// DefaultReminderService is the production implementation. Scheduler may be
// nil, in which case reminders are stored but not delivered.
type DefaultReminderService struct {
	Repo      reminderRepo.ReminderRepository
	Scheduler tasks.Scheduler

	Now func() time.Time
}

func (s *DefaultReminderService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}
