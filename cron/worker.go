package cron

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"medvault/config"
	reminderRepo "medvault/database/repository/reminder"
	"medvault/models"
	"medvault/services/notification"
	"medvault/services/tasks"
	"medvault/utils"

	"github.com/hibiken/asynq"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// InitReminderWorker starts the background asynq worker that delivers
// reminders through the notification sink.
func InitReminderWorker(repo reminderRepo.ReminderRepository, sink notification.Sink, scheduler tasks.Scheduler) {
	srv := asynq.NewServer(
		asynq.RedisClientOpt{
			Addr:     config.AppConfig.RedisAddr,
			Password: config.AppConfig.RedisPassword,
			DB:       config.AppConfig.RedisReminderQueueDB,
		},
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeSendReminder, handleReminderTask(repo, sink, scheduler))

	go func() {
		logger := utils.GetLogger()
		logger.Info("Starting reminder worker")
		const maxAttempts = 5
		for attempt := 1; attempt <= maxAttempts; attempt++ {
			err := srv.Run(mux)
			if err == nil {
				return
			}
			logger.Error("Reminder worker failed to start",
				zap.Int("attempt", attempt), zap.Error(err))
			if attempt == maxAttempts {
				logger.Fatal("Reminder worker exhausted retries")
			}
			time.Sleep(time.Duration(attempt*2) * time.Second)
		}
	}()
}

// handleReminderTask delivers one reminder. Deleted, deactivated or completed
// reminders drop the task silently; recurring reminders re-enqueue their next
// occurrence after delivery.
func handleReminderTask(repo reminderRepo.ReminderRepository, sink notification.Sink, scheduler tasks.Scheduler) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p models.ReminderPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			utils.GetLogger().Error("Invalid reminder payload", zap.Error(err))
			return err
		}

		rem, err := repo.GetByID(ctx, p.ReminderID)
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil
		}
		if err != nil {
			return err
		}
		if !rem.IsActive || rem.IsCompleted {
			return nil
		}

		sink.Notify(ctx, models.Notification{
			UserID:            rem.UserID,
			Type:              models.NotificationReminder,
			Title:             rem.Title,
			Message:           rem.Description,
			RelatedEntityID:   rem.ID,
			RelatedEntityType: "reminder",
			SentVia:           []string{"in_app", "push"},
		})

		next, recurring := rem.NextOccurrence(rem.ReminderDate)
		if !recurring {
			if err := repo.SetCompleted(ctx, rem.ID); err != nil {
				utils.GetLogger().Error("Failed to complete reminder",
					zap.String("reminderId", rem.ID), zap.Error(err))
			}
			return nil
		}

		rem.ReminderDate = next
		rem.UpdatedAt = time.Now()
		if err := repo.Update(ctx, rem); err != nil {
			return err
		}
		if scheduler != nil {
			t, opts, err := tasks.NewReminderTask(p, next)
			if err != nil {
				return err
			}
			if _, err := scheduler.Enqueue(t, opts...); err != nil {
				return err
			}
		}
		return nil
	}
}
