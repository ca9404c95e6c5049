package reminder

import (
	"context"
	"errors"
	"fmt"
	"time"

	"medvault/models"
	"medvault/services/tasks"
	"medvault/utils"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

var reminderDateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
}

func parseReminderDate(value string) (time.Time, error) {
	for _, layout := range reminderDateLayouts {
		if t, err := time.ParseInLocation(layout, value, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid reminder date %q", value)
}

func validFrequency(f string) bool {
	switch f {
	case models.FrequencyOnce, models.FrequencyDaily, models.FrequencyWeekly, models.FrequencyMonthly:
		return true
	}
	return false
}

// Create stores a reminder and schedules its first delivery.
func (s *DefaultReminderService) Create(ctx context.Context, userID string, req models.CreateReminderRequest) (*models.Reminder, error) {
	when, err := parseReminderDate(req.ReminderDate)
	if err != nil {
		return nil, utils.ErrInvalidInput("reminderDate must be an ISO date-time")
	}
	if !when.After(s.now()) {
		return nil, utils.ErrInvalidInput("Reminder date must be in the future")
	}

	freq := req.Frequency
	if freq == "" {
		freq = models.FrequencyOnce
	}
	if !validFrequency(freq) {
		return nil, utils.ErrInvalidInput("Invalid frequency")
	}

	now := s.now()
	rem := &models.Reminder{
		ID:                uuid.New().String(),
		UserID:            userID,
		Type:              req.Type,
		Title:             req.Title,
		Description:       req.Description,
		RelatedEntityID:   req.RelatedEntityID,
		RelatedEntityType: req.RelatedEntityType,
		ReminderDate:      when,
		Frequency:         freq,
		IsActive:          true,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if err := s.Repo.Create(ctx, rem); err != nil {
		return nil, fmt.Errorf("failed to create reminder: %w", err)
	}

	s.schedule(rem)
	return rem, nil
}

// schedule enqueues the delivery task; enqueue failures leave the stored
// reminder intact and are only logged.
func (s *DefaultReminderService) schedule(rem *models.Reminder) {
	if s.Scheduler == nil {
		return
	}
	task, opts, err := tasks.NewReminderTask(models.ReminderPayload{
		ReminderID: rem.ID,
		UserID:     rem.UserID,
	}, rem.ReminderDate)
	if err != nil {
		utils.GetLogger().Error("Failed to build reminder task",
			zap.String("reminderId", rem.ID), zap.Error(err))
		return
	}
	if _, err := s.Scheduler.Enqueue(task, opts...); err != nil {
		utils.GetLogger().Error("Failed to enqueue reminder task",
			zap.String("reminderId", rem.ID), zap.Error(err))
	}
}

// List returns the user's active reminders.
func (s *DefaultReminderService) List(ctx context.Context, userID string) ([]models.Reminder, error) {
	items, err := s.Repo.ListActiveByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list reminders: %w", err)
	}
	return items, nil
}

// Upcoming returns active reminders firing within the window from now.
func (s *DefaultReminderService) Upcoming(ctx context.Context, userID string, window time.Duration) ([]models.Reminder, error) {
	from := s.now()
	items, err := s.Repo.ListUpcomingByUser(ctx, userID, from, from.Add(window))
	if err != nil {
		return nil, fmt.Errorf("failed to list upcoming reminders: %w", err)
	}
	return items, nil
}

// Update applies partial mutations and reschedules when the fire time moved.
func (s *DefaultReminderService) Update(ctx context.Context, reminderID, userID string, req models.UpdateReminderRequest) (*models.Reminder, error) {
	rem, err := s.getOwned(ctx, reminderID, userID)
	if err != nil {
		return nil, err
	}

	if req.Title != "" {
		rem.Title = req.Title
	}
	if req.Description != "" {
		rem.Description = req.Description
	}
	if req.Frequency != "" {
		if !validFrequency(req.Frequency) {
			return nil, utils.ErrInvalidInput("Invalid frequency")
		}
		rem.Frequency = req.Frequency
	}
	rescheduled := false
	if req.ReminderDate != "" {
		when, err := parseReminderDate(req.ReminderDate)
		if err != nil {
			return nil, utils.ErrInvalidInput("reminderDate must be an ISO date-time")
		}
		if !when.After(s.now()) {
			return nil, utils.ErrInvalidInput("Reminder date must be in the future")
		}
		rem.ReminderDate = when
		rescheduled = true
	}
	rem.UpdatedAt = s.now()
	if err := s.Repo.Update(ctx, rem); err != nil {
		return nil, fmt.Errorf("failed to update reminder: %w", err)
	}
	if rescheduled {
		s.schedule(rem)
	}
	return rem, nil
}

// Complete marks a reminder done; recurring reminders stop firing.
func (s *DefaultReminderService) Complete(ctx context.Context, reminderID, userID string) error {
	if _, err := s.getOwned(ctx, reminderID, userID); err != nil {
		return err
	}
	if err := s.Repo.SetCompleted(ctx, reminderID); err != nil {
		return fmt.Errorf("failed to complete reminder: %w", err)
	}
	return nil
}

// Delete soft-deletes by deactivating; pending queue tasks for it become
// no-ops.
func (s *DefaultReminderService) Delete(ctx context.Context, reminderID, userID string) error {
	if _, err := s.getOwned(ctx, reminderID, userID); err != nil {
		return err
	}
	if err := s.Repo.Deactivate(ctx, reminderID); err != nil {
		return fmt.Errorf("failed to delete reminder: %w", err)
	}
	return nil
}

func (s *DefaultReminderService) getOwned(ctx context.Context, reminderID, userID string) (*models.Reminder, error) {
	rem, err := s.Repo.GetByID(ctx, reminderID)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, utils.ErrNotFound("Reminder not found")
	}
	if err != nil {
		return nil, err
	}
	if rem.UserID != userID {
		return nil, utils.ErrForbidden("Not authorized")
	}
	return rem, nil
}
