package models

import "time"

// Reminder frequencies.
const (
	FrequencyOnce    = "once"
	FrequencyDaily   = "daily"
	FrequencyWeekly  = "weekly"
	FrequencyMonthly = "monthly"
)

// Reminder is a user-scheduled prompt delivered through the notification sink.
type Reminder struct {
	ID                string    `json:"id" bson:"id"`
	UserID            string    `json:"userId" bson:"userId"`
	Type              string    `json:"type" bson:"type"`
	Title             string    `json:"title" bson:"title"`
	Description       string    `json:"description,omitempty" bson:"description,omitempty"`
	RelatedEntityID   string    `json:"relatedEntityId,omitempty" bson:"relatedEntityId,omitempty"`
	RelatedEntityType string    `json:"relatedEntityType,omitempty" bson:"relatedEntityType,omitempty"`
	ReminderDate      time.Time `json:"reminderDate" bson:"reminderDate"`
	Frequency         string    `json:"frequency" bson:"frequency"`
	IsActive          bool      `json:"isActive" bson:"isActive"`
	IsCompleted       bool      `json:"isCompleted" bson:"isCompleted"`
	CreatedAt         time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt" bson:"updatedAt"`
}

// NextOccurrence returns the next fire time after the given one, or false for
// one-shot reminders.
func (r *Reminder) NextOccurrence(after time.Time) (time.Time, bool) {
	switch r.Frequency {
	case FrequencyDaily:
		return after.AddDate(0, 0, 1), true
	case FrequencyWeekly:
		return after.AddDate(0, 0, 7), true
	case FrequencyMonthly:
		return after.AddDate(0, 1, 0), true
	default:
		return time.Time{}, false
	}
}

// CreateReminderRequest is the reminder creation payload.
type CreateReminderRequest struct {
	Type              string `json:"type" binding:"required"`
	Title             string `json:"title" binding:"required"`
	Description       string `json:"description"`
	ReminderDate      string `json:"reminderDate" binding:"required"`
	Frequency         string `json:"frequency"`
	RelatedEntityID   string `json:"relatedEntityId"`
	RelatedEntityType string `json:"relatedEntityType"`
}

// UpdateReminderRequest carries optional reminder mutations.
type UpdateReminderRequest struct {
	Title        string `json:"title"`
	Description  string `json:"description"`
	ReminderDate string `json:"reminderDate"`
	Frequency    string `json:"frequency"`
}

// ReminderPayload is the asynq task payload for scheduled delivery.
type ReminderPayload struct {
	ReminderID string `json:"reminderId"`
	UserID     string `json:"userId"`
}
