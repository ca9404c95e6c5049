package models

import "time"

// Notification types.
const (
	NotificationAppointment   = "appointment"
	NotificationRecordUpdate  = "record_update"
	NotificationAccessRequest = "access_request"
	NotificationReminder      = "reminder"
	NotificationGeneral       = "general"
)

// Notification priorities.
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

// Notification is an in-app message for a user, optionally mirrored to push
// and email channels via SentVia.
type Notification struct {
	ID                string     `json:"id" bson:"id"`
	UserID            string     `json:"userId" bson:"userId"`
	Type              string     `json:"type" bson:"type"`
	Title             string     `json:"title" bson:"title"`
	Message           string     `json:"message" bson:"message"`
	RelatedEntityID   string     `json:"relatedEntityId,omitempty" bson:"relatedEntityId,omitempty"`
	RelatedEntityType string     `json:"relatedEntityType,omitempty" bson:"relatedEntityType,omitempty"`
	IsRead            bool       `json:"isRead" bson:"isRead"`
	Priority          string     `json:"priority" bson:"priority"`
	SentVia           []string   `json:"sentVia" bson:"sentVia"`
	ReadAt            *time.Time `json:"readAt,omitempty" bson:"readAt,omitempty"`
	CreatedAt         time.Time  `json:"createdAt" bson:"createdAt"`
}
