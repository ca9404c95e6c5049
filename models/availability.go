package models

import "time"

// AvailabilityRange is a professional's recurring open-for-booking window on a
// given weekday. Times are minute-granularity "HH:MM" strings.
type AvailabilityRange struct {
	ID        string    `json:"availabilityId" bson:"id"`
	Doctor    string    `json:"doctor" bson:"doctor"`
	Day       string    `json:"day" bson:"day"`
	StartTime string    `json:"startTime" bson:"startTime"`
	EndTime   string    `json:"endTime" bson:"endTime"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updatedAt"`
}

// CreateAvailabilityRequest is the payload for adding a weekly range.
type CreateAvailabilityRequest struct {
	Day       string `json:"day" binding:"required"`
	StartTime string `json:"startTime" binding:"required"`
	EndTime   string `json:"endTime" binding:"required"`
}

// UpdateAvailabilityRequest carries optional range mutations.
type UpdateAvailabilityRequest struct {
	Day       string `json:"day"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}
