package models

import "time"

// Feedback is a patient's one-off rating of a completed appointment.
type Feedback struct {
	ID            string    `json:"id" bson:"id"`
	AppointmentID string    `json:"appointmentId" bson:"appointmentId"`
	Patient       string    `json:"patient" bson:"patient"`
	Doctor        string    `json:"doctor" bson:"doctor"`
	Rating        int       `json:"rating" bson:"rating"`
	Comment       string    `json:"comment,omitempty" bson:"comment,omitempty"`
	CreatedAt     time.Time `json:"createdAt" bson:"createdAt"`
}

// AddFeedbackRequest is the feedback payload.
type AddFeedbackRequest struct {
	Rating  int    `json:"rating" binding:"required,min=1,max=5"`
	Comment string `json:"comment"`
}
