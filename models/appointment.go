package models

import "time"

// Appointment statuses. Rejected, cancelled and completed are terminal;
// rejected and cancelled do not block their slot.
const (
	AppointmentPending   = "pending"
	AppointmentApproved  = "approved"
	AppointmentRejected  = "rejected"
	AppointmentCompleted = "completed"
	AppointmentCancelled = "cancelled"
)

// SlotWidth is the fixed bookable slot width.
const SlotWidth = 30 * time.Minute

// Appointment is a patient booking against a professional's slot.
//
// SlotKey is doctor + "|" + RFC3339 slot start; a partial unique index on it
// (blocking == true) makes concurrent double-booking a write conflict instead
// of a silent race.
type Appointment struct {
	ID        string    `json:"id" bson:"id"`
	Patient   string    `json:"patient" bson:"patient"`
	Doctor    string    `json:"doctor" bson:"doctor"`
	Date      time.Time `json:"date" bson:"date"`
	Status    string    `json:"status" bson:"status"`
	Reason    string    `json:"reason" bson:"reason"`
	SlotKey   string    `json:"-" bson:"slotKey"`
	Blocking  bool      `json:"-" bson:"blocking"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updatedAt"`
}

// Blocks reports whether an appointment in this status occupies its slot.
func Blocks(status string) bool {
	return status != AppointmentRejected && status != AppointmentCancelled
}

// PopulatedAppointment is an appointment enriched with patient and doctor
// display fields for API responses.
type PopulatedAppointment struct {
	ID          string    `json:"id"`
	Patient     UserInfo  `json:"patient"`
	Doctor      UserInfo  `json:"doctor"`
	Date        time.Time `json:"date"`
	Status      string    `json:"status"`
	Reason      string    `json:"reason"`
	HasFeedback bool      `json:"hasFeedback"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// BookAppointmentRequest is the booking payload. Date is an ISO date-time.
type BookAppointmentRequest struct {
	DoctorID string `json:"doctorId" binding:"required"`
	Date     string `json:"date" binding:"required"`
	Reason   string `json:"reason" binding:"required"`
}

// UpdateAppointmentStatusRequest carries a professional's status transition.
type UpdateAppointmentStatusRequest struct {
	Status string `json:"status" binding:"required"`
}
