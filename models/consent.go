package models

import "time"

// Consent statuses.
const (
	ConsentPending  = "pending"
	ConsentApproved = "approved"
	ConsentRejected = "rejected"
)

// Consent is a patient-granted, optionally time-bounded permission for a
// professional to view or modify the patient's records.
type Consent struct {
	ID                 string     `json:"id" bson:"id"`
	PatientID          string     `json:"patientId" bson:"patientId"`
	ProfessionalID     string     `json:"professionalId" bson:"professionalId"`
	ConsentType        string     `json:"consentType" bson:"consentType"`
	RecordTypesAllowed []string   `json:"recordTypesAllowed" bson:"recordTypesAllowed"`
	AccessScope        string     `json:"accessScope" bson:"accessScope"`
	Reason             string     `json:"reason,omitempty" bson:"reason,omitempty"`
	Status             string     `json:"status" bson:"status"`
	ExpiryDate         *time.Time `json:"expiryDate,omitempty" bson:"expiryDate,omitempty"`
	RespondedAt        *time.Time `json:"respondedAt,omitempty" bson:"respondedAt,omitempty"`
	CreatedAt          time.Time  `json:"createdAt" bson:"createdAt"`
	UpdatedAt          time.Time  `json:"updatedAt" bson:"updatedAt"`
}

// Active reports whether the consent currently grants access.
func (c *Consent) Active(now time.Time) bool {
	if c.Status != ConsentApproved {
		return false
	}
	if c.ExpiryDate != nil && c.ExpiryDate.Before(now) {
		return false
	}
	return true
}

// RequestConsentRequest is the professional's access-request payload.
// PatientID accepts either a user id or a patient email address.
type RequestConsentRequest struct {
	PatientID          string   `json:"patientId" binding:"required"`
	ConsentType        string   `json:"consentType" binding:"required"`
	RecordTypesAllowed []string `json:"recordTypesAllowed"`
	AccessScope        string   `json:"accessScope"`
	ExpiryDate         string   `json:"expiryDate"`
	Reason             string   `json:"reason"`
}
