package models

import "time"

// RecordDocument is a file attached to a medical record. The stored URL points
// at the encrypted blob in object storage.
type RecordDocument struct {
	ID         string    `json:"id" bson:"id"`
	FileName   string    `json:"fileName" bson:"fileName"`
	URL        string    `json:"url" bson:"url"`
	MimeType   string    `json:"mimeType" bson:"mimeType"`
	UploadedBy string    `json:"uploadedBy" bson:"uploadedBy"`
	UploadedAt time.Time `json:"uploadedAt" bson:"uploadedAt"`
}

// MedicalRecord is a patient health record entry.
type MedicalRecord struct {
	ID          string           `json:"id" bson:"id"`
	PatientID   string           `json:"patientId" bson:"patientId"`
	CreatedBy   string           `json:"createdBy" bson:"createdBy"`
	RecordType  string           `json:"recordType" bson:"recordType"`
	Title       string           `json:"title" bson:"title"`
	Description string           `json:"description,omitempty" bson:"description,omitempty"`
	Diagnosis   string           `json:"diagnosis,omitempty" bson:"diagnosis,omitempty"`
	Medications []string         `json:"medications" bson:"medications"`
	Documents   []RecordDocument `json:"documents" bson:"documents"`
	RecordDate  time.Time        `json:"recordDate" bson:"recordDate"`
	CreatedAt   time.Time        `json:"createdAt" bson:"createdAt"`
	UpdatedAt   time.Time        `json:"updatedAt" bson:"updatedAt"`
}

// CreateRecordRequest is the record creation payload. PatientID may be empty
// when a patient creates a record for themselves.
type CreateRecordRequest struct {
	PatientID   string   `json:"patientId"`
	RecordType  string   `json:"recordType" binding:"required"`
	Title       string   `json:"title" binding:"required"`
	Description string   `json:"description"`
	Diagnosis   string   `json:"diagnosis"`
	Medications []string `json:"medications"`
	RecordDate  string   `json:"recordDate"`
}

// UpdateRecordRequest carries optional record mutations.
type UpdateRecordRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Diagnosis   string   `json:"diagnosis"`
	Medications []string `json:"medications"`
}
