package records

import (
	"context"
	"time"

	recordRepo "medvault/database/repository/record"
	"medvault/models"
	"medvault/services/consent"
	"medvault/services/notification"
	"medvault/services/storage"
)

// RecordService owns medical records and their encrypted attachments. Access
// by a professional always passes through the patient's consent.
type RecordService interface {
	Create(ctx context.Context, callerID, callerRole string, req models.CreateRecordRequest) (*models.MedicalRecord, error)
	Get(ctx context.Context, recordID, callerID, callerRole string) (*models.MedicalRecord, error)
	Update(ctx context.Context, recordID, callerID, callerRole string, req models.UpdateRecordRequest) (*models.MedicalRecord, error)
	Delete(ctx context.Context, recordID, callerID, callerRole string) error
	ListMine(ctx context.Context, patientID string) ([]models.MedicalRecord, error)
	ListByPatient(ctx context.Context, patientID, callerID, callerRole string) ([]models.MedicalRecord, error)
	ListByType(ctx context.Context, patientID, recordType string) ([]models.MedicalRecord, error)
	AddDocument(ctx context.Context, recordID, callerID, callerRole, fileName, mimeType string, data []byte) (*models.MedicalRecord, error)
}

// DefaultRecordService is the production implementation.
type DefaultRecordService struct {
	Repo     recordRepo.RecordRepository
	Consents consent.ConsentService
	Store    storage.DocumentStore
	Notifier notification.Sink

	Now func() time.Time
}

func (s *DefaultRecordService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}
