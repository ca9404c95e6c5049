package records

import (
	"context"
	"errors"
	"fmt"
	"time"

	"medvault/models"
	"medvault/utils"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"
)

// authorize resolves whether the caller may touch a patient's records.
// Patients reach only their own; professionals need an active consent.
func (s *DefaultRecordService) authorize(ctx context.Context, patientID, callerID, callerRole string) error {
	if callerRole == models.RolePatient {
		if patientID != callerID {
			return utils.ErrForbidden("Not authorized")
		}
		return nil
	}
	ok, err := s.Consents.HasActiveConsent(ctx, patientID, callerID)
	if err != nil {
		return err
	}
	if !ok {
		return utils.ErrForbidden("No active consent for this patient")
	}
	return nil
}

// Create stores a new record. Patients create records for themselves;
// professionals create them for consented patients.
func (s *DefaultRecordService) Create(ctx context.Context, callerID, callerRole string, req models.CreateRecordRequest) (*models.MedicalRecord, error) {
	patientID := req.PatientID
	if callerRole == models.RolePatient {
		patientID = callerID
	}
	if patientID == "" {
		return nil, utils.ErrInvalidInput("patientId is required")
	}
	if err := s.authorize(ctx, patientID, callerID, callerRole); err != nil {
		return nil, err
	}

	recordDate := s.now()
	if req.RecordDate != "" {
		t, err := time.Parse("2006-01-02", req.RecordDate)
		if err != nil {
			return nil, utils.ErrInvalidInput("recordDate must be YYYY-MM-DD")
		}
		recordDate = t
	}

	now := s.now()
	rec := &models.MedicalRecord{
		ID:          uuid.New().String(),
		PatientID:   patientID,
		CreatedBy:   callerID,
		RecordType:  req.RecordType,
		Title:       req.Title,
		Description: req.Description,
		Diagnosis:   req.Diagnosis,
		Medications: req.Medications,
		Documents:   []models.RecordDocument{},
		RecordDate:  recordDate,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if rec.Medications == nil {
		rec.Medications = []string{}
	}
	if err := s.Repo.Create(ctx, rec); err != nil {
		return nil, fmt.Errorf("failed to create record: %w", err)
	}

	if callerRole == models.RoleProfessional {
		s.notify(ctx, models.Notification{
			UserID:            patientID,
			Type:              models.NotificationRecordUpdate,
			Title:             "New Medical Record",
			Message:           "A new record \"" + rec.Title + "\" was added to your file.",
			RelatedEntityID:   rec.ID,
			RelatedEntityType: "record",
			SentVia:           []string{"in_app", "push"},
		})
	}
	return rec, nil
}

// Get fetches a single record after the consent check.
func (s *DefaultRecordService) Get(ctx context.Context, recordID, callerID, callerRole string) (*models.MedicalRecord, error) {
	rec, err := s.getRecord(ctx, recordID)
	if err != nil {
		return nil, err
	}
	if err := s.authorize(ctx, rec.PatientID, callerID, callerRole); err != nil {
		return nil, err
	}
	return rec, nil
}

// Update applies partial mutations after the consent check.
func (s *DefaultRecordService) Update(ctx context.Context, recordID, callerID, callerRole string, req models.UpdateRecordRequest) (*models.MedicalRecord, error) {
	rec, err := s.getRecord(ctx, recordID)
	if err != nil {
		return nil, err
	}
	if err := s.authorize(ctx, rec.PatientID, callerID, callerRole); err != nil {
		return nil, err
	}

	if req.Title != "" {
		rec.Title = req.Title
	}
	if req.Description != "" {
		rec.Description = req.Description
	}
	if req.Diagnosis != "" {
		rec.Diagnosis = req.Diagnosis
	}
	if req.Medications != nil {
		rec.Medications = req.Medications
	}
	rec.UpdatedAt = s.now()
	if err := s.Repo.Update(ctx, rec); err != nil {
		return nil, fmt.Errorf("failed to update record: %w", err)
	}

	if callerRole == models.RoleProfessional {
		s.notify(ctx, models.Notification{
			UserID:            rec.PatientID,
			Type:              models.NotificationRecordUpdate,
			Title:             "Medical Record Updated",
			Message:           "Your record \"" + rec.Title + "\" was updated.",
			RelatedEntityID:   rec.ID,
			RelatedEntityType: "record",
			SentVia:           []string{"in_app", "push"},
		})
	}
	return rec, nil
}

// Delete removes a record after the consent check.
func (s *DefaultRecordService) Delete(ctx context.Context, recordID, callerID, callerRole string) error {
	rec, err := s.getRecord(ctx, recordID)
	if err != nil {
		return err
	}
	if err := s.authorize(ctx, rec.PatientID, callerID, callerRole); err != nil {
		return err
	}
	if err := s.Repo.Delete(ctx, rec.ID); err != nil {
		return fmt.Errorf("failed to delete record: %w", err)
	}
	return nil
}

// ListMine lists the patient's own records, newest first.
func (s *DefaultRecordService) ListMine(ctx context.Context, patientID string) ([]models.MedicalRecord, error) {
	items, err := s.Repo.ListByPatient(ctx, patientID)
	if err != nil {
		return nil, fmt.Errorf("failed to list records: %w", err)
	}
	return items, nil
}

// ListByPatient lists a patient's records for a consented professional.
func (s *DefaultRecordService) ListByPatient(ctx context.Context, patientID, callerID, callerRole string) ([]models.MedicalRecord, error) {
	if err := s.authorize(ctx, patientID, callerID, callerRole); err != nil {
		return nil, err
	}
	items, err := s.Repo.ListByPatient(ctx, patientID)
	if err != nil {
		return nil, fmt.Errorf("failed to list records: %w", err)
	}
	return items, nil
}

// ListByType filters the patient's own records by record type.
func (s *DefaultRecordService) ListByType(ctx context.Context, patientID, recordType string) ([]models.MedicalRecord, error) {
	items, err := s.Repo.ListByPatientAndType(ctx, patientID, recordType)
	if err != nil {
		return nil, fmt.Errorf("failed to list records: %w", err)
	}
	return items, nil
}

// AddDocument encrypts and stores an attachment, then appends its metadata to
// the record.
func (s *DefaultRecordService) AddDocument(ctx context.Context, recordID, callerID, callerRole, fileName, mimeType string, data []byte) (*models.MedicalRecord, error) {
	if len(data) == 0 {
		return nil, utils.ErrInvalidInput("Document file is required")
	}
	rec, err := s.getRecord(ctx, recordID)
	if err != nil {
		return nil, err
	}
	if err := s.authorize(ctx, rec.PatientID, callerID, callerRole); err != nil {
		return nil, err
	}

	url, err := s.Store.UploadEncrypted(ctx, data, "records/"+rec.PatientID, fileName)
	if err != nil {
		return nil, fmt.Errorf("failed to store document: %w", err)
	}

	doc := models.RecordDocument{
		ID:         uuid.New().String(),
		FileName:   fileName,
		URL:        url,
		MimeType:   mimeType,
		UploadedBy: callerID,
		UploadedAt: s.now(),
	}
	if err := s.Repo.AddDocument(ctx, rec.ID, doc); err != nil {
		return nil, fmt.Errorf("failed to attach document: %w", err)
	}
	rec.Documents = append(rec.Documents, doc)
	rec.UpdatedAt = doc.UploadedAt

	if callerID != rec.PatientID {
		s.notify(ctx, models.Notification{
			UserID:            rec.PatientID,
			Type:              models.NotificationRecordUpdate,
			Title:             "Document Added",
			Message:           "A document was added to your record \"" + rec.Title + "\".",
			RelatedEntityID:   rec.ID,
			RelatedEntityType: "record",
			SentVia:           []string{"in_app", "push"},
		})
	}
	return rec, nil
}

func (s *DefaultRecordService) getRecord(ctx context.Context, recordID string) (*models.MedicalRecord, error) {
	rec, err := s.Repo.GetByID(ctx, recordID)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, utils.ErrNotFound("Record not found")
	}
	if err != nil {
		return nil, err
	}
	return rec, nil
}

func (s *DefaultRecordService) notify(ctx context.Context, n models.Notification) {
	if s.Notifier == nil {
		return
	}
	s.Notifier.Notify(ctx, n)
}
